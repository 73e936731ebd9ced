package submit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"chartctl/internal/models"
)

// Multi-part field names fixed by the chart server.
const (
	metadataField   = "data"
	jacketField     = "jacket_image"
	audioField      = "audio_file"
	chartField      = "chart_file"
	previewField    = "preview_file"
	backgroundField = "background_image"
)

// Payload is an assembled multi-part request body.
type Payload struct {
	ContentType string
	Body        []byte
}

// Build converts a validated submission into a multi-part payload: a JSON
// metadata part under "data" plus one part per attached file. A part is
// omitted entirely when its file is absent.
//
// Update metadata is a patch document: only fields with values are present,
// so the server retains prior values for everything omitted. The five
// includes_* flags are always carried on updates, as are the two deletion
// intents, which stay false (no deletion affordance exists yet).
func Build(sub *models.Submission, tags []string) (*Payload, error) {
	meta, err := metadata(sub, tags)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField(metadataField, string(data)); err != nil {
		return nil, fmt.Errorf("failed to write metadata part: %w", err)
	}

	files := []struct {
		field string
		file  *models.FileAttachment
	}{
		{jacketField, sub.Jacket},
		{audioField, sub.BGM},
		{chartField, sub.Chart},
		{previewField, sub.Preview},
		{backgroundField, sub.Background},
	}
	for _, f := range files {
		if f.file == nil {
			continue
		}
		part, err := w.CreateFormFile(f.field, f.file.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s part: %w", f.field, err)
		}
		if _, err := part.Write(f.file.Data); err != nil {
			return nil, fmt.Errorf("failed to write %s part: %w", f.field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize payload: %w", err)
	}

	return &Payload{ContentType: w.FormDataContentType(), Body: buf.Bytes()}, nil
}

// metadata assembles the JSON part for the submission's mode.
func metadata(sub *models.Submission, tags []string) (map[string]any, error) {
	meta := make(map[string]any)

	setRating := func() error {
		rating, err := strconv.Atoi(strings.TrimSpace(sub.Rating))
		if err != nil {
			return invalid("Rating must be a whole number.")
		}
		meta["rating"] = rating
		return nil
	}

	switch sub.Mode {
	case models.ModeCreate:
		if err := setRating(); err != nil {
			return nil, err
		}
		meta["title"] = sub.Title
		meta["artists"] = sub.Artists
		meta["author"] = sub.Author
		if tags == nil {
			tags = []string{}
		}
		meta["tags"] = tags
		if sub.Description != "" {
			meta["description"] = sub.Description
		}
		meta["includes_background"] = sub.Background != nil
		meta["includes_preview"] = sub.Preview != nil

	case models.ModeUpdate:
		if sub.Title != "" {
			meta["title"] = sub.Title
		}
		if sub.Artists != "" {
			meta["artists"] = sub.Artists
		}
		if sub.Author != "" {
			meta["author"] = sub.Author
		}
		if sub.Rating != "" {
			if err := setRating(); err != nil {
				return nil, err
			}
		}
		if sub.Description != "" {
			meta["description"] = sub.Description
		}
		if len(tags) > 0 {
			meta["tags"] = tags
		}
		meta["includes_jacket"] = sub.Jacket != nil
		meta["includes_audio"] = sub.BGM != nil
		meta["includes_chart"] = sub.Chart != nil
		meta["includes_preview"] = sub.Preview != nil
		meta["includes_background"] = sub.Background != nil
		meta["delete_background"] = false
		meta["delete_preview"] = false

	default:
		return nil, fmt.Errorf("unknown submission mode %q", sub.Mode)
	}

	return meta, nil
}
