package submit

import (
	"fmt"
	"strconv"
	"strings"

	"chartctl/internal/models"
	"chartctl/internal/shared"
)

const (
	maxTitleLen       = 50
	maxArtistsLen     = 50
	maxAuthorLen      = 50
	maxDescriptionLen = 1000
	maxTags           = 3
	maxTagLen         = 10
)

// ValidationError is a user-facing rejection of a pending submission. No
// network call is made once one is raised; the user's input stays intact.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return shared.ErrValidation }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ParseTags splits a raw comma-separated tag string, trimming each segment
// and discarding empties.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Validate checks a pending submission against the server's constraints and
// returns the parsed tag list ready for payload building.
//
// Rules run in order and the first violation wins: create-mode required
// fields, rating format, field lengths, then tag count and length.
func Validate(sub *models.Submission) ([]string, error) {
	if sub.Mode == models.ModeCreate {
		if sub.Title == "" || sub.Artists == "" || sub.Author == "" || sub.Rating == "" ||
			sub.Chart == nil || sub.BGM == nil || sub.Jacket == nil {
			return nil, invalid("Please fill in all required fields and upload all required files.")
		}
	}

	if sub.Rating != "" {
		if _, err := strconv.Atoi(strings.TrimSpace(sub.Rating)); err != nil {
			return nil, invalid("Rating must be a whole number.")
		}
	}

	if len(sub.Title) > maxTitleLen {
		return nil, invalid("Title must be %d characters or less.", maxTitleLen)
	}
	if len(sub.Artists) > maxArtistsLen {
		return nil, invalid("Artists must be %d characters or less.", maxArtistsLen)
	}
	if len(sub.Author) > maxAuthorLen {
		return nil, invalid("Charter Name must be %d characters or less.", maxAuthorLen)
	}
	if len(sub.Description) > maxDescriptionLen {
		return nil, invalid("Description must be %d characters or less.", maxDescriptionLen)
	}

	tags := ParseTags(sub.Tags)
	if len(tags) > maxTags {
		return nil, invalid("Maximum %d tags allowed.", maxTags)
	}
	for _, tag := range tags {
		if len(tag) > maxTagLen {
			return nil, invalid("Tag %q must be %d characters or less.", tag, maxTagLen)
		}
	}

	return tags, nil
}
