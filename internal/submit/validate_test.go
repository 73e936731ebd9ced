package submit

import (
	"errors"
	"strings"
	"testing"

	"chartctl/internal/models"
	"chartctl/internal/shared"
)

func validCreate() *models.Submission {
	return &models.Submission{
		Mode:    models.ModeCreate,
		Title:   "Moonlit Step",
		Artists: "DJ Example",
		Author:  "charter",
		Rating:  "27",
		Jacket:  &models.FileAttachment{Name: "jacket.png", Data: []byte{1}},
		BGM:     &models.FileAttachment{Name: "bgm.mp3", Data: []byte{2}},
		Chart:   &models.FileAttachment{Name: "chart.sus", Data: []byte{3}},
	}
}

func TestParseTags(t *testing.T) {
	tc := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "whitespace only", raw: "  ", want: nil},
		{name: "simple", raw: "a,b,c", want: []string{"a", "b", "c"}},
		{name: "trims segments", raw: "a, b , c", want: []string{"a", "b", "c"}},
		{name: "drops empty segments", raw: "a,,b,", want: []string{"a", "b"}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTags(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseTags(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseTags(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("Valid Create", func(t *testing.T) {
		sub := validCreate()
		sub.Tags = "boss,fun"

		tags, err := Validate(sub)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(tags) != 2 || tags[0] != "boss" || tags[1] != "fun" {
			t.Errorf("expected [boss fun], got %v", tags)
		}
	})

	t.Run("Create Required Fields", func(t *testing.T) {
		mutations := map[string]func(*models.Submission){
			"title":   func(s *models.Submission) { s.Title = "" },
			"artists": func(s *models.Submission) { s.Artists = "" },
			"author":  func(s *models.Submission) { s.Author = "" },
			"rating":  func(s *models.Submission) { s.Rating = "" },
			"chart":   func(s *models.Submission) { s.Chart = nil },
			"bgm":     func(s *models.Submission) { s.BGM = nil },
			"jacket":  func(s *models.Submission) { s.Jacket = nil },
		}

		for name, mutate := range mutations {
			t.Run(name, func(t *testing.T) {
				sub := validCreate()
				mutate(sub)

				_, err := Validate(sub)
				if err == nil {
					t.Fatalf("expected error when %s is missing", name)
				}
				if !strings.Contains(err.Error(), "required") {
					t.Errorf("expected required-field message, got %q", err.Error())
				}
				if !errors.Is(err, shared.ErrValidation) {
					t.Errorf("expected error to wrap ErrValidation, got %v", err)
				}
			})
		}
	})

	t.Run("Update Mode Allows Empty Fields", func(t *testing.T) {
		sub := &models.Submission{Mode: models.ModeUpdate, Description: "new words"}
		if _, err := Validate(sub); err != nil {
			t.Errorf("sparse update should validate, got %v", err)
		}
	})

	t.Run("Field Lengths", func(t *testing.T) {
		t.Run("Title 50 Passes", func(t *testing.T) {
			sub := validCreate()
			sub.Title = strings.Repeat("a", 50)
			if _, err := Validate(sub); err != nil {
				t.Errorf("50-char title should pass, got %v", err)
			}
		})

		t.Run("Title 51 Fails", func(t *testing.T) {
			sub := validCreate()
			sub.Title = strings.Repeat("a", 51)
			_, err := Validate(sub)
			if err == nil || !strings.Contains(err.Error(), "Title") {
				t.Errorf("expected title length error, got %v", err)
			}
		})

		t.Run("Artists 51 Fails", func(t *testing.T) {
			sub := validCreate()
			sub.Artists = strings.Repeat("a", 51)
			_, err := Validate(sub)
			if err == nil || !strings.Contains(err.Error(), "Artists") {
				t.Errorf("expected artists length error, got %v", err)
			}
		})

		t.Run("Charter Name 51 Fails", func(t *testing.T) {
			sub := validCreate()
			sub.Author = strings.Repeat("a", 51)
			_, err := Validate(sub)
			if err == nil || !strings.Contains(err.Error(), "Charter Name") {
				t.Errorf("expected charter name length error, got %v", err)
			}
		})

		t.Run("Description 1001 Fails", func(t *testing.T) {
			sub := validCreate()
			sub.Description = strings.Repeat("a", 1001)
			_, err := Validate(sub)
			if err == nil || !strings.Contains(err.Error(), "Description") {
				t.Errorf("expected description length error, got %v", err)
			}
		})

		t.Run("Description 1000 Passes", func(t *testing.T) {
			sub := validCreate()
			sub.Description = strings.Repeat("a", 1000)
			if _, err := Validate(sub); err != nil {
				t.Errorf("1000-char description should pass, got %v", err)
			}
		})
	})

	t.Run("Tags", func(t *testing.T) {
		t.Run("Four Tags Fail", func(t *testing.T) {
			sub := validCreate()
			sub.Tags = "a,b,c,d"
			_, err := Validate(sub)
			if err == nil || !strings.Contains(err.Error(), "Maximum 3 tags") {
				t.Errorf("expected max-3 error, got %v", err)
			}
		})

		t.Run("Long Tag Named Verbatim", func(t *testing.T) {
			sub := validCreate()
			sub.Tags = "ok,waytoolongtag"
			_, err := Validate(sub)
			if err == nil || !strings.Contains(err.Error(), `"waytoolongtag"`) {
				t.Errorf("expected offending tag in message, got %v", err)
			}
		})

		t.Run("Ten Char Tag Passes", func(t *testing.T) {
			sub := validCreate()
			sub.Tags = strings.Repeat("x", 10)
			if _, err := Validate(sub); err != nil {
				t.Errorf("10-char tag should pass, got %v", err)
			}
		})
	})

	t.Run("Rating Must Be Integer", func(t *testing.T) {
		sub := validCreate()
		sub.Rating = "twelve"
		_, err := Validate(sub)
		if err == nil || !strings.Contains(err.Error(), "Rating") {
			t.Errorf("expected rating format error, got %v", err)
		}
	})
}
