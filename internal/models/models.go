package models

// Status is the visibility state of a chart.
type Status string

const (
	StatusPrivate  Status = "PRIVATE"
	StatusPublic   Status = "PUBLIC"
	StatusUnlisted Status = "UNLISTED"
)

// Valid reports whether s is one of the closed set of visibility states.
func (s Status) Valid() bool {
	switch s {
	case StatusPrivate, StatusPublic, StatusUnlisted:
		return true
	}
	return false
}

// Next returns the following state in the PRIVATE → PUBLIC → UNLISTED cycle.
func (s Status) Next() Status {
	switch s {
	case StatusPrivate:
		return StatusPublic
	case StatusPublic:
		return StatusUnlisted
	default:
		return StatusPrivate
	}
}

// Chart is the canonical, post-normalization representation of a chart record.
//
// Author is the formatted display name; AuthorField is the plain edit handle
// resubmitted on edits and never shown as display text.
type Chart struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Artists     string   `json:"artists"`
	Author      string   `json:"author"`
	AuthorField string   `json:"author_field"`
	AuthorID    string   `json:"author_id"`
	Rating      int      `json:"rating"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`

	// Derived asset URLs; empty when the source hash is absent.
	CoverURL      string `json:"cover_url"`
	BGMURL        string `json:"bgm_url"`
	ChartURL      string `json:"chart_url"`
	PreviewURL    string `json:"preview_url"`
	BackgroundURL string `json:"background_url"`
	HasBackground bool   `json:"has_bg"`

	LikeCount int    `json:"like_count"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
	Status    Status `json:"status"`
}

// ChartPage is one page of the user's catalog. It is replaced wholesale on
// every successful fetch, never partially patched.
type ChartPage struct {
	Charts     []Chart `json:"charts"`
	PageCount  int     `json:"page_count"`
	TotalCount int     `json:"total_count"`
	Page       int     `json:"page"` // 0-based
}

// Mode distinguishes a create submission from an update submission.
type Mode string

const (
	ModeCreate Mode = "upload"
	ModeUpdate Mode = "edit"
)

// FileAttachment is a binary file staged for submission.
type FileAttachment struct {
	Name string
	Data []byte
}

// EditTarget identifies the chart being edited along with its existing asset
// URLs. The URLs are display-only; they are never resubmitted.
type EditTarget struct {
	ID            string
	Title         string
	JacketURL     string
	BGMURL        string
	ChartURL      string
	PreviewURL    string
	BackgroundURL string
}

// Submission is the transient user-entered state for a create or update
// operation, not yet sent. Rating and Tags hold the raw text input; parsing
// happens during validation.
type Submission struct {
	Mode        Mode
	Title       string
	Artists     string
	Author      string
	Rating      string
	Description string
	Tags        string

	Jacket     *FileAttachment
	BGM        *FileAttachment
	Chart      *FileAttachment
	Preview    *FileAttachment
	Background *FileAttachment

	Target *EditTarget // update mode only
}

// Reset clears all entered fields and staged files.
func (s *Submission) Reset() {
	*s = Submission{}
}

// HasFiles reports whether any file is staged for this submission.
func (s *Submission) HasFiles() bool {
	return s.Jacket != nil || s.BGM != nil || s.Chart != nil || s.Preview != nil || s.Background != nil
}
