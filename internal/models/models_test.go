package models

import "testing"

func TestStatus(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		for _, s := range []Status{StatusPrivate, StatusPublic, StatusUnlisted} {
			if !s.Valid() {
				t.Errorf("expected %s to be valid", s)
			}
		}
		if Status("DELETED").Valid() {
			t.Error("expected DELETED to be invalid")
		}
	})

	t.Run("Next Cycles", func(t *testing.T) {
		cases := map[Status]Status{
			StatusPrivate:  StatusPublic,
			StatusPublic:   StatusUnlisted,
			StatusUnlisted: StatusPrivate,
		}
		for from, want := range cases {
			if got := from.Next(); got != want {
				t.Errorf("Next(%s) = %s, want %s", from, got, want)
			}
		}

		// Unknown states normalize to PRIVATE
		if got := Status("").Next(); got != StatusPrivate {
			t.Errorf("Next(\"\") = %s, want PRIVATE", got)
		}
	})
}

func TestSubmission(t *testing.T) {
	t.Run("Reset", func(t *testing.T) {
		sub := Submission{
			Mode:   ModeUpdate,
			Title:  "Song",
			Jacket: &FileAttachment{Name: "jacket.png", Data: []byte{1}},
			Target: &EditTarget{ID: "abc"},
		}
		sub.Reset()

		if sub.Title != "" || sub.Jacket != nil || sub.Target != nil || sub.Mode != "" {
			t.Errorf("expected zeroed submission, got %+v", sub)
		}
	})

	t.Run("HasFiles", func(t *testing.T) {
		var sub Submission
		if sub.HasFiles() {
			t.Error("empty submission should have no files")
		}

		sub.Preview = &FileAttachment{Name: "p.mp3"}
		if !sub.HasFiles() {
			t.Error("expected staged preview to count as a file")
		}
	})
}
