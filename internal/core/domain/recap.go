package domain

import "time"

// RecapKind is the reporting cadence of a recap.
type RecapKind string

const (
	RecapDaily  RecapKind = "DAILY"
	RecapWeekly RecapKind = "WEEKLY"
)

// IsValid reports whether k is a known recap kind.
func (k RecapKind) IsValid() bool {
	return k == RecapDaily || k == RecapWeekly
}

// Comment belongs to exactly one Recap and cannot outlive it.
type Comment struct {
	CommentID string    `json:"commentID"`
	AuthorID  string    `json:"authorID"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Recap is an activity report. It is only ever mutated by appending comments.
type Recap struct {
	RecapID     string    `json:"recapID"`
	Title       string    `json:"title"`
	Kind        RecapKind `json:"kind"`
	Description string    `json:"description"`
	MediaURLs   []string  `json:"mediaURLs"`
	Comments    []Comment `json:"comments"` // insertion order, append-only
	Authorship
}

// Clone returns a copy that shares no slices with r.
func (r Recap) Clone() Recap {
	c := r
	c.MediaURLs = append([]string(nil), r.MediaURLs...)
	c.Comments = append([]Comment(nil), r.Comments...)
	return c
}
