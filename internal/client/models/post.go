package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Author is either a bare user identifier or an embedded user snapshot,
// depending on whether the endpoint populated the relation.
type Author struct {
	ID   string
	User *User
}

// AuthorID returns the author's identifier for both shapes.
func (a *Author) AuthorID() string {
	if a == nil {
		return ""
	}
	if a.User != nil {
		return a.User.ID
	}
	return a.ID
}

func (a Author) MarshalJSON() ([]byte, error) {
	if a.User != nil {
		return json.Marshal(a.User)
	}
	return json.Marshal(a.ID)
}

func (a *Author) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		a.User = nil
		return json.Unmarshal(b, &a.ID)
	}

	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		return fmt.Errorf("author: %w", err)
	}
	a.ID = u.ID
	a.User = &u
	return nil
}

// Post is an article inside a column. A post that came from a list endpoint
// usually carries only an excerpt; Content is filled by the detail endpoint.
type Post struct {
	ID        string  `json:"_id"`
	Title     string  `json:"title"`
	Column    string  `json:"column"`
	Excerpt   string  `json:"excerpt,omitempty"`
	Content   string  `json:"content,omitempty"`
	Image     *Image  `json:"image,omitempty"`
	Author    *Author `json:"author,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// IsFullyLoaded reports whether the post came from a detail fetch.
func (p Post) IsFullyLoaded() bool {
	return p.Content != ""
}

func (p Post) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("post %q: missing _id", p.Title)
	}
	if p.Column == "" {
		return fmt.Errorf("post %s: missing column", p.ID)
	}
	return nil
}

// PostInput is the body of create and update calls.
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Column  string `json:"column,omitempty"`
	Author  string `json:"author,omitempty"`
	Image   string `json:"image,omitempty"`
}

func (in PostInput) Validate() error {
	if in.Title == "" {
		return fmt.Errorf("post input: empty title")
	}
	if in.Content == "" {
		return fmt.Errorf("post input: empty content")
	}
	return nil
}
