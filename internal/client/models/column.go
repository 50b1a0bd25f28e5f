package models

import "fmt"

// Column is a named collection of posts owned by one author.
type Column struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Avatar      *Image `json:"avatar,omitempty"`
}

func (c Column) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("column %q: missing _id", c.Title)
	}
	return nil
}
