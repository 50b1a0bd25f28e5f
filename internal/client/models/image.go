package models

// Image describes an uploaded picture (column avatar, post cover, user avatar).
type Image struct {
	ID        string `json:"_id,omitempty"`
	URL       string `json:"url,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
