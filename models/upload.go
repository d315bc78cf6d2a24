package models

import "time"

// Upload describes a stored object in the uploads bucket. The ID doubles
// as the object key.
type Upload struct {
	ID          string    `json:"id"`
	UserID      int       `json:"user_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}
