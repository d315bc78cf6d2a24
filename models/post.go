package models

import "time"

// Post is a published blog entry. Content is stored already sanitized;
// posts are immutable after creation. The author is always eager-joined,
// so AuthorUsername is populated on every read path.
type Post struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorUsername string    `json:"author_username"`
	UserID         int       `json:"user_id"`
}
