package models

import "time"

// Discussion is a community discussion thread with embedded comments.
type Discussion struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	UserID    string    `json:"user"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment is a single reply inside a discussion thread.
type Comment struct {
	ID           string    `json:"_id"`
	DiscussionID string    `json:"-"`
	UserID       string    `json:"user"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
}
