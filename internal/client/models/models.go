// Package models defines client-side views of the server's JSON payloads
// plus the rows persisted in the local database.
package models

import "time"

// User mirrors the profile payload returned by the server.
type User struct {
	ID    string `json:"userId"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the authenticated state persisted locally between CLI runs.
type Session struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Resource mirrors the server's resource representation. The tags must stay
// in lockstep with the server model or fields silently vanish in transit.
type Resource struct {
	ID              string   `json:"_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	URL             string   `json:"url,omitempty"`
	ImageURL        string   `json:"imageUrl,omitempty"`
	BusinessName    string   `json:"businessName,omitempty"`
	BusinessAddress string   `json:"businessAddress,omitempty"`
	PhoneNumber     string   `json:"phoneNumber,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	UserID          string   `json:"user"`
}

// Comment mirrors a single reply inside a discussion thread.
type Comment struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	UserID    string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// Discussion mirrors the server's discussion thread representation.
type Discussion struct {
	ID       string    `json:"_id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Category string    `json:"category"`
	UserID   string    `json:"user"`
	Comments []Comment `json:"comments"`
}

// OutboxEntry is a deferred write waiting for connectivity. Entries replay
// in insertion order within their queue.
type OutboxEntry struct {
	ID        int64
	Queue     string
	Method    string
	Path      string
	Body      []byte
	CreatedAt time.Time
}
