package models

import "time"

// Resource is a community resource listing (a service, business, or support
// contact) published by a user.
type Resource struct {
	ID              string    `json:"_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	URL             string    `json:"url,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	BusinessName    string    `json:"businessName,omitempty"`
	BusinessAddress string    `json:"businessAddress,omitempty"`
	PhoneNumber     string    `json:"phoneNumber,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	UserID          string    `json:"user"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ResourceFilter narrows and orders a resource listing. Title and Category
// match case-insensitive substrings; Tags matches resources carrying any of
// the given tags. Zero values leave the corresponding dimension unfiltered.
type ResourceFilter struct {
	Category string
	Title    string
	Tags     []string
	// SortBy is "newest" (default) or "oldest".
	SortBy string
}
