package models

import "time"

// RefreshToken is one entry of a user's persisted refresh-token allow-list.
// A signed token is only honored while its row exists; deleting the row
// revokes the session regardless of the token's own expiry.
type RefreshToken struct {
	Token   string
	UserID  string
	Expires time.Time
}
