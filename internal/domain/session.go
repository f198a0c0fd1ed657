package domain

import "time"

// Session tracks one refresh-token lineage for a user. The refresh
// token itself is opaque and random; only its hash is stored, so a
// database compromise does not leak usable tokens.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"refresh_token_hash"`
	CreatedAt        time.Time `json:"created_at"`
	LastUsedAt       time.Time `json:"last_used_at"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// IsExpired reports whether the session's refresh token has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
