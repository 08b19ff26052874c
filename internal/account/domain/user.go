package domain

import "time"

// User is the account record persisted by the user directory store.
//
// RefreshToken holds the single refresh token currently considered valid for
// the account; nil means no live session. PasswordHash and RefreshToken never
// appear in API responses (see dto.UserOutput).
type User struct {
	ID            string
	FullName      string
	Email         string
	Gender        string
	PasswordHash  string
	ImageURL      string
	CoverImageURL string
	RefreshToken  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
