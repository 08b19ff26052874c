package dto

import (
	"time"

	"github.com/andrefasa/user-service/internal/account/domain"
)

// UserOutput is the sanitized account projection returned by every read path.
// It deliberately has no password or refresh-token fields.
type UserOutput struct {
	ID            string    `json:"id"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	Gender        string    `json:"gender"`
	ImageURL      string    `json:"imgUrl"`
	CoverImageURL string    `json:"coverImg"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewUserOutput(u *domain.User) UserOutput {
	return UserOutput{
		ID:            u.ID,
		FullName:      u.FullName,
		Email:         u.Email,
		Gender:        u.Gender,
		ImageURL:      u.ImageURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
