package dto

type RegisterInput struct {
	FullName string `json:"fullName" form:"fullName"`
	Email    string `json:"email" form:"email"`
	Gender   string `json:"gender" form:"gender"`
	Password string `json:"password" form:"password"`

	// Local paths of the multipart uploads, filled in by the handler.
	ProfileImagePath string `json:"-"`
	CoverImagePath   string `json:"-"`
}
