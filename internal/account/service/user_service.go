package service

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/andrefasa/user-service/internal/account/domain UserRepository

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/andrefasa/user-service/internal/account/domain"
	"github.com/andrefasa/user-service/internal/account/dto"
	"github.com/andrefasa/user-service/internal/apperr"
	"github.com/andrefasa/user-service/internal/logging"
	"github.com/andrefasa/user-service/internal/media"
)

// UserService orchestrates the account session lifecycle: registration,
// login, refresh-token rotation, logout and credential changes. The stored
// refresh token on the account record is the single source of truth for the
// live session; every rotation overwrites it and every mismatch is treated
// as a replayed token.
type UserService struct {
	repo     domain.UserRepository
	tokens   TokenGenerator
	hasher   CredentialHasher
	uploader media.Uploader
	log      logging.Logger
}

func NewUserService(repo domain.UserRepository, tokens TokenGenerator, hasher CredentialHasher,
	uploader media.Uploader, log logging.Logger) *UserService {
	return &UserService{
		repo:     repo,
		tokens:   tokens,
		hasher:   hasher,
		uploader: uploader,
		log:      log,
	}
}

// Register creates a new account. It does not issue tokens; the caller logs
// in separately.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.UserOutput, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.TrimSpace(input.Email)
	input.Gender = strings.TrimSpace(input.Gender)

	if input.FullName == "" || input.Email == "" || input.Gender == "" || strings.TrimSpace(input.Password) == "" {
		return nil, apperr.InvalidInput("please provide valid data for all required fields")
	}

	existing, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("user already exists")
	}

	if input.ProfileImagePath == "" {
		return nil, apperr.InvalidInput("profile picture is required")
	}

	imageURL, err := s.uploader.Upload(ctx, input.ProfileImagePath)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUploadFailed, "profile picture upload failed", err)
	}

	// The cover image is optional and its upload failure is tolerated.
	coverURL := ""
	if input.CoverImagePath != "" {
		coverURL, err = s.uploader.Upload(ctx, input.CoverImagePath)
		if err != nil {
			s.log.Warn(ctx, "cover image upload failed", "error", err)
			coverURL = ""
		}
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := time.Now()
	user := &domain.User{
		ID:            uuid.New().String(),
		FullName:      input.FullName,
		Email:         input.Email,
		Gender:        input.Gender,
		PasswordHash:  digest,
		ImageURL:      imageURL,
		CoverImageURL: coverURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)

	out := dto.NewUserOutput(user)

	return &out, nil
}

// Login verifies credentials and mints a fresh token pair. The new refresh
// token overwrites whatever was stored before, invalidating any prior
// session.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginOutput, error) {
	if input.Email == "" || input.Password == "" {
		return nil, apperr.InvalidInput("email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user does not exist")
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	accessToken, refreshToken, err := s.mintAndStore(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID)

	return &dto.LoginOutput{
		User:         dto.NewUserOutput(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh rotates the refresh token. The presented token must verify against
// the refresh secret AND byte-equal the token stored on the account; after a
// successful rotation the presented token is permanently invalid.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairOutput, error) {
	if refreshToken == "" {
		return nil, apperr.Unauthorized("refresh token is required")
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthorized, "invalid refresh token", err)
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.Unauthorized("invalid refresh token")
	}

	if user.RefreshToken == nil ||
		subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(refreshToken)) != 1 {
		return nil, apperr.Unauthorized("refresh token is expired or already used")
	}

	accessToken, newRefreshToken, err := s.mintAndStore(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "session refreshed", "user_id", user.ID)

	return &dto.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout unconditionally clears the stored refresh token.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.repo.UpdateRefreshToken(ctx, userID, nil); err != nil {
		return apperr.Internal(err)
	}

	s.log.Info(ctx, "user logged out", "user_id", userID)

	return nil
}

// ChangePassword re-hashes and persists the new password. The stored refresh
// token is cleared as well, so existing sessions do not survive a password
// change.
func (s *UserService) ChangePassword(ctx context.Context, userID string, input dto.ChangePasswordInput) error {
	if input.OldPassword == "" || input.NewPassword == "" {
		return apperr.InvalidInput("old and new passwords are required")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return apperr.Internal(err)
	}
	if user == nil {
		return apperr.Unauthorized("user does not exist")
	}

	if !s.hasher.Verify(input.OldPassword, user.PasswordHash) {
		return apperr.Unauthorized("old password is incorrect")
	}

	digest, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, digest); err != nil {
		return apperr.Internal(err)
	}

	if err := s.repo.UpdateRefreshToken(ctx, userID, nil); err != nil {
		return apperr.Internal(err)
	}

	s.log.Info(ctx, "password changed", "user_id", userID)

	return nil
}

// GetProfile returns the sanitized account for the given id.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*dto.UserOutput, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.Unauthorized("user does not exist")
	}

	out := dto.NewUserOutput(user)

	return &out, nil
}

// UpdateProfileImage uploads the new image and persists its URL.
func (s *UserService) UpdateProfileImage(ctx context.Context, userID string, imagePath string) (*dto.UserOutput, error) {
	if imagePath == "" {
		return nil, apperr.InvalidInput("image file is required")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.Unauthorized("user does not exist")
	}

	imageURL, err := s.uploader.Upload(ctx, imagePath)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUploadFailed, "image upload failed", err)
	}

	if err := s.repo.UpdateProfileImage(ctx, userID, imageURL); err != nil {
		return nil, apperr.Internal(err)
	}

	user.ImageURL = imageURL
	out := dto.NewUserOutput(user)

	return &out, nil
}

// mintAndStore issues a fresh token pair and overwrites the stored refresh
// token in a single write. Concurrent rotations race benignly: the last
// writer's token wins.
func (s *UserService) mintAndStore(ctx context.Context, user *domain.User) (string, string, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", apperr.Internal(err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return "", "", apperr.Internal(err)
	}

	if err := s.repo.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return "", "", apperr.Internal(err)
	}

	return accessToken, refreshToken, nil
}
