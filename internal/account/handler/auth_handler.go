package handler

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/andrefasa/user-service/internal/account/dto"
	"github.com/andrefasa/user-service/internal/account/service"
	"github.com/andrefasa/user-service/internal/apperr"
	"github.com/andrefasa/user-service/internal/metrics"
	"github.com/andrefasa/user-service/pkg/constant"
)

type AuthHandler struct {
	userService  *service.UserService
	tokenService service.TokenGenerator
	uploadDir    string
}

func NewAuthHandler(userService *service.UserService, tokenService service.TokenGenerator, uploadDir string) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		uploadDir:    uploadDir,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	input := dto.RegisterInput{
		FullName: c.FormValue("fullName"),
		Email:    c.FormValue("email"),
		Gender:   c.FormValue("gender"),
		Password: c.FormValue("password"),
	}

	profile, err := c.FormFile("profileImg")
	if err != nil {
		return apperr.InvalidInput("profile picture is required")
	}
	input.ProfileImagePath, err = h.saveTemp(c, profile)
	if err != nil {
		return apperr.Internal(err)
	}

	if cover, err := c.FormFile("coverImg"); err == nil {
		input.CoverImagePath, err = h.saveTemp(c, cover)
		if err != nil {
			return apperr.Internal(err)
		}
	}

	user, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()

	return respond(c, fiber.StatusCreated, user, "user is created successfully")
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return apperr.InvalidInput("invalid request body")
	}

	out, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	h.setTokenCookies(c, out.AccessToken, out.RefreshToken)

	return respond(c, fiber.StatusOK, out, "user logged in successfully")
}

// Refresh rotates the token pair. The refresh token is read from the cookie
// first, with the request body as a fallback for non-browser clients.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(constant.RefreshTokenCookie)
	if refreshToken == "" {
		var input dto.RefreshInput
		if err := c.BodyParser(&input); err == nil {
			refreshToken = input.RefreshToken
		}
	}

	out, err := h.userService.Refresh(c.UserContext(), refreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
		return err
	}

	metrics.TokenRefreshesTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	h.setTokenCookies(c, out.AccessToken, out.RefreshToken)

	return respond(c, fiber.StatusOK, out, "session refreshed successfully")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, _ := c.Locals(constant.UserIDLocalsKey).(string)

	if err := h.userService.Logout(c.UserContext(), userID); err != nil {
		return err
	}

	h.clearTokenCookies(c)

	return respond(c, fiber.StatusOK, nil, "user logged out successfully")
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var input dto.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return apperr.InvalidInput("invalid request body")
	}

	userID, _ := c.Locals(constant.UserIDLocalsKey).(string)

	if err := h.userService.ChangePassword(c.UserContext(), userID, input); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, nil, "password changed successfully")
}

// GetProfile returns the sanitized account resolved by the guard.
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user := c.Locals(constant.UserLocalsKey)

	return respond(c, fiber.StatusOK, user, "user details fetched successfully")
}

func (h *AuthHandler) UpdateProfileImage(c *fiber.Ctx) error {
	userID, _ := c.Locals(constant.UserIDLocalsKey).(string)

	file, err := c.FormFile("image")
	if err != nil {
		return apperr.InvalidInput("image file is required")
	}

	localPath, err := h.saveTemp(c, file)
	if err != nil {
		return apperr.Internal(err)
	}

	user, err := h.userService.UpdateProfileImage(c.UserContext(), userID, localPath)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, user, "profile image updated successfully")
}

// saveTemp stores a multipart file under the upload dir with a random name,
// keeping the original extension. The uploader removes it afterwards.
func (h *AuthHandler) saveTemp(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	path := filepath.Join(h.uploadDir, fmt.Sprintf("%s%s", uuid.New(), filepath.Ext(file.Filename)))
	if err := c.SaveFile(file, path); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}
	return path, nil
}

func (h *AuthHandler) setTokenCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	now := time.Now()
	c.Cookie(&fiber.Cookie{
		Name:     constant.AccessTokenCookie,
		Value:    accessToken,
		Expires:  now.Add(h.tokenService.GetAccessTokenExpiry()),
		HTTPOnly: true,
		Secure:   true,
	})
	c.Cookie(&fiber.Cookie{
		Name:     constant.RefreshTokenCookie,
		Value:    refreshToken,
		Expires:  now.Add(h.tokenService.GetRefreshTokenExpiry()),
		HTTPOnly: true,
		Secure:   true,
	})
}

func (h *AuthHandler) clearTokenCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{constant.AccessTokenCookie, constant.RefreshTokenCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  expired,
			HTTPOnly: true,
			Secure:   true,
		})
	}
}
