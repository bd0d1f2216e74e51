// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/config"
	"storefront/internal/delivery/http/cookie"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/infra/metrics"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultRegisterCookieTTL = 48 * time.Hour
	defaultLoginCookieTTL    = 72 * time.Hour
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc            usecase.UserUsecase
	avatarStorage service.AvatarStorage
	cfg           *config.Config
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	Usecase       usecase.UserUsecase
	AvatarStorage service.AvatarStorage `optional:"true"`
	Config        *config.Config
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		uc:            params.Usecase,
		avatarStorage: params.AvatarStorage,
		cfg:           params.Config,
		metrics:       params.Metrics,
		logger:        params.Logger,
	}
}

type registerRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// RegisterUser handles the user registration request.
// The body is either JSON or a multipart form with an optional avatar file.
func (h *UserHandler) RegisterUser(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	avatarURL, err := h.uploadAvatarIfPresent(c)
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.RegisterUser(c.Request().Context(), &usecase.RegisterUserInput{
		Username:  strings.TrimSpace(req.Username),
		Email:     strings.TrimSpace(req.Email),
		Password:  req.Password,
		AvatarURL: avatarURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.metrics.RegistrationsTotal.Inc()
	h.setAuthCookies(c, output.AccessToken, output.RefreshToken, h.registerCookieTTL())

	return response.Success(c, http.StatusOK, toUserResponse(output.User), "User registered successfully")
}

// Login handles the user login request.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Username == "" && req.Email == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Username or email is required")
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		h.metrics.LoginsTotal.WithLabelValues("failure").Inc()

		return errors.WithStack(err)
	}

	h.metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.setAuthCookies(c, output.AccessToken, output.RefreshToken, h.loginCookieTTL())

	return response.Success(c, http.StatusOK, toUserResponse(output.User), "Login successful")
}

// RefreshToken exchanges a valid refresh token for a fresh access token.
func (h *UserHandler) RefreshToken(c echo.Context) error {
	refreshToken := h.refreshTokenFromRequest(c)
	if refreshToken == "" {
		return response.Unauthorized(c, "REFRESH_TOKEN_INVALID", "Missing refresh token")
	}

	output, err := h.uc.RefreshToken(c.Request().Context(), &usecase.RefreshTokenInput{
		RefreshToken: refreshToken,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	cookie.Set(c, cookie.AccessToken, output.AccessToken, h.loginCookieTTL(), h.secureCookies())

	return response.Success(c, http.StatusOK, map[string]string{"access_token": output.AccessToken}, "Token refreshed successfully")
}

// Logout terminates the current session. It succeeds even when the session is
// already gone so repeated logouts stay harmless.
func (h *UserHandler) Logout(c echo.Context) error {
	refreshToken := h.refreshTokenFromRequest(c)
	if refreshToken != "" {
		if err := h.uc.Logout(c.Request().Context(), &usecase.LogoutInput{RefreshToken: refreshToken}); err != nil {
			return errors.WithStack(err)
		}
	}

	cookie.Clear(c, cookie.AccessToken, h.secureCookies())
	cookie.Clear(c, cookie.RefreshToken, h.secureCookies())

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// GetUser returns the authenticated user's profile together with their cart.
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	user, err := h.uc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(user), "Profile retrieved successfully")
}

type profileResponse struct {
	*userResponse
	Cart *cartResponse `json:"cart"`
}

func toProfileResponse(user *entity.User) *profileResponse {
	return &profileResponse{
		userResponse: toUserResponse(user),
		Cart: toCartResponse(&usecase.CartOutput{
			Lines: user.Cart,
			Total: user.CartTotal(),
		}),
	}
}

func (h *UserHandler) uploadAvatarIfPresent(c echo.Context) (string, error) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil || fileHeader == nil {
		return entity.AvatarNone, nil
	}

	if h.avatarStorage == nil {
		h.logger.Warn("Avatar uploaded but storage is not configured, keeping placeholder")

		return entity.AvatarNone, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", domainerrors.ErrAvatarUploadFailed.WrapMessage("failed to open uploaded avatar")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	avatarURL, err := h.avatarStorage.Upload(c.Request().Context(), fileHeader.Filename, contentType, file)
	if err != nil || avatarURL == "" {
		h.logger.Warn("Avatar upload failed", slog.Any("error", err))

		return "", domainerrors.ErrAvatarUploadFailed.WrapMessage("failed to store uploaded avatar")
	}

	return avatarURL, nil
}

func (h *UserHandler) refreshTokenFromRequest(c echo.Context) string {
	if tokenCookie, err := c.Cookie(cookie.RefreshToken); err == nil && tokenCookie.Value != "" {
		return tokenCookie.Value
	}

	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&body); err == nil {
		return body.RefreshToken
	}

	return ""
}

func (h *UserHandler) setAuthCookies(c echo.Context, accessToken, refreshToken string, ttl time.Duration) {
	cookie.Set(c, cookie.AccessToken, accessToken, ttl, h.secureCookies())
	cookie.Set(c, cookie.RefreshToken, refreshToken, ttl, h.secureCookies())
}

func (h *UserHandler) registerCookieTTL() time.Duration {
	if h.cfg.Auth != nil && h.cfg.Auth.RegisterCookieTTL > 0 {
		return h.cfg.Auth.RegisterCookieTTL
	}

	return defaultRegisterCookieTTL
}

func (h *UserHandler) loginCookieTTL() time.Duration {
	if h.cfg.Auth != nil && h.cfg.Auth.LoginCookieTTL > 0 {
		return h.cfg.Auth.LoginCookieTTL
	}

	return defaultLoginCookieTTL
}

func (h *UserHandler) secureCookies() bool {
	return h.cfg.Auth != nil && h.cfg.Auth.SecureCookies
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
