package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/config"
	"storefront/internal/delivery/http/cookie"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/validator"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserTestHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{
		uc:      uc,
		cfg:     &config.Config{},
		metrics: newTestMetrics(),
		logger:  newDiscardLogger(),
	}
}

func newUserTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestUserHandler_RegisterUser_SetsAuthCookies(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", AvatarURL: entity.AvatarNone}

	mockUC := new(mockUserUsecase)
	mockUC.On("RegisterUser", mock.Anything, &usecase.RegisterUserInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "passw0rd",
		AvatarURL: entity.AvatarNone,
	}).Return(&usecase.RegisterOutput{
		User:         user,
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}, nil)

	handler := newUserTestHandler(mockUC)

	c, rec := newUserTestContext(t, http.MethodPost, "/user/create",
		`{"username":"alice","email":"alice@example.com","password":"passw0rd"}`)

	require.NoError(t, handler.RegisterUser(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")
	assert.NotContains(t, rec.Body.String(), "passw0rd")

	cookies := rec.Result().Cookies()
	names := make(map[string]*http.Cookie, len(cookies))
	for _, ck := range cookies {
		names[ck.Name] = ck
	}

	require.Contains(t, names, cookie.AccessToken)
	require.Contains(t, names, cookie.RefreshToken)
	assert.Equal(t, "access-token", names[cookie.AccessToken].Value)
	assert.True(t, names[cookie.AccessToken].HttpOnly)
	assert.Equal(t, int(defaultRegisterCookieTTL.Seconds()), names[cookie.AccessToken].MaxAge)
	mockUC.AssertExpectations(t)
}

func TestUserHandler_RegisterUser_InvalidEmail(t *testing.T) {
	mockUC := new(mockUserUsecase)
	handler := newUserTestHandler(mockUC)

	c, _ := newUserTestContext(t, http.MethodPost, "/user/create",
		`{"username":"alice","email":"not-an-email","password":"passw0rd"}`)

	err := handler.RegisterUser(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	mockUC.AssertNotCalled(t, "RegisterUser", mock.Anything, mock.Anything)
}

type failingAvatarStorage struct{}

func (failingAvatarStorage) Upload(ctx context.Context, filename, contentType string, content io.Reader) (string, error) {
	return "", errors.New("bucket unavailable")
}

func TestUserHandler_RegisterUser_AvatarUploadFailure(t *testing.T) {
	mockUC := new(mockUserUsecase)
	handler := &UserHandler{
		uc:            mockUC,
		avatarStorage: failingAvatarStorage{},
		cfg:           &config.Config{},
		metrics:       newTestMetrics(),
		logger:        newDiscardLogger(),
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("username", "alice"))
	require.NoError(t, writer.WriteField("email", "alice@example.com"))
	require.NoError(t, writer.WriteField("password", "passw0rd"))
	part, err := writer.CreateFormFile("avatar", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte{0x89, 0x50, 0x4E, 0x47})
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(http.MethodPost, "/user/create", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerErr := handler.RegisterUser(c)

	var appErr domainerrors.AppError
	require.ErrorAs(t, handlerErr, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.Equal(t, "AVATAR_UPLOAD_FAILED", appErr.ErrorCode())
	mockUC.AssertNotCalled(t, "RegisterUser", mock.Anything, mock.Anything)
}

func TestUserHandler_Login_SetsLoginCookies(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}

	mockUC := new(mockUserUsecase)
	mockUC.On("Login", mock.Anything, &usecase.LoginInput{
		Username: "alice",
		Password: "passw0rd",
	}).Return(&usecase.LoginOutput{
		User:         user,
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}, nil)

	handler := newUserTestHandler(mockUC)

	c, rec := newUserTestContext(t, http.MethodPost, "/user/login",
		`{"username":"alice","password":"passw0rd"}`)

	require.NoError(t, handler.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	var refreshCookie *http.Cookie
	for _, ck := range cookies {
		if ck.Name == cookie.RefreshToken {
			refreshCookie = ck
		}
	}

	require.NotNil(t, refreshCookie)
	assert.Equal(t, "refresh-token", refreshCookie.Value)
	assert.Equal(t, int(defaultLoginCookieTTL.Seconds()), refreshCookie.MaxAge)
	mockUC.AssertExpectations(t)
}

func TestUserHandler_Login_MissingIdentifier(t *testing.T) {
	mockUC := new(mockUserUsecase)
	handler := newUserTestHandler(mockUC)

	c, rec := newUserTestContext(t, http.MethodPost, "/user/login", `{"password":"passw0rd"}`)

	require.NoError(t, handler.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockUC.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestUserHandler_Logout_ClearsCookiesWithoutSession(t *testing.T) {
	mockUC := new(mockUserUsecase)
	handler := newUserTestHandler(mockUC)

	c, rec := newUserTestContext(t, http.MethodGet, "/user/logout", "")

	require.NoError(t, handler.Logout(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	for _, ck := range rec.Result().Cookies() {
		assert.Equal(t, -1, ck.MaxAge)
	}

	// No refresh cookie was presented, so the usecase is never consulted.
	mockUC.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}

func TestUserHandler_Logout_RevokesPresentedSession(t *testing.T) {
	mockUC := new(mockUserUsecase)
	mockUC.On("Logout", mock.Anything, &usecase.LogoutInput{RefreshToken: "refresh-token"}).Return(nil)

	handler := newUserTestHandler(mockUC)

	c, rec := newUserTestContext(t, http.MethodGet, "/user/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: cookie.RefreshToken, Value: "refresh-token"})

	require.NoError(t, handler.Logout(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	mockUC.AssertExpectations(t)
}

func TestUserHandler_GetUser_ReturnsProfileWithCart(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	user := &entity.User{
		ID:       userID,
		Username: "alice",
		Email:    "alice@example.com",
		Cart: []*entity.CartLine{
			{
				UserID:    userID,
				ProductID: productID,
				Product:   &entity.Product{ID: productID, Name: "Widget", Price: 2.50},
				Quantity:  2,
			},
		},
	}

	mockUC := new(mockUserUsecase)
	mockUC.On("GetUser", mock.Anything, userID).Return(user, nil)

	handler := newUserTestHandler(mockUC)

	c, rec := newUserTestContext(t, http.MethodGet, "/user/getuser", "")
	c.Set(middleware.ContextKeyUserID, userID)

	require.NoError(t, handler.GetUser(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Widget")
	assert.Contains(t, rec.Body.String(), `"total":5`)
	mockUC.AssertExpectations(t)
}
