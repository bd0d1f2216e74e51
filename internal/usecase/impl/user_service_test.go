package impl

import (
	"context"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service          usecase.UserUsecase
	userRepo         *mockUserRepository
	refreshTokenRepo *mockRefreshTokenRepository
	hasher           *mockPasswordHasher
	tokenService     *mockTokenService
}

func createTestUserService(maxActiveSessions int) userServiceFixtures {
	userRepo := &mockUserRepository{}
	refreshTokenRepo := &mockRefreshTokenRepository{}
	hasher := &mockPasswordHasher{}
	tokenService := &mockTokenService{}

	txManager := &stubTxManager{factory: &stubRepositoryFactory{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}}

	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{MaxActiveSessions: maxActiveSessions}

	svc := NewUserService(UserServiceParams{
		TxManager:        txManager,
		UserRepo:         userRepo,
		RefreshTokenRepo: refreshTokenRepo,
		Hasher:           hasher,
		TokenService:     tokenService,
		Config:           cfg,
		Logger:           newDiscardLogger(),
	})

	return userServiceFixtures{
		service:          svc,
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		hasher:           hasher,
		tokenService:     tokenService,
	}
}

func TestUserService_RegisterUser_Success(t *testing.T) {
	fixtures := createTestUserService(0)
	ctx := context.Background()

	input := &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password123!",
	}

	createdID := uuid.New()

	fixtures.hasher.On("ValidatePasswordStrength", input.Password).Return(nil)
	fixtures.hasher.On("Hash", input.Password).Return("hashed_password", nil)

	fixtures.userRepo.On("ExistsByUsernameOrEmail", ctx, input.Username, input.Email).Return(false, nil)
	fixtures.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = createdID
		}).
		Return(nil)
	fixtures.userRepo.On("FindByID", ctx, createdID).Return(&entity.User{
		ID:        createdID,
		Username:  input.Username,
		Email:     input.Email,
		AvatarURL: entity.AvatarNone,
	}, nil)

	fixtures.tokenService.On("GenerateTokens", createdID).Return("access", "refresh", nil)
	fixtures.tokenService.On("HashToken", "refresh").Return("refresh_hash")
	fixtures.tokenService.On("GetRefreshTokenDuration").Return(72 * time.Hour)
	fixtures.refreshTokenRepo.On("CreateRefreshToken", ctx, mock.AnythingOfType("*entity.RefreshToken")).Return(nil)

	output, err := fixtures.service.RegisterUser(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, input.Email, output.User.Email)
	assert.Equal(t, entity.AvatarNone, output.User.AvatarURL)
	assert.Equal(t, "access", output.AccessToken)
	assert.Equal(t, "refresh", output.RefreshToken)
	fixtures.refreshTokenRepo.AssertExpectations(t)
}

func TestUserService_RegisterUser_DuplicateIdentifier(t *testing.T) {
	fixtures := createTestUserService(0)
	ctx := context.Background()

	input := &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password123!",
	}

	fixtures.hasher.On("ValidatePasswordStrength", input.Password).Return(nil)
	fixtures.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fixtures.userRepo.On("ExistsByUsernameOrEmail", ctx, input.Username, input.Email).Return(true, nil)

	output, err := fixtures.service.RegisterUser(ctx, input)

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
	fixtures.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_RegisterUser_WeakPassword(t *testing.T) {
	fixtures := createTestUserService(0)
	ctx := context.Background()

	input := &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	}

	fixtures.hasher.On("ValidatePasswordStrength", input.Password).Return(errors.New("too short"))

	output, err := fixtures.service.RegisterUser(ctx, input)

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
	fixtures.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestUserService_Login_Success(t *testing.T) {
	fixtures := createTestUserService(0)
	ctx := context.Background()

	userID := uuid.New()
	user := &entity.User{ID: userID, Username: "alice", Email: "alice@example.com", PasswordHash: "stored_hash"}

	input := &usecase.LoginInput{Username: "alice", Password: "Password123!"}

	fixtures.userRepo.On("FindByLogin", ctx, "alice", "").Return(user, nil)
	fixtures.hasher.On("Check", input.Password, "stored_hash").Return(true)
	fixtures.tokenService.On("GenerateTokens", userID).Return("access", "refresh", nil)
	fixtures.tokenService.On("HashToken", "refresh").Return("refresh_hash")
	fixtures.tokenService.On("GetRefreshTokenDuration").Return(72 * time.Hour)
	fixtures.refreshTokenRepo.On("CreateRefreshToken", ctx, mock.MatchedBy(func(token *entity.RefreshToken) bool {
		return token.UserID == userID && token.TokenHash == "refresh_hash"
	})).Return(nil)

	output, err := fixtures.service.Login(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "access", output.AccessToken)
	assert.Equal(t, "refresh", output.RefreshToken)
	assert.Equal(t, userID, output.User.ID)
	fixtures.refreshTokenRepo.AssertExpectations(t)
}

func TestUserService_Login_UnknownIdentifier(t *testing.T) {
	fixtures := createTestUserService(0)
	ctx := context.Background()

	fixtures.userRepo.On("FindByLogin", ctx, "ghost", "").Return(nil, repository.ErrUserNotFound)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "whatever"})

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	fixtures.tokenService.AssertNotCalled(t, "GenerateTokens", mock.Anything)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fixtures := createTestUserService(0)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Username: "alice", PasswordHash: "stored_hash"}

	fixtures.userRepo.On("FindByLogin", ctx, "alice", "").Return(user, nil)
	fixtures.hasher.On("Check", "wrong", "stored_hash").Return(false)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "wrong"})

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	fixtures.tokenService.AssertNotCalled(t, "GenerateTokens", mock.Anything)
	fixtures.refreshTokenRepo.AssertNotCalled(t, "CreateRefreshToken", mock.Anything, mock.Anything)
}

func TestUserService_Login_SessionLimitExceeded(t *testing.T) {
	fixtures := createTestUserService(1)
	ctx := context.Background()

	userID := uuid.New()
	user := &entity.User{ID: userID, Username: "alice", PasswordHash: "stored_hash"}

	fixtures.userRepo.On("FindByLogin", ctx, "alice", "").Return(user, nil)
	fixtures.hasher.On("Check", "Password123!", "stored_hash").Return(true)
	fixtures.tokenService.On("GenerateTokens", userID).Return("access", "refresh", nil)
	fixtures.refreshTokenRepo.On("CountActiveSessionsByUserID", ctx, userID).Return(1, nil)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "Password123!"})

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionLimitExceeded))
	fixtures.refreshTokenRepo.AssertNotCalled(t, "CreateRefreshToken", mock.Anything, mock.Anything)
}

func TestUserService_RefreshToken_Success(t *testing.T) {
	fixtures := createTestUserService(0)
	ctx := context.Background()

	userID := uuid.New()
	claims := &service.Claims{UserID: userID, Type: service.TokenTypeRefresh}

	fixtures.tokenService.On("ValidateRefreshToken", "refresh").Return(claims, nil)
	fixtures.tokenService.On("HashToken", "refresh").Return("refresh_hash")
	fixtures.refreshTokenRepo.On("FindRefreshTokenByHash", ctx, "refresh_hash").
		Return(&entity.RefreshToken{ID: uuid.New(), UserID: userID}, nil)
	fixtures.userRepo.On("FindByID", ctx, userID).Return(&entity.User{ID: userID}, nil)
	fixtures.tokenService.On("GenerateTokens", userID).Return("new_access", "unused_refresh", nil)

	output, err := fixtures.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "refresh"})

	require.NoError(t, err)
	assert.Equal(t, "new_access", output.AccessToken)
	// The stored refresh token must not be rotated.
	fixtures.refreshTokenRepo.AssertNotCalled(t, "CreateRefreshToken", mock.Anything, mock.Anything)
}

func TestUserService_RefreshToken_RevokedSession(t *testing.T) {
	fixtures := createTestUserService(0)
	ctx := context.Background()

	claims := &service.Claims{UserID: uuid.New(), Type: service.TokenTypeRefresh}

	fixtures.tokenService.On("ValidateRefreshToken", "refresh").Return(claims, nil)
	fixtures.tokenService.On("HashToken", "refresh").Return("refresh_hash")
	fixtures.refreshTokenRepo.On("FindRefreshTokenByHash", ctx, "refresh_hash").
		Return(nil, repository.ErrRefreshTokenNotFound)

	output, err := fixtures.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "refresh"})

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
}

func TestUserService_Logout_Idempotent(t *testing.T) {
	fixtures := createTestUserService(0)
	ctx := context.Background()

	fixtures.tokenService.On("ValidateRefreshToken", "refresh").Return(nil, errors.New("expired"))
	fixtures.tokenService.On("HashToken", "refresh").Return("refresh_hash")
	fixtures.refreshTokenRepo.On("DeleteRefreshTokenByHash", ctx, "refresh_hash").
		Return(repository.ErrRefreshTokenNotFound)

	err := fixtures.service.Logout(ctx, &usecase.LogoutInput{RefreshToken: "refresh"})

	assert.NoError(t, err)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	fixtures := createTestUserService(0)
	ctx := context.Background()

	userID := uuid.New()
	fixtures.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	user, err := fixtures.service.GetUser(ctx, userID)

	assert.Nil(t, user)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
