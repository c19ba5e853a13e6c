package services

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"finsight/internal/config"
	"finsight/internal/dto"
	"finsight/internal/models"
	"finsight/internal/repositories"
	"finsight/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	userRepo        *repository_mocks.MockUserRepositoryInterface
	passwordService PasswordServiceInterface
	tokenService    TokenServiceInterface
	authService     AuthServiceInterface
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.userRepo = repository_mocks.NewMockUserRepositoryInterface(s.ctrl)
	s.passwordService = NewPasswordService()

	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.tokenService = NewTokenService(&config.JWTConfig{
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "test-issuer",
		AccessTokenDuration: time.Hour,
	})

	s.authService = NewAuthService(s.userRepo, s.passwordService, s.tokenService, slog.Default())
}

func (s *AuthServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestRegister_SuccessfulRegistration() {
	req := &dto.RegisterRequest{
		Email:     "new@example.com",
		Password:  "SecurePass123!@#",
		FirstName: "John",
		LastName:  "Doe",
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(nil, repositories.ErrUserNotFound).Times(1)
	s.userRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(user *models.User) error {
		user.ID = uuid.New()
		return nil
	}).Times(1)

	user, err := s.authService.Register(req)

	s.NoError(err)
	s.Require().NotNil(user)
	s.Equal(req.Email, user.Email)
	s.Equal(req.FirstName, user.FirstName)
	s.Equal(req.LastName, user.LastName)
	s.Equal(models.RoleUser, user.Role)
	s.NotEmpty(user.PasswordHash)
	s.NotEqual(req.Password, user.PasswordHash)
}

func (s *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	req := &dto.RegisterRequest{
		Email:     "existing@example.com",
		Password:  "SecurePass123!@#",
		FirstName: "John",
		LastName:  "Doe",
	}

	existing := &models.User{ID: uuid.New(), Email: req.Email}
	s.userRepo.EXPECT().GetByEmail(req.Email).Return(existing, nil).Times(1)

	user, err := s.authService.Register(req)

	s.ErrorIs(err, ErrUserAlreadyExists)
	s.Nil(user)
}

func (s *AuthServiceTestSuite) TestRegister_WeakPasswordRejected() {
	req := &dto.RegisterRequest{
		Email:     "new@example.com",
		Password:  "weak",
		FirstName: "John",
		LastName:  "Doe",
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(nil, repositories.ErrUserNotFound).Times(1)

	user, err := s.authService.Register(req)

	s.Error(err)
	s.Nil(user)
	s.Contains(err.Error(), "failed to hash password")
}

func (s *AuthServiceTestSuite) TestRegister_RepositoryErrorPropagates() {
	req := &dto.RegisterRequest{
		Email:     "new@example.com",
		Password:  "SecurePass123!@#",
		FirstName: "John",
		LastName:  "Doe",
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(nil, errors.New("connection refused")).Times(1)

	user, err := s.authService.Register(req)

	s.Error(err)
	s.Nil(user)
	s.Contains(err.Error(), "failed to check existing user")
}

func (s *AuthServiceTestSuite) TestLogin_Successful() {
	password := "SecurePass123!@#"
	hash, err := s.passwordService.HashPassword(password)
	s.Require().NoError(err)

	user := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: hash,
		Role:         models.RoleUser,
	}

	s.userRepo.EXPECT().GetByEmail(user.Email).Return(user, nil).Times(1)

	tokens, err := s.authService.Login(&dto.LoginRequest{Email: user.Email, Password: password})

	s.NoError(err)
	s.Require().NotNil(tokens)
	s.NotEmpty(tokens.AccessToken)
	s.Equal("Bearer", tokens.TokenType)
	s.True(tokens.ExpiresAt.After(time.Now()))

	// The issued token should round-trip through validation
	claims, err := s.tokenService.ValidateAccessToken(tokens.AccessToken)
	s.NoError(err)
	s.Equal(user.ID.String(), claims.UserID)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	s.userRepo.EXPECT().GetByEmail("nobody@example.com").Return(nil, repositories.ErrUserNotFound).Times(1)

	tokens, err := s.authService.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "SecurePass123!@#"})

	s.ErrorIs(err, ErrInvalidCredentials)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	hash, err := s.passwordService.HashPassword("SecurePass123!@#")
	s.Require().NoError(err)

	user := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: hash,
		Role:         models.RoleUser,
	}

	s.userRepo.EXPECT().GetByEmail(user.Email).Return(user, nil).Times(1)

	tokens, err := s.authService.Login(&dto.LoginRequest{Email: user.Email, Password: "WrongPass456!@#"})

	// Wrong password and unknown email are indistinguishable to the caller
	s.ErrorIs(err, ErrInvalidCredentials)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestLogin_RepositoryErrorPropagates() {
	s.userRepo.EXPECT().GetByEmail("user@example.com").Return(nil, errors.New("connection refused")).Times(1)

	tokens, err := s.authService.Login(&dto.LoginRequest{Email: "user@example.com", Password: "SecurePass123!@#"})

	s.Error(err)
	s.Nil(tokens)
	s.NotErrorIs(err, ErrInvalidCredentials)
}
