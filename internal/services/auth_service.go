package services

import (
	"errors"
	"fmt"
	"log/slog"

	"finsight/internal/dto"
	"finsight/internal/models"
	"finsight/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo        repositories.UserRepositoryInterface
	passwordService PasswordServiceInterface
	tokenService    TokenServiceInterface
	logger          *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		logger:          logger,
	}
}

// Register creates a new user account
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	existingUser, err := s.userRepo.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email))

	return user, nil
}

// Login authenticates a user and returns an access token
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Same error for unknown email and wrong password
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID.String()))

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}
