package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"jinstore/internal/model"
	"jinstore/internal/repository"
	"jinstore/internal/utils"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService provides registration and session services
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, string, error)
	Logout(ctx context.Context, userID int) error
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

// Register creates a new user account and returns it with an access token.
// The plaintext password is hashed before the record ever reaches the store.
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, "", ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	userRole := model.RoleCustomer // Default role

	// Check for initial admin setup via environment variable
	initialAdminEmail := os.Getenv("INITIAL_ADMIN_EMAIL")
	if initialAdminEmail != "" && req.Email == initialAdminEmail {
		userRole = model.RoleAdmin
		log.Printf("INFO: User %s is being registered as ADMIN via INITIAL_ADMIN_EMAIL.", req.Email)
	}

	user := &model.User{
		Username:     req.Username,
		Fullname:     req.Fullname,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         userRole,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	accessToken, err := s.jwtUtil.GenerateAccessToken(user.ID, user.Email, user.Username, user.Role)
	if err != nil {
		log.Printf("ERROR: User %s (ID: %d) created, but failed to generate token: %v", user.Email, user.ID, err)
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, accessToken, nil
}

// Login authenticates a user and returns access and refresh tokens. The
// refresh token is persisted on the user record; it only gates future
// issuance, already-issued access tokens stay valid until expiry.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, "", "", ErrInvalidCredentials // User not found
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", "", ErrInvalidCredentials // Password mismatch
	}

	accessToken, err := s.jwtUtil.GenerateAccessToken(user.ID, user.Email, user.Username, user.Role)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwtUtil.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	user.RefreshToken = &refreshToken

	return user, accessToken, refreshToken, nil
}

// Logout clears the stored refresh token for the user
func (s *authService) Logout(ctx context.Context, userID int) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}
