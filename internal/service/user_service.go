package service

import (
	"context"
	"errors"
	"fmt"

	"jinstore/internal/model"
	"jinstore/internal/repository"

	"github.com/jackc/pgx/v5"
)

// UserService defines admin operations on user accounts
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, userID int) error
	ChangeRole(ctx context.Context, userID int, role string) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users from repo: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID int) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user in repo: %w", err)
	}
	return nil
}

// ChangeRole updates a user's role. Takes effect on the user's next request,
// since the auth middleware reads the role from the stored record.
func (s *userService) ChangeRole(ctx context.Context, userID int, role string) (*model.User, error) {
	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update role in repo: %w", err)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user after role change: %w", err)
	}
	if user == nil {
		// Raced with a delete between the update and the refetch
		return nil, ErrUserNotFound
	}
	return user, nil
}
