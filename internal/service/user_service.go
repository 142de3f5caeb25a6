package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dom "Pastel/internal/domain"
	"Pastel/internal/repo"
	"Pastel/internal/utils"

	"github.com/jackc/pgx/v5"
)

var ErrEmailTaken = errors.New("email already in use")

// UserService maintains the local mirror of identity-provider accounts.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Sync upserts the principal delivered by the identity provider. The id is
// trusted verbatim; profile fields overwrite whatever we stored before.
func (s *UserService) Sync(ctx context.Context, u dom.User) (dom.User, error) {
	u.ID = strings.TrimSpace(u.ID)
	if u.ID == "" {
		return dom.User{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	out, err := s.repo.Upsert(ctx, u)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrEmailTaken
		}
		return dom.User{}, err
	}
	return out, nil
}

// Get returns the stored profile for the given user id.
func (s *UserService) Get(ctx context.Context, id string) (dom.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

// Delete removes the account; all checklists and items owned by it cascade
// away in the same transaction.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
