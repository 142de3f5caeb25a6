package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"Pastel/internal/cache"
	dom "Pastel/internal/domain"
	"Pastel/internal/repo"
	"Pastel/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	// ErrIntegrity marks a store-level constraint failure. It should not
	// happen while this service is the only write path; it is not a
	// user-correctable condition.
	ErrIntegrity = errors.New("integrity violation")
)

const (
	maxNameLen = 200
	maxTextLen = 500
)

// ChecklistService is the sole gateway for observing or mutating checklists
// and their items. Every call takes the acting user's id explicitly; nothing
// below this layer reads ambient request state.
type ChecklistService struct {
	repo  repo.ChecklistRepo
	cache *cache.ChecklistCache
	sf    singleflight.Group
}

// NewChecklistService creates a ChecklistService. If c is nil, caching is disabled.
func NewChecklistService(r repo.ChecklistRepo, c *cache.ChecklistCache) *ChecklistService {
	return &ChecklistService{repo: r, cache: c}
}

// List returns the user's checklists with nested items, newest first.
// An empty result is not an error.
func (s *ChecklistService) List(ctx context.Context, userID string) ([]dom.Checklist, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("list:"+userID, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Checklist), nil
	}
	return s.repo.List(ctx, userID)
}

// Get returns one checklist with its items, if the user owns it.
func (s *ChecklistService) Get(ctx context.Context, userID string, id int64) (dom.Checklist, error) {
	cl, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return dom.Checklist{}, mapStoreErr(err)
	}
	return cl, nil
}

// Create makes a new checklist owned by userID. An out-of-palette color is
// silently replaced with the default, matching the lax form semantics; an
// empty name is rejected.
func (s *ChecklistService) Create(ctx context.Context, userID, name string, color dom.Color) (dom.Checklist, error) {
	name = strings.TrimSpace(name)
	if err := validName(name); err != nil {
		return dom.Checklist{}, err
	}
	cl, err := s.repo.Create(ctx, userID, name, dom.NormalizeColor(color))
	if err != nil {
		return dom.Checklist{}, mapStoreErr(err)
	}
	s.invalidateCache(ctx, userID)
	return cl, nil
}

// Rename updates a checklist's name and, optionally, its color. An invalid
// color keeps the stored one rather than failing the rename; an empty name
// rejects the whole update with nothing changed.
func (s *ChecklistService) Rename(ctx context.Context, userID string, id int64, name string, color dom.Color) (dom.Checklist, error) {
	name = strings.TrimSpace(name)
	if err := validName(name); err != nil {
		return dom.Checklist{}, err
	}
	var colorPtr *dom.Color
	if dom.ValidColor(color) {
		colorPtr = &color
	}
	cl, err := s.repo.Update(ctx, userID, id, name, colorPtr)
	if err != nil {
		return dom.Checklist{}, mapStoreErr(err)
	}
	s.invalidateCache(ctx, userID)
	return cl, nil
}

// Delete removes the checklist and, by cascade, all its items.
func (s *ChecklistService) Delete(ctx context.Context, userID string, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return mapStoreErr(err)
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// AddItem appends an unchecked item to a checklist the user owns.
func (s *ChecklistService) AddItem(ctx context.Context, userID string, checklistID int64, text string, imageURL *string) (dom.ChecklistItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return dom.ChecklistItem{}, fmt.Errorf("%w: text is required", ErrValidation)
	}
	if utf8.RuneCountInString(text) > maxTextLen {
		return dom.ChecklistItem{}, fmt.Errorf("%w: text exceeds %d characters", ErrValidation, maxTextLen)
	}
	it, err := s.repo.CreateItem(ctx, userID, checklistID, text, imageURL)
	if err != nil {
		return dom.ChecklistItem{}, mapStoreErr(err)
	}
	s.invalidateCache(ctx, userID)
	return it, nil
}

// ToggleItem flips an item's completed flag. Toggling twice restores the
// original state; there is no failure mode beyond not-found.
func (s *ChecklistService) ToggleItem(ctx context.Context, userID string, itemID int64) (dom.ChecklistItem, error) {
	it, err := s.repo.ToggleItem(ctx, userID, itemID)
	if err != nil {
		return dom.ChecklistItem{}, mapStoreErr(err)
	}
	s.invalidateCache(ctx, userID)
	return it, nil
}

// DeleteItem removes a single item.
func (s *ChecklistService) DeleteItem(ctx context.Context, userID string, itemID int64) error {
	if err := s.repo.DeleteItem(ctx, userID, itemID); err != nil {
		return mapStoreErr(err)
	}
	s.invalidateCache(ctx, userID)
	return nil
}

func (s *ChecklistService) invalidateCache(ctx context.Context, userID string) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, userID)
	}
}

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	// Limits are in characters, not bytes; validator max= on the DTO counts
	// runes the same way.
	if utf8.RuneCountInString(name) > maxNameLen {
		return fmt.Errorf("%w: name exceeds %d characters", ErrValidation, maxNameLen)
	}
	return nil
}

// mapStoreErr translates store errors into the service taxonomy. A row that
// exists but belongs to someone else never reaches this point as anything
// other than ErrNoRows, so not-found and not-owned stay indistinguishable.
func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case utils.IsPGForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", ErrIntegrity, err)
	default:
		return err
	}
}
