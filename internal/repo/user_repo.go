package repo

import (
	"context"

	dom "Pastel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo provides user persistence.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (dom.User, error)
	Upsert(ctx context.Context, u dom.User) (dom.User, error)
	Delete(ctx context.Context, id string) error
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// GetByID returns the user by its provider-issued id.
func (r *PGUserRepo) GetByID(ctx context.Context, id string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx, `
		SELECT id, email, first_name, last_name, profile_image_url, created_at, updated_at
		FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfileImageURL,
		&u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Upsert inserts the user or refreshes its profile fields. Called on every
// identity-provider callback, so the row always mirrors the provider.
func (r *PGUserRepo) Upsert(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			profile_image_url = EXCLUDED.profile_image_url,
			updated_at = NOW()
		RETURNING id, email, first_name, last_name, profile_image_url, created_at, updated_at`
	var out dom.User
	err := r.db.QueryRow(ctx, query,
		u.ID, u.Email, u.FirstName, u.LastName, u.ProfileImageURL,
	).Scan(&out.ID, &out.Email, &out.FirstName, &out.LastName,
		&out.ProfileImageURL, &out.CreatedAt, &out.UpdatedAt)
	return out, err
}

// Delete removes the user; checklists and their items follow via FK cascades,
// all in the statement's own transaction.
func (r *PGUserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
