package repo

import (
	"context"

	dom "Pastel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChecklistRepo provides checklist and item persistence. Every lookup carries
// the acting user's id in its predicate: a row owned by someone else scans
// exactly like a missing row (pgx.ErrNoRows).
type ChecklistRepo interface {
	List(ctx context.Context, userID string) ([]dom.Checklist, error)
	GetByID(ctx context.Context, userID string, id int64) (dom.Checklist, error)
	Create(ctx context.Context, userID, name string, color dom.Color) (dom.Checklist, error)
	Update(ctx context.Context, userID string, id int64, name string, color *dom.Color) (dom.Checklist, error)
	Delete(ctx context.Context, userID string, id int64) error

	CreateItem(ctx context.Context, userID string, checklistID int64, text string, imageURL *string) (dom.ChecklistItem, error)
	ToggleItem(ctx context.Context, userID string, itemID int64) (dom.ChecklistItem, error)
	DeleteItem(ctx context.Context, userID string, itemID int64) error
}

type PGChecklistRepo struct {
	db *pgxpool.Pool
}

func NewPGChecklistRepo(db *pgxpool.Pool) *PGChecklistRepo {
	return &PGChecklistRepo{db: db}
}

func (r *PGChecklistRepo) List(ctx context.Context, userID string) ([]dom.Checklist, error) {
	query := `
		SELECT id, name, color, user_id, created_at, updated_at
		FROM checklists WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Checklist
	var ids []int64
	for rows.Next() {
		var cl dom.Checklist
		if err := rows.Scan(&cl.ID, &cl.Name, &cl.Color, &cl.UserID,
			&cl.CreatedAt, &cl.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, cl)
		ids = append(ids, cl.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}
	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Items = items[list[i].ID]
	}
	return list, nil
}

func (r *PGChecklistRepo) GetByID(ctx context.Context, userID string, id int64) (dom.Checklist, error) {
	query := `
		SELECT id, name, color, user_id, created_at, updated_at
		FROM checklists WHERE id = $2 AND user_id = $1`
	var cl dom.Checklist
	err := r.db.QueryRow(ctx, query, userID, id).Scan(
		&cl.ID, &cl.Name, &cl.Color, &cl.UserID, &cl.CreatedAt, &cl.UpdatedAt,
	)
	if err != nil {
		return dom.Checklist{}, err
	}
	items, err := r.itemsFor(ctx, []int64{cl.ID})
	if err != nil {
		return dom.Checklist{}, err
	}
	cl.Items = items[cl.ID]
	return cl, nil
}

func (r *PGChecklistRepo) Create(ctx context.Context, userID, name string, color dom.Color) (dom.Checklist, error) {
	query := `
		INSERT INTO checklists (user_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id, name, color, user_id, created_at, updated_at`
	var cl dom.Checklist
	err := r.db.QueryRow(ctx, query, userID, name, color).Scan(
		&cl.ID, &cl.Name, &cl.Color, &cl.UserID, &cl.CreatedAt, &cl.UpdatedAt,
	)
	return cl, err
}

// Update renames a checklist; a nil color keeps the stored one.
func (r *PGChecklistRepo) Update(ctx context.Context, userID string, id int64, name string, color *dom.Color) (dom.Checklist, error) {
	query := `
		UPDATE checklists
		SET name = $3, color = COALESCE($4::text, color), updated_at = NOW()
		WHERE id = $2 AND user_id = $1
		RETURNING id, name, color, user_id, created_at, updated_at`
	var cl dom.Checklist
	err := r.db.QueryRow(ctx, query, userID, id, name, color).Scan(
		&cl.ID, &cl.Name, &cl.Color, &cl.UserID, &cl.CreatedAt, &cl.UpdatedAt,
	)
	return cl, err
}

// Delete removes the checklist; items go with it via the FK cascade in one
// implicit transaction. Returns pgx.ErrNoRows if no owned row matched.
func (r *PGChecklistRepo) Delete(ctx context.Context, userID string, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM checklists WHERE id = $2 AND user_id = $1`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CreateItem inserts only when the target checklist belongs to userID; the
// ownership check is part of the INSERT itself, so a foreign checklist yields
// pgx.ErrNoRows, not a new row.
func (r *PGChecklistRepo) CreateItem(ctx context.Context, userID string, checklistID int64, text string, imageURL *string) (dom.ChecklistItem, error) {
	query := `
		INSERT INTO checklist_items (checklist_id, text, image_url)
		SELECT $2, $3, $4
		WHERE EXISTS (SELECT 1 FROM checklists WHERE id = $2 AND user_id = $1)
		RETURNING id, checklist_id, text, completed, image_url, created_at, updated_at`
	var it dom.ChecklistItem
	err := r.db.QueryRow(ctx, query, userID, checklistID, text, imageURL).Scan(
		&it.ID, &it.ChecklistID, &it.Text, &it.Completed, &it.ImageURL,
		&it.CreatedAt, &it.UpdatedAt,
	)
	return it, err
}

func (r *PGChecklistRepo) ToggleItem(ctx context.Context, userID string, itemID int64) (dom.ChecklistItem, error) {
	query := `
		UPDATE checklist_items i
		SET completed = NOT i.completed, updated_at = NOW()
		FROM checklists c
		WHERE i.id = $2 AND c.id = i.checklist_id AND c.user_id = $1
		RETURNING i.id, i.checklist_id, i.text, i.completed, i.image_url, i.created_at, i.updated_at`
	var it dom.ChecklistItem
	err := r.db.QueryRow(ctx, query, userID, itemID).Scan(
		&it.ID, &it.ChecklistID, &it.Text, &it.Completed, &it.ImageURL,
		&it.CreatedAt, &it.UpdatedAt,
	)
	return it, err
}

func (r *PGChecklistRepo) DeleteItem(ctx context.Context, userID string, itemID int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM checklist_items i
		USING checklists c
		WHERE i.id = $2 AND c.id = i.checklist_id AND c.user_id = $1`, userID, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// itemsFor loads the items of the given checklists, creation order.
func (r *PGChecklistRepo) itemsFor(ctx context.Context, checklistIDs []int64) (map[int64][]dom.ChecklistItem, error) {
	query := `
		SELECT id, checklist_id, text, completed, image_url, created_at, updated_at
		FROM checklist_items WHERE checklist_id = ANY($1)
		ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Query(ctx, query, checklistIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[int64][]dom.ChecklistItem)
	for rows.Next() {
		var it dom.ChecklistItem
		if err := rows.Scan(&it.ID, &it.ChecklistID, &it.Text, &it.Completed,
			&it.ImageURL, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		out[it.ChecklistID] = append(out[it.ChecklistID], it)
	}
	return out, rows.Err()
}
