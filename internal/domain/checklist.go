package domain

import "time"

// Domain entity: бизнес-объект (истина).
// Не зависит от Gin, Postgres, Redis.
type Checklist struct {
	ID     int64
	Name   string
	Color  Color
	UserID string

	CreatedAt time.Time
	UpdatedAt time.Time

	Items []ChecklistItem
}

// ChecklistItem is a single checkable line inside a checklist.
type ChecklistItem struct {
	ID          int64
	ChecklistID int64
	Text        string
	Completed   bool
	ImageURL    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
