package dto

import "time"

// CreateChecklistRequest is the JSON body for POST /checklists.
// Unknown colors are not rejected: the service falls back to the default.
type CreateChecklistRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Color string `json:"color" binding:"max=50"`
}

// UpdateChecklistRequest is the JSON body for PATCH /checklists/:id.
type UpdateChecklistRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Color string `json:"color" binding:"max=50"`
}

// CreateItemRequest is the JSON body for POST /checklists/:id/items.
type CreateItemRequest struct {
	Text     string  `json:"text" binding:"required,max=500"`
	ImageURL *string `json:"image_url" binding:"omitempty,max=500"`
}

type ItemResponse struct {
	ID          int64     `json:"id"`
	ChecklistID int64     `json:"checklist_id"`
	Text        string    `json:"text"`
	Completed   bool      `json:"completed"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ChecklistResponse struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Color     string         `json:"color"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Items     []ItemResponse `json:"items"`
}

type ListChecklistsResponse struct {
	Items []ChecklistResponse `json:"items"`
}
