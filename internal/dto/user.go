package dto

// SessionRequest is the JSON body for POST /auth/session, sent by the
// identity provider's callback after it has authenticated the user.
type SessionRequest struct {
	Secret          string  `json:"secret" binding:"required"`
	UserID          string  `json:"user_id" binding:"required"`
	Email           *string `json:"email" binding:"omitempty,email"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// UserResponse is returned when profile info is needed (e.g. GET /me).
type UserResponse struct {
	ID              string  `json:"id"`
	Email           *string `json:"email,omitempty"`
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}
