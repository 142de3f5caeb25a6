package domain

import "time"

// User is the domain entity for an account. The ID is the stable opaque
// identifier issued by the external identity provider, never generated here.
type User struct {
	ID              string
	Email           *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
