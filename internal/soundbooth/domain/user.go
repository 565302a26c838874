package domain

import "time"

// User is a person signed in through Yandex. YandexID is the only key an
// external login resolves through; ID is ours and never leaves the service
// in tokens.
type User struct {
	ID           string
	YandexID     string
	FirstName    *string
	LastName     *string
	Email        *string
	IsActive     bool
	IsSupervisor bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileUpdate carries a supervisor's partial edit. Nil fields are left
// untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// Empty reports whether the update changes nothing.
func (p ProfileUpdate) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil
}

// Apply returns u with the non-nil fields of p copied over.
func (p ProfileUpdate) Apply(u User) User {
	if p.FirstName != nil {
		u.FirstName = p.FirstName
	}
	if p.LastName != nil {
		u.LastName = p.LastName
	}
	if p.Email != nil {
		u.Email = p.Email
	}
	return u
}
