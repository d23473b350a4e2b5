package models

import "time"

// User is a platform account. Staff+superuser together mark an admin;
// either flag alone carries no special privilege.
type User struct {
	ID          string    `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Name        string    `json:"name" db:"name"`
	Phone       string    `json:"phone" db:"phone"`
	IsBlocked   bool      `json:"is_blocked" db:"is_blocked"`
	IsStaff     bool      `json:"is_staff" db:"is_staff"`
	IsSuperuser bool      `json:"is_superuser" db:"is_superuser"`
	DateJoined  time.Time `json:"date_joined" db:"date_joined"`
}

// IsAdmin reports whether the user has full administrative access.
// Both flags are required - staff alone is insufficient.
func (u *User) IsAdmin() bool {
	return u.IsStaff && u.IsSuperuser
}

// UserAccessRecord summarizes one book grant for admin user listings.
type UserAccessRecord struct {
	BookID     string    `json:"book_id"`
	BookTitle  string    `json:"book_title"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// UserDetail is the admin-facing user payload with expanded access records.
type UserDetail struct {
	User
	BookAccessCount int                `json:"book_access_count"`
	BookAccesses    []UserAccessRecord `json:"book_accesses"`
}
