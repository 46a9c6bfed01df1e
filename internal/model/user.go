package model

import "time"

// Role identifies the access level of a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleBooker Role = "booker"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleBooker
}

// User represents a back-office user.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;index"`
	FullName     string    `json:"full_name" gorm:"size:255"`
	Mobile       string    `json:"mobile" gorm:"size:20"`
	FirstLogin   bool      `json:"first_login" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
