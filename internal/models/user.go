package models

import "time"

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleFaculty UserRole = "faculty"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name         string   `gorm:"column:name;type:text;not null" json:"name"`
	Email        string   `gorm:"column:email;type:text;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"column:password_hash;type:text;not null" json:"-"`
	Role         UserRole `gorm:"column:role;type:text;not null;default:student" json:"role"`

	// student-only fields
	Department string `gorm:"column:department;type:text" json:"department,omitempty"`
	Resume     string `gorm:"column:resume;type:text" json:"resume,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (User) TableName() string { return "users" }

// UserRef is the projection of a user embedded in listing responses.
type UserRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
	Resume     string `json:"resume,omitempty"`
}

func (u *User) Ref() UserRef {
	if u == nil {
		return UserRef{}
	}
	return UserRef{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Department: u.Department,
		Resume:     u.Resume,
	}
}
