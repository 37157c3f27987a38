package models

import "time"

type Internship struct {
	ID          string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string `gorm:"column:title;type:text;not null" json:"title"`
	Company     string `gorm:"column:company;type:text;not null" json:"company"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Location    string `gorm:"column:location;type:text" json:"location"`
	Duration    string `gorm:"column:duration;type:text" json:"duration"`
	Department  string `gorm:"column:department;type:text" json:"department"`

	PostedByID string `gorm:"column:posted_by;type:uuid;index;not null" json:"posted_by"`
	PostedBy   *User  `gorm:"foreignKey:PostedByID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Internship) TableName() string { return "internships" }

// Owner returns the poster projection when the relation was preloaded.
func (i *Internship) Owner() UserRef {
	if i == nil || i.PostedBy == nil {
		return UserRef{}
	}
	ref := i.PostedBy.Ref()
	// poster projection carries name/email only
	ref.Department = ""
	ref.Resume = ""
	return ref
}
