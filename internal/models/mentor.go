package models

import "gorm.io/gorm"

// Mentor is the denormalized directory record shown on the public mentors
// page. It is written whenever an approved mentor account is created or
// updated, so listing mentors never touches the users table.
type Mentor struct {
	gorm.Model
	FullName        string `gorm:"column:full_name;not null" json:"fullName"`
	Email           string `gorm:"column:email;unique;not null" json:"email"`
	PhoneNumber     string `gorm:"column:phone_number" json:"phoneNumber,omitempty"`
	LinkedinProfile string `gorm:"column:linkedin_profile" json:"linkedinProfile,omitempty"`
	PlacedCompany   string `gorm:"column:placed_company" json:"placedCompany,omitempty"`
	PlacedPosition  string `gorm:"column:placed_position" json:"placedPosition,omitempty"`
	PlacementYear   *int   `gorm:"column:placement_year" json:"placementYear,omitempty"`
	GraduationYear  *int   `gorm:"column:graduation_year" json:"graduationYear,omitempty"`
	DepartmentID    *uint  `gorm:"column:department_id" json:"departmentId,omitempty"`
	IsActive        bool   `gorm:"column:is_active;default:true" json:"isActive"`
}

func (Mentor) TableName() string {
	return "mentors"
}
