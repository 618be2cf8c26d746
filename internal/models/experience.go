package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

type ExperienceType string

const (
	ExperienceInterview ExperienceType = "INTERVIEW"
	ExperiencePlacement ExperienceType = "PLACEMENT"
)

// Experience is an interview or placement write-up submitted by a student or
// mentor, scoped to their department for visibility.
type Experience struct {
	gorm.Model
	UserID         uint     `gorm:"column:user_id;not null" json:"userId"`
	AuthorName     string   `gorm:"column:author_name" json:"authorName,omitempty"`
	DepartmentID   *uint    `gorm:"column:department_id" json:"departmentId,omitempty"`
	CompanyName    string   `gorm:"column:company_name;not null" json:"companyName"`
	Position       string   `gorm:"column:position" json:"position,omitempty"`
	ExperienceType string   `gorm:"column:experience_type;default:INTERVIEW" json:"experienceType"`
	Rounds         int      `gorm:"column:rounds" json:"rounds,omitempty"`
	Difficulty     string   `gorm:"column:difficulty" json:"difficulty,omitempty"`
	OfferReceived  bool     `gorm:"column:offer_received;default:false" json:"offerReceived"`
	PackageLPA     *float64 `gorm:"column:package_lpa" json:"packageLpa,omitempty"`
	Year           *int     `gorm:"column:year" json:"year,omitempty"`
	Content        string   `gorm:"column:content;type:text;not null" json:"content"`
	Tips           string   `gorm:"column:tips;type:text" json:"tips,omitempty"`

	// Canonical attachment field. Older clients read resourceFileName; the
	// alias exists only at the JSON boundary, never in the schema.
	AttachmentFileName string `gorm:"column:attachment_file_name" json:"attachmentFileName,omitempty"`
}

func (Experience) TableName() string {
	return "experiences"
}

func (e Experience) MarshalJSON() ([]byte, error) {
	type alias Experience
	return json.Marshal(struct {
		alias
		ResourceFileName string `json:"resourceFileName,omitempty"`
	}{alias(e), e.AttachmentFileName})
}
