package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleMentor  UserRole = "MENTOR"
	RoleAdmin   UserRole = "ADMIN"
)

// RegistrationStatus tracks a mentor account through the admin-mediated
// verification flow. Students and admins skip this flow entirely.
type RegistrationStatus string

const (
	StatusRegistered     RegistrationStatus = "REGISTERED"
	StatusWaitingForCode RegistrationStatus = "WAITING_FOR_CODE"
	StatusVerified       RegistrationStatus = "VERIFIED"
)

type User struct {
	gorm.Model
	Email           string `gorm:"column:email;unique;not null" json:"email"`
	PasswordHash    string `gorm:"column:password_hash;not null" json:"-"`
	FullName        string `gorm:"column:full_name;not null" json:"fullName"`
	Role            string `gorm:"column:role;not null" json:"role"`
	DepartmentID    *uint  `gorm:"column:department_id" json:"departmentId,omitempty"`
	RollNumber      string `gorm:"column:roll_number" json:"rollNumber,omitempty"`
	YearOfStudy     *int   `gorm:"column:year_of_study" json:"yearOfStudy,omitempty"`
	GraduationYear  *int   `gorm:"column:graduation_year" json:"graduationYear,omitempty"`
	PhoneNumber     string `gorm:"column:phone_number" json:"phoneNumber,omitempty"`
	LinkedinProfile string `gorm:"column:linkedin_profile" json:"linkedinProfile,omitempty"`

	// For mentors - placement details
	PlacedCompany     string `gorm:"column:placed_company" json:"placedCompany,omitempty"`
	PlacedPosition    string `gorm:"column:placed_position" json:"placedPosition,omitempty"`
	PlacementYear     *int   `gorm:"column:placement_year" json:"placementYear,omitempty"`
	Location          string `gorm:"column:location" json:"location,omitempty"`
	ContactVisibility string `gorm:"column:contact_visibility;default:PUBLIC" json:"contactVisibility,omitempty"`

	IsActive   bool `gorm:"column:is_active;default:true" json:"isActive"`
	IsApproved bool `gorm:"column:is_approved;default:false" json:"isApproved"`
	IsVerified bool `gorm:"column:is_verified;default:false" json:"isVerified"`

	// Admin-mediated mentor verification state. The verification code has no
	// expiry: it stays valid until consumed or replaced by a resend. The
	// approval token is single-use and cleared once the mentor is approved.
	RegistrationStatus string `gorm:"column:registration_status" json:"registrationStatus,omitempty"`
	VerificationCode   string `gorm:"column:verification_code" json:"-"`
	ApprovalToken      string `gorm:"column:approval_token" json:"-"`

	LastLogin *time.Time `gorm:"column:last_login" json:"lastLogin,omitempty"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) IsMentor() bool {
	return u.Role == string(RoleMentor)
}
