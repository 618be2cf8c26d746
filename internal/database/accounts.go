package database

import (
	"errors"
	"strings"

	"github.com/gctplacement/placetrack-backend/internal/approval"
	"github.com/gctplacement/placetrack-backend/internal/models"
	"gorm.io/gorm"
)

// AccountStore adapts gorm to the approval service's persistence interface.
type AccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) FindByEmail(email string) (*models.User, error) {
	var u models.User
	err := s.db.Where("LOWER(email) = ?", strings.ToLower(email)).First(&u).Error
	return wrapNotFound(&u, err)
}

func (s *AccountStore) FindByID(id uint) (*models.User, error) {
	var u models.User
	err := s.db.First(&u, id).Error
	return wrapNotFound(&u, err)
}

func (s *AccountStore) FindByApprovalToken(token string) (*models.User, error) {
	var u models.User
	err := s.db.Where("approval_token = ?", token).First(&u).Error
	return wrapNotFound(&u, err)
}

func (s *AccountStore) Save(u *models.User) error {
	return s.db.Save(u).Error
}

func (s *AccountStore) Delete(u *models.User) error {
	return s.db.Unscoped().Delete(u).Error
}

func (s *AccountStore) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

func wrapNotFound(u *models.User, err error) (*models.User, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, approval.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// MentorDirectory writes approved mentors into the denormalized mentors
// table used by the public listing endpoints.
type MentorDirectory struct {
	db *gorm.DB
}

func NewMentorDirectory(db *gorm.DB) *MentorDirectory {
	return &MentorDirectory{db: db}
}

func (d *MentorDirectory) SyncMentor(u *models.User) error {
	var mentor models.Mentor
	err := d.db.Where("email = ?", u.Email).First(&mentor).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	mentor.FullName = u.FullName
	mentor.Email = u.Email
	mentor.PhoneNumber = u.PhoneNumber
	mentor.LinkedinProfile = u.LinkedinProfile
	mentor.PlacedCompany = u.PlacedCompany
	mentor.PlacedPosition = u.PlacedPosition
	mentor.PlacementYear = u.PlacementYear
	mentor.GraduationYear = u.GraduationYear
	mentor.DepartmentID = u.DepartmentID
	mentor.IsActive = true

	return d.db.Save(&mentor).Error
}
