package approval

import (
	"errors"
	"log"

	"github.com/gctplacement/placetrack-backend/internal/models"
	"github.com/gctplacement/placetrack-backend/internal/otp"
)

var (
	ErrNotFound          = errors.New("account not found")
	ErrInvalidToken      = errors.New("invalid approval token")
	ErrNotAMentor        = errors.New("user is not a mentor")
	ErrNotWaitingForCode = errors.New("mentor has not been sent a code yet")
	ErrInvalidCode       = errors.New("invalid verification code")
	ErrAlreadyApproved   = errors.New("mentor is already approved")
)

// AccountStore is the persistence surface the state machine needs.
// FindByApprovalToken returns ErrNotFound when no account carries the token.
type AccountStore interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	FindByApprovalToken(token string) (*models.User, error)
	Save(u *models.User) error
	Delete(u *models.User) error
	ExistsByEmail(email string) (bool, error)
}

// Mailer sends the mentor-flow notifications. Failures are logged, never
// propagated: a dead SMTP server must not wedge an approval.
type Mailer interface {
	SendMentorVerificationCode(to, name, code string) error
	SendMentorApprovalNotification(to, name string) error
	SendMentorRejectionNotification(to, name string) error
}

// DirectorySync pushes an approved mentor into the denormalized mentors
// directory used for public listing.
type DirectorySync interface {
	SyncMentor(u *models.User) error
}

// Events feeds the admin dashboard's realtime stream. Optional.
type Events interface {
	MentorVerified(email, name string)
	MentorApproved(email, name string)
	MentorRejected(email, name string)
}

// Service coordinates the admin-mediated mentor verification flow:
// REGISTERED -> WAITING_FOR_CODE -> VERIFIED, plus the direct approval and
// rejection paths. All approval entry points funnel through one internal
// transition so they cannot diverge.
type Service struct {
	accounts  AccountStore
	mailer    Mailer
	directory DirectorySync
	events    Events
}

func NewService(accounts AccountStore, mailer Mailer, directory DirectorySync, events Events) *Service {
	return &Service{
		accounts:  accounts,
		mailer:    mailer,
		directory: directory,
		events:    events,
	}
}

// AdminSendCode dispatches a fresh verification code to a mentor after
// checking the single-use admin approval token from the emailed link.
// The code itself has no expiry; it lives until consumed or replaced.
func (s *Service) AdminSendCode(email, token string) (*models.User, error) {
	u, err := s.accounts.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if !u.IsMentor() {
		return nil, ErrNotAMentor
	}
	if token == "" || u.ApprovalToken != token {
		return nil, ErrInvalidToken
	}
	if err := s.sendCode(u); err != nil {
		return nil, err
	}
	return u, nil
}

// SendCodeByID is the authenticated dashboard variant of AdminSendCode.
// The admin session itself is the authorization, so no token check.
func (s *Service) SendCodeByID(id uint) (*models.User, error) {
	u, err := s.accounts.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !u.IsMentor() {
		return nil, ErrNotAMentor
	}
	if u.IsApproved {
		return nil, ErrAlreadyApproved
	}
	if err := s.sendCode(u); err != nil {
		return nil, err
	}
	return u, nil
}

// ResendCode re-issues a verification code for a mentor who already went
// through AdminSendCode once. No token check: the admin has already acted.
func (s *Service) ResendCode(email string) (*models.User, error) {
	u, err := s.accounts.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if !u.IsMentor() {
		return nil, ErrNotAMentor
	}
	if u.RegistrationStatus != string(models.StatusWaitingForCode) {
		return nil, ErrNotWaitingForCode
	}
	if err := s.sendCode(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) sendCode(u *models.User) error {
	code, err := otp.GenerateCode()
	if err != nil {
		return err
	}
	u.VerificationCode = code
	u.RegistrationStatus = string(models.StatusWaitingForCode)
	if err := s.accounts.Save(u); err != nil {
		return err
	}

	if err := s.mailer.SendMentorVerificationCode(u.Email, u.FullName, code); err != nil {
		log.Printf("Failed to send verification code to %s: %v", u.Email, err)
		log.Printf("DEV MODE - Verification code for %s: %s", u.Email, code)
	}
	return nil
}

// VerifyCode finishes activation when the mentor enters the code the admin
// sent them. Plain string equality, no expiry check.
func (s *Service) VerifyCode(email, code string) (*models.User, error) {
	u, err := s.accounts.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if !u.IsMentor() {
		return nil, ErrNotAMentor
	}
	if u.VerificationCode == "" || u.VerificationCode != code {
		return nil, ErrInvalidCode
	}
	u.IsVerified = true
	approved, err := s.approve(u)
	if err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.MentorVerified(approved.Email, approved.FullName)
	}
	return approved, nil
}

// ApproveByID is the admin dashboard action bypassing the code flow.
func (s *Service) ApproveByID(id uint) (*models.User, error) {
	u, err := s.accounts.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !u.IsMentor() {
		return nil, ErrNotAMentor
	}
	u.IsVerified = true
	return s.approve(u)
}

// ApproveByToken is the emailed one-click link variant of ApproveByID.
func (s *Service) ApproveByToken(token string) (*models.User, error) {
	u, err := s.findByToken(token)
	if err != nil {
		return nil, err
	}
	if !u.IsMentor() {
		return nil, ErrNotAMentor
	}
	if u.IsApproved {
		return nil, ErrAlreadyApproved
	}
	u.IsVerified = true
	return s.approve(u)
}

// approve is the single shared transition every approval path ends in, so
// dashboard and email-link approvals always converge on identical state.
func (s *Service) approve(u *models.User) (*models.User, error) {
	u.IsApproved = true
	u.RegistrationStatus = string(models.StatusVerified)
	u.VerificationCode = ""
	u.ApprovalToken = ""
	if err := s.accounts.Save(u); err != nil {
		return nil, err
	}

	if s.directory != nil {
		if err := s.directory.SyncMentor(u); err != nil {
			log.Printf("Failed to sync mentor %s to directory: %v", u.Email, err)
		}
	}
	if err := s.mailer.SendMentorApprovalNotification(u.Email, u.FullName); err != nil {
		log.Printf("Failed to send approval notification to %s: %v", u.Email, err)
	}
	if s.events != nil {
		s.events.MentorApproved(u.Email, u.FullName)
	}
	return u, nil
}

// RejectByID deletes the mentor account after notifying them.
func (s *Service) RejectByID(id uint) error {
	u, err := s.accounts.FindByID(id)
	if err != nil {
		return err
	}
	return s.reject(u)
}

// RejectByToken is the emailed one-click link variant of RejectByID.
func (s *Service) RejectByToken(token string) error {
	u, err := s.findByToken(token)
	if err != nil {
		return err
	}
	return s.reject(u)
}

func (s *Service) reject(u *models.User) error {
	if !u.IsMentor() {
		return ErrNotAMentor
	}
	if err := s.mailer.SendMentorRejectionNotification(u.Email, u.FullName); err != nil {
		log.Printf("Failed to send rejection notification to %s: %v", u.Email, err)
	}
	if err := s.accounts.Delete(u); err != nil {
		return err
	}
	if s.events != nil {
		s.events.MentorRejected(u.Email, u.FullName)
	}
	return nil
}

func (s *Service) findByToken(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	u, err := s.accounts.FindByApprovalToken(token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}
