package approval

import (
	"errors"
	"strings"
	"testing"

	"github.com/gctplacement/placetrack-backend/internal/models"
)

type fakeAccounts struct {
	users   map[string]*models.User
	saveErr error
}

func newFakeAccounts(users ...*models.User) *fakeAccounts {
	f := &fakeAccounts{users: make(map[string]*models.User)}
	for _, u := range users {
		f.users[strings.ToLower(u.Email)] = u
	}
	return f
}

func (f *fakeAccounts) FindByEmail(email string) (*models.User, error) {
	u, ok := f.users[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (f *fakeAccounts) FindByID(id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeAccounts) FindByApprovalToken(token string) (*models.User, error) {
	for _, u := range f.users {
		if u.ApprovalToken == token {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeAccounts) Save(u *models.User) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.users[strings.ToLower(u.Email)] = u
	return nil
}

func (f *fakeAccounts) Delete(u *models.User) error {
	delete(f.users, strings.ToLower(u.Email))
	return nil
}

func (f *fakeAccounts) ExistsByEmail(email string) (bool, error) {
	_, ok := f.users[strings.ToLower(email)]
	return ok, nil
}

type fakeMailer struct {
	codes      []string
	approvals  []string
	rejections []string
	sendErr    error
}

func (m *fakeMailer) SendMentorVerificationCode(to, name, code string) error {
	m.codes = append(m.codes, code)
	return m.sendErr
}

func (m *fakeMailer) SendMentorApprovalNotification(to, name string) error {
	m.approvals = append(m.approvals, to)
	return m.sendErr
}

func (m *fakeMailer) SendMentorRejectionNotification(to, name string) error {
	m.rejections = append(m.rejections, to)
	return m.sendErr
}

type fakeDirectory struct {
	synced []string
}

func (d *fakeDirectory) SyncMentor(u *models.User) error {
	d.synced = append(d.synced, u.Email)
	return nil
}

type fakeEvents struct {
	verified []string
	approved []string
	rejected []string
}

func (e *fakeEvents) MentorVerified(email, name string) { e.verified = append(e.verified, email) }
func (e *fakeEvents) MentorApproved(email, name string) { e.approved = append(e.approved, email) }
func (e *fakeEvents) MentorRejected(email, name string) { e.rejected = append(e.rejected, email) }

func newRegisteredMentor() *models.User {
	u := &models.User{
		Email:              "alice@gct.ac.in",
		FullName:           "Alice",
		Role:               string(models.RoleMentor),
		RegistrationStatus: string(models.StatusRegistered),
		ApprovalToken:      "tok-123",
		IsActive:           true,
	}
	u.ID = 1
	return u
}

func newTestService(accounts AccountStore, mailer *fakeMailer) (*Service, *fakeDirectory, *fakeEvents) {
	directory := &fakeDirectory{}
	events := &fakeEvents{}
	return NewService(accounts, mailer, directory, events), directory, events
}

func TestAdminSendCodeRejectsBadToken(t *testing.T) {
	mentor := newRegisteredMentor()
	accounts := newFakeAccounts(mentor)
	mailer := &fakeMailer{}
	svc, _, _ := newTestService(accounts, mailer)

	if _, err := svc.AdminSendCode(mentor.Email, "wrong-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}

	if mentor.RegistrationStatus != string(models.StatusRegistered) {
		t.Errorf("status = %q, want unchanged REGISTERED", mentor.RegistrationStatus)
	}
	if len(mailer.codes) != 0 {
		t.Error("no code should be sent on a bad token")
	}
}

func TestAdminSendCodeRejectsEmptyToken(t *testing.T) {
	mentor := newRegisteredMentor()
	mentor.ApprovalToken = ""
	accounts := newFakeAccounts(mentor)
	svc, _, _ := newTestService(accounts, &fakeMailer{})

	if _, err := svc.AdminSendCode(mentor.Email, ""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken when both tokens are empty", err)
	}
}

func TestAdminSendCodeTransitionsToWaiting(t *testing.T) {
	mentor := newRegisteredMentor()
	accounts := newFakeAccounts(mentor)
	mailer := &fakeMailer{}
	svc, _, _ := newTestService(accounts, mailer)

	u, err := svc.AdminSendCode(mentor.Email, "tok-123")
	if err != nil {
		t.Fatalf("AdminSendCode returned error: %v", err)
	}

	if u.RegistrationStatus != string(models.StatusWaitingForCode) {
		t.Errorf("status = %q, want WAITING_FOR_CODE", u.RegistrationStatus)
	}
	if u.VerificationCode == "" {
		t.Error("a verification code should be set")
	}
	if len(mailer.codes) != 1 || mailer.codes[0] != u.VerificationCode {
		t.Errorf("mailed codes = %v, want the stored code", mailer.codes)
	}
}

func TestAdminSendCodeMailFailureStillTransitions(t *testing.T) {
	mentor := newRegisteredMentor()
	accounts := newFakeAccounts(mentor)
	mailer := &fakeMailer{sendErr: errors.New("smtp down")}
	svc, _, _ := newTestService(accounts, mailer)

	u, err := svc.AdminSendCode(mentor.Email, "tok-123")
	if err != nil {
		t.Fatalf("a dead SMTP server must not fail the transition: %v", err)
	}
	if u.RegistrationStatus != string(models.StatusWaitingForCode) {
		t.Errorf("status = %q, want WAITING_FOR_CODE", u.RegistrationStatus)
	}
}

func TestResendCodeRequiresWaitingStatus(t *testing.T) {
	mentor := newRegisteredMentor()
	accounts := newFakeAccounts(mentor)
	svc, _, _ := newTestService(accounts, &fakeMailer{})

	if _, err := svc.ResendCode(mentor.Email); !errors.Is(err, ErrNotWaitingForCode) {
		t.Fatalf("got %v, want ErrNotWaitingForCode before the admin acted", err)
	}
}

func TestResendCodeReplacesCode(t *testing.T) {
	mentor := newRegisteredMentor()
	accounts := newFakeAccounts(mentor)
	mailer := &fakeMailer{}
	svc, _, _ := newTestService(accounts, mailer)

	if _, err := svc.AdminSendCode(mentor.Email, "tok-123"); err != nil {
		t.Fatalf("AdminSendCode returned error: %v", err)
	}

	if _, err := svc.ResendCode(mentor.Email); err != nil {
		t.Fatalf("ResendCode returned error: %v", err)
	}

	if len(mailer.codes) != 2 {
		t.Fatalf("mailed %d codes, want 2", len(mailer.codes))
	}
	if mentor.VerificationCode == "" {
		t.Error("a fresh code should be stored")
	}
	if mailer.codes[1] != mentor.VerificationCode {
		t.Error("the mailed code should match the stored one")
	}
}

func TestVerifyCodeRejectsWrongCode(t *testing.T) {
	mentor := newRegisteredMentor()
	accounts := newFakeAccounts(mentor)
	svc, _, _ := newTestService(accounts, &fakeMailer{})

	if _, err := svc.AdminSendCode(mentor.Email, "tok-123"); err != nil {
		t.Fatalf("AdminSendCode returned error: %v", err)
	}

	if _, err := svc.VerifyCode(mentor.Email, "000000"); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("got %v, want ErrInvalidCode", err)
	}
	if mentor.IsApproved {
		t.Error("a wrong code must not approve the account")
	}
}

func TestVerifyCodeRejectsWhenNoCodeSet(t *testing.T) {
	mentor := newRegisteredMentor()
	accounts := newFakeAccounts(mentor)
	svc, _, _ := newTestService(accounts, &fakeMailer{})

	if _, err := svc.VerifyCode(mentor.Email, ""); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("got %v, want ErrInvalidCode when no code was ever sent", err)
	}
}

func TestVerifyCodeApproves(t *testing.T) {
	mentor := newRegisteredMentor()
	accounts := newFakeAccounts(mentor)
	mailer := &fakeMailer{}
	svc, directory, events := newTestService(accounts, mailer)

	if _, err := svc.AdminSendCode(mentor.Email, "tok-123"); err != nil {
		t.Fatalf("AdminSendCode returned error: %v", err)
	}

	u, err := svc.VerifyCode(mentor.Email, mentor.VerificationCode)
	if err != nil {
		t.Fatalf("VerifyCode returned error: %v", err)
	}

	if !u.IsApproved || !u.IsVerified {
		t.Error("mentor should be approved and verified")
	}
	if u.RegistrationStatus != string(models.StatusVerified) {
		t.Errorf("status = %q, want VERIFIED", u.RegistrationStatus)
	}
	if u.VerificationCode != "" || u.ApprovalToken != "" {
		t.Error("code and approval token must be cleared on approval")
	}
	if len(directory.synced) != 1 || directory.synced[0] != mentor.Email {
		t.Errorf("directory sync = %v, want the mentor", directory.synced)
	}
	if len(mailer.approvals) != 1 {
		t.Errorf("approval mails = %v, want one", mailer.approvals)
	}
	if len(events.verified) != 1 || len(events.approved) != 1 {
		t.Errorf("events verified=%v approved=%v, want one each", events.verified, events.approved)
	}

	if _, err := svc.VerifyCode(mentor.Email, "123456"); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("got %v, want ErrInvalidCode once the code is cleared", err)
	}
}

func TestApprovalPathsConverge(t *testing.T) {
	finalState := func(u *models.User) [5]interface{} {
		return [5]interface{}{u.IsApproved, u.IsVerified, u.RegistrationStatus, u.VerificationCode, u.ApprovalToken}
	}

	// Path 1: code flow.
	m1 := newRegisteredMentor()
	svc1, _, _ := newTestService(newFakeAccounts(m1), &fakeMailer{})
	if _, err := svc1.AdminSendCode(m1.Email, "tok-123"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc1.VerifyCode(m1.Email, m1.VerificationCode); err != nil {
		t.Fatal(err)
	}

	// Path 2: dashboard approval.
	m2 := newRegisteredMentor()
	svc2, _, _ := newTestService(newFakeAccounts(m2), &fakeMailer{})
	if _, err := svc2.ApproveByID(m2.ID); err != nil {
		t.Fatal(err)
	}

	// Path 3: one-click email link.
	m3 := newRegisteredMentor()
	svc3, _, _ := newTestService(newFakeAccounts(m3), &fakeMailer{})
	if _, err := svc3.ApproveByToken("tok-123"); err != nil {
		t.Fatal(err)
	}

	if finalState(m1) != finalState(m2) || finalState(m2) != finalState(m3) {
		t.Errorf("approval paths diverged:\ncode flow: %v\ndashboard: %v\nemail link: %v",
			finalState(m1), finalState(m2), finalState(m3))
	}
}

func TestApproveByTokenIsSingleUse(t *testing.T) {
	mentor := newRegisteredMentor()
	accounts := newFakeAccounts(mentor)
	svc, _, _ := newTestService(accounts, &fakeMailer{})

	if _, err := svc.ApproveByToken("tok-123"); err != nil {
		t.Fatalf("first approval returned error: %v", err)
	}
	if _, err := svc.ApproveByToken("tok-123"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken after the token was cleared", err)
	}
}

func TestApproveByTokenAlreadyApproved(t *testing.T) {
	mentor := newRegisteredMentor()
	mentor.IsApproved = true
	accounts := newFakeAccounts(mentor)
	svc, _, _ := newTestService(accounts, &fakeMailer{})

	if _, err := svc.ApproveByToken("tok-123"); !errors.Is(err, ErrAlreadyApproved) {
		t.Fatalf("got %v, want ErrAlreadyApproved", err)
	}
}

func TestApproveRejectsNonMentor(t *testing.T) {
	student := newRegisteredMentor()
	student.Role = string(models.RoleStudent)
	accounts := newFakeAccounts(student)
	svc, _, _ := newTestService(accounts, &fakeMailer{})

	if _, err := svc.ApproveByID(student.ID); !errors.Is(err, ErrNotAMentor) {
		t.Fatalf("got %v, want ErrNotAMentor", err)
	}
}

func TestRejectDeletesAccount(t *testing.T) {
	mentor := newRegisteredMentor()
	accounts := newFakeAccounts(mentor)
	mailer := &fakeMailer{}
	svc, _, events := newTestService(accounts, mailer)

	if err := svc.RejectByToken("tok-123"); err != nil {
		t.Fatalf("RejectByToken returned error: %v", err)
	}

	if exists, _ := accounts.ExistsByEmail(mentor.Email); exists {
		t.Error("rejection should delete the account")
	}
	if len(mailer.rejections) != 1 {
		t.Errorf("rejection mails = %v, want one", mailer.rejections)
	}
	if len(events.rejected) != 1 {
		t.Errorf("rejected events = %v, want one", events.rejected)
	}
}

func TestSendCodeByIDRejectsApprovedMentor(t *testing.T) {
	mentor := newRegisteredMentor()
	mentor.IsApproved = true
	accounts := newFakeAccounts(mentor)
	svc, _, _ := newTestService(accounts, &fakeMailer{})

	if _, err := svc.SendCodeByID(mentor.ID); !errors.Is(err, ErrAlreadyApproved) {
		t.Fatalf("got %v, want ErrAlreadyApproved", err)
	}
}

func TestUnknownAccounts(t *testing.T) {
	svc, _, _ := newTestService(newFakeAccounts(), &fakeMailer{})

	if _, err := svc.AdminSendCode("ghost@gct.ac.in", "tok"); !errors.Is(err, ErrNotFound) {
		t.Errorf("AdminSendCode: got %v, want ErrNotFound", err)
	}
	if _, err := svc.VerifyCode("ghost@gct.ac.in", "123456"); !errors.Is(err, ErrNotFound) {
		t.Errorf("VerifyCode: got %v, want ErrNotFound", err)
	}
	if _, err := svc.ApproveByToken("no-such-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ApproveByToken: got %v, want ErrInvalidToken for an unknown token", err)
	}
}
