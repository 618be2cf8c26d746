package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/gctplacement/placetrack-backend/internal/config"
	"github.com/gctplacement/placetrack-backend/internal/models"
)

const companyName = "GCT Placement Cell"

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #1a5276; margin: 0;">GCT PlaceTrack</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>© 2026 GCT Placement Cell. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`

// Mailer sends every outbound notification over SMTP. Failures are the
// caller's to log; the server stays usable without a configured transport.
type Mailer struct {
	from        string
	password    string
	smtpHost    string
	smtpPort    string
	adminEmail  string
	baseURL     string
	frontendURL string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		from:        cfg.EmailFrom,
		password:    cfg.EmailPassword,
		smtpHost:    cfg.SMTPHost,
		smtpPort:    cfg.SMTPPort,
		adminEmail:  cfg.AdminEmail,
		baseURL:     cfg.BaseURL,
		frontendURL: cfg.FrontendURL,
	}
}

func (m *Mailer) sendEmail(to []string, subject, body string) error {
	if m.from == "" || m.password == "" || m.smtpHost == "" || m.smtpPort == "" {
		return fmt.Errorf("email configuration not set")
	}

	// Headers
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", companyName, m.from)
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"
	headers["X-Mailer"] = "PlaceTrack-Mailer"

	// Build message
	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + body

	// Authentication
	auth := smtp.PlainAuth("", m.from, m.password, m.smtpHost)

	// Send email
	err := smtp.SendMail(m.smtpHost+":"+m.smtpPort, auth, m.from, to, []byte(message))
	if err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Successfully sent email to recipients: %v", to)
	return nil
}

// SendOTPEmail delivers the registration/verification OTP.
func (m *Mailer) SendOTPEmail(to, code string) error {
	subject := "Email Verification OTP - GCT PlaceTrack"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Email Verification</h1>
					<p>Dear Student,</p>
					<p>Your OTP for GCT PlaceTrack is:</p>
					<p style="text-align: center; font-size: 32px; letter-spacing: 8px; font-weight: bold; color: #1a5276;">%s</p>
					<p>This OTP is valid for 10 minutes.</p>
					<p>If you did not request this, please ignore this email.</p>
					<p>Best regards,<br>%s</p>
				</div>`+emailFooter,
		code, companyName)

	return m.sendEmail([]string{to}, subject, body)
}

// SendPasswordResetEmail delivers the password reset OTP.
func (m *Mailer) SendPasswordResetEmail(to, code string) error {
	subject := "Password Reset OTP - GCT PlaceTrack"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Password Reset</h1>
					<p>Hello,</p>
					<p>We received a request to reset your GCT PlaceTrack password. Your OTP is:</p>
					<p style="text-align: center; font-size: 32px; letter-spacing: 8px; font-weight: bold; color: #1a5276;">%s</p>
					<p>This OTP is valid for 10 minutes. If you did not request a reset, you can safely ignore this email.</p>
					<p>Best regards,<br>%s</p>
				</div>`+emailFooter,
		code, companyName)

	return m.sendEmail([]string{to}, subject, body)
}

// SendMentorRegistrationNotification tells the admin a new mentor is waiting
// and embeds the one-click approve/reject/send-code links carrying the
// mentor's single-use approval token.
func (m *Mailer) SendMentorRegistrationNotification(mentor *models.User) error {
	if m.adminEmail == "" {
		return fmt.Errorf("admin notification email not configured")
	}

	approveLink := fmt.Sprintf("%s/api/auth/mentors/approve-via-email?token=%s", m.baseURL, mentor.ApprovalToken)
	rejectLink := fmt.Sprintf("%s/api/auth/mentors/reject-via-email?token=%s", m.baseURL, mentor.ApprovalToken)
	sendCodeLink := fmt.Sprintf("%s/api/auth/admin/send-mentor-code?email=%s&token=%s", m.baseURL, mentor.Email, mentor.ApprovalToken)

	linkedin := mentor.LinkedinProfile
	if linkedin == "" {
		linkedin = "NOT PROVIDED"
	}

	subject := "New Mentor Registration - Approval Required | " + mentor.FullName
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">New Mentor Registration</h1>
					<p>Dear Admin,</p>
					<p>A new mentor has registered on GCT PlaceTrack and is awaiting your approval.</p>
					<table style="width: 100%%; border-collapse: collapse;">
						<tr><td style="padding: 5px; font-weight: bold;">Full Name</td><td style="padding: 5px;">%s</td></tr>
						<tr><td style="padding: 5px; font-weight: bold;">Email</td><td style="padding: 5px;">%s</td></tr>
						<tr><td style="padding: 5px; font-weight: bold;">Company</td><td style="padding: 5px;">%s</td></tr>
						<tr><td style="padding: 5px; font-weight: bold;">Position</td><td style="padding: 5px;">%s</td></tr>
						<tr><td style="padding: 5px; font-weight: bold;">Phone</td><td style="padding: 5px;">%s</td></tr>
						<tr><td style="padding: 5px; font-weight: bold;">LinkedIn</td><td style="padding: 5px;">%s</td></tr>
					</table>
					<p style="color: #c0392b;">LinkedIn profile is mandatory - verify it before approving.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s" style="background-color: #27ae60; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px; margin-right: 10px;">Approve</a>
						<a href="%s" style="background-color: #2980b9; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px; margin-right: 10px;">Send Verification Code</a>
						<a href="%s" style="background-color: #c0392b; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Reject</a>
					</div>
					<p>You can also manage this request from the Admin Dashboard.</p>
					<p>Best regards,<br>GCT PlaceTrack System</p>
				</div>`+emailFooter,
		mentor.FullName, mentor.Email, orNotProvided(mentor.PlacedCompany),
		orNotProvided(mentor.PlacedPosition), orNotProvided(mentor.PhoneNumber),
		linkedin, approveLink, sendCodeLink, rejectLink)

	return m.sendEmail([]string{m.adminEmail}, subject, body)
}

// SendMentorVerificationCode delivers the admin-issued code. The code does
// not expire; it stays valid until the mentor uses it.
func (m *Mailer) SendMentorVerificationCode(to, name, code string) error {
	subject := "Your Mentor Verification Code - GCT PlaceTrack"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Your Verification Code</h1>
					<p>Dear %s,</p>
					<p>The admin has reviewed your mentor registration and sent you a verification code:</p>
					<p style="text-align: center; font-size: 32px; letter-spacing: 8px; font-weight: bold; color: #1a5276;">%s</p>
					<p>Log in to GCT PlaceTrack and enter this 6-digit code when prompted to activate your mentor account.</p>
					<p>Keep this code safe. It does not expire.</p>
					<p>If you did not register, please contact the admin.</p>
					<p>Best regards,<br>%s</p>
				</div>`+emailFooter,
		name, code, companyName)

	return m.sendEmail([]string{to}, subject, body)
}

// SendMentorApprovalNotification congratulates an approved mentor and points
// them at the password-reset flow instead of echoing any credentials.
func (m *Mailer) SendMentorApprovalNotification(to, name string) error {
	subject := "Account Approved - GCT PlaceTrack"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Account Approved</h1>
					<p>Dear %s,</p>
					<p>Congratulations! Your mentor account has been approved by the admin.</p>
					<p>You can now sign in to GCT PlaceTrack with your email and password. If you have forgotten your password, set a new one below.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/login" style="background-color: #27ae60; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px; margin-right: 10px;">Login</a>
						<a href="%s/forgot-password" style="background-color: #2980b9; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Set New Password</a>
					</div>
					<p>You can now access your mentor dashboard, share your placement experiences and help guide junior students.</p>
					<p>Best regards,<br>%s</p>
				</div>`+emailFooter,
		name, m.frontendURL, m.frontendURL, companyName)

	return m.sendEmail([]string{to}, subject, body)
}

// SendMentorRejectionNotification informs a mentor their registration was
// declined. Sent just before the account record is deleted.
func (m *Mailer) SendMentorRejectionNotification(to, name string) error {
	subject := "Mentor Registration Update - GCT PlaceTrack"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Mentor Registration Update</h1>
					<p>Dear %s,</p>
					<p>We regret to inform you that your mentor registration on GCT PlaceTrack has not been approved at this time.</p>
					<p>This could be due to a missing or invalid LinkedIn profile, incomplete information, or placement details we were unable to verify.</p>
					<p>If you believe this was an error, please contact the admin at %s. You may also register again with complete and accurate information.</p>
					<p>Best regards,<br>%s</p>
				</div>`+emailFooter,
		name, m.adminEmail, companyName)

	return m.sendEmail([]string{to}, subject, body)
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}
