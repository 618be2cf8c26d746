package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gctplacement/placetrack-backend/internal/models"
	"github.com/gctplacement/placetrack-backend/internal/otp"
	"github.com/gctplacement/placetrack-backend/internal/services"
	"github.com/gctplacement/placetrack-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SendOTPInput struct {
	Email string `json:"email" binding:"required,email"`
}

// SendOTP issues a verification OTP for an institutional email address.
// Delivery failure is logged, never surfaced: the code stays valid and local
// setups without SMTP read it from the server log.
func SendOTP(store otp.Store, limiter otp.Limiter, mailer *utils.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SendOTPInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		if limiter != nil && !limiter.Allow(input.Email) {
			c.JSON(429, gin.H{"success": false, "message": "Too many OTP requests. Please try again later."})
			return
		}

		code, err := store.Issue(input.Email)
		if err != nil {
			if errors.Is(err, otp.ErrInvalidDomain) {
				c.JSON(400, gin.H{
					"success":    false,
					"message":    "Only GCT email addresses are allowed",
					"isGCTEmail": false,
				})
				return
			}
			c.JSON(500, gin.H{"success": false, "message": "Failed to generate OTP. Please try again."})
			return
		}

		if err := mailer.SendOTPEmail(input.Email, code); err != nil {
			log.Printf("Failed to send OTP email to %s: %v", input.Email, err)
			log.Printf("DEV MODE - OTP for %s: %s", input.Email, code)
		}

		c.JSON(200, gin.H{
			"success":    true,
			"message":    "OTP sent to your email!",
			"isGCTEmail": true,
		})
	}
}

type VerifyOTPInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// VerifyOTP consumes the OTP issued by SendOTP.
func VerifyOTP(store otp.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VerifyOTPInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		if !store.Verify(input.Email, input.OTP) {
			c.JSON(400, gin.H{
				"success":  false,
				"message":  "Invalid or expired OTP. Please try again.",
				"verified": false,
			})
			return
		}

		c.JSON(200, gin.H{
			"success":  true,
			"message":  "Email verified successfully",
			"verified": true,
		})
	}
}

// CheckGCTEmail reports whether an address belongs to the institutional domain.
func CheckGCTEmail(domain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		c.JSON(200, gin.H{
			"email":      email,
			"isGCTEmail": otp.ValidDomain(email, domain),
		})
	}
}

type RegisterInput struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	FullName        string `json:"fullName" binding:"required"`
	Role            string `json:"role" binding:"required,oneof=STUDENT MENTOR"`
	DepartmentID    *uint  `json:"departmentId"`
	RollNumber      string `json:"rollNumber"`
	YearOfStudy     *int   `json:"yearOfStudy"`
	GraduationYear  *int   `json:"graduationYear"`
	PhoneNumber     string `json:"phoneNumber"`
	LinkedinProfile string `json:"linkedinProfile"`
	PlacedCompany   string `json:"placedCompany"`
	PlacedPosition  string `json:"placedPosition"`
	PlacementYear   *int   `json:"placementYear"`
	Location        string `json:"location"`
}

// Register creates a student or mentor account. Mentors start unapproved
// with a single-use approval token, and the admin is notified by email and
// over the dashboard event stream.
func Register(db *gorm.DB, mailer *utils.Mailer, hub *services.Hub, domain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		if !otp.ValidDomain(input.Email, domain) {
			c.JSON(400, gin.H{"success": false, "message": fmt.Sprintf("Only GCT email addresses (@%s) are allowed", domain)})
			return
		}

		var count int64
		db.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", input.Email).Count(&count)
		if count > 0 {
			c.JSON(409, gin.H{"success": false, "message": "User with this email already exists"})
			return
		}

		if input.DepartmentID != nil {
			var dept models.Department
			if err := db.First(&dept, *input.DepartmentID).Error; err != nil {
				c.JSON(404, gin.H{"success": false, "message": "Department not found"})
				return
			}
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to hash password"})
			return
		}

		user := models.User{
			Email:           input.Email,
			PasswordHash:    string(hashedPassword),
			FullName:        input.FullName,
			Role:            input.Role,
			DepartmentID:    input.DepartmentID,
			RollNumber:      input.RollNumber,
			YearOfStudy:     input.YearOfStudy,
			GraduationYear:  input.GraduationYear,
			PhoneNumber:     input.PhoneNumber,
			LinkedinProfile: input.LinkedinProfile,
			PlacedCompany:   input.PlacedCompany,
			PlacedPosition:  input.PlacedPosition,
			PlacementYear:   input.PlacementYear,
			Location:        input.Location,
			IsActive:        true,
		}

		if input.Role == string(models.RoleMentor) {
			user.IsApproved = false
			user.RegistrationStatus = string(models.StatusRegistered)
			user.ApprovalToken = uuid.NewString()
		} else {
			user.IsApproved = true
			user.IsVerified = true
			user.RegistrationStatus = string(models.StatusVerified)
		}

		if result := db.Create(&user); result.Error != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to create user: " + result.Error.Error()})
			return
		}

		if user.Role == string(models.RoleMentor) {
			if err := mailer.SendMentorRegistrationNotification(&user); err != nil {
				log.Printf("Failed to send mentor registration notification: %v", err)
			}
			if hub != nil {
				hub.MentorRegistered(user.Email, user.FullName)
			}
		}

		c.JSON(201, gin.H{
			"success": true,
			"message": "Registration successful",
			"user":    user,
		})
	}
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Login(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		var user models.User
		if result := db.Where("LOWER(email) = LOWER(?)", input.Email).First(&user); result.Error != nil {
			c.JSON(401, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			c.JSON(401, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}

		if !user.IsActive {
			c.JSON(403, gin.H{"success": false, "message": "Account is deactivated"})
			return
		}

		if user.IsMentor() && !user.IsApproved {
			c.JSON(403, gin.H{
				"success": false,
				"message": "Your account is pending admin approval. You will receive an email once approved.",
			})
			return
		}

		now := time.Now()
		user.LastLogin = &now
		db.Model(&user).Update("last_login", now)

		token, err := utils.GenerateToken(&user, jwtSecret)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"message": "Login successful",
			"token":   token,
			"user":    user,
		})
	}
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestPasswordReset issues a password reset OTP for an existing account.
// The OTP goes out over email, and over SMS as well when the account has a
// phone number on file.
func RequestPasswordReset(db *gorm.DB, store otp.Store, limiter otp.Limiter, mailer *utils.Mailer, sms *utils.SMSSender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ForgotPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		var user models.User
		if result := db.Where("LOWER(email) = LOWER(?)", input.Email).First(&user); result.Error != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		if limiter != nil && !limiter.Allow(input.Email) {
			c.JSON(429, gin.H{"success": false, "message": "Too many OTP requests. Please try again later."})
			return
		}

		code, err := store.Issue(user.Email)
		if err != nil {
			if errors.Is(err, otp.ErrInvalidDomain) {
				c.JSON(400, gin.H{"success": false, "message": "Only GCT email addresses are allowed"})
				return
			}
			c.JSON(500, gin.H{"success": false, "message": "Failed to generate OTP. Please try again."})
			return
		}

		if err := mailer.SendPasswordResetEmail(user.Email, code); err != nil {
			log.Printf("Failed to send password reset email to %s: %v", user.Email, err)
			log.Printf("DEV MODE - Password reset OTP for %s: %s", user.Email, code)
		}
		if sms != nil && user.PhoneNumber != "" {
			if err := sms.SendPasswordResetSMS(user.PhoneNumber, code); err != nil {
				log.Printf("Failed to send password reset SMS to %s: %v", user.PhoneNumber, err)
			}
		}

		c.JSON(200, gin.H{"success": true, "message": "Password reset OTP sent successfully"})
	}
}

type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// ResetPassword updates the password after consuming a valid reset OTP.
func ResetPassword(db *gorm.DB, store otp.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ResetPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		var user models.User
		if result := db.Where("LOWER(email) = LOWER(?)", input.Email).First(&user); result.Error != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		if !store.Verify(input.Email, input.OTP) {
			c.JSON(400, gin.H{"success": false, "message": "Invalid or expired OTP"})
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to hash password"})
			return
		}

		if err := db.Model(&user).Update("password_hash", string(hashedPassword)).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update password"})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "Password reset successful"})
	}
}
