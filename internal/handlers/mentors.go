package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gctplacement/placetrack-backend/internal/approval"
	"github.com/gctplacement/placetrack-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// approvalErrorStatus maps state machine errors to HTTP status codes.
func approvalErrorStatus(err error) int {
	switch {
	case errors.Is(err, approval.ErrNotFound):
		return 404
	case errors.Is(err, approval.ErrInvalidToken),
		errors.Is(err, approval.ErrInvalidCode):
		return 400
	case errors.Is(err, approval.ErrNotAMentor),
		errors.Is(err, approval.ErrNotWaitingForCode),
		errors.Is(err, approval.ErrAlreadyApproved):
		return 409
	default:
		return 500
	}
}

const statusPageTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>GCT PlaceTrack</title>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 40px; }
        .card { max-width: 480px; margin: 40px auto; background: #ffffff; border-radius: 8px; padding: 32px; text-align: center; box-shadow: 0 2px 8px rgba(0,0,0,0.1); }
        h1 { color: %s; font-size: 22px; }
        p { color: #555555; }
    </style>
</head>
<body>
    <div class="card">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>`

// statusPage renders the small confirmation page shown after following an
// action link from the admin notification email.
func statusPage(c *gin.Context, code int, ok bool, title, msg string) {
	color := "#e53935"
	if ok {
		color = "#4CAF50"
	}
	c.Data(code, "text/html; charset=utf-8", []byte(fmt.Sprintf(statusPageTemplate, color, title, msg)))
}

type ResendCodeInput struct {
	Email string `json:"email" binding:"required,email"`
}

// SendMentorVerificationCode lets a mentor who is waiting on a code request
// a fresh one.
func SendMentorVerificationCode(svc *approval.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ResendCodeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		if _, err := svc.ResendCode(input.Email); err != nil {
			c.JSON(approvalErrorStatus(err), gin.H{"success": false, "message": err.Error()})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "Verification code sent to your email"})
	}
}

type VerifyMentorCodeInput struct {
	Email            string `json:"email" binding:"required,email"`
	VerificationCode string `json:"verificationCode" binding:"required"`
}

// VerifyMentorCode completes mentor activation with the code the admin sent.
func VerifyMentorCode(svc *approval.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VerifyMentorCodeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		user, err := svc.VerifyCode(input.Email, input.VerificationCode)
		if err != nil {
			c.JSON(approvalErrorStatus(err), gin.H{"success": false, "message": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"message": "Account verified successfully. You can now log in.",
			"user":    user,
		})
	}
}

// AdminSendMentorCode handles the send-code link from the admin notification
// email. Renders an HTML page since the admin lands here from their mail
// client.
func AdminSendMentorCode(svc *approval.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		token := c.Query("token")

		user, err := svc.AdminSendCode(email, token)
		if err != nil {
			statusPage(c, approvalErrorStatus(err), false, "Could Not Send Code", err.Error())
			return
		}

		statusPage(c, http.StatusOK, true, "Verification Code Sent",
			fmt.Sprintf("A verification code has been emailed to %s (%s).", user.FullName, user.Email))
	}
}

// ApproveMentorViaEmail handles the one-click approval link.
func ApproveMentorViaEmail(svc *approval.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := svc.ApproveByToken(c.Query("token"))
		if err != nil {
			if errors.Is(err, approval.ErrAlreadyApproved) {
				statusPage(c, http.StatusOK, true, "Already Approved", "This mentor account has already been approved.")
				return
			}
			statusPage(c, approvalErrorStatus(err), false, "Approval Failed", err.Error())
			return
		}

		statusPage(c, http.StatusOK, true, "Mentor Approved",
			fmt.Sprintf("%s (%s) can now log in to GCT PlaceTrack.", user.FullName, user.Email))
	}
}

// RejectMentorViaEmail handles the one-click rejection link. The account is
// deleted.
func RejectMentorViaEmail(svc *approval.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.RejectByToken(c.Query("token")); err != nil {
			statusPage(c, approvalErrorStatus(err), false, "Rejection Failed", err.Error())
			return
		}

		statusPage(c, http.StatusOK, true, "Mentor Rejected",
			"The registration has been removed and the applicant notified.")
	}
}

// GetAllMentors lists the public mentor directory.
func GetAllMentors(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var mentors []models.Mentor
		if err := db.Order("full_name asc").Find(&mentors).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch mentors"})
			return
		}

		c.JSON(200, gin.H{"success": true, "mentors": mentors, "count": len(mentors)})
	}
}

// GetMentorsByDepartment filters the directory by department code or name.
func GetMentorsByDepartment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		department := c.Param("department")

		var mentors []models.Mentor
		if err := db.Where("department_id IN (?)",
			db.Model(&models.Department{}).Select("id").
				Where("LOWER(department_code) = LOWER(?) OR LOWER(department_name) = LOWER(?)", department, department)).
			Order("full_name asc").Find(&mentors).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch mentors"})
			return
		}

		c.JSON(200, gin.H{"success": true, "mentors": mentors, "count": len(mentors)})
	}
}

// GetMentorsByCompany filters the directory by placed company.
func GetMentorsByCompany(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := c.Param("company")

		var mentors []models.Mentor
		if err := db.Where("LOWER(placed_company) = LOWER(?)", company).
			Order("full_name asc").Find(&mentors).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch mentors"})
			return
		}

		c.JSON(200, gin.H{"success": true, "mentors": mentors, "count": len(mentors)})
	}
}
