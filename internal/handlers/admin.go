package handlers

import (
	"strconv"
	"time"

	"github.com/gctplacement/placetrack-backend/internal/approval"
	"github.com/gctplacement/placetrack-backend/internal/models"
	"github.com/gctplacement/placetrack-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminLogin authenticates an admin account. Same credential checks as the
// regular login but rejects non-admin roles outright.
func AdminLogin(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
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

		if user.Role != string(models.RoleAdmin) {
			c.JSON(403, gin.H{"success": false, "message": "Admin access required"})
			return
		}

		now := time.Now()
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

// GetPendingMentors lists mentor registrations still in the approval flow.
func GetPendingMentors(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var mentors []models.User
		if err := db.Where("role = ? AND is_approved = ?", models.RoleMentor, false).
			Order("created_at desc").Find(&mentors).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch pending mentors"})
			return
		}

		c.JSON(200, gin.H{"success": true, "mentors": mentors, "count": len(mentors)})
	}
}

// SendMentorCode dispatches a verification code from the admin dashboard.
func SendMentorCode(svc *approval.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid mentor ID"})
			return
		}

		user, err := svc.SendCodeByID(uint(id))
		if err != nil {
			c.JSON(approvalErrorStatus(err), gin.H{"success": false, "message": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"message": "Verification code sent to " + user.Email,
		})
	}
}

// ApproveMentor approves a mentor directly from the admin dashboard.
func ApproveMentor(svc *approval.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid mentor ID"})
			return
		}

		user, err := svc.ApproveByID(uint(id))
		if err != nil {
			c.JSON(approvalErrorStatus(err), gin.H{"success": false, "message": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"message": "Mentor approved successfully",
			"user":    user,
		})
	}
}

// RejectMentor removes a pending mentor registration.
func RejectMentor(svc *approval.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid mentor ID"})
			return
		}

		if err := svc.RejectByID(uint(id)); err != nil {
			c.JSON(approvalErrorStatus(err), gin.H{"success": false, "message": err.Error()})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "Mentor rejected and removed"})
	}
}

// GetAllUsers lists every account, optionally filtered by role.
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at desc")
		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", role)
		}

		var users []models.User
		if err := query.Find(&users).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch users"})
			return
		}

		c.JSON(200, gin.H{"success": true, "users": users, "count": len(users)})
	}
}

// GetUser fetches a single account by ID.
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		c.JSON(200, gin.H{"success": true, "user": user})
	}
}

type UpdateUserInput struct {
	FullName        string `json:"fullName"`
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

// UpdateUser edits an account's profile fields from the admin dashboard.
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		applyProfileUpdate(&user, &input)

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update user"})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "User updated successfully", "user": user})
	}
}

// DeleteUser removes an account permanently.
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		if err := db.Unscoped().Delete(&user).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to delete user"})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "User deleted successfully"})
	}
}

// ToggleUserStatus flips an account between active and deactivated.
func ToggleUserStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		user.IsActive = !user.IsActive
		if err := db.Model(&user).Update("is_active", user.IsActive).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update user status"})
			return
		}

		status := "deactivated"
		if user.IsActive {
			status = "activated"
		}
		c.JSON(200, gin.H{"success": true, "message": "User " + status, "user": user})
	}
}

type MentorRecordInput struct {
	FullName        string `json:"fullName" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	PhoneNumber     string `json:"phoneNumber"`
	LinkedinProfile string `json:"linkedinProfile"`
	PlacedCompany   string `json:"placedCompany"`
	PlacedPosition  string `json:"placedPosition"`
	PlacementYear   *int   `json:"placementYear"`
	GraduationYear  *int   `json:"graduationYear"`
	DepartmentID    *uint  `json:"departmentId"`
}

// CreateMentorRecord adds a directory entry by hand, for alumni mentors who
// never register an account.
func CreateMentorRecord(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input MentorRecordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		mentor := models.Mentor{
			FullName:        input.FullName,
			Email:           input.Email,
			PhoneNumber:     input.PhoneNumber,
			LinkedinProfile: input.LinkedinProfile,
			PlacedCompany:   input.PlacedCompany,
			PlacedPosition:  input.PlacedPosition,
			PlacementYear:   input.PlacementYear,
			GraduationYear:  input.GraduationYear,
			DepartmentID:    input.DepartmentID,
			IsActive:        true,
		}

		if err := db.Create(&mentor).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to create mentor record: " + err.Error()})
			return
		}

		c.JSON(201, gin.H{"success": true, "mentor": mentor})
	}
}

// UpdateMentorRecord edits a directory entry.
func UpdateMentorRecord(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var mentor models.Mentor
		if err := db.First(&mentor, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Mentor record not found"})
			return
		}

		var input MentorRecordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		mentor.FullName = input.FullName
		mentor.Email = input.Email
		mentor.PhoneNumber = input.PhoneNumber
		mentor.LinkedinProfile = input.LinkedinProfile
		mentor.PlacedCompany = input.PlacedCompany
		mentor.PlacedPosition = input.PlacedPosition
		mentor.PlacementYear = input.PlacementYear
		mentor.GraduationYear = input.GraduationYear
		mentor.DepartmentID = input.DepartmentID

		if err := db.Save(&mentor).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update mentor record"})
			return
		}

		c.JSON(200, gin.H{"success": true, "mentor": mentor})
	}
}

// DeleteMentorRecord removes a directory entry.
func DeleteMentorRecord(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var mentor models.Mentor
		if err := db.First(&mentor, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Mentor record not found"})
			return
		}

		if err := db.Unscoped().Delete(&mentor).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to delete mentor record"})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "Mentor record deleted"})
	}
}
