package handlers

import (
	"github.com/gctplacement/placetrack-backend/internal/models"
	"github.com/gctplacement/placetrack-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetExperiences lists experiences, newest first. Supports filtering by
// department, company and type through query parameters.
func GetExperiences(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at desc")

		if departmentID := c.Query("departmentId"); departmentID != "" {
			query = query.Where("department_id = ?", departmentID)
		}
		if company := c.Query("company"); company != "" {
			query = query.Where("LOWER(company_name) = LOWER(?)", company)
		}
		if expType := c.Query("type"); expType != "" {
			query = query.Where("experience_type = ?", expType)
		}

		var experiences []models.Experience
		if err := query.Find(&experiences).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch experiences"})
			return
		}

		c.JSON(200, gin.H{"success": true, "experiences": experiences, "count": len(experiences)})
	}
}

// GetExperience fetches a single experience by ID.
func GetExperience(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var experience models.Experience
		if err := db.First(&experience, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Experience not found"})
			return
		}

		c.JSON(200, gin.H{"success": true, "experience": experience})
	}
}

type ExperienceInput struct {
	DepartmentID       *uint    `json:"departmentId"`
	CompanyName        string   `json:"companyName" binding:"required"`
	Position           string   `json:"position"`
	ExperienceType     string   `json:"experienceType" binding:"omitempty,oneof=INTERVIEW PLACEMENT"`
	Rounds             int      `json:"rounds"`
	Difficulty         string   `json:"difficulty"`
	OfferReceived      bool     `json:"offerReceived"`
	PackageLPA         *float64 `json:"packageLpa"`
	Year               *int     `json:"year"`
	Content            string   `json:"content" binding:"required"`
	Tips               string   `json:"tips"`
	AttachmentFileName string   `json:"attachmentFileName"`
}

// CreateExperience posts a new experience for the authenticated user.
func CreateExperience(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input ExperienceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		experienceType := input.ExperienceType
		if experienceType == "" {
			experienceType = string(models.ExperienceInterview)
		}

		departmentID := input.DepartmentID
		if departmentID == nil {
			departmentID = user.DepartmentID
		}

		experience := models.Experience{
			UserID:             userID,
			AuthorName:         user.FullName,
			DepartmentID:       departmentID,
			CompanyName:        input.CompanyName,
			Position:           input.Position,
			ExperienceType:     experienceType,
			Rounds:             input.Rounds,
			Difficulty:         input.Difficulty,
			OfferReceived:      input.OfferReceived,
			PackageLPA:         input.PackageLPA,
			Year:               input.Year,
			Content:            input.Content,
			Tips:               input.Tips,
			AttachmentFileName: input.AttachmentFileName,
		}

		if err := db.Create(&experience).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to create experience: " + err.Error()})
			return
		}

		c.JSON(201, gin.H{"success": true, "experience": experience})
	}
}

// UpdateExperience edits an experience. Only the author or an admin may edit.
func UpdateExperience(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := c.GetString("role")

		var experience models.Experience
		if err := db.First(&experience, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Experience not found"})
			return
		}

		if experience.UserID != userID && role != string(models.RoleAdmin) {
			c.JSON(403, gin.H{"success": false, "message": "You can only edit your own experiences"})
			return
		}

		var input ExperienceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		experience.CompanyName = input.CompanyName
		experience.Position = input.Position
		if input.ExperienceType != "" {
			experience.ExperienceType = input.ExperienceType
		}
		if input.DepartmentID != nil {
			experience.DepartmentID = input.DepartmentID
		}
		experience.Rounds = input.Rounds
		experience.Difficulty = input.Difficulty
		experience.OfferReceived = input.OfferReceived
		experience.PackageLPA = input.PackageLPA
		experience.Year = input.Year
		experience.Content = input.Content
		experience.Tips = input.Tips
		if input.AttachmentFileName != "" {
			experience.AttachmentFileName = input.AttachmentFileName
		}

		if err := db.Save(&experience).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update experience"})
			return
		}

		c.JSON(200, gin.H{"success": true, "experience": experience})
	}
}

// DeleteExperience removes an experience and its attachment. Only the author
// or an admin may delete.
func DeleteExperience(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := c.GetString("role")

		var experience models.Experience
		if err := db.First(&experience, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Experience not found"})
			return
		}

		if experience.UserID != userID && role != string(models.RoleAdmin) {
			c.JSON(403, gin.H{"success": false, "message": "You can only delete your own experiences"})
			return
		}

		if experience.AttachmentFileName != "" {
			if err := services.DeleteFile(experience.AttachmentFileName); err != nil {
				c.JSON(500, gin.H{"success": false, "message": "Failed to delete attachment"})
				return
			}
		}

		if err := db.Unscoped().Delete(&experience).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to delete experience"})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "Experience deleted"})
	}
}
