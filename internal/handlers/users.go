package handlers

import (
	"log"

	"github.com/gctplacement/placetrack-backend/internal/approval"
	"github.com/gctplacement/placetrack-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func applyProfileUpdate(user *models.User, input *UpdateUserInput) {
	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.DepartmentID != nil {
		user.DepartmentID = input.DepartmentID
	}
	if input.RollNumber != "" {
		user.RollNumber = input.RollNumber
	}
	if input.YearOfStudy != nil {
		user.YearOfStudy = input.YearOfStudy
	}
	if input.GraduationYear != nil {
		user.GraduationYear = input.GraduationYear
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber = input.PhoneNumber
	}
	if input.LinkedinProfile != "" {
		user.LinkedinProfile = input.LinkedinProfile
	}
	if input.PlacedCompany != "" {
		user.PlacedCompany = input.PlacedCompany
	}
	if input.PlacedPosition != "" {
		user.PlacedPosition = input.PlacedPosition
	}
	if input.PlacementYear != nil {
		user.PlacementYear = input.PlacementYear
	}
	if input.Location != "" {
		user.Location = input.Location
	}
}

// GetProfile returns the authenticated user's account.
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		c.JSON(200, gin.H{"success": true, "user": user})
	}
}

// UpdateProfile lets the authenticated user edit their own profile.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
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
			c.JSON(500, gin.H{"success": false, "message": "Failed to update profile"})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "Profile updated successfully", "user": user})
	}
}

type ConvertToMentorInput struct {
	PlacedCompany   string `json:"placedCompany" binding:"required"`
	PlacedPosition  string `json:"placedPosition" binding:"required"`
	PlacementYear   *int   `json:"placementYear"`
	Location        string `json:"location"`
	LinkedinProfile string `json:"linkedinProfile"`
}

// ConvertToMentor upgrades a placed student to a mentor account. The student
// was already verified and approved at registration, so no new approval flow
// starts; the account just changes role and gains a directory entry.
func ConvertToMentor(db *gorm.DB, directory approval.DirectorySync) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "User not found"})
			return
		}

		if user.IsMentor() {
			c.JSON(409, gin.H{"success": false, "message": "User is already a mentor"})
			return
		}

		var input ConvertToMentorInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		user.Role = string(models.RoleMentor)
		user.PlacedCompany = input.PlacedCompany
		user.PlacedPosition = input.PlacedPosition
		if input.PlacementYear != nil {
			user.PlacementYear = input.PlacementYear
		}
		if input.Location != "" {
			user.Location = input.Location
		}
		if input.LinkedinProfile != "" {
			user.LinkedinProfile = input.LinkedinProfile
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to convert to mentor"})
			return
		}

		if directory != nil {
			if err := directory.SyncMentor(&user); err != nil {
				log.Printf("Failed to sync mentor %s to directory: %v", user.Email, err)
			}
		}

		c.JSON(200, gin.H{
			"success": true,
			"message": "Congratulations! You are now a mentor.",
			"user":    user,
		})
	}
}
