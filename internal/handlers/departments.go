package handlers

import (
	"github.com/gctplacement/placetrack-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetDepartments lists all departments.
func GetDepartments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var departments []models.Department
		if err := db.Order("department_name asc").Find(&departments).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch departments"})
			return
		}

		c.JSON(200, gin.H{"success": true, "departments": departments})
	}
}

// GetDepartment fetches a single department by ID.
func GetDepartment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var department models.Department
		if err := db.First(&department, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Department not found"})
			return
		}

		c.JSON(200, gin.H{"success": true, "department": department})
	}
}

// GetDepartmentGroups returns the static visibility groups.
func GetDepartmentGroups() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true, "groups": models.DepartmentGroups})
	}
}

type DepartmentInput struct {
	DepartmentName string `json:"departmentName" binding:"required"`
	DepartmentCode string `json:"departmentCode" binding:"required"`
	GroupName      string `json:"groupName"`
}

// CreateDepartment adds a department. Admin only.
func CreateDepartment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input DepartmentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		department := models.Department{
			DepartmentName: input.DepartmentName,
			DepartmentCode: input.DepartmentCode,
			GroupName:      input.GroupName,
		}

		if err := db.Create(&department).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to create department: " + err.Error()})
			return
		}

		c.JSON(201, gin.H{"success": true, "department": department})
	}
}

// UpdateDepartment edits a department. Admin only.
func UpdateDepartment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var department models.Department
		if err := db.First(&department, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Department not found"})
			return
		}

		var input DepartmentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		department.DepartmentName = input.DepartmentName
		department.DepartmentCode = input.DepartmentCode
		department.GroupName = input.GroupName

		if err := db.Save(&department).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update department"})
			return
		}

		c.JSON(200, gin.H{"success": true, "department": department})
	}
}

// DeleteDepartment removes a department. Admin only.
func DeleteDepartment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var department models.Department
		if err := db.First(&department, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Department not found"})
			return
		}

		var userCount int64
		db.Model(&models.User{}).Where("department_id = ?", department.ID).Count(&userCount)
		if userCount > 0 {
			c.JSON(409, gin.H{"success": false, "message": "Department has registered users and cannot be deleted"})
			return
		}

		if err := db.Unscoped().Delete(&department).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to delete department"})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "Department deleted"})
	}
}
