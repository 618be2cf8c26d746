package handlers

import (
	"github.com/gctplacement/placetrack-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetCompanies lists all companies, optionally matching a search term.
func GetCompanies(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("company_name asc")
		if search := c.Query("search"); search != "" {
			query = query.Where("company_name ILIKE ?", "%"+search+"%")
		}

		var companies []models.Company
		if err := query.Find(&companies).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch companies"})
			return
		}

		c.JSON(200, gin.H{"success": true, "companies": companies})
	}
}

// GetCompany fetches a single company by ID.
func GetCompany(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var company models.Company
		if err := db.First(&company, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Company not found"})
			return
		}

		c.JSON(200, gin.H{"success": true, "company": company})
	}
}

type CompanyInput struct {
	CompanyName string `json:"companyName" binding:"required"`
	Website     string `json:"website"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
}

// CreateCompany adds a company. Admin only.
func CreateCompany(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CompanyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		company := models.Company{
			CompanyName: input.CompanyName,
			Website:     input.Website,
			Industry:    input.Industry,
			Description: input.Description,
		}

		if err := db.Create(&company).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to create company: " + err.Error()})
			return
		}

		c.JSON(201, gin.H{"success": true, "company": company})
	}
}

// UpdateCompany edits a company. Admin only.
func UpdateCompany(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var company models.Company
		if err := db.First(&company, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Company not found"})
			return
		}

		var input CompanyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		company.CompanyName = input.CompanyName
		company.Website = input.Website
		company.Industry = input.Industry
		company.Description = input.Description

		if err := db.Save(&company).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update company"})
			return
		}

		c.JSON(200, gin.H{"success": true, "company": company})
	}
}

// DeleteCompany removes a company. Admin only.
func DeleteCompany(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var company models.Company
		if err := db.First(&company, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Company not found"})
			return
		}

		if err := db.Unscoped().Delete(&company).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to delete company"})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "Company deleted"})
	}
}
