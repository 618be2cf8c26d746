package models

import "gorm.io/gorm"

type Company struct {
	gorm.Model
	CompanyName string `gorm:"column:company_name;unique;not null" json:"companyName"`
	Website     string `gorm:"column:website" json:"website,omitempty"`
	Industry    string `gorm:"column:industry" json:"industry,omitempty"`
	Description string `gorm:"column:description" json:"description,omitempty"`
}

func (Company) TableName() string {
	return "companies"
}
