package models

import "gorm.io/gorm"

type Department struct {
	gorm.Model
	DepartmentName string `gorm:"column:department_name;unique;not null" json:"departmentName"`
	DepartmentCode string `gorm:"column:department_code;unique;not null" json:"departmentCode"`
	GroupName      string `gorm:"column:group_name" json:"groupName,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}

// DepartmentGroups maps each static department group to the department codes
// that share visibility of each other's placement data. Reference data only.
var DepartmentGroups = map[string][]string{
	"CIRCUIT":    {"CSE", "IT", "ECE", "EEE", "EIE"},
	"MECHANICAL": {"MECH", "PROD", "AUTO"},
	"CIVIL":      {"CIVIL", "GEO"},
	"TEXTILE":    {"TEXTILE", "FASHION"},
	"SCIENCE":    {"PHY", "CHEM", "MATHS"},
}

// SeedDepartments holds the departments created on first boot.
var SeedDepartments = []Department{
	{DepartmentName: "Computer Science and Engineering", DepartmentCode: "CSE", GroupName: "CIRCUIT"},
	{DepartmentName: "Information Technology", DepartmentCode: "IT", GroupName: "CIRCUIT"},
	{DepartmentName: "Electronics and Communication Engineering", DepartmentCode: "ECE", GroupName: "CIRCUIT"},
	{DepartmentName: "Electrical and Electronics Engineering", DepartmentCode: "EEE", GroupName: "CIRCUIT"},
	{DepartmentName: "Electronics and Instrumentation Engineering", DepartmentCode: "EIE", GroupName: "CIRCUIT"},
	{DepartmentName: "Mechanical Engineering", DepartmentCode: "MECH", GroupName: "MECHANICAL"},
	{DepartmentName: "Production Engineering", DepartmentCode: "PROD", GroupName: "MECHANICAL"},
	{DepartmentName: "Civil Engineering", DepartmentCode: "CIVIL", GroupName: "CIVIL"},
	{DepartmentName: "Textile Technology", DepartmentCode: "TEXTILE", GroupName: "TEXTILE"},
}
