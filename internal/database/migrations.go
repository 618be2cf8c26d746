package database

import (
	"errors"
	"log"

	"github.com/gctplacement/placetrack-backend/internal/config"
	"github.com/gctplacement/placetrack-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB, cfg *config.Config) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Mentor{},
		&models.Department{},
		&models.Company{},
		&models.Experience{},
	)
	if err != nil {
		return err
	}

	if db.Migrator().HasTable(&models.User{}) {
		db.Exec(`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_role_check`)
		db.Exec(`ALTER TABLE users ADD CONSTRAINT users_role_check CHECK (role IN ('STUDENT', 'MENTOR', 'ADMIN'))`)
	}

	if err := seedDepartments(db); err != nil {
		return err
	}
	return seedBootstrapAdmin(db, cfg)
}

func seedDepartments(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Department{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Printf("Seeding %d departments", len(models.SeedDepartments))
	return db.Create(&models.SeedDepartments).Error
}

// seedBootstrapAdmin makes sure at least one admin account exists so the
// dashboard is reachable on a fresh database.
func seedBootstrapAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.BootstrapAdminEmail == "" || cfg.BootstrapAdminPassword == "" {
		return nil
	}

	var existing models.User
	err := db.Where("role = ?", string(models.RoleAdmin)).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:              cfg.BootstrapAdminEmail,
		PasswordHash:       string(hash),
		FullName:           "Placement Cell Admin",
		Role:               string(models.RoleAdmin),
		IsActive:           true,
		IsApproved:         true,
		IsVerified:         true,
		RegistrationStatus: string(models.StatusVerified),
	}
	log.Printf("Creating bootstrap admin account %s", admin.Email)
	return db.Create(&admin).Error
}
