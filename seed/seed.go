package seed

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fdesdsf/MANPOWER/models"
	"github.com/fdesdsf/MANPOWER/utils"
)

// SeedSuperAdmin creates the bootstrap SuperAdmin account from ADMIN_EMAIL
// and ADMIN_PASSWORD when no SuperAdmin exists yet.
func SeedSuperAdmin() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set. Skipping SuperAdmin seeding.")
		return nil
	}

	var existing models.Member
	err := utils.DB.Where("role = ?", models.RoleSuperAdmin).First(&existing).Error
	if err == nil {
		log.Println("SuperAdmin account already exists. Skipping seeding.")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := models.Member{
		ID:          uuid.NewString(),
		FirstName:   "System",
		LastName:    "Administrator",
		Email:       email,
		PhoneNumber: os.Getenv("ADMIN_PHONE"),
		Password:    string(hashed),
		JoinDate:    now,
		Status:      models.MemberStatusActive,
		Role:        models.RoleSuperAdmin,
		CreatedBy:   "system",
		CreatedOn:   now,
		ModifiedOn:  now,
	}

	if err := utils.DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("SuperAdmin account seeded successfully.")
	return nil
}
