package migrations

import (
	"github.com/fdesdsf/MANPOWER/models"
	"github.com/fdesdsf/MANPOWER/utils"
)

func MigrateMembersAndGroups() {
	utils.DB.AutoMigrate(&models.Group{}, &models.Member{})
}

func MigrateLedger() {
	utils.DB.AutoMigrate(&models.Loan{}, &models.Contribution{}, &models.Expense{})
}

func MigrateOperations() {
	utils.DB.AutoMigrate(
		&models.Meeting{},
		&models.Document{},
		&models.Notification{},
		&models.PasswordReset{},
	)
}
