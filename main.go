package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/fdesdsf/MANPOWER/handlers/auth"
	"github.com/fdesdsf/MANPOWER/handlers/contributions"
	"github.com/fdesdsf/MANPOWER/handlers/documents"
	"github.com/fdesdsf/MANPOWER/handlers/expenses"
	"github.com/fdesdsf/MANPOWER/handlers/groups"
	"github.com/fdesdsf/MANPOWER/handlers/loans"
	"github.com/fdesdsf/MANPOWER/handlers/meetings"
	"github.com/fdesdsf/MANPOWER/handlers/members"
	"github.com/fdesdsf/MANPOWER/handlers/notifications"
	"github.com/fdesdsf/MANPOWER/handlers/payments"
	"github.com/fdesdsf/MANPOWER/ledger"
	"github.com/fdesdsf/MANPOWER/migrations"
	"github.com/fdesdsf/MANPOWER/seed"
	"github.com/fdesdsf/MANPOWER/store"
	"github.com/fdesdsf/MANPOWER/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}
}

func main() {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	utils.ConnectDatabase()
	utils.RegisterValidators()

	migrations.MigrateMembersAndGroups()
	migrations.MigrateLedger()
	migrations.MigrateOperations()

	if err := seed.SeedSuperAdmin(); err != nil {
		log.Fatalf("Failed to seed SuperAdmin: %v", err)
	}

	memberDir := store.NewMemberDirectory(utils.DB)
	groupDir := store.NewGroupDirectory(utils.DB)
	loanLedger := ledger.New(memberDir, groupDir, store.NewLoanStore(utils.DB))
	paymentsHandler := payments.NewHandler(
		utils.NewPesapalClient(),
		memberDir,
		groupDir,
		store.NewContributionStore(utils.DB),
	)

	public := r.Group("/api")
	{
		auth.RegisterAuthRoutes(public)
		paymentsHandler.RegisterPaymentCallbackRoutes(public)
	}

	protected := r.Group("/api")
	protected.Use(auth.AuthMiddleware())
	{
		members.RegisterMembersRoutes(protected)
		groups.RegisterGroupsRoutes(protected)
		loans.RegisterLoansRoutes(protected, loanLedger)
		contributions.RegisterContributionsRoutes(protected)
		meetings.RegisterMeetingsRoutes(protected)
		documents.RegisterDocumentsRoutes(protected)
		expenses.RegisterExpensesRoutes(protected)
		notifications.RegisterNotificationsRoutes(protected)
		paymentsHandler.RegisterPaymentsRoutes(protected)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
