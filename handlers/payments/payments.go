package payments

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fdesdsf/MANPOWER/ledger"
	"github.com/fdesdsf/MANPOWER/models"
	"github.com/fdesdsf/MANPOWER/utils"
)

// ContributionStore persists gateway-initiated contributions.
type ContributionStore interface {
	Create(contribution *models.Contribution) error
	FindByTrackingID(trackingID string) (*models.Contribution, error)
	Save(contribution *models.Contribution) error
}

// Handler carries the PesaPal client and stores so tests can point it at a
// fake gateway and in-memory data.
type Handler struct {
	Pesapal       *utils.PesapalClient
	Members       ledger.MemberDirectory
	Groups        ledger.GroupDirectory
	Contributions ContributionStore
}

func NewHandler(client *utils.PesapalClient, members ledger.MemberDirectory, groups ledger.GroupDirectory, contributions ContributionStore) *Handler {
	return &Handler{
		Pesapal:       client,
		Members:       members,
		Groups:        groups,
		Contributions: contributions,
	}
}

func (h *Handler) RegisterPaymentsRoutes(r *gin.RouterGroup) {
	r.POST("/payments/initiate", h.InitiatePayment)
}

// RegisterPaymentCallbackRoutes registers the status check PesaPal redirects
// back to. It lives outside the authenticated group.
func (h *Handler) RegisterPaymentCallbackRoutes(r *gin.RouterGroup) {
	r.GET("/payments/status/:orderTrackingId", h.PaymentStatus)
}

type initiatePaymentInput struct {
	MemberID        string          `json:"member_id" binding:"required"`
	GroupID         string          `json:"group_id" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PhoneNumber     string          `json:"phone_number" binding:"omitempty,kenyanphone"`
	Description     string          `json:"description"`
	TransactionType string          `json:"transaction_type"`
}

// InitiatePayment submits an order to PesaPal and records a pending
// contribution keyed by the returned tracking id.
func (h *Handler) InitiatePayment(c *gin.Context) {
	var input initiatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !input.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment amount must be a positive value."})
		return
	}

	member, err := h.Members.FindByID(input.MemberID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found."})
		return
	}

	group, err := h.Groups.FindByID(input.GroupID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found."})
		return
	}

	phone := input.PhoneNumber
	if phone == "" {
		phone = member.PhoneNumber
	}
	description := input.Description
	if description == "" {
		description = "Contribution to " + group.GroupName
	}
	transactionType := input.TransactionType
	if transactionType == "" {
		transactionType = models.TransactionTypeContribution
	}

	merchantRef := uuid.NewString()
	order, err := h.Pesapal.SubmitOrder(utils.PesapalOrder{
		ID:          merchantRef,
		Amount:      input.Amount.StringFixed(2),
		Description: description,
		BillingAddress: utils.PesapalBillingAddress{
			EmailAddress: member.Email,
			PhoneNumber:  phone,
			FirstName:    member.FirstName,
			LastName:     member.LastName,
		},
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to initiate payment: " + err.Error()})
		return
	}

	now := time.Now()
	contribution := models.Contribution{
		ID:                merchantRef,
		MemberID:          member.ID,
		GroupID:           group.ID,
		TransactionType:   transactionType,
		Amount:            input.Amount,
		TransactionDate:   now,
		PaymentMethod:     "PESAPAL",
		Status:            models.TransactionStatusPending,
		Description:       description,
		PesapalTrackingID: order.OrderTrackingID,
		CreatedBy:         member.ID,
		CreatedOn:         now,
		ModifiedOn:        now,
		TenantID:          group.TenantID,
	}
	if err := h.Contributions.Create(&contribution); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record pending contribution."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"redirect_url":      order.RedirectURL,
		"order_tracking_id": order.OrderTrackingID,
		"contribution_id":   contribution.ID,
	})
}

// PaymentStatus re-checks an order with PesaPal and reconciles the pending
// contribution it created.
func (h *Handler) PaymentStatus(c *gin.Context) {
	orderTrackingID := c.Param("orderTrackingId")

	status := h.Pesapal.TransactionStatus(orderTrackingID)

	contribution, err := h.Contributions.FindByTrackingID(orderTrackingID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No contribution found for this payment."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up contribution."})
		return
	}

	newStatus := contribution.Status
	switch status {
	case "COMPLETED":
		newStatus = models.TransactionStatusCompleted
	case "FAILED", "INVALID":
		newStatus = models.TransactionStatusFailed
	case "CANCELLED", "REVERSED":
		newStatus = models.TransactionStatusCancelled
	}

	if newStatus != contribution.Status {
		contribution.Status = newStatus
		contribution.ModifiedOn = time.Now()
		if err := h.Contributions.Save(contribution); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contribution status."})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_tracking_id": orderTrackingID,
		"gateway_status":    status,
		"contribution":      contribution,
	})
}
