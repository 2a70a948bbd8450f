package loans

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fdesdsf/MANPOWER/ledger"
	"github.com/fdesdsf/MANPOWER/models"
	"github.com/fdesdsf/MANPOWER/utils"
)

// Handler exposes the loan ledger over HTTP.
type Handler struct {
	Ledger *ledger.Ledger
}

func RegisterLoansRoutes(r *gin.RouterGroup, l *ledger.Ledger) {
	h := &Handler{Ledger: l}
	r.POST("/loans", h.Create)
	r.GET("/loans", h.GetAll)
	r.GET("/loans/:id", h.GetByID)
	r.PUT("/loans/:id", h.Update)
	r.DELETE("/loans/:id", h.Delete)
	r.POST("/loans/:id/pay", h.Pay)
	r.POST("/loans/:id/approve", h.Approve)
	r.POST("/loans/:id/reject", h.Reject)
}

// statusFor maps ledger sentinels onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrUnauthorized):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("loan operation failed: %v", err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (h *Handler) Create(c *gin.Context) {
	var loan models.Loan
	if err := c.ShouldBindJSON(&loan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid loan payload"})
		return
	}

	// A supplied id is kept; one is generated only when absent.
	saved, err := h.Ledger.SaveLoan(&loan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) GetAll(c *gin.Context) {
	loans, err := h.Ledger.GetAllLoans()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (h *Handler) GetByID(c *gin.Context) {
	loan, err := h.Ledger.GetLoan(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (h *Handler) Update(c *gin.Context) {
	var loan models.Loan
	if err := c.ShouldBindJSON(&loan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid loan payload"})
		return
	}
	loan.ID = c.Param("id")

	saved, err := h.Ledger.SaveLoan(&loan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.Ledger.DeleteLoan(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Loan deleted."})
}

func (h *Handler) Pay(c *gin.Context) {
	var input struct {
		Amount decimal.Decimal `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment amount is required"})
		return
	}

	loan, err := h.Ledger.ProcessPayment(c.Param("id"), input.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (h *Handler) Approve(c *gin.Context) {
	h.decide(c, h.Ledger.ApproveLoan)
}

func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, h.Ledger.RejectLoan)
}

func (h *Handler) decide(c *gin.Context, fn func(loanID, approverID string) (*models.Loan, error)) {
	var input struct {
		ApproverID string `json:"approver_id"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}
	}

	// Fall back to the authenticated member when no approver is supplied.
	if input.ApproverID == "" {
		if m, exists := c.Get("member"); exists {
			input.ApproverID = m.(models.Member).ID
		}
	}
	if input.ApproverID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Approver member id is required"})
		return
	}

	loan, err := fn(c.Param("id"), input.ApproverID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Best-effort borrower notification; the decision itself is committed.
	go notifyBorrower(loan)

	c.JSON(http.StatusOK, loan)
}

func notifyBorrower(loan *models.Loan) {
	if utils.DB == nil {
		return
	}
	var borrower models.Member
	if err := utils.DB.First(&borrower, "id = ?", loan.MemberID).Error; err != nil {
		log.Printf("Failed to load borrower %s for loan decision email: %v", loan.MemberID, err)
		return
	}
	utils.SendLoanDecisionEmail(borrower.Email, borrower.FirstName, loan.Status, loan.Amount.StringFixed(2))
}
