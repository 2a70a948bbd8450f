package expenses

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fdesdsf/MANPOWER/models"
	"github.com/fdesdsf/MANPOWER/utils"
)

func RegisterExpensesRoutes(r *gin.RouterGroup) {
	r.POST("/expenses", CreateExpense)
	r.GET("/expenses", GetAllExpenses)
	r.GET("/expenses/:id", GetExpenseByID)
	r.PUT("/expenses/:id", UpdateExpense)
	r.DELETE("/expenses/:id", DeleteExpense)
}

func CreateExpense(c *gin.Context) {
	var expense models.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !expense.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expense amount must be a positive value."})
		return
	}

	var group models.Group
	if err := utils.DB.First(&group, "id = ?", expense.GroupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found."})
		return
	}

	now := time.Now()
	expense.ID = uuid.NewString()
	if expense.ExpenseDate.IsZero() {
		expense.ExpenseDate = now
	}
	expense.CreatedOn = now
	expense.ModifiedOn = now

	if err := utils.DB.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record expense."})
		return
	}

	c.JSON(http.StatusCreated, expense)
}

func GetAllExpenses(c *gin.Context) {
	var expenses []models.Expense
	if err := utils.DB.Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses."})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func GetExpenseByID(c *gin.Context) {
	var expense models.Expense
	if err := utils.DB.First(&expense, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found."})
		return
	}
	c.JSON(http.StatusOK, expense)
}

func UpdateExpense(c *gin.Context) {
	var expense models.Expense
	if err := utils.DB.First(&expense, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found."})
		return
	}

	var details models.Expense
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense.Amount = details.Amount
	expense.Category = details.Category
	expense.Description = details.Description
	if !details.ExpenseDate.IsZero() {
		expense.ExpenseDate = details.ExpenseDate
	}
	expense.ModifiedBy = details.ModifiedBy
	expense.ModifiedOn = time.Now()

	if err := utils.DB.Save(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense."})
		return
	}

	c.JSON(http.StatusOK, expense)
}

func DeleteExpense(c *gin.Context) {
	if err := utils.DB.Delete(&models.Expense{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted."})
}
