package contributions

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fdesdsf/MANPOWER/models"
	"github.com/fdesdsf/MANPOWER/utils"
)

func RegisterContributionsRoutes(r *gin.RouterGroup) {
	r.POST("/contributions", CreateContribution)
	r.GET("/contributions", GetAllContributions)
	r.GET("/contributions/summary", GetContributionSummary)
	r.GET("/contributions/member/:memberId", GetContributionsByMember)
	r.GET("/contributions/group/:groupId", GetContributionsByGroup)
	r.GET("/contributions/group/:groupId/total", GetTotalContributionsByGroup)
	r.GET("/contributions/:id", GetContributionByID)
	r.DELETE("/contributions/:id", DeleteContribution)
}

func CreateContribution(c *gin.Context) {
	var contribution models.Contribution
	if err := c.ShouldBindJSON(&contribution); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !contribution.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contribution amount must be a positive value."})
		return
	}

	var member models.Member
	if err := utils.DB.First(&member, "id = ?", contribution.MemberID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found."})
		return
	}
	var group models.Group
	if err := utils.DB.First(&group, "id = ?", contribution.GroupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found."})
		return
	}

	now := time.Now()
	contribution.ID = uuid.NewString()
	if contribution.TransactionType == "" {
		contribution.TransactionType = models.TransactionTypeContribution
	}
	if contribution.Status == "" {
		contribution.Status = models.TransactionStatusCompleted
	}
	if contribution.TransactionDate.IsZero() {
		contribution.TransactionDate = now
	}
	contribution.CreatedOn = now
	contribution.ModifiedOn = now

	if err := utils.DB.Create(&contribution).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record contribution."})
		return
	}

	c.JSON(http.StatusCreated, contribution)
}

func GetAllContributions(c *gin.Context) {
	var contributions []models.Contribution
	if err := utils.DB.Find(&contributions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contributions."})
		return
	}
	c.JSON(http.StatusOK, contributions)
}

func GetContributionByID(c *gin.Context) {
	var contribution models.Contribution
	if err := utils.DB.First(&contribution, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contribution not found."})
		return
	}
	c.JSON(http.StatusOK, contribution)
}

func GetContributionsByMember(c *gin.Context) {
	var contributions []models.Contribution
	if err := utils.DB.Where("member_id = ?", c.Param("memberId")).Find(&contributions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contributions."})
		return
	}
	c.JSON(http.StatusOK, contributions)
}

func GetContributionsByGroup(c *gin.Context) {
	var contributions []models.Contribution
	if err := utils.DB.Where("group_id = ?", c.Param("groupId")).Find(&contributions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contributions."})
		return
	}
	c.JSON(http.StatusOK, contributions)
}

func GetTotalContributionsByGroup(c *gin.Context) {
	total, err := totalForGroup(c.Param("groupId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute total."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"group_id": c.Param("groupId"), "total": total})
}

// GetContributionSummary returns per-type totals, optionally scoped by
// the groupId query parameter.
func GetContributionSummary(c *gin.Context) {
	type row struct {
		TransactionType string
		Total           decimal.Decimal
		Count           int64
	}

	q := utils.DB.Model(&models.Contribution{}).
		Select("transaction_type, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("status = ?", models.TransactionStatusCompleted).
		Group("transaction_type")
	if groupID := c.Query("groupId"); groupID != "" {
		q = q.Where("group_id = ?", groupID)
	}

	var rows []row
	if err := q.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary."})
		return
	}

	grand := decimal.Zero
	byType := gin.H{}
	for _, r := range rows {
		byType[r.TransactionType] = gin.H{"total": r.Total, "count": r.Count}
		grand = grand.Add(r.Total)
	}

	c.JSON(http.StatusOK, gin.H{
		"by_type":     byType,
		"grand_total": grand,
	})
}

func DeleteContribution(c *gin.Context) {
	if err := utils.DB.Delete(&models.Contribution{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contribution."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contribution deleted."})
}

func totalForGroup(groupID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := utils.DB.Model(&models.Contribution{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("group_id = ? AND status = ?", groupID, models.TransactionStatusCompleted).
		Scan(&total).Error
	return total, err
}
