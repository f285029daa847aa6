package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/kudipay/internal/middleware"
	"github.com/example/kudipay/internal/models"
	"github.com/example/kudipay/internal/utils"
)

// HistoryHandler lists a user's past purchases.
type HistoryHandler struct {
	db *gorm.DB
}

// NewHistoryHandler constructs a HistoryHandler.
func NewHistoryHandler(db *gorm.DB) *HistoryHandler {
	return &HistoryHandler{db: db}
}

// List returns the user's purchase records, newest first, optionally
// filtered by product type.
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	page := utils.ParsePagination(c)

	query := h.db.Where("user_id = ?", userID)
	if productType := c.Query("type"); productType != "" {
		query = query.Where("type = ?", productType)
	}

	var total int64
	if err := query.Model(&models.PurchaseRecord{}).Count(&total).Error; err != nil {
		return err
	}

	var records []models.PurchaseRecord
	if err := query.Order("placed_at desc").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&records).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"records": records,
		"page":    page.Page,
		"limit":   page.Limit,
		"total":   total,
	})
}

// Get returns a single purchase record by ID.
func (h *HistoryHandler) Get(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var record models.PurchaseRecord
	if err := h.db.First(&record, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "record not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"record":  record,
	})
}
