package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/adilrkl/av-bayi/internal/model"
	"github.com/adilrkl/av-bayi/pkg/database"
	"github.com/adilrkl/av-bayi/pkg/logger"
	"github.com/adilrkl/av-bayi/prometheus"
)

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Image    *string `json:"image"`
	ParentID *uint   `json:"parent_id"`
}

// ListCategories returns root categories with two levels of children
func ListCategories(c echo.Context) error {
	log := logger.FromEcho(c)

	var categories []model.Category
	result := database.GetDB().
		Preload("Children.Children").
		Where("parent_id IS NULL").
		Find(&categories)
	if result.Error != nil {
		log.Error("Failed to list categories", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to retrieve categories"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": categories})
}

// CreateCategory handles creating a new category
func CreateCategory(c echo.Context) error {
	log := logger.FromEcho(c)

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" || req.Slug == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and slug are required"})
	}

	if req.ParentID != nil {
		var parent model.Category
		if err := database.GetDB().First(&parent, *req.ParentID).Error; err != nil {
			log.Warn("Parent category not found", zap.Uint("parent_id", *req.ParentID))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "parent category not found"})
		}
	}

	category := model.Category{
		Name:     req.Name,
		Slug:     req.Slug,
		Image:    req.Image,
		ParentID: req.ParentID,
	}

	if err := database.GetDB().Create(&category).Error; err != nil {
		log.Error("Failed to create category", zap.String("slug", req.Slug), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create category"})
	}

	prometheus.RecordAdminOperation("category", "create")
	log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles updating an existing category
func UpdateCategory(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("category_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var category model.Category
	if err := database.GetDB().First(&category, id).Error; err != nil {
		log.Error("Category not found for update", zap.String("category_id", id), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
	}

	category.Name = req.Name
	category.Slug = req.Slug
	category.Image = req.Image

	if err := database.GetDB().Save(&category).Error; err != nil {
		log.Error("Failed to update category", zap.String("category_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update category"})
	}

	prometheus.RecordAdminOperation("category", "update")
	log.Info("Category updated", zap.String("category_id", id), zap.String("name", category.Name))
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory deletes a category unless products or child categories
// still reference it
func DeleteCategory(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var productCount int64
	database.GetDB().Model(&model.Product{}).Where("category_id = ?", id).Count(&productCount)
	if productCount > 0 {
		log.Warn("Category still referenced by products",
			zap.String("category_id", id),
			zap.Int64("product_count", productCount))
		return c.JSON(http.StatusConflict, echo.Map{"error": "category still has products"})
	}

	var childCount int64
	database.GetDB().Model(&model.Category{}).Where("parent_id = ?", id).Count(&childCount)
	if childCount > 0 {
		log.Warn("Category still has children", zap.String("category_id", id))
		return c.JSON(http.StatusConflict, echo.Map{"error": "category still has subcategories"})
	}

	result := database.GetDB().Delete(&model.Category{}, id)
	if result.Error != nil {
		log.Error("Failed to delete category", zap.String("category_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete category"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
	}

	prometheus.RecordAdminOperation("category", "delete")
	log.Info("Category deleted", zap.String("category_id", id))
	return c.NoContent(http.StatusNoContent)
}
