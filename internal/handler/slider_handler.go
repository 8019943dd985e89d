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

// SliderRequest defines the structure for slider creation/update requests
type SliderRequest struct {
	Title    string  `json:"title"`
	Subtitle *string `json:"subtitle"`
	Image    string  `json:"image"`
	Link     *string `json:"link"`
	Order    int     `json:"order"`
	IsActive bool    `json:"is_active"`
}

// ListActiveSliders returns active hero sliders in display order
func ListActiveSliders(c echo.Context) error {
	log := logger.FromEcho(c)

	var sliders []model.Slider
	result := database.GetDB().
		Where("is_active = ?", true).
		Order("display_order asc").
		Find(&sliders)
	if result.Error != nil {
		log.Error("Failed to list sliders", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to retrieve sliders"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": sliders})
}

// ListSliders returns every slider for the admin panel
func ListSliders(c echo.Context) error {
	log := logger.FromEcho(c)

	var sliders []model.Slider
	if err := database.GetDB().Order("display_order asc").Find(&sliders).Error; err != nil {
		log.Error("Failed to list sliders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve sliders"})
	}

	return c.JSON(http.StatusOK, sliders)
}

// CreateSlider handles creating a new slider
func CreateSlider(c echo.Context) error {
	log := logger.FromEcho(c)

	var req SliderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Title == "" || req.Image == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and image are required"})
	}

	slider := model.Slider{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Image:        req.Image,
		Link:         req.Link,
		DisplayOrder: req.Order,
		IsActive:     req.IsActive,
	}

	if err := database.GetDB().Create(&slider).Error; err != nil {
		log.Error("Failed to create slider", zap.String("title", req.Title), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create slider"})
	}

	prometheus.RecordAdminOperation("slider", "create")
	log.Info("Slider created", zap.Uint("slider_id", slider.ID), zap.String("title", slider.Title))
	return c.JSON(http.StatusCreated, slider)
}

// UpdateSlider handles updating an existing slider
func UpdateSlider(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var req SliderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("slider_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var slider model.Slider
	if err := database.GetDB().First(&slider, id).Error; err != nil {
		log.Error("Slider not found for update", zap.String("slider_id", id), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "slider not found"})
	}

	slider.Title = req.Title
	slider.Subtitle = req.Subtitle
	slider.Image = req.Image
	slider.Link = req.Link
	slider.DisplayOrder = req.Order
	slider.IsActive = req.IsActive

	if err := database.GetDB().Save(&slider).Error; err != nil {
		log.Error("Failed to update slider", zap.String("slider_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update slider"})
	}

	prometheus.RecordAdminOperation("slider", "update")
	log.Info("Slider updated", zap.String("slider_id", id))
	return c.JSON(http.StatusOK, slider)
}

// DeleteSlider handles deleting a slider
func DeleteSlider(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Slider{}, id)
	if result.Error != nil {
		log.Error("Failed to delete slider", zap.String("slider_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete slider"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "slider not found"})
	}

	prometheus.RecordAdminOperation("slider", "delete")
	log.Info("Slider deleted", zap.String("slider_id", id))
	return c.NoContent(http.StatusNoContent)
}
