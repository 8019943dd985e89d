package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/adilrkl/av-bayi/internal/model"
	"github.com/adilrkl/av-bayi/pkg/database"
	"github.com/adilrkl/av-bayi/pkg/logger"
	"github.com/adilrkl/av-bayi/prometheus"
)

// GetSettings returns the site settings singleton, or an empty object when
// none have been saved yet
func GetSettings(c echo.Context) error {
	log := logger.FromEcho(c)

	var settings model.Setting
	result := database.GetDB().First(&settings)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, echo.Map{})
		}
		log.Error("Failed to load settings", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve settings"})
	}

	return c.JSON(http.StatusOK, settings)
}

// UpsertSettings creates the settings row on first save, updates it after
func UpsertSettings(c echo.Context) error {
	log := logger.FromEcho(c)

	var req model.Setting
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var existing model.Setting
	result := database.GetDB().First(&existing)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		log.Error("Failed to load settings", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save settings"})
	}

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		req.ID = 0
		if err := database.GetDB().Create(&req).Error; err != nil {
			log.Error("Failed to create settings", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save settings"})
		}
		prometheus.RecordAdminOperation("settings", "create")
		log.Info("Settings created")
		return c.JSON(http.StatusOK, req)
	}

	req.ID = existing.ID
	req.CreatedAt = existing.CreatedAt
	if err := database.GetDB().Save(&req).Error; err != nil {
		log.Error("Failed to update settings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save settings"})
	}

	prometheus.RecordAdminOperation("settings", "update")
	log.Info("Settings updated")
	return c.JSON(http.StatusOK, req)
}
