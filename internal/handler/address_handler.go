package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mid "github.com/adilrkl/av-bayi/internal/middleware"
	"github.com/adilrkl/av-bayi/internal/model"
	"github.com/adilrkl/av-bayi/pkg/database"
	"github.com/adilrkl/av-bayi/pkg/logger"
)

// AddressRequest defines the structure for address creation
type AddressRequest struct {
	Title       string `json:"title"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	District    string `json:"district"`
	ZipCode     string `json:"zip_code"`
	Phone       string `json:"phone"`
}

// ListAddresses returns the caller's saved addresses
func ListAddresses(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := mid.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}

	var addresses []model.Address
	if err := database.GetDB().Where("user_id = ?", userID).Find(&addresses).Error; err != nil {
		log.Error("Failed to list addresses", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to retrieve addresses"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": addresses})
}

// CreateAddress saves a new address for the caller
func CreateAddress(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := mid.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request"})
	}

	if req.Title == "" || req.AddressLine == "" || req.City == "" || req.District == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "missing required fields"})
	}

	address := model.Address{
		UserID:      userID,
		Title:       req.Title,
		AddressLine: req.AddressLine,
		City:        req.City,
		District:    req.District,
		ZipCode:     req.ZipCode,
		Phone:       req.Phone,
	}

	if err := database.GetDB().Create(&address).Error; err != nil {
		log.Error("Failed to create address", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to create address"})
	}

	log.Info("Address created", zap.Uint("user_id", userID), zap.Uint("address_id", address.ID))
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": address})
}

// DeleteAddress removes an address owned by the caller. Past orders keep
// their address snapshots; this only affects the saved list.
func DeleteAddress(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := mid.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}

	id := c.Param("id")

	var address model.Address
	if err := database.GetDB().First(&address, id).Error; err != nil || address.UserID != userID {
		log.Warn("Address not found or not owned by caller",
			zap.String("address_id", id),
			zap.Uint("user_id", userID))
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "address not found"})
	}

	if err := database.GetDB().Delete(&address).Error; err != nil {
		log.Error("Failed to delete address", zap.String("address_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to delete address"})
	}

	log.Info("Address deleted", zap.String("address_id", id), zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
