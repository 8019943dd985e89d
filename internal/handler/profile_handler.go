package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	mid "github.com/adilrkl/av-bayi/internal/middleware"
	"github.com/adilrkl/av-bayi/internal/model"
	"github.com/adilrkl/av-bayi/pkg/database"
	"github.com/adilrkl/av-bayi/pkg/logger"
)

// GetProfile returns the authenticated user's account
func GetProfile(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := mid.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}

	var user model.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		log.Error("User not found", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "user not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}

// UpdateProfile updates name and phone; a password change additionally
// requires the current password.
func UpdateProfile(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := mid.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}

	var req struct {
		Name            string  `json:"name"`
		Phone           *string `json:"phone"`
		Password        string  `json:"password"`
		CurrentPassword string  `json:"currentPassword"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request"})
	}

	var user model.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		log.Error("User not found", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "user not found"})
	}

	user.Name = req.Name
	user.Phone = req.Phone

	if req.Password != "" {
		if req.CurrentPassword == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "current password is required"})
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
			log.Warn("Incorrect current password on profile update", zap.Uint("user_id", userID))
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "incorrect current password"})
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to update profile"})
		}
		user.Password = string(hashed)
	}

	if err := database.GetDB().Save(&user).Error; err != nil {
		log.Error("Failed to update profile", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to update profile"})
	}

	log.Info("Profile updated", zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}
