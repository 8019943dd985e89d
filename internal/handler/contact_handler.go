package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/adilrkl/av-bayi/internal/model"
	"github.com/adilrkl/av-bayi/pkg/database"
	"github.com/adilrkl/av-bayi/pkg/logger"
)

// ContactRequest defines the structure for contact form submissions
type ContactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}

// SubmitContact stores a contact form message
func SubmitContact(c echo.Context) error {
	log := logger.FromEcho(c)

	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request"})
	}

	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "name, email and message are required"})
	}

	message := model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := database.GetDB().Create(&message).Error; err != nil {
		log.Error("Failed to store contact message", zap.String("email", req.Email), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to send message"})
	}

	log.Info("Contact message stored", zap.Uint("message_id", message.ID))
	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}

// ListContactMessages returns all contact messages for the admin panel
func ListContactMessages(c echo.Context) error {
	log := logger.FromEcho(c)

	var messages []model.ContactMessage
	if err := database.GetDB().Order("created_at desc").Find(&messages).Error; err != nil {
		log.Error("Failed to list contact messages", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve messages"})
	}

	return c.JSON(http.StatusOK, messages)
}
