package handler

import (
	"errors"
	"net/http"

	"github.com/gosimple/slug"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/adilrkl/av-bayi/internal/model"
	"github.com/adilrkl/av-bayi/pkg/database"
	"github.com/adilrkl/av-bayi/pkg/logger"
	"github.com/adilrkl/av-bayi/prometheus"
)

// BrandRequest defines the structure for brand creation/update requests.
// The slug is generated from the name.
type BrandRequest struct {
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// ListBrands returns all brands ordered by name
func ListBrands(c echo.Context) error {
	log := logger.FromEcho(c)

	var brands []model.Brand
	if err := database.GetDB().Order("name asc").Find(&brands).Error; err != nil {
		log.Error("Failed to list brands", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve brands"})
	}

	return c.JSON(http.StatusOK, brands)
}

// CreateBrand handles creating a new brand
func CreateBrand(c echo.Context) error {
	log := logger.FromEcho(c)

	var req BrandRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	brand := model.Brand{
		Name:  req.Name,
		Slug:  slug.Make(req.Name),
		Image: req.Image,
	}

	if err := database.GetDB().Create(&brand).Error; err != nil {
		log.Error("Failed to create brand", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create brand"})
	}

	prometheus.RecordAdminOperation("brand", "create")
	log.Info("Brand created", zap.Uint("brand_id", brand.ID), zap.String("slug", brand.Slug))
	return c.JSON(http.StatusCreated, brand)
}

// UpdateBrand handles updating an existing brand
func UpdateBrand(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var req BrandRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("brand_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var brand model.Brand
	if err := database.GetDB().First(&brand, id).Error; err != nil {
		log.Error("Brand not found for update", zap.String("brand_id", id), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
	}

	if req.Name != "" && req.Name != brand.Name {
		brand.Name = req.Name
		brand.Slug = slug.Make(req.Name)
	}
	brand.Image = req.Image

	if err := database.GetDB().Save(&brand).Error; err != nil {
		log.Error("Failed to update brand", zap.String("brand_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update brand"})
	}

	prometheus.RecordAdminOperation("brand", "update")
	log.Info("Brand updated", zap.String("brand_id", id), zap.String("name", brand.Name))
	return c.JSON(http.StatusOK, brand)
}

// DeleteBrand deletes a brand; products keep their brand_id nulled out
func DeleteBrand(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).Where("brand_id = ?", id).Update("brand_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Brand{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "brand not found"})
		}
		log.Error("Failed to delete brand", zap.String("brand_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete brand"})
	}

	prometheus.RecordAdminOperation("brand", "delete")
	log.Info("Brand deleted", zap.String("brand_id", id))
	return c.NoContent(http.StatusNoContent)
}
