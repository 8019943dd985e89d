package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/adilrkl/av-bayi/internal/model"
	"github.com/adilrkl/av-bayi/pkg/database"
	"github.com/adilrkl/av-bayi/pkg/logger"
	"github.com/adilrkl/av-bayi/prometheus"
)

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discount_price"`
	Stock         int      `json:"stock"`
	CategoryID    uint     `json:"category_id"`
	BrandID       *uint    `json:"brand_id"`
	Images        []string `json:"images"`
	YoutubeURL    *string  `json:"youtube_url"`
	Features      *string  `json:"features"`
	IsFeatured    bool     `json:"is_featured"`
}

// ListProducts handles catalog listing with search, category, price range,
// sort and pagination
func ListProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = 12
	}

	db := database.GetDB()
	query := db.Model(&model.Product{})

	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
		log.Info("Filtering products by search", zap.String("search", search))
	}

	if categorySlug := c.QueryParam("category"); categorySlug != "" {
		var category model.Category
		if err := db.Preload("Children.Children").Where("slug = ?", categorySlug).First(&category).Error; err == nil {
			ids := categoryTreeIDs(&category)
			query = query.Where("category_id IN ?", ids)
			log.Info("Filtering products by category",
				zap.String("category", categorySlug),
				zap.Int("category_count", len(ids)))
		} else {
			log.Warn("Unknown category filter", zap.String("category", categorySlug))
		}
	}

	if minPrice := c.QueryParam("minPrice"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("price >= ?", v)
		}
	}
	if maxPrice := c.QueryParam("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("price <= ?", v)
		}
	}

	if c.QueryParam("featured") == "true" {
		query = query.Where("is_featured = ?", true)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("Failed to count products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to retrieve products"})
	}

	switch c.QueryParam("sort") {
	case "price_asc":
		query = query.Order("price asc")
	case "price_desc":
		query = query.Order("price desc")
	default:
		query = query.Order("created_at desc")
	}

	var products []model.Product
	result := query.Preload("Category").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to retrieve products"})
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	log.Info("Products retrieved", zap.Int("count", len(products)), zap.Int64("total", total))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    products,
		"meta": echo.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

// GetProductBySlug returns one product with its category and four related
// products from the same category
func GetProductBySlug(c echo.Context) error {
	log := logger.FromEcho(c)
	slug := c.Param("slug")

	var product model.Product
	result := database.GetDB().Preload("Category").Preload("Brand").Where("slug = ?", slug).First(&product)
	if result.Error != nil {
		log.Warn("Product not found", zap.String("slug", slug))
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "product not found"})
	}

	// Related products are best-effort; a failed lookup degrades to an
	// empty list rather than a 500.
	var related []model.Product
	if err := database.GetDB().
		Where("category_id = ? AND id != ?", product.CategoryID, product.ID).
		Limit(4).
		Find(&related).Error; err != nil {
		log.Error("Failed to load related products", zap.Uint("product_id", product.ID), zap.Error(err))
	}

	prometheus.RecordProductView(slug)
	log.Info("Product retrieved",
		zap.String("slug", slug),
		zap.Uint("product_id", product.ID))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"product":         product,
			"relatedProducts": related,
		},
	})
}

// CreateProduct handles creating a new product
func CreateProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" || req.Slug == "" || req.Price <= 0 || req.CategoryID == 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "name, slug, price and category_id are required"})
	}

	var count int64
	database.GetDB().Model(&model.Product{}).Where("slug = ?", req.Slug).Count(&count)
	if count > 0 {
		log.Warn("Product with this slug already exists", zap.String("slug", req.Slug))
		return c.JSON(http.StatusConflict, echo.Map{"error": "product with this slug already exists"})
	}

	images, err := json.Marshal(req.Images)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid images"})
	}

	product := model.Product{
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Stock:         req.Stock,
		CategoryID:    req.CategoryID,
		BrandID:       req.BrandID,
		Images:        string(images),
		YoutubeURL:    req.YoutubeURL,
		Features:      req.Features,
		IsFeatured:    req.IsFeatured,
	}

	if err := database.GetDB().Create(&product).Error; err != nil {
		log.Error("Failed to create product", zap.String("slug", req.Slug), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create product"})
	}

	prometheus.RecordAdminOperation("product", "create")
	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("slug", product.Slug))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles updating an existing product
func UpdateProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var product model.Product
	if err := database.GetDB().First(&product, id).Error; err != nil {
		log.Error("Product not found for update", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	if req.Slug != product.Slug {
		var count int64
		database.GetDB().Model(&model.Product{}).Where("slug = ? AND id != ?", req.Slug, id).Count(&count)
		if count > 0 {
			log.Warn("Product with this slug already exists", zap.String("slug", req.Slug))
			return c.JSON(http.StatusConflict, echo.Map{"error": "product with this slug already exists"})
		}
	}

	images, err := json.Marshal(req.Images)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid images"})
	}

	oldPrice := product.Price

	product.Name = req.Name
	product.Slug = req.Slug
	product.Description = req.Description
	product.Price = req.Price
	product.DiscountPrice = req.DiscountPrice
	product.Stock = req.Stock
	product.CategoryID = req.CategoryID
	product.BrandID = req.BrandID
	product.Images = string(images)
	product.YoutubeURL = req.YoutubeURL
	product.Features = req.Features
	product.IsFeatured = req.IsFeatured

	if err := database.GetDB().Save(&product).Error; err != nil {
		log.Error("Failed to update product", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update product"})
	}

	prometheus.RecordAdminOperation("product", "update")
	log.Info("Product updated",
		zap.String("product_id", id),
		zap.String("name", product.Name),
		zap.Float64("old_price", oldPrice),
		zap.Float64("new_price", product.Price))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product (soft delete)
func DeleteProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Product{}, id)
	if result.Error != nil {
		log.Error("Failed to delete product", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete product"})
	}
	if result.RowsAffected == 0 {
		log.Warn("Product not found for deletion", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	prometheus.RecordAdminOperation("product", "delete")
	log.Info("Product deleted", zap.String("product_id", id))
	return c.NoContent(http.StatusNoContent)
}

// categoryTreeIDs collects the category's ID plus two levels of children,
// matching how deep the storefront nests categories.
func categoryTreeIDs(category *model.Category) []uint {
	ids := []uint{category.ID}
	for _, child := range category.Children {
		ids = append(ids, child.ID)
		for _, grandchild := range child.Children {
			ids = append(ids, grandchild.ID)
		}
	}
	return ids
}
