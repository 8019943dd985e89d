package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mid "github.com/adilrkl/av-bayi/internal/middleware"
	"github.com/adilrkl/av-bayi/internal/model"
	"github.com/adilrkl/av-bayi/pkg/database"
	"github.com/adilrkl/av-bayi/pkg/logger"
	"github.com/adilrkl/av-bayi/prometheus"
)

// BlogPostRequest defines the structure for blog post creation/update requests
type BlogPostRequest struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Content     string  `json:"content"`
	Excerpt     *string `json:"excerpt"`
	Thumbnail   *string `json:"thumbnail"`
	PublishedAt *string `json:"published_at"`
}

// ListPublishedPosts returns published posts for the storefront blog
func ListPublishedPosts(c echo.Context) error {
	log := logger.FromEcho(c)

	var posts []model.BlogPost
	result := database.GetDB().
		Where("published_at IS NOT NULL AND published_at <= ?", time.Now()).
		Order("published_at desc").
		Find(&posts)
	if result.Error != nil {
		log.Error("Failed to list blog posts", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to retrieve posts"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": posts})
}

// GetPostBySlug returns one published post
func GetPostBySlug(c echo.Context) error {
	log := logger.FromEcho(c)
	slug := c.Param("slug")

	var post model.BlogPost
	result := database.GetDB().
		Where("slug = ? AND published_at IS NOT NULL", slug).
		First(&post)
	if result.Error != nil {
		log.Warn("Blog post not found", zap.String("slug", slug))
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "post not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": post})
}

// ListPosts returns all posts for the admin panel, drafts included
func ListPosts(c echo.Context) error {
	log := logger.FromEcho(c)

	var posts []model.BlogPost
	result := database.GetDB().
		Preload("Author").
		Order("created_at desc").
		Find(&posts)
	if result.Error != nil {
		log.Error("Failed to list blog posts", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve posts"})
	}

	return c.JSON(http.StatusOK, posts)
}

// CreatePost handles creating a new blog post, authored by the caller
func CreatePost(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, _ := mid.UserIDFromContext(c)

	var req BlogPostRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Title == "" || req.Slug == "" || req.Content == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "title, slug and content are required"})
	}

	publishedAt := time.Now()
	if req.PublishedAt != nil {
		if parsed, err := time.Parse(time.RFC3339, *req.PublishedAt); err == nil {
			publishedAt = parsed
		}
	}

	post := model.BlogPost{
		Title:       req.Title,
		Slug:        req.Slug,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		Thumbnail:   req.Thumbnail,
		PublishedAt: &publishedAt,
		AuthorID:    userID,
	}

	if err := database.GetDB().Create(&post).Error; err != nil {
		log.Error("Failed to create blog post", zap.String("slug", req.Slug), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create post"})
	}

	prometheus.RecordAdminOperation("blog_post", "create")
	log.Info("Blog post created", zap.Uint("post_id", post.ID), zap.String("slug", post.Slug))
	return c.JSON(http.StatusCreated, post)
}

// UpdatePost handles updating an existing blog post
func UpdatePost(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var req BlogPostRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("post_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var post model.BlogPost
	if err := database.GetDB().First(&post, id).Error; err != nil {
		log.Error("Blog post not found for update", zap.String("post_id", id), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
	}

	post.Title = req.Title
	post.Slug = req.Slug
	post.Content = req.Content
	post.Excerpt = req.Excerpt
	post.Thumbnail = req.Thumbnail
	if req.PublishedAt != nil {
		if parsed, err := time.Parse(time.RFC3339, *req.PublishedAt); err == nil {
			post.PublishedAt = &parsed
		}
	}

	if err := database.GetDB().Save(&post).Error; err != nil {
		log.Error("Failed to update blog post", zap.String("post_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update post"})
	}

	prometheus.RecordAdminOperation("blog_post", "update")
	log.Info("Blog post updated", zap.String("post_id", id), zap.String("slug", post.Slug))
	return c.JSON(http.StatusOK, post)
}

// DeletePost handles deleting a blog post
func DeletePost(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.BlogPost{}, id)
	if result.Error != nil {
		log.Error("Failed to delete blog post", zap.String("post_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete post"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
	}

	prometheus.RecordAdminOperation("blog_post", "delete")
	log.Info("Blog post deleted", zap.String("post_id", id))
	return c.NoContent(http.StatusNoContent)
}
