package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/category"
	"github.com/avadra/storefront-service/internal/category/dto"
	"github.com/avadra/storefront-service/pkg/logger"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{uc: uc, logger: log}
}

func (h *CategoryHandler) respondError(c *gin.Context, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		h.logger.Error("category request failed", zap.Error(err))
	}
	c.JSON(apperr.HTTPStatus(err), gin.H{"message": apperr.MessageOf(err)})
}

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	IsFeatured  bool    `json:"isFeatured"`
	Parent      *string `json:"parent"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category payload"})
		return
	}

	cat, err := h.uc.CreateCategory(c.Request.Context(), &dto.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		IsFeatured:  req.IsFeatured,
		ParentID:    req.Parent,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.uc.ListCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.uc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	IsFeatured  *bool   `json:"isFeatured"`
	IsActive    *bool   `json:"isActive"`
	Parent      *string `json:"parent"`
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindBodyWithJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category payload"})
		return
	}

	input := &dto.UpdateCategoryInput{ID: c.Param("id")}
	if v, ok := raw["name"].(string); ok {
		input.Name = &v
	}
	if v, ok := raw["description"].(string); ok {
		input.Description = &v
	}
	if v, ok := raw["image"].(string); ok {
		input.Image = &v
	}
	if v, ok := raw["isFeatured"].(bool); ok {
		input.IsFeatured = &v
	}
	if v, ok := raw["isActive"].(bool); ok {
		input.IsActive = &v
	}
	if _, present := raw["parent"]; present {
		input.ParentSet = true
		if v, ok := raw["parent"].(string); ok && v != "" {
			input.ParentID = &v
		}
	}

	cat, err := h.uc.UpdateCategory(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category and all associated dependencies removed"})
}
