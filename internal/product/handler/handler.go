package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/product"
	"github.com/avadra/storefront-service/internal/product/dto"
	"github.com/avadra/storefront-service/pkg/logger"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: log}
}

func (h *ProductHandler) respondError(c *gin.Context, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		h.logger.Error("product request failed", zap.Error(err))
	}
	c.JSON(apperr.HTTPStatus(err), gin.H{"message": apperr.MessageOf(err)})
}

type productRequest struct {
	Name        string          `json:"name"`
	Price       float64         `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Image       []string        `json:"image"`
	Sizes       []dto.SizeInput `json:"sizes"`
	IsFeatured  bool            `json:"isFeatured"`
	IsActive    *bool           `json:"isActive"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product payload"})
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &dto.CreateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		CategoryID:  req.Category,
		Description: req.Description,
		Image:       req.Image,
		Sizes:       req.Sizes,
		IsFeatured:  req.IsFeatured,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "0"))

	products, count, err := h.uc.ListProducts(c.Request.Context(), &dto.ProductFilters{
		CategoryID:  c.Query("category"),
		SearchQuery: c.Query("search"),
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(count))
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product payload"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), &dto.UpdateProductInput{
		ID:          c.Param("id"),
		Name:        req.Name,
		Price:       req.Price,
		CategoryID:  req.Category,
		Description: req.Description,
		Image:       req.Image,
		Sizes:       req.Sizes,
		IsFeatured:  req.IsFeatured,
		IsActive:    isActive,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product permanently removed from inventory"})
}
