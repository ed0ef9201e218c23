package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/auth"
	"github.com/avadra/storefront-service/internal/user"
	"github.com/avadra/storefront-service/internal/user/dto"
	"github.com/avadra/storefront-service/pkg/logger"
)

type UserHandler struct {
	uc     user.UseCase
	logger logger.ZapLogger
}

func NewUserHandler(uc user.UseCase, log logger.ZapLogger) *UserHandler {
	return &UserHandler{uc: uc, logger: log}
}

func (h *UserHandler) respondError(c *gin.Context, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		h.logger.Error("user request failed", zap.Error(err))
	}
	c.JSON(apperr.HTTPStatus(err), gin.H{"message": apperr.MessageOf(err)})
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid signup payload"})
		return
	}

	resp, err := h.uc.Signup(c.Request.Context(), &dto.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid login payload"})
		return
	}

	resp, err := h.uc.Login(c.Request.Context(), &dto.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.uc.Profile(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ListCustomers is the admin's customer directory.
func (h *UserHandler) ListCustomers(c *gin.Context) {
	users, err := h.uc.ListCustomers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type updateProfileRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Pincode      *string `json:"pincode"`
	Country      *string `json:"country"`
	ProfileImage *string `json:"profileImage"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid profile payload"})
		return
	}

	u, err := h.uc.UpdateProfile(c.Request.Context(), auth.UserID(c), &dto.UpdateProfileInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		Country:      req.Country,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}
