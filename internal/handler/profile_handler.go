package handler

import (
	"net/http"

	"eventhub/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type ProfileCreateReq struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

type ProfileUpdateReq struct {
	Username *string `json:"username"`
	FullName *string `json:"full_name"`
	Avatar   *string `json:"avatar"`
}

func (h *ProfileHandler) Create(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	var req ProfileCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.svc.Create(c.Request.Context(), userID, req.Username, req.FullName, req.Avatar)
	if err != nil {
		respondConflictAs400(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	profile, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	var req ProfileUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.svc.Update(c.Request.Context(), userID, req.Username, req.FullName, req.Avatar)
	if err != nil {
		respondConflictAs400(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
