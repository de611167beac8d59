package handler

import (
	"net/http"

	"eventhub/internal/model"
	"eventhub/internal/service"

	"github.com/gin-gonic/gin"
)

type SignupHandler struct {
	svc *service.SignupService
}

func NewSignupHandler(svc *service.SignupService) *SignupHandler {
	return &SignupHandler{svc: svc}
}

type SignupUpdateReq struct {
	PaymentStatus  *model.PaymentStatus  `json:"payment_status"`
	PresenceStatus *model.PresenceStatus `json:"presence_status"`
}

func (h *SignupHandler) Create(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	eventID, ok := pathID(c, "event_id")
	if !ok {
		return
	}
	signup, err := h.svc.Create(c.Request.Context(), userID, eventID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, signup)
}

// ListMine returns the caller's signups joined with event summaries.
func (h *SignupHandler) ListMine(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	list, err := h.svc.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Stats returns aggregate signup counts for one event.
func (h *SignupHandler) Stats(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	eventID, ok := pathID(c, "event_id")
	if !ok {
		return
	}
	stats, err := h.svc.Stats(c.Request.Context(), userID, eventID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *SignupHandler) Update(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	eventID, ok := pathID(c, "event_id")
	if !ok {
		return
	}
	var req SignupUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	signup, err := h.svc.Update(c.Request.Context(), userID, eventID, req.PaymentStatus, req.PresenceStatus)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, signup)
}

func (h *SignupHandler) Delete(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	eventID, ok := pathID(c, "event_id")
	if !ok {
		return
	}
	if err := h.svc.Cancel(c.Request.Context(), userID, eventID); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
