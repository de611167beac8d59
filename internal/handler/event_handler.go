package handler

import (
	"net/http"
	"strconv"

	"eventhub/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	svc *service.EventService
}

func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

type AddUserReq struct {
	Username string `json:"username" binding:"required"`
}

func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	var req service.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	event, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) Get(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	eventID, ok := pathID(c, "event_id")
	if !ok {
		return
	}
	event, err := h.svc.Get(c.Request.Context(), userID, eventID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) List(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.List(c.Request.Context(), userID, page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *EventHandler) Update(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	eventID, ok := pathID(c, "event_id")
	if !ok {
		return
	}
	var req service.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	event, err := h.svc.Update(c.Request.Context(), userID, eventID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	eventID, ok := pathID(c, "event_id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID, eventID); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddUser pre-authorizes a user for a private event, creator only.
func (h *EventHandler) AddUser(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	eventID, ok := pathID(c, "event_id")
	if !ok {
		return
	}
	var req AddUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.svc.AddUser(c.Request.Context(), userID, eventID, req.Username); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User added to event"})
}
