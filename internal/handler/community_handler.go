package handler

import (
	"net/http"
	"strconv"

	"eventhub/internal/service"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	svc *service.CommunityService
}

func NewCommunityHandler(svc *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

type CommunityCreateReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CommunityUpdateReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// RemoveMemberReq names another member to remove; an empty body means the
// caller is leaving.
type RemoveMemberReq struct {
	UserID uint64 `json:"user_id"`
}

func (h *CommunityHandler) Create(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	var req CommunityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	community, err := h.svc.Create(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		respondConflictAs400(c, err)
		return
	}
	c.JSON(http.StatusCreated, community)
}

func (h *CommunityHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	community, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, community)
}

func (h *CommunityHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.List(c.Request.Context(), page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CommunityHandler) Update(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req CommunityUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	community, err := h.svc.Update(c.Request.Context(), userID, id, req.Name, req.Description)
	if err != nil {
		respondConflictAs400(c, err)
		return
	}
	c.JSON(http.StatusOK, community)
}

func (h *CommunityHandler) Delete(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Join adds the caller to the community.
func (h *CommunityHandler) Join(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	communityID, ok := pathID(c, "id")
	if !ok {
		return
	}
	member, err := h.svc.Join(c.Request.Context(), userID, communityID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// Leave removes the caller, or another member when user_id is supplied and
// the caller is a community admin.
func (h *CommunityHandler) Leave(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	communityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RemoveMemberReq
	_ = c.ShouldBindJSON(&req)

	if req.UserID != 0 && req.UserID != userID {
		if err := h.svc.RemoveMember(c.Request.Context(), userID, communityID, req.UserID); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
		return
	}

	if err := h.svc.Leave(c.Request.Context(), userID, communityID); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommunityHandler) Members(c *gin.Context) {
	if _, ok := principal(c); !ok {
		return
	}
	communityID, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.svc.Members(c.Request.Context(), communityID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
