package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"linkpage.backend/internal/domain/entities"
	domainerrors "linkpage.backend/internal/domain/errors"
	"linkpage.backend/internal/interfaces/http/middleware"
	"linkpage.backend/internal/interfaces/http/response"
	"linkpage.backend/internal/usecases"
)

// LinkHandler handles link endpoints
type LinkHandler struct {
	linkUsecase *usecases.LinkUsecase
}

// NewLinkHandler creates a new link handler
func NewLinkHandler(linkUsecase *usecases.LinkUsecase) *LinkHandler {
	return &LinkHandler{linkUsecase: linkUsecase}
}

// List lists the authenticated user's links in display order
// GET /links
func (h *LinkHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	links, err := h.linkUsecase.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"links": links})
}

// Get returns one of the authenticated user's links
// GET /links/:id
func (h *LinkHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	linkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid link id"))
		return
	}

	link, err := h.linkUsecase.Get(c.Request.Context(), userID, linkID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, link)
}

// Create adds a link to the authenticated user's page
// POST /links
func (h *LinkHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.CreateLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	link, err := h.linkUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, link)
}

// Update patches one of the authenticated user's links
// PUT /links/:id
func (h *LinkHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	linkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid link id"))
		return
	}

	var input entities.UpdateLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	link, err := h.linkUsecase.Update(c.Request.Context(), userID, linkID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, link)
}

// Delete removes one of the authenticated user's links
// DELETE /links/:id
func (h *LinkHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	linkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid link id"))
		return
	}

	if err := h.linkUsecase.Delete(c.Request.Context(), userID, linkID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "link deleted"})
}

// Reorder moves a batch of links to new positions
// POST /links/reorder
func (h *LinkHandler) Reorder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input struct {
		Items []entities.ReorderItem `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	links, err := h.linkUsecase.Reorder(c.Request.Context(), userID, input.Items)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"links": links})
}

// Click counts a visit on a link, public
// POST /links/:id/click
func (h *LinkHandler) Click(c *gin.Context) {
	linkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid link id"))
		return
	}

	link, err := h.linkUsecase.Click(c.Request.Context(), linkID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":          link.ID,
		"click_count": link.ClickCount,
	})
}

// ListPublic returns the active links of a public page
// GET /links/user/:username
func (h *LinkHandler) ListPublic(c *gin.Context) {
	links, err := h.linkUsecase.ListPublicByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"links": links})
}
