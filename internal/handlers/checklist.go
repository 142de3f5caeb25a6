package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"Pastel/internal/auth"
	dom "Pastel/internal/domain"
	"Pastel/internal/dto"
	"Pastel/internal/service"

	"github.com/gin-gonic/gin"
)

type ChecklistHandler struct {
	svc *service.ChecklistService
}

func NewChecklistHandler(svc *service.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{svc: svc}
}

// List godoc
// @Summary      List the current user's checklists with items
// @Tags         checklists
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListChecklistsResponse
// @Failure      500  {object}  map[string]string
// @Router       /checklists [get]
func (h *ChecklistHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list checklists"})
		return
	}
	c.JSON(http.StatusOK, dto.ListChecklistsResponse{Items: checklistsToResponses(list)})
}

// Get godoc
// @Summary      Get one checklist with its items
// @Tags         checklists
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Checklist ID"
// @Success      200  {object}  dto.ChecklistResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /checklists/{id} [get]
func (h *ChecklistHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cl, err := h.svc.Get(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, checklistToResponse(cl))
}

// Create godoc
// @Summary      Create a checklist
// @Tags         checklists
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateChecklistRequest  true  "Checklist body"
// @Success      201   {object}  dto.ChecklistResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /checklists [post]
func (h *ChecklistHandler) Create(c *gin.Context) {
	var req dto.CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cl, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), req.Name, dom.Color(req.Color))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, checklistToResponse(cl))
}

// Update godoc
// @Summary      Rename or recolor a checklist
// @Tags         checklists
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int  true  "Checklist ID"
// @Param        body  body      dto.UpdateChecklistRequest  true  "New name and color"
// @Success      200   {object}  dto.ChecklistResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /checklists/{id} [patch]
func (h *ChecklistHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cl, err := h.svc.Rename(c.Request.Context(), auth.UserIDFromContext(c), id, req.Name, dom.Color(req.Color))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, checklistToResponse(cl))
}

// Delete godoc
// @Summary      Delete a checklist and all its items
// @Tags         checklists
// @Security     CookieAuth
// @Param        id   path  int  true  "Checklist ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /checklists/{id} [delete]
func (h *ChecklistHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddItem godoc
// @Summary      Add an item to a checklist
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int  true  "Checklist ID"
// @Param        body  body      dto.CreateItemRequest  true  "Item body"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /checklists/{id}/items [post]
func (h *ChecklistHandler) AddItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	it, err := h.svc.AddItem(c.Request.Context(), auth.UserIDFromContext(c), id, req.Text, req.ImageURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, itemToResponse(it))
}

// ToggleItem godoc
// @Summary      Flip an item's completed flag
// @Tags         items
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  dto.ItemResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /items/{id}/toggle [post]
func (h *ChecklistHandler) ToggleItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	it, err := h.svc.ToggleItem(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemToResponse(it))
}

// DeleteItem godoc
// @Summary      Delete an item
// @Tags         items
// @Security     CookieAuth
// @Param        id   path  int  true  "Item ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /items/{id} [delete]
func (h *ChecklistHandler) DeleteItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteItem(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// respondServiceError maps service errors to HTTP statuses. Not-found covers
// both missing and foreign-owned resources; integrity failures are reported
// as internal, never as something the user can correct.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func checklistToResponse(cl dom.Checklist) dto.ChecklistResponse {
	items := make([]dto.ItemResponse, len(cl.Items))
	for i := range cl.Items {
		items[i] = itemToResponse(cl.Items[i])
	}
	return dto.ChecklistResponse{
		ID:        cl.ID,
		Name:      cl.Name,
		Color:     string(cl.Color),
		CreatedAt: cl.CreatedAt,
		UpdatedAt: cl.UpdatedAt,
		Items:     items,
	}
}

func checklistsToResponses(list []dom.Checklist) []dto.ChecklistResponse {
	out := make([]dto.ChecklistResponse, len(list))
	for i := range list {
		out[i] = checklistToResponse(list[i])
	}
	return out
}

func itemToResponse(it dom.ChecklistItem) dto.ItemResponse {
	return dto.ItemResponse{
		ID:          it.ID,
		ChecklistID: it.ChecklistID,
		Text:        it.Text,
		Completed:   it.Completed,
		ImageURL:    it.ImageURL,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
