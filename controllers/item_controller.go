package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-api/apperrors"
	"shop-api/models"
)

type IItemService interface {
	List(ctx context.Context) ([]models.Item, error)
	Get(ctx context.Context, id uint) (*models.Item, error)
	Create(ctx context.Context, name string) (*models.Item, error)
	Update(ctx context.Context, id uint, name string) (*models.Item, error)
	Delete(ctx context.Context, id uint) error
}

type ItemController struct {
	items IItemService
}

func NewItemController(items IItemService) *ItemController {
	return &ItemController{items: items}
}

type itemRequest struct {
	Name string `json:"name" binding:"required"`
}

// List handles GET /items.
func (ic *ItemController) List(c *gin.Context) {
	items, err := ic.items.List(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Get handles GET /items/:id.
func (ic *ItemController) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	item, err := ic.items.Get(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create handles POST /items.
func (ic *ItemController) Create(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item name is required"})
		return
	}

	item, err := ic.items.Create(c.Request.Context(), req.Name)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update handles PUT /items/:id.
func (ic *ItemController) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item name is required"})
		return
	}

	item, err := ic.items.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /items/:id.
func (ic *ItemController) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	if err := ic.items.Delete(c.Request.Context(), id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
