package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-api/apperrors"
	"shop-api/models"
)

type IProductService interface {
	List(ctx context.Context) ([]models.Product, error)
}

type ProductController struct {
	products IProductService
}

func NewProductController(products IProductService) *ProductController {
	return &ProductController{products: products}
}

// List handles GET /products.
func (pc *ProductController) List(c *gin.Context) {
	products, err := pc.products.List(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
