package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-api/controllers"
	"shop-api/middleware"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Auth     *controllers.AuthController
	Cart     *controllers.CartController
	Products *controllers.ProductController
	Items    *controllers.ItemController
	Tokens   middleware.TokenValidator
}

// Setup registers all routes on the engine.
func Setup(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth", middleware.RateLimit())
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)

	r.GET("/products", d.Products.List)

	r.GET("/items", d.Items.List)
	r.GET("/items/:id", d.Items.Get)
	r.POST("/items", d.Items.Create)
	r.PUT("/items/:id", d.Items.Update)
	r.DELETE("/items/:id", d.Items.Delete)

	cart := r.Group("/cart", middleware.RequireAuth(d.Tokens))
	cart.GET("", d.Cart.GetCart)
	cart.POST("/items", d.Cart.AddItem)
	cart.PUT("/items/:id", d.Cart.UpdateItem)
	cart.DELETE("/items/:id", d.Cart.RemoveItem)
	cart.POST("/checkout", d.Cart.Checkout)
}
