package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/query"
	"storefront/services"
)

// handlers bündelt die Services, auf die die Routen zugreifen.
type handlers struct {
	Auth       *services.AuthService
	Tokens     *services.TokenManager
	Users      *services.UserService
	Products   *services.ProductService
	Categories *services.CategoryService
	Reviews    *services.ReviewService
	Orders     *services.OrderService
	Statistics *services.StatisticsService
}

func (h *handlers) require(role Role) gin.HandlerFunc {
	return authMiddleware(h.Tokens, h.Users, role)
}

// respondError bildet Service-Fehler auf HTTP-Status ab.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProductOrdered),
		errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func setupAuthRoutes(api *gin.RouterGroup, h *handlers, log *zap.Logger) {
	rg := api.Group("/auth")

	rg.POST("/register", func(c *gin.Context) {
		var in services.AuthInput
		if !bindJSON(c, &in) {
			return
		}
		res, err := h.Auth.Register(c.Request.Context(), in)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, res)
	})

	rg.POST("/login", func(c *gin.Context) {
		var in services.AuthInput
		if !bindJSON(c, &in) {
			return
		}
		res, err := h.Auth.Login(c.Request.Context(), in)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, res)
	})

	rg.POST("/login/access-token", func(c *gin.Context) {
		var in services.RefreshInput
		if !bindJSON(c, &in) {
			return
		}
		res, err := h.Auth.Refresh(c.Request.Context(), in.RefreshToken)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, res)
	})
}

func setupUserRoutes(api *gin.RouterGroup, h *handlers, log *zap.Logger) {
	rg := api.Group("/users", h.require(RoleUser))

	rg.GET("/profile", func(c *gin.Context) {
		profile, err := h.Users.Profile(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	})

	rg.PUT("/profile", func(c *gin.Context) {
		var in services.ProfileInput
		if !bindJSON(c, &in) {
			return
		}
		user, err := h.Users.UpdateProfile(c.Request.Context(), currentUser(c).ID, in)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, user)
	})

	rg.PATCH("/profile/favorites/:productId", func(c *gin.Context) {
		productID, ok := idParam(c, "productId")
		if !ok {
			return
		}
		favorite, err := h.Users.ToggleFavorite(c.Request.Context(), currentUser(c).ID, productID)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"productId": productID, "favorite": favorite})
	})
}

func setupProductRoutes(api *gin.RouterGroup, h *handlers, log *zap.Logger) {
	rg := api.Group("/products")
	admin := h.require(RoleAdmin)

	rg.GET("", func(c *gin.Context) {
		var q query.ProductQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		page, err := h.Products.List(c.Request.Context(), q)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, page)
	})

	rg.GET("/similar/:id", func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		products, err := h.Products.Similar(c.Request.Context(), id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, products)
	})

	rg.GET("/by-slug/:slug", func(c *gin.Context) {
		products, err := h.Products.BySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, products)
	})

	rg.GET("/by-category/:categorySlug", func(c *gin.Context) {
		products, err := h.Products.ByCategory(c.Request.Context(), c.Param("categorySlug"))
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, products)
	})

	rg.GET("/:id", admin, func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		product, err := h.Products.ByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, product)
	})

	rg.POST("", admin, func(c *gin.Context) {
		id, err := h.Products.Create(c.Request.Context())
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, id)
	})

	rg.PUT("/:id", admin, func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var in services.ProductInput
		if !bindJSON(c, &in) {
			return
		}
		product, err := h.Products.Update(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, product)
	})

	rg.DELETE("/:id", admin, func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := h.Products.Delete(c.Request.Context(), id); err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	})
}

func setupCategoryRoutes(api *gin.RouterGroup, h *handlers, log *zap.Logger) {
	rg := api.Group("/categories")
	admin := h.require(RoleAdmin)

	rg.GET("", func(c *gin.Context) {
		categories, err := h.Categories.All(c.Request.Context())
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	})

	rg.GET("/by-slug/:slug", func(c *gin.Context) {
		category, err := h.Categories.BySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, category)
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		category, err := h.Categories.ByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, category)
	})

	rg.POST("", admin, func(c *gin.Context) {
		category, err := h.Categories.Create(c.Request.Context())
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, category)
	})

	rg.PUT("/:id", admin, func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var in services.CategoryInput
		if !bindJSON(c, &in) {
			return
		}
		category, err := h.Categories.Update(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, category)
	})

	rg.DELETE("/:id", admin, func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := h.Categories.Delete(c.Request.Context(), id); err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	})
}

func setupReviewRoutes(api *gin.RouterGroup, h *handlers, log *zap.Logger) {
	rg := api.Group("/reviews")

	rg.GET("", func(c *gin.Context) {
		reviews, err := h.Reviews.All(c.Request.Context())
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, reviews)
	})

	rg.POST("/leave/:productId", h.require(RoleUser), func(c *gin.Context) {
		productID, ok := idParam(c, "productId")
		if !ok {
			return
		}
		var in services.ReviewInput
		if !bindJSON(c, &in) {
			return
		}
		review, err := h.Reviews.Create(c.Request.Context(), currentUser(c).ID, productID, in)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, review)
	})

	average := func(c *gin.Context) {
		productID, ok := idParam(c, "productId")
		if !ok {
			return
		}
		avg, err := h.Reviews.AverageByProduct(c.Request.Context(), productID)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, avg)
	}
	rg.GET("/average-by-product/:productId", average)
	// Alte Schreibweise, von bestehenden Clients noch verwendet.
	rg.GET("/avarage-by-product/:productId", average)
}

func setupOrderRoutes(api *gin.RouterGroup, h *handlers, log *zap.Logger) {
	rg := api.Group("/orders")

	rg.GET("", h.require(RoleAdmin), func(c *gin.Context) {
		orders, err := h.Orders.All(c.Request.Context())
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	})

	rg.GET("/by-user", h.require(RoleUser), func(c *gin.Context) {
		orders, err := h.Orders.ByUser(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	})

	rg.POST("", h.require(RoleUser), func(c *gin.Context) {
		var in services.OrderInput
		if !bindJSON(c, &in) {
			return
		}
		order, err := h.Orders.Place(c.Request.Context(), currentUser(c).ID, in)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, order)
	})
}

func setupStatisticsRoutes(api *gin.RouterGroup, h *handlers, log *zap.Logger) {
	rg := api.Group("/statistics", h.require(RoleAdmin))

	rg.GET("/main", func(c *gin.Context) {
		stats, err := h.Statistics.Main(c.Request.Context())
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	})
}
