package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meal-planner-be/internal/controllers"
)

// Router holds everything the HTTP surface is assembled from. Nil
// middleware fields are skipped.
type Router struct {
	AuthController   *controllers.AuthController
	MealController   *controllers.MealController
	QRCodeController *controllers.QRCodeController

	Global    []gin.HandlerFunc // Applied to every route, in order
	AuthMW    gin.HandlerFunc   // Bearer token check
	GeneralRL gin.HandlerFunc
	AuthRL    gin.HandlerFunc
	BulkRL    gin.HandlerFunc
}

func (r *Router) RegisterRoutes(engine *gin.Engine) {
	engine.Use(r.Global...)

	// Health check (no rate limiting)
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is running!"})
	})

	api := engine.Group("")
	api.Use(compact(r.GeneralRL)...)

	auth := api.Group("/auth")
	auth.Use(compact(r.AuthRL)...)
	{
		auth.POST("/register", r.AuthController.Register)
		auth.POST("/login", r.AuthController.Login)
	}

	meals := api.Group("/meals")
	{
		meals.GET("", r.MealController.ListMeals)
		meals.POST("", r.MealController.CreateMeal)
		meals.POST("/bulk", append(compact(r.BulkRL), r.MealController.BulkCreate)...)

		meals.GET("/weekly", r.MealController.Weekly)
		meals.GET("/weekly/pdf", r.MealController.WeeklyPDF)

		meals.GET("/:id", r.MealController.GetMeal)
		meals.GET("/:id/qrcode", r.QRCodeController.GenerateQRCode)
		meals.PUT("/:id", append(compact(r.AuthMW), r.MealController.MarkUsed)...)
	}
}

// New builds an engine with gin's recovery middleware and the routes above
func (r *Router) New() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	r.RegisterRoutes(engine)
	return engine
}

func compact(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
