package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/alloyforge/metallurgy-backend/internal/handlers"
	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/middleware"
)

type RouterConfig struct {
	Log               *logger.Logger
	AuthMiddleware    *middleware.AuthMiddleware
	AuthHandler       *handlers.AuthHandler
	ElementHandler    *handlers.ElementHandler
	AlloyHandler      *handlers.AlloyHandler
	PredictionHandler *handlers.PredictionHandler
	PatentHandler     *handlers.PatentHandler
	PersonHandler     *handlers.PersonHandler
	RoleHandler       *handlers.RoleHandler
	MLModelHandler    *handlers.MLModelHandler
	PredictHandler    *handlers.PredictHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:80",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/auth/login", cfg.AuthHandler.Login)

		elements := api.Group("/elements")
		{
			elements.GET("/", cfg.ElementHandler.List)
			elements.POST("/", cfg.ElementHandler.Create)
			elements.GET("/symbol/:symbol", cfg.ElementHandler.GetBySymbol)
			elements.GET("/:element_id", cfg.ElementHandler.GetByID)
			elements.DELETE("/:element_id", cfg.ElementHandler.Delete)
		}

		alloys := api.Group("/alloys")
		{
			alloys.GET("/", cfg.AlloyHandler.List)
			alloys.POST("/", cfg.AlloyHandler.Create)
			alloys.POST("/with_elements", cfg.AlloyHandler.CreateWithElements)
			alloys.GET("/patent/:patent_id", cfg.AlloyHandler.ListByPatent)
			alloys.GET("/category/:category", cfg.AlloyHandler.SearchByCategory)
			alloys.GET("/:alloy_id", cfg.AlloyHandler.GetByID)
			alloys.PUT("/:alloy_id", cfg.AlloyHandler.Update)
			alloys.DELETE("/:alloy_id", cfg.AlloyHandler.Delete)
			alloys.GET("/:alloy_id/elements", cfg.AlloyHandler.ListElements)
			alloys.POST("/:alloy_id/elements/:element_id", cfg.AlloyHandler.AddElement)
			alloys.DELETE("/:alloy_id/elements/:element_id", cfg.AlloyHandler.RemoveElement)
		}

		predictions := api.Group("/predictions")
		{
			predictions.GET("/", cfg.PredictionHandler.List)
			predictions.POST("/", cfg.PredictionHandler.Create)
			predictions.POST("/with_elements", cfg.PredictionHandler.CreateWithElements)
			predictions.GET("/person/:person_id", cfg.PredictionHandler.ListByPerson)
			predictions.GET("/element/:element_id", cfg.PredictionHandler.ListByElement)
			predictions.PUT("/by_id/:prediction_id", cfg.PredictionHandler.Update)
			predictions.GET("/:prediction_id", cfg.PredictionHandler.GetByID)
			predictions.DELETE("/:prediction_id", cfg.PredictionHandler.Delete)
			predictions.GET("/:prediction_id/elements", cfg.PredictionHandler.ListElements)
			predictions.POST("/:prediction_id/elements/:element_id", cfg.PredictionHandler.AddElement)
			predictions.DELETE("/:prediction_id/elements/:element_id", cfg.PredictionHandler.RemoveElement)
		}

		patents := api.Group("/patents")
		{
			patents.GET("/", cfg.PatentHandler.List)
			patents.POST("/", cfg.PatentHandler.Create)
			patents.GET("/name/:patent_name", cfg.PatentHandler.GetByName)
			patents.GET("/:patent_id", cfg.PatentHandler.GetByID)
			patents.PUT("/:patent_id", cfg.PatentHandler.Update)
			patents.DELETE("/:patent_id", cfg.PatentHandler.Delete)
		}

		persons := api.Group("/persons")
		{
			persons.GET("/", cfg.PersonHandler.List)
			persons.POST("/", cfg.PersonHandler.Create)
			persons.GET("/id/:person_id", cfg.PersonHandler.GetByID)
			persons.GET("/login/:login", cfg.PersonHandler.GetByLogin)
			persons.GET("/login_password/:login", cfg.PersonHandler.GetLoginPassword)
			persons.GET("/login_id/:login", cfg.PersonHandler.GetLoginID)
			persons.GET("/role/:role_id", cfg.PersonHandler.ListByRole)
			persons.PUT("/:person_id", cfg.PersonHandler.Update)
			persons.DELETE("/:person_id", cfg.PersonHandler.Delete)
		}

		roles := api.Group("/roles")
		{
			roles.GET("/", cfg.RoleHandler.List)
			roles.POST("/", cfg.RoleHandler.Create)
			roles.GET("/:role_id", cfg.RoleHandler.GetByID)
			roles.PUT("/:role_id", cfg.RoleHandler.Update)
			roles.DELETE("/:role_id", cfg.RoleHandler.Delete)
		}

		models := api.Group("/models")
		{
			models.GET("/", cfg.MLModelHandler.List)
			models.POST("/", cfg.MLModelHandler.Create)
			models.GET("/:model_id", cfg.MLModelHandler.GetByID)
			models.PUT("/:model_id", cfg.MLModelHandler.Update)
			models.DELETE("/:model_id", cfg.MLModelHandler.Delete)
			models.GET("/:model_id/predictions", cfg.PredictionHandler.ListByModel)
		}

		api.POST("/ml/predict", cfg.PredictHandler.Predict)

		admin := api.Group("/admin")
		admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireRole("admin"))
		{
			admin.POST("/grant_role", cfg.PersonHandler.GrantRole)
		}
	}

	return router
}
