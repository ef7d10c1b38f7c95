package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/poofware/buyer-leads-service/internal/controllers"
	"github.com/poofware/buyer-leads-service/internal/middleware"
	"github.com/poofware/buyer-leads-service/internal/repositories"
	"github.com/poofware/buyer-leads-service/internal/routes"
	"github.com/poofware/buyer-leads-service/internal/services"
	"github.com/poofware/buyer-leads-service/internal/validation"
)

// NewRateLimiter picks the shared Redis store when one is configured.
func NewRateLimiter(a *App) services.RateLimiterService {
	var store repositories.RateLimitStore
	if a.Redis != nil {
		store = repositories.NewRedisRateLimitStore(a.Redis)
	} else {
		store = repositories.NewMemoryRateLimitStore()
	}
	return services.NewRateLimiterService(store, a.Config)
}

// NewRouter wires repositories, services and controllers onto the HTTP routes.
func NewRouter(a *App, limiter services.RateLimiterService) *mux.Router {
	buyerRepo := repositories.NewBuyerRepository(a.DB)
	historyRepo := repositories.NewBuyerHistoryRepository(a.DB)
	userRepo := repositories.NewUserRepository(a.DB)

	schema := validation.NewBuyerSchema()
	historyService := services.NewHistoryService(historyRepo)
	buyerService := services.NewBuyerService(buyerRepo, userRepo, historyService, schema)
	importService := services.NewImportService(buyerRepo, userRepo, historyService, schema, a.Config)
	exportService := services.NewExportService(buyerRepo)
	userService := services.NewUserService(userRepo)

	healthController := controllers.NewHealthController(a.DB)
	loginController := controllers.NewLoginController(userService)
	enumController := controllers.NewEnumController()
	buyerController := controllers.NewBuyerController(buyerService)
	csvController := controllers.NewBuyerCSVController(importService, exportService)

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger)

	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Login, loginController.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.Enums, enumController.ListEnumsHandler).Methods(http.MethodGet)

	// export/import must be registered before the {id} routes.
	router.HandleFunc(routes.BuyersExport, csvController.ExportHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BuyersImport, csvController.ImportHandler).Methods(http.MethodPost)

	router.HandleFunc(routes.BuyersBase, buyerController.ListBuyersHandler).Methods(http.MethodGet)
	router.Handle(routes.BuyersBase,
		middleware.RateLimitMiddleware(limiter)(http.HandlerFunc(buyerController.CreateBuyerHandler)),
	).Methods(http.MethodPost)

	router.HandleFunc(routes.BuyerByID, buyerController.GetBuyerHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BuyerByID, buyerController.UpdateBuyerHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.BuyerByID, buyerController.DeleteBuyerHandler).Methods(http.MethodDelete)
	router.HandleFunc(routes.BuyerHistory, buyerController.ListHistoryHandler).Methods(http.MethodGet)

	return router
}
