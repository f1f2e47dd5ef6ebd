package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/hemovital/hemostock-api/internal/application/analytics"
	"github.com/hemovital/hemostock-api/internal/application/auth"
	"github.com/hemovital/hemostock-api/internal/application/etl"
	"github.com/hemovital/hemostock-api/internal/application/report"
	"github.com/hemovital/hemostock-api/internal/application/usecase"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	InventoryUC *usecase.InventoryUseCase
	LocationUC  *usecase.LocationUseCase
	RecordsUC   *usecase.RecordsUseCase
	DashboardUC *appanalytics.DashboardUseCase
	AlertsUC    *appanalytics.AlertsUseCase
	ForecastUC  *appanalytics.ForecastUseCase
	IngestUC    *etl.IngestUseCase
	RefreshUC   *etl.RefreshUseCase
	ReportUC    *report.PDFUseCase
	JWTSecret   string
	Analytics   AnalyticsDefaults
}

// Router registra las rutas de la API.
//
// Todo lo que cuelga de /api exige Bearer token salvo /api/auth. Las rutas
// que mutan estado (ingesta, refresh, ubicaciones) exigen además rol admin
// u operador; los analistas solo leen.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público; el registro queda abierto solo hasta crear el primer
	// usuario, después exige token de admin)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", RegisterGuard(deps.AuthUC, deps.JWTSecret), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	canWrite := RequireRole(entity.RoleAdmin, entity.RoleOperador)

	// Inventario neteado (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.RefreshUC)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Post("/refresh", canWrite, inventoryHandler.Refresh)

	// Ingesta de lotes (protegido, escritura)
	ingestHandler := NewIngestHandler(deps.IngestUC)
	protected.Post("/ingest", canWrite, ingestHandler.Upload)

	// Ubicaciones de almacenamiento (protegido; escritura solo admin/operador)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", canWrite, locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", canWrite, locationHandler.Update)

	// Registros cargados (protegido, solo lectura)
	records := protected.Group("/records")
	recordsHandler := NewRecordsHandler(deps.RecordsUC)
	records.Get("/donors", recordsHandler.ListDonors)
	records.Get("/donations", recordsHandler.ListDonations)
	records.Get("/requests", recordsHandler.ListRequests)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/donations-over-time", dashboardHandler.GetDonationsOverTime)

	// Alertas y pronóstico (protegido)
	analyticsGroup := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AlertsUC, deps.ForecastUC, deps.Analytics)
	analyticsGroup.Get("/low-stock", analyticsHandler.LowStock)
	analyticsGroup.Get("/near-expiry", analyticsHandler.NearExpiry)
	analyticsGroup.Get("/forecast", analyticsHandler.Forecast)

	// Reportes (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/inventory.pdf", reportHandler.DownloadStockReport)
}
