package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-ledger-api/internal/application/analytics"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
)

// AccessTokenParam parámetro de query con el JWT para el stream SSE.
const AccessTokenParam = "access_token"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC           *inventory.ItemUseCase
	CatalogUC        *inventory.CatalogUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	LedgerUC         *inventory.LedgerUseCase
	ProjectionUC     *inventory.ProjectionUseCase
	CSVExport        *inventory.CSVExportUseCase
	CSVImport        *inventory.CSVImportUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	ReportUC         *appanalytics.ReportUseCase
	Alerts           *AlertHandler
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Alertas en tiempo real: se registra antes del grupo protegido para aceptar el token por query.
	if deps.Alerts != nil {
		api.Get("/alerts/stream",
			QueryTokenAuth(AccessTokenParam),
			AuthMiddleware(deps.JWTSecret),
			RequireRole(RoleAuthenticated, RoleServiceRole),
			deps.Alerts.Stream,
		)
	}

	// Rutas protegidas (requieren Bearer Token de un usuario autenticado o del service role)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(RoleAuthenticated, RoleServiceRole))

	// Catálogos
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	protected.Get("/categories", catalogHandler.ListCategories)
	protected.Post("/categories", catalogHandler.CreateCategory)
	protected.Get("/units", catalogHandler.ListUnits)
	protected.Post("/units", catalogHandler.CreateUnit)

	// Items: las rutas fijas van antes de /:id
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.ProjectionUC, deps.CSVExport, deps.CSVImport)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/export", itemHandler.Export)
	items.Post("/import", itemHandler.Import)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Get("/:id/movements", itemHandler.Movements)

	// Movimientos
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.LedgerUC)
	movements.Post("/in", movementHandler.StockIn)
	movements.Post("/out", movementHandler.StockOut)
	movements.Get("/recent", movementHandler.Recent)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/movements", reportHandler.Movements)
	protected.Get("/reports/movements.pdf", reportHandler.MovementsPDF)
}
