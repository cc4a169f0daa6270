package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/sistema-facturador/internal/application/analytics"
	"github.com/jhoicas/sistema-facturador/internal/application/auth"
	"github.com/jhoicas/sistema-facturador/internal/application/billing"
	"github.com/jhoicas/sistema-facturador/internal/application/inventory"
	"github.com/jhoicas/sistema-facturador/internal/application/usecase"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	SettingsUC  *usecase.SettingsUseCase
	UserUC      *usecase.UserUseCase
	SupplierUC  *usecase.SupplierUseCase
	CustomerUC  *usecase.CustomerUseCase
	PurchaseUC  *inventory.PurchaseUseCase
	LedgerUC    *inventory.LedgerUseCase
	IssueSaleUC *billing.IssueSaleUseCase
	SunatUC     *billing.SunatUseCase
	ReportUC    *analytics.ReportUseCase
	JWTSecret   string
	MetricsHTTP nethttp.Handler // opcional
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })
	if deps.MetricsHTTP != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHTTP))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", AuthMiddleware(deps.JWTSecret), authHandler.Logout)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	section := func(name string) fiber.Router {
		return protected.Group("/"+name, RequireSection(name, deps.AuthUC))
	}

	// Configuración y usuarios (solo admin). El claim del token filtra primero;
	// el rol guardado decide, así un admin degradado o eliminado pierde el acceso.
	configHandler := NewConfigHandler(deps.SettingsUC, deps.UserUC)
	cfg := protected.Group("/config", RequireRole(entity.RoleAdmin), RequireAdmin(deps.AuthUC))
	cfg.Get("/", configHandler.GetSettings)
	cfg.Put("/", configHandler.UpdateSettings)
	cfg.Get("/usuarios", configHandler.ListUsers)
	cfg.Post("/usuarios", configHandler.CreateUser)
	cfg.Put("/usuarios/:username", configHandler.UpdateUser)
	cfg.Delete("/usuarios/:username", configHandler.DeleteUser)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	prov := section(entity.SectionProveedores)
	prov.Get("/", supplierHandler.List)
	prov.Post("/", supplierHandler.Create)
	prov.Post("/import", supplierHandler.Import)
	prov.Get("/plantilla", supplierHandler.Template)
	prov.Delete("/:id", supplierHandler.Delete)

	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	compras := section(entity.SectionCompras)
	compras.Get("/", purchaseHandler.List)
	compras.Post("/", purchaseHandler.Create)
	compras.Post("/import", purchaseHandler.Import)
	compras.Get("/plantilla", purchaseHandler.Template)
	compras.Get("/proveedores", supplierHandler.List)
	compras.Get("/:id", purchaseHandler.Get)

	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	inv := section(entity.SectionInventario)
	inv.Get("/", inventoryHandler.List)
	inv.Get("/export", inventoryHandler.Export)
	inv.Patch("/:id/cantidad", inventoryHandler.AdjustQty)
	inv.Patch("/:id/margen", inventoryHandler.AdjustMargin)
	inv.Delete("/:id", inventoryHandler.Delete)

	customerHandler := NewCustomerHandler(deps.CustomerUC)
	cli := section(entity.SectionClientes)
	cli.Get("/", customerHandler.List)
	cli.Post("/", customerHandler.Create)
	cli.Get("/:id/comprador", customerHandler.Buyer)
	cli.Delete("/:id", customerHandler.Delete)

	// Ventas: expone en modo lectura los productos y clientes que necesita el formulario.
	saleHandler := NewSaleHandler(deps.IssueSaleUC, deps.SunatUC)
	ventas := section(entity.SectionVentas)
	ventas.Post("/", saleHandler.Issue)
	ventas.Get("/productos", inventoryHandler.List)
	ventas.Get("/clientes", customerHandler.List)
	ventas.Get("/clientes/:id", customerHandler.Buyer)
	ventas.Get("/validar/:tipo/:numero", saleHandler.ValidateBuyer)
	ventas.Post("/enviar", saleHandler.SubmitLast)
	ventas.Post("/:id/enviar", saleHandler.Submit)

	reportHandler := NewReportHandler(deps.ReportUC)
	rep := section(entity.SectionReportes)
	rep.Get("/kpis", reportHandler.KPIs)
	rep.Get("/ventas", reportHandler.List)
	rep.Get("/ventas/export", reportHandler.Export)
	rep.Get("/ventas/:id", reportHandler.Get)
	rep.Get("/ventas/:id/pdf", reportHandler.PDF)
	rep.Get("/ventas/:id/xml", reportHandler.XML)
	rep.Get("/ventas/:id/verificar", reportHandler.Verify)
	rep.Delete("/ventas/:id", reportHandler.Delete)
}
