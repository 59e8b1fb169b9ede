// Package server assembles the Fiber application and its routes.
package server

import (
	"strings"

	"inventory-backend/internal/admin"
	"inventory-backend/internal/apperr"
	"inventory-backend/internal/auth"
	"inventory-backend/internal/inventory"
	"inventory-backend/internal/models"
	"inventory-backend/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

type Deps struct {
	JWTSecret   string
	CORSOrigins string
	Logger      *logrus.Logger
	AccessLog   bool

	Users    auth.UserStore
	Branches *admin.BranchService
	Items    *inventory.ItemService
	Reports  *report.Service
}

func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "inventory-backend",
		ErrorHandler: apperr.FiberErrorHandler(d.Logger),
	})

	app.Use(recover.New())
	if d.AccessLog {
		app.Use(logger.New(logger.Config{Output: d.Logger.Writer()}))
	}

	corsOrigins := strings.Split(d.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(d.Users, d.JWTSecret))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(d.JWTSecret))

	adminOnly := auth.RequireRole(models.RoleAdmin)

	protected.Get("/auth/me", auth.MeHandler(d.Users))

	// Branches
	protected.Get("/branches", admin.ListBranchesHandler(d.Branches))
	protected.Post("/branches", adminOnly, admin.CreateBranchHandler(d.Branches))
	protected.Get("/branches/:branchId", admin.GetBranchHandler(d.Branches))
	protected.Put("/branches/:branchId", adminOnly, admin.UpdateBranchHandler(d.Branches))

	// Items, under both mount points
	inventory.Routes(protected.Group("/branches/:branchId/items"), d.Items, adminOnly)
	inventory.Routes(protected.Group("/:branchId/items"), d.Items, adminOnly)

	// Reports
	protected.Post("/:branchId/sendreport", report.SendReportHandler(d.Reports))
	protected.Get("/reports", report.ListReportsHandler(d.Reports))
	protected.Get("/reports/:reportId", report.GetReportHandler(d.Reports))
	protected.Get("/reports/:reportId/export", report.ExportReportHandler(d.Reports))

	return app
}
