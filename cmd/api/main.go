package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-tailorshop/internal/handler"
	"go-tailorshop/internal/middleware"
	"go-tailorshop/internal/model"
	"go-tailorshop/internal/repository"
	"go-tailorshop/internal/service"
	"go-tailorshop/internal/ws"
	"go-tailorshop/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool in production)
	if err := db.AutoMigrate(
		&model.Shop{},
		&model.Staff{},
		&model.Customer{},
		&model.Measurement{},
		&model.Order{},
		&model.InventoryItem{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	shopRepo := repository.NewShopRepo(db)
	staffRepo := repository.NewStaffRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)

	authService := service.NewAuthService(shopRepo, staffRepo)
	customerService := service.NewCustomerService(customerRepo)
	orderService := service.NewOrderService(orderRepo, customerRepo, staffRepo, wsHub)
	inventoryService := service.NewInventoryService(inventoryRepo, wsHub)
	staffService := service.NewStaffService(staffRepo)
	dashboardService := service.NewDashboardService(customerRepo, orderRepo, inventoryRepo)
	trackService := service.NewTrackService(customerRepo, orderRepo, shopRepo)

	authHandler := handler.NewAuthHandler(authService)
	customerHandler := handler.NewCustomerHandler(customerService)
	orderHandler := handler.NewOrderHandler(orderService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	staffHandler := handler.NewStaffHandler(staffService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	trackHandler := handler.NewTrackHandler(trackService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "TailorShop Backend v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 6. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Post("/shops/register", authHandler.RegisterShop)
	api.Get("/shops/lookup", authHandler.LookupShop)
	api.Post("/track", trackHandler.Track)

	auth := api.Group("/auth")
	auth.Post("/admin/login", authHandler.Login(model.RoleAdmin))
	auth.Post("/tailor/login", authHandler.Login(model.RoleTailor))
	auth.Post("/cuttingmaster/login", authHandler.Login(model.RoleCuttingMaster))

	// ============ ADMIN PORTAL ============
	admin := api.Group("/admin", middleware.RequireAuth(staffRepo), middleware.RequireRole(model.RoleAdmin))

	admin.Get("/dashboard", dashboardHandler.AdminStats)

	admin.Get("/customers", customerHandler.List)
	admin.Post("/customers", customerHandler.Create)
	admin.Get("/customers/:id", customerHandler.Get)
	admin.Put("/customers/:id", customerHandler.Update)
	admin.Delete("/customers/:id", customerHandler.Delete)
	admin.Put("/customers/:id/measurements", customerHandler.ReplaceMeasurements)

	admin.Get("/orders", orderHandler.List)
	admin.Post("/orders", orderHandler.Create)
	admin.Post("/orders/bulk-assign-tailor", orderHandler.BulkAssignTailor)
	admin.Get("/orders/:id", orderHandler.Get)
	admin.Put("/orders/:id", orderHandler.Update)
	admin.Delete("/orders/:id", orderHandler.Delete)
	admin.Patch("/orders/:id/status", orderHandler.UpdateStatus)
	admin.Post("/orders/:id/approval", orderHandler.ResolveApproval)
	admin.Patch("/orders/:id/assign-tailor", orderHandler.AssignTailor)
	admin.Patch("/orders/:id/assign-cutting-master", orderHandler.AssignCuttingMaster)

	admin.Get("/inventory", inventoryHandler.List)
	admin.Post("/inventory", inventoryHandler.Create)
	admin.Put("/inventory/:id", inventoryHandler.Update)
	admin.Delete("/inventory/:id", inventoryHandler.Delete)
	admin.Patch("/inventory/:id/increment", inventoryHandler.Adjust(false))
	admin.Patch("/inventory/:id/decrement", inventoryHandler.Adjust(true))

	admin.Get("/tailors", staffHandler.List(model.RoleTailor))
	admin.Post("/tailors", staffHandler.Create(model.RoleTailor))
	admin.Delete("/tailors/:id", staffHandler.Delete(model.RoleTailor))
	admin.Get("/cutting-masters", staffHandler.List(model.RoleCuttingMaster))
	admin.Post("/cutting-masters", staffHandler.Create(model.RoleCuttingMaster))
	admin.Delete("/cutting-masters/:id", staffHandler.Delete(model.RoleCuttingMaster))

	// ============ TAILOR PORTAL ============
	tailor := api.Group("/tailor", middleware.RequireAuth(staffRepo), middleware.RequireRole(model.RoleTailor))

	tailor.Get("/dashboard", dashboardHandler.TailorDashboard)
	tailor.Get("/orders", orderHandler.ListAssignedToTailor)
	tailor.Get("/orders/:id", orderHandler.Get)
	tailor.Patch("/orders/:id/status", orderHandler.UpdateStatus)
	tailor.Put("/customers/:id/measurements", customerHandler.ReplaceMeasurements)

	// ============ CUTTING MASTER PORTAL ============
	cutting := api.Group("/cutting-master", middleware.RequireAuth(staffRepo), middleware.RequireRole(model.RoleCuttingMaster))

	cutting.Get("/dashboard", dashboardHandler.CuttingMasterDashboard)
	cutting.Get("/orders", orderHandler.ListAssignedToCuttingMaster)
	cutting.Get("/orders/:id", orderHandler.Get)
	cutting.Patch("/orders/:id/cutting-status", orderHandler.SetCuttingStatus)
	cutting.Patch("/orders/:id/assign-tailor", orderHandler.AssignTailor)
	cutting.Get("/tailors", staffHandler.List(model.RoleTailor))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
