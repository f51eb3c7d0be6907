package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-cafe-central/internal/handler"
	"go-cafe-central/internal/middleware"
	"go-cafe-central/internal/model"
	"go-cafe-central/internal/repository"
	"go-cafe-central/internal/service"
	"go-cafe-central/internal/ws"
	"go-cafe-central/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{}, &model.Privilege{}, &model.Role{},
		&model.Supplier{}, &model.Product{},
		&model.StockAlert{}, &model.StockMovement{},
		&model.DailySalesSession{}, &model.SaleItem{},
	)
	if err := repository.EnsureAlertIndexes(db); err != nil {
		log.Fatalf("Failed to create alert indexes: %v", err)
	}

	// 3. Seed roles, privileges, and the owner account
	seedRolesAndOwner(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	alertRepo := repository.NewStockAlertRepo(db)
	movementRepo := repository.NewStockMovementRepo(db)
	sessionRepo := repository.NewSalesSessionRepo(db)
	itemRepo := repository.NewSaleItemRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	alertEngine := service.NewAlertEngine(alertRepo)
	ledger := service.NewStockLedger(productRepo, alertEngine)

	productService := service.NewProductService(productRepo, itemRepo, db)
	supplierService := service.NewSupplierService(supplierRepo)
	movementService := service.NewMovementService(movementRepo, productRepo, ledger, db, wsHub)
	salesService := service.NewSalesService(sessionRepo, itemRepo, productRepo, ledger, db, wsHub)
	alertService := service.NewAlertService(alertRepo, db)
	dashService := service.NewDashboardService(movementRepo, alertRepo, sessionRepo, itemRepo, db)
	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	productHandler := handler.NewProductHandler(productService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	movementHandler := handler.NewMovementHandler(movementService)
	salesHandler := handler.NewSalesHandler(salesService)
	alertHandler := handler.NewAlertHandler(alertService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "CafeCentral Inventory v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetStockMovement)

	// Products
	protected.Get("/products", middleware.RequirePrivilege("product:view"), productHandler.GetProducts)
	protected.Get("/products/:id", middleware.RequirePrivilege("product:view"), productHandler.GetProduct)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), productHandler.DeleteProduct)
	protected.Get("/products/:id/movements", middleware.RequirePrivilege("movement:view"), movementHandler.GetProductMovements)

	// Suppliers
	protected.Get("/suppliers", middleware.RequirePrivilege("supplier:view"), supplierHandler.GetSuppliers)
	protected.Get("/suppliers/:id", middleware.RequirePrivilege("supplier:view"), supplierHandler.GetSupplier)
	protected.Post("/suppliers", middleware.RequirePrivilege("supplier:create"), supplierHandler.CreateSupplier)
	protected.Put("/suppliers/:id", middleware.RequirePrivilege("supplier:update"), supplierHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", middleware.RequirePrivilege("supplier:delete"), supplierHandler.DeleteSupplier)

	// Stock movements (audit trail of manual adjustments)
	protected.Get("/movements", middleware.RequirePrivilege("movement:view"), movementHandler.GetMovements)
	protected.Get("/movements/:id", middleware.RequirePrivilege("movement:view"), movementHandler.GetMovement)
	protected.Post("/movements", middleware.RequirePrivilege("movement:create"), movementHandler.CreateMovement)
	protected.Delete("/movements/:id", middleware.RequirePrivilege("movement:delete"), movementHandler.DeleteMovement)

	// Sales sessions and items
	protected.Get("/sales/sessions", middleware.RequirePrivilege("sale:view"), salesHandler.GetSessions)
	protected.Get("/sales/sessions/:id", middleware.RequirePrivilege("sale:view"), salesHandler.GetSession)
	protected.Post("/sales/sessions", middleware.RequirePrivilege("session:create"), salesHandler.CreateSession)
	protected.Put("/sales/sessions/:id", middleware.RequirePrivilege("session:update"), salesHandler.UpdateSession)
	protected.Delete("/sales/sessions/:id", middleware.RequirePrivilege("session:delete"), salesHandler.DeleteSession)
	protected.Post("/sales/sessions/:id/items", middleware.RequirePrivilege("sale:create"), salesHandler.UpsertItem)
	protected.Delete("/sales/items/:id", middleware.RequirePrivilege("sale:delete"), salesHandler.DeleteItem)

	// Stock alerts
	protected.Get("/alerts", middleware.RequirePrivilege("alert:view"), alertHandler.GetAlerts)
	protected.Get("/alerts/:id", middleware.RequirePrivilege("alert:view"), alertHandler.GetAlert)
	protected.Put("/alerts/:id/resolve", middleware.RequirePrivilege("alert:resolve"), alertHandler.ResolveAlert)
	protected.Put("/alerts/:id/unresolve", middleware.RequirePrivilege("alert:resolve"), alertHandler.UnresolveAlert)

	// User management
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update"), userHandler.UpdateUserPrivileges)

	// Roles
	protected.Get("/roles", roleHandler.GetRoles)

	// Privileges (list all available privileges)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

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

	// 8. Graceful Shutdown
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

// seedRolesAndOwner creates the default privileges and roles, wires the
// per-role privilege sets, and provisions the initial owner account. One-time
// bootstrap, idempotent across restarts.
func seedRolesAndOwner(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	allPrivileges, _ := privilegeRepo.FindAll()

	// OWNER gets every privilege
	ownerRole, err := roleRepo.FindByCode(model.RoleOwner)
	if err == nil && len(ownerRole.Privileges) == 0 {
		db.Model(&ownerRole).Association("Privileges").Replace(allPrivileges)
		log.Println("OWNER role assigned all privileges")
	}

	assignByCodes := func(roleCode string, codes []string) {
		role, err := roleRepo.FindByCode(roleCode)
		if err != nil || len(role.Privileges) > 0 {
			return
		}
		privileges, err := privilegeRepo.FindByCodes(codes)
		if err != nil {
			log.Printf("Warning: Failed to load privileges for %s: %v", roleCode, err)
			return
		}
		db.Model(&role).Association("Privileges").Replace(privileges)
		log.Printf("%s role assigned %d privileges", roleCode, len(privileges))
	}
	assignByCodes(model.RoleAdmin, model.AdminPrivilegeCodes)
	assignByCodes(model.RoleEmployee, model.EmployeePrivilegeCodes)

	// Provision the owner account on first boot
	email := os.Getenv("OWNER_EMAIL")
	if email == "" {
		email = "owner@cafecentral.local"
	}
	if _, err := userRepo.FindByEmail(email); err != nil {
		ownerRole, _ := roleRepo.FindByCode(model.RoleOwner)

		owner := &model.User{
			Email:      email,
			FullName:   "Cafe Owner",
			RoleID:     &ownerRole.ID,
			IsActive:   true,
			Privileges: ownerRole.Privileges,
		}
		owner.CreatedBy = "system"
		owner.UpdatedBy = "system"

		password := os.Getenv("OWNER_PASSWORD")
		if password == "" {
			password = "owner123"
		}
		if err := owner.SetPassword(password); err != nil {
			log.Printf("Warning: Failed to hash owner password: %v", err)
			return
		}

		if err := userRepo.Create(owner); err != nil {
			log.Printf("Warning: Failed to create owner user: %v", err)
		} else {
			log.Printf("Owner user created: %s (OWNER)", email)
		}
	}
}
