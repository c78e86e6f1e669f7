package routes

import (
	"github.com/gofiber/fiber/v2"

	"lucky-tours-api/domain"
	"lucky-tours-api/entities"
	"lucky-tours-api/internal/api/handlers"
	"lucky-tours-api/internal/api/presenters"
	"lucky-tours-api/internal/middleware"
	"lucky-tours-api/pkg/jwt"
)

type Config struct {
	App                   *fiber.App
	UserHandler           handlers.UserHandler
	PackageHandler        handlers.PackageHandler
	PaymentHandler        handlers.PaymentHandler
	AdminHandler          handlers.AdminHandler
	MessageHandler        handlers.MessageHandler
	PendingPaymentHandler handlers.PendingPaymentHandler
	Middleware            middleware.Middleware
	JWTService            jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Admin()
	c.Packages()
	c.User()
	c.Notifications()
	c.PendingPayments()
	c.GuestRoute()
	c.NotFound()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		auth.Put("/profile", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateProfile)
		auth.Put("/change-password", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.ChangePassword)
	}
}

func (c *Config) Admin() {
	adminOnly := c.Middleware.OnlyRoles(entities.RoleAdmin, entities.RoleSuperadmin)
	admin := c.App.Group("/api/admin", c.Middleware.AuthMiddleware(c.JWTService), adminOnly)
	{
		admin.Get("/dashboard", c.AdminHandler.GetDashboard)

		admin.Get("/users", c.UserHandler.GetUsers)
		admin.Post("/users", c.UserHandler.CreateUser)
		admin.Post("/users/import", c.UserHandler.ImportUsers)
		admin.Get("/users/export", c.UserHandler.ExportUsers)
		admin.Get("/users/:id", c.AdminHandler.GetUserDetail)
		admin.Put("/users/:id", c.UserHandler.UpdateUser)
		admin.Delete("/users/:id", c.UserHandler.DeleteUser)

		admin.Get("/payments", c.PaymentHandler.GetPayments)
		admin.Post("/payments", c.PaymentHandler.CreatePayment)
		admin.Put("/payments/:id", c.PaymentHandler.UpdatePayment)
		admin.Delete("/payments/:id", c.PaymentHandler.DeletePayment)

		admin.Get("/messages", c.MessageHandler.GetMessages)
		admin.Post("/messages", c.MessageHandler.SendMessage)
	}
}

// Package reads are public; mutations require an admin token.
func (c *Config) Packages() {
	adminOnly := c.Middleware.OnlyRoles(entities.RoleAdmin, entities.RoleSuperadmin)
	pkg := c.App.Group("/api/packages")
	{
		pkg.Get("/", c.PackageHandler.GetPackages)
		pkg.Get("/current", c.PackageHandler.GetCurrentPackage)

		pkg.Post("/", c.Middleware.AuthMiddleware(c.JWTService), adminOnly, c.PackageHandler.CreatePackage)
		pkg.Put("/current/update", c.Middleware.AuthMiddleware(c.JWTService), adminOnly, c.PackageHandler.UpdateCurrent)
		pkg.Get("/:id", c.PackageHandler.GetPackage)
		pkg.Put("/:id", c.Middleware.AuthMiddleware(c.JWTService), adminOnly, c.PackageHandler.UpdatePackage)
		pkg.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), adminOnly, c.PackageHandler.DeletePackage)
		pkg.Put("/:id/current", c.Middleware.AuthMiddleware(c.JWTService), adminOnly, c.PackageHandler.SetCurrent)
		pkg.Post("/:id/images", c.Middleware.AuthMiddleware(c.JWTService), adminOnly, c.PackageHandler.UploadPackageImage)
	}
}

func (c *Config) User() {
	user := c.App.Group("/api/user", c.Middleware.AuthMiddleware(c.JWTService))
	{
		user.Get("/dashboard", c.PaymentHandler.GetMyDashboard)
		user.Get("/payments/:id", c.PaymentHandler.GetMyPayment)
		user.Get("/packages/playground", c.PackageHandler.GetPackages)
		user.Get("/live-videos", c.PackageHandler.GetLiveVideos)
	}
}

func (c *Config) Notifications() {
	adminOnly := c.Middleware.OnlyRoles(entities.RoleAdmin, entities.RoleSuperadmin)
	notif := c.App.Group("/api/notifications", c.Middleware.AuthMiddleware(c.JWTService), adminOnly)
	{
		notif.Post("/sms/single", c.MessageHandler.SendSingleSMS)
		notif.Post("/sms/bulk", c.MessageHandler.SendBulkSMS)
		notif.Post("/email/single", c.MessageHandler.SendSingleEmail)
		notif.Post("/email/bulk", c.MessageHandler.SendBulkEmail)
		notif.Post("/payment-reminders", c.MessageHandler.SendPaymentReminders)
	}
}

func (c *Config) PendingPayments() {
	adminOnly := c.Middleware.OnlyRoles(entities.RoleAdmin, entities.RoleSuperadmin)
	pending := c.App.Group("/api/pending", c.Middleware.AuthMiddleware(c.JWTService), adminOnly)
	{
		pending.Get("/", c.PendingPaymentHandler.GetPendingPayments)
		pending.Get("/pending", c.PendingPaymentHandler.GetOnlyPending)
		pending.Post("/import", c.PendingPaymentHandler.ImportPendingPayments)
		pending.Put("/:id", c.PendingPaymentHandler.UpdatePendingPayment)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func (c *Config) NotFound() {
	c.App.Use(func(ctx *fiber.Ctx) error {
		return presenters.ErrorResponse(ctx, fiber.StatusNotFound, domain.MessageRouteNotFound, nil)
	})
}
