package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"lucky-tours-api/internal/api/handlers"
	"lucky-tours-api/internal/api/routes"
	"lucky-tours-api/internal/middleware"
	"lucky-tours-api/internal/utils"
	"lucky-tours-api/internal/utils/storage"
	"lucky-tours-api/pkg/admin"
	"lucky-tours-api/pkg/jwt"
	"lucky-tours-api/pkg/message"
	"lucky-tours-api/pkg/notification"
	"lucky-tours-api/pkg/packages"
	"lucky-tours-api/pkg/payment"
	"lucky-tours-api/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Kolkata",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	notifier := notification.NewNotifier()

	// Repository
	userRepository := user.NewUserRepository(db)
	packageRepository := packages.NewPackageRepository(db)
	paymentRepository := payment.NewPaymentRepository(db)
	pendingRepository := payment.NewPendingPaymentRepository(db)
	messageRepository := message.NewMessageRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	packageService := packages.NewPackageService(packageRepository, userRepository, s3)
	paymentService := payment.NewPaymentService(paymentRepository, pendingRepository, userRepository, packageRepository, notifier)
	messageService := message.NewMessageService(messageRepository, userRepository, pendingRepository, notifier)
	adminService := admin.NewAdminService(userRepository, packageRepository, paymentRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	packageHandler := handlers.NewPackageHandler(packageService, validator)
	paymentHandler := handlers.NewPaymentHandler(paymentService, validator)
	adminHandler := handlers.NewAdminHandler(adminService)
	messageHandler := handlers.NewMessageHandler(messageService, validator)
	pendingPaymentHandler := handlers.NewPendingPaymentHandler(paymentService, validator)

	middlewares := middleware.NewMiddleware(userRepository)

	// routes
	routesConfig := routes.Config{
		App:                   app,
		UserHandler:           userHandler,
		PackageHandler:        packageHandler,
		PaymentHandler:        paymentHandler,
		AdminHandler:          adminHandler,
		MessageHandler:        messageHandler,
		PendingPaymentHandler: pendingPaymentHandler,
		Middleware:            middlewares,
		JWTService:            jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
