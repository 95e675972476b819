package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/unilink-app/unilink-backend/src/config"
	"github.com/unilink-app/unilink-backend/src/controllers"
	"github.com/unilink-app/unilink-backend/src/emails"
	"github.com/unilink-app/unilink-backend/src/lib"
	"github.com/unilink-app/unilink-backend/src/middleware"
	"github.com/unilink-app/unilink-backend/src/models"
	"github.com/unilink-app/unilink-backend/src/routes"
	"github.com/unilink-app/unilink-backend/src/store"
	"github.com/unilink-app/unilink-backend/src/store/mongostore"
	"github.com/unilink-app/unilink-backend/src/ws"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()

	db, err := lib.ConnectDB(ctx, cfg.MongoURL, cfg.MongoDB, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	if err := lib.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to create indexes")
	}

	st := mongostore.New(db)

	var mailer emails.Sender
	if cfg.MailConfigured() {
		mailer = emails.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, logger)
	} else {
		logger.Warn().Msg("SMTP not configured, emails disabled")
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	if err := seedSuperAdmin(ctx, st.Users, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed super admin")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 5 * 1024 * 1024,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientURL,
		AllowCredentials: true,
	}))

	authController := &controllers.AuthController{
		Users: st.Users, Mail: mailer, Log: logger,
		JWTSecret: cfg.JWTSecret, ClientURL: cfg.ClientURL,
	}
	userController := &controllers.UserController{
		Users: st.Users, Connections: st.Connections,
		Posts: st.Posts, Events: st.Events, Log: logger,
	}
	connectionController := &controllers.ConnectionController{
		Connections: st.Connections, Users: st.Users, Notifications: st.Notifications,
		Mail: mailer, Hub: hub, Log: logger, ClientURL: cfg.ClientURL,
	}
	notificationController := &controllers.NotificationController{
		Notifications: st.Notifications, Users: st.Users, Posts: st.Posts, Log: logger,
	}
	chatController := &controllers.ChatController{
		Chats: st.Chats, Messages: st.Messages, Users: st.Users, Log: logger,
	}
	messageController := &controllers.MessageController{
		Chats: st.Chats, Messages: st.Messages, Users: st.Users, Hub: hub, Log: logger,
	}
	postController := &controllers.PostController{
		Posts: st.Posts, Users: st.Users, Notifications: st.Notifications,
		Mail: mailer, Hub: hub, Log: logger, ClientURL: cfg.ClientURL,
	}
	eventController := &controllers.EventController{
		Events: st.Events, Users: st.Users, Notifications: st.Notifications, Hub: hub, Log: logger,
	}
	adminController := &controllers.AdminController{
		Users: st.Users, Posts: st.Posts, Events: st.Events, Log: logger,
	}

	protect := middleware.ProtectRoute(st.Users, cfg.JWTSecret)
	protectUser := middleware.ProtectRoute(st.Users, cfg.JWTSecret, models.RoleUser)
	protectAdmin := middleware.ProtectRoute(st.Users, cfg.JWTSecret, models.RoleAdmin)

	routes.AuthRoutes(app, authController, protect)
	routes.ConnectionRoutes(app, connectionController, protect)
	routes.NotificationRoutes(app, notificationController, protect)
	routes.PostRoutes(app, postController, protect)
	routes.EventRoutes(app, eventController, protect)
	routes.ChatRoutes(app, chatController, messageController, protect)
	routes.AdminRoutes(app, adminController, protectAdmin)
	routes.WsRoutes(app, hub, st.Users, cfg.JWTSecret)
	// Last: the public profile catch-all lives at the root.
	routes.UserRoutes(app, userController, protect, protectUser)

	app.Static("/", "./public")

	logger.Info().Str("port", cfg.Port).Msg("server listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// seedSuperAdmin makes sure the configured admin account exists so the
// back-office is reachable on a fresh database.
func seedSuperAdmin(ctx context.Context, users store.UserStore, cfg *config.Config, logger zerolog.Logger) error {
	if cfg.SuperAdminEmail == "" || cfg.SuperAdminPassword == "" {
		logger.Warn().Msg("super admin credentials not configured, skipping seed")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := users.GetByEmail(ctx, cfg.SuperAdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperAdminPassword), 11)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     cfg.SuperAdminName,
		Username: "superadmin",
		Email:    cfg.SuperAdminEmail,
		Password: string(hashed),
		Role:     models.RoleAdmin,
		Headline: "UniLink Administrator",
	}
	if err := users.Create(ctx, &admin); err != nil {
		return err
	}

	logger.Info().Str("email", cfg.SuperAdminEmail).Msg("seeded super admin account")
	return nil
}
