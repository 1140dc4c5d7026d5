package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/litboard/api/internal/cache"
	"github.com/litboard/api/internal/database/postgres"
	applog "github.com/litboard/api/internal/pkg/log"
	platformconfig "github.com/litboard/api/internal/platform/config"
	platformemail "github.com/litboard/api/internal/platform/email"
	"github.com/litboard/api/internal/sessions"
	"github.com/litboard/api/posts"
	postHandlers "github.com/litboard/api/posts/handlers"
	postRepository "github.com/litboard/api/posts/repository"
	postServices "github.com/litboard/api/posts/services"
	"github.com/litboard/api/users"
	userHandlers "github.com/litboard/api/users/handlers"
	userRepository "github.com/litboard/api/users/repository"
	userServices "github.com/litboard/api/users/services"
	"github.com/litboard/api/votes"
	voteHandlers "github.com/litboard/api/votes/handlers"
	voteRepository "github.com/litboard/api/votes/repository"
	voteServices "github.com/litboard/api/votes/services"
)

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load platform config: %v", err)
	}

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database.Postgres)
	if err != nil {
		log.Fatalf("Failed to create postgres client: %v", err)
	}
	defer pgClient.Close()

	cacheClient, err := cache.NewClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to create redis client: %v", err)
	}
	defer cacheClient.Close()

	var emailSender platformemail.Sender
	if cfg.Email.SMTPHost != "" {
		emailSender, err = platformemail.NewSMTPSender(
			cfg.Email.SMTPHost,
			strconv.Itoa(cfg.Email.SMTPPort),
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPass,
		)
		if err != nil {
			log.Fatalf("Failed to create SMTP sender: %v", err)
		}
	} else {
		applog.Warn("SMTP not configured; password reset emails will be logged only")
		emailSender = logSender{}
	}

	sessionStore := sessions.NewStore(cacheClient, cfg.Session.Secret, cfg.Session.TTL)

	// Repositories
	userRepo := userRepository.NewPostgresRepository(pgClient)
	postRepo := postRepository.NewPostgresRepository(pgClient)
	voteRepo := voteRepository.NewPostgresVoteRepository(pgClient)

	// Services
	userService := userServices.NewUserService(userRepo, cacheClient, emailSender, cfg.Email.From, cfg.App.WebDomain, cfg.Session.ResetTokenTTL)
	postService := postServices.NewPostService(postRepo)
	voteService := voteServices.NewVoteService(voteRepo, postRepo)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			applog.Error("Unhandled error on %s: %v", c.Path(), err)
			return c.Status(code).JSON(fiber.Map{
				"code":    "INTERNAL_ERROR",
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.WebDomain,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pgClient.HealthCheck(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		if err := cacheClient.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	cookieCfg := userHandlers.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure}

	users.RegisterRoutes(app, &users.UsersHandlers{
		UserHandler: userHandlers.NewUserHandler(userService, sessionStore, cookieCfg),
	}, &users.RouterConfig{Store: sessionStore, CookieName: cfg.Session.CookieName})

	posts.RegisterRoutes(app, &posts.PostsHandlers{
		PostHandler: postHandlers.NewPostHandler(postService),
	}, &posts.RouterConfig{Store: sessionStore, CookieName: cfg.Session.CookieName})

	votes.RegisterRoutes(app, &votes.VotesHandlers{
		VoteHandler: voteHandlers.NewVoteHandler(voteService),
	}, &votes.RouterConfig{Store: sessionStore, CookieName: cfg.Session.CookieName})

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		applog.Info("Shutting down server")
		if err := app.Shutdown(); err != nil {
			applog.Error("Server shutdown failed: %v", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	applog.Info("Server listening on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// logSender is the development fallback when SMTP is not configured.
type logSender struct{}

func (logSender) Send(ctx context.Context, msg platformemail.Message) error {
	applog.InfoWithContext(ctx, "Email to %v: %s", msg.To, msg.Subject)
	return nil
}
