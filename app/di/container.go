package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"willvault-auth/app/cache"
	"willvault-auth/app/config"
	"willvault-auth/app/driver/kratos"
	"willvault-auth/app/driver/mailer"
	"willvault-auth/app/driver/postgres"
	"willvault-auth/app/port"
	"willvault-auth/app/rest"
	"willvault-auth/app/usecase"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB           *postgres.DB
	KratosClient *kratos.Client

	// Ports
	Passcodes       port.PasscodeUsecase
	Users           port.UserRepository
	Sessions        port.SessionProvider
	Resolver        port.IdentityResolver
	SessionRegistry *cache.Registry
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var err error

	container.DB, err = postgres.NewConnection(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	container.KratosClient, err = kratos.NewClient(cfg, logger)
	if err != nil {
		container.DB.Close()
		return nil, fmt.Errorf("failed to initialize kratos client: %w", err)
	}

	emailSender, err := mailer.NewSMTPMailer(cfg, logger)
	if err != nil {
		container.DB.Close()
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	// Repositories
	passcodeRepository := postgres.NewPasscodeRepository(container.DB.Pool(), logger)
	container.Users = postgres.NewUserRepository(container.DB.Pool(), logger)

	// Session plumbing
	container.Sessions = kratos.NewSessionProvider(container.KratosClient, logger)
	container.Resolver = usecase.NewResolveIdentityUseCase(container.Sessions, container.Users, logger)
	container.SessionRegistry = cache.NewRegistry(container.Resolver, container.Sessions, cfg.SessionCacheTTL, logger)

	// Usecases
	container.Passcodes = usecase.NewPasscodeService(passcodeRepository, container.Users, emailSender, logger)

	logger.Info("container initialized")

	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	return rest.NewRouter(rest.RouterConfig{
		Logger:      c.Logger,
		Passcodes:   c.Passcodes,
		Registry:    c.SessionRegistry,
		Database:    c.DB,
		EnableDebug: c.Config.LogLevel == "debug",
	})
}

// Close closes all resources
func (c *Container) Close() error {
	if c.DB != nil {
		c.DB.Close()
	}
	c.Logger.Info("container closed")
	return nil
}
