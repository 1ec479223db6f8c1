package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	appAuth "github.com/kzhao/applytrack/internal/app/auth"
	appControllers "github.com/kzhao/applytrack/internal/app/controllers"
	appMigrations "github.com/kzhao/applytrack/internal/app/migrations"
	appRepos "github.com/kzhao/applytrack/internal/app/repositories"
	appRoutes "github.com/kzhao/applytrack/internal/app/routes"
	appServices "github.com/kzhao/applytrack/internal/app/services"
	"github.com/kzhao/applytrack/internal/config"
	"github.com/kzhao/applytrack/internal/db"
	"github.com/kzhao/applytrack/internal/middleware"
	pkgAuth "github.com/kzhao/applytrack/internal/pkg/auth"
	"github.com/kzhao/applytrack/internal/pkg/filestorage"
	"github.com/kzhao/applytrack/internal/pkg/helpers"
	"github.com/kzhao/applytrack/internal/pkg/logger"
	"github.com/kzhao/applytrack/internal/seed"
)

// Dependencies holds the wired application graph.
type Dependencies struct {
	Repos        *appRepos.Repositories
	Database     *db.PostgresDB
	FileStorage  *filestorage.LocalStorage
	JWTService   *pkgAuth.JWTService
	AuthzService *appAuth.AuthorizationService

	AuthService        *appServices.AuthService
	StudentService     *appServices.StudentService
	ApplicationService *appServices.ApplicationService
	RequirementService *appServices.RequirementService
	DocumentService    *appServices.DocumentService
	ParentService      *appServices.ParentService
	UniversityService  *appServices.UniversityService

	Controllers *appRoutes.Controllers
}

// LoadConfigAndSetupLogger loads configuration and configures the global logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().
		Str("level", cfg.Logging.Level).
		Str("format", cfg.Logging.Format).
		Msg("Logger configured")

	return cfg, nil
}

// SetupDatabase connects to PostgreSQL, runs migrations and seeds the
// university catalog.
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx := context.Background()
	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	logger.Info().Msg("Database migrations applied")

	if err := seed.SeedUniversities(ctx, appRepos.NewUniversityRepository(database.Pool)); err != nil {
		logger.Error().Err(err).Msg("Failed to seed university catalog, proceeding anyway")
	}

	return database, nil
}

// BuildDependencies wires repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) (*Dependencies, error) {
	deps := &Dependencies{Database: database}
	pool := database.Pool

	deps.Repos = appRepos.NewRepositories(pool)

	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = storage

	tokenExpiry := helpers.ParseDuration(cfg.JWT.TokenExpiration, 168*time.Hour)
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    tokenExpiry,
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.User,
		deps.Repos.ParentLink,
		map[appAuth.EntityKind]appAuth.IOwnerResolver{
			appAuth.EntityApplication: deps.Repos.Application,
			appAuth.EntityRequirement: deps.Repos.Requirement,
			appAuth.EntityDocument:    deps.Repos.Document,
		},
	)

	deps.AuthService = appServices.NewAuthService(deps.Repos.User, deps.Repos.ParentLink, database, deps.JWTService)
	deps.StudentService = appServices.NewStudentService(deps.Repos.User)
	deps.ApplicationService = appServices.NewApplicationService(deps.Repos.Application, deps.Repos.University)
	deps.RequirementService = appServices.NewRequirementService(deps.Repos.Requirement, deps.AuthzService)
	deps.DocumentService = appServices.NewDocumentService(deps.Repos.Document, storage, deps.AuthzService)
	deps.ParentService = appServices.NewParentService(
		deps.Repos.User,
		deps.Repos.ParentLink,
		deps.Repos.Application,
		deps.Repos.ParentNote,
		deps.AuthzService,
	)
	deps.UniversityService = appServices.NewUniversityService(deps.Repos.University)

	deps.Controllers = &appRoutes.Controllers{
		Auth:        appControllers.NewAuthController(deps.AuthService, tokenExpiry, cfg.IsProduction()),
		Student:     appControllers.NewStudentController(deps.StudentService),
		Application: appControllers.NewApplicationController(deps.ApplicationService, deps.RequirementService),
		Document:    appControllers.NewDocumentController(deps.DocumentService),
		Parent:      appControllers.NewParentController(deps.ParentService),
		University:  appControllers.NewUniversityController(deps.UniversityService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.ErrorHandlerMiddleware())

	appRoutes.RegisterRoutes(router, deps.Controllers, deps.JWTService, deps.AuthzService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
