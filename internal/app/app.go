package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"taskboard/internal/auth"
	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/handlers"
	"taskboard/internal/logger"
	"taskboard/internal/middleware"
	"taskboard/internal/repository/inmemory"
	"taskboard/internal/repository/postgres"
	"taskboard/internal/seed"
	"taskboard/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const Version = "1.0.0"

// repositories - выбранная реализация хранилища, разложенная по интерфейсам сервисов.
type repositories struct {
	users      service.UserRepository
	categories service.CategoryRepository
	tasks      service.TaskRepository
	reports    service.ReportRepository
	health     handlers.HealthChecker
}

type App struct {
	config    *config.Config
	server    *http.Server
	handler   http.Handler
	repos     repositories
	dashboard service.DashboardCache
	shutdowns []func() // функции для graceful shutdown, в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

// Init собирает зависимости: логгер, хранилище, начальные данные, кэш, сервисы и маршрутизатор.
func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development, a.config.Logging.Level); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.onShutdown(func() {
		logger.Info("App: Завершение работы логгирования...")
		logger.Sync()
	})
	handlers.ExposeInternalErrors(a.config.Logging.Development)

	if err := a.initStorage(ctx); err != nil {
		return err
	}

	hasher, err := auth.NewBcryptHasher(a.config.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("инициализация хеширования паролей: %w", err)
	}
	tokens, err := auth.NewTokenManager(a.config.Auth.JWTSecret, a.config.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("инициализация токенов: %w", err)
	}

	if err := a.initSeed(ctx, hasher); err != nil {
		return err
	}
	if err := a.initCache(ctx); err != nil {
		return err
	}

	clock := service.NewClock(a.config.Location())
	authService := service.NewAuthService(a.repos.users, hasher, tokens)
	taskService := service.NewTaskService(a.repos.tasks, a.repos.categories, a.repos.reports, clock)
	categoryService := service.NewCategoryService(a.repos.categories, a.repos.reports, a.dashboard)
	adminService := service.NewAdminService(a.repos.users, a.repos.tasks, taskService, a.repos.reports, a.dashboard, clock)

	router := a.newRouter(tokens, routes{
		auth:       handlers.NewAuthHandler(authService),
		tasks:      handlers.NewTaskHandler(taskService),
		categories: handlers.NewCategoryHandler(categoryService),
		admin:      handlers.NewAdminHandler(adminService),
		health:     handlers.NewHealthHandler(a.repos.health, Version),
	})
	a.handler = otelhttp.NewHandler(router, "taskboard")

	logger.Info("App: Приложение инициализировано",
		zap.String("repository", a.config.Repository.Type),
		zap.Bool("cache", a.config.Cache.Enabled),
		zap.String("timezone", a.config.App.Timezone))
	return nil
}

func (a *App) initStorage(ctx context.Context) error {
	switch a.config.Repository.Type {
	case config.RepositoryPostgres:
		if a.config.Database.Migrate {
			if err := postgres.Migrate(a.config.Database.URL); err != nil {
				return fmt.Errorf("миграции: %w", err)
			}
		}
		storage, err := postgres.New(ctx, a.config.Database)
		if err != nil {
			return fmt.Errorf("подключение к базе: %w", err)
		}
		a.onShutdown(storage.Close)
		a.repos = repositories{
			users:      storage.Users(),
			categories: storage.Categories(),
			tasks:      storage.Tasks(),
			reports:    storage.Reports(),
			health:     storage,
		}
	default:
		storage := inmemory.New()
		a.repos = repositories{
			users:      storage.Users(),
			categories: storage.Categories(),
			tasks:      storage.Tasks(),
			reports:    storage.Reports(),
			health:     storage,
		}
	}
	return nil
}

func (a *App) initSeed(ctx context.Context, hasher service.PasswordHasher) error {
	if !a.config.Seed.Enabled {
		return nil
	}
	f, err := seed.Load(a.config.Seed.File)
	if err != nil {
		return err
	}
	if err := seed.NewSeeder(a.repos.users, a.repos.categories, hasher).Apply(ctx, f); err != nil {
		return fmt.Errorf("начальные данные: %w", err)
	}
	return nil
}

// initCache подключает Redis для сводки администратора. Без кэша сервисы работают напрямую с хранилищем.
func (a *App) initCache(ctx context.Context) error {
	if !a.config.Cache.Enabled {
		return nil
	}
	client, err := cache.Connect(ctx, a.config.Cache)
	if err != nil {
		return fmt.Errorf("подключение к redis: %w", err)
	}
	a.onShutdown(func() {
		if err := client.Close(); err != nil {
			logger.Error("App: Ошибка закрытия redis", err)
		}
	})
	a.dashboard = cache.NewDashboardCache(client, a.config.Cache.StatsTTL)
	return nil
}

func (a *App) onShutdown(fn func()) {
	a.shutdowns = append(a.shutdowns, fn)
}

// Handler возвращает собранный обработчик; доступен после Init.
func (a *App) Handler() http.Handler {
	return a.handler
}

type routes struct {
	auth       handlers.AuthHandler
	tasks      handlers.TaskHandler
	categories handlers.CategoryHandler
	admin      handlers.AdminHandler
	health     handlers.HealthHandler
}

func (a *App) newRouter(tokens middleware.TokenValidator, h routes) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit(a.config.RateLimit.RequestsPerMinute))
	r.Use(chimw.Timeout(a.config.Server.RequestTimeout))

	authenticate := middleware.Authenticate(tokens)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.auth.Register) // POST /api/auth/register
			r.Post("/login", h.auth.Login)       // POST /api/auth/login

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/logout", h.auth.Logout)
				r.Get("/profile", h.auth.Profile)
				r.Put("/profile", h.auth.UpdateProfile)
				r.Put("/change-password", h.auth.ChangePassword)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/", h.tasks.ListTasks)  // GET /api/tasks
			r.Post("/", h.tasks.PostTask)  // POST /api/tasks
			r.Get("/stats", h.tasks.Stats) // GET /api/tasks/stats

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.tasks.GetTaskByID)
				r.Put("/", h.tasks.UpdateTaskByID)
				r.Delete("/", h.tasks.DeleteTaskByID)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.categories.ListCategories) // GET /api/categories

			r.Group(func(r chi.Router) {
				r.Use(authenticate, middleware.RequireAdmin)
				r.Get("/stats/overview", h.categories.Stats)
				r.Post("/", h.categories.PostCategory)
				r.Put("/{id}", h.categories.UpdateCategory)
				r.Delete("/{id}", h.categories.DeleteCategory)
			})

			r.Get("/{id}", h.categories.GetCategory) // GET /api/categories/{id}
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticate, middleware.RequireAdmin)
			r.Get("/dashboard/stats", h.admin.DashboardStats)
			r.Get("/tasks", h.admin.ListTasks)
			r.Get("/users", h.admin.ListUsers)

			r.Route("/users/{userId}", func(r chi.Router) {
				r.Get("/", h.admin.UserDetails)
				r.Put("/role", h.admin.UpdateUserRole)
				r.Delete("/", h.admin.DeleteUser)
			})
		})
	})

	r.Get("/health", h.health.HealthCheck)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Route not found"}` + "\n"))
	})
	return r
}

// Run запускает HTTP-сервер и ждёт отмены ctx, после чего корректно его останавливает.
func (a *App) Run(ctx context.Context) error {
	if err := a.Init(ctx); err != nil {
		a.Close()
		return err
	}
	defer a.Close()

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.handler,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("App: Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http сервер: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("App: Остановка сервера...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("остановка сервера: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close освобождает ресурсы в порядке, обратном инициализации.
func (a *App) Close() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}
