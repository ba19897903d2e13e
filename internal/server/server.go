package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/dispensa/internal/archive"
	"github.com/dukerupert/dispensa/internal/auth"
	"github.com/dukerupert/dispensa/internal/checkout"
	"github.com/dukerupert/dispensa/internal/config"
	"github.com/dukerupert/dispensa/internal/handler"
	"github.com/dukerupert/dispensa/internal/mealplan"
	"github.com/dukerupert/dispensa/internal/middleware"
	"github.com/dukerupert/dispensa/internal/pantry"
	"github.com/dukerupert/dispensa/internal/recipeimport"
	"github.com/dukerupert/dispensa/internal/store"
	ws "github.com/dukerupert/dispensa/internal/websocket"
)

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	authH       *handler.AuthHandler
	pageH       *handler.PageHandler
	shoppingH   *handler.ShoppingHandler
	pantryH     *handler.PantryHandler
	ledgerH     *handler.LedgerHandler
	mealPlanH   *handler.MealPlanHandler
	recipeH     *handler.RecipeHandler
	sessions    *auth.Sessions
	userStore   *store.UserStore
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

// New wires stores, services and handlers for cfg. The configured user row
// is created on first start.
func New(ctx context.Context, db *sql.DB, cfg config.Config, logger *slog.Logger) (*Server, error) {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	pantryStore := store.NewPantryStore(db)
	shoppingStore := store.NewShoppingStore(db)
	ledgerStore := store.NewLedgerStore(db)
	mealPlanStore := store.NewMealPlanStore(db, cfg.Location)
	recipeStore := store.NewRecipeStore(db)

	user, err := userStore.GetOrCreate(ctx, cfg.Username)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	logger.Info("user ready", "username", user.Username, "id", user.ID)

	creds, err := auth.NewCredentials(cfg.Username, cfg.Password, cfg.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}
	if cfg.SessionSecret == "" {
		logger.Warn("DISPENSA_SESSION_SECRET not set, sessions will not survive a restart")
	}
	sessions, err := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL, cfg.SecureCookie)
	if err != nil {
		return nil, fmt.Errorf("sessions: %w", err)
	}

	archiveStore := archive.New(cfg.S3)
	if cfg.S3.Configured() {
		logger.Info("recipe archive enabled", "bucket", cfg.S3.Bucket)
	}

	reconciler := pantry.NewReconciler(pantryStore, cfg.StrictUnits, logger.With("component", "pantry"))
	checkoutSvc := checkout.NewService(shoppingStore, ledgerStore, reconciler, cfg.Location, logger.With("component", "checkout"))
	mealPlanSvc := mealplan.NewService(mealPlanStore, cfg.Location)

	pageH := handler.NewPageHandler(logger.With("component", "page"))

	return &Server{
		db:          db,
		hub:         hub,
		authH:       handler.NewAuthHandler(creds, sessions, pageH, logger.With("component", "auth")),
		pageH:       pageH,
		shoppingH:   handler.NewShoppingHandler(shoppingStore, reconciler, checkoutSvc, hub, logger.With("component", "shopping")),
		pantryH:     handler.NewPantryHandler(pantryStore, reconciler, hub, logger.With("component", "pantry")),
		ledgerH:     handler.NewLedgerHandler(ledgerStore, hub, logger.With("component", "ledger")),
		mealPlanH:   handler.NewMealPlanHandler(mealPlanSvc, hub, logger.With("component", "meal_plan")),
		recipeH:     handler.NewRecipeHandler(recipeStore, recipeimport.DocumentExtractor{}, archiveStore, hub, logger.With("component", "recipe")),
		sessions:    sessions,
		userStore:   userStore,
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}, nil
}

func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("GET /login", s.authH.LoginPage)
	outerMux.HandleFunc("POST /api/auth/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.Handle("GET /static/", handler.Static())
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessions, s.userStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check", "error", err)
		status = "unavailable"
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/logout", s.authH.Logout)

	// Pages
	mux.HandleFunc("GET /{$}", s.pageH.Home)
	mux.HandleFunc("GET /shopping", s.pageH.View)
	mux.HandleFunc("GET /pantry", s.pageH.View)
	mux.HandleFunc("GET /budget", s.pageH.View)
	mux.HandleFunc("GET /history", s.pageH.View)
	mux.HandleFunc("GET /meal-plan", s.pageH.View)
	mux.HandleFunc("GET /recipes", s.pageH.View)

	// Shopping list
	mux.HandleFunc("GET /api/shopping", s.shoppingH.List)
	mux.HandleFunc("POST /api/shopping", s.shoppingH.Create)
	mux.HandleFunc("POST /api/shopping/checkout", s.shoppingH.Checkout)
	mux.HandleFunc("PUT /api/shopping/{id}", s.shoppingH.Update)
	mux.HandleFunc("DELETE /api/shopping/{id}", s.shoppingH.Delete)
	mux.HandleFunc("POST /api/shopping/{id}/check", s.shoppingH.Check)
	mux.HandleFunc("POST /api/shopping/{id}/to-pantry", s.shoppingH.ToPantry)

	// Pantry
	mux.HandleFunc("GET /api/pantry", s.pantryH.List)
	mux.HandleFunc("POST /api/pantry", s.pantryH.Create)
	mux.HandleFunc("PUT /api/pantry/{id}", s.pantryH.Update)
	mux.HandleFunc("DELETE /api/pantry/{id}", s.pantryH.Delete)
	mux.HandleFunc("POST /api/pantry/{id}/to-shopping", s.pantryH.ToShopping)

	// Budget and history
	mux.HandleFunc("GET /api/budget/{month}", s.ledgerH.Budget)
	mux.HandleFunc("PUT /api/budget/{month}/amount", s.ledgerH.SetAmount)
	mux.HandleFunc("PUT /api/budget/{month}/used", s.ledgerH.SetUsed)
	mux.HandleFunc("GET /api/history/{month}", s.ledgerH.History)
	mux.HandleFunc("GET /api/history/{month}/report.pdf", s.ledgerH.Report)

	// Meal plan
	mux.HandleFunc("GET /api/meal-plan/week", s.mealPlanH.Week)
	mux.HandleFunc("PUT /api/meal-plan/{date}/{slot}", s.mealPlanH.SetSlot)
	mux.HandleFunc("POST /api/meal-plan/duplicate", s.mealPlanH.Duplicate)

	// Recipes
	mux.HandleFunc("GET /api/recipes", s.recipeH.List)
	mux.HandleFunc("POST /api/recipes", s.recipeH.Create)
	mux.HandleFunc("POST /api/recipes/import", s.recipeH.Import)
	mux.HandleFunc("GET /api/recipes/{id}", s.recipeH.Get)
	mux.HandleFunc("PUT /api/recipes/{id}", s.recipeH.Update)
	mux.HandleFunc("DELETE /api/recipes/{id}", s.recipeH.Delete)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))
}
