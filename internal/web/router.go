package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quizhall/quizhall/internal/services/auth"
	"github.com/quizhall/quizhall/internal/services/questions"
	"github.com/quizhall/quizhall/internal/services/roles"
	"github.com/quizhall/quizhall/internal/services/scoring"
	"github.com/quizhall/quizhall/internal/storage"
	"github.com/quizhall/quizhall/internal/web/handler"
	"github.com/quizhall/quizhall/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger          *slog.Logger
	Storage         storage.Storage
	AuthService     *auth.Service
	RoleResolver    *roles.Resolver
	QuestionService *questions.Service
	ScoringService  *scoring.Service
	StaticDir       string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	sessionMiddleware := middleware.Session(cfg.AuthService, cfg.RoleResolver)
	optionalSessionMiddleware := middleware.OptionalSession(cfg.AuthService, cfg.RoleResolver)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	homeHandler := handler.NewHomeHandler()
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.RoleResolver)
	quizHandler := handler.NewQuizHandler(cfg.QuestionService, cfg.ScoringService, cfg.Storage, cfg.Logger)
	adminHandler := handler.NewAdminHandler(cfg.QuestionService, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes (optional session so the nav and role redirect work)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalSessionMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/player/register", authHandler.RegisterPage).Methods(http.MethodGet)
	public.HandleFunc("/player/register", authHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/player/login", authHandler.PlayerLoginPage).Methods(http.MethodGet)
	public.HandleFunc("/player/login", authHandler.PlayerLogin).Methods(http.MethodPost)
	public.HandleFunc("/admin/login", authHandler.AdminLoginPage).Methods(http.MethodGet)
	public.HandleFunc("/admin/login", authHandler.AdminLogin).Methods(http.MethodPost)
	public.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodGet)

	// Player routes (session + player role)
	player := r.NewRoute().Subrouter()
	player.Use(flashMiddleware)
	player.Use(sessionMiddleware)
	player.Use(middleware.RequirePlayer)
	player.HandleFunc("/player/common", quizHandler.PlayerCommon).Methods(http.MethodGet)
	player.HandleFunc("/quiz", quizHandler.QuizPage).Methods(http.MethodGet)
	player.HandleFunc("/quiz", quizHandler.SubmitQuiz).Methods(http.MethodPost)

	// Admin routes (session + admin role)
	admin := r.NewRoute().Subrouter()
	admin.Use(flashMiddleware)
	admin.Use(sessionMiddleware)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/admin/home", adminHandler.Home).Methods(http.MethodGet)
	admin.HandleFunc("/admin/questions", adminHandler.ListQuestions).Methods(http.MethodGet)
	admin.HandleFunc("/admin/questions/add", adminHandler.AddQuestionPage).Methods(http.MethodGet)
	admin.HandleFunc("/admin/questions/add", adminHandler.AddQuestion).Methods(http.MethodPost)
	admin.HandleFunc("/admin/questions/edit/{id}", adminHandler.EditQuestionPage).Methods(http.MethodGet)
	admin.HandleFunc("/admin/questions/edit/{id}", adminHandler.EditQuestion).Methods(http.MethodPost)
	admin.HandleFunc("/admin/questions/delete/{id}", adminHandler.DeleteQuestionPage).Methods(http.MethodGet)
	admin.HandleFunc("/admin/questions/delete/{id}", adminHandler.DeleteQuestion).Methods(http.MethodPost)

	return r
}
