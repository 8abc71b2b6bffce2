package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studytrack-backend/internal/handlers"
	"studytrack-backend/internal/middleware"
	"studytrack-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	subjectHandler *handlers.SubjectHandler,
	studySessionHandler *handlers.StudySessionHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	flashcardHandler *handlers.FlashcardHandler,
	quizHandler *handlers.QuizHandler,
	assignmentHandler *handlers.AssignmentHandler,
	noteHandler *handlers.NoteHandler,
	dashboardHandler *handlers.DashboardHandler,
	jobHandler *handlers.JobHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout and profile require auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
			})
		})

		// ──── Subject Routes ────
		r.Route("/subjects", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", subjectHandler.Create)
			r.Get("/", subjectHandler.List)
			r.Get("/{id}", subjectHandler.Get)
			r.Put("/{id}", subjectHandler.Update)
			r.Delete("/{id}", subjectHandler.Delete)
		})

		// ──── Study Session Routes ────
		r.Route("/study-sessions", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", studySessionHandler.Create)
			r.Post("/log", studySessionHandler.Log)
			r.Get("/planner", studySessionHandler.Planner)
			r.Patch("/{id}/status", studySessionHandler.UpdateStatus)
			r.Delete("/{id}", studySessionHandler.Delete)
		})

		// ──── Analytics Routes ────
		r.Route("/analytics", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/summary", analyticsHandler.Summary)
			r.Get("/daily", analyticsHandler.Daily)
			r.Get("/subjects", analyticsHandler.BySubject)
			r.Get("/streak", analyticsHandler.Streak)
		})

		// ──── Flashcard Routes ────
		r.Route("/flashcards", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)

			r.Route("/decks", func(r chi.Router) {
				r.Post("/", flashcardHandler.CreateDeck)
				r.Get("/", flashcardHandler.ListDecks)
				r.Get("/{id}", flashcardHandler.GetDeck)
				r.Delete("/{id}", flashcardHandler.DeleteDeck)
				r.Post("/{id}/cards", flashcardHandler.CreateCard)
				r.Get("/{id}/due", flashcardHandler.Due)
				r.Post("/{id}/cards/{cardID}/review", flashcardHandler.Review)
				r.Delete("/{id}/cards/{cardID}", flashcardHandler.DeleteCard)
			})
		})

		// ──── Quiz Routes ────
		r.Route("/quizzes", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/generate", quizHandler.Generate)
			r.Get("/", quizHandler.List)
			r.Get("/{id}", quizHandler.Get)
			r.Post("/{id}/submit", quizHandler.Submit)
			r.Delete("/{id}", quizHandler.Delete)
		})

		// ──── Assignment Routes ────
		r.Route("/assignments", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", assignmentHandler.Create)
			r.Get("/", assignmentHandler.List)
			r.Put("/{id}", assignmentHandler.Update)
			r.Patch("/{id}/status", assignmentHandler.UpdateStatus)
			r.Delete("/{id}", assignmentHandler.Delete)
		})

		// ──── Note Routes ────
		r.Route("/notes", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", noteHandler.Create)
			r.Get("/", noteHandler.List)
			r.Get("/{id}", noteHandler.Get)
			r.Patch("/{id}", noteHandler.Update)
			r.Delete("/{id}", noteHandler.Delete)
		})

		// ──── Dashboard Routes ────
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", dashboardHandler.Get)
		})

		// ──── Job Routes ────
		r.Route("/jobs", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/{id}", jobHandler.GetJob)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
