package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pennyflow/pennyflow-backend/internal/handlers"
	"github.com/pennyflow/pennyflow-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(lm.LoggerMiddleware)

	auth := middleware.NewMiddleware(deps.Firebase)
	r.Use(auth.FirebaseAuth)

	ush := handlers.NewUserHandlers(deps)
	txh := handlers.NewTransactionHandlers(deps)
	bgh := handlers.NewBudgetHandlers(deps)
	rch := handlers.NewRecurringHandlers(deps)
	anh := handlers.NewAnalyticsHandlers(deps)

	r.Mount("/users", ush.UserRoutes())
	r.Mount("/transactions", txh.TransactionRoutes())
	r.Mount("/budgets", bgh.BudgetRoutes())
	r.Mount("/recurring", rch.RecurringRoutes())
	r.Mount("/analytics", anh.AnalyticsRoutes())

	return r
}
