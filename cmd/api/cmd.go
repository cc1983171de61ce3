package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/pennyflow/pennyflow-backend/internal/bootstrap"
	"github.com/pennyflow/pennyflow-backend/internal/config"
	"github.com/pennyflow/pennyflow-backend/internal/handlers"
	"github.com/pennyflow/pennyflow-backend/internal/response"
	"github.com/pennyflow/pennyflow-backend/internal/router"
	"github.com/pennyflow/pennyflow-backend/internal/services"
	"github.com/pennyflow/pennyflow-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)
	bstore := store.NewBudgetStore(bs.Firestore)
	rstore := store.NewRecurringStore(bs.Firestore)
	fstore := store.NewFileStore(bs.Storage, cfg.StorageBucket)

	// services
	userv := services.NewUserService(ustore)
	tserv := services.NewTransactionService(tstore, fstore)
	bserv := services.NewBudgetService(bstore, tstore)
	rserv := services.NewRecurringService(rstore, tstore, cfg.CatchUpPolicy)
	anserv := services.NewAnalyticsService(tstore, bstore, ustore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.UserSvc = userv
	deps.TransactionSvc = tserv
	deps.BudgetSvc = bserv
	deps.RecurringSvc = rserv
	deps.AnalyticsSvc = anserv

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
