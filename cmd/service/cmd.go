package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/pennyflow/pennyflow-backend/internal/bootstrap"
	"github.com/pennyflow/pennyflow-backend/internal/config"
	"github.com/pennyflow/pennyflow-backend/internal/services"
	"github.com/pennyflow/pennyflow-backend/internal/store"
	"github.com/pennyflow/pennyflow-backend/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

// Scheduled job: materializes due recurring transactions for every account,
// then exits. Meant to run once per invocation (Cloud Run job / Cloud
// Scheduler). Running it as the only writer keeps processing race-free.
func main() {
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	ustore := store.NewUserStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)
	rstore := store.NewRecurringStore(bs.Firestore)

	rserv := services.NewRecurringService(rstore, tstore, cfg.CatchUpPolicy)

	ctx := logger.ToContext(context.Background(), bs.Log)

	uids, err := ustore.ListUserIDs(ctx)
	exitOnError("failed to list users", err, bs.Log)

	var generated, failed int
	for _, uid := range uids {
		log, uctx := logger.With(ctx, "uid", uid)
		result, err := rserv.ProcessDue(uctx, uid)
		if err != nil {
			log.Error("recurring processing failed for user", "error", err)
			failed++
			continue
		}
		generated += result.GeneratedCount
	}

	bs.Log.Info("recurring processing run complete",
		"users", len(uids),
		"generated", generated,
		"failed", failed,
	)
	if failed > 0 {
		os.Exit(1)
	}
}
