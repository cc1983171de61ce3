package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/pennyflow/pennyflow-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        *auth.Client

	UserSvc        UserService
	TransactionSvc transactionService
	BudgetSvc      budgetService
	RecurringSvc   recurringService
	AnalyticsSvc   analyticsService
}
