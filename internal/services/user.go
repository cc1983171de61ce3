package services

import (
	"context"
	"time"

	"github.com/pennyflow/pennyflow-backend/internal/models"
	"github.com/pennyflow/pennyflow-backend/pkg/logger"
)

const defaultCurrencyCode = "USD"

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type userService struct {
	Store userUSStore
}

func NewUserService(store userUSStore) *userService {
	return &userService{
		Store: store,
	}
}

func (s *userService) CreateUser(ctx context.Context, uid, email, first, last, currencyCode string) error {
	// Logger from context already carries uid, email, request_id, method, path
	log := logger.FromContext(ctx)

	if currencyCode == "" {
		currencyCode = defaultCurrencyCode
	}

	user := &models.User{
		UID:          uid,
		Email:        email,
		FirstName:    first,
		LastName:     last,
		CurrencyCode: currencyCode,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	err := s.Store.CreateUser(ctx, user)
	if err != nil {
		log.Error("failed to create user in store", "error", err)
		return err
	}

	log.Info("user created successfully", "first_name", first, "last_name", last)
	log.Debug("user created with full details", "user", user)

	return nil
}

func (s *userService) GetUser(ctx context.Context, uid string) (*models.User, error) {
	return s.Store.GetUser(ctx, uid)
}
