package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pennyflow/pennyflow-backend/internal/errs"
	"github.com/pennyflow/pennyflow-backend/internal/models"
)

type recurringStore struct {
	client *firestore.Client
}

func NewRecurringStore(client *firestore.Client) *recurringStore {
	return &recurringStore{client: client}
}

func (s *recurringStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("recurring_transactions")
}

func (s *recurringStore) Create(ctx context.Context, uid string, r *models.RecurringTransaction) error {
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	_, err := s.collection(uid).Doc(r.RecurringID).Set(ctx, r)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create recurring transaction", err)
	}
	return nil
}

func (s *recurringStore) Get(ctx context.Context, uid, recurringID string) (*models.RecurringTransaction, error) {
	doc, err := s.collection(uid).Doc(recurringID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("recurring transaction not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get recurring transaction", err)
	}
	var r models.RecurringTransaction
	if err := doc.DataTo(&r); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse recurring transaction data", err)
	}
	return &r, nil
}

func (s *recurringStore) List(ctx context.Context, uid string) ([]models.RecurringTransaction, error) {
	docs, err := s.collection(uid).OrderBy("createdAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list recurring transactions", err)
	}
	defs := make([]models.RecurringTransaction, 0, len(docs))
	for _, d := range docs {
		var r models.RecurringTransaction
		if err := d.DataTo(&r); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse recurring transaction data", err)
		}
		defs = append(defs, r)
	}
	return defs, nil
}

func (s *recurringStore) Update(ctx context.Context, uid string, r *models.RecurringTransaction) error {
	r.UpdatedAt = time.Now()
	_, err := s.collection(uid).Doc(r.RecurringID).Set(ctx, r)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update recurring transaction", err)
	}
	return nil
}

func (s *recurringStore) Delete(ctx context.Context, uid, recurringID string) error {
	_, err := s.collection(uid).Doc(recurringID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete recurring transaction", err)
	}
	return nil
}

// UpdateBatch persists advanced LastGenerated markers after a processing run.
func (s *recurringStore) UpdateBatch(ctx context.Context, uid string, defs []models.RecurringTransaction) error {
	if len(defs) == 0 {
		return nil
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(defs))
	now := time.Now()

	for _, r := range defs {
		r.UpdatedAt = now
		doc := s.collection(uid).Doc(r.RecurringID)
		job, err := bw.Set(doc, r)
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("update", "failed to schedule recurring update", err)
		}
		jobs = append(jobs, job)
	}

	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return errs.NewDatabaseError("update", "failed to write recurring batch", err)
		}
	}

	return nil
}
