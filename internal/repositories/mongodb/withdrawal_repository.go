package mongodb

import (
	"context"

	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repositories.WithdrawalRepository = (*WithdrawalRepository)(nil)

// WithdrawalRepository handles MongoDB operations for withdrawal requests
type WithdrawalRepository struct {
	collection *mongo.Collection
}

// NewWithdrawalRepository creates a new WithdrawalRepository
func NewWithdrawalRepository(db *mongo.Database) *WithdrawalRepository {
	return &WithdrawalRepository{
		collection: db.Collection(withdrawalsCollection),
	}
}

// Create inserts a withdrawal request with a server-assigned requestDate
func (r *WithdrawalRepository) Create(ctx context.Context, withdrawal *models.WithdrawalRequest) error {
	withdrawal.ID = newID()
	var stored models.WithdrawalRequest
	if err := insertStamped(ctx, r.collection, withdrawal.ID, withdrawal, "requestDate", &stored); err != nil {
		return err
	}
	*withdrawal = stored
	return nil
}

// FindByID finds a withdrawal request by ID
func (r *WithdrawalRepository) FindByID(ctx context.Context, id string) (*models.WithdrawalRequest, error) {
	return findOne[models.WithdrawalRequest](ctx, r.collection, bson.M{"_id": id})
}

// FindByUserID finds all withdrawal requests of a user
func (r *WithdrawalRepository) FindByUserID(ctx context.Context, userID string) ([]*models.WithdrawalRequest, error) {
	return findAll[models.WithdrawalRequest](ctx, r.collection, bson.M{"userId": userID})
}

// FindByStatus finds withdrawal requests in a status, oldest first
func (r *WithdrawalRepository) FindByStatus(ctx context.Context, status models.RequestStatus) ([]*models.WithdrawalRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requestDate", Value: 1}})
	return findAll[models.WithdrawalRequest](ctx, r.collection, bson.M{"status": status}, opts)
}

// UpdateStatus moves a request from one status to another
func (r *WithdrawalRepository) UpdateStatus(ctx context.Context, id string, from, to models.RequestStatus) error {
	return updateStatus(ctx, r.collection, id, string(from), string(to))
}
