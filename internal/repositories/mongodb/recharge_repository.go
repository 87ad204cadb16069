package mongodb

import (
	"context"

	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repositories.RechargeRepository = (*RechargeRepository)(nil)

// RechargeRepository handles MongoDB operations for deposit requests
type RechargeRepository struct {
	collection *mongo.Collection
}

// NewRechargeRepository creates a new RechargeRepository
func NewRechargeRepository(db *mongo.Database) *RechargeRepository {
	return &RechargeRepository{
		collection: db.Collection(rechargesCollection),
	}
}

// Create inserts a recharge request with a server-assigned requestDate
func (r *RechargeRepository) Create(ctx context.Context, recharge *models.RechargeRequest) error {
	recharge.ID = newID()
	var stored models.RechargeRequest
	if err := insertStamped(ctx, r.collection, recharge.ID, recharge, "requestDate", &stored); err != nil {
		return err
	}
	*recharge = stored
	return nil
}

// FindByID finds a recharge request by ID
func (r *RechargeRepository) FindByID(ctx context.Context, id string) (*models.RechargeRequest, error) {
	return findOne[models.RechargeRequest](ctx, r.collection, bson.M{"_id": id})
}

// FindByUserID finds all recharge requests of a user
func (r *RechargeRepository) FindByUserID(ctx context.Context, userID string) ([]*models.RechargeRequest, error) {
	return findAll[models.RechargeRequest](ctx, r.collection, bson.M{"userId": userID})
}

// FindByStatus finds recharge requests in a status, oldest first
func (r *RechargeRepository) FindByStatus(ctx context.Context, status models.RequestStatus) ([]*models.RechargeRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requestDate", Value: 1}})
	return findAll[models.RechargeRequest](ctx, r.collection, bson.M{"status": status}, opts)
}

// FindPendingByMomoNumber finds pending requests for a mobile money number and amount, oldest first
func (r *RechargeRepository) FindPendingByMomoNumber(ctx context.Context, momoNumber string, amount int64) ([]*models.RechargeRequest, error) {
	filter := bson.M{
		"status":     models.StatusPending,
		"momoNumber": momoNumber,
		"amount":     amount,
	}
	opts := options.Find().SetSort(bson.D{{Key: "requestDate", Value: 1}})
	return findAll[models.RechargeRequest](ctx, r.collection, filter, opts)
}

// UpdateStatus moves a request from one status to another
func (r *RechargeRepository) UpdateStatus(ctx context.Context, id string, from, to models.RequestStatus) error {
	return updateStatus(ctx, r.collection, id, string(from), string(to))
}

// FindByReference finds the recharge request settled by a statement reference
func (r *RechargeRepository) FindByReference(ctx context.Context, reference string) (*models.RechargeRequest, error) {
	return findOne[models.RechargeRequest](ctx, r.collection, bson.M{"reference": reference})
}

// SetReference records the statement reference on a request. The unique
// reference index rejects a reference that is already attached elsewhere.
func (r *RechargeRepository) SetReference(ctx context.Context, id, reference string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"reference": reference}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateReference
		}
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
