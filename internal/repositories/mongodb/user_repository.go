package mongodb

import (
	"context"

	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository handles MongoDB operations for User
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection(usersCollection),
	}
}

// Create inserts a new user. The caller chooses the ID; joinDate is server-assigned.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	var stored models.User
	if err := insertStamped(ctx, r.collection, user.ID, user, "joinDate", &stored); err != nil {
		return duplicateKeyError(err)
	}
	*user = stored
	return nil
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, r.collection, bson.M{"_id": id})
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.collection, bson.M{"email": email})
}

// FindByReferralCode returns every user holding the code. Uniqueness is
// enforced by index, so more than one result means the index is missing.
func (r *UserRepository) FindByReferralCode(ctx context.Context, code string) ([]*models.User, error) {
	return findAll[models.User](ctx, r.collection, bson.M{"referralCode": code})
}

// AdjustBalance atomically adds delta to the user's balance
func (r *UserRepository) AdjustBalance(ctx context.Context, id string, delta int64) error {
	return r.increment(ctx, id, "balance", delta)
}

// IncrementReferralCount atomically adds one to the user's referral count
func (r *UserRepository) IncrementReferralCount(ctx context.Context, id string) error {
	return r.increment(ctx, id, "referralCount", 1)
}

func (r *UserRepository) increment(ctx context.Context, id string, field string, delta int64) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$inc": bson.M{field: delta}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
