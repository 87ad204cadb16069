package mongodb

import (
	"context"

	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repositories.InvestmentRepository = (*InvestmentRepository)(nil)

// InvestmentRepository handles MongoDB operations for Investment
type InvestmentRepository struct {
	collection *mongo.Collection
}

// NewInvestmentRepository creates a new InvestmentRepository
func NewInvestmentRepository(db *mongo.Database) *InvestmentRepository {
	return &InvestmentRepository{
		collection: db.Collection(investmentsCollection),
	}
}

// Create inserts a new investment with a server-assigned startDate
func (r *InvestmentRepository) Create(ctx context.Context, investment *models.Investment) error {
	investment.ID = newID()
	var stored models.Investment
	if err := insertStamped(ctx, r.collection, investment.ID, investment, "startDate", &stored); err != nil {
		return err
	}
	*investment = stored
	return nil
}

// FindByUserID finds all investments for a user, newest first
func (r *InvestmentRepository) FindByUserID(ctx context.Context, userID string) ([]*models.Investment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})
	return findAll[models.Investment](ctx, r.collection, bson.M{"userId": userID}, opts)
}
