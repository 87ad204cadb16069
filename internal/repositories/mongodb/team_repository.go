package mongodb

import (
	"context"

	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ repositories.TeamRepository = (*TeamRepository)(nil)

// TeamRepository stores the members each user referred
type TeamRepository struct {
	collection *mongo.Collection
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *mongo.Database) *TeamRepository {
	return &TeamRepository{
		collection: db.Collection(teamCollection),
	}
}

// Add inserts a member under its owner, keyed by owner and member IDs
func (r *TeamRepository) Add(ctx context.Context, member *models.TeamMember) error {
	member.ID = member.OwnerID + ":" + member.MemberID
	var stored models.TeamMember
	if err := insertStamped(ctx, r.collection, member.ID, member, "joinDate", &stored); err != nil {
		return err
	}
	*member = stored
	return nil
}

// FindByOwner lists the owner's team in store order
func (r *TeamRepository) FindByOwner(ctx context.Context, ownerID string) ([]*models.TeamMember, error) {
	return findAll[models.TeamMember](ctx, r.collection, bson.M{"ownerId": ownerID})
}
