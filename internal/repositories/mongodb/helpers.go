package mongodb

import (
	"context"
	"errors"
	"strings"

	"github.com/ArowuTest/conomy-backend/internal/repositories"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	usersCollection       = "users"
	teamCollection        = "team_members"
	investmentsCollection = "investments"
	rechargesCollection   = "recharges"
	withdrawalsCollection = "withdrawals"
)

// newID returns a fresh document identifier
func newID() string {
	return uuid.NewString()
}

// insertStamped inserts doc under id and lets the server assign the timestamp
// field with $currentDate. The stored document is decoded back into out so the
// caller sees the server time.
func insertStamped(ctx context.Context, coll *mongo.Collection, id string, doc interface{}, stampField string, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return err
	}
	delete(fields, "_id")
	delete(fields, stampField)

	update := bson.M{
		"$setOnInsert": fields,
		"$currentDate": bson.M{stampField: true},
	}
	_, err = coll.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	return coll.FindOne(ctx, bson.M{"_id": id}).Decode(out)
}

// findAll runs a filtered query and decodes every document.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	// Return empty slice instead of nil if no documents found
	if docs == nil {
		docs = []*T{}
	}
	return docs, nil
}

// findOne decodes a single document, mapping mongo.ErrNoDocuments to repositories.ErrNotFound
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var doc T
	err := coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// updateStatus moves a request from one status to another, stamping settledAt.
func updateStatus(ctx context.Context, coll *mongo.Collection, id string, from, to string) error {
	filter := bson.M{"_id": id, "status": from}
	update := bson.M{
		"$set":         bson.M{"status": to},
		"$currentDate": bson.M{"settledAt": true},
	}
	result, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 1 {
		return nil
	}
	count, err := coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if count == 0 {
		return repositories.ErrNotFound
	}
	return repositories.ErrStatusMismatch
}

// duplicateKeyError translates an E11000 error into the matching repository error
func duplicateKeyError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	if strings.Contains(err.Error(), "referralCode") {
		return repositories.ErrDuplicateReferralCode
	}
	return repositories.ErrDuplicateEmail
}
