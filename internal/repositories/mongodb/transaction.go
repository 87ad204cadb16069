package mongodb

import (
	"context"

	"github.com/ArowuTest/conomy-backend/internal/metrics"
	"github.com/ArowuTest/conomy-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// Compile-time check to ensure Transactor implements the interface
var _ repositories.Transactor = (*Transactor)(nil)

// Transactor runs units of work inside MongoDB multi-document transactions.
// Requires a replica set or sharded cluster.
type Transactor struct {
	client *mongo.Client
	opts   *options.TransactionOptions
}

// NewTransactor creates a Transactor for the database's client
func NewTransactor(db *mongo.Database) *Transactor {
	return &Transactor{
		client: db.Client(),
		opts: options.Transaction().
			SetReadConcern(readconcern.Snapshot()).
			SetWriteConcern(writeconcern.New(writeconcern.WMajority())),
	}
}

// WithinTransaction runs fn in a session transaction. The driver retries the
// whole callback on TransientTransactionError (write conflicts) and retries the
// commit on UnknownTransactionCommitResult, so fn re-reads everything it checks.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		// Already inside a transaction: join it.
		return fn(ctx)
	}
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	attempts := 0
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		attempts++
		return nil, fn(sessCtx)
	}, t.opts)
	metrics.RecordTransaction(attempts)
	return err
}
