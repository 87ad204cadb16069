package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ArowuTest/conomy-backend/internal/metrics"
	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/repositories"
	"github.com/google/uuid"
)

// Store is an in-memory implementation of the repository interfaces. It is
// safe for concurrent use and is intended for tests and local development.
//
// Transactions are optimistic: every read inside WithinTransaction records the
// version of the document (or index) it looked at and writes are staged. At
// commit the recorded versions are compared with the current ones; any
// difference means a concurrent commit touched the same data and the unit of
// work is run again. Reads inside a transaction do not see its own staged
// writes, so a unit of work does all of its reads before its writes.
type Store struct {
	mu          sync.Mutex
	now         func() time.Time
	maxAttempts int
	versions    map[string]uint64

	users       map[string]models.User
	team        map[string][]models.TeamMember
	investments []models.Investment
	recharges   []models.RechargeRequest
	withdrawals []models.WithdrawalRequest
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces the clock used for server-assigned timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithMaxAttempts bounds how often a conflicting transaction is retried
func WithMaxAttempts(n int) Option {
	return func(s *Store) { s.maxAttempts = n }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		now:         func() time.Time { return time.Now().UTC() },
		maxAttempts: 100,
		versions:    make(map[string]uint64),
		users:       make(map[string]models.User),
		team:        make(map[string][]models.TeamMember),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Users returns a UserRepository view of the store
func (s *Store) Users() repositories.UserRepository { return userRepo{s} }

// Team returns a TeamRepository view of the store
func (s *Store) Team() repositories.TeamRepository { return teamRepo{s} }

// Investments returns an InvestmentRepository view of the store
func (s *Store) Investments() repositories.InvestmentRepository { return investmentRepo{s} }

// Recharges returns a RechargeRepository view of the store
func (s *Store) Recharges() repositories.RechargeRepository { return rechargeRepo{s} }

// Withdrawals returns a WithdrawalRepository view of the store
func (s *Store) Withdrawals() repositories.WithdrawalRepository { return withdrawalRepo{s} }

var _ repositories.Transactor = (*Store)(nil)

type txKey struct{}

// txn is the state of one transaction attempt.
type txn struct {
	store *Store
	reads map[string]uint64
	ops   []func()
}

// read records the version of key as seen by this attempt. The first
// observation wins so a later read cannot hide an earlier stale one.
func (t *txn) read(key string) {
	if _, seen := t.reads[key]; !seen {
		t.reads[key] = t.store.versions[key]
	}
}

// write stages op for commit.
func (t *txn) write(op func()) {
	t.ops = append(t.ops, op)
}

// WithinTransaction runs fn as an optimistic transaction, retrying it when a
// concurrent commit invalidated one of its reads.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, nested := ctx.Value(txKey{}).(*txn); nested {
		return fn(ctx)
	}
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		t := &txn{store: s, reads: make(map[string]uint64)}
		if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
			return err
		}
		if s.commit(t) {
			metrics.RecordTransaction(attempt)
			return nil
		}
	}
	metrics.RecordTransaction(s.maxAttempts)
	return repositories.ErrTransactionAborted
}

func (s *Store) commit(t *txn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, version := range t.reads {
		if s.versions[key] != version {
			return false
		}
	}
	for _, op := range t.ops {
		op()
	}
	return true
}

// do runs fn under the store lock. Inside a transaction fn records reads and
// stages its writes on the caller's txn; outside one the writes apply at once.
func (s *Store) do(ctx context.Context, fn func(t *txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := ctx.Value(txKey{}).(*txn); ok && t.store == s {
		return fn(t)
	}
	t := &txn{store: s, reads: make(map[string]uint64)}
	if err := fn(t); err != nil {
		return err
	}
	for _, op := range t.ops {
		op()
	}
	return nil
}

// bump marks keys as modified. Must hold s.mu.
func (s *Store) bump(keys ...string) {
	for _, key := range keys {
		s.versions[key]++
	}
}

func newID() string {
	return uuid.NewString()
}

// Version keys. Index keys cover lookups by a non-ID field so that inserts
// conflict with concurrent queries over the same collection.
func userKey(id string) string       { return "users/" + id }
func teamKey(owner string) string    { return "team/" + owner }
func rechargeKey(id string) string   { return "recharges/" + id }
func withdrawalKey(id string) string { return "withdrawals/" + id }

const (
	usersIndexKey       = "users#index"
	investmentsIndexKey = "investments#index"
	rechargesIndexKey   = "recharges#index"
	withdrawalsIndexKey = "withdrawals#index"
)
