package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-service/internal/domain/port/persistence"
)

// FakeUserRepository is an in-memory persistence.UserRepository
type FakeUserRepository struct {
	mu     sync.Mutex
	users  map[string]entity.User
	nextID uint64

	// Injected errors, returned instead of performing the operation
	GetErr           error
	CreateErr        error
	GetOrCreateErr   error
	UpdateBalanceErr error

	// OnMiss runs after GetOrCreate misses and before it inserts, letting
	// tests interleave a concurrent insert of the same user. The re-read
	// then returns that winner's row instead of a fresh one.
	OnMiss func()
}

// NewFakeUserRepository creates an empty in-memory user repository
func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{users: make(map[string]entity.User), nextID: 1}
}

var _ persistence.UserRepository = (*FakeUserRepository)(nil)

// Seed stores a user directly, bypassing validation
func (r *FakeUserRepository) Seed(user entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}
	r.users[user.UserID] = user
}

func (r *FakeUserRepository) GetByUserID(_ context.Context, userID string) (*entity.User, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return &user, nil
}

func (r *FakeUserRepository) Create(_ context.Context, user *entity.User) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.UserID]; ok {
		return errs.ErrDuplicateUser
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.UserID] = *user
	return nil
}

func (r *FakeUserRepository) GetOrCreate(_ context.Context, userID string) (*entity.User, error) {
	if r.GetOrCreateErr != nil {
		return nil, r.GetOrCreateErr
	}
	r.mu.Lock()
	if user, ok := r.users[userID]; ok {
		r.mu.Unlock()
		return &user, nil
	}
	r.mu.Unlock()

	if r.OnMiss != nil {
		r.OnMiss()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userID]; ok {
		return &user, nil
	}
	user := entity.User{
		ID:       r.nextID,
		UserID:   userID,
		Balance:  decimal.Zero,
		IsActive: true,
	}
	r.nextID++
	r.users[userID] = user
	return &user, nil
}

func (r *FakeUserRepository) GetOrCreateForUpdate(ctx context.Context, userID string) (*entity.User, error) {
	return r.GetOrCreate(ctx, userID)
}

func (r *FakeUserRepository) UpdateBalance(_ context.Context, userID string, balance decimal.Decimal) error {
	if r.UpdateBalanceErr != nil {
		return r.UpdateBalanceErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return errs.ErrUserNotFound
	}
	user.Balance = balance
	r.users[userID] = user
	return nil
}

// Balance returns the stored balance for assertions
func (r *FakeUserRepository) Balance(userID string) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[userID].Balance
}

// snapshot and restore support the fake unit of work's rollback
func (r *FakeUserRepository) snapshot() map[string]entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make(map[string]entity.User, len(r.users))
	for k, v := range r.users {
		copied[k] = v
	}
	return copied
}

func (r *FakeUserRepository) restore(users map[string]entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = users
}

// FakeTransactionRepository is an in-memory persistence.TransactionRepository
type FakeTransactionRepository struct {
	mu           sync.Mutex
	transactions []entity.Transaction
	nextID       uint64

	// Injected errors, returned instead of performing the operation
	CreateErr error
	GetErr    error
	ListErr   error
}

// NewFakeTransactionRepository creates an empty in-memory ledger
func NewFakeTransactionRepository() *FakeTransactionRepository {
	return &FakeTransactionRepository{nextID: 1}
}

var _ persistence.TransactionRepository = (*FakeTransactionRepository)(nil)

// Seed stores a transaction directly, bypassing validation
func (r *FakeTransactionRepository) Seed(txn entity.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if txn.ID == 0 {
		txn.ID = r.nextID
		r.nextID++
	}
	r.transactions = append(r.transactions, txn)
}

func (r *FakeTransactionRepository) Create(_ context.Context, txn *entity.Transaction) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.transactions {
		if existing.TransactionID == txn.TransactionID {
			return errs.ErrDuplicateTransaction
		}
	}
	txn.ID = r.nextID
	r.nextID++
	r.transactions = append(r.transactions, *txn)
	return nil
}

func (r *FakeTransactionRepository) GetByTransactionID(_ context.Context, transactionID string) (*entity.Transaction, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, txn := range r.transactions {
		if txn.TransactionID == transactionID {
			found := txn
			return &found, nil
		}
	}
	return nil, errs.ErrTransactionNotFound
}

func (r *FakeTransactionRepository) ListByUser(_ context.Context, filter persistence.HistoryFilter) ([]entity.Transaction, int64, error) {
	if r.ListErr != nil {
		return nil, 0, r.ListErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []entity.Transaction
	for _, txn := range r.transactions {
		if txn.UserID != filter.UserID {
			continue
		}
		if filter.StartDate != nil && filter.EndDate != nil {
			if txn.Timestamp.Before(*filter.StartDate) || txn.Timestamp.After(*filter.EndDate) {
				continue
			}
		}
		matched = append(matched, txn)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *FakeTransactionRepository) ListCompletedAfter(_ context.Context, userID string, after time.Time) ([]entity.Transaction, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []entity.Transaction
	for _, txn := range r.transactions {
		if txn.UserID == userID && txn.Status == entity.StatusCompleted && txn.Timestamp.After(after) {
			matched = append(matched, txn)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})
	return matched, nil
}

// Count returns the number of stored transactions
func (r *FakeTransactionRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.transactions)
}

func (r *FakeTransactionRepository) snapshot() []entity.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]entity.Transaction, len(r.transactions))
	copy(copied, r.transactions)
	return copied
}

func (r *FakeTransactionRepository) restore(transactions []entity.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = transactions
}

// FakeFraudAlertRepository is an in-memory persistence.FraudAlertRepository
type FakeFraudAlertRepository struct {
	mu     sync.Mutex
	alerts []entity.FraudAlert
	nextID uint64

	// Injected errors, returned instead of performing the operation
	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
}

// NewFakeFraudAlertRepository creates an empty in-memory alert store
func NewFakeFraudAlertRepository() *FakeFraudAlertRepository {
	return &FakeFraudAlertRepository{nextID: 1}
}

var _ persistence.FraudAlertRepository = (*FakeFraudAlertRepository)(nil)

// Seed stores an alert directly, bypassing validation
func (r *FakeFraudAlertRepository) Seed(alert entity.FraudAlert) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if alert.ID == 0 {
		alert.ID = r.nextID
		r.nextID++
	}
	r.alerts = append(r.alerts, alert)
}

func (r *FakeFraudAlertRepository) Create(_ context.Context, alert *entity.FraudAlert) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	alert.ID = r.nextID
	r.nextID++
	r.alerts = append(r.alerts, *alert)
	return nil
}

func (r *FakeFraudAlertRepository) GetByID(_ context.Context, id uint64) (*entity.FraudAlert, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, alert := range r.alerts {
		if alert.ID == id {
			found := alert
			return &found, nil
		}
	}
	return nil, errs.ErrAlertNotFound
}

func (r *FakeFraudAlertRepository) List(_ context.Context, userID string) ([]entity.FraudAlert, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []entity.FraudAlert
	for _, alert := range r.alerts {
		if userID == "" || alert.UserID == userID {
			matched = append(matched, alert)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (r *FakeFraudAlertRepository) Update(_ context.Context, alert *entity.FraudAlert) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.alerts {
		if r.alerts[i].ID == alert.ID {
			r.alerts[i] = *alert
			return nil
		}
	}
	return errs.ErrAlertNotFound
}

// Alerts returns a copy of the stored alerts for assertions
func (r *FakeFraudAlertRepository) Alerts() []entity.FraudAlert {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]entity.FraudAlert, len(r.alerts))
	copy(copied, r.alerts)
	return copied
}

// FakeUnitOfWork implements persistence.UnitOfWork over the in-memory
// fakes. Rollback restores the snapshot taken at Begin so tests can assert
// that failed operations leave no state behind.
type FakeUnitOfWork struct {
	Users        *FakeUserRepository
	Transactions *FakeTransactionRepository

	mu            sync.Mutex
	userSnapshot  map[string]entity.User
	txnSnapshot   []entity.Transaction
	BeginCount    int
	CommitCount   int
	RollbackCount int

	// Injected errors
	BeginErr  error
	CommitErr error
}

// NewFakeUnitOfWork creates a unit of work over the given fakes
func NewFakeUnitOfWork(users *FakeUserRepository, transactions *FakeTransactionRepository) *FakeUnitOfWork {
	return &FakeUnitOfWork{Users: users, Transactions: transactions}
}

var _ persistence.UnitOfWork = (*FakeUnitOfWork)(nil)

func (u *FakeUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if u.BeginErr != nil {
		return ctx, u.BeginErr
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.BeginCount++
	u.userSnapshot = u.Users.snapshot()
	u.txnSnapshot = u.Transactions.snapshot()
	return ctx, nil
}

func (u *FakeUnitOfWork) Commit(context.Context) error {
	if u.CommitErr != nil {
		return u.CommitErr
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.CommitCount++
	u.userSnapshot = nil
	u.txnSnapshot = nil
	return nil
}

func (u *FakeUnitOfWork) Rollback(context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.RollbackCount++
	if u.userSnapshot != nil {
		u.Users.restore(u.userSnapshot)
		u.userSnapshot = nil
	}
	if u.txnSnapshot != nil {
		u.Transactions.restore(u.txnSnapshot)
		u.txnSnapshot = nil
	}
	return nil
}

func (u *FakeUnitOfWork) UserRepository(context.Context) persistence.UserRepository {
	return u.Users
}

func (u *FakeUnitOfWork) TransactionRepository(context.Context) persistence.TransactionRepository {
	return u.Transactions
}
