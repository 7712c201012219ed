package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/apperrors"
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/quarry_billing_app/internal/core/ports/repositories"
	"github.com/SscSPs/quarry_billing_app/internal/utils/billing"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory stand-in for the PostgreSQL repositories. It
// models what the ledger relies on: row locks held until the transaction
// ends, writes that only become visible on commit, the numbering lock and
// the unique receipt number.
type fakeStore struct {
	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	owners   map[string]domain.TruckOwner // by id
	receipts map[string]domain.Receipt    // by id
	deposits []domain.DepositTransaction
	payments []domain.CreditPayment
	settings map[string]domain.Setting

	// failure injection
	conflictsOnSave int
	beginErr        error
	staleHighest    *int64 // returned instead of scanning when set
}

type fakeTx struct {
	pgx.Tx
	ops       []func(s *fakeStore)
	held      []string
	newOwners map[string]domain.TruckOwner // by name, visible to this tx only
	done      bool
}

var (
	_ portsrepo.OwnerRepositoryWithTx   = (*fakeStore)(nil)
	_ portsrepo.ReceiptRepositoryWithTx = (*fakeStore)(nil)
	_ portsrepo.DepositLedgerRepository = (*fakeStore)(nil)
	_ portsrepo.CreditPaymentRepository = (*fakeStore)(nil)
	_ portsrepo.SettingsRepository      = (*fakeStore)(nil)
)

func newFakeStore() *fakeStore {
	return &fakeStore{
		locks:    map[string]*sync.Mutex{},
		owners:   map[string]domain.TruckOwner{},
		receipts: map[string]domain.Receipt{},
		settings: map[string]domain.Setting{},
	}
}

// --- test helpers ---

func (s *fakeStore) addOwner(owner domain.TruckOwner) domain.TruckOwner {
	s.mu.Lock()
	defer s.mu.Unlock()
	if owner.OwnerID == "" {
		owner.OwnerID = fmt.Sprintf("owner-%d", len(s.owners)+1)
	}
	owner.IsActive = true
	s.owners[owner.OwnerID] = owner
	return owner
}

func (s *fakeStore) addReceipt(r domain.Receipt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts[r.ReceiptID] = r
}

func (s *fakeStore) setSetting(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = domain.Setting{Key: key, Value: value, Category: domain.SettingCategoryBilling}
}

func (s *fakeStore) ownerNamed(name string) (domain.TruckOwner, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.owners {
		if o.Name == name {
			return o, true
		}
	}
	return domain.TruckOwner{}, false
}

func (s *fakeStore) receiptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.receipts)
}

func (s *fakeStore) allReceipts() []domain.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Receipt, 0, len(s.receipts))
	for _, r := range s.receipts {
		out = append(out, r)
	}
	return out
}

func (s *fakeStore) depositEntries(ownerID string) []domain.DepositTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.DepositTransaction
	for _, d := range s.deposits {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return out
}

// --- locking and transactions ---

func (s *fakeStore) lock(tx *fakeTx, key string) {
	for _, h := range tx.held {
		if h == key {
			return
		}
	}
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	tx.held = append(tx.held, key)
}

func (s *fakeStore) release(tx *fakeTx) {
	s.mu.Lock()
	held := tx.held
	tx.held = nil
	locks := make([]*sync.Mutex, 0, len(held))
	for _, key := range held {
		locks = append(locks, s.locks[key])
	}
	s.mu.Unlock()
	for _, l := range locks {
		l.Unlock()
	}
}

func asFakeTx(tx pgx.Tx) *fakeTx {
	return tx.(*fakeTx)
}

func (s *fakeStore) Begin(ctx context.Context) (pgx.Tx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	return &fakeTx{newOwners: map[string]domain.TruckOwner{}}, nil
}

func (s *fakeStore) Commit(ctx context.Context, tx pgx.Tx) error {
	ftx := asFakeTx(tx)
	if ftx.done {
		return fmt.Errorf("%w: transaction already closed", apperrors.ErrPersistence)
	}
	s.mu.Lock()
	for _, owner := range ftx.newOwners {
		s.owners[owner.OwnerID] = owner
	}
	for _, op := range ftx.ops {
		op(s)
	}
	s.mu.Unlock()
	ftx.done = true
	s.release(ftx)
	return nil
}

func (s *fakeStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	ftx := asFakeTx(tx)
	if ftx.done {
		return nil
	}
	ftx.done = true
	s.release(ftx)
	return nil
}

// --- owners ---

func (s *fakeStore) findOwnerByNameLocked(name string) (domain.TruckOwner, bool) {
	for _, o := range s.owners {
		if o.Name == name {
			return o, true
		}
	}
	return domain.TruckOwner{}, false
}

func (s *fakeStore) FindOwnerByName(ctx context.Context, name string) (*domain.TruckOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.findOwnerByNameLocked(name)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &o, nil
}

func (s *fakeStore) FindOwnerByID(ctx context.Context, ownerID string) (*domain.TruckOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.owners[ownerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &o, nil
}

func (s *fakeStore) ListOwners(ctx context.Context, includeInactive bool, limit int, offset int) ([]domain.TruckOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.TruckOwner
	for _, o := range s.owners {
		if o.IsActive || includeInactive {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeStore) SaveOwner(ctx context.Context, owner domain.TruckOwner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findOwnerByNameLocked(owner.Name); ok {
		return apperrors.ErrDuplicate
	}
	s.owners[owner.OwnerID] = owner
	return nil
}

func (s *fakeStore) UpdateOwner(ctx context.Context, owner domain.TruckOwner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.owners[owner.OwnerID]
	if !ok {
		return apperrors.ErrNotFound
	}
	owner.DepositBalance = stored.DepositBalance
	s.owners[owner.OwnerID] = owner
	return nil
}

func (s *fakeStore) DeactivateOwner(ctx context.Context, ownerID string, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.owners[ownerID]
	if !ok {
		return apperrors.ErrNotFound
	}
	o.IsActive = false
	o.LastUpdatedAt = now
	o.LastUpdatedBy = userID
	s.owners[ownerID] = o
	return nil
}

func (s *fakeStore) FindOwnerByNameForUpdate(ctx context.Context, tx pgx.Tx, name string) (*domain.TruckOwner, error) {
	ftx := asFakeTx(tx)
	if o, ok := ftx.newOwners[name]; ok {
		return &o, nil
	}
	s.mu.Lock()
	o, ok := s.findOwnerByNameLocked(name)
	s.mu.Unlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s.FindOwnerByIDForUpdate(ctx, tx, o.OwnerID)
}

func (s *fakeStore) FindOwnerByIDForUpdate(ctx context.Context, tx pgx.Tx, ownerID string) (*domain.TruckOwner, error) {
	ftx := asFakeTx(tx)
	s.lock(ftx, "owner:"+ownerID)
	// re-read after the lock is granted so the caller sees committed changes
	return s.FindOwnerByID(ctx, ownerID)
}

func (s *fakeStore) InsertOwnerIfAbsentInTx(ctx context.Context, tx pgx.Tx, owner domain.TruckOwner) error {
	ftx := asFakeTx(tx)
	// a concurrent insert of the same name blocks until the other tx ends
	s.lock(ftx, "name:"+owner.Name)
	s.mu.Lock()
	_, exists := s.findOwnerByNameLocked(owner.Name)
	s.mu.Unlock()
	if !exists {
		ftx.newOwners[owner.Name] = owner
	}
	return nil
}

func (s *fakeStore) UpdateDepositBalanceInTx(ctx context.Context, tx pgx.Tx, ownerID string, newBalance decimal.Decimal, userID string, now time.Time) error {
	if newBalance.IsNegative() {
		return fmt.Errorf("%w: deposit_balance check violated", apperrors.ErrValidation)
	}
	newBalance = newBalance.Round(2)
	ftx := asFakeTx(tx)
	for name, o := range ftx.newOwners {
		if o.OwnerID == ownerID {
			o.DepositBalance = newBalance
			ftx.newOwners[name] = o
			return nil
		}
	}
	ftx.ops = append(ftx.ops, func(s *fakeStore) {
		o := s.owners[ownerID]
		o.DepositBalance = newBalance
		o.LastUpdatedAt = now
		o.LastUpdatedBy = userID
		s.owners[ownerID] = o
	})
	return nil
}

func (s *fakeStore) RecordReceiptActivityInTx(ctx context.Context, tx pgx.Tx, ownerID string, method domain.PaymentMethod, vehicleNumber string, userID string, now time.Time) error {
	ftx := asFakeTx(tx)
	ftx.ops = append(ftx.ops, func(s *fakeStore) {
		o := s.owners[ownerID]
		m := method
		v := vehicleNumber
		o.LastPaymentMethod = &m
		o.VehicleNumber = &v
		o.LastUpdatedAt = now
		o.LastUpdatedBy = userID
		s.owners[ownerID] = o
	})
	return nil
}

// --- receipts ---

func (s *fakeStore) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.receipts[receiptID]
	if !ok || !r.IsActive {
		return nil, apperrors.ErrNotFound
	}
	return &r, nil
}

func (s *fakeStore) ListReceipts(ctx context.Context, filter domain.ReceiptFilter, limit int, nextToken *string) ([]domain.Receipt, *string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Receipt
	for _, r := range s.receipts {
		if !r.IsActive {
			continue
		}
		if filter.OwnerID != "" && r.OwnerID != filter.OwnerID {
			continue
		}
		if filter.From != nil && r.DateTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !r.DateTime.Before(*filter.To) {
			continue
		}
		if filter.Status != nil && r.PaymentStatus != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.After(out[j].DateTime) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

func (s *fakeStore) LockReceiptNumbering(ctx context.Context, tx pgx.Tx) error {
	s.lock(asFakeTx(tx), "numbering")
	return nil
}

func (s *fakeStore) FindHighestReceiptNumberInTx(ctx context.Context, tx pgx.Tx) (*int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staleHighest != nil {
		return s.staleHighest, nil
	}
	var highest *int64
	for _, r := range s.receipts {
		if n, ok := billing.TrailingNumber(r.ReceiptNo); ok && (highest == nil || n > *highest) {
			v := n
			highest = &v
		}
	}
	return highest, nil
}

func (s *fakeStore) ReceiptNoExistsInTx(ctx context.Context, tx pgx.Tx, receiptNo string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.receipts {
		if r.ReceiptNo == receiptNo {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) SaveReceiptInTx(ctx context.Context, tx pgx.Tx, receipt domain.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conflictsOnSave > 0 {
		s.conflictsOnSave--
		return fmt.Errorf("%w: receipt number %s already issued", apperrors.ErrConflict, receipt.ReceiptNo)
	}
	for _, r := range s.receipts {
		if r.ReceiptNo == receipt.ReceiptNo {
			return fmt.Errorf("%w: receipt number %s already issued", apperrors.ErrConflict, receipt.ReceiptNo)
		}
	}
	receipt = asStoredReceipt(receipt)
	ftx := asFakeTx(tx)
	ftx.ops = append(ftx.ops, func(s *fakeStore) {
		s.receipts[receipt.ReceiptID] = receipt
	})
	return nil
}

// asStoredReceipt rounds every column the way NUMERIC(14,2) and
// NUMERIC(14,3) do on insert.
func asStoredReceipt(r domain.Receipt) domain.Receipt {
	r.BrassQty = r.BrassQty.Round(3)
	r.Rate = r.Rate.Round(2)
	r.AppliedRate = r.AppliedRate.Round(2)
	r.LoadingCharge = r.LoadingCharge.Round(2)
	r.TotalAmount = r.TotalAmount.Round(2)
	r.CashPaid = r.CashPaid.Round(2)
	r.DepositDeducted = r.DepositDeducted.Round(2)
	r.CreditAmount = r.CreditAmount.Round(2)
	return r
}

func (s *fakeStore) FindReceiptByIDForUpdate(ctx context.Context, tx pgx.Tx, receiptID string) (*domain.Receipt, error) {
	s.lock(asFakeTx(tx), "receipt:"+receiptID)
	return s.FindReceiptByID(ctx, receiptID)
}

func (s *fakeStore) UpdateReceiptPaymentInTx(ctx context.Context, tx pgx.Tx, receipt domain.Receipt) error {
	ftx := asFakeTx(tx)
	ftx.ops = append(ftx.ops, func(s *fakeStore) {
		r := s.receipts[receipt.ReceiptID]
		r.CashPaid = receipt.CashPaid.Round(2)
		r.CreditAmount = receipt.CreditAmount.Round(2)
		r.PaymentStatus = receipt.PaymentStatus
		r.Notes = receipt.Notes
		r.LastUpdatedAt = receipt.LastUpdatedAt
		r.LastUpdatedBy = receipt.LastUpdatedBy
		s.receipts[receipt.ReceiptID] = r
	})
	return nil
}

func (s *fakeStore) DeactivateReceipt(ctx context.Context, receiptID string, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.receipts[receiptID]
	if !ok || !r.IsActive {
		return apperrors.ErrNotFound
	}
	r.IsActive = false
	r.LastUpdatedAt = now
	r.LastUpdatedBy = userID
	s.receipts[receiptID] = r
	return nil
}

// --- deposit ledger ---

func (s *fakeStore) ListDepositTransactions(ctx context.Context, ownerID string) ([]domain.DepositTransaction, error) {
	return s.depositEntries(ownerID), nil
}

func (s *fakeStore) AppendDepositTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.DepositTransaction) error {
	if !txn.Amount.IsPositive() {
		return fmt.Errorf("%w: amount check violated", apperrors.ErrValidation)
	}
	txn.Amount = txn.Amount.Round(2)
	txn.PreviousBalance = txn.PreviousBalance.Round(2)
	txn.NewBalance = txn.NewBalance.Round(2)
	ftx := asFakeTx(tx)
	ftx.ops = append(ftx.ops, func(s *fakeStore) {
		s.deposits = append(s.deposits, txn)
	})
	return nil
}

// --- credit payments ---

func (s *fakeStore) AppendCreditPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.CreditPayment) error {
	ftx := asFakeTx(tx)
	ftx.ops = append(ftx.ops, func(s *fakeStore) {
		s.payments = append(s.payments, payment)
	})
	return nil
}

func (s *fakeStore) ListCreditPaymentsByReceipt(ctx context.Context, receiptID string) ([]domain.CreditPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.CreditPayment
	for _, p := range s.payments {
		if p.ReceiptID == receiptID {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- settings ---

func (s *fakeStore) ListSettings(ctx context.Context, category string) ([]domain.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Setting
	for _, st := range s.settings {
		if category == "" || st.Category == category {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *fakeStore) FindSetting(ctx context.Context, key string) (*domain.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.settings[key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &st, nil
}

func (s *fakeStore) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.settings[setting.Key]; ok {
		setting.CreatedAt = existing.CreatedAt
		setting.CreatedBy = existing.CreatedBy
	}
	s.settings[setting.Key] = setting
	return nil
}
