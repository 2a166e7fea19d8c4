package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/courier_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/courier_ledger/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTx stands in for a database transaction. name keeps distinct
// transactions distinguishable to mock argument matching.
type fakeTx struct {
	pgx.Tx
	name string
}

func newTx(name string) pgx.Tx {
	return &fakeTx{name: name}
}

// --- Mock TransactionManager (embedded by the repository mocks) ---
type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *mockTxManager) BeginSavepoint(ctx context.Context, tx pgx.Tx) (pgx.Tx, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *mockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *mockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// --- Mock BookingRepository ---
type MockBookingRepository struct {
	mockTxManager
}

var _ portsrepo.BookingRepositoryWithTx = (*MockBookingRepository)(nil)

func (m *MockBookingRepository) FindBookingByID(ctx context.Context, bookingID string, includeInactive bool) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindPackagesByBookingNumber(ctx context.Context, bookingNumber string, includeInactive bool) ([]domain.PackageLine, error) {
	args := m.Called(ctx, bookingNumber, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PackageLine), args.Error(1)
}

func (m *MockBookingRepository) FindPaymentsByBookingNumber(ctx context.Context, bookingNumber string, includeInactive bool) ([]domain.BookingPayment, error) {
	args := m.Called(ctx, bookingNumber, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingPayment), args.Error(1)
}

func (m *MockBookingRepository) ListBookings(ctx context.Context, filter portsrepo.BookingListFilter) ([]domain.Booking, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	return args.Get(0).([]domain.Booking), next, args.Error(2)
}

func (m *MockBookingRepository) SaveBooking(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	return m.Called(ctx, tx, booking).Error(0)
}

func (m *MockBookingRepository) UpdateBooking(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	return m.Called(ctx, tx, booking).Error(0)
}

func (m *MockBookingRepository) UpdateBookingLedger(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	return m.Called(ctx, tx, booking).Error(0)
}

func (m *MockBookingRepository) UpdateDeliveryStatus(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	return m.Called(ctx, tx, booking).Error(0)
}

func (m *MockBookingRepository) DeactivateBooking(ctx context.Context, tx pgx.Tx, booking domain.Booking, userID string, at time.Time) error {
	return m.Called(ctx, tx, booking, userID, at).Error(0)
}

func (m *MockBookingRepository) SaveBookingPayment(ctx context.Context, tx pgx.Tx, payment domain.BookingPayment) error {
	return m.Called(ctx, tx, payment).Error(0)
}

func (m *MockBookingRepository) DeactivateBookingPayment(ctx context.Context, tx pgx.Tx, paymentID string, userID string, at time.Time) error {
	return m.Called(ctx, tx, paymentID, userID, at).Error(0)
}

func (m *MockBookingRepository) FindBookingByIDForUpdate(ctx context.Context, tx pgx.Tx, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, tx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindBookingPaymentByID(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.BookingPayment, error) {
	args := m.Called(ctx, tx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingPayment), args.Error(1)
}

func (m *MockBookingRepository) SumActivePayments(ctx context.Context, tx pgx.Tx, bookingNumber string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, bookingNumber)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBookingRepository) CountActivePayments(ctx context.Context, tx pgx.Tx, bookingNumber string) (int, error) {
	args := m.Called(ctx, tx, bookingNumber)
	return args.Int(0), args.Error(1)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mockTxManager
}

var _ portsrepo.ExpenseRepositoryWithTx = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string, includeInactive bool) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindPaymentsByExpenseNumber(ctx context.Context, expenseNumber string, includeInactive bool) ([]domain.ExpensePayment, error) {
	args := m.Called(ctx, expenseNumber, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpensePayment), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ExpenseListFilter) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	return args.Get(0).([]domain.Expense), next, args.Error(2)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	return m.Called(ctx, tx, expense).Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	return m.Called(ctx, tx, expense).Error(0)
}

func (m *MockExpenseRepository) UpdateExpenseLedger(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	return m.Called(ctx, tx, expense).Error(0)
}

func (m *MockExpenseRepository) DeactivateExpense(ctx context.Context, tx pgx.Tx, expenseID string, userID string, at time.Time) error {
	return m.Called(ctx, tx, expenseID, userID, at).Error(0)
}

func (m *MockExpenseRepository) SaveExpensePayment(ctx context.Context, tx pgx.Tx, payment domain.ExpensePayment) error {
	return m.Called(ctx, tx, payment).Error(0)
}

func (m *MockExpenseRepository) UpdateExpensePayment(ctx context.Context, tx pgx.Tx, payment domain.ExpensePayment) error {
	return m.Called(ctx, tx, payment).Error(0)
}

func (m *MockExpenseRepository) DeactivateExpensePayment(ctx context.Context, tx pgx.Tx, paymentID string, userID string, at time.Time) error {
	return m.Called(ctx, tx, paymentID, userID, at).Error(0)
}

func (m *MockExpenseRepository) FindExpenseByIDForUpdate(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, tx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindExpenseByNumberForUpdate(ctx context.Context, tx pgx.Tx, expenseNumber string) (*domain.Expense, error) {
	args := m.Called(ctx, tx, expenseNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindActiveExpensePayment(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.ExpensePayment, error) {
	args := m.Called(ctx, tx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpensePayment), args.Error(1)
}

func (m *MockExpenseRepository) SumActivePayments(ctx context.Context, tx pgx.Tx, expenseNumber string, excludePaymentID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, expenseNumber, excludePaymentID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) CountActivePayments(ctx context.Context, tx pgx.Tx, expenseNumber string) (int, error) {
	args := m.Called(ctx, tx, expenseNumber)
	return args.Int(0), args.Error(1)
}

// --- Mock ReferenceRepository ---
type MockReferenceRepository struct {
	mockTxManager
}

var _ portsrepo.ReferenceRepositoryWithTx = (*MockReferenceRepository)(nil)

func (m *MockReferenceRepository) FindActiveReference(ctx context.Context, tx pgx.Tx, kind domain.ReferenceKind, code string) (*domain.ReferenceEntity, error) {
	args := m.Called(ctx, tx, kind, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferenceEntity), args.Error(1)
}

func (m *MockReferenceRepository) SaveReference(ctx context.Context, tx pgx.Tx, ref domain.ReferenceEntity) error {
	return m.Called(ctx, tx, ref).Error(0)
}

func (m *MockReferenceRepository) ListReferences(ctx context.Context, kind domain.ReferenceKind, includeInactive bool) ([]domain.ReferenceEntity, error) {
	args := m.Called(ctx, kind, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReferenceEntity), args.Error(1)
}

func (m *MockReferenceRepository) DeactivateReference(ctx context.Context, kind domain.ReferenceKind, code string, userID string, at time.Time) error {
	return m.Called(ctx, kind, code, userID, at).Error(0)
}

// --- Mock UniquenessChecker ---
type MockUniquenessChecker struct {
	mock.Mock
}

var _ portsrepo.UniquenessChecker = (*MockUniquenessChecker)(nil)

func (m *MockUniquenessChecker) ExistsActive(ctx context.Context, tx pgx.Tx, kind domain.EntityKind, field, value, excludeID string) (bool, error) {
	args := m.Called(ctx, tx, kind, field, value, excludeID)
	return args.Bool(0), args.Error(1)
}

// --- Mock LedgerAuditRepository ---
type MockLedgerAuditRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerAuditRepository = (*MockLedgerAuditRepository)(nil)

func (m *MockLedgerAuditRepository) FindBookingLedgerMismatches(ctx context.Context) ([]domain.LedgerSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerSnapshot), args.Error(1)
}

func (m *MockLedgerAuditRepository) FindExpenseLedgerMismatches(ctx context.Context) ([]domain.LedgerSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerSnapshot), args.Error(1)
}

// --- Mock ReferenceValidator ---
type MockReferenceValidator struct {
	mock.Mock
}

var _ portssvc.ReferenceValidatorSvc = (*MockReferenceValidator)(nil)

func (m *MockReferenceValidator) ValidateReference(ctx context.Context, tx pgx.Tx, kind domain.ReferenceKind, code string) error {
	return m.Called(ctx, tx, kind, code).Error(0)
}

// --- Mock UniquenessGuard ---
type MockUniquenessGuard struct {
	mock.Mock
}

var _ portssvc.UniquenessGuardSvc = (*MockUniquenessGuard)(nil)

func (m *MockUniquenessGuard) EnsureUnique(ctx context.Context, tx pgx.Tx, kind domain.EntityKind, field, value, excludeID string) error {
	return m.Called(ctx, tx, kind, field, value, excludeID).Error(0)
}

func (m *MockUniquenessGuard) GenerateUnique(ctx context.Context, tx pgx.Tx, kind domain.EntityKind, field, prefix string) (string, error) {
	args := m.Called(ctx, tx, kind, field, prefix)
	return args.String(0), args.Error(1)
}

// --- Mock VehicleRepository ---
type MockVehicleRepository struct {
	mockTxManager
}

var _ portsrepo.VehicleRepositoryWithTx = (*MockVehicleRepository)(nil)

func (m *MockVehicleRepository) FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindVehicleByIDForUpdate(ctx context.Context, tx pgx.Tx, vehicleID string) (*domain.Vehicle, error) {
	args := m.Called(ctx, tx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) SaveVehicle(ctx context.Context, tx pgx.Tx, vehicle domain.Vehicle) error {
	return m.Called(ctx, tx, vehicle).Error(0)
}

func (m *MockVehicleRepository) UpdateVehicle(ctx context.Context, tx pgx.Tx, vehicle domain.Vehicle) error {
	return m.Called(ctx, tx, vehicle).Error(0)
}
