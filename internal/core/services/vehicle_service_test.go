package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/SscSPs/courier_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/courier_ledger/internal/core/ports/services"
	"github.com/SscSPs/courier_ledger/internal/core/services"
	"github.com/SscSPs/courier_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type VehicleServiceTestSuite struct {
	suite.Suite
	repo    *MockVehicleRepository
	refs    *MockReferenceValidator
	guard   *MockUniquenessGuard
	service portssvc.VehicleSvcFacade
	ctx     context.Context
	tx      *fakeTx
}

func (s *VehicleServiceTestSuite) SetupTest() {
	s.repo = new(MockVehicleRepository)
	s.refs = new(MockReferenceValidator)
	s.guard = new(MockUniquenessGuard)
	s.service = services.NewVehicleService(s.repo, s.refs, s.guard, services.WithClock(func() time.Time { return fixedNow }))
	s.ctx = context.Background()
	s.tx = &fakeTx{name: "tx"}
}

func (s *VehicleServiceTestSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
	s.refs.AssertExpectations(s.T())
	s.guard.AssertExpectations(s.T())
}

func (s *VehicleServiceTestSuite) TestCreateVehicle_Success() {
	s.repo.On("Begin", s.ctx).Return(s.tx, nil).Once()
	s.refs.On("ValidateReference", s.ctx, s.tx, domain.RefVehicleType, "TRUCK").Return(nil).Once()
	s.refs.On("ValidateReference", s.ctx, s.tx, domain.RefOfficeCenter, "HYD").Return(nil).Once()
	s.guard.On("EnsureUnique", s.ctx, s.tx, domain.EntityVehicle, domain.FieldRegistrationNumber, "TS09AB1234", "").Return(nil).Once()
	s.guard.On("EnsureUnique", s.ctx, s.tx, domain.EntityVehicle, domain.FieldRCNumber, "RC-1", "").Return(nil).Once()
	s.repo.On("SaveVehicle", s.ctx, s.tx, mock.MatchedBy(func(v domain.Vehicle) bool {
		return v.RegistrationNumber == "TS09AB1234" && v.IsActive && v.CapacityKg.IsZero() && v.CreatedBy == "user-1"
	})).Return(nil).Once()
	s.repo.On("Commit", s.ctx, s.tx).Return(nil).Once()

	vehicle, err := s.service.CreateVehicle(s.ctx, dto.CreateVehicleRequest{
		RegistrationNumber: " ts09ab1234 ",
		RCNumber:           "RC-1",
		VehicleTypeCode:    "TRUCK",
		CenterCode:         "HYD",
	}, "user-1")
	s.Require().NoError(err)
	s.Equal("TS09AB1234", vehicle.RegistrationNumber)
	s.Equal(fixedNow, vehicle.CreatedAt)
}

func (s *VehicleServiceTestSuite) TestCreateVehicle_NegativeCapacity() {
	capacity := decimal.NewFromInt(-1)
	_, err := s.service.CreateVehicle(s.ctx, dto.CreateVehicleRequest{
		RegistrationNumber: "TS09AB1234",
		RCNumber:           "RC-1",
		VehicleTypeCode:    "TRUCK",
		CenterCode:         "HYD",
		CapacityKg:         &capacity,
	}, "user-1")
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (s *VehicleServiceTestSuite) TestCreateVehicle_DuplicateRegistration() {
	s.repo.On("Begin", s.ctx).Return(s.tx, nil).Once()
	s.refs.On("ValidateReference", s.ctx, s.tx, mock.Anything, mock.Anything).Return(nil).Twice()
	s.guard.On("EnsureUnique", s.ctx, s.tx, domain.EntityVehicle, domain.FieldRegistrationNumber, "TS09AB1234", "").Return(apperrors.ErrDuplicate).Once()
	s.repo.On("Rollback", s.ctx, s.tx).Return(nil).Once()

	_, err := s.service.CreateVehicle(s.ctx, dto.CreateVehicleRequest{
		RegistrationNumber: "TS09AB1234",
		RCNumber:           "RC-1",
		VehicleTypeCode:    "TRUCK",
		CenterCode:         "HYD",
	}, "user-1")
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.repo.AssertNotCalled(s.T(), "SaveVehicle", mock.Anything, mock.Anything, mock.Anything)
}

func (s *VehicleServiceTestSuite) TestUpdateVehicle_ChangedRCNumberExcludesOwnRow() {
	existing := &domain.Vehicle{VehicleID: "veh-1", RegistrationNumber: "TS09AB1234", RCNumber: "RC-1", IsActive: true}
	rc := "RC-2"
	s.repo.On("Begin", s.ctx).Return(s.tx, nil).Once()
	s.repo.On("FindVehicleByIDForUpdate", s.ctx, s.tx, "veh-1").Return(existing, nil).Once()
	s.guard.On("EnsureUnique", s.ctx, s.tx, domain.EntityVehicle, domain.FieldRCNumber, "RC-2", "veh-1").Return(nil).Once()
	s.repo.On("UpdateVehicle", s.ctx, s.tx, mock.MatchedBy(func(v domain.Vehicle) bool {
		return v.RCNumber == "RC-2" && v.LastUpdatedBy == "user-2"
	})).Return(nil).Once()
	s.repo.On("Commit", s.ctx, s.tx).Return(nil).Once()

	vehicle, err := s.service.UpdateVehicle(s.ctx, "veh-1", dto.UpdateVehicleRequest{RCNumber: &rc}, "user-2")
	s.Require().NoError(err)
	s.Equal("RC-2", vehicle.RCNumber)
	s.Equal(fixedNow, vehicle.LastUpdatedAt)
}

func (s *VehicleServiceTestSuite) TestUpdateVehicle_NotFound() {
	s.repo.On("Begin", s.ctx).Return(s.tx, nil).Once()
	s.repo.On("FindVehicleByIDForUpdate", s.ctx, s.tx, "veh-9").Return(nil, apperrors.ErrNotFound).Once()
	s.repo.On("Rollback", s.ctx, s.tx).Return(nil).Once()

	_, err := s.service.UpdateVehicle(s.ctx, "veh-9", dto.UpdateVehicleRequest{}, "user-2")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestVehicleService(t *testing.T) {
	suite.Run(t, new(VehicleServiceTestSuite))
}
