package dto

import (
	"time"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVehicleRequest defines the payload for registering a vehicle.
type CreateVehicleRequest struct {
	RegistrationNumber string           `json:"registrationNumber" binding:"required,max=32"`
	RCNumber           string           `json:"rcNumber" binding:"required,max=64"`
	VehicleTypeCode    string           `json:"vehicleTypeCode" binding:"required,max=32"`
	CenterCode         string           `json:"centerCode" binding:"required,max=32"`
	Model              string           `json:"model" binding:"max=255"`
	CapacityKg         *decimal.Decimal `json:"capacityKg"`
}

// UpdateVehicleRequest defines the payload for updating a vehicle.
type UpdateVehicleRequest struct {
	RegistrationNumber *string          `json:"registrationNumber" binding:"omitempty,min=1,max=32"`
	RCNumber           *string          `json:"rcNumber" binding:"omitempty,min=1,max=64"`
	VehicleTypeCode    *string          `json:"vehicleTypeCode" binding:"omitempty,min=1,max=32"`
	CenterCode         *string          `json:"centerCode" binding:"omitempty,min=1,max=32"`
	Model              *string          `json:"model" binding:"omitempty,max=255"`
	CapacityKg         *decimal.Decimal `json:"capacityKg"`
}

// VehicleResponse is a vehicle as returned by the API.
type VehicleResponse struct {
	VehicleID          string          `json:"vehicleID"`
	RegistrationNumber string          `json:"registrationNumber"`
	RCNumber           string          `json:"rcNumber"`
	VehicleTypeCode    string          `json:"vehicleTypeCode"`
	CenterCode         string          `json:"centerCode"`
	Model              string          `json:"model"`
	CapacityKg         decimal.Decimal `json:"capacityKg"`
	IsActive           bool            `json:"isActive"`
	CreatedAt          time.Time       `json:"createdAt"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}

// ToVehicleResponse converts a domain.Vehicle to VehicleResponse DTO.
func ToVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		VehicleID:          v.VehicleID,
		RegistrationNumber: v.RegistrationNumber,
		RCNumber:           v.RCNumber,
		VehicleTypeCode:    v.VehicleTypeCode,
		CenterCode:         v.CenterCode,
		Model:              v.Model,
		CapacityKg:         v.CapacityKg,
		IsActive:           v.IsActive,
		CreatedAt:          v.CreatedAt,
		LastUpdatedAt:      v.LastUpdatedAt,
	}
}
