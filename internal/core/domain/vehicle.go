package domain

import "github.com/shopspring/decimal"

// Vehicle is a fleet vehicle attached to an office center.
type Vehicle struct {
	VehicleID          string
	RegistrationNumber string
	RCNumber           string
	VehicleTypeCode    string
	CenterCode         string
	Model              string
	CapacityKg         decimal.Decimal
	IsActive           bool
	AuditFields
}
