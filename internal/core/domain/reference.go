package domain

// ReferenceKind is a family of master data that ledger rows point at by code.
type ReferenceKind string

const (
	RefOfficeCenter    ReferenceKind = "office_center"
	RefLocation        ReferenceKind = "location"
	RefCustomer        ReferenceKind = "customer"
	RefExpenseCategory ReferenceKind = "expense_category"
	RefVehicleType     ReferenceKind = "vehicle_type"
	RefPackageType     ReferenceKind = "package_type"
)

// ReferenceKinds lists every supported kind.
var ReferenceKinds = []ReferenceKind{
	RefOfficeCenter,
	RefLocation,
	RefCustomer,
	RefExpenseCategory,
	RefVehicleType,
	RefPackageType,
}

// IsValid reports whether k is a supported kind.
func (k ReferenceKind) IsValid() bool {
	for _, known := range ReferenceKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ReferenceEntity is a single master-data row.
type ReferenceEntity struct {
	ReferenceID string
	Kind        ReferenceKind
	Code        string
	Name        string
	IsActive    bool
	AuditFields
}
