package accounting

import (
	"fmt"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/SscSPs/courier_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineCharges are the per-unit charges of one package line. Nil charges count as zero.
type LineCharges struct {
	Quantity       *int
	PickupCharge   *decimal.Decimal
	DropCharge     *decimal.Decimal
	HandlingCharge *decimal.Decimal
}

// CostLine normalises the charges and returns the priced line.
// An omitted quantity is one; each charge is multiplied by the quantity.
func CostLine(in LineCharges) (quantity int, pickup, drop, handling, total decimal.Decimal, err error) {
	quantity = 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if quantity < 1 {
		return 0, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero,
			fmt.Errorf("%w: quantity must be at least 1, got %d", apperrors.ErrInvalidAmount, quantity)
	}

	charges := make([]decimal.Decimal, 3)
	for i, c := range []*decimal.Decimal{in.PickupCharge, in.DropCharge, in.HandlingCharge} {
		if c == nil {
			continue
		}
		if c.IsNegative() {
			return 0, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero,
				fmt.Errorf("%w: charges cannot be negative", apperrors.ErrInvalidAmount)
		}
		charges[i] = domain.RoundMoney(*c)
	}
	pickup, drop, handling = charges[0], charges[1], charges[2]

	total = pickup.Add(drop).Add(handling).Mul(decimal.NewFromInt(int64(quantity)))
	return quantity, pickup, drop, handling, domain.RoundMoney(total), nil
}

// BuildPackageLine prices in and returns it as a package line for bookingNumber.
func BuildPackageLine(packageTypeCode, description string, in LineCharges) (domain.PackageLine, error) {
	quantity, pickup, drop, handling, total, err := CostLine(in)
	if err != nil {
		return domain.PackageLine{}, err
	}
	return domain.PackageLine{
		PackageTypeCode: packageTypeCode,
		Quantity:        quantity,
		PickupCharge:    pickup,
		DropCharge:      drop,
		HandlingCharge:  handling,
		LineTotal:       total,
		Description:     description,
		IsActive:        true,
	}, nil
}

// BookingTotal sums the line totals of the active lines.
func BookingTotal(lines []domain.PackageLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if !line.IsActive {
			continue
		}
		total = total.Add(line.LineTotal)
	}
	return domain.RoundMoney(total)
}
