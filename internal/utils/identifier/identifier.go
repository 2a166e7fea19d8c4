package identifier

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Business identifier prefixes.
const (
	PrefixBooking        = "BK"
	PrefixLLR            = "LLR"
	PrefixBookingPayment = "PAY"
	PrefixExpensePayment = "EPY"
	PrefixExpense        = "EXP"
)

const suffixDigits = 4

var suffixSpace = big.NewInt(10000)

// Generate builds prefix + yyMMdd + a random 4 digit suffix.
// It does not check uniqueness; callers retry against the store.
func Generate(prefix string, now time.Time) (string, error) {
	if strings.TrimSpace(prefix) == "" {
		return "", fmt.Errorf("identifier prefix must not be empty")
	}
	n, err := rand.Int(rand.Reader, suffixSpace)
	if err != nil {
		return "", fmt.Errorf("failed to read random suffix: %w", err)
	}
	return fmt.Sprintf("%s%s%0*d", prefix, now.Format("060102"), suffixDigits, n.Int64()), nil
}

// Generator produces a candidate identifier for prefix.
type Generator func(prefix string, now time.Time) (string, error)
