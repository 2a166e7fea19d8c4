package identifier

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	now := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)

	for _, prefix := range []string{PrefixBooking, PrefixLLR, PrefixBookingPayment, PrefixExpensePayment, PrefixExpense} {
		id, err := Generate(prefix, now)
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile("^"+prefix+`240307\d{4}$`), id)
	}
}

func TestGenerateRejectsEmptyPrefix(t *testing.T) {
	_, err := Generate(" ", time.Now())
	assert.Error(t, err)
}
