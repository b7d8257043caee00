package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type amountInput struct {
	Amount float64 `validate:"positive_amount"`
}

func TestPositiveAmount(t *testing.T) {
	v := New()

	tests := []struct {
		amount float64
		valid  bool
	}{
		{amount: 0.01, valid: true},
		{amount: 1500, valid: true},
		{amount: 0, valid: false},
		{amount: -5, valid: false},
		{amount: math.Inf(1), valid: false},
		{amount: math.NaN(), valid: false},
	}

	for _, tt := range tests {
		err := v.Struct(amountInput{Amount: tt.amount})
		if tt.valid {
			assert.NoError(t, err, "amount %v", tt.amount)
		} else {
			assert.Error(t, err, "amount %v", tt.amount)
		}
	}
}
