package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func amount(v int64) *int64 { return &v }

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		amount   *int64
		payments []LinkedPayment
		want     Status
	}{
		{
			name:   "nil amount",
			amount: nil,
			want:   StatusNoAmount,
		},
		{
			name:   "nil amount ignores payments",
			amount: nil,
			payments: []LinkedPayment{
				{Amount: 5000, Status: "COMPLETED"},
			},
			want: StatusNoAmount,
		},
		{
			name:   "no payments",
			amount: amount(5000),
			want:   StatusPending,
		},
		{
			name:   "exact payment",
			amount: amount(5000),
			payments: []LinkedPayment{
				{Amount: 5000, Status: "COMPLETED"},
			},
			want: StatusPaid,
		},
		{
			name:   "overpayment",
			amount: amount(5000),
			payments: []LinkedPayment{
				{Amount: 3000, Status: "COMPLETED"},
				{Amount: 3000, Status: "COMPLETED"},
			},
			want: StatusPaid,
		},
		{
			name:   "partial payment",
			amount: amount(5000),
			payments: []LinkedPayment{
				{Amount: 2000, Status: "COMPLETED"},
			},
			want: StatusPartiallyPaid,
		},
		{
			name:   "pending payments do not count",
			amount: amount(5000),
			payments: []LinkedPayment{
				{Amount: 5000, Status: "PENDING"},
			},
			want: StatusPending,
		},
		{
			name:   "failed payments do not count",
			amount: amount(5000),
			payments: []LinkedPayment{
				{Amount: 5000, Status: "FAILED"},
			},
			want: StatusPending,
		},
		{
			name:   "refund cancels payment",
			amount: amount(5000),
			payments: []LinkedPayment{
				{Amount: 5000, Status: "COMPLETED"},
				{Amount: 5000, IsRefund: true, Status: "COMPLETED"},
			},
			want: StatusRefunded,
		},
		{
			name:   "lone refund",
			amount: amount(5000),
			payments: []LinkedPayment{
				{Amount: 1000, IsRefund: true, Status: "COMPLETED"},
			},
			want: StatusRefunded,
		},
		{
			name:   "pending refund does not count",
			amount: amount(5000),
			payments: []LinkedPayment{
				{Amount: 5000, Status: "COMPLETED"},
				{Amount: 5000, IsRefund: true, Status: "PENDING"},
			},
			want: StatusPaid,
		},
		{
			name:   "partial after refund",
			amount: amount(5000),
			payments: []LinkedPayment{
				{Amount: 3000, Status: "COMPLETED"},
				{Amount: 1000, IsRefund: true, Status: "COMPLETED"},
			},
			want: StatusPartiallyPaid,
		},
		{
			name:   "refund leaves paid",
			amount: amount(5000),
			payments: []LinkedPayment{
				{Amount: 7000, Status: "COMPLETED"},
				{Amount: 1000, IsRefund: true, Status: "COMPLETED"},
			},
			want: StatusPaid,
		},
		{
			// The rule order decides: with nothing paid the zero amount
			// is already covered.
			name:   "zero amount",
			amount: amount(0),
			want:   StatusPaid,
		},
		{
			name:   "negative total with refund",
			amount: amount(0),
			payments: []LinkedPayment{
				{Amount: 1000, IsRefund: true, Status: "COMPLETED"},
			},
			want: StatusRefunded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.amount, tt.payments))
		})
	}
}
