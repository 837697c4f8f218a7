package reconcile

// Status is the derived payment status carried by works and services. It is
// a pure function of the record's amount and its linked completed payments,
// and is only ever written by this package.
type Status string

const (
	StatusPending       Status = "PENDING"
	StatusPartiallyPaid Status = "PARTIALLY_PAID"
	StatusPaid          Status = "PAID"
	StatusRefunded      Status = "REFUNDED"
	StatusNoAmount      Status = "NO_AMOUNT"
)

// paymentCompleted is the only payment state that contributes to totals.
const paymentCompleted = "COMPLETED"

// LinkedPayment is the slice of a payment the derivation needs.
type LinkedPayment struct {
	Amount   int64
	IsRefund bool
	Status   string
}

func (p LinkedPayment) completed() bool {
	return p.Status == paymentCompleted
}

// DeriveStatus recomputes the payment status for a record with the given
// amount and linked payments. Non-completed payments are ignored; completed
// refunds subtract from the paid total. The rule order is load-bearing: a
// zero-or-negative paid total with at least one completed refund yields
// REFUNDED no matter what the earlier rules decided.
func DeriveStatus(amount *int64, payments []LinkedPayment) Status {
	if amount == nil {
		return StatusNoAmount
	}

	var totalPaid int64
	hasCompletedRefund := false
	for _, p := range payments {
		if !p.completed() {
			continue
		}
		if p.IsRefund {
			totalPaid -= p.Amount
			hasCompletedRefund = true
		} else {
			totalPaid += p.Amount
		}
	}

	status := StatusPending
	switch {
	case totalPaid <= 0 && *amount > 0:
		status = StatusPending
	case totalPaid >= *amount:
		status = StatusPaid
	case totalPaid > 0 && totalPaid < *amount:
		status = StatusPartiallyPaid
	default:
		status = StatusPending
	}

	if totalPaid <= 0 && hasCompletedRefund {
		status = StatusRefunded
	}
	return status
}
