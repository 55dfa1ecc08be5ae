package entity

// PaymentStatus mirrors the gateway transaction-status vocabulary.
// Cash settlements reuse "settlement" so both paths share one machine.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentSettlement PaymentStatus = "settlement"
	PaymentCapture    PaymentStatus = "capture"
	PaymentExpire     PaymentStatus = "expire"
	PaymentCancel     PaymentStatus = "cancel"
	PaymentDeny       PaymentStatus = "deny"
	PaymentRefund     PaymentStatus = "refund"
	PaymentFailed     PaymentStatus = "failed"
)

// IsTerminal reports whether the status is final. Terminal payment
// statuses are immutable.
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentSettlement, PaymentCapture, PaymentExpire, PaymentCancel, PaymentDeny, PaymentRefund, PaymentFailed:
		return true
	}
	return false
}

// Settled reports whether the status means money actually arrived.
func (s PaymentStatus) Settled() bool {
	return s == PaymentSettlement || s == PaymentCapture
}
