package entity

type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayOnline PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	return m == PayCash || m == PayOnline
}

// OrderPaymentStatus is the coarse paid/unpaid flag carried on the
// order itself; the fine-grained lifecycle lives on Payment.
type OrderPaymentStatus string

const (
	OrderUnpaid OrderPaymentStatus = "unpaid"
	OrderPaid   OrderPaymentStatus = "paid"
)
