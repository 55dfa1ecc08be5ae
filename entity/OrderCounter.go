package entity

// OrderCounter is a single-row-per-day counter used to hand out order
// numbers. The row is upsert-incremented inside the checkout
// transaction so concurrent checkouts can never see the same sequence.
type OrderCounter struct {
	Day     string `gorm:"primaryKey;size:8"` // YYYYMMDD
	LastSeq int    `gorm:"not null;default:0"`
}
