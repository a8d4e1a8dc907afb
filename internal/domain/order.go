package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order is the immutable snapshot recorded at a successful checkout.
// Order history lives in memory for the lifetime of the process only;
// it is intentionally not written to any store.
type Order struct {
	ID                 uuid.UUID
	Price              float64
	MemberPrice        float64
	CreditBefore       float64
	CreditAfter        float64
	MemberPriceApplied bool
	CreatedAt          time.Time
}

// NewOrder builds an order snapshot for a checkout about to be applied.
func NewOrder(price, memberPrice, creditBefore, creditAfter float64, memberApplied bool) *Order {
	return &Order{
		ID:                 uuid.New(),
		Price:              price,
		MemberPrice:        memberPrice,
		CreditBefore:       creditBefore,
		CreditAfter:        creditAfter,
		MemberPriceApplied: memberApplied,
		CreatedAt:          time.Now(),
	}
}

// Total returns the amount actually charged for this order.
func (o *Order) Total() float64 {
	if o.MemberPriceApplied {
		return o.MemberPrice
	}
	return o.Price
}
