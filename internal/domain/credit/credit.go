package credit

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// MaxInstallments bounds numberOfInstallments inclusively.
	MinInstallments = 1
	MaxInstallments = 48

	// InstallmentHorizonMonths is how far ahead the first installment may be.
	InstallmentHorizonMonths = 3
)

type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusPaid       Status = "PAID"
	StatusDefault    Status = "DEFAULT"
)

type Credit struct {
	ID                   int64
	CreditCode           uuid.UUID
	CreditValue          decimal.Decimal
	DayFirstInstallment  time.Time
	NumberOfInstallments int
	Status               Status
	CustomerID           int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewCredit builds a credit pending persistence. The credit code is assigned
// by the service at creation time, never by the caller.
func NewCredit(creditValue decimal.Decimal, dayFirstInstallment time.Time, numberOfInstallments int, customerID int64) *Credit {
	now := time.Now()
	return &Credit{
		CreditValue:          creditValue,
		DayFirstInstallment:  dayFirstInstallment,
		NumberOfInstallments: numberOfInstallments,
		Status:               StatusInProgress,
		CustomerID:           customerID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// OwnedBy reports whether the credit belongs to the given customer.
func (c *Credit) OwnedBy(customerID int64) bool {
	return c.CustomerID == customerID
}
