package credit

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("credit not found")

	// ErrOwnershipMismatch means the credit exists but belongs to a different
	// customer. Callers must keep it distinct from ErrNotFound.
	ErrOwnershipMismatch = errors.New("credit does not belong to customer")
)

type CreditRepository interface {
	Save(ctx context.Context, credit *Credit) error

	FindByCreditCode(ctx context.Context, creditCode uuid.UUID) (*Credit, error)

	FindAllByCustomerID(ctx context.Context, customerID int64) ([]*Credit, error)
}
