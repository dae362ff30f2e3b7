package credit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"credit-system/internal/domain/customer"
	"credit-system/internal/event"
	"credit-system/internal/pkg/apperrors"

	"github.com/google/uuid"
)

type CreditService interface {
	CreateCredit(ctx context.Context, cred *Credit) (*Credit, error)
	GetCreditByCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*Credit, error)
	ListCustomerCredits(ctx context.Context, customerID int64) ([]*Credit, error)
}

var _ CreditService = (*creditService)(nil)

type creditService struct {
	repo            CreditRepository
	customerService customer.CustomerService
	pub             event.EventPublisher
	logger          *slog.Logger
}

func NewCreditService(repo CreditRepository, cs customer.CustomerService, eventPublisher event.EventPublisher, logger *slog.Logger) CreditService {
	if repo == nil {
		panic("credit repository cannot be nil")
	}
	if cs == nil {
		panic("customer service cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCreditService, using default stderr handler")
	}
	if eventPublisher == nil {
		eventPublisher = event.NoopEventPublisher{}
	}

	return &creditService{
		repo:            repo,
		customerService: cs,
		pub:             eventPublisher,
		logger:          logger.With(slog.String("component", "creditService")),
	}
}

func (s *creditService) CreateCredit(ctx context.Context, cred *Credit) (*Credit, error) {
	s.logger.InfoContext(ctx, "Attempting to create new credit", slog.Int64("customerID", cred.CustomerID))

	// The customer lookup error propagates unchanged so a missing customer
	// surfaces exactly like a direct not-found lookup.
	if _, err := s.customerService.GetCustomer(ctx, cred.CustomerID); err != nil {
		s.logger.WarnContext(ctx, "Customer resolution failed for credit creation", slog.Any("error", err))
		return nil, err
	}

	cred.CreditCode = uuid.New()
	cred.Status = StatusInProgress

	s.logger.InfoContext(ctx, "Calling repository Save", slog.String("creditCode", cred.CreditCode.String()))
	if err := s.repo.Save(ctx, cred); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			s.logger.WarnContext(ctx, "Unique constraint violation while saving credit", slog.Any("error", err))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository failed to save new credit", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new credit: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully saved new credit, publishing creation event", slog.Int64("creditID", cred.ID))
	createdEvent := event.CreditCreatedEvent{
		Timestamp: time.Now(),
		Payload: event.CreditEventPayload{
			CreditID:             cred.ID,
			CreditCode:           cred.CreditCode.String(),
			CreditValue:          cred.CreditValue,
			NumberOfInstallments: cred.NumberOfInstallments,
			Status:               string(cred.Status),
			CustomerID:           cred.CustomerID,
		},
	}
	if pubErr := s.pub.PublishCreditCreated(ctx, createdEvent); pubErr != nil {
		s.logger.ErrorContext(ctx, "Credit created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	return cred, nil
}

func (s *creditService) GetCreditByCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*Credit, error) {
	s.logger.InfoContext(ctx, "Attempting to get credit by code", slog.String("creditCode", creditCode.String()))

	cred, err := s.repo.FindByCreditCode(ctx, creditCode)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Credit not found by repository")
			return nil, fmt.Errorf("%w: credit code %s not found", apperrors.ErrNotFound, creditCode)
		}
		s.logger.ErrorContext(ctx, "Repository error finding credit by code", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get credit %s: %w", creditCode, err)
	}

	// Existence and ownership are different failure causes.
	if !cred.OwnedBy(customerID) {
		s.logger.WarnContext(ctx, "Ownership check failed for credit",
			slog.Int64("requestedBy", customerID), slog.Int64("ownedBy", cred.CustomerID))
		return nil, fmt.Errorf("%w: contact admin", ErrOwnershipMismatch)
	}

	return cred, nil
}

func (s *creditService) ListCustomerCredits(ctx context.Context, customerID int64) ([]*Credit, error) {
	s.logger.InfoContext(ctx, "Attempting to list credits for customer", slog.Int64("customerID", customerID))

	credits, err := s.repo.FindAllByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing credits", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list credits for customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully listed credits", slog.Int("count", len(credits)))
	return credits, nil
}
