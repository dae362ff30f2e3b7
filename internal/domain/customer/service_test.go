package customer_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"credit-system/internal/domain/customer"
	"credit-system/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func setupTest() (*customer.MockCustomerRepository, customer.CustomerService) {
	mockRepo := new(customer.MockCustomerRepository)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := customer.NewCustomerService(mockRepo, nil, logger)
	return mockRepo, service
}

func newTestCustomer() *customer.Customer {
	return customer.NewCustomer("Cami", "Cavalcante", "28475934625", "camila@gmail.com", "12345",
		decimal.NewFromFloat(1000.0), customer.Address{ZipCode: "12345", Street: "Rua da Cami, 123"})
}

func TestCustomerService_CreateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		cust := newTestCustomer()
		plainPassword := cust.Password
		expectedCustomerID := int64(1)

		mockRepo.On("ExistsByCPF", ctx, cust.CPF).Return(false, nil).Once()
		mockRepo.On("Save", ctx, mock.MatchedBy(func(c *customer.Customer) bool {
			match := c.CPF == "28475934625" && c.Email == "camila@gmail.com"
			if match {
				c.ID = expectedCustomerID
			}
			return match
		})).Return(nil).Once()

		created, err := service.CreateCustomer(ctx, cust)

		assert.NoError(t, err)
		assert.NotNil(t, created)
		if created != nil {
			assert.Equal(t, expectedCustomerID, created.ID)
			assert.NotEqual(t, plainPassword, created.Password)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte(plainPassword)))
		}
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - CPF Already Registered", func(t *testing.T) {
		mockRepo, service := setupTest()
		cust := newTestCustomer()

		mockRepo.On("ExistsByCPF", ctx, cust.CPF).Return(true, nil).Once()

		created, err := service.CreateCustomer(ctx, cust)

		assert.Error(t, err)
		assert.Nil(t, created)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
		assert.Contains(t, err.Error(), "cpf 28475934625 already registered")
		mockRepo.AssertExpectations(t)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Error - ExistsByCPF Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		cust := newTestCustomer()
		dbError := errors.New("database connection failed")

		mockRepo.On("ExistsByCPF", ctx, cust.CPF).Return(false, dbError).Once()

		created, err := service.CreateCustomer(ctx, cust)

		assert.Error(t, err)
		assert.Nil(t, created)
		assert.ErrorIs(t, err, dbError)
		assert.Contains(t, err.Error(), "failed to check cpf uniqueness")
		mockRepo.AssertExpectations(t)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Error - Save Unique Violation (Race Condition)", func(t *testing.T) {
		mockRepo, service := setupTest()
		cust := newTestCustomer()
		constraintErr := fmt.Errorf("%w: %w", customer.ErrDuplicateCPF, apperrors.ErrAlreadyExists)

		mockRepo.On("ExistsByCPF", ctx, cust.CPF).Return(false, nil).Once()
		mockRepo.On("Save", ctx, mock.AnythingOfType("*customer.Customer")).Return(constraintErr).Once()

		created, err := service.CreateCustomer(ctx, cust)

		assert.Error(t, err)
		assert.Nil(t, created)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
		assert.ErrorIs(t, err, customer.ErrDuplicateCPF)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Repository Save Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		cust := newTestCustomer()
		dbError := errors.New("insert failed")

		mockRepo.On("ExistsByCPF", ctx, cust.CPF).Return(false, nil).Once()
		mockRepo.On("Save", ctx, mock.AnythingOfType("*customer.Customer")).Return(dbError).Once()

		created, err := service.CreateCustomer(ctx, cust)

		assert.Error(t, err)
		assert.Nil(t, created)
		assert.ErrorIs(t, err, dbError)
		assert.Contains(t, err.Error(), "failed to save new customer")
		mockRepo.AssertExpectations(t)
	})
}

func TestCustomerService_GetCustomer(t *testing.T) {
	ctx := context.Background()
	customerID := int64(42)

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		expectedCustomer := &customer.Customer{ID: customerID, FirstName: "Cami"}

		mockRepo.On("FindByID", ctx, customerID).Return(expectedCustomer, nil).Once()

		cust, err := service.GetCustomer(ctx, customerID)

		assert.NoError(t, err)
		assert.Equal(t, expectedCustomer, cust)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Not Found", func(t *testing.T) {
		mockRepo, service := setupTest()

		mockRepo.On("FindByID", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

		cust, err := service.GetCustomer(ctx, customerID)

		assert.Error(t, err)
		assert.Nil(t, cust)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Contains(t, err.Error(), fmt.Sprintf("id %d not found", customerID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Repository Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		dbError := errors.New("internal server error")

		mockRepo.On("FindByID", ctx, customerID).Return(nil, dbError).Once()

		cust, err := service.GetCustomer(ctx, customerID)

		assert.Error(t, err)
		assert.Nil(t, cust)
		assert.ErrorIs(t, err, dbError)
		assert.Contains(t, err.Error(), fmt.Sprintf("failed to get customer %d", customerID))
		mockRepo.AssertExpectations(t)
	})
}

func TestCustomerService_UpdateCustomer(t *testing.T) {
	ctx := context.Background()
	customerID := int64(55)

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		existing := &customer.Customer{
			ID: customerID, FirstName: "Cami", LastName: "Cavalcante",
			CPF: "28475934625", Email: "camila@gmail.com",
			Income: decimal.NewFromFloat(1000.0),
		}
		newFirst := "CamiUpdated"
		newIncome := decimal.NewFromFloat(2000.0)
		update := customer.CustomerUpdate{FirstName: &newFirst, Income: &newIncome}

		mockRepo.On("FindByID", ctx, customerID).Return(existing, nil).Once()
		mockRepo.On("Save", ctx, mock.MatchedBy(func(c *customer.Customer) bool {
			return c.ID == customerID &&
				c.FirstName == "CamiUpdated" &&
				c.Income.Equal(newIncome) &&
				c.CPF == "28475934625" &&
				c.Email == "camila@gmail.com"
		})).Return(nil).Once()

		updated, err := service.UpdateCustomer(ctx, customerID, update)

		assert.NoError(t, err)
		assert.NotNil(t, updated)
		assert.Equal(t, "CamiUpdated", updated.FirstName)
		assert.Equal(t, "Cavalcante", updated.LastName)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Customer Not Found", func(t *testing.T) {
		mockRepo, service := setupTest()

		mockRepo.On("FindByID", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

		updated, err := service.UpdateCustomer(ctx, customerID, customer.CustomerUpdate{})

		assert.Error(t, err)
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		mockRepo.AssertExpectations(t)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Error - Save Not Found (Race Condition)", func(t *testing.T) {
		mockRepo, service := setupTest()
		existing := &customer.Customer{ID: customerID, FirstName: "Cami"}

		mockRepo.On("FindByID", ctx, customerID).Return(existing, nil).Once()
		mockRepo.On("Save", ctx, mock.AnythingOfType("*customer.Customer")).Return(apperrors.ErrNotFound).Once()

		updated, err := service.UpdateCustomer(ctx, customerID, customer.CustomerUpdate{})

		assert.Error(t, err)
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Save Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		existing := &customer.Customer{ID: customerID, FirstName: "Cami"}
		dbError := errors.New("save conflict")

		mockRepo.On("FindByID", ctx, customerID).Return(existing, nil).Once()
		mockRepo.On("Save", ctx, mock.AnythingOfType("*customer.Customer")).Return(dbError).Once()

		updated, err := service.UpdateCustomer(ctx, customerID, customer.CustomerUpdate{})

		assert.Error(t, err)
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, dbError)
		assert.Contains(t, err.Error(), fmt.Sprintf("failed to save updated customer %d", customerID))
		mockRepo.AssertExpectations(t)
	})
}

func TestCustomerService_DeleteCustomer(t *testing.T) {
	ctx := context.Background()
	customerID := int64(99)

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		existing := &customer.Customer{ID: customerID, FirstName: "Cami"}

		mockRepo.On("FindByID", ctx, customerID).Return(existing, nil).Once()
		mockRepo.On("Delete", ctx, customerID).Return(nil).Once()

		err := service.DeleteCustomer(ctx, customerID)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Customer Not Found", func(t *testing.T) {
		mockRepo, service := setupTest()

		mockRepo.On("FindByID", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

		err := service.DeleteCustomer(ctx, customerID)

		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		mockRepo.AssertExpectations(t)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Error - Delete Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		existing := &customer.Customer{ID: customerID, FirstName: "Cami"}
		dbError := errors.New("delete failed")

		mockRepo.On("FindByID", ctx, customerID).Return(existing, nil).Once()
		mockRepo.On("Delete", ctx, customerID).Return(dbError).Once()

		err := service.DeleteCustomer(ctx, customerID)

		assert.Error(t, err)
		assert.ErrorIs(t, err, dbError)
		assert.Contains(t, err.Error(), fmt.Sprintf("failed to delete customer %d", customerID))
		mockRepo.AssertExpectations(t)
	})
}

func TestNewCustomerService(t *testing.T) {
	t.Run("Panic on nil repository", func(t *testing.T) {
		assert.PanicsWithValue(t, "customer repository cannot be nil", func() {
			customer.NewCustomerService(nil, nil, slog.Default())
		})
	})

	t.Run("Default logger if none provided", func(t *testing.T) {
		assert.NotPanics(t, func() {
			_ = customer.NewCustomerService(new(customer.MockCustomerRepository), nil, nil)
		})
	})
}
