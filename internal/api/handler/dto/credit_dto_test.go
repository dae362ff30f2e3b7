package dto_test

import (
	"testing"
	"time"

	"credit-system/internal/api/handler/dto"
	"credit-system/internal/domain/credit"
	"credit-system/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateCreditRequest() dto.CreateCreditRequest {
	return dto.CreateCreditRequest{
		CreditValue:           decimal.NewFromFloat(5000.0),
		DayFirstOfInstallment: time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		NumberOfInstallments:  15,
		CustomerID:            1,
	}
}

func TestCreateCreditRequest_Validate(t *testing.T) {
	t.Run("Valid request passes", func(t *testing.T) {
		req := validCreateCreditRequest()
		assert.NoError(t, req.Validate())
	})

	t.Run("Collects every violation at once", func(t *testing.T) {
		req := dto.CreateCreditRequest{
			CreditValue:           decimal.Zero,
			DayFirstOfInstallment: "not-a-date",
			NumberOfInstallments:  0,
			CustomerID:            0,
		}

		err := req.Validate()

		require.Error(t, err)
		var verrs *apperrors.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs.Violations, 4)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Credit value must be positive", func(t *testing.T) {
		req := validCreateCreditRequest()
		req.CreditValue = decimal.NewFromFloat(-100.0)

		err := req.Validate()

		require.Error(t, err)
		var verrs *apperrors.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "creditValue", verrs.Violations[0].Field)
	})

	t.Run("Installments bounds", func(t *testing.T) {
		testCases := []struct {
			name         string
			installments int
			valid        bool
		}{
			{"Zero", 0, false},
			{"Lower bound", 1, true},
			{"Upper bound", 48, true},
			{"Above upper bound", 49, false},
			{"Negative", -5, false},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				req := validCreateCreditRequest()
				req.NumberOfInstallments = tc.installments

				err := req.Validate()

				if tc.valid {
					assert.NoError(t, err)
				} else {
					require.Error(t, err)
					var verrs *apperrors.ValidationErrors
					require.ErrorAs(t, err, &verrs)
					assert.Equal(t, "numberOfInstallments", verrs.Violations[0].Field)
				}
			})
		}
	})

	t.Run("First installment date rules", func(t *testing.T) {
		t.Run("Past date rejected", func(t *testing.T) {
			req := validCreateCreditRequest()
			req.DayFirstOfInstallment = time.Now().AddDate(0, 0, -1).Format("2006-01-02")

			err := req.Validate()

			require.Error(t, err)
			var verrs *apperrors.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, "dayFirstOfInstallment", verrs.Violations[0].Field)
			assert.Contains(t, verrs.Violations[0].Message, "past")
		})

		t.Run("Beyond three month horizon rejected", func(t *testing.T) {
			req := validCreateCreditRequest()
			req.DayFirstOfInstallment = time.Now().AddDate(0, 4, 0).Format("2006-01-02")

			err := req.Validate()

			require.Error(t, err)
			var verrs *apperrors.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, "dayFirstOfInstallment", verrs.Violations[0].Field)
			assert.Contains(t, verrs.Violations[0].Message, "3 months")
		})

		t.Run("Unparseable date rejected", func(t *testing.T) {
			req := validCreateCreditRequest()
			req.DayFirstOfInstallment = "15/04/2026"

			err := req.Validate()

			require.Error(t, err)
			var verrs *apperrors.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, "dayFirstOfInstallment", verrs.Violations[0].Field)
		})
	})
}

func TestCreateCreditRequest_ToDomain(t *testing.T) {
	req := validCreateCreditRequest()

	cred := req.ToDomain()

	assert.True(t, decimal.NewFromFloat(5000.0).Equal(cred.CreditValue))
	assert.Equal(t, 15, cred.NumberOfInstallments)
	assert.Equal(t, int64(1), cred.CustomerID)
	assert.Equal(t, credit.StatusInProgress, cred.Status)
	assert.Equal(t, req.DayFirstOfInstallment, cred.DayFirstInstallment.Format("2006-01-02"))
}

func TestNewCreditResponse(t *testing.T) {
	code := uuid.New()
	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	cred := &credit.Credit{
		ID:                   10,
		CreditCode:           code,
		CreditValue:          decimal.NewFromFloat(5000.0),
		DayFirstInstallment:  day,
		NumberOfInstallments: 15,
		Status:               credit.StatusInProgress,
		CustomerID:           1,
	}

	resp := dto.NewCreditResponse(cred)

	assert.Equal(t, code.String(), resp.CreditCode)
	assert.True(t, decimal.NewFromFloat(5000.0).Equal(resp.CreditValue))
	assert.Equal(t, "2026-10-15", resp.DayFirstOfInstallment)
	assert.Equal(t, 15, resp.NumberOfInstallments)
	assert.Equal(t, "IN_PROGRESS", resp.Status)
	assert.Equal(t, int64(1), resp.CustomerID)
}

func TestNewCreditSummaryResponse(t *testing.T) {
	code := uuid.New()
	cred := &credit.Credit{
		CreditCode:           code,
		CreditValue:          decimal.NewFromFloat(1200.50),
		NumberOfInstallments: 12,
		CustomerID:           1,
	}

	resp := dto.NewCreditSummaryResponse(cred)

	assert.Equal(t, code.String(), resp.CreditCode)
	assert.True(t, decimal.NewFromFloat(1200.50).Equal(resp.CreditValue))
	assert.Equal(t, 12, resp.NumberOfInstallments)
}
