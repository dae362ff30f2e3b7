package dto

import (
	"time"

	"credit-system/internal/domain/credit"
	"credit-system/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CreateCreditRequest struct {
	CreditValue           decimal.Decimal `json:"creditValue"`
	DayFirstOfInstallment string          `json:"dayFirstOfInstallment"`
	NumberOfInstallments  int             `json:"numberOfInstallments"`
	CustomerID            int64           `json:"customerId"`
}

// Validate runs every field check and reports all violations together.
func (r *CreateCreditRequest) Validate() error {
	verrs := &apperrors.ValidationErrors{}

	if !r.CreditValue.IsPositive() {
		verrs.Add("creditValue", "must be greater than zero")
	}
	if r.NumberOfInstallments < credit.MinInstallments || r.NumberOfInstallments > credit.MaxInstallments {
		verrs.Add("numberOfInstallments", "must be between 1 and 48")
	}
	if r.CustomerID <= 0 {
		verrs.Add("customerId", "must be a positive number")
	}

	day, err := time.Parse(dateLayout, r.DayFirstOfInstallment)
	if err != nil {
		verrs.Add("dayFirstOfInstallment", "must be a valid date in format 2006-01-02")
	} else {
		today := time.Now().Truncate(24 * time.Hour)
		horizon := today.AddDate(0, credit.InstallmentHorizonMonths, 0)
		if day.Before(today) {
			verrs.Add("dayFirstOfInstallment", "must not be in the past")
		} else if day.After(horizon) {
			verrs.Add("dayFirstOfInstallment", "must be no more than 3 months ahead")
		}
	}

	return verrs.ErrOrNil()
}

// ToDomain must only be called after Validate passed.
func (r *CreateCreditRequest) ToDomain() *credit.Credit {
	day, _ := time.Parse(dateLayout, r.DayFirstOfInstallment)
	return credit.NewCredit(r.CreditValue, day, r.NumberOfInstallments, r.CustomerID)
}

type CreditResponse struct {
	CreditCode            string          `json:"creditCode"`
	CreditValue           decimal.Decimal `json:"creditValue"`
	DayFirstOfInstallment string          `json:"dayFirstOfInstallment"`
	NumberOfInstallments  int             `json:"numberOfInstallments"`
	Status                string          `json:"status"`
	CustomerID            int64           `json:"customerId"`
}

func NewCreditResponse(cred *credit.Credit) CreditResponse {
	if cred == nil {
		return CreditResponse{}
	}
	return CreditResponse{
		CreditCode:            cred.CreditCode.String(),
		CreditValue:           cred.CreditValue,
		DayFirstOfInstallment: cred.DayFirstInstallment.Format(dateLayout),
		NumberOfInstallments:  cred.NumberOfInstallments,
		Status:                string(cred.Status),
		CustomerID:            cred.CustomerID,
	}
}

// CreditSummaryResponse is the list-view shape: enough to identify a credit
// without the full detail.
type CreditSummaryResponse struct {
	CreditCode           string          `json:"creditCode"`
	CreditValue          decimal.Decimal `json:"creditValue"`
	NumberOfInstallments int             `json:"numberOfInstallments"`
}

func NewCreditSummaryResponse(cred *credit.Credit) CreditSummaryResponse {
	if cred == nil {
		return CreditSummaryResponse{}
	}
	return CreditSummaryResponse{
		CreditCode:           cred.CreditCode.String(),
		CreditValue:          cred.CreditValue,
		NumberOfInstallments: cred.NumberOfInstallments,
	}
}
