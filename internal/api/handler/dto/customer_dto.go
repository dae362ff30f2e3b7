package dto

import (
	"regexp"
	"strings"

	"credit-system/internal/domain/customer"
	"credit-system/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

var (
	cpfPattern   = regexp.MustCompile(`^[0-9]{11}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type CreateCustomerRequest struct {
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	CPF       string          `json:"cpf"`
	Email     string          `json:"email"`
	Income    decimal.Decimal `json:"income"`
	Password  string          `json:"password"`
	ZipCode   string          `json:"zipCode"`
	Street    string          `json:"street"`
}

// Validate runs every field check and reports all violations together.
func (r *CreateCustomerRequest) Validate() error {
	verrs := &apperrors.ValidationErrors{}

	if strings.TrimSpace(r.FirstName) == "" {
		verrs.Add("firstName", "must not be blank")
	}
	if strings.TrimSpace(r.LastName) == "" {
		verrs.Add("lastName", "must not be blank")
	}
	if !cpfPattern.MatchString(r.CPF) {
		verrs.Add("cpf", "must be exactly 11 digits")
	}
	if !emailPattern.MatchString(r.Email) {
		verrs.Add("email", "must be a valid email address")
	}
	if !r.Income.IsPositive() {
		verrs.Add("income", "must be greater than zero")
	}
	if strings.TrimSpace(r.Password) == "" {
		verrs.Add("password", "must not be blank")
	}
	if strings.TrimSpace(r.ZipCode) == "" {
		verrs.Add("zipCode", "must not be blank")
	}
	if strings.TrimSpace(r.Street) == "" {
		verrs.Add("street", "must not be blank")
	}

	return verrs.ErrOrNil()
}

func (r *CreateCustomerRequest) ToDomain() *customer.Customer {
	return customer.NewCustomer(
		r.FirstName,
		r.LastName,
		r.CPF,
		r.Email,
		r.Password,
		r.Income,
		customer.Address{ZipCode: r.ZipCode, Street: r.Street},
	)
}

// UpdateCustomerRequest is a partial update: nil fields stay untouched.
type UpdateCustomerRequest struct {
	FirstName *string          `json:"firstName,omitempty"`
	LastName  *string          `json:"lastName,omitempty"`
	Income    *decimal.Decimal `json:"income,omitempty"`
	ZipCode   *string          `json:"zipCode,omitempty"`
	Street    *string          `json:"street,omitempty"`
}

func (r *UpdateCustomerRequest) Validate() error {
	verrs := &apperrors.ValidationErrors{}

	if r.FirstName != nil && strings.TrimSpace(*r.FirstName) == "" {
		verrs.Add("firstName", "must not be blank")
	}
	if r.LastName != nil && strings.TrimSpace(*r.LastName) == "" {
		verrs.Add("lastName", "must not be blank")
	}
	if r.Income != nil && !r.Income.IsPositive() {
		verrs.Add("income", "must be greater than zero")
	}
	if r.ZipCode != nil && strings.TrimSpace(*r.ZipCode) == "" {
		verrs.Add("zipCode", "must not be blank")
	}
	if r.Street != nil && strings.TrimSpace(*r.Street) == "" {
		verrs.Add("street", "must not be blank")
	}

	return verrs.ErrOrNil()
}

func (r *UpdateCustomerRequest) ToDomain() customer.CustomerUpdate {
	return customer.CustomerUpdate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Income:    r.Income,
		ZipCode:   r.ZipCode,
		Street:    r.Street,
	}
}

// CustomerResponse never carries the password. Income is included on every
// read path deliberately; only the credential field is withheld.
type CustomerResponse struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	CPF       string          `json:"cpf"`
	Email     string          `json:"email"`
	Income    decimal.Decimal `json:"income"`
	ZipCode   string          `json:"zipCode"`
	Street    string          `json:"street"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		ID:        cust.ID,
		FirstName: cust.FirstName,
		LastName:  cust.LastName,
		CPF:       cust.CPF,
		Email:     cust.Email,
		Income:    cust.Income,
		ZipCode:   cust.Address.ZipCode,
		Street:    cust.Address.Street,
	}
}
