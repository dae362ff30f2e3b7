package customer

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address is embedded in Customer; it has no identity of its own.
type Address struct {
	ZipCode string `json:"zipCode"`
	Street  string `json:"street"`
}

type Customer struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	CPF       string          `json:"cpf"`
	Email     string          `json:"email"`
	Password  string          `json:"-"`
	Income    decimal.Decimal `json:"income"`
	Address   Address         `json:"address"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewCustomer(firstName, lastName, cpf, email, password string, income decimal.Decimal, address Address) *Customer {
	now := time.Now()
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		CPF:       cpf,
		Email:     email,
		Password:  password,
		Income:    income,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CustomerUpdate carries the mutable subset of a customer. Nil fields are
// left untouched; cpf, email and password are immutable after registration.
type CustomerUpdate struct {
	FirstName *string
	LastName  *string
	Income    *decimal.Decimal
	ZipCode   *string
	Street    *string
}

// Apply copies the non-nil fields onto the customer.
func (u CustomerUpdate) Apply(c *Customer) {
	if u.FirstName != nil {
		c.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		c.LastName = *u.LastName
	}
	if u.Income != nil {
		c.Income = *u.Income
	}
	if u.ZipCode != nil {
		c.Address.ZipCode = *u.ZipCode
	}
	if u.Street != nil {
		c.Address.Street = *u.Street
	}
	c.UpdatedAt = time.Now()
}
