package dto

import (
	"github.com/amirasaad/simplebank/pkg/domain/account"
	"github.com/amirasaad/simplebank/pkg/money"
)

// AccountCreate is the parsed input for opening an account.
type AccountCreate struct {
	ID             string `validate:"required,max=64" label:"Account ID"`
	HolderName     string `validate:"required,max=128" label:"Account holder name"`
	InitialBalance string `validate:"required,numeric" label:"Initial balance"`
}

// Validate checks the raw fields.
func (r AccountCreate) Validate() error {
	return validateStruct(r)
}

// Balance parses InitialBalance. Call Validate first.
func (r AccountCreate) Balance() (money.Money, error) {
	return money.Parse(r.InitialBalance)
}

// AmountInput is the parsed input for a deposit or withdrawal.
type AmountInput struct {
	AccountID string `validate:"required" label:"Account ID"`
	Amount    string `validate:"required,numeric" label:"Amount"`
}

// Validate checks the raw fields.
func (r AmountInput) Validate() error {
	return validateStruct(r)
}

// Money parses Amount. Call Validate first.
func (r AmountInput) Money() (money.Money, error) {
	return money.Parse(r.Amount)
}

// AccountRead is a read-optimized view of an account for display.
type AccountRead struct {
	ID         string
	HolderName string
	Balance    string
	Entries    int
}

// ToAccountRead maps a domain account to its display form.
func ToAccountRead(a *account.Account) AccountRead {
	return AccountRead{
		ID:         a.ID,
		HolderName: a.HolderName,
		Balance:    a.Balance().String(),
		Entries:    len(a.History()),
	}
}
