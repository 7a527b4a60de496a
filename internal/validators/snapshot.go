package validators

import (
	"github.com/Rhymond/go-money"

	"github.com/finchest/finchest/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a
// subset of fields (field-level scoping).
const (
	// FieldAccounts targets the account list of a snapshot.
	FieldAccounts = "accounts"

	// FieldTransactions targets the transaction list of a snapshot.
	FieldTransactions = "transactions"

	// FieldGoals targets the savings goal list of a snapshot.
	FieldGoals = "goals"

	// FieldRecurring targets the recurring item list of a snapshot.
	FieldRecurring = "recurring"

	// FieldSettings targets the settings block of a snapshot.
	FieldSettings = "settings"
)

// allowedAccountTypes is the exhaustive set of AccountType values accepted
// by the validator. Any AccountType not present here is considered invalid.
var allowedAccountTypes = []models.AccountType{
	models.AccountChecking,
	models.AccountSavings,
	models.AccountCash,
	models.AccountCredit,
	models.AccountInvestment,
}

// allowedIntervals is the exhaustive set of RecurrenceInterval values
// accepted by the validator.
var allowedIntervals = []models.RecurrenceInterval{
	models.RecurWeekly,
	models.RecurMonthly,
	models.RecurYearly,
}

// isValidAccountType reports whether t is in [allowedAccountTypes].
func isValidAccountType(t models.AccountType) bool {
	for _, allowed := range allowedAccountTypes {
		if t == allowed {
			return true
		}
	}
	return false
}

// isValidInterval reports whether i is in [allowedIntervals].
func isValidInterval(i models.RecurrenceInterval) bool {
	for _, allowed := range allowedIntervals {
		if i == allowed {
			return true
		}
	}
	return false
}

// isValidCurrency reports whether code is a known ISO-4217 currency.
func isValidCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}
