// SPDX-License-Identifier: Apache-2.0

package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the semantic kind of a tracked account.
type AccountType string

const (
	// AccountChecking is a day-to-day current account.
	AccountChecking AccountType = "checking"
	// AccountSavings is an interest-bearing savings account.
	AccountSavings AccountType = "savings"
	// AccountCash is physical cash kept outside a bank.
	AccountCash AccountType = "cash"
	// AccountCredit is a credit card or line of credit (balance usually negative).
	AccountCredit AccountType = "credit"
	// AccountInvestment is a brokerage or retirement account.
	AccountInvestment AccountType = "investment"
)

// RecurrenceInterval is the repetition period of a recurring item.
type RecurrenceInterval string

const (
	RecurWeekly  RecurrenceInterval = "weekly"
	RecurMonthly RecurrenceInterval = "monthly"
	RecurYearly  RecurrenceInterval = "yearly"
)

// Account is a single tracked money container (bank account, cash wallet,
// credit card, ...). Balances are not stored — they are derived from the
// transaction history.
type Account struct {
	// ID is the client-generated UUID of the account.
	ID string `json:"id"`
	// Name is the user-visible account label.
	Name string `json:"name"`
	// Type classifies the account for display and aggregation.
	Type AccountType `json:"type"`
	// Currency is the ISO-4217 code all transactions of this account use.
	Currency string `json:"currency"`
	// Archived hides the account from active views without deleting history.
	Archived bool `json:"archived,omitempty"`
}

// Transaction is a single dated movement of money on one account.
// Amount is signed: positive for income, negative for expenses.
type Transaction struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category,omitempty"`
	Note      string          `json:"note,omitempty"`
	Date      time.Time       `json:"date"`
}

// Goal is a savings target the user is working towards.
type Goal struct {
	ID string `json:"id"`
	// Name is the user-visible goal label (e.g. "vacation fund").
	Name string `json:"name"`
	// Target is the amount to be saved. Must be positive.
	Target decimal.Decimal `json:"target"`
	// Saved is the amount put aside so far.
	Saved decimal.Decimal `json:"saved"`
	// Deadline is the optional date the goal should be reached by.
	Deadline *time.Time `json:"deadline,omitempty"`
}

// RecurringItem is a template for a transaction that repeats on a fixed
// schedule (rent, salary, subscriptions). The schedule arithmetic itself
// lives outside this package; the engine only persists the template.
type RecurringItem struct {
	ID          string             `json:"id"`
	AccountID   string             `json:"account_id"`
	Description string             `json:"description"`
	Amount      decimal.Decimal    `json:"amount"`
	Interval    RecurrenceInterval `json:"interval"`
	// NextDue is the next date the item is expected to materialize.
	NextDue time.Time `json:"next_due"`
}

// Settings holds user preferences that travel with the vault file.
type Settings struct {
	// Currency is the ISO-4217 code used for cross-account totals.
	Currency string `json:"currency"`
	// Locale selects number/date formatting (BCP-47 tag, e.g. "de-DE").
	Locale string `json:"locale,omitempty"`
}

// Snapshot is the complete serializable application state at one instant.
// It is immutable once produced: the state store hands out deep copies and
// the sync engine owns a snapshot exclusively for the duration of a
// save/load cycle.
//
// Extra carries top-level vault fields this app version does not know about,
// keyed by their JSON name. The codec preserves them on re-encode so a newer
// file survives a round-trip through an older app without data loss.
type Snapshot struct {
	Accounts     []Account       `json:"accounts"`
	Transactions []Transaction   `json:"transactions"`
	Goals        []Goal          `json:"goals"`
	Recurring    []RecurringItem `json:"recurring"`
	Settings     Settings        `json:"settings"`

	Extra map[string]json.RawMessage `json:"-"`
}

// IsZero reports whether the snapshot carries no state at all.
func (s Snapshot) IsZero() bool {
	return len(s.Accounts) == 0 && len(s.Transactions) == 0 &&
		len(s.Goals) == 0 && len(s.Recurring) == 0 &&
		s.Settings == (Settings{}) && len(s.Extra) == 0
}

// Clone returns a deep copy of the snapshot. Mutating the copy never
// affects the original.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Accounts = append([]Account(nil), s.Accounts...)
	out.Transactions = append([]Transaction(nil), s.Transactions...)
	out.Goals = make([]Goal, len(s.Goals))
	for i, g := range s.Goals {
		out.Goals[i] = g
		if g.Deadline != nil {
			d := *g.Deadline
			out.Goals[i].Deadline = &d
		}
	}
	out.Recurring = append([]RecurringItem(nil), s.Recurring...)
	if s.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}
