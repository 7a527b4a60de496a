// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"sync"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/finchest/finchest/models"
)

// StateStore is the reactive in-memory container for all domain entities.
// Reads hand out deep copies, so a snapshot taken for a save cannot be
// mutated by concurrent edits. Every mutation emits a change notification
// the auto-save scheduler subscribes to; notifications are coalesced at the
// source (buffered channel of one), matching the scheduler's debounce
// semantics.
type StateStore struct {
	mu      sync.RWMutex
	snap    models.Snapshot
	changes chan struct{}
}

// NewStateStore creates an empty state store.
func NewStateStore() *StateStore {
	return &StateStore{
		changes: make(chan struct{}, 1),
	}
}

// Snapshot returns a deep copy of the current application state.
func (s *StateStore) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Apply atomically replaces the entire state with snap — all entity
// collections together, never a partial mix. Used after a successful vault
// load. Apply does NOT emit a change notification: loaded state is already
// persisted, and notifying here would trigger a pointless auto-save of what
// was just read.
func (s *StateStore) Apply(snap models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap.Clone()
}

// Changes returns the channel on which mutations are announced. The channel
// has a buffer of one: a burst of edits collapses into a single pending
// notification.
func (s *StateStore) Changes() <-chan struct{} {
	return s.changes
}

func (s *StateStore) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// AddAccount appends a new account.
func (s *StateStore) AddAccount(acc models.Account) {
	s.mu.Lock()
	s.snap.Accounts = append(s.snap.Accounts, acc)
	s.mu.Unlock()
	s.notify()
}

// AddTransaction appends a transaction. The referenced account must exist.
func (s *StateStore) AddTransaction(tx models.Transaction) error {
	s.mu.Lock()
	if !s.hasAccountLocked(tx.AccountID) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownAccount, tx.AccountID)
	}
	s.snap.Transactions = append(s.snap.Transactions, tx)
	s.mu.Unlock()
	s.notify()
	return nil
}

// UpsertGoal inserts the goal or replaces the existing one with the same ID.
func (s *StateStore) UpsertGoal(goal models.Goal) {
	s.mu.Lock()
	replaced := false
	for i, g := range s.snap.Goals {
		if g.ID == goal.ID {
			s.snap.Goals[i] = goal
			replaced = true
			break
		}
	}
	if !replaced {
		s.snap.Goals = append(s.snap.Goals, goal)
	}
	s.mu.Unlock()
	s.notify()
}

// AddRecurring appends a recurring item. The referenced account must exist.
func (s *StateStore) AddRecurring(item models.RecurringItem) error {
	s.mu.Lock()
	if !s.hasAccountLocked(item.AccountID) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownAccount, item.AccountID)
	}
	s.snap.Recurring = append(s.snap.Recurring, item)
	s.mu.Unlock()
	s.notify()
	return nil
}

// UpdateSettings replaces the settings block.
func (s *StateStore) UpdateSettings(settings models.Settings) {
	s.mu.Lock()
	s.snap.Settings = settings
	s.mu.Unlock()
	s.notify()
}

func (s *StateStore) hasAccountLocked(accountID string) bool {
	for _, acc := range s.snap.Accounts {
		if acc.ID == accountID {
			return true
		}
	}
	return false
}

// AccountBalance derives the balance of one account from its transaction
// history.
func (s *StateStore) AccountBalance(accountID string) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balance := decimal.Zero
	for _, tx := range s.snap.Transactions {
		if tx.AccountID == accountID {
			balance = balance.Add(tx.Amount)
		}
	}
	return balance
}

// TotalsByCurrency derives the summed balance of all accounts, grouped by
// account currency.
func (s *StateStore) TotalsByCurrency() map[string]decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	currencies := make(map[string]string, len(s.snap.Accounts)) // account ID -> currency
	for _, acc := range s.snap.Accounts {
		currencies[acc.ID] = acc.Currency
	}

	totals := make(map[string]decimal.Decimal)
	for _, tx := range s.snap.Transactions {
		code, ok := currencies[tx.AccountID]
		if !ok {
			continue
		}
		totals[code] = totals[code].Add(tx.Amount)
	}
	return totals
}

// GoalProgress returns the saved/target ratio of a goal, capped at 1.
// Returns zero for an unknown goal or a non-positive target.
func (s *StateStore) GoalProgress(goalID string) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.snap.Goals {
		if g.ID != goalID {
			continue
		}
		if !g.Target.IsPositive() {
			return decimal.Zero
		}
		ratio := g.Saved.Div(g.Target)
		if ratio.GreaterThan(decimal.NewFromInt(1)) {
			return decimal.NewFromInt(1)
		}
		return ratio
	}
	return decimal.Zero
}

// FormatAmount renders amount in the locale-independent display form of the
// given ISO-4217 currency (e.g. "€1,234.50"). Unknown codes fall back to
// two fraction digits.
func FormatAmount(amount decimal.Decimal, currencyCode string) string {
	fraction := 2
	if c := money.GetCurrency(currencyCode); c != nil {
		fraction = c.Fraction
	}

	minor := amount.Shift(int32(fraction)).Round(0).IntPart()
	return money.New(minor, currencyCode).Display()
}
