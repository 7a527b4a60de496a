package validators

import (
	"context"
	"fmt"

	"github.com/finchest/finchest/models"
)

// SnapshotValidator enforces the business rules of a finance snapshot:
// unique identifiers, known currency codes, no dangling account references,
// positive goal targets, recognized recurrence intervals.
type SnapshotValidator struct{}

// NewSnapshotValidator returns a Validator for [models.Snapshot] values.
func NewSnapshotValidator() *SnapshotValidator {
	return &SnapshotValidator{}
}

// Validate implements [Validator]. The value must be a [models.Snapshot] or
// a pointer to one; anything else yields [ErrUnsupportedType].
func (v *SnapshotValidator) Validate(ctx context.Context, value any, fields ...string) error {
	switch snap := value.(type) {
	case models.Snapshot:
		return v.validateSnapshot(ctx, snap, fields...)
	case *models.Snapshot:
		return v.validateSnapshot(ctx, *snap, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *SnapshotValidator) validateSnapshot(ctx context.Context, snap models.Snapshot, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAccounts, FieldTransactions, FieldGoals, FieldRecurring, FieldSettings}
	}

	accountIDs := make(map[string]struct{}, len(snap.Accounts))
	for _, a := range snap.Accounts {
		accountIDs[a.ID] = struct{}{}
	}

	for _, f := range fields {
		switch f {
		case FieldAccounts:
			if err := v.validateAccounts(snap.Accounts); err != nil {
				return err
			}
		case FieldTransactions:
			if err := v.validateTransactions(snap.Transactions, accountIDs); err != nil {
				return err
			}
		case FieldGoals:
			if err := v.validateGoals(snap.Goals); err != nil {
				return err
			}
		case FieldRecurring:
			if err := v.validateRecurring(snap.Recurring, accountIDs); err != nil {
				return err
			}
		case FieldSettings:
			if err := v.validateSettings(snap.Settings); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SnapshotValidator) validateAccounts(accounts []models.Account) error {
	seen := make(map[string]struct{}, len(accounts))
	for i, a := range accounts {
		if a.ID == "" {
			return fmt.Errorf("account at index %d: %w", i, ErrEmptyID)
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("account %q: %w", a.ID, ErrDuplicateID)
		}
		seen[a.ID] = struct{}{}

		if a.Name == "" {
			return fmt.Errorf("account %q: %w", a.ID, ErrEmptyName)
		}
		if !isValidAccountType(a.Type) {
			return fmt.Errorf("account %q has type %q: %w", a.ID, a.Type, ErrInvalidAccountType)
		}
		if !isValidCurrency(a.Currency) {
			return fmt.Errorf("account %q has currency %q: %w", a.ID, a.Currency, ErrInvalidCurrency)
		}
	}
	return nil
}

func (v *SnapshotValidator) validateTransactions(txs []models.Transaction, accountIDs map[string]struct{}) error {
	seen := make(map[string]struct{}, len(txs))
	for i, tx := range txs {
		if tx.ID == "" {
			return fmt.Errorf("transaction at index %d: %w", i, ErrEmptyID)
		}
		if _, dup := seen[tx.ID]; dup {
			return fmt.Errorf("transaction %q: %w", tx.ID, ErrDuplicateID)
		}
		seen[tx.ID] = struct{}{}

		if _, ok := accountIDs[tx.AccountID]; !ok {
			return fmt.Errorf("transaction %q references account %q: %w", tx.ID, tx.AccountID, ErrUnknownAccountRef)
		}
		if tx.Date.IsZero() {
			return fmt.Errorf("transaction %q: %w", tx.ID, ErrZeroDate)
		}
	}
	return nil
}

func (v *SnapshotValidator) validateGoals(goals []models.Goal) error {
	seen := make(map[string]struct{}, len(goals))
	for i, g := range goals {
		if g.ID == "" {
			return fmt.Errorf("goal at index %d: %w", i, ErrEmptyID)
		}
		if _, dup := seen[g.ID]; dup {
			return fmt.Errorf("goal %q: %w", g.ID, ErrDuplicateID)
		}
		seen[g.ID] = struct{}{}

		if !g.Target.IsPositive() {
			return fmt.Errorf("goal %q: %w", g.ID, ErrInvalidTarget)
		}
		if g.Saved.IsNegative() {
			return fmt.Errorf("goal %q: %w", g.ID, ErrNegativeSaved)
		}
	}
	return nil
}

// validateSettings checks the totals currency. Empty is allowed: a fresh
// vault has no preference yet.
func (v *SnapshotValidator) validateSettings(settings models.Settings) error {
	if settings.Currency != "" && !isValidCurrency(settings.Currency) {
		return fmt.Errorf("settings currency %q: %w", settings.Currency, ErrInvalidCurrency)
	}
	return nil
}

func (v *SnapshotValidator) validateRecurring(items []models.RecurringItem, accountIDs map[string]struct{}) error {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("recurring item at index %d: %w", i, ErrEmptyID)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("recurring item %q: %w", item.ID, ErrDuplicateID)
		}
		seen[item.ID] = struct{}{}

		if _, ok := accountIDs[item.AccountID]; !ok {
			return fmt.Errorf("recurring item %q references account %q: %w", item.ID, item.AccountID, ErrUnknownAccountRef)
		}
		if !isValidInterval(item.Interval) {
			return fmt.Errorf("recurring item %q has interval %q: %w", item.ID, item.Interval, ErrInvalidInterval)
		}
	}
	return nil
}
