// SPDX-License-Identifier: Apache-2.0

package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchest/finchest/models"
)

func drainChanges(s *StateStore) {
	select {
	case <-s.Changes():
	default:
	}
}

func TestStateStore_SnapshotIsDeepCopy(t *testing.T) {
	s := NewStateStore()
	s.AddAccount(models.Account{ID: "a1", Name: "Checking", Currency: "EUR"})

	snap := s.Snapshot()
	snap.Accounts[0].Name = "Mutated"

	assert.Equal(t, "Checking", s.Snapshot().Accounts[0].Name)
}

func TestStateStore_ApplyReplacesEverythingWithoutNotify(t *testing.T) {
	s := NewStateStore()
	s.AddAccount(models.Account{ID: "old", Currency: "EUR"})
	drainChanges(s)

	s.Apply(models.Snapshot{
		Accounts: []models.Account{{ID: "new", Currency: "USD"}},
		Settings: models.Settings{Currency: "USD"},
	})

	snap := s.Snapshot()
	require.Len(t, snap.Accounts, 1)
	assert.Equal(t, "new", snap.Accounts[0].ID)
	assert.Empty(t, snap.Transactions)

	select {
	case <-s.Changes():
		t.Fatal("Apply must not emit a change notification")
	default:
	}
}

func TestStateStore_MutatorsNotifyOnce(t *testing.T) {
	s := NewStateStore()

	s.AddAccount(models.Account{ID: "a1", Currency: "EUR"})
	s.UpdateSettings(models.Settings{Currency: "EUR"})
	s.UpsertGoal(models.Goal{ID: "g1", Target: decimal.NewFromInt(100)})

	// A burst of edits coalesces into a single pending notification.
	select {
	case <-s.Changes():
	default:
		t.Fatal("expected a pending change notification")
	}
	select {
	case <-s.Changes():
		t.Fatal("expected notifications to be coalesced")
	default:
	}
}

func TestStateStore_AddTransactionUnknownAccount(t *testing.T) {
	s := NewStateStore()

	err := s.AddTransaction(models.Transaction{ID: "t1", AccountID: "ghost"})

	assert.ErrorIs(t, err, ErrUnknownAccount)
}

func TestStateStore_AccountBalance(t *testing.T) {
	s := NewStateStore()
	s.AddAccount(models.Account{ID: "a1", Currency: "EUR"})

	require.NoError(t, s.AddTransaction(models.Transaction{
		ID: "t1", AccountID: "a1", Amount: decimal.RequireFromString("2500.00"), Date: time.Now(),
	}))
	require.NoError(t, s.AddTransaction(models.Transaction{
		ID: "t2", AccountID: "a1", Amount: decimal.RequireFromString("-42.50"), Date: time.Now(),
	}))

	assert.True(t, s.AccountBalance("a1").Equal(decimal.RequireFromString("2457.50")))
	assert.True(t, s.AccountBalance("missing").IsZero())
}

func TestStateStore_TotalsByCurrency(t *testing.T) {
	s := NewStateStore()
	s.AddAccount(models.Account{ID: "eur", Currency: "EUR"})
	s.AddAccount(models.Account{ID: "usd", Currency: "USD"})

	require.NoError(t, s.AddTransaction(models.Transaction{ID: "t1", AccountID: "eur", Amount: decimal.NewFromInt(10)}))
	require.NoError(t, s.AddTransaction(models.Transaction{ID: "t2", AccountID: "eur", Amount: decimal.NewFromInt(5)}))
	require.NoError(t, s.AddTransaction(models.Transaction{ID: "t3", AccountID: "usd", Amount: decimal.NewFromInt(7)}))

	totals := s.TotalsByCurrency()
	assert.True(t, totals["EUR"].Equal(decimal.NewFromInt(15)))
	assert.True(t, totals["USD"].Equal(decimal.NewFromInt(7)))
}

func TestStateStore_GoalProgress(t *testing.T) {
	s := NewStateStore()
	s.UpsertGoal(models.Goal{
		ID:     "g1",
		Target: decimal.NewFromInt(1000),
		Saved:  decimal.NewFromInt(250),
	})
	s.UpsertGoal(models.Goal{
		ID:     "overfunded",
		Target: decimal.NewFromInt(100),
		Saved:  decimal.NewFromInt(150),
	})

	assert.True(t, s.GoalProgress("g1").Equal(decimal.RequireFromString("0.25")))
	assert.True(t, s.GoalProgress("overfunded").Equal(decimal.NewFromInt(1)), "progress is capped at 1")
	assert.True(t, s.GoalProgress("missing").IsZero())
}

func TestStateStore_UpsertGoalReplaces(t *testing.T) {
	s := NewStateStore()
	s.UpsertGoal(models.Goal{ID: "g1", Name: "Old", Target: decimal.NewFromInt(100)})
	s.UpsertGoal(models.Goal{ID: "g1", Name: "New", Target: decimal.NewFromInt(200)})

	snap := s.Snapshot()
	require.Len(t, snap.Goals, 1)
	assert.Equal(t, "New", snap.Goals[0].Name)
}

func TestFormatAmount(t *testing.T) {
	eur := FormatAmount(decimal.RequireFromString("1234.50"), "EUR")
	assert.Contains(t, eur, "€")
	assert.Contains(t, eur, "50")

	// JPY has zero fraction digits, so the cent part must not be invented.
	jpy := FormatAmount(decimal.RequireFromString("1234"), "JPY")
	assert.Contains(t, jpy, "¥")
	assert.NotContains(t, jpy, ".00")

	// Unknown codes fall back to two fraction digits instead of panicking.
	unknown := FormatAmount(decimal.RequireFromString("10"), "XXX")
	assert.NotEmpty(t, unknown)
}
