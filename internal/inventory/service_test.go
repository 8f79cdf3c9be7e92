package inventory

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/stockkeeper/internal/alerts"
	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
	"github.com/dmitrijs2005/stockkeeper/internal/storage"
)

type staticPolicy struct {
	p   alerts.Policy
	err error
}

func (s *staticPolicy) Policy(context.Context) (alerts.Policy, error) { return s.p, s.err }

type fakeSender struct {
	mu    sync.Mutex
	calls []string
	ok    bool
}

func (f *fakeSender) Dispatch(_ context.Context, owner, itemName string, d alerts.Decision, _ alerts.Policy) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, owner+"|"+itemName+"|"+d.String())
	return f.ok
}

const owner = "a@b.co"

func newService(t *testing.T, p alerts.Policy) (*Service, *fakeSender, *staticPolicy) {
	t.Helper()
	ctx := context.Background()
	m := storage.NewSQLiteRepositoryManager(logging.Nop())
	db, err := storage.Open(ctx, ":memory:", m)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, email := range []string{owner, "other@b.co"} {
		require.NoError(t, m.Users(db).Create(ctx, &models.User{Email: email, PasswordHash: "h"}))
	}
	sender := &fakeSender{ok: true}
	policy := &staticPolicy{p: p}
	return NewService(db, m, policy, sender, logging.Nop()), sender, policy
}

func TestAddAndList(t *testing.T) {
	s, _, _ := newService(t, alerts.Policy{})
	ctx := context.Background()

	for _, it := range []struct {
		name string
		qty  int
	}{{"sugar", 5}, {"Apples", 9}, {"flour", 1}} {
		_, err := s.Add(ctx, owner, it.name, it.qty)
		require.NoError(t, err)
	}
	_, err := s.Add(ctx, "other@b.co", "Salt", 3)
	require.NoError(t, err)

	names := func(list []*models.Item) []string {
		var out []string
		for _, it := range list {
			out = append(out, it.Name)
		}
		return out
	}

	list, err := s.List(ctx, owner, SortInsertion)
	require.NoError(t, err)
	assert.Equal(t, []string{"sugar", "Apples", "flour"}, names(list))

	list, err = s.List(ctx, owner, SortByQuantity)
	require.NoError(t, err)
	assert.Equal(t, []string{"flour", "sugar", "Apples"}, names(list))

	list, err = s.List(ctx, owner, SortByName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apples", "flour", "sugar"}, names(list))
}

func TestAdd_Validation(t *testing.T) {
	s, _, _ := newService(t, alerts.Policy{})
	ctx := context.Background()

	_, err := s.Add(ctx, owner, "  ", 1)
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Add(ctx, owner, "Flour", -2)
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Add(ctx, "", "Flour", 1)
	assert.ErrorIs(t, err, ErrNoOwner)
}

func TestDecrement_FiresAtThresholdOnly(t *testing.T) {
	s, sender, _ := newService(t, alerts.Policy{SMSEnabled: true, MinimumThreshold: 2})
	ctx := context.Background()
	it, err := s.Add(ctx, owner, "Flour", 3)
	require.NoError(t, err)

	c, err := s.Decrement(ctx, owner, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Previous)
	assert.Equal(t, 2, c.Item.Quantity)
	assert.Equal(t, alerts.FireLowStock, c.Decision)
	assert.True(t, c.Alerted)

	c, err = s.Decrement(ctx, owner, it.ID)
	require.NoError(t, err)
	assert.Equal(t, alerts.Suppress, c.Decision)

	assert.Equal(t, []string{owner + "|Flour|low_stock"}, sender.calls)
}

func TestDecrement_NeverBelowZero(t *testing.T) {
	s, sender, _ := newService(t, alerts.Policy{SMSEnabled: true, NotifyAtZero: true, MinimumThreshold: 2})
	ctx := context.Background()
	it, err := s.Add(ctx, owner, "Flour", 1)
	require.NoError(t, err)

	c, err := s.Decrement(ctx, owner, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Item.Quantity)
	assert.Equal(t, alerts.FireOutOfStock, c.Decision)

	c, err = s.Decrement(ctx, owner, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Item.Quantity)
	assert.Equal(t, alerts.Suppress, c.Decision)

	got, err := s.Get(ctx, owner, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
	assert.Len(t, sender.calls, 1)
}

func TestIncrement_NeverFires(t *testing.T) {
	s, sender, _ := newService(t, alerts.Policy{SMSEnabled: true, MinimumThreshold: 2})
	ctx := context.Background()
	it, err := s.Add(ctx, owner, "Flour", 1)
	require.NoError(t, err)

	c, err := s.Increment(ctx, owner, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Item.Quantity)
	assert.Equal(t, alerts.Suppress, c.Decision)
	assert.Empty(t, sender.calls)
}

func TestIncrement_AtMaxIsRejected(t *testing.T) {
	s, sender, _ := newService(t, alerts.Policy{SMSEnabled: true, NotifyAtZero: true, MinimumThreshold: 2})
	ctx := context.Background()
	it, err := s.Add(ctx, owner, "Flour", math.MaxInt)
	require.NoError(t, err)

	c, err := s.Increment(ctx, owner, it.ID)
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Nil(t, c)
	assert.Empty(t, sender.calls)

	got, err := s.Get(ctx, owner, it.ID)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, got.Quantity)
}

func TestDecrement_DeliveryFailureKeepsChange(t *testing.T) {
	s, sender, _ := newService(t, alerts.Policy{SMSEnabled: true, MinimumThreshold: 2})
	sender.ok = false
	ctx := context.Background()
	it, err := s.Add(ctx, owner, "Flour", 3)
	require.NoError(t, err)

	c, err := s.Decrement(ctx, owner, it.ID)
	require.NoError(t, err)
	assert.False(t, c.Alerted)

	got, err := s.Get(ctx, owner, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
}

func TestDecrement_PolicyFailureKeepsChange(t *testing.T) {
	s, sender, policy := newService(t, alerts.Policy{})
	policy.err = errors.New("settings unreadable")
	ctx := context.Background()
	it, err := s.Add(ctx, owner, "Flour", 3)
	require.NoError(t, err)

	c, err := s.Decrement(ctx, owner, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Item.Quantity)
	assert.Empty(t, sender.calls)
}

func TestUpdate(t *testing.T) {
	s, sender, _ := newService(t, alerts.Policy{SMSEnabled: true, MinimumThreshold: 2})
	ctx := context.Background()
	it, err := s.Add(ctx, owner, "Flour", 10)
	require.NoError(t, err)

	c, err := s.Update(ctx, owner, it.ID, " Rye flour ", 2)
	require.NoError(t, err)
	assert.Equal(t, "Rye flour", c.Item.Name)
	assert.Equal(t, alerts.FireLowStock, c.Decision)
	assert.Equal(t, []string{owner + "|Rye flour|low_stock"}, sender.calls)

	_, err = s.Update(ctx, owner, it.ID, "", 2)
	assert.ErrorIs(t, err, common.ErrorValidation)

	got, err := s.Get(ctx, owner, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rye flour", got.Name)
}

func TestOwnerIsolation(t *testing.T) {
	s, _, _ := newService(t, alerts.Policy{})
	ctx := context.Background()
	it, err := s.Add(ctx, owner, "Flour", 3)
	require.NoError(t, err)

	_, err = s.Decrement(ctx, "other@b.co", it.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "other@b.co", it.ID), common.ErrorNotFound)
	require.NoError(t, s.Delete(ctx, owner, it.ID))

	_, err = s.Increment(ctx, owner, it.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
