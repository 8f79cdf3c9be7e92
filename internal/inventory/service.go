// Package inventory manages a user's items and raises stock alerts after
// quantity changes.
package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dmitrijs2005/stockkeeper/internal/alerts"
	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/dbx"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
	"github.com/dmitrijs2005/stockkeeper/internal/storage"
)

var ErrNoOwner = errors.New("no owner given")

// PolicySource supplies the alert policy in effect.
type PolicySource interface {
	Policy(ctx context.Context) (alerts.Policy, error)
}

// AlertSender delivers a fired decision.
type AlertSender interface {
	Dispatch(ctx context.Context, owner, itemName string, d alerts.Decision, p alerts.Policy) bool
}

type SortOrder int

const (
	SortInsertion SortOrder = iota
	SortByQuantity
	SortByName
)

// Change describes a committed quantity mutation and what the alert rules
// made of it.
type Change struct {
	Item     *models.Item
	Previous int
	Decision alerts.Decision
	Alerted  bool
}

type Service struct {
	db          *sql.DB
	repomanager storage.RepositoryManager
	policy      PolicySource
	sender      AlertSender
	log         logging.Logger
}

func NewService(db *sql.DB, m storage.RepositoryManager, policy PolicySource, sender AlertSender, log logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{db: db, repomanager: m, policy: policy, sender: sender, log: log.With("component", "inventory")}
}

func (s *Service) Add(ctx context.Context, owner, name string, quantity int) (*models.Item, error) {
	if owner == "" {
		return nil, ErrNoOwner
	}
	item := &models.Item{Name: strings.TrimSpace(name), Quantity: quantity, Owner: owner}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := s.repomanager.Items(s.db).Create(ctx, item); err != nil {
		return nil, err
	}
	s.log.Debug(ctx, "item added", "item_id", item.ID)
	return item, nil
}

func (s *Service) Get(ctx context.Context, owner string, id int64) (*models.Item, error) {
	if owner == "" {
		return nil, ErrNoOwner
	}
	return s.repomanager.Items(s.db).Get(ctx, owner, id)
}

// List returns owner's items. Name order ignores case; ties keep insertion
// order.
func (s *Service) List(ctx context.Context, owner string, order SortOrder) ([]*models.Item, error) {
	if owner == "" {
		return nil, ErrNoOwner
	}
	list, err := s.repomanager.Items(s.db).ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	switch order {
	case SortByQuantity:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Quantity < list[j].Quantity })
	case SortByName:
		sort.SliceStable(list, func(i, j int) bool {
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		})
	}
	return list, nil
}

// Update replaces name and quantity. A quantity change is evaluated like
// any other.
func (s *Service) Update(ctx context.Context, owner string, id int64, name string, quantity int) (*Change, error) {
	name = strings.TrimSpace(name)
	return s.mutate(ctx, owner, id, func(it *models.Item) error {
		it.Name = name
		it.Quantity = quantity
		return it.Validate()
	}, func(repo itemsWriter, it *models.Item) error {
		return repo.Update(ctx, it)
	})
}

func (s *Service) Delete(ctx context.Context, owner string, id int64) error {
	if owner == "" {
		return ErrNoOwner
	}
	return s.repomanager.Items(s.db).Delete(ctx, owner, id)
}

func (s *Service) Increment(ctx context.Context, owner string, id int64) (*Change, error) {
	return s.step(ctx, owner, id, 1)
}

// Decrement lowers the quantity by one, stopping at zero.
func (s *Service) Decrement(ctx context.Context, owner string, id int64) (*Change, error) {
	return s.step(ctx, owner, id, -1)
}

func (s *Service) step(ctx context.Context, owner string, id int64, delta int) (*Change, error) {
	return s.mutate(ctx, owner, id, func(it *models.Item) error {
		if delta > 0 && it.Quantity > math.MaxInt-delta {
			return fmt.Errorf("%w: quantity too large", common.ErrorValidation)
		}
		it.Quantity += delta
		if it.Quantity < 0 {
			it.Quantity = 0
		}
		return nil
	}, func(repo itemsWriter, it *models.Item) error {
		return repo.SetQuantity(ctx, owner, id, it.Quantity)
	})
}

type itemsWriter interface {
	Update(ctx context.Context, item *models.Item) error
	SetQuantity(ctx context.Context, owner string, id int64, quantity int) error
}

// mutate reads the item, applies change and writes it in one transaction.
// Alert rules run after commit; their outcome never undoes the write.
func (s *Service) mutate(ctx context.Context, owner string, id int64, change func(*models.Item) error, write func(itemsWriter, *models.Item) error) (*Change, error) {
	if owner == "" {
		return nil, ErrNoOwner
	}

	var result Change
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Items(tx)
		item, err := repo.Get(ctx, owner, id)
		if err != nil {
			return err
		}
		result.Previous = item.Quantity
		if err := change(item); err != nil {
			return err
		}
		if err := write(repo, item); err != nil {
			return err
		}
		result.Item = item
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to change item %d: %w", id, err)
	}

	s.evaluate(ctx, owner, &result)
	return &result, nil
}

func (s *Service) evaluate(ctx context.Context, owner string, c *Change) {
	if c.Item.Quantity == c.Previous {
		return
	}
	policy, err := s.policy.Policy(ctx)
	if err != nil {
		s.log.Warn(ctx, "alert policy unavailable, skipping alert", "error", err)
		return
	}
	c.Decision = alerts.Decide(c.Previous, c.Item.Quantity, policy)
	if c.Decision == alerts.Suppress {
		return
	}
	c.Alerted = s.sender.Dispatch(ctx, owner, c.Item.Name, c.Decision, policy)
}
