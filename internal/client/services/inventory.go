// Package services contains the application services of the packadmin
// console. InventoryService owns the record stores, dispatches mutations
// through the remote client and reconciles local state afterwards.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/packadmin/internal/client/client"
	"github.com/dmitrijs2005/packadmin/internal/client/guard"
	"github.com/dmitrijs2005/packadmin/internal/client/models"
	"github.com/dmitrijs2005/packadmin/internal/client/repositories/journal"
	"github.com/dmitrijs2005/packadmin/internal/client/store"
	"github.com/dmitrijs2005/packadmin/internal/logging"
)

// ErrUnknownPack is returned when a mutation names a pack that is not in
// the packs store.
var ErrUnknownPack = errors.New("unknown pack")

// Journal operation names.
const (
	OpCreatePack        = "createPack"
	OpAddItem           = "addItem"
	OpDeleteItem        = "deleteItem"
	OpAddImages         = "addImages"
	OpDeleteImages      = "deleteImages"
	OpRecordSale        = "recordSale"
	OpDeleteTransaction = "deleteTransaction"
)

// InventoryService defines the console's view of the remote inventory.
//
// Contract:
//   - Refresh reloads every collection; a failed collection keeps its
//     previous contents.
//   - Mutations are validated locally first. Invalid input never reaches
//     the network.
//   - After a successful mutation the returned record is patched into its
//     store and the collections holding server-derived fields are reloaded.
//   - Item and transaction deletes go through their Guard.
type InventoryService interface {
	Ping(ctx context.Context) error
	Refresh(ctx context.Context) error

	Packs() []models.Pack
	AggregatedPacks() []models.AggregatedPack
	Categories() []string
	Items() []models.Item
	Transactions() []models.Transaction
	FindPack(id int64) (models.Pack, bool)

	CreatePack(ctx context.Context, draft models.PackDraft, images []models.Blob) (models.Pack, error)
	AddItem(ctx context.Context, packID int64, name string) (models.Item, error)
	AddImages(ctx context.Context, packID int64, images []models.Blob) error
	DeleteImages(ctx context.Context, ids []int64) error
	RecordSale(ctx context.Context, packID int64, amountText string) (models.Transaction, error)

	ItemGuard() *guard.Guard
	TransactionGuard() *guard.Guard

	Journal(ctx context.Context, limit int) ([]journal.Entry, error)
}

type inventoryService struct {
	client  client.Client
	journal journal.Repository
	logger  logging.Logger

	packs        *store.Store[models.Pack]
	aggregated   *store.Store[models.AggregatedPack]
	categories   *store.Store[string]
	items        *store.Store[models.Item]
	transactions *store.Store[models.Transaction]

	itemGuard *guard.Guard
	txGuard   *guard.Guard
}

// NewInventoryService wires stores and guards around c. journalRepo may be
// nil, in which case nothing is journaled.
func NewInventoryService(c client.Client, journalRepo journal.Repository, logger logging.Logger) InventoryService {
	s := &inventoryService{
		client:       c,
		journal:      journalRepo,
		logger:       logger,
		packs:        store.NewKeyed("packs", c.ListPacks, logger),
		aggregated:   store.New("aggregated packs", c.ListAggregatedPacks, logger),
		categories:   store.New("categories", c.ListCategories, logger),
		items:        store.NewKeyed("items", c.ListItems, logger),
		transactions: store.NewKeyed("transactions", c.ListTransactions, logger),
	}

	s.itemGuard = guard.New("items", s.journaled(OpDeleteItem, c.DeleteItem), logger)
	s.itemGuard.OnConfirmed(func(ctx context.Context, id int64) {
		removeLocally(ctx, s.logger, s.items, id)
		s.reload(ctx, s.packs.Load, s.aggregated.Load)
	})

	s.txGuard = guard.New("transactions", s.journaled(OpDeleteTransaction, c.DeleteTransaction), logger)
	s.txGuard.OnConfirmed(func(ctx context.Context, id int64) {
		removeLocally(ctx, s.logger, s.transactions, id)
		s.reload(ctx, s.packs.Load, s.aggregated.Load)
	})

	return s
}

func (s *inventoryService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Refresh loads the collections one after another and joins the failures.
func (s *inventoryService) Refresh(ctx context.Context) error {
	return errors.Join(
		s.packs.Load(ctx),
		s.aggregated.Load(ctx),
		s.categories.Load(ctx),
		s.items.Load(ctx),
		s.transactions.Load(ctx),
	)
}

func (s *inventoryService) Packs() []models.Pack                     { return s.packs.Records() }
func (s *inventoryService) AggregatedPacks() []models.AggregatedPack { return s.aggregated.Records() }
func (s *inventoryService) Categories() []string                     { return s.categories.Records() }
func (s *inventoryService) Items() []models.Item                     { return s.items.Records() }
func (s *inventoryService) Transactions() []models.Transaction       { return s.transactions.Records() }

func (s *inventoryService) FindPack(id int64) (models.Pack, bool) {
	return s.packs.Find(id)
}

func (s *inventoryService) ItemGuard() *guard.Guard        { return s.itemGuard }
func (s *inventoryService) TransactionGuard() *guard.Guard { return s.txGuard }

// CreatePack validates the draft and submits it. The packs store is fully
// reloaded afterwards, since identifier, status and creation date come
// from the server; aggregates and categories are reloaded with it.
func (s *inventoryService) CreatePack(ctx context.Context, draft models.PackDraft, images []models.Blob) (models.Pack, error) {
	ctx = logging.ContextWith(ctx, "op", OpCreatePack)
	if err := draft.Validate(); err != nil {
		s.record(ctx, OpCreatePack, draft.Brand, err)
		return models.Pack{}, err
	}

	pack, err := s.client.CreatePack(ctx, draft, images)
	if err != nil {
		s.record(ctx, OpCreatePack, draft.Brand, err)
		s.logger.Error(ctx, "error creating pack", "brand", draft.Brand, "error", err)
		return models.Pack{}, err
	}

	target := draft.Brand
	if pack.ID != 0 {
		target = strconv.FormatInt(pack.ID, 10)
	}
	s.record(ctx, OpCreatePack, target, nil)

	s.reload(ctx, s.packs.Load, s.aggregated.Load, s.categories.Load)
	if stored, ok := s.packs.Find(pack.ID); ok {
		return stored, nil
	}
	return pack, nil
}

func (s *inventoryService) AddItem(ctx context.Context, packID int64, name string) (models.Item, error) {
	ctx = logging.ContextWith(ctx, "op", OpAddItem)
	target := strconv.FormatInt(packID, 10)

	if name == "" {
		err := &models.ValidationError{Field: "name", Message: "failed on required"}
		s.record(ctx, OpAddItem, target, err)
		return models.Item{}, err
	}
	if _, ok := s.packs.Find(packID); !ok {
		err := fmt.Errorf("%w: %d", ErrUnknownPack, packID)
		s.record(ctx, OpAddItem, target, err)
		return models.Item{}, err
	}

	item, err := s.client.AddItem(ctx, packID, name)
	s.record(ctx, OpAddItem, target, err)
	if err != nil {
		s.logger.Error(ctx, "error adding item", "pack", packID, "error", err)
		return models.Item{}, err
	}

	if item.ID == 0 {
		s.reload(ctx, s.items.Load)
	} else {
		patch(ctx, s.logger, s.items, item)
	}
	s.reload(ctx, s.packs.Load, s.aggregated.Load)
	return item, nil
}

func (s *inventoryService) AddImages(ctx context.Context, packID int64, images []models.Blob) error {
	ctx = logging.ContextWith(ctx, "op", OpAddImages)
	target := strconv.FormatInt(packID, 10)

	if len(images) == 0 {
		err := &models.ValidationError{Field: "images", Message: "failed on required"}
		s.record(ctx, OpAddImages, target, err)
		return err
	}

	err := s.client.AddImages(ctx, packID, images)
	s.record(ctx, OpAddImages, target, err)
	if err != nil {
		s.logger.Error(ctx, "error adding images", "pack", packID, "error", err)
		return err
	}

	s.reload(ctx, s.packs.Load)
	return nil
}

// DeleteImages removes images remotely and reloads packs. It satisfies
// selection.ImageDeleter.
func (s *inventoryService) DeleteImages(ctx context.Context, ids []int64) error {
	ctx = logging.ContextWith(ctx, "op", OpDeleteImages)
	target := fmt.Sprint(ids)

	err := s.client.DeleteImages(ctx, ids)
	s.record(ctx, OpDeleteImages, target, err)
	if err != nil {
		s.logger.Error(ctx, "error deleting images", "ids", ids, "error", err)
		return err
	}

	s.reload(ctx, s.packs.Load)
	return nil
}

// RecordSale checks the entered amount against the pack price before any
// network call, then records the sale with the derived profit.
func (s *inventoryService) RecordSale(ctx context.Context, packID int64, amountText string) (models.Transaction, error) {
	ctx = logging.ContextWith(ctx, "op", OpRecordSale)
	target := strconv.FormatInt(packID, 10)

	pack, ok := s.packs.Find(packID)
	if !ok {
		err := fmt.Errorf("%w: %d", ErrUnknownPack, packID)
		s.record(ctx, OpRecordSale, target, err)
		return models.Transaction{}, err
	}

	amount, profit, err := models.ValidateSale(amountText, pack.Price)
	if err != nil {
		s.record(ctx, OpRecordSale, target, err)
		return models.Transaction{}, err
	}

	tx, err := s.client.RecordSale(ctx, packID, amount, profit)
	s.record(ctx, OpRecordSale, target, err)
	if err != nil {
		s.logger.Error(ctx, "error recording sale", "pack", packID, "error", err)
		return models.Transaction{}, err
	}

	if tx.ID == 0 {
		s.reload(ctx, s.transactions.Load)
	} else {
		patch(ctx, s.logger, s.transactions, tx)
	}
	s.reload(ctx, s.packs.Load, s.aggregated.Load)
	return tx, nil
}

func (s *inventoryService) Journal(ctx context.Context, limit int) ([]journal.Entry, error) {
	if s.journal == nil {
		return nil, nil
	}
	return s.journal.Recent(ctx, limit)
}

// journaled wraps a guarded delete so that every attempt is journaled.
func (s *inventoryService) journaled(op string, del guard.DeleteFunc) guard.DeleteFunc {
	return func(ctx context.Context, id int64, credential string) error {
		ctx = logging.ContextWith(ctx, "op", op)
		err := del(ctx, id, credential)
		s.record(ctx, op, strconv.FormatInt(id, 10), err)
		return err
	}
}

// reload runs loads strictly one after another. Failures are already
// logged by the store and leave the previous contents in place.
func (s *inventoryService) reload(ctx context.Context, loads ...func(context.Context) error) {
	for _, load := range loads {
		_ = load(ctx)
	}
}

func patch[T any](ctx context.Context, logger logging.Logger, st *store.Store[T], rec T) {
	if err := st.Upsert(rec); err != nil {
		logger.Warn(ctx, "error patching record", "error", err)
	}
}

func removeLocally[T any](ctx context.Context, logger logging.Logger, st *store.Store[T], id int64) {
	if _, err := st.Remove(id); err != nil {
		logger.Warn(ctx, "error removing record", "id", id, "error", err)
	}
}

// record appends a journal entry. Journal failures are logged only.
func (s *inventoryService) record(ctx context.Context, op, target string, err error) {
	if s.journal == nil {
		return
	}

	outcome, msg := classify(err)
	if jerr := s.journal.Append(ctx, journal.NewEntry(op, target, outcome, msg)); jerr != nil {
		s.logger.Warn(ctx, "error writing journal", "op", op, "error", jerr)
	}
}

func classify(err error) (journal.Outcome, string) {
	var (
		re *client.RejectedError
		ve *models.ValidationError
	)
	switch {
	case err == nil:
		return journal.OutcomeOK, ""
	case errors.As(err, &re):
		return journal.OutcomeRejected, re.Message
	case errors.As(err, &ve):
		return journal.OutcomeInvalid, ve.Message
	case errors.Is(err, ErrUnknownPack):
		return journal.OutcomeInvalid, err.Error()
	default:
		return journal.OutcomeFailed, err.Error()
	}
}
