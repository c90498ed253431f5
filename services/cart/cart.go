package cart

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/SanketJawali/tinker-store-api/models"
)

var (
	// ErrZeroDelta rejects a quantity delta of zero before any lookup.
	ErrZeroDelta = errors.New("quantity delta must be non-zero")
	// ErrProductNotFound means the referenced product does not exist; no cart
	// mutation is attempted in that case.
	ErrProductNotFound = errors.New("product does not exist")
)

// EntryStore is the persistence surface for cart entries. Lookups scoped by
// user so one user's hint can never reach another user's row.
type EntryStore interface {
	ByID(ctx context.Context, id, userID, productID uint) (*models.CartEntry, error)
	ByUserProduct(ctx context.Context, userID, productID uint) (*models.CartEntry, error)
	Create(ctx context.Context, e *models.CartEntry) error
	SaveQuantity(ctx context.Context, e *models.CartEntry) error
	Delete(ctx context.Context, id uint) error
	ListForUser(ctx context.Context, userID uint) ([]models.CartLine, error)
}

// ProductChecker answers whether a product exists.
type ProductChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeUpdated
	OutcomeRemoved
	OutcomeNoop
)

// Result reports what ApplyDelta did. Entry is nil for OutcomeRemoved and
// OutcomeNoop.
type Result struct {
	Outcome Outcome
	Entry   *models.CartEntry
}

// Reconciler merges quantity deltas into cart state, owning the
// add/update/delete semantics for cart entries.
//
// The read-modify-write here is not atomic against concurrent deltas for the
// same (user, product) pair: two racing requests can lose one update unless
// the database serializes conflicting row updates. Callers must send the
// intended change once, not resend on ambiguous timeout — repeating a delta
// compounds quantity.
type Reconciler struct {
	entries  EntryStore
	products ProductChecker
	log      *logrus.Logger
}

func NewReconciler(entries EntryStore, products ProductChecker, log *logrus.Logger) *Reconciler {
	return &Reconciler{entries: entries, products: products, log: log}
}

// ApplyDelta applies a signed quantity change for (userID, productID).
//
// Entry resolution: a non-nil entryIDHint must belong to userID and reference
// productID, otherwise it is treated as not found; without a hint the unique
// live entry for the pair is looked up. An existing entry's quantity moves by
// delta; a result <= 0 deletes the entry. No entry plus a positive delta
// creates one; no entry plus a non-positive delta is a no-op success.
func (r *Reconciler) ApplyDelta(ctx context.Context, userID, productID uint, entryIDHint *uint, delta int) (Result, error) {
	if delta == 0 {
		return Result{}, ErrZeroDelta
	}

	ok, err := r.products.Exists(ctx, productID)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, ErrProductNotFound
	}

	entry, err := r.resolveEntry(ctx, userID, productID, entryIDHint)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return Result{}, err
	}

	if entry == nil {
		if delta <= 0 {
			// Nothing to remove; not an error.
			return Result{Outcome: OutcomeNoop}, nil
		}
		entry = &models.CartEntry{UserID: userID, ProductID: productID, Quantity: delta}
		if err := r.entries.Create(ctx, entry); err != nil {
			return Result{}, err
		}
		return Result{Outcome: OutcomeCreated, Entry: entry}, nil
	}

	entry.Quantity += delta
	if entry.Quantity <= 0 {
		if err := r.entries.Delete(ctx, entry.ID); err != nil {
			return Result{}, err
		}
		r.log.WithFields(logrus.Fields{"user_id": userID, "product_id": productID}).Debug("cart entry removed")
		return Result{Outcome: OutcomeRemoved}, nil
	}

	if err := r.entries.SaveQuantity(ctx, entry); err != nil {
		return Result{}, err
	}
	return Result{Outcome: OutcomeUpdated, Entry: entry}, nil
}

// Remove deletes the user's entry for productID outright, regardless of
// quantity. models.ErrNotFound when no live entry exists.
func (r *Reconciler) Remove(ctx context.Context, userID, productID uint) error {
	entry, err := r.entries.ByUserProduct(ctx, userID, productID)
	if err != nil {
		return err
	}
	return r.entries.Delete(ctx, entry.ID)
}

// List returns the user's cart joined with product display fields.
func (r *Reconciler) List(ctx context.Context, userID uint) ([]models.CartLine, error) {
	return r.entries.ListForUser(ctx, userID)
}

func (r *Reconciler) resolveEntry(ctx context.Context, userID, productID uint, hint *uint) (*models.CartEntry, error) {
	if hint != nil {
		return r.entries.ByID(ctx, *hint, userID, productID)
	}
	return r.entries.ByUserProduct(ctx, userID, productID)
}
