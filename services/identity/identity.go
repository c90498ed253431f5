package identity

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/SanketJawali/tinker-store-api/models"
)

// ErrMissingEmail means the verified token carried no email claim, so the
// user cannot be linked to a local row. Caller-visible as a bad request.
var ErrMissingEmail = errors.New("user email not found in token claims")

// Claim is the slice of a verified identity token this service consumes.
// Token verification itself happens upstream in the auth middleware.
type Claim struct {
	Email string
	Name  string
}

// UserStore is the persistence surface the resolver needs. Create must
// return models.ErrDuplicate when the unique email constraint fires.
type UserStore interface {
	ByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

// Resolver lazily maps external identities to local user rows: the row is
// created on the first write that needs it, not at registration time.
type Resolver struct {
	users UserStore
	log   *logrus.Logger
}

func NewResolver(users UserStore, log *logrus.Logger) *Resolver {
	return &Resolver{users: users, log: log}
}

// Resolve returns the local user ID for the claimed email, creating the row
// if absent. Concurrent first-calls for the same email are arbitrated by the
// unique constraint: a creator that loses the race re-reads the winner's row
// instead of failing the request. No application-level lock is involved.
func (r *Resolver) Resolve(ctx context.Context, claim Claim) (uint, error) {
	if claim.Email == "" {
		return 0, ErrMissingEmail
	}

	user, err := r.users.ByEmail(ctx, claim.Email)
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return 0, err
	}

	name := claim.Name
	if name == "" {
		name = "Unknown User"
	}

	r.log.WithField("email", claim.Email).Info("creating local user record")
	newUser := &models.User{Name: name, Email: claim.Email}
	if err := r.users.Create(ctx, newUser); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			// Lost the creation race; the winner's row is authoritative.
			existing, rerr := r.users.ByEmail(ctx, claim.Email)
			if rerr != nil {
				return 0, rerr
			}
			return existing.ID, nil
		}
		return 0, err
	}
	return newUser.ID, nil
}
