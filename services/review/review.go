package review

import (
	"context"
	"errors"

	"github.com/SanketJawali/tinker-store-api/models"
	"github.com/SanketJawali/tinker-store-api/services/identity"
)

var (
	// ErrRatingRange rejects ratings outside 1..5 before any write.
	ErrRatingRange = errors.New("rating must be between 1 and 5")
	// ErrProductNotFound means the reviewed product does not exist. Checked
	// before the reviewer's user row is lazily created, so a bad product id
	// leaves no side effects at all.
	ErrProductNotFound = errors.New("product does not exist")
)

const (
	maxTitleLen   = 200
	maxContentLen = 1000
)

type ReviewStore interface {
	Create(ctx context.Context, r *models.Review) error
	ListForProduct(ctx context.Context, productID uint) ([]models.Review, error)
}

type ProductChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type UserResolver interface {
	Resolve(ctx context.Context, claim identity.Claim) (uint, error)
}

type NewReview struct {
	ProductID uint
	Rating    int
	Title     string
	Content   string
}

type Service struct {
	reviews  ReviewStore
	products ProductChecker
	resolver UserResolver
}

func NewService(reviews ReviewStore, products ProductChecker, resolver UserResolver) *Service {
	return &Service{reviews: reviews, products: products, resolver: resolver}
}

// Submit validates and persists a review. Order matters: rating bounds
// first, then product existence, and only then identity resolution — so an
// invalid submission never creates a user row.
func (s *Service) Submit(ctx context.Context, claim identity.Claim, input NewReview) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrRatingRange
	}
	if len(input.Title) > maxTitleLen {
		input.Title = input.Title[:maxTitleLen]
	}
	if len(input.Content) > maxContentLen {
		input.Content = input.Content[:maxContentLen]
	}

	ok, err := s.products.Exists(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProductNotFound
	}

	userID, err := s.resolver.Resolve(ctx, claim)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		ProductID: input.ProductID,
		UserID:    userID,
		Rating:    input.Rating,
		Title:     input.Title,
		Content:   input.Content,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListForProduct returns every review for the product.
func (s *Service) ListForProduct(ctx context.Context, productID uint) ([]models.Review, error) {
	return s.reviews.ListForProduct(ctx, productID)
}
