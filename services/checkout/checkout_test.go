package checkout

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanketJawali/tinker-store-api/models"
	"github.com/SanketJawali/tinker-store-api/services/identity"
)

type fakeCartReader struct{ lines []models.CartLine }

func (f fakeCartReader) ListForUser(context.Context, uint) ([]models.CartLine, error) {
	return f.lines, nil
}

type fakeOrderStore struct {
	placed *models.Order
}

func (f *fakeOrderStore) Place(_ context.Context, o *models.Order) error {
	o.ID = 77
	f.placed = o
	return nil
}

type fakeResolver struct{}

func (fakeResolver) Resolve(_ context.Context, claim identity.Claim) (uint, error) {
	if claim.Email == "" {
		return 0, identity.ErrMissingEmail
	}
	return 3, nil
}

type fakeMailer struct {
	sent int
	fail bool
}

func (f *fakeMailer) SendOrderConfirmation(context.Context, string, string, *models.Order) error {
	f.sent++
	if f.fail {
		return errors.New("smtp is having a day")
	}
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func validInput() Input {
	return Input{Name: "Ada", Address: "1 Engine Way", Phone: "555-0100", PaymentMethod: "credit_card"}
}

func twoLineCart() []models.CartLine {
	return []models.CartLine{
		{CartID: 1, ProductID: 10, Price: 250, Quantity: 2},
		{CartID: 2, ProductID: 11, Price: 1000, Quantity: 1},
	}
}

func TestPlaceOrderSnapshotsCartAndTotals(t *testing.T) {
	orders := &fakeOrderStore{}
	mail := &fakeMailer{}
	svc := NewService(fakeCartReader{lines: twoLineCart()}, orders, fakeResolver{}, mail, testLogger())

	order, err := svc.PlaceOrder(context.Background(), identity.Claim{Email: "a@example.com"}, validInput())
	require.NoError(t, err)

	assert.Equal(t, 1500, order.TotalAmount)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 250, order.Items[0].PriceAtPurchase)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.Reference)
	assert.Equal(t, 1, mail.sent)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc := NewService(fakeCartReader{}, &fakeOrderStore{}, fakeResolver{}, &fakeMailer{}, testLogger())

	_, err := svc.PlaceOrder(context.Background(), identity.Claim{Email: "a@example.com"}, validInput())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderValidatesInput(t *testing.T) {
	svc := NewService(fakeCartReader{lines: twoLineCart()}, &fakeOrderStore{}, fakeResolver{}, &fakeMailer{}, testLogger())

	_, err := svc.PlaceOrder(context.Background(), identity.Claim{Email: "a@example.com"}, Input{Name: "Ada"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlaceOrderMailFailureDoesNotFailOrder(t *testing.T) {
	orders := &fakeOrderStore{}
	mail := &fakeMailer{fail: true}
	svc := NewService(fakeCartReader{lines: twoLineCart()}, orders, fakeResolver{}, mail, testLogger())

	order, err := svc.PlaceOrder(context.Background(), identity.Claim{Email: "a@example.com"}, validInput())
	require.NoError(t, err)
	assert.NotNil(t, orders.placed)
	assert.Equal(t, uint(77), order.ID)
}
