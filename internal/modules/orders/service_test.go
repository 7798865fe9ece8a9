package orders

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamseddine-glitch/sha/internal/mailer"
	"github.com/chamseddine-glitch/sha/internal/modules/cart"
	"github.com/chamseddine-glitch/sha/internal/modules/settings"
	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
)

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func testShop() settings.StoreSettings {
	s := settings.Defaults()
	s.WhatsappNumber = "+213 555 12 34 56"
	return s
}

func validDetails() OrderDetails {
	return OrderDetails{
		Name:           "Amel B",
		Phone:          "0555123456",
		Wilaya:         "Alger",
		Commune:        "Hydra",
		ShippingMethod: "office",
	}
}

func cartItem(id, productID string, price float64, qty int) cart.Item {
	return cart.Item{
		ID: id,
		Product: settings.Product{
			ID:        productID,
			Name:      "Product " + productID,
			Price:     price,
			ImageURLs: []string{"https://img.example/" + productID + ".png"},
		},
		Quantity:        qty,
		SelectedOptions: map[string]string{},
	}
}

func orderFixture(t *testing.T) (*Service, *fakeBin, *cart.Service, *mailer.Mock) {
	t.Helper()
	bin := &fakeBin{}
	carts := cart.NewService(newMemCartRepo())
	mock := &mailer.Mock{}
	svc := NewService(NewStore(bin, "orders-bin"), carts, mock, "shop@local.test", "owner@local.test", discardLogger())
	return svc, bin, carts, mock
}

// memCartRepo backs a real cart.Service in these tests.
type memCartRepo struct{ items map[string][]cart.Item }

func newMemCartRepo() *memCartRepo { return &memCartRepo{items: map[string][]cart.Item{}} }

func (m *memCartRepo) Items(_ context.Context, cartID string) ([]cart.Item, error) {
	out := make([]cart.Item, len(m.items[cartID]))
	copy(out, m.items[cartID])
	return out, nil
}

func (m *memCartRepo) Add(_ context.Context, cartID string, it cart.Item) error {
	m.items[cartID] = append(m.items[cartID], it)
	return nil
}

func (m *memCartRepo) Remove(_ context.Context, cartID, itemID string) error {
	kept := m.items[cartID][:0]
	for _, it := range m.items[cartID] {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	m.items[cartID] = kept
	return nil
}

func (m *memCartRepo) Clear(_ context.Context, cartID string) error {
	delete(m.items, cartID)
	return nil
}

func TestValidateDetailsNamesEveryMissingField(t *testing.T) {
	err := ValidateDetails(OrderDetails{ShippingMethod: "home"})
	require.True(t, apperr.IsKind(err, apperr.Invalid))

	ae, _ := apperr.As(err)
	assert.Contains(t, ae.Fields, "name")
	assert.Contains(t, ae.Fields, "phone")
	assert.Contains(t, ae.Fields, "wilaya")
	assert.Contains(t, ae.Fields, "commune")
	assert.Contains(t, ae.Fields, "address")
}

func TestAddressRequiredOnlyForHomeDelivery(t *testing.T) {
	d := validDetails()
	d.ShippingMethod = "home"
	err := ValidateDetails(d)
	require.True(t, apperr.IsKind(err, apperr.Invalid))
	ae, _ := apperr.As(err)
	assert.Contains(t, ae.Fields, "address")
	assert.Len(t, ae.Fields, 1)

	d.Address = "12 Rue Didouche"
	assert.NoError(t, ValidateDetails(d))

	d = validDetails() // office, no address
	assert.NoError(t, ValidateDetails(d))
}

func TestValidateDetailsRejectsUnknownShippingMethod(t *testing.T) {
	d := validDetails()
	d.ShippingMethod = "drone"
	err := ValidateDetails(d)
	require.True(t, apperr.IsKind(err, apperr.Invalid))
	ae, _ := apperr.As(err)
	assert.Contains(t, ae.Fields, "shippingMethod")
}

func TestTotalAddsShippingForChosenMethod(t *testing.T) {
	shop := testShop() // home 600, office 400
	items := []cart.Item{cartItem("a", "p1", 1000, 2), cartItem("b", "p2", 500, 1)}

	assert.Equal(t, 2500.0+600, Total(items, shop, "home"))
	assert.Equal(t, 2500.0+400, Total(items, shop, "office"))
}

func TestPlaceRecordsOrderAndClearsMatchingCart(t *testing.T) {
	svc, _, carts, _ := orderFixture(t)
	ctx := context.Background()

	added, err := carts.Add(ctx, "cart-1", cart.AddInput{Product: cartItem("", "p1", 1000, 1).Product, Quantity: 2})
	require.NoError(t, err)
	set, err := carts.CheckoutItems(ctx, "cart-1")
	require.NoError(t, err)

	o, err := svc.Place(ctx, PlaceInput{CartID: "cart-1", Details: validDetails(), Items: set, Shipping: testShop()})
	require.NoError(t, err)
	assert.Equal(t, 2000.0+400, o.TotalAmount)
	assert.Equal(t, added.ID, o.Items[0].ID)

	left, err := carts.Items(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, left)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, o.ID, list[0].ID)
}

func TestPlaceKeepsCartWhenItChangedSinceCheckout(t *testing.T) {
	svc, _, carts, _ := orderFixture(t)
	ctx := context.Background()

	_, err := carts.Add(ctx, "cart-1", cart.AddInput{Product: cartItem("", "p1", 1000, 1).Product})
	require.NoError(t, err)
	set, err := carts.CheckoutItems(ctx, "cart-1")
	require.NoError(t, err)

	// Another tab adds an item while checkout is open.
	_, err = carts.Add(ctx, "cart-1", cart.AddInput{Product: cartItem("", "p2", 500, 1).Product})
	require.NoError(t, err)

	_, err = svc.Place(ctx, PlaceInput{CartID: "cart-1", Details: validDetails(), Items: set, Shipping: testShop()})
	require.NoError(t, err)

	left, err := carts.Items(ctx, "cart-1")
	require.NoError(t, err)
	assert.Len(t, left, 2)
}

func TestBuyNowSubmissionLeavesCartAlone(t *testing.T) {
	svc, _, carts, _ := orderFixture(t)
	ctx := context.Background()

	_, err := carts.Add(ctx, "cart-1", cart.AddInput{Product: cartItem("", "p1", 1000, 1).Product})
	require.NoError(t, err)

	set, err := carts.BuyNow(cart.AddInput{Product: cartItem("", "p2", 500, 1).Product})
	require.NoError(t, err)

	_, err = svc.Place(ctx, PlaceInput{CartID: "cart-1", Details: validDetails(), Items: set, Shipping: testShop()})
	require.NoError(t, err)

	left, err := carts.Items(ctx, "cart-1")
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestPlaceRejectsEmptyItemSet(t *testing.T) {
	svc, _, _, _ := orderFixture(t)

	_, err := svc.Place(context.Background(), PlaceInput{Details: validDetails(), Shipping: testShop()})
	assert.True(t, apperr.IsKind(err, apperr.Invalid))
}

func TestPlaceDoesNotRecordWhenRemoteFails(t *testing.T) {
	svc, bin, carts, _ := orderFixture(t)
	ctx := context.Background()
	bin.err = apperr.UnavailableErr("The remote store is unreachable.", nil)

	_, err := carts.Add(ctx, "cart-1", cart.AddInput{Product: cartItem("", "p1", 1000, 1).Product})
	require.NoError(t, err)
	set := m(carts.Items(ctx, "cart-1"))

	_, err = svc.Place(ctx, PlaceInput{CartID: "cart-1", Details: validDetails(), Items: set, Shipping: testShop()})
	assert.True(t, apperr.IsKind(err, apperr.Unavailable))

	// The cart survives a failed submission.
	left, err := carts.Items(ctx, "cart-1")
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func m(items []cart.Item, err error) []cart.Item {
	if err != nil {
		panic(err)
	}
	return items
}

func TestMailFailureDoesNotFailOrder(t *testing.T) {
	svc, _, _, mock := orderFixture(t)
	mock.Err = assert.AnError

	set := []cart.Item{cartItem("a", "p1", 1000, 1)}
	_, err := svc.Place(context.Background(), PlaceInput{Details: validDetails(), Items: set, Shipping: testShop()})
	require.NoError(t, err)
	assert.Len(t, mock.Sent, 1)
}

func TestPlaceSendsNotificationMail(t *testing.T) {
	svc, _, _, mock := orderFixture(t)

	set := []cart.Item{cartItem("a", "p1", 1000, 1)}
	_, err := svc.Place(context.Background(), PlaceInput{Details: validDetails(), Items: set, Shipping: testShop()})
	require.NoError(t, err)

	require.Len(t, mock.Sent, 1)
	assert.Equal(t, []string{"owner@local.test"}, mock.Sent[0].To)
	assert.Contains(t, mock.Sent[0].TextBody, "Amel B")
}

func TestImportRequiresCustomerItemsAndTotal(t *testing.T) {
	svc, _, _, _ := orderFixture(t)
	ctx := context.Background()

	cases := []string{
		`not json`,
		`{}`,
		`{"customer":{"name":"A"},"items":[]}`,
		`{"customer":{"name":"A"},"totalAmount":100}`,
		`{"items":[{"id":"x"}],"totalAmount":100}`,
	}
	for _, raw := range cases {
		_, err := svc.Import(ctx, json.RawMessage(raw))
		assert.Truef(t, apperr.IsKind(err, apperr.Parse), "payload %q", raw)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestImportRecordsCompleteOrder(t *testing.T) {
	svc, _, _, _ := orderFixture(t)
	ctx := context.Background()

	raw := `{
		"customer": {"name":"Karim","phone":"0666","wilaya":"Oran","commune":"Bir El Djir","shippingMethod":"home","address":"5 Bd Front de Mer"},
		"items": [{"id":"wa-1","product":{"id":"p9","name":"Lamp","price":3200,"imageUrls":["u"]},"quantity":1,"selectedOptions":{}}],
		"totalAmount": 3800
	}`
	o, err := svc.Import(ctx, json.RawMessage(raw))
	require.NoError(t, err)
	assert.Equal(t, 3800.0, o.TotalAmount)
	assert.Equal(t, "Karim", o.Customer.Name)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

// Full walkthrough: browse, add to cart, checkout with office shipping, and
// confirm the recorded order and the emptied cart.
func TestEndToEndDirectSubmission(t *testing.T) {
	svc, _, carts, _ := orderFixture(t)
	ctx := context.Background()
	shop := testShop()

	p := settings.Product{
		ID:        "2026-08-30T09:00:00.000Z",
		Name:      "Ceramic Vase",
		Price:     12500,
		ImageURLs: []string{"https://img.example/vase.png"},
		Category:  "Decor",
	}
	_, err := carts.Add(ctx, "cart-e2e", cart.AddInput{Product: p, Quantity: 1})
	require.NoError(t, err)

	set, err := carts.CheckoutItems(ctx, "cart-e2e")
	require.NoError(t, err)

	details := validDetails() // office shipping
	o, err := svc.Place(ctx, PlaceInput{CartID: "cart-e2e", Details: details, Items: set, Shipping: shop})
	require.NoError(t, err)

	assert.Equal(t, 12500+shop.OfficeDeliveryCost, o.TotalAmount)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ceramic Vase", list[0].Items[0].Product.Name)

	left, err := carts.Items(ctx, "cart-e2e")
	require.NoError(t, err)
	assert.Empty(t, left)
}
