package storefront_test

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/nikolayk812/storefront-demo/internal/cart"
	"github.com/nikolayk812/storefront-demo/internal/checkout"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/page"
	"github.com/nikolayk812/storefront-demo/internal/repository"
	"github.com/nikolayk812/storefront-demo/internal/review"
	"github.com/nikolayk812/storefront-demo/internal/reviewserver"
	"github.com/nikolayk812/storefront-demo/internal/storefront"
	"github.com/nikolayk812/storefront-demo/internal/view"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	kinds    []domain.NotificationKind
}

func (n *recordingNotifier) Notify(message string, kind domain.NotificationKind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.messages = append(n.messages, message)
	n.kinds = append(n.kinds, kind)
}

func (n *recordingNotifier) last() (string, domain.NotificationKind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.messages) == 0 {
		return "", 0
	}
	return n.messages[len(n.messages)-1], n.kinds[len(n.kinds)-1]
}

type recordingNavigator struct {
	paths []string
}

func (n *recordingNavigator) Navigate(_ context.Context, path string) error {
	n.paths = append(n.paths, path)
	return nil
}

type controllerSuite struct {
	suite.Suite

	notifier   *recordingNotifier
	navigator  *recordingNavigator
	controller *storefront.Controller
	doc        *page.Document
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(controllerSuite))
}

func (suite *controllerSuite) SetupTest() {
	t := suite.T()

	srv := httptest.NewServer(reviewserver.New(nil).Handler("/reviews"))
	t.Cleanup(srv.Close)

	endpoint, err := review.NewClient(srv.URL+"/reviews", srv.Client())
	require.NoError(t, err)

	suite.notifier = &recordingNotifier{}
	suite.navigator = &recordingNavigator{}

	store := cart.NewStore(repository.NewCart(repository.NewMemory(), nil), nil)
	binder := view.NewBinder(store, "₹", nil)
	widget := review.NewWidget(endpoint, suite.notifier, nil)

	checkoutSvc, err := checkout.NewService(checkout.Config{Mode: checkout.ModePayment},
		store, suite.notifier, suite.navigator, nil, nil)
	require.NoError(t, err)

	suite.controller = storefront.NewController(store, binder, widget, checkoutSvc, suite.notifier, nil)
	suite.doc = page.New().
		WithElements(view.SlotItemList, view.SlotTotal, view.SlotCheckout,
			view.SlotDesktopBadge, view.SlotMobileBadge, review.SlotList).
		WithForm(review.SlotForm, nil)
}

func (suite *controllerSuite) TestLoadRendersEmptyState() {
	t := suite.T()

	require.NoError(t, suite.controller.Load(t.Context(), suite.doc))

	checkoutBtn, _ := suite.doc.Get(view.SlotCheckout)
	assert.True(t, checkoutBtn.Disabled())

	badge, _ := suite.doc.Get(view.SlotMobileBadge)
	assert.False(t, badge.Visible())

	reviews, _ := suite.doc.Get(review.SlotList)
	assert.Contains(t, reviews.HTML(), "No reviews yet")
}

func (suite *controllerSuite) TestAddRemoveClear() {
	t := suite.T()
	ctx := t.Context()

	require.NoError(t, suite.controller.AddToCart(ctx, suite.doc, "Red Heels", decimal.NewFromInt(850), 2))

	msg, kind := suite.notifier.last()
	assert.Equal(t, `✅ "Red Heels" ×2 added to cart!`, msg)
	assert.Equal(t, domain.NotificationSuccess, kind)

	total, _ := suite.doc.Get(view.SlotTotal)
	assert.Equal(t, "1700.00", total.Text())

	require.NoError(t, suite.controller.AddToCart(ctx, suite.doc, "Flip Flops", decimal.RequireFromString("99.5"), 0))

	badge, _ := suite.doc.Get(view.SlotDesktopBadge)
	assert.Equal(t, "3", badge.Text())

	require.NoError(t, suite.controller.RemoveFromCart(ctx, suite.doc, 0))
	assert.Equal(t, "1", badge.Text())
	assert.Equal(t, "99.50", total.Text())

	require.NoError(t, suite.controller.SetQuantity(ctx, suite.doc, "Flip Flops", 4))
	assert.Equal(t, "4", badge.Text())

	require.NoError(t, suite.controller.ClearCart(ctx, suite.doc))
	assert.Equal(t, "0", badge.Text())

	msg, kind = suite.notifier.last()
	assert.Equal(t, "Cart cleared.", msg)
	assert.Equal(t, domain.NotificationError, kind)

	checkoutBtn, _ := suite.doc.Get(view.SlotCheckout)
	assert.True(t, checkoutBtn.Disabled())
}

func (suite *controllerSuite) TestAddNotifiesWithPlainName() {
	t := suite.T()

	require.NoError(t, suite.controller.AddToCart(t.Context(), suite.doc, `Red "Heels" \ Gold`, decimal.NewFromInt(850), 1))

	msg, _ := suite.notifier.last()
	assert.Equal(t, `✅ "Red "Heels" \ Gold" ×1 added to cart!`, msg)
}

func (suite *controllerSuite) TestAddInvalidItemNotifies() {
	t := suite.T()

	err := suite.controller.AddToCart(t.Context(), suite.doc, "", decimal.NewFromInt(1), 1)
	require.ErrorIs(t, err, domain.ErrInvalidLineItem)

	_, kind := suite.notifier.last()
	assert.Equal(t, domain.NotificationError, kind)
}

func (suite *controllerSuite) TestCheckout() {
	t := suite.T()
	ctx := t.Context()
	ref := checkout.Reference{CustomerName: "Asha", CustomerPhone: "98765"}

	err := suite.controller.Checkout(ctx, ref)
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, suite.navigator.paths)

	require.NoError(t, suite.controller.AddToCart(ctx, suite.doc, "Red Heels", decimal.NewFromInt(850), 1))
	require.NoError(t, suite.controller.Checkout(ctx, ref))
	assert.Equal(t, []string{"/pay"}, suite.navigator.paths)
}

func (suite *controllerSuite) TestSubmitReview() {
	t := suite.T()
	ctx := t.Context()

	form, _ := suite.doc.GetForm(review.SlotForm)
	form.Set(review.FieldName, "Asha")
	form.Set(review.FieldText, "Lovely heels")
	form.Set(review.FieldRating, "5")

	require.NoError(t, suite.controller.SubmitReview(ctx, suite.doc))

	reviews, _ := suite.doc.Get(review.SlotList)
	assert.Contains(t, reviews.HTML(), "Lovely heels")
	assert.Contains(t, reviews.HTML(), "★★★★★")
}
