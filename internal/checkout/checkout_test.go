package checkout_test

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-demo/internal/checkout"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCart struct {
	cart domain.Cart
}

func (c fixedCart) Snapshot(context.Context) (domain.Cart, error) {
	return c.cart, nil
}

type recordingNotifier struct {
	messages []string
	kinds    []domain.NotificationKind
}

func (n *recordingNotifier) Notify(message string, kind domain.NotificationKind) {
	n.messages = append(n.messages, message)
	n.kinds = append(n.kinds, kind)
}

type recordingNavigator struct {
	paths []string
	err   error
}

func (n *recordingNavigator) Navigate(_ context.Context, path string) error {
	n.paths = append(n.paths, path)
	return n.err
}

type recordingOpener struct {
	urls []string
}

func (o *recordingOpener) Open(_ context.Context, u string) error {
	o.urls = append(o.urls, u)
	return nil
}

func sampleCart() domain.Cart {
	return domain.Cart{Items: []domain.LineItem{
		{Name: "Red Heels", Price: decimal.NewFromInt(850), Quantity: 2},
		{Name: "Flip Flops & Co", Price: decimal.RequireFromString("99.5"), Quantity: 1},
	}}
}

var validRef = checkout.Reference{CustomerName: "Asha", CustomerPhone: "+91 98765 43210"}

func TestCheckoutValidation(t *testing.T) {
	tests := []struct {
		name      string
		mode      checkout.Mode
		cart      domain.Cart
		ref       checkout.Reference
		wantError error
	}{
		{
			name:      "payment with empty cart: error",
			mode:      checkout.ModePayment,
			cart:      domain.Cart{},
			ref:       validRef,
			wantError: domain.ErrEmptyCart,
		},
		{
			name:      "message with empty cart: error",
			mode:      checkout.ModeMessage,
			cart:      domain.Cart{},
			ref:       validRef,
			wantError: domain.ErrEmptyCart,
		},
		{
			name:      "payment without name: error",
			mode:      checkout.ModePayment,
			cart:      sampleCart(),
			ref:       checkout.Reference{CustomerPhone: "123"},
			wantError: domain.ErrMissingReference,
		},
		{
			name:      "message with blank phone: error",
			mode:      checkout.ModeMessage,
			cart:      sampleCart(),
			ref:       checkout.Reference{CustomerName: "Asha", CustomerPhone: "  "},
			wantError: domain.ErrMissingReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &recordingNotifier{}
			navigator := &recordingNavigator{}
			opener := &recordingOpener{}

			svc, err := checkout.NewService(checkout.Config{
				Mode:          tt.mode,
				WhatsAppPhone: "919876543210",
			}, fixedCart{tt.cart}, notifier, navigator, opener, nil)
			require.NoError(t, err)

			err = svc.Checkout(t.Context(), tt.ref)
			require.ErrorIs(t, err, tt.wantError)

			assert.Empty(t, navigator.paths)
			assert.Empty(t, opener.urls)
			require.Len(t, notifier.kinds, 1)
			assert.Equal(t, domain.NotificationError, notifier.kinds[0])
		})
	}
}

func TestCheckoutPayment(t *testing.T) {
	notifier := &recordingNotifier{}
	navigator := &recordingNavigator{}

	svc, err := checkout.NewService(checkout.Config{Mode: checkout.ModePayment},
		fixedCart{sampleCart()}, notifier, navigator, nil, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Checkout(t.Context(), validRef))

	assert.Equal(t, []string{"/pay"}, navigator.paths)
	assert.Empty(t, notifier.messages)
}

func TestCheckoutPaymentNavigationError(t *testing.T) {
	errBoom := errors.New("boom")
	navigator := &recordingNavigator{err: errBoom}

	svc, err := checkout.NewService(checkout.Config{Mode: checkout.ModePayment, PaymentPath: "/checkout/pay"},
		fixedCart{sampleCart()}, &recordingNotifier{}, navigator, nil, nil)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Checkout(t.Context(), validRef), errBoom)
	assert.Equal(t, []string{"/checkout/pay"}, navigator.paths)
}

func TestCheckoutMessage(t *testing.T) {
	opener := &recordingOpener{}

	svc, err := checkout.NewService(checkout.Config{
		Mode:           checkout.ModeMessage,
		WhatsAppPhone:  "+91 98765-43210",
		ShopName:       "Madam Choice Footwear",
		CurrencySymbol: "₹",
	}, fixedCart{sampleCart()}, &recordingNotifier{}, nil, opener, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Checkout(t.Context(), validRef))
	require.Len(t, opener.urls, 1)

	link, err := url.Parse(opener.urls[0])
	require.NoError(t, err)
	assert.Equal(t, "wa.me", link.Host)
	assert.Equal(t, "/919876543210", link.Path)
	assert.NotContains(t, link.RawQuery, "+")

	text := link.Query().Get("text")
	assert.Contains(t, text, "Hello Madam Choice Footwear!")
	assert.Contains(t, text, "1. Red Heels × 2 – ₹1700.00")
	assert.Contains(t, text, "2. Flip Flops & Co × 1 – ₹99.50")
	assert.Contains(t, text, "Total: ₹1799.50")
	assert.Contains(t, text, "Name: Asha")
	assert.Contains(t, text, "Phone: +91 98765 43210")

	m := regexp.MustCompile(`Order ref: (\S+)`).FindStringSubmatch(text)
	require.Len(t, m, 2)
	_, err = uuid.Parse(m[1])
	assert.NoError(t, err)
}

func TestDeepLinkRoundTrip(t *testing.T) {
	msg := checkout.ComposeMessage("", "₹", "ref-1", sampleCart(), validRef)

	link, err := url.Parse(checkout.DeepLink("919876543210", msg))
	require.NoError(t, err)

	assert.Equal(t, msg, link.Query().Get("text"))
	assert.True(t, strings.HasPrefix(msg, "Hello! I would like to place an order."))
}

func TestNewServiceRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  checkout.Config
	}{
		{name: "unknown mode", cfg: checkout.Config{Mode: "carrier-pigeon"}},
		{name: "message without phone", cfg: checkout.Config{Mode: checkout.ModeMessage}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := checkout.NewService(tt.cfg, fixedCart{}, &recordingNotifier{}, &recordingNavigator{}, &recordingOpener{}, nil)
			assert.Error(t, err)
		})
	}
}
