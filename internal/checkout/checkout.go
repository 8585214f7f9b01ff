// Package checkout hands a non-empty cart over to payment: either by
// navigating to the payment view, which reads the persisted cart itself, or
// by opening a pre-filled WhatsApp message.
package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"go.uber.org/zap"
)

type Mode string

const (
	ModePayment Mode = "payment"
	ModeMessage Mode = "message"
)

const (
	DefaultPaymentPath = "/pay"

	msgEmptyCart        = "Your cart is empty! Add items first."
	msgMissingReference = "Please enter your name and phone number."
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePayment, ModeMessage:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("checkout mode[%s] is not valid", s)
	}
}

// Reference is what the customer types in before checking out.
type Reference struct {
	CustomerName  string
	CustomerPhone string
}

type CartSource interface {
	Snapshot(ctx context.Context) (domain.Cart, error)
}

type Config struct {
	Mode           Mode
	PaymentPath    string
	WhatsAppPhone  string
	ShopName       string
	CurrencySymbol string
}

type Service struct {
	cfg       Config
	cart      CartSource
	notifier  port.Notifier
	navigator port.Navigator
	opener    port.Opener
	newRef    func() string
	log       *zap.Logger
}

func NewService(cfg Config, cart CartSource, notifier port.Notifier, navigator port.Navigator, opener port.Opener, log *zap.Logger) (*Service, error) {
	if _, err := ParseMode(string(cfg.Mode)); err != nil {
		return nil, err
	}
	if cfg.Mode == ModePayment && navigator == nil {
		return nil, fmt.Errorf("navigator is nil")
	}
	if cfg.Mode == ModeMessage {
		if opener == nil {
			return nil, fmt.Errorf("opener is nil")
		}
		if digitsOnly(cfg.WhatsAppPhone) == "" {
			return nil, fmt.Errorf("whatsapp phone is empty")
		}
	}
	if cfg.PaymentPath == "" {
		cfg.PaymentPath = DefaultPaymentPath
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		cfg:       cfg,
		cart:      cart,
		notifier:  notifier,
		navigator: navigator,
		opener:    opener,
		newRef:    func() string { return uuid.NewString() },
		log:       log,
	}, nil
}

// Checkout validates the cart and the reference, then performs the
// configured handoff. Validation failures are shown through the notifier
// and returned as domain errors.
func (s *Service) Checkout(ctx context.Context, ref Reference) error {
	cart, err := s.cart.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("cart.Snapshot: %w", err)
	}

	if cart.IsEmpty() {
		s.notifier.Notify(msgEmptyCart, domain.NotificationError)
		return domain.ErrEmptyCart
	}

	ref.CustomerName = strings.TrimSpace(ref.CustomerName)
	ref.CustomerPhone = strings.TrimSpace(ref.CustomerPhone)
	if ref.CustomerName == "" || ref.CustomerPhone == "" {
		s.notifier.Notify(msgMissingReference, domain.NotificationError)
		return domain.ErrMissingReference
	}

	switch s.cfg.Mode {
	case ModeMessage:
		orderRef := s.newRef()
		link := DeepLink(s.cfg.WhatsAppPhone, ComposeMessage(s.cfg.ShopName, s.cfg.CurrencySymbol, orderRef, cart, ref))

		s.log.Info("opening order message", zap.String("order_ref", orderRef), zap.Int("lines", len(cart.Items)))

		if err := s.opener.Open(ctx, link); err != nil {
			return fmt.Errorf("opener.Open: %w", err)
		}
	default:
		s.log.Info("navigating to payment", zap.String("path", s.cfg.PaymentPath))

		if err := s.navigator.Navigate(ctx, s.cfg.PaymentPath); err != nil {
			return fmt.Errorf("navigator.Navigate: %w", err)
		}
	}

	return nil
}
