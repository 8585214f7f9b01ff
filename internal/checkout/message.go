package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nikolayk812/storefront-demo/internal/domain"
)

// ComposeMessage builds the plain text order message sent over WhatsApp.
func ComposeMessage(shopName, symbol, orderRef string, cart domain.Cart, ref Reference) string {
	var b strings.Builder

	if shopName != "" {
		fmt.Fprintf(&b, "Hello %s! I would like to place an order.\n", shopName)
	} else {
		b.WriteString("Hello! I would like to place an order.\n")
	}
	fmt.Fprintf(&b, "Order ref: %s\n\n", orderRef)

	for i, item := range cart.Items {
		fmt.Fprintf(&b, "%d. %s × %d – %s%s\n", i+1, item.Name, item.Quantity, symbol, item.Subtotal().StringFixed(2))
	}

	fmt.Fprintf(&b, "\nTotal: %s%s\n", symbol, cart.Total().StringFixed(2))
	fmt.Fprintf(&b, "Name: %s\n", ref.CustomerName)
	fmt.Fprintf(&b, "Phone: %s", ref.CustomerPhone)

	return b.String()
}

// DeepLink returns a wa.me link carrying message, percent-encoded with %20
// for spaces.
func DeepLink(phone, message string) string {
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", digitsOnly(phone), text)
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
