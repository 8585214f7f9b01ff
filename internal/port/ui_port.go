package port

import (
	"context"

	"github.com/nikolayk812/storefront-demo/internal/domain"
)

type Notifier interface {
	Notify(message string, kind domain.NotificationKind)
}

// Element is a render target on the current page.
type Element interface {
	SetText(text string)
	SetHTML(html string)
	SetDisabled(disabled bool)
	SetVisible(visible bool)
}

type Form interface {
	Value(field string) string
	Reset()
}

// Page exposes the optional slots present on the current page. Lookups for
// slots the page does not have return ok == false.
type Page interface {
	Element(id string) (Element, bool)
	Form(id string) (Form, bool)
}

type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// Opener opens a URL in a new browsing context.
type Opener interface {
	Open(ctx context.Context, url string) error
}
