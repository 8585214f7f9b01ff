// Package review submits and lists customer reviews against the remote
// review endpoint and renders them into the page.
package review

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"go.uber.org/zap"
)

const (
	SlotForm = "reviewForm"
	SlotList = "reviews"

	FieldName   = "reviewName"
	FieldText   = "reviewText"
	FieldRating = "rating"
)

const (
	msgMissingFields = "Please fill in all review fields."
	msgSubmitted     = "✅ Review submitted! Thank you."
	msgRejected      = "Could not submit review. Try again."
	msgFailed        = "Something went wrong. Try again."
)

type Input struct {
	Name   string `validate:"required"`
	Text   string `validate:"required"`
	Rating int    `validate:"required,min=1,max=5"`
}

type Widget struct {
	endpoint port.ReviewEndpoint
	notifier port.Notifier
	validate *validator.Validate
	log      *zap.Logger

	mu     sync.Mutex
	cached []domain.Review
}

func NewWidget(endpoint port.ReviewEndpoint, notifier port.Notifier, log *zap.Logger) *Widget {
	if log == nil {
		log = zap.NewNop()
	}

	return &Widget{
		endpoint: endpoint,
		notifier: notifier,
		validate: validator.New(),
		log:      log,
	}
}

// SubmitForm reads the review form of page and submits it. A page without
// the form has nothing to submit.
func (w *Widget) SubmitForm(ctx context.Context, page port.Page) error {
	form, ok := page.Form(SlotForm)
	if !ok {
		return nil
	}

	// an unparsable rating counts as no rating picked
	rating, _ := strconv.Atoi(strings.TrimSpace(form.Value(FieldRating)))

	return w.Submit(ctx, page, Input{
		Name:   form.Value(FieldName),
		Text:   form.Value(FieldText),
		Rating: rating,
	})
}

// Submit validates in and posts it. Incomplete input is reported through
// the notifier and never reaches the endpoint.
func (w *Widget) Submit(ctx context.Context, page port.Page, in Input) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Text = strings.TrimSpace(in.Text)

	if err := w.validate.Struct(in); err != nil {
		w.notifier.Notify(msgMissingFields, domain.NotificationError)
		return fmt.Errorf("%w: %v", domain.ErrMissingReviewFields, err)
	}

	err := w.endpoint.Submit(ctx, domain.Review{Name: in.Name, Rating: in.Rating, Text: in.Text})
	if err != nil {
		w.log.Warn("review submit failed", zap.Error(err))

		if errors.Is(err, domain.ErrReviewRejected) {
			w.notifier.Notify(msgRejected, domain.NotificationError)
		} else {
			w.notifier.Notify(msgFailed, domain.NotificationError)
		}
		return fmt.Errorf("endpoint.Submit: %w", err)
	}

	w.notifier.Notify(msgSubmitted, domain.NotificationSuccess)

	if form, ok := page.Form(SlotForm); ok {
		form.Reset()
	}

	return w.Load(ctx, page)
}

// Load fetches the list and renders it into the list slot. Failures are
// shown inline in place of the list and are not returned: the page keeps
// working without reviews.
func (w *Widget) Load(ctx context.Context, page port.Page) error {
	container, ok := page.Element(SlotList)
	if !ok {
		return nil
	}

	reviews, err := w.endpoint.List(ctx)
	if err != nil {
		w.log.Warn("review load failed", zap.Error(err))
		container.SetHTML(loadErrorHTML)
		return nil
	}

	html, err := RenderList(reviews)
	if err != nil {
		return fmt.Errorf("RenderList: %w", err)
	}
	container.SetHTML(html)

	w.mu.Lock()
	w.cached = reviews
	w.mu.Unlock()

	return nil
}

// Cached returns the list rendered by the last successful Load.
func (w *Widget) Cached() []domain.Review {
	w.mu.Lock()
	defer w.mu.Unlock()

	return append([]domain.Review(nil), w.cached...)
}
