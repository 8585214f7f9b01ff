package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-demo/internal/cart"
	"github.com/nikolayk812/storefront-demo/internal/checkout"
	"github.com/nikolayk812/storefront-demo/internal/config"
	"github.com/nikolayk812/storefront-demo/internal/notify"
	"github.com/nikolayk812/storefront-demo/internal/page"
	"github.com/nikolayk812/storefront-demo/internal/payment"
	"github.com/nikolayk812/storefront-demo/internal/port"
	"github.com/nikolayk812/storefront-demo/internal/repository"
	"github.com/nikolayk812/storefront-demo/internal/review"
	"github.com/nikolayk812/storefront-demo/internal/storefront"
	"github.com/nikolayk812/storefront-demo/internal/view"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// app is one page session of the CLI.
type app struct {
	cfg config.Config
	log *zap.Logger
	out io.Writer

	store      *cart.Store
	payment    *payment.View
	reviews    *review.Widget
	notifier   *notify.Notifier
	controller *storefront.Controller
	doc        *page.Document

	closers []func() error
}

func newApp(ctx context.Context, cfg config.Config, log *zap.Logger, out, errOut io.Writer) (_ *app, err error) {
	a := &app{cfg: cfg, log: log, out: out}

	defer func() {
		if err != nil {
			err = errors.Join(err, a.close())
		}
	}()

	storage, err := a.openStorage(ctx)
	if err != nil {
		return nil, fmt.Errorf("openStorage: %w", err)
	}

	unit, err := cfg.CurrencyUnit()
	if err != nil {
		return nil, err
	}

	repo := repository.NewCart(storage, log)
	a.store = cart.NewStore(repo, log)
	a.payment = payment.NewView(repo, unit, log)

	a.notifier = notify.New(notify.NewTerminalSurface(errOut),
		notify.WithDurations(cfg.Notify.Visible, cfg.Notify.Exit),
		notify.WithLogger(log))
	a.closers = append(a.closers, func() error {
		a.notifier.Close()
		return nil
	})

	endpoint, err := review.NewClient(cfg.Reviews.Endpoint, http.DefaultClient)
	if err != nil {
		return nil, fmt.Errorf("review.NewClient: %w", err)
	}
	a.reviews = review.NewWidget(endpoint, a.notifier, log)

	mode, err := checkout.ParseMode(cfg.Checkout.Mode)
	if err != nil {
		return nil, err
	}

	checkoutSvc, err := checkout.NewService(checkout.Config{
		Mode:           mode,
		PaymentPath:    cfg.Checkout.PaymentPath,
		WhatsAppPhone:  cfg.Checkout.WhatsAppPhone,
		ShopName:       cfg.Checkout.ShopName,
		CurrencySymbol: cfg.Currency.Symbol,
	}, a.store, a.notifier, &terminalNavigator{app: a}, &terminalOpener{out: out}, log)
	if err != nil {
		return nil, fmt.Errorf("checkout.NewService: %w", err)
	}

	binder := view.NewBinder(a.store, cfg.Currency.Symbol, log)
	a.controller = storefront.NewController(a.store, binder, a.reviews, checkoutSvc, a.notifier, log)

	a.doc = page.New().WithElements(
		view.SlotItemList,
		view.SlotTotal,
		view.SlotCheckout,
		view.SlotDesktopBadge,
		view.SlotMobileBadge,
	)

	return a, nil
}

func (a *app) openStorage(ctx context.Context) (port.Storage, error) {
	switch a.cfg.Storage.Driver {
	case config.DriverMemory:
		return repository.NewMemory(), nil

	case config.DriverSQLite:
		s, err := repository.OpenSQLite(ctx, a.cfg.Storage.SQLite.Path, a.cfg.Profile)
		if err != nil {
			return nil, fmt.Errorf("repository.OpenSQLite: %w", err)
		}
		a.closers = append(a.closers, s.Close)
		return s, nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, a.cfg.Storage.Postgres.DSN)
		if err != nil {
			return nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		a.closers = append(a.closers, func() error {
			pool.Close()
			return nil
		})
		if err := repository.MigratePostgres(ctx, pool); err != nil {
			return nil, fmt.Errorf("repository.MigratePostgres: %w", err)
		}
		return repository.NewPostgres(pool, a.cfg.Profile)

	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     a.cfg.Storage.Redis.Addr,
			Password: a.cfg.Storage.Redis.Password,
			DB:       a.cfg.Storage.Redis.Database,
		})
		a.closers = append(a.closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("rdb.Ping: %w", err)
		}
		return repository.NewRedis(rdb, a.cfg.Profile)

	default:
		return nil, fmt.Errorf("storage.driver[%s] is not valid", a.cfg.Storage.Driver)
	}
}

// close releases resources in reverse order of acquisition.
func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

type terminalNavigator struct {
	app *app
}

func (n *terminalNavigator) Navigate(ctx context.Context, path string) error {
	want := n.app.cfg.Checkout.PaymentPath
	if want == "" {
		want = checkout.DefaultPaymentPath
	}
	if path != want {
		return fmt.Errorf("no view for path[%s]", path)
	}

	summary, err := n.app.payment.Summary(ctx)
	if err != nil {
		return fmt.Errorf("payment.Summary: %w", err)
	}

	printPayment(n.app.out, summary, n.app.cfg.Currency.Symbol)
	return nil
}

type terminalOpener struct {
	out io.Writer
}

func (o *terminalOpener) Open(_ context.Context, url string) error {
	_, err := fmt.Fprintf(o.out, "Open this link to send your order:\n%s\n", url)
	return err
}
