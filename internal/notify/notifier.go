// Package notify shows transient status messages. At most one message is
// visible at a time: a new one replaces the current one instead of queuing.
package notify

import (
	"sync"
	"time"

	"github.com/nikolayk812/storefront-demo/internal/domain"
	"go.uber.org/zap"
)

const (
	DefaultVisible = 3 * time.Second
	DefaultExit    = 400 * time.Millisecond
)

// Surface draws notifications. Show mounts and animates in, Dismiss starts
// the exit animation, Remove unmounts.
type Surface interface {
	Show(n domain.Notification)
	Dismiss(n domain.Notification)
	Remove(n domain.Notification)
}

type Notifier struct {
	surface Surface
	visible time.Duration
	exit    time.Duration
	log     *zap.Logger

	mu      sync.Mutex
	seq     uint64
	current *toast
}

type toast struct {
	n     domain.Notification
	timer *time.Timer
}

type Option func(*Notifier)

// WithDurations overrides how long a message stays visible and how long its
// exit animation lasts.
func WithDurations(visible, exit time.Duration) Option {
	return func(n *Notifier) {
		n.visible = visible
		n.exit = exit
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(n *Notifier) {
		if log == nil {
			log = zap.NewNop()
		}
		n.log = log
	}
}

func New(surface Surface, opts ...Option) *Notifier {
	n := &Notifier{
		surface: surface,
		visible: DefaultVisible,
		exit:    DefaultExit,
		log:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Notify replaces whatever is on screen with message. It never blocks on
// the animation and never fails.
func (n *Notifier) Notify(message string, kind domain.NotificationKind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.removeCurrentLocked()

	n.seq++
	t := &toast{n: domain.Notification{ID: n.seq, Message: message, Kind: kind}}
	n.current = t

	n.surface.Show(t.n)
	n.log.Debug("notification shown",
		zap.Uint64("id", t.n.ID),
		zap.Stringer("kind", kind),
		zap.String("message", message))

	t.timer = time.AfterFunc(n.visible, func() { n.dismiss(t) })
}

// Current returns the notification on screen, if any. A notification in
// its exit animation still counts as on screen.
func (n *Notifier) Current() (domain.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return domain.Notification{}, false
	}
	return n.current.n, true
}

// Close stops pending timers and removes the current notification.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.removeCurrentLocked()
}

func (n *Notifier) dismiss(t *toast) {
	n.mu.Lock()
	defer n.mu.Unlock()

	// replaced or closed while the timer was firing
	if n.current != t {
		return
	}

	n.surface.Dismiss(t.n)
	t.timer = time.AfterFunc(n.exit, func() { n.remove(t) })
}

func (n *Notifier) remove(t *toast) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current != t {
		return
	}

	n.surface.Remove(t.n)
	n.current = nil
}

func (n *Notifier) removeCurrentLocked() {
	if n.current == nil {
		return
	}

	n.current.timer.Stop()
	n.surface.Remove(n.current.n)
	n.current = nil
}
