package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shan145/event-management-client/internal/domain"
)

// Fetcher retrieves messages newer than a cursor. eventsdk.Session
// satisfies this through a thin adapter in the app layer.
type Fetcher interface {
	FetchMessages(ctx context.Context, eventID, sinceID string, limit int) ([]domain.Message, error)
}

const defaultPollInterval = 5 * time.Second

// Poller keeps an event's chat fresh by polling on a fixed interval while
// the chat view is open and visible. Start/Stop bound its lifetime; Stop
// blocks until the loop has exited, so no timers outlive the view.
type Poller struct {
	Fetcher  Fetcher
	Logger   *slog.Logger
	EventID  string
	Interval time.Duration
	Limit    int

	// OnUpdate, when set, is called with a snapshot of the merged list
	// after every poll that changed it.
	OnUpdate func([]domain.Message)

	mu      sync.Mutex
	visible bool
	msgs    []domain.Message

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewPoller creates a poller for one event's chat. Interval defaults to 5s.
func NewPoller(fetcher Fetcher, logger *slog.Logger, eventID string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{
		Fetcher:  fetcher,
		Logger:   logger,
		EventID:  eventID,
		Interval: interval,
		visible:  true,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins polling in the background. Non-blocking; an immediate first
// poll runs before the ticker cadence starts.
func (p *Poller) Start() {
	go p.run()
	p.Logger.Info("chat poller started",
		slog.String("event_id", p.EventID),
		slog.Duration("interval", p.Interval),
	)
}

// Stop shuts the poller down and waits for the loop to exit.
func (p *Poller) Stop() {
	close(p.stopCh)
	<-p.doneCh
	p.Logger.Info("chat poller stopped", slog.String("event_id", p.EventID))
}

// SetVisible gates polling: ticks are skipped while the view is hidden.
// Restoring visibility resumes on the next tick.
func (p *Poller) SetVisible(visible bool) {
	p.mu.Lock()
	p.visible = visible
	p.mu.Unlock()
}

// Messages returns a snapshot of the merged message list.
func (p *Poller) Messages() []domain.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Message, len(p.msgs))
	copy(out, p.msgs)
	return out
}

// Seed installs an initial message list (e.g. from the local cache) before
// the first poll so the since cursor skips already-known history.
func (p *Poller) Seed(msgs []domain.Message) {
	p.mu.Lock()
	p.msgs = Merge(nil, msgs)
	p.mu.Unlock()
}

// Append merges locally known messages (an optimistic send, a POST ack)
// into the polled list.
func (p *Poller) Append(msgs ...domain.Message) {
	p.mu.Lock()
	p.msgs = Merge(p.msgs, msgs)
	snapshot := make([]domain.Message, len(p.msgs))
	copy(snapshot, p.msgs)
	p.mu.Unlock()

	if p.OnUpdate != nil {
		p.OnUpdate(snapshot)
	}
}

// Ack swaps the optimistic placeholder for the server-acknowledged
// message once the send completes.
func (p *Poller) Ack(tempID string, acked domain.Message) {
	p.mu.Lock()
	p.msgs = Acknowledge(p.msgs, tempID, acked)
	snapshot := make([]domain.Message, len(p.msgs))
	copy(snapshot, p.msgs)
	p.mu.Unlock()

	if p.OnUpdate != nil {
		p.OnUpdate(snapshot)
	}
}

// Discard drops an optimistic placeholder whose send failed, so it
// neither lingers in the view nor shadows the poll cursor.
func (p *Poller) Discard(tempID string) {
	p.mu.Lock()
	kept := make([]domain.Message, 0, len(p.msgs))
	for _, m := range p.msgs {
		if m.TempID != "" && m.TempID == tempID {
			continue
		}
		kept = append(kept, m)
	}
	p.msgs = kept
	snapshot := make([]domain.Message, len(p.msgs))
	copy(snapshot, p.msgs)
	p.mu.Unlock()

	if p.OnUpdate != nil {
		p.OnUpdate(snapshot)
	}
}

func (p *Poller) run() {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	p.poll()

	for {
		select {
		case <-ticker.C:
			p.poll()
		case <-p.stopCh:
			return
		}
	}
}

// poll fetches messages past the current cursor and merges them in. A
// failed poll leaves state unchanged until the next tick.
func (p *Poller) poll() {
	p.mu.Lock()
	visible := p.visible
	since := LastID(p.msgs)
	p.mu.Unlock()

	if !visible {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.Interval)
	defer cancel()

	incoming, err := p.Fetcher.FetchMessages(ctx, p.EventID, since, p.Limit)
	if err != nil {
		p.Logger.Warn("chat poll failed",
			slog.String("event_id", p.EventID),
			slog.Any("error", err),
		)
		return
	}
	if len(incoming) == 0 {
		return
	}

	p.mu.Lock()
	before := len(p.msgs)
	p.msgs = Merge(p.msgs, incoming)
	changed := len(p.msgs) != before
	snapshot := make([]domain.Message, len(p.msgs))
	copy(snapshot, p.msgs)
	p.mu.Unlock()

	if changed && p.OnUpdate != nil {
		p.OnUpdate(snapshot)
	}
}
