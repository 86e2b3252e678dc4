package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"healthai-backend/internal/scores"
)

// Snapshot is the label text currently on screen.
type Snapshot struct {
	MHLabel string
	PHLabel string
	Status  string
}

// Controller drives turns: idle -> sending -> success | error -> idle. Only the
// most recent turn may update the transcript and bars.
type Controller struct {
	view     View
	relay    Relay
	newToken func() string

	mu      sync.Mutex
	current string
	cancel  context.CancelFunc
	labels  Snapshot
}

// NewController wires a controller to its view and relay.
func NewController(view View, relay Relay) *Controller {
	return &Controller{
		view:     view,
		relay:    relay,
		newToken: uuid.NewString,
		labels:   Snapshot{MHLabel: "0%", PHLabel: "0%", Status: "Clear"},
	}
}

// Start shows the welcome bubble.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.AppendBot(WelcomeMessage)
}

// Snapshot returns the labels currently displayed.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.labels
}

// Send runs one turn and blocks until it settles. A newer Send cancels this
// one, in which case ErrStale is returned after the loading bubble is removed.
func (c *Controller) Send(ctx context.Context, input string) error {
	msg := strings.TrimSpace(input)
	if msg == "" {
		return ErrEmptyMessage
	}

	token := c.newToken()
	turnCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	c.view.AppendUser(msg)
	c.view.ClearInput()
	if c.cancel != nil {
		c.cancel()
	}
	c.current = token
	c.cancel = cancel
	c.view.ShowLoading(token)
	c.mu.Unlock()

	reply, err := c.relay.Analyze(turnCtx, msg)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.RemoveLoading(token)
	if c.current != token {
		return ErrStale
	}
	c.current = ""
	c.cancel = nil

	if err != nil {
		c.view.AppendBot(ErrorMessage)
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	c.view.AppendBot(reply.Reply)
	mh := scores.Normalize(float64(reply.MHScore))
	ph := scores.Normalize(float64(reply.PHScore))
	hex := scores.ColorHex(reply.Color)
	status := scores.StatusLabel(reply.Color)
	c.view.SetBar(BarMental, mh, hex)
	c.view.SetBar(BarPhysical, ph, hex)
	c.view.SetStatus(status)
	c.labels = Snapshot{MHLabel: scores.Label(mh), PHLabel: scores.Label(ph), Status: status}
	return nil
}
