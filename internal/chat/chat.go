// Package chat implements the chat turn state machine shared by the terminal
// client: input validation, loading indicators keyed by turn token, stale
// turn cancellation and score bar updates.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

const (
	WelcomeMessage = "System Online. I am your HealthAI Assistant. Describe your symptoms or stress levels."
	ErrorMessage   = "I encountered an error. Please try again later."

	BarMental   = "mh"
	BarPhysical = "ph"
)

var (
	ErrEmptyMessage = errors.New("chat: message is empty")
	ErrTransport    = errors.New("chat: relay request failed")
	ErrStale        = errors.New("chat: turn superseded by a newer message")
)

// View receives every visible change. Implementations must not call back
// into the Controller.
type View interface {
	AppendUser(text string)
	AppendBot(markdown string)
	ClearInput()
	ShowLoading(token string)
	RemoveLoading(token string)
	SetBar(name string, pct float64, hex string)
	SetStatus(label string)
}

// Relay performs one analyze round trip.
type Relay interface {
	Analyze(ctx context.Context, message string) (Reply, error)
}

// Reply is the relay's structured answer.
type Reply struct {
	Reply   string `json:"reply"`
	MHScore Score  `json:"mhScore"`
	PHScore Score  `json:"phScore"`
	Color   string `json:"color"`
}

// Score decodes a number leniently; anything that is not a number or a
// numeric string counts as 0.
type Score float64

func (s *Score) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		*s = 0
		return nil
	}
	switch x := v.(type) {
	case float64:
		*s = Score(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			f = 0
		}
		*s = Score(f)
	default:
		*s = 0
	}
	return nil
}
