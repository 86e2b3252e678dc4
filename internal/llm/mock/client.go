package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"healthai-backend/internal/llm"
)

// Model is the model name reported for the offline client.
const Model = "mock"

// Client returns canned results derived from keywords in the message. It never
// calls the network and is meant for local development.
type Client struct{}

type result struct {
	Reply   string  `json:"reply"`
	MHScore float64 `json:"mhScore"`
	PHScore float64 `json:"phScore"`
	Color   string  `json:"color"`
}

var (
	criticalWords = []string{"chest pain", "faint", "bleeding", "suicid", "can't breathe", "cannot breathe"}
	elevatedWords = []string{"anxious", "anxiety", "stress", "panic", "fever", "migraine", "insomnia"}
)

// Analyze classifies the message by keyword severity.
func (Client) Analyze(ctx context.Context, req llm.Request) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text := strings.ToLower(req.Message)

	out := result{
		Reply:   "Thanks for sharing. Nothing you describe looks urgent. Keep resting, drink water, and check in again if anything changes.",
		MHScore: 15,
		PHScore: 10,
		Color:   "GREEN",
	}
	switch {
	case containsAny(text, criticalWords):
		out = result{
			Reply:   "**Please seek medical help right away.** The symptoms you describe can be serious. Contact emergency services or go to the nearest hospital.",
			MHScore: 60,
			PHScore: 90,
			Color:   "RED",
		}
	case containsAny(text, elevatedWords):
		out = result{
			Reply:   "It sounds like you are under some strain. Try slow breathing, regular sleep and a short walk. If it persists for more than a few days, talk to a doctor.",
			MHScore: 0.8,
			PHScore: 0.1,
			Color:   "ORANGE",
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode mock result: %w", err)
	}
	return data, nil
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

var _ llm.Client = Client{}
