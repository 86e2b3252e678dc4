package chat

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"healthai-backend/internal/scores"
)

const barCells = 20

// TerminalView prints the transcript to a writer. Loading bubbles cannot be
// erased from a terminal, so RemoveLoading only forgets the token.
type TerminalView struct {
	mu      sync.Mutex
	out     io.Writer
	loading map[string]struct{}
}

// NewTerminalView writes to out.
func NewTerminalView(out io.Writer) *TerminalView {
	return &TerminalView{out: out, loading: map[string]struct{}{}}
}

func (v *TerminalView) AppendUser(text string) {
	v.printf("you> %s\n", text)
}

func (v *TerminalView) AppendBot(markdown string) {
	v.printf("healthai> %s\n\n", strings.TrimSpace(markdown))
}

func (v *TerminalView) ClearInput() {}

func (v *TerminalView) ShowLoading(token string) {
	v.mu.Lock()
	v.loading[token] = struct{}{}
	v.mu.Unlock()
	v.printf("  analyzing...\n")
}

func (v *TerminalView) RemoveLoading(token string) {
	v.mu.Lock()
	delete(v.loading, token)
	v.mu.Unlock()
}

// Pending reports how many loading indicators are still shown.
func (v *TerminalView) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.loading)
}

func (v *TerminalView) SetBar(name string, pct float64, hex string) {
	title := "Mental Stress"
	if name == BarPhysical {
		title = "Physical Risk"
	}
	filled := int(math.Round(math.Max(0, math.Min(pct, 100)) / 100 * barCells))
	bar := strings.Repeat("#", filled) + strings.Repeat(".", barCells-filled)
	v.printf("  %-14s [%s] %s %s\n", title, bar, scores.Label(pct), hex)
}

func (v *TerminalView) SetStatus(label string) {
	v.printf("  Status: %s\n\n", label)
}

func (v *TerminalView) printf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, format, args...)
}
