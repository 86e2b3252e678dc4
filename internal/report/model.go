package report

import (
	"strings"
	"time"
)

const (
	// FileName is the fixed download name of every report.
	FileName = "HealthAI_Report.pdf"

	DefaultAuthor = "SAURAV KUMAR"
	defaultLabel  = "0%"
	defaultStatus = "Clear"
)

// Input carries the label texts as currently displayed by the client.
type Input struct {
	MHLabel string `json:"mhLabel"`
	PHLabel string `json:"phLabel"`
	Status  string `json:"status"`
}

// WithDefaults fills blank labels with "0%" and a blank status with "Clear".
func (in Input) WithDefaults() Input {
	if strings.TrimSpace(in.MHLabel) == "" {
		in.MHLabel = defaultLabel
	}
	if strings.TrimSpace(in.PHLabel) == "" {
		in.PHLabel = defaultLabel
	}
	if strings.TrimSpace(in.Status) == "" {
		in.Status = defaultStatus
	}
	return in
}

// Meta describes one rendered report.
type Meta struct {
	ID          string
	GeneratedAt time.Time
	Bytes       int
}
