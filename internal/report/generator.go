package report

import (
	"bytes"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"healthai-backend/internal/scores"
	"healthai-backend/internal/shared/telemetry"
)

const (
	pageW      = 210.0
	pageH      = 297.0
	trackX     = 25.0
	trackW     = 160.0
	trackH     = 2.0
	dateLayout = "1/2/2006, 3:04:05 PM"
	logoName   = "healthai-logo"
	notice     = "NOTICE: Research output aligned with UN SDG 3. This is not a clinical diagnosis. Please share with a healthcare professional."
)

var (
	bgDark      = scores.RGB{R: 10, G: 10, B: 12}
	cardDark    = scores.RGB{R: 26, G: 26, B: 30}
	primaryBlue = scores.RGB{R: 59, G: 130, B: 246}
	textSlate   = scores.RGB{R: 148, G: 163, B: 184}
	trackSlate  = scores.RGB{R: 51, G: 65, B: 85}
	footerRule  = scores.RGB{R: 31, G: 41, B: 55}
	noticeGray  = scores.RGB{R: 100, G: 116, B: 139}
	metaGray    = scores.RGB{R: 71, G: 85, B: 105}
	white       = scores.RGB{R: 255, G: 255, B: 255}
)

// Generator draws the single-page report.
type Generator struct {
	Author   string
	Model    string
	LogoPath string
	Now      func() time.Time
	NewID    func() string
}

// NewGenerator builds a Generator; blank author falls back to DefaultAuthor.
func NewGenerator(author, model, logoPath string) *Generator {
	if strings.TrimSpace(author) == "" {
		author = DefaultAuthor
	}
	return &Generator{
		Author:   author,
		Model:    model,
		LogoPath: logoPath,
		Now:      time.Now,
		NewID:    NewReportID,
	}
}

// NewReportID returns HAI-<n> with n uniform in [0, 900000).
func NewReportID() string {
	return fmt.Sprintf("HAI-%d", rand.IntN(900000))
}

// Render writes the PDF for in to w.
func (g *Generator) Render(w io.Writer, in Input) (Meta, error) {
	in = in.WithDefaults()
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	newID := NewReportID
	if g.NewID != nil {
		newID = g.NewID
	}
	meta := Meta{ID: newID(), GeneratedAt: now()}

	mhScore := scores.ParseLeadingInt(in.MHLabel)
	phScore := scores.ParseLeadingInt(in.PHLabel)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	setFill(pdf, bgDark)
	pdf.Rect(0, 0, pageW, pageH, "F")
	setFill(pdf, primaryBlue)
	pdf.Rect(0, 0, pageW, 4, "F")

	g.drawLogo(pdf)
	setText(pdf, white)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(36, 25, "HEALTHAI")

	setFill(pdf, cardDark)
	pdf.RoundedRect(15, 45, 180, 65, 5, "1234", "F")
	setText(pdf, white)
	pdf.SetFontSize(14)
	pdf.Text(25, 60, "DIAGNOSTIC SCORES")

	pdf.SetFontSize(10)
	setText(pdf, textSlate)
	pdf.Text(25, 75, tr("Mental Stress: "+in.MHLabel))
	drawBar(pdf, 78, mhScore)
	pdf.Text(25, 95, tr("Physical Risk: "+in.PHLabel))
	drawBar(pdf, 98, phScore)

	setDraw(pdf, trackSlate)
	setFill(pdf, cardDark)
	pdf.RoundedRect(15, 115, 180, 60, 5, "1234", "FD")
	setText(pdf, white)
	pdf.SetFontSize(14)
	pdf.Text(25, 130, "REPORT SUMMARY")

	pdf.SetFontSize(10)
	pdf.SetFont("Helvetica", "", 10)
	setText(pdf, textSlate)
	for i, line := range summaryLines(mhScore, phScore, in.Status, g.Model) {
		pdf.Text(25, 142+float64(i)*8, tr(line))
	}

	setDraw(pdf, footerRule)
	pdf.Line(15, 260, 195, 260)

	setText(pdf, noticeGray)
	pdf.SetFontSize(8)
	_, lineH := pdf.GetFontSize()
	for i, line := range pdf.SplitText(notice, 140) {
		pdf.Text(15, 270+float64(i)*lineH*1.15, line)
	}

	setText(pdf, white)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Text(150, 270, "Developed & Designed by")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(150, 275, tr(g.Author))

	pdf.SetFont("Helvetica", "", 7)
	setText(pdf, metaGray)
	pdf.Text(15, 285, fmt.Sprintf("ID: %s | %s", meta.ID, meta.GeneratedAt.Format(dateLayout)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Meta{}, fmt.Errorf("render report: %w", err)
	}
	n, err := w.Write(buf.Bytes())
	if err != nil {
		return Meta{}, fmt.Errorf("write report: %w", err)
	}
	meta.Bytes = n
	return meta, nil
}

func summaryLines(mhScore, phScore int, status, model string) []string {
	node := strings.TrimSpace(model)
	if node == "" {
		node = "configured model"
	}
	return []string{
		fmt.Sprintf("• AI-NLP Analysis indicates a %d%% mental stress probability.", mhScore),
		fmt.Sprintf("• Clinical screening identifies a %d%% physical risk factor.", phScore),
		fmt.Sprintf("• Overall health classification: %s.", strings.ToUpper(status)),
		fmt.Sprintf("• Data processed via %s Research Node.", node),
	}
}

// FillWidth is the bar length for score, clamped to the track.
func FillWidth(score int) float64 {
	w := float64(score) / 100 * trackW
	switch {
	case w < 0:
		return 0
	case w > trackW:
		return trackW
	default:
		return w
	}
}

func drawBar(pdf *fpdf.Fpdf, y float64, score int) {
	setFill(pdf, trackSlate)
	pdf.RoundedRect(trackX, y, trackW, trackH, 1, "1234", "F")
	w := FillWidth(score)
	if w <= 0 {
		return
	}
	setFill(pdf, scores.BarColor(score))
	radius := 1.0
	if w < 2*radius {
		radius = w / 2
	}
	pdf.RoundedRect(trackX, y, w, trackH, radius, "1234", "F")
}

// drawLogo places the optional logo. A missing or unreadable image is logged
// and the report is drawn without it.
func (g *Generator) drawLogo(pdf *fpdf.Fpdf) {
	if strings.TrimSpace(g.LogoPath) == "" {
		return
	}
	data, err := os.ReadFile(g.LogoPath)
	if err != nil {
		telemetry.Warn("report.logo_skipped", map[string]any{"path": g.LogoPath, "err": err})
		return
	}
	opts := fpdf.ImageOptions{ImageType: imageType(g.LogoPath)}
	pdf.RegisterImageOptionsReader(logoName, opts, bytes.NewReader(data))
	if !pdf.Ok() {
		telemetry.Warn("report.logo_skipped", map[string]any{"path": g.LogoPath, "err": pdf.Error()})
		pdf.ClearError()
		return
	}
	pdf.ImageOptions(logoName, 20, 15, 12, 12, false, opts, 0, "")
}

func imageType(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "JPG"
	case strings.HasSuffix(lower, ".gif"):
		return "GIF"
	default:
		return "PNG"
	}
}

func setFill(pdf *fpdf.Fpdf, c scores.RGB) { pdf.SetFillColor(c.R, c.G, c.B) }
func setText(pdf *fpdf.Fpdf, c scores.RGB) { pdf.SetTextColor(c.R, c.G, c.B) }
func setDraw(pdf *fpdf.Fpdf, c scores.RGB) { pdf.SetDrawColor(c.R, c.G, c.B) }
