package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// Summary describes a PDF read back from bytes.
type Summary struct {
	Pages int
	Text  string
}

// Inspect opens a PDF document and extracts its page count and plain text.
func Inspect(data []byte) (Summary, error) {
	if len(data) == 0 {
		return Summary{}, errors.New("empty pdf data")
	}
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return Summary{}, fmt.Errorf("open pdf: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return Summary{}, fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return Summary{}, fmt.Errorf("read pdf text: %w", err)
	}
	return Summary{Pages: pdfReader.NumPage(), Text: buf.String()}, nil
}
