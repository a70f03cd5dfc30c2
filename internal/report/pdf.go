package report

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// ErrFontNotFound is a configuration error: the monospace font resource the
// reports embed is missing.
var ErrFontNotFound = errors.New("report font not found")

// Encoder converts a rendered HTML document into a PDF byte buffer.
type Encoder interface {
	Encode(html string) ([]byte, error)
}

// PDFEncoder is a wkhtmltopdf-backed Encoder. The configured font file is
// inlined into the document head as a base64 @font-face so the 'PT Mono'
// family resolves without touching the network.
type PDFEncoder struct {
	fontPath string
}

// NewPDFEncoder creates a new PDFEncoder
func NewPDFEncoder(fontPath string) *PDFEncoder {
	return &PDFEncoder{fontPath: fontPath}
}

// Encode renders the HTML to PDF. Any failure is terminal for the request;
// there is no partial or best-effort output.
func (e *PDFEncoder) Encode(html string) ([]byte, error) {
	html, err := e.embedFont(html)
	if err != nil {
		return nil, err
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pdf generator: %w", err)
	}

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.DisableExternalLinks.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}

	return pdfg.Bytes(), nil
}

// embedFont injects the font file as an inline @font-face declaration,
// right before </head> when present, prepended otherwise.
func (e *PDFEncoder) embedFont(html string) (string, error) {
	data, err := os.ReadFile(e.fontPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrFontNotFound, e.fontPath)
	}

	style := fmt.Sprintf(
		"<style>@font-face{font-family:'PT Mono';src:url(data:font/ttf;base64,%s) format('truetype');}</style>",
		base64.StdEncoding.EncodeToString(data),
	)

	if idx := strings.Index(html, "</head>"); idx >= 0 {
		return html[:idx] + style + html[idx:], nil
	}
	return style + html, nil
}
