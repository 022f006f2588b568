package certificate

import (
	"bytes"
	"compress/zlib"
	"io"
	"strings"
	"testing"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/goregular"
)

// buildTemplate returns a PDF with one page per size.
func buildTemplate(t *testing.T, sizes ...gopdf.Rect) []byte {
	t.Helper()

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: sizes[0]})
	for i := range sizes {
		pdf.AddPageWithOption(gopdf.PageOption{PageSize: &sizes[i]})
		pdf.Line(10, 10, sizes[i].W-10, sizes[i].H-10)
	}

	data, err := pdf.GetBytesPdfReturnErr()
	if err != nil {
		t.Fatalf("build template: %v", err)
	}
	return data
}

// pdfText returns the file with every zlib stream inflated in place.
func pdfText(data []byte) string {
	var sb strings.Builder
	rest := data
	for {
		i := bytes.Index(rest, []byte("stream\n"))
		if i < 0 {
			sb.Write(rest)
			return sb.String()
		}
		sb.Write(rest[:i])
		rest = rest[i+len("stream\n"):]

		end := bytes.Index(rest, []byte("endstream"))
		if end < 0 {
			end = len(rest)
		}
		body := rest[:end]
		rest = rest[end:]
		if bytes.HasPrefix(rest, []byte("endstream")) {
			rest = rest[len("endstream"):]
		}

		zr, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			sb.Write(body)
			continue
		}
		inflated, _ := io.ReadAll(zr)
		sb.Write(inflated)
	}
}

var testLines = []Line{
	{Text: "Ivan Petrov", X: 70, Y: 190, Size: 20},
	{Text: "Position: Engineer", X: 70, Y: 150, Size: 14},
	{Text: "Test result: 4 of 5", X: 70, Y: 110, Size: 16},
}

// TestPDFRendererStampsTemplate verifies text lands at bottom-left based
// coordinates on top of the imported template.
func TestPDFRendererStampsTemplate(t *testing.T) {
	template := buildTemplate(t, gopdf.Rect{W: 841.89, H: 595.28})

	out, err := NewPDFRenderer(841.89, 595.28).Render(template, goregular.TTF, testLines)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("expected a PDF, got %q", out[:min(len(out), 16)])
	}

	text := pdfText(out)
	for _, want := range []string{"70.00 190.00 TD", "70.00 150.00 TD", "70.00 110.00 TD"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in content stream", want)
		}
	}
	if !strings.Contains(text, "/FontFile2") {
		t.Fatalf("expected the font to be embedded")
	}
}

// TestPDFRendererKeepsTemplateGeometry verifies page sizes follow the
// template and every page is kept.
func TestPDFRendererKeepsTemplateGeometry(t *testing.T) {
	template := buildTemplate(t,
		gopdf.Rect{W: 612, H: 792},
		gopdf.Rect{W: 400, H: 300},
	)

	out, err := NewPDFRenderer(841.89, 595.28).Render(template, goregular.TTF, testLines)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	text := pdfText(out)
	if !strings.Contains(text, "/MediaBox [ 0 0 612.00 792.00 ]") {
		t.Fatalf("expected the first page to keep its portrait size")
	}
	if !strings.Contains(text, "/MediaBox [ 0 0 400.00 300.00 ]") {
		t.Fatalf("expected the second page to be kept")
	}
	if strings.Contains(text, "841.89") {
		t.Fatalf("expected no page at the fallback size")
	}
	if n := strings.Count(text, "70.00 190.00 TD"); n != 1 {
		t.Fatalf("expected the name on one page only, got %d", n)
	}
}
