package certificate

import (
	"bytes"
	"fmt"
	"io"

	"github.com/phpdave11/gofpdi"
	"github.com/signintech/gopdf"
)

const certificateFont = "certificate"

// PDFRenderer copies every page of a PDF template with gopdf and stamps
// text onto the first one. Pages keep the template's MediaBox size.
type PDFRenderer struct {
	pageWidth  float64
	pageHeight float64
}

// NewPDFRenderer creates a renderer. The page size in points is used for
// template pages that carry no readable MediaBox.
func NewPDFRenderer(pageWidth, pageHeight float64) *PDFRenderer {
	return &PDFRenderer{pageWidth: pageWidth, pageHeight: pageHeight}
}

func (r *PDFRenderer) Render(template, font []byte, lines []Line) (out []byte, err error) {
	if !bytes.HasPrefix(template, []byte("%PDF-")) {
		return nil, fmt.Errorf("%w: missing PDF header", ErrMalformedTemplate)
	}

	// The page importer panics on unreadable documents.
	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = fmt.Errorf("%w: %v", ErrMalformedTemplate, p)
		}
	}()

	sizes := r.pageSizes(template)

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: sizes[0]})

	if err := pdf.AddTTFFontData(certificateFont, font); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontEmbed, err)
	}

	rs := io.ReadSeeker(bytes.NewReader(template))
	for i, size := range sizes {
		pdf.AddPageWithOption(gopdf.PageOption{PageSize: &size})

		tpl := pdf.ImportPageStream(&rs, i+1, mediaBox)
		pdf.UseImportedTemplate(tpl, 0, 0, size.W, size.H)

		if i == 0 {
			if err := r.stamp(pdf, size.H, lines); err != nil {
				return nil, err
			}
		}
	}

	data, err := pdf.GetBytesPdfReturnErr()
	if err != nil {
		return nil, fmt.Errorf("serialize certificate: %w", err)
	}

	return data, nil
}

const mediaBox = "/MediaBox"

// pageSizes reads the MediaBox of every template page.
func (r *PDFRenderer) pageSizes(template []byte) []gopdf.Rect {
	imp := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(template))
	imp.SetSourceStream(&rs)

	n := imp.GetNumPages()
	if n < 1 {
		panic("template has no pages")
	}
	boxes := imp.GetPageSizes()

	sizes := make([]gopdf.Rect, n)
	for i := range sizes {
		size := gopdf.Rect{W: r.pageWidth, H: r.pageHeight}
		if box := boxes[i+1][mediaBox]; box["w"] > 0 && box["h"] > 0 {
			size = gopdf.Rect{W: box["w"], H: box["h"]}
		}
		sizes[i] = size
	}
	return sizes
}

func (r *PDFRenderer) stamp(pdf *gopdf.GoPdf, pageHeight float64, lines []Line) error {
	pdf.SetTextColor(0, 0, 0)
	for _, line := range lines {
		if err := pdf.SetFont(certificateFont, "", line.Size); err != nil {
			return fmt.Errorf("%w: %w", ErrFontEmbed, err)
		}
		// gopdf measures y from the top edge to the baseline.
		pdf.SetXY(line.X, pageHeight-line.Y)
		if err := pdf.Text(line.Text); err != nil {
			return fmt.Errorf("draw text: %w", err)
		}
	}
	return nil
}
