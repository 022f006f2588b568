// Package certificate builds personalized PDF certificates from a template.
package certificate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/certquiz-bot/internal/i18n"
)

const MediaType = "application/pdf"

// Asset names as served by the static file server.
const (
	TemplateAsset    = "certificate.pdf"
	DefaultFontAsset = "NotoSans-Regular.ttf"
	CJKFontAsset     = "NotoSansSC-Regular.ttf"
)

var (
	ErrFetch             = errors.New("fetch asset")
	ErrMalformedTemplate = errors.New("malformed certificate template")
	ErrFontEmbed         = errors.New("embed font")
)

// Request holds everything printed on a certificate.
type Request struct {
	Language  entities.Language
	FirstName string
	LastName  string
	Position  string
	Score     int
	Total     int
}

// Document is a rendered certificate ready for download.
type Document struct {
	FileName  string
	MediaType string
	Bytes     []byte
}

// Line is a single line of text drawn on the first page.
// X and Y are in points from the bottom-left corner.
type Line struct {
	Text string
	X    float64
	Y    float64
	Size float64
}

// Renderer draws lines on the first page of a PDF template using the given font.
type Renderer interface {
	Render(template, font []byte, lines []Line) ([]byte, error)
}

// Generator fetches certificate assets and renders personalized documents.
type Generator struct {
	source   Source
	renderer Renderer
	logger   *zap.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(source Source, renderer Renderer, logger *zap.Logger) *Generator {
	return &Generator{
		source:   source,
		renderer: renderer,
		logger:   logger,
	}
}

// Generate fetches the template and font concurrently and renders the certificate.
func (g *Generator) Generate(ctx context.Context, req Request) (*Document, error) {
	var template, font []byte

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		data, err := g.source.Fetch(egCtx, TemplateAsset)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFetch, err)
		}
		template = data
		return nil
	})
	eg.Go(func() error {
		data, err := g.source.Fetch(egCtx, FontAsset(req.Language))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFetch, err)
		}
		font = data
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	pdf, err := g.renderer.Render(template, font, Lines(req))
	if err != nil {
		return nil, err
	}

	doc := &Document{
		FileName:  FileName(req.FirstName, req.LastName),
		MediaType: MediaType,
		Bytes:     pdf,
	}

	g.logger.Info("certificate generated",
		zap.String("file", doc.FileName),
		zap.String("language", string(req.Language)),
		zap.Int("size", len(doc.Bytes)),
	)

	return doc, nil
}

// FontAsset returns the font that covers the script of lang.
func FontAsset(lang entities.Language) string {
	if lang == entities.LanguageChinese {
		return CJKFontAsset
	}
	return DefaultFontAsset
}

// FileName returns the download name of a certificate.
func FileName(firstName, lastName string) string {
	return fmt.Sprintf("Certificate_%s_%s.pdf", fileSafe.Replace(lastName), fileSafe.Replace(firstName))
}

var fileSafe = strings.NewReplacer("/", "_", "\\", "_")

// Lines returns the three lines printed on the certificate.
func Lines(req Request) []Line {
	t := i18n.For(req.Language)
	return []Line{
		{Text: t.CertificateName(req.FirstName, req.LastName), X: 70, Y: 190, Size: 20},
		{Text: t.CertificatePosition(req.Position), X: 70, Y: 150, Size: 14},
		{Text: t.CertificateScore(req.Score, req.Total), X: 70, Y: 110, Size: 16},
	}
}
