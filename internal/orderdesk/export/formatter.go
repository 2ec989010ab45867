package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go-orderdesk/internal/common/orderprotocol"
)

var (
	ErrNilCanvas = errors.New("canvas is required")
)

// Canvas is the drawing surface a Document is rendered onto.
type Canvas interface {
	PageSize() PageSize
	Text(block TextBlock)
	// Table draws the table, breaking onto new pages as needed, and calls
	// didDrawPage once for every page the table spans.
	Table(table Table, didDrawPage func(page int)) error
}

// OutputCanvas is a Canvas that can serialize itself.
type OutputCanvas interface {
	Canvas
	Output(w io.Writer) error
}

type Config struct {
	OrganizationName string
	AddressLine      string
	ReportTitle      string
}

type Formatter struct {
	cfg       Config
	now       func() time.Time
	newCanvas func() OutputCanvas
}

type Option func(*Formatter)

func WithClock(now func() time.Time) Option {
	return func(f *Formatter) {
		if now != nil {
			f.now = now
		}
	}
}

func WithCanvasFactory(factory func() OutputCanvas) Option {
	return func(f *Formatter) {
		if factory != nil {
			f.newCanvas = factory
		}
	}
}

func NewFormatter(cfg Config, opts ...Option) *Formatter {
	if cfg.OrganizationName == "" {
		cfg.OrganizationName = DefaultOrganizationName
	}
	if cfg.AddressLine == "" {
		cfg.AddressLine = DefaultAddressLine
	}
	if cfg.ReportTitle == "" {
		cfg.ReportTitle = DefaultReportTitle
	}
	f := &Formatter{
		cfg: cfg,
		now: time.Now,
		newCanvas: func() OutputCanvas {
			return NewPDFCanvas()
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Build lays out the report for a snapshot of orders generated at now.
func (f *Formatter) Build(orders []orderprotocol.Order, now time.Time, page PageSize) Document {
	center := page.Width / 2
	body := make([]ExportRow, 0, len(orders))
	for _, order := range orders {
		body = append(body, NewExportRow(order))
	}
	return Document{
		Page: page,
		Title: []TextBlock{
			{Text: f.cfg.OrganizationName, FontSize: titleFontSize, X: center, Y: organizationY, Align: AlignCenter},
			{Text: f.cfg.AddressLine, FontSize: subtitleFontSize, X: center, Y: addressY, Align: AlignCenter},
			{Text: f.cfg.ReportTitle, FontSize: subtitleFontSize, X: center, Y: reportTitleY, Align: AlignCenter},
		},
		Timestamp: TextBlock{
			Text:     "Date: " + FormatTimestamp(now),
			FontSize: bodyFontSize,
			X:        timestampX,
			Y:        timestampY,
			Align:    AlignLeft,
		},
		Table: Table{
			StartY: tableStartY,
			Head:   Header(),
			Body:   body,
		},
		Footer: TextBlock{
			Text:     SignatureLabel,
			FontSize: bodyFontSize,
			X:        page.Width - signatureRightOffset,
			Y:        page.Height - signatureBottomOffset,
			Align:    AlignLeft,
		},
	}
}

func Render(doc Document, canvas Canvas) error {
	if canvas == nil {
		return ErrNilCanvas
	}
	for _, block := range doc.Title {
		canvas.Text(block)
	}
	canvas.Text(doc.Timestamp)
	err := canvas.Table(doc.Table, func(int) {
		canvas.Text(doc.Footer)
	})
	if err != nil {
		return fmt.Errorf("failed to draw order table: %w", err)
	}
	return nil
}

// Export writes the report for orders to w.
func (f *Formatter) Export(w io.Writer, orders []orderprotocol.Order) error {
	canvas := f.newCanvas()
	doc := f.Build(orders, f.now(), canvas.PageSize())
	if err := Render(doc, canvas); err != nil {
		return err
	}
	if err := canvas.Output(w); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// ExportFile saves the report as order-list.pdf inside dir. A failed export
// leaves no partial file behind.
func (f *Formatter) ExportFile(dir string, orders []orderprotocol.Order) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, FileName)
	file, err := os.CreateTemp(dir, FileName+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	tmpPath := file.Name()
	if err := f.Export(file, orders); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpPath)
		return "", err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to save %s: %w", FileName, err)
	}
	return path, nil
}
