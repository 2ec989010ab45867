package export

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-orderdesk/internal/common/orderprotocol"
)

func TestPDFCanvasPageSize(t *testing.T) {
	size := NewPDFCanvas().PageSize()

	assert.InDelta(t, 210, size.Width, 0.01)
	assert.InDelta(t, 297, size.Height, 0.01)
}

func TestPDFCanvasEmptyTable(t *testing.T) {
	canvas := NewPDFCanvas()
	hooks := 0

	err := canvas.Table(Table{StartY: 70, Head: Header()}, func(int) { hooks++ })

	require.NoError(t, err)
	assert.Equal(t, 1, hooks)
	assert.Equal(t, 1, canvas.PageCount())
}

func TestPDFCanvasPaginates(t *testing.T) {
	orders := make([]orderprotocol.Order, 120)
	for i := range orders {
		orders[i] = orderprotocol.Order{
			ID:         fmt.Sprintf("order-%03d", i),
			Items:      []orderprotocol.Item{{Name: "Pen"}, {Name: "Notebook with a rather long descriptive name"}},
			TotalPrice: decimal.NewFromInt(int64(i * 10)),
			Status:     "Processing",
		}
	}
	canvas := NewPDFCanvas()
	doc := NewFormatter(Config{}).Build(orders, fixedNow(), canvas.PageSize())

	var pages []int
	err := canvas.Table(doc.Table, func(page int) {
		pages = append(pages, page)
		canvas.Text(doc.Footer)
	})

	require.NoError(t, err)
	require.Greater(t, canvas.PageCount(), 1)
	assert.Len(t, pages, canvas.PageCount())
	for i, page := range pages {
		assert.Equal(t, i+1, page)
	}

	buf := &bytes.Buffer{}
	require.NoError(t, canvas.Output(buf))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
}

func TestPDFCanvasNonLatinText(t *testing.T) {
	canvas := NewPDFCanvas()
	orders := []orderprotocol.Order{
		{ID: "A1", Items: []orderprotocol.Item{{Name: "Chai ₹ कप"}}, TotalPrice: decimal.NewFromInt(5), Status: "Delivered"},
	}
	doc := NewFormatter(Config{}).Build(orders, fixedNow(), canvas.PageSize())

	require.NoError(t, Render(doc, canvas))
	require.NoError(t, canvas.Output(&bytes.Buffer{}))
}

func TestWrap(t *testing.T) {
	canvas := NewPDFCanvas()
	canvas.pdf.SetFont(fontFamily, "", tableFontSize)

	assert.Empty(t, canvas.wrap("", 30))
	assert.Equal(t, []string{"Pen"}, canvas.wrap("Pen", 30))

	lines := canvas.wrap("Pen, Book, Notebook, Stapler, Eraser, Ruler", 30)
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, canvas.pdf.GetStringWidth(line), 30.0)
	}

	long := canvas.wrap(strings.Repeat("x", 200), 20)
	require.Greater(t, len(long), 1)
	assert.Equal(t, 200, len(strings.Join(long, "")))
}
