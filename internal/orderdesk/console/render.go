package console

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"go-orderdesk/internal/orderdesk/orderlist"
)

const loadingMessage = "Loading orders..."

// RenderTable prints the table view model. While loading only the indicator
// is shown.
func RenderTable(w io.Writer, table orderlist.TableViewModel, loading bool) error {
	if loading {
		_, err := fmt.Fprintln(w, loadingMessage)
		return err //nolint:wrapcheck // unnecessary
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, column := range table.Columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, column.Label)
	}
	fmt.Fprintln(tw)
	for _, row := range table.Rows {
		fmt.Fprintf(
			tw,
			"%s\t%s\t%s\t%s\t%s\t%s\n",
			row.ID,
			row.ProductNames,
			strconv.Itoa(row.ItemCount),
			row.FormattedAmount,
			statusCell(row.Status),
			actionsCell(row.Actions),
		)
	}
	if len(table.Rows) == 0 {
		fmt.Fprintln(tw, "No orders")
	}
	return tw.Flush() //nolint:wrapcheck // unnecessary
}

func statusCell(status orderlist.StatusMarkup) string {
	return fmt.Sprintf("%s (%s)", status.Text, status.Color)
}

func actionsCell(actions orderlist.Actions) string {
	if actions.Delete.Disabled {
		return actions.Edit.Path + " | deleting"
	}
	return actions.Edit.Path + " | delete"
}
