package invoice

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const csvBufferSize = 32 * 1024

var csvHeader = []string{
	"Invoice #", "Customer Name", "Amount", "Invoice Date",
	"Due Date", "Payment Date", "Status", "Payment Terms",
}

// ExportFilename names the downloadable export for the given day.
func ExportFilename(today Date) string {
	return fmt.Sprintf("invoices_%s.csv", today)
}

// WriteCSV renders the invoices as tabular text: a header row followed
// by one row per invoice, every cell double-quote wrapped, rows joined
// by newline. The caller passes the filtered-but-unpaginated set.
func WriteCSV(w io.Writer, invoices []Invoice, today Date) error {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	if _, err := buf.WriteString(strings.Join(csvHeader, ",") + "\n"); err != nil {
		return err
	}
	for _, inv := range invoices {
		paymentDate := "N/A"
		if inv.Paid() {
			paymentDate = inv.PaymentDate.String()
		}
		row := []string{
			inv.ID,
			inv.CustomerName,
			inv.Amount.StringFixed(2),
			inv.InvoiceDate.String(),
			inv.DueDate.String(),
			paymentDate,
			string(inv.StatusOn(today)),
			fmt.Sprintf("%d days", inv.PaymentTerms),
		}
		if err := writeCSVRow(buf, row); err != nil {
			return err
		}
	}
	return buf.Flush()
}

func writeCSVRow(buf *bufio.Writer, row []string) error {
	cells := make([]string, len(row))
	for i, cell := range row {
		cells[i] = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
	}
	_, err := buf.WriteString(strings.Join(cells, ",") + "\n")
	return err
}
