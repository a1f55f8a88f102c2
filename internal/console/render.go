package console

import (
	"fmt"
	"io"
	"text/tabwriter"

	"supermarket/internal/domain"

	"github.com/shopspring/decimal"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func renderProducts(w io.Writer, products []*domain.Product) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tName\tCategory\tPrice\tQty\tNet Price")
	fmt.Fprintln(tw, "--\t----\t--------\t-----\t---\t---------")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
			p.ID, p.Name, p.Category, money(p.Price), p.Quantity, money(p.NetPrice()))
	}
	return tw.Flush()
}

func renderCart(w io.Writer, view domain.CartView) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tProduct\tQuantity\tPrice/Unit\tSubtotal")
	fmt.Fprintln(tw, "--\t-------\t--------\t----------\t--------")
	for _, line := range view.Lines {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n",
			line.ProductID, line.Name, line.Quantity, money(line.UnitPrice), money(line.Subtotal()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nTOTAL: %s\n", money(view.Total))
	return err
}

func renderTrending(w io.Writer, items []domain.TrendingItem) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "Rank\tProduct\tCategory\tTotal Sold")
	fmt.Fprintln(tw, "----\t-------\t--------\t----------")
	for i, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", i+1, item.Name, item.Category, item.TotalSold)
	}
	return tw.Flush()
}
