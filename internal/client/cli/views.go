package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/packadmin/internal/client/listview"
	"github.com/dmitrijs2005/packadmin/internal/client/models"
)

type viewName string

const (
	viewPacks        viewName = "packs"
	viewItems        viewName = "items"
	viewTransactions viewName = "transactions"
	viewDashboard    viewName = "dashboard"
)

var errUnknownView = errors.New("unknown view")

func newViews(pageSize int) map[viewName]*listview.State {
	return map[viewName]*listview.State{
		viewPacks:        listview.NewState(listview.KeyPrice, pageSize),
		viewItems:        listview.NewState(listview.KeyID, pageSize),
		viewTransactions: listview.NewState(listview.KeyID, pageSize),
		viewDashboard:    listview.NewState(listview.KeyPrice, pageSize),
	}
}

func (a *App) state() *listview.State { return a.views[a.view] }

// ShowView switches the active list and prints its current page.
func (a *App) ShowView(ctx context.Context, name string) error {
	v := viewName(name)
	if _, ok := a.views[v]; !ok {
		return fmt.Errorf("%w: %s", errUnknownView, name)
	}
	a.view = v
	return a.render(ctx)
}

// Search sets the free-text filter of the active view.
func (a *App) Search(ctx context.Context, query string) error {
	a.state().SetQuery(query)
	return a.render(ctx)
}

// Sort toggles ordering of the active view by key.
func (a *App) Sort(ctx context.Context, key string) error {
	a.state().ToggleSort(listview.SortKey(key))
	return a.render(ctx)
}

// Page jumps to a one-based page number.
func (a *App) Page(ctx context.Context, number string) error {
	n, err := strconv.Atoi(number)
	if err != nil {
		fmt.Fprintln(a.out, "Page must be a number")
		return err
	}
	count, err := a.pageCount()
	if err != nil {
		return err
	}
	a.state().SetPage(n-1, count)
	return a.render(ctx)
}

func (a *App) Next(ctx context.Context) error {
	count, err := a.pageCount()
	if err != nil {
		return err
	}
	a.state().Next(count)
	return a.render(ctx)
}

func (a *App) Prev(ctx context.Context) error {
	count, err := a.pageCount()
	if err != nil {
		return err
	}
	a.state().Prev(count)
	return a.render(ctx)
}

// Refresh reloads every collection. Failures are logged by the stores and
// the previous records stay on screen.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.inventory.Refresh(ctx); err != nil {
		fmt.Fprintln(a.out, "Some collections could not be loaded; showing last known data")
	}
	return a.render(ctx)
}

func (a *App) Categories(ctx context.Context) error {
	cats := a.inventory.Categories()
	if len(cats) == 0 {
		fmt.Fprintln(a.out, "No categories")
		return nil
	}
	for _, c := range cats {
		fmt.Fprintln(a.out, " -", c)
	}
	return nil
}

func (a *App) pageCount() (int, error) {
	var (
		count int
		err   error
	)
	s := a.state()
	switch a.view {
	case viewPacks:
		var p listview.Page[models.Pack]
		p, err = listview.RenderState(a.inventory.Packs(), s, listview.PackKeys)
		count = p.Count
	case viewItems:
		var p listview.Page[models.Item]
		p, err = listview.RenderState(a.inventory.Items(), s, listview.ItemKeys)
		count = p.Count
	case viewTransactions:
		var p listview.Page[models.Transaction]
		p, err = listview.RenderState(a.inventory.Transactions(), s, listview.TransactionKeys)
		count = p.Count
	case viewDashboard:
		var p listview.Page[models.AggregatedPack]
		p, err = listview.RenderState(a.inventory.AggregatedPacks(), s, listview.AggregatedKeys)
		count = p.Count
	}
	return count, err
}

// render prints the current page of the active view.
func (a *App) render(ctx context.Context) error {
	var err error
	s := a.state()
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)

	switch a.view {
	case viewPacks:
		err = renderPage(tw, a.inventory.Packs(), s, listview.PackKeys,
			"ID\tBRAND\tCATEGORY\tPRICE\tITEMS\tSTATUS\tCREATED\tIMAGES",
			func(p models.Pack) string {
				return fmt.Sprintf("%d\t%s\t%s\t%s\t%d\t%s\t%s\t%d",
					p.ID, p.Brand, p.Category, p.Price.StringFixed(2), p.NumberOfItems, p.Status, p.CreatedDate, len(p.Images))
			})
	case viewItems:
		err = renderPage(tw, a.inventory.Items(), s, listview.ItemKeys,
			"ID\tPACK\tNAME",
			func(i models.Item) string {
				return fmt.Sprintf("%d\t%s\t%s", i.ID, i.PackLabel(), i.Name)
			})
	case viewTransactions:
		err = renderPage(tw, a.inventory.Transactions(), s, listview.TransactionKeys,
			"ID\tPACK\tSALE DATE\tAMOUNT\tPROFIT",
			func(t models.Transaction) string {
				return fmt.Sprintf("%d\t%d\t%s\t%s\t%s",
					t.ID, t.PackID, t.SaleDate, t.Amount.StringFixed(2), t.Profit.StringFixed(2))
			})
	case viewDashboard:
		err = renderPage(tw, a.inventory.AggregatedPacks(), s, listview.AggregatedKeys,
			"CATEGORY\tPACKS\tITEMS\tSOLD\tTOTAL PRICE",
			func(r models.AggregatedPack) string {
				return fmt.Sprintf("%s\t%d\t%d\t%d\t%s",
					r.Category, r.NumberOfPacks, r.NumberOfItems, r.PacksSold, r.TotalPrice.StringFixed(2))
			})
	}

	if err != nil {
		a.logger.Error(ctx, "error rendering view", "view", a.view, "error", err)
		fmt.Fprintln(a.out, "Unable to sort this view:", err)
		return err
	}
	return tw.Flush()
}

func renderPage[T listview.Searchable](tw *tabwriter.Writer, records []T, s *listview.State, keys listview.Keys[T], header string, row func(T) string) error {
	page, err := listview.RenderState(records, s, keys)
	if err != nil {
		return err
	}

	fmt.Fprintln(tw, header)
	for _, r := range page.Records {
		fmt.Fprintln(tw, row(r))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Page %d/%d (%d records)", displayPage(page), max(page.Count, 1), page.Total)
	if s.Query != "" {
		fmt.Fprintf(&b, " search=%q", s.Query)
	}
	fmt.Fprintf(&b, " sort=%s %s", s.Sort.Key, s.Sort.Direction)
	fmt.Fprintln(tw, b.String())
	return nil
}

func displayPage[T any](p listview.Page[T]) int {
	if p.Count == 0 {
		return 1
	}
	return p.Index + 1
}
