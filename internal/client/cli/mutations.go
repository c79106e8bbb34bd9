package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/packadmin/internal/client/models"
	"github.com/dmitrijs2005/packadmin/internal/client/services"
	"github.com/dmitrijs2005/packadmin/internal/imaging"
	"github.com/shopspring/decimal"
)

var errBadNumber = errors.New("not a number")

// AddPack asks for the pack fields and optional image files, then creates
// the pack.
func (a *App) AddPack(ctx context.Context) error {
	brand, err := GetSimpleText(a.reader, "Brand", a.out)
	if err != nil {
		return err
	}

	if cats := a.inventory.Categories(); len(cats) > 0 {
		fmt.Fprintln(a.out, "Known categories:", strings.Join(cats, ", "))
	}
	category, err := GetSimpleText(a.reader, "Category", a.out)
	if err != nil {
		return err
	}
	if s := models.SuggestCategories(a.inventory.Categories(), category); len(s) > 0 && !containsFold(s, category) {
		fmt.Fprintln(a.out, "Did you mean:", strings.Join(s, ", "))
	}

	priceText, err := GetSimpleText(a.reader, "Price", a.out)
	if err != nil {
		return err
	}
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		fmt.Fprintln(a.out, "Price must be a number")
		return fmt.Errorf("%w: %s", errBadNumber, priceText)
	}

	countText, err := GetSimpleText(a.reader, "Number of items", a.out)
	if err != nil {
		return err
	}
	count, err := strconv.Atoi(countText)
	if err != nil {
		fmt.Fprintln(a.out, "Number of items must be a whole number")
		return fmt.Errorf("%w: %s", errBadNumber, countText)
	}

	blobs, err := a.askImages()
	if err != nil {
		return err
	}

	draft := models.PackDraft{Brand: brand, Category: category, Price: price, NumberOfItems: count}
	p, err := a.inventory.CreatePack(ctx, draft, blobs)
	if err != nil {
		a.reportMutationError(err)
		return err
	}

	fmt.Fprintf(a.out, "Pack %d created\n", p.ID)
	return nil
}

// AddItem attaches a new named item to the pack id given as argument.
func (a *App) AddItem(ctx context.Context, packArg string) error {
	packID, err := a.packArg(packArg)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Item name", a.out)
	if err != nil {
		return err
	}
	it, err := a.inventory.AddItem(ctx, packID, name)
	if err != nil {
		a.reportMutationError(err)
		return err
	}
	fmt.Fprintf(a.out, "Item %d added to pack %d\n", it.ID, packID)
	return nil
}

// Sell records the sale of a pack. The amount must cover the pack price.
func (a *App) Sell(ctx context.Context, packArg string) error {
	packID, err := a.packArg(packArg)
	if err != nil {
		return err
	}
	if p, ok := a.inventory.FindPack(packID); ok {
		fmt.Fprintf(a.out, "Pack %d %s, price %s\n", p.ID, p.Brand, p.Price.StringFixed(2))
		if p.Sold() {
			fmt.Fprintln(a.out, "Note: this pack is already marked sold")
		}
	}
	amount, err := GetSimpleText(a.reader, "Sale amount", a.out)
	if err != nil {
		return err
	}
	tx, err := a.inventory.RecordSale(ctx, packID, amount)
	if err != nil {
		a.reportMutationError(err)
		return err
	}
	fmt.Fprintf(a.out, "Sale %d recorded, profit %s\n", tx.ID, tx.Profit.StringFixed(2))
	return nil
}

// AddImages uploads image files to an existing pack.
func (a *App) AddImages(ctx context.Context, packArg string) error {
	packID, err := a.packArg(packArg)
	if err != nil {
		return err
	}
	blobs, err := a.askImages()
	if err != nil {
		return err
	}
	if err := a.inventory.AddImages(ctx, packID, blobs); err != nil {
		a.reportMutationError(err)
		return err
	}
	fmt.Fprintf(a.out, "%d image(s) added to pack %d\n", len(blobs), packID)
	return nil
}

// askImages reads a comma-separated list of file paths. Every file must be
// an accepted image.
func (a *App) askImages() ([]models.Blob, error) {
	line, err := GetSimpleText(a.reader, "Image files (comma separated, empty for none)", a.out)
	if err != nil {
		return nil, err
	}

	var blobs []models.Blob
	for _, path := range strings.Split(line, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(a.out, "Cannot read file:", path)
			return nil, err
		}
		if _, err := imaging.Sniff(data); err != nil {
			fmt.Fprintln(a.out, "Not an accepted image:", path)
			return nil, err
		}
		blobs = append(blobs, models.Blob{Name: filepath.Base(path), Data: data})
	}
	return blobs, nil
}

func (a *App) packArg(arg string) (int64, error) {
	if arg == "" {
		var err error
		arg, err = GetSimpleText(a.reader, "Pack ID", a.out)
		if err != nil {
			return 0, err
		}
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Pack ID must be a number")
		return 0, fmt.Errorf("%w: %s", errBadNumber, arg)
	}
	return id, nil
}

// reportMutationError prints inline validation text. Remote failures are
// already logged by the service and get a generic line only.
func (a *App) reportMutationError(err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve) && ve.Field == "amount":
		fmt.Fprintln(a.out, ve.Message)
	case errors.As(err, &ve):
		fmt.Fprintln(a.out, "Invalid input:", ve.Error())
	case errors.Is(err, services.ErrUnknownPack):
		fmt.Fprintln(a.out, "No such pack")
	default:
		fmt.Fprintln(a.out, "Operation failed")
	}
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
