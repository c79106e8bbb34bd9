package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/packadmin/internal/client/selection"
	"github.com/dmitrijs2005/packadmin/internal/client/services"
	"github.com/dmitrijs2005/packadmin/internal/imaging"
)

// OpenImages starts an image review of a pack.
func (a *App) OpenImages(ctx context.Context, packArg string) error {
	packID, err := a.packArg(packArg)
	if err != nil {
		return err
	}
	p, ok := a.inventory.FindPack(packID)
	if !ok {
		fmt.Fprintln(a.out, "No such pack")
		return fmt.Errorf("%w: %d", services.ErrUnknownPack, packID)
	}
	a.review.Open(p.ID, p.Images)
	a.printReview(ctx)
	return nil
}

// SelectImage toggles an image of the open review.
func (a *App) SelectImage(ctx context.Context, idArg string) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Image ID must be a number")
		return fmt.Errorf("%w: %s", errBadNumber, idArg)
	}
	if _, err := a.review.Toggle(id); err != nil {
		a.reportReviewError(err)
		return err
	}
	a.printReview(ctx)
	return nil
}

// DeleteImages removes the selected images of the open review.
func (a *App) DeleteImages(ctx context.Context) error {
	ids, err := a.review.DeleteSelected(ctx, a.inventory)
	if err != nil {
		a.reportReviewError(err)
		return err
	}
	fmt.Fprintf(a.out, "%d image(s) deleted\n", len(ids))
	a.printReview(ctx)
	return nil
}

func (a *App) CloseImages(_ context.Context) error {
	a.review.Close()
	return nil
}

func (a *App) printReview(ctx context.Context) {
	id, _ := a.review.PackID()
	images := a.review.Images()
	fmt.Fprintf(a.out, "Pack %d: %d image(s), %d selected\n", id, len(images), a.review.SelectedCount())

	for _, img := range images {
		mark := " "
		if a.review.IsSelected(img.ID) {
			mark = "x"
		}
		th, err := imaging.Thumbnail(img.Data, imaging.ThumbnailSize)
		if err != nil {
			a.logger.Debug(ctx, "thumbnail failed", "image", img.ID, "error", err)
			fmt.Fprintf(a.out, "[%s] %d  (%d bytes, unreadable)\n", mark, img.ID, len(img.Data))
			continue
		}
		fmt.Fprintf(a.out, "[%s] %d  %dx%d (thumb %dx%d)\n", mark, img.ID, th.SourceW, th.SourceH, th.Width, th.Height)
	}
}

func (a *App) reportReviewError(err error) {
	switch {
	case errors.Is(err, selection.ErrNotOpen):
		fmt.Fprintln(a.out, "Open a pack's images first: images <pack id>")
	case errors.Is(err, selection.ErrUnknownImage):
		fmt.Fprintln(a.out, "That image is not in this pack")
	case errors.Is(err, selection.ErrNothingChosen):
		fmt.Fprintln(a.out, "Select at least one image")
	default:
		fmt.Fprintln(a.out, "Operation failed")
	}
}
