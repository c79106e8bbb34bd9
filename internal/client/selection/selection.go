// Package selection keeps the multi-select state of the image review of
// one pack.
package selection

import (
	"context"
	"errors"
	"slices"

	"github.com/dmitrijs2005/packadmin/internal/client/models"
)

var (
	ErrNotOpen       = errors.New("no image review open")
	ErrUnknownImage  = errors.New("image is not part of the open review")
	ErrNothingChosen = errors.New("no images selected")
)

// ImageDeleter removes images remotely.
type ImageDeleter interface {
	DeleteImages(ctx context.Context, ids []int64) error
}

// ImageReview is the open image list of a single pack plus the ids chosen
// for batch deletion. The selection is always a subset of the listed
// images and is dropped when the review closes.
type ImageReview struct {
	open     bool
	packID   int64
	images   []models.Image
	selected []int64
}

// Open starts a review of images, replacing any previous one.
func (r *ImageReview) Open(packID int64, images []models.Image) {
	r.open = true
	r.packID = packID
	r.images = slices.Clone(images)
	r.selected = nil
}

func (r *ImageReview) Close() {
	r.open = false
	r.packID = 0
	r.images = nil
	r.selected = nil
}

func (r *ImageReview) IsOpen() bool { return r.open }

// PackID returns the pack under review.
func (r *ImageReview) PackID() (int64, bool) {
	return r.packID, r.open
}

// Images returns the currently displayed images.
func (r *ImageReview) Images() []models.Image {
	return slices.Clone(r.images)
}

// Toggle adds id to the selection, or removes it if already selected.
// It reports whether id is selected afterwards.
func (r *ImageReview) Toggle(id int64) (bool, error) {
	if !r.open {
		return false, ErrNotOpen
	}
	if !slices.ContainsFunc(r.images, func(img models.Image) bool { return img.ID == id }) {
		return false, ErrUnknownImage
	}
	if i := slices.Index(r.selected, id); i >= 0 {
		r.selected = slices.Delete(r.selected, i, i+1)
		return false, nil
	}
	r.selected = append(r.selected, id)
	return true, nil
}

// Selected returns the chosen ids in selection order.
func (r *ImageReview) Selected() []int64 {
	return slices.Clone(r.selected)
}

func (r *ImageReview) IsSelected(id int64) bool {
	return slices.Contains(r.selected, id)
}

func (r *ImageReview) SelectedCount() int { return len(r.selected) }

// CanDelete reports whether the batch delete is enabled.
func (r *ImageReview) CanDelete() bool { return len(r.selected) > 0 }

// DeleteSelected deletes every selected image remotely, then drops them
// from the displayed list and clears the selection. On failure nothing
// changes locally.
func (r *ImageReview) DeleteSelected(ctx context.Context, d ImageDeleter) ([]int64, error) {
	if !r.open {
		return nil, ErrNotOpen
	}
	if !r.CanDelete() {
		return nil, ErrNothingChosen
	}

	ids := slices.Clone(r.selected)
	if err := d.DeleteImages(ctx, ids); err != nil {
		return nil, err
	}

	r.images = slices.DeleteFunc(r.images, func(img models.Image) bool {
		return slices.Contains(ids, img.ID)
	})
	r.selected = nil
	return ids, nil
}
