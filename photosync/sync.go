package photosync

import (
	"context"
	"strings"

	"golang.org/x/oauth2"
)

// Saver stores imported media items. Implemented by the site's photo store.
type Saver interface {
	// HasSource reports whether a photo with the given source id exists.
	HasSource(sourceID string) (bool, error)
	// SaveImported persists one imported media item.
	SaveImported(item MediaItem) error
}

// Result summarizes one import run.
type Result struct {
	Imported int
	Skipped  int
}

// Sync lists the authorized library and stores every photo media item not
// already imported. Non-image items (videos) are skipped.
func (c *Client) Sync(ctx context.Context, token *oauth2.Token, saver Saver, max int) (Result, error) {
	items, err := c.ListMediaItems(ctx, token, max)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, item := range items {
		if !strings.HasPrefix(item.MimeType, "image/") {
			res.Skipped++
			continue
		}
		exists, err := saver.HasSource(item.ID)
		if err != nil {
			return res, err
		}
		if exists {
			res.Skipped++
			continue
		}
		if err := saver.SaveImported(item); err != nil {
			return res, err
		}
		res.Imported++
	}
	return res, nil
}
