package client

import (
	"context"

	"github.com/mmcdole/gofeed"

	"github.com/fluxreg/fluxreg/model"
)

// VerifyFeed fetches and parses the feed before registration, returning its
// title. Registration is skipped when the URL does not serve a valid RSS,
// Atom, or JSON feed.
func (c *Client) VerifyFeed(ctx context.Context, feedURL string) (string, error) {
	parser := gofeed.NewParser()
	parser.Client = c.httpClient

	model.LogDebug("verifying feed", "verify_feed", feedURL)

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return "", model.CreateParsingError(err, feedURL)
	}

	return feed.Title, nil
}
