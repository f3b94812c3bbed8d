package client

import (
	"context"
	"strings"

	"github.com/gocolly/colly"

	"github.com/fluxreg/fluxreg/model"
)

// feedLinkTypes are the alternate-link MIME types recognized during
// autodiscovery.
var feedLinkTypes = map[string]bool{
	"application/rss+xml":   true,
	"application/atom+xml":  true,
	"application/feed+json": true,
	"application/json":      true,
}

// DiscoverFeedURL fetches an HTML page and returns the first feed URL it
// advertises via a <link rel="alternate"> element. Relative hrefs are
// resolved against the page URL.
func (c *Client) DiscoverFeedURL(ctx context.Context, pageURL string) (string, error) {
	collector := colly.NewCollector()
	if c.httpClient.Timeout > 0 {
		collector.SetRequestTimeout(c.httpClient.Timeout)
	}

	var discovered string

	collector.OnHTML(`link[rel="alternate"]`, func(e *colly.HTMLElement) {
		if discovered != "" {
			return
		}
		if !feedLinkTypes[strings.ToLower(e.Attr("type"))] {
			return
		}
		if href := e.Attr("href"); href != "" {
			discovered = e.Request.AbsoluteURL(href)
		}
	})

	model.LogDebug("discovering feed link", "discover_feed", pageURL)

	if err := collector.Visit(pageURL); err != nil {
		return "", model.CreateNetworkError(err, pageURL)
	}

	if discovered == "" {
		return "", model.CreateDiscoveryError(nil, pageURL)
	}

	return discovered, nil
}
