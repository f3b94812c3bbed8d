// Package cmd implements the feed registration command.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fluxreg/fluxreg/client"
	"github.com/fluxreg/fluxreg/model"
)

// RegisterCmd registers a feed with a Miniflux server, or lists the server's
// categories. This is the whole CLI surface; there are no subcommands.
type RegisterCmd struct {
	URL               string        `name:"url" help:"RSS/Atom feed URL to register."`
	Server            string        `name:"server" env:"MINIFLUX_URL" help:"Miniflux server URL (or set MINIFLUX_URL)."`
	APIKey            string        `name:"api-key" env:"MINIFLUX_API_KEY" help:"Miniflux API key (or set MINIFLUX_API_KEY)."`
	Category          string        `name:"category" help:"Category name to attach the feed to (resolved case-insensitively)."`
	CategoryID        *int64        `name:"category-id" help:"Category id to attach the feed to (skips name lookup)."`
	ListCategories    bool          `name:"list-categories" help:"List the server's categories and exit."`
	Discover          bool          `name:"discover" help:"Treat --url as an HTML page and autodiscover its feed link."`
	Verify            bool          `name:"verify" help:"Fetch and parse the feed before registering it."`
	Timeout           time.Duration `name:"timeout" default:"30s" help:"Timeout for HTTP requests."`
	RequestsPerSecond float64       `name:"requests-per-second" default:"2" help:"Maximum API requests per second."`
	AllowPrivateIPs   bool          `name:"allow-private-ips" help:"Allow feed URLs resolving to private IPs or localhost."`
}

// Run dispatches to list-categories or add-feed mode. All configuration is
// validated before the first network call.
func (c *RegisterCmd) Run(globals *model.Globals) error {
	if err := c.validate(); err != nil {
		return err
	}

	api, err := client.New(client.Config{
		ServerURL:         c.Server,
		APIKey:            c.APIKey,
		Timeout:           c.Timeout,
		RequestsPerSecond: c.RequestsPerSecond,
	})
	if err != nil {
		return err
	}

	ctx := context.Background()

	if c.ListCategories {
		return c.runListCategories(ctx, api)
	}
	return c.runAddFeed(ctx, api)
}

func (c *RegisterCmd) validate() error {
	if !c.ListCategories && c.URL == "" {
		return model.CreateConfigurationError("Feed URL is required. Use --url.")
	}
	if c.Category != "" && c.CategoryID != nil {
		return model.CreateConfigurationError("--category and --category-id are mutually exclusive.")
	}
	if c.URL != "" {
		if err := model.ValidateURL(c.URL, c.AllowPrivateIPs); err != nil {
			return model.CreateValidationError(err, c.URL)
		}
	}
	// Self-hosted readers commonly live on private networks, so the server
	// URL is checked for scheme and host only, never for private IPs.
	if c.Server != "" {
		if err := model.ValidateURL(c.Server, true); err != nil {
			return model.CreateValidationError(err, c.Server)
		}
	}
	return nil
}

func (c *RegisterCmd) runListCategories(ctx context.Context, api *client.Client) error {
	categories, err := api.Categories(ctx)
	if err != nil {
		return err
	}

	for _, category := range categories {
		fmt.Printf("%s (ID: %d)\n", category.Title, category.ID)
	}
	return nil
}

func (c *RegisterCmd) runAddFeed(ctx context.Context, api *client.Client) error {
	feedURL := c.URL

	if c.Discover {
		discovered, err := api.DiscoverFeedURL(ctx, feedURL)
		if err != nil {
			return err
		}
		fmt.Printf("Discovered feed: %s\n", discovered)
		feedURL = discovered
	}

	if c.Verify {
		title, err := api.VerifyFeed(ctx, feedURL)
		if err != nil {
			return err
		}
		fmt.Printf("Verified feed: %s\n", orNA(title))
	}

	categoryID := c.CategoryID
	if c.Category != "" {
		id, err := api.ResolveCategoryID(ctx, c.Category)
		if err != nil {
			return err
		}
		categoryID = &id
	}

	fmt.Printf("Adding feed: %s\n", feedURL)
	fmt.Printf("To server: %s\n", api.BaseURL())

	feed, err := api.CreateFeed(ctx, model.FeedCreationRequest{
		FeedURL:    feedURL,
		CategoryID: categoryID,
	})
	if err != nil {
		return err
	}

	fmt.Println("\nFeed added successfully!")
	fmt.Printf("Feed ID: %d\n", feed.ID)
	fmt.Printf("Feed Title: %s\n", orNA(feed.Title))
	fmt.Printf("Site URL: %s\n", orNA(feed.SiteURL))
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
