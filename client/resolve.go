package client

import (
	"context"
	"strings"

	"github.com/fluxreg/fluxreg/model"
)

// ResolveCategoryID maps a category name to its server-assigned id. Matching
// is case-insensitive and scans in server-returned order; when the server
// holds duplicate titles the first occurrence wins. A failed lookup reports
// every available title.
func (c *Client) ResolveCategoryID(ctx context.Context, name string) (int64, error) {
	categories, err := c.Categories(ctx)
	if err != nil {
		return 0, err
	}

	for _, category := range categories {
		if strings.EqualFold(category.Title, name) {
			return category.ID, nil
		}
	}

	return 0, model.CreateCategoryNotFoundError(name, categories)
}
