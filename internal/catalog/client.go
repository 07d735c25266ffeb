package catalog

import (
	"context"

	"github.com/counterdesk/counterdesk/internal/platform/rest"
)

// Client fetches the inventory reference list from the backend.
type Client struct {
	rest *rest.Client
}

// NewClient constructs a catalog client.
func NewClient(restClient *rest.Client) *Client {
	return &Client{rest: restClient}
}

// FetchCatalog retrieves the current inventory list.
func (c *Client) FetchCatalog(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := c.rest.Get(ctx, "/inventory", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
