package sales

import (
	"context"
	"fmt"

	"github.com/counterdesk/counterdesk/internal/platform/rest"
)

// Client performs the sales API calls.
type Client struct {
	rest *rest.Client
}

// NewClient constructs a sales client.
func NewClient(restClient *rest.Client) *Client {
	return &Client{rest: restClient}
}

// List retrieves all sales.
func (c *Client) List(ctx context.Context) ([]Sale, error) {
	var sales []Sale
	if err := c.rest.Get(ctx, "/sales", &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// Create posts a new sale.
func (c *Client) Create(ctx context.Context, req CreateSaleRequest) (*Sale, error) {
	var sale Sale
	if err := c.rest.Post(ctx, "/sales", req, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// Delete removes a sale by id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.rest.Delete(ctx, fmt.Sprintf("/sales/%d", id))
}
