package purchases

import (
	"context"
	"fmt"

	"github.com/counterdesk/counterdesk/internal/platform/rest"
)

// Client performs the purchases API calls.
type Client struct {
	rest *rest.Client
}

// NewClient constructs a purchases client.
func NewClient(restClient *rest.Client) *Client {
	return &Client{rest: restClient}
}

// List retrieves all purchases.
func (c *Client) List(ctx context.Context) ([]Purchase, error) {
	var purchases []Purchase
	if err := c.rest.Get(ctx, "/purchases", &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// Create posts a new purchase.
func (c *Client) Create(ctx context.Context, req CreatePurchaseRequest) (*Purchase, error) {
	var purchase Purchase
	if err := c.rest.Post(ctx, "/purchases", req, &purchase); err != nil {
		return nil, err
	}
	return &purchase, nil
}

// Delete removes a purchase by id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.rest.Delete(ctx, fmt.Sprintf("/purchases/%d", id))
}
