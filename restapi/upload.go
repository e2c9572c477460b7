package restapi

import (
	"context"
	"net/http"

	"github.com/tlwa/courseadmin/staging"
)

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload sends a single staged file to the generic upload endpoint and
// returns the hosted URL.
func (c *Client) Upload(ctx context.Context, f staging.File) (string, error) {
	var resp uploadResponse
	err := c.SendMultipart(ctx, http.MethodPost, "/api/upload", nil, []FormFile{{Field: "file", File: f}}, &resp)
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}
