// Package profile reads journal metadata off the public profile page.
// The post count and creation date bound the posts download when the
// caller gives no explicit range.
package profile

import (
	"context"
	"fmt"
	"time"

	"ljexport/lib/scrapers/lj/core"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/lj/profile")

type Client struct {
	core *core.Client
	// URLTemplate builds the profile URL from the username. Tests
	// point it at a local server.
	URLTemplate string
}

func NewClient(core *core.Client) *Client {
	return &Client{
		core:        core,
		URLTemplate: "https://%s.livejournal.com/profile/",
	}
}

// Download fetches and parses the profile page of the client's
// account.
func (c *Client) Download(ctx context.Context) (Profile, error) {
	ctx, span := tracer.Start(ctx, "client:Download")
	defer span.End()

	res, err := c.core.Get(ctx, fmt.Sprintf(c.URLTemplate, c.core.Username), nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "profile request failed")
		return Profile{}, err
	}
	parsed, err := ParseProfile(res.Body(), time.Now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse profile page")
		return Profile{}, err
	}
	return parsed, nil
}
