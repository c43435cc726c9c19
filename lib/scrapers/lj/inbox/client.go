// Package inbox scrapes the message inbox, which has no export
// endpoint and must be read off the rendered HTML pages.
package inbox

import (
	"context"
	"strconv"

	"ljexport/lib/archive"
	"ljexport/lib/scrapers/lj/core"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/lj/inbox")

// DefaultFolders is the folder set used when the caller doesn't pick
// any. The "all" folder contains every message.
var DefaultFolders = []string{"all"}

type Client struct {
	core *core.Client
}

func NewClient(core *core.Client) *Client {
	return &Client{core: core}
}

// DownloadPage fetches one page of one folder.
func (c *Client) DownloadPage(ctx context.Context, folder string, page int) ([]archive.InboxMessage, bool, error) {
	ctx, span := tracer.Start(ctx, "client:DownloadPage")
	defer span.End()
	span.SetAttributes(
		attribute.String("folder", folder),
		attribute.Int("page", page),
	)

	res, err := c.core.Get(ctx, "/inbox/", map[string]string{
		"view": folder,
		"page": strconv.Itoa(page),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "inbox request failed")
		return nil, false, err
	}
	messages, hasNext, err := ParseInboxPage(res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse inbox page")
		return nil, false, err
	}
	return messages, hasNext, nil
}

// DownloadFolder walks a folder page by page until the pagination
// marker reports no next page.
func (c *Client) DownloadFolder(ctx context.Context, folder string) ([]archive.InboxMessage, error) {
	ctx, span := tracer.Start(ctx, "client:DownloadFolder")
	defer span.End()
	span.SetAttributes(attribute.String("folder", folder))

	var all []archive.InboxMessage
	for page := 1; ; page++ {
		messages, hasNext, err := c.DownloadPage(ctx, folder, page)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "page download failed")
			return nil, err
		}
		all = append(all, messages...)
		if !hasNext {
			break
		}
	}
	return all, nil
}

// DownloadAll concatenates the requested folders in order. Messages
// appearing in more than one folder are kept as-is, not deduplicated.
func (c *Client) DownloadAll(ctx context.Context, folders []string) ([]archive.InboxMessage, error) {
	ctx, span := tracer.Start(ctx, "client:DownloadAll")
	defer span.End()

	if len(folders) == 0 {
		folders = DefaultFolders
	}

	var all []archive.InboxMessage
	for _, folder := range folders {
		messages, err := c.DownloadFolder(ctx, folder)
		if err != nil {
			return nil, err
		}
		all = append(all, messages...)
	}
	return all, nil
}
