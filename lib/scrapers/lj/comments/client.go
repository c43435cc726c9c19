// Package comments downloads comment metadata and bodies through the
// cursor-paginated comment export endpoint and resolves poster
// usernames against the usermap.
package comments

import (
	"context"
	"strconv"

	"ljexport/lib/archive"
	"ljexport/lib/scrapers/lj/core"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/lj/comments")

type Client struct {
	core *core.Client
}

func NewClient(core *core.Client) *Client {
	return &Client{core: core}
}

// DownloadMeta fetches the highest comment id and the usermap.
func (c *Client) DownloadMeta(ctx context.Context) (int, []archive.User, error) {
	ctx, span := tracer.Start(ctx, "client:DownloadMeta")
	defer span.End()

	res, err := c.core.Get(ctx, "/export_comments.bml", map[string]string{
		"get":     "comment_meta",
		"startid": "0",
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "metadata request failed")
		return 0, nil, err
	}
	maxid, usermap, err := ParseMeta(res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse metadata")
		return 0, nil, err
	}
	return maxid, usermap, nil
}

// DownloadBatch fetches the comments with ids above the cursor.
func (c *Client) DownloadBatch(ctx context.Context, startid int) ([]archive.Comment, error) {
	ctx, span := tracer.Start(ctx, "client:DownloadBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("startid", startid))

	res, err := c.core.Get(ctx, "/export_comments.bml", map[string]string{
		"get":     "comment_body",
		"startid": strconv.Itoa(startid),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch request failed")
		return nil, err
	}
	batch, err := ParseComments(res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse batch")
		return nil, err
	}
	return batch, nil
}

// DownloadAll walks the cursor from zero up to maxid, resolves poster
// usernames and returns the usermap alongside the comments. The
// cursor only ever advances to the highest id in the latest batch, so
// the same startid is never requested twice.
func (c *Client) DownloadAll(ctx context.Context) ([]archive.Comment, []archive.User, error) {
	ctx, span := tracer.Start(ctx, "client:DownloadAll")
	defer span.End()

	maxid, usermap, err := c.DownloadMeta(ctx)
	if err != nil {
		return nil, nil, err
	}
	span.SetAttributes(attribute.Int("maxid", maxid))

	var all []archive.Comment
	cursor := 0
	for cursor < maxid {
		batch, err := c.DownloadBatch(ctx, cursor)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "batch download failed")
			return nil, nil, err
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)

		newCursor := cursor
		for _, comment := range batch {
			if comment.ID > newCursor {
				newCursor = comment.ID
			}
		}
		if newCursor <= cursor {
			// a batch that doesn't move the cursor would loop forever
			break
		}
		cursor = newCursor
	}

	ResolveUsernames(all, usermap)
	return all, usermap, nil
}
