// Package posts downloads journal entries through the month-by-month
// export endpoint.
package posts

import (
	"context"
	"fmt"

	"ljexport/lib/archive"
	"ljexport/lib/scrapers/lj/core"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/lj/posts")

type Client struct {
	core *core.Client
}

func NewClient(core *core.Client) *Client {
	return &Client{core: core}
}

// DownloadMonth fetches every entry posted in the given month.
func (c *Client) DownloadMonth(ctx context.Context, year, month int) ([]archive.Post, error) {
	ctx, span := tracer.Start(ctx, "client:DownloadMonth")
	defer span.End()
	span.SetAttributes(
		attribute.Int("year", year),
		attribute.Int("month", month),
	)

	res, err := c.core.PostForm(ctx, "/export_do.bml", map[string]string{
		"what":            "journal",
		"year":            fmt.Sprintf("%d", year),
		"month":           fmt.Sprintf("%02d", month),
		"format":          "xml",
		"header":          "",
		"encid":           "2",
		"field_itemid":    "on",
		"field_eventtime": "on",
		"field_logtime":   "on",
		"field_subject":   "on",
		"field_event":     "on",
		"field_security":  "on",
		"field_allowmask": "on",
		"field_currents":  "on",
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "export request failed")
		return nil, err
	}

	parsed, err := ParsePosts(res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse export response")
		return nil, err
	}
	return parsed, nil
}

// DownloadAll walks the inclusive month range and concatenates the
// results in chronological order. The first failing month aborts the
// walk.
func (c *Client) DownloadAll(ctx context.Context, startYear, startMonth, endYear, endMonth int) ([]archive.Post, error) {
	ctx, span := tracer.Start(ctx, "client:DownloadAll")
	defer span.End()

	var all []archive.Post
	for _, m := range MonthRange(startYear, startMonth, endYear, endMonth) {
		batch, err := c.DownloadMonth(ctx, m.Year, m.Month)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, fmt.Sprintf("failed on %d-%02d", m.Year, m.Month))
			return nil, err
		}
		all = append(all, batch...)
	}
	return all, nil
}
