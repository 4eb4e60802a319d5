// Package batch drives a whole extraction run: page after page, fetch it,
// extract it, download the pictures and count what happened.
package batch

import (
	"context"
	"fmt"

	"buildcrafter/internal/assert"
	"buildcrafter/internal/items"
	"buildcrafter/internal/source"
	"buildcrafter/internal/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	report_page_skip    = "page.skip"
	report_page_fetch   = "page.fetch"
	report_page_extract = "page.extract"
	report_page_items   = "page.items"
)

var tracer = otel.Tracer("buildcrafter.internal.batch")

// Extractor turns the markup of one page into items.
type Extractor interface {
	ExtractHTML(body []byte, pagePath string) ([]items.Item, error)
}

type Config struct {
	// PathPrefix is the prefix every page path must have, "/wiki/".
	PathPrefix string
}

type Driver struct {
	cfg       Config
	pages     source.PageSource
	images    source.ImageDownloader
	extractor Extractor
	tel       telemetry.API
	counter   metric.Int64Counter
}

// NewDriver creates a driver, images may be nil to skip picture downloads.
func NewDriver(
	cfg Config,
	pages source.PageSource,
	images source.ImageDownloader,
	extractor Extractor,
	tel telemetry.API,
) Driver {
	assert.NotEmptyStr(cfg.PathPrefix)
	assert.NotNil(pages)
	assert.NotNil(extractor)
	assert.NotNil(tel)

	counter, err := otel.Meter("buildcrafter.internal.batch").Int64Counter(
		"batch.pages",
		metric.WithDescription("pages handled by a batch run, by outcome"),
	)
	if err != nil {
		tel.ReportWarning("batch.meter", err)
	}

	return Driver{
		cfg:       cfg,
		pages:     pages,
		images:    images,
		extractor: extractor,
		tel:       telemetry.NewScopedAPI("batch", tel),
		counter:   counter,
	}
}

type Result struct {
	Items   []items.Item
	Summary Summary
}

func (d Driver) count(ctx context.Context, outcome string) {
	if d.counter == nil {
		return
	}
	d.counter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// Run handles paths one at a time. A page that cannot be fetched or parsed
// contributes no items but does not stop the run. Cancelling ctx stops the
// run between two pages, the items gathered so far are returned together
// with the context error.
func (d Driver) Run(ctx context.Context, paths []string) (Result, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	result := Result{Items: []items.Item{}}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		err := source.ValidatePath(path, d.cfg.PathPrefix)
		if err != nil {
			d.tel.ReportWarning(report_page_skip, err)
			result.Summary.PagesSkipped++
			d.count(ctx, "skipped")
			continue
		}

		result.Summary.PagesProcessed++
		pageItems, err := d.runPage(ctx, path)
		if err != nil && ctx.Err() != nil {
			// interrupted mid page, the page is lost
			result.Summary.PagesProcessed--
			return result, ctx.Err()
		}
		if err != nil {
			result.Summary.PagesFailed++
			d.count(ctx, "failed")
			continue
		}
		d.count(ctx, "ok")

		for _, item := range pageItems {
			result.Summary.add(item)
		}
		result.Items = append(result.Items, pageItems...)
	}

	span.SetAttributes(
		attribute.Int("pages", result.Summary.PagesProcessed),
		attribute.Int("items", result.Summary.ItemsExtracted),
	)
	return result, nil
}

func (d Driver) runPage(ctx context.Context, path string) ([]items.Item, error) {
	ctx, span := tracer.Start(ctx, "runPage")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	body, err := d.pages.FetchPage(ctx, path)
	if err != nil {
		d.tel.ReportWarning(report_page_fetch, err, path)
		return nil, err
	}

	pageItems, err := d.extractor.ExtractHTML(body, path)
	if err != nil {
		d.tel.ReportWarning(report_page_extract, err, path)
		return nil, err
	}

	if d.images != nil {
		for i := range pageItems {
			d.downloadImage(ctx, &pageItems[i])
		}
	}

	d.tel.ReportDebug(report_page_items, "path", path, "count", len(pageItems))
	return pageItems, nil
}

func (d Driver) downloadImage(ctx context.Context, item *items.Item) {
	if item.ImageUrl == nil {
		return
	}
	target, ok := d.images.Download(ctx, *item.ImageUrl, item.Id)
	if ok {
		item.LocalImagePath = items.Ptr(target)
	}
}

// SerializeError is returned when the items of a run cannot be written out.
type SerializeError struct {
	Err error
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("serialize: %s", e.Err.Error())
}

func (e *SerializeError) Unwrap() error {
	return e.Err
}

func (e *SerializeError) Stage() string {
	return "serialize"
}
