package source

import (
	"context"
	"fmt"
	"time"

	"buildcrafter/internal/assert"
	"buildcrafter/internal/telemetry"
	"buildcrafter/lib/restyutil"
	libtelemetry "buildcrafter/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("buildcrafter.internal.source")

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type HTTPConfig struct {
	BaseUrl   string
	UserAgent string
	Timeout   time.Duration
	// Delay is the minimum pause between two requests, zero means no limit.
	Delay            time.Duration
	CloudflareBypass bool
	// Dump receives every response when set.
	Dump *restyutil.Dump
}

// limiterFor allows one request per delay with no bursts.
func limiterFor(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// newRestyClient builds the client shared by page and image fetching.
func newRestyClient(cfg HTTPConfig, tel telemetry.API) *resty.Client {
	client := resty.New()
	if cfg.BaseUrl != "" {
		client.SetBaseURL(cfg.BaseUrl)
	}
	if cfg.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	client.SetHeader("user-agent", userAgent)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client.SetTimeout(timeout)

	limiter := limiterFor(cfg.Delay)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(client, tel)
	libtelemetry.TraceResty(client, "buildcrafter.internal.source/http")
	cfg.Dump.Client(client)
	return client
}

// HTTPSource fetches pages from the live wiki.
type HTTPSource struct {
	http *resty.Client
	tel  telemetry.API
}

func NewHTTPSource(cfg HTTPConfig, tel telemetry.API) HTTPSource {
	assert.NotEmptyStr(cfg.BaseUrl)
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("http_source", tel)
	return HTTPSource{
		http: newRestyClient(cfg, tel),
		tel:  tel,
	}
}

func (s HTTPSource) FetchPage(ctx context.Context, path string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "FetchPage")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	res, err := s.http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	if res.IsError() {
		err = fmt.Errorf("fetch %s: unexpected status %s", path, res.Status())
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("bytes", len(res.Body())))
	return res.Body(), nil
}
