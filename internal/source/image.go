package source

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"buildcrafter/internal/assert"
	"buildcrafter/internal/telemetry"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
)

const (
	report_image_fetch = "image.fetch"
	report_image_write = "image.write"
)

// ImageDownloader stores the picture of an item and returns where it went.
// It never fails loudly, a missing picture only means no local path.
type ImageDownloader interface {
	Download(ctx context.Context, src, slug string) (string, bool)
}

var revisionRegex = regexp.MustCompile(`/revision/latest.*$`)

// DirectImageURL strips the "/revision/latest..." suffix fandom's image CDN
// puts behind asset urls, which leaves the url of the file itself. Urls on
// other hosts and urls whose last segment is not a file name are returned
// unchanged.
func DirectImageURL(src string) string {
	u, err := url.Parse(src)
	if err != nil {
		return src
	}
	if !strings.Contains(u.Hostname(), "nocookie.net") {
		return src
	}

	stripped := revisionRegex.ReplaceAllString(u.Path, "")
	if !strings.Contains(path.Base(stripped), ".") {
		return src
	}
	u.Path = stripped
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

type ImageFetcher struct {
	http *resty.Client
	dir  string
	tel  telemetry.API
}

func NewImageFetcher(cfg HTTPConfig, dir string, tel telemetry.API) ImageFetcher {
	assert.NotEmptyStr(dir)
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("image_fetcher", tel)
	cfg.BaseUrl = ""
	return ImageFetcher{
		http: newRestyClient(cfg, tel),
		dir:  dir,
		tel:  tel,
	}
}

func (f ImageFetcher) fetch(ctx context.Context, src string) ([]byte, error) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(src)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("unexpected status %s", res.Status())
	}

	mtype := mimetype.Detect(res.Body())
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("unexpected content %s", mtype.String())
	}
	return res.Body(), nil
}

// Download tries the direct asset url first and the original url second,
// writing the first image it gets to <dir>/<slug>.png.
func (f ImageFetcher) Download(ctx context.Context, src, slug string) (string, bool) {
	candidates := []string{DirectImageURL(src)}
	if candidates[0] != src {
		candidates = append(candidates, src)
	}

	var body []byte
	for _, candidate := range candidates {
		buff, err := f.fetch(ctx, candidate)
		if err != nil {
			f.tel.ReportWarning(report_image_fetch, err, candidate)
			continue
		}
		body = buff
		break
	}
	if body == nil {
		return "", false
	}

	err := os.MkdirAll(f.dir, 0755)
	if err != nil {
		f.tel.ReportWarning(report_image_write, err, f.dir)
		return "", false
	}
	target := filepath.Join(f.dir, slug+".png")
	err = os.WriteFile(target, body, 0644)
	if err != nil {
		f.tel.ReportWarning(report_image_write, err, target)
		return "", false
	}
	return target, true
}
