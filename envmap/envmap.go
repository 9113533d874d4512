// Package envmap retrieves HDR environment maps used by the renderer's
// fixture scenes. It is an external collaborator of the generators: it
// returns no data to them and is never required by the table or mesh
// pipelines.
package envmap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/assetgen/errors"
	"github.com/wippyai/assetgen/internal/fsutil"
)

const (
	DefaultAPIBase    = "https://api.polyhaven.com"
	DefaultResolution = "1k"
	userAgent         = "assetgen-env-downloader"
)

// Fetcher writes the named resource verbatim to dest.
type Fetcher interface {
	Fetch(ctx context.Context, name, dest string) error
}

// Map pairs an asset name with the file it is stored as.
type Map struct {
	Name     string
	Filename string
}

// DefaultMaps are the environment maps the fixture scenes reference.
var DefaultMaps = []Map{
	{Name: "studio_small_01", Filename: "studio_small_01_1k.hdr"},
	{Name: "kloofendal_overcast", Filename: "kloofendal_overcast_1k.hdr"},
}

// HTTPFetcher resolves an asset through the Poly Haven files API and
// downloads its HDR file.
type HTTPFetcher struct {
	client     *http.Client
	logger     *zap.Logger
	apiBase    string
	resolution string
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithClient sets the HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *HTTPFetcher) { f.client = c }
}

// WithAPIBase overrides the files API root.
func WithAPIBase(base string) Option {
	return func(f *HTTPFetcher) { f.apiBase = base }
}

// WithResolution selects the HDR resolution key ("1k", "2k", ...).
func WithResolution(res string) Option {
	return func(f *HTTPFetcher) { f.resolution = res }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *HTTPFetcher) { f.logger = l }
}

// NewHTTPFetcher creates a fetcher with a 60s client timeout.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:     &http.Client{Timeout: 60 * time.Second},
		logger:     zap.NewNop(),
		apiBase:    DefaultAPIBase,
		resolution: DefaultResolution,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// filesInfo is the subset of the files API response we read:
// {"hdri": {"1k": {"hdr": {"url": "..."}}}}
type filesInfo struct {
	HDRI map[string]map[string]struct {
		URL string `json:"url"`
	} `json:"hdri"`
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, name, dest string) error {
	infoURL := f.apiBase + "/files/" + url.PathEscape(name)

	body, err := f.get(ctx, infoURL)
	if err != nil {
		return err
	}
	var info filesInfo
	decodeErr := json.NewDecoder(body).Decode(&info)
	_ = body.Close()
	if decodeErr != nil {
		return errors.Wrap(errors.PhaseFetch, errors.KindInvalidData, decodeErr, "decode files info for "+name)
	}

	fileURL := info.HDRI[f.resolution]["hdr"].URL
	if fileURL == "" {
		return errors.NotFound(errors.PhaseFetch, fmt.Sprintf("%s HDR URL for", f.resolution), name)
	}

	f.logger.Info("downloading environment map",
		zap.String("asset", name),
		zap.String("url", fileURL),
		zap.String("dest", dest))

	data, err := f.get(ctx, fileURL)
	if err != nil {
		return err
	}
	defer data.Close()

	if err := fsutil.WriteFrom(dest, 0o644, func(w io.Writer) error {
		_, err := io.Copy(w, data)
		return err
	}); err != nil {
		return errors.IO("write", dest, err)
	}
	return nil
}

func (f *HTTPFetcher) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.IO("fetch", target, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.IO("fetch", target, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, errors.IO("fetch", target, fmt.Errorf("status %s", resp.Status))
	}
	return resp.Body, nil
}
