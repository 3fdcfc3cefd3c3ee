package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/afero"
)

// RemoteConfig configures fetching a catalog over HTTP.
type RemoteConfig struct {
	URL            string
	CacheDirectory string
	Timeout        time.Duration
	RetryAttempts  uint
	RetryDelay     time.Duration
}

// RemoteLoader fetches a catalog over HTTP and keeps the last good copy on disk.
type RemoteLoader struct {
	fs     afero.Fs
	client *resty.Client
	config RemoteConfig
}

func NewRemoteLoader(fs afero.Fs, config RemoteConfig) *RemoteLoader {
	client := resty.New()
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = 200 * time.Millisecond
	}
	return &RemoteLoader{
		fs:     fs,
		client: client,
		config: config,
	}
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status code: %d, body: %s", e.code, e.body)
}

func isRetryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= http.StatusInternalServerError || se.code == http.StatusTooManyRequests
	}
	return true
}

// Load fetches and normalizes the catalog. When the source cannot be reached,
// the cached copy from the last successful fetch is used instead.
func (l *RemoteLoader) Load(ctx context.Context) (*Catalog, error) {
	format := l.format()

	body, fetchErr := l.fetch(ctx)
	if fetchErr == nil {
		raws, err := DecodeRawWords(body, format)
		if err != nil {
			return nil, fmt.Errorf("DecodeRawWords(%s) > %w", l.config.URL, err)
		}
		if err := l.writeCache(body); err != nil {
			slog.Default().Warn("failed to cache a catalog",
				slog.String("url", l.config.URL),
				slog.Any("error", err),
			)
		}
		return NewCatalogFromRaw(raws), nil
	}

	cached, err := afero.ReadFile(l.fs, l.cachePath())
	if err != nil {
		return nil, fmt.Errorf("fetch %s > %w", l.config.URL, fetchErr)
	}
	slog.Default().Warn("use a cached catalog",
		slog.String("url", l.config.URL),
		slog.String("cache", l.cachePath()),
		slog.Any("error", fetchErr),
	)
	raws, err := DecodeRawWords(cached, format)
	if err != nil {
		return nil, fmt.Errorf("DecodeRawWords(%s) > %w", l.cachePath(), err)
	}
	return NewCatalogFromRaw(raws), nil
}

func (l *RemoteLoader) fetch(ctx context.Context) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			res, err := l.client.R().
				SetContext(ctx).
				Get(l.config.URL)
			if err != nil {
				return fmt.Errorf("client.R().Get > %w", err)
			}
			if res.StatusCode() != http.StatusOK {
				err := &statusError{code: res.StatusCode(), body: string(res.Body())}
				if !isRetryable(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			body = res.Body()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(l.config.RetryAttempts+1),
		retry.Delay(l.config.RetryDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (l *RemoteLoader) format() Format {
	u, err := url.Parse(l.config.URL)
	if err != nil {
		return FormatJSON
	}
	return FormatFromPath(u.Path)
}

func (l *RemoteLoader) cachePath() string {
	name := "catalog.json"
	if l.format() == FormatYAML {
		name = "catalog.yml"
	}
	return filepath.Join(l.config.CacheDirectory, name)
}

func (l *RemoteLoader) writeCache(body []byte) error {
	if err := l.fs.MkdirAll(l.config.CacheDirectory, 0o755); err != nil {
		return fmt.Errorf("fs.MkdirAll(%s) > %w", l.config.CacheDirectory, err)
	}
	if err := afero.WriteFile(l.fs, l.cachePath(), body, 0o644); err != nil {
		return fmt.Errorf("afero.WriteFile(%s) > %w", l.cachePath(), err)
	}
	return nil
}
