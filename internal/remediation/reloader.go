package remediation

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/lexfrei/gerrit-operator/internal/metrics"
)

// ErrReloadFailed is returned when Gerrit rejects a plugin reload.
var ErrReloadFailed = errors.New("plugin reload failed")

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 512

// Reloader asks a running Gerrit to reload plugins.
type Reloader struct {
	httpClient *http.Client
	metrics    metrics.Collector
	logger     *slog.Logger
}

// NewReloader creates a Reloader whose calls time out after timeout. A nil
// transport uses http.DefaultTransport.
func NewReloader(timeout time.Duration, transport http.RoundTripper, collector metrics.Collector) *Reloader {
	return &Reloader{
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		metrics:    collector,
		logger:     slog.Default().With("component", "plugin-reloader"),
	}
}

// Reload calls POST {baseURL}/plugins/{plugin}~reload once per key. Every
// key is attempted. The returned error joins all failures.
func (r *Reloader) Reload(ctx context.Context, baseURL string, keys []string) error {
	var errs []error

	for _, key := range keys {
		plugin := PluginForKey(key)

		err := r.reloadPlugin(ctx, baseURL, plugin)
		if err != nil {
			r.logger.Error("failed to reload plugin", "plugin", plugin, "error", err)
			errs = append(errs, err)

			continue
		}

		r.logger.Info("reloaded plugin", "plugin", plugin)
	}

	return errors.Join(errs...)
}

func (r *Reloader) reloadPlugin(ctx context.Context, baseURL, plugin string) error {
	endpoint := strings.TrimRight(baseURL, "/") + "/plugins/" + url.PathEscape(plugin) + "~reload"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, http.NoBody)
	if err != nil {
		return errors.Wrapf(err, "failed to build reload request for %s", plugin)
	}

	start := time.Now()

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.metrics.RecordReloadCall(ctx, metrics.ClassifyError(err), time.Since(start))

		return errors.Wrapf(err, "failed to reload plugin %s", plugin)
	}

	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		r.metrics.RecordReloadCall(ctx, metrics.ClassifyStatusCode(resp.StatusCode), time.Since(start))

		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return errors.Wrapf(ErrReloadFailed, "plugin %s: status %d: %s",
			plugin, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	r.metrics.RecordReloadCall(ctx, "success", time.Since(start))

	return nil
}
