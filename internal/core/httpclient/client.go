package httpclient

import (
	"net/http"
	"strconv"
	"time"

	"shipment-sync/internal/core/logger"
	"shipment-sync/internal/core/metrics"
	"shipment-sync/internal/core/proxy"

	"go.uber.org/zap"
)

// LoggingRoundTripper captures request details for debugging and latency metrics.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	logger.Get().Debug("HTTP Request Started",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		metrics.UpstreamDuration.WithLabelValues(req.URL.Host, "error").Observe(duration.Seconds())
		logger.Get().Error("HTTP Request Failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.UpstreamDuration.WithLabelValues(req.URL.Host, strconv.Itoa(resp.StatusCode)).Observe(duration.Seconds())
	logger.Get().Debug("HTTP Request Completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// NewClient returns an http.Client with logging middleware, routed through
// the given proxy when one is configured.
func NewClient(timeout time.Duration, px proxy.Settings) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	proxyFunc, err := px.ProxyFunc()
	if err != nil {
		logger.Get().Warn("Ignoring invalid proxy settings", zap.Error(err))
	} else {
		transport.Proxy = proxyFunc
	}

	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: transport,
		},
		Timeout: timeout,
	}
}
