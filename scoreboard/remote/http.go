package remote

import (
	"fmt"
	"net/http"
	nu "net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	remoteRequestsHistogramMetric = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arcade",
			Subsystem: "scoreboard",
			Name:      "remote_requests_duration",
			Help:      "Calls to the remote scoreboard document.",
		},
		[]string{"method", "code"},
	)
)

func init() { prometheus.MustRegister(remoteRequestsHistogramMetric) }

var createClient = getNetClient

type httpClient interface {
	Do(*http.Request) (*http.Response, error)
}

func getNetClient(timeout time.Duration) httpClient {
	return &http.Client{Timeout: timeout}
}

func isValidURL(url string) bool {
	if len(url) == 0 {
		return false
	}
	parsed, err := nu.Parse(url)
	if err != nil {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

func statusClass(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "5xx"
	case statusCode >= 400:
		return "4xx"
	case statusCode >= 300:
		return "3xx"
	case statusCode >= 200:
		return "2xx"
	default:
		return "err"
	}
}

func instrumentRemoteCall(method string, statusCode int, latency time.Duration) {
	remoteRequestsHistogramMetric.WithLabelValues(method, statusClass(statusCode)).Observe(
		latency.Seconds(),
	)
}

type statusError struct {
	method string
	code   int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("remote scoreboard %s returned %d", e.method, e.code)
}
