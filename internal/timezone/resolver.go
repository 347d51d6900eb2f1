package timezone

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/flighttime-data/internal/common/logger"
	"github.com/flighttime-data/internal/metrics"
)

const httpTimeout = 10 * time.Second

// Resolver maps geographic coordinates and an instant to a UTC offset
// in hours, DST included. Implementations must not retry and must not
// mutate shared state.
type Resolver interface {
	Resolve(ctx context.Context, lat, lon float64, timestamp int64) (float64, error)
}

// LookupError covers every way a lookup can fail to produce a usable
// offset: transport errors, non-200 statuses and unparsable payloads.
type LookupError struct {
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("timezone lookup failed: %v", e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// HTTPResolver queries a timezone-by-coordinate API. The wire format
// is that of the Google Time Zone API: rawOffset and dstOffset fields
// in seconds, either numeric or numeric strings.
type HTTPResolver struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  logger.Logger
}

type lookupResponse struct {
	Status    string      `json:"status"`
	RawOffset json.Number `json:"rawOffset"`
	DstOffset json.Number `json:"dstOffset"`
}

func NewHTTPResolver(baseURL, apiKey string, log logger.Logger) *HTTPResolver {
	return &HTTPResolver{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: httpTimeout,
		},
		logger: log,
	}
}

func (r *HTTPResolver) Resolve(ctx context.Context, lat, lon float64, timestamp int64) (float64, error) {
	start := time.Now()
	offset, err := r.resolve(ctx, lat, lon, timestamp)
	if err != nil {
		metrics.ObserveTimezoneLookup("failure", time.Since(start))
		return 0, &LookupError{Err: err}
	}
	metrics.ObserveTimezoneLookup("success", time.Since(start))
	return offset, nil
}

func (r *HTTPResolver) resolve(ctx context.Context, lat, lon float64, timestamp int64) (float64, error) {
	location := strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)

	params := url.Values{}
	params.Set("location", location)
	params.Set("timestamp", strconv.FormatInt(timestamp, 10))
	params.Set("key", r.apiKey)

	reqURL := r.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	r.logger.Debug("Resolving timezone offset", "location", location, "timestamp", timestamp)

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decoding response: %w", err)
	}

	if result.Status != "" && result.Status != "OK" {
		return 0, fmt.Errorf("API returned status %q", result.Status)
	}

	rawOffsetSeconds, err := result.RawOffset.Float64()
	if err != nil {
		return 0, fmt.Errorf("parsing rawOffset %q: %w", result.RawOffset, err)
	}

	dstOffsetSeconds, err := result.DstOffset.Float64()
	if err != nil {
		return 0, fmt.Errorf("parsing dstOffset %q: %w", result.DstOffset, err)
	}

	offset := (rawOffsetSeconds + dstOffsetSeconds) / 3600

	r.logger.Debug("Resolved timezone offset",
		"location", location,
		"timestamp", timestamp,
		"offset_hours", offset)

	return offset, nil
}
