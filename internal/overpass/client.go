package overpass

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-travel-poi-engine/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/types"
)

// DefaultConcurrency caps the fan-out against the public Overpass endpoint.
// Typical category bundles carry 5-12 filters.
const DefaultConcurrency = 6

// Client executes Overpass QL queries against a configured interpreter
// endpoint. It is an explicitly constructed, injected dependency with
// process-wide lifetime, safe for concurrent use.
type Client struct {
	logger      *slog.Logger
	httpClient  *http.Client
	endpoint    string
	concurrency int
	cache       *gocache.Cache
	metrics     *metrics.AppMetrics
}

// NewClient builds a client. A cacheTTL of zero or less disables the
// in-memory response cache. appMetrics may be nil (tests).
func NewClient(endpoint string, timeout time.Duration, concurrency int, cacheTTL time.Duration, appMetrics *metrics.AppMetrics, logger *slog.Logger) *Client {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	var queryCache *gocache.Cache
	if cacheTTL > 0 {
		queryCache = gocache.New(cacheTTL, 2*cacheTTL)
	}
	return &Client{
		logger:      logger,
		httpClient:  &http.Client{Timeout: timeout},
		endpoint:    endpoint,
		concurrency: concurrency,
		cache:       queryCache,
		metrics:     appMetrics,
	}
}

// Execute runs each query independently with a bounded fan-out and joins all
// of them. Elements returned by more than one sub-query (overlapping filters)
// are merged once, keyed by kind and OSM id.
// A failure on one query is recorded and does not abort the batch;
// the aggregated elements of the successful queries are returned together
// with the per-query failures. Context cancellation stops waiting on
// outstanding queries, marking them as failures.
//
// The caller is responsible for treating "every query failed" as a backend
// outage rather than an empty result.
func (c *Client) Execute(ctx context.Context, queries []string) (*types.ElementSet, []types.QueryFailure) {
	aggregate := &types.ElementSet{}
	if len(queries) == 0 {
		return aggregate, nil
	}

	// Per-task slots, merged after the join. No shared mutable state
	// between tasks.
	results := make([]*types.ElementSet, len(queries))
	errs := make([]error, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			set, err := c.runQuery(ctx, query)
			results[i], errs[i] = set, err
			// Failures are recorded, never propagated: propagating would
			// cancel the sibling queries and lose the partial results.
			return nil
		})
	}
	_ = g.Wait()

	var failures []types.QueryFailure
	seen := make(map[string]struct{})
	for i, query := range queries {
		if errs[i] != nil {
			c.logger.Warn("overpass query failed",
				slog.String("query", firstLine(query)),
				slog.Any("error", errs[i]),
			)
			failures = append(failures, types.QueryFailure{Query: query, Error: errs[i].Error()})
			continue
		}
		aggregate.MergeDistinct(results[i], seen)
	}
	return aggregate, failures
}

func (c *Client) runQuery(ctx context.Context, query string) (*types.ElementSet, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(query); ok {
			return cached.(*types.ElementSet), nil
		}
	}

	start := time.Now()
	set, err := c.fetch(ctx, query)
	if c.metrics != nil {
		c.metrics.OverpassQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
		if err != nil {
			c.metrics.OverpassQueryErrorsTotal.Add(ctx, 1)
		}
	}
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.SetDefault(query, set)
	}
	return set, nil
}

func (c *Client) fetch(ctx context.Context, query string) (*types.ElementSet, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a little of the body for the failure record; Overpass puts
		// rate-limit details there.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("overpass returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read overpass response: %w", err)
	}
	return decodeElements(body)
}

func firstLine(query string) string {
	if i := strings.IndexByte(query, '\n'); i >= 0 {
		return query[:i]
	}
	return query
}
