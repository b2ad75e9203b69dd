package search

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-poi-engine/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/gazetteer"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/overpass"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/registry"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// QueryExecutor is the slice of the Overpass client the service depends on.
type QueryExecutor interface {
	Execute(ctx context.Context, queries []string) (*types.ElementSet, []types.QueryFailure)
}

// Service defines the business logic contract for category searches.
type Service interface {
	Search(ctx context.Context, req types.SearchRequest) (*types.SearchResult, error)
	Details(ctx context.Context, req types.SearchRequest, poiID string) (*types.POI, error)
	Categories() []string
}

// Limits carries the radius and shortlist bounds for the engine.
type Limits struct {
	DefaultRadiusMeters int
	MinRadiusMeters     int
	MaxRadiusMeters     int
	RecommendationLimit int
}

type ServiceImpl struct {
	logger    *slog.Logger
	gazetteer gazetteer.Gazetteer
	registry  *registry.Registry
	builder   *overpass.Builder
	executor  QueryExecutor
	metrics   *metrics.AppMetrics
	limits    Limits
}

func NewServiceImpl(g gazetteer.Gazetteer, r *registry.Registry, builder *overpass.Builder, executor QueryExecutor, appMetrics *metrics.AppMetrics, limits Limits, logger *slog.Logger) *ServiceImpl {
	if limits.DefaultRadiusMeters <= 0 {
		limits.DefaultRadiusMeters = 20_000
	}
	if limits.MinRadiusMeters <= 0 {
		limits.MinRadiusMeters = 5_000
	}
	if limits.MaxRadiusMeters <= 0 {
		limits.MaxRadiusMeters = 100_000
	}
	return &ServiceImpl{
		logger:    logger,
		gazetteer: g,
		registry:  r,
		builder:   builder,
		executor:  executor,
		metrics:   appMetrics,
		limits:    limits,
	}
}

// Search runs one category search end to end: gazetteer lookup, category to
// query translation, fan-out execution, normalization, geometry resolution,
// validity filtering and ranking. The result set lives only for this request.
func (s *ServiceImpl) Search(ctx context.Context, req types.SearchRequest) (*types.SearchResult, error) {
	ctx, span := otel.Tracer("SearchService").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("search.category", req.Category),
		attribute.String("search.city", req.City),
		attribute.String("search.country", req.Country),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.SearchRequestsTotal.Add(ctx, 1)
			s.metrics.SearchDurationSeconds.Record(ctx, time.Since(start).Seconds())
		}
	}()

	l := s.logger.With(slog.String("category", req.Category), slog.String("city", req.City), slog.String("country", req.Country))

	if req.City == "" && req.Country == "" {
		return nil, types.ErrMissingPlace
	}
	radius, err := s.effectiveRadius(req.RadiusMeters)
	if err != nil {
		return nil, err
	}

	place, err := s.gazetteer.Lookup(req.City, req.Country)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	filters, err := s.registry.Filters(req.Category)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	queries, err := s.builder.Build(place.Anchor(), radius, filters)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("search.queries", len(queries)), attribute.Int("search.radius_m", radius))

	elements, failures := s.executor.Execute(ctx, queries)
	if len(queries) > 0 && len(failures) == len(queries) {
		// Every sub-query failed: the caller must be able to tell "could
		// not search" apart from "nothing found".
		err := fmt.Errorf("%w: all %d queries failed", types.ErrBackendUnavailable, len(queries))
		span.SetStatus(codes.Error, "backend unavailable")
		span.RecordError(err)
		return nil, err
	}
	if len(failures) > 0 {
		l.WarnContext(ctx, "search degraded to partial results",
			slog.Int("failed_queries", len(failures)),
			slog.Int("total_queries", len(queries)),
		)
	}

	pois := filterValid(normalizeAndResolve(elements, req.Category))
	recommendations := rank(pois, req.Category, s.limits.RecommendationLimit)

	l.InfoContext(ctx, "search completed",
		slog.Int("elements", elements.Len()),
		slog.Int("valid_pois", len(pois)),
		slog.Int("failures", len(failures)),
	)
	span.SetAttributes(attribute.Int("search.pois", len(pois)))
	span.SetStatus(codes.Ok, "search completed")

	return &types.SearchResult{
		Place:           place,
		Category:        req.Category,
		POIs:            pois,
		Recommendations: recommendations,
		Failures:        failures,
	}, nil
}

// Details re-queries the category around the same anchor and returns the POI
// matching the "<kind>/<osmId>" identity. Overpass ids are stable OSM
// identifiers, so a POI seen in a search stays addressable while the data
// epoch holds.
func (s *ServiceImpl) Details(ctx context.Context, req types.SearchRequest, poiID string) (*types.POI, error) {
	ctx, span := otel.Tracer("SearchService").Start(ctx, "Details", trace.WithAttributes(
		attribute.String("poi.id", poiID),
	))
	defer span.End()

	if _, _, err := ParsePOIID(poiID); err != nil {
		return nil, err
	}

	result, err := s.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	for i := range result.POIs {
		if result.POIs[i].ID == poiID {
			return &result.POIs[i], nil
		}
	}
	span.SetStatus(codes.Error, "poi not found")
	return nil, types.ErrPOINotFound
}

// Categories lists the category names the registry knows about.
func (s *ServiceImpl) Categories() []string {
	return s.registry.Categories()
}

// effectiveRadius applies the default and clamps an explicit radius into the
// supported range. Zero means "not supplied"; negative values are rejected.
func (s *ServiceImpl) effectiveRadius(requested int) (int, error) {
	if requested == 0 {
		return s.limits.DefaultRadiusMeters, nil
	}
	if requested < 0 {
		return 0, fmt.Errorf("%w: %d", types.ErrInvalidRadius, requested)
	}
	if requested < s.limits.MinRadiusMeters {
		return s.limits.MinRadiusMeters, nil
	}
	if requested > s.limits.MaxRadiusMeters {
		return s.limits.MaxRadiusMeters, nil
	}
	return requested, nil
}

// ParsePOIID splits a "<kind>/<osmId>" identity into its parts.
func ParsePOIID(poiID string) (types.ElementKind, int64, error) {
	kindStr, idStr, ok := strings.Cut(poiID, "/")
	if !ok {
		return "", 0, fmt.Errorf("%w: malformed id %q", types.ErrPOINotFound, poiID)
	}
	kind := types.ElementKind(kindStr)
	switch kind {
	case types.KindNode, types.KindWay, types.KindRelation:
	default:
		return "", 0, fmt.Errorf("%w: unknown element kind %q", types.ErrPOINotFound, kindStr)
	}
	osmID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: malformed id %q", types.ErrPOINotFound, poiID)
	}
	return kind, osmID, nil
}
