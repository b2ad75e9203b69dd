package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-poi-engine/internal/overpass"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/registry"
	"github.com/FACorreiaa/go-travel-poi-engine/internal/types"
)

// --- Mocks ---

type MockGazetteer struct {
	mock.Mock
}

func (m *MockGazetteer) Lookup(city, country string) (*types.Place, error) {
	args := m.Called(city, country)
	place, _ := args.Get(0).(*types.Place)
	return place, args.Error(1)
}

func (m *MockGazetteer) Countries() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockGazetteer) Cities(country string) []string {
	args := m.Called(country)
	return args.Get(0).([]string)
}

type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Execute(ctx context.Context, queries []string) (*types.ElementSet, []types.QueryFailure) {
	args := m.Called(ctx, queries)
	set, _ := args.Get(0).(*types.ElementSet)
	failures, _ := args.Get(1).([]types.QueryFailure)
	return set, failures
}

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(g *MockGazetteer, exec *MockExecutor) *ServiceImpl {
	return NewServiceImpl(g, registry.New(), overpass.NewBuilder(0), exec, nil, Limits{
		DefaultRadiusMeters: 20_000,
		MinRadiusMeters:     5_000,
		MaxRadiusMeters:     100_000,
		RecommendationLimit: 5,
	}, discardLogger())
}

func lisbon() *types.Place {
	return &types.Place{Name: "Lisbon", Country: "Portugal", Latitude: 38.7223, Longitude: -9.1393}
}

func elementsWithNodes(names ...string) *types.ElementSet {
	set := &types.ElementSet{}
	for i, name := range names {
		tags := map[string]string{}
		if name != "" {
			tags["name"] = name
		}
		set.Nodes = append(set.Nodes, types.Node{
			ID:   int64(i + 1),
			Lat:  38.7 + float64(i)*0.01,
			Lon:  -9.1,
			Tags: tags,
		})
	}
	return set
}

// --- Search ---

func TestSearchHappyPath(t *testing.T) {
	g := new(MockGazetteer)
	exec := new(MockExecutor)

	g.On("Lookup", "Lisbon", "Portugal").Return(lisbon(), nil)
	exec.On("Execute", mock.Anything, mock.AnythingOfType("[]string")).
		Return(elementsWithNodes("Zeta Clinic", "Alpha Hospital", ""), nil)

	svc := newTestService(g, exec)
	result, err := svc.Search(context.Background(), types.SearchRequest{
		City:     "Lisbon",
		Country:  "Portugal",
		Category: registry.CategoryMedical,
	})
	require.NoError(t, err)

	assert.Equal(t, "Lisbon", result.Place.Name)
	assert.Len(t, result.POIs, 3, "anonymous but located POIs stay in the result set")
	assert.Empty(t, result.Failures)
	assert.False(t, result.Degraded())

	require.Len(t, result.Recommendations, 2, "only named POIs are recommended")
	assert.Equal(t, "Alpha Hospital", result.Recommendations[0].Name)
	assert.Equal(t, "Zeta Clinic", result.Recommendations[1].Name)

	g.AssertExpectations(t)
	exec.AssertExpectations(t)
}

func TestSearchStableIdentity(t *testing.T) {
	g := new(MockGazetteer)
	exec := new(MockExecutor)

	g.On("Lookup", "Lisbon", "").Return(lisbon(), nil)
	exec.On("Execute", mock.Anything, mock.Anything).
		Return(elementsWithNodes("Alpha Hospital"), nil)

	svc := newTestService(g, exec)
	req := types.SearchRequest{City: "Lisbon", Category: registry.CategoryMedical}

	first, err := svc.Search(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.POIs[0].ID, second.POIs[0].ID, "same element yields the same poi_id")
	assert.Equal(t, "node/1", first.POIs[0].ID)
}

func TestSearchMissingPlace(t *testing.T) {
	svc := newTestService(new(MockGazetteer), new(MockExecutor))

	_, err := svc.Search(context.Background(), types.SearchRequest{Category: registry.CategoryHotels})
	assert.True(t, errors.Is(err, types.ErrMissingPlace))
}

func TestSearchUnknownPlace(t *testing.T) {
	g := new(MockGazetteer)
	g.On("Lookup", "Atlantis", "").Return(nil, types.ErrPlaceNotFound)

	svc := newTestService(g, new(MockExecutor))
	_, err := svc.Search(context.Background(), types.SearchRequest{City: "Atlantis", Category: registry.CategoryHotels})
	assert.True(t, errors.Is(err, types.ErrPlaceNotFound))
}

func TestSearchUnknownCategory(t *testing.T) {
	g := new(MockGazetteer)
	g.On("Lookup", "Lisbon", "").Return(lisbon(), nil)

	svc := newTestService(g, new(MockExecutor))
	_, err := svc.Search(context.Background(), types.SearchRequest{City: "Lisbon", Category: "space_tourism"})
	assert.True(t, errors.Is(err, types.ErrInvalidCategory))
}

func TestSearchNegativeRadius(t *testing.T) {
	svc := newTestService(new(MockGazetteer), new(MockExecutor))

	_, err := svc.Search(context.Background(), types.SearchRequest{
		City:         "Lisbon",
		Category:     registry.CategoryHotels,
		RadiusMeters: -1,
	})
	assert.True(t, errors.Is(err, types.ErrInvalidRadius))
}

func TestSearchAllQueriesFailed(t *testing.T) {
	g := new(MockGazetteer)
	exec := new(MockExecutor)

	g.On("Lookup", "Lisbon", "").Return(lisbon(), nil)
	exec.On("Execute", mock.Anything, mock.Anything).
		Return(&types.ElementSet{}, failuresFor(2))

	svc := NewServiceImpl(g, registry.New(), overpass.NewBuilder(0), exec, nil, Limits{RecommendationLimit: 5}, discardLogger())

	_, err := svc.Search(context.Background(), types.SearchRequest{City: "Lisbon", Category: registry.CategoryHotels})
	assert.True(t, errors.Is(err, types.ErrBackendUnavailable))
}

func failuresFor(n int) []types.QueryFailure {
	failures := make([]types.QueryFailure, n)
	for i := range failures {
		failures[i] = types.QueryFailure{Query: "q", Error: "boom"}
	}
	return failures
}

func TestSearchPartialFailureIsDegradedSuccess(t *testing.T) {
	g := new(MockGazetteer)
	exec := new(MockExecutor)

	g.On("Lookup", "Lisbon", "").Return(lisbon(), nil)
	exec.On("Execute", mock.Anything, mock.Anything).
		Return(elementsWithNodes("Alpha Hospital"), failuresFor(1))

	svc := newTestService(g, exec)
	result, err := svc.Search(context.Background(), types.SearchRequest{City: "Lisbon", Category: registry.CategoryMedical})
	require.NoError(t, err, "partial failure is a success with warnings, not an error")

	assert.True(t, result.Degraded())
	assert.Len(t, result.Failures, 1)
	assert.Len(t, result.POIs, 1)
}

func TestSearchRadiusDefaultsAndClamps(t *testing.T) {
	cases := []struct {
		name      string
		requested int
		want      int
	}{
		{"zero uses default", 0, 20_000},
		{"below minimum clamps up", 1_000, 5_000},
		{"in range passes through", 30_000, 30_000},
		{"above maximum clamps down", 500_000, 100_000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(new(MockGazetteer), new(MockExecutor))
			radius, err := svc.effectiveRadius(tc.requested)
			require.NoError(t, err)
			assert.Equal(t, tc.want, radius)
		})
	}
}

func TestSearchOverlappingFiltersListVenueOnce(t *testing.T) {
	// The airlines bundle matches the same carrier through its operator tag
	// and its name tag; the venue must appear once in the results and once
	// in the shortlist.
	body := `{"elements": [
		{"type": "node", "id": 42, "lat": 38.77, "lon": -9.13, "tags": {"name": "Acme Airlines", "operator": "Acme Airlines"}}
	]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	g := new(MockGazetteer)
	g.On("Lookup", "Lisbon", "").Return(lisbon(), nil)

	client := overpass.NewClient(srv.URL, 5*time.Second, 4, 0, nil, discardLogger())
	svc := NewServiceImpl(g, registry.New(), overpass.NewBuilder(0), client, nil, Limits{RecommendationLimit: 5}, discardLogger())

	result, err := svc.Search(context.Background(), types.SearchRequest{City: "Lisbon", Category: registry.CategoryAirlines})
	require.NoError(t, err)

	require.Len(t, result.POIs, 1)
	assert.Equal(t, "node/42", result.POIs[0].ID)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Acme Airlines", result.Recommendations[0].Name)
}

// --- Details ---

func TestDetailsFindsPOI(t *testing.T) {
	g := new(MockGazetteer)
	exec := new(MockExecutor)

	g.On("Lookup", "Lisbon", "").Return(lisbon(), nil)
	exec.On("Execute", mock.Anything, mock.Anything).
		Return(elementsWithNodes("Alpha Hospital", "Beta Clinic"), nil)

	svc := newTestService(g, exec)
	poi, err := svc.Details(context.Background(), types.SearchRequest{City: "Lisbon", Category: registry.CategoryMedical}, "node/2")
	require.NoError(t, err)
	assert.Equal(t, "Beta Clinic", poi.Name)
}

func TestDetailsUnknownPOI(t *testing.T) {
	g := new(MockGazetteer)
	exec := new(MockExecutor)

	g.On("Lookup", "Lisbon", "").Return(lisbon(), nil)
	exec.On("Execute", mock.Anything, mock.Anything).
		Return(elementsWithNodes("Alpha Hospital"), nil)

	svc := newTestService(g, exec)
	_, err := svc.Details(context.Background(), types.SearchRequest{City: "Lisbon", Category: registry.CategoryMedical}, "node/999")
	assert.True(t, errors.Is(err, types.ErrPOINotFound))
}

func TestDetailsMalformedID(t *testing.T) {
	svc := newTestService(new(MockGazetteer), new(MockExecutor))

	for _, id := range []string{"", "node", "building/5", "node/abc"} {
		_, err := svc.Details(context.Background(), types.SearchRequest{City: "Lisbon", Category: registry.CategoryMedical}, id)
		assert.True(t, errors.Is(err, types.ErrPOINotFound), "id %q should be rejected before any lookup", id)
	}
}

func TestParsePOIID(t *testing.T) {
	kind, id, err := ParsePOIID("way/1234567")
	require.NoError(t, err)
	assert.Equal(t, types.KindWay, kind)
	assert.Equal(t, int64(1234567), id)
}

func TestCategories(t *testing.T) {
	svc := newTestService(new(MockGazetteer), new(MockExecutor))

	categories := svc.Categories()
	assert.Contains(t, categories, registry.CategoryMedicalTourism)
	assert.Contains(t, categories, registry.CategoryHotels)
}
