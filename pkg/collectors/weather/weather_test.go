package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/cache"
)

type fakeGeo struct {
	loc bridge.Location
	err error
}

func (f *fakeGeo) Location(context.Context) (bridge.Location, error) {
	return f.loc, f.err
}

func ptr(v float64) *float64 { return &v }

func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func jsonServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResolveBackendFirst(t *testing.T) {
	geo := &fakeGeo{loc: bridge.Location{
		Latitude: ptr(44.26), Longitude: ptr(-72.58), DisplayName: "Montpelier",
	}}
	// Providers would fail if consulted; the backend must short-circuit.
	bad := failingServer(t)
	r := &Resolver{Backend: geo, IPAPICoURL: bad.URL, IPAPIURL: bad.URL}

	loc := r.Resolve(context.Background(), "Fallbacktown")
	if loc.DisplayName != "Montpelier" || !loc.HasCoordinates() {
		t.Errorf("Resolve = %+v, want backend location", loc)
	}
}

func TestResolveFallsThroughProviders(t *testing.T) {
	geo := &fakeGeo{err: errors.New("bridge down")}
	bad := failingServer(t)
	good := jsonServer(t, `{"status":"success","lat":51.5,"lon":-0.12,"city":"London"}`)
	r := &Resolver{Backend: geo, IPAPICoURL: bad.URL, IPAPIURL: good.URL}

	loc := r.Resolve(context.Background(), "Fallbacktown")
	if loc.DisplayName != "London" {
		t.Errorf("DisplayName = %q, want London", loc.DisplayName)
	}
	if !loc.HasCoordinates() || *loc.Latitude != 51.5 {
		t.Errorf("coordinates = %+v", loc)
	}
}

func TestResolveAllFail(t *testing.T) {
	geo := &fakeGeo{err: errors.New("bridge down")}
	bad := failingServer(t)
	r := &Resolver{Backend: geo, IPAPICoURL: bad.URL, IPAPIURL: bad.URL}

	loc := r.Resolve(context.Background(), "Fallbacktown")
	if loc.DisplayName != "Fallbacktown" {
		t.Errorf("DisplayName = %q, want Fallbacktown", loc.DisplayName)
	}
	if loc.HasCoordinates() {
		t.Error("failed chain must not carry coordinates")
	}
}

func TestResolveIgnoresPartialProvider(t *testing.T) {
	// ipapi.co replying without coordinates must not win.
	partial := jsonServer(t, `{"city":"Nowhere"}`)
	good := jsonServer(t, `{"status":"success","lat":35.68,"lon":139.69,"city":"Tokyo"}`)
	r := &Resolver{IPAPICoURL: partial.URL, IPAPIURL: good.URL}

	loc := r.Resolve(context.Background(), "Fallbacktown")
	if loc.DisplayName != "Tokyo" {
		t.Errorf("DisplayName = %q, want Tokyo", loc.DisplayName)
	}
}

func TestCollectFetchesConditions(t *testing.T) {
	forecast := jsonServer(t, `{"current_weather":{"temperature":18.4,"windspeed":7.2,"weathercode":61}}`)
	geo := &fakeGeo{loc: bridge.Location{
		Latitude: ptr(48.85), Longitude: ptr(2.35), DisplayName: "Paris",
	}}
	c := New(Config{
		Resolver:    &Resolver{Backend: geo},
		ForecastURL: forecast.URL,
	})

	got, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	rep := got.(Report)
	if !rep.HasConditions {
		t.Fatal("expected conditions")
	}
	if rep.Temperature != 18.4 {
		t.Errorf("Temperature = %v, want 18.4", rep.Temperature)
	}
	if rep.Condition != "Rain" || rep.Icon != "weather-rain" {
		t.Errorf("Condition = %q icon %q", rep.Condition, rep.Icon)
	}
	if rep.Location.DisplayName != "Paris" {
		t.Errorf("Location = %+v", rep.Location)
	}
}

func TestCollectNameOnlyLocation(t *testing.T) {
	bad := failingServer(t)
	c := New(Config{
		Resolver:        &Resolver{IPAPICoURL: bad.URL, IPAPIURL: bad.URL},
		DefaultLocation: "Homebase",
		ForecastURL:     bad.URL,
	})

	got, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	rep := got.(Report)
	if rep.HasConditions {
		t.Error("name-only location must not report conditions")
	}
	if rep.Location.DisplayName != "Homebase" {
		t.Errorf("DisplayName = %q, want Homebase", rep.Location.DisplayName)
	}
	if !c.Healthy() {
		t.Error("name-only resolution still counts as healthy")
	}
}

func TestLocationResolvedOnce(t *testing.T) {
	calls := 0
	geoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Write([]byte(`{"latitude":40.71,"longitude":-74.0,"city":"New York"}`))
	}))
	t.Cleanup(geoSrv.Close)
	forecast := jsonServer(t, `{"current_weather":{"temperature":3.0,"windspeed":1.0,"weathercode":0}}`)

	bad := failingServer(t)
	c := New(Config{
		Resolver:    &Resolver{IPAPICoURL: geoSrv.URL, IPAPIURL: bad.URL},
		ForecastURL: forecast.URL,
	})

	for i := 0; i < 3; i++ {
		if _, err := c.Collect(context.Background()); err != nil {
			t.Fatalf("Collect %d: %v", i, err)
		}
	}
	if calls != 1 {
		t.Errorf("location resolved %d times, want 1", calls)
	}

	c.InvalidateLocation()
	if _, err := c.Collect(context.Background()); err != nil {
		t.Fatalf("Collect after invalidate: %v", err)
	}
	if calls != 2 {
		t.Errorf("location resolved %d times after invalidate, want 2", calls)
	}
}

func TestCollectServesStaleReportOnFetchFailure(t *testing.T) {
	store, err := cache.NewStore(cache.StoreConfig{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	prev := Report{
		Location:      bridge.Location{DisplayName: "Oslo"},
		Temperature:   -4.0,
		Condition:     "Snow",
		HasConditions: true,
	}
	ttl := cache.TTL{StaleAfter: time.Nanosecond, ExpireAfter: time.Hour}
	if err := cache.PutTypedWithTTL(store, cacheKey, prev, ttl); err != nil {
		t.Fatalf("PutTypedWithTTL: %v", err)
	}
	time.Sleep(time.Millisecond) // let the entry cross its stale horizon

	bad := failingServer(t)
	geo := &fakeGeo{loc: bridge.Location{
		Latitude: ptr(59.91), Longitude: ptr(10.75), DisplayName: "Oslo",
	}}
	c := New(Config{
		Resolver:    &Resolver{Backend: geo},
		Store:       store,
		ForecastURL: bad.URL,
	})

	got, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	rep := got.(Report)
	if rep.Temperature != -4.0 || rep.Condition != "Snow" {
		t.Errorf("fallback report = %+v, want the cached reading", rep)
	}
	if c.Healthy() {
		t.Error("collector must report unhealthy after serving a stale fallback")
	}
}

func TestCollectFreshCacheShortCircuits(t *testing.T) {
	store, err := cache.NewStore(cache.StoreConfig{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	cached := Report{
		Location:      bridge.Location{DisplayName: "Bergen"},
		Temperature:   9.5,
		HasConditions: true,
	}
	ttl := cache.TTL{StaleAfter: time.Hour, ExpireAfter: 2 * time.Hour}
	if err := cache.PutTypedWithTTL(store, cacheKey, cached, ttl); err != nil {
		t.Fatalf("PutTypedWithTTL: %v", err)
	}

	// Any network touch would fail; the fresh entry must short-circuit.
	bad := failingServer(t)
	c := New(Config{
		Resolver:    &Resolver{IPAPICoURL: bad.URL, IPAPIURL: bad.URL},
		Store:       store,
		ForecastURL: bad.URL,
	})

	got, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if rep := got.(Report); rep.Temperature != 9.5 {
		t.Errorf("Temperature = %v, want cached 9.5", rep.Temperature)
	}
}

func TestDescribeCode(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{0, "Clear"},
		{2, "Partly cloudy"},
		{3, "Overcast"},
		{48, "Fog"},
		{53, "Drizzle"},
		{65, "Rain"},
		{75, "Snow"},
		{81, "Showers"},
		{95, "Thunderstorm"},
		{42, "Unknown"},
	}
	for _, tc := range cases {
		if got, _ := describeCode(tc.code); got != tc.want {
			t.Errorf("describeCode(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}
