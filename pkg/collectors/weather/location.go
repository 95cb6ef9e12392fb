// Package weather resolves the host's location and polls current conditions
// for it. Location resolution walks a fixed chain: the hyprspace backend's
// geolocation command, then two public IP-geo providers, then a configured
// default display name. The first step that produces a usable location wins;
// nothing is merged across steps.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
)

// geoTimeout bounds the backend geolocation call so a stuck backend cannot
// stall the whole chain.
const geoTimeout = 5 * time.Second

// Default public provider endpoints. Overridable for tests.
const (
	defaultIPAPICoURL = "https://ipapi.co/json/"
	defaultIPAPIURL   = "http://ip-api.com/json"
)

// GeoBackend is the slice of the bridge client the resolver uses.
type GeoBackend interface {
	Location(ctx context.Context) (bridge.Location, error)
}

// Resolver walks the location chain.
type Resolver struct {
	// Backend is the bridge client; nil skips the first step.
	Backend GeoBackend

	// HTTPClient is used for the public providers; nil means a client
	// with a 10s timeout.
	HTTPClient *http.Client

	// Provider endpoints, overridable for tests.
	IPAPICoURL string
	IPAPIURL   string

	Logger *slog.Logger
}

func (r *Resolver) httpClient() *http.Client {
	if r.HTTPClient != nil {
		return r.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (r *Resolver) log() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Resolve returns the first location the chain produces. Every step catches
// its own errors; a step that fails yields to the next one. When the whole
// chain fails the result carries only defaultName and no coordinates.
func (r *Resolver) Resolve(ctx context.Context, defaultName string) bridge.Location {
	steps := []struct {
		name string
		fn   func(context.Context) *bridge.Location
	}{
		{"backend", r.fromBackend},
		{"ipapi.co", r.fromIPAPICo},
		{"ip-api.com", r.fromIPAPI},
	}
	for _, step := range steps {
		if loc := step.fn(ctx); loc != nil {
			return *loc
		}
		r.log().Debug("location step failed", "step", step.name)
	}
	return bridge.Location{DisplayName: defaultName}
}

func (r *Resolver) fromBackend(ctx context.Context) *bridge.Location {
	if r.Backend == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, geoTimeout)
	defer cancel()
	loc, err := r.Backend.Location(ctx)
	if err != nil || !loc.HasCoordinates() {
		return nil
	}
	return &loc
}

func (r *Resolver) fromIPAPICo(ctx context.Context) *bridge.Location {
	url := r.IPAPICoURL
	if url == "" {
		url = defaultIPAPICoURL
	}
	var body struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		City      string   `json:"city"`
	}
	if err := r.getJSON(ctx, url, &body); err != nil {
		return nil
	}
	if body.Latitude == nil || body.Longitude == nil {
		return nil
	}
	return &bridge.Location{
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		DisplayName: body.City,
	}
}

func (r *Resolver) fromIPAPI(ctx context.Context) *bridge.Location {
	url := r.IPAPIURL
	if url == "" {
		url = defaultIPAPIURL
	}
	var body struct {
		Status string   `json:"status"`
		Lat    *float64 `json:"lat"`
		Lon    *float64 `json:"lon"`
		City   string   `json:"city"`
	}
	if err := r.getJSON(ctx, url, &body); err != nil {
		return nil
	}
	if body.Status != "success" || body.Lat == nil || body.Lon == nil {
		return nil
	}
	return &bridge.Location{
		Latitude:    body.Lat,
		Longitude:   body.Lon,
		DisplayName: body.City,
	}
}

func (r *Resolver) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := r.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("weather: %s returned %s", url, resp.Status)
	}
	return json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(out)
}
