package weather

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/cache"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors"
)

// DefaultInterval is the weather polling cadence.
const DefaultInterval = 10 * time.Minute

const defaultForecastURL = "https://api.open-meteo.com/v1/forecast"

const cacheKey = "weather/current"

// Report is one weather reading tied to the location it was fetched for.
type Report struct {
	Location    bridge.Location `json:"location"`
	Temperature float64         `json:"temperature"` // Celsius
	WindSpeed   float64         `json:"wind_speed"`  // km/h
	Code        int             `json:"code"`        // WMO weather code
	Condition   string          `json:"condition"`
	Icon        string          `json:"icon"` // component icon name
	FetchedAt   time.Time       `json:"fetched_at"`

	// HasConditions is false when only a display name could be resolved;
	// the widget then renders the name without temperature.
	HasConditions bool `json:"has_conditions"`
}

// Config controls the weather collector.
type Config struct {
	Resolver *Resolver

	// DefaultLocation is the display name used when the whole resolution
	// chain fails.
	DefaultLocation string

	// Store caches reports across restarts; nil disables caching.
	Store *cache.Store

	// ForecastURL overrides the open-meteo endpoint, for tests.
	ForecastURL string

	// Interval overrides DefaultInterval when positive.
	Interval time.Duration
}

// Collector polls current conditions. It satisfies collectors.Collector.
type Collector struct {
	cfg     Config
	mu      sync.Mutex
	healthy bool
	loc     *bridge.Location // resolved once, reused across polls
}

// New creates a weather Collector.
func New(cfg Config) *Collector {
	if cfg.Resolver == nil {
		cfg.Resolver = &Resolver{}
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Collector{cfg: cfg, healthy: true}
}

// Name returns the collector's unique identifier.
func (c *Collector) Name() string { return "weather" }

// IntervalAfter returns the fixed weather cadence.
func (c *Collector) IntervalAfter(collectors.Result) time.Duration {
	return c.cfg.Interval
}

// Healthy reports whether the last collection succeeded.
func (c *Collector) Healthy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.healthy
}

func (c *Collector) setHealthy(h bool) {
	c.mu.Lock()
	c.healthy = h
	c.mu.Unlock()
}

// InvalidateLocation drops the cached location so the next poll re-runs the
// resolution chain, e.g. after a network change.
func (c *Collector) InvalidateLocation() {
	c.mu.Lock()
	c.loc = nil
	c.mu.Unlock()
}

func (c *Collector) location(ctx context.Context) bridge.Location {
	c.mu.Lock()
	cached := c.loc
	c.mu.Unlock()
	if cached != nil {
		return *cached
	}
	loc := c.cfg.Resolver.Resolve(ctx, c.cfg.DefaultLocation)
	c.mu.Lock()
	c.loc = &loc
	c.mu.Unlock()
	return loc
}

// Collect resolves the location, fetches current conditions for it, and
// caches the report. A fresh cached report short-circuits the fetch; a
// stale one is returned as a fallback when the fetch fails.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	if c.cfg.Store != nil {
		if rep, fresh := cache.GetTyped[Report](c.cfg.Store, cacheKey); fresh == cache.Fresh {
			c.setHealthy(true)
			return rep, nil
		}
	}

	loc := c.location(ctx)
	if !loc.HasCoordinates() {
		// Display-name-only resolution still renders in the bar.
		c.setHealthy(true)
		return Report{Location: loc, FetchedAt: time.Now()}, nil
	}

	rep, err := c.fetch(ctx, loc)
	if err != nil {
		if c.cfg.Store != nil {
			if cached, fresh := cache.GetTyped[Report](c.cfg.Store, cacheKey); fresh != cache.Miss {
				c.setHealthy(false)
				return cached, nil
			}
		}
		c.setHealthy(false)
		return nil, err
	}
	if c.cfg.Store != nil {
		ttl := cache.TTL{StaleAfter: c.cfg.Interval, ExpireAfter: 6 * time.Hour}
		_ = cache.PutTypedWithTTL(c.cfg.Store, cacheKey, rep, ttl)
	}
	c.setHealthy(true)
	return rep, nil
}

func (c *Collector) fetch(ctx context.Context, loc bridge.Location) (Report, error) {
	base := c.cfg.ForecastURL
	if base == "" {
		base = defaultForecastURL
	}
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", *loc.Latitude))
	q.Set("longitude", fmt.Sprintf("%.4f", *loc.Longitude))
	q.Set("current_weather", "true")

	var body struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			WindSpeed   float64 `json:"windspeed"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
	}
	if err := c.cfg.Resolver.getJSON(ctx, base+"?"+q.Encode(), &body); err != nil {
		return Report{}, fmt.Errorf("weather: fetch conditions: %w", err)
	}

	cond, icon := describeCode(body.CurrentWeather.WeatherCode)
	return Report{
		Location:      loc,
		Temperature:   body.CurrentWeather.Temperature,
		WindSpeed:     body.CurrentWeather.WindSpeed,
		Code:          body.CurrentWeather.WeatherCode,
		Condition:     cond,
		Icon:          icon,
		FetchedAt:     time.Now(),
		HasConditions: true,
	}, nil
}

// describeCode maps a WMO weather code to a label and icon name.
func describeCode(code int) (condition, icon string) {
	switch {
	case code == 0:
		return "Clear", "weather-clear"
	case code <= 2:
		return "Partly cloudy", "weather-partly"
	case code == 3:
		return "Overcast", "weather-cloudy"
	case code == 45 || code == 48:
		return "Fog", "weather-fog"
	case code >= 51 && code <= 57:
		return "Drizzle", "weather-rain"
	case code >= 61 && code <= 67:
		return "Rain", "weather-rain"
	case code >= 71 && code <= 77:
		return "Snow", "weather-snow"
	case code >= 80 && code <= 82:
		return "Showers", "weather-rain"
	case code == 85 || code == 86:
		return "Snow showers", "weather-snow"
	case code >= 95:
		return "Thunderstorm", "weather-storm"
	default:
		return "Unknown", "weather-cloudy"
	}
}
