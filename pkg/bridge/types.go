// Package bridge connects pulsebar to the native hyprspace backend over a
// Unix domain socket. It exposes a typed command catalog (request/response
// pairs), a push-event catalog, and a reference-counted subscription
// registry. Framing is JSON lines; the bridge makes no delivery or ordering
// promises beyond FIFO per connection.
package bridge

import "time"

// CPUInfo is the backend's processor snapshot.
type CPUInfo struct {
	// Usage is the aggregate utilisation percentage (0-100).
	Usage float64 `json:"usage"`

	// Temperature is the package temperature in Celsius, if the backend
	// exposes a sensor.
	Temperature *float64 `json:"temperature,omitempty"`
}

// BatteryState is the charging state reported by the OS battery descriptor.
type BatteryState string

const (
	BatteryCharging    BatteryState = "Charging"
	BatteryDischarging BatteryState = "Discharging"
	BatteryFull        BatteryState = "Full"
	BatteryEmpty       BatteryState = "Empty"
	BatteryUnknown     BatteryState = "Unknown"
)

// BatteryTechnology is the cell chemistry reported by the OS.
type BatteryTechnology string

const (
	TechLithiumIon     BatteryTechnology = "LithiumIon"
	TechLithiumPolymer BatteryTechnology = "LithiumPolymer"
	TechLeadAcid       BatteryTechnology = "LeadAcid"
	TechNickelMetal    BatteryTechnology = "NickelMetalHydride"
	TechUnknown        BatteryTechnology = "Unknown"
)

// BatteryInfo mirrors the native OS battery descriptor. Every poll replaces
// the previous value wholesale; nothing is merged.
type BatteryInfo struct {
	Percentage float64           `json:"percentage"`
	State      BatteryState      `json:"state"`
	Health     float64           `json:"health"` // percentage of design capacity
	Technology BatteryTechnology `json:"technology"`

	// Energy metrics in watt-hours / watts.
	EnergyNow  float64 `json:"energy_now"`
	EnergyFull float64 `json:"energy_full"`
	EnergyRate float64 `json:"energy_rate"`
	Voltage    float64 `json:"voltage"`

	Temperature *float64 `json:"temperature,omitempty"` // Celsius
	CycleCount  int      `json:"cycle_count"`

	// Estimated durations; zero when not computable (e.g. on AC).
	TimeToEmpty time.Duration `json:"time_to_empty"`
	TimeToFull  time.Duration `json:"time_to_full"`

	Vendor string `json:"vendor,omitempty"`
	Model  string `json:"model,omitempty"`
	Serial string `json:"serial,omitempty"`

	ReportedAt time.Time `json:"reported_at"`
}

// Window identifies the focused window as reported by the tiling backend.
type Window struct {
	ID    uint64 `json:"id"`
	App   string `json:"app"`
	Title string `json:"title"`
}

// Geometry is a window rectangle in screen coordinates.
type Geometry struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Location is a resolved geolocation. Coordinates may be absent when only
// a display name could be determined.
type Location struct {
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	DisplayName string   `json:"display_name"`
}

// HasCoordinates reports whether both coordinates are present.
func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}
