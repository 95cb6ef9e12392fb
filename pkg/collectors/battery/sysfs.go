package battery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
)

const defaultSysfsRoot = "/sys/class/power_supply"

var errNoBattery = errors.New("no battery present")

// readSysfs scans the power-supply class for the first battery entry and
// assembles a bridge.BatteryInfo from its attribute files.
func readSysfs(root string) (bridge.BatteryInfo, error) {
	if root == "" {
		root = defaultSysfsRoot
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return bridge.BatteryInfo{}, fmt.Errorf("read %s: %w", root, err)
	}
	for _, e := range entries {
		dir := filepath.Join(root, e.Name())
		if readAttr(dir, "type") != "Battery" {
			continue
		}
		return readBatteryDir(dir)
	}
	return bridge.BatteryInfo{}, errNoBattery
}

func readBatteryDir(dir string) (bridge.BatteryInfo, error) {
	info := bridge.BatteryInfo{
		State:      parseState(readAttr(dir, "status")),
		Technology: bridge.BatteryTechnology(readAttr(dir, "technology")),
		Vendor:     readAttr(dir, "manufacturer"),
		Model:      readAttr(dir, "model_name"),
		Serial:     readAttr(dir, "serial_number"),
		ReportedAt: time.Now(),
	}

	if v, ok := readFloat(dir, "capacity"); ok {
		info.Percentage = v
	}
	if v, ok := readFloat(dir, "cycle_count"); ok && v > 0 {
		info.CycleCount = int(v)
	}

	// energy_* is microwatt-hours, power is microwatts. Some supplies
	// report charge_*/current_* in microamp-hours instead; percentage
	// still comes from capacity in that case.
	now, hasNow := readFloat(dir, "energy_now")
	full, hasFull := readFloat(dir, "energy_full")
	rate, hasRate := readFloat(dir, "power_now")
	if hasNow && hasFull && full > 0 {
		info.EnergyNow = now / 1e6
		info.EnergyFull = full / 1e6
	}
	if hasRate {
		info.EnergyRate = rate / 1e6
	}
	if design, ok := readFloat(dir, "energy_full_design"); ok && design > 0 && hasFull {
		info.Health = full / design * 100
	}
	if v, ok := readFloat(dir, "voltage_now"); ok {
		info.Voltage = v / 1e6
	}
	if hasRate && rate > 0 {
		switch info.State {
		case bridge.BatteryDischarging:
			if hasNow {
				secs := now / rate * 3600
				info.TimeToEmpty = time.Duration(secs) * time.Second
			}
		case bridge.BatteryCharging:
			if hasNow && hasFull && full > now {
				secs := (full - now) / rate * 3600
				info.TimeToFull = time.Duration(secs) * time.Second
			}
		}
	}
	return info, nil
}

func parseState(s string) bridge.BatteryState {
	switch strings.ToLower(s) {
	case "charging":
		return bridge.BatteryCharging
	case "discharging":
		return bridge.BatteryDischarging
	case "full":
		return bridge.BatteryFull
	case "empty":
		return bridge.BatteryEmpty
	default:
		return bridge.BatteryUnknown
	}
}

func readAttr(dir, name string) string {
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func readFloat(dir, name string) (float64, bool) {
	s := readAttr(dir, name)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
