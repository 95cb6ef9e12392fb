package history

import (
	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors"
)

// Series names recorded from collector updates.
const (
	SeriesCPUUsage   = "cpu.usage"
	SeriesCPUTemp    = "cpu.temperature"
	SeriesBatteryPct = "battery.percentage"
	SeriesBatteryW   = "battery.rate"
)

// Record extracts numeric readings from a collector update and appends them
// to the store. Failed or non-numeric updates record nothing; stale repeats
// of a previous value are skipped so a flapping collector does not paint a
// flat line of duplicates.
func (s *Store) Record(u collectors.Update) {
	res := u.Result
	if res.Err != nil || res.Stale || res.Data == nil {
		return
	}
	switch data := res.Data.(type) {
	case bridge.CPUInfo:
		s.Add(SeriesCPUUsage, res.At, data.Usage)
		if data.Temperature != nil {
			s.Add(SeriesCPUTemp, res.At, *data.Temperature)
		}
	case bridge.BatteryInfo:
		s.Add(SeriesBatteryPct, res.At, data.Percentage)
		if data.EnergyRate > 0 {
			s.Add(SeriesBatteryW, res.At, data.EnergyRate)
		}
	}
}
