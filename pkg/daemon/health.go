package daemon

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors"
)

// HealthStatus is the daemon's health snapshot, served over the control
// socket.
type HealthStatus struct {
	Healthy    bool                       `json:"healthy"`
	PID        int                        `json:"pid"`
	Uptime     string                     `json:"uptime"`
	Collectors map[string]CollectorHealth `json:"collectors"`
}

// CollectorHealth is one collector's slice of the health snapshot.
type CollectorHealth struct {
	Healthy   bool      `json:"healthy"`
	LastRun   time.Time `json:"last_run"`
	LastError string    `json:"last_error,omitempty"`
	Runs      int64     `json:"runs"`
	Failures  int64     `json:"failures"`
}

// collectorStatusView is the JSON shape of a collector status; the internal
// struct carries an error value that does not marshal.
type collectorStatusView struct {
	Name        string    `json:"name"`
	Healthy     bool      `json:"healthy"`
	LastRun     time.Time `json:"last_run"`
	LastError   string    `json:"last_error,omitempty"`
	RunCount    int64     `json:"run_count"`
	ErrorCount  int64     `json:"error_count"`
	LastLatency string    `json:"last_latency"`
}

func statusView(st collectors.Status) collectorStatusView {
	v := collectorStatusView{
		Name:        st.Name,
		Healthy:     st.Healthy,
		LastRun:     st.LastRun,
		RunCount:    st.RunCount,
		ErrorCount:  st.ErrorCount,
		LastLatency: st.LastLatency.String(),
	}
	if st.LastError != nil {
		v.LastError = st.LastError.Error()
	}
	return v
}

// PID returns the current process ID.
func PID() int { return os.Getpid() }

func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("daemon: encode response: %w", err)
	}
	return string(data), nil
}
