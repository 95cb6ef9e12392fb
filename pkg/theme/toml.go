package theme

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// thTOMLTheme is the TOML-serializable representation of a Theme.
type thTOMLTheme struct {
	Name      string         `toml:"name"`
	Base      thTOMLBase     `toml:"base"`
	Segment   thTOMLSegment  `toml:"segment"`
	Status    thTOMLStatus   `toml:"status"`
	Workspace thTOMLWs       `toml:"workspace"`
	Battery   thTOMLBattery  `toml:"battery"`
	CPU       thTOMLCPU      `toml:"cpu"`
	Chart     thTOMLChart    `toml:"chart"`
	Special   thTOMLSpecial  `toml:"special"`
}

type thTOMLBase struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Accent     string `toml:"accent"`
}

type thTOMLSegment struct {
	Background string `toml:"background"`
	Border     string `toml:"border"`
	Title      string `toml:"title"`
}

type thTOMLStatus struct {
	OK      string `toml:"ok"`
	Warn    string `toml:"warn"`
	Error   string `toml:"error"`
	Unknown string `toml:"unknown"`
}

type thTOMLWs struct {
	Active   string `toml:"active"`
	Inactive string `toml:"inactive"`
	Urgent   string `toml:"urgent"`
}

type thTOMLBattery struct {
	Charging string `toml:"charging"`
	Low      string `toml:"low"`
	Critical string `toml:"critical"`
}

type thTOMLCPU struct {
	Hot string `toml:"hot"`
}

type thTOMLChart struct {
	Line string `toml:"line"`
	Fill string `toml:"fill"`
	Grid string `toml:"grid"`
}

type thTOMLSpecial struct {
	ButtonPressed string `toml:"button_pressed"`
	HelpKey       string `toml:"help_key"`
	HelpDesc      string `toml:"help_desc"`
}

var thHexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFromTOML parses a TOML theme definition from raw bytes.
func LoadFromTOML(data []byte) (Theme, error) {
	var tt thTOMLTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}

	t := Theme{
		Name:       tt.Name,
		Background: tt.Base.Background,
		Foreground: tt.Base.Foreground,
		Dim:        tt.Base.Dim,
		Accent:     tt.Base.Accent,

		SegmentBG:     tt.Segment.Background,
		SegmentBorder: tt.Segment.Border,
		Title:         tt.Segment.Title,

		StatusOK:      tt.Status.OK,
		StatusWarn:    tt.Status.Warn,
		StatusError:   tt.Status.Error,
		StatusUnknown: tt.Status.Unknown,

		WorkspaceActive:   tt.Workspace.Active,
		WorkspaceInactive: tt.Workspace.Inactive,
		WorkspaceUrgent:   tt.Workspace.Urgent,

		BatteryCharging: tt.Battery.Charging,
		BatteryLow:      tt.Battery.Low,
		BatteryCritical: tt.Battery.Critical,

		CPUHot: tt.CPU.Hot,

		ChartLine: tt.Chart.Line,
		ChartFill: tt.Chart.Fill,
		ChartGrid: tt.Chart.Grid,

		ButtonPressed: tt.Special.ButtonPressed,
		HelpKey:       tt.Special.HelpKey,
		HelpDesc:      tt.Special.HelpDesc,
	}

	if err := thValidateTheme(t); err != nil {
		return Theme{}, err
	}

	return t, nil
}

// LoadFile loads and registers a theme from a TOML file on disk.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: read %s: %w", path, err)
	}
	t, err := LoadFromTOML(data)
	if err != nil {
		return Theme{}, err
	}
	thRegister(t)
	return t, nil
}

// SaveToTOML serializes a theme to TOML bytes.
func SaveToTOML(t Theme) ([]byte, error) {
	tt := thTOMLTheme{
		Name: t.Name,
		Base: thTOMLBase{
			Background: t.Background,
			Foreground: t.Foreground,
			Dim:        t.Dim,
			Accent:     t.Accent,
		},
		Segment: thTOMLSegment{
			Background: t.SegmentBG,
			Border:     t.SegmentBorder,
			Title:      t.Title,
		},
		Status: thTOMLStatus{
			OK:      t.StatusOK,
			Warn:    t.StatusWarn,
			Error:   t.StatusError,
			Unknown: t.StatusUnknown,
		},
		Workspace: thTOMLWs{
			Active:   t.WorkspaceActive,
			Inactive: t.WorkspaceInactive,
			Urgent:   t.WorkspaceUrgent,
		},
		Battery: thTOMLBattery{
			Charging: t.BatteryCharging,
			Low:      t.BatteryLow,
			Critical: t.BatteryCritical,
		},
		CPU: thTOMLCPU{
			Hot: t.CPUHot,
		},
		Chart: thTOMLChart{
			Line: t.ChartLine,
			Fill: t.ChartFill,
			Grid: t.ChartGrid,
		},
		Special: thTOMLSpecial{
			ButtonPressed: t.ButtonPressed,
			HelpKey:       t.HelpKey,
			HelpDesc:      t.HelpDesc,
		},
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(tt); err != nil {
		return nil, fmt.Errorf("theme: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// thValidateTheme checks that all required color fields are present and valid hex.
func thValidateTheme(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme: missing required field %q", "name")
	}

	colorFields := map[string]string{
		"background":         t.Background,
		"foreground":         t.Foreground,
		"dim":                t.Dim,
		"accent":             t.Accent,
		"segment_background": t.SegmentBG,
		"segment_border":     t.SegmentBorder,
		"title":              t.Title,
		"status_ok":          t.StatusOK,
		"status_warn":        t.StatusWarn,
		"status_error":       t.StatusError,
		"status_unknown":     t.StatusUnknown,
		"workspace_active":   t.WorkspaceActive,
		"workspace_inactive": t.WorkspaceInactive,
		"workspace_urgent":   t.WorkspaceUrgent,
		"battery_charging":   t.BatteryCharging,
		"battery_low":        t.BatteryLow,
		"battery_critical":   t.BatteryCritical,
		"cpu_hot":            t.CPUHot,
		"chart_line":         t.ChartLine,
		"chart_fill":         t.ChartFill,
		"chart_grid":         t.ChartGrid,
		"button_pressed":     t.ButtonPressed,
		"help_key":           t.HelpKey,
		"help_desc":          t.HelpDesc,
	}

	for field, value := range colorFields {
		if value == "" {
			return fmt.Errorf("theme: missing required field %q", field)
		}
		if !thHexColorRegex.MatchString(value) {
			return fmt.Errorf("theme: invalid hex color %q for field %q (expected #RRGGBB)", value, field)
		}
	}

	return nil
}
