package theme

// thRegisterBuiltins registers all built-in themes in the registry.
func thRegisterBuiltins() {
	for _, t := range []Theme{
		thDefaultTheme(),
		thGruvboxTheme(),
		thNordTheme(),
		thTokyoNightTheme(),
	} {
		thRegister(t)
	}
}

// thDefaultTheme returns the dark neutral theme with purple accent.
func thDefaultTheme() Theme {
	return Theme{
		Name:       "default",
		Background: "#1e1e1e",
		Foreground: "#d4d4d4",
		Dim:        "#6b6b6b",
		Accent:     "#7C3AED",

		SegmentBG:     "#262626",
		SegmentBorder: "#3e3e3e",
		Title:         "#d4d4d4",

		StatusOK:      "#4ec970",
		StatusWarn:    "#e5c07b",
		StatusError:   "#e06c75",
		StatusUnknown: "#6b6b6b",

		WorkspaceActive:   "#7C3AED",
		WorkspaceInactive: "#3e3e3e",
		WorkspaceUrgent:   "#e06c75",

		BatteryCharging: "#4ec970",
		BatteryLow:      "#e5c07b",
		BatteryCritical: "#e06c75",

		CPUHot: "#e06c75",

		ChartLine: "#7C3AED",
		ChartFill: "#5b21b6",
		ChartGrid: "#3e3e3e",

		ButtonPressed: "#5b21b6",
		HelpKey:       "#7C3AED",
		HelpDesc:      "#6b6b6b",
	}
}

// thGruvboxTheme returns the warm retro Gruvbox theme.
func thGruvboxTheme() Theme {
	return Theme{
		Name:       "gruvbox",
		Background: "#282828",
		Foreground: "#ebdbb2",
		Dim:        "#928374",
		Accent:     "#fe8019",

		SegmentBG:     "#32302f",
		SegmentBorder: "#504945",
		Title:         "#ebdbb2",

		StatusOK:      "#b8bb26",
		StatusWarn:    "#fabd2f",
		StatusError:   "#fb4934",
		StatusUnknown: "#928374",

		WorkspaceActive:   "#fe8019",
		WorkspaceInactive: "#504945",
		WorkspaceUrgent:   "#fb4934",

		BatteryCharging: "#b8bb26",
		BatteryLow:      "#fabd2f",
		BatteryCritical: "#fb4934",

		CPUHot: "#fb4934",

		ChartLine: "#fe8019",
		ChartFill: "#d65d0e",
		ChartGrid: "#504945",

		ButtonPressed: "#d65d0e",
		HelpKey:       "#fe8019",
		HelpDesc:      "#928374",
	}
}

// thNordTheme returns the cool arctic Nord theme.
func thNordTheme() Theme {
	return Theme{
		Name:       "nord",
		Background: "#2e3440",
		Foreground: "#d8dee9",
		Dim:        "#4c566a",
		Accent:     "#88c0d0",

		SegmentBG:     "#3b4252",
		SegmentBorder: "#434c5e",
		Title:         "#eceff4",

		StatusOK:      "#a3be8c",
		StatusWarn:    "#ebcb8b",
		StatusError:   "#bf616a",
		StatusUnknown: "#4c566a",

		WorkspaceActive:   "#88c0d0",
		WorkspaceInactive: "#434c5e",
		WorkspaceUrgent:   "#bf616a",

		BatteryCharging: "#a3be8c",
		BatteryLow:      "#ebcb8b",
		BatteryCritical: "#bf616a",

		CPUHot: "#bf616a",

		ChartLine: "#88c0d0",
		ChartFill: "#5e81ac",
		ChartGrid: "#434c5e",

		ButtonPressed: "#5e81ac",
		HelpKey:       "#88c0d0",
		HelpDesc:      "#4c566a",
	}
}

// thTokyoNightTheme returns the deep blue Tokyo Night theme.
func thTokyoNightTheme() Theme {
	return Theme{
		Name:       "tokyonight",
		Background: "#1a1b26",
		Foreground: "#c0caf5",
		Dim:        "#565f89",
		Accent:     "#7aa2f7",

		SegmentBG:     "#24283b",
		SegmentBorder: "#414868",
		Title:         "#c0caf5",

		StatusOK:      "#9ece6a",
		StatusWarn:    "#e0af68",
		StatusError:   "#f7768e",
		StatusUnknown: "#565f89",

		WorkspaceActive:   "#7aa2f7",
		WorkspaceInactive: "#414868",
		WorkspaceUrgent:   "#f7768e",

		BatteryCharging: "#9ece6a",
		BatteryLow:      "#e0af68",
		BatteryCritical: "#f7768e",

		CPUHot: "#f7768e",

		ChartLine: "#7aa2f7",
		ChartFill: "#3d59a1",
		ChartGrid: "#414868",

		ButtonPressed: "#3d59a1",
		HelpKey:       "#7aa2f7",
		HelpDesc:      "#565f89",
	}
}
