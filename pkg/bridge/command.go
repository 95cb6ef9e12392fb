package bridge

import "context"

// Wire names of the backend command catalog. Each name pairs with exactly
// one request/response shape; the typed methods below are the only way to
// invoke them, so the boundary is exhaustively checkable at compile time.
const (
	cmdGetCPUInfo          = "get_cpu_info"
	cmdGetBatteryInfo      = "get_battery_info"
	cmdGetWorkspaces       = "get_hyprspace_workspaces"
	cmdGetFocusedWorkspace = "get_hyprspace_focused_workspace"
	cmdGetFocusedWindow    = "get_focused_window"
	cmdGetLocation         = "get_location"
	cmdGetWindowLabel      = "get_window_label"
	cmdOpenApp             = "open_app"
	cmdGoToWorkspace       = "go_to_hyprspace_workspace"
	cmdSetKeepAwake        = "set_keep_awake"
)

// CPUInfo retrieves the backend's current processor snapshot.
func (c *Client) CPUInfo(ctx context.Context) (CPUInfo, error) {
	return call[CPUInfo](ctx, c, cmdGetCPUInfo, nil)
}

// BatteryInfo retrieves the backend's current battery descriptor.
func (c *Client) BatteryInfo(ctx context.Context) (BatteryInfo, error) {
	return call[BatteryInfo](ctx, c, cmdGetBatteryInfo, nil)
}

// Workspaces retrieves workspace names in backend order. Display ordering
// is applied by the workspaces collector, not here.
func (c *Client) Workspaces(ctx context.Context) ([]string, error) {
	return call[[]string](ctx, c, cmdGetWorkspaces, nil)
}

// FocusedWorkspace retrieves the name of the focused workspace.
func (c *Client) FocusedWorkspace(ctx context.Context) (string, error) {
	return call[string](ctx, c, cmdGetFocusedWorkspace, nil)
}

// FocusedWindow retrieves the currently focused window.
func (c *Client) FocusedWindow(ctx context.Context) (Window, error) {
	return call[Window](ctx, c, cmdGetFocusedWindow, nil)
}

// Location asks the backend for an on-device geolocation fix. A backend
// without location services returns an error; the weather collector falls
// through to its HTTP providers.
func (c *Client) Location(ctx context.Context) (Location, error) {
	return call[Location](ctx, c, cmdGetLocation, nil)
}

// OpenApp asks the backend to launch the named application.
func (c *Client) OpenApp(ctx context.Context, app string) error {
	_, err := call[struct{}](ctx, c, cmdOpenApp, map[string]string{"app": app})
	return err
}

// GoToWorkspace asks the tiling backend to focus the named workspace.
func (c *Client) GoToWorkspace(ctx context.Context, workspace string) error {
	_, err := call[struct{}](ctx, c, cmdGoToWorkspace, map[string]string{"workspace": workspace})
	return err
}

// SetKeepAwake toggles the backend's display keep-awake assertion.
func (c *Client) SetKeepAwake(ctx context.Context, enabled bool) error {
	_, err := call[struct{}](ctx, c, cmdSetKeepAwake, map[string]bool{"enabled": enabled})
	return err
}

// windowLabel retrieves the host window label for the bar process. Used
// only when emitting without an explicit target.
func (c *Client) windowLabel(ctx context.Context) (string, error) {
	return call[string](ctx, c, cmdGetWindowLabel, nil)
}
