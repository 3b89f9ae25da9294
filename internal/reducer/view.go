package reducer

// View selects the screen shown in the content area.
type View int

const (
	ViewDashboard View = iota
	ViewTasks
	ViewProfile
	ViewSettings
)

// Views returns every view in display order.
func Views() []View {
	return []View{ViewDashboard, ViewTasks, ViewProfile, ViewSettings}
}

// PrimaryViews returns the views listed in the sidebar navigation.
// The profile is reached through its own control instead.
func PrimaryViews() []View {
	return []View{ViewDashboard, ViewTasks, ViewSettings}
}

// String returns the view's name as used in commands and config.
func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewTasks:
		return "tasks"
	case ViewProfile:
		return "profile"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// Title returns the heading shown for the view.
func (v View) Title() string {
	switch v {
	case ViewTasks:
		return "Tasks"
	case ViewProfile:
		return "Profile"
	case ViewSettings:
		return "Settings"
	default:
		return "Dashboard"
	}
}

// ShowsTasks reports whether the view renders the task grid.
func (v View) ShowsTasks() bool {
	switch v {
	case ViewProfile, ViewSettings:
		return false
	default:
		return true
	}
}

// ParseView maps a view name to a View. Unknown names fall back to the
// dashboard.
func ParseView(name string) View {
	for _, v := range Views() {
		if v.String() == name {
			return v
		}
	}
	return ViewDashboard
}
