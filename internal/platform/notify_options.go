package platform

// AppName identifies zpen to the host notification service.
const AppName = "zpen"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// TimeoutMS is how long the notification stays visible. Zero selects
	// the platform default.
	TimeoutMS int32
}
