package platform

// DefaultAppName identifies the application to the notification service.
const DefaultAppName = "Paintboard"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName overrides DefaultAppName when non-empty.
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Category is a freedesktop notification category such as
	// "transfer.complete". Platforms without categories ignore it.
	Category string
	// TimeoutMS is how long the notification stays visible where supported.
	// Zero selects five seconds.
	TimeoutMS int32
}

func (o Options) appName() string {
	if o.AppName != "" {
		return o.AppName
	}
	return DefaultAppName
}

// hints returns the freedesktop hints for o.
func (o Options) hints() map[string]string {
	h := map[string]string{"desktop-entry": "paintboard"}
	if o.Category != "" {
		h["category"] = o.Category
	}
	return h
}

func (o Options) timeout() int32 {
	if o.TimeoutMS > 0 {
		return o.TimeoutMS
	}
	return 5000
}
