package view

// DismissReason says why an alert is being closed.
type DismissReason int

const (
	ReasonClose DismissReason = iota
	ReasonTimeout
	ReasonEscape
	// ReasonClickAway is a click outside the alert. It never dismisses.
	ReasonClickAway
)

// Alert is a dismissible error notification. Message is a translation key.
type Alert struct {
	Message string
	open    bool
}

// NewAlert returns an open alert showing message.
func NewAlert(message string) Alert {
	return Alert{Message: message, open: true}
}

// Open reports whether the alert is visible.
func (a Alert) Open() bool {
	return a.open
}

// Dismiss closes the alert unless reason is ReasonClickAway.
func (a *Alert) Dismiss(reason DismissReason) {
	if reason == ReasonClickAway {
		return
	}
	a.open = false
}

// Alert message keys.
const (
	AlertGetStartUps    = "work20.startUp.alert.get"
	AlertGetInternships = "work20.internship.alert.get"
	AlertEmptyFields    = "work20.alert.empty"
)

// FetchAlerts opens one alert per failed fetch.
func FetchAlerts(startUpsErr, internshipsErr error) []Alert {
	var alerts []Alert
	if startUpsErr != nil {
		alerts = append(alerts, NewAlert(AlertGetStartUps))
	}
	if internshipsErr != nil {
		alerts = append(alerts, NewAlert(AlertGetInternships))
	}
	return alerts
}
