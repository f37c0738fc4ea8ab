package nhle

import "time"

const (
	providerName       = "nhle"
	defaultBaseURL     = "https://api-web.nhle.com/v1"
	defaultHTTPTimeout = 20 * time.Second
	defaultUserAgent   = "nhl-schedule-pressure/1.0"
	errorBodyLimit     = 512
)
