package constants

import "time"

const (
	PollInterval  = 5 * time.Minute
	FetchTimeout  = 10 * time.Second
	NotifyTimeout = 10 * time.Second
	RegionTimeout = 30 * time.Second
)

const (
	DatabaseTimeout = 5 * time.Second
	ShutdownTimeout = 5 * time.Second
)

const (
	// Sheet layout: the first two rows are headers, data starts below.
	HeaderRowCount = 2
)

const (
	DefaultMessageLimit = 50
	MaxMessageLimit     = 500
	DefaultUpdateLimit  = 20
)
