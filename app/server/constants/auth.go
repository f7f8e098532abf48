package constants

import "time"

const (
	AuthTokenDuration = 24 * time.Hour
)
