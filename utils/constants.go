// File: utils/constants.go
package utils

// HoldKeyPrefix is the prefix used for Redis slot-hold keys.
const HoldKeyPrefix = "hold:"

// DateLayout and TimeLayout are the wire formats for dates and clock times.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)
