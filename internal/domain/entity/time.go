package entity

import "time"

// TimeLayout is the wire format for create_time/update_time. It sorts
// lexicographically, which the list endpoints rely on.
const TimeLayout = "2006-01-02 15:04:05"

func TimestampNow() string {
	return time.Now().Format(TimeLayout)
}
