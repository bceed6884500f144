package model

import (
	"fmt"
	"time"
)

const (
	// RemoteDateTimeLayout is the wire format of appointment datetimes.
	RemoteDateTimeLayout = "2006-01-02 15:04:05"
	// DateLayout is the wire format of dates of birth and record dates.
	DateLayout = "2006-01-02"
	// DisplayDateTimeLayout is used when showing datetimes to the operator.
	DisplayDateTimeLayout = "Jan 2, 2006 3:04 PM"
)

var remoteLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	RemoteDateTimeLayout,
}

var localInputLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	RemoteDateTimeLayout,
}

// FormatAppointmentTime converts t to UTC and renders it in the wire format,
// dropping sub-second precision.
func FormatAppointmentTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(RemoteDateTimeLayout)
}

// ParseRemoteTime parses a datetime returned by the remote store. Values
// without a zone are taken as UTC.
func ParseRemoteTime(s string) (time.Time, error) {
	for _, layout := range remoteLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", s)
}

// ParseLocalDateTime parses operator input in the given location.
func ParseLocalDateTime(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range localInputLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q, expected YYYY-MM-DDTHH:MM", s)
}

// ValidateDate checks a YYYY-MM-DD date.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return nil
}

// DisplayTime renders a remote datetime in loc, or returns s unchanged when
// it can not be parsed.
func DisplayTime(s string, loc *time.Location) string {
	t, err := ParseRemoteTime(s)
	if err != nil {
		return s
	}
	return t.In(loc).Format(DisplayDateTimeLayout)
}
