package types

import "time"

const (
	filetimeOffset = 116444736000000000 // difference between FILETIME epoch and Unix epoch in 100ns units
	filetimeUnit   = 100                // FILETIME units are 100ns
)

// Filetime is a Windows FILETIME timestamp: 100-nanosecond intervals since
// 1601-01-01 UTC. Key last-write times cross the backend contract in this
// representation.
type Filetime uint64

// Time converts f to a time.Time in UTC. Values at or before the Unix epoch
// collapse to the epoch.
func (f Filetime) Time() time.Time {
	if uint64(f) <= filetimeOffset {
		return time.Unix(0, 0).UTC()
	}
	ns := int64((uint64(f) - filetimeOffset) * filetimeUnit)
	sec := ns / int64(time.Second)
	nsec := ns % int64(time.Second)
	return time.Unix(sec, nsec).UTC()
}

// FiletimeOf converts a time.Time to a Filetime.
func FiletimeOf(t time.Time) Filetime {
	ns := t.UnixNano()
	if ns < 0 {
		ns = 0
	}
	return Filetime(uint64(ns)/filetimeUnit + filetimeOffset)
}
