package tunerkit

import "time"

// TimePoint is a wall-clock instant split into integer seconds since the
// Unix epoch and the sub-second remainder in milliseconds.
type TimePoint struct {
	Seconds      int64 `json:"seconds"`
	Milliseconds int64 `json:"milliseconds"`
}

func newTimePoint(t time.Time) TimePoint {
	return TimePoint{
		Seconds:      t.Unix(),
		Milliseconds: int64(t.Nanosecond()) / int64(time.Millisecond),
	}
}

// Time reconstructs the instant represented by the point.
func (p TimePoint) Time() time.Time {
	return time.Unix(p.Seconds, p.Milliseconds*int64(time.Millisecond))
}

// TimingRecord spans an invocation from the start of the simulation gate (or
// the real call when no gate runs) to result completion. For streaming calls
// the end instant is the completion signal's arrival, not the call's
// initiation. Both endpoints are captured even for instantaneous simulated
// calls.
type TimingRecord struct {
	Start TimePoint `json:"startTime"`
	End   TimePoint `json:"endTime"`
}
