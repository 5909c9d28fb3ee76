package gameweek

import (
	"errors"
	"time"
)

// GracePeriod is how long after the deadline submissions are still accepted.
const GracePeriod = time.Hour

const normalMatchCount = 10

var ErrDeadlinePassed = errors.New("gameweek deadline passed")

// Type classifies a gameweek by its number of fixtures.
type Type string

const (
	TypeNormal Type = "normal"
	TypeBlank  Type = "blank"
	TypeDouble Type = "double"
)

func TypeFromFixtureCount(matches int) Type {
	switch {
	case matches < normalMatchCount:
		return TypeBlank
	case matches > normalMatchCount:
		return TypeDouble
	default:
		return TypeNormal
	}
}

// Info describes one gameweek of the real-world season.
type Info struct {
	Number     int
	Name       string
	Deadline   time.Time
	Type       Type
	MatchCount int
	IsCurrent  bool
	IsNext     bool
	Finished   bool
}

// DefaultInfo is used when fixture data is unavailable.
func DefaultInfo(number int) Info {
	return Info{Number: number, Type: TypeNormal, MatchCount: normalMatchCount}
}

func (i Info) IsBlank() bool  { return i.Type == TypeBlank }
func (i Info) IsDouble() bool { return i.Type == TypeDouble }

func (i Info) GraceDeadline() time.Time {
	return i.Deadline.Add(GracePeriod)
}

// Compliance classifies a submission time against the deadline.
type Compliance string

const (
	ComplianceOnTime      Compliance = "on_time"
	ComplianceGracePeriod Compliance = "grace_period"
	ComplianceLate        Compliance = "late"
)

func Classify(deadline, at time.Time) Compliance {
	switch {
	case deadline.IsZero() || !at.After(deadline):
		return ComplianceOnTime
	case !at.After(deadline.Add(GracePeriod)):
		return ComplianceGracePeriod
	default:
		return ComplianceLate
	}
}

// Current picks the gameweek open for submissions. The upstream current event
// stays current until its grace deadline passes, then the next event takes
// over.
func Current(events []Info, now time.Time) (Info, bool) {
	var current, next Info
	var hasCurrent, hasNext bool
	for _, e := range events {
		if e.IsCurrent {
			current, hasCurrent = e, true
		}
		if e.IsNext {
			next, hasNext = e, true
		}
	}

	if hasCurrent {
		if !current.Deadline.IsZero() && now.After(current.GraceDeadline()) && hasNext {
			return next, true
		}
		return current, true
	}
	if hasNext {
		return next, true
	}
	return Info{}, false
}
