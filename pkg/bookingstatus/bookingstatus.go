// Package bookingstatus classifies reservation status tokens such as
// "CNF/B2/45", "RAC/12" or "WL45".
package bookingstatus

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Kind string

const (
	KindConfirmed  Kind = "CNF"
	KindRAC        Kind = "RAC"
	KindWaitlisted Kind = "WL"
	KindRegretted  Kind = "REGRET"
	KindUnknown    Kind = "UNKNOWN"
)

// ParsedBookingStatus is one of Confirmed, RAC, Waitlisted, Regretted or Unknown.
type ParsedBookingStatus interface {
	Kind() Kind
	Summary() Summary
	String() string

	bookingStatus()
}

type Confirmed struct {
	Coach *string
	Seat  *string
}

type RAC struct {
	Coach *string
	Seat  *string
}

type Waitlisted struct {
	WaitlistNumber *int
}

type Regretted struct{}

type Unknown struct{}

var digitRun = regexp.MustCompile(`[0-9]+`)

// Parse never fails, anything it cannot classify is Unknown.
// Checks run in a fixed order so "WL" wins over "CANCEL" when both appear.
func Parse(raw string) ParsedBookingStatus {
	if raw == "" {
		return Unknown{}
	}

	upper := strings.ToUpper(raw)

	switch {
	case strings.HasPrefix(upper, "CNF"):
		coach, seat := coachAndSeat(raw)
		return Confirmed{Coach: coach, Seat: seat}
	case strings.HasPrefix(upper, "RAC"):
		coach, seat := coachAndSeat(raw)
		return RAC{Coach: coach, Seat: seat}
	case strings.Contains(upper, "WL") || strings.Contains(upper, "WAITING"):
		return Waitlisted{WaitlistNumber: firstNumber(raw)}
	case strings.Contains(upper, "REGRET") || strings.Contains(upper, "CANCEL"):
		return Regretted{}
	}

	return Unknown{}
}

// ParseNullable treats a missing status like an empty one.
func ParseNullable(raw *string) ParsedBookingStatus {
	if raw == nil {
		return Unknown{}
	}

	return Parse(*raw)
}

func coachAndSeat(raw string) (*string, *string) {
	parts := strings.Split(raw, "/")

	var coach, seat *string
	if len(parts) > 1 {
		coach = &parts[1]
	}
	if len(parts) > 2 {
		seat = &parts[2]
	}

	return coach, seat
}

// firstNumber scans the whole token, not a fixed position: "GNWL/WAITING/7" is 7.
func firstNumber(raw string) *int {
	match := digitRun.FindString(raw)
	if match == "" {
		return nil
	}

	n, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}

	return &n
}

func (Confirmed) bookingStatus()  {}
func (RAC) bookingStatus()        {}
func (Waitlisted) bookingStatus() {}
func (Regretted) bookingStatus()  {}
func (Unknown) bookingStatus()    {}

func (Confirmed) Kind() Kind  { return KindConfirmed }
func (RAC) Kind() Kind        { return KindRAC }
func (Waitlisted) Kind() Kind { return KindWaitlisted }
func (Regretted) Kind() Kind  { return KindRegretted }
func (Unknown) Kind() Kind    { return KindUnknown }

// Summary is the flat wire form of a parsed status.
type Summary struct {
	Status         Kind   `json:"status" groups:"basic"`
	Coach          string `json:"coach,omitempty" groups:"basic"`
	Seat           string `json:"seat,omitempty" groups:"basic"`
	WaitlistNumber *int   `json:"waitlistNumber,omitempty" groups:"basic"`
}

func (s Confirmed) Summary() Summary {
	return Summary{Status: KindConfirmed, Coach: deref(s.Coach), Seat: deref(s.Seat)}
}

func (s RAC) Summary() Summary {
	return Summary{Status: KindRAC, Coach: deref(s.Coach), Seat: deref(s.Seat)}
}

func (s Waitlisted) Summary() Summary {
	return Summary{Status: KindWaitlisted, WaitlistNumber: s.WaitlistNumber}
}

func (Regretted) Summary() Summary { return Summary{Status: KindRegretted} }
func (Unknown) Summary() Summary   { return Summary{Status: KindUnknown} }

func (s Confirmed) String() string { return withBerth(KindConfirmed, s.Coach, s.Seat) }
func (s RAC) String() string       { return withBerth(KindRAC, s.Coach, s.Seat) }

func (s Waitlisted) String() string {
	if s.WaitlistNumber == nil {
		return string(KindWaitlisted)
	}

	return fmt.Sprintf("%s %d", KindWaitlisted, *s.WaitlistNumber)
}

func (Regretted) String() string { return string(KindRegretted) }
func (Unknown) String() string   { return string(KindUnknown) }

func (s Confirmed) MarshalJSON() ([]byte, error)  { return json.Marshal(s.Summary()) }
func (s RAC) MarshalJSON() ([]byte, error)        { return json.Marshal(s.Summary()) }
func (s Waitlisted) MarshalJSON() ([]byte, error) { return json.Marshal(s.Summary()) }
func (s Regretted) MarshalJSON() ([]byte, error)  { return json.Marshal(s.Summary()) }
func (s Unknown) MarshalJSON() ([]byte, error)    { return json.Marshal(s.Summary()) }

func withBerth(kind Kind, coach *string, seat *string) string {
	switch {
	case coach != nil && seat != nil:
		return fmt.Sprintf("%s %s/%s", kind, *coach, *seat)
	case coach != nil:
		return fmt.Sprintf("%s %s", kind, *coach)
	default:
		return string(kind)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
