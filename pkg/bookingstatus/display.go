package bookingstatus

import "strings"

// Category is the colour bucket the app renders a status with.
type Category string

const (
	CategorySuccess Category = "success"
	CategoryWarning Category = "warning"
	CategoryError   Category = "error"
	CategoryMuted   Category = "muted"
)

var kindLabels = map[Kind]string{
	KindConfirmed:  "Confirmed",
	KindRAC:        "RAC",
	KindWaitlisted: "Waiting List",
	KindRegretted:  "Regret",
	KindUnknown:    "Unknown",
}

// Waitlist quotas, checked in this order.
var quotaLabels = []struct {
	Code  string
	Label string
}{
	{Code: "RLWL", Label: "Remote Location WL"},
	{Code: "PQWL", Label: "Pooled Quota WL"},
	{Code: "GNWL", Label: "General WL"},
}

func Label(kind Kind) string {
	if label, ok := kindLabels[kind]; ok {
		return label
	}

	return kindLabels[KindUnknown]
}

// QuotaLabel names the waitlist quota of raw when it has one, otherwise the
// label of its parsed kind.
func QuotaLabel(raw string) string {
	parsed := Parse(raw)

	if parsed.Kind() == KindWaitlisted {
		upper := strings.ToUpper(raw)
		for _, quota := range quotaLabels {
			if strings.Contains(upper, quota.Code) {
				return quota.Label
			}
		}
	}

	return Label(parsed.Kind())
}

func CategoryOf(status ParsedBookingStatus) Category {
	switch status.(type) {
	case Confirmed:
		return CategorySuccess
	case RAC:
		return CategoryWarning
	case Waitlisted, Regretted:
		return CategoryError
	default:
		return CategoryMuted
	}
}
