package bookingstatus

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ParsedBookingStatus
	}{
		{name: "confirmed with berth", raw: "CNF/B2/45", want: Confirmed{Coach: strPtr("B2"), Seat: strPtr("45")}},
		{name: "confirmed lowercase", raw: "cnf/b2/45", want: Confirmed{Coach: strPtr("b2"), Seat: strPtr("45")}},
		{name: "confirmed coach only", raw: "CNF/B2", want: Confirmed{Coach: strPtr("B2")}},
		{name: "confirmed bare", raw: "CNF", want: Confirmed{}},
		{name: "confirmed empty coach segment", raw: "CNF//45", want: Confirmed{Coach: strPtr(""), Seat: strPtr("45")}},
		{name: "rac with berth", raw: "RAC/S4/12", want: RAC{Coach: strPtr("S4"), Seat: strPtr("12")}},
		{name: "rac number only", raw: "RAC/12", want: RAC{Coach: strPtr("12")}},
		{name: "waitlist", raw: "WL45", want: Waitlisted{WaitlistNumber: intPtr(45)}},
		{name: "general waitlist", raw: "GNWL/WAITING/7", want: Waitlisted{WaitlistNumber: intPtr(7)}},
		{name: "waitlist first digits win", raw: "GNWL12/WL30", want: Waitlisted{WaitlistNumber: intPtr(12)}},
		{name: "waitlist without number", raw: "WL", want: Waitlisted{}},
		{name: "waiting spelled out", raw: "waiting 3", want: Waitlisted{WaitlistNumber: intPtr(3)}},
		{name: "coach number before WL", raw: "S4 WL 9", want: Waitlisted{WaitlistNumber: intPtr(4)}},
		{name: "regret", raw: "REGRET", want: Regretted{}},
		{name: "cancelled", raw: "Cancelled", want: Regretted{}},
		{name: "waitlist checked before cancel", raw: "WL/CANCEL", want: Waitlisted{}},
		{name: "empty", raw: "", want: Unknown{}},
		{name: "unrecognised", raw: "PENDING", want: Unknown{}},
		{name: "cnf not at start", raw: "XCNF/B2/45", want: Unknown{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw))
		})
	}
}

func TestParseIsIdempotent(t *testing.T) {
	for _, raw := range []string{"CNF/B2/45", "RAC/S4/12", "WL45", "REGRET", "", "junk"} {
		assert.Equal(t, Parse(raw), Parse(raw), raw)
	}
}

func TestParseNullable(t *testing.T) {
	assert.Equal(t, Unknown{}, ParseNullable(nil))
	assert.Equal(t, Regretted{}, ParseNullable(strPtr("REGRET")))
}

func TestKindAndString(t *testing.T) {
	assert.Equal(t, KindConfirmed, Parse("CNF/B2/45").Kind())
	assert.Equal(t, "CNF B2/45", Parse("CNF/B2/45").String())
	assert.Equal(t, "RAC 12", Parse("RAC/12").String())
	assert.Equal(t, "WL 45", Parse("WL45").String())
	assert.Equal(t, "WL", Parse("WL").String())
	assert.Equal(t, "REGRET", Parse("REGRET").String())
	assert.Equal(t, "UNKNOWN", Parse("").String())
}

func TestMarshalJSON(t *testing.T) {
	encoded, err := json.Marshal(Parse("CNF/B2/45"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"CNF","coach":"B2","seat":"45"}`, string(encoded))

	encoded, err = json.Marshal(Parse("WL45"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"WL","waitlistNumber":45}`, string(encoded))

	encoded, err = json.Marshal(Parse("REGRET"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"REGRET"}`, string(encoded))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, CategorySuccess, CategoryOf(Parse("CNF/B2/45")))
	assert.Equal(t, CategoryWarning, CategoryOf(Parse("RAC/12")))
	assert.Equal(t, CategoryError, CategoryOf(Parse("WL4")))
	assert.Equal(t, CategoryError, CategoryOf(Parse("REGRET")))
	assert.Equal(t, CategoryMuted, CategoryOf(Parse("???")))

	assert.Equal(t, "Waiting List", Label(KindWaitlisted))
	assert.Equal(t, "Unknown", Label(Kind("nope")))
	assert.Equal(t, "General WL", QuotaLabel("GNWL/WAITING/7"))
	assert.Equal(t, "Remote Location WL", QuotaLabel("RLWL 5"))
	assert.Equal(t, "Waiting List", QuotaLabel("WL5"))
	assert.Equal(t, "Confirmed", QuotaLabel("CNF/B2/45"))
}
