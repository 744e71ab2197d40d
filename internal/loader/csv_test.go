package loader

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"Recruiter,Team,Level,Date,Outbound Calls,Unique Calls,p100_engage,p50_engage,past_due_otr_acme,Tenure",
		"Ann,Alpha,RECRUITER,2026-07-01,120,30,-,300,5,42",
		"Bob,Alpha,recruiter,07/02/2026,not-a-number,,N/A,-,2,",
	}, "\n")

	records, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	ann := records[0]
	assert.Equal(t, "Ann", ann.RecruiterName)
	assert.Equal(t, "Alpha", ann.TeamName)
	assert.Equal(t, "RECRUITER", string(ann.Level))
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), ann.Date)
	assert.InDelta(t, 120, ann.OutboundCalls, 0.001)
	assert.InDelta(t, 30, ann.UniqueCalls, 0.001)
	// Engagement cells keep their raw three-valued form.
	assert.Equal(t, "-", ann.Engage["p100_engage"])
	assert.Equal(t, "300", ann.Engage["p50_engage"])
	assert.InDelta(t, 5, ann.PastDue["past_due_otr_acme"], 0.001)
	require.NotNil(t, ann.Tenure)
	assert.InDelta(t, 42, *ann.Tenure, 0.001)

	bob := records[1]
	assert.Equal(t, "RECRUITER", string(bob.Level))
	assert.Equal(t, time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC), bob.Date)
	// Malformed numeric cells degrade to 0; empty cells stay unset.
	assert.Zero(t, bob.OutboundCalls)
	assert.Equal(t, "N/A", bob.Engage["p100_engage"])
	assert.Equal(t, "-", bob.Engage["p50_engage"])
	assert.Nil(t, bob.Tenure)
}

func TestReadCSVShortRows(t *testing.T) {
	input := "recruiter,outbound_calls,outbound_sms\nAnn,10\n"
	records, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 10, records[0].OutboundCalls, 0.001)
	assert.Zero(t, records[0].OutboundSMS)
}

func TestReadCSVEmpty(t *testing.T) {
	records, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadCSVUnknownColumnsIgnored(t *testing.T) {
	input := "recruiter,mystery_column,outbound_calls\nAnn,whatever,7\n"
	records, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 7, records[0].OutboundCalls, 0.001)
}

func TestNormalizeHeader(t *testing.T) {
	got := normalizeHeader([]string{" Outbound Calls ", "TEAM", "p50_engage_hot"})
	assert.Equal(t, []string{"outbound_calls", "team", "p50_engage_hot"}, got)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2026-07-01", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"2026-07-01 13:30:00", time.Date(2026, 7, 1, 13, 30, 0, 0, time.UTC)},
		{"07/01/2026", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"garbage", time.Time{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseDate(tt.raw), tt.raw)
	}
}
