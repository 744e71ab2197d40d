package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

func tenureRow(name string, date time.Time, tenure float64) model.ActivityRecord {
	return model.ActivityRecord{
		RecruiterName: name,
		TeamName:      "Alpha",
		Level:         model.LevelRecruiter,
		Date:          date,
		Tenure:        &tenure,
	}
}

func TestResolveTenure(t *testing.T) {
	to := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	s := DefaultSettings(model.ModeRecruiter) // 90-day lookback, 7-day exclusion
	filter := model.FilterSelection{To: to}

	windowEnd := to.AddDate(0, 0, -7)    // 2026-07-24
	windowStart := windowEnd.AddDate(0, 0, -90)

	entities := map[string]*Entity{
		"Ann": {Name: "Ann"},
		"Bob": {Name: "Bob"},
	}
	records := []model.ActivityRecord{
		tenureRow("Ann", windowEnd, 30),
		tenureRow("Ann", windowStart, 60),
		tenureRow("Ann", windowEnd, 90),
		// Outside the window on both ends.
		tenureRow("Ann", windowEnd.AddDate(0, 0, 1), 500),
		tenureRow("Ann", windowStart.AddDate(0, 0, -1), 500),
		// Different entity, not in the map.
		tenureRow("Eve", windowEnd, 10),
	}

	ResolveTenure(entities, records, model.ModeRecruiter, s, filter)

	assert.Equal(t, model.HasValue, entities["Ann"].Tenure.Kind)
	assert.InDelta(t, 60, entities["Ann"].Tenure.Val, 0.001)
	// No qualifying rows leaves the no-data zero value.
	assert.Equal(t, model.NoData, entities["Bob"].Tenure.Kind)
}

func TestResolveTenureSkipsProfilerMode(t *testing.T) {
	to := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	entities := map[string]*Entity{"Pia": {Name: "Pia"}}
	records := []model.ActivityRecord{tenureRow("Pia", to.AddDate(0, 0, -30), 45)}

	ResolveTenure(entities, records, model.ModeProfiler, DefaultSettings(model.ModeProfiler), model.FilterSelection{To: to})
	assert.Equal(t, model.NoData, entities["Pia"].Tenure.Kind)
}

func TestResolveTenureTeamMode(t *testing.T) {
	to := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	entities := map[string]*Entity{"Alpha": {Name: "Alpha", Team: "Alpha"}}
	records := []model.ActivityRecord{
		tenureRow("Ann", to.AddDate(0, 0, -30), 40),
		tenureRow("Bob", to.AddDate(0, 0, -30), 80),
	}

	ResolveTenure(entities, records, model.ModeTeam, DefaultSettings(model.ModeTeam), model.FilterSelection{To: to})
	assert.InDelta(t, 60, entities["Alpha"].Tenure.Val, 0.001)
}
