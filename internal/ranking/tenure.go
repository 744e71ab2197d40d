package ranking

import (
	"github.com/sells-group/recruiting-analytics/internal/model"
)

// ResolveTenure attaches the median tenure to each entity, recruiter and team
// modes only. Qualifying records are arrival-type rows (those carrying a
// tenure value) whose date falls in the lookback window
// [to - exclude - lookback, to - exclude]. Entities with no qualifying
// records keep the NoData zero value, which removes them from the tenure
// percentile population rather than scoring them as worst.
func ResolveTenure(entities map[string]*Entity, records []model.ActivityRecord, mode model.Mode, s Settings, filter model.FilterSelection) {
	if mode == model.ModeProfiler {
		return
	}

	windowEnd := filter.To.AddDate(0, 0, -s.TenureExcludeDays)
	windowStart := windowEnd.AddDate(0, 0, -s.TenureLookbackDays)

	values := make(map[string][]model.Sample)
	for i := range records {
		r := &records[i]
		if r.Tenure == nil || r.Date.IsZero() {
			continue
		}
		if r.Date.Before(windowStart) || r.Date.After(windowEnd) {
			continue
		}
		name := r.EntityName(mode)
		if name == "" {
			continue
		}
		if _, ok := entities[name]; !ok {
			continue
		}
		values[name] = append(values[name], model.SampleOf(*r.Tenure))
	}

	for name, samples := range values {
		entities[name].Tenure = MedianSamples(samples)
	}
}
