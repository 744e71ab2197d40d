package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

func TestMedianSamples(t *testing.T) {
	tests := []struct {
		name    string
		samples []model.Sample
		want    model.Sample
	}{
		{
			name:    "empty yields no data",
			samples: nil,
			want:    model.NoSample(),
		},
		{
			name:    "all no data yields no data",
			samples: []model.Sample{model.NoSample(), model.NoSample()},
			want:    model.NoSample(),
		},
		{
			name:    "odd finite",
			samples: []model.Sample{model.SampleOf(300), model.SampleOf(100), model.SampleOf(200)},
			want:    model.SampleOf(200),
		},
		{
			name:    "even finite averages middles",
			samples: []model.Sample{model.SampleOf(100), model.SampleOf(400), model.SampleOf(200), model.SampleOf(300)},
			want:    model.SampleOf(250),
		},
		{
			name:    "no data dropped before the count",
			samples: []model.Sample{model.NoSample(), model.SampleOf(50), model.SampleOf(150), model.SampleOf(250)},
			want:    model.SampleOf(150),
		},
		{
			name:    "never reached sorts above finite values",
			samples: []model.Sample{model.Never(), model.SampleOf(10), model.SampleOf(20)},
			want:    model.SampleOf(20),
		},
		{
			name:    "even with never reached at a middle slot",
			samples: []model.Sample{model.SampleOf(10), model.Never()},
			want:    model.Never(),
		},
		{
			name:    "all never reached",
			samples: []model.Sample{model.Never(), model.Never(), model.Never()},
			want:    model.Never(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MedianSamples(tt.samples)
			assert.Equal(t, tt.want.Kind, got.Kind)
			if tt.want.Finite() {
				assert.InDelta(t, tt.want.Val, got.Val, 0.001)
			}
		})
	}
}

func TestMedianSamplesDoesNotMutateInput(t *testing.T) {
	samples := []model.Sample{model.SampleOf(3), model.SampleOf(1), model.SampleOf(2)}
	_ = MedianSamples(samples)
	assert.InDelta(t, 3, samples[0].Val, 0.001)
	assert.InDelta(t, 1, samples[1].Val, 0.001)
}

func TestMedianFloats(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{7}, 7},
		{"odd", []float64{5, 1, 9}, 5},
		{"even", []float64{4, 2, 8, 6}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MedianFloats(tt.values), 0.001)
		})
	}
}
