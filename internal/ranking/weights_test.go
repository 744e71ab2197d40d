package ranking

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

func TestDefaultWeightsValidate(t *testing.T) {
	for _, mode := range []model.Mode{model.ModeRecruiter, model.ModeTeam, model.ModeProfiler} {
		t.Run(string(mode), func(t *testing.T) {
			assert.NoError(t, DefaultWeights(mode).Validate())
		})
	}
}

func TestDefaultWeightsModeShape(t *testing.T) {
	recruiter := DefaultWeights(model.ModeRecruiter)
	profiler := DefaultWeights(model.ModeProfiler)

	assert.Contains(t, recruiter[ComplianceScore], "past_due_ratio_percentile")
	assert.Contains(t, recruiter[ComplianceScore], "tenure_percentile")
	assert.NotContains(t, recruiter, ProfilesScore)

	assert.Contains(t, profiler[ComplianceScore], ProfilesScore)
	assert.NotContains(t, profiler[ComplianceScore], "tenure_percentile")
	assert.Contains(t, profiler, ProfilesScore)
}

func TestWeightTreeValidate(t *testing.T) {
	tests := []struct {
		name    string
		tree    WeightTree
		wantErr string
	}{
		{
			name:    "balanced group passes",
			tree:    WeightTree{FinalScore: {EffortScore: 60, ComplianceScore: 40}},
			wantErr: "",
		},
		{
			name:    "under 100 fails",
			tree:    WeightTree{FinalScore: {EffortScore: 60, ComplianceScore: 30}},
			wantErr: "final_score weights must sum to 100, got 90",
		},
		{
			name:    "over 100 fails",
			tree:    WeightTree{FinalScore: {EffortScore: 60, ComplianceScore: 50}},
			wantErr: "final_score weights must sum to 100, got 110",
		},
		{
			name:    "negative weight fails",
			tree:    WeightTree{FinalScore: {EffortScore: 150, ComplianceScore: -50}},
			wantErr: "must be between 0 and 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tree.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadWeights(t *testing.T) {
	t.Run("partial file fills from defaults and validates", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "weights.yaml")
		content := "final_score:\n  effort_score: 70\n  compliance_score: 20\n  arrivals_score: 10\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		w, err := LoadWeights(path, model.ModeRecruiter)
		require.NoError(t, err)
		assert.Equal(t, 70, w[FinalScore][EffortScore])
		// Untouched categories come from the defaults.
		assert.Equal(t, DefaultWeights(model.ModeRecruiter)[CallsScore], w[CallsScore])
	})

	t.Run("unbalanced file is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "weights.yaml")
		content := "final_score:\n  effort_score: 70\n  compliance_score: 20\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := LoadWeights(path, model.ModeRecruiter)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "final_score weights must sum to 100")
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadWeights(filepath.Join(t.TempDir(), "nope.yaml"), model.ModeRecruiter)
		assert.Error(t, err)
	})
}

func TestSaveWeightsRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	w := DefaultWeights(model.ModeProfiler)
	require.NoError(t, SaveWeights(path, w))

	loaded, err := LoadWeights(path, model.ModeProfiler)
	require.NoError(t, err)
	assert.Equal(t, w, loaded)
}

func TestSaveWeightsRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	err := SaveWeights(path, WeightTree{FinalScore: {EffortScore: 10}})
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
