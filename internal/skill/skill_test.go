package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestResolveKnownLevels tests lookup of each defined skill level
func TestResolveKnownLevels(t *testing.T) {
	assert.Equal(t, Professional, Resolve("professional").Key)
	assert.Equal(t, Advanced, Resolve("advanced").Key)
	assert.Equal(t, Intermediate, Resolve("intermediate").Key)
	assert.Equal(t, Beginner, Resolve("beginner").Key)
}

// TestResolveUnknownDefaultsToIntermediate tests the fail-soft default
func TestResolveUnknownDefaultsToIntermediate(t *testing.T) {
	assert.Equal(t, Intermediate, Resolve("").Key)
	assert.Equal(t, Intermediate, Resolve("alien").Key)
	assert.Equal(t, Intermediate, Resolve("PROFESSIONAL").Key)
}

// TestProfessionalHasNoPenalty tests that professionals are the baseline
func TestProfessionalHasNoPenalty(t *testing.T) {
	assert.Equal(t, 0.0, Resolve("professional").PenaltyFromPro)
}

// TestProfileOrdering tests monotonicity across the skill ladder
func TestProfileOrdering(t *testing.T) {
	all := All()
	assert.Len(t, all, 4)
	assert.Equal(t, Professional, all[0].Key)
	assert.Equal(t, Beginner, all[3].Key)

	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].Percentile, all[i-1].Percentile,
			"%s should sit deeper in the distribution than %s", all[i].Key, all[i-1].Key)
		assert.Less(t, all[i].ModUtilization, all[i-1].ModUtilization,
			"%s should extract less from mods than %s", all[i].Key, all[i-1].Key)
		assert.GreaterOrEqual(t, all[i].PenaltyFromPro, all[i-1].PenaltyFromPro)
	}
}
