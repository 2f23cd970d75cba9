package trackstats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autorev/laptime-engine/internal/models"
)

// TestDefaultClassifierDomains tests URL-based classification
func TestDefaultClassifierDomains(t *testing.T) {
	c := NewDefaultClassifier()

	assert.True(t, c.IsProfessional(&models.LapTimeRecord{SourceURL: "https://fastestlaps.com/tests/gt3-rs"}))
	assert.True(t, c.IsProfessional(&models.LapTimeRecord{SourceURL: "https://www.bridgetogantry.com/lap/123"}))
	assert.True(t, c.IsProfessional(&models.LapTimeRecord{SourceURL: "HTTPS://SPORTAUTO.DE/supertest"}))
	assert.False(t, c.IsProfessional(&models.LapTimeRecord{SourceURL: "https://forum.example.com/my-lap"}))
	assert.False(t, c.IsProfessional(&models.LapTimeRecord{}))
}

// TestDefaultClassifierDriverType tests the conditions metadata fallback
func TestDefaultClassifierDriverType(t *testing.T) {
	c := NewDefaultClassifier()

	pro := &models.LapTimeRecord{Conditions: json.RawMessage(`{"driver_type":"professional"}`)}
	assert.True(t, c.IsProfessional(pro))

	amateur := &models.LapTimeRecord{Conditions: json.RawMessage(`{"driver_type":"amateur"}`)}
	assert.False(t, c.IsProfessional(amateur))

	garbage := &models.LapTimeRecord{Conditions: json.RawMessage(`not json`)}
	assert.False(t, c.IsProfessional(garbage))
}
