package trackstats

import (
	"strings"

	"github.com/autorev/laptime-engine/internal/models"
)

// SourceClassifier decides whether a lap time record carries professional
// provenance. It is a pluggable predicate so tests can inject synthetic
// authoritative records without real URLs.
type SourceClassifier interface {
	IsProfessional(rec *models.LapTimeRecord) bool
}

// Aggregator domains that republish professional outlet test times.
var defaultProDomains = []string{
	"fastestlaps.com",
	"bridgetogantry.com",
	"sportauto.de",
}

// DefaultClassifier classifies records by source URL substring matching,
// falling back to an explicit driver_type in the conditions metadata. This
// is a heuristic, not a model.
type DefaultClassifier struct {
	domains []string
}

// NewDefaultClassifier returns the production source classifier.
func NewDefaultClassifier() *DefaultClassifier {
	return &DefaultClassifier{domains: defaultProDomains}
}

// IsProfessional reports whether the record is professionally sourced.
func (c *DefaultClassifier) IsProfessional(rec *models.LapTimeRecord) bool {
	source := strings.ToLower(rec.SourceURL)
	for _, domain := range c.domains {
		if strings.Contains(source, domain) {
			return true
		}
	}
	return rec.DriverType() == "professional"
}
