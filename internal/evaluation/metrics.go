// ABOUTME: Coverage and quality calculators over retrieved evidence
// ABOUTME: Pure functions exposing a per-field breakdown for transparency
package evaluation

import "github.com/intelforge/threatscope/internal/models"

// CalculateCoverage measures how broadly an evidence set spans the
// actor profile's source fields and how evenly items spread across them.
func CalculateCoverage(evidence []models.EvidenceItem) models.CoverageMetrics {
	if len(evidence) == 0 {
		return models.CoverageMetrics{}
	}

	breakdown := make(map[string]int)
	for _, item := range evidence {
		field := item.Metadata.SourceField
		if field == "" {
			field = "unknown"
		}
		breakdown[field]++
	}

	uniqueSources := len(breakdown)
	total := len(evidence)

	coverage := (float64(uniqueSources)/5.0)*0.5 + (float64(total)/10.0)*0.5
	if coverage > 1.0 {
		coverage = 1.0
	}

	maxFromOne := 0
	for _, n := range breakdown {
		if n > maxFromOne {
			maxFromOne = n
		}
	}
	diversity := 1.0 - float64(maxFromOne)/float64(total)

	return models.CoverageMetrics{
		CoverageScore:   coverage,
		SourceDiversity: diversity,
		EvidenceCount:   total,
		UniqueSources:   uniqueSources,
		SourceBreakdown: breakdown,
	}
}

// CalculateQuality measures the similarity-score distribution of an
// evidence set. Consistency rewards stable rather than spiky matches.
func CalculateQuality(evidence []models.EvidenceItem) models.QualityMetrics {
	if len(evidence) == 0 {
		return models.QualityMetrics{}
	}

	similarities := make([]float64, len(evidence))
	for i, item := range evidence {
		s := item.SimilarityScore
		// Zero means unscored; a true 0.0 similarity is only reachable
		// at threshold 0 and is conflated with absent here.
		if s == 0 {
			s = 0.5
		}
		similarities[i] = s
	}

	var sum float64
	minSim, maxSim := similarities[0], similarities[0]
	for _, s := range similarities {
		sum += s
		if s < minSim {
			minSim = s
		}
		if s > maxSim {
			maxSim = s
		}
	}
	avg := sum / float64(len(similarities))

	var variance float64
	for _, s := range similarities {
		d := s - avg
		variance += d * d
	}
	variance /= float64(len(similarities))
	consistency := 1.0 / (1.0 + variance)

	return models.QualityMetrics{
		AvgSimilarity: avg,
		MinSimilarity: minSim,
		MaxSimilarity: maxSim,
		Consistency:   consistency,
		QualityScore:  avg*0.7 + consistency*0.3,
	}
}
