// ABOUTME: Uncertainty handler flagging evidence gaps per query intent
// ABOUTME: Compares present source fields against the expected-fields table
package guardrail

import (
	"fmt"
	"sort"
	"strings"

	"github.com/intelforge/threatscope/internal/models"
)

// expectedFields lists the source fields a well-grounded answer for each
// query type should draw on
var expectedFields = map[models.QueryType][]string{
	models.QueryTypeActorProfile:     {"name", "description", "origins"},
	models.QueryTypeTTPAnalysis:      {"ttps", "description"},
	models.QueryTypeTargetAnalysis:   {"targets", "description"},
	models.QueryTypeTimelineAnalysis: {"first_seen", "last_seen"},
}

// FlagGaps reports which expected source fields for the query type are
// absent from the evidence. Gaps come back sorted for stable output.
func FlagGaps(evidence []models.EvidenceItem, queryType models.QueryType) []string {
	present := make(map[string]bool)
	for _, item := range evidence {
		present[item.Metadata.SourceField] = true
	}

	var gaps []string
	for _, field := range expectedFields[queryType] {
		if !present[field] {
			gaps = append(gaps, fmt.Sprintf("Missing information about %s", field))
		}
	}
	sort.Strings(gaps)
	return gaps
}

// AddCaveats attaches gap messages to an explanation as a single caveat
// string. An explanation with no gaps is returned unmodified.
func AddCaveats(explanation models.Explanation, gaps []string) models.Explanation {
	if len(gaps) > 0 {
		explanation.Caveats = "Note: " + strings.Join(gaps, "; ")
	}
	return explanation
}
