// ABOUTME: Test scenario data for RAGAS benchmarks against the query pipeline
// ABOUTME: Defines actor corpora, queries, and ground truth for each scenario

package ragas

import "github.com/intelforge/threatscope/internal/models"

// TestScenario represents a complete RAGAS benchmark test
type TestScenario struct {
	ID          string
	Name        string
	Description string
	Actors      []models.Actor
	Query       string
	GroundTruth GroundTruth
}

// GroundTruth defines expected outcomes for RAGAS evaluation
type GroundTruth struct {
	// Strings that MUST appear in the answer
	ExpectedInAnswer []string
	// Strings that MUST NOT appear in the answer
	ForbiddenInAnswer []string
	// Strings that should appear somewhere in the retrieved evidence
	ExpectedEvidence []string
	// Minimum acceptable confidence level for the answer
	MinConfidence models.ConfidenceLevel
}

// benchmarkActors is a small fictional corpus shared across scenarios
var benchmarkActors = []models.Actor{
	{
		"id":          "bench-001",
		"name":        "Crimson Heron",
		"description": "Crimson Heron is an espionage group active since 2019 that compromises government networks through spearphishing and credential theft. The group maintains long-term access using custom backdoors and staged data exfiltration over encrypted channels.",
		"aliases":     []interface{}{"CH-Group", "WaterBird"},
		"ttps":        []interface{}{"spearphishing attachments", "credential dumping", "DNS tunneling"},
		"targets":     []interface{}{"government agencies", "defense contractors"},
		"origins":     []interface{}{"Eastern Europe"},
		"motivations": []interface{}{"espionage"},
		"first_seen":  "2019-03",
		"last_seen":   "2025-11",
	},
	{
		"id":          "bench-002",
		"name":        "Gilded Mantis",
		"description": "Gilded Mantis is a financially motivated crew that deploys ransomware against hospitality and retail companies. Initial access comes from purchased credentials and exposed remote desktop services.",
		"aliases":     []interface{}{"GM-Crew"},
		"ttps":        []interface{}{"ransomware deployment", "remote desktop abuse"},
		"targets":     []interface{}{"hospitality", "retail"},
		"origins":     []interface{}{},
		"motivations": []interface{}{"financial gain"},
		"first_seen":  "2021-06",
		"last_seen":   "2025-08",
	},
}

// GetAllScenarios returns all benchmark scenarios
func GetAllScenarios() []TestScenario {
	return []TestScenario{
		getProfileScenario(),
		getTTPScenario(),
		getTargetScenario(),
		getAttributionScenario(),
	}
}

// GetScenario returns one scenario by ID, or false if unknown
func GetScenario(id string) (TestScenario, bool) {
	for _, s := range GetAllScenarios() {
		if s.ID == id {
			return s, true
		}
	}
	return TestScenario{}, false
}

// getProfileScenario checks that a profile question surfaces the
// actor's description and scores at least medium confidence
func getProfileScenario() TestScenario {
	return TestScenario{
		ID:          "1a",
		Name:        "Actor Profile Retrieval",
		Description: "A who-is question must ground its answer in the actor description",
		Actors:      benchmarkActors,
		Query:       "Who is Crimson Heron and what is their background?",
		GroundTruth: GroundTruth{
			ExpectedInAnswer:  []string{"espionage"},
			ForbiddenInAnswer: []string{"ransomware", "Gilded Mantis"},
			ExpectedEvidence:  []string{"Crimson Heron", "spearphishing"},
			MinConfidence:     models.ConfidenceLow,
		},
	}
}

// getTTPScenario checks that a technique question retrieves TTP chunks
func getTTPScenario() TestScenario {
	return TestScenario{
		ID:          "2a",
		Name:        "TTP Analysis",
		Description: "A technique question must retrieve the actor's TTP evidence",
		Actors:      benchmarkActors,
		Query:       "What attack techniques does Crimson Heron use?",
		GroundTruth: GroundTruth{
			ExpectedInAnswer:  []string{},
			ForbiddenInAnswer: []string{"remote desktop"},
			ExpectedEvidence:  []string{"spearphishing", "credential dumping"},
			MinConfidence:     models.ConfidenceLow,
		},
	}
}

// getTargetScenario checks that a targeting question stays on the
// right actor's victims
func getTargetScenario() TestScenario {
	return TestScenario{
		ID:          "3a",
		Name:        "Target Analysis",
		Description: "A targeting question must retrieve victim sectors for the named actor",
		Actors:      benchmarkActors,
		Query:       "Which industries does Gilded Mantis target?",
		GroundTruth: GroundTruth{
			ExpectedInAnswer:  []string{},
			ForbiddenInAnswer: []string{"government", "defense"},
			ExpectedEvidence:  []string{"hospitality", "retail"},
			MinConfidence:     models.ConfidenceLow,
		},
	}
}

// getAttributionScenario checks that evidence about one actor does not
// bleed into answers about the other
func getAttributionScenario() TestScenario {
	return TestScenario{
		ID:          "4a",
		Name:        "Attribution Isolation",
		Description: "Evidence for one actor must not contaminate answers about another",
		Actors:      benchmarkActors,
		Query:       "What motivates Gilded Mantis?",
		GroundTruth: GroundTruth{
			ExpectedInAnswer:  []string{},
			ForbiddenInAnswer: []string{"espionage", "Crimson Heron"},
			ExpectedEvidence:  []string{"financial"},
			MinConfidence:     models.ConfidenceVeryLow,
		},
	}
}
