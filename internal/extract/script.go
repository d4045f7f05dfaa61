package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/joseph-ayodele/production-feasibility/constants"
	"github.com/joseph-ayodele/production-feasibility/internal/entity"
)

// Shot-count proxies. Matches from all patterns are pooled into one set, so a
// scene numbered two ways can count twice.
var shotPatterns = []*regexp.Regexp{
	regexp.MustCompile(`shot\s+\d+`),
	regexp.MustCompile(`scene\s+\d+`),
	regexp.MustCompile(`sc\.\s*\d+`),
	regexp.MustCompile(`\d+\s*\.\s*(?:int|ext)`),
}

// DetectScript derives ScriptFeatures from raw script text. Pure; matching
// is case-insensitive substring search.
func DetectScript(text string) entity.ScriptFeatures {
	lower := strings.ToLower(text)

	features := entity.ScriptFeatures{
		Techniques:  []constants.Technique{},
		Locations:   []constants.Location{},
		HasChildren: containsAny(lower, constants.ChildWords),
		HasAnimals:  containsAny(lower, constants.AnimalWords),
		HasVehicles: containsAny(lower, constants.VehicleWords),
		TextLength:  utf8.RuneCountInString(text),
	}
	for _, tk := range constants.TechniqueKeywords {
		if containsAny(lower, tk.Variants) {
			features.Techniques = append(features.Techniques, tk.Technique)
		}
	}
	for _, lk := range constants.LocationKeywords {
		if containsAny(lower, lk.Variants) {
			features.Locations = append(features.Locations, lk.Location)
		}
	}
	features.EstimatedShots = estimateShots(lower)
	return features
}

func estimateShots(lower string) *int {
	seen := map[string]struct{}{}
	for _, re := range shotPatterns {
		for _, m := range re.FindAllString(lower, -1) {
			seen[m] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	n := len(seen)
	return &n
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
