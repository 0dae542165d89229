package entity

import (
	"regexp"
	"sync"
)

// Content class names produced by ClassifyContent.
const (
	ClassOverview      = "overview"
	ClassTechnical     = "technical"
	ClassConfiguration = "configuration"
	ClassParser        = "parser"
	ClassUseCase       = "use_case"
	ClassReference     = "reference"
)

// minClassConfidence is the floor below which the deterministic priority
// fallback kicks in.
const minClassConfidence = 0.2

// classIndicators maps each content class to the keyword patterns that
// indicate it.
var classIndicators = map[string][]string{
	ClassOverview:      {`\boverview\b`, `\bintroduction\b`, `\bsummary\b`, `\bdescription\b`, `\babout\b`},
	ClassTechnical:     {`\btechnical\b`, `\bimplementation\b`, `\barchitecture\b`, `\bdesign\b`, `\bspecification\b`},
	ClassConfiguration: {`\bconfiguration\b`, `\bsetup\b`, `\binstall\b`, `\bdeploy\b`, `\bsettings\b`},
	ClassParser:        {`\bparser\b`, `\bparsing\b`, `\bnormalization\b`, `\bextract\b`, `\btransform\b`},
	ClassUseCase:       {`\buse case\b`, `\bscenario\b`, `\bdetection\b`, `\balert\b`, `\bthreat\b`},
	ClassReference:     {`\breference\b`, `\bappendix\b`, `\bglossary\b`, `\bdocumentation\b`, `\bmanual\b`},
}

// classFallbackOrder is the deterministic priority applied when every
// class scores below the confidence floor: the first class whose single
// strong keyword appears wins.
var classFallbackOrder = []struct {
	class   string
	keyword string
}{
	{ClassParser, `\bparser\b`},
	{ClassUseCase, `\buse case\b`},
	{ClassConfiguration, `\bconfiguration\b`},
	{ClassOverview, `\boverview\b`},
}

var (
	classOnce     sync.Once
	classPatterns map[string][]*regexp.Regexp
	fallbackRegex map[string]*regexp.Regexp
)

func compiledClassPatterns() (map[string][]*regexp.Regexp, map[string]*regexp.Regexp) {
	classOnce.Do(func() {
		classPatterns = make(map[string][]*regexp.Regexp, len(classIndicators))
		for class, indicators := range classIndicators {
			for _, indicator := range indicators {
				classPatterns[class] = append(classPatterns[class], regexp.MustCompile(`(?i)`+indicator))
			}
		}
		fallbackRegex = make(map[string]*regexp.Regexp, len(classFallbackOrder))
		for _, fb := range classFallbackOrder {
			fallbackRegex[fb.class] = regexp.MustCompile(`(?i)` + fb.keyword)
		}
	})
	return classPatterns, fallbackRegex
}

// ClassifyContent counts class-indicator keyword occurrences in text and
// normalizes them to proportions. If every class scores below the 0.2
// confidence floor, a deterministic priority fallback assigns a single
// dominant class (parser > use_case > configuration > overview), defaulting
// to technical when no strong keyword is present at all.
func ClassifyContent(text string) map[string]float64 {
	compiled, fallbacks := compiledClassPatterns()

	scores := map[string]float64{
		ClassOverview:      0,
		ClassTechnical:     0,
		ClassConfiguration: 0,
		ClassParser:        0,
		ClassUseCase:       0,
		ClassReference:     0,
	}

	total := 0
	for class, patterns := range compiled {
		for _, pattern := range patterns {
			n := len(pattern.FindAllStringIndex(text, -1))
			scores[class] += float64(n)
			total += n
		}
	}

	if total > 0 {
		for class := range scores {
			scores[class] = scores[class] / float64(total)
		}
	}

	allBelowFloor := true
	for _, score := range scores {
		if score >= minClassConfidence {
			allBelowFloor = false
			break
		}
	}

	if allBelowFloor {
		assigned := false
		for _, fb := range classFallbackOrder {
			if fallbacks[fb.class].MatchString(text) {
				scores[fb.class] = 0.6
				assigned = true
				break
			}
		}
		if !assigned {
			scores[ClassTechnical] = 0.4
		}
	}

	return scores
}

// primaryClass returns the highest-scoring class and its score. Ties break
// deterministically toward the class listed first in the fallback order,
// then alphabetically.
func primaryClass(scores map[string]float64) (string, float64) {
	order := []string{ClassParser, ClassUseCase, ClassConfiguration, ClassOverview, ClassReference, ClassTechnical}
	best := ""
	bestScore := -1.0
	for _, class := range order {
		if score, ok := scores[class]; ok && score > bestScore {
			best = class
			bestScore = score
		}
	}
	return best, bestScore
}
