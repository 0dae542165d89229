package entity

import (
	"regexp"
	"sync"
)

// PatternTable holds every compiled pattern used for entity extraction,
// relationship detection, and density scoring. One table is shared by the
// whole process; use Patterns to obtain it.
type PatternTable struct {
	// Products matches platform product names
	Products *regexp.Regexp

	// DataSourceVendors matches known data-source vendor and OS names
	DataSourceVendors *regexp.Regexp

	// DataSourceTech matches data-source technology vocabulary
	DataSourceTech *regexp.Regexp

	// ParserTriggers matches phrases that signal a parser reference
	ParserTriggers []*regexp.Regexp

	// ParserName recovers a parser's name from its local context
	ParserName *regexp.Regexp

	// UseCaseTriggers matches phrases that signal a use-case reference
	UseCaseTriggers []*regexp.Regexp

	// UseCaseName recovers a use case's name from its local context
	UseCaseName *regexp.Regexp

	// FieldTriggers matches phrases that signal a field reference
	FieldTriggers []*regexp.Regexp

	// FieldName recovers a field's name from its local context
	FieldName *regexp.Regexp

	// MitreTechnique matches MITRE ATT&CK technique IDs (T1234, T1234.001)
	MitreTechnique *regexp.Regexp

	// MitreTactic matches MITRE ATT&CK tactic names
	MitreTactic *regexp.Regexp

	// EventTypes matches event-type vocabulary
	EventTypes *regexp.Regexp

	// DomainTerms matches general security/technical vocabulary; used by
	// the density computation, not entity extraction
	DomainTerms *regexp.Regexp

	// VendorNames lists vendor names for heading-path and preamble
	// matching in the chunking strategies
	VendorNames []string

	// ProductNames lists platform product names for heading-path matching
	ProductNames []string
}

var (
	patternsOnce sync.Once
	patterns     *PatternTable
)

// Patterns returns the process-wide pattern table, compiling it on first
// use. Concurrent first use is safe; initialization happens exactly once.
func Patterns() *PatternTable {
	patternsOnce.Do(func() {
		patterns = compilePatterns()
	})
	return patterns
}

func compilePatterns() *PatternTable {
	return &PatternTable{
		Products: regexp.MustCompile(`(?i)\b(Advanced Analytics|Data Lake|Case Management|Cloud Security|Entity Analytics|Threat Hunter)\b`),

		DataSourceVendors: regexp.MustCompile(`(?i)\b(Windows|Linux|Unix|MacOS|Microsoft|Cisco|Palo Alto|Fortinet|CheckPoint|Juniper|AWS|Azure|GCP|Okta|CrowdStrike)\b`),

		DataSourceTech: regexp.MustCompile(`(?i)\b(firewall|router|switch|IDS|IPS|WAF|EDR|SIEM|endpoint|authentication|directory|database|proxy|VPN)\b`),

		ParserTriggers: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bparsers?\b`),
			regexp.MustCompile(`(?i)\bpars(e|ing)\b`),
			regexp.MustCompile(`(?i)\bnormaliz(e|ation)\b`),
		},
		ParserName: regexp.MustCompile(`(?i)\b([A-Za-z0-9_\-]+)[ \t]+parser\b`),

		UseCaseTriggers: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\buse cases?\b`),
			regexp.MustCompile(`(?i)\bscenarios?\b`),
			regexp.MustCompile(`(?i)\bdetect(s|ing|ion)?\b`),
			regexp.MustCompile(`(?i)\balert(s|ing)?\b`),
		},
		UseCaseName: regexp.MustCompile(`\b([A-Z][A-Za-z0-9_\-]*(?:[ \t][A-Z][A-Za-z0-9_\-]*){0,4})[ \t]+(?i:use case)\b`),

		FieldTriggers: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bfields?\b`),
			regexp.MustCompile(`(?i)\battributes?\b`),
			regexp.MustCompile(`(?i)\bparameters?\b`),
		},
		FieldName: regexp.MustCompile(`(?i)\b([A-Za-z0-9_\-]+)[ \t]+field\b`),

		MitreTechnique: regexp.MustCompile(`\bT\d{4}(?:\.\d{1,3})?\b`),

		MitreTactic: regexp.MustCompile(`(?i)\b(Reconnaissance|Resource Development|Initial Access|Execution|Persistence|Privilege Escalation|Defense Evasion|Credential Access|Discovery|Lateral Movement|Collection|Command and Control|Exfiltration|Impact)\b`),

		EventTypes: regexp.MustCompile(`(?i)\b(authentication|network|process|file|registry|database|email|dlp|iam)\b`),

		DomainTerms: regexp.MustCompile(`(?i)\b(configuration|authentication|parser|technique|credential|protocol|encryption|registry|database|query|interface|endpoint|algorithm|parameter|firewall|malware|ransomware|token|syslog|api)\b`),

		VendorNames: []string{
			"Microsoft", "Cisco", "AWS", "Google", "IBM",
			"Palo Alto", "Fortinet", "CheckPoint", "Juniper", "Okta",
		},

		ProductNames: []string{
			"Advanced Analytics", "Data Lake", "Case Management",
			"Cloud Security", "Entity Analytics", "Threat Hunter",
		},
	}
}
