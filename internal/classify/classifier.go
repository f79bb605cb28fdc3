// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"regexp"
	"strings"
)

// academicDomainSuffixes mark email domains belonging to universities and
// public institutions.
var academicDomainSuffixes = []string{".edu", ".ac.", ".edu.", ".ac.uk", ".gov"}

// emailRe captures the domain of an email-like token.
var emailRe = regexp.MustCompile(`[\w.-]+@([\w.-]+)`)

// companySuffixRe matches "free text followed by a legal-entity suffix",
// e.g. "Acme Biotech, Inc." or "Hoffmann-La Roche Ltd".
var companySuffixRe = regexp.MustCompile(`([A-Za-z0-9\s&\-.]+)(?:\s+(?:Inc\.?|LLC|Ltd\.?|Corp\.?|Corporation|GmbH|AG|BV|NV|S\.A\.))`)

// Classifier classifies affiliation strings. Both methods are pure and
// total: any string input, including empty, produces a result without
// error. Construct with New; the zero value is not usable.
type Classifier struct {
	keywords Keywords

	// Word-boundary patterns compiled once per keyword. Boundary matching
	// keeps "college" from firing inside "collegiate" and lets keywords
	// containing periods ("inc.", "co.") match as literal text.
	companyWord  []*regexp.Regexp
	academicWord []*regexp.Regexp

	// Case-insensitive literal patterns for the known companies. Extraction
	// matches these against the original string so the reported span is
	// always valid: lowercasing first and reusing the byte offsets breaks
	// when a rune changes length under ToLower (İ shrinks, Ⱥ grows).
	knownCompany []*regexp.Regexp
}

// New builds a Classifier over the given keyword tables.
func New(kw Keywords) *Classifier {
	c := &Classifier{keywords: kw}
	for _, k := range kw.Company {
		c.companyWord = append(c.companyWord, wordPattern(k))
	}
	for _, k := range kw.Academic {
		c.academicWord = append(c.academicWord, wordPattern(k))
	}
	for _, k := range kw.KnownCompanies {
		c.knownCompany = append(c.knownCompany, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(k)))
	}
	return c
}

func wordPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
}

// IsNonAcademic reports whether the affiliation appears to belong to a
// commercial entity. Decision order, first match wins:
//
//  1. empty input is academic (false);
//  2. a known company name anywhere in the text is commercial;
//  3. a whole-word company keyword is commercial unless an academic
//     keyword whole-word-matches anywhere in the same string — the
//     academic signal suppresses globally, not just near the match;
//  4. an email domain that does not end in an academic suffix and
//     contains a company keyword is commercial.
func (c *Classifier) IsNonAcademic(affiliation string) bool {
	if affiliation == "" {
		return false
	}

	lower := strings.ToLower(affiliation)

	for _, company := range c.keywords.KnownCompanies {
		if strings.Contains(lower, company) {
			return true
		}
	}

	if matchesAny(c.companyWord, lower) && !matchesAny(c.academicWord, lower) {
		return true
	}

	if m := emailRe.FindStringSubmatch(lower); m != nil {
		domain := m[1]
		if !hasAcademicSuffix(domain) && containsAnyKeyword(domain, c.keywords.Company) {
			return true
		}
	}

	return false
}

// CompanyName extracts a company name from the affiliation, or returns ""
// when none is found. Extraction order, first success wins: known-company
// match (original casing preserved), legal-entity-suffix pattern, first
// comma-delimited part with a company keyword and no academic keyword,
// then the first comma-delimited part verbatim. The last step is a
// low-confidence fallback and can return an institution name when no
// stronger signal matched; callers should not treat it as validated.
func (c *Classifier) CompanyName(affiliation string) string {
	if affiliation == "" {
		return ""
	}

	for _, p := range c.knownCompany {
		if loc := p.FindStringIndex(affiliation); loc != nil {
			return affiliation[loc[0]:loc[1]]
		}
	}

	if m := companySuffixRe.FindString(affiliation); m != "" {
		return strings.TrimSpace(m)
	}

	parts := strings.Split(affiliation, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		partLower := strings.ToLower(part)
		if containsAnyKeyword(partLower, c.keywords.Company) &&
			!containsAnyKeyword(partLower, c.keywords.Academic) {
			return part
		}
	}

	return strings.TrimSpace(parts[0])
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func containsAnyKeyword(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func hasAcademicSuffix(domain string) bool {
	for _, suffix := range academicDomainSuffixes {
		if strings.HasSuffix(domain, suffix) {
			return true
		}
	}
	return false
}
