// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"strings"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// efetch XML structures (PubmedArticleSet → PubmedArticle → MedlineCitation).
type articleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string     `xml:"PMID"`
	Article articleXML `xml:"Article"`
}

type articleXML struct {
	Title   string      `xml:"ArticleTitle"`
	PubDate pubDateXML  `xml:"Journal>JournalIssue>PubDate"`
	Authors []authorXML `xml:"AuthorList>Author"`
}

type pubDateXML struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month"`
	Day   string `xml:"Day"`
}

type authorXML struct {
	LastName     string   `xml:"LastName"`
	ForeName     string   `xml:"ForeName"`
	Initials     string   `xml:"Initials"`
	Affiliations []string `xml:"AffiliationInfo>Affiliation"`
}

// toRecord converts a decoded article into the pipeline's Record type.
func toRecord(a pubmedArticle) *types.Record {
	r := &types.Record{
		PMID:            a.Citation.PMID,
		Title:           a.Citation.Article.Title,
		PublicationDate: formatPubDate(a.Citation.Article.PubDate),
	}

	for _, ax := range a.Citation.Article.Authors {
		author := parseAuthor(ax)
		r.Authors = append(r.Authors, author)
		if author.IsCorresponding && author.Email != "" {
			r.CorrespondingAuthorEmail = author.Email
		}
	}

	return r
}

// formatPubDate joins the date parts as "YYYY", "YYYY-MM", or
// "YYYY-MM-DD". The month stays as PubMed returns it, which is often a
// textual abbreviation ("Jan").
func formatPubDate(d pubDateXML) string {
	if d.Year == "" {
		return ""
	}
	switch {
	case d.Month != "" && d.Day != "":
		return d.Year + "-" + d.Month + "-" + d.Day
	case d.Month != "":
		return d.Year + "-" + d.Month
	default:
		return d.Year
	}
}

// parseAuthor converts one author entry. PubMed has no explicit
// corresponding-author marker; an email address embedded in an
// affiliation string is taken as the signal.
func parseAuthor(ax authorXML) types.Author {
	author := types.Author{
		LastName: strings.TrimSpace(ax.LastName),
		Initials: strings.TrimSpace(ax.Initials),
	}
	author.FirstName = strings.TrimSpace(ax.ForeName)
	if author.FirstName == "" {
		author.FirstName = author.Initials
	}

	for _, aff := range ax.Affiliations {
		if aff == "" {
			continue
		}
		author.Affiliations = append(author.Affiliations, aff)

		if email := extractEmail(aff); email != "" {
			author.Email = email
			author.IsCorresponding = true
		}
	}

	return author
}

// extractEmail pulls an email-like token out of an affiliation string,
// lowercased, with surrounding punctuation stripped.
func extractEmail(affiliation string) string {
	text := strings.ToLower(affiliation)
	if !strings.Contains(text, "@") || !strings.Contains(text, ".") {
		return ""
	}
	for _, token := range strings.Fields(text) {
		if strings.Contains(token, "@") {
			return strings.Trim(token, ".,;:()")
		}
	}
	return ""
}
