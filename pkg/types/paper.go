// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pharma-papers pipeline.
package types

import "strings"

// Author is one entry from a record's author list. The same real person
// appearing on two records produces two independent Author values.
type Author struct {
	// FirstName is the author's forename. Falls back to initials when the
	// record carries no forename.
	FirstName string `json:"first_name" yaml:"first_name"`

	// LastName is the author's family name.
	LastName string `json:"last_name" yaml:"last_name"`

	// Initials are the author's initials as recorded by PubMed.
	Initials string `json:"initials,omitempty" yaml:"initials,omitempty"`

	// Affiliations lists the author's affiliation strings in record order.
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`

	// Email is an address found inside an affiliation string, if any.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// IsCorresponding marks the author as corresponding. PubMed does not
	// flag this explicitly; an email embedded in the affiliation text is
	// taken as the signal.
	IsCorresponding bool `json:"is_corresponding,omitempty" yaml:"is_corresponding,omitempty"`
}

// Name returns "First Last" with surrounding whitespace trimmed. Empty
// when the record carries neither name part.
func (a Author) Name() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Record is one bibliographic entry fetched from PubMed.
type Record struct {
	// PMID is the PubMed identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// PublicationDate is "YYYY", "YYYY-MM", or "YYYY-MM-DD"; the month is
	// kept as PubMed returns it (often a textual abbreviation).
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// Authors lists the record's authors in original order.
	Authors []Author `json:"authors" yaml:"authors"`

	// CorrespondingAuthorEmail is the email of the last author flagged as
	// corresponding, or empty.
	CorrespondingAuthorEmail string `json:"corresponding_author_email,omitempty" yaml:"corresponding_author_email,omitempty"`
}

// NonAcademicAuthor pairs an author's display name with the affiliations
// that classified as non-academic.
type NonAcademicAuthor struct {
	Name         string   `json:"name" yaml:"name"`
	Affiliations []string `json:"affiliations" yaml:"affiliations"`
}

// ProcessedRecord is a Record that survived filtering: it has at least one
// author with a non-academic affiliation.
type ProcessedRecord struct {
	PMID            string `json:"pmid" yaml:"pmid"`
	Title           string `json:"title" yaml:"title"`
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// NonAcademicAuthors preserves original author order.
	NonAcademicAuthors []NonAcademicAuthor `json:"non_academic_authors" yaml:"non_academic_authors"`

	// CompanyAffiliations holds extracted company names, deduplicated by
	// exact string equality, in first-seen order. Order carries no meaning.
	CompanyAffiliations []string `json:"company_affiliations" yaml:"company_affiliations"`

	CorrespondingAuthorEmail string `json:"corresponding_author_email,omitempty" yaml:"corresponding_author_email,omitempty"`
}
