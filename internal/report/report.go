// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report serializes processed records as CSV or JSON.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// csvHeader is the fixed output schema. Column names and order are part
// of the tool's contract.
var csvHeader = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// multiValueSeparator joins authors and company names within one cell.
const multiValueSeparator = "; "

// WriteCSV writes records to w with the fixed header. A nil or empty
// record list still produces the header row.
func WriteCSV(w io.Writer, records []types.ProcessedRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, rec := range records {
		names := make([]string, 0, len(rec.NonAcademicAuthors))
		for _, a := range rec.NonAcademicAuthors {
			names = append(names, a.Name)
		}

		row := []string{
			rec.PMID,
			rec.Title,
			rec.PublicationDate,
			strings.Join(names, multiValueSeparator),
			strings.Join(rec.CompanyAffiliations, multiValueSeparator),
			rec.CorrespondingAuthorEmail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", rec.PMID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes records to w as indented JSON.
func WriteJSON(w io.Writer, records []types.ProcessedRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Write serializes records per cfg: to cfg.File when set, else to out
// (normally stdout), in CSV unless cfg.Format selects JSON.
func Write(out io.Writer, records []types.ProcessedRecord, cfg types.OutputConfig) error {
	w := out
	if cfg.File != "" {
		f, err := os.Create(cfg.File)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch cfg.Format {
	case types.OutputJSON:
		return WriteJSON(w, records)
	case types.OutputCSV, "":
		return WriteCSV(w, records)
	default:
		return fmt.Errorf("unsupported output format %q: use csv or json", cfg.Format)
	}
}
