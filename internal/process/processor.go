// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package process runs the search-fetch-classify-filter pipeline and
// aggregates per-record results.
package process

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pdiddy/pharma-papers/internal/classify"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// Source resolves a query to PMIDs and fetches individual records.
// *pubmed.Client implements it; tests substitute a mock.
type Source interface {
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
	Fetch(ctx context.Context, pmid string) (*types.Record, error)
}

// Cache stores fetched records between runs. *cache.Store implements it.
type Cache interface {
	Get(ctx context.Context, pmid string) (*types.Record, bool, error)
	Put(ctx context.Context, rec *types.Record) error
}

// Pipeline wires the source, classifier, and optional cache together.
type Pipeline struct {
	Source     Source
	Classifier *classify.Classifier

	// Cache may be nil, in which case every record is fetched.
	Cache Cache
}

// Run searches for records matching query and returns those with at
// least one author affiliated with a pharma/biotech company. A failure
// fetching or processing one record is logged and skipped; only search
// failure or context cancellation aborts the whole run.
func (p *Pipeline) Run(ctx context.Context, query string, maxResults int) ([]types.ProcessedRecord, error) {
	pmids, err := p.Source.Search(ctx, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching PubMed: %w", err)
	}

	if len(pmids) == 0 {
		slog.Warn("no records matched the query", "query", query)
		return nil, nil
	}
	slog.Info("fetching records", "count", len(pmids))

	var results []types.ProcessedRecord
	for _, pmid := range pmids {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		rec, err := p.fetch(ctx, pmid)
		if err != nil {
			slog.Error("skipping record", "pmid", pmid, "error", err)
			continue
		}

		if pr, ok := Process(rec, p.Classifier); ok {
			results = append(results, pr)
		} else {
			slog.Debug("no non-academic authors", "pmid", pmid)
		}
	}

	slog.Info("records with company affiliations", "count", len(results))
	return results, nil
}

func (p *Pipeline) fetch(ctx context.Context, pmid string) (*types.Record, error) {
	if p.Cache != nil {
		if rec, found, err := p.Cache.Get(ctx, pmid); err == nil && found {
			slog.Debug("cache hit", "pmid", pmid)
			return rec, nil
		}
	}

	rec, err := p.Source.Fetch(ctx, pmid)
	if err != nil {
		return nil, err
	}

	if p.Cache != nil {
		if err := p.Cache.Put(ctx, rec); err != nil {
			slog.Warn("cache write failed", "pmid", pmid, "error", err)
		}
	}
	return rec, nil
}

// Process classifies one record's affiliations and aggregates the
// qualifying authors. ok is false when no author has a non-academic
// affiliation; such records are excluded from output, not errors.
//
// Company names are deduplicated by exact string equality in first-seen
// order; the order carries no meaning. Author order is preserved.
func Process(rec *types.Record, c *classify.Classifier) (types.ProcessedRecord, bool) {
	pr := types.ProcessedRecord{
		PMID:                     rec.PMID,
		Title:                    rec.Title,
		PublicationDate:          rec.PublicationDate,
		CorrespondingAuthorEmail: rec.CorrespondingAuthorEmail,
	}

	seen := make(map[string]bool)

	for _, author := range rec.Authors {
		var nonAcademic []string

		for _, aff := range author.Affiliations {
			if !c.IsNonAcademic(aff) {
				continue
			}
			nonAcademic = append(nonAcademic, aff)

			if name := c.CompanyName(aff); name != "" && !seen[name] {
				seen[name] = true
				pr.CompanyAffiliations = append(pr.CompanyAffiliations, name)
			}
		}

		if len(nonAcademic) == 0 {
			continue
		}
		// Authors with no recorded name are left out of the author list
		// even when their affiliations qualify.
		if name := author.Name(); name != "" {
			pr.NonAcademicAuthors = append(pr.NonAcademicAuthors, types.NonAcademicAuthor{
				Name:         name,
				Affiliations: nonAcademic,
			})
		}
	}

	return pr, len(pr.NonAcademicAuthors) > 0
}
