// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package process

import (
	"context"
	"fmt"
	"testing"

	"github.com/pdiddy/pharma-papers/internal/classify"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// --- mocks ---

type mockSource struct {
	pmids     []string
	records   map[string]*types.Record
	searchErr error
	fetchErrs map[string]error
	fetches   int
}

func (m *mockSource) Search(_ context.Context, _ string, _ int) ([]string, error) {
	return m.pmids, m.searchErr
}

func (m *mockSource) Fetch(_ context.Context, pmid string) (*types.Record, error) {
	m.fetches++
	if err, ok := m.fetchErrs[pmid]; ok {
		return nil, err
	}
	rec, ok := m.records[pmid]
	if !ok {
		return nil, fmt.Errorf("unknown pmid %s", pmid)
	}
	return rec, nil
}

type mapCache struct {
	records map[string]*types.Record
	puts    int
}

func newMapCache() *mapCache {
	return &mapCache{records: make(map[string]*types.Record)}
}

func (m *mapCache) Get(_ context.Context, pmid string) (*types.Record, bool, error) {
	rec, ok := m.records[pmid]
	return rec, ok, nil
}

func (m *mapCache) Put(_ context.Context, rec *types.Record) error {
	m.puts++
	m.records[rec.PMID] = rec
	return nil
}

func defaultClassifier() *classify.Classifier {
	return classify.New(classify.Default())
}

func mixedRecord() *types.Record {
	return &types.Record{
		PMID:            "100",
		Title:           "Trial results",
		PublicationDate: "2024",
		Authors: []types.Author{
			{FirstName: "Alice", LastName: "Chen", Affiliations: []string{"University of X"}},
			{FirstName: "Tom", LastName: "Baker", Affiliations: []string{"Pfizer Inc., New York"}},
		},
		CorrespondingAuthorEmail: "tom@pfizer.com",
	}
}

// --- Process ---

func TestProcessMixedAuthors(t *testing.T) {
	pr, ok := Process(mixedRecord(), defaultClassifier())
	if !ok {
		t.Fatal("record with a company author should be kept")
	}

	if len(pr.NonAcademicAuthors) != 1 {
		t.Fatalf("len(NonAcademicAuthors) = %d, want 1", len(pr.NonAcademicAuthors))
	}
	if pr.NonAcademicAuthors[0].Name != "Tom Baker" {
		t.Errorf("author name = %q, want %q", pr.NonAcademicAuthors[0].Name, "Tom Baker")
	}
	if len(pr.CompanyAffiliations) != 1 {
		t.Fatalf("len(CompanyAffiliations) = %d, want 1", len(pr.CompanyAffiliations))
	}
	if pr.CompanyAffiliations[0] != "Pfizer" {
		t.Errorf("company = %q, want %q", pr.CompanyAffiliations[0], "Pfizer")
	}
	if pr.CorrespondingAuthorEmail != "tom@pfizer.com" {
		t.Errorf("email = %q", pr.CorrespondingAuthorEmail)
	}
}

func TestProcessAllAcademicDropped(t *testing.T) {
	rec := &types.Record{
		PMID: "101",
		Authors: []types.Author{
			{FirstName: "Alice", LastName: "Chen", Affiliations: []string{"University of X"}},
			{FirstName: "Bob", LastName: "Diaz", Affiliations: []string{"National Cancer Institute"}},
		},
	}
	if _, ok := Process(rec, defaultClassifier()); ok {
		t.Error("record with only academic authors should be dropped")
	}
}

func TestProcessDeduplicatesCompanies(t *testing.T) {
	rec := &types.Record{
		PMID: "102",
		Authors: []types.Author{
			{FirstName: "A", LastName: "One", Affiliations: []string{"Pfizer Inc., New York"}},
			{FirstName: "B", LastName: "Two", Affiliations: []string{"Oncology Unit, Pfizer Inc., Groton"}},
		},
	}
	pr, ok := Process(rec, defaultClassifier())
	if !ok {
		t.Fatal("record should be kept")
	}
	if len(pr.NonAcademicAuthors) != 2 {
		t.Errorf("len(NonAcademicAuthors) = %d, want 2", len(pr.NonAcademicAuthors))
	}
	if len(pr.CompanyAffiliations) != 1 {
		t.Errorf("len(CompanyAffiliations) = %d, want 1 (deduplicated)", len(pr.CompanyAffiliations))
	}
}

func TestProcessPreservesAuthorOrder(t *testing.T) {
	rec := &types.Record{
		PMID: "103",
		Authors: []types.Author{
			{FirstName: "Zoe", LastName: "Late", Affiliations: []string{"Acme Therapeutics Inc."}},
			{FirstName: "Ann", LastName: "Early", Affiliations: []string{"Genovia Biotech Ltd"}},
		},
	}
	pr, ok := Process(rec, defaultClassifier())
	if !ok {
		t.Fatal("record should be kept")
	}
	if pr.NonAcademicAuthors[0].Name != "Zoe Late" || pr.NonAcademicAuthors[1].Name != "Ann Early" {
		t.Errorf("author order not preserved: %+v", pr.NonAcademicAuthors)
	}
}

func TestProcessOmitsNamelessAuthors(t *testing.T) {
	rec := &types.Record{
		PMID: "104",
		Authors: []types.Author{
			{Affiliations: []string{"Acme Therapeutics Inc."}},
		},
	}
	// The only qualifying author has no name, so the author list is empty
	// and the record is dropped.
	if _, ok := Process(rec, defaultClassifier()); ok {
		t.Error("record whose only qualifying author is nameless should be dropped")
	}
}

func TestProcessIdempotent(t *testing.T) {
	c := defaultClassifier()
	first, ok1 := Process(mixedRecord(), c)
	second, ok2 := Process(mixedRecord(), c)
	if ok1 != ok2 {
		t.Fatal("ok mismatch across runs")
	}
	if fmt.Sprintf("%+v", first) != fmt.Sprintf("%+v", second) {
		t.Errorf("Process is not idempotent:\n%+v\n%+v", first, second)
	}
}

// --- Pipeline ---

func TestRunEndToEnd(t *testing.T) {
	src := &mockSource{
		pmids: []string{"100", "101"},
		records: map[string]*types.Record{
			"100": mixedRecord(),
			"101": {
				PMID: "101",
				Authors: []types.Author{
					{FirstName: "Alice", LastName: "Chen", Affiliations: []string{"University of X"}},
				},
			},
		},
	}
	p := &Pipeline{Source: src, Classifier: defaultClassifier()}

	results, err := p.Run(context.Background(), "test", 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1 (academic-only record dropped)", len(results))
	}
	if results[0].PMID != "100" {
		t.Errorf("PMID = %q, want 100", results[0].PMID)
	}
}

func TestRunContinuesAfterFetchFailure(t *testing.T) {
	src := &mockSource{
		pmids:     []string{"bad", "100"},
		records:   map[string]*types.Record{"100": mixedRecord()},
		fetchErrs: map[string]error{"bad": fmt.Errorf("efetch returned HTTP 500")},
	}
	p := &Pipeline{Source: src, Classifier: defaultClassifier()}

	results, err := p.Run(context.Background(), "test", 10)
	if err != nil {
		t.Fatalf("Run should tolerate per-record failures: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("len(results) = %d, want 1", len(results))
	}
}

func TestRunSearchFailurePropagates(t *testing.T) {
	src := &mockSource{searchErr: fmt.Errorf("esearch returned HTTP 502")}
	p := &Pipeline{Source: src, Classifier: defaultClassifier()}

	if _, err := p.Run(context.Background(), "test", 10); err == nil {
		t.Error("search failure should abort the run")
	}
}

func TestRunEmptyResultIsNotAnError(t *testing.T) {
	src := &mockSource{}
	p := &Pipeline{Source: src, Classifier: defaultClassifier()}

	results, err := p.Run(context.Background(), "no matches", 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestRunUsesCache(t *testing.T) {
	src := &mockSource{
		pmids:   []string{"100"},
		records: map[string]*types.Record{"100": mixedRecord()},
	}
	c := newMapCache()
	p := &Pipeline{Source: src, Classifier: defaultClassifier(), Cache: c}

	if _, err := p.Run(context.Background(), "test", 10); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if src.fetches != 1 || c.puts != 1 {
		t.Fatalf("fetches = %d, puts = %d; want 1, 1", src.fetches, c.puts)
	}

	// Second run is served from the cache.
	if _, err := p.Run(context.Background(), "test", 10); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if src.fetches != 1 {
		t.Errorf("fetches = %d after cached run, want 1", src.fetches)
	}
}

func TestRunContextCancelled(t *testing.T) {
	src := &mockSource{
		pmids:   []string{"100"},
		records: map[string]*types.Record{"100": mixedRecord()},
	}
	p := &Pipeline{Source: src, Classifier: defaultClassifier()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Run(ctx, "test", 10); err == nil {
		t.Error("cancelled context should abort the run")
	}
}
