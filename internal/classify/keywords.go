// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides whether an author affiliation belongs to a
// pharmaceutical or biotech company rather than an academic institution,
// and extracts a company name when it does.
package classify

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Keywords holds the three lookup tables the classifier matches against.
// The tables are configuration data, not algorithm: callers may load a
// custom set from YAML and the matching logic is unchanged.
type Keywords struct {
	// Academic terms suppress a company-keyword match anywhere in the
	// same affiliation string.
	Academic []string `yaml:"academic"`

	// Company terms are legal-entity suffixes and pharma/biotech domain
	// words, matched on word boundaries.
	Company []string `yaml:"company"`

	// KnownCompanies are literal names of major pharma/biotech firms,
	// matched as substrings for high-confidence classification.
	KnownCompanies []string `yaml:"known_companies"`
}

// Default returns the built-in keyword tables.
func Default() Keywords {
	return Keywords{
		Academic: []string{
			"university", "college", "school", "institute", "academia", "faculty",
			"department", "laboratory", "lab", "center for", "centre for", "hospital",
			"medical center", "medical centre", "clinic", "foundation", "institution",
			"national", "federal", "ministry", "association", "society",
		},
		Company: []string{
			"inc.", "inc", "llc", "ltd", "limited", "corp", "corporation", "pharmaceuticals",
			"pharmaceutical", "pharma", "biotech", "biotechnology", "biopharmaceutical",
			"therapeutics", "biosciences", "biologics", "diagnostics", "laboratories",
			"medicines", "health products", "technologies", "genetics", "genomics",
			"company", "co.", "gmbh", "ag", "sa", "bv", "nv", "plc",
		},
		KnownCompanies: []string{
			"pfizer", "johnson & johnson", "roche", "novartis", "merck", "gsk",
			"glaxosmithkline", "sanofi", "abbvie", "bayer", "eli lilly", "bristol-myers squibb",
			"astrazeneca", "boehringer ingelheim", "amgen", "gilead", "teva", "novo nordisk",
			"takeda", "biogen", "celgene", "regeneron", "moderna", "biontech", "curevac",
			"genentech", "vertex", "alexion", "illumina", "incyte", "seagen", "biomarin",
			"alkermes", "ionis", "waters", "qiagen", "catalent", "lonza",
		},
	}
}

// LoadKeywords reads a Keywords table from a YAML file. Tables left empty
// in the file fall back to the built-in defaults, so a file can override
// just one list.
func LoadKeywords(path string) (Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Keywords{}, fmt.Errorf("reading keywords file: %w", err)
	}

	var kw Keywords
	if err := yaml.Unmarshal(data, &kw); err != nil {
		return Keywords{}, fmt.Errorf("parsing keywords file %s: %w", path, err)
	}

	def := Default()
	if len(kw.Academic) == 0 {
		kw.Academic = def.Academic
	}
	if len(kw.Company) == 0 {
		kw.Company = def.Company
	}
	if len(kw.KnownCompanies) == 0 {
		kw.KnownCompanies = def.KnownCompanies
	}
	return kw, nil
}
