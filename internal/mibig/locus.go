package mibig

import (
	"strings"

	"github.com/mibig-secmet/bgconvert/internal/validation"
)

// Locus ties an entry to a region of a sequence database record.
type Locus struct {
	Accession string          `json:"accession"`
	Location  Location        `json:"location"`
	Evidence  []LocusEvidence `json:"evidence"`
}

// NewLocus creates a validated Locus.
func NewLocus(accession string, location Location, evidence []LocusEvidence, ctx Context) (Locus, error) {
	locus := Locus{Accession: accession, Location: location, Evidence: evidence}
	if err := locus.Validate(ctx); err != nil {
		return Locus{}, err
	}
	return locus, nil
}

// Validate checks the accession against the reference record when one is
// available, otherwise against the bare accession grammar, plus the
// location and all evidence.
func (l Locus) Validate(ctx Context) error {
	var c validation.Collector
	if ctx.Record != nil {
		if ctx.Record.ID != l.Accession {
			c.Add("locus.accession", "accession mismatch: %s != %s", l.Accession, ctx.Record.ID)
		}
	} else if strings.Count(l.Accession, ".") > 1 && !strings.HasPrefix(l.Accession, "MIBIG.") {
		c.Add("locus.accession", "invalid accession %s", l.Accession)
	}
	c.MergePrefixed("locus", l.Location.Validate(ctx, nil))
	for i, evidence := range l.Evidence {
		c.MergePrefixed(validation.Index("locus.evidence", i), evidence.Validate(ctx))
	}
	return c.Err()
}

// Taxonomy names the producing organism.
type Taxonomy struct {
	Name      string `json:"name"`
	NCBITaxID int    `json:"ncbiTaxId"`
}

// NewTaxonomy creates a validated Taxonomy.
func NewTaxonomy(name string, ncbiTaxID int, ctx Context) (Taxonomy, error) {
	tax := Taxonomy{Name: name, NCBITaxID: ncbiTaxID}
	if err := tax.Validate(ctx); err != nil {
		return Taxonomy{}, err
	}
	return tax, nil
}

// Validate cross-checks the organism name and taxonomy id against the
// reference record when one is available.
func (t Taxonomy) Validate(ctx Context) error {
	var c validation.Collector
	if ctx.Record == nil {
		return nil
	}
	if ctx.Record.Organism != t.Name {
		c.Add("taxonomy.name", "name mismatch: %s != %s", t.Name, ctx.Record.Organism)
	}
	if ctx.Record.NCBITaxID != t.NCBITaxID {
		c.Add("taxonomy.ncbiTaxId", "NCBI tax id mismatch: %d != %d", t.NCBITaxID, ctx.Record.NCBITaxID)
	}
	return c.Err()
}
