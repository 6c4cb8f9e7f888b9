// Package seqrecord holds the minimal view of a sequence record that entry
// validation needs: record identity, length, organism, and the coding
// sequences gene references must resolve against.
package seqrecord

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// invalidChars matches characters that never appear in clean identifiers.
var invalidChars = regexp.MustCompile("[!?,;:=+*&^%$#@ \t\n\r\\\\/\\[\\]{}()<>|~`'\"]")

// SanitiseIdentifier strips invalid characters from an identifier.
func SanitiseIdentifier(identifier string) string {
	return invalidChars.ReplaceAllString(identifier, "")
}

// CDS is a coding sequence with up to three name candidates.
type CDS struct {
	LocusTag    string `json:"locus_tag,omitempty"`
	Gene        string `json:"gene,omitempty"`
	ProteinID   string `json:"protein_id,omitempty"`
	Translation string `json:"translation,omitempty"`
}

// NewCDS creates a CDS, requiring at least one name candidate. Identifiers
// are sanitised on the way in.
func NewCDS(locusTag, gene, proteinID, translation string) (*CDS, error) {
	if locusTag == "" && gene == "" && proteinID == "" {
		return nil, fmt.Errorf("seqrecord: at least one of locus_tag, gene, or protein_id is required")
	}
	return &CDS{
		LocusTag:    SanitiseIdentifier(locusTag),
		Gene:        SanitiseIdentifier(gene),
		ProteinID:   SanitiseIdentifier(proteinID),
		Translation: translation,
	}, nil
}

// Name returns the preferred name: locus tag, then gene, then protein id.
func (c *CDS) Name() string {
	if c.LocusTag != "" {
		return c.LocusTag
	}
	if c.Gene != "" {
		return c.Gene
	}
	return c.ProteinID
}

// HasName reports whether name matches any of the name candidates.
func (c *CDS) HasName(name string) bool {
	return name != "" && (name == c.LocusTag || name == c.Gene || name == c.ProteinID)
}

// TranslationLength returns the length of the protein translation, 0 when
// no translation is recorded.
func (c *CDS) TranslationLength() int {
	return len(c.Translation)
}

// Record is a sequence record with CDS lookup by any name candidate.
type Record struct {
	ID        string `json:"id"`
	SeqLen    int    `json:"seq_len"`
	NCBITaxID int    `json:"ncbi_tax_id,omitempty"`
	Organism  string `json:"organism,omitempty"`
	CDSes     []*CDS `json:"cdses"`

	byLocus   map[string]*CDS
	byGene    map[string]*CDS
	byProtein map[string]*CDS
}

// NewRecord creates a Record and indexes its CDSes.
func NewRecord(id string, cdses []*CDS, seqLen int, ncbiTaxID int, organism string) (*Record, error) {
	if id == "" {
		return nil, fmt.Errorf("seqrecord: record id is required")
	}
	r := &Record{
		ID:        id,
		SeqLen:    seqLen,
		NCBITaxID: ncbiTaxID,
		Organism:  organism,
		CDSes:     cdses,
	}
	r.index()
	return r, nil
}

func (r *Record) index() {
	r.byLocus = make(map[string]*CDS)
	r.byGene = make(map[string]*CDS)
	r.byProtein = make(map[string]*CDS)
	for _, cds := range r.CDSes {
		if cds.LocusTag != "" {
			r.byLocus[cds.LocusTag] = cds
		}
		if cds.Gene != "" {
			r.byGene[cds.Gene] = cds
		}
		if cds.ProteinID != "" {
			r.byProtein[cds.ProteinID] = cds
		}
	}
}

// GetCDS looks up a CDS by locus tag, then gene name, then protein id.
func (r *Record) GetCDS(name string) *CDS {
	if cds, ok := r.byLocus[name]; ok {
		return cds
	}
	if cds, ok := r.byGene[name]; ok {
		return cds
	}
	return r.byProtein[name]
}

// HasCDS reports whether any CDS answers to name.
func (r *Record) HasCDS(name string) bool {
	return r.GetCDS(name) != nil
}

// LoadRecords reads a pre-extracted JSON record index file. Genomic-format
// parsing happens upstream; the converter only consumes the extract.
func LoadRecords(path string) ([]*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seqrecord: read %s: %w", path, err)
	}
	var records []*Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("seqrecord: parse %s: %w", path, err)
	}
	for _, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("seqrecord: record without id in %s", path)
		}
		r.index()
	}
	return records, nil
}
