package mibig

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/mibig-secmet/bgconvert/internal/seqrecord"
	"github.com/mibig-secmet/bgconvert/internal/validation"
)

var entryPattern = regexp.MustCompile(`^BGC\d{7,7}$`)

// Entry is a complete MIBiG 4.0 record.
type Entry struct {
	Accession         string            `json:"accession"`
	Version           int               `json:"version"`
	ChangeLog         ChangeLog         `json:"changelog"`
	Quality           QualityLevel      `json:"quality"`
	Status            StatusLevel       `json:"status"`
	Completeness      CompletenessLevel `json:"completeness"`
	Loci              []Locus           `json:"loci"`
	Biosynthesis      Biosynthesis      `json:"biosynthesis"`
	Compounds         []Compound        `json:"compounds"`
	Taxonomy          Taxonomy          `json:"taxonomy"`
	Genes             *Genes            `json:"genes,omitempty"`
	RetirementReasons []string          `json:"retirement_reasons,omitempty"`
	SeeAlso           []string          `json:"see_also,omitempty"`
	Comment           string            `json:"comment,omitempty"`
}

// NewEntry creates a validated Entry.
func NewEntry(entry Entry, record *seqrecord.Record) (*Entry, error) {
	if err := entry.Validate(record); err != nil {
		return nil, err
	}
	return &entry, nil
}

// EntryFromJSON decodes and validates a full entry. The validation
// context is derived from the quality level of the entry itself.
func EntryFromJSON(data []byte, record *seqrecord.Record) (*Entry, error) {
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decoding entry: %w", err)
	}
	if err := entry.Validate(record); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Validate checks the whole entity graph and collects every violation.
func (e *Entry) Validate(record *seqrecord.Record) error {
	ctx := Context{Quality: e.Quality, Record: record}
	var c validation.Collector
	if !entryPattern.MatchString(e.Accession) {
		c.Add("entry.accession", "invalid accession: %s", e.Accession)
	}
	if !e.Quality.Known() {
		c.Add("entry.quality", "invalid quality: %s", string(e.Quality))
	}
	if !e.Status.Known() {
		c.Add("entry.status", "invalid status: %s", string(e.Status))
	}
	if e.Status == StatusRetired && len(e.RetirementReasons) == 0 {
		c.Add("entry.retirement_reasons", "retirement reasons must be provided for retired entries")
	}
	if !e.Completeness.Known() {
		c.Add("entry.completeness", "invalid completeness: %s", string(e.Completeness))
	}
	if e.Version < 1 {
		c.Add("entry.version", "invalid version: %d", e.Version)
	}
	c.MergePrefixed("entry", e.ChangeLog.Validate(ctx))
	if len(e.Loci) == 0 {
		c.Add("entry.loci", "missing loci")
	}
	for i, locus := range e.Loci {
		c.MergePrefixed(validation.Index("entry.loci", i), locus.Validate(ctx))
	}
	c.MergePrefixed("entry", e.Biosynthesis.Validate(ctx))
	if len(e.Compounds) == 0 {
		c.Add("entry.compounds", "missing compounds")
	}
	for i, compound := range e.Compounds {
		c.MergePrefixed(validation.Index("entry.compounds", i), compound.Validate(ctx))
	}
	c.MergePrefixed("entry", e.Taxonomy.Validate(ctx))
	if e.Genes != nil {
		c.MergePrefixed("entry", e.Genes.Validate(ctx))
	}
	return c.Err()
}

// References lists every citation of the entry, sorted and deduplicated.
func (e *Entry) References() []Citation {
	set := map[Citation]struct{}{}
	for _, ref := range e.Biosynthesis.References() {
		set[ref] = struct{}{}
	}
	for _, compound := range e.Compounds {
		for _, evidence := range compound.Evidence {
			for _, ref := range evidence.References {
				set[ref] = struct{}{}
			}
		}
	}
	for _, locus := range e.Loci {
		for _, evidence := range locus.Evidence {
			for _, ref := range evidence.References {
				set[ref] = struct{}{}
			}
		}
	}
	if e.Genes != nil {
		for _, annotation := range e.Genes.Annotations {
			for _, function := range annotation.Functions {
				for _, ref := range function.References() {
					set[ref] = struct{}{}
				}
			}
		}
	}
	return sortCitations(set)
}
