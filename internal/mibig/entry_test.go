package mibig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalEntry() Entry {
	return Entry{
		Accession: "BGC0000001",
		Version:   2,
		ChangeLog: ChangeLog{Releases: []Release{{
			Version: "1.0",
			Date:    "2015-06-12",
			Entries: []ReleaseEntry{{
				Contributors: []SubmitterID{MibigSubmitter},
				Date:         "2015-06-12",
				Comment:      "Submitted",
			}},
		}}},
		Quality:      QualityQuestionable,
		Status:       StatusActive,
		Completeness: CompletenessComplete,
		Loci: []Locus{{
			Accession: "AM420293.1",
			Location:  Location{Begin: 1, End: 120000},
		}},
		Biosynthesis: Biosynthesis{
			Classes: []BiosynthesisClass{{Class: ClassPKS, Info: &PKS{Subclass: "Type I"}}},
		},
		Compounds: []Compound{{Name: "erythromycin A"}},
		Taxonomy:  Taxonomy{Name: "Saccharopolyspora erythraea", NCBITaxID: 1836},
	}
}

func TestEntryValidates(t *testing.T) {
	entry := minimalEntry()
	assert.NoError(t, entry.Validate(nil))
}

func TestEntryAccessionPattern(t *testing.T) {
	entry := minimalEntry()
	entry.Accession = "BGC1"
	err := entry.Validate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid accession")
}

func TestRetiredEntryNeedsReasons(t *testing.T) {
	entry := minimalEntry()
	entry.Status = StatusRetired
	err := entry.Validate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retirement reasons")

	entry.RetirementReasons = []string{"Duplicate of BGC0000054"}
	assert.NoError(t, entry.Validate(nil))
}

func TestEntryStricterTiersTightenChecks(t *testing.T) {
	entry := minimalEntry()
	entry.Quality = QualityMedium
	err := entry.Validate(nil)
	require.Error(t, err, "missing reviewers and compound evidence both surface")
	assert.Contains(t, err.Error(), "missing reviewers")
	assert.Contains(t, err.Error(), "missing evidence")
}

func TestEntryFromJSON(t *testing.T) {
	raw := `{
		"accession": "BGC0000002",
		"version": 1,
		"changelog": {"releases": [{
			"version": "next",
			"entries": [{
				"contributors": ["AAAAAAAAAAAAAAAAAAAAAAAA"],
				"date": "2024-05-01",
				"comment": "Imported"
			}]
		}]},
		"quality": "questionable",
		"status": "active",
		"completeness": "partial",
		"loci": [{"accession": "AB070940.1", "location": {"from": 1, "to": 40000}}],
		"biosynthesis": {"classes": [{"class": "ribosomal", "subclass": "RiPP", "precursors": []}]},
		"compounds": [{"name": "microbisporicin"}],
		"taxonomy": {"name": "Microbispora corallina", "ncbiTaxId": 83869}
	}`

	entry, err := EntryFromJSON([]byte(raw), nil)
	require.NoError(t, err)
	assert.Equal(t, "BGC0000002", entry.Accession)
	require.Len(t, entry.Biosynthesis.Classes, 1)
	_, ok := entry.Biosynthesis.Classes[0].Info.(*Ribosomal)
	assert.True(t, ok)
}

func TestEntryRecordCrossChecks(t *testing.T) {
	ctx := recordContext(t, QualityQuestionable)
	entry := minimalEntry()
	entry.Taxonomy = Taxonomy{Name: "wrong organism", NCBITaxID: 1}
	err := entry.Validate(ctx.Record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accession mismatch")
	assert.Contains(t, err.Error(), "name mismatch")
}

func TestEntryReferencesDeduplicated(t *testing.T) {
	ref := Citation{Database: "pubmed", Value: "12345"}
	entry := minimalEntry()
	entry.Compounds[0].Evidence = []CompoundEvidence{{Method: "NMR", References: []Citation{ref}}}
	entry.Loci[0].Evidence = []LocusEvidence{{Method: "Knock-out studies", References: []Citation{ref}}}
	assert.Equal(t, []Citation{ref}, entry.References())
}
