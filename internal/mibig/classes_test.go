package mibig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassRoundTrip(t *testing.T) {
	raw := `{"class":"NRPS","subclass":"Type I"}`

	var class BiosynthesisClass
	require.NoError(t, json.Unmarshal([]byte(raw), &class))
	assert.Equal(t, ClassNRPS, class.Class)

	nrps, ok := class.Info.(*NRPS)
	require.True(t, ok)
	assert.Equal(t, "Type I", nrps.Subclass)

	out, err := json.Marshal(class)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestClassRejectsUnknownTag(t *testing.T) {
	err := json.Unmarshal([]byte(`{"class":"meroterpenoid"}`), &BiosynthesisClass{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid class "meroterpenoid"`)
}

func TestClassPayloadChecksSkippedAtLowestTier(t *testing.T) {
	class := BiosynthesisClass{Class: ClassNRPS, Info: &NRPS{Subclass: "Type IX"}}
	assert.NoError(t, class.Validate(looseContext()), "imported legacy payloads are kept as-is")
	assert.Error(t, class.Validate(strictContext()))
}

func TestPKSAlwaysEmitsCyclases(t *testing.T) {
	class := BiosynthesisClass{Class: ClassPKS, Info: &PKS{Subclass: "Type III"}}
	out, err := json.Marshal(class)
	require.NoError(t, err)
	assert.JSONEq(t, `{"class":"PKS","subclass":"Type III","cyclases":[]}`, string(out))
}

func TestPKSKetideLength(t *testing.T) {
	pks := &PKS{Subclass: "Type I", KetideLength: -2}
	assert.Error(t, pks.Validate(strictContext()))
	pks.KetideLength = 8
	assert.NoError(t, pks.Validate(strictContext()))
}

func TestCrosslinkBounds(t *testing.T) {
	cds := mustCDS(t, "precA", "MKLVVNDEQS")

	assert.NoError(t, Crosslink{Begin: 2, End: 8}.Validate(cds))
	assert.Error(t, Crosslink{Begin: 8, End: 2}.Validate(cds))
	assert.Error(t, Crosslink{Begin: -1, End: 5}.Validate(cds))
	assert.Error(t, Crosslink{Begin: 2, End: 11}.Validate(cds), "end past the translation")
	assert.NoError(t, Crosslink{Begin: 2, End: 11}.Validate(nil), "no CDS, no length bound")
}

func TestPrecursorFollowerCleavageKeySpelling(t *testing.T) {
	precursor := Precursor{
		Gene:                     "precA",
		CoreSequence:             "ITSISLCTPGCKTGALMGCNMKTATCHCSIHVSK",
		FollowerCleavageLocation: &Location{Begin: 10, End: 12},
	}
	out, err := json.Marshal(precursor)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"follower_clavage_location"`)
}

func TestRibosomalRippTypeRules(t *testing.T) {
	ribo := &Ribosomal{Subclass: RibosomalRiPP, RippType: "Lanthipeptide"}
	assert.NoError(t, ribo.Validate(strictContext()))

	ribo.RippType = "Lantipeptide"
	assert.Error(t, ribo.Validate(strictContext()))
	assert.NoError(t, ribo.Validate(looseContext()), "the type vocabulary only binds above the lowest tier")

	ribo.RippType = "other"
	assert.Error(t, ribo.Validate(strictContext()))
	ribo.Details = "circular bacteriocin"
	assert.NoError(t, ribo.Validate(strictContext()))
}

func TestRibosomalAlwaysEmitsPrecursors(t *testing.T) {
	class := BiosynthesisClass{Class: ClassRibosomal, Info: &Ribosomal{Subclass: RibosomalUnmodified}}
	out, err := json.Marshal(class)
	require.NoError(t, err)
	assert.JSONEq(t, `{"class":"ribosomal","subclass":"unmodified","precursors":[]}`, string(out))
}

func TestSaccharideReferencesAggregated(t *testing.T) {
	ref1 := Citation{Database: "pubmed", Value: "111"}
	ref2 := Citation{Database: "pubmed", Value: "222"}
	sac := &Saccharide{
		Glycosyltransferases: []Glycosyltransferase{{
			Gene:     "gtfA",
			Evidence: []GTEvidence{{Method: "Activity assay", References: []Citation{ref2}}},
		}},
		Subclusters: []Subcluster{{Genes: []GeneId{"gtfB"}, References: []Citation{ref1, ref2}}},
	}
	assert.Equal(t, []Citation{ref1, ref2}, sac.References())
}

func TestTerpenePrecursorVocabulary(t *testing.T) {
	terpene := &Terpene{Subclass: "Diterpene", Precursor: "GGPP"}
	assert.NoError(t, terpene.Validate(strictContext()))
	terpene.Precursor = "HMG-CoA"
	assert.Error(t, terpene.Validate(strictContext()))
}

func TestOtherClassNeedsDetails(t *testing.T) {
	assert.NoError(t, (&OtherClass{Subclass: "ectoine"}).Validate(strictContext()))
	assert.Error(t, (&OtherClass{Subclass: "other"}).Validate(strictContext()))
	assert.NoError(t, (&OtherClass{Subclass: "other", Details: "pseudo-oligosaccharide"}).Validate(strictContext()))
}

func TestBiosynthesisNeedsAClass(t *testing.T) {
	bio := &Biosynthesis{}
	err := bio.Validate(looseContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one class is required")
}

func TestBiosynthesisGenesReferenced(t *testing.T) {
	bio := &Biosynthesis{
		Classes: []BiosynthesisClass{{Class: ClassOther, Info: &OtherClass{Subclass: "ectoine"}}},
		Modules: []Module{{Type: ModuleOther, Genes: []GeneId{"ectB", "ectA"}, Info: &OtherModule{Subtype: "ectoine"}}},
		Operons: []Operon{{Genes: []GeneId{"ectA", "ectC"}}},
	}
	assert.Equal(t, []GeneId{"ectA", "ectB", "ectC"}, bio.GenesReferenced())
}
