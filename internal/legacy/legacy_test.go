package legacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`{
	  "changelog": [
	    {
	      "comments": ["Submitted"],
	      "contributors": ["BBBBBBBBBBBBBBBBBBBBBBBB"],
	      "version": "1.0"
	    }
	  ],
	  "cluster": {
	    "biosyn_class": ["NRP"],
	    "compounds": [{"compound": "bacitracin"}],
	    "loci": {
	      "accession": "AF007865.1",
	      "completeness": "complete",
	      "evidence": ["Knock-out studies"]
	    },
	    "mibig_accession": "BGC0000310",
	    "minimal": false,
	    "ncbi_tax_id": "1402",
	    "organism_name": "Bacillus licheniformis",
	    "publications": ["pubmed:8695627", "doi:10.1074/jbc.270.11.6163"],
	    "status": "active"
	  }
	}`)
	v3, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "BGC0000310", v3.Cluster.MibigAccession)
	assert.Equal(t, []string{"NRP"}, v3.Cluster.BiosyntheticClass)
	require.Len(t, v3.ChangeLog, 1)
	assert.Equal(t, "1.0", v3.ChangeLog[0].MibigVersion)
	require.Len(t, v3.Cluster.Publications, 2)
	assert.Equal(t, Publication{Category: "doi", Content: "10.1074/jbc.270.11.6163"}, v3.Cluster.Publications[1])
}

func TestParseRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "bad publication category",
			data: `{"changelog": [], "cluster": {"biosyn_class": ["NRP"], "compounds": [{"compound": "x"}],
			  "mibig_accession": "BGC0000310", "ncbi_tax_id": "1", "organism_name": "x", "minimal": true,
			  "status": "active", "publications": ["isbn:12345"]}}`,
		},
		{
			name: "bad accession",
			data: `{"changelog": [], "cluster": {"biosyn_class": ["NRP"], "compounds": [{"compound": "x"}],
			  "mibig_accession": "MIBIG310", "ncbi_tax_id": "1", "organism_name": "x", "minimal": true,
			  "status": "active", "publications": ["pubmed:12345"]}}`,
		},
		{
			name: "bad class",
			data: `{"changelog": [], "cluster": {"biosyn_class": ["Steroid"], "compounds": [{"compound": "x"}],
			  "mibig_accession": "BGC0000310", "ncbi_tax_id": "1", "organism_name": "x", "minimal": true,
			  "status": "active", "publications": ["pubmed:12345"]}}`,
		},
		{
			name: "no compounds",
			data: `{"changelog": [], "cluster": {"biosyn_class": ["NRP"], "compounds": [],
			  "mibig_accession": "BGC0000310", "ncbi_tax_id": "1", "organism_name": "x", "minimal": true,
			  "status": "active", "publications": ["pubmed:12345"]}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestSpecificitySubstrates(t *testing.T) {
	spec := &Specificity{
		Proteinogenic:    []string{"Glutamate", "Aspartate", "Valine"},
		NonProteinogenic: []string{"pipecolic acid"},
	}
	subs := spec.Substrates()
	require.Len(t, subs, 4)
	assert.Equal(t, SubstrateRef{Name: "glutamic acid", Proteinogenic: true}, subs[0])
	assert.Equal(t, SubstrateRef{Name: "aspartic acid", Proteinogenic: true}, subs[1])
	assert.Equal(t, SubstrateRef{Name: "Valine", Proteinogenic: true}, subs[2])
	assert.Equal(t, SubstrateRef{Name: "pipecolic acid"}, subs[3])
}

func TestChangeVersionRules(t *testing.T) {
	valid := Change{MibigVersion: "2.0", Comments: []string{"x"}, Contributors: []string{"A"}}
	assert.NoError(t, valid.Validate())
	next := Change{MibigVersion: "next", Comments: []string{"x"}, Contributors: []string{"A"}}
	assert.NoError(t, next.Validate())
	bad := Change{MibigVersion: "two", Comments: []string{"x"}, Contributors: []string{"A"}}
	assert.Error(t, bad.Validate())
}
