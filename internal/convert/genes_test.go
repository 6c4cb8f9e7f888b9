package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mibig-secmet/bgconvert/internal/legacy"
	"github.com/mibig-secmet/bgconvert/internal/mibig"
)

func emptyBiosynthesis() *mibig.Biosynthesis {
	return &mibig.Biosynthesis{Operons: []mibig.Operon{}}
}

func TestConvertGenesMissingBlock(t *testing.T) {
	genes, err := convertGenes(&legacy.Cluster{}, emptyBiosynthesis())
	require.NoError(t, err)
	assert.Nil(t, genes)
}

func TestConvertExtraGenes(t *testing.T) {
	translation := "MKAYLII"
	genes, err := convertGenes(&legacy.Cluster{
		Genes: &legacy.Genes{
			ExtraGenes: []legacy.ExtraGene{
				{
					Id: "orf1",
					Location: &legacy.GeneLocation{
						Exons:  []legacy.Exon{{Start: 100, End: 250}, {Start: 300, End: 450}},
						Strand: -1,
					},
					Translation: translation,
				},
			},
		},
	}, emptyBiosynthesis())
	require.NoError(t, err)
	require.NotNil(t, genes)
	require.Len(t, genes.ToAdd, 1)
	addition := genes.ToAdd[0]
	assert.Equal(t, mibig.NovelGeneId("orf1"), addition.Id)
	assert.Equal(t, -1, addition.Location.Strand)
	assert.Equal(t, []mibig.Location{{Begin: 100, End: 250}, {Begin: 300, End: 450}}, addition.Location.Exons)
	require.NotNil(t, addition.Translation)
	assert.Equal(t, translation, *addition.Translation)
}

func TestConvertExtraGeneWithoutLocationFails(t *testing.T) {
	_, err := convertGenes(&legacy.Cluster{
		Genes: &legacy.Genes{ExtraGenes: []legacy.ExtraGene{{Id: "orf1"}}},
	}, emptyBiosynthesis())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no location")
}

func TestConvertAnnotationNamesAndDomains(t *testing.T) {
	genes, err := convertGenes(&legacy.Cluster{
		Genes: &legacy.Genes{
			Annotations: []legacy.GeneAnnotation{
				{
					Id:      "SCO1265",
					Name:    "absA1/cdaR",
					Product: "two-component sensor kinase",
					Domains: []legacy.GeneDomain{
						{
							Name:     "Adenylation",
							Location: legacy.DomainLocation{Begin: 12, End: 480},
							Substrates: []legacy.DomainSubstrate{
								{
									Name:         "Tryptophan",
									Evidence:     []string{"Activity assay", "Sequence-based prediction"},
									Publications: []legacy.Publication{{Category: "doi", Content: "10.1039/c3mb70016j"}},
								},
							},
						},
					},
				},
			},
		},
	}, emptyBiosynthesis())
	require.NoError(t, err)
	require.Len(t, genes.Annotations, 1)
	annotation := genes.Annotations[0]
	assert.Equal(t, mibig.GeneId("SCO1265"), annotation.Id)
	assert.Equal(t, mibig.NovelGeneId("absA1"), annotation.Name)
	assert.Equal(t, []mibig.NovelGeneId{"cdaR"}, annotation.Aliases)
	assert.Equal(t, "two-component sensor kinase", annotation.Product)

	require.Len(t, annotation.Domains, 1)
	domain := annotation.Domains[0]
	assert.Equal(t, mibig.TypeAdenylation, domain.Type)
	assert.Equal(t, mibig.Location{Begin: 12, End: 480}, domain.Location)
	adenylation, ok := domain.Info.(*mibig.Adenylation)
	require.True(t, ok)
	require.Len(t, adenylation.Substrates, 1)
	assert.Equal(t, "Tryptophan", adenylation.Substrates[0].Name)
	assert.True(t, adenylation.Substrates[0].Proteinogenic)
	require.NotNil(t, adenylation.Substrates[0].Structure)
	require.Len(t, adenylation.Evidence, 1)
	assert.Equal(t, "Activity assay", adenylation.Evidence[0].Method)
	assert.Equal(t, []mibig.Citation{{Database: "doi", Value: "10.1039/c3mb70016j"}}, adenylation.Evidence[0].References)
}

func TestConvertAnnotationRejectsOtherDomains(t *testing.T) {
	_, err := convertGenes(&legacy.Cluster{
		Genes: &legacy.Genes{
			Annotations: []legacy.GeneAnnotation{
				{
					Id:      "SCO1265",
					Domains: []legacy.GeneDomain{{Name: "Ketosynthase"}},
				},
			},
		},
	}, emptyBiosynthesis())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not implemented")
}

func TestConvertOperons(t *testing.T) {
	biosynthesis := emptyBiosynthesis()
	_, err := convertGenes(&legacy.Cluster{
		Genes: &legacy.Genes{
			Operons: []legacy.Operon{
				{
					Genes:    []string{"cdaPS1", "cdaPS2"},
					Evidence: []string{"RACE", "Sequence-based prediction"},
				},
			},
		},
	}, biosynthesis)
	require.NoError(t, err)
	require.Len(t, biosynthesis.Operons, 1)
	operon := biosynthesis.Operons[0]
	assert.Equal(t, []mibig.GeneId{"cdaPS1", "cdaPS2"}, operon.Genes)
	require.Len(t, operon.Evidence, 1)
	assert.Equal(t, "RACE", operon.Evidence[0].Method)
}
