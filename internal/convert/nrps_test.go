package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mibig-secmet/bgconvert/internal/legacy"
	"github.com/mibig-secmet/bgconvert/internal/mibig"
)

func TestConvertNRPSMissingBlock(t *testing.T) {
	modules, info, err := convertNRPS(nil)
	require.NoError(t, err)
	assert.Empty(t, modules)
	assert.Equal(t, "Type I", info.Subclass)
}

func TestConvertNRPSReleaseTypesAndThioesterases(t *testing.T) {
	_, info, err := convertNRPS(&legacy.NRP{
		ReleaseType: []string{"Hydrolysis", "Unknown", "Other"},
		Thioesterases: []legacy.Thioesterase{
			{Gene: "srfAC", Type: "Type I"},
			{Gene: "srfAD", Type: "Unknown"},
		},
	})
	require.NoError(t, err)
	require.Len(t, info.ReleaseTypes, 1)
	assert.Equal(t, "Hydrolysis", info.ReleaseTypes[0].Name)
	require.Len(t, info.Thioesterases, 2)
	assert.Equal(t, mibig.GeneId("srfAC"), info.Thioesterases[0].Gene)
	assert.Equal(t, &mibig.ThioesteraseDomain{Subtype: "Type I"}, info.Thioesterases[0].Info)
	assert.Equal(t, &mibig.ThioesteraseDomain{}, info.Thioesterases[1].Info)
	assert.Equal(t, placeholderLocation(), info.Thioesterases[0].Location)
}

func TestConvertNRPSModule(t *testing.T) {
	modules, _, err := convertNRPS(&legacy.NRP{
		NrpsGenes: []legacy.NRPSGene{
			{
				GeneId: "bacA",
				Modules: []legacy.NRPSModule{
					{
						ModuleNumber:     "1",
						Active:           true,
						CondensationType: "Heterocyclization",
						ModificationDomains: []string{
							"N-methylation",
							"Beta-branching",
							"Unknown",
						},
						Specificity: &legacy.Specificity{
							Epimerized:    true,
							Proteinogenic: []string{"Glutamate"},
							Evidence:      []string{"Activity assay"},
							Publications:  []legacy.Publication{{Category: "pubmed", Content: "12345"}},
						},
					},
				},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, modules, 1)
	module := modules[0]
	assert.Equal(t, mibig.ModuleNrpsTypeI, module.Type)
	assert.Equal(t, "1", module.Name)
	assert.True(t, module.Active)

	info, ok := module.Info.(*mibig.NrpsTypeI)
	require.True(t, ok)

	adenylation, ok := info.ADomain.Info.(*mibig.Adenylation)
	require.True(t, ok)
	require.Len(t, adenylation.Substrates, 1)
	assert.Equal(t, "glutamic acid", adenylation.Substrates[0].Name)
	assert.True(t, adenylation.Substrates[0].Proteinogenic)
	require.Len(t, adenylation.Evidence, 1)
	assert.Equal(t, "Activity assay", adenylation.Evidence[0].Method)
	// The sole piece of evidence inherits the specificity publications.
	assert.Equal(t, []mibig.Citation{{Database: "pubmed", Value: "12345"}}, adenylation.Evidence[0].References)

	require.NotNil(t, info.CDomain)
	assert.Equal(t, &mibig.Condensation{Subtype: "Heterocyclization", Refs: []mibig.Citation{}}, info.CDomain.Info)

	require.Len(t, info.Carriers, 1)
	carrier, ok := info.Carriers[0].Info.(*mibig.Carrier)
	require.True(t, ok)
	assert.Equal(t, mibig.CarrierPCP, carrier.Subtype)
	require.NotNil(t, carrier.BetaBranching)
	assert.True(t, *carrier.BetaBranching)

	types := make([]mibig.DomainType, 0, len(info.ModificationDomains))
	for _, domain := range info.ModificationDomains {
		types = append(types, domain.Type)
	}
	assert.Equal(t, []mibig.DomainType{mibig.TypeEpimerase, mibig.TypeMethyltransferase}, types)
	methyltransferase, ok := info.ModificationDomains[1].Info.(*mibig.Methyltransferase)
	require.True(t, ok)
	assert.Equal(t, "N", methyltransferase.Subtype)
}

func TestConvertNRPSUnknownCondensationSubtype(t *testing.T) {
	modules, _, err := convertNRPS(&legacy.NRP{
		NrpsGenes: []legacy.NRPSGene{
			{
				GeneId: "bacA",
				Modules: []legacy.NRPSModule{
					{
						ModuleNumber:     "1",
						CondensationType: "Unknown",
						Specificity:      &legacy.Specificity{NonProteinogenic: []string{"pipecolic acid"}},
					},
				},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, modules, 1)
	info := modules[0].Info.(*mibig.NrpsTypeI)
	require.NotNil(t, info.CDomain)
	assert.Empty(t, info.CDomain.Info.(*mibig.Condensation).Subtype)
}

func TestConvertNRPSCrossCDSModule(t *testing.T) {
	modules, _, err := convertNRPS(&legacy.NRP{
		NrpsGenes: []legacy.NRPSGene{
			{
				GeneId: "lgrA",
				Modules: []legacy.NRPSModule{
					{ModuleNumber: "4", Specificity: &legacy.Specificity{Proteinogenic: []string{"Valine"}}},
				},
			},
			{
				GeneId: "lgrB",
				Modules: []legacy.NRPSModule{
					{ModuleNumber: "4"},
					{Specificity: &legacy.Specificity{Proteinogenic: []string{"Glycine"}}},
				},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, modules, 2)
	// The second gene extends module 4 instead of starting a new one.
	assert.Equal(t, "4", modules[0].Name)
	assert.Equal(t, []mibig.GeneId{"lgrA", "lgrB"}, modules[0].Genes)
	// Unnumbered modules get generated names.
	assert.Equal(t, "Unk01", modules[1].Name)
	assert.Equal(t, []mibig.GeneId{"lgrB"}, modules[1].Genes)
}

func TestConvertNRPSSkipsModulesWithoutSpecificity(t *testing.T) {
	modules, _, err := convertNRPS(&legacy.NRP{
		NrpsGenes: []legacy.NRPSGene{
			{GeneId: "bacA", Modules: []legacy.NRPSModule{{ModuleNumber: "1"}}},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, modules)
}

func TestConvertNRPSUnsupportedModificationDomain(t *testing.T) {
	_, _, err := convertNRPS(&legacy.NRP{
		NrpsGenes: []legacy.NRPSGene{
			{
				GeneId: "bacA",
				Modules: []legacy.NRPSModule{
					{
						ModuleNumber:        "1",
						ModificationDomains: []string{"Glycosylation"},
						Specificity:         &legacy.Specificity{Proteinogenic: []string{"Valine"}},
					},
				},
			},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported NRPS modification domain")
}

func TestConvertNonCanonical(t *testing.T) {
	assert.Nil(t, convertNonCanonical(nil))

	activity := convertNonCanonical(&legacy.NonCanonical{
		Evidence: []string{"Activity assay", "Sequence-based prediction"},
		Iterated: true,
		Skipped:  true,
	})
	require.NotNil(t, activity)
	require.Len(t, activity.Evidence, 1)
	assert.Equal(t, "Activity assay", activity.Evidence[0].Method)
	require.NotNil(t, activity.Skipped)
	assert.True(t, *activity.Skipped)
	assert.Nil(t, activity.NonElongating)
	require.NotNil(t, activity.Iterations)
	assert.Equal(t, mibig.UnknownIterations(), activity.Iterations)
}
