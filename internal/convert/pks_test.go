package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mibig-secmet/bgconvert/internal/legacy"
	"github.com/mibig-secmet/bgconvert/internal/mibig"
)

func TestConvertPKSMissingBlock(t *testing.T) {
	modules, info, err := convertPKS(nil)
	require.NoError(t, err)
	assert.Empty(t, modules)
	assert.Equal(t, "Unknown", info.Subclass)
	assert.NotNil(t, info.Cyclases)
}

func TestConvertPKSSubclass(t *testing.T) {
	_, info, err := convertPKS(&legacy.Polyketide{
		Subclasses: []string{"Macrolide"},
		Synthases:  []legacy.Synthase{{Genes: []string{"eryA"}, Subclass: []string{"Modular type I"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Type I", info.Subclass)
}

func TestConvertPKSModuleShapes(t *testing.T) {
	tests := []struct {
		name    string
		domains []string
		want    mibig.ModuleType
	}{
		{
			name:    "AT and KS form a modular module",
			domains: []string{"Ketosynthase", "Acyltransferase", "Thiolation (ACP/PCP)"},
			want:    mibig.ModulePksModular,
		},
		{
			name:    "AT without KS forms a modular starter",
			domains: []string{"Acyltransferase", "Thiolation (ACP/PCP)"},
			want:    mibig.ModulePksModularStarter,
		},
		{
			name:    "KS without AT forms a trans-AT module",
			domains: []string{"Ketosynthase", "Thiolation (ACP/PCP)"},
			want:    mibig.ModulePksTransAt,
		},
		{
			name:    "neither forms a trans-AT starter",
			domains: []string{"Thiolation (ACP/PCP)"},
			want:    mibig.ModulePksTransAtStarter,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module, err := convertPKSModule(legacy.PKSModule{
				Genes:        []string{"pksA"},
				Domains:      tt.domains,
				ModuleNumber: "1",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, module.Type)
			assert.True(t, module.Active)
		})
	}
}

func TestConvertPKSModuleDomains(t *testing.T) {
	module, err := convertPKSModule(legacy.PKSModule{
		Genes:               []string{"eryAI"},
		Domains:             []string{"Ketosynthase", "Acyltransferase", "Ketoreductase", "Thiolation (ACP/PCP)"},
		ModificationDomains: []string{"Methylation", "AFSA"},
		AtSpecificities:     []string{"Methylmalonyl-CoA", "Benzoyl-CoA"},
		KrStereochem:        "D-OH",
		Evidence:            "Activity assay",
		ModuleNumber:        "2",
	})
	require.NoError(t, err)

	info, ok := module.Info.(*mibig.PksModular)
	require.True(t, ok)

	at, ok := info.AtDomain.Info.(*mibig.Acyltransferase)
	require.True(t, ok)
	require.Len(t, at.Substrates, 2)
	assert.Equal(t, mibig.ATSubstrate{Name: "methylmalonyl-CoA"}, at.Substrates[0])
	// Names outside the vocabulary fall back to "other" with details.
	assert.Equal(t, mibig.ATSubstrate{Name: "other", Details: "benzoyl-CoA"}, at.Substrates[1])
	require.Len(t, at.Evidence, 1)
	assert.Equal(t, "Activity assay", at.Evidence[0].Method)

	require.Len(t, info.Carriers, 1)
	carrier := info.Carriers[0].Info.(*mibig.Carrier)
	assert.Equal(t, mibig.CarrierACP, carrier.Subtype)

	require.Len(t, info.ModificationDomains, 3)
	kr := info.ModificationDomains[0].Info.(*mibig.Ketoreductase)
	assert.Equal(t, "B", kr.Stereochemistry)
	assert.Equal(t, mibig.TypeMethyltransferase, info.ModificationDomains[1].Type)
	other := info.ModificationDomains[2].Info.(*mibig.OtherDomain)
	assert.Equal(t, "A-factor synthase A", other.Subtype)

	assert.Equal(t, placeholderLocation(), info.AtDomain.Location)
	assert.Equal(t, []mibig.GeneId{"eryAI"}, module.Genes)
}

func TestConvertPKSPredictedEvidenceDropped(t *testing.T) {
	module, err := convertPKSModule(legacy.PKSModule{
		Genes:           []string{"pksA"},
		Domains:         []string{"Acyltransferase"},
		AtSpecificities: []string{"Malonyl-CoA"},
		Evidence:        "Sequence-based prediction",
	})
	require.NoError(t, err)
	at := module.Info.(*mibig.PksModularStarter).AtDomain.Info.(*mibig.Acyltransferase)
	assert.Empty(t, at.Evidence)
}

func TestConvertPKSUnknownDomainFails(t *testing.T) {
	_, err := convertPKSModule(legacy.PKSModule{
		Genes:   []string{"pksA"},
		Domains: []string{"Flux capacitor"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown PKS domain type")
}

func TestConvertPKSModuleWithoutGenesFails(t *testing.T) {
	_, err := convertPKSModule(legacy.PKSModule{ModuleNumber: "3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no genes")
}
