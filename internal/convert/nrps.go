package convert

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mibig-secmet/bgconvert/internal/legacy"
	"github.com/mibig-secmet/bgconvert/internal/mibig"
)

func convertNRPS(v3 *legacy.NRP) ([]mibig.Module, *mibig.NRPS, error) {
	// Old style NRPSes are almost always Type I.
	info := &mibig.NRPS{Subclass: "Type I"}
	if v3 == nil {
		return nil, info, nil
	}

	var releaseTypes []mibig.ReleaseType
	for _, releaseType := range v3.ReleaseType {
		if releaseType == "Unknown" || releaseType == "Other" {
			continue
		}
		releaseTypes = append(releaseTypes, mibig.ReleaseType{Name: releaseType, References: []mibig.Citation{}})
	}
	info.ReleaseTypes = releaseTypes

	var thioesterases []mibig.Domain
	for _, v3Thioesterase := range v3.Thioesterases {
		var subtype string
		if v3Thioesterase.Type != "Unknown" {
			subtype = v3Thioesterase.Type
		}
		thioesterases = append(thioesterases, mibig.Domain{
			Type:     mibig.TypeThioesterase,
			Gene:     mibig.GeneId(v3Thioesterase.Gene),
			Location: placeholderLocation(),
			Info:     &mibig.ThioesteraseDomain{Subtype: subtype},
		})
	}
	info.Thioesterases = thioesterases

	var modules []mibig.Module
	moduleCount := 1
	// Modules can span CDS boundaries, the same module number on a later
	// gene extends the existing module instead of starting a new one.
	modulesByID := map[string]*mibig.Module{}
	for _, nrpsGene := range v3.NrpsGenes {
		added, err := convertNRPSModules(nrpsGene, &moduleCount, modulesByID)
		if err != nil {
			return nil, nil, err
		}
		modules = append(modules, added...)
	}

	result := make([]mibig.Module, 0, len(modules))
	for _, module := range modules {
		result = append(result, *modulesByID[module.Name])
	}
	return result, info, nil
}

func convertNRPSModules(nrpsGene legacy.NRPSGene, moduleCount *int, modulesByID map[string]*mibig.Module) ([]mibig.Module, error) {
	var modules []mibig.Module
	geneID := mibig.GeneId(nrpsGene.GeneId)
	for _, v3Module := range nrpsGene.Modules {
		moduleID := v3Module.ModuleNumber
		if moduleID == "" {
			moduleID = fmt.Sprintf("Unk%02d", *moduleCount)
			*moduleCount++
		}
		if existing, ok := modulesByID[moduleID]; ok {
			existing.Genes = append(existing.Genes, geneID)
			continue
		}

		if v3Module.Specificity == nil {
			slog.Warn("missing specificity for NRPS module", "module", moduleID)
			continue
		}
		spec := v3Module.Specificity

		var modificationDomains []mibig.Domain
		if spec.Epimerized {
			active := true
			modificationDomains = append(modificationDomains, mibig.Domain{
				Type:     mibig.TypeEpimerase,
				Gene:     geneID,
				Location: placeholderLocation(),
				Info:     &mibig.Epimerase{Active: &active},
			})
		}

		var carriers []mibig.Domain
		for _, v3Mod := range v3Module.ModificationDomains {
			var domainType mibig.DomainType
			var domainInfo mibig.DomainInfo
			switch {
			case v3Mod == "Methylation" || strings.HasSuffix(v3Mod, "-methylation"):
				var subtype string
				if strings.HasSuffix(v3Mod, "-methylation") {
					subtype = strings.SplitN(v3Mod, "-", 2)[0]
				}
				domainType = mibig.TypeMethyltransferase
				domainInfo = &mibig.Methyltransferase{Subtype: subtype}
			case v3Mod == "Epimerization":
				// Covered via the specificity block above.
				continue
			case v3Mod == "Phosphopantetheinyl transferase" || v3Mod == "Beta-branching":
				branching := v3Mod == "Beta-branching"
				carriers = append(carriers, mibig.Domain{
					Type:     mibig.TypeCarrier,
					Gene:     geneID,
					Location: placeholderLocation(),
					Info:     &mibig.Carrier{Subtype: mibig.CarrierPCP, BetaBranching: &branching},
				})
				continue
			case v3Mod == "Hydroxylation" || v3Mod == "beta-hydroxylation":
				domainType = mibig.TypeHydroxylase
				domainInfo = &mibig.Hydroxylase{}
			case v3Mod == "CoA-ligase":
				domainType = mibig.TypeLigase
				domainInfo = &mibig.Ligase{Substrates: []mibig.Smiles{}, Evidence: []mibig.SubstrateEvidence{}}
			case v3Mod == "Oxidation":
				domainType = mibig.TypeOxidase
				domainInfo = &mibig.Oxidase{}
			case v3Mod == "Unknown":
				continue
			default:
				return nil, errorf("unsupported NRPS modification domain %q", v3Mod)
			}
			modificationDomains = append(modificationDomains, mibig.Domain{
				Type:     domainType,
				Gene:     geneID,
				Location: placeholderLocation(),
				Info:     domainInfo,
			})
		}

		var cDomain *mibig.Domain
		if v3Module.CondensationType != "" {
			var subtype string
			if v3Module.CondensationType != "Unknown" {
				subtype = v3Module.CondensationType
			}
			cDomain = &mibig.Domain{
				Type:     mibig.TypeCondensation,
				Gene:     geneID,
				Location: placeholderLocation(),
				Info:     &mibig.Condensation{Subtype: subtype, Refs: []mibig.Citation{}},
			}
		}

		var substrates []mibig.AdenylationSubstrate
		for _, v3Substrate := range spec.Substrates() {
			var structure *mibig.Smiles
			if v3Substrate.Structure != "" {
				smiles := mibig.Smiles(v3Substrate.Structure)
				structure = &smiles
			}
			substrate, err := mibig.NewAdenylationSubstrate(v3Substrate.Name, v3Substrate.Proteinogenic, structure)
			if err != nil {
				return nil, err
			}
			substrates = append(substrates, substrate)
		}

		var evidence []mibig.SubstrateEvidence
		for _, method := range dropPredictions(spec.Evidence) {
			evidence = append(evidence, mibig.SubstrateEvidence{Method: method, References: []mibig.Citation{}})
		}
		if len(evidence) == 1 && len(spec.Publications) > 0 {
			evidence[0].References = citations(spec.Publications)
		}

		aDomain := mibig.Domain{
			Type:     mibig.TypeAdenylation,
			Gene:     geneID,
			Location: placeholderLocation(),
			Info: &mibig.Adenylation{
				Substrates:            substrates,
				Evidence:              evidence,
				PrecursorBiosynthesis: []mibig.GeneId{},
			},
		}

		module := mibig.Module{
			Type:   mibig.ModuleNrpsTypeI,
			Name:   moduleID,
			Genes:  []mibig.GeneId{geneID},
			Active: v3Module.Active,
			Info: &mibig.NrpsTypeI{
				ADomain:             aDomain,
				Carriers:            carriers,
				CDomain:             cDomain,
				ModificationDomains: modificationDomains,
			},
			NonCanonicalActivity: convertNonCanonical(v3Module.NonCanonical),
		}
		modules = append(modules, module)
		modulesByID[moduleID] = &module
	}
	return modules, nil
}

func convertNonCanonical(v3 *legacy.NonCanonical) *mibig.NonCanonicalActivity {
	if v3 == nil {
		return nil
	}
	evidence := make([]mibig.NcaEvidence, 0, len(v3.Evidence))
	for _, method := range dropPredictions(v3.Evidence) {
		evidence = append(evidence, mibig.NcaEvidence{Method: method, References: []mibig.Citation{}})
	}
	activity := &mibig.NonCanonicalActivity{Evidence: evidence}
	if v3.Skipped {
		skipped := true
		activity.Skipped = &skipped
	}
	if v3.NonElongating {
		nonElongating := true
		activity.NonElongating = &nonElongating
	}
	if v3.Iterated {
		activity.Iterations = mibig.UnknownIterations()
	}
	return activity
}
