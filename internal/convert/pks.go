package convert

import (
	"strings"

	"github.com/mibig-secmet/bgconvert/internal/legacy"
	"github.com/mibig-secmet/bgconvert/internal/mibig"
)

// carrierDomainNames are the v3 domain labels that fold into a single
// carrier domain in v4.
var carrierDomainNames = map[string]struct{}{
	"Thiolation (ACP/PCP)":            {},
	"ACP transacylase":                {},
	"Phosphopantetheinyl transferase": {},
	"Beta-branching":                  {},
}

func convertPKS(v3 *legacy.Polyketide) ([]mibig.Module, *mibig.PKS, error) {
	var modules []mibig.Module

	subclass := "Unknown"
	if v3 != nil {
		for _, sc := range v3.Subclasses {
			if strings.Contains(sc, "type") {
				subclass = sc
				break
			}
		}

		for _, synthase := range v3.Synthases {
			for _, sc := range synthase.Subclass {
				if strings.Contains(strings.ToLower(sc), "type") {
					subclass = sc
					break
				}
			}
			if subclass == "Modular type I" {
				subclass = "Type I"
			}
			for _, v3Module := range synthase.Modules {
				module, err := convertPKSModule(v3Module)
				if err != nil {
					return nil, nil, err
				}
				modules = append(modules, module)
			}
		}
	}

	return modules, &mibig.PKS{Subclass: subclass, Cyclases: []mibig.GeneId{}}, nil
}

func convertPKSModule(v3Module legacy.PKSModule) (mibig.Module, error) {
	if len(v3Module.Genes) == 0 {
		return mibig.Module{}, errorf("PKS module %q has no genes", v3Module.ModuleNumber)
	}
	genes := make([]mibig.GeneId, 0, len(v3Module.Genes))
	for _, gene := range v3Module.Genes {
		genes = append(genes, mibig.GeneId(gene))
	}

	var atDomain *mibig.Domain
	if containsDomain(v3Module.Domains, "Acyltransferase") {
		substrates := make([]mibig.ATSubstrate, 0, len(v3Module.AtSpecificities))
		for _, v3Spec := range v3Module.AtSpecificities {
			if v3Spec != "" && v3Spec[0] >= 'A' && v3Spec[0] <= 'Z' {
				v3Spec = strings.ToLower(v3Spec[:1]) + v3Spec[1:]
			}
			if mibig.ValidATSubstrateName(v3Spec) {
				substrates = append(substrates, mibig.ATSubstrate{Name: v3Spec})
			} else {
				substrates = append(substrates, mibig.ATSubstrate{Name: "other", Details: v3Spec})
			}
		}
		var evidence []mibig.SubstrateEvidence
		if v3Module.Evidence != "" && v3Module.Evidence != predictedEvidence {
			evidence = append(evidence, mibig.SubstrateEvidence{
				Method:     v3Module.Evidence,
				References: []mibig.Citation{},
			})
		}
		atDomain = &mibig.Domain{
			Type:     mibig.TypeAcyltransferase,
			Gene:     genes[0],
			Location: placeholderLocation(),
			Info:     &mibig.Acyltransferase{Substrates: substrates, Evidence: evidence},
		}
	}

	var ksDomain *mibig.Domain
	if containsDomain(v3Module.Domains, "Ketosynthase") {
		ksDomain = &mibig.Domain{
			Type:     mibig.TypeKetosynthase,
			Gene:     genes[0],
			Location: placeholderLocation(),
			Info:     &mibig.Ketosynthase{},
		}
	}

	var carriers []mibig.Domain
	for _, domain := range v3Module.Domains {
		if _, ok := carrierDomainNames[domain]; !ok {
			continue
		}
		branching := domain == "Beta-branching"
		carriers = append(carriers, mibig.Domain{
			Type:     mibig.TypeCarrier,
			Gene:     genes[0],
			Location: placeholderLocation(),
			Info:     &mibig.Carrier{Subtype: mibig.CarrierACP, BetaBranching: &branching},
		})
	}

	v3Domains := append([]string{}, v3Module.Domains...)
	v3Domains = append(v3Domains, v3Module.ModificationDomains...)

	var extraDomains []mibig.Domain
	for _, domain := range v3Domains {
		domain = strings.TrimSpace(domain)
		if domain == "Acyltransferase" || domain == "Ketosynthase" {
			continue
		}
		if _, ok := carrierDomainNames[domain]; ok {
			continue
		}
		domainType, domainInfo, err := convertPKSDomain(domain, v3Module.KrStereochem)
		if err != nil {
			return mibig.Module{}, err
		}
		extraDomains = append(extraDomains, mibig.Domain{
			Type:     domainType,
			Gene:     genes[0],
			Location: placeholderLocation(),
			Info:     domainInfo,
		})
	}

	var moduleType mibig.ModuleType
	var info mibig.ModuleInfo
	switch {
	case atDomain != nil && ksDomain != nil:
		moduleType = mibig.ModulePksModular
		info = &mibig.PksModular{
			AtDomain:            *atDomain,
			KsDomain:            *ksDomain,
			Carriers:            carriers,
			ModificationDomains: extraDomains,
		}
	case atDomain != nil:
		moduleType = mibig.ModulePksModularStarter
		info = &mibig.PksModularStarter{
			AtDomain:            *atDomain,
			Carriers:            carriers,
			ModificationDomains: extraDomains,
		}
	case ksDomain != nil:
		moduleType = mibig.ModulePksTransAt
		info = &mibig.PksTransAt{
			KsDomain:            *ksDomain,
			Carriers:            carriers,
			ModificationDomains: extraDomains,
		}
	default:
		moduleType = mibig.ModulePksTransAtStarter
		info = &mibig.PksTransAtStarter{
			Carriers:            carriers,
			ModificationDomains: extraDomains,
		}
	}

	return mibig.Module{
		Type:                 moduleType,
		Name:                 v3Module.ModuleNumber,
		Genes:                genes,
		Active:               true,
		Info:                 info,
		NonCanonicalActivity: convertNonCanonical(v3Module.NonCanonical),
	}, nil
}

func convertPKSDomain(domain, krStereochem string) (mibig.DomainType, mibig.DomainInfo, error) {
	switch domain {
	case "Ketoreductase":
		var stereochem string
		switch krStereochem {
		case "L-OH":
			stereochem = "A"
		case "D-OH":
			stereochem = "B"
		}
		return mibig.TypeKetoreductase, &mibig.Ketoreductase{Stereochemistry: stereochem}, nil
	case "Dehydratase":
		return mibig.TypeDehydratase, &mibig.Dehydratase{}, nil
	case "Enoylreductase":
		return mibig.TypeEnoylreductase, &mibig.Enoylreductase{}, nil
	case "Thioesterase":
		return mibig.TypeThioesterase, &mibig.ThioesteraseDomain{}, nil
	case "Thiol reductase":
		return mibig.TypeThioreductase, &mibig.Thioreductase{}, nil
	case "Methylation", "Methyltransferase", "MT":
		return mibig.TypeMethyltransferase, &mibig.Methyltransferase{}, nil
	case "Product Template domain":
		return mibig.TypeProductTemplate, &mibig.ProductTemplate{}, nil
	case "CoA-ligase":
		return mibig.TypeLigase, &mibig.Ligase{Substrates: []mibig.Smiles{}, Evidence: []mibig.SubstrateEvidence{}}, nil
	case "Michael branching", "B":
		return mibig.TypeBranching, &mibig.Branching{}, nil
	case "Epimerization":
		return mibig.TypeEpimerase, &mibig.Epimerase{}, nil
	case "Oxidase", "Oxidation", "OXY":
		return mibig.TypeOxidase, &mibig.Oxidase{}, nil
	case "Hydroxylation":
		return mibig.TypeHydroxylase, &mibig.Hydroxylase{}, nil
	case "Sulfotransferase":
		return mibig.TypeOtherDomain, &mibig.OtherDomain{Subtype: "Sulfotransferase"}, nil
	case "Pyran synthase":
		return mibig.TypeOtherDomain, &mibig.OtherDomain{Subtype: "Pyran synthase"}, nil
	case "GNAT":
		return mibig.TypeOtherDomain, &mibig.OtherDomain{Subtype: "GNAT"}, nil
	case "Enoyl-CoA dehydratase", "Crotonase / Enoyl-CoA dehydratase":
		return mibig.TypeOtherDomain, &mibig.OtherDomain{Subtype: "Enoyl-CoA dehydratase"}, nil
	case "FkbH":
		return mibig.TypeOtherDomain, &mibig.OtherDomain{Subtype: "FkbH"}, nil
	case "AFSA":
		return mibig.TypeOtherDomain, &mibig.OtherDomain{Subtype: "A-factor synthase A"}, nil
	}
	return "", nil, errorf("unknown PKS domain type %q", domain)
}

func containsDomain(domains []string, name string) bool {
	for _, domain := range domains {
		if domain == name {
			return true
		}
	}
	return false
}
