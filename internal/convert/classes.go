package convert

import (
	"strings"

	"github.com/mibig-secmet/bgconvert/internal/legacy"
	"github.com/mibig-secmet/bgconvert/internal/mibig"
)

var classMapping = map[string]mibig.SynthesisType{
	"NRP":        mibig.ClassNRPS,
	"Polyketide": mibig.ClassPKS,
	"RiPP":       mibig.ClassRibosomal,
	"Saccharide": mibig.ClassSaccharide,
	"Terpene":    mibig.ClassTerpene,
	"Other":      mibig.ClassOther,
}

func convertBiosynthesis(cluster *legacy.Cluster) (*mibig.Biosynthesis, error) {
	var classes []mibig.BiosynthesisClass
	var modules []mibig.Module

	var otherSubclass, otherDetails string

	for _, v3Class := range cluster.BiosyntheticClass {
		className, ok := classMapping[v3Class]
		if !ok {
			// Alkaloids stopped being a class, they fold into "other".
			if v3Class != "Alkaloid" {
				return nil, errorf("unknown biosynthetic class %q", v3Class)
			}
			className = mibig.ClassOther
			otherSubclass = "other"
			otherDetails = "converted from 'Alkaloid'"
		}

		var info mibig.ClassInfo
		switch className {
		case mibig.ClassNRPS:
			addedModules, nrpsInfo, err := convertNRPS(cluster.NRP)
			if err != nil {
				return nil, err
			}
			modules = append(modules, addedModules...)
			info = nrpsInfo
		case mibig.ClassPKS:
			addedModules, pksInfo, err := convertPKS(cluster.Polyketide)
			if err != nil {
				return nil, err
			}
			modules = append(modules, addedModules...)
			info = pksInfo
		case mibig.ClassRibosomal:
			info = convertRibosomal(cluster.RiPP)
		case mibig.ClassSaccharide:
			info = convertSaccharide(cluster.Saccharide)
		case mibig.ClassTerpene:
			info = convertTerpene(cluster.Terpene)
		case mibig.ClassOther:
			info = convertOther(cluster.Other, otherSubclass, otherDetails)
		}

		classes = append(classes, mibig.BiosynthesisClass{Class: className, Info: info})
	}

	return &mibig.Biosynthesis{Classes: classes, Modules: modules, Operons: []mibig.Operon{}}, nil
}

func convertOther(v3 *legacy.Other, otherSubclass, otherDetails string) *mibig.OtherClass {
	if v3 != nil {
		subclass := strings.ToLower(v3.Subclass)
		if subclass == "unknown" || subclass == "other" {
			return &mibig.OtherClass{Subclass: "other", Details: "converted from v3 without extra details"}
		}
		return &mibig.OtherClass{Subclass: subclass}
	}
	if otherSubclass != "" {
		return &mibig.OtherClass{Subclass: otherSubclass, Details: otherDetails}
	}
	return &mibig.OtherClass{Subclass: "other", Details: "converted from v3 without extra details"}
}

func convertSaccharide(v3 *legacy.Saccharide) *mibig.Saccharide {
	glycosyltransferases := []mibig.Glycosyltransferase{}
	var subclusters []mibig.Subcluster
	var subclass string
	if v3 != nil {
		subclass = v3.Subclass
		for _, gt := range v3.GlycosylTransferases {
			evidence := make([]mibig.GTEvidence, 0, len(gt.Evidence))
			for _, method := range dropPredictions(gt.Evidence) {
				evidence = append(evidence, mibig.GTEvidence{Method: method, References: []mibig.Citation{}})
			}
			// The v3 free-text specificity has no SMILES equivalent.
			specificity := mibig.Smiles("[To][Do]")
			glycosyltransferases = append(glycosyltransferases, mibig.Glycosyltransferase{
				Gene:        mibig.GeneId(gt.GeneId),
				Evidence:    evidence,
				Specificity: &specificity,
			})
		}
		for _, v3Subcluster := range v3.SugarSubclusters {
			genes := make([]mibig.GeneId, 0, len(v3Subcluster))
			for _, gene := range v3Subcluster {
				genes = append(genes, mibig.GeneId(gene))
			}
			subclusters = append(subclusters, mibig.Subcluster{Genes: genes, References: []mibig.Citation{}})
		}
	}
	return &mibig.Saccharide{
		Glycosyltransferases: glycosyltransferases,
		Subclass:             subclass,
		Subclusters:          subclusters,
	}
}

func convertTerpene(v3 *legacy.Terpene) *mibig.Terpene {
	if v3 == nil {
		return &mibig.Terpene{Subclass: "Unknown"}
	}
	prenyltransferases := make([]mibig.GeneId, 0, len(v3.Prenyltransferases))
	for _, pt := range v3.Prenyltransferases {
		prenyltransferases = append(prenyltransferases, mibig.GeneId(pt))
	}
	synthases := make([]mibig.GeneId, 0, len(v3.SynthasesCyclases))
	for _, synthase := range v3.SynthasesCyclases {
		synthases = append(synthases, mibig.GeneId(synthase))
	}
	return &mibig.Terpene{
		Subclass:           v3.CarbonCountSubclass,
		Prenyltransferases: prenyltransferases,
		Synthases:          synthases,
	}
}

func convertRibosomal(v3 *legacy.RiPP) *mibig.Ribosomal {
	if v3 == nil {
		return &mibig.Ribosomal{Subclass: mibig.RibosomalRiPP, Precursors: []mibig.Precursor{}}
	}

	subclass := mibig.RibosomalUnmodified
	var rippType string
	if mibig.ValidRippType(v3.Subclass) {
		subclass = mibig.RibosomalRiPP
		rippType = v3.Subclass
	}

	precursors := make([]mibig.Precursor, 0, len(v3.PrecursorGenes))
	for _, v3Precursor := range v3.PrecursorGenes {
		var crosslinks []mibig.Crosslink
		for _, v3Crosslink := range v3Precursor.Crosslinks {
			crosslinks = append(crosslinks, mibig.Crosslink{
				Begin:    v3Crosslink.FirstAAPosition,
				End:      v3Crosslink.SecondAAPosition,
				LinkType: v3Crosslink.Type,
			})
		}
		var leaderCleavage *mibig.Location
		if v3Precursor.LeaderSequence != "" {
			leaderLen := len(v3Precursor.LeaderSequence)
			leaderCleavage = &mibig.Location{Begin: leaderLen - 1, End: leaderLen}
		}
		precursors = append(precursors, mibig.Precursor{
			Gene:                   mibig.GeneId(v3Precursor.GeneId),
			CoreSequence:           strings.Join(v3Precursor.CoreSequence, ","),
			Crosslinks:             crosslinks,
			LeaderCleavageLocation: leaderCleavage,
		})
	}

	peptidases := make([]mibig.GeneId, 0, len(v3.Peptidases))
	for _, peptidase := range v3.Peptidases {
		peptidases = append(peptidases, mibig.GeneId(peptidase))
	}

	return &mibig.Ribosomal{
		Subclass:   subclass,
		Precursors: precursors,
		RippType:   rippType,
		Peptidases: peptidases,
	}
}
