package convert

import (
	"strings"

	"github.com/mibig-secmet/bgconvert/internal/legacy"
	"github.com/mibig-secmet/bgconvert/internal/mibig"
)

// convertGenes migrates extra genes, gene annotations, and operons.
// Operons live under biosynthesis in v4, so they are appended to the
// already converted Biosynthesis instead of the returned Genes.
func convertGenes(cluster *legacy.Cluster, biosynthesis *mibig.Biosynthesis) (*mibig.Genes, error) {
	v3 := cluster.Genes
	if v3 == nil {
		return nil, nil
	}

	var toAdd []mibig.Addition
	for _, extraGene := range v3.ExtraGenes {
		if extraGene.Location == nil {
			return nil, errorf("extra gene %q has no location", extraGene.Id)
		}
		exons := make([]mibig.Location, 0, len(extraGene.Location.Exons))
		for _, exon := range extraGene.Location.Exons {
			exons = append(exons, mibig.Location{Begin: exon.Start, End: exon.End})
		}
		var translation *string
		if extraGene.Translation != "" {
			translation = &extraGene.Translation
		}
		toAdd = append(toAdd, mibig.Addition{
			Id:          mibig.NovelGeneId(extraGene.Id),
			Location:    mibig.GeneLocation{Exons: exons, Strand: extraGene.Location.Strand},
			Translation: translation,
		})
	}

	var annotations []mibig.Annotation
	for _, v3Gene := range v3.Annotations {
		annotation, err := convertAnnotation(v3Gene)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, annotation)
	}

	for _, v3Operon := range v3.Operons {
		genes := make([]mibig.GeneId, 0, len(v3Operon.Genes))
		for _, gene := range v3Operon.Genes {
			genes = append(genes, mibig.GeneId(gene))
		}
		evidence := make([]mibig.OperonEvidence, 0, len(v3Operon.Evidence))
		for _, method := range dropPredictions(v3Operon.Evidence) {
			evidence = append(evidence, mibig.OperonEvidence{Method: method, References: []mibig.Citation{}})
		}
		biosynthesis.Operons = append(biosynthesis.Operons, mibig.Operon{Genes: genes, Evidence: evidence})
	}

	return &mibig.Genes{ToAdd: toAdd, Annotations: annotations}, nil
}

func convertAnnotation(v3Gene legacy.GeneAnnotation) (mibig.Annotation, error) {
	geneID := mibig.GeneId(v3Gene.Id)

	var name mibig.NovelGeneId
	var aliases []mibig.NovelGeneId
	if v3Gene.Name != "" {
		parts := strings.Split(v3Gene.Name, "/")
		name = mibig.NovelGeneId(parts[0])
		for _, alias := range parts[1:] {
			aliases = append(aliases, mibig.NovelGeneId(alias))
		}
	}

	var domains []mibig.Domain
	for _, v3Domain := range v3Gene.Domains {
		domainType := mibig.DomainType(strings.ToLower(v3Domain.Name))
		if domainType != mibig.TypeAdenylation && domainType != mibig.TypeAmpBinding {
			return mibig.Annotation{}, errorf("domain conversion for %q not implemented", v3Domain.Name)
		}
		info, err := convertAnnotationAdenylation(v3Domain)
		if err != nil {
			return mibig.Annotation{}, err
		}
		domains = append(domains, mibig.Domain{
			Type:     domainType,
			Gene:     geneID,
			Location: mibig.Location{Begin: v3Domain.Location.Begin, End: v3Domain.Location.End},
			Info:     info,
		})
	}

	return mibig.Annotation{
		Id:      geneID,
		Name:    name,
		Aliases: aliases,
		Product: v3Gene.Product,
		Domains: domains,
	}, nil
}

func convertAnnotationAdenylation(v3Domain legacy.GeneDomain) (*mibig.Adenylation, error) {
	substrates := make([]mibig.AdenylationSubstrate, 0, len(v3Domain.Substrates))
	var evidence []mibig.SubstrateEvidence
	for _, v3Substrate := range v3Domain.Substrates {
		var structure *mibig.Smiles
		if v3Substrate.Structure != "" {
			smiles := mibig.Smiles(v3Substrate.Structure)
			structure = &smiles
		}
		substrate, err := mibig.NewAdenylationSubstrate(
			v3Substrate.Name, mibig.IsProteinogenic(v3Substrate.Name), structure)
		if err != nil {
			return nil, err
		}
		substrates = append(substrates, substrate)
		for _, method := range dropPredictions(v3Substrate.Evidence) {
			evidence = append(evidence, mibig.SubstrateEvidence{
				Method:     method,
				References: citations(v3Substrate.Publications),
			})
		}
	}
	return &mibig.Adenylation{
		Substrates:            substrates,
		Evidence:              evidence,
		PrecursorBiosynthesis: []mibig.GeneId{},
	}, nil
}
