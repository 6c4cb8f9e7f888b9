package legacy

import (
	"strings"

	"github.com/mibig-secmet/bgconvert/internal/validation"
)

var biosyntheticClasses = map[string]struct{}{
	"Alkaloid":   {},
	"Polyketide": {},
	"RiPP":       {},
	"NRP":        {},
	"Saccharide": {},
	"Terpene":    {},
	"Other":      {},
}

// Cluster is the main body of a v3 entry.
type Cluster struct {
	BiosyntheticClass []string      `json:"biosyn_class"`
	MibigAccession    string        `json:"mibig_accession"`
	Compounds         []Compound    `json:"compounds"`
	Publications      []Publication `json:"publications"`
	OrganismName      string        `json:"organism_name"`
	NcbiTaxID         string        `json:"ncbi_tax_id"`
	Minimal           bool          `json:"minimal"`
	Status            string        `json:"status"`
	RetirementReasons []string      `json:"retirement_reasons,omitempty"`
	SeeAlso           []string      `json:"see_also,omitempty"`

	Loci       *Loci       `json:"loci,omitempty"`
	Genes      *Genes      `json:"genes,omitempty"`
	Alkaloid   *Alkaloid   `json:"alkaloid,omitempty"`
	NRP        *NRP        `json:"nrp,omitempty"`
	Other      *Other      `json:"other,omitempty"`
	Polyketide *Polyketide `json:"polyketide,omitempty"`
	RiPP       *RiPP       `json:"ripp,omitempty"`
	Saccharide *Saccharide `json:"saccharide,omitempty"`
	Terpene    *Terpene    `json:"terpene,omitempty"`
}

func (c Cluster) Validate() error {
	var col validation.Collector
	if len(c.BiosyntheticClass) == 0 {
		col.Add("biosyn_class", "missing biosynthetic classes")
	}
	for _, class := range c.BiosyntheticClass {
		if _, ok := biosyntheticClasses[class]; !ok {
			col.Add("biosyn_class", "invalid biosynthetic class %q", class)
		}
	}
	if !strings.HasPrefix(c.MibigAccession, "BGC") || len(c.MibigAccession) != 10 {
		col.Add("mibig_accession", "invalid accession %q", c.MibigAccession)
	}
	if len(c.Compounds) == 0 {
		col.Add("compounds", "missing compounds")
	}
	if len(c.Publications) == 0 {
		col.Add("publications", "missing publications")
	}
	if !c.Minimal && (c.Loci == nil || len(c.Loci.Evidence) == 0) {
		col.Add("loci", "non-minimal entries need locus evidence")
	}
	if c.Genes != nil {
		col.MergePrefixed("genes", c.Genes.Validate())
	}
	return col.Err()
}

// Loci locates the cluster on a database record.
type Loci struct {
	Accession     string   `json:"accession"`
	Completeness  string   `json:"completeness"`
	Start         int      `json:"start_coord,omitempty"`
	End           int      `json:"end_coord,omitempty"`
	MixsCompliant bool     `json:"mixs_compliant,omitempty"`
	Evidence      []string `json:"evidence,omitempty"`
}

// Compound is a v3 compound annotation.
type Compound struct {
	ChemActs         []string     `json:"chem_acts,omitempty"`
	ChemMoieties     []Moiety     `json:"chem_moieties,omitempty"`
	ChemStruct       string       `json:"chem_struct,omitempty"`
	ChemSynonyms     []string     `json:"chem_synonyms,omitempty"`
	ChemTargets      []ChemTarget `json:"chem_targets,omitempty"`
	Name             string       `json:"compound"`
	DatabaseID       []DatabaseID `json:"database_id,omitempty"`
	Evidence         []string     `json:"evidence,omitempty"`
	MassSpecIonType  string       `json:"mass_spec_ion_type,omitempty"`
	MolMass          float64      `json:"mol_mass,omitempty"`
	MolecularFormula string       `json:"molecular_formula,omitempty"`
}

type ChemTarget struct {
	Publications []string `json:"publications,omitempty"`
	Target       string   `json:"target,omitempty"`
}

type Moiety struct {
	Moiety     string   `json:"moiety"`
	Subcluster []string `json:"subcluster,omitempty"`
}

// Genes is the v3 gene annotation block.
type Genes struct {
	Annotations []GeneAnnotation `json:"annotations,omitempty"`
	ExtraGenes  []ExtraGene      `json:"extra_genes,omitempty"`
	Operons     []Operon         `json:"operons,omitempty"`
}

func (g Genes) Validate() error {
	var c validation.Collector
	for i, extra := range g.ExtraGenes {
		if extra.Location != nil {
			c.MergePrefixed(validation.Index("extra_genes", i), extra.Location.Validate())
		}
	}
	for i, operon := range g.Operons {
		if len(operon.Genes) == 0 {
			c.Add(validation.Index("operons", i), "missing genes")
		}
	}
	return c.Err()
}

// GeneAnnotation carries the v3 per-gene curation.
type GeneAnnotation struct {
	Id                string         `json:"id"`
	Comments          string         `json:"comments,omitempty"`
	Domains           []GeneDomain   `json:"domains,omitempty"`
	Functions         []GeneFunction `json:"functions,omitempty"`
	MutationPhenotype string         `json:"mut_pheno,omitempty"`
	Name              string         `json:"name,omitempty"`
	Product           string         `json:"product,omitempty"`
	Publications      []string       `json:"publications,omitempty"`
	Tailoring         []string       `json:"tailoring,omitempty"`
}

type GeneFunction struct {
	Category string   `json:"category"`
	Evidence []string `json:"evidence"`
}

// GeneDomain is a standalone domain annotation on a gene.
type GeneDomain struct {
	Name       string            `json:"name"`
	Location   DomainLocation    `json:"location"`
	Substrates []DomainSubstrate `json:"substrates,omitempty"`
}

type DomainLocation struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

type DomainSubstrate struct {
	Name         string        `json:"name"`
	Structure    string        `json:"structure,omitempty"`
	Evidence     []string      `json:"evidence,omitempty"`
	Publications []Publication `json:"publications,omitempty"`
}

// ExtraGene is a gene missing from the record annotation.
type ExtraGene struct {
	Id          string        `json:"id"`
	Location    *GeneLocation `json:"location,omitempty"`
	Translation string        `json:"translation,omitempty"`
}

type GeneLocation struct {
	Exons  []Exon `json:"exons"`
	Strand int    `json:"strand"`
}

func (l GeneLocation) Validate() error {
	var c validation.Collector
	if len(l.Exons) == 0 {
		c.Add("location.exons", "missing exons")
	}
	if l.Strand != 1 && l.Strand != -1 {
		c.Add("location.strand", "invalid strand %d", l.Strand)
	}
	return c.Err()
}

type Exon struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Operon groups v3 genes under shared transcriptional control.
type Operon struct {
	Genes    []string `json:"genes"`
	Evidence []string `json:"evidence"`
}
