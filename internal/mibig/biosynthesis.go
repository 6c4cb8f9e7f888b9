package mibig

import (
	"sort"

	"github.com/mibig-secmet/bgconvert/internal/validation"
)

// Monomer is a building block incorporated into the product.
type Monomer struct {
	Name       string     `json:"name"`
	Structure  Smiles     `json:"structure"`
	References []Citation `json:"references"`
}

// NewMonomer creates a validated Monomer.
func NewMonomer(name string, structure Smiles, references []Citation, ctx Context) (Monomer, error) {
	monomer := Monomer{Name: name, Structure: structure, References: references}
	if err := monomer.Validate(ctx); err != nil {
		return Monomer{}, err
	}
	return monomer, nil
}

func (m Monomer) Validate(ctx Context) error {
	var c validation.Collector
	if !validNamePattern.MatchString(m.Name) {
		c.Add("monomer.name", "invalid name: %s", m.Name)
	}
	validateCitations(&c, "monomer.references", m.References, ctx)
	c.MergePrefixed("monomer", m.Structure.Validate())
	return c.Err()
}

var releaseTypes = []string{
	"Claisen condensation",
	"Hydrolysis",
	"Macrolactamization",
	"Macrolactonization",
	"None",
	"Other",
	"Reductive release",
}

// ReleaseType names the mechanism releasing the product from the
// assembly line.
type ReleaseType struct {
	Name       string     `json:"name"`
	References []Citation `json:"references"`
	Details    string     `json:"details,omitempty"`
}

// NewReleaseType creates a validated ReleaseType.
func NewReleaseType(name string, references []Citation, details string, ctx Context) (ReleaseType, error) {
	rt := ReleaseType{Name: name, References: references, Details: details}
	if err := rt.Validate(ctx); err != nil {
		return ReleaseType{}, err
	}
	return rt, nil
}

func (r ReleaseType) Validate(ctx Context) error {
	var c validation.Collector
	valid := false
	for _, name := range releaseTypes {
		if r.Name == name {
			valid = true
			break
		}
	}
	if !valid {
		c.Add("release_type.name", "invalid release type: %s", r.Name)
	}
	if r.Name == "Other" && r.Details == "" {
		c.Add("release_type.details", "details must be provided for 'Other' release types")
	}
	if !ctx.Loose() {
		validateCitations(&c, "release_type.references", r.References, ctx)
	}
	return c.Err()
}

// Operon groups genes under shared transcriptional control.
type Operon struct {
	Genes    []GeneId         `json:"genes"`
	Evidence []OperonEvidence `json:"evidence"`
}

// NewOperon creates a validated Operon.
func NewOperon(genes []GeneId, evidence []OperonEvidence, ctx Context) (Operon, error) {
	operon := Operon{Genes: genes, Evidence: evidence}
	if err := operon.Validate(ctx); err != nil {
		return Operon{}, err
	}
	return operon, nil
}

func (o Operon) Validate(ctx Context) error {
	var c validation.Collector
	for i, gene := range o.Genes {
		c.MergePrefixed(validation.Index("operon.genes", i), gene.Validate(ctx))
	}
	for i, evidence := range o.Evidence {
		c.MergePrefixed(validation.Index("operon.evidence", i), evidence.Validate(ctx))
	}
	return c.Err()
}

// Biosynthesis describes how the cluster builds its product.
type Biosynthesis struct {
	Classes []BiosynthesisClass `json:"classes"`
	Modules []Module            `json:"modules,omitempty"`
	Operons []Operon            `json:"operons,omitempty"`
	Paths   []Path              `json:"paths,omitempty"`
}

// NewBiosynthesis creates a validated Biosynthesis.
func NewBiosynthesis(classes []BiosynthesisClass, modules []Module, operons []Operon, paths []Path, ctx Context) (*Biosynthesis, error) {
	bio := &Biosynthesis{Classes: classes, Modules: modules, Operons: operons, Paths: paths}
	if err := bio.Validate(ctx); err != nil {
		return nil, err
	}
	return bio, nil
}

// Validate requires at least one class and checks every nested part.
func (b *Biosynthesis) Validate(ctx Context) error {
	var c validation.Collector
	if len(b.Classes) == 0 {
		c.Add("biosynthesis.classes", "at least one class is required")
	}
	for i, class := range b.Classes {
		c.MergePrefixed(validation.Index("biosynthesis.classes", i), class.Validate(ctx))
	}
	for i, module := range b.Modules {
		c.MergePrefixed(validation.Index("biosynthesis.modules", i), module.Validate(ctx))
	}
	for i, operon := range b.Operons {
		c.MergePrefixed(validation.Index("biosynthesis.operons", i), operon.Validate(ctx))
	}
	for i, path := range b.Paths {
		c.MergePrefixed(validation.Index("biosynthesis.paths", i), path.Validate())
	}
	return c.Err()
}

// GenesReferenced lists every gene named by modules and operons, sorted
// and deduplicated.
func (b *Biosynthesis) GenesReferenced() []GeneId {
	set := map[GeneId]struct{}{}
	for _, module := range b.Modules {
		for _, gene := range module.Genes {
			set[gene] = struct{}{}
		}
	}
	for _, operon := range b.Operons {
		for _, gene := range operon.Genes {
			set[gene] = struct{}{}
		}
	}
	genes := make([]GeneId, 0, len(set))
	for gene := range set {
		genes = append(genes, gene)
	}
	sort.Slice(genes, func(i, j int) bool { return genes[i] < genes[j] })
	return genes
}

// References lists every citation across classes, operons, modules, and
// paths, sorted and deduplicated.
func (b *Biosynthesis) References() []Citation {
	set := map[Citation]struct{}{}
	for _, class := range b.Classes {
		for _, ref := range class.References() {
			set[ref] = struct{}{}
		}
	}
	for _, operon := range b.Operons {
		for _, evidence := range operon.Evidence {
			for _, ref := range evidence.References {
				set[ref] = struct{}{}
			}
		}
	}
	for _, module := range b.Modules {
		for _, ref := range module.References() {
			set[ref] = struct{}{}
		}
	}
	for _, path := range b.Paths {
		for _, ref := range path.References {
			set[ref] = struct{}{}
		}
	}
	return sortCitations(set)
}
