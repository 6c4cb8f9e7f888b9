package mibig

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/mibig-secmet/bgconvert/internal/validation"
)

// GeneLocation places a gene on a record as one or more exons.
type GeneLocation struct {
	Exons  []Location `json:"exons"`
	Strand int        `json:"strand"`
}

// NewGeneLocation creates a validated GeneLocation.
func NewGeneLocation(exons []Location, strand int, ctx Context) (GeneLocation, error) {
	loc := GeneLocation{Exons: exons, Strand: strand}
	if err := loc.Validate(ctx); err != nil {
		return GeneLocation{}, err
	}
	return loc, nil
}

func (g GeneLocation) Validate(ctx Context) error {
	var c validation.Collector
	if len(g.Exons) == 0 {
		c.Add("exons", "at least one exon must be provided")
	}
	for i, exon := range g.Exons {
		c.MergePrefixed(validation.Index("exons", i), exon.Validate(ctx, nil))
	}
	if g.Strand != -1 && g.Strand != 1 {
		c.Add("strand", "strand must be either -1 or 1")
	}
	return c.Err()
}

const validAminoAcids = "ACDEFGHIKLMNPQRSTVWY"

// Addition proposes a gene missing from the reference record annotation.
// The translation key is always emitted, as null when unknown.
type Addition struct {
	Id          NovelGeneId  `json:"id"`
	Location    GeneLocation `json:"location"`
	Translation *string      `json:"translation"`
}

// NewAddition creates a validated Addition.
func NewAddition(id NovelGeneId, location GeneLocation, translation *string, ctx Context) (Addition, error) {
	add := Addition{Id: id, Location: location, Translation: translation}
	if err := add.Validate(ctx); err != nil {
		return Addition{}, err
	}
	return add, nil
}

// Validate checks the id, location, and translation alphabet. A missing
// translation only passes at the lowest quality tier.
func (a Addition) Validate(ctx Context) error {
	var c validation.Collector
	c.Merge("genes.to_add.id", a.Id.Validate(ctx))
	c.MergePrefixed("genes.to_add", a.Location.Validate(ctx))
	if !ctx.Loose() && (a.Translation == nil || *a.Translation == "") {
		c.Add("genes.to_add.translation", "translation must be provided")
	}
	if a.Translation != nil {
		for _, aa := range *a.Translation {
			if !strings.ContainsRune(validAminoAcids, aa) {
				c.Add("genes.to_add.translation", "invalid amino acid in translation")
				break
			}
		}
	}
	return c.Err()
}

// Deletion marks a record gene as spurious.
type Deletion struct {
	Id     GeneId `json:"id"`
	Reason string `json:"reason"`
}

// NewDeletion creates a validated Deletion.
func NewDeletion(id GeneId, reason string, ctx Context) (Deletion, error) {
	del := Deletion{Id: id, Reason: reason}
	if err := del.Validate(ctx); err != nil {
		return Deletion{}, err
	}
	return del, nil
}

func (d Deletion) Validate(ctx Context) error {
	var c validation.Collector
	c.Merge("genes.to_delete.id", d.Id.Validate(ctx))
	if d.Reason == "" {
		c.Add("genes.to_delete.reason", "reason must be provided")
	}
	return c.Err()
}

var tailoringFunctions = []string{
	"Acetylation",
	"Acylation",
	"Amination",
	"Biaryl bond formation",
	"Carboxylation",
	"Cyclization",
	"Deamination",
	"Decarboxylation",
	"Dehydration",
	"Dehydrogenation",
	"Demethylation",
	"Dioxygenation",
	"Epimerization",
	"FADH2 supply for chlorination",
	"Glycosylation",
	"Halogenation",
	"Heterocyclization",
	"Hydrolysis",
	"Hydroxylation",
	"Lasso macrolactam formation",
	"Methylation",
	"Monooxygenation",
	"Oxidation",
	"Phosphorylation",
	"Prenylation",
	"Reduction",
	"Sulfation",
	"Other",
}

var tailoringDBReference = regexp.MustCompile(`^mite:MITE\d{7,7}$`)

// TailoringFunction describes a tailoring activity of a gene, optionally
// backed by a MITE database entry.
type TailoringFunction struct {
	Function    string     `json:"function"`
	References  []Citation `json:"references"`
	DBReference string     `json:"db_reference,omitempty"`
	Details     string     `json:"details,omitempty"`
}

// NewTailoringFunction creates a validated TailoringFunction.
func NewTailoringFunction(function string, references []Citation, dbReference, details string, ctx Context) (TailoringFunction, error) {
	tf := TailoringFunction{Function: function, References: references, DBReference: dbReference, Details: details}
	if err := tf.Validate(ctx); err != nil {
		return TailoringFunction{}, err
	}
	return tf, nil
}

func (t TailoringFunction) Validate(ctx Context) error {
	var c validation.Collector
	valid := false
	for _, function := range tailoringFunctions {
		if t.Function == function {
			valid = true
			break
		}
	}
	if !valid {
		c.Add("tailoring function", "invalid tailoring function: %s", t.Function)
	}
	validateCitations(&c, "tailoring function references", t.References, ctx)
	if t.DBReference != "" && !tailoringDBReference.MatchString(t.DBReference) {
		c.Add("tailoring function", "invalid database reference %s", t.DBReference)
	}
	return c.Err()
}

// MutationPhenotype describes the observed phenotype of a gene mutant.
type MutationPhenotype struct {
	Phenotype  string     `json:"phenotype"`
	References []Citation `json:"references"`
	Details    string     `json:"details,omitempty"`
}

// NewMutationPhenotype creates a validated MutationPhenotype.
func NewMutationPhenotype(phenotype string, references []Citation, details string, ctx Context) (MutationPhenotype, error) {
	mp := MutationPhenotype{Phenotype: phenotype, References: references, Details: details}
	if err := mp.Validate(ctx); err != nil {
		return MutationPhenotype{}, err
	}
	return mp, nil
}

func (m MutationPhenotype) Validate(ctx Context) error {
	var c validation.Collector
	if m.Phenotype == "" {
		c.Add("mutation_phenotype.phenotype", "phenotype must be provided")
	}
	validateCitations(&c, "mutation_phenotype.references", m.References, ctx)
	return c.Err()
}

var geneFunctions = []string{
	"Activation / processing",
	"Maturation",
	"Precursor",
	"Precursor biosynthesis",
	"Regulation",
	"Resistance/immunity",
	"Scaffold biosynthesis",
	"Tailoring",
	"Transport",
	"Other",
}

// GeneFunction annotates the biosynthetic role of a gene. On the wire the
// function name and details are nested under a "function" key.
type GeneFunction struct {
	Function          string
	Details           string
	Evidence          []FunctionEvidence
	MutationPhenotype *MutationPhenotype
}

// NewGeneFunction creates a validated GeneFunction.
func NewGeneFunction(function string, evidence []FunctionEvidence, details string, phenotype *MutationPhenotype, ctx Context) (GeneFunction, error) {
	gf := GeneFunction{Function: function, Details: details, Evidence: evidence, MutationPhenotype: phenotype}
	if err := gf.Validate(ctx); err != nil {
		return GeneFunction{}, err
	}
	return gf, nil
}

func (g GeneFunction) Validate(ctx Context) error {
	var c validation.Collector
	valid := false
	for _, function := range geneFunctions {
		if g.Function == function {
			valid = true
			break
		}
	}
	if !valid {
		c.Add("function.name", "invalid function: %s", g.Function)
	}
	if g.Function == "Other" && g.Details == "" {
		c.Add("function.details", "details must be provided for 'Other' function")
	}
	if g.MutationPhenotype != nil {
		c.Merge("function", g.MutationPhenotype.Validate(ctx))
	}
	for i, evidence := range g.Evidence {
		c.MergePrefixed(validation.Index("function.evidence", i), evidence.Validate(ctx))
	}
	return c.Err()
}

// References collects the citations backing this function, deduplicated
// and sorted.
func (g GeneFunction) References() []Citation {
	set := map[Citation]struct{}{}
	for _, evidence := range g.Evidence {
		for _, ref := range evidence.References {
			set[ref] = struct{}{}
		}
	}
	if g.MutationPhenotype != nil {
		for _, ref := range g.MutationPhenotype.References {
			set[ref] = struct{}{}
		}
	}
	return sortCitations(set)
}

type geneFunctionName struct {
	Name    string `json:"name"`
	Details string `json:"details,omitempty"`
}

type geneFunctionJSON struct {
	Function          geneFunctionName   `json:"function"`
	Evidence          []FunctionEvidence `json:"evidence"`
	MutationPhenotype *MutationPhenotype `json:"mutation_phenotype,omitempty"`
}

func (g GeneFunction) MarshalJSON() ([]byte, error) {
	return json.Marshal(geneFunctionJSON{
		Function:          geneFunctionName{Name: g.Function, Details: g.Details},
		Evidence:          g.Evidence,
		MutationPhenotype: g.MutationPhenotype,
	})
}

func (g *GeneFunction) UnmarshalJSON(data []byte) error {
	var raw geneFunctionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.Function = raw.Function.Name
	g.Details = raw.Function.Details
	g.Evidence = raw.Evidence
	g.MutationPhenotype = raw.MutationPhenotype
	return nil
}

// Annotation carries the curated per-gene information.
type Annotation struct {
	Id                 GeneId              `json:"id"`
	Name               NovelGeneId         `json:"name,omitempty"`
	Aliases            []NovelGeneId       `json:"aliases,omitempty"`
	Product            string              `json:"product,omitempty"`
	Functions          []GeneFunction      `json:"functions,omitempty"`
	TailoringFunctions []TailoringFunction `json:"tailoring_functions,omitempty"`
	Domains            []Domain            `json:"domains,omitempty"`
	MutationPhenotype  *MutationPhenotype  `json:"mutation_phenotype,omitempty"`
	Comment            string              `json:"comment,omitempty"`
}

// NewAnnotation creates a validated Annotation for the given gene.
func NewAnnotation(id GeneId, ctx Context, mutators ...func(*Annotation)) (*Annotation, error) {
	ann := &Annotation{Id: id}
	for _, mutate := range mutators {
		mutate(ann)
	}
	if err := ann.Validate(ctx); err != nil {
		return nil, err
	}
	return ann, nil
}

func (a *Annotation) Validate(ctx Context) error {
	var c validation.Collector
	c.Merge("genes.annotations.id", a.Id.Validate(ctx))
	if a.Name != "" {
		c.Merge("genes.annotations.name", a.Name.Validate(ctx))
	}
	for i, alias := range a.Aliases {
		c.MergePrefixed(validation.Index("genes.annotations.aliases", i), alias.Validate(ctx))
	}
	for i, function := range a.Functions {
		c.MergePrefixed(validation.Index("genes.annotations.functions", i), function.Validate(ctx))
	}
	for i, function := range a.TailoringFunctions {
		c.MergePrefixed(validation.Index("genes.annotations.tailoring_functions", i), function.Validate(ctx))
	}
	for i, domain := range a.Domains {
		c.MergePrefixed(validation.Index("genes.annotations.domains", i), domain.Validate(ctx))
	}
	if a.MutationPhenotype != nil {
		c.MergePrefixed("genes.annotations", a.MutationPhenotype.Validate(ctx))
	}
	return c.Err()
}

// Genes bundles the curated changes to the record gene annotation.
type Genes struct {
	ToAdd       []Addition   `json:"to_add,omitempty"`
	ToDelete    []Deletion   `json:"to_delete,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// NewGenes creates a validated Genes block.
func NewGenes(toAdd []Addition, toDelete []Deletion, annotations []Annotation, ctx Context) (*Genes, error) {
	genes := &Genes{ToAdd: toAdd, ToDelete: toDelete, Annotations: annotations}
	if err := genes.Validate(ctx); err != nil {
		return nil, err
	}
	return genes, nil
}

func (g *Genes) Validate(ctx Context) error {
	var c validation.Collector
	for i, addition := range g.ToAdd {
		c.MergePrefixed(validation.Index("genes.to_add", i), addition.Validate(ctx))
	}
	for i, deletion := range g.ToDelete {
		c.MergePrefixed(validation.Index("genes.to_delete", i), deletion.Validate(ctx))
	}
	for i, annotation := range g.Annotations {
		c.MergePrefixed(validation.Index("genes.annotations", i), annotation.Validate(ctx))
	}
	return c.Err()
}
