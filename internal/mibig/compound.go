package mibig

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mibig-secmet/bgconvert/internal/validation"
)

// validNamePattern covers compound names, synonyms, and moieties. Greek
// letters are common in natural product names.
var validNamePattern = regexp.MustCompile(`^[a-zA-Zα-ωΑ-Ω0-9\[\]'()/&,. +-]+$`)

// Assay describes a bioactivity measurement.
type Assay struct {
	Concentration string `json:"concentration"`
	Target        string `json:"target"`
}

// NewAssay creates a validated Assay.
func NewAssay(concentration, target string) (Assay, error) {
	assay := Assay{Concentration: concentration, Target: target}
	if err := assay.Validate(); err != nil {
		return Assay{}, err
	}
	return assay, nil
}

func (a Assay) Validate() error {
	var c validation.Collector
	if a.Concentration == "" {
		c.Add("assay", "missing concentration")
	}
	if a.Target == "" {
		c.Add("assay", "missing target")
	}
	return c.Err()
}

// Bioactivity records an observed or refuted activity of a compound.
// References are mandatory at every quality tier.
type Bioactivity struct {
	Name       string     `json:"name"`
	Observed   bool       `json:"observed"`
	References []Citation `json:"references"`
	Assays     []Assay    `json:"assays,omitempty"`
}

// NewBioactivity creates a validated Bioactivity.
func NewBioactivity(name string, observed bool, references []Citation, assays []Assay) (Bioactivity, error) {
	act := Bioactivity{Name: name, Observed: observed, References: references, Assays: assays}
	if err := act.Validate(); err != nil {
		return Bioactivity{}, err
	}
	return act, nil
}

func (b Bioactivity) Validate() error {
	var c validation.Collector
	if b.Name == "" {
		c.Add("bioactivity", "missing name")
	}
	if len(b.References) == 0 {
		c.Add("bioactivity", "missing references")
	}
	for i, ref := range b.References {
		c.MergePrefixed(validation.Index("bioactivity.references", i), ref.Validate())
	}
	for i, assay := range b.Assays {
		c.MergePrefixed(validation.Index("bioactivity.assays", i), assay.Validate())
	}
	return c.Err()
}

var compoundClassGroups = map[string][]string{
	"Alkaloid": {
		"Amination reaction-derived",
		"Anthranilic acid-derived",
		"Arginine-derived",
		"Guanidine-derived",
		"Histidine-derived",
		"Lysine-derived",
		"Nicotinic acid-derived",
		"Ornithine-derived",
		"Peptide alkaloid",
		"Proline-derived",
		"Purine alkaloid",
		"Serine-derived",
		"Steroidal alkaloid",
		"Tetramate alkaloid",
		"Terpenoid-alkaloid",
		"Tryptophan-derived",
		"Tyrosine-derived",
	},
	"Shikimic acid-derived": {
		"Aromatic amino acid/simple benzoic acid",
		"Aromatic polyketide",
		"Phenylpropanoid",
		"Terpenoid quinone",
	},
	"Acetate-derived": {
		"Alkylresorcinol/phloroglucinol polyketide",
		"Chromane polyketide",
		"Cyclic polyketide",
		"Fatty acid",
		"Fatty acid derivate",
		"Linear polyketide",
		"Macrocyclic polyketide",
		"Naphthalene polyketide",
		"Polycyclic polyketide",
		"Polyether polyketide",
		"Xanthone polyketide",
	},
	"Isoprene-derived": {
		"Atypical terpenoid",
		"Diterpenoid",
		"Hemiterpenoid",
		"Higher terpenoid",
		"Iridoid",
		"Meroterpenoid",
		"Monoterpenoid",
		"Sesquiterpenoid",
		"Steroid",
	},
	"Peptide": {
		"Beta-lactam",
		"Depsipeptide",
		"Diketopiperazine",
		"Glycopeptide",
		"Glycopeptidolipid",
		"Linear",
		"Lipopeptide",
		"Macrocyclic",
	},
	"Carbohydrates": {
		"Monosaccharide",
		"Oligosaccharide",
		"Polysaccharide",
		"Nucleoside",
		"Aminoglycoside",
		"Liposaccharide",
		"Glucosinolate",
	},
	"Glycolysis-derived": {
		"Butenolide",
		"Butyrolactone",
		"Tetronic acid",
	},
	"Other": {
		"Lactone",
		"Ectoine",
		"Furan",
		"Phosphonate",
	},
}

// CompoundClass is a compound classification, valid if it appears in any
// group of the two-level class taxonomy.
type CompoundClass string

func (c CompoundClass) Validate() error {
	for _, subclasses := range compoundClassGroups {
		for _, subclass := range subclasses {
			if string(c) == subclass {
				return nil
			}
		}
	}
	return validation.NewError("compound.class", fmt.Sprintf("invalid compound class: %s", string(c)))
}

var compoundRefPatterns = map[string]*regexp.Regexp{
	"pubchem":    regexp.MustCompile(`^\d+$`),
	"chebi":      regexp.MustCompile(`^\d+$`),
	"chembl":     regexp.MustCompile(`^CHEMBL\d+$`),
	"chemspider": regexp.MustCompile(`^\d+$`),
	"npatlas":    regexp.MustCompile(`^NPA\d+$`),
	"lotus":      regexp.MustCompile(`^Q\d+$`),
	"gnps":       regexp.MustCompile(`^MSV\d+$`),
	"cyanometdb": regexp.MustCompile(`^CyanoMetDB_\d{4,4}$`),
}

// CompoundRef points at a compound database entry, serialized as
// "database:identifier".
type CompoundRef struct {
	Database   string
	Identifier string
}

// NewCompoundRef creates a validated CompoundRef.
func NewCompoundRef(database, identifier string) (CompoundRef, error) {
	ref := CompoundRef{Database: database, Identifier: identifier}
	if err := ref.Validate(); err != nil {
		return CompoundRef{}, err
	}
	return ref, nil
}

func (r CompoundRef) Validate() error {
	var c validation.Collector
	pattern, ok := compoundRefPatterns[r.Database]
	if !ok {
		c.Add("compound.database", "invalid database: %s", r.Database)
		return c.Err()
	}
	if !pattern.MatchString(r.Identifier) {
		c.Add("compound.database", "invalid identifier: %s", r.Identifier)
	}
	return c.Err()
}

func (r CompoundRef) String() string {
	return r.Database + ":" + r.Identifier
}

// MarshalJSON encodes the reference as a "database:identifier" string.
func (r CompoundRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a "database:identifier" string.
func (r *CompoundRef) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	database, identifier, found := strings.Cut(raw, ":")
	if !found {
		return fmt.Errorf("invalid compound reference %q", raw)
	}
	r.Database = database
	r.Identifier = identifier
	return nil
}

var formulaPartsPattern = regexp.MustCompile(`([A-Z][a-z]?)([0-9]*)`)

// FormulaPart is one atom count within a molecular formula.
type FormulaPart struct {
	Atom  string
	Count int
}

func (p FormulaPart) Validate() error {
	var c validation.Collector
	if p.Atom == "" || strings.TrimFunc(p.Atom, isLetter) != "" {
		c.Add("compound.formula", "invalid atom: %s", p.Atom)
	}
	if p.Count <= 0 {
		c.Add("compound.formula", "invalid count: %d", p.Count)
	}
	return c.Err()
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Formula is a molecular formula kept in its wire form. An omitted count
// means one atom.
type Formula string

// Parts splits the formula into atom counts.
func (f Formula) Parts() []FormulaPart {
	matches := formulaPartsPattern.FindAllStringSubmatch(string(f), -1)
	parts := make([]FormulaPart, 0, len(matches))
	for _, match := range matches {
		count := 1
		if match[2] != "" {
			count, _ = strconv.Atoi(match[2])
		}
		parts = append(parts, FormulaPart{Atom: match[1], Count: count})
	}
	return parts
}

func (f Formula) Validate() error {
	var c validation.Collector
	for _, part := range f.Parts() {
		c.Merge("compound.formula", part.Validate())
	}
	return c.Err()
}

// Compound is one product of the cluster.
type Compound struct {
	Name          string             `json:"name"`
	Evidence      []CompoundEvidence `json:"evidence"`
	Classes       []CompoundClass    `json:"classes,omitempty"`
	Bioactivities []Bioactivity      `json:"bioactivities,omitempty"`
	Structure     *Smiles            `json:"structure,omitempty"`
	Synonyms      []string           `json:"synonyms,omitempty"`
	Databases     []CompoundRef      `json:"databaseIds,omitempty"`
	Moieties      []string           `json:"moieties,omitempty"`
	Cyclic        bool               `json:"cyclic,omitempty"`
	Mass          float64            `json:"mass,omitempty"`
	Formula       Formula            `json:"formula,omitempty"`
}

// NewCompound creates a validated Compound from its mandatory parts.
// Optional fields can be set on the result before calling Validate again.
func NewCompound(name string, evidence []CompoundEvidence, ctx Context) (*Compound, error) {
	compound := &Compound{Name: name, Evidence: evidence}
	if err := compound.Validate(ctx); err != nil {
		return nil, err
	}
	return compound, nil
}

// Validate checks the name grammar, the evidence requirement, and every
// nested part. Evidence may only be empty at the lowest quality tier.
func (c *Compound) Validate(ctx Context) error {
	var col validation.Collector
	if !validNamePattern.MatchString(c.Name) {
		col.Add("compound", "invalid name %q", c.Name)
	}
	if !ctx.Loose() && len(c.Evidence) == 0 {
		col.Add("compound", "missing evidence")
	}
	for i, ev := range c.Evidence {
		col.MergePrefixed(validation.Index("compound.evidence", i), ev.Validate(ctx))
	}
	for i, class := range c.Classes {
		col.MergePrefixed(validation.Index("compound.classes", i), class.Validate())
	}
	for i, act := range c.Bioactivities {
		col.MergePrefixed(validation.Index("compound.bioactivities", i), act.Validate())
	}
	if c.Structure != nil {
		col.MergePrefixed("compound", c.Structure.Validate())
	}
	for _, synonym := range c.Synonyms {
		if !validNamePattern.MatchString(synonym) {
			col.Add("compound", "invalid synonym %q", synonym)
		}
	}
	for i, db := range c.Databases {
		col.MergePrefixed(validation.Index("compound.databaseIds", i), db.Validate())
	}
	for _, moiety := range c.Moieties {
		if !validNamePattern.MatchString(moiety) {
			col.Add("compound", "invalid moiety %q", moiety)
		}
	}
	if c.Mass < 0 {
		col.Add("compound", "invalid mass %v", c.Mass)
	}
	if c.Formula != "" {
		col.MergePrefixed("compound", c.Formula.Validate())
	}
	return col.Err()
}
