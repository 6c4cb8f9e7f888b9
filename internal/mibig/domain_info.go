package mibig

import (
	"encoding/json"
	"strings"

	"github.com/mibig-secmet/bgconvert/internal/validation"
)

// flipActive converts between the internal activity flag and the inverted
// "inactive" wire flag. Absent stays absent in both directions.
func flipActive(v *bool) *bool {
	if v == nil {
		return nil
	}
	flipped := !*v
	return &flipped
}

// atSubstrateNames is the fixed substrate vocabulary of acyltransferases.
var atSubstrateNames = []string{
	"acetyl-CoA",
	"malonyl-CoA",
	"methylmalonyl-CoA",
	"ethylmalonyl-CoA",
	"methoxymalonyl-CoA",
	"other",
}

// ValidATSubstrateName reports whether name is in the acyltransferase
// substrate vocabulary.
func ValidATSubstrateName(name string) bool {
	for _, known := range atSubstrateNames {
		if name == known {
			return true
		}
	}
	return false
}

// ATSubstrate is a substrate of an acyltransferase domain.
type ATSubstrate struct {
	Name      string  `json:"name"`
	Details   string  `json:"details,omitempty"`
	Structure *Smiles `json:"structure,omitempty"`
}

// NewATSubstrate creates a validated ATSubstrate.
func NewATSubstrate(name, details string, structure *Smiles, ctx Context) (ATSubstrate, error) {
	sub := ATSubstrate{Name: name, Details: details, Structure: structure}
	if err := sub.Validate(ctx); err != nil {
		return ATSubstrate{}, err
	}
	return sub, nil
}

// Validate checks the name against the vocabulary. The catch-all "other"
// substrate needs details, and a structure above the lowest quality tier.
func (s ATSubstrate) Validate(ctx Context) error {
	var c validation.Collector
	valid := false
	for _, name := range atSubstrateNames {
		if s.Name == name {
			valid = true
			break
		}
	}
	if !valid {
		c.Add("substrate.name", "invalid substrate name: %s", s.Name)
	}
	if s.Name == "other" {
		if s.Details == "" {
			c.Add("substrate.details", "details are required for 'other' substrate")
		}
		if !ctx.Loose() && s.Structure == nil {
			c.Add("substrate.structure", "structure is required for 'other' substrate")
		}
	}
	if s.Structure != nil {
		c.MergePrefixed("substrate", s.Structure.Validate())
	}
	return c.Err()
}

// Acyltransferase selects the extender unit of a PKS module.
type Acyltransferase struct {
	Substrates []ATSubstrate
	Evidence   []SubstrateEvidence
	Subtype    string
	Active     *bool
}

const (
	ATSubtypeCis   = "cis-AT"
	ATSubtypeTrans = "trans-AT"
)

func (a *Acyltransferase) Validate(ctx Context) error {
	var c validation.Collector
	for i, sub := range a.Substrates {
		c.MergePrefixed(validation.Index("acyltransferase.substrates", i), sub.Validate(ctx))
	}
	for i, ev := range a.Evidence {
		c.MergePrefixed(validation.Index("acyltransferase.evidence", i), ev.Validate(ctx))
	}
	if len(a.Substrates) > 0 && !ctx.Loose() && len(a.Evidence) == 0 {
		c.Add("acyltransferase.evidence", "evidence is required if substrates are present")
	}
	if a.Active != nil && !*a.Active {
		if len(a.Evidence) == 0 {
			c.Add("acyltransferase.evidence", "evidence is required if inactive")
		}
		if len(a.Substrates) > 0 {
			c.Add("acyltransferase", "substrates are not allowed if inactive")
		}
	}
	if a.Subtype != "" && a.Subtype != ATSubtypeCis && a.Subtype != ATSubtypeTrans {
		c.Add("acyltransferase.subtype", "invalid subtype: %s", a.Subtype)
	}
	return c.Err()
}

func (a *Acyltransferase) References() []Citation {
	set := map[Citation]struct{}{}
	for _, ev := range a.Evidence {
		for _, ref := range ev.References {
			set[ref] = struct{}{}
		}
	}
	return sortCitations(set)
}

type acyltransferaseJSON struct {
	Substrates []ATSubstrate       `json:"substrates"`
	Evidence   []SubstrateEvidence `json:"evidence"`
	Subtype    string              `json:"subtype,omitempty"`
	Inactive   *bool               `json:"inactive,omitempty"`
}

func (a *Acyltransferase) MarshalJSON() ([]byte, error) {
	return json.Marshal(acyltransferaseJSON{
		Substrates: nonNil(a.Substrates),
		Evidence:   nonNil(a.Evidence),
		Subtype:    a.Subtype,
		Inactive:   flipActive(a.Active),
	})
}

func (a *Acyltransferase) UnmarshalJSON(data []byte) error {
	var raw acyltransferaseJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Substrates = raw.Substrates
	a.Evidence = raw.Evidence
	a.Subtype = raw.Subtype
	a.Active = flipActive(raw.Inactive)
	return nil
}

// proteinogenicSubstrates maps the twenty proteinogenic amino acids to
// their SMILES structures, keyed by lowercase name.
var proteinogenicSubstrates = map[string]Smiles{
	"alanine":       "NC(C)C(=O)O",
	"arginine":      "NC(CCCNC(N)=N)C(=O)O",
	"asparagine":    "NC(CC(=O)N)C(=O)O",
	"aspartic acid": "NC(CC(=O)O)C(=O)O",
	"cysteine":      "NC(CS)C(=O)O",
	"glutamine":     "NC(CCC(=O)N)C(=O)O",
	"glutamic acid": "NC(CCC(=O)O)C(=O)O",
	"glycine":       "NCC(=O)O",
	"histidine":     "NC(CC1=CNC=N1)C(=O)O",
	"isoleucine":    "NC(C(C)CC)C(=O)O",
	"leucine":       "NC(CC(C)C)C(=O)O",
	"lysine":        "NC(CCCCN)C(=O)O",
	"methionine":    "NC(CCSC)C(=O)O",
	"phenylalanine": "NC(Cc1ccccc1)C(=O)O",
	"proline":       "N1C(CCC1)C(=O)O",
	"serine":        "NC(CO)C(=O)O",
	"threonine":     "NC(C(O)C)C(=O)O",
	"tryptophan":    "NC(CC1=CNc2c1cccc2)C(=O)O",
	"tyrosine":      "NC(Cc1ccc(O)cc1)C(=O)O",
	"valine":        "NC(C(C)C)C(=O)O",
}

// IsProteinogenic reports whether name is one of the twenty
// proteinogenic amino acids, case-insensitively.
func IsProteinogenic(name string) bool {
	_, ok := proteinogenicSubstrates[strings.ToLower(name)]
	return ok
}

// AdenylationSubstrate is a substrate of an adenylation domain. For
// proteinogenic substrates a missing structure is filled in from the
// amino acid table.
type AdenylationSubstrate struct {
	Name          string  `json:"name"`
	Proteinogenic bool    `json:"proteinogenic"`
	Structure     *Smiles `json:"structure,omitempty"`
}

// NewAdenylationSubstrate creates a validated AdenylationSubstrate.
func NewAdenylationSubstrate(name string, proteinogenic bool, structure *Smiles) (AdenylationSubstrate, error) {
	sub := AdenylationSubstrate{Name: name, Proteinogenic: proteinogenic, Structure: structure}
	sub.fillStructure()
	if err := sub.Validate(); err != nil {
		return AdenylationSubstrate{}, err
	}
	return sub, nil
}

func (s *AdenylationSubstrate) fillStructure() {
	if !s.Proteinogenic || s.Structure != nil {
		return
	}
	if structure, ok := proteinogenicSubstrates[strings.ToLower(s.Name)]; ok {
		s.Structure = &structure
	}
}

func (s AdenylationSubstrate) Validate() error {
	var c validation.Collector
	if s.Name == "" {
		c.Add("substrate.name", "missing name")
	}
	if s.Proteinogenic {
		if _, ok := proteinogenicSubstrates[strings.ToLower(s.Name)]; !ok {
			c.Add("substrate.name", "invalid proteinogenic substrate %s", s.Name)
		}
	}
	if s.Structure != nil {
		c.MergePrefixed("substrate", s.Structure.Validate())
	}
	return c.Err()
}

func (s *AdenylationSubstrate) UnmarshalJSON(data []byte) error {
	type plain AdenylationSubstrate
	var raw plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = AdenylationSubstrate(raw)
	s.fillStructure()
	return nil
}

// Adenylation selects the amino acid substrate of an NRPS module.
type Adenylation struct {
	Substrates            []AdenylationSubstrate
	Evidence              []SubstrateEvidence
	PrecursorBiosynthesis []GeneId
	Active                *bool
}

func (a *Adenylation) Validate(ctx Context) error {
	var c validation.Collector
	for i, sub := range a.Substrates {
		c.MergePrefixed(validation.Index("adenylation.substrates", i), sub.Validate())
	}
	for i, gene := range a.PrecursorBiosynthesis {
		c.MergePrefixed(validation.Index("adenylation.precursor_biosynthesis", i), gene.Validate(ctx))
	}
	for i, ev := range a.Evidence {
		c.MergePrefixed(validation.Index("adenylation.evidence", i), ev.Validate(ctx))
	}
	if len(a.Substrates) > 0 && !ctx.Loose() && len(a.Evidence) == 0 {
		c.Add("adenylation.evidence", "evidence is required for adenylation")
	}
	if a.Active != nil && !*a.Active {
		if len(a.Substrates) > 0 {
			c.Add("adenylation.inactive", "inactive adenylation domains cannot have a substrate")
		}
		if len(a.Evidence) == 0 {
			c.Add("adenylation.evidence", "evidence is required for inactive adenylation domains")
		}
	}
	return c.Err()
}

func (a *Adenylation) References() []Citation {
	set := map[Citation]struct{}{}
	for _, ev := range a.Evidence {
		for _, ref := range ev.References {
			set[ref] = struct{}{}
		}
	}
	return sortCitations(set)
}

type adenylationJSON struct {
	Substrates            []AdenylationSubstrate `json:"substrates,omitempty"`
	Evidence              []SubstrateEvidence    `json:"evidence,omitempty"`
	PrecursorBiosynthesis []GeneId               `json:"precursor_biosynthesis,omitempty"`
	Inactive              *bool                  `json:"inactive,omitempty"`
}

func (a *Adenylation) MarshalJSON() ([]byte, error) {
	return json.Marshal(adenylationJSON{
		Substrates:            a.Substrates,
		Evidence:              a.Evidence,
		PrecursorBiosynthesis: a.PrecursorBiosynthesis,
		Inactive:              flipActive(a.Active),
	})
}

func (a *Adenylation) UnmarshalJSON(data []byte) error {
	var raw adenylationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Substrates = raw.Substrates
	a.Evidence = raw.Evidence
	a.PrecursorBiosynthesis = raw.PrecursorBiosynthesis
	a.Active = flipActive(raw.Inactive)
	return nil
}

// Aminotransferase transfers an amino group onto the growing chain.
type Aminotransferase struct {
	Active *bool
	Refs   []Citation
}

func (a *Aminotransferase) Validate(ctx Context) error {
	var c validation.Collector
	validateCitations(&c, "aminotransferase.references", a.Refs, ctx)
	if a.Active != nil && !*a.Active && len(a.Refs) == 0 {
		c.Add("aminotransferase.references", "references are required if inactive is set")
	}
	return c.Err()
}

func (a *Aminotransferase) References() []Citation {
	return a.Refs
}

type aminotransferaseJSON struct {
	Inactive   *bool      `json:"inactive,omitempty"`
	References []Citation `json:"references,omitempty"`
}

func (a *Aminotransferase) MarshalJSON() ([]byte, error) {
	return json.Marshal(aminotransferaseJSON{Inactive: flipActive(a.Active), References: a.Refs})
}

func (a *Aminotransferase) UnmarshalJSON(data []byte) error {
	var raw aminotransferaseJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Active = flipActive(raw.Inactive)
	a.Refs = raw.References
	return nil
}

// Branching adds a branch point to the polyketide backbone.
type Branching struct{}

func (b *Branching) Validate(_ Context) error { return nil }
func (b *Branching) References() []Citation   { return nil }

// Carrier is a thiolation domain holding the growing chain.
type Carrier struct {
	Subtype       string `json:"subtype,omitempty"`
	BetaBranching *bool  `json:"beta_branching,omitempty"`
}

const (
	CarrierACP = "ACP"
	CarrierPCP = "PCP"
)

func (c *Carrier) Validate(_ Context) error {
	var col validation.Collector
	if c.Subtype != "" && c.Subtype != CarrierACP && c.Subtype != CarrierPCP {
		col.Add("carrier.subtype", "invalid subtype")
	}
	return col.Err()
}

func (c *Carrier) References() []Citation { return nil }

var condensationSubtypes = []string{
	"Dual",
	"Starter",
	"LCL",
	"DCL",
	"Ester bond-forming",
	"Heterocyclization",
}

// Condensation forms the peptide bond in an NRPS module. A subtype claim
// needs references to back it.
type Condensation struct {
	Subtype string     `json:"subtype,omitempty"`
	Refs    []Citation `json:"references,omitempty"`
}

func (c *Condensation) Validate(ctx Context) error {
	var col validation.Collector
	if c.Subtype != "" {
		valid := false
		for _, subtype := range condensationSubtypes {
			if c.Subtype == subtype {
				valid = true
				break
			}
		}
		if !valid {
			col.Add("condensation.subtype", "invalid subtype")
		}
		validateCitations(&col, "condensation.references", c.Refs, ctx)
	}
	return col.Err()
}

func (c *Condensation) References() []Citation { return c.Refs }

// Cyclase closes a ring in the product scaffold.
type Cyclase struct {
	Refs []Citation `json:"references,omitempty"`
}

func (c *Cyclase) Validate(_ Context) error {
	var col validation.Collector
	for i, ref := range c.Refs {
		col.MergePrefixed(validation.Index("cyclase.references", i), ref.Validate())
	}
	return col.Err()
}

func (c *Cyclase) References() []Citation { return c.Refs }

// Dehydratase removes water from the beta-hydroxy intermediate.
type Dehydratase struct{}

func (d *Dehydratase) Validate(_ Context) error { return nil }
func (d *Dehydratase) References() []Citation   { return nil }

// Enoylreductase reduces the enoyl double bond.
type Enoylreductase struct{}

func (e *Enoylreductase) Validate(_ Context) error { return nil }
func (e *Enoylreductase) References() []Citation   { return nil }

// Epimerase flips the stereochemistry of the attached amino acid.
type Epimerase struct {
	Active *bool `json:"active,omitempty"`
}

func (e *Epimerase) Validate(_ Context) error { return nil }
func (e *Epimerase) References() []Citation   { return nil }

// Hydroxylase adds a hydroxyl group.
type Hydroxylase struct{}

func (h *Hydroxylase) Validate(_ Context) error { return nil }
func (h *Hydroxylase) References() []Citation   { return nil }

var krStereochemistries = []string{"A", "B", "A1", "A2", "B1", "B2", "C1", "C2"}

// Ketoreductase reduces the beta-keto group, setting the product
// stereochemistry.
type Ketoreductase struct {
	Active          *bool
	Stereochemistry string
	Evidence        []SubstrateEvidence
}

func (k *Ketoreductase) Validate(ctx Context) error {
	var c validation.Collector
	if k.Stereochemistry != "" {
		valid := false
		for _, stereo := range krStereochemistries {
			if k.Stereochemistry == stereo {
				valid = true
				break
			}
		}
		if !valid {
			c.Add("ketoreductase.stereochemistry", "invalid stereochemistry: %s", k.Stereochemistry)
		}
	}
	if !ctx.Loose() && len(k.Evidence) == 0 {
		c.Add("ketoreductase.evidence", "evidence is required")
	}
	for i, ev := range k.Evidence {
		c.MergePrefixed(validation.Index("ketoreductase.evidence", i), ev.Validate(ctx))
	}
	return c.Err()
}

func (k *Ketoreductase) References() []Citation {
	set := map[Citation]struct{}{}
	for _, ev := range k.Evidence {
		for _, ref := range ev.References {
			set[ref] = struct{}{}
		}
	}
	return sortCitations(set)
}

type ketoreductaseJSON struct {
	Inactive        *bool               `json:"inactive,omitempty"`
	Stereochemistry string              `json:"stereochemistry,omitempty"`
	Evidence        []SubstrateEvidence `json:"evidence,omitempty"`
}

func (k *Ketoreductase) MarshalJSON() ([]byte, error) {
	return json.Marshal(ketoreductaseJSON{
		Inactive:        flipActive(k.Active),
		Stereochemistry: k.Stereochemistry,
		Evidence:        k.Evidence,
	})
}

func (k *Ketoreductase) UnmarshalJSON(data []byte) error {
	var raw ketoreductaseJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	k.Active = flipActive(raw.Inactive)
	k.Stereochemistry = raw.Stereochemistry
	k.Evidence = raw.Evidence
	return nil
}

// Ketosynthase condenses the extender unit onto the growing chain.
type Ketosynthase struct{}

func (k *Ketosynthase) Validate(_ Context) error { return nil }
func (k *Ketosynthase) References() []Citation   { return nil }

// Ligase activates a starter or extender unit as a CoA thioester.
type Ligase struct {
	Substrates []Smiles            `json:"substrates"`
	Evidence   []SubstrateEvidence `json:"evidence"`
}

func (l *Ligase) Validate(ctx Context) error {
	var c validation.Collector
	for i, sub := range l.Substrates {
		c.MergePrefixed(validation.Index("ligase.substrates", i), sub.Validate())
	}
	if !ctx.Loose() && len(l.Substrates) > 0 && len(l.Evidence) == 0 {
		c.Add("ligase", "ligase has substrates but no evidence")
	}
	for i, ev := range l.Evidence {
		c.MergePrefixed(validation.Index("ligase.evidence", i), ev.Validate(ctx))
	}
	return c.Err()
}

func (l *Ligase) References() []Citation {
	set := map[Citation]struct{}{}
	for _, ev := range l.Evidence {
		for _, ref := range ev.References {
			set[ref] = struct{}{}
		}
	}
	return sortCitations(set)
}

func (l *Ligase) MarshalJSON() ([]byte, error) {
	type plain Ligase
	clone := plain{Substrates: nonNil(l.Substrates), Evidence: nonNil(l.Evidence)}
	return json.Marshal(clone)
}

// Methyltransferase adds a methyl group to the backbone or a side chain.
type Methyltransferase struct {
	Subtype string `json:"subtype,omitempty"`
	Details string `json:"details,omitempty"`
}

func (m *Methyltransferase) Validate(_ Context) error {
	var c validation.Collector
	switch m.Subtype {
	case "", "C", "N", "O":
	case "other":
		if m.Details == "" {
			c.Add("methyltransferase.details", "missing required details for subtype 'other'")
		}
	default:
		c.Add("methyltransferase.subtype", "invalid subtype: %s", m.Subtype)
	}
	return c.Err()
}

func (m *Methyltransferase) References() []Citation { return nil }

// OtherDomain covers domain types outside the fixed vocabulary. The
// subtype naming the activity is mandatory.
type OtherDomain struct {
	Subtype string     `json:"subtype"`
	Active  *bool      `json:"active,omitempty"`
	Refs    []Citation `json:"references,omitempty"`
}

func (o *OtherDomain) Validate(_ Context) error {
	var c validation.Collector
	if o.Subtype == "" {
		c.Add("other.subtype", "missing subtype")
	}
	for i, ref := range o.Refs {
		c.MergePrefixed(validation.Index("other.references", i), ref.Validate())
	}
	return c.Err()
}

func (o *OtherDomain) References() []Citation { return o.Refs }

// Oxidase oxidizes the growing chain.
type Oxidase struct{}

func (o *Oxidase) Validate(_ Context) error { return nil }
func (o *Oxidase) References() []Citation   { return nil }

// ProductTemplate controls the cyclization of iterative PKS products.
type ProductTemplate struct {
	Active *bool `json:"active,omitempty"`
}

func (p *ProductTemplate) Validate(_ Context) error { return nil }
func (p *ProductTemplate) References() []Citation   { return nil }

// ThioesteraseDomain releases the finished chain from the assembly line.
type ThioesteraseDomain struct {
	Subtype string `json:"subtype,omitempty"`
}

const (
	ThioesteraseTypeI  = "Type I"
	ThioesteraseTypeII = "Type II"
)

func (t *ThioesteraseDomain) Validate(_ Context) error {
	var c validation.Collector
	if t.Subtype != "" && t.Subtype != ThioesteraseTypeI && t.Subtype != ThioesteraseTypeII {
		c.Add("thioesterase.subtype", "invalid subtype: %s", t.Subtype)
	}
	return c.Err()
}

func (t *ThioesteraseDomain) References() []Citation { return nil }

// Thioreductase releases the chain as an aldehyde by reduction.
type Thioreductase struct {
	Active *bool `json:"active,omitempty"`
}

func (t *Thioreductase) Validate(_ Context) error { return nil }
func (t *Thioreductase) References() []Citation   { return nil }

// nonNil keeps always-emitted list keys as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
