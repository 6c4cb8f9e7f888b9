package mibig

import (
	"encoding/json"
	"fmt"

	"github.com/mibig-secmet/bgconvert/internal/seqrecord"
	"github.com/mibig-secmet/bgconvert/internal/validation"
)

// SynthesisType tags the payload of a biosynthesis class.
type SynthesisType string

const (
	ClassNRPS       SynthesisType = "NRPS"
	ClassPKS        SynthesisType = "PKS"
	ClassRibosomal  SynthesisType = "ribosomal"
	ClassSaccharide SynthesisType = "saccharide"
	ClassTerpene    SynthesisType = "TERPENE"
	ClassOther      SynthesisType = "OTHER"
)

// ClassInfo is the type-specific payload of a BiosynthesisClass.
type ClassInfo interface {
	References() []Citation
	Validate(ctx Context) error
}

var classDecoders = map[SynthesisType]func([]byte) (ClassInfo, error){
	ClassNRPS:       decodeClassInfo[*NRPS],
	ClassPKS:        decodeClassInfo[*PKS],
	ClassRibosomal:  decodeClassInfo[*Ribosomal],
	ClassSaccharide: decodeClassInfo[*Saccharide],
	ClassTerpene:    decodeClassInfo[*Terpene],
	ClassOther:      decodeClassInfo[*OtherClass],
}

func decodeClassInfo[T ClassInfo](data []byte) (ClassInfo, error) {
	var info T
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return info, nil
}

// BiosynthesisClass assigns the cluster to a biosynthetic class. On the
// wire the payload keys are inlined next to the "class" key.
type BiosynthesisClass struct {
	Class SynthesisType
	Info  ClassInfo
}

// NewBiosynthesisClass creates a validated BiosynthesisClass.
func NewBiosynthesisClass(class SynthesisType, info ClassInfo, ctx Context) (BiosynthesisClass, error) {
	bc := BiosynthesisClass{Class: class, Info: info}
	if err := bc.Validate(ctx); err != nil {
		return BiosynthesisClass{}, err
	}
	return bc, nil
}

// Validate checks the class tag. Payload checks only apply above the
// lowest quality tier, imported legacy classes are kept as-is.
func (b BiosynthesisClass) Validate(ctx Context) error {
	var c validation.Collector
	if _, ok := classDecoders[b.Class]; !ok {
		c.Add("class", "invalid class %q", string(b.Class))
	}
	if b.Info == nil {
		c.Add("class", "missing class payload")
	} else if !ctx.Loose() {
		c.MergePrefixed("class", b.Info.Validate(ctx))
	}
	return c.Err()
}

// References lists the citations backing the class payload.
func (b BiosynthesisClass) References() []Citation {
	if b.Info == nil {
		return nil
	}
	return b.Info.References()
}

type classHeader struct {
	Class SynthesisType `json:"class"`
}

func (b BiosynthesisClass) MarshalJSON() ([]byte, error) {
	return marshalTagged(classHeader{Class: b.Class}, b.Info)
}

// UnmarshalJSON dispatches on the "class" key.
func (b *BiosynthesisClass) UnmarshalJSON(data []byte) error {
	var header classHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return err
	}
	decode, ok := classDecoders[header.Class]
	if !ok {
		return fmt.Errorf("invalid class %q", string(header.Class))
	}
	info, err := decode(data)
	if err != nil {
		return err
	}
	b.Class = header.Class
	b.Info = info
	return nil
}

var nrpsSubclasses = []string{"Type I", "Type II", "Type III", "Type IV", "Type V", "Type VI"}

// NRPS is a non-ribosomal peptide synthetase cluster.
type NRPS struct {
	Subclass      string        `json:"subclass"`
	ReleaseTypes  []ReleaseType `json:"release_types,omitempty"`
	Thioesterases []Domain      `json:"thioesterases,omitempty"`
}

func (n *NRPS) Validate(ctx Context) error {
	var c validation.Collector
	valid := false
	for _, subclass := range nrpsSubclasses {
		if n.Subclass == subclass {
			valid = true
			break
		}
	}
	if !valid {
		c.Add("nrps.subclass", "invalid subclass: %s", n.Subclass)
	}
	for i, rt := range n.ReleaseTypes {
		c.MergePrefixed(validation.Index("nrps.release_types", i), rt.Validate(ctx))
	}
	for i, te := range n.Thioesterases {
		c.MergePrefixed(validation.Index("nrps.thioesterases", i), te.Validate(ctx))
	}
	return c.Err()
}

func (n *NRPS) References() []Citation {
	set := map[Citation]struct{}{}
	for _, rt := range n.ReleaseTypes {
		for _, ref := range rt.References {
			set[ref] = struct{}{}
		}
	}
	for _, te := range n.Thioesterases {
		for _, ref := range te.References() {
			set[ref] = struct{}{}
		}
	}
	return sortCitations(set)
}

var pksSubclasses = []string{
	"Type I",
	"Type II aromatic",
	"Type II highly reducing",
	"Type II arylpolyene",
	"Type III",
}

// PKS is a polyketide synthase cluster.
type PKS struct {
	Subclass     string   `json:"subclass"`
	Cyclases     []GeneId `json:"cyclases"`
	StarterUnit  *Monomer `json:"starter_unit,omitempty"`
	KetideLength int      `json:"ketide_length,omitempty"`
	Iterative    bool     `json:"iterative,omitempty"`
}

func (p *PKS) Validate(ctx Context) error {
	var c validation.Collector
	valid := false
	for _, subclass := range pksSubclasses {
		if p.Subclass == subclass {
			valid = true
			break
		}
	}
	if !valid {
		c.Add("pks.subclass", "invalid subclass: %s", p.Subclass)
	}
	for i, cyclase := range p.Cyclases {
		c.MergePrefixed(validation.Index("pks.cyclases", i), cyclase.Validate(ctx))
	}
	if p.StarterUnit != nil {
		c.MergePrefixed("pks", p.StarterUnit.Validate(ctx))
	}
	if p.KetideLength < 0 {
		c.Add("pks.ketide_length", "invalid ketide length: %d", p.KetideLength)
	}
	return c.Err()
}

func (p *PKS) References() []Citation { return nil }

func (p *PKS) MarshalJSON() ([]byte, error) {
	type plain PKS
	clone := plain(*p)
	clone.Cyclases = nonNil(clone.Cyclases)
	return json.Marshal(clone)
}

// Crosslink connects two residues of a RiPP core peptide. Coordinates
// index into the precursor translation.
type Crosslink struct {
	Begin    int    `json:"from"`
	End      int    `json:"to"`
	LinkType string `json:"type,omitempty"`
	Details  string `json:"details,omitempty"`
}

// NewCrosslink creates a validated Crosslink.
func NewCrosslink(begin, end int, linkType, details string, cds *seqrecord.CDS) (Crosslink, error) {
	link := Crosslink{Begin: begin, End: end, LinkType: linkType, Details: details}
	if err := link.Validate(cds); err != nil {
		return Crosslink{}, err
	}
	return link, nil
}

func (l Crosslink) Validate(cds *seqrecord.CDS) error {
	var c validation.Collector
	if l.Begin < 0 {
		c.Add("crosslink.from", "from must be greater than or equal to 0")
	}
	if l.End < 0 {
		c.Add("crosslink.to", "to must be greater than or equal to 0")
	}
	if l.Begin >= l.End {
		c.Add("crosslink.from", "from must be less than to")
	}
	if cds != nil && cds.TranslationLength() > 0 {
		if l.Begin >= cds.TranslationLength() {
			c.Add("crosslink.from", "from must be less than the length of the CDS")
		}
		if l.End > cds.TranslationLength() {
			c.Add("crosslink.to", "to must be less than or equal to the length of the CDS")
		}
	}
	return c.Err()
}

// Precursor is a RiPP precursor peptide. The follower cleavage wire key
// keeps its historical spelling for compatibility.
type Precursor struct {
	Gene                     GeneId      `json:"gene"`
	CoreSequence             string      `json:"core_sequence"`
	Crosslinks               []Crosslink `json:"crosslinks,omitempty"`
	LeaderCleavageLocation   *Location   `json:"leader_cleavage_location,omitempty"`
	FollowerCleavageLocation *Location   `json:"follower_clavage_location,omitempty"`
	RecognitionMotif         string      `json:"recognition_motif,omitempty"`
}

func (p Precursor) Validate(ctx Context) error {
	var c validation.Collector
	c.Merge("precursor.gene", p.Gene.Validate(ctx))
	var cds *seqrecord.CDS
	if ctx.Record != nil {
		cds = ctx.Record.GetCDS(string(p.Gene))
	}
	if p.LeaderCleavageLocation != nil {
		c.MergePrefixed("precursor.leader_cleavage", p.LeaderCleavageLocation.Validate(ctx, nil))
	}
	if p.FollowerCleavageLocation != nil {
		c.MergePrefixed("precursor.follower_cleavage", p.FollowerCleavageLocation.Validate(ctx, nil))
	}
	for i, link := range p.Crosslinks {
		c.MergePrefixed(validation.Index("precursor.crosslinks", i), link.Validate(cds))
	}
	return c.Err()
}

var rippTypes = []string{
	"Atropopeptide",
	"Biarylitide",
	"Bottromycin",
	"Borosin",
	"Crocagin",
	"Cyanobactin",
	"Cyptide",
	"Dikaritin",
	"Epipeptide",
	"Glycocin",
	"Guanidinotide",
	"Head-to-tail cyclized peptide",
	"Lanthipeptide",
	"LAP",
	"Lasso peptide",
	"Linaridin",
	"Methanobactin",
	"Microcin",
	"Microviridin",
	"Mycofactocin",
	"Pearlin",
	"Proteusin",
	"Ranthipeptide",
	"Rotapeptide",
	"Ryptide",
	"Sactipeptide",
	"Spliceotide",
	"Streptide",
	"Sulfatyrotide",
	"Thioamidide",
	"Thiopeptide",
	"other",
}

// ValidRippType reports whether name is a known RiPP type.
func ValidRippType(name string) bool {
	for _, rippType := range rippTypes {
		if name == rippType {
			return true
		}
	}
	return false
}

// Ribosomal is a ribosomally synthesized peptide cluster.
type Ribosomal struct {
	Subclass   string      `json:"subclass"`
	Precursors []Precursor `json:"precursors"`
	RippType   string      `json:"ripp_type,omitempty"`
	Details    string      `json:"details,omitempty"`
	Peptidases []GeneId    `json:"peptidases,omitempty"`
}

const (
	RibosomalRiPP       = "RiPP"
	RibosomalUnmodified = "unmodified"
)

func (r *Ribosomal) Validate(ctx Context) error {
	var c validation.Collector
	if r.Subclass != RibosomalRiPP && r.Subclass != RibosomalUnmodified {
		c.Add("ribosomal.subclass", "subclass must be one of %s, %s", RibosomalRiPP, RibosomalUnmodified)
	}
	if r.Subclass == RibosomalRiPP {
		if !ctx.Loose() && !ValidRippType(r.RippType) {
			c.Add("ribosomal.ripp_type", "invalid RiPP type: %s", r.RippType)
		}
		if r.RippType == "other" && r.Details == "" {
			c.Add("ribosomal.details", "details must be provided for 'other' RiPP types")
		}
	}
	for i, precursor := range r.Precursors {
		c.MergePrefixed(validation.Index("ribosomal.precursors", i), precursor.Validate(ctx))
	}
	for i, peptidase := range r.Peptidases {
		c.MergePrefixed(validation.Index("ribosomal.peptidases", i), peptidase.Validate(ctx))
	}
	return c.Err()
}

func (r *Ribosomal) References() []Citation { return nil }

func (r *Ribosomal) MarshalJSON() ([]byte, error) {
	type plain Ribosomal
	clone := plain(*r)
	clone.Precursors = nonNil(clone.Precursors)
	return json.Marshal(clone)
}

// Glycosyltransferase attaches a sugar to the scaffold.
type Glycosyltransferase struct {
	Gene        GeneId       `json:"gene"`
	Evidence    []GTEvidence `json:"evidence"`
	Specificity *Smiles      `json:"specificity,omitempty"`
}

func (g Glycosyltransferase) Validate(ctx Context) error {
	var c validation.Collector
	c.Merge("glycosyltransferase.gene", g.Gene.Validate(ctx))
	for i, evidence := range g.Evidence {
		c.MergePrefixed(validation.Index("glycosyltransferase.evidence", i), evidence.Validate(ctx))
	}
	if g.Specificity != nil {
		c.MergePrefixed("glycosyltransferase", g.Specificity.Validate())
	}
	return c.Err()
}

// Subcluster is a group of genes responsible for one sugar moiety.
type Subcluster struct {
	Genes      []GeneId   `json:"genes"`
	References []Citation `json:"references"`
}

func (s Subcluster) Validate(ctx Context) error {
	var c validation.Collector
	for i, gene := range s.Genes {
		c.MergePrefixed(validation.Index("subcluster.genes", i), gene.Validate(ctx))
	}
	if !ctx.Loose() {
		validateCitations(&c, "subcluster.references", s.References, ctx)
	}
	return c.Err()
}

// Saccharide is a sugar-containing cluster.
type Saccharide struct {
	Glycosyltransferases []Glycosyltransferase `json:"glycosyltransferases"`
	Subclass             string                `json:"subclass,omitempty"`
	Subclusters          []Subcluster          `json:"subclusters,omitempty"`
}

func (s *Saccharide) Validate(ctx Context) error {
	var c validation.Collector
	for i, subcluster := range s.Subclusters {
		c.MergePrefixed(validation.Index("saccharide.subclusters", i), subcluster.Validate(ctx))
	}
	for i, gt := range s.Glycosyltransferases {
		c.MergePrefixed(validation.Index("saccharide.glycosyltransferases", i), gt.Validate(ctx))
	}
	return c.Err()
}

func (s *Saccharide) References() []Citation {
	set := map[Citation]struct{}{}
	for _, subcluster := range s.Subclusters {
		for _, ref := range subcluster.References {
			set[ref] = struct{}{}
		}
	}
	for _, gt := range s.Glycosyltransferases {
		for _, evidence := range gt.Evidence {
			for _, ref := range evidence.References {
				set[ref] = struct{}{}
			}
		}
	}
	return sortCitations(set)
}

func (s *Saccharide) MarshalJSON() ([]byte, error) {
	type plain Saccharide
	clone := plain(*s)
	clone.Glycosyltransferases = nonNil(clone.Glycosyltransferases)
	return json.Marshal(clone)
}

var (
	terpeneSubclasses = []string{"Diterpene", "Hemiterpene", "Monoterpene", "Sesquiterpene", "Triterpene"}
	terpenePrecursors = []string{"DMAPP", "FPP", "GGPP", "GPP", "IPP"}
)

// Terpene is a terpenoid cluster.
type Terpene struct {
	Subclass           string   `json:"subclass"`
	Prenyltransferases []GeneId `json:"prenyltransferases,omitempty"`
	Synthases          []GeneId `json:"synthases,omitempty"`
	Precursor          string   `json:"precursor,omitempty"`
}

func (t *Terpene) Validate(ctx Context) error {
	var c validation.Collector
	valid := false
	for _, subclass := range terpeneSubclasses {
		if t.Subclass == subclass {
			valid = true
			break
		}
	}
	if !valid {
		c.Add("terpene.subclass", "invalid subclass: %s", t.Subclass)
	}
	for i, pt := range t.Prenyltransferases {
		c.MergePrefixed(validation.Index("terpene.prenyltransferases", i), pt.Validate(ctx))
	}
	for i, synthase := range t.Synthases {
		c.MergePrefixed(validation.Index("terpene.synthases", i), synthase.Validate(ctx))
	}
	if t.Precursor != "" {
		valid = false
		for _, precursor := range terpenePrecursors {
			if t.Precursor == precursor {
				valid = true
				break
			}
		}
		if !valid {
			c.Add("terpene.precursor", "invalid precursor: %s", t.Precursor)
		}
	}
	return c.Err()
}

func (t *Terpene) References() []Citation { return nil }

var otherClassSubclasses = []string{
	"aminocoumarin",
	"butyrolactone",
	"cyclitol",
	"ectoine",
	"fatty acid",
	"flavin",
	"indole",
	"non-nrp beta-lactam",
	"non-nrp siderophore",
	"nucleoside",
	"other",
	"pbde",
	"phenazine",
	"phosphonate",
	"shikimate-derived",
	"trna-derived",
}

// OtherClass covers biosynthetic classes outside the fixed vocabulary.
type OtherClass struct {
	Subclass string `json:"subclass"`
	Details  string `json:"details,omitempty"`
}

func (o *OtherClass) Validate(_ Context) error {
	var c validation.Collector
	valid := false
	for _, subclass := range otherClassSubclasses {
		if o.Subclass == subclass {
			valid = true
			break
		}
	}
	if !valid {
		c.Add("other.subclass", "invalid subclass: %s", o.Subclass)
	}
	if o.Subclass == "other" && o.Details == "" {
		c.Add("other.details", "missing details for subclass 'other'")
	}
	return c.Err()
}

func (o *OtherClass) References() []Citation { return nil }
