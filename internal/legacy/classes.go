package legacy

import "strings"

// Thioesterase is a v3 standalone thioesterase annotation.
type Thioesterase struct {
	Gene string `json:"gene,omitempty"`
	Type string `json:"thioesterase_type,omitempty"`
}

// NonCanonical marks a v3 module as deviating from standard assembly
// line logic.
type NonCanonical struct {
	Evidence      []string `json:"evidence,omitempty"`
	Iterated      bool     `json:"iterated,omitempty"`
	NonElongating bool     `json:"non_elongating,omitempty"`
	Skipped       bool     `json:"skipped,omitempty"`
}

// NRP is the v3 non-ribosomal peptide class block.
type NRP struct {
	Cyclic        string         `json:"cyclic,omitempty"`
	LipidMoiety   string         `json:"lipid_moiety,omitempty"`
	NrpsGenes     []NRPSGene     `json:"nrps_genes,omitempty"`
	ReleaseType   []string       `json:"release_type,omitempty"`
	Subclass      string         `json:"subclass,omitempty"`
	Thioesterases []Thioesterase `json:"thioesterases,omitempty"`
}

type NRPSGene struct {
	GeneId  string       `json:"gene_id"`
	Modules []NRPSModule `json:"modules,omitempty"`
}

type NRPSModule struct {
	Specificity         *Specificity  `json:"a_substr_spec,omitempty"`
	Active              bool          `json:"active,omitempty"`
	CondensationType    string        `json:"c_dom_subtype,omitempty"`
	Comments            string        `json:"comments,omitempty"`
	ModificationDomains []string      `json:"modification_domains,omitempty"`
	ModuleNumber        string        `json:"module_number,omitempty"`
	NonCanonical        *NonCanonical `json:"non_canonical,omitempty"`
}

// Specificity is a v3 adenylation substrate specificity, keeping the
// proteinogenic and non-proteinogenic names in separate lists.
type Specificity struct {
	Subcluster       []string      `json:"aa_subcluster,omitempty"`
	Epimerized       bool          `json:"epimerized,omitempty"`
	Evidence         []string      `json:"evidence,omitempty"`
	NonProteinogenic []string      `json:"nonproteinogenic,omitempty"`
	Proteinogenic    []string      `json:"proteinogenic,omitempty"`
	Publications     []Publication `json:"publications,omitempty"`
}

// SubstrateRef is one substrate from a Specificity, with the v3 amino
// acid shorthand expanded to the full name.
type SubstrateRef struct {
	Name          string
	Proteinogenic bool
	Structure     string
}

// v3 uses the ionized names for two amino acids.
var substrateRenames = map[string]string{
	"glutamate": "glutamic acid",
	"aspartate": "aspartic acid",
}

// Substrates merges the proteinogenic and non-proteinogenic lists into a
// uniform substrate list.
func (s *Specificity) Substrates() []SubstrateRef {
	subs := make([]SubstrateRef, 0, len(s.Proteinogenic)+len(s.NonProteinogenic))
	for _, name := range s.Proteinogenic {
		if renamed, ok := substrateRenames[strings.ToLower(name)]; ok {
			name = renamed
		}
		subs = append(subs, SubstrateRef{Name: name, Proteinogenic: true})
	}
	for _, name := range s.NonProteinogenic {
		subs = append(subs, SubstrateRef{Name: name})
	}
	return subs
}

// Polyketide is the v3 polyketide class block.
type Polyketide struct {
	Cyclases     []string   `json:"cyclases,omitempty"`
	Cyclic       bool       `json:"cyclic,omitempty"`
	KetideLength int        `json:"ketide_length,omitempty"`
	ReleaseType  []string   `json:"release_type,omitempty"`
	StarterUnit  string     `json:"starter_unit,omitempty"`
	Subclasses   []string   `json:"subclasses,omitempty"`
	Synthases    []Synthase `json:"synthases,omitempty"`
}

type Synthase struct {
	Genes                   []string       `json:"genes"`
	Iterative               *Iterative     `json:"iterative,omitempty"`
	Modules                 []PKSModule    `json:"modules,omitempty"`
	PufaModificationDomains []string       `json:"pufa_modification_domains,omitempty"`
	Subclass                []string       `json:"subclass,omitempty"`
	Thioesterases           []Thioesterase `json:"thioesterases,omitempty"`
	TransAT                 *TransAT       `json:"trans_at,omitempty"`
}

type Iterative struct {
	CyclizationType string   `json:"cyclization_type"`
	Subtype         string   `json:"subtype"`
	Evidence        string   `json:"evidence,omitempty"`
	Genes           []string `json:"genes,omitempty"`
}

type PKSModule struct {
	AtSpecificities     []string      `json:"at_specificities,omitempty"`
	Comments            string        `json:"comments,omitempty"`
	Domains             []string      `json:"domains,omitempty"`
	Evidence            string        `json:"evidence,omitempty"`
	Genes               []string      `json:"genes,omitempty"`
	KrStereochem        string        `json:"kr_stereochem,omitempty"`
	ModuleNumber        string        `json:"module_number,omitempty"`
	NonCanonical        *NonCanonical `json:"non_canonical,omitempty"`
	ModificationDomains []string      `json:"pks_mod_doms,omitempty"`
}

type TransAT struct {
	Genes []string `json:"genes,omitempty"`
}

// RiPP is the v3 ribosomal peptide class block.
type RiPP struct {
	Cyclic         bool            `json:"cyclic,omitempty"`
	Peptidases     []string        `json:"peptidases,omitempty"`
	PrecursorGenes []PrecursorGene `json:"precursor_genes,omitempty"`
	Subclass       string          `json:"subclass,omitempty"`
}

type PrecursorGene struct {
	GeneId                   string      `json:"gene_id"`
	CoreSequence             []string    `json:"core_sequence"`
	CleavageRecognitionSites []string    `json:"cleavage_recogn_site,omitempty"`
	Crosslinks               []CrossLink `json:"crosslinks,omitempty"`
	FollowerSequence         string      `json:"follower_sequence,omitempty"`
	LeaderSequence           string      `json:"leader_sequence,omitempty"`
	RecognitionMotif         string      `json:"recognition_motif,omitempty"`
}

type CrossLink struct {
	Type             string `json:"crosslink_type"`
	FirstAAPosition  int    `json:"first_AA,omitempty"`
	SecondAAPosition int    `json:"second_AA,omitempty"`
}

// Saccharide is the v3 saccharide class block.
type Saccharide struct {
	GlycosylTransferases []GlycosylTransferase `json:"glycosyltransferases,omitempty"`
	Subclass             string                `json:"subclass,omitempty"`
	SugarSubclusters     [][]string            `json:"sugar_subclusters,omitempty"`
}

type GlycosylTransferase struct {
	Evidence    []string `json:"evidence"`
	GeneId      string   `json:"gene_id"`
	Specificity string   `json:"specificity"`
}

// Terpene is the v3 terpene class block.
type Terpene struct {
	CarbonCountSubclass string   `json:"carbon_count_subclass,omitempty"`
	Prenyltransferases  []string `json:"prenyltransferases,omitempty"`
	StructuralSubclass  string   `json:"structural_subclass,omitempty"`
	Precursor           string   `json:"terpene_precursor,omitempty"`
	SynthasesCyclases   []string `json:"terpene_synth_cycl,omitempty"`
}

// Other is the v3 catch-all class block.
type Other struct {
	Subclass string `json:"subclass,omitempty"`
}

// Alkaloid is the v3 alkaloid class block. Alkaloids stopped being a
// class in v4, the converter folds them into Other.
type Alkaloid struct {
	Subclass string `json:"subclass,omitempty"`
}
