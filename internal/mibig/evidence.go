package mibig

import (
	"github.com/mibig-secmet/bgconvert/internal/validation"
)

// MethodSequencePrediction is the one evidence method that never needs
// supporting references, as it is derived from the sequence itself.
const MethodSequencePrediction = "Sequence-based prediction"

// validateEvidence checks the method against the allowed vocabulary and,
// above the lowest quality tier, requires references for anything other
// than sequence-based prediction.
func validateEvidence(c *validation.Collector, method string, vocab []string, refs []Citation, ctx Context) {
	found := false
	for _, allowed := range vocab {
		if method == allowed {
			found = true
			break
		}
	}
	if !found {
		c.Add("evidence.method", "invalid evidence method %q", method)
	}
	if method == MethodSequencePrediction {
		for i, ref := range refs {
			c.MergePrefixed(validation.Index("evidence.references", i), ref.Validate())
		}
		return
	}
	validateCitations(c, "evidence.references", refs, ctx)
}

var substrateEvidenceMethods = []string{
	"Activity assay",
	"ACVS assay",
	"ATP-PPi exchange assay",
	"Enzyme-coupled assay",
	"Feeding study",
	"Heterologous expression",
	"Homology",
	"HPLC",
	"In-vitro experiments",
	"Knock-out studies",
	"Mass spectrometry",
	"NMR",
	"Radio labelling",
	"Sequence-based prediction",
	"Steady-state kinetics",
	"Structure-based inference",
	"X-ray crystallography",
}

// SubstrateEvidence backs a substrate specificity claim.
type SubstrateEvidence struct {
	Method     string     `json:"method"`
	References []Citation `json:"references,omitempty"`
}

// NewSubstrateEvidence creates validated SubstrateEvidence.
func NewSubstrateEvidence(method string, references []Citation, ctx Context) (SubstrateEvidence, error) {
	ev := SubstrateEvidence{Method: method, References: references}
	if err := ev.Validate(ctx); err != nil {
		return SubstrateEvidence{}, err
	}
	return ev, nil
}

func (e SubstrateEvidence) Validate(ctx Context) error {
	var c validation.Collector
	validateEvidence(&c, e.Method, substrateEvidenceMethods, e.References, ctx)
	return c.Err()
}

var locusEvidenceMethods = []string{
	"Homology-based prediction",
	"Correlation of genomic and metabolomic data",
	"Gene expression correlated with compound production",
	"Knock-out studies",
	"Enzymatic assays",
	"Heterologous expression",
	"In vitro expression",
}

// LocusEvidence backs the link between a locus and the cluster product.
type LocusEvidence struct {
	Method     string     `json:"method"`
	References []Citation `json:"references"`
}

// NewLocusEvidence creates validated LocusEvidence.
func NewLocusEvidence(method string, references []Citation, ctx Context) (LocusEvidence, error) {
	ev := LocusEvidence{Method: method, References: references}
	if err := ev.Validate(ctx); err != nil {
		return LocusEvidence{}, err
	}
	return ev, nil
}

func (e LocusEvidence) Validate(ctx Context) error {
	var c validation.Collector
	validateEvidence(&c, e.Method, locusEvidenceMethods, e.References, ctx)
	return c.Err()
}

var operonEvidenceMethods = []string{
	"Sequence-based prediction",
	"RACE",
	"ChIPseq",
	"RNAseq",
	"rt-PCR",
}

// OperonEvidence backs the existence of an operon.
type OperonEvidence struct {
	Method     string     `json:"method"`
	References []Citation `json:"references"`
}

// NewOperonEvidence creates validated OperonEvidence.
func NewOperonEvidence(method string, references []Citation, ctx Context) (OperonEvidence, error) {
	ev := OperonEvidence{Method: method, References: references}
	if err := ev.Validate(ctx); err != nil {
		return OperonEvidence{}, err
	}
	return ev, nil
}

func (e OperonEvidence) Validate(ctx Context) error {
	var c validation.Collector
	validateEvidence(&c, e.Method, operonEvidenceMethods, e.References, ctx)
	return c.Err()
}

var gtEvidenceMethods = []string{
	"Sequence-based prediction",
	"Structure-based inference",
	"Knock-out construct",
	"Activity assay",
}

// GTEvidence backs a glycosyltransferase annotation.
type GTEvidence struct {
	Method     string     `json:"method"`
	References []Citation `json:"references"`
}

// NewGTEvidence creates validated GTEvidence.
func NewGTEvidence(method string, references []Citation, ctx Context) (GTEvidence, error) {
	ev := GTEvidence{Method: method, References: references}
	if err := ev.Validate(ctx); err != nil {
		return GTEvidence{}, err
	}
	return ev, nil
}

func (e GTEvidence) Validate(ctx Context) error {
	var c validation.Collector
	validateEvidence(&c, e.Method, gtEvidenceMethods, e.References, ctx)
	return c.Err()
}

var ncaEvidenceMethods = []string{
	"Sequence-based prediction",
	"Structure-based inference",
	"Activity assay",
}

// NcaEvidence backs a non-canonical module activity claim.
type NcaEvidence struct {
	Method     string     `json:"method"`
	References []Citation `json:"references"`
}

// NewNcaEvidence creates validated NcaEvidence.
func NewNcaEvidence(method string, references []Citation, ctx Context) (NcaEvidence, error) {
	ev := NcaEvidence{Method: method, References: references}
	if err := ev.Validate(ctx); err != nil {
		return NcaEvidence{}, err
	}
	return ev, nil
}

func (e NcaEvidence) Validate(ctx Context) error {
	var c validation.Collector
	validateEvidence(&c, e.Method, ncaEvidenceMethods, e.References, ctx)
	return c.Err()
}

var functionEvidenceMethods = []string{
	"Other in vivo study",
	"Heterologous expression",
	"Knock-out",
	"Activity assay",
}

// FunctionEvidence backs a gene function annotation.
type FunctionEvidence struct {
	Method     string     `json:"method"`
	References []Citation `json:"references"`
}

// NewFunctionEvidence creates validated FunctionEvidence.
func NewFunctionEvidence(method string, references []Citation, ctx Context) (FunctionEvidence, error) {
	ev := FunctionEvidence{Method: method, References: references}
	if err := ev.Validate(ctx); err != nil {
		return FunctionEvidence{}, err
	}
	return ev, nil
}

func (e FunctionEvidence) Validate(ctx Context) error {
	var c validation.Collector
	validateEvidence(&c, e.Method, functionEvidenceMethods, e.References, ctx)
	return c.Err()
}

var compoundEvidenceMethods = []string{
	"NMR",
	"Mass spectrometry",
	"MS/MS",
	"X-ray cristallography",
	"Chemical derivatisation",
	"Total synthesis",
}

// CompoundEvidence backs the identification of a compound.
type CompoundEvidence struct {
	Method     string     `json:"method"`
	References []Citation `json:"references"`
}

// NewCompoundEvidence creates validated CompoundEvidence.
func NewCompoundEvidence(method string, references []Citation, ctx Context) (CompoundEvidence, error) {
	ev := CompoundEvidence{Method: method, References: references}
	if err := ev.Validate(ctx); err != nil {
		return CompoundEvidence{}, err
	}
	return ev, nil
}

func (e CompoundEvidence) Validate(ctx Context) error {
	var c validation.Collector
	validateEvidence(&c, e.Method, compoundEvidenceMethods, e.References, ctx)
	return c.Err()
}
