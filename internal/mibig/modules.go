package mibig

import (
	"encoding/json"
	"fmt"

	"github.com/mibig-secmet/bgconvert/internal/validation"
)

// ModuleType tags the payload of an assembly line module.
type ModuleType string

const (
	ModuleCAL               ModuleType = "cal"
	ModuleNrpsTypeI         ModuleType = "nrps-type1"
	ModuleOther             ModuleType = "other"
	ModulePksIterative      ModuleType = "pks-iterative"
	ModulePksModular        ModuleType = "pks-modular"
	ModulePksModularStarter ModuleType = "pks-modular-starter"
	ModulePksTransAt        ModuleType = "pks-trans-at"
	ModulePksTransAtStarter ModuleType = "pks-trans-at-starter"

	// ModuleNrpsTypeVI shares the NRPS type I payload, there is no
	// structural difference between the two.
	ModuleNrpsTypeVI ModuleType = "nrps-type6"
)

// IterationInfo records how often a module iterates. A Count of zero
// means the module is known to iterate but the count is not, serialized
// as -1.
type IterationInfo struct {
	Count int
}

// UnknownIterations marks a module as iterated without a known count.
func UnknownIterations() *IterationInfo {
	return &IterationInfo{}
}

// IterationCount marks a module as iterated the given number of times.
func IterationCount(count int) *IterationInfo {
	return &IterationInfo{Count: count}
}

func (i IterationInfo) MarshalJSON() ([]byte, error) {
	if i.Count <= 0 {
		return json.Marshal(-1)
	}
	return json.Marshal(i.Count)
}

func (i *IterationInfo) UnmarshalJSON(data []byte) error {
	var count int
	if err := json.Unmarshal(data, &count); err != nil {
		return err
	}
	if count < 0 {
		count = 0
	}
	i.Count = count
	return nil
}

// NonCanonicalActivity marks a module as deviating from the standard
// assembly line logic.
type NonCanonicalActivity struct {
	Evidence      []NcaEvidence  `json:"evidence"`
	Iterations    *IterationInfo `json:"iterations,omitempty"`
	NonElongating *bool          `json:"nonElongating,omitempty"`
	Skipped       *bool          `json:"skipped,omitempty"`
}

// NewNonCanonicalActivity creates a validated NonCanonicalActivity.
func NewNonCanonicalActivity(evidence []NcaEvidence, ctx Context, mutators ...func(*NonCanonicalActivity)) (*NonCanonicalActivity, error) {
	nca := &NonCanonicalActivity{Evidence: evidence}
	for _, mutate := range mutators {
		mutate(nca)
	}
	if err := nca.Validate(ctx); err != nil {
		return nil, err
	}
	return nca, nil
}

func (n *NonCanonicalActivity) Validate(ctx Context) error {
	var c validation.Collector
	for i, ev := range n.Evidence {
		c.MergePrefixed(validation.Index("non_canonical_activity.evidence", i), ev.Validate(ctx))
	}
	return c.Err()
}

// References lists the citations backing the activity claim.
func (n *NonCanonicalActivity) References() []Citation {
	set := map[Citation]struct{}{}
	for _, ev := range n.Evidence {
		for _, ref := range ev.References {
			set[ref] = struct{}{}
		}
	}
	return sortCitations(set)
}

// ModuleInfo is the type-specific payload of a Module.
type ModuleInfo interface {
	// Domains lists every domain of the module, core domains first.
	Domains() []Domain
	Validate(ctx Context) error
}

var moduleDecoders = map[ModuleType]func([]byte) (ModuleInfo, error){
	ModuleCAL:               decodeModuleInfo[*CAL],
	ModuleNrpsTypeI:         decodeModuleInfo[*NrpsTypeI],
	ModuleNrpsTypeVI:        decodeModuleInfo[*NrpsTypeI],
	ModuleOther:             decodeModuleInfo[*OtherModule],
	ModulePksIterative:      decodeModuleInfo[*PksIterative],
	ModulePksModular:        decodeModuleInfo[*PksModular],
	ModulePksModularStarter: decodeModuleInfo[*PksModularStarter],
	ModulePksTransAt:        decodeModuleInfo[*PksTransAt],
	ModulePksTransAtStarter: decodeModuleInfo[*PksTransAtStarter],
}

func decodeModuleInfo[T ModuleInfo](data []byte) (ModuleInfo, error) {
	var info T
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return info, nil
}

// validateModuleDomains enforces the shared module invariant and checks
// every domain.
func validateModuleDomains(c *validation.Collector, field string, domains []Domain, ctx Context) {
	if len(domains) == 0 {
		c.Add(field, "modules require at least one domain")
	}
	for i, domain := range domains {
		c.MergePrefixed(validation.Index(field, i), domain.Validate(ctx))
	}
}

// CAL is a CoA-ligase loading module.
type CAL struct {
	Cal                 Domain   `json:"cal"`
	Carriers            []Domain `json:"carriers"`
	ModificationDomains []Domain `json:"modification_domains,omitempty"`
}

func (m *CAL) Domains() []Domain {
	domains := []Domain{m.Cal}
	domains = append(domains, m.ModificationDomains...)
	return append(domains, m.Carriers...)
}

func (m *CAL) Validate(ctx Context) error {
	var c validation.Collector
	validateModuleDomains(&c, "module", m.Domains(), ctx)
	return c.Err()
}

func (m *CAL) MarshalJSON() ([]byte, error) {
	type plain CAL
	clone := plain(*m)
	clone.Carriers = nonNil(clone.Carriers)
	return json.Marshal(clone)
}

// NrpsTypeI is a standard NRPS elongation or loading module.
type NrpsTypeI struct {
	ADomain             Domain   `json:"a_domain"`
	Carriers            []Domain `json:"carriers"`
	CDomain             *Domain  `json:"c_domain,omitempty"`
	ModificationDomains []Domain `json:"modification_domains,omitempty"`
}

func (m *NrpsTypeI) Domains() []Domain {
	var domains []Domain
	if m.CDomain != nil {
		domains = append(domains, *m.CDomain)
	}
	domains = append(domains, m.ADomain)
	domains = append(domains, m.ModificationDomains...)
	return append(domains, m.Carriers...)
}

func (m *NrpsTypeI) Validate(ctx Context) error {
	var c validation.Collector
	validateModuleDomains(&c, "module", m.Domains(), ctx)
	return c.Err()
}

func (m *NrpsTypeI) MarshalJSON() ([]byte, error) {
	type plain NrpsTypeI
	clone := plain(*m)
	clone.Carriers = nonNil(clone.Carriers)
	return json.Marshal(clone)
}

// OtherModule covers module types outside the fixed vocabulary.
type OtherModule struct {
	Subtype string `json:"subtype"`
}

func (m *OtherModule) Domains() []Domain { return nil }

func (m *OtherModule) Validate(_ Context) error {
	var c validation.Collector
	if m.Subtype == "" {
		c.Add("module.subtype", "missing subtype")
	}
	return c.Err()
}

// PksTransAtStarter is a trans-AT PKS loading module.
type PksTransAtStarter struct {
	Carriers            []Domain `json:"carriers"`
	ModificationDomains []Domain `json:"modification_domains,omitempty"`
}

func (m *PksTransAtStarter) Domains() []Domain {
	domains := append([]Domain{}, m.ModificationDomains...)
	return append(domains, m.Carriers...)
}

func (m *PksTransAtStarter) Validate(ctx Context) error {
	var c validation.Collector
	validateModuleDomains(&c, "module", m.Domains(), ctx)
	return c.Err()
}

func (m *PksTransAtStarter) MarshalJSON() ([]byte, error) {
	type plain PksTransAtStarter
	clone := plain(*m)
	clone.Carriers = nonNil(clone.Carriers)
	return json.Marshal(clone)
}

// PksTransAt is a trans-AT PKS elongation module, the AT activity is
// provided by a standalone enzyme.
type PksTransAt struct {
	KsDomain            Domain   `json:"ks_domain"`
	Carriers            []Domain `json:"carriers"`
	ModificationDomains []Domain `json:"modification_domains,omitempty"`
}

func (m *PksTransAt) Domains() []Domain {
	domains := []Domain{m.KsDomain}
	domains = append(domains, m.ModificationDomains...)
	return append(domains, m.Carriers...)
}

func (m *PksTransAt) Validate(ctx Context) error {
	var c validation.Collector
	validateModuleDomains(&c, "module", m.Domains(), ctx)
	return c.Err()
}

func (m *PksTransAt) MarshalJSON() ([]byte, error) {
	type plain PksTransAt
	clone := plain(*m)
	clone.Carriers = nonNil(clone.Carriers)
	return json.Marshal(clone)
}

// PksModularStarter is a cis-AT PKS loading module.
type PksModularStarter struct {
	AtDomain            Domain   `json:"at_domain"`
	Carriers            []Domain `json:"carriers"`
	ModificationDomains []Domain `json:"modification_domains,omitempty"`
}

func (m *PksModularStarter) Domains() []Domain {
	domains := []Domain{m.AtDomain}
	domains = append(domains, m.ModificationDomains...)
	return append(domains, m.Carriers...)
}

func (m *PksModularStarter) Validate(ctx Context) error {
	var c validation.Collector
	validateModuleDomains(&c, "module", m.Domains(), ctx)
	return c.Err()
}

func (m *PksModularStarter) MarshalJSON() ([]byte, error) {
	type plain PksModularStarter
	clone := plain(*m)
	clone.Carriers = nonNil(clone.Carriers)
	return json.Marshal(clone)
}

// PksModular is a cis-AT PKS elongation module.
type PksModular struct {
	AtDomain            Domain   `json:"at_domain"`
	KsDomain            Domain   `json:"ks_domain"`
	Carriers            []Domain `json:"carriers"`
	ModificationDomains []Domain `json:"modification_domains,omitempty"`
}

func (m *PksModular) Domains() []Domain {
	domains := []Domain{m.AtDomain, m.KsDomain}
	domains = append(domains, m.ModificationDomains...)
	return append(domains, m.Carriers...)
}

func (m *PksModular) Validate(ctx Context) error {
	var c validation.Collector
	validateModuleDomains(&c, "module", m.Domains(), ctx)
	return c.Err()
}

func (m *PksModular) MarshalJSON() ([]byte, error) {
	type plain PksModular
	clone := plain(*m)
	clone.Carriers = nonNil(clone.Carriers)
	return json.Marshal(clone)
}

// PksIterative is a PKS module reused for a fixed number of rounds.
type PksIterative struct {
	AtDomain            Domain   `json:"at_domain"`
	KsDomain            Domain   `json:"ks_domain"`
	Carriers            []Domain `json:"carriers"`
	ModificationDomains []Domain `json:"modification_domains,omitempty"`
	Iterations          int      `json:"iterations"`
}

func (m *PksIterative) Domains() []Domain {
	domains := []Domain{m.AtDomain, m.KsDomain}
	domains = append(domains, m.ModificationDomains...)
	return append(domains, m.Carriers...)
}

func (m *PksIterative) Validate(ctx Context) error {
	var c validation.Collector
	validateModuleDomains(&c, "module", m.Domains(), ctx)
	if m.Iterations < 1 {
		c.Add("module.iterations", "must be greater than 0")
	}
	return c.Err()
}

func (m *PksIterative) MarshalJSON() ([]byte, error) {
	type plain PksIterative
	clone := plain(*m)
	clone.Carriers = nonNil(clone.Carriers)
	return json.Marshal(clone)
}

// Module is one station of a modular assembly line. On the wire the
// payload keys are inlined next to the header keys.
type Module struct {
	Type                 ModuleType
	Name                 string
	Genes                []GeneId
	Active               bool
	Info                 ModuleInfo
	IntegratedMonomers   []Monomer
	NonCanonicalActivity *NonCanonicalActivity
	Comment              string
}

// NewModule creates a validated Module.
func NewModule(moduleType ModuleType, name string, genes []GeneId, active bool, info ModuleInfo, ctx Context, mutators ...func(*Module)) (Module, error) {
	module := Module{Type: moduleType, Name: name, Genes: genes, Active: active, Info: info}
	for _, mutate := range mutators {
		mutate(&module)
	}
	if err := module.Validate(ctx); err != nil {
		return Module{}, err
	}
	return module, nil
}

// Validate checks the gene references, the payload, and the optional
// monomer and activity blocks.
func (m Module) Validate(ctx Context) error {
	var c validation.Collector
	if _, ok := moduleDecoders[m.Type]; !ok {
		c.Add("module.type", "invalid module type %q", string(m.Type))
	}
	for i, gene := range m.Genes {
		c.MergePrefixed(validation.Index("module.genes", i), gene.Validate(ctx))
	}
	if m.Info == nil {
		c.Add("module", "missing module payload")
	} else {
		c.Merge("module", m.Info.Validate(ctx))
	}
	for i, monomer := range m.IntegratedMonomers {
		c.MergePrefixed(validation.Index("module.integrated_monomers", i), monomer.Validate(ctx))
	}
	if m.NonCanonicalActivity != nil {
		c.Merge("module", m.NonCanonicalActivity.Validate(ctx))
	}
	return c.Err()
}

// References lists the citations of the module's domains, monomers, and
// activity evidence.
func (m Module) References() []Citation {
	set := map[Citation]struct{}{}
	if m.Info != nil {
		for _, domain := range m.Info.Domains() {
			for _, ref := range domain.References() {
				set[ref] = struct{}{}
			}
		}
	}
	for _, monomer := range m.IntegratedMonomers {
		for _, ref := range monomer.References {
			set[ref] = struct{}{}
		}
	}
	if m.NonCanonicalActivity != nil {
		for _, ref := range m.NonCanonicalActivity.References() {
			set[ref] = struct{}{}
		}
	}
	return sortCitations(set)
}

type moduleHeader struct {
	Type                 ModuleType            `json:"type"`
	Name                 string                `json:"name"`
	Genes                []GeneId              `json:"genes"`
	Active               bool                  `json:"active"`
	IntegratedMonomers   []Monomer             `json:"integrated_monomers,omitempty"`
	NonCanonicalActivity *NonCanonicalActivity `json:"non_canonical_activity,omitempty"`
	Comment              string                `json:"comment,omitempty"`
}

func (m Module) MarshalJSON() ([]byte, error) {
	header := moduleHeader{
		Type:                 m.Type,
		Name:                 m.Name,
		Genes:                nonNil(m.Genes),
		Active:               m.Active,
		IntegratedMonomers:   m.IntegratedMonomers,
		NonCanonicalActivity: m.NonCanonicalActivity,
		Comment:              m.Comment,
	}
	return marshalTagged(header, m.Info)
}

// UnmarshalJSON dispatches on the "type" key.
func (m *Module) UnmarshalJSON(data []byte) error {
	var header moduleHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return err
	}
	decode, ok := moduleDecoders[header.Type]
	if !ok {
		return fmt.Errorf("invalid module type %q", string(header.Type))
	}
	info, err := decode(data)
	if err != nil {
		return err
	}
	m.Type = header.Type
	m.Name = header.Name
	m.Genes = header.Genes
	m.Active = header.Active
	m.Info = info
	m.IntegratedMonomers = header.IntegratedMonomers
	m.NonCanonicalActivity = header.NonCanonicalActivity
	m.Comment = header.Comment
	return nil
}
