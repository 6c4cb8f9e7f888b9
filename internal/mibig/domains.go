package mibig

import (
	"encoding/json"
	"fmt"

	"github.com/mibig-secmet/bgconvert/internal/seqrecord"
	"github.com/mibig-secmet/bgconvert/internal/validation"
)

// DomainType tags the payload of a biosynthetic domain.
type DomainType string

const (
	TypeAcyltransferase   DomainType = "acyltransferase"
	TypeAdenylation       DomainType = "adenylation"
	TypeAminotransferase  DomainType = "aminotransferase"
	TypeBranching         DomainType = "branching"
	TypeCarrier           DomainType = "carrier"
	TypeCondensation      DomainType = "condensation"
	TypeCyclase           DomainType = "cyclase"
	TypeDehydratase       DomainType = "dehydratase"
	TypeEnoylreductase    DomainType = "enoylreductase"
	TypeEpimerase         DomainType = "epimerase"
	TypeHydroxylase       DomainType = "hydroxylase"
	TypeKetoreductase     DomainType = "ketoreductase"
	TypeKetosynthase      DomainType = "ketosynthase"
	TypeLigase            DomainType = "ligase"
	TypeMethyltransferase DomainType = "methyltransferase"
	TypeOtherDomain       DomainType = "other"
	TypeOxidase           DomainType = "oxidase"
	TypeProductTemplate   DomainType = "product_template"
	TypeThioesterase      DomainType = "thioesterase"
	TypeThioreductase     DomainType = "thioreductase"

	// TypeAmpBinding is a legacy alias accepted on decode and normalized
	// to TypeAdenylation.
	TypeAmpBinding DomainType = "amp-binding"
)

// DomainInfo is the type-specific payload of a Domain.
type DomainInfo interface {
	// References lists the citations backing the payload, including
	// those carried by its evidence.
	References() []Citation
	Validate(ctx Context) error
}

var domainDecoders = map[DomainType]func([]byte) (DomainInfo, error){
	TypeAcyltransferase:   decodeDomainInfo[*Acyltransferase],
	TypeAdenylation:       decodeDomainInfo[*Adenylation],
	TypeAmpBinding:        decodeDomainInfo[*Adenylation],
	TypeAminotransferase:  decodeDomainInfo[*Aminotransferase],
	TypeBranching:         decodeDomainInfo[*Branching],
	TypeCarrier:           decodeDomainInfo[*Carrier],
	TypeCondensation:      decodeDomainInfo[*Condensation],
	TypeCyclase:           decodeDomainInfo[*Cyclase],
	TypeDehydratase:       decodeDomainInfo[*Dehydratase],
	TypeEnoylreductase:    decodeDomainInfo[*Enoylreductase],
	TypeEpimerase:         decodeDomainInfo[*Epimerase],
	TypeHydroxylase:       decodeDomainInfo[*Hydroxylase],
	TypeKetoreductase:     decodeDomainInfo[*Ketoreductase],
	TypeKetosynthase:      decodeDomainInfo[*Ketosynthase],
	TypeLigase:            decodeDomainInfo[*Ligase],
	TypeMethyltransferase: decodeDomainInfo[*Methyltransferase],
	TypeOtherDomain:       decodeDomainInfo[*OtherDomain],
	TypeOxidase:           decodeDomainInfo[*Oxidase],
	TypeProductTemplate:   decodeDomainInfo[*ProductTemplate],
	TypeThioesterase:      decodeDomainInfo[*ThioesteraseDomain],
	TypeThioreductase:     decodeDomainInfo[*Thioreductase],
}

func decodeDomainInfo[T DomainInfo](data []byte) (DomainInfo, error) {
	var info T
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return info, nil
}

// Domain places a biosynthetic domain on a gene. On the wire the payload
// keys are inlined next to the "type", "gene", and "location" keys.
type Domain struct {
	Type     DomainType
	Gene     GeneId
	Location Location
	Info     DomainInfo
}

// NewDomain creates a validated Domain.
func NewDomain(domainType DomainType, gene GeneId, location Location, info DomainInfo, ctx Context) (Domain, error) {
	domain := Domain{Type: domainType, Gene: gene, Location: location, Info: info}
	if err := domain.Validate(ctx); err != nil {
		return Domain{}, err
	}
	return domain, nil
}

// Validate checks the gene reference, the location against the CDS the
// gene resolves to, and the payload.
func (d Domain) Validate(ctx Context) error {
	var c validation.Collector
	if _, ok := domainDecoders[d.Type]; !ok {
		c.Add("domain.type", "invalid domain type %q", string(d.Type))
	}
	c.Merge("domain.gene", d.Gene.Validate(ctx))
	var cds *seqrecord.CDS
	if ctx.Record != nil {
		cds = ctx.Record.GetCDS(string(d.Gene))
	}
	c.MergePrefixed("domain", d.Location.Validate(ctx, cds))
	if d.Info == nil {
		c.Add("domain", "missing domain payload")
	} else {
		c.MergePrefixed("domain", d.Info.Validate(ctx))
	}
	return c.Err()
}

// References lists the citations backing the payload.
func (d Domain) References() []Citation {
	if d.Info == nil {
		return nil
	}
	return d.Info.References()
}

type domainHeader struct {
	Type     DomainType `json:"type"`
	Gene     GeneId     `json:"gene"`
	Location Location   `json:"location"`
}

// MarshalJSON inlines the payload keys next to the header keys.
func (d Domain) MarshalJSON() ([]byte, error) {
	return marshalTagged(domainHeader{Type: d.Type, Gene: d.Gene, Location: d.Location}, d.Info)
}

// UnmarshalJSON dispatches on the "type" key. The legacy "amp-binding"
// tag is normalized to "adenylation".
func (d *Domain) UnmarshalJSON(data []byte) error {
	var header domainHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return err
	}
	decode, ok := domainDecoders[header.Type]
	if !ok {
		return fmt.Errorf("invalid domain type %q", string(header.Type))
	}
	info, err := decode(data)
	if err != nil {
		return err
	}
	if header.Type == TypeAmpBinding {
		header.Type = TypeAdenylation
	}
	d.Type = header.Type
	d.Gene = header.Gene
	d.Location = header.Location
	d.Info = info
	return nil
}

// marshalTagged merges the payload's JSON keys into the header object.
// Header keys never collide with payload keys, and the map round-trip
// keeps the output keys sorted.
func marshalTagged(header any, payload any) ([]byte, error) {
	merged := map[string]json.RawMessage{}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &merged); err != nil {
			return nil, err
		}
	}
	raw, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	var headerKeys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &headerKeys); err != nil {
		return nil, err
	}
	for key, value := range headerKeys {
		merged[key] = value
	}
	return json.Marshal(merged)
}
