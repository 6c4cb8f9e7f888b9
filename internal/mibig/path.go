package mibig

import (
	"encoding/json"
	"strings"

	"github.com/mibig-secmet/bgconvert/internal/validation"
)

// Product is one outcome of a biosynthetic path.
type Product struct {
	Name      string  `json:"name"`
	Structure *Smiles `json:"structure,omitempty"`
	Comment   string  `json:"comment,omitempty"`
}

// NewProduct creates a validated Product.
func NewProduct(name string, structure *Smiles, comment string) (Product, error) {
	product := Product{Name: name, Structure: structure, Comment: comment}
	if err := product.Validate(); err != nil {
		return Product{}, err
	}
	return product, nil
}

func (p Product) Validate() error {
	var c validation.Collector
	if p.Name == "" {
		c.Add("product.name", "missing name")
	}
	if p.Structure != nil {
		c.MergePrefixed("product", p.Structure.Validate())
	}
	return c.Err()
}

// Steps is an ordered list of path stages. Each stage holds enzymes or
// modules acting in no particular order. The wire form is a single
// string, stages joined by ">" and stage members by ",".
type Steps [][]string

// ParseSteps decodes the step grammar. Both "," and "/" are accepted as
// in-stage separators.
func ParseSteps(raw string) Steps {
	stages := strings.Split(raw, ">")
	steps := make(Steps, 0, len(stages))
	for _, stage := range stages {
		stage = strings.ReplaceAll(stage, "/", ",")
		parts := strings.Split(stage, ",")
		members := make([]string, 0, len(parts))
		for _, part := range parts {
			members = append(members, strings.TrimSpace(part))
		}
		steps = append(steps, members)
	}
	return steps
}

func (s Steps) String() string {
	stages := make([]string, 0, len(s))
	for _, stage := range s {
		stages = append(stages, strings.Join(stage, ", "))
	}
	return strings.Join(stages, " > ")
}

func (s Steps) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Steps) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseSteps(raw)
	return nil
}

// Path is one route through the biosynthesis, from precursors to a
// product.
type Path struct {
	Products          []Product  `json:"products"`
	Steps             Steps      `json:"steps"`
	References        []Citation `json:"references"`
	IsSubcluster      bool       `json:"isSubcluster"`
	ProducesPrecursor bool       `json:"producesPrecursor"`
}

// NewPath creates a validated Path.
func NewPath(products []Product, steps Steps, references []Citation, isSubcluster, producesPrecursor bool) (Path, error) {
	path := Path{
		Products:          products,
		Steps:             steps,
		References:        references,
		IsSubcluster:      isSubcluster,
		ProducesPrecursor: producesPrecursor,
	}
	if err := path.Validate(); err != nil {
		return Path{}, err
	}
	return path, nil
}

// Validate requires at least one product and references backing the
// path.
func (p Path) Validate() error {
	var c validation.Collector
	if len(p.Products) == 0 {
		c.Add("path.products", "missing products")
	}
	for i, product := range p.Products {
		c.MergePrefixed(validation.Index("path.products", i), product.Validate())
	}
	if len(p.References) == 0 {
		c.Add("path.references", "missing references")
	}
	for i, ref := range p.References {
		c.MergePrefixed(validation.Index("path.references", i), ref.Validate())
	}
	return c.Err()
}
