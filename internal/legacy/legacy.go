// Package legacy is the read model for MIBiG v3 documents. It mirrors the
// v3 wire format with only shape and vocabulary checks; the semantic rules
// live in the v4 entities the converter produces.
package legacy

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mibig-secmet/bgconvert/internal/validation"
)

// Everything is a complete v3 document.
type Everything struct {
	Cluster   Cluster  `json:"cluster"`
	ChangeLog []Change `json:"changelog"`
	Comments  string   `json:"comments,omitempty"`
}

// Parse decodes and shape-checks a v3 document.
func Parse(data []byte) (*Everything, error) {
	var everything Everything
	if err := json.Unmarshal(data, &everything); err != nil {
		return nil, fmt.Errorf("decoding v3 document: %w", err)
	}
	if err := everything.Validate(); err != nil {
		return nil, err
	}
	return &everything, nil
}

// Validate runs the v3 shape checks and collects every violation.
func (e *Everything) Validate() error {
	var c validation.Collector
	c.MergePrefixed("cluster", e.Cluster.Validate())
	for i, change := range e.ChangeLog {
		c.MergePrefixed(validation.Index("changelog", i), change.Validate())
	}
	return c.Err()
}

// Change is one v3 changelog entry, covering a whole MIBiG release.
type Change struct {
	Comments     []string `json:"comments"`
	Contributors []string `json:"contributors"`
	MibigVersion string   `json:"version"`
	Timestamps   []string `json:"updated_at,omitempty"`
}

func (c Change) Validate() error {
	var col validation.Collector
	if c.MibigVersion != "next" {
		for _, part := range strings.Split(c.MibigVersion, ".") {
			if part == "" || strings.TrimLeft(part, "0123456789") != "" {
				col.Add("version", "invalid version %q", c.MibigVersion)
				break
			}
		}
	}
	return col.Err()
}

// Publication is a v3 literature reference in "category:content" form.
type Publication struct {
	Category string
	Content  string
}

var publicationCategories = map[string]struct{}{
	"pubmed": {},
	"doi":    {},
	"patent": {},
	"url":    {},
}

func (p *Publication) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	category, content, found := strings.Cut(raw, ":")
	if !found || content == "" {
		return fmt.Errorf("invalid publication %q", raw)
	}
	if _, ok := publicationCategories[category]; !ok {
		return fmt.Errorf("invalid publication category %q", category)
	}
	p.Category = category
	p.Content = content
	return nil
}

func (p Publication) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Category + ":" + p.Content)
}

// DatabaseID is a v3 compound database reference in "db:reference" form.
type DatabaseID struct {
	Database  string
	Reference string
}

func (d *DatabaseID) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	database, reference, found := strings.Cut(raw, ":")
	if !found {
		return fmt.Errorf("invalid database id %q", raw)
	}
	d.Database = database
	d.Reference = reference
	return nil
}

func (d DatabaseID) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Database + ":" + d.Reference)
}
