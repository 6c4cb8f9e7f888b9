package mibig

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mibig-secmet/bgconvert/internal/seqrecord"
	"github.com/mibig-secmet/bgconvert/internal/validation"
)

// NovelGeneId names a gene that is not required to exist in the reference
// record, e.g. a newly proposed gene from an addition.
type NovelGeneId string

// Validate checks the identifier character rules.
func (n NovelGeneId) Validate(_ Context) error {
	var c validation.Collector
	if n == "" {
		c.Add("gene_id", "empty gene id")
	} else if seqrecord.SanitiseIdentifier(string(n)) != string(n) {
		c.Add("gene_id", "invalid characters in gene id %q", string(n))
	}
	return c.Err()
}

// GeneId names a gene that must resolve against the reference record when
// one is part of the validation context.
type GeneId string

// NewGeneId creates a validated GeneId.
func NewGeneId(value string, ctx Context) (GeneId, error) {
	id := GeneId(value)
	if err := id.Validate(ctx); err != nil {
		return "", err
	}
	return id, nil
}

// Validate checks the identifier rules and the record cross-reference.
func (g GeneId) Validate(ctx Context) error {
	var c validation.Collector
	c.Merge("gene_id", NovelGeneId(g).Validate(ctx))
	if ctx.Record != nil && !ctx.Record.HasCDS(string(g)) {
		c.Add("gene_id", "gene %q not found in record %s", string(g), ctx.Record.ID)
	}
	return c.Err()
}

// Location is an integer interval over a sequence or translation. The wire
// keys are "from" and "to".
type Location struct {
	Begin int `json:"from"`
	End   int `json:"to"`
}

// NewLocation creates a validated Location.
func NewLocation(begin, end int, ctx Context) (Location, error) {
	loc := Location{Begin: begin, End: end}
	if err := loc.Validate(ctx, nil); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// Validate checks the interval bounds. A non-nil cds additionally bounds
// the end against the translation length. Negative coordinates only pass
// at the lowest quality tier, where imported placeholder locations live.
func (l Location) Validate(ctx Context, cds *seqrecord.CDS) error {
	var c validation.Collector
	if l.Begin > l.End {
		c.Add("location.from", "begin %d is past end %d", l.Begin, l.End)
	}
	if !ctx.Loose() {
		if l.Begin < 0 {
			c.Add("location.from", "negative coordinate %d", l.Begin)
		}
		if l.End < 0 {
			c.Add("location.to", "negative coordinate %d", l.End)
		}
	}
	if cds != nil && cds.TranslationLength() > 0 && l.End > cds.TranslationLength() {
		c.Add("location.to", "end %d is past the CDS translation length %d", l.End, cds.TranslationLength())
	}
	return c.Err()
}

// Citation databases and their value formats.
var citationPatterns = map[string]*regexp.Regexp{
	"pubmed": regexp.MustCompile(`^(\d+)$`),
	"doi":    regexp.MustCompile(`^10\.\d{4,9}/[-\._;()/:a-zA-Z0-9]+$`),
	"patent": regexp.MustCompile(`^(.+)$`),
	"url":    regexp.MustCompile(`^https?://(www\.)?[-a-zA-Z0-9@:%._\+~#=]{2,256}\.[a-z]{2,6}\b([-a-zA-Z0-9@:%_\+.~#?&/=]*)$`),
}

// Citation is a literature reference, serialized as "database:value". Two
// citations with equal database and value are the same citation.
type Citation struct {
	Database string
	Value    string
}

// NewCitation creates a validated Citation.
func NewCitation(database, value string) (Citation, error) {
	cit := Citation{Database: database, Value: value}
	if err := cit.Validate(); err != nil {
		return Citation{}, err
	}
	return cit, nil
}

// Validate checks the database name and its value format.
func (c Citation) Validate() error {
	var col validation.Collector
	pattern, ok := citationPatterns[c.Database]
	if !ok {
		col.Add("citation", "invalid database type %q", c.Database)
		return col.Err()
	}
	if !pattern.MatchString(c.Value) {
		col.Add("citation", "Invalid value '%s' for database '%s'", c.Value, c.Database)
	}
	return col.Err()
}

func (c Citation) String() string {
	return c.Database + ":" + c.Value
}

// MarshalJSON encodes the citation as a "database:value" string.
func (c Citation) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a "database:value" string.
func (c *Citation) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	database, value, found := strings.Cut(raw, ":")
	if !found {
		return fmt.Errorf("invalid citation %q", raw)
	}
	c.Database = database
	c.Value = value
	return nil
}

// sortCitations orders citations by database, then value, and drops
// duplicates. Used by the derived reference views.
func sortCitations(set map[Citation]struct{}) []Citation {
	out := make([]Citation, 0, len(set))
	for cit := range set {
		out = append(out, cit)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Database != out[j].Database {
			return out[i].Database < out[j].Database
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// validateCitations checks every citation in refs and, outside the lowest
// quality tier, requires the list to be non-empty.
func validateCitations(c *validation.Collector, field string, refs []Citation, ctx Context) {
	if !ctx.Loose() && len(refs) == 0 {
		c.Add(field, "missing references")
	}
	for i, ref := range refs {
		c.MergePrefixed(validation.Index(field, i), ref.Validate())
	}
}

// MibigSubmitter is the placeholder submitter standing in for the system
// itself in reconstructed changelog entries.
const MibigSubmitter SubmitterID = "AAAAAAAAAAAAAAAAAAAAAAAA"

// SubmitterID identifies a submitter: exactly 24 alphanumeric characters.
type SubmitterID string

var submitterPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// NewSubmitterID creates a validated SubmitterID.
func NewSubmitterID(value string) (SubmitterID, error) {
	id := SubmitterID(value)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// Validate checks the length and character rules.
func (s SubmitterID) Validate() error {
	var c validation.Collector
	if len(s) != 24 {
		c.Add("submitter", "invalid length")
		return c.Err()
	}
	if !submitterPattern.MatchString(string(s)) {
		c.Add("submitter", "invalid characters")
	}
	return c.Err()
}

// Smiles is a chemical structure string. Only the character class is
// checked, not chemical correctness.
type Smiles string

var smilesPattern = regexp.MustCompile(`^[\[\]a-zA-Z0-9@()=/\\#+.%*-]+$`)

// Validate checks the SMILES character class.
func (s Smiles) Validate() error {
	var c validation.Collector
	if !smilesPattern.MatchString(string(s)) {
		c.Add("smiles", "invalid SMILES string %q", string(s))
	}
	return c.Err()
}

// VersionNext marks the not-yet-released version in a changelog.
const VersionNext = "next"

// ReleaseVersion is a dotted numeric version string, or the "next"
// sentinel for unreleased changes.
type ReleaseVersion string

// Validate checks the version grammar.
func (v ReleaseVersion) Validate() error {
	var c validation.Collector
	if v == VersionNext {
		return nil
	}
	if v == "" {
		c.Add("release version", "invalid version %q", string(v))
		return c.Err()
	}
	for _, part := range strings.Split(string(v), ".") {
		if part == "" || strings.TrimLeft(part, "0123456789") != "" {
			c.Add("release version", "invalid version %q", string(v))
			return c.Err()
		}
	}
	return nil
}

// Date is an ISO 8601 calendar date kept in its wire form.
type Date string

// NewDate formats a time as a Date.
func NewDate(t time.Time) Date {
	return Date(t.Format("2006-01-02"))
}

// Validate checks the date format.
func (d Date) Validate() error {
	var c validation.Collector
	if _, err := time.Parse("2006-01-02", string(d)); err != nil {
		c.Add("date", "invalid date %q", string(d))
	}
	return c.Err()
}
