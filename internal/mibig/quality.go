// Package mibig models the MIBiG 4.0 entry schema as self-validating
// entities. Objects are decoded from JSON first and validated as a second
// pass; validation collects every violation in the subtree instead of
// stopping at the first one.
package mibig

import (
	"github.com/mibig-secmet/bgconvert/internal/seqrecord"
)

// QualityLevel is the review tier of an entry. The tiers form a total
// order; the lowest tier relaxes several normally mandatory checks so that
// unreviewed legacy imports can be represented at all.
type QualityLevel string

const (
	QualityQuestionable QualityLevel = "questionable"
	QualityLow          QualityLevel = "low"
	QualityMedium       QualityLevel = "medium"
	QualityHigh         QualityLevel = "high"
)

var qualityRanks = map[QualityLevel]int{
	QualityQuestionable: 0,
	QualityLow:          1,
	QualityMedium:       2,
	QualityHigh:         3,
}

// Known reports whether q is one of the defined tiers.
func (q QualityLevel) Known() bool {
	_, ok := qualityRanks[q]
	return ok
}

// AtLeast reports whether q is at or above other in the tier order.
func (q QualityLevel) AtLeast(other QualityLevel) bool {
	return qualityRanks[q] >= qualityRanks[other]
}

// CompletenessLevel describes how much of the cluster the locus covers.
type CompletenessLevel string

const (
	CompletenessUnknown  CompletenessLevel = "unknown"
	CompletenessPartial  CompletenessLevel = "partial"
	CompletenessComplete CompletenessLevel = "complete"
)

// Known reports whether c is one of the defined levels.
func (c CompletenessLevel) Known() bool {
	switch c {
	case CompletenessUnknown, CompletenessPartial, CompletenessComplete:
		return true
	}
	return false
}

// StatusLevel is the lifecycle state of an entry.
type StatusLevel string

const (
	StatusPending   StatusLevel = "pending"
	StatusEmbargoed StatusLevel = "embargoed"
	StatusActive    StatusLevel = "active"
	StatusRetired   StatusLevel = "retired"
)

// Known reports whether s is one of the defined states.
func (s StatusLevel) Known() bool {
	switch s {
	case StatusPending, StatusEmbargoed, StatusActive, StatusRetired:
		return true
	}
	return false
}

// Context carries the validation environment through the entity graph: the
// quality tier of the owning entry and, when available, the sequence record
// gene references are resolved against. A nil Record skips all record
// cross-checks.
type Context struct {
	Quality QualityLevel
	Record  *seqrecord.Record
}

// Loose reports whether the relaxed validation rules of the lowest quality
// tier apply.
func (c Context) Loose() bool {
	return c.Quality == QualityQuestionable
}
