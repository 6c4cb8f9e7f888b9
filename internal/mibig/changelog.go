package mibig

import (
	"github.com/mibig-secmet/bgconvert/internal/validation"
)

// ReleaseEntry is a single curated change within a release.
type ReleaseEntry struct {
	Contributors []SubmitterID `json:"contributors"`
	Reviewers    []SubmitterID `json:"reviewers"`
	Date         Date          `json:"date"`
	Comment      string        `json:"comment"`
}

// NewReleaseEntry creates a validated ReleaseEntry.
func NewReleaseEntry(contributors, reviewers []SubmitterID, date Date, comment string, ctx Context) (ReleaseEntry, error) {
	entry := ReleaseEntry{Contributors: contributors, Reviewers: reviewers, Date: date, Comment: comment}
	if err := entry.Validate(ctx); err != nil {
		return ReleaseEntry{}, err
	}
	return entry, nil
}

// Validate checks contributor, reviewer, date, and comment rules. Reviewers
// are only mandatory above the lowest quality tier.
func (e ReleaseEntry) Validate(ctx Context) error {
	var c validation.Collector
	if len(e.Contributors) == 0 {
		c.Add("changelog.contributors", "missing contributors")
	}
	for i, contributor := range e.Contributors {
		c.MergePrefixed(validation.Index("changelog.contributors", i), contributor.Validate())
	}
	if !ctx.Loose() && len(e.Reviewers) == 0 {
		c.Add("changelog.reviewers", "missing reviewers")
	}
	for i, reviewer := range e.Reviewers {
		c.MergePrefixed(validation.Index("changelog.reviewers", i), reviewer.Validate())
	}
	c.MergePrefixed("changelog", e.Date.Validate())
	if e.Comment == "" {
		c.Add("changelog.comment", "missing comment")
	}
	return c.Err()
}

// Release groups the change entries that went into one data release.
type Release struct {
	Version ReleaseVersion `json:"version"`
	Date    Date           `json:"date,omitempty"`
	Entries []ReleaseEntry `json:"entries"`
}

// NewRelease creates a validated Release.
func NewRelease(version ReleaseVersion, date Date, entries []ReleaseEntry, ctx Context) (Release, error) {
	release := Release{Version: version, Date: date, Entries: entries}
	if err := release.Validate(ctx); err != nil {
		return Release{}, err
	}
	return release, nil
}

// Validate checks the version, the date, and every entry. Only the
// unreleased "next" version may lack a date.
func (r Release) Validate(ctx Context) error {
	var c validation.Collector
	c.Merge("changelog.version", r.Version.Validate())
	if r.Date == "" {
		if r.Version != VersionNext {
			c.Add("changelog.date", "missing release date for version %q", string(r.Version))
		}
	} else {
		c.MergePrefixed("changelog", r.Date.Validate())
	}
	if len(r.Entries) == 0 {
		c.Add("changelog.entries", "missing release entries")
	}
	for i, entry := range r.Entries {
		c.MergePrefixed(validation.Index("changelog.entries", i), entry.Validate(ctx))
	}
	return c.Err()
}

// ChangeLog is the full release history of an entry.
type ChangeLog struct {
	Releases []Release `json:"releases"`
}

// NewChangeLog creates a validated ChangeLog.
func NewChangeLog(releases []Release, ctx Context) (ChangeLog, error) {
	cl := ChangeLog{Releases: releases}
	if err := cl.Validate(ctx); err != nil {
		return ChangeLog{}, err
	}
	return cl, nil
}

// Validate checks every release.
func (c ChangeLog) Validate(ctx Context) error {
	var col validation.Collector
	if len(c.Releases) == 0 {
		col.Add("changelog.releases", "missing releases")
	}
	for i, release := range c.Releases {
		col.MergePrefixed(validation.Index("changelog.releases", i), release.Validate(ctx))
	}
	return col.Err()
}
