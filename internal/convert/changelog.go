package convert

import (
	"strconv"
	"strings"

	"github.com/mibig-secmet/bgconvert/internal/legacy"
	"github.com/mibig-secmet/bgconvert/internal/mibig"
)

// reviewMessages are the boilerplate comments reviewers left in v3
// changelogs. They turn into reviewer attributions instead of entries.
var reviewMessages = map[string]struct{}{
	"Changes reviewed and approved.": {},
	"Changes reviewed and approved":  {},
	"Entry reviewed and approved.":   {},
	"Reviewed changes and approved.": {},
}

func convertChangeLog(changes []legacy.Change) (mibig.ChangeLog, error) {
	releases := make([]mibig.Release, 0, len(changes))
	for i, change := range changes {
		var releaseDate mibig.Date
		version := mibig.ReleaseVersion(mibig.VersionNext)
		if change.MibigVersion != mibig.VersionNext {
			date, ok := versionDates[change.MibigVersion]
			if !ok {
				return mibig.ChangeLog{}, errorf("unknown MIBiG version %q", change.MibigVersion)
			}
			releaseDate = date
			version = mibig.ReleaseVersion(strconv.Itoa(i + 1))
		}
		entries, err := convertRelease(change, releaseDate)
		if err != nil {
			return mibig.ChangeLog{}, err
		}
		releases = append(releases, mibig.Release{Version: version, Date: releaseDate, Entries: entries})
	}
	return mibig.ChangeLog{Releases: releases}, nil
}

// convertRelease untangles the v3 comment and contributor lists into
// attributed release entries. The lists were free-form, so a cascade of
// known shapes is tried, from most to least explicit.
func convertRelease(change legacy.Change, releaseDate mibig.Date) ([]mibig.ReleaseEntry, error) {
	comments := change.Comments
	contributors := change.Contributors

	if len(change.Timestamps) > 0 {
		return convertTimestampedRelease(change)
	}

	if releaseDate == "" {
		return nil, errorf("release %q has no date", change.MibigVersion)
	}

	var entries []mibig.ReleaseEntry
	reviewers := []mibig.SubmitterID{mibig.MibigSubmitter}

	switch {
	case len(contributors) == len(comments):
		for i, comment := range comments {
			entries = append(entries, mibig.ReleaseEntry{
				Contributors: []mibig.SubmitterID{mibig.SubmitterID(contributors[i])},
				Reviewers:    reviewers,
				Date:         releaseDate,
				Comment:      comment,
			})
		}

	case len(contributors) == 1:
		for _, comment := range comments {
			entries = append(entries, mibig.ReleaseEntry{
				Contributors: []mibig.SubmitterID{mibig.SubmitterID(contributors[0])},
				Reviewers:    reviewers,
				Date:         releaseDate,
				Comment:      comment,
			})
		}

	case len(contributors) > 0 && contributors[len(contributors)-1] == string(mibig.MibigSubmitter):
		// Named contributors first, then the system user picks up the
		// remaining comments.
		j := 0
		for ; j < len(contributors) && contributors[j] != string(mibig.MibigSubmitter); j++ {
			if j >= len(comments) {
				return nil, errorf("mismatch between the number of comments and contributors")
			}
			entries = append(entries, mibig.ReleaseEntry{
				Contributors: []mibig.SubmitterID{mibig.SubmitterID(contributors[j])},
				Reviewers:    reviewers,
				Date:         releaseDate,
				Comment:      comments[j],
			})
		}
		for _, comment := range comments[j:] {
			entries = append(entries, mibig.ReleaseEntry{
				Contributors: []mibig.SubmitterID{mibig.MibigSubmitter},
				Reviewers:    reviewers,
				Date:         releaseDate,
				Comment:      comment,
			})
		}

	case len(comments) == 1:
		submitters := make([]mibig.SubmitterID, 0, len(contributors))
		for _, contributor := range contributors {
			submitters = append(submitters, mibig.SubmitterID(contributor))
		}
		entries = append(entries, mibig.ReleaseEntry{
			Contributors: submitters,
			Reviewers:    reviewers,
			Date:         releaseDate,
			Comment:      comments[0],
		})

	case len(contributors) > 1 && contributors[0] == string(mibig.MibigSubmitter) &&
		contributors[len(contributors)-1] != string(mibig.MibigSubmitter):
		// System user entries followed by one named contributor.
		for _, contributor := range contributors[:len(contributors)-1] {
			if contributor != string(mibig.MibigSubmitter) {
				return nil, errorf("mismatch between the number of comments and contributors")
			}
		}
		if len(comments) == 0 {
			return nil, errorf("mismatch between the number of comments and contributors")
		}
		for _, comment := range comments[:len(comments)-1] {
			entries = append(entries, mibig.ReleaseEntry{
				Contributors: []mibig.SubmitterID{mibig.MibigSubmitter},
				Reviewers:    reviewers,
				Date:         releaseDate,
				Comment:      comment,
			})
		}
		entries = append(entries, mibig.ReleaseEntry{
			Contributors: []mibig.SubmitterID{mibig.SubmitterID(contributors[len(contributors)-1])},
			Reviewers:    reviewers,
			Date:         releaseDate,
			Comment:      comments[len(comments)-1],
		})

	case len(contributors) >= 3 && contributors[0] != string(mibig.MibigSubmitter) &&
		contributors[len(contributors)-1] != string(mibig.MibigSubmitter) &&
		len(comments) >= 2 && comments[0] == "Submitted" &&
		allSystemUser(contributors[1:len(contributors)-1]):
		// A named submission, system user entries, then a named final
		// comment.
		entries = append(entries, mibig.ReleaseEntry{
			Contributors: []mibig.SubmitterID{mibig.SubmitterID(contributors[0])},
			Reviewers:    reviewers,
			Date:         releaseDate,
			Comment:      comments[0],
		})
		for _, comment := range comments[1 : len(comments)-1] {
			entries = append(entries, mibig.ReleaseEntry{
				Contributors: []mibig.SubmitterID{mibig.MibigSubmitter},
				Reviewers:    reviewers,
				Date:         releaseDate,
				Comment:      comment,
			})
		}
		entries = append(entries, mibig.ReleaseEntry{
			Contributors: []mibig.SubmitterID{mibig.SubmitterID(contributors[len(contributors)-1])},
			Reviewers:    reviewers,
			Date:         releaseDate,
			Comment:      comments[len(comments)-1],
		})

	default:
		return nil, errorf("mismatch between the number of comments and contributors")
	}

	return entries, nil
}

// convertTimestampedRelease handles the newest v3 shape where every
// comment carries its own timestamp. Review boilerplate comments become
// reviewer attributions shared by the remaining entries.
func convertTimestampedRelease(change legacy.Change) ([]mibig.ReleaseEntry, error) {
	if len(change.Timestamps) != len(change.Comments) || len(change.Comments) != len(change.Contributors) {
		return nil, errorf("mismatch between the number of comments, contributors, and timestamps")
	}

	var reviewers []mibig.SubmitterID
	var comments, contributors, timestamps []string
	for i, comment := range change.Comments {
		if _, ok := reviewMessages[comment]; ok {
			reviewers = append(reviewers, mibig.SubmitterID(change.Contributors[i]))
			continue
		}
		comments = append(comments, comment)
		contributors = append(contributors, change.Contributors[i])
		timestamps = append(timestamps, change.Timestamps[i])
	}

	entries := make([]mibig.ReleaseEntry, 0, len(comments))
	for i, comment := range comments {
		day, _, _ := strings.Cut(timestamps[i], "T")
		date := mibig.Date(day)
		if err := date.Validate(); err != nil {
			return nil, errorf("invalid timestamp %q", timestamps[i])
		}
		entries = append(entries, mibig.ReleaseEntry{
			Contributors: []mibig.SubmitterID{mibig.SubmitterID(contributors[i])},
			Reviewers:    reviewers,
			Date:         date,
			Comment:      comment,
		})
	}
	return entries, nil
}

func allSystemUser(contributors []string) bool {
	for _, contributor := range contributors {
		if contributor != string(mibig.MibigSubmitter) {
			return false
		}
	}
	return true
}
