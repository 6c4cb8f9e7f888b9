package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mibig-secmet/bgconvert/internal/legacy"
	"github.com/mibig-secmet/bgconvert/internal/mibig"
)

const (
	submitterA = "BBBBBBBBBBBBBBBBBBBBBBBB"
	submitterB = "CCCCCCCCCCCCCCCCCCCCCCCC"
	systemUser = string(mibig.MibigSubmitter)
)

func TestChangeLogVersionsAndDates(t *testing.T) {
	changes := []legacy.Change{
		{MibigVersion: "1.0", Comments: []string{"Submitted"}, Contributors: []string{submitterA}},
		{MibigVersion: "3.1", Comments: []string{"Fixed gene names"}, Contributors: []string{submitterA}},
	}
	changelog, err := convertChangeLog(changes)
	require.NoError(t, err)
	require.Len(t, changelog.Releases, 2)
	assert.Equal(t, mibig.ReleaseVersion("1"), changelog.Releases[0].Version)
	assert.Equal(t, mibig.Date("2015-06-12"), changelog.Releases[0].Date)
	assert.Equal(t, mibig.ReleaseVersion("2"), changelog.Releases[1].Version)
	assert.Equal(t, mibig.Date("2022-10-07"), changelog.Releases[1].Date)
}

func TestChangeLogUnknownVersion(t *testing.T) {
	_, err := convertChangeLog([]legacy.Change{
		{MibigVersion: "9.9", Comments: []string{"Submitted"}, Contributors: []string{submitterA}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown MIBiG version")
}

func TestChangeLogNextWithoutTimestampsFails(t *testing.T) {
	_, err := convertChangeLog([]legacy.Change{
		{MibigVersion: "next", Comments: []string{"Pending"}, Contributors: []string{submitterA}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no date")
}

func TestReleaseEntryAttribution(t *testing.T) {
	tests := []struct {
		name   string
		change legacy.Change
		want   []mibig.ReleaseEntry
	}{
		{
			name: "paired comments and contributors",
			change: legacy.Change{
				MibigVersion: "1.0",
				Comments:     []string{"Submitted", "Fixed loci"},
				Contributors: []string{submitterA, submitterB},
			},
			want: []mibig.ReleaseEntry{
				entryFor(submitterA, "Submitted"),
				entryFor(submitterB, "Fixed loci"),
			},
		},
		{
			name: "single contributor owns all comments",
			change: legacy.Change{
				MibigVersion: "1.0",
				Comments:     []string{"Submitted", "Fixed loci", "Fixed compounds"},
				Contributors: []string{submitterA},
			},
			want: []mibig.ReleaseEntry{
				entryFor(submitterA, "Submitted"),
				entryFor(submitterA, "Fixed loci"),
				entryFor(submitterA, "Fixed compounds"),
			},
		},
		{
			name: "trailing system user picks up leftover comments",
			change: legacy.Change{
				MibigVersion: "1.0",
				Comments:     []string{"Submitted", "Cleaned up", "Migrated"},
				Contributors: []string{submitterA, systemUser},
			},
			want: []mibig.ReleaseEntry{
				entryFor(submitterA, "Submitted"),
				entryFor(systemUser, "Cleaned up"),
				entryFor(systemUser, "Migrated"),
			},
		},
		{
			name: "single comment shared by all contributors",
			change: legacy.Change{
				MibigVersion: "1.0",
				Comments:     []string{"Submitted"},
				Contributors: []string{submitterA, submitterB, submitterB},
			},
			want: []mibig.ReleaseEntry{
				{
					Contributors: []mibig.SubmitterID{submitterA, submitterB, submitterB},
					Reviewers:    []mibig.SubmitterID{mibig.MibigSubmitter},
					Date:         "2015-06-12",
					Comment:      "Submitted",
				},
			},
		},
		{
			name: "leading system user entries before a named contributor",
			change: legacy.Change{
				MibigVersion: "1.0",
				Comments:     []string{"Migrated", "Fixed compounds"},
				Contributors: []string{systemUser, systemUser, submitterA},
			},
			want: []mibig.ReleaseEntry{
				entryFor(systemUser, "Migrated"),
				entryFor(submitterA, "Fixed compounds"),
			},
		},
		{
			name: "submission and final comment flank system user entries",
			change: legacy.Change{
				MibigVersion: "1.0",
				Comments:     []string{"Submitted", "Migrated", "Cleaned up", "Fixed compounds"},
				Contributors: []string{submitterA, systemUser, submitterB},
			},
			want: []mibig.ReleaseEntry{
				entryFor(submitterA, "Submitted"),
				entryFor(systemUser, "Migrated"),
				entryFor(systemUser, "Cleaned up"),
				entryFor(submitterB, "Fixed compounds"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changelog, err := convertChangeLog([]legacy.Change{tt.change})
			require.NoError(t, err)
			require.Len(t, changelog.Releases, 1)
			assert.Equal(t, tt.want, changelog.Releases[0].Entries)
		})
	}
}

func TestReleaseEntryMismatchFails(t *testing.T) {
	_, err := convertChangeLog([]legacy.Change{
		{
			MibigVersion: "1.0",
			Comments:     []string{"Submitted", "Fixed loci"},
			Contributors: []string{submitterA, submitterB, systemUser, submitterB},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}

func TestTimestampedReleaseStripsReviews(t *testing.T) {
	changelog, err := convertChangeLog([]legacy.Change{
		{
			MibigVersion: "next",
			Comments:     []string{"Update compound structure", "Changes reviewed and approved."},
			Contributors: []string{submitterA, submitterB},
			Timestamps:   []string{"2023-01-15T12:04:41", "2023-01-20T09:00:00"},
		},
	})
	require.NoError(t, err)
	require.Len(t, changelog.Releases, 1)
	release := changelog.Releases[0]
	assert.Equal(t, mibig.ReleaseVersion(mibig.VersionNext), release.Version)
	assert.Empty(t, release.Date)
	require.Len(t, release.Entries, 1)
	entry := release.Entries[0]
	assert.Equal(t, "Update compound structure", entry.Comment)
	assert.Equal(t, mibig.Date("2023-01-15"), entry.Date)
	assert.Equal(t, []mibig.SubmitterID{submitterA}, entry.Contributors)
	assert.Equal(t, []mibig.SubmitterID{submitterB}, entry.Reviewers)
}

func TestTimestampedReleaseLengthMismatch(t *testing.T) {
	_, err := convertChangeLog([]legacy.Change{
		{
			MibigVersion: "next",
			Comments:     []string{"Update compound structure"},
			Contributors: []string{submitterA, submitterB},
			Timestamps:   []string{"2023-01-15T12:04:41"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timestamps")
}

func entryFor(contributor, comment string) mibig.ReleaseEntry {
	return mibig.ReleaseEntry{
		Contributors: []mibig.SubmitterID{mibig.SubmitterID(contributor)},
		Reviewers:    []mibig.SubmitterID{mibig.MibigSubmitter},
		Date:         "2015-06-12",
		Comment:      comment,
	}
}
