// Package convert migrates MIBiG v3 documents to the v4 entry format.
//
// The migration is best-effort on content but strict on shape: documents
// that use vocabulary outside the known v3 tables (domain names, class
// names, release versions) fail with an Error instead of being guessed
// at. Converted entries always carry the lowest quality tier, so the v4
// validation applied at the end only enforces structural rules.
package convert

import (
	"fmt"
	"strconv"

	"github.com/mibig-secmet/bgconvert/internal/legacy"
	"github.com/mibig-secmet/bgconvert/internal/mibig"
	"github.com/mibig-secmet/bgconvert/internal/seqrecord"
)

// Error marks a v3 document that cannot be migrated, as opposed to a
// migrated entry that fails v4 validation.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

func errorf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// versionDates maps the v3 release versions to their release dates.
var versionDates = map[string]mibig.Date{
	"1.0": "2015-06-12",
	"1.1": "2015-08-17",
	"1.2": "2015-12-24",
	"1.3": "2016-09-03",
	"1.4": "2018-08-06",
	"2.0": "2019-10-16",
	"3.0": "2022-09-15",
	"3.1": "2022-10-07",
}

var completenessLevels = map[string]mibig.CompletenessLevel{
	"complete":   mibig.CompletenessComplete,
	"incomplete": mibig.CompletenessPartial,
	"Unknown":    mibig.CompletenessUnknown,
}

// predictedEvidence is dropped from every converted evidence list,
// predictions no longer count as evidence.
const predictedEvidence = "Sequence-based prediction"

func dropPredictions(methods []string) []string {
	kept := make([]string, 0, len(methods))
	for _, method := range methods {
		if method == predictedEvidence {
			continue
		}
		kept = append(kept, method)
	}
	return kept
}

// placeholderLocation marks domains v3 never placed on their gene.
func placeholderLocation() mibig.Location {
	return mibig.Location{Begin: -1, End: -1}
}

func citations(pubs []legacy.Publication) []mibig.Citation {
	refs := make([]mibig.Citation, 0, len(pubs))
	for _, pub := range pubs {
		refs = append(refs, mibig.Citation{Database: pub.Category, Value: pub.Content})
	}
	return refs
}

// Convert migrates a v3 document to a v4 entry. The returned entry is
// validated against the optional reference record before it is handed
// back, at the lowest quality tier.
func Convert(v3 *legacy.Everything, record *seqrecord.Record) (*mibig.Entry, error) {
	changelog, err := convertChangeLog(v3.ChangeLog)
	if err != nil {
		return nil, err
	}

	status := mibig.StatusLevel(v3.Cluster.Status)
	if !status.Known() {
		return nil, errorf("unknown status %q", v3.Cluster.Status)
	}

	if v3.Cluster.Loci == nil {
		return nil, errorf("document has no loci")
	}
	completeness, ok := completenessLevels[v3.Cluster.Loci.Completeness]
	if !ok {
		return nil, errorf("unknown completeness %q", v3.Cluster.Loci.Completeness)
	}
	loci := convertLoci(v3.Cluster.Loci)

	biosynthesis, err := convertBiosynthesis(&v3.Cluster)
	if err != nil {
		return nil, err
	}

	taxID, err := strconv.Atoi(v3.Cluster.NcbiTaxID)
	if err != nil {
		return nil, errorf("invalid NCBI tax id %q", v3.Cluster.NcbiTaxID)
	}

	var retirementReasons []string
	if status == mibig.StatusRetired {
		retirementReasons = v3.Cluster.RetirementReasons
	}

	genes, err := convertGenes(&v3.Cluster, biosynthesis)
	if err != nil {
		return nil, err
	}

	entry := &mibig.Entry{
		Accession:         v3.Cluster.MibigAccession,
		Version:           len(changelog.Releases) + 1,
		ChangeLog:         changelog,
		Quality:           mibig.QualityQuestionable,
		Status:            status,
		Completeness:      completeness,
		Loci:              loci,
		Biosynthesis:      *biosynthesis,
		Compounds:         convertCompounds(v3.Cluster.Compounds),
		Taxonomy:          mibig.Taxonomy{Name: v3.Cluster.OrganismName, NCBITaxID: taxID},
		Genes:             genes,
		RetirementReasons: retirementReasons,
		SeeAlso:           v3.Cluster.SeeAlso,
		Comment:           v3.Comments,
	}
	if err := entry.Validate(record); err != nil {
		return nil, err
	}
	return entry, nil
}

func convertLoci(v3 *legacy.Loci) []mibig.Locus {
	evidence := make([]mibig.LocusEvidence, 0, len(v3.Evidence))
	for _, method := range dropPredictions(v3.Evidence) {
		evidence = append(evidence, mibig.LocusEvidence{Method: method, References: []mibig.Citation{}})
	}
	locus := mibig.Locus{
		Accession: v3.Accession,
		Location:  mibig.Location{Begin: v3.Start, End: v3.End},
		Evidence:  evidence,
	}
	return []mibig.Locus{locus}
}

func convertCompounds(v3Compounds []legacy.Compound) []mibig.Compound {
	compounds := make([]mibig.Compound, 0, len(v3Compounds))
	for _, v3 := range v3Compounds {
		databases := make([]mibig.CompoundRef, 0, len(v3.DatabaseID))
		for _, ref := range v3.DatabaseID {
			databases = append(databases, mibig.CompoundRef{Database: ref.Database, Identifier: ref.Reference})
		}
		compounds = append(compounds, mibig.Compound{
			Name:      v3.Name,
			Evidence:  []mibig.CompoundEvidence{},
			Databases: databases,
			Mass:      v3.MolMass,
		})
	}
	return compounds
}
