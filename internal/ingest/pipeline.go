package ingest

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gokturk078/project-3/config"
	"github.com/gokturk078/project-3/internal/model"
	"github.com/gokturk078/project-3/internal/taxonomy"
)

// uncategorizedKey and unassignedKey are the catch-all buckets in the
// stats breakdowns.
const (
	uncategorizedKey = "UNCATEGORIZED"
	unassignedKey    = "UNASSIGNED"
)

// Pipeline runs one full ingestion: parse all four workbooks, validate,
// deduplicate, reconcile and assemble the output document. It is a
// synchronous batch job over fully loaded inputs; nothing is written
// until every stage has completed.
type Pipeline struct {
	cfg *config.Config
	log *zap.Logger
}

// New creates an ingestion pipeline.
func New(cfg *config.Config, log *zap.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log}
}

// Result is the pipeline outcome. The document is fully assembled even
// when validation failed, so callers can print diagnostics — deciding
// whether to publish it is theirs.
type Result struct {
	Document       *model.Document
	Validation     model.ValidationResult
	UnlinkedLeaves []model.Leave
}

// Run executes the pipeline. When prior is non-nil (merge mode) the
// previous document's admin credential hash, remote-store config, tag
// map and audit trail are carried into the fresh document instead of
// being regenerated.
func (p *Pipeline) Run(prior *model.Document) (*Result, error) {
	now := time.Now().UTC()
	data := p.cfg.Data

	tagMap := make(map[string]*taxonomy.Category)
	if prior != nil {
		for tag, cat := range prior.Taxonomy.TagMap {
			tagMap[tag] = cat
		}
	}

	// 1. Roster workbook: category sheets plus the control sheet.
	rosterWB, err := OpenWorkbook(filepath.Join(data.RawDir, data.Roster))
	if err != nil {
		return nil, err
	}
	defer rosterWB.Close()

	roster, err := ParseRoster(rosterWB, data.Roster, p.log)
	if err != nil {
		return nil, err
	}

	controlRows, err := rosterWB.Rows(controlSheet)
	if err != nil {
		return nil, err
	}
	validation := Validate(roster.Counts, ParseControl(controlRows))

	// 2. Departures.
	depWB, err := OpenWorkbook(filepath.Join(data.RawDir, data.Departures))
	if err != nil {
		return nil, err
	}
	defer depWB.Close()

	depRows, err := depWB.Rows(departuresSheet)
	if err != nil {
		return nil, err
	}
	depResult := ParseDepartures(depRows, data.Departures, tagMap, p.log)

	// 3. Leaves.
	leavesWB, err := OpenWorkbook(filepath.Join(data.RawDir, data.Leaves))
	if err != nil {
		return nil, err
	}
	defer leavesWB.Close()

	leavesSheet := leavesWB.FirstSheetName()
	leavesRows, err := leavesWB.Rows(leavesSheet)
	if err != nil {
		return nil, err
	}
	rawLeaves := ParseLeaves(leavesRows, data.Leaves, leavesSheet, p.log)

	// 4. Tracking.
	trackWB, err := OpenWorkbook(filepath.Join(data.RawDir, data.Tracking))
	if err != nil {
		return nil, err
	}
	defer trackWB.Close()

	trackSheet := trackWB.FirstSheetName()
	trackRows, err := trackWB.Rows(trackSheet)
	if err != nil {
		return nil, err
	}
	rawTracking := ParseTracking(trackRows, data.Tracking, trackSheet)

	// 5. Deduplicate the roster and mint person identifiers.
	dedup := Deduplicate(roster.Records, p.log)
	people := dedup.People
	for i := range people {
		people[i].PersonID = uuid.New().String()
		people[i].CreatedAt = now
		people[i].UpdatedAt = now
	}

	// 6. Active/departed conflicts.
	conflicts := DetectConflicts(people, depResult.Departures, p.log)

	// 7. Link auxiliary records, synthesize pending identities from
	// whatever tracking rows matched nobody.
	linker := NewLinker(p.cfg.Ingest.FuzzyThreshold, p.log)
	linkedLeaves, unlinkedLeaves := linker.LinkLeaves(rawLeaves, people)
	linkedTracking, unlinkedTracking := linker.LinkTracking(rawTracking, people)

	pending := PendingFromTracking(unlinkedTracking, people, now)
	p.log.Info("pending roster created", zap.Int("people", len(pending)))

	allPeople := append(people, pending...)

	pendingByKey := keyIndex(pending)
	for _, track := range unlinkedTracking {
		if person, ok := pendingByKey[track.BaseKey]; ok {
			id := person.PersonID
			track.PersonID = &id
			linkedTracking = append(linkedTracking, track)
		}
	}

	// 8. Link departures back to roster people where a match exists.
	departures := depResult.Departures
	activeByKey := keyIndex(people)
	for i := range departures {
		if person, ok := activeByKey[departures[i].BaseKey]; ok {
			id := person.PersonID
			departures[i].PersonID = &id
		}
	}

	// 9. Assemble.
	doc := &model.Document{
		Meta: model.Meta{
			GeneratedAt: now,
			Version:     model.DocumentVersion,
			SourceFiles: []string{data.Roster, data.Departures, data.Leaves, data.Tracking},
			LastUpdated: now,
			Validation:  validation,
		},
		Taxonomy: model.Taxonomy{
			Categories: taxonomy.Categories,
			Roles:      taxonomy.Roles,
			TagMap:     tagMap,
		},
		People:              allPeople,
		Leaves:              linkedLeaves,
		Tracking:            linkedTracking,
		Departures:          departures,
		DuplicateCandidates: dedup.Candidates,
		Conflicts:           conflicts,
		Audit:               []model.AuditEntry{},
	}

	for _, tag := range depResult.UnmappedTags {
		if _, ok := doc.Taxonomy.TagMap[tag]; !ok {
			doc.Taxonomy.TagMap[tag] = nil
		}
	}

	if prior != nil {
		doc.Meta.AdminHash = prior.Meta.AdminHash
		doc.Meta.RemoteStore = prior.Meta.RemoteStore
		doc.Audit = prior.Audit
	}

	doc.Meta.Stats = computeStats(doc, people, pending, depResult.UnmappedTags)

	return &Result{
		Document:       doc,
		Validation:     validation,
		UnlinkedLeaves: unlinkedLeaves,
	}, nil
}

// computeStats derives the embedded counters. Category breakdown covers
// the active roster only; role breakdown covers everyone.
func computeStats(doc *model.Document, active, pending []model.Person, unmappedTags []string) model.Stats {
	stats := model.Stats{
		TotalPeople:              len(doc.People),
		ActiveRosterCount:        len(active),
		PendingCount:             len(pending),
		DepartedCount:            len(doc.Departures),
		ConflictCount:            len(doc.Conflicts),
		UnmappedTagsCount:        len(unmappedTags),
		DuplicateCandidatesCount: len(doc.DuplicateCandidates),
		LeavesCount:              len(doc.Leaves),
		TrackingCount:            len(doc.Tracking),
		ByCategory:               make(map[string]int, len(taxonomy.Categories)+1),
		ByRole:                   make(map[string]int, len(taxonomy.Roles)+1),
	}

	for _, p := range doc.People {
		if p.NeedsReview {
			stats.NeedsReviewCount++
		}
	}

	for _, cat := range taxonomy.Categories {
		stats.ByCategory[string(cat)] = 0
	}
	stats.ByCategory[uncategorizedKey] = 0
	for _, p := range active {
		if p.Category != nil {
			stats.ByCategory[string(*p.Category)]++
		} else {
			stats.ByCategory[uncategorizedKey]++
		}
	}

	for _, role := range taxonomy.Roles {
		stats.ByRole[string(role)] = 0
	}
	stats.ByRole[unassignedKey] = 0
	for _, p := range doc.People {
		if p.Role != nil {
			stats.ByRole[string(*p.Role)]++
		} else {
			stats.ByRole[unassignedKey]++
		}
	}

	return stats
}
