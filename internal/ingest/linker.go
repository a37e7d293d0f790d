package ingest

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gokturk078/project-3/internal/model"
	"github.com/gokturk078/project-3/pkg/normalize"
)

// Linker associates leave/tracking records with canonical people.
// Exact normalized-key matches link directly; otherwise the best fuzzy
// match is accepted only when its similarity strictly exceeds the
// threshold. Ties go to the first person encountered, which keeps
// linkage deterministic for a stable input ordering.
type Linker struct {
	Threshold float64
	log       *zap.Logger
}

// NewLinker creates a Linker with the configured similarity threshold.
func NewLinker(threshold float64, log *zap.Logger) *Linker {
	return &Linker{Threshold: threshold, log: log}
}

// match resolves one normalized name against the people list.
func (l *Linker) match(baseKey, normalizedName, fullName string, people []model.Person, byKey map[string]*model.Person) *model.Person {
	if p, ok := byKey[baseKey]; ok {
		return p
	}

	var best *model.Person
	bestSim := 0.0
	for i := range people {
		sim := normalize.Similarity(normalizedName, people[i].NormalizedName)
		if sim > l.Threshold && sim > bestSim {
			bestSim = sim
			best = &people[i]
		}
	}

	if best != nil {
		l.log.Info("fuzzy matched record",
			zap.String("record", fullName),
			zap.String("person", best.FullName),
			zap.Float64("similarity", bestSim),
		)
	}
	return best
}

func keyIndex(people []model.Person) map[string]*model.Person {
	byKey := make(map[string]*model.Person, len(people))
	for i := range people {
		if _, ok := byKey[people[i].BaseKey]; !ok {
			byKey[people[i].BaseKey] = &people[i]
		}
	}
	return byKey
}

// LinkLeaves links leave records to people. Unlinked leaves are
// returned rather than dropped; a leave presupposes an existing person,
// so no identity is synthesized for them.
func (l *Linker) LinkLeaves(leaves []model.Leave, people []model.Person) (linked, unlinked []model.Leave) {
	byKey := keyIndex(people)

	for _, leave := range leaves {
		if p := l.match(leave.BaseKey, leave.NormalizedName, leave.FullName, people, byKey); p != nil {
			leave.PersonID = p.PersonID
			linked = append(linked, leave)
		} else {
			unlinked = append(unlinked, leave)
		}
	}

	if len(unlinked) > 0 {
		l.log.Warn("leave records could not be linked", zap.Int("count", len(unlinked)))
	}
	return linked, unlinked
}

// LinkTracking links tracking records to people; unlinked records are
// returned for pending-identity synthesis.
func (l *Linker) LinkTracking(tracking []model.Tracking, people []model.Person) (linked, unlinked []model.Tracking) {
	byKey := keyIndex(people)

	for _, track := range tracking {
		if p := l.match(track.BaseKey, track.NormalizedName, track.FullName, people, byKey); p != nil {
			id := p.PersonID
			track.PersonID = &id
			linked = append(linked, track)
		} else {
			unlinked = append(unlinked, track)
		}
	}

	if len(unlinked) > 0 {
		l.log.Warn("tracking records could not be linked", zap.Int("count", len(unlinked)))
	}
	return linked, unlinked
}

// PendingFromTracking synthesizes one pending person per unique
// normalized name among unlinked tracking records. The person carries
// the record's profession as job title and always needs review: it
// exists in permit tracking but nowhere on the roster.
func PendingFromTracking(unlinked []model.Tracking, people []model.Person, now time.Time) []model.Person {
	existing := make(map[string]bool, len(people))
	for i := range people {
		existing[people[i].BaseKey] = true
	}

	var pending []model.Person
	for _, track := range unlinked {
		if existing[track.BaseKey] {
			continue
		}
		existing[track.BaseKey] = true

		var jobTitle *string
		if track.Profession != "" {
			title := track.Profession
			jobTitle = &title
		}

		pending = append(pending, model.Person{
			PersonID:       uuid.New().String(),
			FullName:       track.FullName,
			NormalizedName: track.NormalizedName,
			BaseKey:        track.BaseKey,
			JobTitle:       jobTitle,
			Status:         model.StatusPending,
			NeedsReview:    true,
			UnmappedTags:   []string{},
			Sources:        []model.SourceRef{track.Source},
			MergedFrom:     []string{},
			TrackingInfo: &model.TrackingInfo{
				ApplicationNo: track.ApplicationNo,
				Profession:    track.Profession,
				Status:        string(track.Status),
				ExpectedDate:  track.ExpectedDate,
				ContactPerson: track.ContactPerson,
			},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return pending
}
