package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/gokturk078/project-3/internal/model"
	"github.com/gokturk078/project-3/internal/taxonomy"
	"github.com/gokturk078/project-3/pkg/normalize"
	"github.com/gokturk078/project-3/pkg/session"
)

// ── person mutations ──

// PersonInput describes a manually added person.
type PersonInput struct {
	FullName    string
	Category    *taxonomy.Category
	Role        *taxonomy.Role
	JobTitle    *string
	Status      model.PersonStatus
	NeedsReview bool
}

// PersonUpdate carries the fields to change; nil means unchanged.
type PersonUpdate struct {
	FullName    *string
	Category    *taxonomy.Category
	Role        *taxonomy.Role
	JobTitle    *string
	Status      *model.PersonStatus
	NeedsReview *bool
}

// AddPerson creates a person from manual admin input. A person added
// without a category needs review by definition.
func (s *Store) AddPerson(sess *session.Session, input PersonInput) (*model.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(sess); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	status := input.Status
	if status == "" {
		status = model.StatusActive
	}

	person := model.Person{
		PersonID:       uuid.New().String(),
		FullName:       input.FullName,
		NormalizedName: normalize.Name(input.FullName),
		BaseKey:        normalize.Name(input.FullName),
		Category:       input.Category,
		Role:           input.Role,
		JobTitle:       input.JobTitle,
		Status:         status,
		NeedsReview:    input.NeedsReview || input.Category == nil,
		UnmappedTags:   []string{},
		Sources:        []model.SourceRef{{File: "manual", Sheet: "manual", Row: 0}},
		MergedFrom:     []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	s.doc.People = append(s.doc.People, person)
	s.audit("CREATE", "person", person.PersonID, map[string]any{"fullName": person.FullName}, sess)
	s.touch()

	return &person, nil
}

// UpdatePerson applies a partial update to a person.
func (s *Store) UpdatePerson(sess *session.Session, personID string, update PersonUpdate) (*model.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(sess); err != nil {
		return nil, err
	}

	idx := s.personIndex(personID)
	if idx < 0 {
		return nil, ErrPersonNotFound
	}
	person := &s.doc.People[idx]

	if update.FullName != nil {
		person.FullName = *update.FullName
		person.NormalizedName = normalize.Name(*update.FullName)
		person.BaseKey = person.NormalizedName
	}
	if update.Category != nil {
		person.Category = update.Category
	}
	if update.Role != nil {
		person.Role = update.Role
	}
	if update.JobTitle != nil {
		person.JobTitle = update.JobTitle
	}
	if update.Status != nil {
		person.Status = *update.Status
	}
	if update.NeedsReview != nil {
		person.NeedsReview = *update.NeedsReview
	}
	person.UpdatedAt = time.Now().UTC()

	s.audit("UPDATE", "person", personID, map[string]any{"fullName": person.FullName}, sess)
	s.touch()

	p := *person
	return &p, nil
}

// DeletePerson removes a person and returns the removed record.
func (s *Store) DeletePerson(sess *session.Session, personID string) (*model.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(sess); err != nil {
		return nil, err
	}

	idx := s.personIndex(personID)
	if idx < 0 {
		return nil, ErrPersonNotFound
	}

	removed := s.doc.People[idx]
	s.doc.People = append(s.doc.People[:idx], s.doc.People[idx+1:]...)

	s.audit("DELETE", "person", personID, map[string]any{"fullName": removed.FullName}, sess)
	s.touch()

	return &removed, nil
}

// MergePeople absorbs the tail person IDs into the first one: sources
// accumulate on the base, absorbed identities are removed and recorded
// in mergedFrom, and duplicate candidates naming any merged person are
// pruned.
func (s *Store) MergePeople(sess *session.Session, personIDs []string) (*model.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(sess); err != nil {
		return nil, err
	}
	if len(personIDs) < 2 {
		return nil, ErrMergeTooFew
	}
	// A repeated id (the base included) would absorb a person into
	// itself; reject before anything is mutated.
	seen := make(map[string]bool, len(personIDs))
	for _, id := range personIDs {
		if seen[id] {
			return nil, ErrMergeDuplicateID
		}
		seen[id] = true
	}

	baseIdx := s.personIndex(personIDs[0])
	if baseIdx < 0 {
		return nil, ErrPersonNotFound
	}
	base := &s.doc.People[baseIdx]

	mergedNames := make(map[string]bool)
	for _, id := range personIDs[1:] {
		idx := s.personIndex(id)
		if idx < 0 {
			return nil, ErrPersonNotFound
		}
		absorbed := s.doc.People[idx]
		base.Sources = append(base.Sources, absorbed.Sources...)
		base.MergedFrom = append(base.MergedFrom, absorbed.PersonID)
		mergedNames[absorbed.FullName] = true

		s.doc.People = append(s.doc.People[:idx], s.doc.People[idx+1:]...)
		// Removal may shift the base; re-resolve it.
		baseIdx = s.personIndex(personIDs[0])
		base = &s.doc.People[baseIdx]
	}
	mergedNames[base.FullName] = true
	base.UpdatedAt = time.Now().UTC()

	kept := s.doc.DuplicateCandidates[:0]
	for _, cand := range s.doc.DuplicateCandidates {
		touched := false
		for _, name := range cand.Names {
			if mergedNames[name] {
				touched = true
				break
			}
		}
		if !touched {
			kept = append(kept, cand)
		}
	}
	s.doc.DuplicateCandidates = kept

	s.audit("MERGE", "person", base.PersonID, map[string]any{"merged": personIDs[1:]}, sess)
	s.touch()

	p := *base
	return &p, nil
}

// ── leave mutations ──

// LeaveInput describes a manually added leave record.
type LeaveInput struct {
	PersonID  string
	StartDate string
	EndDate   string
	Days      int
	Type      model.LeaveType
	Note      string
}

// LeaveUpdate carries the leave fields to change; nil means unchanged.
type LeaveUpdate struct {
	StartDate *string
	EndDate   *string
	Days      *int
	Type      *model.LeaveType
	Note      *string
}

// AddLeave creates a leave record for an existing person. The day count
// defaults to the inclusive span when not supplied.
func (s *Store) AddLeave(sess *session.Session, input LeaveInput) (*model.Leave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(sess); err != nil {
		return nil, err
	}

	idx := s.personIndex(input.PersonID)
	if idx < 0 {
		return nil, ErrPersonNotFound
	}
	person := s.doc.People[idx]

	endDate := input.EndDate
	if endDate == "" {
		endDate = input.StartDate
	}
	if endDate < input.StartDate {
		return nil, ErrInvalidDateRange
	}

	days := input.Days
	if days == 0 {
		days = normalize.DaysBetween(input.StartDate, endDate)
	}

	leaveType := input.Type
	if leaveType == "" {
		leaveType = model.LeaveNormal
	}

	leave := model.Leave{
		ID:             uuid.New().String(),
		PersonID:       input.PersonID,
		FullName:       person.FullName,
		NormalizedName: person.NormalizedName,
		BaseKey:        person.BaseKey,
		StartDate:      input.StartDate,
		EndDate:        endDate,
		Days:           days,
		Type:           leaveType,
		Note:           input.Note,
		Source:         model.SourceRef{File: "manual", Sheet: "manual", Row: 0},
	}

	s.doc.Leaves = append(s.doc.Leaves, leave)
	s.audit("CREATE", "leave", leave.ID, map[string]any{"personId": input.PersonID}, sess)
	s.touch()

	return &leave, nil
}

// UpdateLeave applies a partial update. When either date changes and no
// explicit day count is given, days are recomputed from the new span.
func (s *Store) UpdateLeave(sess *session.Session, leaveID string, update LeaveUpdate) (*model.Leave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(sess); err != nil {
		return nil, err
	}

	idx := s.leaveIndex(leaveID)
	if idx < 0 {
		return nil, ErrLeaveNotFound
	}
	leave := &s.doc.Leaves[idx]

	if update.StartDate != nil {
		leave.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		leave.EndDate = *update.EndDate
	}
	if leave.EndDate < leave.StartDate {
		return nil, ErrInvalidDateRange
	}
	if update.Days != nil {
		leave.Days = *update.Days
	} else if update.StartDate != nil || update.EndDate != nil {
		leave.Days = normalize.DaysBetween(leave.StartDate, leave.EndDate)
	}
	if update.Type != nil {
		leave.Type = *update.Type
	}
	if update.Note != nil {
		leave.Note = *update.Note
	}

	s.audit("UPDATE", "leave", leaveID, map[string]any{"personId": leave.PersonID}, sess)
	s.touch()

	l := *leave
	return &l, nil
}

// DeleteLeave removes a leave record.
func (s *Store) DeleteLeave(sess *session.Session, leaveID string) (*model.Leave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(sess); err != nil {
		return nil, err
	}

	idx := s.leaveIndex(leaveID)
	if idx < 0 {
		return nil, ErrLeaveNotFound
	}

	removed := s.doc.Leaves[idx]
	s.doc.Leaves = append(s.doc.Leaves[:idx], s.doc.Leaves[idx+1:]...)

	s.audit("DELETE", "leave", leaveID, map[string]any{"personId": removed.PersonID}, sess)
	s.touch()

	return &removed, nil
}

// ── tracking mutations ──

// TrackingInput describes a manually added tracking record.
type TrackingInput struct {
	PersonID      *string
	FullName      string
	ApplicationNo string
	Profession    string
	Status        model.TrackingStatus
	ExpectedDate  string
	ContactPerson string
	Notes         string
}

// TrackingUpdate carries the tracking fields to change.
type TrackingUpdate struct {
	ApplicationNo *string
	Profession    *string
	Status        *model.TrackingStatus
	ExpectedDate  *string
	ContactPerson *string
	Notes         *string
}

// AddTracking creates a tracking record.
func (s *Store) AddTracking(sess *session.Session, input TrackingInput) (*model.Tracking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(sess); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = model.TrackingPreApproved
	}

	track := model.Tracking{
		ID:             uuid.New().String(),
		PersonID:       input.PersonID,
		FullName:       input.FullName,
		NormalizedName: normalize.Name(input.FullName),
		BaseKey:        normalize.Name(input.FullName),
		ApplicationNo:  input.ApplicationNo,
		Profession:     input.Profession,
		Status:         status,
		ExpectedDate:   input.ExpectedDate,
		ContactPerson:  input.ContactPerson,
		Notes:          input.Notes,
		Source:         model.SourceRef{File: "manual", Sheet: "manual", Row: 0},
	}

	s.doc.Tracking = append(s.doc.Tracking, track)
	s.audit("CREATE", "tracking", track.ID, map[string]any{"fullName": track.FullName}, sess)
	s.touch()

	return &track, nil
}

// UpdateTracking applies a partial update to a tracking record.
func (s *Store) UpdateTracking(sess *session.Session, trackingID string, update TrackingUpdate) (*model.Tracking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(sess); err != nil {
		return nil, err
	}

	idx := s.trackingIndex(trackingID)
	if idx < 0 {
		return nil, ErrTrackingNotFound
	}
	track := &s.doc.Tracking[idx]

	if update.ApplicationNo != nil {
		track.ApplicationNo = *update.ApplicationNo
	}
	if update.Profession != nil {
		track.Profession = *update.Profession
	}
	if update.Status != nil {
		track.Status = *update.Status
	}
	if update.ExpectedDate != nil {
		track.ExpectedDate = *update.ExpectedDate
	}
	if update.ContactPerson != nil {
		track.ContactPerson = *update.ContactPerson
	}
	if update.Notes != nil {
		track.Notes = *update.Notes
	}

	s.audit("UPDATE", "tracking", trackingID, map[string]any{"fullName": track.FullName}, sess)
	s.touch()

	t := *track
	return &t, nil
}

// DeleteTracking removes a tracking record.
func (s *Store) DeleteTracking(sess *session.Session, trackingID string) (*model.Tracking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(sess); err != nil {
		return nil, err
	}

	idx := s.trackingIndex(trackingID)
	if idx < 0 {
		return nil, ErrTrackingNotFound
	}

	removed := s.doc.Tracking[idx]
	s.doc.Tracking = append(s.doc.Tracking[:idx], s.doc.Tracking[idx+1:]...)

	s.audit("DELETE", "tracking", trackingID, map[string]any{"fullName": removed.FullName}, sess)
	s.touch()

	return &removed, nil
}

// ── departure mutations ──

// DepartureInput describes a manually added departure.
type DepartureInput struct {
	PersonID  *string
	FullName  string
	Category  *taxonomy.Category
	Job       string
	EntryDate string
	ExitDate  string
	TotalDays int
}

// DepartureUpdate carries the departure fields to change.
type DepartureUpdate struct {
	Job       *string
	Category  *taxonomy.Category
	EntryDate *string
	ExitDate  *string
	TotalDays *int
}

// AddDeparture creates a departure record. Exit month is derived from
// the exit date, never supplied.
func (s *Store) AddDeparture(sess *session.Session, input DepartureInput) (*model.Departure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(sess); err != nil {
		return nil, err
	}

	totalDays := input.TotalDays
	if totalDays == 0 {
		totalDays = normalize.DaysBetween(input.EntryDate, input.ExitDate)
	}

	dep := model.Departure{
		ID:             uuid.New().String(),
		PersonID:       input.PersonID,
		FullName:       input.FullName,
		NormalizedName: normalize.Name(input.FullName),
		BaseKey:        normalize.Name(input.FullName),
		Category:       input.Category,
		Job:            input.Job,
		EntryDate:      input.EntryDate,
		ExitDate:       input.ExitDate,
		TotalDays:      totalDays,
		ExitMonth:      normalize.MonthKey(input.ExitDate),
		UnmappedTags:   []string{},
		Source:         model.SourceRef{File: "manual", Sheet: "manual", Row: 0},
	}

	s.doc.Departures = append(s.doc.Departures, dep)
	s.audit("CREATE", "departure", dep.ID, map[string]any{"fullName": dep.FullName}, sess)
	s.touch()

	return &dep, nil
}

// UpdateDeparture applies a partial update. Exit month and total days
// are recomputed whenever the dates they derive from change.
func (s *Store) UpdateDeparture(sess *session.Session, departureID string, update DepartureUpdate) (*model.Departure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(sess); err != nil {
		return nil, err
	}

	idx := s.departureIndex(departureID)
	if idx < 0 {
		return nil, ErrDepartureNotFound
	}
	dep := &s.doc.Departures[idx]

	if update.Job != nil {
		dep.Job = *update.Job
	}
	if update.Category != nil {
		dep.Category = update.Category
	}
	if update.EntryDate != nil {
		dep.EntryDate = *update.EntryDate
	}
	if update.ExitDate != nil {
		dep.ExitDate = *update.ExitDate
		dep.ExitMonth = normalize.MonthKey(dep.ExitDate)
	}
	if update.TotalDays != nil {
		dep.TotalDays = *update.TotalDays
	} else if update.EntryDate != nil || update.ExitDate != nil {
		dep.TotalDays = normalize.DaysBetween(dep.EntryDate, dep.ExitDate)
	}

	s.audit("UPDATE", "departure", departureID, map[string]any{"fullName": dep.FullName}, sess)
	s.touch()

	d := *dep
	return &d, nil
}

// DeleteDeparture removes a departure record.
func (s *Store) DeleteDeparture(sess *session.Session, departureID string) (*model.Departure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(sess); err != nil {
		return nil, err
	}

	idx := s.departureIndex(departureID)
	if idx < 0 {
		return nil, ErrDepartureNotFound
	}

	removed := s.doc.Departures[idx]
	s.doc.Departures = append(s.doc.Departures[:idx], s.doc.Departures[idx+1:]...)

	s.audit("DELETE", "departure", departureID, map[string]any{"fullName": removed.FullName}, sess)
	s.touch()

	return &removed, nil
}

// ── taxonomy mutations ──

// MapTag assigns a category to a previously unmapped tag and
// retro-classifies every person carrying that tag: they receive the
// category, shed the tag and no longer need review for it.
func (s *Store) MapTag(sess *session.Session, tag string, category taxonomy.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(sess); err != nil {
		return err
	}
	if _, ok := taxonomy.ParseCategory(string(category)); !ok {
		return ErrInvalidCategory
	}

	c := category
	s.doc.Taxonomy.TagMap[tag] = &c

	now := time.Now().UTC()
	for i := range s.doc.People {
		person := &s.doc.People[i]
		kept := person.UnmappedTags[:0]
		hit := false
		for _, t := range person.UnmappedTags {
			if t == tag {
				hit = true
				continue
			}
			kept = append(kept, t)
		}
		if hit {
			person.UnmappedTags = kept
			person.Category = &c
			person.NeedsReview = false
			person.UpdatedAt = now
		}
	}

	for i := range s.doc.Departures {
		dep := &s.doc.Departures[i]
		kept := dep.UnmappedTags[:0]
		hit := false
		for _, t := range dep.UnmappedTags {
			if t == tag {
				hit = true
				continue
			}
			kept = append(kept, t)
		}
		if hit {
			dep.UnmappedTags = kept
			dep.Category = &c
			dep.NeedsReview = false
		}
	}

	s.audit("TAG_MAP", "taxonomy", tag, map[string]any{"category": string(category)}, sess)
	s.touch()

	return nil
}

// ── index helpers (callers hold the lock) ──

func (s *Store) personIndex(id string) int {
	for i := range s.doc.People {
		if s.doc.People[i].PersonID == id {
			return i
		}
	}
	return -1
}

func (s *Store) leaveIndex(id string) int {
	for i := range s.doc.Leaves {
		if s.doc.Leaves[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) trackingIndex(id string) int {
	for i := range s.doc.Tracking {
		if s.doc.Tracking[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) departureIndex(id string) int {
	for i := range s.doc.Departures {
		if s.doc.Departures[i].ID == id {
			return i
		}
	}
	return -1
}
