package plannerd

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/guidebot/planner-core/internal/itinerary"
	"github.com/guidebot/planner-core/internal/place"
	"github.com/guidebot/planner-core/internal/planning"
	"github.com/guidebot/planner-core/pkg/utils"
)

// PlanStatus is the lifecycle state of a plan run.
type PlanStatus string

const (
	PlanStatusPending   PlanStatus = "pending"
	PlanStatusRunning   PlanStatus = "running"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusFailed    PlanStatus = "failed"
	PlanStatusCancelled PlanStatus = "cancelled"
)

// Terminal reports whether the status is final.
func (s PlanStatus) Terminal() bool {
	switch s {
	case PlanStatusCompleted, PlanStatusFailed, PlanStatusCancelled:
		return true
	}
	return false
}

// ParsePlanStatus parses a status filter string; unknown values map to "".
func ParsePlanStatus(s string) PlanStatus {
	switch PlanStatus(s) {
	case PlanStatusPending, PlanStatusRunning, PlanStatusCompleted,
		PlanStatusFailed, PlanStatusCancelled:
		return PlanStatus(s)
	}
	return ""
}

// PlanInput is the wire-format payload of a plan run: the request
// parameters plus the raw candidate lists the external recommenders
// produced.
type PlanInput struct {
	Destination  string               `json:"destination" yaml:"destination"`
	Days         int                  `json:"days" yaml:"days"`
	BudgetPerDay float64              `json:"budget_per_day" yaml:"budget_per_day"`
	Meals        []place.RawCandidate `json:"meals" yaml:"meals"`
	Nightlife    []place.RawCandidate `json:"nightlife" yaml:"nightlife"`
	Lodging      []place.RawCandidate `json:"lodging" yaml:"lodging"`
	Seed         int64                `json:"seed,omitempty" yaml:"seed,omitempty"` // 0 means time-based
}

// PlanProgress is a point-in-time view of a running search.
type PlanProgress struct {
	Iterations  int     `json:"iterations"`
	Temperature float64 `json:"temperature"`
	BestScore   float64 `json:"best_score"`
}

// PlanRecord tracks one plan run through its lifecycle.
type PlanRecord struct {
	ID              string
	Status          PlanStatus
	CreatedAtUnixMs int64
	StartedAtUnixMs int64
	EndedAtUnixMs   int64
	Error           string
	Input           *PlanInput
	Progress        *PlanProgress
	Result          *planning.PlanResult
	Snapshot        *itinerary.Snapshot
}

// PlanStore is an in-memory store of plan runs.
type PlanStore struct {
	mu    sync.RWMutex
	plans map[string]*PlanRecord
}

// NewPlanStore creates an empty store.
func NewPlanStore() *PlanStore {
	return &PlanStore{
		plans: make(map[string]*PlanRecord),
	}
}

func nowUnixMs() int64 {
	return time.Now().UTC().UnixMilli()
}

// cloneRecord copies a record under the store lock. Pointer fields are
// shared; they are replaced wholesale on update, never mutated in
// place, so a copy is safe to read without the lock.
func cloneRecord(rec *PlanRecord) *PlanRecord {
	c := *rec
	return &c
}

// Create registers a new pending plan run. An empty planID gets a
// generated one.
func (s *PlanStore) Create(planID string, input *PlanInput) (*PlanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if planID == "" {
		planID = utils.GeneratePlanID()
	}
	if _, exists := s.plans[planID]; exists {
		return nil, fmt.Errorf("plan already exists: %s", planID)
	}

	rec := &PlanRecord{
		ID:              planID,
		Status:          PlanStatusPending,
		CreatedAtUnixMs: nowUnixMs(),
		Input:           input,
	}
	s.plans[planID] = rec
	return cloneRecord(rec), nil
}

// Get returns a copy of the record for a plan run.
func (s *PlanStore) Get(planID string) (*PlanRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.plans[planID]
	if !ok {
		return nil, false
	}
	return cloneRecord(rec), true
}

// List returns up to limit records after skipping offset, newest first,
// optionally filtered by status.
func (s *PlanStore) List(limit, offset int, status PlanStatus) []*PlanRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	all := make([]*PlanRecord, 0, len(s.plans))
	for _, rec := range s.plans {
		if status != "" && rec.Status != status {
			continue
		}
		all = append(all, rec)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAtUnixMs > all[j].CreatedAtUnixMs
	})

	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	out := make([]*PlanRecord, len(all))
	for i, rec := range all {
		out[i] = cloneRecord(rec)
	}
	return out
}

// SetStatus transitions a plan run, stamping start/end times. Terminal
// states are final; transitions out of them are rejected.
func (s *PlanStore) SetStatus(planID string, status PlanStatus, errMsg string) (*PlanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.plans[planID]
	if !ok {
		return nil, fmt.Errorf("plan not found: %s", planID)
	}
	if rec.Status.Terminal() {
		return nil, fmt.Errorf("plan %s is already %s", planID, rec.Status)
	}

	rec.Status = status
	if errMsg != "" {
		rec.Error = errMsg
	}

	switch status {
	case PlanStatusRunning:
		if rec.StartedAtUnixMs == 0 {
			rec.StartedAtUnixMs = nowUnixMs()
		}
	case PlanStatusCompleted, PlanStatusFailed, PlanStatusCancelled:
		if rec.EndedAtUnixMs == 0 {
			rec.EndedAtUnixMs = nowUnixMs()
		}
	}

	return cloneRecord(rec), nil
}

// SetProgress records in-flight search progress.
func (s *PlanStore) SetProgress(planID string, p PlanProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.plans[planID]
	if !ok {
		return fmt.Errorf("plan not found: %s", planID)
	}
	rec.Progress = &p
	return nil
}

// SetResult stores the search outcome and its display snapshot.
func (s *PlanStore) SetResult(planID string, result *planning.PlanResult, snap *itinerary.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.plans[planID]
	if !ok {
		return fmt.Errorf("plan not found: %s", planID)
	}
	rec.Result = result
	rec.Snapshot = snap
	return nil
}
