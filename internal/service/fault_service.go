package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/noc-fault-service/internal/domain"
	"github.com/spec-kit/noc-fault-service/internal/events"
	"github.com/spec-kit/noc-fault-service/internal/repository"
	apperrors "github.com/spec-kit/noc-fault-service/pkg/util"
)

// IdempotencyStore claims transition idempotency keys. A claim that returns
// false means the same key was already used for an applied attempt; Release
// frees a claim whose write never applied, so the retry can go through.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// FaultService owns the fault lifecycle: status transitions and their side
// effects, severity derivation, history logging and notes. No other component
// mutates status, severity, pending hours, terminal timestamps or actor
// stamps.
type FaultService struct {
	faults      repository.FaultRepository
	history     repository.FaultHistoryRepository
	notes       repository.FaultNoteRepository
	customers   repository.CustomerRepository
	departments repository.DepartmentRepository
	users       repository.UserRepository
	dispatcher  events.Dispatcher
	idempotency IdempotencyStore
	idemTTL     time.Duration
	now         func() time.Time
}

// FaultDependencies bundles collaborators for the fault service.
type FaultDependencies struct {
	FaultRepo      repository.FaultRepository
	HistoryRepo    repository.FaultHistoryRepository
	NoteRepo       repository.FaultNoteRepository
	CustomerRepo   repository.CustomerRepository
	DepartmentRepo repository.DepartmentRepository
	UserRepo       repository.UserRepository
	Dispatcher     events.Dispatcher
	Idempotency    IdempotencyStore
	IdempotencyTTL time.Duration
}

// FaultCreateInput describes fault creation payload.
type FaultCreateInput struct {
	Description  string
	Type         string
	Location     string
	Owner        string
	Status       domain.FaultStatus
	PendingHours float64
	CustomerID   string
	DepartmentID string
}

// FaultPatch carries a partial update. Unset fields are left untouched; Null
// clears the optional text fields; values replace.
type FaultPatch struct {
	Description  domain.Patch[string]
	Type         domain.Patch[string]
	Location     domain.Patch[string]
	Owner        domain.Patch[string]
	CustomerID   domain.Patch[string]
	DepartmentID domain.Patch[string]
	Status       domain.Patch[domain.FaultStatus]
	PendingHours domain.Patch[float64]
}

// FaultDetail bundles a fault with its display collaborators.
type FaultDetail struct {
	Fault          domain.Fault
	Customer       *domain.Customer
	Department     *domain.Department
	Notes          []domain.FaultNote
	ResolvedByName string
	ClosedByName   string
}

// NewFaultService constructs the service.
func NewFaultService(deps FaultDependencies) *FaultService {
	ttl := deps.IdempotencyTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &FaultService{
		faults:      deps.FaultRepo,
		history:     deps.HistoryRepo,
		notes:       deps.NoteRepo,
		customers:   deps.CustomerRepo,
		departments: deps.DepartmentRepo,
		users:       deps.UserRepo,
		dispatcher:  deps.Dispatcher,
		idempotency: deps.Idempotency,
		idemTTL:     ttl,
		now:         time.Now,
	}
}

// CreateFault validates required fields, derives the initial severity from the
// caller-supplied pending hours and persists the fault. Creation writes no
// history row.
func (s *FaultService) CreateFault(ctx context.Context, input FaultCreateInput) (*domain.Fault, error) {
	if strings.TrimSpace(input.Description) == "" || input.Status == "" ||
		input.CustomerID == "" || input.DepartmentID == "" {
		return nil, apperrors.NewValidationError("description, status, customer and department are required", nil)
	}
	if !domain.ValidStatus(input.Status) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": input.Status})
	}

	pending := input.PendingHours
	if pending < 0 {
		pending = 0
	}

	fault := &domain.Fault{
		TicketNumber: generateTicketNumber(),
		Description:  strings.TrimSpace(input.Description),
		Type:         strings.TrimSpace(input.Type),
		Location:     strings.TrimSpace(input.Location),
		Owner:        strings.TrimSpace(input.Owner),
		Severity:     domain.ClassifySeverity(pending),
		Status:       input.Status,
		PendingHours: pending,
		CustomerID:   input.CustomerID,
		DepartmentID: input.DepartmentID,
	}

	if err := s.faults.Create(ctx, fault); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventFaultCreated,
		FaultID: fault.ID,
		Payload: events.FaultCreatedPayload{
			TicketNumber: fault.TicketNumber,
			DepartmentID: fault.DepartmentID,
			CustomerID:   fault.CustomerID,
			Severity:     fault.Severity,
			Status:       fault.Status,
		},
	})
	return fault, nil
}

// UpdateFault applies a partial update. A status change freezes pending hours
// and severity when the new status is terminal, stamps the acting user and
// appends exactly one history row; the fault write and the history write
// commit in one transaction. idemKey, when non-empty, protects the call
// against blind retries double-appending history: the key is claimed only
// once validation and the load have passed, and a failed write releases the
// claim so the retry of a request that never applied is not refused.
func (s *FaultService) UpdateFault(ctx context.Context, id string, patch FaultPatch, actor domain.Actor, note, idemKey string) (*domain.Fault, error) {
	var claimKey string
	if idemKey != "" && s.idempotency != nil {
		claimKey = "fault:update:" + id + ":" + idemKey
	}

	fault, err := s.faults.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("fault", map[string]any{"id": id})
		}
		return nil, err
	}

	if err := applyTextPatch(&fault.Description, patch.Description, false); err != nil {
		return nil, apperrors.NewValidationError("description cannot be cleared", nil)
	}
	_ = applyTextPatch(&fault.Type, patch.Type, true)
	_ = applyTextPatch(&fault.Location, patch.Location, true)
	_ = applyTextPatch(&fault.Owner, patch.Owner, true)
	if err := applyTextPatch(&fault.CustomerID, patch.CustomerID, false); err != nil {
		return nil, apperrors.NewValidationError("customer cannot be cleared", nil)
	}
	if err := applyTextPatch(&fault.DepartmentID, patch.DepartmentID, false); err != nil {
		return nil, apperrors.NewValidationError("department cannot be cleared", nil)
	}

	newStatus, statusSet := patch.Status.Value()
	if patch.Status.IsNull() {
		return nil, apperrors.NewValidationError("status cannot be cleared", nil)
	}
	statusChanging := statusSet && newStatus != fault.Status
	if statusChanging && !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}

	// Caller-supplied pending hours lose to the frozen value a terminal
	// transition computes below.
	if pending, ok := patch.PendingHours.Value(); ok {
		if !(statusChanging && domain.IsTerminal(newStatus)) {
			if pending < 0 {
				pending = 0
			}
			fault.PendingHours = pending
			fault.Severity = domain.ClassifySeverity(pending)
		}
	}

	if !statusChanging {
		if err := s.claimUpdate(ctx, claimKey, idemKey); err != nil {
			return nil, err
		}
		if err := s.faults.Update(ctx, fault); err != nil {
			s.releaseClaim(ctx, claimKey)
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("fault", map[string]any{"id": id})
			}
			return nil, err
		}
		return fault, nil
	}

	if !domain.CanTransition(fault.Status, newStatus) {
		return nil, apperrors.NewValidationError("status transition not allowed", map[string]any{
			"from": fault.Status,
			"to":   newStatus,
		})
	}

	previous := fault.Status
	fault.Status = newStatus
	now := s.now()

	switch newStatus {
	case domain.FaultStatusResolved:
		fault.ResolvedAt = &now
		actorID := actor.ID
		fault.ResolvedByID = &actorID
		s.freezePending(fault, now)
	case domain.FaultStatusClosed:
		fault.ClosedAt = &now
		actorID := actor.ID
		fault.ClosedByID = &actorID
		// Closed always measures from creation, never from the prior
		// resolution.
		s.freezePending(fault, now)
	}

	entry := &domain.FaultHistory{
		FaultID:        fault.ID,
		PreviousStatus: previous,
		NewStatus:      newStatus,
		ActorID:        actor.ID,
		Note:           strings.TrimSpace(note),
	}
	if err := s.claimUpdate(ctx, claimKey, idemKey); err != nil {
		return nil, err
	}
	if err := s.faults.UpdateWithHistory(ctx, fault, entry); err != nil {
		s.releaseClaim(ctx, claimKey)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("fault", map[string]any{"id": id})
		}
		return nil, apperrors.NewPersistenceError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventFaultStatusChanged,
		FaultID: fault.ID,
		Actor:   actor,
		Payload: events.FaultStatusChangedPayload{
			PreviousStatus: previous,
			NewStatus:      newStatus,
			Severity:       fault.Severity,
			PendingHours:   fault.PendingHours,
			Note:           entry.Note,
		},
	})
	return fault, nil
}

// GetFault loads a fault and, for live statuses, recomputes pending hours and
// severity for the returned view only. Stored values are never touched here.
func (s *FaultService) GetFault(ctx context.Context, id string) (*domain.Fault, error) {
	fault, err := s.faults.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("fault", map[string]any{"id": id})
		}
		return nil, err
	}
	s.applyLiveView(fault)
	return fault, nil
}

// GetFaultDetail loads a fault with nested customer, department, notes and
// resolver/closer display names.
func (s *FaultService) GetFaultDetail(ctx context.Context, id string) (*FaultDetail, error) {
	fault, err := s.GetFault(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &FaultDetail{Fault: *fault}
	// A dangling reference renders as absent; any other load failure is real.
	customer, err := s.customers.GetByID(ctx, fault.CustomerID)
	switch {
	case err == nil:
		detail.Customer = customer
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, err
	}
	dept, err := s.departments.GetByID(ctx, fault.DepartmentID)
	switch {
	case err == nil:
		detail.Department = dept
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, err
	}
	notes, err := s.notes.ListByFault(ctx, fault.ID)
	if err != nil {
		return nil, err
	}
	detail.Notes = notes
	detail.ResolvedByName = s.usernameFor(ctx, fault.ResolvedByID)
	detail.ClosedByName = s.usernameFor(ctx, fault.ClosedByID)
	return detail, nil
}

// ListFaults returns faults matching the criteria, newest first, with live
// recomputation applied to Open and In Progress rows.
func (s *FaultService) ListFaults(ctx context.Context, criteria FaultSearchCriteria) ([]domain.Fault, error) {
	filter, err := s.composeFilter(ctx, criteria)
	if err != nil {
		return nil, err
	}
	faults, err := s.faults.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range faults {
		s.applyLiveView(&faults[i])
	}
	return faults, nil
}

// AddNote appends a free-text note, recording the author and the author's
// department at authorship time.
func (s *FaultService) AddNote(ctx context.Context, faultID, content string, actor domain.Actor) (*domain.FaultNote, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("note content is required", nil)
	}
	fault, err := s.faults.GetByID(ctx, faultID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("fault", map[string]any{"id": faultID})
		}
		return nil, err
	}

	note := &domain.FaultNote{
		FaultID:      fault.ID,
		Content:      strings.TrimSpace(content),
		AuthorID:     actor.ID,
		AuthorName:   actor.Username,
		DepartmentID: actor.DepartmentID,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventFaultNoteAdded,
		FaultID: fault.ID,
		Actor:   actor,
		Payload: events.FaultNoteAddedPayload{
			NoteID:         note.ID,
			ContentPreview: stringPreview(note.Content, 120),
		},
	})
	return note, nil
}

// ListNotes returns notes for a fault, newest first.
func (s *FaultService) ListNotes(ctx context.Context, faultID string) ([]domain.FaultNote, error) {
	if _, err := s.faults.GetByID(ctx, faultID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("fault", map[string]any{"id": faultID})
		}
		return nil, err
	}
	return s.notes.ListByFault(ctx, faultID)
}

// ListHistory returns transition records for a fault, newest first.
func (s *FaultService) ListHistory(ctx context.Context, faultID string) ([]domain.FaultHistory, error) {
	if _, err := s.faults.GetByID(ctx, faultID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("fault", map[string]any{"id": faultID})
		}
		return nil, err
	}
	return s.history.ListByFault(ctx, faultID)
}

// claimUpdate claims the idempotency key right before the write, after
// validation has passed. A replayed key means the earlier attempt applied.
func (s *FaultService) claimUpdate(ctx context.Context, claimKey, idemKey string) error {
	if claimKey == "" {
		return nil
	}
	claimed, err := s.idempotency.Claim(ctx, claimKey, s.idemTTL)
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	if !claimed {
		return apperrors.NewConflict("update already applied", map[string]any{"idempotency_key": idemKey})
	}
	return nil
}

// releaseClaim frees a claim whose write failed, so the caller's retry is not
// mistaken for a replay. Release failure is tolerable: the claim expires with
// its TTL.
func (s *FaultService) releaseClaim(ctx context.Context, claimKey string) {
	if claimKey == "" {
		return
	}
	_ = s.idempotency.Release(ctx, claimKey)
}

// freezePending stores the elapsed hours from creation to the terminal event
// and derives severity from the frozen value.
func (s *FaultService) freezePending(fault *domain.Fault, at time.Time) {
	fault.PendingHours = domain.PendingHoursSince(fault.CreatedAt, at)
	fault.Severity = domain.ClassifySeverity(fault.PendingHours)
}

func (s *FaultService) applyLiveView(fault *domain.Fault) {
	if !fault.IsLive() {
		return
	}
	fault.PendingHours = domain.PendingHoursSince(fault.CreatedAt, s.now())
	fault.Severity = domain.ClassifySeverity(fault.PendingHours)
}

func (s *FaultService) composeFilter(ctx context.Context, criteria FaultSearchCriteria) (repository.FaultFilter, error) {
	var customerIDs []string
	if search := strings.TrimSpace(criteria.SearchText); search != "" {
		ids, err := s.customers.SearchIDs(ctx, search)
		if err != nil {
			return repository.FaultFilter{}, err
		}
		customerIDs = ids
	}
	return ComposeFaultFilter(criteria, customerIDs), nil
}

func (s *FaultService) usernameFor(ctx context.Context, id *string) string {
	if id == nil {
		return ""
	}
	user, err := s.users.GetByID(ctx, *id)
	if err != nil {
		return ""
	}
	return user.Username
}

func (s *FaultService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// applyTextPatch applies patch semantics to a text field: absent leaves the
// value, empty strings are ignored rather than clearing, and an explicit null
// clears only fields marked clearable.
func applyTextPatch(field *string, patch domain.Patch[string], clearable bool) error {
	if patch.IsNull() {
		if !clearable {
			return errors.New("field not clearable")
		}
		*field = ""
		return nil
	}
	if v, ok := patch.Value(); ok && strings.TrimSpace(v) != "" {
		*field = strings.TrimSpace(v)
	}
	return nil
}

func generateTicketNumber() string {
	return "FLT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
