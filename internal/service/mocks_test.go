package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/noc-fault-service/internal/domain"
	"github.com/spec-kit/noc-fault-service/internal/events"
	"github.com/spec-kit/noc-fault-service/internal/repository"
)

// memFaultRepo is an in-memory FaultRepository. It hands out copies so the
// service cannot mutate stored rows without going through Update.
type memFaultRepo struct {
	mu        sync.Mutex
	faults    map[string]domain.Fault
	history   []domain.FaultHistory
	nextID    int
	createdAt time.Time

	lastFilter *repository.FaultFilter
	// failNextWrite, when set, fails the next UpdateWithHistory once.
	failNextWrite error
}

func newMemFaultRepo(createdAt time.Time) *memFaultRepo {
	return &memFaultRepo{faults: map[string]domain.Fault{}, createdAt: createdAt}
}

func (m *memFaultRepo) Create(_ context.Context, fault *domain.Fault) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	fault.ID = fmt.Sprintf("fault-%d", m.nextID)
	fault.CreatedAt = m.createdAt
	fault.UpdatedAt = m.createdAt
	m.faults[fault.ID] = *fault
	return nil
}

func (m *memFaultRepo) Update(_ context.Context, fault *domain.Fault) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.faults[fault.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.faults[fault.ID] = *fault
	return nil
}

func (m *memFaultRepo) UpdateWithHistory(ctx context.Context, fault *domain.Fault, entry *domain.FaultHistory) error {
	m.mu.Lock()
	if m.failNextWrite != nil {
		err := m.failNextWrite
		m.failNextWrite = nil
		m.mu.Unlock()
		return err
	}
	m.mu.Unlock()
	if err := m.Update(ctx, fault); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = fmt.Sprintf("hist-%d", len(m.history)+1)
	entry.CreatedAt = time.Now()
	m.history = append(m.history, *entry)
	return nil
}

func (m *memFaultRepo) GetByID(_ context.Context, id string) (*domain.Fault, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fault, ok := m.faults[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &fault, nil
}

func (m *memFaultRepo) ListWithFilter(_ context.Context, filter repository.FaultFilter) ([]domain.Fault, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = &filter

	var result []domain.Fault
	for _, fault := range m.faults {
		if filter.Status != nil && fault.Status != *filter.Status {
			continue
		}
		if filter.DepartmentID != nil && fault.DepartmentID != *filter.DepartmentID {
			continue
		}
		if filter.Severity != nil && fault.Severity != *filter.Severity {
			continue
		}
		result = append(result, fault)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *memFaultRepo) historyFor(faultID string) []domain.FaultHistory {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.FaultHistory
	for _, entry := range m.history {
		if entry.FaultID == faultID {
			result = append(result, entry)
		}
	}
	return result
}

type memHistoryRepo struct {
	faults *memFaultRepo
}

func (m *memHistoryRepo) Create(_ context.Context, entry *domain.FaultHistory) error {
	m.faults.mu.Lock()
	defer m.faults.mu.Unlock()
	entry.ID = fmt.Sprintf("hist-%d", len(m.faults.history)+1)
	m.faults.history = append(m.faults.history, *entry)
	return nil
}

func (m *memHistoryRepo) ListByFault(_ context.Context, faultID string) ([]domain.FaultHistory, error) {
	return m.faults.historyFor(faultID), nil
}

type memNoteRepo struct {
	mu    sync.Mutex
	notes []domain.FaultNote
}

func (m *memNoteRepo) Create(_ context.Context, note *domain.FaultNote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	note.ID = fmt.Sprintf("note-%d", len(m.notes)+1)
	note.CreatedAt = time.Now()
	m.notes = append(m.notes, *note)
	return nil
}

func (m *memNoteRepo) ListByFault(_ context.Context, faultID string) ([]domain.FaultNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.FaultNote
	for _, note := range m.notes {
		if note.FaultID == faultID {
			result = append(result, note)
		}
	}
	return result, nil
}

type memCustomerRepo struct {
	customers map[string]domain.Customer
	// failGet, when set, fails every GetByID with that error.
	failGet error
}

func (m *memCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	if m.customers == nil {
		m.customers = map[string]domain.Customer{}
	}
	if customer.ID == "" {
		customer.ID = fmt.Sprintf("customer-%d", len(m.customers)+1)
	}
	m.customers[customer.ID] = *customer
	return nil
}

func (m *memCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	if m.failGet != nil {
		return nil, m.failGet
	}
	customer, ok := m.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &customer, nil
}

func (m *memCustomerRepo) List(_ context.Context) ([]domain.Customer, error) {
	var result []domain.Customer
	for _, customer := range m.customers {
		result = append(result, customer)
	}
	return result, nil
}

func (m *memCustomerRepo) SearchIDs(_ context.Context, text string) ([]string, error) {
	text = strings.ToLower(text)
	var ids []string
	for id, customer := range m.customers {
		if strings.Contains(strings.ToLower(customer.Company), text) ||
			strings.Contains(strings.ToLower(customer.CircuitID), text) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type memDepartmentRepo struct {
	departments map[string]domain.Department
}

func (m *memDepartmentRepo) Create(_ context.Context, dept *domain.Department) error {
	if m.departments == nil {
		m.departments = map[string]domain.Department{}
	}
	if dept.ID == "" {
		dept.ID = fmt.Sprintf("dept-%d", len(m.departments)+1)
	}
	m.departments[dept.ID] = *dept
	return nil
}

func (m *memDepartmentRepo) GetByID(_ context.Context, id string) (*domain.Department, error) {
	dept, ok := m.departments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &dept, nil
}

func (m *memDepartmentRepo) List(_ context.Context) ([]domain.Department, error) {
	var result []domain.Department
	for _, dept := range m.departments {
		result = append(result, dept)
	}
	return result, nil
}

type memUserRepo struct {
	users map[string]domain.User
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	if m.users == nil {
		m.users = map[string]domain.User{}
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range m.users {
		result = append(result, user)
	}
	return result, nil
}

// memIdempotencyStore mimics a SetNX-style claim: the first caller of a key
// wins, replays lose.
type memIdempotencyStore struct {
	mu     sync.Mutex
	claims map[string]bool
}

func (m *memIdempotencyStore) Claim(_ context.Context, key string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claims == nil {
		m.claims = map[string]bool{}
	}
	if m.claims[key] {
		return false, nil
	}
	m.claims[key] = true
	return true, nil
}

func (m *memIdempotencyStore) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.claims, key)
	return nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) ofType(t events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []events.Event
	for _, event := range d.events {
		if event.Type == t {
			result = append(result, event)
		}
	}
	return result
}
