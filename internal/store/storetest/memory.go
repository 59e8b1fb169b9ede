// Package storetest provides an in-memory store with the same contract as store.Store.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"inventory-backend/internal/models"
	"inventory-backend/internal/store"

	"github.com/google/uuid"
)

type state struct {
	branches map[string]models.Branch
	items    map[string]models.Item
	users    map[string]models.User
	reports  map[string]models.Report
}

func (s state) clone() state {
	c := state{
		branches: make(map[string]models.Branch, len(s.branches)),
		items:    make(map[string]models.Item, len(s.items)),
		users:    make(map[string]models.User, len(s.users)),
		reports:  make(map[string]models.Report, len(s.reports)),
	}
	for k, v := range s.branches {
		c.branches[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.reports {
		v.StockReport = append([]models.ReportLine(nil), v.StockReport...)
		c.reports[k] = v
	}
	return c
}

// Memory is safe for concurrent use. Timestamps come from a clock that advances one
// millisecond per write, so ordering by creation time is deterministic.
type Memory struct {
	mu    sync.Mutex
	st    state
	clock time.Time

	// CreateReportErr, when set, is returned by CreateReport.
	CreateReportErr error
}

func NewMemory() *Memory {
	return &Memory{
		st:    state{}.clone(),
		clock: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (m *Memory) tick() time.Time {
	m.clock = m.clock.Add(time.Millisecond)
	return m.clock
}

type txKey struct{}

// WithinTx restores the state captured before fn when fn fails.
func (m *Memory) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.mu.Lock()
	snapshot := m.st.clone()
	m.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.mu.Lock()
		m.st = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *Memory) ListBranches(ctx context.Context) ([]models.Branch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Branch, 0, len(m.st.branches))
	for _, b := range m.st.branches {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) GetBranch(ctx context.Context, id string) (*models.Branch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.st.branches[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &b, nil
}

func (m *Memory) CreateBranch(ctx context.Context, branch *models.Branch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.st.branches {
		if b.Name == branch.Name {
			return store.ErrDuplicate
		}
	}
	if branch.ID == "" {
		branch.ID = uuid.NewString()
	}
	now := m.tick()
	branch.CreatedAt, branch.UpdatedAt = now, now
	m.st.branches[branch.ID] = *branch
	return nil
}

func (m *Memory) UpdateBranch(ctx context.Context, branch *models.Branch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.st.branches[branch.ID]
	if !ok {
		return store.ErrNotFound
	}
	for id, b := range m.st.branches {
		if id != branch.ID && b.Name == branch.Name {
			return store.ErrDuplicate
		}
	}
	cur.Name, cur.Address = branch.Name, branch.Address
	cur.UpdatedAt = m.tick()
	m.st.branches[branch.ID] = cur
	*branch = cur
	return nil
}

func (m *Memory) ListItems(ctx context.Context, branchID string) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Item{}
	for _, it := range m.st.items {
		if it.BranchID == branchID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateAdded.Before(out[j].DateAdded) })
	return out, nil
}

func (m *Memory) GetItem(ctx context.Context, branchID, itemID string) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.st.items[itemID]
	if !ok || it.BranchID != branchID {
		return nil, store.ErrNotFound
	}
	return &it, nil
}

func (m *Memory) ItemsByIDs(ctx context.Context, ids []string) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Item
	for _, id := range ids {
		if it, ok := m.st.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *Memory) CreateItem(ctx context.Context, item *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.st.branches[item.BranchID]; !ok {
		return store.ErrNotFound
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := m.tick()
	if item.DateAdded.IsZero() {
		item.DateAdded = now
	}
	item.CreatedAt, item.UpdatedAt = now, now
	m.st.items[item.ID] = *item
	return nil
}

func (m *Memory) UpdateItem(ctx context.Context, item *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.st.items[item.ID]
	if !ok || cur.BranchID != item.BranchID {
		return store.ErrNotFound
	}
	cur.Name, cur.Description = item.Name, item.Description
	cur.Quantity, cur.Price = item.Quantity, item.Price
	cur.UpdatedAt = m.tick()
	m.st.items[item.ID] = cur
	*item = cur
	return nil
}

func (m *Memory) DeleteItem(ctx context.Context, branchID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.st.items[itemID]
	if !ok || it.BranchID != branchID {
		return store.ErrNotFound
	}
	delete(m.st.items, itemID)
	return nil
}

func (m *Memory) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.st.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *Memory) GetUser(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.st.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (m *Memory) UpsertUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.tick()
	for id, u := range m.st.users {
		if u.Username == user.Username {
			u.PasswordHash, u.Role, u.UpdatedAt = user.PasswordHash, user.Role, now
			m.st.users[id] = u
			*user = u
			return nil
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = models.RoleEmployee
	}
	user.CreatedAt, user.UpdatedAt = now, now
	m.st.users[user.ID] = *user
	return nil
}

func (m *Memory) CreateReport(ctx context.Context, report *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateReportErr != nil {
		return m.CreateReportErr
	}
	if _, ok := m.st.branches[report.BranchID]; !ok {
		return store.ErrNotFound
	}
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	now := m.tick()
	if report.DateSent.IsZero() {
		report.DateSent = now
	}
	for i := range report.StockReport {
		report.StockReport[i].ID = uint(i + 1)
		report.StockReport[i].ReportID = report.ID
		report.StockReport[i].Position = i
	}
	stored := *report
	stored.Branch = nil
	stored.StockReport = append([]models.ReportLine(nil), report.StockReport...)
	m.st.reports[report.ID] = stored
	return nil
}

func (m *Memory) ListReports(ctx context.Context) ([]models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Report, 0, len(m.st.reports))
	for _, r := range m.st.reports {
		out = append(out, m.populate(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateSent.After(out[j].DateSent) })
	return out, nil
}

func (m *Memory) GetReport(ctx context.Context, id string) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.st.reports[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	r = m.populate(r)
	return &r, nil
}

func (m *Memory) populate(r models.Report) models.Report {
	r.StockReport = append([]models.ReportLine(nil), r.StockReport...)
	if b, ok := m.st.branches[r.BranchID]; ok {
		r.Branch = &b
	}
	return r
}

// Reports returns the number of stored reports.
func (m *Memory) Reports() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.st.reports)
}
