// Package servicetest provides in-memory stores for exercising the
// services without a database.
package servicetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sefazor/campus-events-backend/internal/models"
	"gorm.io/gorm"
)

// DB backs the stores so deletes cascade the way the foreign keys do in
// Postgres.
type DB struct {
	mu         sync.Mutex
	orgs       map[string]models.Organization
	accounts   map[string]models.Account
	sessions   map[string]models.Session
	events     map[string]models.Event
	categories map[uint]models.Category
	nextCat    uint
}

func NewDB() *DB {
	return &DB{
		orgs:       map[string]models.Organization{},
		accounts:   map[string]models.Account{},
		sessions:   map[string]models.Session{},
		events:     map[string]models.Event{},
		categories: map[uint]models.Category{},
	}
}

type Organizations struct{ db *DB }

func (s Organizations) CreateWithAccount(_ context.Context, org *models.Organization, account *models.Account) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, o := range s.db.orgs {
		if o.Email == org.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	now := time.Now().UTC()
	org.CreatedAt, org.UpdatedAt = now, now
	account.UserID = org.ID
	s.db.orgs[org.ID] = *org
	s.db.accounts[account.ID] = *account
	return nil
}

func (s Organizations) GetByID(_ context.Context, id string) (*models.Organization, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	org, ok := s.db.orgs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &org, nil
}

func (s Organizations) GetByEmail(_ context.Context, email string) (*models.Organization, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, o := range s.db.orgs {
		if o.Email == email {
			org := o
			return &org, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s Organizations) List(_ context.Context) ([]models.Organization, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]models.Organization, 0, len(s.db.orgs))
	for _, o := range s.db.orgs {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s Organizations) ListByRole(_ context.Context, role models.Role) ([]models.Organization, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.Organization
	for _, o := range s.db.orgs {
		if o.Role == role {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s Organizations) Update(_ context.Context, org *models.Organization, _ ...string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.orgs[org.ID] = *org
	return nil
}

func (s Organizations) SetFirstLogin(_ context.Context, id string, firstLogin bool) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	org, ok := s.db.orgs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	org.IsFirstLogin = firstLogin
	s.db.orgs[id] = org
	return nil
}

func (s Organizations) Delete(_ context.Context, id string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.orgs[id]; !ok {
		return 0, nil
	}
	delete(s.db.orgs, id)
	for k, e := range s.db.events {
		if e.OrgID == id {
			delete(s.db.events, k)
		}
	}
	for k, sess := range s.db.sessions {
		if sess.UserID == id {
			delete(s.db.sessions, k)
		}
	}
	for k, a := range s.db.accounts {
		if a.UserID == id {
			delete(s.db.accounts, k)
		}
	}
	return 1, nil
}

func (s Organizations) GetAccount(_ context.Context, userID, providerID string) (*models.Account, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, a := range s.db.accounts {
		if a.UserID == userID && a.ProviderID == providerID {
			account := a
			return &account, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s Organizations) UpdateAccountPassword(_ context.Context, accountID, passwordHash string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	a, ok := s.db.accounts[accountID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Password = passwordHash
	s.db.accounts[accountID] = a
	return nil
}

type Sessions struct{ db *DB }

func (s Sessions) Create(_ context.Context, session *models.Session) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.sessions[session.Token] = *session
	return nil
}

func (s Sessions) GetActive(_ context.Context, token string, now time.Time) (*models.Session, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	sess, ok := s.db.sessions[token]
	if !ok || !sess.ExpiresAt.After(now) {
		return nil, gorm.ErrRecordNotFound
	}
	return &sess, nil
}

func (s Sessions) DeleteByToken(_ context.Context, token string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.sessions, token)
	return nil
}

func (s Sessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var n int64
	for k, sess := range s.db.sessions {
		if !sess.ExpiresAt.After(now) {
			delete(s.db.sessions, k)
			n++
		}
	}
	return n, nil
}

type Events struct{ db *DB }

func (s Events) Create(_ context.Context, event *models.Event) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.orgs[event.OrgID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	now := time.Now().UTC()
	event.CreatedAt, event.UpdatedAt = now, now
	s.db.events[event.ID] = *event
	return nil
}

func (s Events) GetByID(_ context.Context, id string) (*models.Event, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	e, ok := s.db.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	e.Categories = append([]uint(nil), e.Categories...)
	return &e, nil
}

func (s Events) list(keep func(models.Event) bool) []models.Event {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]models.Event, 0, len(s.db.events))
	for _, e := range s.db.events {
		if keep(e) {
			e.Categories = append([]uint(nil), e.Categories...)
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out
}

func (s Events) List(_ context.Context) ([]models.Event, error) {
	return s.list(func(models.Event) bool { return true }), nil
}

func (s Events) ListByOrg(_ context.Context, orgID string) ([]models.Event, error) {
	return s.list(func(e models.Event) bool { return e.OrgID == orgID }), nil
}

func (s Events) Update(_ context.Context, event *models.Event, _ ...string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.events[event.ID] = *event
	return nil
}

func (s Events) Delete(_ context.Context, id string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.events[id]; !ok {
		return 0, nil
	}
	delete(s.db.events, id)
	return 1, nil
}

type Categories struct{ db *DB }

func (s Categories) Create(_ context.Context, category *models.Category) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, c := range s.db.categories {
		if c.Name == category.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	s.db.nextCat++
	category.ID = s.db.nextCat
	category.CreatedAt = time.Now().UTC()
	s.db.categories[category.ID] = *category
	return nil
}

func (s Categories) List(_ context.Context) ([]models.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]models.Category, 0, len(s.db.categories))
	for _, c := range s.db.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s Categories) Delete(_ context.Context, id uint) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.categories[id]; !ok {
		return 0, nil
	}
	delete(s.db.categories, id)
	return 1, nil
}

// Revalidations records revalidated paths.
type Revalidations struct {
	mu    sync.Mutex
	paths []string
}

func (r *Revalidations) Revalidate(_ context.Context, paths ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, paths...)
}

func (r *Revalidations) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func (r *Revalidations) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = nil
}

func (db *DB) Organizations() Organizations { return Organizations{db} }

func (db *DB) Sessions() Sessions { return Sessions{db} }

func (db *DB) Events() Events { return Events{db} }

func (db *DB) Categories() Categories { return Categories{db} }

func (s Categories) EnsureExists(ctx context.Context, name string) (bool, error) {
	s.db.mu.Lock()
	for _, c := range s.db.categories {
		if c.Name == name {
			s.db.mu.Unlock()
			return false, nil
		}
	}
	s.db.mu.Unlock()
	return true, s.Create(ctx, &models.Category{Name: name})
}
