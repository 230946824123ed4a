package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"civica/contexts/identity-access/admin-service/domain/entities"
	domainerrors "civica/contexts/identity-access/admin-service/domain/errors"
	"civica/contexts/identity-access/admin-service/ports"
)

type Store struct {
	mu     sync.RWMutex
	admins map[string]entities.Admin
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{
		admins: make(map[string]entities.Admin),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) CreateAdmin(_ context.Context, admin entities.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.admins {
		if strings.EqualFold(existing.Email, admin.Email) {
			return domainerrors.ErrDuplicateEmail
		}
	}
	s.admins[admin.AdminID] = cloneAdmin(admin)
	return nil
}

func (s *Store) GetAdmin(_ context.Context, adminID string) (entities.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	admin, ok := s.admins[strings.TrimSpace(adminID)]
	if !ok {
		return entities.Admin{}, domainerrors.ErrAdminNotFound
	}
	return cloneAdmin(admin), nil
}

func (s *Store) GetAdminByEmail(_ context.Context, email string) (entities.Admin, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, admin := range s.admins {
		if strings.EqualFold(admin.Email, strings.TrimSpace(email)) {
			return cloneAdmin(admin), true, nil
		}
	}
	return entities.Admin{}, false, nil
}

func (s *Store) ListAdmins(_ context.Context) ([]entities.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Admin, 0, len(s.admins))
	for _, admin := range s.admins {
		items = append(items, cloneAdmin(admin))
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) SaveAdmin(_ context.Context, admin entities.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.admins[admin.AdminID]; !ok {
		return domainerrors.ErrAdminNotFound
	}
	// Keep activity owned by AppendActivity.
	admin.Activity = s.admins[admin.AdminID].Activity
	s.admins[admin.AdminID] = cloneAdmin(admin)
	return nil
}

func (s *Store) DeleteAdmin(_ context.Context, adminID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.admins[strings.TrimSpace(adminID)]; !ok {
		return domainerrors.ErrAdminNotFound
	}
	delete(s.admins, strings.TrimSpace(adminID))
	return nil
}

func (s *Store) AppendActivity(_ context.Context, adminID string, entry entities.ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	admin, ok := s.admins[strings.TrimSpace(adminID)]
	if !ok {
		return domainerrors.ErrAdminNotFound
	}
	admin.Activity = append(admin.Activity, entry)
	if len(admin.Activity) > entities.ActivityLogLimit {
		admin.Activity = admin.Activity[len(admin.Activity)-entities.ActivityLogLimit:]
	}
	s.admins[admin.AdminID] = admin
	return nil
}

func (s *Store) ListAuditLog(_ context.Context, limit int) ([]ports.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []ports.AuditEntry
	for _, admin := range s.admins {
		for _, entry := range admin.Activity {
			entries = append(entries, ports.AuditEntry{
				AdminID:    admin.AdminID,
				AdminEmail: admin.Email,
				Action:     entry.Action,
				TargetID:   entry.TargetID,
				OccurredAt: entry.OccurredAt,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].OccurredAt.After(entries[j].OccurredAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func cloneAdmin(admin entities.Admin) entities.Admin {
	permissions := make(map[string]bool, len(admin.Permissions))
	for key, value := range admin.Permissions {
		permissions[key] = value
	}
	admin.Permissions = permissions
	admin.Activity = append([]entities.ActivityEntry(nil), admin.Activity...)
	return admin
}

var _ ports.AdminRepository = (*Store)(nil)
