package service

import (
	"context"
	"errors"
	"sort"

	"github.com/velocityrides/template-store/internal/models"
	"gorm.io/gorm"
)

// In-memory fakes shared across the service tests. They implement the
// repository interfaces with plain maps and slices; the tx manager runs
// the callback with a nil handle, which the fakes ignore.

type memTemplateRepo struct {
	templates map[string]*models.Template
	findErr   error
}

func newMemTemplateRepo(templates ...*models.Template) *memTemplateRepo {
	repo := &memTemplateRepo{templates: make(map[string]*models.Template)}
	for _, t := range templates {
		copied := *t
		repo.templates[t.ID] = &copied
	}
	return repo
}

func (m *memTemplateRepo) Create(ctx context.Context, template *models.Template) error {
	copied := *template
	m.templates[template.ID] = &copied
	return nil
}

func (m *memTemplateRepo) FindByID(ctx context.Context, id string) (*models.Template, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	t, ok := m.templates[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (m *memTemplateRepo) FindAll(ctx context.Context) ([]models.Template, error) {
	ids := make([]string, 0, len(m.templates))
	for id := range m.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]models.Template, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.templates[id])
	}
	return out, nil
}

func (m *memTemplateRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.templates)), nil
}

func (m *memTemplateRepo) MarkPurchased(ctx context.Context, tx *gorm.DB, id, buyer string) error {
	t, ok := m.templates[id]
	if !ok {
		return errors.New("template missing")
	}
	t.Purchased = true
	t.Buyer = &buyer
	return nil
}

type memReservationRepo struct {
	reservations []models.Reservation
	nextID       uint
}

func newMemReservationRepo() *memReservationRepo {
	return &memReservationRepo{nextID: 1}
}

func (m *memReservationRepo) Create(ctx context.Context, reservation *models.Reservation) error {
	reservation.ID = m.nextID
	m.nextID++
	m.reservations = append(m.reservations, *reservation)
	return nil
}

func (m *memReservationRepo) FindByTemplateAndUser(ctx context.Context, templateID, username string) (*models.Reservation, error) {
	for i := range m.reservations {
		r := m.reservations[i]
		if r.TemplateID == templateID && r.Username == username {
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memReservationRepo) FindByUser(ctx context.Context, username string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range m.reservations {
		if r.Username == username {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReservationRepo) DeleteByTemplate(ctx context.Context, tx *gorm.DB, templateID string) error {
	kept := m.reservations[:0]
	for _, r := range m.reservations {
		if r.TemplateID != templateID {
			kept = append(kept, r)
		}
	}
	m.reservations = kept
	return nil
}

type memWishlistRepo struct {
	entries []models.WishlistEntry
	nextID  uint
}

func newMemWishlistRepo() *memWishlistRepo {
	return &memWishlistRepo{nextID: 1}
}

func (m *memWishlistRepo) Create(ctx context.Context, entry *models.WishlistEntry) error {
	entry.ID = m.nextID
	m.nextID++
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memWishlistRepo) Find(ctx context.Context, templateID, username string) (*models.WishlistEntry, error) {
	for i := range m.entries {
		e := m.entries[i]
		if e.TemplateID == templateID && e.Username == username {
			return &e, nil
		}
	}
	return nil, nil
}

func (m *memWishlistRepo) FindByUser(ctx context.Context, username string) ([]models.WishlistEntry, error) {
	var out []models.WishlistEntry
	for _, e := range m.entries {
		if e.Username == username {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memWishlistRepo) Delete(ctx context.Context, templateID, username string) error {
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.TemplateID != templateID || e.Username != username {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	return nil
}

func (m *memWishlistRepo) DeleteByTemplate(ctx context.Context, tx *gorm.DB, templateID string) error {
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.TemplateID != templateID {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	return nil
}

type memNotificationRepo struct {
	notifications []models.Notification
}

func (m *memNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	m.notifications = append(m.notifications, *notification)
	return nil
}

func (m *memNotificationRepo) FindByUser(ctx context.Context, username string) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range m.notifications {
		if n.Username == username {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out, nil
}

func (m *memNotificationRepo) DeleteOlderThan(ctx context.Context, username string, cutoffMillis int64) error {
	kept := m.notifications[:0]
	for _, n := range m.notifications {
		if n.Username != username || n.CreatedAt > cutoffMillis {
			kept = append(kept, n)
		}
	}
	m.notifications = kept
	return nil
}

func (m *memNotificationRepo) MarkRead(ctx context.Context, username, id string) error {
	for i := range m.notifications {
		if m.notifications[i].Username == username && m.notifications[i].ID == id {
			m.notifications[i].Read = true
		}
	}
	return nil
}

func (m *memNotificationRepo) CountUnread(ctx context.Context, username string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.Username == username && !n.Read {
			count++
		}
	}
	return count, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeNotifier struct {
	purchaseErr error
	reportErr   error
	purchases   []PurchaseNotice
	reports     []ReportNotice
}

func (f *fakeNotifier) NotifyPurchase(ctx context.Context, notice PurchaseNotice) error {
	if f.purchaseErr != nil {
		return f.purchaseErr
	}
	f.purchases = append(f.purchases, notice)
	return nil
}

func (f *fakeNotifier) NotifyReport(ctx context.Context, notice ReportNotice) error {
	if f.reportErr != nil {
		return f.reportErr
	}
	f.reports = append(f.reports, notice)
	return nil
}

type memDraftStore struct {
	drafts map[string]*PurchaseDraft
}

func newMemDraftStore() *memDraftStore {
	return &memDraftStore{drafts: make(map[string]*PurchaseDraft)}
}

func (m *memDraftStore) Get(ctx context.Context, username string) (*PurchaseDraft, error) {
	d, ok := m.drafts[username]
	if !ok {
		return nil, nil
	}
	copied := *d
	return &copied, nil
}

func (m *memDraftStore) Save(ctx context.Context, draft *PurchaseDraft) error {
	copied := *draft
	m.drafts[draft.Username] = &copied
	return nil
}

func (m *memDraftStore) Delete(ctx context.Context, username string) error {
	delete(m.drafts, username)
	return nil
}
