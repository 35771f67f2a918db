package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/velocityrides/template-store/internal/models"
	"github.com/velocityrides/template-store/pkg/clock"
)

func catalogFixture(t *testing.T) (*reservationFixture, CatalogService) {
	t.Helper()

	drift := sampleTemplate()
	drift.ID = "drift-king"
	drift.Title = "Drift King"
	drift.Tags = models.TagList{"drift"}

	buyer := "collector9"
	classic := sampleTemplate()
	classic.ID = "classic-68"
	classic.Title = "Classic 68"
	classic.Description = "A vintage muscle template"
	classic.Tags = models.TagList{"classic"}
	classic.Purchased = true
	classic.Buyer = &buyer

	f := newReservationFixture(t, []*models.Template{sampleTemplate(), drift, classic})
	return f, NewCatalogService(f.templates, f.reservations, f.wishlist)
}

func TestListTemplates_AllWithStates(t *testing.T) {
	f, catalog := catalogFixture(t)

	date := saturday()
	_, err := f.svc.SubmitPurchaseRequest(context.Background(), SubmitPurchaseInput{
		TemplateID: "speedster-gt",
		Username:   "rider42",
		Contact:    "discord: rider#42",
		PickupDate: &date,
	})
	assert.NoError(t, err)

	_, err = f.svc.ToggleWishlist(context.Background(), "drift-king", "rider42")
	assert.NoError(t, err)

	views, err := catalog.ListTemplates(context.Background(), "rider42", FilterAll, "")
	assert.NoError(t, err)
	assert.Len(t, views, 3)

	states := make(map[string]models.TemplateState)
	for _, v := range views {
		states[v.ID] = v.State
	}
	assert.Equal(t, models.StatePending, states["speedster-gt"])
	assert.Equal(t, models.StateWishlisted, states["drift-king"])
	assert.Equal(t, models.StateSoldToOther, states["classic-68"])
}

func TestListTemplates_AnonymousSeesBaseStates(t *testing.T) {
	_, catalog := catalogFixture(t)

	views, err := catalog.ListTemplates(context.Background(), "", FilterAll, "")
	assert.NoError(t, err)

	states := make(map[string]models.TemplateState)
	for _, v := range views {
		states[v.ID] = v.State
	}
	assert.Equal(t, models.StateAvailable, states["speedster-gt"])
	assert.Equal(t, models.StateSoldToOther, states["classic-68"])
}

func TestListTemplates_Filters(t *testing.T) {
	f, catalog := catalogFixture(t)

	date := saturday()
	_, err := f.svc.SubmitPurchaseRequest(context.Background(), SubmitPurchaseInput{
		TemplateID: "speedster-gt",
		Username:   "rider42",
		Contact:    "discord: rider#42",
		PickupDate: &date,
	})
	assert.NoError(t, err)
	_, err = f.svc.ToggleWishlist(context.Background(), "drift-king", "rider42")
	assert.NoError(t, err)

	pending, err := catalog.ListTemplates(context.Background(), "rider42", FilterPending, "")
	assert.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Equal(t, "speedster-gt", pending[0].ID)

	wishlist, err := catalog.ListTemplates(context.Background(), "rider42", FilterWishlist, "")
	assert.NoError(t, err)
	assert.Len(t, wishlist, 1)
	assert.Equal(t, "drift-king", wishlist[0].ID)

	// Purchased means owned by this user, and rider42 owns nothing.
	owned, err := catalog.ListTemplates(context.Background(), "rider42", FilterPurchased, "")
	assert.NoError(t, err)
	assert.Empty(t, owned)

	owned, err = catalog.ListTemplates(context.Background(), "collector9", FilterPurchased, "")
	assert.NoError(t, err)
	assert.Len(t, owned, 1)
	assert.Equal(t, "classic-68", owned[0].ID)
}

func TestListTemplates_Search(t *testing.T) {
	_, catalog := catalogFixture(t)

	byTitle, err := catalog.ListTemplates(context.Background(), "", FilterAll, "DRIFT")
	assert.NoError(t, err)
	assert.Len(t, byTitle, 1)
	assert.Equal(t, "drift-king", byTitle[0].ID)

	byDescription, err := catalog.ListTemplates(context.Background(), "", FilterAll, "vintage")
	assert.NoError(t, err)
	assert.Len(t, byDescription, 1)
	assert.Equal(t, "classic-68", byDescription[0].ID)

	byTag, err := catalog.ListTemplates(context.Background(), "", FilterAll, "sport")
	assert.NoError(t, err)
	assert.Len(t, byTag, 1)
	assert.Equal(t, "speedster-gt", byTag[0].ID)

	none, err := catalog.ListTemplates(context.Background(), "", FilterAll, "hovercraft")
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetTemplate(t *testing.T) {
	f, catalog := catalogFixture(t)

	_, err := f.svc.ToggleWishlist(context.Background(), "drift-king", "rider42")
	assert.NoError(t, err)

	view, err := catalog.GetTemplate(context.Background(), "drift-king", "rider42")
	assert.NoError(t, err)
	assert.Equal(t, models.StateWishlisted, view.State)

	_, err = catalog.GetTemplate(context.Background(), "ghost", "rider42")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestCreateTemplate_Validation(t *testing.T) {
	templates := newMemTemplateRepo()
	catalog := NewCatalogService(templates, newMemReservationRepo(), newMemWishlistRepo())

	err := catalog.CreateTemplate(context.Background(), &models.Template{Title: "No ID"})
	assert.ErrorIs(t, err, ErrTemplateIDRequired)

	err = catalog.CreateTemplate(context.Background(), &models.Template{ID: "no-title"})
	assert.ErrorIs(t, err, ErrTemplateTitleRequired)

	err = catalog.CreateTemplate(context.Background(), &models.Template{ID: "ok", Title: "OK"})
	assert.NoError(t, err)

	count, err := templates.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestReportSubmit(t *testing.T) {
	f := newReservationFixture(t, []*models.Template{sampleTemplate()})
	clk := clock.NewFixed(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	reports := NewReportService(f.templates, f.notifier, NewNotificationService(f.notifications, clk))

	err := reports.SubmitReport(context.Background(), "speedster-gt", "rider42", "gamepass link is broken")
	assert.NoError(t, err)
	assert.Len(t, f.notifier.reports, 1)
	assert.Equal(t, "gamepass link is broken", f.notifier.reports[0].Issue)

	// An info entry lands in the reporter's feed.
	assert.Len(t, f.notifications.notifications, 1)
	assert.Equal(t, models.NotificationInfo, f.notifications.notifications[0].Kind)
}

func TestReportSubmit_Validation(t *testing.T) {
	f := newReservationFixture(t, []*models.Template{sampleTemplate()})
	clk := clock.NewFixed(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	reports := NewReportService(f.templates, f.notifier, NewNotificationService(f.notifications, clk))

	err := reports.SubmitReport(context.Background(), "speedster-gt", "", "broken")
	assert.ErrorIs(t, err, ErrUsernameRequired)

	err = reports.SubmitReport(context.Background(), "speedster-gt", "rider42", "  ")
	assert.ErrorIs(t, err, ErrIssueRequired)

	err = reports.SubmitReport(context.Background(), "ghost", "rider42", "broken")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestReportSubmit_DeliveryFailure(t *testing.T) {
	f := newReservationFixture(t, []*models.Template{sampleTemplate()})
	f.notifier.reportErr = errors.New("webhook down")
	clk := clock.NewFixed(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	reports := NewReportService(f.templates, f.notifier, NewNotificationService(f.notifications, clk))

	err := reports.SubmitReport(context.Background(), "speedster-gt", "rider42", "broken")
	assert.ErrorIs(t, err, ErrNotifierFailed)

	// Nothing recorded locally on failure.
	assert.Empty(t, f.notifications.notifications)
}
