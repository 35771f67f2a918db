package service

import (
	"context"
	"strings"

	"github.com/velocityrides/template-store/internal/models"
	"github.com/velocityrides/template-store/internal/repository"
)

type CatalogFilter string

const (
	FilterAll       CatalogFilter = "all"
	FilterPending   CatalogFilter = "pending"
	FilterPurchased CatalogFilter = "purchased"
	FilterWishlist  CatalogFilter = "wishlist"
)

// TemplateView is a catalog entry with the requesting user's view state
// resolved.
type TemplateView struct {
	models.Template
	State models.TemplateState `json:"state"`
}

type CatalogService interface {
	ListTemplates(ctx context.Context, username string, filter CatalogFilter, query string) ([]TemplateView, error)
	GetTemplate(ctx context.Context, id, username string) (*TemplateView, error)
	CreateTemplate(ctx context.Context, template *models.Template) error
}

type catalogService struct {
	templateRepo    repository.TemplateRepository
	reservationRepo repository.ReservationRepository
	wishlistRepo    repository.WishlistRepository
}

func NewCatalogService(
	templateRepo repository.TemplateRepository,
	reservationRepo repository.ReservationRepository,
	wishlistRepo repository.WishlistRepository,
) CatalogService {
	return &catalogService{
		templateRepo:    templateRepo,
		reservationRepo: reservationRepo,
		wishlistRepo:    wishlistRepo,
	}
}

func (s *catalogService) ListTemplates(ctx context.Context, username string, filter CatalogFilter, query string) ([]TemplateView, error) {
	templates, err := s.templateRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	pending := make(map[string]bool)
	wishlisted := make(map[string]bool)
	if username != "" {
		reservations, err := s.reservationRepo.FindByUser(ctx, username)
		if err != nil {
			return nil, err
		}
		for _, r := range reservations {
			pending[r.TemplateID] = true
		}

		entries, err := s.wishlistRepo.FindByUser(ctx, username)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			wishlisted[e.TemplateID] = true
		}
	}

	views := make([]TemplateView, 0, len(templates))
	for i := range templates {
		t := &templates[i]
		if !matchesSearch(t, query) {
			continue
		}

		state := StateOf(t, username, pending[t.ID], wishlisted[t.ID])
		switch filter {
		case FilterPending:
			if state != models.StatePending {
				continue
			}
		case FilterPurchased:
			if state != models.StateOwned {
				continue
			}
		case FilterWishlist:
			if state != models.StateWishlisted {
				continue
			}
		}

		views = append(views, TemplateView{Template: *t, State: state})
	}

	return views, nil
}

func (s *catalogService) GetTemplate(ctx context.Context, id, username string) (*TemplateView, error) {
	template, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}

	reservation, err := s.reservationRepo.FindByTemplateAndUser(ctx, id, username)
	if err != nil {
		return nil, err
	}
	entry, err := s.wishlistRepo.Find(ctx, id, username)
	if err != nil {
		return nil, err
	}

	state := StateOf(template, username, reservation != nil, entry != nil)
	return &TemplateView{Template: *template, State: state}, nil
}

func (s *catalogService) CreateTemplate(ctx context.Context, template *models.Template) error {
	if strings.TrimSpace(template.ID) == "" {
		return ErrTemplateIDRequired
	}
	if strings.TrimSpace(template.Title) == "" {
		return ErrTemplateTitleRequired
	}
	return s.templateRepo.Create(ctx, template)
}

// matchesSearch checks the query against title, description, gamepass and
// tags, case-insensitively.
func matchesSearch(template *models.Template, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	parts := append([]string{template.Title, template.Description, template.Gamepass}, template.Tags...)
	searchable := strings.ToLower(strings.Join(parts, " "))
	return strings.Contains(searchable, query)
}
