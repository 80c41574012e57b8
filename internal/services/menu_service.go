// Package services – MenuService
//
// MenuService owns the menu rules: input normalisation and validation on
// add, image housekeeping on delete, and the search used by the mini-app.
// Persistence is delegated to the thin repo functions.
//
// Observability: public methods are OpenTelemetry-instrumented.
package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/tbourn/go-table-order/internal/domain"
	"github.com/tbourn/go-table-order/internal/media"
	"github.com/tbourn/go-table-order/internal/repo"
	"github.com/tbourn/go-table-order/internal/search"
)

// ImageStore persists uploaded menu images.
type ImageStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(name string) error
}

// NewMenuItem is the input accepted by MenuService.Add.
//
// Image is an optional external reference (URL or stored file name). When
// Upload is set, the uploaded file is stored and replaces Image.
type NewMenuItem struct {
	Name        string                `json:"name"        validate:"required,max=255"`
	Price       int64                 `json:"price"       validate:"min=0"`
	Image       string                `json:"image"       validate:"max=512"`
	Description string                `json:"description" validate:"max=2000"`
	Category    string                `json:"category"    validate:"max=64"`
	Upload      *multipart.FileHeader `json:"-"           validate:"-"`
}

// MenuService manages the menu.
type MenuService struct {
	DB       *gorm.DB
	Images   ImageStore
	Validate *validator.Validate
}

// NewMenuService wires a MenuService with a default validator. images may be
// nil, in which case uploads are rejected.
func NewMenuService(db *gorm.DB, images ImageStore) *MenuService {
	return &MenuService{DB: db, Images: images, Validate: NewValidator()}
}

func (s *MenuService) validator() *validator.Validate {
	if s.Validate == nil {
		s.Validate = NewValidator()
	}
	return s.Validate
}

// List returns the menu in insertion order, optionally restricted to one
// category.
func (s *MenuService) List(ctx context.Context, category string) ([]domain.MenuItem, error) {
	ctx, span := otel.Tracer("services/MenuService").Start(ctx, "List",
		trace.WithAttributes(attribute.String("menu.category", category)),
	)
	defer span.End()

	return repo.ListMenu(ctx, s.DB, normalizeCategory(category))
}

// Version returns a short fingerprint of the menu that changes whenever an
// item is added, updated or removed. Handlers use it as a weak ETag.
func (s *MenuService) Version(ctx context.Context) (string, error) {
	count, maxTS, err := repo.MenuStats(ctx, s.DB)
	if err != nil {
		return "", err
	}
	var ts int64
	if maxTS != nil {
		ts = maxTS.UnixNano()
	}
	return fmt.Sprintf("%d:%d", count, ts), nil
}

// Search ranks menu items against query by name, category and description.
// An empty query behaves like List.
func (s *MenuService) Search(ctx context.Context, query, category string) ([]domain.MenuItem, error) {
	ctx, span := otel.Tracer("services/MenuService").Start(ctx, "Search",
		trace.WithAttributes(
			attribute.String("menu.category", category),
			attribute.Int("query.len", len(query)),
		),
	)
	defer span.End()

	items, err := repo.ListMenu(ctx, s.DB, normalizeCategory(category))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return items, nil
	}

	byID := make(map[uint]domain.MenuItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	hits := search.NewIndex(search.MenuDocs(items)).TopK(query, 0)
	out := make([]domain.MenuItem, 0, len(hits))
	for _, h := range hits {
		out = append(out, byID[h.ID])
	}
	return out, nil
}

// Add validates in, stores an uploaded image if present, and inserts the new
// menu item. If the insert fails, the stored image is removed again.
func (s *MenuService) Add(ctx context.Context, in NewMenuItem) (*domain.MenuItem, error) {
	ctx, span := otel.Tracer("services/MenuService").Start(ctx, "Add")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.Image = strings.TrimSpace(in.Image)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = normalizeCategory(in.Category)

	if err := s.validator().Struct(in); err != nil {
		return nil, validationError(err)
	}

	item := &domain.MenuItem{
		Name:        in.Name,
		Price:       in.Price,
		Image:       in.Image,
		Description: in.Description,
		Category:    in.Category,
	}

	var stored string
	if in.Upload != nil {
		if s.Images == nil {
			return nil, ErrUploadsDisabled
		}
		name, err := s.Images.Save(in.Upload)
		if err != nil {
			return nil, err
		}
		stored = name
		item.Image = name
	}

	if err := repo.CreateMenuItem(ctx, s.DB, item); err != nil {
		if stored != "" {
			if rerr := s.Images.Remove(stored); rerr != nil {
				log.Warn().Err(rerr).Str("image", stored).Msg("remove orphaned image")
			}
		}
		return nil, err
	}
	span.SetAttributes(attribute.Int("menu.item_id", int(item.ID)))
	return item, nil
}

// Get returns one menu item or ErrItemNotFound.
func (s *MenuService) Get(ctx context.Context, id uint) (*domain.MenuItem, error) {
	ctx, span := otel.Tracer("services/MenuService").Start(ctx, "Get",
		trace.WithAttributes(attribute.Int("menu.item_id", int(id))),
	)
	defer span.End()

	item, err := repo.GetMenuItem(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a menu item. Unknown ids are a no-op. If the item referenced
// an uploaded image, the file is removed after the row; failures to remove
// the file are logged only.
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	ctx, span := otel.Tracer("services/MenuService").Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int("menu.item_id", int(id))),
	)
	defer span.End()

	removed, err := repo.DeleteMenuItem(ctx, s.DB, id)
	if err != nil {
		return fmt.Errorf("delete menu item %d: %w", id, err)
	}
	if removed == nil || s.Images == nil {
		return nil
	}
	if name, ok := media.LocalName(removed.Image); ok {
		if err := s.Images.Remove(name); err != nil {
			log.Warn().Err(err).Uint("item_id", id).Str("image", name).Msg("remove menu image")
		}
	}
	return nil
}

// normalizeCategory trims and lower-cases a category label.
func normalizeCategory(c string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(c))
}
