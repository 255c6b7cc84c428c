package service

import (
	"context"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
	"github.com/alassaneba1/JangQuranAkSunna/internal/repository"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/apperrors"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/helpers"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/logger"
)

// MaxThemeDepth bounds the ancestor walk. A chain longer than this indicates a
// corrupted tree rather than a legitimate hierarchy.
const MaxThemeDepth = 16

// ThemeService manages the theme tree and keeps the per-theme aggregate
// counters (content_count, series_count) consistent with attachments. Counters
// are subtree sums: attaching a content to a theme credits the theme and every
// ancestor up to the root.
type ThemeService interface {
	CreateTheme(ctx context.Context, input CreateThemeInput) (*models.Theme, error)
	GetTheme(ctx context.Context, id uint64) (*models.Theme, error)
	GetChildren(ctx context.Context, parentID uint64) ([]*models.Theme, error)
	// GetPath returns the theme and its ancestors, child first.
	GetPath(ctx context.Context, id uint64) (models.ThemePath, error)

	AttachContent(ctx context.Context, contentID, themeID uint64) error
	DetachContent(ctx context.Context, contentID uint64) error
	// MoveContent recategorizes a content: the old chain is debited and the
	// new chain credited.
	MoveContent(ctx context.Context, contentID, newThemeID uint64) error

	AttachSeries(ctx context.Context, seriesID, themeID uint64) error
	DetachSeries(ctx context.Context, seriesID uint64) error
}

// CreateThemeInput carries the fields for a new theme node.
type CreateThemeInput struct {
	Name         string  `validate:"required,min=2,max=120"`
	Description  string  `validate:"max=2000"`
	ParentID     *uint64 `validate:"omitempty,gt=0"`
	DisplayOrder int32
	IconName     *string
	ColorCode    *string `validate:"omitempty,hexcolor"`
	IsFeatured   bool
}

type themeService struct {
	themeRepo   repository.ThemeRepository
	contentRepo repository.ContentRepository
	seriesRepo  repository.SeriesRepository
	validator   *helpers.CustomValidator
	log         *logger.Logger
}

// NewThemeService creates a theme service.
func NewThemeService(
	themeRepo repository.ThemeRepository,
	contentRepo repository.ContentRepository,
	seriesRepo repository.SeriesRepository,
	validator *helpers.CustomValidator,
	log *logger.Logger,
) ThemeService {
	return &themeService{
		themeRepo:   themeRepo,
		contentRepo: contentRepo,
		seriesRepo:  seriesRepo,
		validator:   validator,
		log:         log,
	}
}

func (s *themeService) CreateTheme(ctx context.Context, input CreateThemeInput) (*models.Theme, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, apperrors.Validationf("invalid theme: %v", err)
	}

	if input.ParentID != nil {
		// The parent chain must be healthy and leave room for the new level.
		parentChain, err := s.themeRepo.GetAncestorChain(ctx, *input.ParentID, MaxThemeDepth)
		if err != nil {
			return nil, err
		}
		if len(parentChain) >= MaxThemeDepth {
			return nil, apperrors.Validationf("theme nesting exceeds maximum depth %d", MaxThemeDepth)
		}
	}

	theme := &models.Theme{
		Name:         input.Name,
		Slug:         helpers.GenerateSlug(input.Name),
		Description:  input.Description,
		ParentID:     input.ParentID,
		DisplayOrder: input.DisplayOrder,
		IconName:     input.IconName,
		ColorCode:    input.ColorCode,
		IsFeatured:   input.IsFeatured,
		IsActive:     true,
	}
	if err := s.themeRepo.Create(ctx, theme); err != nil {
		return nil, err
	}

	s.log.WithField("theme_id", theme.ID).WithField("slug", theme.Slug).Info("theme created")
	return theme, nil
}

func (s *themeService) GetTheme(ctx context.Context, id uint64) (*models.Theme, error) {
	theme, err := s.themeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if theme == nil {
		return nil, apperrors.NotFoundf("theme %d not found", id)
	}
	return theme, nil
}

func (s *themeService) GetChildren(ctx context.Context, parentID uint64) ([]*models.Theme, error) {
	return s.themeRepo.GetChildren(ctx, parentID)
}

func (s *themeService) GetPath(ctx context.Context, id uint64) (models.ThemePath, error) {
	return s.themeRepo.GetAncestorChain(ctx, id, MaxThemeDepth)
}

func (s *themeService) AttachContent(ctx context.Context, contentID, themeID uint64) error {
	content, err := s.getContent(ctx, contentID)
	if err != nil {
		return err
	}
	if content.ThemeID != nil {
		if *content.ThemeID == themeID {
			return nil
		}
		return apperrors.Preconditionf("content %d is already attached to theme %d", contentID, *content.ThemeID)
	}

	chain, err := s.themeRepo.GetAncestorChain(ctx, themeID, MaxThemeDepth)
	if err != nil {
		return err
	}

	return s.themeRepo.ReassignContent(ctx, contentID, &themeID, nil, chainIDs(chain))
}

func (s *themeService) DetachContent(ctx context.Context, contentID uint64) error {
	content, err := s.getContent(ctx, contentID)
	if err != nil {
		return err
	}
	if content.ThemeID == nil {
		return nil
	}

	chain, err := s.themeRepo.GetAncestorChain(ctx, *content.ThemeID, MaxThemeDepth)
	if err != nil {
		// The theme row may be gone while the content still points at it;
		// clearing the reference must still succeed.
		if !apperrors.IsNotFound(err) {
			return err
		}
		chain = nil
	}

	return s.themeRepo.ReassignContent(ctx, contentID, nil, chainIDs(chain), nil)
}

func (s *themeService) MoveContent(ctx context.Context, contentID, newThemeID uint64) error {
	content, err := s.getContent(ctx, contentID)
	if err != nil {
		return err
	}
	if content.ThemeID != nil && *content.ThemeID == newThemeID {
		return nil
	}

	var debit []uint64
	if content.ThemeID != nil {
		oldChain, err := s.themeRepo.GetAncestorChain(ctx, *content.ThemeID, MaxThemeDepth)
		if err != nil && !apperrors.IsNotFound(err) {
			return err
		}
		debit = chainIDs(oldChain)
	}

	newChain, err := s.themeRepo.GetAncestorChain(ctx, newThemeID, MaxThemeDepth)
	if err != nil {
		return err
	}

	return s.themeRepo.ReassignContent(ctx, contentID, &newThemeID, debit, chainIDs(newChain))
}

func (s *themeService) AttachSeries(ctx context.Context, seriesID, themeID uint64) error {
	series, err := s.getSeries(ctx, seriesID)
	if err != nil {
		return err
	}
	if series.ThemeID != nil {
		if *series.ThemeID == themeID {
			return nil
		}
		return apperrors.Preconditionf("series %d is already attached to theme %d", seriesID, *series.ThemeID)
	}

	chain, err := s.themeRepo.GetAncestorChain(ctx, themeID, MaxThemeDepth)
	if err != nil {
		return err
	}

	return s.themeRepo.ReassignSeries(ctx, seriesID, &themeID, nil, chainIDs(chain))
}

func (s *themeService) DetachSeries(ctx context.Context, seriesID uint64) error {
	series, err := s.getSeries(ctx, seriesID)
	if err != nil {
		return err
	}
	if series.ThemeID == nil {
		return nil
	}

	chain, err := s.themeRepo.GetAncestorChain(ctx, *series.ThemeID, MaxThemeDepth)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return err
		}
		chain = nil
	}

	return s.themeRepo.ReassignSeries(ctx, seriesID, nil, chainIDs(chain), nil)
}

func (s *themeService) getContent(ctx context.Context, contentID uint64) (*models.Content, error) {
	content, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, apperrors.NotFoundf("content %d not found", contentID)
	}
	return content, nil
}

func (s *themeService) getSeries(ctx context.Context, seriesID uint64) (*models.Series, error) {
	series, err := s.seriesRepo.GetByID(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, apperrors.NotFoundf("series %d not found", seriesID)
	}
	return series, nil
}

func chainIDs(chain models.ThemePath) []uint64 {
	ids := make([]uint64, 0, len(chain))
	for _, theme := range chain {
		ids = append(ids, theme.ID)
	}
	return ids
}
