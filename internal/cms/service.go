package cms

import (
	"errors"
	"log/slog"
	"time"
)

type RepositoryAPI interface {
	Create(page *Page) error
	GetByID(id int64) (*Page, error)
	GetBySlug(slug string) (*Page, error)
	List(publishedOnly bool, limit, offset int) ([]*Page, error)
	Update(page *Page) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreatePage(createdBy int64, dto CreatePageDTO) (*Page, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetBySlug(dto.Slug); err == nil {
		return nil, ErrDuplicateSlug
	} else if !errors.Is(err, ErrPageNotFound) {
		return nil, err
	}

	page := &Page{
		Slug:      dto.Slug,
		Title:     dto.Title,
		Body:      dto.Body,
		CreatedBy: createdBy,
	}
	if err := s.repo.Create(page); err != nil {
		s.logger.Error("failed to create page", "error", err, "slug", dto.Slug)
		return nil, err
	}

	s.logger.Info("page created", "page_id", page.ID, "slug", page.Slug)
	return page, nil
}

func (s *Service) GetPage(id int64) (*Page, error) {
	return s.repo.GetByID(id)
}

// PublishedPage serves the public site. Draft pages stay hidden even
// when the slug is guessed.
func (s *Service) PublishedPage(slug string) (*Page, error) {
	page, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if !page.Published {
		return nil, ErrPageNotFound
	}
	return page, nil
}

func (s *Service) ListPages(publishedOnly bool, limit, offset int) ([]*Page, error) {
	return s.repo.List(publishedOnly, limit, offset)
}

func (s *Service) UpdatePage(id int64, dto UpdatePageDTO) (*Page, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	page, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dto.Title != nil {
		page.Title = *dto.Title
	}
	if dto.Body != nil {
		page.Body = *dto.Body
	}
	page.UpdatedAt = time.Now()

	if err := s.repo.Update(page); err != nil {
		s.logger.Error("failed to update page", "error", err, "page_id", id)
		return nil, err
	}
	return page, nil
}

// PublishPage is idempotent; republishing keeps the original
// published_at.
func (s *Service) PublishPage(id int64) (*Page, error) {
	page, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if page.Published {
		return page, nil
	}

	now := time.Now()
	page.Published = true
	page.PublishedAt = &now
	page.UpdatedAt = now

	if err := s.repo.Update(page); err != nil {
		s.logger.Error("failed to publish page", "error", err, "page_id", id)
		return nil, err
	}

	s.logger.Info("page published", "page_id", page.ID, "slug", page.Slug)
	return page, nil
}

func (s *Service) UnpublishPage(id int64) (*Page, error) {
	page, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !page.Published {
		return page, nil
	}

	page.Published = false
	page.PublishedAt = nil
	page.UpdatedAt = time.Now()

	if err := s.repo.Update(page); err != nil {
		s.logger.Error("failed to unpublish page", "error", err, "page_id", id)
		return nil, err
	}
	return page, nil
}

func (s *Service) DeletePage(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
