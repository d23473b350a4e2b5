package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"folio/internal/config"
	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
	"folio/internal/domain/services"
)

// catalogService implements the admin-only CatalogService interface.
type catalogService struct {
	bookRepo    repositories.BookRepository
	chapterRepo repositories.ChapterRepository
	tocRepo     repositories.TOCRepository
	linkRepo    repositories.YouTubeLinkRepository
	userRepo    repositories.UserRepository
	logger      *slog.Logger
}

// NewCatalogService creates the admin catalog service.
func NewCatalogService(
	bookRepo repositories.BookRepository,
	chapterRepo repositories.ChapterRepository,
	tocRepo repositories.TOCRepository,
	linkRepo repositories.YouTubeLinkRepository,
	userRepo repositories.UserRepository,
	logger *slog.Logger,
) services.CatalogService {
	return &catalogService{
		bookRepo:    bookRepo,
		chapterRepo: chapterRepo,
		tocRepo:     tocRepo,
		linkRepo:    linkRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// ListAllBooks returns the entire catalog, unpublished included.
func (s *catalogService) ListAllBooks(ctx context.Context, viewerID string) ([]models.Book, error) {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}
	return s.bookRepo.List(ctx, false)
}

// GetBook returns one book regardless of publication state.
func (s *catalogService) GetBook(ctx context.Context, viewerID, bookID string) (*models.Book, error) {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}
	return s.bookRepo.GetByID(ctx, bookID)
}

// CreateBook creates a book. Publication defaults to true and the TOC
// position to sidebar, matching reader expectations for new titles.
func (s *catalogService) CreateBook(ctx context.Context, viewerID string, req *services.CreateBookRequest) (*models.Book, error) {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}
	if err := validateCreateBook(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}
	position := req.TOCPosition
	if position == "" {
		position = models.TOCPositionSidebar
	}

	book := &models.Book{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Author:          req.Author,
		Description:     req.Description,
		CoverImage:      req.CoverImage,
		MarkdownContent: req.MarkdownContent,
		Price:           req.Price,
		IsPublished:     published,
		TOCPosition:     position,
		CreatedAt:       time.Now(),
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("book created", "book_id", book.ID, "title", book.Title, "admin_id", viewerID)
	return book, nil
}

// UpdateBook applies the non-nil fields of the request.
func (s *catalogService) UpdateBook(ctx context.Context, viewerID, bookID string, req *services.UpdateBookRequest) (*models.Book, error) {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.CoverImage != nil {
		book.CoverImage = req.CoverImage
	}
	if req.MarkdownContent != nil {
		book.MarkdownContent = req.MarkdownContent
	}
	if req.Price != nil {
		book.Price = *req.Price
	}
	if req.IsPublished != nil {
		book.IsPublished = *req.IsPublished
	}
	if req.TOCPosition != nil {
		book.TOCPosition = *req.TOCPosition
	}

	if err := validateBook(book); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("book updated", "book_id", book.ID, "admin_id", viewerID)
	return book, nil
}

// DeleteBook removes the book and everything hanging off it.
func (s *catalogService) DeleteBook(ctx context.Context, viewerID, bookID string) error {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return err
	}
	if err := s.bookRepo.Delete(ctx, bookID); err != nil {
		return err
	}
	s.logger.Info("book deleted", "book_id", bookID, "admin_id", viewerID)
	return nil
}

// ListChapters returns the book's chapters in reading order.
func (s *catalogService) ListChapters(ctx context.Context, viewerID, bookID string) ([]models.Chapter, error) {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}
	return s.chapterRepo.ListByBook(ctx, bookID, false)
}

// CreateChapter creates a chapter under an existing book.
func (s *catalogService) CreateChapter(ctx context.Context, viewerID string, req *services.CreateChapterRequest) (*models.Chapter, error) {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}
	if err := validateCreateChapter(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if _, err := s.bookRepo.GetByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	chapter := &models.Chapter{
		ID:              uuid.NewString(),
		BookID:          req.BookID,
		Title:           req.Title,
		Order:           req.Order,
		MarkdownContent: req.MarkdownContent,
		IsPreview:       req.IsPreview,
	}
	if err := s.chapterRepo.Create(ctx, chapter); err != nil {
		return nil, err
	}

	s.logger.Info("chapter created", "chapter_id", chapter.ID, "book_id", chapter.BookID, "admin_id", viewerID)
	return chapter, nil
}

// UpdateChapter applies the non-nil fields of the request.
func (s *catalogService) UpdateChapter(ctx context.Context, viewerID, chapterID string, req *services.UpdateChapterRequest) (*models.Chapter, error) {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}

	chapter, err := s.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		chapter.Title = *req.Title
	}
	if req.Order != nil {
		chapter.Order = *req.Order
	}
	if req.MarkdownContent != nil {
		chapter.MarkdownContent = req.MarkdownContent
	}
	if req.IsPreview != nil {
		chapter.IsPreview = *req.IsPreview
	}

	if err := validateChapter(chapter); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.chapterRepo.Update(ctx, chapter); err != nil {
		return nil, err
	}

	s.logger.Info("chapter updated", "chapter_id", chapter.ID, "admin_id", viewerID)
	return chapter, nil
}

// DeleteChapter removes a chapter.
func (s *catalogService) DeleteChapter(ctx context.Context, viewerID, chapterID string) error {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return err
	}
	if err := s.chapterRepo.Delete(ctx, chapterID); err != nil {
		return err
	}
	s.logger.Info("chapter deleted", "chapter_id", chapterID, "admin_id", viewerID)
	return nil
}

// ListTOCEntries returns the book's manual TOC rows in order.
func (s *catalogService) ListTOCEntries(ctx context.Context, viewerID, bookID string) ([]models.TOCEntry, error) {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}
	return s.tocRepo.ListByBook(ctx, bookID)
}

// CreateTOCEntry creates a manual TOC row. The parent, when given, must
// belong to the same book - the forest is scoped per book.
func (s *catalogService) CreateTOCEntry(ctx context.Context, viewerID string, req *services.CreateTOCEntryRequest) (*models.TOCEntry, error) {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}
	if err := validateCreateTOCEntry(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if _, err := s.bookRepo.GetByID(ctx, req.BookID); err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		parent, err := s.tocRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.BookID != req.BookID {
			return nil, fmt.Errorf("%w: parent entry belongs to another book", domain.ErrValidation)
		}
	}

	entry := &models.TOCEntry{
		ID:        uuid.NewString(),
		BookID:    req.BookID,
		ChapterID: req.ChapterID,
		Title:     req.Title,
		Level:     req.Level,
		Order:     req.Order,
		ParentID:  req.ParentID,
		AnchorID:  req.AnchorID,
	}
	if err := s.tocRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("toc entry created", "entry_id", entry.ID, "book_id", entry.BookID, "admin_id", viewerID)
	return entry, nil
}

// UpdateTOCEntry applies the non-nil fields of the request. Re-parenting an
// entry onto itself is rejected; deeper cycles remain the caller's
// responsibility, as documented on the builder.
func (s *catalogService) UpdateTOCEntry(ctx context.Context, viewerID, entryID string, req *services.UpdateTOCEntryRequest) (*models.TOCEntry, error) {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}

	entry, err := s.tocRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if req.ChapterID != nil {
		entry.ChapterID = req.ChapterID
	}
	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.Level != nil {
		entry.Level = *req.Level
	}
	if req.Order != nil {
		entry.Order = *req.Order
	}
	if req.ParentID != nil {
		if *req.ParentID == entry.ID {
			return nil, fmt.Errorf("%w: entry cannot be its own parent", domain.ErrValidation)
		}
		entry.ParentID = req.ParentID
	}
	if req.AnchorID != nil {
		entry.AnchorID = req.AnchorID
	}

	if err := validateTOCEntry(entry); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.tocRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("toc entry updated", "entry_id", entry.ID, "admin_id", viewerID)
	return entry, nil
}

// DeleteTOCEntry removes a TOC row. Children keep their parent_id and
// become dangling; the tree builder drops them from output.
func (s *catalogService) DeleteTOCEntry(ctx context.Context, viewerID, entryID string) error {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return err
	}
	if err := s.tocRepo.Delete(ctx, entryID); err != nil {
		return err
	}
	s.logger.Info("toc entry deleted", "entry_id", entryID, "admin_id", viewerID)
	return nil
}

// CreateYouTubeLink adds a companion video link to a book.
func (s *catalogService) CreateYouTubeLink(ctx context.Context, viewerID string, req *services.CreateYouTubeLinkRequest) (*models.YouTubeLink, error) {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}
	if err := validateCreateLink(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if _, err := s.bookRepo.GetByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	link := &models.YouTubeLink{
		ID:     uuid.NewString(),
		BookID: req.BookID,
		Title:  req.Title,
		URL:    req.URL,
		Order:  req.Order,
	}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, err
	}

	s.logger.Info("youtube link created", "link_id", link.ID, "book_id", link.BookID, "admin_id", viewerID)
	return link, nil
}

// UpdateYouTubeLink applies the non-nil fields of the request.
func (s *catalogService) UpdateYouTubeLink(ctx context.Context, viewerID, linkID string, req *services.UpdateYouTubeLinkRequest) (*models.YouTubeLink, error) {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}

	link, err := s.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		link.Title = *req.Title
	}
	if req.URL != nil {
		link.URL = *req.URL
	}
	if req.Order != nil {
		link.Order = *req.Order
	}

	if err := validateLink(link); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.linkRepo.Update(ctx, link); err != nil {
		return nil, err
	}

	s.logger.Info("youtube link updated", "link_id", link.ID, "admin_id", viewerID)
	return link, nil
}

// DeleteYouTubeLink removes a companion video link.
func (s *catalogService) DeleteYouTubeLink(ctx context.Context, viewerID, linkID string) error {
	if _, err := requireAdmin(ctx, s.userRepo, viewerID); err != nil {
		return err
	}
	if err := s.linkRepo.Delete(ctx, linkID); err != nil {
		return err
	}
	s.logger.Info("youtube link deleted", "link_id", linkID, "admin_id", viewerID)
	return nil
}

// Request validation

func validateCreateBook(req *services.CreateBookRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxBookTitleLength),
		),
		validation.Field(&req.Author,
			validation.Required,
			validation.Length(1, config.MaxAuthorNameLength),
		),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.TOCPosition, validation.In(models.ValidTOCPositions...)),
	)
}

func validateBook(book *models.Book) error {
	return validation.ValidateStruct(book,
		validation.Field(&book.Title,
			validation.Required,
			validation.Length(1, config.MaxBookTitleLength),
		),
		validation.Field(&book.Author,
			validation.Required,
			validation.Length(1, config.MaxAuthorNameLength),
		),
		validation.Field(&book.Price, validation.Min(0.0)),
		validation.Field(&book.TOCPosition,
			validation.Required,
			validation.In(models.ValidTOCPositions...),
		),
	)
}

func validateCreateChapter(req *services.CreateChapterRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.BookID, validation.Required, is.UUID),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxChapterTitleLength),
		),
		validation.Field(&req.Order, validation.Min(0)),
	)
}

func validateChapter(chapter *models.Chapter) error {
	return validation.ValidateStruct(chapter,
		validation.Field(&chapter.Title,
			validation.Required,
			validation.Length(1, config.MaxChapterTitleLength),
		),
		validation.Field(&chapter.Order, validation.Min(0)),
	)
}

func validateCreateTOCEntry(req *services.CreateTOCEntryRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.BookID, validation.Required, is.UUID),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTOCTitleLength),
		),
		validation.Field(&req.Level, validation.Required, validation.Min(1)),
		validation.Field(&req.Order, validation.Min(0)),
	)
}

func validateTOCEntry(entry *models.TOCEntry) error {
	return validation.ValidateStruct(entry,
		validation.Field(&entry.Title,
			validation.Required,
			validation.Length(1, config.MaxTOCTitleLength),
		),
		validation.Field(&entry.Level, validation.Required, validation.Min(1)),
		validation.Field(&entry.Order, validation.Min(0)),
	)
}

func validateCreateLink(req *services.CreateYouTubeLinkRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.BookID, validation.Required, is.UUID),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxLinkTitleLength),
		),
		validation.Field(&req.URL, validation.Required, is.URL),
		validation.Field(&req.Order, validation.Min(0)),
	)
}

func validateLink(link *models.YouTubeLink) error {
	return validation.ValidateStruct(link,
		validation.Field(&link.Title,
			validation.Required,
			validation.Length(1, config.MaxLinkTitleLength),
		),
		validation.Field(&link.URL, validation.Required, is.URL),
		validation.Field(&link.Order, validation.Min(0)),
	)
}
