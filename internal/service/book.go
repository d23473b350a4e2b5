package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
	"folio/internal/domain/services"
	"folio/internal/service/access"
	"folio/internal/service/toc"
)

// bookService implements the reader-facing BookService interface.
type bookService struct {
	bookRepo    repositories.BookRepository
	chapterRepo repositories.ChapterRepository
	tocRepo     repositories.TOCRepository
	linkRepo    repositories.YouTubeLinkRepository
	accessRepo  repositories.AccessRepository
	userRepo    repositories.UserRepository
	renderer    services.MarkdownRenderer
	tocBuilder  services.TOCBuilder
	logger      *slog.Logger
}

// NewBookService creates the reader-facing book service.
func NewBookService(
	bookRepo repositories.BookRepository,
	chapterRepo repositories.ChapterRepository,
	tocRepo repositories.TOCRepository,
	linkRepo repositories.YouTubeLinkRepository,
	accessRepo repositories.AccessRepository,
	userRepo repositories.UserRepository,
	renderer services.MarkdownRenderer,
	tocBuilder services.TOCBuilder,
	logger *slog.Logger,
) services.BookService {
	return &bookService{
		bookRepo:    bookRepo,
		chapterRepo: chapterRepo,
		tocRepo:     tocRepo,
		linkRepo:    linkRepo,
		accessRepo:  accessRepo,
		userRepo:    userRepo,
		renderer:    renderer,
		tocBuilder:  tocBuilder,
		logger:      logger,
	}
}

// ListBooks returns the catalog visible to the viewer.
func (s *bookService) ListBooks(ctx context.Context, viewerID string) ([]models.BookSummary, error) {
	viewer, err := s.viewerFor(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer.Blocked {
		return nil, &domain.ForbiddenError{Message: "your account is blocked"}
	}

	books, err := s.bookRepo.List(ctx, !viewer.Admin())
	if err != nil {
		return nil, err
	}

	granted, err := s.grantSet(ctx, viewer, viewerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.BookSummary, 0, len(books))
	for _, b := range books {
		summaries = append(summaries, buildSummary(&b, viewer.Admin() || granted[b.ID]))
	}
	return summaries, nil
}

// GetBookDetail returns the detail payload, with a preview variant for
// published books the viewer holds no grant for.
func (s *bookService) GetBookDetail(ctx context.Context, viewerID, bookID string) (*models.BookDetail, error) {
	viewer, err := s.viewerFor(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	book, state, err := s.bookState(ctx, viewer, viewerID, bookID)
	if err != nil {
		return nil, err
	}

	decision := access.DecideDetail(viewer, state)
	switch decision.Outcome {
	case access.NotFound:
		s.logger.Warn("book hidden from viewer", "book_id", bookID, "user_id", viewerID)
		return nil, &domain.NotFoundError{Message: "book not found"}
	case access.Forbidden:
		s.logger.Warn("book detail denied", "book_id", bookID, "user_id", viewerID)
		return nil, s.denyError(viewer)
	case access.FullAccess:
		return s.buildFullDetail(ctx, book)
	case access.PreviewOnly:
		return s.buildPreviewDetail(ctx, book)
	default:
		return nil, fmt.Errorf("unhandled access outcome %v", decision.Outcome)
	}
}

// ReadBook is the strict read endpoint: full detail or a hard deny.
func (s *bookService) ReadBook(ctx context.Context, viewerID, bookID string) (*models.BookDetail, error) {
	viewer, err := s.viewerFor(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	book, state, err := s.bookState(ctx, viewer, viewerID, bookID)
	if err != nil {
		return nil, err
	}

	decision := access.Decide(viewer, state)
	switch decision.Outcome {
	case access.NotFound:
		s.logger.Warn("read denied: book hidden", "book_id", bookID, "user_id", viewerID)
		return nil, &domain.NotFoundError{Message: "book not found"}
	case access.Forbidden:
		s.logger.Warn("read denied: locked", "book_id", bookID, "user_id", viewerID)
		return nil, s.denyError(viewer)
	case access.FullAccess:
		s.logger.Info("read granted", "book_id", bookID, "user_id", viewerID)
		return s.buildFullDetail(ctx, book)
	default:
		return nil, fmt.Errorf("unhandled access outcome %v", decision.Outcome)
	}
}

// GetBookContent returns the rendered content payload.
func (s *bookService) GetBookContent(ctx context.Context, viewerID, bookID string) (*models.BookContent, error) {
	viewer, err := s.viewerFor(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	book, state, err := s.bookState(ctx, viewer, viewerID, bookID)
	if err != nil {
		return nil, err
	}

	decision := access.Decide(viewer, state)
	switch decision.Outcome {
	case access.NotFound:
		return nil, &domain.NotFoundError{Message: "book not found"}
	case access.Forbidden:
		return nil, s.denyError(viewer)
	case access.FullAccess:
		// fall through to payload build
	default:
		return nil, fmt.Errorf("unhandled access outcome %v", decision.Outcome)
	}

	rendered := s.renderBook(book)
	tocNodes, err := s.bookTOC(ctx, book, rendered)
	if err != nil {
		return nil, err
	}

	s.logger.Info("content served", "book_id", bookID, "user_id", viewerID)
	return &models.BookContent{
		ID:          book.ID,
		Title:       book.Title,
		HTML:        rendered.HTML,
		TOC:         tocNodes,
		TOCPosition: book.TOCPosition,
	}, nil
}

// ListPurchasedBooks returns the viewer's unlocked catalog.
func (s *bookService) ListPurchasedBooks(ctx context.Context, viewerID string) ([]models.BookSummary, error) {
	viewer, err := s.viewerFor(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer.Blocked {
		return nil, &domain.ForbiddenError{Message: "your account is blocked"}
	}

	var books []models.Book
	if viewer.Admin() {
		books, err = s.bookRepo.List(ctx, false)
	} else {
		var grants []models.BookAccess
		grants, err = s.accessRepo.ListByUser(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(grants))
		for _, g := range grants {
			ids = append(ids, g.BookID)
		}
		books, err = s.bookRepo.ListByIDs(ctx, ids)
	}
	if err != nil {
		return nil, err
	}

	summaries := make([]models.BookSummary, 0, len(books))
	for _, b := range books {
		summaries = append(summaries, buildSummary(&b, true))
	}
	return summaries, nil
}

// viewerFor resolves the viewer's gating flags from the account record.
func (s *bookService) viewerFor(ctx context.Context, viewerID string) (access.Viewer, error) {
	viewer, _, err := resolveViewer(ctx, s.userRepo, viewerID)
	return viewer, err
}

// bookState loads the book and the facts the gate needs. A missing book is
// not an error here - it becomes a NotFound outcome.
func (s *bookService) bookState(ctx context.Context, viewer access.Viewer, viewerID, bookID string) (*models.Book, access.BookState, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, access.BookState{}, nil
		}
		return nil, access.BookState{}, err
	}

	state := access.BookState{Exists: true, Published: book.IsPublished}
	if !viewer.Admin() {
		granted, err := s.accessRepo.Exists(ctx, viewerID, bookID)
		if err != nil {
			return nil, access.BookState{}, err
		}
		state.Granted = granted
	}
	return book, state, nil
}

// denyError keeps the original deny messages: a blocked account reads
// differently from a locked book.
func (s *bookService) denyError(viewer access.Viewer) error {
	if viewer.Blocked {
		return &domain.ForbiddenError{Message: "your account is blocked"}
	}
	return &domain.ForbiddenError{Message: "access denied: this book is locked"}
}

// grantSet loads the viewer's grants as a set. Admins need none.
func (s *bookService) grantSet(ctx context.Context, viewer access.Viewer, viewerID string) (map[string]bool, error) {
	if viewer.Admin() {
		return nil, nil
	}
	grants, err := s.accessRepo.ListByUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(grants))
	for _, g := range grants {
		set[g.BookID] = true
	}
	return set, nil
}

// renderBook renders the book's markdown, or an empty result when the book
// has none.
func (s *bookService) renderBook(book *models.Book) *models.RenderedContent {
	if book.MarkdownContent == nil || *book.MarkdownContent == "" {
		return &models.RenderedContent{HTML: "", Headings: []models.Heading{}}
	}
	return s.renderer.Render(*book.MarkdownContent)
}

// bookTOC applies the selection rule: manual entries win entirely, the
// auto-generated heading list is the fallback, and it is never numbered.
func (s *bookService) bookTOC(ctx context.Context, book *models.Book, rendered *models.RenderedContent) ([]*models.TOCNode, error) {
	manual, err := s.tocRepo.ListByBook(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	if len(manual) > 0 {
		return s.tocBuilder.BuildManualTree(manual), nil
	}
	return toc.FromHeadings(rendered.Headings), nil
}

// buildFullDetail assembles the unrestricted detail payload.
func (s *bookService) buildFullDetail(ctx context.Context, book *models.Book) (*models.BookDetail, error) {
	chapters, err := s.chapterRepo.ListByBook(ctx, book.ID, false)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, book, chapters, false)
}

// buildPreviewDetail assembles the locked variant: preview chapters only,
// content file withheld.
func (s *bookService) buildPreviewDetail(ctx context.Context, book *models.Book) (*models.BookDetail, error) {
	chapters, err := s.chapterRepo.ListByBook(ctx, book.ID, true)
	if err != nil {
		return nil, err
	}
	detail, err := s.buildDetail(ctx, book, chapters, true)
	if err != nil {
		return nil, err
	}
	detail.ContentFile = nil
	return detail, nil
}

func (s *bookService) buildDetail(ctx context.Context, book *models.Book, chapters []models.Chapter, locked bool) (*models.BookDetail, error) {
	rendered := s.renderBook(book)
	tocNodes, err := s.bookTOC(ctx, book, rendered)
	if err != nil {
		return nil, err
	}

	links, err := s.linkRepo.ListByBook(ctx, book.ID)
	if err != nil {
		return nil, err
	}

	var htmlPtr *string
	if book.MarkdownContent != nil && *book.MarkdownContent != "" {
		htmlPtr = &rendered.HTML
	}

	views := make([]models.ChapterView, 0, len(chapters))
	for _, ch := range chapters {
		views = append(views, s.buildChapterView(ch))
	}

	return &models.BookDetail{
		ID:              book.ID,
		Title:           book.Title,
		Author:          book.Author,
		Description:     book.Description,
		CoverImage:      book.CoverImage,
		ContentFile:     book.ContentFile,
		MarkdownContent: book.MarkdownContent,
		HTML:            htmlPtr,
		TOC:             tocNodes,
		TOCPosition:     book.TOCPosition,
		Price:           book.Price,
		IsPublished:     book.IsPublished,
		IsLocked:        locked,
		Chapters:        views,
		YouTubeLinks:    links,
	}, nil
}

// buildChapterView renders a chapter's own markdown into its embedded
// html/toc fields.
func (s *bookService) buildChapterView(ch models.Chapter) models.ChapterView {
	view := models.ChapterView{
		ID:              ch.ID,
		Title:           ch.Title,
		Order:           ch.Order,
		MarkdownContent: ch.MarkdownContent,
		TOC:             []*models.TOCNode{},
		IsPreview:       ch.IsPreview,
		VoiceFile:       ch.VoiceFile,
	}
	if ch.MarkdownContent != nil && *ch.MarkdownContent != "" {
		rendered := s.renderer.Render(*ch.MarkdownContent)
		view.HTML = &rendered.HTML
		view.TOC = toc.FromHeadings(rendered.Headings)
	}
	return view
}

func buildSummary(book *models.Book, unlocked bool) models.BookSummary {
	return models.BookSummary{
		ID:          book.ID,
		Title:       book.Title,
		Author:      book.Author,
		CoverImage:  book.CoverImage,
		Price:       book.Price,
		IsPublished: book.IsPublished,
		IsLocked:    !unlocked,
	}
}
