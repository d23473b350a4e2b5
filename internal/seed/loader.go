package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
)

// Loader applies fixtures through the repository layer so seeded rows go
// through the same write paths as production data. All writes run inside a
// single transaction; a bad fixture file leaves the database untouched.
type Loader struct {
	userRepo    repositories.UserRepository
	bookRepo    repositories.BookRepository
	chapterRepo repositories.ChapterRepository
	tocRepo     repositories.TOCRepository
	linkRepo    repositories.YouTubeLinkRepository
	accessRepo  repositories.AccessRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewLoader creates a fixture loader.
func NewLoader(
	userRepo repositories.UserRepository,
	bookRepo repositories.BookRepository,
	chapterRepo repositories.ChapterRepository,
	tocRepo repositories.TOCRepository,
	linkRepo repositories.YouTubeLinkRepository,
	accessRepo repositories.AccessRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *Loader {
	return &Loader{
		userRepo:    userRepo,
		bookRepo:    bookRepo,
		chapterRepo: chapterRepo,
		tocRepo:     tocRepo,
		linkRepo:    linkRepo,
		accessRepo:  accessRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Apply loads the fixture set inside one transaction.
func (l *Loader) Apply(ctx context.Context, fixtures *Fixtures) error {
	return l.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for i := range fixtures.Users {
			if err := l.userRepo.Insert(txCtx, userModel(&fixtures.Users[i])); err != nil {
				return fmt.Errorf("user %s: %w", fixtures.Users[i].ID, err)
			}
		}
		l.logger.Info("seeded users", "count", len(fixtures.Users))

		for i := range fixtures.Books {
			if err := l.applyBook(txCtx, &fixtures.Books[i]); err != nil {
				return fmt.Errorf("book %s: %w", fixtures.Books[i].ID, err)
			}
		}
		l.logger.Info("seeded books", "count", len(fixtures.Books))

		for _, grant := range fixtures.Access {
			if _, err := l.accessRepo.Grant(txCtx, grant.UserID, grant.BookID); err != nil {
				return fmt.Errorf("access %s/%s: %w", grant.UserID, grant.BookID, err)
			}
		}
		l.logger.Info("seeded access grants", "count", len(fixtures.Access))

		return nil
	})
}

func (l *Loader) applyBook(ctx context.Context, fixture *BookFixture) error {
	if err := l.bookRepo.Create(ctx, bookModel(fixture)); err != nil {
		return err
	}

	for _, ch := range fixture.Chapters {
		chapter := &models.Chapter{
			ID:              ch.ID,
			BookID:          fixture.ID,
			Title:           ch.Title,
			Order:           ch.Order,
			MarkdownContent: ch.MarkdownContent,
			IsPreview:       ch.IsPreview,
		}
		if err := l.chapterRepo.Create(ctx, chapter); err != nil {
			return fmt.Errorf("chapter %s: %w", ch.ID, err)
		}
	}

	// Entries are created in file order; parents must precede children in
	// the fixture file so FK checks pass.
	for _, te := range fixture.TOCEntries {
		entry := &models.TOCEntry{
			ID:        te.ID,
			BookID:    fixture.ID,
			ChapterID: te.ChapterID,
			Title:     te.Title,
			Level:     te.Level,
			Order:     te.Order,
			ParentID:  te.ParentID,
			AnchorID:  te.AnchorID,
		}
		if err := l.tocRepo.Create(ctx, entry); err != nil {
			return fmt.Errorf("toc entry %s: %w", te.ID, err)
		}
	}

	for _, yl := range fixture.YouTubeLinks {
		link := &models.YouTubeLink{
			ID:     yl.ID,
			BookID: fixture.ID,
			Title:  yl.Title,
			URL:    yl.URL,
			Order:  yl.Order,
		}
		if err := l.linkRepo.Create(ctx, link); err != nil {
			return fmt.Errorf("youtube link %s: %w", yl.ID, err)
		}
	}

	return nil
}

func userModel(fixture *UserFixture) *models.User {
	joined := fixture.DateJoined
	if joined.IsZero() {
		joined = time.Now()
	}
	return &models.User{
		ID:          fixture.ID,
		Email:       fixture.Email,
		Name:        fixture.Name,
		Phone:       fixture.Phone,
		IsBlocked:   fixture.IsBlocked,
		IsStaff:     fixture.IsStaff,
		IsSuperuser: fixture.IsSuperuser,
		DateJoined:  joined,
	}
}

func bookModel(fixture *BookFixture) *models.Book {
	published := true
	if fixture.IsPublished != nil {
		published = *fixture.IsPublished
	}
	position := fixture.TOCPosition
	if position == "" {
		position = models.TOCPositionSidebar
	}
	return &models.Book{
		ID:              fixture.ID,
		Title:           fixture.Title,
		Author:          fixture.Author,
		Description:     fixture.Description,
		CoverImage:      fixture.CoverImage,
		MarkdownContent: fixture.MarkdownContent,
		Price:           fixture.Price,
		IsPublished:     published,
		TOCPosition:     position,
		CreatedAt:       time.Now(),
	}
}
