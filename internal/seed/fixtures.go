package seed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Fixtures is the root of a YAML seed file. Books carry their chapters,
// TOC entries and video links inline; access records reference users and
// books by id.
type Fixtures struct {
	Users  []UserFixture   `yaml:"users"`
	Books  []BookFixture   `yaml:"books"`
	Access []AccessFixture `yaml:"access"`
}

type UserFixture struct {
	ID          string    `yaml:"id"`
	Email       string    `yaml:"email"`
	Name        string    `yaml:"name"`
	Phone       string    `yaml:"phone"`
	IsBlocked   bool      `yaml:"is_blocked"`
	IsStaff     bool      `yaml:"is_staff"`
	IsSuperuser bool      `yaml:"is_superuser"`
	DateJoined  time.Time `yaml:"date_joined"`
}

type BookFixture struct {
	ID              string             `yaml:"id"`
	Title           string             `yaml:"title"`
	Author          string             `yaml:"author"`
	Description     string             `yaml:"description"`
	CoverImage      *string            `yaml:"cover_image"`
	MarkdownContent *string            `yaml:"markdown_content"`
	Price           float64            `yaml:"price"`
	IsPublished     *bool              `yaml:"is_published"` // default true
	TOCPosition     string             `yaml:"toc_position"` // default sidebar
	Chapters        []ChapterFixture   `yaml:"chapters"`
	TOCEntries      []TOCEntryFixture  `yaml:"toc_entries"`
	YouTubeLinks    []YouTubeFixture   `yaml:"youtube_links"`
}

type ChapterFixture struct {
	ID              string  `yaml:"id"`
	Title           string  `yaml:"title"`
	Order           int     `yaml:"order"`
	MarkdownContent *string `yaml:"markdown_content"`
	IsPreview       bool    `yaml:"is_preview"`
}

type TOCEntryFixture struct {
	ID        string  `yaml:"id"`
	ChapterID *string `yaml:"chapter_id"`
	Title     string  `yaml:"title"`
	Level     int     `yaml:"level"`
	Order     int     `yaml:"order"`
	ParentID  *string `yaml:"parent_id"`
	AnchorID  *string `yaml:"anchor_id"`
}

type YouTubeFixture struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
	Order int    `yaml:"order"`
}

type AccessFixture struct {
	UserID string `yaml:"user_id"`
	BookID string `yaml:"book_id"`
}

// LoadFixtures reads and parses a YAML seed file.
func LoadFixtures(path string) (*Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures Fixtures
	if err := yaml.Unmarshal(raw, &fixtures); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	return &fixtures, nil
}
