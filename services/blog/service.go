package blog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"apnakam/models"
	"apnakam/services/apperrors"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	postExt        = ".md"
	frontMatterSep = "---"
	dateLayout     = "2006-01-02"
)

var (
	slugStrip  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
)

type BlogService interface {
	ListPosts(ctx context.Context) ([]models.BlogPost, error)
	GetPost(ctx context.Context, slug string) (*models.BlogPost, error)
	CreatePost(ctx context.Context, title, description, content string) (*models.BlogPost, error)
	DeletePost(ctx context.Context, slug string) error
	GenerateDraft(ctx context.Context, req models.BlogDraftRequest) (string, error)
}

// DraftGenerator writes a markdown post body.
type DraftGenerator interface {
	GenerateBlogPost(ctx context.Context, req models.BlogDraftRequest) (string, error)
}

// FileBlogService keeps posts as markdown files with YAML front matter.
type FileBlogService struct {
	Dir       string
	Generator DraftGenerator
	Logger    *zap.Logger
	Now       func() time.Time
}

func NewFileBlogService(dir string, generator DraftGenerator, logger *zap.Logger) (*FileBlogService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create posts directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileBlogService{Dir: dir, Generator: generator, Logger: logger, Now: time.Now}, nil
}

// Slugify lowercases the title, drops anything outside [a-z0-9 -] and joins
// words with hyphens.
func Slugify(title string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(title), "")
	return slugSpaces.ReplaceAllString(strings.TrimSpace(s), "-")
}

func validateSlug(slug string) error {
	if slug == "" || slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return apperrors.NewValidationError("slug", "invalid post slug")
	}
	return nil
}

func (s *FileBlogService) pathFor(slug string) string {
	return filepath.Join(s.Dir, slug+postExt)
}

// parsePost splits a file into front matter and body.
func parsePost(slug string, raw []byte) (*models.BlogPost, error) {
	post := &models.BlogPost{Slug: slug}
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if !strings.HasPrefix(text, frontMatterSep+"\n") {
		post.Content = text
		return post, nil
	}
	rest := text[len(frontMatterSep)+1:]
	end := strings.Index(rest, "\n"+frontMatterSep)
	if end < 0 {
		return nil, fmt.Errorf("post %s: unterminated front matter", slug)
	}
	if err := yaml.Unmarshal([]byte(rest[:end]), post); err != nil {
		return nil, fmt.Errorf("post %s: bad front matter: %w", slug, err)
	}
	body := rest[end+len(frontMatterSep)+1:]
	post.Content = strings.TrimPrefix(body, "\n")
	return post, nil
}

func renderPost(post *models.BlogPost) ([]byte, error) {
	meta, err := yaml.Marshal(post)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(frontMatterSep + "\n")
	buf.Write(meta)
	buf.WriteString(frontMatterSep + "\n")
	buf.WriteString(post.Content)
	if !strings.HasSuffix(post.Content, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// ListPosts returns post metadata, newest first.
func (s *FileBlogService) ListPosts(ctx context.Context) ([]models.BlogPost, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read posts directory: %w", err)
	}

	posts := []models.BlogPost{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != postExt {
			continue
		}
		slug := strings.TrimSuffix(e.Name(), postExt)
		raw, err := os.ReadFile(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read post %s: %w", slug, err)
		}
		post, err := parsePost(slug, raw)
		if err != nil {
			s.Logger.Warn("Skipping malformed post", zap.String("slug", slug), zap.Error(err))
			continue
		}
		post.Content = ""
		posts = append(posts, *post)
	}

	// Dates are YYYY-MM-DD, so string order is date order.
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Date > posts[j].Date })
	return posts, nil
}

func (s *FileBlogService) GetPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.pathFor(slug))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NewNotFoundError("post", slug)
		}
		return nil, fmt.Errorf("failed to read post: %w", err)
	}
	return parsePost(slug, raw)
}

func (s *FileBlogService) CreatePost(ctx context.Context, title, description, content string) (*models.BlogPost, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewValidationError("title", "title is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("content", "content is required")
	}
	slug := Slugify(title)
	if err := validateSlug(slug); err != nil {
		return nil, apperrors.NewValidationError("title", "title must contain letters or digits")
	}

	post := &models.BlogPost{
		Slug:        slug,
		Title:       title,
		Date:        s.Now().Format(dateLayout),
		Description: strings.TrimSpace(description),
		Content:     content,
	}
	data, err := renderPost(post)
	if err != nil {
		return nil, fmt.Errorf("failed to render post: %w", err)
	}

	f, err := os.OpenFile(s.pathFor(slug), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, &apperrors.ValidationError{Code: "duplicate_slug", Field: "title", Message: "a post with this title already exists"}
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write post: %w", err)
	}

	s.Logger.Info("Blog post created", zap.String("slug", slug))
	return post, nil
}

// DeletePost removes a post. Deleting a missing post is not an error.
func (s *FileBlogService) DeletePost(ctx context.Context, slug string) error {
	if err := validateSlug(slug); err != nil {
		return err
	}
	if err := os.Remove(s.pathFor(slug)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	s.Logger.Info("Blog post deleted", zap.String("slug", slug))
	return nil
}

func (s *FileBlogService) GenerateDraft(ctx context.Context, req models.BlogDraftRequest) (string, error) {
	if strings.TrimSpace(req.Title) == "" {
		return "", apperrors.NewValidationError("title", "title is required")
	}
	if s.Generator == nil {
		return "", errors.New("draft generation is not configured")
	}
	return s.Generator.GenerateBlogPost(ctx, req)
}
