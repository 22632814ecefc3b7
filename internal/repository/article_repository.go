package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bishtdisha/helpdesk-sub000/internal/access"
	"github.com/bishtdisha/helpdesk-sub000/internal/models"
)

var articleColumns = filterColumns{
	owner:       "a.author_id",
	team:        "a.team_id",
	accessLevel: "a.access_level",
	published:   "a.is_published",
}

const articleSelect = `
	SELECT a.id, a.title, a.summary, a.content, a.access_level, a.is_published,
	       a.author_id, COALESCE(a.team_id, '') AS team_id,
	       a.published_at, a.created_at, a.updated_at
	FROM knowledge_articles a
`

// ArticleRepository persists knowledge articles in postgres.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates an article repository.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// GetByID returns one article.
func (r *ArticleRepository) GetByID(ctx context.Context, articleID string) (*models.KnowledgeArticle, error) {
	var article models.KnowledgeArticle
	query := r.db.Rebind(articleSelect + " WHERE a.id = ?")
	if err := r.db.GetContext(ctx, &article, query, articleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get article %s: %w", articleID, err)
	}
	return &article, nil
}

// GetSubject loads only the access attributes of an article.
func (r *ArticleRepository) GetSubject(ctx context.Context, articleID string) (*access.ArticleSubject, error) {
	var row struct {
		ID          string             `db:"id"`
		AuthorID    string             `db:"author_id"`
		TeamID      string             `db:"team_id"`
		AccessLevel models.AccessLevel `db:"access_level"`
		IsPublished bool               `db:"is_published"`
	}
	query := r.db.Rebind(`
		SELECT a.id, a.author_id, COALESCE(a.team_id, '') AS team_id,
		       a.access_level, a.is_published
		FROM knowledge_articles a
		WHERE a.id = ?
	`)
	if err := r.db.GetContext(ctx, &row, query, articleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get article subject %s: %w", articleID, err)
	}
	return &access.ArticleSubject{
		ID:          row.ID,
		Author:      row.AuthorID,
		Team:        row.TeamID,
		AccessLevel: row.AccessLevel,
		IsPublished: row.IsPublished,
	}, nil
}

// List returns the page of articles the authorization filter admits.
func (r *ArticleRepository) List(ctx context.Context, filter access.Filter, req *models.ArticleListRequest) (*models.ArticleListResponse, error) {
	if filter == nil {
		filter = access.DenyAll{}
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}

	var args []interface{}
	where := []string{filterSQL(filter, articleColumns, &args)}
	if req.Search != "" {
		where = append(where, "(a.title ILIKE ? OR a.summary ILIKE ?)")
		pattern := "%" + req.Search + "%"
		args = append(args, pattern, pattern)
	}
	whereClause := " WHERE " + strings.Join(where, " AND ")

	var total int
	countQuery := r.db.Rebind("SELECT COUNT(*) FROM knowledge_articles a" + whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}

	listArgs := append(args, perPage, (page-1)*perPage)
	listQuery := r.db.Rebind(articleSelect + whereClause + " ORDER BY a.updated_at DESC LIMIT ? OFFSET ?")
	articles := []models.KnowledgeArticle{}
	if err := r.db.SelectContext(ctx, &articles, listQuery, listArgs...); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	return &models.ArticleListResponse{
		Articles: articles,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}, nil
}

// Create inserts an article, assigning an id when absent.
func (r *ArticleRepository) Create(ctx context.Context, article *models.KnowledgeArticle) error {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now

	query := r.db.Rebind(`
		INSERT INTO knowledge_articles (id, title, summary, content,
		                                access_level, is_published, author_id,
		                                team_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULLIF(?, ''), ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Summary, article.Content,
		article.AccessLevel, article.IsPublished, article.AuthorID,
		article.TeamID, article.CreatedAt, article.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

// SetPublished flips the published flag, stamping published_at on publish.
func (r *ArticleRepository) SetPublished(ctx context.Context, articleID string, published bool) error {
	query := r.db.Rebind(`
		UPDATE knowledge_articles
		SET is_published = ?, updated_at = ?,
		    published_at = CASE WHEN ? THEN ? ELSE published_at END
		WHERE id = ?
	`)
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query, published, now, published, now, articleID)
	if err != nil {
		return fmt.Errorf("failed to update article publish state: %w", err)
	}
	return requireRow(result)
}
