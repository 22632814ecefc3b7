package models

import "time"

// AccessLevel controls who may read a knowledge article.
type AccessLevel string

const (
	// AccessPublic articles are visible to everyone, customers included.
	AccessPublic AccessLevel = "public"
	// AccessInternal articles are visible to any authenticated active user.
	AccessInternal AccessLevel = "internal"
	// AccessRestricted articles are visible to admins and members or
	// leaders of the article's team only.
	AccessRestricted AccessLevel = "restricted"
)

// Valid reports whether the access level is one of the closed set.
func (l AccessLevel) Valid() bool {
	switch l {
	case AccessPublic, AccessInternal, AccessRestricted:
		return true
	}
	return false
}

// KnowledgeArticle is a knowledge base article.
type KnowledgeArticle struct {
	ID          string      `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Summary     string      `json:"summary" db:"summary"`
	Content     string      `json:"content" db:"content"`
	AccessLevel AccessLevel `json:"access_level" db:"access_level"`
	IsPublished bool        `json:"is_published" db:"is_published"`
	AuthorID    string      `json:"author_id" db:"author_id"`
	TeamID      string      `json:"team_id,omitempty" db:"team_id"`
	PublishedAt *time.Time  `json:"published_at,omitempty" db:"published_at"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// ArticleCreateRequest is the payload for creating an article.
type ArticleCreateRequest struct {
	Title       string      `json:"title" binding:"required,min=1,max=255"`
	Summary     string      `json:"summary,omitempty"`
	Content     string      `json:"content" binding:"required"`
	AccessLevel AccessLevel `json:"access_level" binding:"required"`
	TeamID      string      `json:"team_id,omitempty"`
}

// ArticleListRequest holds pagination for article listings.
type ArticleListRequest struct {
	Page    int    `json:"page,omitempty" form:"page"`
	PerPage int    `json:"per_page,omitempty" form:"per_page"`
	Search  string `json:"search,omitempty" form:"search"`
}

// ArticleListResponse is a paginated article listing.
type ArticleListResponse struct {
	Articles []KnowledgeArticle `json:"articles"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PerPage  int                `json:"per_page"`
}
