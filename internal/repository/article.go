package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cms-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type ArticleRepository interface {
	CreateArticle(ctx context.Context, article *models.Article) error
	GetArticleByID(ctx context.Context, id int64) (*models.Article, error)
	GetAllArticles(ctx context.Context) ([]*models.Article, error)
	UpdateArticle(ctx context.Context, id int64, title, content *string) error
}

type articleRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewArticleRepository(db *sqlx.DB, logger *zap.Logger) ArticleRepository {
	return &articleRepository{db: db, logger: logger}
}

// CreateArticle inserts the article and fills in its generated id and
// creation time. time_created is set by the database at commit time,
// not at request arrival.
func (r *articleRepository) CreateArticle(ctx context.Context, article *models.Article) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO articles (title, content, created_by, time_created)
	          VALUES ($1, $2, $3, now() at time zone 'utc') RETURNING id, time_created`
	err = tx.QueryRowxContext(ctx, query, article.Title, article.Content, article.CreatedBy).
		Scan(&article.ID, &article.TimeCreated)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to insert article: %w", err)
	}

	return tx.Commit()
}

func (r *articleRepository) GetArticleByID(ctx context.Context, id int64) (*models.Article, error) {
	var article models.Article
	query := `SELECT id, title, content, created_by, time_created FROM articles WHERE id = $1`
	err := r.db.GetContext(ctx, &article, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetAllArticles(ctx context.Context) ([]*models.Article, error) {
	articles := []*models.Article{}
	query := `SELECT id, title, content, created_by, time_created FROM articles ORDER BY id`
	err := r.db.SelectContext(ctx, &articles, query)
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// UpdateArticle applies a partial update: a nil title or content leaves the
// column untouched. Returns ErrNotFound for an unknown id and ErrConflict
// when the new title collides with another article's.
func (r *articleRepository) UpdateArticle(ctx context.Context, id int64, title, content *string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE articles SET title = COALESCE($1, title), content = COALESCE($2, content) WHERE id = $3`
	res, err := tx.ExecContext(ctx, query, title, content, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to update article: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}
