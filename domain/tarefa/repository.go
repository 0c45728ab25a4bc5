package tarefa

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// likeEscaper escapes LIKE wildcards so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repository provides database operations for tarefas.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new tarefa repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a tarefa. The database assigns its ID.
func (r *Repository) Create(ctx context.Context, t *Tarefa) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create tarefa: %w", err)
	}
	return nil
}

// GetByID retrieves a tarefa by its ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (*Tarefa, error) {
	var t Tarefa
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tarefa: %w", err)
	}
	return &t, nil
}

// List retrieves every tarefa ordered by ID.
func (r *Repository) List(ctx context.Context) ([]Tarefa, error) {
	var tarefas []Tarefa
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tarefas).Error; err != nil {
		return nil, fmt.Errorf("failed to list tarefas: %w", err)
	}
	return tarefas, nil
}

// FindByTitle returns tarefas whose title contains title, ignoring case.
func (r *Repository) FindByTitle(ctx context.Context, title string) ([]Tarefa, error) {
	pattern := "%" + likeEscaper.Replace(FoldTitle(title)) + "%"

	var tarefas []Tarefa
	err := r.db.WithContext(ctx).
		Where(`title_search LIKE ? ESCAPE '\'`, pattern).
		Order("id ASC").
		Find(&tarefas).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tarefas by title: %w", err)
	}
	return tarefas, nil
}

// FindByDateRange returns tarefas dated in [from, to).
func (r *Repository) FindByDateRange(ctx context.Context, from, to time.Time) ([]Tarefa, error) {
	var tarefas []Tarefa
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Order("id ASC").
		Find(&tarefas).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tarefas by date: %w", err)
	}
	return tarefas, nil
}

// FindByStatus returns tarefas with the given status.
func (r *Repository) FindByStatus(ctx context.Context, status Status) ([]Tarefa, error) {
	var tarefas []Tarefa
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id ASC").
		Find(&tarefas).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tarefas by status: %w", err)
	}
	return tarefas, nil
}

// Save writes every column of an existing tarefa.
func (r *Repository) Save(ctx context.Context, t *Tarefa) error {
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return fmt.Errorf("failed to update tarefa: %w", err)
	}
	return nil
}

// Delete removes a tarefa by its ID.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Tarefa{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete tarefa: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Migrate runs database migrations for the tarefas table and fills the
// search column of rows written before it existed.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&Tarefa{}); err != nil {
		return err
	}

	var stale []Tarefa
	err := r.db.Select("id", "title").
		Where("title_search = '' AND title <> ''").
		Find(&stale).Error
	if err != nil {
		return fmt.Errorf("failed to load tarefas to backfill: %w", err)
	}
	for _, t := range stale {
		err := r.db.Model(&Tarefa{}).
			Where("id = ?", t.ID).
			UpdateColumn("title_search", FoldTitle(t.Title)).Error
		if err != nil {
			return fmt.Errorf("failed to backfill tarefa %d: %w", t.ID, err)
		}
	}
	return nil
}
