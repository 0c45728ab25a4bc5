package tarefa

import (
	"time"

	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// Tarefa is a to-do item persisted in the tarefas table.
type Tarefa struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"titulo"`
	Description string    `gorm:"type:text" json:"descricao"`
	Date        time.Time `gorm:"not null;index" json:"data"`
	Status      Status    `gorm:"size:20;not null;index" json:"status"`

	// TitleSearch holds the case-folded title. SQLite's LOWER only folds
	// ASCII, so title searches match against this column instead.
	TitleSearch string `gorm:"size:200;not null;default:'';index" json:"-"`
}

// TableName returns the table name for the Tarefa model.
func (Tarefa) TableName() string {
	return "tarefas"
}

// BeforeSave keeps TitleSearch in step with Title on create and save.
func (t *Tarefa) BeforeSave(_ *gorm.DB) error {
	t.TitleSearch = FoldTitle(t.Title)
	return nil
}

// FoldTitle case-folds a title for matching. "ÁLGEBRA" and "álgebra" fold
// to the same string.
func FoldTitle(title string) string {
	return cases.Fold().String(title)
}

// CreateTarefaRequest carries the fields of a new tarefa.
type CreateTarefaRequest struct {
	Title       string    `json:"titulo"`
	Description string    `json:"descricao"`
	Date        time.Time `json:"data"`
	Status      Status    `json:"status"`
}

// UpdateTarefaRequest carries a partial update. Absent fields keep their
// stored value.
type UpdateTarefaRequest struct {
	Title       Optional[string]    `json:"titulo,omitzero"`
	Description Optional[string]    `json:"descricao,omitzero"`
	Date        Optional[time.Time] `json:"data,omitzero"`
	Status      Optional[Status]    `json:"status,omitzero"`
}

// ApplyTo merges the present fields into t.
func (r *UpdateTarefaRequest) ApplyTo(t *Tarefa) {
	if v, ok := r.Title.Get(); ok {
		t.Title = v
	}
	if v, ok := r.Description.Get(); ok {
		t.Description = v
	}
	if v, ok := r.Date.Get(); ok {
		t.Date = NormalizeDate(v)
	}
	if v, ok := r.Status.Get(); ok {
		t.Status = v
	}
}

// NormalizeDate converts a date to UTC so that day-range queries compare
// values in a single zone.
func NormalizeDate(d time.Time) time.Time {
	return d.UTC()
}

// DayBounds returns the UTC calendar day containing d as a half-open range.
func DayBounds(d time.Time) (time.Time, time.Time) {
	u := d.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
