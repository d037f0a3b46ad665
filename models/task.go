package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is the fixed set of task categories
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryWork, CategoryPersonal:
		return true
	}
	return false
}

// MaxTitleLength bounds task titles
const MaxTitleLength = 200

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Category    Category   `gorm:"not null" json:"category"`
	Completed   bool       `gorm:"not null" json:"completed"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
}

// IsOverdue reports whether the task's due date has passed without completion.
// Derived, never stored.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Completed
}

// OverdueBy is the elapsed time past a task's due date, seconds truncated
type OverdueBy struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// OverdueTask is a task annotated with how long it has been overdue
type OverdueTask struct {
	Task
	OverdueBy OverdueBy `json:"overdue_by"`
}

// NewOverdueTask annotates task with the elapsed time between now and its due
// date. Callers sample now once per batch so a large page shares one clock.
func NewOverdueTask(task Task, now time.Time) OverdueTask {
	annotated := OverdueTask{Task: task}
	if task.DueDate == nil {
		return annotated
	}
	elapsedMinutes := int(now.Sub(*task.DueDate) / time.Minute)
	annotated.OverdueBy = OverdueBy{
		Hours:   elapsedMinutes / 60,
		Minutes: elapsedMinutes % 60,
	}
	return annotated
}
