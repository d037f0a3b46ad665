package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tasknest/tasknest/broker"
	"tasknest/tasknest/database"
	"tasknest/tasknest/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskInput carries the fields accepted when creating a task
type TaskInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    models.Category `json:"category"`
	DueDate     *time.Time      `json:"due_date"`
}

// TaskPatch carries a partial update; nil fields are left untouched
type TaskPatch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Category    *models.Category `json:"category"`
	Completed   *bool            `json:"completed"`
	DueDate     *time.Time       `json:"due_date"`
}

// TaskFilter narrows and pages a user's task list. Category is applied
// verbatim; values outside the enumeration match nothing.
type TaskFilter struct {
	Category string
	Search   string
	Page     int
	PageSize int
}

type TaskServiceInterface interface {
	CreateTask(db *database.Database, userID uuid.UUID, input TaskInput) (models.Task, error)
	GetTaskById(db *database.Database, userID uuid.UUID, id string) (models.Task, error)
	UpdateTask(db *database.Database, userID uuid.UUID, id string, patch TaskPatch) (models.Task, error)
	DeleteTask(db *database.Database, userID uuid.UUID, id string) error
	GetTasks(db *database.Database, userID uuid.UUID, filter TaskFilter) ([]models.Task, int64, error)
	GetOverdueTasks(db *database.Database, userID uuid.UUID, filter TaskFilter) ([]models.OverdueTask, int64, error)
}

type TaskService struct{}

func validateTaskInput(input TaskInput, now time.Time) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(input.Title) > models.MaxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrValidation, models.MaxTitleLength)
	}
	if strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if !input.Category.IsValid() {
		return fmt.Errorf("%w: category must be one of work, personal", ErrValidation)
	}
	if input.DueDate != nil && input.DueDate.Before(now) {
		return fmt.Errorf("%w: due_date cannot be in the past", ErrValidation)
	}
	return nil
}

func (s *TaskService) CreateTask(db *database.Database, userID uuid.UUID, input TaskInput) (models.Task, error) {
	if err := validateTaskInput(input, time.Now().UTC()); err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:          uuid.New(),
		UserID:      &userID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Completed:   false,
		DueDate:     input.DueDate,
	}

	if err := db.DB.Create(&task).Error; err != nil {
		return models.Task{}, err
	}

	broker.PublishEvent(broker.TaskCreated, map[string]interface{}{
		"task_id": task.ID.String(),
		"user_id": userID.String(),
		"title":   task.Title,
	})

	return task, nil
}

func (s *TaskService) GetTaskById(db *database.Database, userID uuid.UUID, id string) (models.Task, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return models.Task{}, ErrTaskNotFound
	}

	var task models.Task
	if err := db.DB.First(&task, "id = ? AND user_id = ?", taskID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskService) UpdateTask(db *database.Database, userID uuid.UUID, id string, patch TaskPatch) (models.Task, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return models.Task{}, ErrTaskNotFound
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ? AND user_id = ?", taskID, userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	updates, err := buildTaskUpdates(patch, time.Now().UTC())
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if len(updates) > 0 {
		if err := tx.Model(&task).Updates(updates).Error; err != nil {
			tx.Rollback()
			return models.Task{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	broker.PublishEvent(broker.TaskUpdated, map[string]interface{}{
		"task_id": task.ID.String(),
		"user_id": userID.String(),
		"title":   task.Title,
	})

	return task, nil
}

// buildTaskUpdates validates the supplied patch fields. The due_date-in-past
// rule only applies when due_date is part of the patch.
func buildTaskUpdates(patch TaskPatch, now time.Time) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		if len(*patch.Title) > models.MaxTitleLength {
			return nil, fmt.Errorf("%w: title must be at most %d characters", ErrValidation, models.MaxTitleLength)
		}
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, fmt.Errorf("%w: description cannot be empty", ErrValidation)
		}
		updates["description"] = *patch.Description
	}
	if patch.Category != nil {
		if !patch.Category.IsValid() {
			return nil, fmt.Errorf("%w: category must be one of work, personal", ErrValidation)
		}
		updates["category"] = *patch.Category
	}
	if patch.Completed != nil {
		updates["completed"] = *patch.Completed
	}
	if patch.DueDate != nil {
		if patch.DueDate.Before(now) {
			return nil, fmt.Errorf("%w: due_date cannot be in the past", ErrValidation)
		}
		updates["due_date"] = *patch.DueDate
	}

	return updates, nil
}

func (s *TaskService) DeleteTask(db *database.Database, userID uuid.UUID, id string) error {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return ErrTaskNotFound
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ? AND user_id = ?", taskID, userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := tx.Delete(&task).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	broker.PublishEvent(broker.TaskDeleted, map[string]interface{}{
		"task_id": task.ID.String(),
		"user_id": userID.String(),
	})

	return nil
}

// applyTaskFilter scopes a query to the owner and applies the conjunctive
// category/search filters. Title matching uppercases both sides so it does
// not depend on database collation.
func applyTaskFilter(query *gorm.DB, userID uuid.UUID, filter TaskFilter) *gorm.DB {
	query = query.Where("user_id = ?", userID)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		query = query.Where("UPPER(title) LIKE ?", "%"+strings.ToUpper(filter.Search)+"%")
	}

	return query
}

func (s *TaskService) GetTasks(db *database.Database, userID uuid.UUID, filter TaskFilter) ([]models.Task, int64, error) {
	var count int64
	if err := applyTaskFilter(db.DB.Model(&models.Task{}), userID, filter).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	tasks := make([]models.Task, 0, filter.PageSize)
	err := applyTaskFilter(db.DB.Model(&models.Task{}), userID, filter).
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, count, nil
}

func (s *TaskService) GetOverdueTasks(db *database.Database, userID uuid.UUID, filter TaskFilter) ([]models.OverdueTask, int64, error) {
	// One clock for the predicate and every annotation in the batch
	now := time.Now().UTC()

	var count int64
	err := applyTaskFilter(db.DB.Model(&models.Task{}), userID, filter).
		Where("due_date IS NOT NULL AND due_date < ? AND completed = ?", now, false).
		Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	err = applyTaskFilter(db.DB.Model(&models.Task{}), userID, filter).
		Where("due_date IS NOT NULL AND due_date < ? AND completed = ?", now, false).
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	overdue := make([]models.OverdueTask, 0, len(tasks))
	for _, task := range tasks {
		overdue = append(overdue, models.NewOverdueTask(task, now))
	}

	return overdue, count, nil
}

var TaskServiceInstance TaskServiceInterface = &TaskService{}
