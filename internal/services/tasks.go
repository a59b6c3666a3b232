package services

import (
	"strings"

	"github.com/AlexBrence/TODO-list-app/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// TaskFields is the editable subset of a task. The owner is deliberately not
// part of it: it is set once at creation and never rewritten.
type TaskFields struct {
	Title       string
	Description string
	IsCompleted bool
}

type TaskService interface {
	CreateTask(db *gorm.DB, task models.Task) error
	GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error)
	ListTasks(db *gorm.DB, ownerID uuid.UUID, search string) ([]models.Task, error)
	CountIncomplete(db *gorm.DB, ownerID uuid.UUID) (int64, error)
	UpdateTask(db *gorm.DB, id uuid.UUID, fields TaskFields) error
	DeleteTask(db *gorm.DB, id uuid.UUID) error
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, task models.Task) error {
	return db.Create(&task).Error
}

func (s *TaskServiceImpl) GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error) {
	var task models.Task
	if err := db.Where("id = ?", id).First(&task).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// likeEscaper neutralizes LIKE metacharacters so a search term is always a
// literal substring, never a wildcard pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListTasks returns the owner's tasks in insertion order. A non-empty search
// narrows the result to titles containing the string, case-insensitively; the
// id tiebreak keeps the order deterministic either way.
func (s *TaskServiceImpl) ListTasks(db *gorm.DB, ownerID uuid.UUID, search string) ([]models.Task, error) {
	query := db.Where("user_id = ?", ownerID)
	if search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern)
	}

	var tasks []models.Task
	if err := query.Order("created_at, id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskServiceImpl) CountIncomplete(db *gorm.DB, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&models.Task{}).
		Where("user_id = ? AND is_completed = ?", ownerID, false).
		Count(&count).Error
	return count, err
}

func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, id uuid.UUID, fields TaskFields) error {
	result := db.Model(&models.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":        fields.Title,
			"description":  fields.Description,
			"is_completed": fields.IsCompleted,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&models.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
