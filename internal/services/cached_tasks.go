package services

import (
	"fmt"
	"time"

	"github.com/AlexBrence/TODO-list-app/internal/cache"
	"github.com/AlexBrence/TODO-list-app/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	taskTTL = 30 * time.Minute
	listTTL = 10 * time.Minute
)

// CachedTaskService layers read-through caching over a TaskService. Single
// tasks and per-user list results are cached; every mutation drops the task
// key and the owner's list keys so stale lists never survive a write.
type CachedTaskService struct {
	taskService TaskService
	cache       *cache.RedisCache
}

func NewCachedTaskService(taskService TaskService, cacheInstance *cache.RedisCache) *CachedTaskService {
	return &CachedTaskService{taskService: taskService, cache: cacheInstance}
}

func taskKey(id uuid.UUID) string {
	return fmt.Sprintf("task:%s", id.String())
}

func userListKey(ownerID uuid.UUID, search string) string {
	return fmt.Sprintf("user_tasks:%s:%s", ownerID.String(), search)
}

func userListPattern(ownerID uuid.UUID) string {
	return fmt.Sprintf("user_tasks:%s:*", ownerID.String())
}

func userCountKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("user_count:%s", ownerID.String())
}

func (s *CachedTaskService) invalidateOwner(ownerID uuid.UUID) {
	s.cache.DeletePattern(userListPattern(ownerID))
	s.cache.Delete(userCountKey(ownerID))
}

func (s *CachedTaskService) CreateTask(db *gorm.DB, task models.Task) error {
	if err := s.taskService.CreateTask(db, task); err != nil {
		return err
	}
	s.cache.Set(taskKey(task.ID), task, taskTTL)
	s.invalidateOwner(task.UserID)
	return nil
}

func (s *CachedTaskService) GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error) {
	var cached models.Task
	if err := s.cache.Get(taskKey(id), &cached); err == nil {
		return cached, nil
	}

	task, err := s.taskService.GetTaskByID(db, id)
	if err != nil {
		return task, err
	}
	s.cache.Set(taskKey(id), task, taskTTL)
	return task, nil
}

func (s *CachedTaskService) ListTasks(db *gorm.DB, ownerID uuid.UUID, search string) ([]models.Task, error) {
	key := userListKey(ownerID, search)

	var cached []models.Task
	if err := s.cache.Get(key, &cached); err == nil {
		return cached, nil
	}

	tasks, err := s.taskService.ListTasks(db, ownerID, search)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, tasks, listTTL)
	return tasks, nil
}

func (s *CachedTaskService) CountIncomplete(db *gorm.DB, ownerID uuid.UUID) (int64, error) {
	var cached int64
	if err := s.cache.Get(userCountKey(ownerID), &cached); err == nil {
		return cached, nil
	}

	count, err := s.taskService.CountIncomplete(db, ownerID)
	if err != nil {
		return 0, err
	}
	s.cache.Set(userCountKey(ownerID), count, listTTL)
	return count, nil
}

func (s *CachedTaskService) UpdateTask(db *gorm.DB, id uuid.UUID, fields TaskFields) error {
	// Owner is needed for list invalidation; fetch before the write.
	task, err := s.GetTaskByID(db, id)
	if err != nil {
		return err
	}

	if err := s.taskService.UpdateTask(db, id, fields); err != nil {
		return err
	}
	s.cache.Delete(taskKey(id))
	s.invalidateOwner(task.UserID)
	return nil
}

func (s *CachedTaskService) DeleteTask(db *gorm.DB, id uuid.UUID) error {
	task, err := s.GetTaskByID(db, id)
	if err != nil {
		return err
	}

	if err := s.taskService.DeleteTask(db, id); err != nil {
		return err
	}
	s.cache.Delete(taskKey(id))
	s.invalidateOwner(task.UserID)
	return nil
}
