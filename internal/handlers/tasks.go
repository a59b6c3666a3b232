package handlers

import (
	"errors"
	"net/http"

	"github.com/AlexBrence/TODO-list-app/internal/middleware"
	"github.com/AlexBrence/TODO-list-app/internal/models"
	"github.com/AlexBrence/TODO-list-app/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

// ownedTask loads the task from the URL and applies the ownership policy.
// Malformed ids, missing rows, and other users' tasks all end in the same
// 404 page.
func (h *TaskHandler) ownedTask(c *gin.Context) (models.Task, bool) {
	userID, _ := middleware.CurrentUserID(c)
	id := uuid.FromStringOrNil(c.Param("id"))

	task, err := h.taskService.GetTaskByID(h.db, id)
	if err == nil {
		err = services.AuthorizeTaskAccess(userID, task)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(c)
		} else {
			renderServerError(c)
		}
		return models.Task{}, false
	}
	return task, true
}

// List shows the session user's tasks. The incomplete count is computed over
// the full set; the optional search narrows only the listed tasks.
func (h *TaskHandler) List(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	search := c.Query("search")

	tasks, err := h.taskService.ListTasks(h.db, userID, search)
	if err != nil {
		renderServerError(c)
		return
	}
	count, err := h.taskService.CountIncomplete(h.db, userID)
	if err != nil {
		renderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "task_list.html", gin.H{
		"Tasks":    tasks,
		"Count":    count,
		"Search":   search,
		"Username": c.GetString(middleware.ContextUsername),
	})
}

func (h *TaskHandler) Detail(c *gin.Context) {
	task, ok := h.ownedTask(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "task_detail.html", gin.H{"Task": task})
}

func (h *TaskHandler) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "task_form.html", gin.H{"Form": TaskForm{}, "Errors": map[string]string{}})
}

// Create persists a new task owned by the session user. Whatever the client
// might claim about ownership is ignored.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	form := TaskForm{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		IsCompleted: c.PostForm("is_completed") != "",
	}
	if formErrors := form.Validate(); len(formErrors) > 0 {
		c.HTML(http.StatusOK, "task_form.html", gin.H{"Form": form, "Errors": formErrors})
		return
	}

	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		UserID:      userID,
		Title:       form.Title,
		Description: form.Description,
		IsCompleted: form.IsCompleted,
	}
	if err := h.taskService.CreateTask(h.db, task); err != nil {
		renderServerError(c)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *TaskHandler) UpdateForm(c *gin.Context) {
	task, ok := h.ownedTask(c)
	if !ok {
		return
	}
	form := TaskForm{
		Title:       task.Title,
		Description: task.Description,
		IsCompleted: task.IsCompleted,
	}
	c.HTML(http.StatusOK, "task_form.html", gin.H{"Form": form, "Task": task, "Errors": map[string]string{}})
}

// Update writes the three editable fields of an owned task. The ownership
// check runs before the write, never after.
func (h *TaskHandler) Update(c *gin.Context) {
	task, ok := h.ownedTask(c)
	if !ok {
		return
	}

	form := TaskForm{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		IsCompleted: c.PostForm("is_completed") != "",
	}
	if formErrors := form.Validate(); len(formErrors) > 0 {
		c.HTML(http.StatusOK, "task_form.html", gin.H{"Form": form, "Task": task, "Errors": formErrors})
		return
	}

	err := h.taskService.UpdateTask(h.db, task.ID, services.TaskFields{
		Title:       form.Title,
		Description: form.Description,
		IsCompleted: form.IsCompleted,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(c)
		} else {
			renderServerError(c)
		}
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// ConfirmDelete renders the confirmation page; nothing is deleted on GET.
func (h *TaskHandler) ConfirmDelete(c *gin.Context) {
	task, ok := h.ownedTask(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "task_confirm_delete.html", gin.H{"Task": task})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	task, ok := h.ownedTask(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(h.db, task.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(c)
		} else {
			renderServerError(c)
		}
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}
