package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/AlexBrence/TODO-list-app/internal/handlers"
	"github.com/AlexBrence/TODO-list-app/internal/middleware"
	"github.com/AlexBrence/TODO-list-app/internal/models"
	"github.com/AlexBrence/TODO-list-app/internal/services"
	"github.com/AlexBrence/TODO-list-app/web"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// MockTaskService is an in-memory TaskService used to test handlers in
// isolation.
type MockTaskService struct {
	tasks             map[uuid.UUID]models.Task
	shouldReturnError bool
}

func NewMockTaskService() *MockTaskService {
	return &MockTaskService{tasks: make(map[uuid.UUID]models.Task)}
}

func (m *MockTaskService) CreateTask(db *gorm.DB, task models.Task) error {
	if m.shouldReturnError {
		return gorm.ErrInvalidData
	}
	m.tasks[task.ID] = task
	return nil
}

func (m *MockTaskService) GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error) {
	if m.shouldReturnError {
		return models.Task{}, gorm.ErrInvalidData
	}
	task, ok := m.tasks[id]
	if !ok {
		return models.Task{}, gorm.ErrRecordNotFound
	}
	return task, nil
}

func (m *MockTaskService) ListTasks(db *gorm.DB, ownerID uuid.UUID, search string) ([]models.Task, error) {
	if m.shouldReturnError {
		return nil, gorm.ErrInvalidData
	}
	var tasks []models.Task
	for _, task := range m.tasks {
		if task.UserID != ownerID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(task.Title), strings.ToLower(search)) {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (m *MockTaskService) CountIncomplete(db *gorm.DB, ownerID uuid.UUID) (int64, error) {
	var count int64
	for _, task := range m.tasks {
		if task.UserID == ownerID && !task.IsCompleted {
			count++
		}
	}
	return count, nil
}

func (m *MockTaskService) UpdateTask(db *gorm.DB, id uuid.UUID, fields services.TaskFields) error {
	task, ok := m.tasks[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	task.Title = fields.Title
	task.Description = fields.Description
	task.IsCompleted = fields.IsCompleted
	m.tasks[id] = task
	return nil
}

func (m *MockTaskService) DeleteTask(db *gorm.DB, id uuid.UUID) error {
	if _, ok := m.tasks[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.tasks, id)
	return nil
}

func setupTaskRouter(sessionUser uuid.UUID) (*MockTaskService, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	mock := NewMockTaskService()
	handler := handlers.NewTaskHandler(nil, mock)

	router := gin.New()
	router.SetHTMLTemplate(web.Templates())
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, sessionUser)
		c.Set(middleware.ContextUsername, "alice")
		c.Next()
	})

	router.GET("/", handler.List)
	router.GET("/create/", handler.CreateForm)
	router.POST("/create/", handler.Create)
	router.GET("/:id/", handler.Detail)
	router.GET("/:id/edit", handler.UpdateForm)
	router.POST("/:id/edit", handler.Update)
	router.GET("/:id/delete", handler.ConfirmDelete)
	router.POST("/:id/delete", handler.Delete)

	return mock, router
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListShowsOwnTasksAndCount(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mock, router := setupTaskRouter(userID)

	mock.tasks[uuid.Must(uuid.NewV4())] = models.Task{ID: uuid.Must(uuid.NewV4()), UserID: userID, Title: "Groceries"}
	otherID := uuid.Must(uuid.NewV4())
	mock.tasks[otherID] = models.Task{ID: otherID, UserID: uuid.Must(uuid.NewV4()), Title: "Not mine"}

	w := get(router, "/")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Groceries") {
		t.Error("Expected own task in list")
	}
	if strings.Contains(body, "Not mine") {
		t.Error("Other users' tasks must not appear in the list")
	}
	if !strings.Contains(body, "You have 1 incomplete task") {
		t.Errorf("Expected incomplete count of 1, body: %s", body)
	}
}

func TestListSearchFiltersAndEchoes(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mock, router := setupTaskRouter(userID)

	id1 := uuid.Must(uuid.NewV4())
	id2 := uuid.Must(uuid.NewV4())
	mock.tasks[id1] = models.Task{ID: id1, UserID: userID, Title: "Buy Milk"}
	mock.tasks[id2] = models.Task{ID: id2, UserID: userID, Title: "Walk the dog"}

	w := get(router, "/?search=milk")

	body := w.Body.String()
	if !strings.Contains(body, "Buy Milk") {
		t.Error("Expected matching task in filtered list")
	}
	if strings.Contains(body, "Walk the dog") {
		t.Error("Expected non-matching task to be filtered out")
	}
	if !strings.Contains(body, `value="milk"`) {
		t.Error("Expected search string to be echoed back")
	}
}

func TestDetailOwnTask(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mock, router := setupTaskRouter(userID)

	taskID := uuid.Must(uuid.NewV4())
	mock.tasks[taskID] = models.Task{ID: taskID, UserID: userID, Title: "Groceries"}

	w := get(router, "/"+taskID.String()+"/")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "Groceries") {
		t.Error("Expected task title on detail page")
	}
}

func TestDetailOtherUsersTaskIs404(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mock, router := setupTaskRouter(userID)

	taskID := uuid.Must(uuid.NewV4())
	mock.tasks[taskID] = models.Task{ID: taskID, UserID: uuid.Must(uuid.NewV4()), Title: "Secret"}

	w := get(router, "/"+taskID.String()+"/")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	if strings.Contains(w.Body.String(), "Secret") {
		t.Error("Other users' task content must not leak")
	}
}

func TestDetailMissingAndMalformedIDsMatch(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	_, router := setupTaskRouter(userID)

	missing := get(router, "/"+uuid.Must(uuid.NewV4()).String()+"/")
	malformed := get(router, "/not-a-uuid/")

	if missing.Code != http.StatusNotFound || malformed.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for both, got %d and %d", missing.Code, malformed.Code)
	}
}

func TestCreateAssignsSessionOwner(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mock, router := setupTaskRouter(userID)

	w := postForm(router, "/create/", url.Values{
		"title":       {"Groceries"},
		"description": {"milk and eggs"},
		// A forged owner field must be ignored.
		"user_id": {uuid.Must(uuid.NewV4()).String()},
	})

	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected redirect %d, got %d", http.StatusSeeOther, w.Code)
	}
	if location := w.Header().Get("Location"); location != "/" {
		t.Errorf("Expected redirect to /, got %s", location)
	}

	if len(mock.tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(mock.tasks))
	}
	for _, task := range mock.tasks {
		if task.UserID != userID {
			t.Errorf("Expected owner %s, got %s", userID, task.UserID)
		}
		if task.IsCompleted {
			t.Error("Expected new task to default to incomplete")
		}
	}
}

func TestCreateMissingTitleRerenders(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mock, router := setupTaskRouter(userID)

	w := postForm(router, "/create/", url.Values{"title": {"   "}})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "Title is required") {
		t.Error("Expected field error on re-rendered form")
	}
	if len(mock.tasks) != 0 {
		t.Error("Expected no task to be created")
	}
}

func TestUpdateTogglesCompletion(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mock, router := setupTaskRouter(userID)

	taskID := uuid.Must(uuid.NewV4())
	mock.tasks[taskID] = models.Task{ID: taskID, UserID: userID, Title: "Groceries"}

	w := postForm(router, "/"+taskID.String()+"/edit", url.Values{
		"title":        {"Groceries"},
		"is_completed": {"on"},
	})

	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected redirect %d, got %d", http.StatusSeeOther, w.Code)
	}
	if !mock.tasks[taskID].IsCompleted {
		t.Error("Expected task to be marked completed")
	}
}

func TestUpdateOtherUsersTaskIs404(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mock, router := setupTaskRouter(userID)

	taskID := uuid.Must(uuid.NewV4())
	mock.tasks[taskID] = models.Task{ID: taskID, UserID: uuid.Must(uuid.NewV4()), Title: "Secret"}

	w := postForm(router, "/"+taskID.String()+"/edit", url.Values{"title": {"Hijacked"}})

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	if mock.tasks[taskID].Title != "Secret" {
		t.Error("Cross-user update must not mutate the task")
	}
}

func TestDeleteConfirmThenPerform(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mock, router := setupTaskRouter(userID)

	taskID := uuid.Must(uuid.NewV4())
	mock.tasks[taskID] = models.Task{ID: taskID, UserID: userID, Title: "Groceries"}

	confirm := get(router, "/"+taskID.String()+"/delete")
	if confirm.Code != http.StatusOK {
		t.Fatalf("Expected confirmation page %d, got %d", http.StatusOK, confirm.Code)
	}
	if len(mock.tasks) != 1 {
		t.Fatal("GET on the delete route must not delete")
	}

	perform := postForm(router, "/"+taskID.String()+"/delete", url.Values{})
	if perform.Code != http.StatusSeeOther {
		t.Fatalf("Expected redirect %d, got %d", http.StatusSeeOther, perform.Code)
	}
	if len(mock.tasks) != 0 {
		t.Error("Expected task to be deleted")
	}
}

func TestDeleteOtherUsersTaskIs404(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mock, router := setupTaskRouter(userID)

	taskID := uuid.Must(uuid.NewV4())
	mock.tasks[taskID] = models.Task{ID: taskID, UserID: uuid.Must(uuid.NewV4()), Title: "Secret"}

	w := postForm(router, "/"+taskID.String()+"/delete", url.Values{})

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	if len(mock.tasks) != 1 {
		t.Error("Cross-user delete must not remove the task")
	}
}
