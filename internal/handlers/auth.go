package handlers

import (
	"errors"
	"net/http"

	"github.com/AlexBrence/TODO-list-app/internal/config"
	"github.com/AlexBrence/TODO-list-app/internal/middleware"
	"github.com/AlexBrence/TODO-list-app/internal/models"
	"github.com/AlexBrence/TODO-list-app/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db          *gorm.DB
	authService services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(db *gorm.DB, authService services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, authService: authService, cfg: cfg}
}

// LoginPage renders the login form. Visiting it with a live session skips
// straight to the task list.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if _, ok := middleware.CurrentUserID(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"Username": ""})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.authService.LoginUser(h.db, username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.HTML(http.StatusOK, "login.html", gin.H{
				"Error":    "Invalid username or password",
				"Username": username,
			})
			return
		}
		renderServerError(c)
		return
	}

	if err := h.establishSession(c, user); err != nil {
		renderServerError(c)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) establishSession(c *gin.Context, user *models.User) error {
	token, err := h.authService.IssueSession(user)
	if err != nil {
		return err
	}
	c.SetCookie(
		middleware.SessionCookie,
		token,
		int(h.cfg.Auth.SessionTTL.Seconds()),
		"/",
		"",
		h.cfg.IsProduction(),
		true,
	)
	return nil
}

func renderServerError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{})
}

func renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{})
}
