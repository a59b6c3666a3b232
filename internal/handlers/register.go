package handlers

import (
	"errors"
	"net/http"

	"github.com/AlexBrence/TODO-list-app/internal/config"
	"github.com/AlexBrence/TODO-list-app/internal/middleware"
	"github.com/AlexBrence/TODO-list-app/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterHandler struct {
	db              *gorm.DB
	registerService services.RegisterService
	auth            *AuthHandler
}

func NewRegisterHandler(db *gorm.DB, registerService services.RegisterService, authService services.AuthService, cfg *config.Config) *RegisterHandler {
	return &RegisterHandler{
		db:              db,
		registerService: registerService,
		auth:            NewAuthHandler(db, authService, cfg),
	}
}

func (h *RegisterHandler) RegisterPage(c *gin.Context) {
	if _, ok := middleware.CurrentUserID(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Errors":   map[string]string{},
		"Username": "",
	})
}

// Register validates the form, creates the account, and logs the new user in
// immediately.
func (h *RegisterHandler) Register(c *gin.Context) {
	form := RegisterForm{
		Username:        c.PostForm("username"),
		Password:        c.PostForm("password"),
		PasswordConfirm: c.PostForm("password_confirm"),
	}

	formErrors := form.Validate()
	if len(formErrors) == 0 {
		user, err := h.registerService.RegisterUser(h.db, form.Username, form.Password)
		if err == nil {
			if err := h.auth.establishSession(c, user); err != nil {
				renderServerError(c)
				return
			}
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		if errors.Is(err, services.ErrDuplicateUsername) {
			formErrors["username"] = "This username is already taken"
		} else {
			renderServerError(c)
			return
		}
	}

	c.HTML(http.StatusOK, "register.html", gin.H{
		"Errors":   formErrors,
		"Username": form.Username,
	})
}
