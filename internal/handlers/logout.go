package handlers

import (
	"net/http"

	"github.com/AlexBrence/TODO-list-app/internal/config"
	"github.com/AlexBrence/TODO-list-app/internal/middleware"

	"github.com/gin-gonic/gin"
)

type LogoutHandler struct {
	cfg *config.Config
}

func NewLogoutHandler(cfg *config.Config) *LogoutHandler {
	return &LogoutHandler{cfg: cfg}
}

// Logout drops the session cookie and sends the user back to the login page.
// It has no failure mode. The clearing cookie carries the same flags as the
// one set at login, so browsers match and remove it.
func (h *LogoutHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.cfg.IsProduction(), true)
	c.Redirect(http.StatusSeeOther, "/login/")
}
