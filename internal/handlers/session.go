package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"todo_list/internal/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"gorm.io/gorm"
)

// NewSessionStore builds the login session backend selected by cfg.Store. The
// gorm variant keeps session rows in db and purges expired ones hourly.
func NewSessionStore(cfg config.SessionConfig, db *gorm.DB) (sessions.Store, error) {
	if cfg.Secret == "" {
		return nil, errors.New("session secret is empty")
	}
	key := []byte(cfg.Secret)

	var store sessions.Store
	switch cfg.Store {
	case "", config.SessionStoreCookie:
		store = cookie.NewStore(key)
	case config.SessionStoreGorm:
		if db == nil {
			return nil, errors.New("gorm session store needs a database")
		}
		store = gormsessions.NewStore(db, true, key)
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.Store)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
