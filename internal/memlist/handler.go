package memlist

import (
	"errors"
	"net/http"
	"strconv"

	"todo_list/internal/logger"

	"github.com/gin-gonic/gin"
)

// addForm accepts both the HTML form field and a JSON body.
type addForm struct {
	NewTodo string `form:"new-todo" json:"new_todo"`
}

// Handler exposes a List over HTTP. After a successful add or delete the client
// is redirected back to the index, like a form-driven page.
type Handler struct {
	list *List
	log  *logger.Logger
}

func NewHandler(list *List, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{list: list, log: log}
}

// InitRoutes builds the router for the in-memory mode.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/", h.index)
	router.POST("/add", h.add)
	router.POST("/delete/:index", h.remove)
	router.GET("/delete/:index", h.remove)
	return router
}

func (h *Handler) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"todo_list": h.list.Items()})
}

func (h *Handler) add(c *gin.Context) {
	var form addForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	idx, err := h.list.Add(form.NewTodo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.log.Debugw("memlist_added", "index", idx)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) remove(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	if _, err := h.list.Remove(idx); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrIndexOutRange) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	h.log.Debugw("memlist_removed", "index", idx)
	c.Redirect(http.StatusSeeOther, "/")
}
