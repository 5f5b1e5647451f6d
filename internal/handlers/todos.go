package handlers

import (
	"net/http"
	"strconv"

	"todo_list/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateTodoRequest is the payload of POST /todos.
type CreateTodoRequest struct {
	Title       string  `json:"title" example:"buy milk"`
	Description *string `json:"description,omitempty" example:"semi-skimmed"`
}

// userIDOrAbort reads the authenticated user id; the middleware guarantees it,
// so a miss means the route was registered outside the protected group.
func (h *Handler) userIDOrAbort(c *gin.Context) (uint, bool) {
	uid, ok := currentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errNotAuth})
	}
	return uid, ok
}

func parseTodoID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return uint(id), true
}

// @Summary      Create todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body  body      CreateTodoRequest  true  "Todo payload"
// @Success      201   {object}  map[string]interface{}  "message, todo"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /todos [post]
// @Security     BearerAuth
func (h *Handler) createTodo(c *gin.Context) {
	uid, ok := h.userIDOrAbort(c)
	if !ok {
		return
	}
	var req CreateTodoRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	todo, err := h.services.Todos.Create(c.Request.Context(), uid, service.TodoInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(c, "todos_create_failed", err, "user_id", uid)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msgTodoCreated, "todo": todo})
}

// @Summary      List todos
// @Description  Returns the caller's todos in creation order.
// @Tags         todos
// @Produce      json
// @Success      200  {array}   models.Todo
// @Failure      401  {object}  map[string]string
// @Router       /todos [get]
// @Security     BearerAuth
func (h *Handler) listTodos(c *gin.Context) {
	uid, ok := h.userIDOrAbort(c)
	if !ok {
		return
	}
	todos, err := h.services.Todos.List(c.Request.Context(), uid)
	if err != nil {
		h.respondError(c, "todos_list_failed", err, "user_id", uid)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// @Summary      Get todo
// @Tags         todos
// @Produce      json
// @Param        id   path      int  true  "Todo id"
// @Success      200  {object}  models.Todo
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /todos/{id} [get]
// @Security     BearerAuth
func (h *Handler) getTodo(c *gin.Context) {
	uid, ok := h.userIDOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseTodoID(c)
	if !ok {
		return
	}
	todo, err := h.services.Todos.Get(c.Request.Context(), uid, id)
	if err != nil {
		h.respondError(c, "todos_get_failed", err, "user_id", uid, "todo_id", id)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// @Summary      Delete todo
// @Tags         todos
// @Produce      json
// @Param        id   path      int  true  "Todo id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /todos/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTodo(c *gin.Context) {
	uid, ok := h.userIDOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseTodoID(c)
	if !ok {
		return
	}
	if err := h.services.Todos.Delete(c.Request.Context(), uid, id); err != nil {
		h.respondError(c, "todos_delete_failed", err, "user_id", uid, "todo_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgTodoDeleted})
}
