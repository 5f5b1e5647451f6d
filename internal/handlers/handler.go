package handlers

import (
	"crypto/rand"

	_ "todo_list/docs"
	"todo_list/internal/logger"
	"todo_list/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultSessionName = "todo_session"

// SessionSettings selects the cookie name and the backend holding login sessions.
type SessionSettings struct {
	Name  string
	Store sessions.Store
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	session  SessionSettings
}

// NewHandler constructs a new HTTP handler with dependencies. A nil log discards
// output; a nil session store keeps sessions in process memory under a random key.
func NewHandler(services *service.Service, log *logger.Logger, session SessionSettings) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	if session.Name == "" {
		session.Name = defaultSessionName
	}
	if session.Store == nil {
		key := make([]byte, 32)
		_, _ = rand.Read(key)
		session.Store = memstore.NewStore(key)
	}
	return &Handler{services: services, log: log, session: session}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestID, h.accessLog)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	web := router.Group("/", sessions.Sessions(h.session.Name, h.session.Store))
	h.registerAuthRoutes(web)

	protected := web.Group("/", h.authMiddleware)
	{
		protected.GET("/users", h.listUsers)
		h.registerTodoRoutes(protected)
	}

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.register)
	r.POST("/login", h.login)
	r.POST("/logout", h.logout)
}

func (h *Handler) registerTodoRoutes(r *gin.RouterGroup) {
	todos := r.Group("/todos")
	{
		todos.POST("", h.createTodo)
		todos.GET("", h.listTodos)
		// Live list updates over a WebSocket upgrade on the same port
		todos.GET("/ws", h.todoFeed)
		todos.GET("/:id", h.getTodo)
		todos.DELETE("/:id", h.deleteTodo)
	}
}
