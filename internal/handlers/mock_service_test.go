package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"todo_list/internal/models"
	"todo_list/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerID  uint
	registerErr error
	loginUser   *models.User
	loginErr    error
	users       []models.User
	usersErr    error
	token       string
	tokenErr    error
	parseID     uint
	parseErr    error

	lastRegisterUsername string
	lastRegisterPassword string
	lastLoginUsername    string
	lastParseToken       string
}

func (m *mockAuth) Register(_ context.Context, username, password string) (uint, error) {
	m.lastRegisterUsername = username
	m.lastRegisterPassword = password
	return m.registerID, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, username, _ string) (*models.User, error) {
	m.lastLoginUsername = username
	return m.loginUser, m.loginErr
}

func (m *mockAuth) ListUsers(context.Context) ([]models.User, error) {
	return m.users, m.usersErr
}

func (m *mockAuth) GenerateToken(uint) (string, error) {
	return m.token, m.tokenErr
}

func (m *mockAuth) ParseToken(token string) (uint, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockTodos struct {
	todos     []models.Todo
	createErr error
	listErr   error
	getErr    error
	deleteErr error

	created    []service.TodoInput
	createdFor []uint
	deleted    []uint
	listCalls  int
}

func (m *mockTodos) Create(_ context.Context, userID uint, in service.TodoInput) (*models.Todo, error) {
	m.created = append(m.created, in)
	m.createdFor = append(m.createdFor, userID)
	if m.createErr != nil {
		return nil, m.createErr
	}
	t := models.Todo{ID: uint(len(m.todos) + 1), Title: in.Title, Description: in.Description, UserID: userID}
	m.todos = append(m.todos, t)
	return &t, nil
}

func (m *mockTodos) List(context.Context, uint) ([]models.Todo, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.Todo{}, m.todos...), nil
}

func (m *mockTodos) Get(_ context.Context, _ uint, id uint) (*models.Todo, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, t := range m.todos {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, nil
}

func (m *mockTodos) Delete(_ context.Context, _ uint, id uint) error {
	m.deleted = append(m.deleted, id)
	return m.deleteErr
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, SessionSettings{})
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// doRequest sends a JSON request through r and records the response.
func doRequest(r http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
