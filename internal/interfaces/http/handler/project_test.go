package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	specapp "github.com/apitest/backend/internal/application/spec"
	"github.com/apitest/backend/internal/domain/shared"
	"github.com/apitest/backend/internal/domain/spec"
	"github.com/apitest/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*spec.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spec.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByName(ctx context.Context, name string) (*spec.Project, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spec.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]spec.Project, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]spec.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectRepository) Save(ctx context.Context, project *spec.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupProjectRouter(repo *MockProjectRepository) *gin.Engine {
	h := NewProjectHandler(specapp.NewProjectService(repo))
	engine := gin.New()
	engine.POST("/projects", h.Create)
	engine.GET("/projects/:id", h.GetByID)
	engine.DELETE("/projects/:id", h.Delete)
	return engine
}

func TestProjectHandlerCreate(t *testing.T) {
	repo := new(MockProjectRepository)
	repo.On("FindByName", mock.Anything, "billing").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*spec.Project")).Return(nil)

	engine := setupProjectRouter(repo)

	body, _ := json.Marshal(map[string]string{"name": "billing", "description": "billing APIs"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", uuid.New().String())
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	repo.AssertExpectations(t)
}

func TestProjectHandlerCreateDuplicateName(t *testing.T) {
	existing, err := spec.NewProject("billing", "", uuid.New())
	require.NoError(t, err)
	repo := new(MockProjectRepository)
	repo.On("FindByName", mock.Anything, "billing").Return(existing, nil)

	engine := setupProjectRouter(repo)

	body, _ := json.Marshal(map[string]string{"name": "billing"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProjectHandlerCreateMissingName(t *testing.T) {
	repo := new(MockProjectRepository)
	engine := setupProjectRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/projects", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandlerGetByID(t *testing.T) {
	project, err := spec.NewProject("billing", "", uuid.New())
	require.NoError(t, err)
	repo := new(MockProjectRepository)
	repo.On("FindByID", mock.Anything, project.ID).Return(project, nil)

	engine := setupProjectRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/projects/"+project.ID.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProjectHandlerGetByIDNotFound(t *testing.T) {
	missing := uuid.New()
	repo := new(MockProjectRepository)
	repo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

	engine := setupProjectRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/projects/"+missing.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandlerGetByIDBadUUID(t *testing.T) {
	repo := new(MockProjectRepository)
	engine := setupProjectRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/projects/not-a-uuid", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestProjectHandlerDelete(t *testing.T) {
	project, err := spec.NewProject("billing", "", uuid.New())
	require.NoError(t, err)
	id := project.ID
	repo := new(MockProjectRepository)
	repo.On("FindByID", mock.Anything, id).Return(project, nil)
	repo.On("Delete", mock.Anything, id).Return(nil)

	engine := setupProjectRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/projects/"+id.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertExpectations(t)
}
