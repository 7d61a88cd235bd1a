package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/handler"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/service"
	"moviehub/internal/microservices/http-api/templates"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- MOCK SERVICE ---

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) GetAll(ctx context.Context) ([]models.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Movie), args.Error(1)
}

func (m *MockMovieService) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	args := m.Called(ctx, id)
	// Handle nil return safely
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieService) Create(ctx context.Context, movie *models.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockMovieService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- SETUP ---

func setupRouter(t *testing.T, mockService *MockMovieService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := templates.Parse()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	h := handler.NewMovieHandler(mockService, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.RegisterRoutes(r)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// --- TESTS ---

func TestMovieHandler_Home(t *testing.T) {
	r := setupRouter(t, new(MockMovieService))

	w := get(r, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "home page!", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestMovieHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockMovieService)
		r := setupRouter(t, mockService)

		mockService.On("GetAll", mock.Anything).Return([]models.Movie{
			{ID: 5, Title: "Jaws", Year: 1998},
			{ID: 6, Title: "Sharknado", Year: 2001},
		}, nil).Once()

		w := get(r, "/movies")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), `<a href="/movies/5">Jaws</a> (1998)`)
		assert.Contains(t, w.Body.String(), `<a href="/movies/6">Sharknado</a> (2001)`)
	})

	t.Run("Empty", func(t *testing.T) {
		mockService := new(MockMovieService)
		r := setupRouter(t, mockService)
		mockService.On("GetAll", mock.Anything).Return([]models.Movie{}, nil).Once()

		w := get(r, "/movies")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "No movies yet.")
	})

	t.Run("StoreFailure", func(t *testing.T) {
		mockService := new(MockMovieService)
		r := setupRouter(t, mockService)
		mockService.On("GetAll", mock.Anything).Return(nil, errors.New("db down")).Once()

		w := get(r, "/movies")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})
}

func TestMovieHandler_Get(t *testing.T) {
	mockService := new(MockMovieService)
	r := setupRouter(t, mockService)

	t.Run("Success", func(t *testing.T) {
		mockService.On("GetByID", mock.Anything, int64(7)).Return(&models.Movie{ID: 7, Title: "The Meg", Year: 2010}, nil).Once()

		w := get(r, "/movies/7")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `<h1 class="title">The Meg</h1>`)
		assert.Contains(t, w.Body.String(), `<p class="year">2010</p>`)
		assert.Contains(t, w.Body.String(), `action="/movies/7/delete"`)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService.On("GetByID", mock.Anything, int64(999)).Return(nil, service.ErrMovieNotFound).Once()

		w := get(r, "/movies/999")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Movie does not exist")
	})

	t.Run("InvalidID", func(t *testing.T) {
		w := get(r, "/movies/abc")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		mockService.On("GetByID", mock.Anything, int64(8)).Return(nil, errors.New("timeout")).Once()

		w := get(r, "/movies/8")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	mockService.AssertExpectations(t)
}

func TestMovieHandler_AddForm(t *testing.T) {
	r := setupRouter(t, new(MockMovieService))

	w := get(r, "/movies/add")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<form method="post" action="/movies/add">`)
}

func TestMovieHandler_Add(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockMovieService)
		r := setupRouter(t, mockService)

		mockService.On("Create", mock.Anything, mock.MatchedBy(func(m *models.Movie) bool {
			return m.Title == "Jaws" && m.Year == 1975
		})).Return(nil).Once()

		w := postForm(r, "/movies/add", url.Values{"title": {"Jaws"}, "year": {"1975"}})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/movies", w.Header().Get("Location"))
		mockService.AssertExpectations(t)
	})

	incomplete := map[string]url.Values{
		"MissingTitle":   {"year": {"1975"}},
		"EmptyTitle":     {"title": {""}, "year": {"1975"}},
		"MissingYear":    {"title": {"Jaws"}},
		"NonNumericYear": {"title": {"Jaws"}, "year": {"nineteen"}},
		"Nothing":        {},
	}
	for name, form := range incomplete {
		t.Run(name, func(t *testing.T) {
			mockService := new(MockMovieService)
			r := setupRouter(t, mockService)

			w := postForm(r, "/movies/add", form)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, w.Header().Get("Location"))
			assert.Contains(t, w.Body.String(), `action="/movies/add"`)
			mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("BlankTitleRejectedByService", func(t *testing.T) {
		mockService := new(MockMovieService)
		r := setupRouter(t, mockService)
		mockService.On("Create", mock.Anything, mock.Anything).Return(service.ErrInvalidMovie).Once()

		w := postForm(r, "/movies/add", url.Values{"title": {"   "}, "year": {"1975"}})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `action="/movies/add"`)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		mockService := new(MockMovieService)
		r := setupRouter(t, mockService)
		mockService.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

		w := postForm(r, "/movies/add", url.Values{"title": {"Jaws"}, "year": {"1975"}})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestMovieHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockMovieService)
		r := setupRouter(t, mockService)
		mockService.On("Delete", mock.Anything, int64(3)).Return(nil).Once()

		w := postForm(r, "/movies/3/delete", url.Values{})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/movies", w.Header().Get("Location"))
		mockService.AssertExpectations(t)
	})

	t.Run("ViaGet", func(t *testing.T) {
		mockService := new(MockMovieService)
		r := setupRouter(t, mockService)
		mockService.On("Delete", mock.Anything, int64(4)).Return(nil).Once()

		w := get(r, "/movies/4/delete")
		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockMovieService)
		r := setupRouter(t, mockService)
		mockService.On("Delete", mock.Anything, int64(404)).Return(service.ErrMovieNotFound).Once()

		w := postForm(r, "/movies/404/delete", url.Values{})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Movie does not exist")
	})

	t.Run("InvalidID", func(t *testing.T) {
		mockService := new(MockMovieService)
		r := setupRouter(t, mockService)

		w := postForm(r, "/movies/-1/delete", url.Values{})
		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		mockService := new(MockMovieService)
		r := setupRouter(t, mockService)
		mockService.On("Delete", mock.Anything, int64(5)).Return(errors.New("locked")).Once()

		w := postForm(r, "/movies/5/delete", url.Values{})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestMovieHandler_ListJSON(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockMovieService)
		r := setupRouter(t, mockService)
		mockService.On("GetAll", mock.Anything).Return([]models.Movie{
			{ID: 1, Title: "Jaws", Year: 1975},
			{ID: 2, Title: "The Meg", Year: 2018},
		}, nil).Once()

		w := get(r, "/movies/json")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

		var response dto.MovieListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, []dto.MovieJSON{{Title: "Jaws", Year: 1975}, {Title: "The Meg", Year: 2018}}, response.Movies)
		assert.NotContains(t, w.Body.String(), `"id"`)
	})

	t.Run("Empty", func(t *testing.T) {
		mockService := new(MockMovieService)
		r := setupRouter(t, mockService)
		mockService.On("GetAll", mock.Anything).Return([]models.Movie{}, nil).Once()

		w := get(r, "/movies/json")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"movies": []}`, w.Body.String())
	})

	t.Run("StoreFailure", func(t *testing.T) {
		mockService := new(MockMovieService)
		r := setupRouter(t, mockService)
		mockService.On("GetAll", mock.Anything).Return(nil, errors.New("db down")).Once()

		w := get(r, "/movies/json")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error": "internal server error"}`, w.Body.String())
	})
}
