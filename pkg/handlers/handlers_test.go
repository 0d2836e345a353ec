package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chain_mocks "github.com/BURAK1289/confession-tip/pkg/chain/mocks"
	"github.com/BURAK1289/confession-tip/pkg/feed"
	"github.com/BURAK1289/confession-tip/pkg/models"
	"github.com/BURAK1289/confession-tip/pkg/moderation"
	"github.com/BURAK1289/confession-tip/pkg/ratelimit"
	storage_mocks "github.com/BURAK1289/confession-tip/pkg/storage/mocks"
	"github.com/BURAK1289/confession-tip/pkg/tipping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testConfessionID = "b7a1c2d3-e4f5-4678-9abc-def012345678"

func newTestDeps(mockStorage *storage_mocks.ApiStore) Deps {
	service := tipping.NewService(mockStorage, new(chain_mocks.Verifier), ratelimit.NewMemory(), nil)
	return Deps{
		Store:      mockStorage,
		Tips:       service,
		Classifier: moderation.Static{},
		Hub:        feed.NewHub(),
	}
}

func TestNewRouter(t *testing.T) {
	t.Run("Health", func(t *testing.T) {
		router := NewRouter(newTestDeps(new(storage_mocks.ApiStore)))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ok", rr.Body.String())
	})

	t.Run("Confession Id Reaches Handler", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockStorage.On("GetConfession", mock.Anything, testConfessionID).Once().
			Return(&models.Confession{ID: testConfessionID, Content: "hello"}, nil)
		router := NewRouter(newTestDeps(mockStorage))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/confessions/"+testConfessionID, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Address Reaches Handler", func(t *testing.T) {
		address := "0x1111111111111111111111111111111111111111"
		mockStorage := new(storage_mocks.ApiStore)
		mockStorage.On("EnsureUser", mock.Anything, address).Once().
			Return(&models.UserStats{Address: address}, nil)
		router := NewRouter(newTestDeps(mockStorage))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users/"+address, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Leaderboard Is Not Shadowed By Id Route", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockStorage.On("ListTopConfessions", mock.Anything, int32(20)).Once().
			Return([]models.Confession{}, nil)
		router := NewRouter(newTestDeps(mockStorage))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/confessions/leaderboard", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Unknown Route", func(t *testing.T) {
		router := NewRouter(newTestDeps(new(storage_mocks.ApiStore)))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Feed Route Needs A Hub", func(t *testing.T) {
		deps := newTestDeps(new(storage_mocks.ApiStore))
		deps.Hub = nil
		router := NewRouter(deps)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ws/feed", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Feed Route Registered With Hub", func(t *testing.T) {
		router := NewRouter(newTestDeps(new(storage_mocks.ApiStore)))

		// A plain GET is not a websocket handshake; the route existing means
		// the upgrader answers with its own 400 rather than the router's 404.
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ws/feed", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
