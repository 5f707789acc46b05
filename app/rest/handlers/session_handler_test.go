package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"willvault-auth/app/domain"
	mock_port "willvault-auth/app/mocks"
	"willvault-auth/app/rest/handlers"
	"willvault-auth/app/rest/middleware"
	"willvault-auth/app/utils/logger"
)

func newSessionHandler(t *testing.T, resolver *mock_port.MockIdentityResolver, sessions *mock_port.MockSessionProvider) *handlers.SessionHandler {
	t.Helper()
	testLogger, err := logger.New("debug")
	require.NoError(t, err)
	return handlers.NewSessionHandler(testRegistry(t, resolver, sessions), testLogger)
}

func getSession(t *testing.T, handler echo.HandlerFunc, method, target string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, middleware.IdentityContext()(handler)(c))
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) handlers.SessionResponse {
	t.Helper()
	var resp handlers.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func withCookie(req *http.Request) {
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "session-token"})
}

func TestSessionHandler_Me(t *testing.T) {
	identity := domain.NewSessionIdentity(uuid.New(), "alice@example.com", "Alice", "Smith", domain.UserRoleAdmin)

	t.Run("resolved identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := mock_port.NewMockIdentityResolver(ctrl)
		resolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any()).
			Return(identity, nil)

		handler := newSessionHandler(t, resolver, mock_port.NewMockSessionProvider(ctrl))
		rec := getSession(t, handler.Me, http.MethodGet, "/v1/session/me", withCookie)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeSession(t, rec)
		assert.True(t, resp.Authenticated)
		require.NotNil(t, resp.User)
		assert.Equal(t, "alice@example.com", resp.User.Email)
		assert.Equal(t, "Alice Smith", resp.User.DisplayName)
		assert.True(t, resp.User.IsAdmin)
	})

	t.Run("no session renders logged out", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := mock_port.NewMockIdentityResolver(ctrl)
		resolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrUnauthenticated)

		handler := newSessionHandler(t, resolver, mock_port.NewMockSessionProvider(ctrl))
		rec := getSession(t, handler.Me, http.MethodGet, "/v1/session/me", withCookie)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeSession(t, rec)
		assert.False(t, resp.Authenticated)
		assert.Nil(t, resp.User)
	})

	t.Run("resolver outage surfaces as bad gateway", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := mock_port.NewMockIdentityResolver(ctrl)
		resolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any()).
			Return(nil, assert.AnError)

		handler := newSessionHandler(t, resolver, mock_port.NewMockSessionProvider(ctrl))
		rec := getSession(t, handler.Me, http.MethodGet, "/v1/session/me", withCookie)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "SESSION_RESOLUTION_FAILED", decodeError(t, rec).Code)
	})

	t.Run("second request for the same session hits the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := mock_port.NewMockIdentityResolver(ctrl)
		resolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any()).
			Return(identity, nil).
			Times(1)

		handler := newSessionHandler(t, resolver, mock_port.NewMockSessionProvider(ctrl))

		for i := 0; i < 2; i++ {
			rec := getSession(t, handler.Me, http.MethodGet, "/v1/session/me", withCookie)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, decodeSession(t, rec).Authenticated)
		}
	})
}

func TestSessionHandler_Refresh(t *testing.T) {
	identity := domain.NewSessionIdentity(uuid.New(), "alice@example.com", "Alice", "Smith", domain.UserRoleUser)

	t.Run("refresh resolves again despite a cached value", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := mock_port.NewMockIdentityResolver(ctrl)
		resolver.EXPECT().
			Resolve(gomock.Any(), gomock.Any()).
			Return(identity, nil).
			Times(2)

		handler := newSessionHandler(t, resolver, mock_port.NewMockSessionProvider(ctrl))

		rec := getSession(t, handler.Me, http.MethodGet, "/v1/session/me", withCookie)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = getSession(t, handler.Refresh, http.MethodPost, "/v1/session/refresh", withCookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decodeSession(t, rec).Authenticated)
	})

	t.Run("refresh after session revocation renders logged out", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := mock_port.NewMockIdentityResolver(ctrl)
		gomock.InOrder(
			resolver.EXPECT().
				Resolve(gomock.Any(), gomock.Any()).
				Return(identity, nil),
			resolver.EXPECT().
				Resolve(gomock.Any(), gomock.Any()).
				Return(nil, domain.ErrUnauthenticated),
		)

		handler := newSessionHandler(t, resolver, mock_port.NewMockSessionProvider(ctrl))

		rec := getSession(t, handler.Me, http.MethodGet, "/v1/session/me", withCookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decodeSession(t, rec).Authenticated)

		rec = getSession(t, handler.Refresh, http.MethodPost, "/v1/session/refresh", withCookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, decodeSession(t, rec).Authenticated)
	})
}
