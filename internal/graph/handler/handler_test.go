package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"redart/internal/graph/handler/mocks"
	"redart/internal/graph/models"
	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
	"redart/pkg/platform/middleware/auth"
	"redart/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

type stubValidator struct{ subject string }

func (v stubValidator) ValidateToken(token string) (*auth.JWTClaims, error) {
	if token != "valid" {
		return nil, errors.New("invalid token")
	}
	return &auth.JWTClaims{Subject: v.subject}, nil
}

func newRouter(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	h := New(svc, stubValidator{subject: testutil.Address(0x0c).String()}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return r, svc
}

func TestHandleLink(t *testing.T) {
	derivative, _, _ := testutil.Triple("illustrator", "cover")
	origin, _, _ := testutil.Triple("novelist", "novel")
	body := `{"origin":"` + origin.String() + `"}`

	tests := []struct {
		name   string
		token  string
		body   string
		setup  func(svc *mocks.MockService)
		status int
	}{
		{
			name:  "linked",
			token: "valid",
			body:  body,
			setup: func(svc *mocks.MockService) {
				svc.EXPECT().LinkDerivative(gomock.Any(), derivative, origin).
					Return(&models.Edge{Derivative: derivative, Origin: origin, LinkedBy: testutil.Address(0x0c)}, nil)
			},
			status: http.StatusCreated,
		},
		{
			name:   "missing token",
			body:   body,
			status: http.StatusUnauthorized,
		},
		{
			name:  "duplicate",
			token: "valid",
			body:  body,
			setup: func(svc *mocks.MockService) {
				svc.EXPECT().LinkDerivative(gomock.Any(), derivative, origin).
					Return(nil, dErrors.New(dErrors.CodeEdgeExists, "derivative already linked to origin"))
			},
			status: http.StatusConflict,
		},
		{
			name:  "origin not registered",
			token: "valid",
			body:  body,
			setup: func(svc *mocks.MockService) {
				svc.EXPECT().LinkDerivative(gomock.Any(), derivative, origin).
					Return(nil, dErrors.New(dErrors.CodeOriginNotRegistered, "origin copyright not registered"))
			},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "malformed origin",
			token:  "valid",
			body:   `{"origin":"zz"}`,
			status: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, svc := newRouter(t)
			if tt.setup != nil {
				tt.setup(svc)
			}
			req := httptest.NewRequest(http.MethodPost, "/copyrights/"+derivative.String()+"/origins", strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestHandleRelations(t *testing.T) {
	a, _, _ := testutil.Triple("a", "1")
	b, _, _ := testutil.Triple("b", "2")

	t.Run("origins", func(t *testing.T) {
		r, svc := newRouter(t)
		svc.EXPECT().GetOrigins(gomock.Any(), a).Return([]id.RUID{b}, nil)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/copyrights/"+a.String()+"/origins", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.RelationsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, a, resp.RUID)
		assert.Equal(t, []id.RUID{b}, resp.Related)
	})

	t.Run("derivatives are empty, not null", func(t *testing.T) {
		r, svc := newRouter(t)
		svc.EXPECT().GetDerivatives(gomock.Any(), a).Return([]id.RUID{}, nil)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/copyrights/"+a.String()+"/derivatives", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"related":[]`)
	})

	t.Run("bad key", func(t *testing.T) {
		r, _ := newRouter(t)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/copyrights/0x12/derivatives", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
