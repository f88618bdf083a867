package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"redart/internal/verification"
	"redart/internal/verification/handler/mocks"
	dErrors "redart/pkg/domain-errors"
	"redart/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Verifier

func TestHandleVerify(t *testing.T) {
	ruid, puid, awid := testutil.Triple("test_artist_identity", "artwork_content_hash")
	triple := map[string]string{"ruid": ruid.String(), "puid": puid.String(), "awid": awid.String()}
	owner := testutil.Address(0x01)

	tests := []struct {
		name   string
		req    func(t *testing.T) *http.Request
		setup  func(m *mocks.MockVerifier)
		status int
		code   string
		check  func(t *testing.T, res *verification.Result)
	}{
		{
			name: "registered triple",
			req: func(t *testing.T) *http.Request {
				return testutil.NewJSONRequest(t, http.MethodPost, "/verify", triple)
			},
			setup: func(m *mocks.MockVerifier) {
				m.EXPECT().Verify(gomock.Any(), ruid, puid, awid).
					Return(&verification.Result{RUID: ruid, Registered: true, RegisteredBy: &owner, OpusType: "art"}, nil)
			},
			status: http.StatusOK,
			check: func(t *testing.T, res *verification.Result) {
				assert.True(t, res.Registered)
				assert.Equal(t, owner, *res.RegisteredBy)
				assert.Equal(t, "art", res.OpusType)
			},
		},
		{
			name: "consistent but unregistered",
			req: func(t *testing.T) *http.Request {
				return testutil.NewJSONRequest(t, http.MethodPost, "/verify", triple)
			},
			setup: func(m *mocks.MockVerifier) {
				m.EXPECT().Verify(gomock.Any(), ruid, puid, awid).Return(&verification.Result{RUID: ruid}, nil)
			},
			status: http.StatusOK,
			check: func(t *testing.T, res *verification.Result) {
				assert.False(t, res.Registered)
				assert.Nil(t, res.RegisteredBy)
			},
		},
		{
			name: "mismatch",
			req: func(t *testing.T) *http.Request {
				return testutil.NewJSONRequest(t, http.MethodPost, "/verify", triple)
			},
			setup: func(m *mocks.MockVerifier) {
				m.EXPECT().Verify(gomock.Any(), ruid, puid, awid).
					Return(nil, dErrors.New(dErrors.CodeCopyrightMismatch, "copyright verification failed, RUID is not equal"))
			},
			status: http.StatusUnprocessableEntity,
			code:   string(dErrors.CodeCopyrightMismatch),
		},
		{
			name: "malformed body",
			req: func(t *testing.T) *http.Request {
				return testutil.NewRequestWithBody(t, http.MethodPost, "/verify", `{"ruid":`)
			},
			status: http.StatusBadRequest,
			code:   string(dErrors.CodeBadRequest),
		},
		{
			name: "missing awid",
			req: func(t *testing.T) *http.Request {
				return testutil.NewRequestWithBody(t, http.MethodPost, "/verify", fmt.Sprintf(`{"ruid":"%s","puid":"%s"}`, ruid, puid))
			},
			status: http.StatusBadRequest,
			code:   string(dErrors.CodeInvalidInput),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mocks.NewMockVerifier(gomock.NewController(t))
			if tt.setup != nil {
				tt.setup(m)
			}
			r := chi.NewRouter()
			New(m, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)

			rec := testutil.DoRequest(r, tt.req(t))
			if tt.code != "" {
				testutil.AssertStatusAndError(t, rec, tt.status, tt.code)
				return
			}
			testutil.AssertStatus(t, rec, tt.status)
			if tt.check != nil {
				tt.check(t, testutil.UnmarshalResponse[verification.Result](t, rec))
			}
		})
	}
}
