package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"redart/internal/royalty/handler/mocks"
	"redart/internal/royalty/models"
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

// amountEq matches a *big.Int by decimal value.
type amountEq string

func (a amountEq) Matches(x any) bool {
	v, ok := x.(*big.Int)
	return ok && v.String() == string(a)
}

func (a amountEq) String() string { return fmt.Sprintf("amount %s", string(a)) }

type RoyaltyHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
	ruid    id.RUID
}

func TestRoyaltyHandlerSuite(t *testing.T) {
	suite.Run(t, new(RoyaltyHandlerSuite))
}

func (s *RoyaltyHandlerSuite) SetupTest() {
	s.service = mocks.NewMockService(gomock.NewController(s.T()))
	h := New(s.service, stubValidator{subject: testutil.Address(0x01).String()}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	h.Register(s.router)
	s.ruid, _, _ = testutil.Triple("creator", "work")
}

func (s *RoyaltyHandlerSuite) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if authed {
		req.Header.Set("Authorization", "Bearer valid")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RoyaltyHandlerSuite) TestRegister() {
	x, y := testutil.Address(0x0a), testutil.Address(0x0b)
	src, _, _ := testutil.Triple("origin", "work")
	body := fmt.Sprintf(`{"items":[{"receiver":"%s","bps":2000},{"receiver":"%s","bps":1000,"source":"%s"}]}`, x, y, src)
	path := "/royalties/" + s.ruid.String()

	s.Run("registered", func() {
		want := []models.Item{{Receiver: x, BPS: 2000}, {Receiver: y, BPS: 1000, Source: &src}}
		s.service.EXPECT().RegisterRoyaltyList(gomock.Any(), s.ruid, want).
			Return(&models.Chain{RUID: s.ruid, Items: want, RegisteredBy: testutil.Address(0x01)}, nil)

		rec := s.do(http.MethodPost, path, body, true)
		s.Equal(http.StatusCreated, rec.Code, rec.Body.String())

		var got models.Chain
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal(want, got.Items)
	})

	s.Run("unauthenticated", func() {
		rec := s.do(http.MethodPost, path, body, false)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("total over 100% maps to 400", func() {
		s.service.EXPECT().RegisterRoyaltyList(gomock.Any(), s.ruid, gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInvalidRoyaltyTotal, "royalty shares exceed 10000 bps in total"))

		rec := s.do(http.MethodPost, path, body, true)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "invalid_royalty_total")
	})

	s.Run("negative share rejected before the service", func() {
		neg := fmt.Sprintf(`{"items":[{"receiver":"%s","bps":-5}]}`, x)
		rec := s.do(http.MethodPost, path, neg, true)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("duplicate is a conflict", func() {
		s.service.EXPECT().RegisterRoyaltyList(gomock.Any(), s.ruid, gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeAlreadyRegistered, "royalty list already registered"))
		rec := s.do(http.MethodPost, path, body, true)
		s.Equal(http.StatusConflict, rec.Code)
	})
}

func (s *RoyaltyHandlerSuite) TestReads() {
	path := "/royalties/" + s.ruid.String()
	x := testutil.Address(0x0a)

	s.Run("list", func() {
		s.service.EXPECT().GetRoyaltyList(gomock.Any(), s.ruid).
			Return(&models.Chain{RUID: s.ruid, Items: []models.Item{{Receiver: x, BPS: 500}}}, nil)
		rec := s.do(http.MethodGet, path, "", false)
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"bps":500`)
		s.NotContains(rec.Body.String(), `"source"`, "root shares omit the source")
	})

	s.Run("list not found", func() {
		s.service.EXPECT().GetRoyaltyList(gomock.Any(), s.ruid).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "royalty list not registered"))
		rec := s.do(http.MethodGet, path, "", false)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("status", func() {
		s.service.EXPECT().IsRegistered(gomock.Any(), s.ruid).Return(true, nil)
		rec := s.do(http.MethodGet, path+"/status", "", false)
		s.Equal(http.StatusOK, rec.Code)

		var resp models.StatusResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(s.ruid, resp.RUID)
		s.True(resp.Registered)
	})

	s.Run("receivers", func() {
		s.service.EXPECT().GetRoyaltyReceivers(gomock.Any(), s.ruid).
			Return([]id.Address{x}, []id.BPS{500}, nil)
		rec := s.do(http.MethodGet, path+"/receivers", "", false)
		s.Equal(http.StatusOK, rec.Code)

		var resp models.ReceiversResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal([]id.Address{x}, resp.Receivers)
		s.Equal([]id.BPS{500}, resp.BPS)
	})

	s.Run("total", func() {
		s.service.EXPECT().GetTotalRoyaltyAmount(gomock.Any(), s.ruid, amountEq("1000000000000000000")).
			Return(big.NewInt(50000000000000000), nil)
		rec := s.do(http.MethodGet, path+"/total?sale_price=1000000000000000000", "", false)
		s.Equal(http.StatusOK, rec.Code)

		var resp models.AmountResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("50000000000000000", resp.Amount)
		s.Equal("1000000000000000000", resp.SalePrice)
	})

	s.Run("total requires a non-negative price", func() {
		rec := s.do(http.MethodGet, path+"/total?sale_price=-1", "", false)
		s.Equal(http.StatusBadRequest, rec.Code)
		rec = s.do(http.MethodGet, path+"/total", "", false)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("split", func() {
		s.service.EXPECT().Split(gomock.Any(), s.ruid, amountEq("10")).
			Return(&models.Split{
				RUID:        s.ruid,
				SalePrice:   big.NewInt(10),
				Payouts:     []models.Payout{{Receiver: x, BPS: 3333, Amount: big.NewInt(3)}},
				Total:       big.NewInt(3),
				Distributed: big.NewInt(3),
				Drift:       big.NewInt(0),
			}, nil)
		rec := s.do(http.MethodGet, path+"/split?sale_price=10", "", false)
		s.Equal(http.StatusOK, rec.Code)

		var resp models.SplitResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Require().Len(resp.Payouts, 1)
		s.Equal("3", resp.Payouts[0].Amount)
		s.Equal("0", resp.Drift)
	})
}
