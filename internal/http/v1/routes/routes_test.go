package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/janisto/travel-profiles/internal/platform/auth"
	applog "github.com/janisto/travel-profiles/internal/platform/logging"
	"github.com/janisto/travel-profiles/internal/platform/mail"
	appmiddleware "github.com/janisto/travel-profiles/internal/platform/middleware"
	"github.com/janisto/travel-profiles/internal/platform/password"
	"github.com/janisto/travel-profiles/internal/platform/respond"
	"github.com/janisto/travel-profiles/internal/platform/storage"
	profilerepo "github.com/janisto/travel-profiles/internal/repository/profile"
	travellerrepo "github.com/janisto/travel-profiles/internal/repository/traveller"
	profilesvc "github.com/janisto/travel-profiles/internal/service/profile"
	"github.com/janisto/travel-profiles/internal/service/recovery"
	travellersvc "github.com/janisto/travel-profiles/internal/service/traveller"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	tokens, err := auth.NewIssuer(auth.Config{
		Key:               "0123456789abcdef0123456789abcdef",
		Issuer:            "test",
		Audience:          "test",
		Subject:           "test",
		ExpirationMinutes: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	hasher := password.NewHasher(bcrypt.MinCost)
	profiles := profilerepo.NewMockRepository()

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(""),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("RoutesTest", "test"))
	Register(api, Services{
		Profiles:      profilesvc.NewManager(profiles, storage.NewMockStore(), hasher, tokens),
		Travellers:    travellersvc.NewManager(travellerrepo.NewMockRepository()),
		Recovery:      recovery.NewService(profiles, hasher, &mail.MockMailer{}),
		MaxImageBytes: 1 << 20,
	})
	return router
}

func TestRegisterRoutes(t *testing.T) {
	router := newTestRouter(t)
	tests := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/api/UserProfile/All", "", http.StatusOK},
		{http.MethodGet, "/api/AdditionalTravellers", "", http.StatusOK},
		{http.MethodPost, "/api/ForgotPassword", `{"email":"nobody@example.com"}`, http.StatusNotFound},
		{http.MethodGet, "/api/Unknown", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			req.Header.Set(chimiddleware.RequestIDHeader, "routes-test")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, resp.Code, resp.Body.String())
			}
		})
	}
}

func TestRegisterCBORResponse(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/UserProfile/All", nil)
	req.Header.Set("Accept", "application/cbor")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/cbor" {
		t.Fatalf("expected application/cbor, got %s", ct)
	}
}
