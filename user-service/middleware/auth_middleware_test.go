package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	utils "user-service-backend/shared/utils/auth"
	"user-service-backend/shared/utils/cache"
)

type fakeLedger struct {
	revoked map[string]bool
	err     error
	calls   int
}

func (f *fakeLedger) IsRevoked(token string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[token], nil
}

type fakeCache struct {
	entries map[string]bool
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]bool)}
}

func (f *fakeCache) Get(token string) (bool, bool) {
	revoked, ok := f.entries[token]
	return revoked, ok
}

func (f *fakeCache) Set(token string, revoked bool) {
	f.entries[token] = revoked
	f.sets++
}

type errorBody struct {
	Message   string `json:"message"`
	ErrorCode int    `json:"errorCode"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body %q: %v", w.Body.String(), err)
	}
	return body
}

func newAuthRouter(ledger RevocationChecker, revocations cache.RevocationCache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(ledger, revocations), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":   c.GetUint(ContextUserID),
			"userUuid": c.GetString(ContextUserUUID),
			"roleId":   c.GetInt(ContextRoleID),
		})
	})
	return router
}

func doProtected(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMissingHeader(t *testing.T) {
	router := newAuthRouter(&fakeLedger{}, newFakeCache())

	w := doProtected(router, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body := decodeError(t, w); body.ErrorCode != 4001 {
		t.Errorf("expected error code 4001, got %d", body.ErrorCode)
	}
}

func TestAuthMalformedHeader(t *testing.T) {
	router := newAuthRouter(&fakeLedger{}, newFakeCache())

	for _, header := range []string{"Token abc", "Bearer", "Bearer a b"} {
		w := doProtected(router, header)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%q: expected 401, got %d", header, w.Code)
			continue
		}
		if body := decodeError(t, w); body.ErrorCode != 4002 {
			t.Errorf("%q: expected error code 4002, got %d", header, body.ErrorCode)
		}
	}
}

func TestAuthValidToken(t *testing.T) {
	userUUID := uuid.New()
	token, err := utils.GenerateJWT(userUUID, 7, 3)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	ledger := &fakeLedger{revoked: map[string]bool{}}
	revocations := newFakeCache()
	router := newAuthRouter(ledger, revocations)

	w := doProtected(router, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var claims struct {
		UserID   uint   `json:"userId"`
		UserUUID string `json:"userUuid"`
		RoleID   int    `json:"roleId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &claims); err != nil {
		t.Fatalf("decoding claims: %v", err)
	}
	if claims.UserID != 7 || claims.UserUUID != userUUID.String() || claims.RoleID != 3 {
		t.Errorf("unexpected claims in context: %+v", claims)
	}

	// The negative ledger answer must have been cached.
	if revoked, ok := revocations.Get(token); !ok || revoked {
		t.Errorf("expected cached revoked=false, got revoked=%v ok=%v", revoked, ok)
	}
}

func TestAuthSchemeCaseInsensitive(t *testing.T) {
	token, err := utils.GenerateJWT(uuid.New(), 7, 3)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	router := newAuthRouter(&fakeLedger{}, newFakeCache())

	w := doProtected(router, "bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for lowercase scheme, got %d", w.Code)
	}
}

func TestAuthRevokedViaCache(t *testing.T) {
	token, err := utils.GenerateJWT(uuid.New(), 7, 3)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	ledger := &fakeLedger{}
	revocations := newFakeCache()
	revocations.Set(token, true)
	router := newAuthRouter(ledger, revocations)

	w := doProtected(router, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body := decodeError(t, w); body.ErrorCode != 4003 {
		t.Errorf("expected error code 4003, got %d", body.ErrorCode)
	}
	if ledger.calls != 0 {
		t.Errorf("cache hit must not reach the ledger, got %d calls", ledger.calls)
	}
}

func TestAuthRevokedViaLedgerPopulatesCache(t *testing.T) {
	token, err := utils.GenerateJWT(uuid.New(), 7, 3)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	ledger := &fakeLedger{revoked: map[string]bool{token: true}}
	revocations := newFakeCache()
	router := newAuthRouter(ledger, revocations)

	w := doProtected(router, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body := decodeError(t, w); body.ErrorCode != 4003 {
		t.Errorf("expected error code 4003, got %d", body.ErrorCode)
	}
	if revoked, ok := revocations.Get(token); !ok || !revoked {
		t.Errorf("expected ledger answer cached, got revoked=%v ok=%v", revoked, ok)
	}

	// Second attempt is served from the cache.
	doProtected(router, "Bearer "+token)
	if ledger.calls != 1 {
		t.Errorf("expected a single ledger lookup, got %d", ledger.calls)
	}
}

func TestAuthLedgerErrorFailsClosed(t *testing.T) {
	token, err := utils.GenerateJWT(uuid.New(), 7, 3)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	ledger := &fakeLedger{err: errors.New("connection refused")}
	router := newAuthRouter(ledger, newFakeCache())

	w := doProtected(router, "Bearer "+token)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the ledger is unreachable, got %d", w.Code)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	router := newAuthRouter(&fakeLedger{}, newFakeCache())

	w := doProtected(router, "Bearer not.a.jwt")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body := decodeError(t, w); body.ErrorCode != 4004 {
		t.Errorf("expected error code 4004, got %d", body.ErrorCode)
	}
}

func TestAuthRevocationCheckedBeforeSignature(t *testing.T) {
	// A revoked token that would also fail verification reports the
	// revocation, not the invalid signature.
	ledger := &fakeLedger{revoked: map[string]bool{"not.a.jwt": true}}
	router := newAuthRouter(ledger, newFakeCache())

	w := doProtected(router, "Bearer not.a.jwt")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body := decodeError(t, w); body.ErrorCode != 4003 {
		t.Errorf("expected error code 4003, got %d", body.ErrorCode)
	}
}
