package stubapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/STAR-173/prms-admin-gateway/domain"
	"github.com/STAR-173/prms-admin-gateway/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubFixture struct {
	router   *gin.Engine
	otpSvc   *OTPService
	tokenSvc *TokenService
	sms      *mocks.MockNotificationService
	redis    *miniredis.Miniredis
}

func newStubFixture(t *testing.T) *stubFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sms := mocks.NewMockNotificationService()
	otpSvc := NewOTPService(sms, client, OTPConfig{
		Length:       6,
		TTL:          5 * time.Minute,
		MaxAttempts:  3,
		ResendWindow: 60 * time.Second,
	})
	tokenSvc := NewTokenService("test-secret", "prms-admin", 15*time.Minute)
	ah := NewAuthHandlers(otpSvc, tokenSvc, NewStaffDirectory())

	return &stubFixture{
		router:   BuildRouter(ah, tokenSvc),
		otpSvc:   otpSvc,
		tokenSvc: tokenSvc,
		sms:      sms,
		redis:    mr,
	}
}

func (f *stubFixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// sentCode pulls the 6-digit code out of the last delivered SMS.
func (f *stubFixture) sentCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.sms.Sent)
	msg := f.sms.Sent[len(f.sms.Sent)-1].Message
	idx := strings.Index(msg, ": ")
	require.GreaterOrEqual(t, idx, 0)
	return msg[idx+2 : idx+8]
}

func TestRequestOTP_KnownStaff(t *testing.T) {
	f := newStubFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/auth/otp/request", `{"phone":"9876543210"}`, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, f.sms.Sent, 1)
}

func TestRequestOTP_UnknownPhone(t *testing.T) {
	f := newStubFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/auth/otp/request", `{"phone":"0000000000"}`, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No staff account")
	assert.Empty(t, f.sms.Sent)
}

func TestRequestOTP_Throttled(t *testing.T) {
	f := newStubFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/auth/otp/request", `{"phone":"9876543210"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPost, "/api/v1/auth/otp/request", `{"phone":"9876543210"}`, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestVerifyOTP_Success(t *testing.T) {
	f := newStubFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/auth/otp/request", `{"phone":"9876543210"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	code := f.sentCode(t)

	rec = f.do(http.MethodPost, "/api/v1/auth/otp/verify",
		`{"phone":"9876543210","otp":"`+code+`","isStaff":true}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "stf_1001", resp.User.ID)
	assert.Equal(t, domain.RoleAdmin, resp.User.Role)

	claims, err := f.tokenSvc.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "stf_1001", claims.UserID)
}

func TestVerifyOTP_StaffFlagMandatory(t *testing.T) {
	f := newStubFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/auth/otp/request", `{"phone":"9876543210"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	code := f.sentCode(t)

	rec = f.do(http.MethodPost, "/api/v1/auth/otp/verify",
		`{"phone":"9876543210","otp":"`+code+`","isStaff":false}`, "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "restricted to staff")
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	f := newStubFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/auth/otp/request", `{"phone":"9876543210"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPost, "/api/v1/auth/otp/verify",
		`{"phone":"9876543210","otp":"000000","isStaff":true}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid OTP")
}

func TestVerifyOTP_NoPendingCode(t *testing.T) {
	f := newStubFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/auth/otp/verify",
		`{"phone":"9876543210","otp":"123456","isStaff":true}`, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProtectedEndpoints_RequireBearer(t *testing.T) {
	f := newStubFixture(t)

	paths := []string{
		"/api/v1/admin/houses/list",
		"/api/v1/admin/players/list",
		"/api/v1/admin/ledger/list",
		"/api/v1/auth/me",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := f.do(http.MethodGet, path, "", "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			rec = f.do(http.MethodGet, path, "", "garbage-token")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestProtectedEndpoints_ExpiredTokenIs401(t *testing.T) {
	f := newStubFixture(t)

	expiredMinter := NewTokenService("test-secret", "prms-admin", -time.Minute)
	token, err := expiredMinter.GenerateAccessToken("stf_1001", domain.RoleAdmin, "sess_x")
	require.NoError(t, err)

	rec := f.do(http.MethodGet, "/api/v1/admin/houses/list", "", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedEndpoints_ValidTokenAdmits(t *testing.T) {
	f := newStubFixture(t)

	token, err := f.tokenSvc.GenerateAccessToken("stf_1001", domain.RoleAdmin, "sess_x")
	require.NoError(t, err)

	rec := f.do(http.MethodGet, "/api/v1/admin/houses/list", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Riverside Club")

	rec = f.do(http.MethodGet, "/api/v1/auth/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stf_1001")
}
