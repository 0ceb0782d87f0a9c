package authflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/STAR-173/prms-admin-gateway/domain"
	"github.com/STAR-173/prms-admin-gateway/internal/gateway"
	"github.com/STAR-173/prms-admin-gateway/internal/mocks"
)

type flowFixture struct {
	flow     *Flow
	store    *mocks.MockSessionStore
	nav      *mocks.MockNavigator
	requests *int64
}

func newFlowFixture(t *testing.T, handler http.HandlerFunc) *flowFixture {
	t.Helper()

	var requests int64
	counting := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		handler(w, r)
	})
	srv := httptest.NewServer(counting)
	t.Cleanup(srv.Close)

	store := mocks.NewMockSessionStore()
	nav := mocks.NewMockNavigator(domain.RouteLogin)
	inv := gateway.NewInvalidator(store, nav)
	gw := gateway.NewClient(srv.URL, 5*time.Second, store, inv)

	return &flowFixture{
		flow:     NewFlow(gw, store, nav),
		store:    store,
		nav:      nav,
		requests: &requests,
	}
}

func (f *flowFixture) requestCount() int64 {
	return atomic.LoadInt64(f.requests)
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(`{"message":"Verification code sent"}`))
}

func TestSubmitPhone_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too short", "98765"},
		{"too long", "98765432101"},
		{"empty", ""},
		{"letters only", "abcdefghij"},
		{"nine digits with noise", "(987) 654-321"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFlowFixture(t, okHandler)

			err := f.flow.SubmitPhone(context.Background(), tt.input)

			assert.ErrorIs(t, err, domain.ErrPhoneLength)
			assert.Equal(t, StepPhone, f.flow.Step(), "state unchanged on validation failure")
			assert.EqualValues(t, 0, f.requestCount(), "validation failures never reach the network")
		})
	}
}

func TestSubmitPhone_StripsFormattingBeforeValidation(t *testing.T) {
	f := newFlowFixture(t, okHandler)

	err := f.flow.SubmitPhone(context.Background(), "(987) 654-3210")

	require.NoError(t, err)
	assert.Equal(t, StepOTP, f.flow.Step())
	assert.Equal(t, "9876543210", f.flow.Phone())
	assert.EqualValues(t, 1, f.requestCount())
}

func TestSubmitPhone_ServerFailureStaysInPhone(t *testing.T) {
	f := newFlowFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message":"Please wait before requesting a new code"}`))
	})

	err := f.flow.SubmitPhone(context.Background(), "9876543210")

	var gwErr *gateway.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "Please wait before requesting a new code", gwErr.Message)
	assert.Equal(t, StepPhone, f.flow.Step())
}

func TestSubmitCode_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too short", "12345"},
		{"too long", "1234567"},
		{"non-digit", "12a456"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFlowFixture(t, okHandler)
			require.NoError(t, f.flow.SubmitPhone(context.Background(), "9876543210"))
			before := f.requestCount()

			err := f.flow.SubmitCode(context.Background(), tt.input)

			assert.ErrorIs(t, err, domain.ErrCodeLength)
			assert.Equal(t, StepOTP, f.flow.Step())
			assert.Equal(t, before, f.requestCount())
		})
	}
}

func TestSubmitCode_SuccessPopulatesStoreAndNavigates(t *testing.T) {
	f := newFlowFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/otp/request" {
			okHandler(w, r)
			return
		}

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "9876543210", body["phone"])
		assert.Equal(t, "123456", body["otp"])
		assert.Equal(t, true, body["isStaff"], "staff assertion is mandatory on verify")

		w.Write([]byte(`{"accessToken":"T","user":{"id":"U1","role":"ADMIN"}}`))
	})

	require.NoError(t, f.flow.SubmitPhone(context.Background(), "9876543210"))
	require.NoError(t, f.flow.SubmitCode(context.Background(), "123456"))

	sess := f.store.Current()
	require.NotNil(t, sess)
	assert.Equal(t, "T", sess.Token)
	assert.Equal(t, "U1", sess.UserID)
	assert.Equal(t, domain.RoleAdmin, sess.Role)

	assert.Equal(t, domain.RouteDashboard, f.nav.Current())
	assert.Equal(t, StepPhone, f.flow.Step(), "flow torn down after success")
}

func TestSubmitCode_ServerRejectionStaysInOTP(t *testing.T) {
	f := newFlowFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/otp/request" {
			okHandler(w, r)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid OTP"}`))
	})

	require.NoError(t, f.flow.SubmitPhone(context.Background(), "9876543210"))
	err := f.flow.SubmitCode(context.Background(), "000000")

	var gwErr *gateway.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "Invalid OTP", gwErr.Message)
	assert.Equal(t, StepOTP, f.flow.Step(), "failed verify keeps the flow in OTP")
	assert.Nil(t, f.store.Current())
}

func TestChangeNumber_ResetsToPhoneKeepingNumber(t *testing.T) {
	f := newFlowFixture(t, okHandler)
	require.NoError(t, f.flow.SubmitPhone(context.Background(), "9876543210"))
	before := f.requestCount()

	f.flow.ChangeNumber()

	assert.Equal(t, StepPhone, f.flow.Step())
	assert.Equal(t, "9876543210", f.flow.Phone(), "phone kept for re-editing")
	assert.Equal(t, before, f.requestCount(), "pure UI reset, nothing network-side")
}

func TestSubmit_SecondCallWhileInFlightIsNoOp(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	f := newFlowFixture(t, func(w http.ResponseWriter, r *http.Request) {
		entered <- struct{}{}
		<-release
		okHandler(w, r)
	})

	done := make(chan error, 1)
	go func() {
		done <- f.flow.SubmitPhone(context.Background(), "9876543210")
	}()
	<-entered

	err := f.flow.SubmitPhone(context.Background(), "9876543210")
	assert.ErrorIs(t, err, domain.ErrRequestInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StepOTP, f.flow.Step())
	assert.EqualValues(t, 1, f.requestCount(), "the concurrent submit must not queue a second call")
}

func TestSubmitCode_WrongStepRejected(t *testing.T) {
	f := newFlowFixture(t, okHandler)

	err := f.flow.SubmitCode(context.Background(), "123456")

	assert.ErrorIs(t, err, domain.ErrWrongStep)
	assert.EqualValues(t, 0, f.requestCount())
}
