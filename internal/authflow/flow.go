package authflow

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/STAR-173/prms-admin-gateway/domain"
	"github.com/STAR-173/prms-admin-gateway/internal/gateway"
)

// Step is the login flow's current state.
type Step string

const (
	StepPhone Step = "PHONE"
	StepOTP   Step = "OTP"
)

const (
	phoneDigits = 10
	codeDigits  = 6
)

type requestBody struct {
	Phone string `json:"phone"`
}

type verifyBody struct {
	Phone   string `json:"phone"`
	OTP     string `json:"otp"`
	IsStaff bool   `json:"isStaff"`
}

type verifyResponse struct {
	AccessToken string               `json:"accessToken"`
	User        domain.StaffIdentity `json:"user"`
}

// Flow is the two-step phone+OTP login state machine. One instance per login
// screen; at most one network call in flight at a time — a second submit
// while one is pending is rejected without side effects.
type Flow struct {
	mu       sync.Mutex
	gw       *gateway.Client
	store    domain.SessionStore
	nav      domain.Navigator
	step     Step
	phone    string
	inFlight bool
}

func NewFlow(gw *gateway.Client, store domain.SessionStore, nav domain.Navigator) *Flow {
	return &Flow{gw: gw, store: store, nav: nav, step: StepPhone}
}

// Step returns the flow's current state.
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Phone returns the number accepted at the phone step, empty before that.
func (f *Flow) Phone() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phone
}

// SubmitPhone validates the raw phone input and requests a one-time code for
// it. Non-digits are stripped before validation; anything other than exactly
// 10 digits fails client-side with no network call. On success the flow
// moves to the OTP step.
func (f *Flow) SubmitPhone(ctx context.Context, raw string) error {
	phone := digitsOnly(raw)

	f.mu.Lock()
	if f.step != StepPhone {
		f.mu.Unlock()
		return domain.ErrWrongStep
	}
	if f.inFlight {
		f.mu.Unlock()
		return domain.ErrRequestInFlight
	}
	if len(phone) != phoneDigits {
		f.mu.Unlock()
		return domain.ErrPhoneLength
	}
	f.inFlight = true
	f.mu.Unlock()

	_, err := f.gw.Call(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/otp/request",
		Body:   requestBody{Phone: phone},
		NoAuth: true,
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	if err != nil {
		// Stay in PHONE; the caller surfaces the server's message.
		return err
	}

	f.phone = phone
	f.step = StepOTP
	log.Printf("OTP_REQUESTED: phone=%s", maskPhone(phone))
	return nil
}

// SubmitCode validates the 6-digit code and verifies it against the backend
// with the mandatory staff assertion. On success the credential store is
// populated and the operator is sent to the dashboard; the flow resets. On
// failure the flow stays in OTP and the entered code is not discarded.
func (f *Flow) SubmitCode(ctx context.Context, raw string) error {
	code := strings.TrimSpace(raw)

	f.mu.Lock()
	if f.step != StepOTP {
		f.mu.Unlock()
		return domain.ErrWrongStep
	}
	if f.inFlight {
		f.mu.Unlock()
		return domain.ErrRequestInFlight
	}
	if len(code) != codeDigits || digitsOnly(code) != code {
		f.mu.Unlock()
		return domain.ErrCodeLength
	}
	phone := f.phone
	f.inFlight = true
	f.mu.Unlock()

	resp, err := f.gw.Call(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/otp/verify",
		Body:   verifyBody{Phone: phone, OTP: code, IsStaff: true},
		NoAuth: true,
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	if err != nil {
		return err
	}

	var result verifyResponse
	if err := resp.Decode(&result); err != nil {
		return err
	}

	if err := f.store.Save(ctx, &domain.Session{
		Token:  result.AccessToken,
		UserID: result.User.ID,
		Role:   result.User.Role,
	}); err != nil {
		return err
	}

	log.Printf("LOGIN_SUCCESS: user_id=%s role=%s", result.User.ID, result.User.Role)

	// Flow is torn down; the Session supersedes the challenge.
	f.step = StepPhone
	f.phone = ""
	f.nav.Replace(domain.RouteDashboard)
	return nil
}

// ChangeNumber steps back from OTP to PHONE. Pure UI state reset: nothing is
// sent to the network and the accepted phone number is kept for re-editing.
func (f *Flow) ChangeNumber() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step == StepOTP {
		f.step = StepPhone
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func maskPhone(phone string) string {
	if len(phone) < 4 {
		return "****"
	}
	return "******" + phone[len(phone)-4:]
}
