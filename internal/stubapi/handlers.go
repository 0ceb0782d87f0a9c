package stubapi

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/STAR-173/prms-admin-gateway/domain"
)

// AuthHandlers implements the backend side of the OTP login contract.
type AuthHandlers struct {
	otpSvc    domain.OTPService
	tokenSvc  domain.TokenService
	directory domain.StaffDirectory
}

func NewAuthHandlers(otpSvc domain.OTPService, tokenSvc domain.TokenService, directory domain.StaffDirectory) *AuthHandlers {
	return &AuthHandlers{
		otpSvc:    otpSvc,
		tokenSvc:  tokenSvc,
		directory: directory,
	}
}

// OTPRequestBody is the code-request payload.
type OTPRequestBody struct {
	Phone string `json:"phone" binding:"required"`
}

// OTPVerifyBody is the verification payload. IsStaff is mandatory: this
// login path is for staff accounts only, distinct from any player login.
type OTPVerifyBody struct {
	Phone   string `json:"phone" binding:"required"`
	OTP     string `json:"otp" binding:"required"`
	IsStaff bool   `json:"isStaff"`
}

// RequestOTP handles POST /auth/otp/request.
func (h *AuthHandlers) RequestOTP(c *gin.Context) {
	var req OTPRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if _, err := h.directory.FindByPhone(c.Request.Context(), req.Phone); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No staff account for this phone number"})
		return
	}

	if canResend, waitTime, _ := h.otpSvc.CanResend(c.Request.Context(), req.Phone); !canResend {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"message": "Please wait before requesting a new code",
			"retryIn": waitTime,
		})
		return
	}

	if _, err := h.otpSvc.Generate(c.Request.Context(), req.Phone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send verification code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// VerifyOTP handles POST /auth/otp/verify. Success mints an access token and
// returns it with the staff identity.
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if !req.IsStaff {
		c.JSON(http.StatusForbidden, gin.H{"message": "This login is restricted to staff accounts"})
		return
	}

	identity, err := h.directory.FindByPhone(c.Request.Context(), req.Phone)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "This login is restricted to staff accounts"})
		return
	}

	valid, err := h.otpSvc.Verify(c.Request.Context(), req.Phone, req.OTP)
	if err != nil {
		switch err {
		case domain.ErrOTPNotFound:
			c.JSON(http.StatusNotFound, gin.H{"message": "No pending code for this number"})
		case domain.ErrOTPMaxAttempts:
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Maximum attempts exceeded"})
		case domain.ErrOTPInvalid:
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Verification failed"})
		}
		return
	}
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP"})
		return
	}

	sessionID := "sess_" + uuid.NewString()
	token, err := h.tokenSvc.GenerateAccessToken(identity.ID, identity.Role, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to issue token"})
		return
	}

	log.Printf("STAFF_LOGIN: user_id=%s role=%s session_id=%s", identity.ID, identity.Role, sessionID)

	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"user": gin.H{
			"id":   identity.ID,
			"role": identity.Role,
		},
	})
}

// Me handles GET /auth/me for authenticated callers.
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, _ := c.Get("user_id")
	role, _ := c.Get("user_role")
	c.JSON(http.StatusOK, gin.H{
		"id":   userID,
		"role": role,
	})
}
