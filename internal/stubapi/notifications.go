package stubapi

import (
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/STAR-173/prms-admin-gateway/domain"
)

// TwilioService delivers OTP codes by SMS. Without configured credentials it
// logs the message instead, which is what local development runs on.
type TwilioService struct {
	client     *twilio.RestClient
	fromNumber string
}

func NewTwilioService(accountSID, authToken, fromNumber string) *TwilioService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioService{
		client:     client,
		fromNumber: fromNumber,
	}
}

func (t *TwilioService) SendSMS(to, message string) error {
	if t.fromNumber == "" {
		log.Printf("MOCK_SMS: to=%s message=%q", to, message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}

var _ domain.NotificationService = (*TwilioService)(nil)
