package services

import (
	"log"
	"os"
	"time"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender delivers a text message to a phone number. Delivery failure must
// never fail the booking that triggered it.
type SMSSender interface {
	SendSMS(to, body string) error
}

// TwilioSender sends SMS through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender builds a sender from TWILIO_* environment variables.
func NewTwilioSender() *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: os.Getenv("TWILIO_ACCOUNT_SID"),
		Password: os.Getenv("TWILIO_AUTHTOKEN"),
	})
	// A slow provider must not hold the booking response open.
	client.SetTimeout(5 * time.Second)
	return &TwilioSender{
		client: client,
		from:   os.Getenv("TWILIO_PHONENUMBER"),
	}
}

func (t *TwilioSender) SendSMS(to, body string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		log.Println("Error sending SMS:", err)
		return err
	}
	return nil
}
