package authentication

import (
	"errors"
	"os"

	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
)

func verifyClient() *twilio.RestClient {
	return twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: os.Getenv("TWILIO_ACCOUNT_SID"),
		Password: os.Getenv("TWILIO_AUTHTOKEN"),
	})
}

// SendOTP starts a Twilio Verify SMS challenge for the phone number.
func SendOTP(phoneNumber string) error {
	client := verifyClient()

	params := verify.CreateVerificationParams{}
	params.SetTo(phoneNumber)
	params.SetChannel("sms")

	if _, err := client.VerifyV2.CreateVerification(os.Getenv("TWILIO_SERVICE_ID"), &params); err != nil {
		return err
	}
	return nil
}

// CheckOTP verifies the code the user typed against Twilio Verify.
func CheckOTP(phoneNumber, code string) error {
	client := verifyClient()

	params := verify.CreateVerificationCheckParams{}
	params.SetTo(phoneNumber)
	params.SetCode(code)

	response, err := client.VerifyV2.CreateVerificationCheck(os.Getenv("TWILIO_SERVICE_ID"), &params)
	if err != nil {
		return err
	}
	if response.Status == nil || *response.Status != "approved" {
		return errors.New("wrong OTP provided")
	}
	return nil
}
