package sms

import (
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"lucky-tours-api/internal/utils"
)

type SMSConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

func LoadSMSConfig() SMSConfig {
	return SMSConfig{
		AccountSID: utils.GetConfig("TWILIO_ACCOUNT_SID"),
		AuthToken:  utils.GetConfig("TWILIO_AUTH_TOKEN"),
		FromNumber: utils.GetConfig("TWILIO_PHONE_NUMBER"),
	}
}

func SendSMS(phone string, message string) error {
	smsConfig := LoadSMSConfig()

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: smsConfig.AccountSID,
		Password: smsConfig.AuthToken,
	})

	params := &twilioApi.CreateMessageParams{}
	params.SetBody(message)
	params.SetFrom(smsConfig.FromNumber)
	params.SetTo(phone)

	_, err := client.Api.CreateMessage(params)
	return err
}
