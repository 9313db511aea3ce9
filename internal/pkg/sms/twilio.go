package sms

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioGateway implements Gateway using the Twilio REST API.
type TwilioGateway struct {
	client     *twilio.RestClient
	fromNumber string
	logger     zerolog.Logger
}

// NewTwilioGateway creates a Twilio-backed SMS gateway. When fromNumber is
// empty the gateway runs in development mode and logs messages instead of
// sending them.
func NewTwilioGateway(accountSID, authToken, fromNumber string, logger zerolog.Logger) *TwilioGateway {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioGateway{
		client:     client,
		fromNumber: fromNumber,
		logger:     logger,
	}
}

// Send delivers a text message via Twilio.
func (g *TwilioGateway) Send(to, message string) error {
	if g.fromNumber == "" {
		g.logger.Info().Str("to", to).Str("message", message).Msg("SMS gateway not configured, logging message instead")
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(g.fromNumber)
	params.SetBody(message)

	if _, err := g.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return nil
}
