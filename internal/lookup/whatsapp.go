package lookup

import (
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/mbiancareli/studio-manager/internal/httperr"
	"github.com/mbiancareli/studio-manager/internal/metrics"
)

// SendResult reports how a message went out: SID when the provider
// accepted it, Link when the caller has to fall back to a wa.me URL.
type SendResult struct {
	SID  string `json:"sid,omitempty"`
	Link string `json:"link,omitempty"`
}

type WhatsAppSender struct {
	client *twilio.RestClient
	from   string
	log    zerolog.Logger
}

// NewWhatsAppSender builds the sender. With empty credentials the
// provider stays nil and every send degrades to link generation.
func NewWhatsAppSender(accountSID, authToken, from string, log zerolog.Logger) *WhatsAppSender {
	s := &WhatsAppSender{from: from, log: log}

	if accountSID != "" && authToken != "" && from != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		})
	}

	return s
}

// Link builds a manually-constructed wa.me link for the given phone and
// message. Phones need at least 10 digits (DDD + number).
func Link(phone, message string) (string, error) {
	digits := onlyDigits(phone)
	if len(digits) < 10 {
		return "", httperr.ErrBusiness("invalid_phone")
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(message)), nil
}

// Send delivers a WhatsApp message through the provider, falling back to
// a wa.me link when the provider is unconfigured or unreachable.
func (s *WhatsAppSender) Send(phone, message string) (*SendResult, error) {
	digits := onlyDigits(phone)
	if len(digits) < 10 {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	if s.client == nil {
		s.log.Warn().Msg("whatsapp provider not configured, returning link")
		return s.linkResult(phone, message)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:+" + digits)
	params.SetFrom("whatsapp:" + s.from)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		s.log.Error().Err(err).Str("phone", digits).Msg("whatsapp send failed, returning link")
		metrics.IncLookupFailure("whatsapp")
		return s.linkResult(phone, message)
	}

	result := &SendResult{}
	if resp.Sid != nil {
		result.SID = *resp.Sid
	}
	s.log.Info().Str("phone", digits).Str("sid", result.SID).Msg("whatsapp message sent")
	return result, nil
}

func (s *WhatsAppSender) linkResult(phone, message string) (*SendResult, error) {
	link, err := Link(phone, message)
	if err != nil {
		return nil, err
	}
	return &SendResult{Link: link}, nil
}
