package services

import (
	"context"
	"errors"
	"fmt"

	"snapbook-backend/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

var ErrInvalidPhone = errors.New("invalid phone number")

// Notifier sends a short text to a client.
type Notifier interface {
	Notify(ctx context.Context, to, body string) error
}

const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioNotifier delivers texts over SMS or WhatsApp.
type TwilioNotifier struct {
	api     messageCreator
	from    string
	channel string
	log     *zap.Logger
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	Channel    string
}

func NewTwilioNotifier(cfg TwilioConfig, log *zap.Logger) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newTwilioNotifier(client.Api, cfg, log)
}

func newTwilioNotifier(api messageCreator, cfg TwilioConfig, log *zap.Logger) *TwilioNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	channel := cfg.Channel
	if channel != ChannelWhatsApp {
		channel = ChannelSMS
	}
	return &TwilioNotifier{api: api, from: cfg.From, channel: channel, log: log}
}

func (n *TwilioNotifier) Notify(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !utils.ValidatePhone(to) {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, to)
	}

	to = utils.NormalizePhone(to)
	from := n.from
	if n.channel == ChannelWhatsApp {
		to = "whatsapp:" + to
		from = "whatsapp:" + from
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("send %s message: %w", n.channel, err)
	}
	if resp != nil && resp.Sid != nil {
		n.log.Info("message sent", zap.String("channel", n.channel), zap.String("sid", *resp.Sid))
	} else {
		n.log.Info("message sent, but no SID returned", zap.String("channel", n.channel))
	}
	return nil
}

// LogNotifier only logs. It stands in when Twilio is not configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, to, body string) error {
	n.log.Info("client notification", zap.String("to", to), zap.String("body", body))
	return nil
}
