package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// DeliveryError reports a message the Bot API did not accept.
type DeliveryError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("send message: %v", e.Err)
	}
	return fmt.Sprintf("send message: status=%d: %v", e.StatusCode, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// NotifierOptions overrides transport details; zero values use the Bot API defaults.
type NotifierOptions struct {
	// APIEndpoint is a format string taking the token and the method name.
	APIEndpoint string
	Client      tgbotapi.HTTPClient
}

// Notifier posts briefs to a single chat.
type Notifier struct {
	api      *tgbotapi.BotAPI
	recorder *recordingClient
	chatID   string
	logger   *zap.Logger
}

// NewNotifier constructs a notifier for chatID. Unlike tgbotapi.NewBotAPI it does
// not call getMe, so no request is made until Send.
func NewNotifier(token, chatID string, opts NotifierOptions, logger *zap.Logger) (*Notifier, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("bot token is empty")
	}
	if strings.TrimSpace(chatID) == "" {
		return nil, fmt.Errorf("chat id is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.APIEndpoint == "" {
		opts.APIEndpoint = tgbotapi.APIEndpoint
	}
	if opts.Client == nil {
		// No timeout: the send is allowed to take as long as the API needs.
		opts.Client = &http.Client{}
	}

	recorder := &recordingClient{next: opts.Client}
	api := &tgbotapi.BotAPI{
		Token:  token,
		Client: recorder,
	}
	api.SetAPIEndpoint(opts.APIEndpoint)

	return &Notifier{
		api:      api,
		recorder: recorder,
		chatID:   chatID,
		logger:   logger,
	}, nil
}

// Send posts text with HTML parse mode. Any failure is returned as *DeliveryError.
func (n *Notifier) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return &DeliveryError{Err: err}
	}

	msg := n.message(text)
	msg.ParseMode = tgbotapi.ModeHTML

	n.recorder.reset()
	sent, err := n.api.Send(msg)
	status, body := n.recorder.last()

	if err == nil && status != 0 && status != http.StatusOK {
		err = fmt.Errorf("unexpected status %d", status)
	}
	if err != nil {
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) {
			n.logger.Warn("telegram rejected message",
				zap.Int("code", apiErr.Code),
				zap.String("description", apiErr.Message),
			)
		}
		return &DeliveryError{StatusCode: status, Body: body, Err: err}
	}

	n.logger.Info("brief delivered", zap.String("chatID", n.chatID), zap.Int("messageID", sent.MessageID))
	return nil
}

// message addresses numeric ids directly and everything else as a channel username.
func (n *Notifier) message(text string) tgbotapi.MessageConfig {
	if id, err := strconv.ParseInt(n.chatID, 10, 64); err == nil {
		return tgbotapi.NewMessage(id, text)
	}
	return tgbotapi.NewMessageToChannel(n.chatID, text)
}
