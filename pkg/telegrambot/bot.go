package telegrambot

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"vpn-tg-admin/internal/config"
	"vpn-tg-admin/internal/constants"
	"vpn-tg-admin/internal/handlers"
	"vpn-tg-admin/internal/services"
)

// Bot delivers Telegram messages to the dispatcher and sends its replies back
type Bot struct {
	bot        *telebot.Bot
	dispatcher *handlers.Dispatcher
	qrService  *services.QRService
	sendQR     bool
	logger     *logrus.Logger
}

// NewBot creates a new Telegram bot
func NewBot(
	cfg *config.Config,
	dispatcher *handlers.Dispatcher,
	qrService *services.QRService,
	logger *logrus.Logger,
) (*Bot, error) {
	settings := telebot.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &telebot.LongPoller{Timeout: constants.PollerTimeout},
		OnError: func(err error, c telebot.Context) {
			logger.Errorf("Telegram bot error: %v", err)
		},
	}

	return newBot(settings, dispatcher, qrService, cfg.SendQR, logger)
}

func newBot(
	settings telebot.Settings,
	dispatcher *handlers.Dispatcher,
	qrService *services.QRService,
	sendQR bool,
	logger *logrus.Logger,
) (*Bot, error) {
	b, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	bot := &Bot{
		bot:        b,
		dispatcher: dispatcher,
		qrService:  qrService,
		sendQR:     sendQR,
		logger:     logger,
	}

	bot.setupMiddleware()

	return bot, nil
}

// Start starts the bot and blocks until ctx is cancelled
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Infof("Starting Telegram bot @%s", b.bot.Me.Username)

	go func() {
		<-ctx.Done()
		b.logger.Info("Stopping Telegram bot")
		b.bot.Stop()
	}()

	b.bot.Start()
	return nil
}

// setupMiddleware sets up the bot middleware
func (b *Bot) setupMiddleware() {
	b.bot.Use(func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if c.Sender() != nil {
				b.logger.Debugf("Received update from %d", c.Sender().ID)
			}
			return next(c)
		}
	})

	// Commands without a registered endpoint fall through to OnText
	b.bot.Handle(telebot.OnText, b.handleText)
	b.bot.Handle(telebot.OnCallback, b.handleCallback)
}

// handleText hands a text message to the dispatcher
func (b *Bot) handleText(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	senderID := strconv.FormatInt(c.Sender().ID, 10)
	return b.deliver(c, b.dispatcher.Dispatch(context.Background(), senderID, c.Text()))
}

// handleCallback hands a pressed quick action to the dispatcher.
// The callback is only answered when the dispatcher replies.
func (b *Bot) handleCallback(c telebot.Context) error {
	if c.Sender() == nil || c.Callback() == nil {
		return nil
	}

	senderID := strconv.FormatInt(c.Sender().ID, 10)
	res := b.dispatcher.DispatchAction(context.Background(), senderID, c.Callback().Data)
	if res.Action == handlers.NoAction {
		return nil
	}

	if err := c.Respond(); err != nil {
		b.logger.Warnf("Failed to answer callback: %v", err)
	}
	return b.deliver(c, res)
}

// deliver sends a dispatch result: the text reply first, then any QR codes
func (b *Bot) deliver(c telebot.Context, res handlers.Result) error {
	if res.Action == handlers.NoAction {
		return nil
	}

	if err := b.sendTextMessage(c, res.Reply, quickActionMarkup(res.QuickActions)); err != nil {
		return err
	}

	if b.sendQR && len(res.ShareLinks) > 0 {
		for _, code := range b.qrService.RenderShareLinks(res.ShareLinks) {
			// QR failures are logged by sendQRCode and leave the text reply intact
			_ = b.sendQRCode(c, code)
		}
	}
	return nil
}

// quickActionMarkup lays the actions out as an inline keyboard
func quickActionMarkup(actions []handlers.QuickAction) *telebot.ReplyMarkup {
	if len(actions) == 0 {
		return nil
	}

	var keyboard [][]telebot.InlineButton
	for i, action := range actions {
		if i%constants.QuickActionsRow == 0 {
			keyboard = append(keyboard, nil)
		}
		last := len(keyboard) - 1
		keyboard[last] = append(keyboard[last], telebot.InlineButton{
			Text: action.Label,
			Data: action.Data,
		})
	}

	return &telebot.ReplyMarkup{InlineKeyboard: keyboard}
}

// sendTextMessage sends a plain text message
func (b *Bot) sendTextMessage(c telebot.Context, text string, markup *telebot.ReplyMarkup) error {
	opts := &telebot.SendOptions{
		DisableWebPagePreview: true,
	}
	if markup != nil {
		opts.ReplyMarkup = markup
	}

	_, err := c.Bot().Send(c.Recipient(), text, opts)
	if err != nil {
		b.logger.Errorf("Failed to send message: %v", err)
	}
	return err
}

// sendQRCode sends a rendered share link as a photo
func (b *Bot) sendQRCode(c telebot.Context, code services.ShareCode) error {
	photo := &telebot.Photo{
		File:    telebot.FromReader(bytes.NewReader(code.PNG)),
		Caption: code.Caption,
	}

	_, err := c.Bot().Send(c.Recipient(), photo)
	if err != nil {
		b.logger.Errorf("Failed to send QR code for %s: %v", code.Key, err)
	}
	return err
}
