package adapter

import (
	"fmt"
	"net/http"
	"time"

	tele "gopkg.in/telebot.v3"
)

// TelegramSettings holds what is needed to build a Bot API client
type TelegramSettings struct {
	Token          string
	APIURL         string
	PollTimeout    time.Duration
	RequestTimeout time.Duration
	// Offline skips the getMe call, the username is then taken from Username
	Offline  bool
	Username string
}

// NewTelegramBot creates a telebot instance with a long poller
func NewTelegramBot(settings TelegramSettings) (*tele.Bot, error) {
	pref := tele.Settings{
		Token:   settings.Token,
		URL:     settings.APIURL,
		Poller:  &tele.LongPoller{Timeout: settings.PollTimeout},
		Client:  &http.Client{Timeout: settings.RequestTimeout + settings.PollTimeout},
		Offline: settings.Offline,
	}

	bot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	if settings.Offline && settings.Username != "" {
		bot.Me = &tele.User{Username: settings.Username, IsBot: true}
	}

	return bot, nil
}

// Telegram defines the subset of the Bot API used outside of update handling, to enable mocking
//
//go:generate mockgen -source=telegram.go -destination=../mocks/telegram.go -package=mocks -mock_names=Telegram=MockTelegram
type Telegram interface {
	// ChatMemberOf returns the membership of userID in chatID
	ChatMemberOf(chatID, userID int64) (*tele.ChatMember, error)
	// SendText sends a text message to chatID
	SendText(chatID int64, text string, opts ...interface{}) error
	// Username returns the bot username without the leading @
	Username() string
}

// RealTelegram implements Telegram on top of telebot
type RealTelegram struct {
	bot *tele.Bot
}

// NewTelegram wraps a telebot instance
func NewTelegram(bot *tele.Bot) Telegram {
	return &RealTelegram{bot: bot}
}

func (t *RealTelegram) ChatMemberOf(chatID, userID int64) (*tele.ChatMember, error) {
	return t.bot.ChatMemberOf(tele.ChatID(chatID), &tele.User{ID: userID})
}

func (t *RealTelegram) SendText(chatID int64, text string, opts ...interface{}) error {
	_, err := t.bot.Send(tele.ChatID(chatID), text, opts...)
	return err
}

func (t *RealTelegram) Username() string {
	if t.bot.Me == nil {
		return ""
	}
	return t.bot.Me.Username
}
