package bot

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/fhd3v0p/fsr-backend/internal/adapter"
	"github.com/fhd3v0p/fsr-backend/internal/auth"
	"github.com/fhd3v0p/fsr-backend/internal/domain"
	"github.com/fhd3v0p/fsr-backend/internal/ledger"
	"github.com/fhd3v0p/fsr-backend/internal/notifier"
	"github.com/fhd3v0p/fsr-backend/internal/verifier"
)

const (
	DEFAULT_HANDLER_TIMEOUT = 15 * time.Second
	TOP_REFERRERS_LIMIT     = 5
	CALLBACK_MY_STATS       = "my_stats"
)

// Config holds the bot front door settings
type Config struct {
	WebAppURL  string
	FolderLink string
	// AdminIDs may use /stats
	AdminIDs []int64
	// AdminTokenSecret signs the admin panel link of /stats, the link is omitted when empty
	AdminTokenSecret string
	AdminTokenTTL    time.Duration
	HandlerTimeout   time.Duration
}

// Bot serves the Telegram commands of the campaign
type Bot struct {
	bot        *tele.Bot
	cfg        Config
	ledger     ledger.Ledger
	verifier   verifier.Verifier
	dispatcher notifier.Dispatcher
	clock      adapter.Clock
	logger     *zap.Logger
}

// NewBot registers the command handlers on a telebot instance
func NewBot(
	cfg Config,
	tb *tele.Bot,
	l ledger.Ledger,
	v verifier.Verifier,
	d notifier.Dispatcher,
	clock adapter.Clock,
	log *zap.Logger,
) *Bot {
	if cfg.HandlerTimeout <= 0 {
		cfg.HandlerTimeout = DEFAULT_HANDLER_TIMEOUT
	}

	b := &Bot{
		bot:        tb,
		cfg:        cfg,
		ledger:     l,
		verifier:   v,
		dispatcher: d,
		clock:      clock,
		logger:     log,
	}
	b.registerHandlers()

	return b
}

func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.handleStart)
	b.bot.Handle("/giveaway", b.command("giveaway", b.giveawayReply))
	b.bot.Handle("/invite", b.command("invite", b.inviteReply))
	b.bot.Handle("/tickets", b.command("tickets", b.ticketsReply))
	b.bot.Handle("/help", b.command("help", b.helpReply))
	b.bot.Handle("/stats", b.command("stats", b.statsReply))

	myStats := (&tele.ReplyMarkup{}).Data("📊 Моя статистика", CALLBACK_MY_STATS)
	b.bot.Handle(&myStats, b.handleMyStats)
	// stale buttons
	b.bot.Handle(tele.OnCallback, func(c tele.Context) error { return c.Respond() })
}

// Start checks the bot rights in the required channels and polls until ctx ends
func (b *Bot) Start(ctx context.Context) {
	b.checkChannelRights(ctx)

	go func() {
		<-ctx.Done()
		b.bot.Stop()
	}()

	b.logger.Info("Bot polling started")
	b.bot.Start()
	b.logger.Info("Bot polling stopped")
}

// checkChannelRights logs every required channel the bot cannot administer.
// Membership lookups fail for channels where the bot is not an admin.
func (b *Bot) checkChannelRights(ctx context.Context) {
	if b.bot.Me == nil {
		return
	}

	results, err := b.verifier.CheckBotAdmin(ctx, b.bot.Me.ID)
	if err != nil {
		b.logger.Warn("Failed to check bot rights", zap.Error(err))
		return
	}
	for _, r := range results {
		if r.Subscribed {
			b.logger.Info("Bot is admin of required channel", zap.Int64("channelID", r.ChannelID))
			continue
		}
		b.logger.Warn("Bot is not admin of required channel, membership checks will fail",
			zap.Int64("channelID", r.ChannelID),
			zap.String("status", r.Status),
			zap.Error(r.Err))
	}
}

// reply is a message ready to be sent
type reply struct {
	text   string
	markup *tele.ReplyMarkup
}

func (r *reply) options() []interface{} {
	opts := []interface{}{tele.ModeHTML, tele.NoPreview}
	if r.markup != nil {
		opts = append(opts, r.markup)
	}
	return opts
}

type replyFunc func(ctx context.Context, sender *tele.User) (*reply, error)

// command wraps a reply builder into a telebot handler that logs the command to operators
func (b *Bot) command(name string, build replyFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), b.cfg.HandlerTimeout)
		defer cancel()

		r, err := build(ctx, sender)
		if err != nil {
			return b.fail(c, name, err)
		}

		b.notify(domain.Event{
			Type:       domain.EventTypeBotCommand,
			UserID:     sender.ID,
			Username:   sender.Username,
			FirstName:  sender.FirstName,
			Attributes: map[string]string{domain.EventAttrCommand: name},
		})

		return c.Send(r.text, r.options()...)
	}
}

func (b *Bot) handleStart(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.cfg.HandlerTimeout)
	defer cancel()

	r, err := b.startReply(ctx, sender, c.Message().Payload)
	if err != nil {
		return b.fail(c, "start", err)
	}
	return c.Send(r.text, r.options()...)
}

func (b *Bot) handleMyStats(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return c.Respond()
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.cfg.HandlerTimeout)
	defer cancel()

	r, err := b.myStatsReply(ctx, sender)
	if err != nil {
		b.logger.Warn("Failed to build user stats", zap.Int64("userID", sender.ID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ Ошибка получения статистики"})
	}
	if err := c.Respond(); err != nil {
		b.logger.Debug("Failed to answer callback", zap.Error(err))
	}
	return c.Edit(r.text, r.options()...)
}

// startReply registers the sender, crediting the inviter named by the payload
func (b *Bot) startReply(ctx context.Context, sender *tele.User, payload string) (*reply, error) {
	token, _ := domain.ParseReferralPayload(payload)

	result, err := b.ledger.RegisterUser(ctx, ledger.RegisterUserInput{
		ID:                  sender.ID,
		Username:            sender.Username,
		FirstName:           sender.FirstName,
		LastName:            sender.LastName,
		InviterReferralCode: token,
	})
	if err != nil {
		return nil, err
	}

	if _, err := b.ledger.RecordActivity(ctx, sender.ID, domain.EventTypeBotStart, map[string]interface{}{
		"payload": payload,
	}); err != nil {
		b.logger.Warn("Failed to record start", zap.Int64("userID", sender.ID), zap.Error(err))
	}

	start := domain.Event{
		Type:      domain.EventTypeBotStart,
		UserID:    sender.ID,
		Username:  sender.Username,
		FirstName: sender.FirstName,
	}
	if token != "" {
		start.Attributes = map[string]string{domain.EventAttrReferralCode: token}
	}
	b.notify(start)

	if result.Created {
		b.notify(domain.Event{
			Type:       domain.EventTypeUserRegistered,
			UserID:     result.User.ID,
			Username:   result.User.Username,
			FirstName:  result.User.FirstName,
			Attributes: map[string]string{domain.EventAttrReferralCode: result.User.ReferralCode},
		})
	}
	if result.Credited && result.Inviter != nil {
		b.notify(domain.Event{
			Type:      domain.EventTypeReferralCredited,
			UserID:    result.User.ID,
			Username:  result.User.Username,
			FirstName: result.User.FirstName,
			Attributes: map[string]string{
				domain.EventAttrInviterID:    strconv.FormatInt(result.Inviter.ID, 10),
				domain.EventAttrInviterName:  result.Inviter.DisplayName(),
				domain.EventAttrReferralCode: result.Inviter.ReferralCode,
			},
		})
		if result.InviterCompletedGiveaway {
			b.notify(domain.Event{
				Type:       domain.EventTypeGiveawayCompleted,
				UserID:     result.Inviter.ID,
				Username:   result.Inviter.Username,
				FirstName:  result.Inviter.FirstName,
				Attributes: map[string]string{domain.EventAttrTasksDone: strconv.Itoa(domain.GIVEAWAY_TASK_COUNT)},
			})
		}
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(rows(markup, b.webAppButton(markup, "🌟 Open FSR", ""), b.folderButton(markup))...)

	return &reply{
		text:   welcomeText(sender.FirstName, result),
		markup: markup,
	}, nil
}

func (b *Bot) giveawayReply(ctx context.Context, _ *tele.User) (*reply, error) {
	catalog, err := b.ledger.ListPrizes(ctx)
	if err != nil {
		return nil, err
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(rows(markup, b.folderButton(markup), b.webAppButton(markup, "🌟 Открыть приложение", ""))...)

	return &reply{text: giveawayText(catalog), markup: markup}, nil
}

func (b *Bot) inviteReply(ctx context.Context, sender *tele.User) (*reply, error) {
	summary, err := b.ledger.GetReferralSummary(ctx, sender.ID)
	if err != nil {
		return nil, err
	}

	markup := &tele.ReplyMarkup{}
	stats := markup.Data("📊 Моя статистика", CALLBACK_MY_STATS)
	markup.Inline(rows(markup, b.webAppButton(markup, "👥 Пригласить друзей", "/invite?ref="+summary.Code), &stats)...)

	return &reply{text: inviteText(summary), markup: markup}, nil
}

func (b *Bot) ticketsReply(ctx context.Context, sender *tele.User) (*reply, error) {
	status, err := b.ledger.GetTicketStatus(ctx, sender.ID)
	if err != nil {
		return nil, err
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(rows(markup, b.folderButton(markup))...)

	return &reply{text: ticketsText(status), markup: markup}, nil
}

func (b *Bot) helpReply(_ context.Context, _ *tele.User) (*reply, error) {
	markup := &tele.ReplyMarkup{}
	markup.Inline(rows(markup, b.webAppButton(markup, "🌟 Open FSR", ""))...)

	return &reply{text: helpText, markup: markup}, nil
}

func (b *Bot) statsReply(ctx context.Context, sender *tele.User) (*reply, error) {
	if !auth.IsAdmin(b.cfg.AdminIDs, sender.ID) {
		return &reply{text: "❌ У вас нет доступа к этой команде"}, nil
	}

	stats, err := b.ledger.GetGlobalStats(ctx)
	if err != nil {
		return nil, err
	}
	top, err := b.ledger.TopReferrers(ctx, TOP_REFERRERS_LIMIT)
	if err != nil {
		return nil, err
	}

	r := &reply{text: statsText(stats, top)}
	if btn := b.adminPanelButton(sender.ID); btn != nil {
		r.markup = &tele.ReplyMarkup{}
		r.markup.Inline(r.markup.Row(*btn))
	}
	return r, nil
}

// adminPanelButton opens the admin view of the mini app with a fresh admin token,
// nil when no mini app or token secret is configured
func (b *Bot) adminPanelButton(adminID int64) *tele.Btn {
	if b.cfg.WebAppURL == "" || b.cfg.AdminTokenSecret == "" {
		return nil
	}

	token, err := auth.IssueAdminToken(b.cfg.AdminTokenSecret, adminID, b.cfg.AdminTokenTTL, b.clock.Now())
	if err != nil {
		b.logger.Warn("Failed to issue admin token", zap.Int64("adminID", adminID), zap.Error(err))
		return nil
	}

	markup := &tele.ReplyMarkup{}
	btn := markup.WebApp("📊 Панель администратора", &tele.WebApp{URL: b.cfg.WebAppURL + "/admin?token=" + url.QueryEscape(token)})
	return &btn
}

func (b *Bot) myStatsReply(ctx context.Context, sender *tele.User) (*reply, error) {
	stats, err := b.ledger.GetUserStats(ctx, sender.ID)
	if err != nil {
		return nil, err
	}
	summary, err := b.ledger.GetReferralSummary(ctx, sender.ID)
	if err != nil {
		return nil, err
	}

	return &reply{text: myStatsText(stats, summary)}, nil
}

// fail answers the sender after a failed command
func (b *Bot) fail(c tele.Context, command string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Send("👋 Сначала нажми /start, чтобы зарегистрироваться")
	}

	b.logger.Error("Bot command failed",
		zap.String("command", command),
		zap.Int64("userID", c.Sender().ID),
		zap.Error(err))
	return c.Send("❌ Что-то пошло не так, попробуй позже")
}

// notify queues an operator notification, failures are only logged
func (b *Bot) notify(event domain.Event) {
	if err := b.dispatcher.Dispatch(event); err != nil {
		b.logger.Warn("Failed to queue notification",
			zap.String("type", string(event.Type)),
			zap.Int64("userID", event.UserID),
			zap.Error(err))
	}
}

// webAppButton opens the mini app at path, nil when no mini app is configured
func (b *Bot) webAppButton(markup *tele.ReplyMarkup, text, path string) *tele.Btn {
	if b.cfg.WebAppURL == "" {
		return nil
	}
	btn := markup.WebApp(text, &tele.WebApp{URL: b.cfg.WebAppURL + path})
	return &btn
}

// folderButton links the channel folder, nil when no folder is configured
func (b *Bot) folderButton(markup *tele.ReplyMarkup) *tele.Btn {
	if b.cfg.FolderLink == "" {
		return nil
	}
	btn := markup.URL("📁 Подписаться на папку", b.cfg.FolderLink)
	return &btn
}

// rows puts every configured button on its own row
func rows(markup *tele.ReplyMarkup, buttons ...*tele.Btn) []tele.Row {
	rows := make([]tele.Row, 0, len(buttons))
	for _, btn := range buttons {
		if btn != nil {
			rows = append(rows, markup.Row(*btn))
		}
	}
	return rows
}
