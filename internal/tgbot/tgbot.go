package tgbot

import (
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/KotFed0t/portfolio_tracker/internal/model/tg/tgCallback"
	"github.com/KotFed0t/portfolio_tracker/internal/transport/telegram"
	customMW "github.com/KotFed0t/portfolio_tracker/internal/transport/telegram/middleware"
	tele "gopkg.in/telebot.v4"
	"gopkg.in/telebot.v4/middleware"
)

type TGBot struct {
	bot            *tele.Bot
	ctrl           *telegram.Controller
	allowedChatIDs []int64
}

func New(cfg *config.Config, ctrl *telegram.Controller) *TGBot {
	settings := tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &tele.LongPoller{Timeout: cfg.Telegram.UpdTimeout},
	}

	b, err := tele.NewBot(settings)
	if err != nil {
		slog.Error("error while tele.NewBot", slog.String("err", err.Error()))
		panic(err)
	}

	return &TGBot{bot: b, ctrl: ctrl, allowedChatIDs: cfg.Telegram.AllowedChatIDs}
}

func (b *TGBot) Start() {
	b.bot.Use(middleware.Recover(), customMW.Logger())
	if len(b.allowedChatIDs) > 0 {
		b.bot.Use(middleware.Whitelist(b.allowedChatIDs...))
	} else {
		slog.Warn("TELEGRAM_ALLOWED_CHAT_IDS is empty, bot answers every chat")
	}

	b.setupRoutes()

	go b.bot.Start()
	slog.Info("tgbot started!")
}

func (b *TGBot) Stop() {
	slog.Info("start stopping tgbot")
	b.bot.Stop()
	slog.Info("tgbot stopped")
}

func (b *TGBot) setupRoutes() {
	b.bot.Handle("/start", b.ctrl.Start)
	b.bot.Handle("/help", b.ctrl.Start)
	b.bot.Handle("/summary", b.ctrl.Summary)
	b.bot.Handle("/refresh", b.ctrl.Refresh)
	b.bot.Handle("/price", b.ctrl.SetPrice)
	b.bot.Handle("/history", b.ctrl.History)
	b.bot.Handle("/transactions", b.ctrl.Transactions)
	b.bot.Handle("/export", b.ctrl.Export)

	b.bot.Handle(&tele.Btn{Unique: tgCallback.RefreshAll}, b.ctrl.RefreshAllCallback)
	b.bot.Handle(&tele.Btn{Unique: tgCallback.Export}, b.ctrl.ExportCallback)
	b.bot.Handle(&tele.Btn{Unique: tgCallback.History}, b.ctrl.HistoryCallback)
}
