package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"linkgate/internal/links"
	"linkgate/pkg/store"
)

type TelegramBotInterface interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

var newTelegramBot = func(token string) (TelegramBotInterface, string, error) {
	b, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, "", err
	}
	return b, b.Self.UserName, nil
}

type BotApp struct {
	tg       TelegramBotInterface
	cfg      *Config
	store    store.Store
	cache    *links.Cache
	username string
}

func NewBotApp(cfg *Config, st store.Store, cache *links.Cache) (*BotApp, error) {
	tg, username, err := newTelegramBot(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}
	return &BotApp{
		tg:       tg,
		cfg:      cfg,
		store:    st,
		cache:    cache,
		username: username,
	}, nil
}

// StartPolling consumes updates over long polling. Used when
// TELEGRAM_MODE=polling; in webhook mode updates come through the web
// server and HandleUpdate directly.
func (a *BotApp) StartPolling() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := a.tg.GetUpdatesChan(u)
	for upd := range updates {
		a.HandleUpdate(upd)
	}
	return nil
}

// HandleUpdate dispatches one Telegram update, whatever transport it
// arrived on.
func (a *BotApp) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil || upd.Message.From == nil {
		return
	}
	chatID := upd.Message.Chat.ID
	userID := upd.Message.From.ID

	if !upd.Message.IsCommand() {
		return
	}
	args := strings.TrimSpace(upd.Message.CommandArguments())

	switch upd.Message.Command() {
	case "start":
		a.handleStart(chatID, args)
	case "protect":
		a.handleProtect(chatID, args, userID)
	case "revoke":
		a.handleRevoke(chatID, args, userID)
	case "mylinks":
		a.handleMyLinks(chatID, userID)
	case "help":
		a.handleHelp(chatID)
	default:
		a.send(chatID, "Unknown command. Use /help to see available commands.")
	}
}

func (a *BotApp) handleStart(chatID int64, payload string) {
	if payload == "" {
		a.send(chatID, "Welcome! I am a bot that creates protected links for Telegram groups.\n\nUse /protect <group_link> to create one.")
		return
	}

	// payload is a link ID from a protected link
	_, ok, err := a.cache.Resolve(context.Background(), a.store, payload)
	if err != nil {
		log.Printf("link lookup error: %v", err)
		a.send(chatID, "Something went wrong. Please try again later.")
		return
	}
	if !ok {
		a.send(chatID, "Sorry, this link is invalid or has expired.")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "Click the button below to join the group.")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Join Group", a.joinPageURL(payload)),
		),
	)
	if _, err := a.tg.Send(msg); err != nil {
		log.Printf("send join button: %v", err)
	}
}

func (a *BotApp) handleProtect(chatID int64, args string, userID int64) {
	if err := links.ValidateGroupLink(args); err != nil {
		a.send(chatID, "Please provide a valid group link.\nUsage: /protect https://t.me/yourgroupname")
		return
	}
	link := store.Link{
		ID:        links.NewID(),
		GroupLink: args,
		OwnerID:   userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.store.SaveLink(link); err != nil {
		a.send(chatID, "Failed to save the link: "+err.Error())
		return
	}
	a.cache.Put(context.Background(), link.ID, link.GroupLink)
	a.send(chatID, fmt.Sprintf("Protected link generated!\n\nShare this link:\n%s", a.protectedLink(link.ID)))
}

func (a *BotApp) handleRevoke(chatID int64, args string, userID int64) {
	if args == "" {
		a.send(chatID, "Usage: /revoke <link_id>")
		return
	}
	link, ok, err := a.store.GetLink(args)
	if err != nil {
		a.send(chatID, "Failed to look up the link: "+err.Error())
		return
	}
	if !ok {
		a.send(chatID, "No such link.")
		return
	}
	if link.OwnerID != userID {
		a.send(chatID, "Only the owner can revoke this link.")
		return
	}
	if err := a.store.DeleteLink(args); err != nil {
		a.send(chatID, "Failed to revoke the link: "+err.Error())
		return
	}
	a.cache.Invalidate(context.Background(), args)
	a.send(chatID, "Revoked. The protected link no longer works.")
}

func (a *BotApp) handleMyLinks(chatID int64, userID int64) {
	entries, err := a.store.ListLinks(userID)
	if err != nil {
		a.send(chatID, "Failed to load your links: "+err.Error())
		return
	}
	if len(entries) == 0 {
		a.send(chatID, "You have no protected links yet. Use /protect <group_link> to create one.")
		return
	}
	var b strings.Builder
	for _, l := range entries {
		b.WriteString(fmt.Sprintf("%s -> %s\n", a.protectedLink(l.ID), l.GroupLink))
	}
	a.send(chatID, b.String())
}

func (a *BotApp) handleHelp(chatID int64) {
	text := "Commands:\n" +
		"/protect <group_link> - create a protected link for a t.me group\n" +
		"/mylinks - list your protected links\n" +
		"/revoke <link_id> - revoke one of your links\n" +
		"/help - this message"
	a.send(chatID, text)
}

func (a *BotApp) protectedLink(id string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", a.username, id)
}

func (a *BotApp) joinPageURL(id string) string {
	return fmt.Sprintf("%s/join?token=%s", a.cfg.ExternalURL, id)
}

func (a *BotApp) send(chatID int64, text string) {
	if _, err := a.tg.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("telegram send error: %v", err)
	}
}
