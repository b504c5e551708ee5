// Package events provide event handlers for telegram bot. It listens to updates, validates messages and
// handles rejected ones: replies with the reason, forwards the evidence to the audit channel, deletes the message,
// bans the sender and logs the ban. It also tracks chats the bot was added to or removed from.
package events

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	tbapi "github.com/OvyFlash/telegram-bot-api"
	cache "github.com/go-pkgz/expirable-cache/v3"
	"github.com/go-pkgz/repeater"
	"github.com/hashicorp/go-multierror"

	"github.com/umputun/tg-guard/app/banlog"
	"github.com/umputun/tg-guard/app/storage"
	"github.com/umputun/tg-guard/lib/verdict"
)

// TelegramListener listens to tg updates, validates messages and bans senders of rejected ones.
// Not thread safe, Do should be called once.
type TelegramListener struct {
	TbAPI       TbAPI
	Validator   Validator
	Chats       ChatRegistry // optional, chats registry
	Bans        BanStore     // optional, ban events storage
	BanLog      BanLogger    // optional, per-chat ban logs
	AuditChatID int64        // chat to forward rejected messages to, 0 to disable
	Dry         bool         // dry mode, reply and ban log only, no forward, delete, ban or stored ban
	RetryCount  int          // number of attempts for telegram requests, 3 by default
	RetryDelay  time.Duration
	BanTTL      time.Duration // how long recently banned users are ignored, 1m by default

	once       sync.Once
	recentBans cache.Cache[string, time.Time]
}

// Do process all events, blocked call
func (l *TelegramListener) Do(ctx context.Context) error {
	log.Printf("[INFO] start telegram listener, audit chat: %d, dry: %v", l.AuditChatID, l.Dry)
	l.init()

	u := tbapi.NewUpdate(0)
	u.Timeout = 60
	updates := l.TbAPI.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case update, ok := <-updates:
			if !ok {
				return fmt.Errorf("telegram update chan closed")
			}

			if update.MyChatMember != nil {
				if err := l.procChatMember(ctx, update.MyChatMember); err != nil {
					log.Printf("[WARN] failed to process chat member update: %v", err)
				}
				continue
			}

			msg := updateMessage(update)
			if msg == nil {
				continue
			}
			if err := l.procMessage(ctx, msg); err != nil {
				log.Printf("[WARN] failed to process update: %v", err)
				continue
			}
		}
	}
}

func (l *TelegramListener) init() {
	l.once.Do(func() {
		if l.RetryCount <= 0 {
			l.RetryCount = 3
		}
		if l.RetryDelay <= 0 {
			l.RetryDelay = time.Second
		}
		if l.BanTTL <= 0 {
			l.BanTTL = time.Minute
		}
		l.recentBans = cache.NewCache[string, time.Time]().WithMaxKeys(10000).WithTTL(l.BanTTL)
	})
}

// updateMessage picks the message from the update, new and edited messages and channel posts are all checked
func updateMessage(update tbapi.Update) *tbapi.Message {
	switch {
	case update.Message != nil:
		return update.Message
	case update.EditedMessage != nil:
		return update.EditedMessage
	case update.ChannelPost != nil:
		return update.ChannelPost
	case update.EditedChannelPost != nil:
		return update.EditedChannelPost
	}
	return nil
}

// procChatMember tracks bot's own membership. Added to a chat registers it, removed deactivates,
// promotion to admin refreshes the chat info.
func (l *TelegramListener) procChatMember(ctx context.Context, upd *tbapi.ChatMemberUpdated) error {
	if l.Chats == nil {
		return nil
	}
	oldStatus, newStatus := upd.OldChatMember.Status, upd.NewChatMember.Status
	isIn := func(s string) bool { return s == "member" || s == "administrator" }
	isOut := func(s string) bool { return s == "left" || s == "kicked" }
	log.Printf("[DEBUG] bot membership in %d (%q) changed %s -> %s", upd.Chat.ID, upd.Chat.Title, oldStatus, newStatus)

	switch {
	case isOut(oldStatus) && isIn(newStatus):
		log.Printf("[INFO] bot added to chat %d (%q)", upd.Chat.ID, upd.Chat.Title)
		return l.registerChat(ctx, upd.Chat)
	case isIn(oldStatus) && isOut(newStatus):
		log.Printf("[INFO] bot removed from chat %d (%q)", upd.Chat.ID, upd.Chat.Title)
		if err := l.Chats.Deactivate(ctx, upd.Chat.ID); err != nil {
			return fmt.Errorf("failed to deactivate chat %d: %w", upd.Chat.ID, err)
		}
	case oldStatus == "member" && newStatus == "administrator":
		log.Printf("[INFO] bot promoted to admin in chat %d (%q)", upd.Chat.ID, upd.Chat.Title)
		return l.registerChat(ctx, upd.Chat)
	}
	return nil
}

func (l *TelegramListener) registerChat(ctx context.Context, chat tbapi.Chat) error {
	switch chat.Type {
	case "group", "supergroup", "channel":
	default:
		log.Printf("[DEBUG] chat %d of type %q not tracked", chat.ID, chat.Type)
		return nil
	}
	title := chat.Title
	if title == "" {
		title = fmt.Sprintf("Chat %d", chat.ID)
	}
	info := storage.ChatInfo{ID: chat.ID, Title: title, UserName: chat.UserName, Type: chat.Type}
	if err := l.Chats.Register(ctx, info); err != nil {
		return fmt.Errorf("failed to register chat %d: %w", chat.ID, err)
	}
	return nil
}

// procMessage validates the message and handles the rejected one. All the actions are attempted,
// errors are collected and returned together.
func (l *TelegramListener) procMessage(ctx context.Context, msg *tbapi.Message) error {
	l.init()
	text := messageText(msg)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	target := banTarget(msg)
	banKey := fmt.Sprintf("%d:%d", msg.Chat.ID, target.id)
	if target.id != 0 {
		if _, banned := l.recentBans.Get(banKey); banned {
			log.Printf("[DEBUG] sender %d recently banned in %d, message %d ignored", target.id, msg.Chat.ID, msg.MessageID)
			return nil
		}
	}

	res := l.Validator.Validate(text)
	if res.Valid {
		return nil
	}
	identity := senderIdentity(msg)
	log.Printf("[INFO] message %d from %s in %d (%q) rejected, %s", msg.MessageID, identity, msg.Chat.ID, msg.Chat.Title, res)
	log.Printf("[DEBUG] rejected message: %q", strings.ReplaceAll(text, "\n", " "))

	errs := new(multierror.Error)

	if l.AuditChatID != 0 && !l.Dry {
		err := l.retry(ctx, func() error { return forward(l.TbAPI, l.AuditChatID, msg.Chat.ID, msg.MessageID) })
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to forward message %d: %w", msg.MessageID, err))
		}
	}

	reply := tbapi.NewMessage(msg.Chat.ID, banReplyText(identity, res.Reason))
	reply.ReplyParameters = tbapi.ReplyParameters{MessageID: msg.MessageID}
	if err := send(reply, l.TbAPI); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("failed to reply to message %d: %w", msg.MessageID, err))
	}

	if target.anonymous {
		log.Printf("[INFO] message %d posted on behalf of chat %d itself, sender not banned", msg.MessageID, msg.Chat.ID)
	}

	if l.Dry {
		log.Printf("[INFO] dry run: delete message %d and ban %s in %d", msg.MessageID, identity, msg.Chat.ID)
	} else {
		if err := deleteMessage(l.TbAPI, msg.Chat.ID, msg.MessageID); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to delete message %d: %w", msg.MessageID, err))
		}
		if target.id != 0 {
			ban := func() error { return banUser(l.TbAPI, msg.Chat.ID, target.id) }
			if target.channel {
				ban = func() error { return banChannel(l.TbAPI, msg.Chat.ID, target.id) }
			}
			if err := l.retry(ctx, ban); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("failed to ban %s: %w", identity, err))
			} else {
				log.Printf("[INFO] %s (%d) banned in %d (%q)", identity, target.id, msg.Chat.ID, msg.Chat.Title)
			}
		}
	}
	if target.id != 0 {
		l.recentBans.Set(banKey, time.Now(), l.BanTTL)
	}

	if err := l.saveBan(ctx, msg, res, text); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs.ErrorOrNil()
}

// sender is who gets banned for the message
type sender struct {
	id        int64 // user or sender chat id, 0 if nobody can be banned
	channel   bool  // posted on behalf of another chat, banned as a sender chat
	anonymous bool  // posted on behalf of the chat itself, by an anonymous admin or as a channel post
}

// banTarget picks the sender to ban. For messages posted on behalf of a chat telegram sets From to
// a placeholder bot user, so the sender chat is used instead.
func banTarget(msg *tbapi.Message) sender {
	switch {
	case msg.SenderChat != nil && msg.SenderChat.ID == msg.Chat.ID:
		return sender{anonymous: true}
	case msg.SenderChat != nil:
		return sender{id: msg.SenderChat.ID, channel: true}
	case msg.From != nil:
		return sender{id: msg.From.ID}
	}
	return sender{}
}

// saveBan writes the ban to the chat log and to the ban store, whichever are set.
// Dry run bans are logged but not stored, the store keeps only bans actually made.
func (l *TelegramListener) saveBan(ctx context.Context, msg *tbapi.Message, res verdict.Result, text string) error {
	now := time.Now()
	rec := banlog.Record{Time: now, ChatID: msg.Chat.ID, ChatTitle: msg.Chat.Title, ChatUserName: msg.Chat.UserName,
		Rule: string(res.Rule), Trigger: res.Trigger}
	entry := storage.BanEntry{Time: now, ChatID: msg.Chat.ID, ChatTitle: msg.Chat.Title, Rule: res.Rule,
		Trigger: res.Trigger, Reason: res.Reason, Text: text}
	switch {
	case msg.SenderChat != nil:
		rec.UserID, rec.UserName, rec.FirstName = msg.SenderChat.ID, msg.SenderChat.UserName, msg.SenderChat.Title
		entry.UserID, entry.UserName, entry.DisplayName = msg.SenderChat.ID, msg.SenderChat.UserName, msg.SenderChat.Title
	case msg.From != nil:
		rec.UserID, rec.UserName, rec.FirstName, rec.LastName = msg.From.ID, msg.From.UserName, msg.From.FirstName, msg.From.LastName
		entry.UserID, entry.UserName = msg.From.ID, msg.From.UserName
		entry.DisplayName = strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
	}

	errs := new(multierror.Error)
	if l.BanLog != nil {
		if err := l.BanLog.Write(rec); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to write ban log: %w", err))
		}
	}
	if l.Bans != nil && l.Dry {
		log.Printf("[DEBUG] dry run, ban of %d in %d not stored", entry.UserID, entry.ChatID)
	}
	if l.Bans != nil && !l.Dry {
		if err := l.Bans.Add(ctx, entry); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to save ban: %w", err))
		}
	}
	return errs.ErrorOrNil()
}

// retry calls fn up to RetryCount times with RetryDelay between attempts
func (l *TelegramListener) retry(ctx context.Context, fn func() error) error {
	return repeater.NewDefault(l.RetryCount, l.RetryDelay).Do(ctx, fn)
}
