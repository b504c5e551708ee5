package events

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	tbapi "github.com/OvyFlash/telegram-bot-api"

	"github.com/umputun/tg-guard/app/banlog"
	"github.com/umputun/tg-guard/app/storage"
	"github.com/umputun/tg-guard/lib/verdict"
)

//go:generate moq --out mocks/tb_api.go --pkg mocks --with-resets --skip-ensure . TbAPI
//go:generate moq --out mocks/validator.go --pkg mocks --with-resets --skip-ensure . Validator
//go:generate moq --out mocks/chat_registry.go --pkg mocks --with-resets --skip-ensure . ChatRegistry
//go:generate moq --out mocks/ban_store.go --pkg mocks --with-resets --skip-ensure . BanStore
//go:generate moq --out mocks/ban_logger.go --pkg mocks --with-resets --skip-ensure . BanLogger

// TbAPI is an interface for telegram bot API, only subset of methods used
type TbAPI interface {
	GetUpdatesChan(config tbapi.UpdateConfig) tbapi.UpdatesChannel
	Send(c tbapi.Chattable) (tbapi.Message, error)
	Request(c tbapi.Chattable) (*tbapi.APIResponse, error)
}

// Validator checks message text
type Validator interface {
	Validate(text string) verdict.Result
}

// ChatRegistry keeps chats the bot is a member of
type ChatRegistry interface {
	Register(ctx context.Context, chat storage.ChatInfo) error
	Deactivate(ctx context.Context, chatID int64) error
}

// BanStore keeps ban events
type BanStore interface {
	Add(ctx context.Context, entry storage.BanEntry) error
}

// BanLogger writes ban events to per-chat logs
type BanLogger interface {
	Write(rec banlog.Record) error
}

// userIdentity returns a human-readable sender name, preferring the real name, then @username and the id as a last resort
func userIdentity(user *tbapi.User) string {
	if user == nil {
		return "Unknown user"
	}
	name := strings.TrimSpace(strings.TrimSpace(user.FirstName) + " " + strings.TrimSpace(user.LastName))
	if name != "" {
		return name
	}
	if user.UserName != "" {
		return "@" + user.UserName
	}
	return fmt.Sprintf("User ID %d (no other identifier available)", user.ID)
}

// chatIdentity returns a human-readable name of the chat posting on its own behalf
func chatIdentity(chat *tbapi.Chat) string {
	if title := strings.TrimSpace(chat.Title); title != "" {
		return title
	}
	if chat.UserName != "" {
		return "@" + chat.UserName
	}
	return fmt.Sprintf("Chat ID %d", chat.ID)
}

// senderIdentity names the author of the message, the sender chat wins over the placeholder user
// telegram sets for messages posted on behalf of a chat
func senderIdentity(msg *tbapi.Message) string {
	if msg.SenderChat != nil {
		return chatIdentity(msg.SenderChat)
	}
	return userIdentity(msg.From)
}

// banReplyText makes html reply for the banned sender, all user-provided parts escaped
func banReplyText(identity, reason string) string {
	return fmt.Sprintf("🖕 Banned user <b>%s</b> - Reason: <code>%s</code>",
		html.EscapeString(identity), html.EscapeString(reason))
}

// messageText returns text of the message with caption appended
func messageText(msg *tbapi.Message) string {
	switch {
	case msg.Caption == "":
		return msg.Text
	case msg.Text == "":
		return msg.Caption
	default:
		return msg.Text + "\n" + msg.Caption
	}
}

// send a message to the telegram as html first and if failed - as plain text
func send(tbMsg tbapi.MessageConfig, tbAPI TbAPI) error {
	tbMsg.ParseMode = tbapi.ModeHTML
	tbMsg.LinkPreviewOptions = tbapi.LinkPreviewOptions{IsDisabled: true}
	if _, err := tbAPI.Send(tbMsg); err != nil {
		log.Printf("[WARN] failed to send message as html, %v", err)
		tbMsg.ParseMode = "" // try plain text
		if _, err := tbAPI.Send(tbMsg); err != nil {
			return fmt.Errorf("can't send message to telegram: %w", err)
		}
	}
	return nil
}

// request sends a request to the telegram and checks the response status
func request(tbAPI TbAPI, c tbapi.Chattable) error {
	resp, err := tbAPI.Request(c)
	if err != nil {
		return err
	}
	if resp == nil || !resp.Ok {
		desc := "empty response"
		if resp != nil {
			desc = resp.Description
		}
		return fmt.Errorf("response is not Ok: %s", desc)
	}
	return nil
}

// The bot must be an administrator in the chat with "ban users" right for this to work.
// The ban is permanent and all messages of the user in the chat are removed.
func banUser(tbAPI TbAPI, chatID, userID int64) error {
	return request(tbAPI, tbapi.BanChatMemberConfig{
		ChatMemberConfig: tbapi.ChatMemberConfig{
			ChatConfig: tbapi.ChatConfig{ChatID: chatID},
			UserID:     userID,
		},
		RevokeMessages: true,
	})
}

// banChannel bans the chat messages are posted on behalf of. The sender chat can't post to the chat
// until it is unbanned, whichever user account is behind it.
func banChannel(tbAPI TbAPI, chatID, channelID int64) error {
	return request(tbAPI, tbapi.BanChatSenderChatConfig{
		ChatConfig:   tbapi.ChatConfig{ChatID: chatID},
		SenderChatID: channelID,
	})
}

func deleteMessage(tbAPI TbAPI, chatID int64, msgID int) error {
	return request(tbAPI, tbapi.DeleteMessageConfig{BaseChatMessage: tbapi.BaseChatMessage{
		ChatConfig: tbapi.ChatConfig{ChatID: chatID},
		MessageID:  msgID,
	}})
}

// forward sends a copy of the message to the audit chat, silently
func forward(tbAPI TbAPI, toChatID, fromChatID int64, msgID int) error {
	fwd := tbapi.NewForward(toChatID, fromChatID, msgID)
	fwd.DisableNotification = true
	if _, err := tbAPI.Send(fwd); err != nil {
		return err
	}
	return nil
}
