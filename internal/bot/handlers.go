package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const commandTimeout = 2 * time.Minute

// Reporter renders the text reports served by bot commands.
type Reporter interface {
	TimelineText(ctx context.Context, managerID int) (string, error)
	TransfersText(ctx context.Context, managerID int) (string, error)
	CaptainsText(ctx context.Context, managerID int) (string, error)
	PlayerText(ctx context.Context, query string) (string, error)
}

type Handler struct {
	reporter Reporter
}

func NewHandler(reporter Reporter) *Handler {
	return &Handler{reporter: reporter}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = tgbotapi.ModeMarkdown

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	switch command {
	case "start":
		msg.Text = "Welcome to Tempad! Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n/timeline <manager id> - Alternate timelines for a manager\n/transfers <manager id> - Rate every transfer\n/captains <manager id> - Rate every captain change\n/player <name> - Look up a player"
	case "timeline":
		h.handleManager(ctx, &msg, "timeline", args, h.reporter.TimelineText)
	case "transfers":
		h.handleManager(ctx, &msg, "transfers", args, h.reporter.TransfersText)
	case "captains":
		h.handleManager(ctx, &msg, "captains", args, h.reporter.CaptainsText)
	case "player":
		h.handlePlayer(ctx, &msg, args)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleManager(ctx context.Context, msg *tgbotapi.MessageConfig, command, args string, render func(context.Context, int) (string, error)) {
	managerID, err := parseManagerID(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Please provide a manager id. Usage: /%s <manager id>", command)
		return
	}
	text, err := render(ctx, managerID)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching %s: %s", command, escapeError(err))
	} else {
		msg.Text = text
	}
}

func (h *Handler) handlePlayer(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a player name. Usage: /player <player name>"
		return
	}
	text, err := h.reporter.PlayerText(ctx, args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error looking up player: %s", escapeError(err))
	} else {
		msg.Text = text
	}
}

func parseManagerID(args string) (int, error) {
	id, err := strconv.Atoi(args)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("manager id must be positive")
	}
	return id, nil
}

func escapeError(err error) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, err.Error())
}
