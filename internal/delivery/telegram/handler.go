package telegram

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/yourusername/store-assistant/internal/usecase"
)

// maxMessageLen Telegram rejects longer texts, counted in UTF-16 code units
const maxMessageLen = 4096

// BotHandler Telegram bot handler
type BotHandler struct {
	bot            *tgbotapi.BotAPI
	chatUseCase    usecase.ChatUseCase
	productUseCase usecase.ProductUseCase
	currency       string
	logger         zerolog.Logger
}

// NewBotHandler connects to the Bot API with token
func NewBotHandler(
	token string,
	chatUseCase usecase.ChatUseCase,
	productUseCase usecase.ProductUseCase,
	currency string,
	logger zerolog.Logger,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	h := newHandler(chatUseCase, productUseCase, currency, logger)
	h.bot = bot
	return h, nil
}

func newHandler(chatUseCase usecase.ChatUseCase, productUseCase usecase.ProductUseCase, currency string, logger zerolog.Logger) *BotHandler {
	if currency == "" {
		currency = usecase.DefaultCurrency
	}
	return &BotHandler{
		chatUseCase:    chatUseCase,
		productUseCase: productUseCase,
		currency:       currency,
		logger:         logger.With().Str("component", "telegram").Logger(),
	}
}

// Start long-polls updates until ctx is done
func (h *BotHandler) Start(ctx context.Context) error {
	h.logger.Info().Str("bot", h.bot.Self.UserName).Msg("bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Msg("bot stopping")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go h.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage answers one incoming message
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	reply := h.replyFor(ctx, message)
	if reply == "" {
		return
	}
	h.sendMessageMarkdown(message.Chat.ID, reply)
}

// replyFor text to send back, empty when the update needs no answer
func (h *BotHandler) replyFor(ctx context.Context, message *tgbotapi.Message) string {
	if message.IsCommand() {
		return h.handleCommand(message)
	}
	if strings.TrimSpace(message.Text) == "" {
		return ""
	}
	return h.chatUseCase.ProcessMessage(ctx, message.Text)
}

func (h *BotHandler) handleCommand(message *tgbotapi.Message) string {
	switch message.Command() {
	case "start":
		return h.getWelcomeMessage()
	case "help":
		return h.getHelpMessage()
	case "trending", "products":
		return h.trendingText()
	default:
		return "Unknown command. Try /help."
	}
}

func (h *BotHandler) getWelcomeMessage() string {
	return "Hi! I am the store assistant. Ask me where a product is, whether it is in stock, " +
		"or what I would recommend."
}

func (h *BotHandler) getHelpMessage() string {
	return "Just type what you are looking for, for example \"where is milk\".\n\n" +
		"/trending - popular products\n" +
		"/help - this message"
}

func (h *BotHandler) trendingText() string {
	products := h.productUseCase.Trending()
	if len(products) == 0 {
		return "The catalog is empty right now."
	}

	var sb strings.Builder
	sb.WriteString("Trending products:\n")
	length := textLen(sb.String())
	for i, p := range products {
		line := fmt.Sprintf("%d. %s - %s%s (%s)\n", i+1, p.Name, h.currency, usecase.FormatPrice(p.Price), p.Stock.Label())
		n := textLen(line)
		if length+n > maxMessageLen {
			break
		}
		sb.WriteString(line)
		length += n
	}
	return strings.TrimRight(sb.String(), "\n")
}

// sendMessageMarkdown retries as plain text when Telegram rejects the markup
func (h *BotHandler) sendMessageMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, truncate(text, maxMessageLen))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := h.bot.Send(msg); err == nil {
		return
	}

	msg.ParseMode = ""
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Error().Err(err).Int64("chat_id", chatID).Msg("send message")
	}
}

// truncate cuts text to at most n UTF-16 units without splitting a character
func truncate(text string, n int) string {
	units := 0
	for i, r := range text {
		units += runeLen(r)
		if units > n {
			return text[:i]
		}
	}
	return text
}

func textLen(text string) int {
	units := 0
	for _, r := range text {
		units += runeLen(r)
	}
	return units
}

func runeLen(r rune) int {
	if l := utf16.RuneLen(r); l > 0 {
		return l
	}
	return 1
}
