package telegram

import (
	"fmt"
	"strings"

	"go-career-scraper/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxListed bounds the postings listed in one summary message.
const maxListed = 10

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// escapeURL escapes what MarkdownV2 forbids inside a link target.
func escapeURL(u string) string {
	return strings.NewReplacer(")", "\\)", "\\", "\\\\").Replace(u)
}

// SummaryText renders a MarkdownV2 summary of one scraped career page.
func SummaryText(careerURL string, records []models.JobRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 *%d jobs* scraped from %s\n", len(records), escapeMarkdown(careerURL))

	for i, r := range records {
		if i == maxListed {
			fmt.Fprintf(&b, "…and %d more\n", len(records)-maxListed)
			break
		}
		fmt.Fprintf(&b, "\n🏢 *%s*\n", escapeMarkdown(r.CompanyName))
		fmt.Fprintf(&b, "💼 [%s](%s)\n", escapeMarkdown(r.JobTitle), escapeURL(r.ApplyLink))
		if r.JobLocation != models.NotSpecified || r.WorkLocation != models.NotSpecified {
			fmt.Fprintf(&b, "📍 %s \\(%s\\)\n", escapeMarkdown(r.JobLocation), escapeMarkdown(r.WorkLocation))
		}
		if r.Experience != models.NotSpecified {
			fmt.Fprintf(&b, "🎯 %s\n", escapeMarkdown(r.Experience))
		}
	}
	return b.String()
}

func (b *Bot) SendSummary(careerURL string, records []models.JobRecord) error {
	msg := tgbotapi.NewMessage(b.chatID, SummaryText(careerURL, records))
	msg.ParseMode = "MarkdownV2"
	msg.DisableWebPagePreview = true
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
