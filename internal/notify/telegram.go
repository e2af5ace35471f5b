// Package notify pushes arbitrage alerts to Telegram after aggregation
// cycles.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/oddscope/oddscope/internal/compare"
	"github.com/oddscope/oddscope/internal/pkg/models"
)

// Min interval between sends to the same chat; Telegram throttles around
// 30 messages per minute.
const sendInterval = 2 * time.Second

// TelegramNotifier scans each committed snapshot for arbitrage and sends one
// message per opportunity.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	mu       sync.Mutex
	lastSend time.Time
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	if _, err := bot.GetMe(); err != nil {
		return nil, fmt.Errorf("failed to verify telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// CycleCompleted implements aggregator.CycleObserver.
func (n *TelegramNotifier) CycleCompleted(ctx context.Context, snap models.RootSnapshot) {
	sports := make([]string, 0, len(snap.Odds))
	for name := range snap.Odds {
		sports = append(sports, name)
	}
	sort.Strings(sports)

	for _, sport := range sports {
		opps := compare.FindArbitrage(compare.Compare(snap.Odds[sport], "", ""))
		for _, opp := range opps {
			if ctx.Err() != nil {
				return
			}
			n.send(formatOpportunity(sport, opp))
		}
	}
}

func (n *TelegramNotifier) send(text string) {
	n.mu.Lock()
	if wait := sendInterval - time.Since(n.lastSend); wait > 0 {
		time.Sleep(wait)
	}
	n.lastSend = time.Now()
	n.mu.Unlock()

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		slog.Error("failed to send telegram alert", "error", err)
	}
}

func formatOpportunity(sport string, opp compare.ArbitrageOpportunity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Arbitrage: %s\n", sport)
	fmt.Fprintf(&b, "Event: %s\n", opp.Event.Name)
	fmt.Fprintf(&b, "Market: %s\n", opp.Market.Name)
	fmt.Fprintf(&b, "Profit: %.2f%%\n", opp.ProfitPercentage)
	for _, leg := range opp.Legs {
		fmt.Fprintf(&b, "  %s @ %+.0f (%s) stake %.1f%%\n",
			leg.Name, leg.Price, leg.Bookmaker, leg.Stake*100)
	}
	return b.String()
}
