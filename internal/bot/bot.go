package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	"github.com/soldhq/sales-ledger/internal/ingest"
	"github.com/soldhq/sales-ledger/internal/summary"
	"github.com/soldhq/sales-ledger/pkg/config"
	pkgerrors "github.com/soldhq/sales-ledger/pkg/errors"
	"github.com/soldhq/sales-ledger/pkg/logger"
)

// RateStore is the slice of the configuration store the bot uses.
type RateStore interface {
	CommissionRate(ctx context.Context) (decimal.Decimal, error)
	SetCommissionRate(ctx context.Context, rate decimal.Decimal) (decimal.Decimal, error)
}

// Bot relays operator commands from a Discord channel into the ledger.
// Commands:
//
//	!log <product> <amount> [notes...]   record a sale
//	!sales <day|week|month>              aggregate summary
//	!rate                                show the commission rate
//	!rate <percent>                      change the rate (admin role only)
type Bot struct {
	session     *discordgo.Session
	ingest      ingest.Service
	summaries   summary.Service
	rates       RateStore
	channelID   string
	adminRoleID string
	logg        *logger.Logger
}

type Params struct {
	Discord   config.DiscordConfig
	Ingest    ingest.Service
	Summaries summary.Service
	Rates     RateStore
	Logger    *logger.Logger
}

func New(params Params) (*Bot, error) {
	if params.Discord.BotToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "discord bot token required")
	}
	if params.Ingest == nil || params.Summaries == nil || params.Rates == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "bot services required")
	}

	session, err := discordgo.New("Bot " + params.Discord.BotToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create discord session")
	}

	b := &Bot{
		session:     session,
		ingest:      params.Ingest,
		summaries:   params.Summaries,
		rates:       params.Rates,
		channelID:   params.Discord.ChannelID,
		adminRoleID: params.Discord.AdminRoleID,
		logg:        params.Logger,
	}

	session.AddHandler(b.handleMessage)
	session.Identify.Intents = discordgo.IntentGuildMessages | discordgo.IntentMessageContent

	return b, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open discord connection")
	}
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}
	if b.channelID != "" && m.ChannelID != b.channelID {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if b.logg != nil {
		ctx = b.logg.WithSource(ctx, "discord")
	}

	args := strings.Fields(m.Content)
	if len(args) == 0 {
		return
	}

	var reply string
	switch args[0] {
	case "!log":
		reply = b.handleLog(ctx, m, args[1:])
	case "!sales":
		reply = b.handleSales(ctx, args[1:])
	case "!rate":
		reply = b.handleRate(ctx, m, args[1:])
	case "!help":
		reply = "Commands: `!log <product> <amount> [notes...]`, `!sales <day|week|month>`, `!rate [percent]`"
	default:
		return
	}

	if reply != "" {
		s.ChannelMessageSend(m.ChannelID, reply)
	}
}

func (b *Bot) handleLog(ctx context.Context, m *discordgo.MessageCreate, args []string) string {
	input, err := parseLogArgs(args)
	if err != nil {
		return fmt.Sprintf("Usage: `!log <product> <amount> [notes...]` (%s)", err.Error())
	}
	input.SellerID = m.Author.ID
	input.SellerTag = m.Author.Username

	sale, err := b.ingest.SubmitSale(ctx, input)
	if err != nil {
		return commandError(err)
	}
	return fmt.Sprintf("Recorded %s: %s (commission %s)", sale.Product, sale.Amount.String(), sale.Commission.String())
}

func (b *Bot) handleSales(ctx context.Context, args []string) string {
	period := "day"
	if len(args) > 0 {
		period = args[0]
	}

	result, err := b.summaries.Query(ctx, period)
	if err != nil {
		return commandError(err)
	}
	return fmt.Sprintf("Sales this %s: %d records, total %s, commission %s",
		result.Period, result.Count, result.TotalAmount.String(), result.TotalCommission.String())
}

func (b *Bot) handleRate(ctx context.Context, m *discordgo.MessageCreate, args []string) string {
	if len(args) == 0 {
		rate, err := b.rates.CommissionRate(ctx)
		if err != nil {
			return commandError(err)
		}
		return fmt.Sprintf("Commission rate: %s%%", rate.String())
	}

	if !b.isAdmin(m) {
		return "Only admins can change the commission rate."
	}

	rate, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Sprintf("Invalid rate %q; use a number like `!rate 12.5`", args[0])
	}

	applied, err := b.rates.SetCommissionRate(ctx, rate)
	if err != nil {
		return commandError(err)
	}
	return fmt.Sprintf("Commission rate set to %s%%. Existing sales keep their recorded commission.", applied.String())
}

// isAdmin checks the configured admin role. With no role configured
// every channel member may change the rate.
func (b *Bot) isAdmin(m *discordgo.MessageCreate) bool {
	if b.adminRoleID == "" {
		return true
	}
	if m.Member == nil {
		return false
	}
	for _, role := range m.Member.Roles {
		if role == b.adminRoleID {
			return true
		}
	}
	return false
}

func parseLogArgs(args []string) (ingest.SubmitInput, error) {
	if len(args) < 2 {
		return ingest.SubmitInput{}, fmt.Errorf("product and amount required")
	}

	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return ingest.SubmitInput{}, fmt.Errorf("amount %q is not a number", args[1])
	}

	input := ingest.SubmitInput{
		Product: args[0],
		Amount:  amount,
		Source:  ingest.SourceCommand,
	}
	if len(args) > 2 {
		notes := strings.Join(args[2:], " ")
		input.Notes = &notes
	}
	return input, nil
}

func commandError(err error) string {
	if coded := pkgerrors.As(err); coded != nil {
		switch coded.Code() {
		case pkgerrors.CodeValidation:
			return fmt.Sprintf("Rejected: %s", coded.Message())
		case pkgerrors.CodeDependency:
			return "Storage is unavailable, try again shortly."
		}
	}
	return "Something went wrong handling that command."
}
