package chat

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Fixed APY bounds per strategy, from the protocol documentation.
const (
	reUSDAPYLow   = 0.06
	reUSDAPYHigh  = 0.09
	reUSDeAPYLow  = 0.16
	reUSDeAPYHigh = 0.25
)

// Strategy identifies one of the two yield products.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyReUSD
	StrategyReUSDe
)

// YieldQuery is the parsed calculation request.
type YieldQuery struct {
	Amount  int64
	Filter  Strategy // StrategyNone means both strategies.
	Compare bool
}

// YieldProjection holds the deterministic projections for one strategy.
type YieldProjection struct {
	AnnualLow  float64
	AnnualHigh float64
	Monthly    float64
	Daily      float64
}

var digitsPattern = regexp.MustCompile(`\d+`)

// Parse failures map to user-facing prompts, never to system errors.
var (
	errNoAmount      = errors.New("no amount in question")
	errInvalidAmount = errors.New("amount must be positive")
)

// parseYieldQuery extracts the first integer literal and the strategy filter
// from the question.
func parseYieldQuery(text string) (YieldQuery, error) {
	match := digitsPattern.FindString(text)
	if match == "" {
		return YieldQuery{}, errNoAmount
	}
	amount, err := strconv.ParseInt(match, 10, 64)
	if err != nil || amount <= 0 {
		return YieldQuery{}, errInvalidAmount
	}

	q := strings.ToLower(text)
	query := YieldQuery{Amount: amount}
	// "reusd" is a prefix of "reusde", so reUSDe is checked second and wins.
	if strings.Contains(q, "reusd") && !strings.Contains(q, "reusde") {
		query.Filter = StrategyReUSD
	}
	if strings.Contains(q, "reusde") {
		query.Filter = StrategyReUSDe
	}
	query.Compare = strings.Contains(q, "compare") ||
		strings.Contains(q, "difference") ||
		strings.Contains(q, "vs")
	return query, nil
}

// project computes the projection for a strategy from its fixed APY bounds.
// Monthly and daily figures use the mean of the annual bounds.
func project(strategy Strategy, amount int64) YieldProjection {
	low, high := reUSDAPYLow, reUSDAPYHigh
	if strategy == StrategyReUSDe {
		low, high = reUSDeAPYLow, reUSDeAPYHigh
	}
	annualLow := float64(amount) * low
	annualHigh := float64(amount) * high
	mean := (annualLow + annualHigh) / 2
	return YieldProjection{
		AnnualLow:  annualLow,
		AnnualHigh: annualHigh,
		Monthly:    mean / 12,
		Daily:      mean / 365,
	}
}

// CalculateYield answers a yield-calculation question with a formatted
// projection, or a prompt when the question carries no usable amount. It
// never fails: input problems become user-facing prompts.
func CalculateYield(text string) string {
	query, err := parseYieldQuery(text)
	if errors.Is(err, errInvalidAmount) {
		return "Please provide a valid amount greater than 0."
	}
	if err != nil {
		return "Please specify an amount! For example: 'Calculate my yield for $1000' or 'What's the return for $5000 in reUSDe?'"
	}

	reUSD := project(StrategyReUSD, query.Amount)
	reUSDe := project(StrategyReUSDe, query.Amount)
	displayAmount := humanize.Comma(query.Amount)

	if query.Compare {
		reUSDRange := reUSD.AnnualHigh - reUSD.AnnualLow
		reUSDeRange := reUSDe.AnnualHigh - reUSDe.AnnualLow
		meanDelta := (reUSDe.AnnualLow+reUSDe.AnnualHigh)/2 - (reUSD.AnnualLow+reUSD.AnnualHigh)/2
		return fmt.Sprintf(`**🧮 Strategy Comparison Calculator - $%s:**

**reUSD (Basis-Plus):**
• Annual: $%.2f - $%.2f (Range: $%.2f)
• APY: 6%% - 9%%+
• Risk: Low

**reUSDe (Insurance Alpha):**
• Annual: $%.2f - $%.2f (Range: $%.2f)
• APY: 16%% - 25%%
• Risk: Higher

**📈 Difference:** reUSDe averages $%.2f more annually

*Choose reUSD for stability, reUSDe for higher returns.*`,
			displayAmount,
			reUSD.AnnualLow, reUSD.AnnualHigh, reUSDRange,
			reUSDe.AnnualLow, reUSDe.AnnualHigh, reUSDeRange,
			meanDelta)
	}

	switch query.Filter {
	case StrategyReUSD:
		return fmt.Sprintf(`**🧮 reUSD (Basis-Plus) Calculator - $%s:**

💰 **Annual Returns:** $%.2f - $%.2f
📅 **Monthly:** $%.2f
📊 **Daily:** $%.2f
🎯 **APY Range:** 6%% - 9%%+
🛡️ **Risk Level:** Low (Principal Protected)

*Delta-neutral ETH basis + T-bills + 250bps spread.*`,
			displayAmount, reUSD.AnnualLow, reUSD.AnnualHigh, reUSD.Monthly, reUSD.Daily)

	case StrategyReUSDe:
		return fmt.Sprintf(`**🧮 reUSDe (Insurance Alpha) Calculator - $%s:**

💰 **Annual Returns:** $%.2f - $%.2f
📅 **Monthly:** $%.2f
📊 **Daily:** $%.2f
🎯 **APY Range:** 16%% - 25%%
⚠️ **Risk Level:** Higher (First Loss Position)

*Insurance underwriting yields with higher risk.*`,
			displayAmount, reUSDe.AnnualLow, reUSDe.AnnualHigh, reUSDe.Monthly, reUSDe.Daily)
	}

	return fmt.Sprintf(`**🧮 Re Protocol Calculator - $%s:**

**reUSD (Basis-Plus):**
💰 Annual: $%.2f - $%.2f
📅 Monthly: $%.2f
📊 Daily: $%.2f
🎯 APY: 6%% - 9%%+
🛡️ Risk: Low

**reUSDe (Insurance Alpha):**
💰 Annual: $%.2f - $%.2f
📅 Monthly: $%.2f
📊 Daily: $%.2f
🎯 APY: 16%% - 25%%
⚠️ Risk: Higher

*Yields based on official Re Protocol documentation.*`,
		displayAmount,
		reUSD.AnnualLow, reUSD.AnnualHigh, reUSD.Monthly, reUSD.Daily,
		reUSDe.AnnualLow, reUSDe.AnnualHigh, reUSDe.Monthly, reUSDe.Daily)
}
