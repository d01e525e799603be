// Package chat implements the response-resolution pipeline: intent
// classification, rule-based canned answers, the yield calculator, and the
// remote-first resolver that ties them together.
package chat

import (
	"strings"
)

// Intent is the classified topic category of a user question.
type Intent int

const (
	IntentUnrecognized Intent = iota
	IntentProtocolOverview
	IntentTokenComparison
	IntentYieldCalculation
	IntentRiskSecurity
	IntentEligibility
	IntentRedemption
	IntentAddresses
	IntentGettingStarted
	IntentPriceNav
	IntentPoints
	IntentAcceptedTokens
	IntentHowItWorks
	IntentReinsuranceBasics
	IntentSupport
	IntentOffTopic
	IntentNonEnglish
)

var intentNames = map[Intent]string{
	IntentUnrecognized:      "unrecognized",
	IntentProtocolOverview:  "protocol_overview",
	IntentTokenComparison:   "token_comparison",
	IntentYieldCalculation:  "yield_calculation",
	IntentRiskSecurity:      "risk_security",
	IntentEligibility:       "eligibility",
	IntentRedemption:        "redemption",
	IntentAddresses:         "addresses",
	IntentGettingStarted:    "getting_started",
	IntentPriceNav:          "price_nav",
	IntentPoints:            "points",
	IntentAcceptedTokens:    "accepted_tokens",
	IntentHowItWorks:        "how_it_works",
	IntentReinsuranceBasics: "reinsurance_basics",
	IntentSupport:           "support",
	IntentOffTopic:          "off_topic",
	IntentNonEnglish:        "non_english",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unrecognized"
}

// intentRule pairs an intent with its trigger substrings. Rules are
// evaluated in declaration order and the first match wins; several intents
// share trigger words, so the order is part of the contract.
type intentRule struct {
	intent   Intent
	triggers []string
}

var intentRules = []intentRule{
	{IntentProtocolOverview, []string{"re protocol nedir", "what is re protocol", "protocol overview"}},
	{IntentTokenComparison, []string{"reusde vs reusd", "difference between reusde and reusd", "token comparison"}},
	{IntentYieldCalculation, []string{"calculate", "how much", "earn", "yield", "return", "apy", "calculator", "projection", "estimate"}},
	{IntentRiskSecurity, []string{"risk management", "safe", "security", "audit"}},
	{IntentEligibility, []string{"eligible", "who can participate", "kyc", "restricted"}},
	{IntentRedemption, []string{"redemption", "withdraw", "liquidity", "exit"}},
	{IntentAddresses, []string{"token address", "contract", "address"}},
	{IntentGettingStarted, []string{"deposit", "how to start", "getting started", "begin"}},
	{IntentPriceNav, []string{"token price", "price update", "nav", "valuation"}},
	{IntentPoints, []string{"points", "re points", "rewards"}},
	{IntentAcceptedTokens, []string{"accepted tokens", "what tokens", "deposit tokens"}},
	{IntentHowItWorks, []string{"how it works", "mechanism", "process"}},
	{IntentReinsuranceBasics, []string{"reinsurance", "insurance", "what is reinsurance"}},
	{IntentSupport, []string{"support", "contact", "help", "kyc fail"}},
}

// englishWords is the fixed set of English function and domain words used by
// the language gate. Inputs longer than three characters containing none of
// these (and no recognized off-domain term) are rejected as non-English.
var englishWords = []string{
	"what", "how", "when", "where", "why", "which", "who",
	"re", "protocol", "yield", "apy", "token", "usd", "usde",
	"deposit", "withdraw", "security", "risk", "kyc", "eligibility",
	"points", "address", "contract",
}

// offTopicWords are generic crypto/finance/chit-chat terms that are not
// about this protocol.
var offTopicWords = []string{
	"bitcoin", "ethereum", "crypto", "defi", "nft", "trading", "price",
	"market", "coin", "altcoin", "binance", "coinbase", "metamask",
	"wallet", "personal", "life", "weather", "news", "sports", "music",
	"movie", "game",
}

// ClassifyIntent maps free-form question text to an Intent. It is a pure
// function of the case-folded input.
func ClassifyIntent(text string) Intent {
	q := strings.ToLower(text)

	// Language gate: recognized off-domain vocabulary counts as English so
	// off-topic questions get the off-topic reply rather than the
	// English-only one. Short inputs bypass the gate entirely.
	if len(text) > 3 && !containsAny(q, englishWords) && !containsAny(q, offTopicWords) {
		return IntentNonEnglish
	}

	for _, rule := range intentRules {
		if containsAny(q, rule.triggers) {
			return rule.intent
		}
	}

	if containsAny(q, offTopicWords) {
		return IntentOffTopic
	}

	return IntentUnrecognized
}

func containsAny(q string, words []string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}
