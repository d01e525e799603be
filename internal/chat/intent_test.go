package chat

import (
	"testing"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{
			name: "Protocol overview question",
			text: "What is Re Protocol?",
			want: IntentProtocolOverview,
		},
		{
			name: "Turkish overview phrase is a known trigger",
			text: "re protocol nedir",
			want: IntentProtocolOverview,
		},
		{
			name: "Token comparison",
			text: "reUSDe vs reUSD",
			want: IntentTokenComparison,
		},
		{
			name: "Yield calculation",
			text: "calculate my yield for $1000",
			want: IntentYieldCalculation,
		},
		{
			name: "Risk and security",
			text: "has the protocol been through an audit?",
			want: IntentRiskSecurity,
		},
		{
			name: "Eligibility",
			text: "who can participate?",
			want: IntentEligibility,
		},
		{
			name: "KYC matches eligibility before support",
			text: "kyc fail",
			want: IntentEligibility,
		},
		{
			name: "Redemption",
			text: "how do I withdraw my funds?",
			want: IntentRedemption,
		},
		{
			name: "Addresses",
			text: "what is the token address?",
			want: IntentAddresses,
		},
		{
			name: "Getting started",
			text: "how to start with a deposit",
			want: IntentGettingStarted,
		},
		{
			name: "Price and NAV",
			text: "what is the nav of the token?",
			want: IntentPriceNav,
		},
		{
			name: "Points",
			text: "how do re points work?",
			want: IntentPoints,
		},
		{
			name: "Accepted tokens",
			text: "what tokens can I use?",
			want: IntentAcceptedTokens,
		},
		{
			name: "How it works",
			text: "explain the protocol mechanism",
			want: IntentHowItWorks,
		},
		{
			name: "Reinsurance basics",
			text: "what is reinsurance?",
			want: IntentReinsuranceBasics,
		},
		{
			name: "Support",
			text: "how do I contact the team?",
			want: IntentSupport,
		},
		{
			name: "External crypto price is off-topic, not price-nav",
			text: "bitcoin price today",
			want: IntentOffTopic,
		},
		{
			name: "Unrelated chit-chat is off-topic",
			text: "how is the weather in your city",
			want: IntentOffTopic,
		},
		{
			name: "Gibberish with no recognized vocabulary",
			text: "asdfqwerty",
			want: IntentNonEnglish,
		},
		{
			name: "Short input bypasses the language gate",
			text: "hi",
			want: IntentUnrecognized,
		},
		{
			name: "Three-character input bypasses the language gate",
			text: "abc",
			want: IntentUnrecognized,
		},
		{
			name: "Empty input",
			text: "",
			want: IntentUnrecognized,
		},
		{
			name: "English but unrecognized falls through to help",
			text: "what color is the logo",
			want: IntentUnrecognized,
		},
		{
			name: "Classification is case-insensitive",
			text: "CALCULATE MY YIELD",
			want: IntentYieldCalculation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyIntent(tt.text)
			if got != tt.want {
				t.Errorf("ClassifyIntent(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyIntentIsDeterministic(t *testing.T) {
	inputs := []string{
		"what is re protocol",
		"calculate yield for $500",
		"bitcoin price today",
		"asdfqwerty",
	}
	for _, input := range inputs {
		first := ClassifyIntent(input)
		for i := 0; i < 10; i++ {
			if got := ClassifyIntent(input); got != first {
				t.Fatalf("ClassifyIntent(%q) changed between calls: %v then %v", input, first, got)
			}
		}
	}
}

func TestEveryIntentHasAResponse(t *testing.T) {
	for intent := IntentUnrecognized; intent <= IntentNonEnglish; intent++ {
		resp := ResponseFor(intent)
		if resp == "" {
			t.Errorf("ResponseFor(%v) returned empty response", intent)
		}
	}
}
