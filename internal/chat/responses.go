package chat

// Canned response catalog: one fixed template per intent. The yield
// calculation intent is handled by the calculator instead of a template.
var cannedResponses = map[Intent]string{
	IntentProtocolOverview: "The Re Protocol is a decentralized platform that bridges traditional insurance markets and DeFi. " +
		"It allows users to deposit stablecoins (USDC, DAI, USDe, sUSDe) into Insurance Capital Layers (ICL) which allocate capital " +
		"to fully-collateralized quota-share reinsurance contracts through licensed insurers. The protocol offers two main strategies: " +
		"reUSD (Basis-Plus) for low-volatility yields and reUSDe (Insurance Alpha) for high underwriting yields. " +
		"All operations are transparent with on-chain reporting and daily NAV updates.",

	IntentTokenComparison: `**reUSDe (Insurance Alpha):**
• Accepted Collateral: USDe, sUSDe
• Strategy: Insurance underwriting yields (16%-25% APY)
• Risk: First loss position, absorbs portfolio deficits
• Ideal for: Ethena community wanting high yield via reinsurance

**reUSD (Basis-Plus):**
• Accepted Collateral: USDC, DAI, USDe/sUSDe
• Strategy: Delta-neutral ETH basis + T-bills + 250bps spread (6%-9%+ APY)
• Risk: Principal protected, senior position
• Ideal for: Stablecoin holders seeking steady income without underwriting exposure`,

	IntentRiskSecurity: `**Security & Risk Management:**
• All ICLs participate in fully collateralized quota-share reinsurance notes backed by licensed insurance companies
• All collateral is on-chain and held in trust accounts with daily Fireblocks sweeps
• Multi-signature wallets for critical operations
• Regular third-party audits (Hacken, Certora)
• Emergency pause mechanisms and recovery wallets
• KYC/AML verification mandatory for all participants
• Real-time on-chain reporting via Chainlink oracles`,

	IntentEligibility: `**Eligibility Requirements:**
• Global access excluding U.S. and restricted jurisdictions
• Restricted countries: U.S., Iran, North Korea, Syria, Russia, Belarus, Cuba
• KYC/AML verification is mandatory for all participants
• If KYC fails: funds remain in escrow, contact support@re.xyz
• Support typically responds within 2-3 business days`,

	IntentRedemption: `**Redemption Process:**

**reUSD:**
• Instant redemptions from protocol buffer until exhausted
• Falls back to quarterly windows when buffer depleted
• Curve Finance liquidity pools available

**reUSDe:**
• Quarterly redemption windows only
• Pro-rata fulfillment based on available surplus
• No instant redemption buffer

**Liquidity Sources:**
• On-chain idle balances
• Actuarially released surplus from maturing treaties
• Curve Finance pools (reUSD/USDC, reUSDe/sUSDe)`,

	IntentAddresses: `**Smart Contract Addresses:**

**reUSD:**
• Ethereum: 0x5086bf358635B81D8C47C66d1C8b9E567Db70c72
• Avalanche: 0x180aF87b47Bf272B2df59dccf2D76a6eaFa625Bf
• Arbitrum: 0x76cE01F0Ef25AA66cC5F1E546a005e4A63B25609
• Base: 0x7D214438D0F27AfCcC23B3d1e1a53906aCE5CFEa

**reUSDe:**
• Ethereum: 0xdDC0f880ff6e4e22E4B74632fBb43Ce4DF6cCC5a

**ICL Addresses:**
• Ethereum ICL: 0x4691C475bE804Fa85f91c2D6D0aDf03114de3093
• Avalanche ICL: 0xb22a8533e6cd81598f82514a42F0B3161745fbe1
• Arbitrum ICL: 0x802eDbB1Ec20548A4388ABC337E4011718eb0291`,

	IntentGettingStarted: `**Getting Started with Re Protocol:**

1. **Visit Platform:** Go to app.re.xyz
2. **Connect Wallet:** Use MetaMask or compatible wallet
3. **Complete KYC:** Submit required documentation
4. **Choose Strategy:** Select reUSDe (Insurance Alpha) or reUSD (Basis-Plus)
5. **Deposit Assets:** Stake approved tokens (USDC, DAI, USDe, sUSDe)
6. **Receive Tokens:** Get corresponding reUSD or reUSDe tokens
7. **Monitor Performance:** Track yields and portfolio via dashboard

**Accepted Tokens:**
• Traditional stablecoins: USDC, DAI, AUSD
• Ethena tokens: USDe, sUSDe

For detailed information, check https://docs.re.xyz/`,

	IntentPriceNav: `**Token Price & NAV Updates:**

• **Update Frequency:** Daily at UTC 00:00
• **reUSD Pricing:** Tracks higher of (7-day avg SOFR + 250bps) or (Ethena basis yield + 250bps)
• **reUSDe Pricing:** Compounds daily toward quarterly Target NAV (tNAV)
• **Price Feed:** JSON feed pushed on-chain via Chainlink
• **Current Prices:** Check api.re.xyz/apy/get-apy
• **Transparency:** All calculations and updates are publicly verifiable on-chain`,

	IntentPoints: `**Re Points System:**

**Daily Point Accrual:**
• reUSD: 5x multiplier
• reUSDe: 5x multiplier
• Pendle LP (reUSD|reUSDe): 12x multiplier
• Pendle YT (reUSD|reUSDe): 6.5x multiplier
• Curve LP pools: 20x multiplier
• Morpho borrowing: Continue earning 5x on collateral

**Example:** 10,000 reUSD tokens = 50,000 points per day

**Requirements:**
• Must hold Re assets to accrue points
• Accrual stops when assets leave wallet
• KYC compliance required
• Points are retained even if you exit and return later`,

	IntentAcceptedTokens: `**Accepted Tokens for Deposit:**

**Traditional Stablecoins:**
• USDC
• DAI
• AUSD
• Others (check app for latest list)

**Ethena Tokens:**
• USDe
• sUSDe

**Token Selection:**
• reUSDe (Insurance Alpha): Accepts USDe, sUSDe
• reUSD (Basis-Plus): Accepts USDC, DAI, USDe/sUSDe

**Check Latest:** Visit app.re.xyz/reusd or app.re.xyz/reusde for most up-to-date accepted assets`,

	IntentHowItWorks: `**How Re Protocol Works:**

1. **Capital Staking:** Users deposit stablecoins into ICL smart contracts
2. **Token Minting:** Receive reUSD (principal protected) or reUSDe (profit sharing)
3. **Daily Sweeps:** Idle funds move to Fireblocks vaults for secure custody
4. **Surplus Notes:** Capital deployed to licensed reinsurers via legally binding agreements
5. **Trust Accounts:** Funds held in §114 Trust accounts providing regulatory collateral
6. **Yield Generation:** Earn from reinsurance premiums or delta-neutral strategies
7. **Transparency:** All operations recorded on-chain with real-time reporting
8. **Redemptions:** Instant (reUSD) or quarterly (reUSDe) based on available liquidity`,

	IntentReinsuranceBasics: `**What is Reinsurance?**

Reinsurance is 'insurance for insurance companies' - a mechanism where insurance companies transfer part of their risk portfolio to reinsurers. This allows insurers to:

• **Diversify Risk:** Reduce exposure to concentrated risks like natural disasters
• **Enhance Capital Efficiency:** Free up capital to underwrite more policies
• **Stabilize Loss Ratios:** Reinsurers absorb extraordinary losses

**Re Protocol Focus:**
• Non-catastrophic, low-volatility, short-duration programs
• Auto insurance, commercial liability, property insurance
• Collateral typically released after 18 months
• Steady, predictable returns from insurance premiums`,

	IntentSupport: `**Support & Contact Information:**

**General Support:**
• Email: support@re.xyz
• Website: re.xyz
• Telegram: t.me/re_protocol
• Discord: discord.gg/tP2qDjzE
• Twitter: @re
• LinkedIn: linkedin.com/company/re-protocol

**KYC Issues:**
• If KYC fails: funds remain in escrow
• Contact: staking@re.xyz
• Response time: 2-3 business days
• Can request refund if KYC cannot be completed

**Emergency:**
• Recovery wallet: 0xDf6bF2713b5c7CA724E684657280bC407938F447`,

	IntentOffTopic: "I can only help with Re Protocol questions. Please ask about reUSD, reUSDe, yields, security, or getting started with Re Protocol.",

	IntentNonEnglish: "Please ask your question in English only. I can only respond in English.",

	IntentUnrecognized: `I'm here to help with Re Protocol questions and calculations! Ask me about:

• Token strategies (reUSD vs reUSDe)
• Yield calculations and APY
• Risk management and security
• Getting started and deposits
• Redemption processes
• Token addresses and contracts
• Points system and rewards
• Eligibility and KYC requirements

🧮 **CALCULATOR FEATURES:**
• Calculate yields for any amount
• Compare reUSD vs reUSDe returns
• Project earnings over time
• Risk assessment calculations

Try: "Calculate my yield for $1000 in reUSDe" or "What's the difference between reUSD and reUSDe returns?"`,
}

// ResponseFor returns the canned template for an intent. Unknown intents get
// the help menu.
func ResponseFor(intent Intent) string {
	if resp, ok := cannedResponses[intent]; ok {
		return resp
	}
	return cannedResponses[IntentUnrecognized]
}
