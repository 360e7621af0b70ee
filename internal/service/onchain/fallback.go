package onchain

// Per-asset fallback readings served when the market snapshot cannot be
// fetched at all. Values are plausible static figures, not live data; the
// DEFAULT entry covers assets outside the table.
type fallbackEntry struct {
	HashValue       string
	TransValue      string
	Dominance       string
	ActiveAddresses string
	NVTRatio        string
	TVL             string // empty means keep the computed default
	WhaleStatus     string
	ExchangeFlows   string
	MVRV            string
}

var fallbackTable = map[string]fallbackEntry{
	"BTC": {
		HashValue:       "650.12 EH/s",
		TransValue:      "$28,500,000,000",
		Dominance:       "54.2%",
		ActiveAddresses: "840,230 (Est.)",
		NVTRatio:        "45.2",
		WhaleStatus:     "High Activity",
		ExchangeFlows:   "Balanced",
		MVRV:            "1.8",
	},
	"ETH": {
		HashValue:       "$425,000,000,000",
		TransValue:      "$16,200,000,000",
		Dominance:       "17.8%",
		ActiveAddresses: "420,000 (Est.)",
		NVTRatio:        "26.2",
		TVL:             "$55,230,000,000",
		WhaleStatus:     "High Activity",
		ExchangeFlows:   "High Outflow (Buying)",
		MVRV:            "1.5",
	},
	"BNB": {
		HashValue:       "$85,000,000,000",
		TransValue:      "$1,200,000,000",
		Dominance:       "3.5%",
		ActiveAddresses: "1,200,000 (Est.)",
		NVTRatio:        "70.8",
		TVL:             "$3,400,000,000",
		WhaleStatus:     "Normal Activity",
		ExchangeFlows:   "Balanced",
		MVRV:            "1.2",
	},
	"XRP": {
		HashValue:       "$125,000,000,000",
		TransValue:      "$3,800,000,000",
		Dominance:       "5.2%",
		ActiveAddresses: "45,000 (Est.)",
		NVTRatio:        "32.9",
		WhaleStatus:     "High Activity",
		ExchangeFlows:   "Balanced",
		MVRV:            "1.4",
	},
	"SOL": {
		HashValue:       "$78,000,000,000",
		TransValue:      "$3,200,000,000",
		Dominance:       "3.2%",
		ActiveAddresses: "1,800,000 (Est.)",
		NVTRatio:        "24.4",
		TVL:             "$5,120,000,000",
		WhaleStatus:     "High Activity",
		ExchangeFlows:   "High Outflow (Buying)",
		MVRV:            "2.1",
	},
	"ADA": {
		HashValue:       "$28,000,000,000",
		TransValue:      "$580,000,000",
		Dominance:       "1.2%",
		ActiveAddresses: "85,000 (Est.)",
		NVTRatio:        "48.3",
		TVL:             "$250,000,000",
		WhaleStatus:     "Normal Activity",
		ExchangeFlows:   "Balanced",
		MVRV:            "0.9",
	},
	"DOGE": {
		HashValue:       "$18,500,000,000",
		TransValue:      "$850,000,000",
		Dominance:       "0.8%",
		ActiveAddresses: "120,000 (Est.)",
		NVTRatio:        "21.8",
		WhaleStatus:     "Normal Activity",
		ExchangeFlows:   "Balanced",
		MVRV:            "1.1",
	},
}

var fallbackDefault = fallbackEntry{
	HashValue:       "N/A",
	TransValue:      "N/A",
	Dominance:       "<0.01%",
	ActiveAddresses: "N/A",
	NVTRatio:        "N/A",
	TVL:             "N/A",
	WhaleStatus:     "Normal Activity",
	ExchangeFlows:   "Balanced",
	MVRV:            "N/A",
}

// Fallback returns the static entry for a coin ticker.
func Fallback(coin string) fallbackEntry {
	if e, ok := fallbackTable[coin]; ok {
		return e
	}
	return fallbackDefault
}

// backupTVL holds last-known TVL figures for DeFi assets, used when the
// TVL enrichment call fails. Membership also marks which assets get a
// live TVL lookup at all.
var backupTVL = map[string]string{
	"ETH":  "$55,230,000,000",
	"SOL":  "$5,120,000,000",
	"BNB":  "$3,400,000,000",
	"AVAX": "$950,000,000",
	"TRX":  "$8,100,000,000",
	"ADA":  "$250,000,000",
}

// coinIDs maps tickers to provider asset identifiers.
var coinIDs = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"XRP":  "ripple",
	"SOL":  "solana",
	"BNB":  "binancecoin",
	"ADA":  "cardano",
	"DOGE": "dogecoin",
	"TRX":  "tron",
	"AVAX": "avalanche-2",
	"LTC":  "litecoin",
}
