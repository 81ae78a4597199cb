package ledger

import "github.com/jmcalloway/sportsettle/internal/domain"

// apiMarket is a market row as returned by the ledger's listing endpoint.
type apiMarket struct {
	MarketID       string `json:"market_id"`
	Question       string `json:"question"`
	ResolutionTime int64  `json:"resolution_time"`
	Resolved       int    `json:"resolved"`
	Outcome        string `json:"outcome"`
}

func (m apiMarket) toDomain() domain.Market {
	return domain.Market{
		ID:             m.MarketID,
		Question:       m.Question,
		ResolutionTime: m.ResolutionTime,
		Resolved:       m.Resolved != 0,
		Outcome:        domain.Outcome(m.Outcome),
	}
}

type listMarketsResponse struct {
	Markets []apiMarket `json:"markets"`
}

type resolveRequest struct {
	Outcome string `json:"outcome"`
}

type resolveResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
