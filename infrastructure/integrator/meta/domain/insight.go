package metadomain

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRecord é uma linha do edge /insights; o Graph API devolve números como texto
type InsightRecord struct {
	AccountID    string   `json:"account_id,omitempty"`
	CampaignID   string   `json:"campaign_id,omitempty"`
	CampaignName string   `json:"campaign_name,omitempty"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
	Spend        string   `json:"spend"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	CTR          string   `json:"ctr"`
	CPC          string   `json:"cpc"`
	Actions      []Action `json:"actions,omitempty"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors  Cursors `json:"cursors"`
	Next     string  `json:"next,omitempty"`
	Previous string  `json:"previous,omitempty"`
}

// NextURL retorna a próxima página, vazio quando não há
func (p *Paging) NextURL() string {
	if p == nil {
		return ""
	}
	return p.Next
}

type InsightsPage struct {
	Data   []InsightRecord `json:"data"`
	Paging *Paging         `json:"paging,omitempty"`
}
