package domain

type InsightLevel string

const (
	InsightLevelAccount  InsightLevel = "account"
	InsightLevelCampaign InsightLevel = "campaign"
)

// ConversionActionType são os tipos de ação contados como conversão
type ConversionActionType string

const (
	ConversionPurchase             ConversionActionType = "purchase"
	ConversionLead                 ConversionActionType = "lead"
	ConversionCompleteRegistration ConversionActionType = "complete_registration"
)

var conversionActionTypes = map[ConversionActionType]struct{}{
	ConversionPurchase:             {},
	ConversionLead:                 {},
	ConversionCompleteRegistration: {},
}

func IsConversionAction(actionType string) bool {
	_, ok := conversionActionTypes[ConversionActionType(actionType)]
	return ok
}

type InsightsRequest struct {
	AdAccountID string   `json:"ad_account_id" validate:"required"`
	StartDate   string   `json:"start_date" validate:"required,isodate"`
	EndDate     string   `json:"end_date" validate:"required,isodate"`
	Level       string   `json:"level,omitempty" validate:"omitempty,oneof=account campaign"`
	Breakdown   []string `json:"breakdown,omitempty"`
}

// InsightLevel retorna o nível pedido, account quando omitido
func (r *InsightsRequest) InsightLevel() InsightLevel {
	if r.Level == "" {
		return InsightLevelAccount
	}
	return InsightLevel(r.Level)
}

// InsightQuery é a consulta enviada ao edge de insights
type InsightQuery struct {
	AdAccountID string
	StartDate   string
	EndDate     string
	Level       InsightLevel
	Breakdowns  []string
}

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRecord é uma linha bruta do relatório, com números em texto
type InsightRecord struct {
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
	CampaignID   string   `json:"campaign_id,omitempty"`
	CampaignName string   `json:"campaign_name,omitempty"`
	Spend        string   `json:"spend"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	CTR          string   `json:"ctr"`
	CPC          string   `json:"cpc"`
	Actions      []Action `json:"actions,omitempty"`
}

type AggregatedMetrics struct {
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
	CPC         float64 `json:"cpc"`
	Conversions int64   `json:"conversions"`
}

type ChartPoint struct {
	Date        string  `json:"date"`
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Conversions int64   `json:"conversions"`
}

type CampaignRow struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
	Conversions int64   `json:"conversions"`
}

type InsightsReport struct {
	Summary   AggregatedMetrics `json:"metrics"`
	Series    []ChartPoint      `json:"chart_data"`
	Campaigns []CampaignRow     `json:"campaigns"`
}

type InsightsAccount struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type InsightsPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type DashboardInsights struct {
	InsightsReport
	Account      InsightsAccount `json:"account"`
	Period       InsightsPeriod  `json:"period"`
	TotalRecords int             `json:"total_records"`
}

type DashboardInsightsResponse struct {
	Success bool               `json:"success"`
	Data    *DashboardInsights `json:"data"`
}
