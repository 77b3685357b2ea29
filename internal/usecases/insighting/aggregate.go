package insighting

import (
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-insights-api/internal/domain"
	"github.com/vfg2006/ads-insights-api/pkg/utils"
)

type recordMetrics struct {
	spend       float64
	impressions int64
	clicks      int64
	ctr         float64
	conversions int64
}

// Aggregate consolida os registros em totais, série diária e, no nível campaign, uma linha por registro.
// CTR e CPC saem dos totais, nunca da média dos registros.
func Aggregate(records []domain.InsightRecord, level domain.InsightLevel) domain.InsightsReport {
	var totalSpend float64
	var totalImpressions, totalClicks, totalConversions int64

	byDate := make(map[string]*domain.ChartPoint)
	campaigns := make([]domain.CampaignRow, 0)

	for _, record := range records {
		parsed := parseRecord(record)

		totalSpend += parsed.spend
		totalImpressions += parsed.impressions
		totalClicks += parsed.clicks
		totalConversions += parsed.conversions

		if record.DateStart != "" {
			point, exists := byDate[record.DateStart]
			if !exists {
				point = &domain.ChartPoint{Date: record.DateStart}
				byDate[record.DateStart] = point
			}

			point.Spend += parsed.spend
			point.Impressions += parsed.impressions
			point.Clicks += parsed.clicks
			point.Conversions += parsed.conversions
		}

		if level == domain.InsightLevelCampaign {
			campaigns = append(campaigns, domain.CampaignRow{
				Key:         record.CampaignID,
				Name:        record.CampaignName,
				Spend:       utils.RoundWithTwoDecimalPlace(parsed.spend),
				Impressions: parsed.impressions,
				Clicks:      parsed.clicks,
				CTR:         utils.RoundWithTwoDecimalPlace(parsed.ctr),
				Conversions: parsed.conversions,
			})
		}
	}

	series := make([]domain.ChartPoint, 0, len(byDate))
	for _, point := range byDate {
		point.Spend = utils.RoundWithTwoDecimalPlace(point.Spend)
		series = append(series, *point)
	}

	// YYYY-MM-DD ordena corretamente como texto
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})

	return domain.InsightsReport{
		Summary:   summarize(totalSpend, totalImpressions, totalClicks, totalConversions),
		Series:    series,
		Campaigns: campaigns,
	}
}

func summarize(spend float64, impressions, clicks, conversions int64) domain.AggregatedMetrics {
	summary := domain.AggregatedMetrics{
		Spend:       utils.RoundWithTwoDecimalPlace(spend),
		Impressions: impressions,
		Clicks:      clicks,
		Conversions: conversions,
	}

	if impressions > 0 {
		summary.CTR = utils.RoundWithTwoDecimalPlace(float64(clicks) / float64(impressions) * 100)
	}

	if clicks > 0 {
		summary.CPC = utils.RoundWithTwoDecimalPlace(spend / float64(clicks))
	}

	return summary
}

// parseRecord converte os campos em texto; valores inválidos contam como zero
func parseRecord(record domain.InsightRecord) recordMetrics {
	return recordMetrics{
		spend:       parseFloatField(record, "spend", record.Spend),
		impressions: parseIntField(record, "impressions", record.Impressions),
		clicks:      parseIntField(record, "clicks", record.Clicks),
		ctr:         parseFloatField(record, "ctr", record.CTR),
		conversions: extractConversions(record.Actions),
	}
}

// extractConversions usa a primeira ação da lista de conversões; sem correspondência conta zero
func extractConversions(actions []domain.Action) int64 {
	for _, action := range actions {
		if !domain.IsConversionAction(action.ActionType) {
			continue
		}

		value, ok := utils.ParseInt(action.Value)
		if !ok || value < 0 {
			return 0
		}
		return value
	}

	return 0
}

func parseFloatField(record domain.InsightRecord, field, value string) float64 {
	f, ok := utils.ParseFloat(value)
	if !ok {
		warnMalformed(record, field, value)
		return 0
	}
	return f
}

// parseIntField lê contagens (impressões, cliques); negativos contam zero
func parseIntField(record domain.InsightRecord, field, value string) int64 {
	i, ok := utils.ParseInt(value)
	if !ok || i < 0 {
		warnMalformed(record, field, value)
		return 0
	}
	return i
}

func warnMalformed(record domain.InsightRecord, field, value string) {
	if value == "" {
		return
	}

	logrus.WithFields(logrus.Fields{
		"date_start":  record.DateStart,
		"campaign_id": record.CampaignID,
		"field":       field,
		"value":       value,
	}).Warn("insights: malformed numeric field, counting as zero")
}
