package insighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-insights-api/internal/domain"
)

func TestAggregate_Scenario(t *testing.T) {
	records := []domain.InsightRecord{
		{
			DateStart:   "2024-01-02",
			Spend:       "100.00",
			Impressions: "1000",
			Clicks:      "20",
			Actions:     []domain.Action{{ActionType: "lead", Value: "2"}},
		},
		{
			DateStart:   "2024-01-01",
			Spend:       "50.00",
			Impressions: "500",
			Clicks:      "10",
			Actions:     []domain.Action{},
		},
	}

	report := Aggregate(records, domain.InsightLevelAccount)

	assert.Equal(t, domain.AggregatedMetrics{
		Spend:       150,
		Impressions: 1500,
		Clicks:      30,
		CTR:         2.00,
		CPC:         5.00,
		Conversions: 2,
	}, report.Summary)

	assert.Equal(t, []domain.ChartPoint{
		{Date: "2024-01-01", Spend: 50, Impressions: 500, Clicks: 10, Conversions: 0},
		{Date: "2024-01-02", Spend: 100, Impressions: 1000, Clicks: 20, Conversions: 2},
	}, report.Series)

	assert.NotNil(t, report.Campaigns)
	assert.Empty(t, report.Campaigns)
}

func TestAggregate_RatiosComeFromTotals(t *testing.T) {
	// Média dos CTRs seria 5.5 e média dos CPCs seria 5.5
	records := []domain.InsightRecord{
		{DateStart: "2024-01-01", Spend: "10", Impressions: "100", Clicks: "10", CTR: "10", CPC: "1"},
		{DateStart: "2024-01-02", Spend: "90", Impressions: "900", Clicks: "9", CTR: "1", CPC: "10"},
	}

	summary := Aggregate(records, domain.InsightLevelAccount).Summary

	assert.Equal(t, 1.9, summary.CTR)
	assert.Equal(t, 5.26, summary.CPC)
}

func TestAggregate_ZeroDivisors(t *testing.T) {
	records := []domain.InsightRecord{
		{DateStart: "2024-01-01", Spend: "12.50", Impressions: "0", Clicks: "0"},
	}

	summary := Aggregate(records, domain.InsightLevelAccount).Summary

	assert.Equal(t, 12.5, summary.Spend)
	assert.Zero(t, summary.CTR)
	assert.Zero(t, summary.CPC)
}

func TestAggregate_EmptyInput(t *testing.T) {
	report := Aggregate(nil, domain.InsightLevelCampaign)

	assert.Equal(t, domain.AggregatedMetrics{}, report.Summary)
	assert.NotNil(t, report.Series)
	assert.Empty(t, report.Series)
	assert.NotNil(t, report.Campaigns)
	assert.Empty(t, report.Campaigns)
}

func TestExtractConversions(t *testing.T) {
	tests := []struct {
		name     string
		actions  []domain.Action
		expected int64
	}{
		{
			name: "Compra entre ações fora da lista conta só a compra",
			actions: []domain.Action{
				{ActionType: "link_click", Value: "40"},
				{ActionType: "purchase", Value: "3"},
				{ActionType: "post_engagement", Value: "12"},
			},
			expected: 3,
		},
		{
			name: "Primeira ação da lista vence",
			actions: []domain.Action{
				{ActionType: "complete_registration", Value: "4"},
				{ActionType: "purchase", Value: "9"},
			},
			expected: 4,
		},
		{
			name:     "Lista vazia conta zero",
			actions:  []domain.Action{},
			expected: 0,
		},
		{
			name:     "Lista ausente conta zero",
			actions:  nil,
			expected: 0,
		},
		{
			name:     "Nenhuma ação da lista conta zero",
			actions:  []domain.Action{{ActionType: "video_view", Value: "100"}},
			expected: 0,
		},
		{
			name:     "Valor decimal é truncado",
			actions:  []domain.Action{{ActionType: "lead", Value: "2.0"}},
			expected: 2,
		},
		{
			name:     "Valor negativo conta zero",
			actions:  []domain.Action{{ActionType: "lead", Value: "-1"}},
			expected: 0,
		},
		{
			name:     "Valor inválido conta zero",
			actions:  []domain.Action{{ActionType: "purchase", Value: "abc"}},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractConversions(tt.actions))
		})
	}
}

func TestAggregate_DateBucketing(t *testing.T) {
	records := []domain.InsightRecord{
		{DateStart: "2024-01-03", Spend: "0.10", Impressions: "10", Clicks: "1", Actions: []domain.Action{{ActionType: "purchase", Value: "1"}}},
		{DateStart: "2024-01-01", Spend: "5", Impressions: "50", Clicks: "5"},
		{DateStart: "2024-01-03", Spend: "0.20", Impressions: "20", Clicks: "2", Actions: []domain.Action{{ActionType: "lead", Value: "2"}}},
	}

	series := Aggregate(records, domain.InsightLevelAccount).Series

	require.Len(t, series, 2)
	assert.Equal(t, "2024-01-01", series[0].Date)
	assert.Equal(t, domain.ChartPoint{
		Date:        "2024-01-03",
		Spend:       0.3,
		Impressions: 30,
		Clicks:      3,
		Conversions: 3,
	}, series[1])
}

func TestAggregate_CampaignRowsKeepRecordGranularity(t *testing.T) {
	records := []domain.InsightRecord{
		{DateStart: "2024-01-01", CampaignID: "c1", CampaignName: "Verão", Spend: "10", Impressions: "100", Clicks: "4", CTR: "4.004"},
		{DateStart: "2024-01-01", CampaignID: "c2", CampaignName: "Inverno", Spend: "20", Impressions: "200", Clicks: "2", CTR: "1"},
		{DateStart: "2024-01-02", CampaignID: "c1", CampaignName: "Verão", Spend: "30", Impressions: "300", Clicks: "6", CTR: "2",
			Actions: []domain.Action{{ActionType: "purchase", Value: "1"}}},
	}

	report := Aggregate(records, domain.InsightLevelCampaign)

	require.Len(t, report.Campaigns, 3)
	assert.Equal(t, domain.CampaignRow{
		Key:         "c1",
		Name:        "Verão",
		Spend:       10,
		Impressions: 100,
		Clicks:      4,
		CTR:         4,
		Conversions: 0,
	}, report.Campaigns[0])
	assert.Equal(t, "c2", report.Campaigns[1].Key)
	assert.Equal(t, "c1", report.Campaigns[2].Key)
	assert.Equal(t, int64(1), report.Campaigns[2].Conversions)

	// A série soma campanhas do mesmo dia
	require.Len(t, report.Series, 2)
	assert.Equal(t, int64(300), report.Series[0].Impressions)
	assert.Equal(t, float64(30), report.Series[0].Spend)

	assert.Equal(t, int64(600), report.Summary.Impressions)
	assert.Equal(t, float64(60), report.Summary.Spend)
}

func TestAggregate_MalformedValuesCountAsZero(t *testing.T) {
	records := []domain.InsightRecord{
		{DateStart: "2024-01-01", Spend: "abc", Impressions: "100", Clicks: "NaN"},
		{DateStart: "2024-01-01", Spend: "10", Impressions: "", Clicks: "5"},
	}

	summary := Aggregate(records, domain.InsightLevelAccount).Summary

	assert.Equal(t, float64(10), summary.Spend)
	assert.Equal(t, int64(100), summary.Impressions)
	assert.Equal(t, int64(5), summary.Clicks)
	assert.Equal(t, 5.0, summary.CTR)
	assert.Equal(t, 2.0, summary.CPC)
}

func TestAggregate_OutOfRangeCountsCountAsZero(t *testing.T) {
	records := []domain.InsightRecord{
		{DateStart: "2024-01-01", Spend: "10", Impressions: "1e20", Clicks: "5"},
		{DateStart: "2024-01-01", Spend: "10", Impressions: "200", Clicks: "-3"},
		{DateStart: "2024-01-02", Spend: "5", Impressions: "-50", Clicks: "1e30"},
	}

	summary := Aggregate(records, domain.InsightLevelAccount).Summary

	assert.Equal(t, int64(200), summary.Impressions)
	assert.Equal(t, int64(5), summary.Clicks)
	assert.Equal(t, 2.5, summary.CTR)
	assert.Equal(t, float64(25), summary.Spend)
	assert.Equal(t, 5.0, summary.CPC)
}
