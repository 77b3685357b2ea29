package meta

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-insights-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-insights-api/internal/config"
	"github.com/vfg2006/ads-insights-api/internal/domain"
	"github.com/vfg2006/ads-insights-api/pkg/metrics"
	"github.com/vfg2006/ads-insights-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/integrator.go -package=mocks

const (
	insightFields         = "spend,impressions,clicks,ctr,cpc,actions,date_start,date_stop"
	campaignInsightFields = "campaign_id,campaign_name"
	adAccountFields       = "id,name,account_status,currency"
)

var errPageLimitExceeded = errors.New("page limit exceeded")

type Integrator interface {
	AuthorizationURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*domain.MetaToken, error)
	GetMe(ctx context.Context, accessToken string) (*domain.MetaUser, error)
	ListActiveAdAccounts(ctx context.Context, accessToken string) ([]domain.MetaAdAccount, error)
	FetchInsights(ctx context.Context, accessToken string, query domain.InsightQuery) ([]domain.InsightRecord, error)
}

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *MetaIntegrator) AuthorizationURL(state string) string {
	return s.Client.AuthCodeURL(state)
}

// ExchangeCode troca o código pelo token e, se configurado, pelo token de longa duração.
// Falha no upgrade não invalida o token curto.
func (s *MetaIntegrator) ExchangeCode(ctx context.Context, code string) (*domain.MetaToken, error) {
	tokenResp, err := s.Client.ExchangeCode(ctx, code)
	if err != nil {
		if errors.Is(err, metaclient.ErrMissingAccessToken) {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedTokenResponse, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalAuthFailure, err)
	}

	if tokenResp.AccessToken == "" {
		return nil, domain.ErrMalformedTokenResponse
	}

	if s.cfg.Meta.ExchangeLongLivedToken {
		longLived, err := s.Client.ExchangeLongLivedToken(ctx, tokenResp.AccessToken)
		if err != nil {
			logrus.WithError(err).Warn("insights: failed to upgrade to long-lived token, keeping short-lived token")
		} else {
			tokenResp = longLived
		}
	}

	return &domain.MetaToken{
		AccessToken: tokenResp.AccessToken,
		ExpiresAt:   tokenResp.ExpiresAt(time.Now().UTC()),
	}, nil
}

func (s *MetaIntegrator) GetMe(ctx context.Context, accessToken string) (*domain.MetaUser, error) {
	user, err := s.Client.GetMe(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalIdentityLookupFailure, err)
	}

	return &domain.MetaUser{
		ID:   user.ID,
		Name: user.Name,
	}, nil
}

// ListActiveAdAccounts lista todas as páginas de /me/adaccounts e mantém só as contas ativas
func (s *MetaIntegrator) ListActiveAdAccounts(ctx context.Context, accessToken string) ([]domain.MetaAdAccount, error) {
	params := url.Values{}
	params.Add("fields", adAccountFields)
	params.Add("limit", strconv.Itoa(s.pageLimit()))
	params.Add("access_token", accessToken)

	firstURL := fmt.Sprintf("%s/me/adaccounts?%s", s.cfg.Meta.URL, params.Encode())

	accounts, pages, err := followPages(ctx, firstURL, s.cfg.Meta.MaxPages,
		func(ctx context.Context, pageURL string) ([]metadomain.AdAccount, string, error) {
			page, err := s.Client.GetAdAccountsPage(ctx, pageURL)
			if err != nil {
				return nil, "", err
			}
			return page.Data, page.Paging.NextURL(), nil
		},
	)
	if err != nil {
		if isTokenExpired(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrCredentialExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrAccountListFailure, err)
	}

	active := make([]domain.MetaAdAccount, 0, len(accounts))
	for _, account := range accounts {
		adAccount := domain.MetaAdAccount{
			ID:            account.ID,
			Name:          account.Name,
			AccountStatus: account.AccountStatus,
			Currency:      account.Currency,
		}

		if !adAccount.IsActive() {
			continue
		}

		if adAccount.Currency == "" {
			adAccount.Currency = domain.DefaultCurrency
		}

		active = append(active, adAccount)
	}

	logrus.WithFields(logrus.Fields{
		"pages":           pages,
		"total_accounts":  len(accounts),
		"active_accounts": len(active),
	}).Info("insights: successfully retrieved ad accounts")

	return active, nil
}

// FetchInsights busca todas as páginas de insights da conta. Qualquer página com erro falha a busca inteira.
func (s *MetaIntegrator) FetchInsights(ctx context.Context, accessToken string, query domain.InsightQuery) ([]domain.InsightRecord, error) {
	if !utils.IsISODate(query.StartDate) || !utils.IsISODate(query.EndDate) {
		return nil, domain.ErrInvalidDateFormat
	}

	if query.Level == "" {
		query.Level = domain.InsightLevelAccount
	}

	if query.Level != domain.InsightLevelAccount && query.Level != domain.InsightLevelCampaign {
		return nil, domain.ErrInvalidLevel
	}

	if s.cfg.Meta.InsightsTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Meta.InsightsTimeout)
		defer cancel()
	}

	firstURL := s.insightsURL(accessToken, query)

	records, pages, err := followPages(ctx, firstURL, s.cfg.Meta.MaxPages,
		func(ctx context.Context, pageURL string) ([]metadomain.InsightRecord, string, error) {
			page, err := s.Client.GetInsightsPage(ctx, pageURL)
			if err != nil {
				return nil, "", err
			}
			return page.Data, page.Paging.NextURL(), nil
		},
	)
	metrics.InsightPages.Observe(float64(pages))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": query.AdAccountID,
			"level":         query.Level,
			"pages":         pages,
			"error":         err.Error(),
		}).Error("insights: failed to fetch insights")

		if isTokenExpired(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrCredentialExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInsightsFetchFailure, err)
	}

	metrics.InsightRecords.WithLabelValues(string(query.Level)).Add(float64(len(records)))

	logrus.WithFields(logrus.Fields{
		"ad_account_id": query.AdAccountID,
		"level":         query.Level,
		"pages":         pages,
		"records":       len(records),
	}).Debug("insights: successfully fetched insights")

	return FactoryInsightRecords(records), nil
}

func (s *MetaIntegrator) insightsURL(accessToken string, query domain.InsightQuery) string {
	fields := insightFields
	if query.Level == domain.InsightLevelCampaign {
		fields += "," + campaignInsightFields
	}

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", query.StartDate, query.EndDate)

	params := url.Values{}
	params.Add("fields", fields)
	params.Add("time_range", timeRange)
	params.Add("level", string(query.Level))
	params.Add("time_increment", "1")
	params.Add("limit", strconv.Itoa(s.pageLimit()))
	if len(query.Breakdowns) > 0 {
		params.Add("breakdowns", strings.Join(query.Breakdowns, ","))
	}
	params.Add("access_token", accessToken)

	return fmt.Sprintf("%s/%s/insights?%s", s.cfg.Meta.URL, url.PathEscape(query.AdAccountID), params.Encode())
}

func (s *MetaIntegrator) pageLimit() int {
	if s.cfg.Meta.InsightsPageLimit <= 0 {
		return 1000
	}
	return s.cfg.Meta.InsightsPageLimit
}

// followPages segue paging.next até não haver próxima página.
// maxPages <= 0 desliga o limite; o contexto continua limitando o tempo total.
func followPages[T any](
	ctx context.Context,
	firstURL string,
	maxPages int,
	fetch func(ctx context.Context, pageURL string) ([]T, string, error),
) ([]T, int, error) {
	items := make([]T, 0)
	pages := 0

	for nextURL := firstURL; nextURL != ""; {
		if err := ctx.Err(); err != nil {
			return nil, pages, err
		}

		if maxPages > 0 && pages >= maxPages {
			return nil, pages, fmt.Errorf("%w: %d", errPageLimitExceeded, maxPages)
		}

		data, next, err := fetch(ctx, nextURL)
		if err != nil {
			return nil, pages, err
		}

		pages++
		items = append(items, data...)
		nextURL = next
	}

	return items, pages, nil
}

func isTokenExpired(err error) bool {
	var graphErr *metaclient.GraphError
	return errors.As(err, &graphErr) && graphErr.IsTokenExpired()
}

func FactoryInsightRecords(records []metadomain.InsightRecord) []domain.InsightRecord {
	result := make([]domain.InsightRecord, 0, len(records))

	for _, record := range records {
		actions := make([]domain.Action, 0, len(record.Actions))
		for _, action := range record.Actions {
			actions = append(actions, domain.Action{
				ActionType: action.ActionType,
				Value:      action.Value,
			})
		}

		result = append(result, domain.InsightRecord{
			DateStart:    record.DateStart,
			DateStop:     record.DateStop,
			CampaignID:   record.CampaignID,
			CampaignName: record.CampaignName,
			Spend:        record.Spend,
			Impressions:  record.Impressions,
			Clicks:       record.Clicks,
			CTR:          record.CTR,
			CPC:          record.CPC,
			Actions:      actions,
		})
	}

	return result
}
