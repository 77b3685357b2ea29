package meta

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/ads-insights-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-insights-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/ads-insights-api/internal/config"
	"github.com/vfg2006/ads-insights-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestConfig(serverURL string) *config.Config {
	return &config.Config{
		Meta: config.Meta{
			BaseURL:                serverURL,
			URL:                    serverURL + "/v18.0",
			Version:                "v18.0",
			AppID:                  "app-id",
			AppSecret:              "app-secret",
			ExchangeLongLivedToken: true,
			InsightsPageLimit:      1000,
			MaxPages:               10,
			InsightsTimeout:        5 * time.Second,
			RequestTimeout:         5 * time.Second,
		},
	}
}

// newGraphServer responde /insights em páginas numeradas; a última página não tem paging.next
func newGraphServer(t *testing.T, pages int, handler func(w http.ResponseWriter, r *http.Request, page int) bool) (*httptest.Server, *int32) {
	t.Helper()

	var calls int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if handler != nil && handler(w, r, page) {
			return
		}

		next := ""
		if page+1 < pages {
			next = fmt.Sprintf(`,"paging":{"cursors":{"after":"c%d"},"next":"%s/v18.0/act_1/insights?access_token=tok&page=%d"}`, page+1, server.URL, page+1)
		}

		_, _ = fmt.Fprintf(w, `{"data":[{"date_start":"2024-01-%02d","date_stop":"2024-01-%02d","spend":"10.00","impressions":"100","clicks":"5","ctr":"5","cpc":"2","actions":[{"action_type":"purchase","value":"1"}]}]%s}`,
			page+1, page+1, next)
	}))
	t.Cleanup(server.Close)

	return server, &calls
}

func newIntegrator(serverURL string) *MetaIntegrator {
	cfg := newTestConfig(serverURL)
	return New(cfg, metaclient.NewClient(cfg))
}

func TestMetaIntegrator_FetchInsights_Pagination(t *testing.T) {
	tests := []struct {
		name  string
		pages int
	}{
		{name: "Uma única página", pages: 1},
		{name: "Três páginas seguindo paging.next", pages: 3},
		{name: "Exatamente o limite de páginas", pages: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, calls := newGraphServer(t, tt.pages, nil)
			integrator := newIntegrator(server.URL)

			records, err := integrator.FetchInsights(context.Background(), "tok", domain.InsightQuery{
				AdAccountID: "act_1",
				StartDate:   "2024-01-01",
				EndDate:     "2024-01-31",
			})
			require.NoError(t, err)

			assert.Len(t, records, tt.pages)
			assert.Equal(t, int32(tt.pages), atomic.LoadInt32(calls))
			for i, record := range records {
				assert.Equal(t, fmt.Sprintf("2024-01-%02d", i+1), record.DateStart)
				require.Len(t, record.Actions, 1)
				assert.Equal(t, "purchase", record.Actions[0].ActionType)
			}
		})
	}
}

func TestMetaIntegrator_FetchInsights_FirstRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    domain.InsightQuery
		validate func(t *testing.T, r *http.Request)
	}{
		{
			name: "Nível account com série diária",
			query: domain.InsightQuery{
				AdAccountID: "act_1",
				StartDate:   "2024-01-01",
				EndDate:     "2024-01-31",
			},
			validate: func(t *testing.T, r *http.Request) {
				q := r.URL.Query()
				assert.Equal(t, "/v18.0/act_1/insights", r.URL.Path)
				assert.Equal(t, "tok", q.Get("access_token"))
				assert.Equal(t, "account", q.Get("level"))
				assert.Equal(t, "1", q.Get("time_increment"))
				assert.Equal(t, "1000", q.Get("limit"))
				assert.Equal(t, `{"since":"2024-01-01","until":"2024-01-31"}`, q.Get("time_range"))
				assert.Equal(t, "spend,impressions,clicks,ctr,cpc,actions,date_start,date_stop", q.Get("fields"))
				assert.Empty(t, q.Get("breakdowns"))
			},
		},
		{
			name: "Nível campaign pede campaign_id e campaign_name e repassa breakdowns",
			query: domain.InsightQuery{
				AdAccountID: "act_1",
				StartDate:   "2024-01-01",
				EndDate:     "2024-01-31",
				Level:       domain.InsightLevelCampaign,
				Breakdowns:  []string{"age", "gender"},
			},
			validate: func(t *testing.T, r *http.Request) {
				q := r.URL.Query()
				assert.Equal(t, "campaign", q.Get("level"))
				assert.Equal(t, "spend,impressions,clicks,ctr,cpc,actions,date_start,date_stop,campaign_id,campaign_name", q.Get("fields"))
				assert.Equal(t, "age,gender", q.Get("breakdowns"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newGraphServer(t, 1, func(w http.ResponseWriter, r *http.Request, page int) bool {
				tt.validate(t, r)
				return false
			})

			_, err := newIntegrator(server.URL).FetchInsights(context.Background(), "tok", tt.query)
			require.NoError(t, err)
		})
	}
}

func TestMetaIntegrator_FetchInsights_Errors(t *testing.T) {
	tests := []struct {
		name          string
		pages         int
		maxPages      int
		query         domain.InsightQuery
		handler       func(w http.ResponseWriter, r *http.Request, page int) bool
		expectedErr   error
		expectedCalls int32
	}{
		{
			name:          "Data em formato inválido falha antes de qualquer chamada",
			pages:         1,
			query:         domain.InsightQuery{AdAccountID: "act_1", StartDate: "01/01/2024", EndDate: "2024-01-31"},
			expectedErr:   domain.ErrInvalidDateFormat,
			expectedCalls: 0,
		},
		{
			name:          "Nível desconhecido falha antes de qualquer chamada",
			pages:         1,
			query:         domain.InsightQuery{AdAccountID: "act_1", StartDate: "2024-01-01", EndDate: "2024-01-31", Level: "adset"},
			expectedErr:   domain.ErrInvalidLevel,
			expectedCalls: 0,
		},
		{
			name:  "401 na primeira página é credencial expirada",
			pages: 3,
			handler: func(w http.ResponseWriter, r *http.Request, page int) bool {
				w.WriteHeader(http.StatusUnauthorized)
				return true
			},
			expectedErr:   domain.ErrCredentialExpired,
			expectedCalls: 1,
		},
		{
			name:  "Código 190 na segunda página é credencial expirada",
			pages: 3,
			handler: func(w http.ResponseWriter, r *http.Request, page int) bool {
				if page != 1 {
					return false
				}
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":{"message":"Session has expired","type":"OAuthException","code":190}}`))
				return true
			},
			expectedErr:   domain.ErrCredentialExpired,
			expectedCalls: 2,
		},
		{
			name:  "Erro 500 no meio da paginação descarta tudo",
			pages: 3,
			handler: func(w http.ResponseWriter, r *http.Request, page int) bool {
				if page != 2 {
					return false
				}
				w.WriteHeader(http.StatusInternalServerError)
				return true
			},
			expectedErr:   domain.ErrInsightsFetchFailure,
			expectedCalls: 3,
		},
		{
			name:          "Mais páginas que o limite configurado",
			pages:         5,
			maxPages:      2,
			expectedErr:   domain.ErrInsightsFetchFailure,
			expectedCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, calls := newGraphServer(t, tt.pages, tt.handler)
			integrator := newIntegrator(server.URL)
			if tt.maxPages > 0 {
				integrator.cfg.Meta.MaxPages = tt.maxPages
			}

			query := tt.query
			if query.AdAccountID == "" {
				query = domain.InsightQuery{AdAccountID: "act_1", StartDate: "2024-01-01", EndDate: "2024-01-31"}
			}

			records, err := integrator.FetchInsights(context.Background(), "tok", query)
			assert.Nil(t, records)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expectedCalls, atomic.LoadInt32(calls))
		})
	}
}

func TestMetaIntegrator_FetchInsights_ContextCanceled(t *testing.T) {
	server, calls := newGraphServer(t, 3, nil)
	integrator := newIntegrator(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := integrator.FetchInsights(ctx, "tok", domain.InsightQuery{
		AdAccountID: "act_1",
		StartDate:   "2024-01-01",
		EndDate:     "2024-01-31",
	})
	assert.ErrorIs(t, err, domain.ErrInsightsFetchFailure)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestMetaIntegrator_ListActiveAdAccounts(t *testing.T) {
	t.Run("Filtra status e aplica moeda padrão em todas as páginas", func(t *testing.T) {
		var server *httptest.Server
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v18.0/me/adaccounts", r.URL.Path)
			assert.Equal(t, "id,name,account_status,currency", r.URL.Query().Get("fields"))

			if r.URL.Query().Get("after") == "" {
				_, _ = fmt.Fprintf(w, `{"data":[
					{"id":"act_1","name":"Loja A","account_status":1,"currency":"USD"},
					{"id":"act_2","name":"Loja B","account_status":2,"currency":"USD"}
				],"paging":{"next":"%s/v18.0/me/adaccounts?fields=id,name,account_status,currency&access_token=tok&after=c1"}}`, server.URL)
				return
			}

			_, _ = w.Write([]byte(`{"data":[{"id":"act_3","name":"Loja C","account_status":1}]}`))
		}))
		defer server.Close()

		accounts, err := newIntegrator(server.URL).ListActiveAdAccounts(context.Background(), "tok")
		require.NoError(t, err)

		require.Len(t, accounts, 2)
		assert.Equal(t, "act_1", accounts[0].ID)
		assert.Equal(t, "USD", accounts[0].Currency)
		assert.Equal(t, "act_3", accounts[1].ID)
		assert.Equal(t, domain.DefaultCurrency, accounts[1].Currency)
	})

	t.Run("Token expirado", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"Error validating access token","type":"OAuthException","code":190,"error_subcode":463}}`))
		}))
		defer server.Close()

		_, err := newIntegrator(server.URL).ListActiveAdAccounts(context.Background(), "tok")
		assert.ErrorIs(t, err, domain.ErrCredentialExpired)
	})

	t.Run("Outro erro do Meta", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"message":"Permissions error","type":"OAuthException","code":200}}`))
		}))
		defer server.Close()

		_, err := newIntegrator(server.URL).ListActiveAdAccounts(context.Background(), "tok")
		assert.ErrorIs(t, err, domain.ErrAccountListFailure)
		assert.NotErrorIs(t, err, domain.ErrCredentialExpired)
	})
}

func TestMetaIntegrator_ExchangeCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	integrator := New(newTestConfig("http://graph.test"), mockClient)

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, token *domain.MetaToken, err error)
	}{
		{
			name: "Troca e upgrade para token de longa duração",
			setup: func() {
				mockClient.EXPECT().
					ExchangeCode(gomock.Any(), "code").
					Return(&metaclient.TokenResponse{AccessToken: "short", ExpiresIn: 3600}, nil)
				mockClient.EXPECT().
					ExchangeLongLivedToken(gomock.Any(), "short").
					Return(&metaclient.TokenResponse{AccessToken: "long", ExpiresIn: 5184000}, nil)
			},
			validate: func(t *testing.T, token *domain.MetaToken, err error) {
				require.NoError(t, err)
				assert.Equal(t, "long", token.AccessToken)
				require.NotNil(t, token.ExpiresAt)
				assert.WithinDuration(t, time.Now().Add(60*24*time.Hour), *token.ExpiresAt, time.Minute)
			},
		},
		{
			name: "Falha no upgrade mantém o token curto",
			setup: func() {
				mockClient.EXPECT().
					ExchangeCode(gomock.Any(), "code").
					Return(&metaclient.TokenResponse{AccessToken: "short"}, nil)
				mockClient.EXPECT().
					ExchangeLongLivedToken(gomock.Any(), "short").
					Return(nil, errors.New("boom"))
			},
			validate: func(t *testing.T, token *domain.MetaToken, err error) {
				require.NoError(t, err)
				assert.Equal(t, "short", token.AccessToken)
				assert.Nil(t, token.ExpiresAt)
			},
		},
		{
			name: "Status 400 na troca é falha de autenticação externa",
			setup: func() {
				mockClient.EXPECT().
					ExchangeCode(gomock.Any(), "code").
					Return(nil, &metaclient.GraphError{StatusCode: http.StatusBadRequest})
			},
			validate: func(t *testing.T, token *domain.MetaToken, err error) {
				assert.Nil(t, token)
				assert.ErrorIs(t, err, domain.ErrExternalAuthFailure)
			},
		},
		{
			name: "Resposta sem access_token",
			setup: func() {
				mockClient.EXPECT().
					ExchangeCode(gomock.Any(), "code").
					Return(nil, metaclient.ErrMissingAccessToken)
			},
			validate: func(t *testing.T, token *domain.MetaToken, err error) {
				assert.Nil(t, token)
				assert.ErrorIs(t, err, domain.ErrMalformedTokenResponse)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			token, err := integrator.ExchangeCode(context.Background(), "code")
			tt.validate(t, token, err)
		})
	}
}

func TestMetaIntegrator_GetMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	integrator := New(newTestConfig("http://graph.test"), mockClient)

	mockClient.EXPECT().GetMe(gomock.Any(), "tok").Return(&metadomain.User{ID: "1", Name: "Ana"}, nil)
	user, err := integrator.GetMe(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, &domain.MetaUser{ID: "1", Name: "Ana"}, user)

	mockClient.EXPECT().GetMe(gomock.Any(), "tok").Return(nil, &metaclient.GraphError{StatusCode: http.StatusInternalServerError})
	_, err = integrator.GetMe(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrExternalIdentityLookupFailure)
}
