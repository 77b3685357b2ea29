package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-insights-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-insights-api/internal/config"
	"github.com/vfg2006/ads-insights-api/pkg/metrics"
)

//go:generate mockgen -source=client.go -destination=../mocks/metaclient.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*TokenResponse, error)
	ExchangeLongLivedToken(ctx context.Context, shortLivedToken string) (*TokenResponse, error)
	GetMe(ctx context.Context, accessToken string) (*metadomain.User, error)
	// As páginas seguintes vêm prontas em paging.next e são buscadas como estão
	GetAdAccountsPage(ctx context.Context, pageURL string) (*metadomain.AdAccountsPage, error)
	GetInsightsPage(ctx context.Context, pageURL string) (*metadomain.InsightsPage, error)
}

type MetaClient struct {
	Cfg        *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &MetaClient{
		Cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: cfg.Meta.RequestTimeout,
		},
	}
}

// GraphError é uma resposta não 2xx do Graph API
type GraphError struct {
	StatusCode int
	Response   *metadomain.ErrorResponse
	Body       string
}

func (e *GraphError) Error() string {
	if e.Response != nil {
		return fmt.Sprintf("graph api error. Status: %d, Code: %d, Message: %s", e.StatusCode, e.Response.Error.Code, e.Response.Error.Message)
	}
	return fmt.Sprintf("graph api error. Status: %d", e.StatusCode)
}

// IsTokenExpired indica que o token armazenado não vale mais e o usuário precisa reautorizar
func (e *GraphError) IsTokenExpired() bool {
	return e.StatusCode == http.StatusUnauthorized || e.Response.IsTokenExpired()
}

func (c *MetaClient) GetMe(ctx context.Context, accessToken string) (*metadomain.User, error) {
	params := url.Values{}
	params.Add("fields", "id,name")
	params.Add("access_token", accessToken)

	body, err := c.get(ctx, "me", fmt.Sprintf("%s/me?%s", c.Cfg.Meta.URL, params.Encode()))
	if err != nil {
		return nil, err
	}

	var user metadomain.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar /me")
	}

	if user.ID == "" {
		return nil, errors.New("resposta de /me sem id")
	}

	return &user, nil
}

func (c *MetaClient) GetAdAccountsPage(ctx context.Context, pageURL string) (*metadomain.AdAccountsPage, error) {
	body, err := c.get(ctx, "adaccounts", pageURL)
	if err != nil {
		return nil, err
	}

	var page metadomain.AdAccountsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar página de contas")
	}

	return &page, nil
}

func (c *MetaClient) GetInsightsPage(ctx context.Context, pageURL string) (*metadomain.InsightsPage, error) {
	body, err := c.get(ctx, "insights", pageURL)
	if err != nil {
		return nil, err
	}

	var page metadomain.InsightsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar página de insights")
	}

	return &page, nil
}

// get faz a requisição e trata a resposta. A URL carrega o access_token, então nunca é logada.
func (c *MetaClient) get(ctx context.Context, endpoint, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		metrics.RecordGraphRequest(endpoint, 0, start)
		return nil, errors.Wrap(redactURLError(err), "erro ao fazer a requisição")
	}
	defer resp.Body.Close()

	metrics.RecordGraphRequest(endpoint, resp.StatusCode, start)

	return c.HandleResponse(endpoint, resp)
}

// HandleResponse manipula a resposta HTTP e converte erros do Graph API em GraphError
func (c *MetaClient) HandleResponse(endpoint string, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler resposta")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return body, nil
	}

	graphErr := &GraphError{
		StatusCode: resp.StatusCode,
		Response:   metadomain.ParseErrorResponse(body),
		Body:       string(body),
	}

	logrus.WithFields(logrus.Fields{
		"endpoint":    endpoint,
		"status_code": resp.StatusCode,
		"body":        graphErr.Body,
	}).Error("insights: graph api returned an error")

	return nil, graphErr
}

// redactURLError remove a URL (com access_token) de erros de transporte
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
