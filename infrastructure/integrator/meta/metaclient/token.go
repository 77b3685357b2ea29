package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-insights-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-insights-api/pkg/metrics"
	"golang.org/x/oauth2"
)

var ErrMissingAccessToken = errors.New("token response without access_token")

// TokenResponse representa a resposta da API do Meta ao trocar um token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ExpiresAt converte expires_in em data absoluta; nil quando o Meta não informa
func (t *TokenResponse) ExpiresAt(now time.Time) *time.Time {
	if t == nil || t.ExpiresIn <= 0 {
		return nil
	}

	expiresAt := now.Add(time.Duration(t.ExpiresIn) * time.Second)
	return &expiresAt
}

func (c *MetaClient) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.Cfg.Meta.AppID,
		ClientSecret: c.Cfg.Meta.AppSecret,
		RedirectURL:  c.Cfg.Meta.RedirectURI,
		Scopes:       c.Cfg.Meta.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   fmt.Sprintf("%s/%s/dialog/oauth", c.Cfg.Meta.DialogURL, c.Cfg.Meta.Version),
			TokenURL:  fmt.Sprintf("%s/oauth/access_token", c.Cfg.Meta.URL),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthCodeURL monta a URL do diálogo de autorização do Meta
func (c *MetaClient) AuthCodeURL(state string) string {
	return c.oauthConfig().AuthCodeURL(state)
}

// ExchangeCode troca o código de autorização (uso único) por um token de acesso
func (c *MetaClient) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	if code == "" {
		return nil, errors.New("código de autorização não pode ser vazio")
	}

	start := time.Now()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.HTTPClient)

	token, err := c.oauthConfig().Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			status := http.StatusBadRequest
			if retrieveErr.Response != nil {
				status = retrieveErr.Response.StatusCode
			}
			metrics.RecordGraphRequest("oauth_access_token", status, start)

			logrus.WithFields(logrus.Fields{
				"status_code": status,
				"body":        string(retrieveErr.Body),
			}).Error("insights: failed to exchange authorization code")

			return nil, &GraphError{
				StatusCode: status,
				Response:   metadomain.ParseErrorResponse(retrieveErr.Body),
				Body:       string(retrieveErr.Body),
			}
		}

		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			metrics.RecordGraphRequest("oauth_access_token", 0, start)
			return nil, errors.Wrap(redactURLError(err), "erro ao trocar código de autorização")
		}

		// sem RetrieveError nem erro de transporte: o Meta respondeu 2xx com um corpo sem token utilizável
		metrics.RecordGraphRequest("oauth_access_token", http.StatusOK, start)
		logrus.WithError(err).Error("insights: token response without usable access_token")

		return nil, ErrMissingAccessToken
	}

	metrics.RecordGraphRequest("oauth_access_token", http.StatusOK, start)

	resp := &TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
	}
	if !token.Expiry.IsZero() {
		resp.ExpiresIn = int64(time.Until(token.Expiry).Seconds())
	}

	return resp, nil
}

// ExchangeLongLivedToken obtém um token de longa duração do Meta
// usando um token de curta duração
func (c *MetaClient) ExchangeLongLivedToken(ctx context.Context, shortLivedToken string) (*TokenResponse, error) {
	if shortLivedToken == "" {
		return nil, errors.New("token de acesso não pode ser vazio")
	}

	params := url.Values{}
	params.Add("grant_type", "fb_exchange_token")
	params.Add("client_id", c.Cfg.Meta.AppID)
	params.Add("client_secret", c.Cfg.Meta.AppSecret)
	params.Add("fb_exchange_token", shortLivedToken)

	body, err := c.get(ctx, "oauth_access_token", fmt.Sprintf("%s/oauth/access_token?%s", c.Cfg.Meta.URL, params.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao obter token de longa duração")
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar resposta")
	}

	if tokenResp.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}

	logrus.Infof("Token de longa duração obtido com sucesso. Expira em %s.", FormatDuration(tokenResp.ExpiresIn))

	return &tokenResp, nil
}

// FormatDuration formata a duração em segundos para um formato legível
func FormatDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	days := duration / (24 * time.Hour)
	hours := (duration % (24 * time.Hour)) / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	return fmt.Sprintf("%d dias, %d horas e %d minutos", days, hours, minutes)
}
