package domain

import (
	"time"
)

// Status de conta ativa no Graph API (account_status)
const MetaAccountStatusActive = 1

const DefaultCurrency = "BRL"

// MetaAdAccount é a conta como retornada pela listagem do Meta
type MetaAdAccount struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AccountStatus int    `json:"account_status"`
	Currency      string `json:"currency"`
}

func (a MetaAdAccount) IsActive() bool {
	return a.AccountStatus == MetaAccountStatusActive
}

// CachedAdAccount é uma linha de ad_accounts_cache
type CachedAdAccount struct {
	ID              string    `json:"id"`
	ConnectionID    string    `json:"connection_id"`
	MetaAdAccountID string    `json:"meta_ad_account_id"`
	Name            string    `json:"name"`
	Currency        string    `json:"currency"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AdAccountResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Currency        string `json:"currency"`
	MetaAdAccountID string `json:"meta_ad_account_id"`
}

type AdAccountListResponse struct {
	Success bool                 `json:"success"`
	Data    []*AdAccountResponse `json:"data"`
	Total   int                  `json:"total"`
}
