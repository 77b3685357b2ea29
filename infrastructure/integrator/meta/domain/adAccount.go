package metadomain

type AdAccount struct {
	ID            string `json:"id"`
	AccountID     string `json:"account_id"`
	Name          string `json:"name"`
	AccountStatus int    `json:"account_status"`
	Currency      string `json:"currency"`
}

type AdAccountsPage struct {
	Data   []AdAccount `json:"data"`
	Paging *Paging     `json:"paging,omitempty"`
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
