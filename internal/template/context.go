package template

// Context is the data available to ledger and notification templates
type Context struct {
	Event      string `json:"event,omitempty"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	EndTime    string `json:"endTime,omitempty"`
	ClientName string `json:"clientName,omitempty"`
	Amount     string `json:"amount,omitempty"`
	Addons     string `json:"addons,omitempty"` // raw JSON, read with the addon func
}
