package plans

type Mode string

const (
	ModeSubscription Mode = "subscription"
	ModePayment      Mode = "payment"
)

// Plan is a catalog entry. Amounts are in minor units (centavos).
type Plan struct {
	Name        string `json:"nome"`
	Label       string `json:"descricao"`
	Tier        string `json:"tier"`
	AmountMinor int64  `json:"valor_centavos"`
	Currency    string `json:"moeda"`
	Mode        Mode   `json:"modo"`
	Interval    string `json:"intervalo,omitempty"`
}

func (p Plan) Recurring() bool {
	return p.Mode == ModeSubscription
}
