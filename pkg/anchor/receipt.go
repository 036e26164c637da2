package anchor

import (
	json "github.com/json-iterator/go"
)

// Receipt identifies the transaction that anchored a digest.
type Receipt struct {
	TransactionID string `json:"txid" yaml:"txid"`
	ExplorerURL   string `json:"explorer" yaml:"explorer"`

	Mode Mode `json:"-" yaml:"-"`
}

// JSON renders the receipt as {"txid", "explorer"}.
func (r *Receipt) JSON() ([]byte, error) {
	return json.Marshal(r)
}
