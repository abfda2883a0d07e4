package types

import (
	"encoding/json"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// FundedTx is the result of fundrawtransaction
type FundedTx struct {
	// ChangePos is -1 when no change output was added
	ChangePos int64  `json:"changepos"`
	Hex       string `json:"hex"`
}

// HasChange reports whether the node added a change output
func (t FundedTx) HasChange() bool {
	return t.ChangePos >= 0
}

// RawTx is a bare raw transaction hex, as returned by createrawtransaction
type RawTx struct {
	Hex string `json:"hex"`
}

// SignedTx is the result of signrawtransactionwithwallet
type SignedTx struct {
	Complete bool   `json:"complete"`
	Hex      string `json:"hex"`
}

// NewAddress is the result of getnewaddress
type NewAddress struct {
	Address btcutil.Address
}

// MarshalJSON renders the address in its encoded form
func (a NewAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Address string `json:"address"`
	}{Address: encodeAddress(a.Address)})
}

// FeeResponse is the result of estimatesmartfee
type FeeResponse struct {
	FeeRateSatPerKW *uint32 `json:"feerate_sat_per_kw"`
	Errored         bool    `json:"errored"`
}

// FeeRate returns the rate and whether the node reported one
func (f FeeResponse) FeeRate() (uint32, bool) {
	if f.FeeRateSatPerKW == nil {
		return 0, false
	}
	return *f.FeeRateSatPerKW, true
}

// MempoolMinFeeResponse is the fee-related part of getmempoolinfo
type MempoolMinFeeResponse struct {
	FeeRateSatPerKW *uint32 `json:"feerate_sat_per_kw"`
	Errored         bool    `json:"errored"`
}

// FeeRate returns the rate and whether the node reported one
func (f MempoolMinFeeResponse) FeeRate() (uint32, bool) {
	if f.FeeRateSatPerKW == nil {
		return 0, false
	}
	return *f.FeeRateSatPerKW, true
}

// BlockchainInfo describes the chain tip reported by getblockchaininfo
type BlockchainInfo struct {
	LatestHeight    uint32
	LatestBlockHash chainhash.Hash
	Chain           string
}

// MarshalJSON renders the block hash in its display (reversed) form
func (b BlockchainInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		LatestHeight    uint32 `json:"latest_height"`
		LatestBlockHash string `json:"latest_blockhash"`
		Chain           string `json:"chain"`
	}{
		LatestHeight:    b.LatestHeight,
		LatestBlockHash: b.LatestBlockHash.String(),
		Chain:           b.Chain,
	})
}

// ListUnspentUtxo is one element of a listunspent response
type ListUnspentUtxo struct {
	Txid    chainhash.Hash
	Vout    uint32
	Amount  btcutil.Amount
	Address btcutil.Address
}

// MarshalJSON renders hashes and addresses as strings and the amount in satoshis
func (u ListUnspentUtxo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Txid       string `json:"txid"`
		Vout       uint32 `json:"vout"`
		AmountSats int64  `json:"amount_sats"`
		Address    string `json:"address"`
	}{
		Txid:       u.Txid.String(),
		Vout:       u.Vout,
		AmountSats: int64(u.Amount),
		Address:    encodeAddress(u.Address),
	})
}

// ListUnspentResponse keeps the order the node returned
type ListUnspentResponse []ListUnspentUtxo

// Total sums the amounts of all outputs
func (l ListUnspentResponse) Total() btcutil.Amount {
	var total btcutil.Amount
	for _, u := range l {
		total += u.Amount
	}
	return total
}

func encodeAddress(addr btcutil.Address) string {
	if addr == nil {
		return ""
	}
	return addr.EncodeAddress()
}

// TxSummary is a short inspection of a transaction carried in a response
type TxSummary struct {
	Txid         string   `json:"txid"`
	Segwit       bool     `json:"segwit"`
	Version      int32    `json:"version"`
	Locktime     uint32   `json:"locktime"`
	LocktimeType string   `json:"locktime_type"`
	RbfSignaling bool     `json:"rbf_signaling"`
	VinCount     int      `json:"vin_count"`
	VoutCount    int      `json:"vout_count"`
	Vout         []Output `json:"vout"`
}

// Output represents a transaction output
type Output struct {
	N               int     `json:"n"`
	ValueSats       int64   `json:"value_sats"`
	ScriptPubkeyHex string  `json:"script_pubkey_hex"`
	ScriptType      string  `json:"script_type"`
	Address         *string `json:"address"`
}

// Report is the JSON envelope printed by the CLI and served by the web API
type Report struct {
	OK       bool       `json:"ok"`
	Method   string     `json:"method,omitempty"`
	Network  string     `json:"network,omitempty"`
	Result   any        `json:"result,omitempty"`
	Tx       *TxSummary `json:"tx,omitempty"`
	Warnings []Warning  `json:"warnings"`
	Error    *ErrorInfo `json:"error,omitempty"`
}

// Warning represents a warning raised while inspecting a decoded response
type Warning struct {
	Code string `json:"code"`
}

// ErrorInfo represents an error response
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
