package rpcclient

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/ldksplicing/ldk-sample/pkg/logging"
	"github.com/ldksplicing/ldk-sample/pkg/parser"
	"github.com/ldksplicing/ldk-sample/pkg/types"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/ybbus/jsonrpc/v2"
)

const DefaultTimeout = 30 * time.Second

// Fee estimation modes accepted by estimatesmartfee.
const (
	FeeModeEconomical   = "ECONOMICAL"
	FeeModeConservative = "CONSERVATIVE"
)

type Config struct {
	URL      string
	User     string
	Password string
	Timeout  time.Duration
	// Network restricts decoded addresses. Nil accepts any known network.
	Network *chaincfg.Params
}

// Client talks to a bitcoind JSON-RPC endpoint and hands every result to
// the matching decoder in parser.
type Client struct {
	rpc      jsonrpc.RPCClient
	endpoint string
	opts     []parser.Option
	log      logging.KVLogger
}

func New(cfg Config, log logging.KVLogger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = logging.NoopKVLogger{}
	}

	headers := map[string]string{}
	if cfg.User != "" || cfg.Password != "" {
		creds := base64.StdEncoding.EncodeToString([]byte(cfg.User + ":" + cfg.Password))
		headers["Authorization"] = "Basic " + creds
	}

	c := &Client{
		rpc: jsonrpc.NewClientWithOpts(cfg.URL, &jsonrpc.RPCClientOpts{
			HTTPClient:    &http.Client{Timeout: cfg.Timeout},
			CustomHeaders: headers,
		}),
		endpoint: cfg.URL,
		log:      log.With("endpoint", cfg.URL),
	}
	if cfg.Network != nil {
		c.opts = append(c.opts, parser.WithNetwork(cfg.Network))
	}
	return c
}

// Options returns the decoder options derived from the client config.
func (c *Client) Options() []parser.Option {
	return c.opts
}

// CallRaw sends one request and returns its result without decoding it.
func (c *Client) CallRaw(method string, params ...interface{}) (gjson.Result, error) {
	start := time.Now()
	resp, err := c.rpc.Call(method, params...)
	duration := time.Since(start)

	// bitcoind answers RPC failures with HTTP 500 and an error object, so the
	// RPC error wins over the HTTP one when both are present.
	if resp != nil && resp.Error != nil {
		c.log.Warn("rpc error", "method", method, "code", resp.Error.Code, "message", resp.Error.Message)
		return gjson.Result{}, errors.Wrapf(resp.Error, "%s", method)
	}
	if err != nil {
		c.log.Error("rpc request failed", "method", method, "duration", duration, "err", err)
		return gjson.Result{}, errors.Wrapf(err, "%s request to %s", method, c.endpoint)
	}
	if resp == nil {
		return gjson.Result{}, errors.Errorf("%s: empty response", method)
	}
	c.log.Debug("rpc call", "method", method, "duration", duration)

	raw, err := parser.FromValue(resp.Result)
	if err != nil {
		return gjson.Result{}, errors.Wrapf(err, "%s", method)
	}
	return raw, nil
}

// Call sends one request and runs the registered decoder on its result.
func (c *Client) Call(method string, params ...interface{}) (any, error) {
	raw, err := c.CallRaw(method, params...)
	if err != nil {
		return nil, err
	}
	v, err := parser.Decode(method, raw, c.opts...)
	if err != nil {
		c.log.Warn("undecodable response", "method", method, "err", err)
		return nil, err
	}
	return v, nil
}

func decodeAs[T any](c *Client, method string, params ...interface{}) (T, error) {
	var zero T
	v, err := c.Call(method, params...)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, errors.Errorf("%s: decoded %T, want %T", method, v, zero)
	}
	return typed, nil
}

// FundRawTransaction adds wallet inputs and change to rawHex. A zero
// feeRateSatPerVB leaves fee selection to the node.
func (c *Client) FundRawTransaction(rawHex string, feeRateSatPerVB float64) (types.FundedTx, error) {
	if feeRateSatPerVB <= 0 {
		return decodeAs[types.FundedTx](c, parser.MethodFundRawTransaction, rawHex)
	}
	opts := map[string]interface{}{"fee_rate": feeRateSatPerVB, "replaceable": false}
	return decodeAs[types.FundedTx](c, parser.MethodFundRawTransaction, rawHex, opts)
}

// CreateRawTransaction builds an unfunded transaction paying outputs, keyed by address.
func (c *Client) CreateRawTransaction(outputs map[string]btcutil.Amount) (types.RawTx, error) {
	amounts := make(map[string]float64, len(outputs))
	for addr, amt := range outputs {
		amounts[addr] = amt.ToBTC()
	}
	return decodeAs[types.RawTx](c, parser.MethodCreateRawTransaction, []interface{}{}, amounts)
}

func (c *Client) GetRawTransaction(txid chainhash.Hash) (types.RawTx, error) {
	return decodeAs[types.RawTx](c, parser.MethodGetRawTransaction, txid.String())
}

func (c *Client) SignRawTransactionWithWallet(rawHex string) (types.SignedTx, error) {
	return decodeAs[types.SignedTx](c, parser.MethodSignRawTransactionWithWallet, rawHex)
}

func (c *Client) SendRawTransaction(rawHex string) (chainhash.Hash, error) {
	return decodeAs[chainhash.Hash](c, parser.MethodSendRawTransaction, rawHex)
}

func (c *Client) GetNewAddress() (types.NewAddress, error) {
	return decodeAs[types.NewAddress](c, parser.MethodGetNewAddress)
}

func (c *Client) EstimateSmartFee(confTarget int, mode string) (types.FeeResponse, error) {
	if mode == "" {
		mode = FeeModeEconomical
	}
	return decodeAs[types.FeeResponse](c, parser.MethodEstimateSmartFee, confTarget, mode)
}

func (c *Client) GetMempoolInfo() (types.MempoolMinFeeResponse, error) {
	return decodeAs[types.MempoolMinFeeResponse](c, parser.MethodGetMempoolInfo)
}

func (c *Client) GetBlockchainInfo() (types.BlockchainInfo, error) {
	return decodeAs[types.BlockchainInfo](c, parser.MethodGetBlockchainInfo)
}

func (c *Client) ListUnspent() (types.ListUnspentResponse, error) {
	return decodeAs[types.ListUnspentResponse](c, parser.MethodListUnspent)
}
