package analyzer

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// knownNetworks is the search order for addresses of unspecified network
var knownNetworks = []*chaincfg.Params{
	&chaincfg.MainNetParams,
	&chaincfg.TestNet3Params,
	&chaincfg.SigNetParams,
	&chaincfg.RegressionNetParams,
}

// NetworkParams maps a chain name, as reported in getblockchaininfo, to its parameters.
// testnet4 shares the testnet3 address encoding.
func NetworkParams(chain string) (*chaincfg.Params, error) {
	switch chain {
	case "main", "mainnet":
		return &chaincfg.MainNetParams, nil
	case "test", "testnet", "testnet3", "testnet4":
		return &chaincfg.TestNet3Params, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unknown chain %q", chain)
	}
}

// ParseAddress decodes an address and checks that it belongs to net.
// A nil net accepts an address of any known network.
func ParseAddress(s string, net *chaincfg.Params) (btcutil.Address, error) {
	nets := knownNetworks
	if net != nil {
		nets = []*chaincfg.Params{net}
	}

	for _, params := range nets {
		addr, err := btcutil.DecodeAddress(s, params)
		if err == nil && addr.IsForNet(params) {
			return addr, nil
		}
	}

	if net != nil {
		return nil, fmt.Errorf("%q is not a valid %s address", s, net.Name)
	}
	return nil, fmt.Errorf("%q is not a valid address", s)
}

// AddressScriptType classifies the scriptPubKey an address pays to
func AddressScriptType(addr btcutil.Address) string {
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return ScriptUnknown
	}
	return ClassifyOutputScript(script)
}

// GetAddressFromScript derives an address from a scriptPubkey.
// Returns nil if the script type has no address (e.g. OP_RETURN, unknown).
func GetAddressFromScript(scriptPubkey []byte, net *chaincfg.Params) *string {
	var (
		addr btcutil.Address
		err  error
	)

	switch ClassifyOutputScript(scriptPubkey) {
	case ScriptP2PKH:
		addr, err = btcutil.NewAddressPubKeyHash(scriptPubkey[3:23], net)
	case ScriptP2SH:
		addr, err = btcutil.NewAddressScriptHashFromHash(scriptPubkey[2:22], net)
	case ScriptP2WPKH:
		addr, err = btcutil.NewAddressWitnessPubKeyHash(scriptPubkey[2:22], net)
	case ScriptP2WSH:
		addr, err = btcutil.NewAddressWitnessScriptHash(scriptPubkey[2:34], net)
	case ScriptP2TR:
		addr, err = btcutil.NewAddressTaproot(scriptPubkey[2:34], net)
	default:
		return nil
	}
	if err != nil {
		return nil
	}

	encoded := addr.EncodeAddress()
	return &encoded
}
