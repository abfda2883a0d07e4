package analyzer

import "github.com/ldksplicing/ldk-sample/pkg/types"

// Warning codes
const (
	WarnNoChangeOutput      = "NO_CHANGE_OUTPUT"
	WarnIncompleteSignature = "INCOMPLETE_SIGNATURE"
	WarnFeeEstimateErrored  = "FEE_ESTIMATE_ERRORED"
	WarnNoFeeRate           = "NO_FEE_RATE"
	WarnHighFee             = "HIGH_FEE"
	WarnDustOutput          = "DUST_OUTPUT"
	WarnUnknownOutputScript = "UNKNOWN_OUTPUT_SCRIPT"
	WarnRBFSignaling        = "RBF_SIGNALING"
)

const (
	// 200 sat/vB
	highFeeRateSatPerKW = 50_000
	dustLimitSats       = 546
)

// GenerateWarnings creates the warning array for a decoded response and, if
// the response carried a transaction, its summary.
func GenerateWarnings(result any, tx *types.TxSummary) []types.Warning {
	warnings := make([]types.Warning, 0)
	add := func(code string) {
		warnings = append(warnings, types.Warning{Code: code})
	}

	switch r := result.(type) {
	case types.FundedTx:
		if !r.HasChange() {
			add(WarnNoChangeOutput)
		}
	case types.SignedTx:
		if !r.Complete {
			add(WarnIncompleteSignature)
		}
	case types.FeeResponse:
		feeWarnings(r.FeeRate, r.Errored, add)
	case types.MempoolMinFeeResponse:
		feeWarnings(r.FeeRate, r.Errored, add)
	case types.ListUnspentResponse:
		for _, utxo := range r {
			if utxo.Amount < dustLimitSats {
				add(WarnDustOutput)
				break
			}
		}
		for _, utxo := range r {
			if AddressScriptType(utxo.Address) == ScriptUnknown {
				add(WarnUnknownOutputScript)
				break
			}
		}
	}

	if tx != nil {
		for _, out := range tx.Vout {
			if out.ScriptType != ScriptOpReturn && out.ValueSats < dustLimitSats {
				add(WarnDustOutput)
				break
			}
		}
		for _, out := range tx.Vout {
			if out.ScriptType == ScriptUnknown {
				add(WarnUnknownOutputScript)
				break
			}
		}
		if tx.RbfSignaling {
			add(WarnRBFSignaling)
		}
	}

	return warnings
}

func feeWarnings(rate func() (uint32, bool), errored bool, add func(string)) {
	if errored {
		add(WarnFeeEstimateErrored)
	}
	satPerKW, ok := rate()
	if !ok {
		add(WarnNoFeeRate)
		return
	}
	if satPerKW > highFeeRateSatPerKW {
		add(WarnHighFee)
	}
}
