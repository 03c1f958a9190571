package extractor

import "github.com/goodnatureofminers/richlist7000-backend/internal/richlist/dftx"

// ScriptsFunc returns the account scripts a custom transaction touches.
type ScriptsFunc func(payload dftx.Payload) []dftx.Script

// DefaultHandlers is the dispatch table of supported custom transaction types. Types missing
// here yield no addresses and are reported as unhandled.
func DefaultHandlers() map[dftx.Type]ScriptsFunc {
	return map[dftx.Type]ScriptsFunc{
		dftx.TypeUtxosToAccount: func(p dftx.Payload) []dftx.Script {
			return balanceScripts(p.(dftx.UtxosToAccount).To)
		},
		dftx.TypeAccountToUtxos: func(p dftx.Payload) []dftx.Script {
			return []dftx.Script{p.(dftx.AccountToUtxos).From}
		},
		dftx.TypeAccountToAccount: func(p dftx.Payload) []dftx.Script {
			tx := p.(dftx.AccountToAccount)
			return append([]dftx.Script{tx.From}, balanceScripts(tx.To)...)
		},
		dftx.TypeAnyAccountsToAccounts: func(p dftx.Payload) []dftx.Script {
			tx := p.(dftx.AnyAccountsToAccounts)
			return append(balanceScripts(tx.From), balanceScripts(tx.To)...)
		},
		dftx.TypePoolSwap: func(p dftx.Payload) []dftx.Script {
			tx := p.(dftx.PoolSwap)
			return []dftx.Script{tx.FromScript, tx.ToScript}
		},
		dftx.TypeCompositeSwap: func(p dftx.Payload) []dftx.Script {
			tx := p.(dftx.CompositeSwap)
			return []dftx.Script{tx.PoolSwap.FromScript, tx.PoolSwap.ToScript}
		},
		dftx.TypePoolAddLiquidity: func(p dftx.Payload) []dftx.Script {
			tx := p.(dftx.PoolAddLiquidity)
			return append(balanceScripts(tx.From), tx.ShareAddress)
		},
		dftx.TypePoolRemoveLiquidity: func(p dftx.Payload) []dftx.Script {
			return []dftx.Script{p.(dftx.PoolRemoveLiquidity).Script}
		},
		dftx.TypeTakeLoan: func(p dftx.Payload) []dftx.Script {
			return []dftx.Script{p.(dftx.TakeLoan).To}
		},
		dftx.TypePaybackLoan: func(p dftx.Payload) []dftx.Script {
			return []dftx.Script{p.(dftx.PaybackLoan).From}
		},
		dftx.TypeWithdrawFromVault: func(p dftx.Payload) []dftx.Script {
			return []dftx.Script{p.(dftx.WithdrawFromVault).To}
		},
		dftx.TypeDepositToVault: func(p dftx.Payload) []dftx.Script {
			return []dftx.Script{p.(dftx.DepositToVault).From}
		},
	}
}

func balanceScripts(balances []dftx.ScriptBalances) []dftx.Script {
	out := make([]dftx.Script, 0, len(balances))
	for _, b := range balances {
		out = append(out, b.Script)
	}
	return out
}
