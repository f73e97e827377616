// =============================
// File: internal/pumpfun/curve.go
// =============================
package pumpfun

// Bonding curve math for the Pump.fun virtual pool.
//
// Every freshly minted token starts from the same virtual reserves:
// 30 SOL and 1_073_000_191 tokens, giving the constant product
// K = 32_190_005_730. The curve prices a buy of x SOL at
// y = 1_073_000_191 - K/(30 + x) tokens.
//
// All functions here are pure. On-chain quantities arrive as fixed-point
// integers (lamports, raw token units) and must be scaled through
// LamportsToSol / TokensFromRaw before any curve call; the scale constants
// are exact powers of ten so the conversion is lossless in both directions
// within float64 precision.

const (
	// CurveK is the constant product of the initial virtual reserves.
	CurveK = 32190005730.0
	// InitialTokenReserve is the virtual token balance of a new pool.
	InitialTokenReserve = 1073000191.0
	// InitialSolReserve is the virtual SOL balance of a new pool.
	InitialSolReserve = 30.0

	// TokenScale converts raw token units to whole tokens (6 decimals).
	TokenScale = 1e6
	// LamportsPerSol converts lamports to SOL (9 decimals).
	LamportsPerSol = 1e9
)

// LamportsToSol scales a raw lamport amount to SOL.
func LamportsToSol(lamports uint64) float64 {
	return float64(lamports) / LamportsPerSol
}

// TokensFromRaw scales a raw token amount to whole tokens.
func TokensFromRaw(raw uint64) float64 {
	return float64(raw) / TokenScale
}

// SolCost returns the SOL moved by trading deltaTokens against a pool that
// currently holds tokensInPool tokens. A negative delta prices a sell.
func SolCost(deltaTokens, tokensInPool float64) float64 {
	return (CurveK / tokensInPool) - (CurveK / (tokensInPool + deltaTokens))
}

// TokensForSol returns how many tokens deltaSol buys from a pool with the
// given virtual reserves.
func TokensForSol(deltaSol, solInPool, tokensInPool float64) float64 {
	newTokensInPool := CurveK / (solInPool + deltaSol)
	return tokensInPool - newTokensInPool
}

// InitialSolCost returns the SOL needed to acquire deltaTokens starting from
// the curve's initial reserves.
func InitialSolCost(deltaTokens float64) float64 {
	return (CurveK / (InitialTokenReserve - deltaTokens)) - InitialSolReserve
}
