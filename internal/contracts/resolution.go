package contracts

// Outcome is the result kind of a symbol resolution
type Outcome int

const (
	OutcomeNotFound Outcome = iota
	OutcomeFound
)

// String returns the outcome name
func (o Outcome) String() string {
	if o == OutcomeFound {
		return "found"
	}
	return "not_found"
}

// Resolution is what the suffix search produced for a bare code.
// Not found is a regular value: Outcome == OutcomeNotFound, no symbol, no bars.
type Resolution struct {
	Outcome Outcome
	Code    string     // bare numeric code as queried
	Symbol  string     // code + winning suffix, e.g. 2399.TW
	Bars    []DailyBar // non-empty when found
}

// Found reports whether a suffix candidate produced data
func (r Resolution) Found() bool {
	return r.Outcome == OutcomeFound
}

// NotFound builds the not-found resolution for code
func NotFound(code string) Resolution {
	return Resolution{Outcome: OutcomeNotFound, Code: code}
}

// FoundAt builds a found resolution
func FoundAt(code, symbol string, bars []DailyBar) Resolution {
	return Resolution{Outcome: OutcomeFound, Code: code, Symbol: symbol, Bars: bars}
}
