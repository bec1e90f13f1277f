package analysis

// SignificanceLevel is the fixed p-value threshold below which the
// correlation is called statistically significant.
const SignificanceLevel = 0.05

// Report is the single handoff to the chart, spreadsheet and CSV writers.
type Report struct {
	Symbol      string      `json:"symbol"`
	Rows        []MergedRow `json:"rows"`
	Correlation float64     `json:"correlation"`
	PValue      float64     `json:"p_value"`
	Significant bool        `json:"significant"`
	Verdict     string      `json:"verdict"`
}

// BuildReport assembles the final report from an aligned series and its
// correlation statistics.
func BuildReport(symbol string, rows []MergedRow, correlation, pValue float64) *Report {
	significant := pValue < SignificanceLevel

	verdict := "No significant relationship found, but the theory remains majestic."
	if significant {
		verdict = "Statistically significant relationship detected. Cats may know something."
	}

	return &Report{
		Symbol:      symbol,
		Rows:        rows,
		Correlation: correlation,
		PValue:      pValue,
		Significant: significant,
		Verdict:     verdict,
	}
}
