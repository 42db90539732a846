package pdftext

// Strategy identifies one concrete way of pulling text out of a PDF.
// Strategies are tried in the fixed chainOrder; the first one that yields
// non-empty text wins and later ones are never consulted.
type Strategy int

const (
	// StrategyPoppler shells out to pdftotext -layout (best for structured documents).
	StrategyPoppler Strategy = iota
	// StrategyMuPDF uses the go-fitz MuPDF bindings (good for complex layouts).
	StrategyMuPDF
	// StrategyNative uses a pure-Go PDF reader (fallback, no external deps).
	StrategyNative
)

// chainOrder is the fixed preference order of the extraction chain.
var chainOrder = [3]Strategy{StrategyPoppler, StrategyMuPDF, StrategyNative}

func (s Strategy) String() string {
	switch s {
	case StrategyPoppler:
		return "pdftotext"
	case StrategyMuPDF:
		return "mupdf"
	case StrategyNative:
		return "pdf-native"
	default:
		return "unknown"
	}
}
