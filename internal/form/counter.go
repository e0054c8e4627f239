package form

import (
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// QualityBand classifies a job description by length.
type QualityBand int

const (
	BandTooShort QualityBand = iota
	BandGood
	BandVeryDetailed
)

const (
	goodLengthMin     = 500
	detailedLengthMin = 5000
)

func (b QualityBand) String() string {
	switch b {
	case BandTooShort:
		return "too_short"
	case BandGood:
		return "good"
	case BandVeryDetailed:
		return "very_detailed"
	}
	return "unknown"
}

// CounterView is the rendered status line under the description field.
type CounterView struct {
	Count   int
	Band    QualityBand
	Message string
	Class   string
}

var counterPrinter = message.NewPrinter(language.English)

// ClassifyLength maps a character count to its band.
// 500 and 5000 both fall in BandGood.
func ClassifyLength(n int) QualityBand {
	switch {
	case n < goodLengthMin:
		return BandTooShort
	case n > detailedLengthMin:
		return BandVeryDetailed
	default:
		return BandGood
	}
}

// Count computes the counter line for the current description text.
func Count(text string) CounterView {
	n := utf8.RuneCountInString(text)
	band := ClassifyLength(n)

	view := CounterView{
		Count: n,
		Band:  band,
	}

	base := counterPrinter.Sprintf("%d characters", n)
	switch band {
	case BandTooShort:
		view.Class = "form-text mt-1 text-warning"
		view.Message = base + " (Consider adding more details for better analysis)"
	case BandVeryDetailed:
		view.Class = "form-text mt-1 text-info"
		view.Message = base + " (Very detailed - excellent for analysis!)"
	default:
		view.Class = "form-text mt-1 text-success"
		view.Message = base + " (Good length for analysis)"
	}

	return view
}
