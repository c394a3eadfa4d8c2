package uci

import "strconv"

// IsMate reports whether the score is a forced mate.
func (s Score) IsMate() bool {
	return s.Mate != nil
}

// Display returns a human-readable score from the engine's point of view.
// Examples: "+1.25", "-0.50", "#3", "#-5". Bounds get a ">=" or "<=" prefix.
func (s Score) Display() string {
	var v string
	switch {
	case s.Mate != nil:
		v = "#" + strconv.Itoa(int(*s.Mate))
	case s.CP != nil:
		v = centipawns(int(*s.CP))
	default:
		return "?"
	}

	switch s.Kind {
	case LowerBound:
		return ">=" + v
	case UpperBound:
		return "<=" + v
	}
	return v
}

func centipawns(cp int) string {
	sign := "+"
	if cp < 0 {
		sign = "-"
		cp = -cp
	}
	whole := cp / 100
	frac := cp % 100
	if frac < 10 {
		return sign + strconv.Itoa(whole) + ".0" + strconv.Itoa(frac)
	}
	return sign + strconv.Itoa(whole) + "." + strconv.Itoa(frac)
}

// Expectation returns the expected score in [0, 1], counting a draw as half
// a win.
func (w WDL) Expectation() float64 {
	return w.Win.Float() + w.Draw.Float()/2
}

// String formats the outcome as "win/draw/loss".
func (w WDL) String() string {
	return w.Win.String() + "/" + w.Draw.String() + "/" + w.Loss.String()
}
