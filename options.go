package uci

// Option names that switch the dialect of a session.
const (
	OptionChess960 = "UCI_Chess960"
	OptionShowWDL  = "UCI_ShowWDL"
)

// FormatOptions selects protocol dialect extensions for decoding and
// encoding. The zero value is plain UCI.
type FormatOptions struct {
	// Chess960 reads and writes FEN castling rights in Shredder notation.
	Chess960 bool

	// WDL enables the "wdl" sub-field of "info ... score".
	WDL bool
}

// Observe updates the options from a command sent to the engine. A
// "setoption" naming UCI_Chess960 or UCI_ShowWDL sets the matching flag to
// whether its value is exactly "true". Any other command leaves o unchanged.
func (o *FormatOptions) Observe(cmd Command) {
	so, ok := cmd.(SetOption)
	if !ok {
		return
	}

	on := so.Value != nil && *so.Value == "true"
	switch so.Name {
	case OptionChess960:
		o.Chess960 = on
	case OptionShowWDL:
		o.WDL = on
	}
}
