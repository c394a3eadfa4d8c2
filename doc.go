// Package uci decodes and encodes lines of the Universal Chess Interface
// protocol spoken between chess engines and their front-ends.
//
// Lines sent to the engine are Commands, lines sent by the engine are
// Remarks. Both directions are plain functions of a line and the session's
// FormatOptions, which select the Chess960 and WDL dialects.
//
// Example usage:
//
//	sess := uci.NewSession(uci.FormatOptions{})
//
//	cmd, err := sess.ParseCommand("position startpos moves e2e4 e7e5")
//	if err != nil {
//	    var perr *uci.ParseError
//	    if errors.As(err, &perr) {
//	        log.Printf("bad token at %s: %v", perr.Span, perr)
//	    }
//	    return
//	}
//
//	rmk, err := sess.ParseRemark("info depth 12 score cp 31 pv g1f3 g8f6")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(sess.FormatRemark(rmk))
//
// Decoding never returns a partial value: every failure is a *ParseError
// carrying the byte span of the offending input and a Kind, and matches the
// sentinel of that kind (ErrUnknownField, ErrDuplicateField, ...) under
// errors.Is. Formatting never fails.
package uci
