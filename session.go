package uci

// Session tracks the dialect of one engine conversation. Every command it
// decodes or encodes is observed, so a "setoption name UCI_ShowWDL value
// true" switches later info lines to the WDL dialect.
//
// A Session is not safe for concurrent use.
type Session struct {
	opts FormatOptions
}

// NewSession returns a session starting from opts.
func NewSession(opts FormatOptions) *Session {
	return &Session{opts: opts}
}

// Options returns the current dialect.
func (s *Session) Options() FormatOptions {
	return s.opts
}

// ParseCommand decodes a command and observes it.
func (s *Session) ParseCommand(line string) (Command, error) {
	cmd, err := ParseCommand(line, s.opts)
	if err != nil {
		return nil, err
	}
	s.opts.Observe(cmd)
	return cmd, nil
}

// FormatCommand encodes a command with the current dialect, then observes it.
func (s *Session) FormatCommand(cmd Command) string {
	line := FormatCommand(cmd, s.opts)
	s.opts.Observe(cmd)
	return line
}

// ParseRemark decodes a remark with the current dialect.
func (s *Session) ParseRemark(line string) (Remark, error) {
	return ParseRemark(line, s.opts)
}

// FormatRemark encodes a remark with the current dialect.
func (s *Session) FormatRemark(rmk Remark) string {
	return FormatRemark(rmk, s.opts)
}
