package uci

import (
	"strconv"
	"strings"
)

// FormatRemark encodes a remark as one protocol line, without a trailing
// newline. Only present fields are written; "wdl" is written only in the WDL
// dialect.
func FormatRemark(rmk Remark, opts FormatOptions) string {
	var sb strings.Builder
	sb.WriteString(rmk.Keyword())

	switch r := rmk.(type) {
	case ID:
		writeName(&sb, r.Field.String())
		sb.WriteString(r.Value)
	case BestMove:
		sb.WriteByte(' ')
		sb.WriteString(r.Move.String())
		if r.Ponder != nil {
			writeName(&sb, "ponder")
			sb.WriteString(r.Ponder.String())
		}
	case Info:
		formatInfo(&sb, &r, opts)
	case Option:
		writeName(&sb, "name")
		sb.WriteString(r.Name)
		formatOptionInfo(&sb, r.Info)
	}

	return sb.String()
}

func formatOptionInfo(sb *strings.Builder, info OptionInfo) {
	if info == nil {
		return
	}
	writeName(sb, "type")
	sb.WriteString(info.Type())

	switch o := info.(type) {
	case CheckOption:
		writeName(sb, "default")
		sb.WriteString(strconv.FormatBool(o.Default))
	case SpinOption:
		writeName(sb, "default")
		sb.WriteString(strconv.FormatInt(o.Default, 10))
		writeName(sb, "min")
		sb.WriteString(strconv.FormatInt(o.Min, 10))
		writeName(sb, "max")
		sb.WriteString(strconv.FormatInt(o.Max, 10))
	case ComboOption:
		writeName(sb, "default")
		sb.WriteString(o.Default)
		for _, v := range o.Vars {
			writeName(sb, "var")
			sb.WriteString(v)
		}
	case StringOption:
		writeName(sb, "default")
		sb.WriteString(o.Default)
	}
}

// formatInfo writes the info fields. "string" goes last since its value runs
// to the end of the line.
func formatInfo(sb *strings.Builder, info *Info, opts FormatOptions) {
	writeUint(sb, "depth", info.Depth)
	writeUint(sb, "seldepth", info.SelDepth)
	writeMillis(sb, "time", info.Time)
	writeUint(sb, "nodes", info.Nodes)
	writeMoves(sb, "pv", info.PV)
	writeUint(sb, "multipv", info.MultiPV)
	if info.Score != nil {
		formatScore(sb, info.Score, opts)
	}
	if info.CurrMove != nil {
		writeName(sb, "currmove")
		sb.WriteString(info.CurrMove.String())
	}
	writeUint(sb, "currmovenumber", info.CurrMoveNumber)
	if info.HashFull != nil {
		writeName(sb, "hashfull")
		sb.WriteString(info.HashFull.String())
	}
	writeUint(sb, "nps", info.NPS)
	writeUint(sb, "tbhits", info.TBHits)
	writeUint(sb, "sbhits", info.SBHits)
	writeUint(sb, "cpuload", info.CPULoad)
	writeMoves(sb, "refutation", info.Refutation)
	if cl := info.CurrLine; cl != nil {
		sb.WriteString(" currline")
		if cl.CPU != nil {
			sb.WriteByte(' ')
			sb.WriteString(strconv.FormatUint(uint64(*cl.CPU), 10))
		}
		for _, m := range cl.Moves {
			sb.WriteByte(' ')
			sb.WriteString(m.String())
		}
	}
	if info.String != nil {
		writeName(sb, "string")
		sb.WriteString(*info.String)
	}
}

func formatScore(sb *strings.Builder, score *Score, opts FormatOptions) {
	sb.WriteString(" score")
	if score.CP != nil {
		writeName(sb, "cp")
		sb.WriteString(strconv.FormatInt(int64(*score.CP), 10))
	}
	if score.Mate != nil {
		writeName(sb, "mate")
		sb.WriteString(strconv.FormatInt(int64(*score.Mate), 10))
	}
	if score.WDL != nil && opts.WDL {
		writeName(sb, "wdl")
		sb.WriteString(score.WDL.Win.String())
		sb.WriteByte(' ')
		sb.WriteString(score.WDL.Draw.String())
		sb.WriteByte(' ')
		sb.WriteString(score.WDL.Loss.String())
	}
	if score.Kind != Exact {
		sb.WriteByte(' ')
		sb.WriteString(score.Kind.String())
	}
}

// writeMoves writes a present move sequence; an empty one is just its name.
func writeMoves(sb *strings.Builder, name string, moves []Move) {
	if moves == nil {
		return
	}
	sb.WriteByte(' ')
	sb.WriteString(name)
	for _, m := range moves {
		sb.WriteByte(' ')
		sb.WriteString(m.String())
	}
}
