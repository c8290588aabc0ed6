package resolver

import "regexp"

var (
	// an identifier, optionally followed by an open argument list with at
	// most one level of nested parentheses, ending at the cursor
	callBeforeRe = regexp.MustCompile(`([a-zA-Z0-9_$]+)(?:\s*\((?:[^()]|\([^()]*\))*)?$`)
	// the rest of the argument list up to its closing parenthesis
	callAfterRe = regexp.MustCompile(`^(?:[^()]|\([^()]*\))*\)`)
)

// CallSite describes the call expression around the cursor.
type CallSite struct {
	// Callee is the identifier before the argument list. It is set even
	// when InCall is false, for a cursor right after an identifier.
	Callee string
	// InCall reports whether the cursor sits inside a call's argument list.
	InCall bool
}

// AnalyzeCall inspects the text before and after the cursor on one line.
func AnalyzeCall(before, after string) CallSite {
	var cs CallSite
	m := callBeforeRe.FindStringSubmatch(before)
	if m != nil {
		cs.Callee = m[1]
	}
	cs.InCall = m != nil && callAfterRe.MatchString(after)
	return cs
}
