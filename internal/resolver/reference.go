package resolver

import "strings"

// MethodReference is the class and method an Arthas command targets.
type MethodReference struct {
	FullClassName string
	MethodName    string
}

// Valid reports whether both names are present and the method name carries
// no parameter list. The class name must be package qualified with no
// whitespace; a bare identifier is usually a receiver variable picked out of
// a call expression, not a class.
func (r MethodReference) Valid() bool {
	if r.FullClassName == "" || r.MethodName == "" {
		return false
	}
	if strings.ContainsAny(r.FullClassName, " \t\r\n") {
		return false
	}
	if i := strings.LastIndexByte(r.FullClassName, '.'); i <= 0 || i == len(r.FullClassName)-1 {
		return false
	}
	return !strings.ContainsAny(r.MethodName, "() \t")
}

func (r MethodReference) String() string {
	return r.FullClassName + "#" + r.MethodName
}
