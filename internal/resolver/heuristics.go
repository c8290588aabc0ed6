package resolver

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/spachava753/arthas-copy/internal/javasrc"
)

// The heuristics below classify code by text alone. They are deliberately
// coarse: a receiver named "userMap" is taken for a Map, and any call of
// size() on a line without a known non-map receiver is taken for a Map
// call. Arthas needs the concrete class for interface methods, so every Map
// hit is reported as java.util.HashMap.

// Fully-qualified names used for collection receivers.
const (
	HashMapClass = "java.util.HashMap"
	ListClass    = "java.util.List"
	SetClass     = "java.util.Set"
)

var (
	// mapFastPathMethods are checked before asking the language server.
	mapFastPathMethods = setOf("put", "get", "remove", "containsKey", "entrySet", "keySet", "values", "putAll", "putIfAbsent")
	// mapLineMethods are checked after every server query failed.
	mapLineMethods = setOf("put", "get", "remove", "containsKey", "putAll", "putIfAbsent", "size", "isEmpty", "clear", "entrySet", "keySet", "values")

	mapCallRe    = regexp.MustCompile(`\.(put|get|remove|containsKey)\s*\(`)
	nonMapCallRe = regexp.MustCompile(`(String|StringBuilder|List|Set|Collection|Queue|Deque|Array)\.(put|get|remove|containsKey)\s*\(`)

	mapReceiverRe  = regexp.MustCompile(`Map|HashMap|TreeMap|ConcurrentHashMap|LinkedHashMap`)
	listReceiverRe = regexp.MustCompile(`List|ArrayList|LinkedList`)
	setReceiverRe  = regexp.MustCompile(`Set|HashSet|TreeSet`)

	hoverMapMethodRe  = regexp.MustCompile(`(get|put|remove|containsKey|entrySet|keySet|values|size|isEmpty|clear|putAll|putIfAbsent)\s*\(`)
	hoverMethodRe     = regexp.MustCompile(`([a-zA-Z0-9_$]+)\s*\(`)
	hoverClassRe      = regexp.MustCompile(`([a-zA-Z0-9_$.]+)\.([a-zA-Z0-9_$]+)\s*\(`)
	lineMethodRe      = regexp.MustCompile(`\b(\w+)\s*\(`)
	lombokMarkers     = []string{"lombok.", "@Getter", "@Setter"}
	mapSourceBaseName = setOf("Map", "HashMap", "AbstractMap")
)

func setOf(items ...string) map[string]bool {
	s := make(map[string]bool, len(items))
	for _, it := range items {
		s[it] = true
	}
	return s
}

// IsMapSource reports whether uri is the source of Map, HashMap or
// AbstractMap, judged by file name.
func IsMapSource(uri string) bool {
	return mapSourceBaseName[javasrc.BaseName(uri)]
}

// receiverOf returns the variable a call of method is made on in line.
func receiverOf(line, method string) string {
	re, err := regexp.Compile(`(\w+)\s*\.\s*` + regexp.QuoteMeta(method) + `\b`)
	if err != nil {
		return ""
	}
	if m := re.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

// declaredAsMap reports whether text declares variable with a Map type and
// an initializer.
func declaredAsMap(text, variable string) bool {
	re, err := regexp.Compile(`(?i)(Map|HashMap|TreeMap|LinkedHashMap|ConcurrentHashMap)<.*>\s+` + regexp.QuoteMeta(variable) + `\s*=`)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// looksLikeMapCall reports whether line calls put/get/remove/containsKey on
// something that is not a known non-map type.
func looksLikeMapCall(line string) bool {
	return mapCallRe.MatchString(line) && !nonMapCallRe.MatchString(line)
}

// BucketCollection maps a receiver expression to the collection type it
// names, if any.
func BucketCollection(receiver string) (string, bool) {
	switch {
	case mapReceiverRe.MatchString(receiver):
		return HashMapClass, true
	case listReceiverRe.MatchString(receiver):
		return ListClass, true
	case setReceiverRe.MatchString(receiver):
		return SetClass, true
	}
	return "", false
}

// qualifiedReceiver returns the receiver expression of a call of method in
// line, such as "Collections" for "Collections.sort(list)".
func qualifiedReceiver(line, method string) string {
	re, err := regexp.Compile(`([A-Za-z0-9_$.]+)\.` + regexp.QuoteMeta(method) + `\s*\(`)
	if err != nil {
		return ""
	}
	if m := re.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

// looksLikeType reports whether name is written like a Java type name.
func looksLikeType(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}

func hasLombokMarker(text string) bool {
	for _, m := range lombokMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
