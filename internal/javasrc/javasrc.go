// Package javasrc reads declarations out of Java source text with regular
// expressions. It does not parse Java: comments and string literals are
// not skipped, and the first class declaration in a file is assumed to be
// the primary one.
package javasrc

import (
	"path"
	"regexp"
	"strings"
)

var (
	packageRe   = regexp.MustCompile(`package\s+([\w.]+)\s*;`)
	classRe     = regexp.MustCompile(`class\s+(\w+)(?:\s+extends|\s+implements|\s*\{|\s*$)`)
	importRe    = regexp.MustCompile(`import\s+([\w.]+)\.([^;]+);`)
	signatureRe = regexp.MustCompile(`(?:public|private|protected)?\s+\w+\s+(\w+)\s*\(`)
)

// ExtractPackage returns the package declared in text.
func ExtractPackage(text string) (string, bool) {
	m := packageRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractClassName returns the simple name of the first class declared in
// text.
func ExtractClassName(text string) (string, bool) {
	m := classRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractFullClassName returns package.Class for the first class declared in
// text. Files without a package declaration yield nothing.
func ExtractFullClassName(text string) (string, bool) {
	pkg, ok := ExtractPackage(text)
	if !ok {
		return "", false
	}
	class, ok := ExtractClassName(text)
	if !ok {
		return "", false
	}
	return pkg + "." + class, true
}

// Import is one import declaration. Name is "*" for on-demand imports.
type Import struct {
	Package string
	Name    string
}

// ImportsOf returns the import declarations of text in source order. Static
// imports are not reported.
func ImportsOf(text string) []Import {
	var imports []Import
	for _, m := range importRe.FindAllStringSubmatch(text, -1) {
		imports = append(imports, Import{Package: m[1], Name: m[2]})
	}
	return imports
}

// ResolveImported qualifies name with the first import that names it
// explicitly or imports its package on demand.
func ResolveImported(text, name string) (string, bool) {
	for _, imp := range ImportsOf(text) {
		if imp.Name == name || imp.Name == "*" {
			return imp.Package + "." + name, true
		}
	}
	return "", false
}

// MethodNameFromSignature returns the method name declared on line, such as
// "find" for "public User find(long id) {".
func MethodNameFromSignature(line string) (string, bool) {
	m := signatureRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// BaseName returns the file name of a file path, file:// URI or jdt:// URI
// without its .java or .class extension.
func BaseName(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 && strings.Contains(p, "://") {
		p = p[:i]
	}
	p = strings.ReplaceAll(p, "\\", "/")
	base := path.Base(p)
	for _, ext := range []string{".java", ".class"} {
		if strings.HasSuffix(base, ext) {
			return strings.TrimSuffix(base, ext)
		}
	}
	return base
}
