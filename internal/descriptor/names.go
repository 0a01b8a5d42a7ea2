package descriptor

import (
	"go/token"
	"go/types"
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// initialisms are spelled in one case, like the Go linters want them.
var initialisms = map[string]bool{
	"ACL": true, "API": true, "ASCII": true, "CPU": true, "CSS": true, "DNS": true,
	"EOF": true, "GUID": true, "HTML": true, "HTTP": true, "HTTPS": true, "ID": true,
	"IP": true, "JSON": true, "LHS": true, "QPS": true, "RAM": true, "RHS": true,
	"RPC": true, "SLA": true, "SMTP": true, "SQL": true, "SSH": true, "TCP": true,
	"TLS": true, "TTL": true, "UDP": true, "UI": true, "UID": true, "URI": true,
	"URL": true, "UTF8": true, "UUID": true, "VM": true, "XML": true, "XMPP": true,
	"XSRF": true, "XSS": true,
}

// words splits an identifier at underscores, dashes and case changes:
// firstName, first_name and FirstName all give first, name; HTTPServer gives
// HTTP, Server.
func words(s string) []string {
	var (
		out []string
		cur []rune
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	rs := []rune(s)
	for i, r := range rs {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
			continue
		case unicode.IsUpper(r) && len(cur) > 0:
			prevLower := unicode.IsLower(cur[len(cur)-1]) || unicode.IsDigit(cur[len(cur)-1])
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if prevLower || (nextLower && unicode.IsUpper(cur[len(cur)-1])) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return out
}

func titleWord(w string) string {
	if u := strings.ToUpper(w); initialisms[u] {
		return u
	}
	rs := []rune(strings.ToLower(w))
	rs[0] = unicode.ToUpper(rs[0])
	return string(rs)
}

// exported spells s as an exported identifier: user_id gives UserID.
func exported(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		b.WriteString(titleWord(w))
	}
	return b.String()
}

// unexported spells s as an unexported identifier: UserID gives userID, URL gives url.
func unexported(s string) string {
	ws := words(s)
	if len(ws) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(ws[0]))
	for _, w := range ws[1:] {
		b.WriteString(titleWord(w))
	}
	return b.String()
}

// allCaps spells s as a constant-style name: firstName gives FIRST_NAME.
func allCaps(s string) string {
	return strings.ToUpper(strings.Join(words(s), "_"))
}

// singular guesses the element name of a collection property.
func singular(name string) string {
	ws := words(name)
	if len(ws) == 0 {
		return name
	}
	ws[len(ws)-1] = inflection.Singular(ws[len(ws)-1])
	return unexported(strings.Join(ws, "_"))
}

// reservedNames cannot name properties or their elements: generated bodies
// declare them next to property parameters, or the builder and snapshot
// types already use them.
var reservedNames = map[string]bool{
	"b": true, "d": true, "e": true, "i": true, "k": true, "v": true, "ok": true, "fn": true,
	"bound": true, "unset": true, "partial": true,
	"snapshot": true, "equal": true, "format": true, "copyTo": true,
}

// checkIdent reports why name cannot be used for a property, if it cannot.
func checkIdent(name string) string {
	switch {
	case token.IsKeyword(name):
		return "is a Go keyword"
	case !token.IsIdentifier(name):
		return "is not a Go identifier"
	case reservedNames[name]:
		return "is used by generated code"
	case types.Universe.Lookup(name) != nil:
		return "shadows a predeclared identifier"
	}
	return ""
}
