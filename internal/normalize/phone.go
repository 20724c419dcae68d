package normalize

import "strings"

var phoneStripper = strings.NewReplacer(" ", "", "+", "", "-", "", "(", "", ")", "")

// Phone produces the canonical comparison key for a phone number:
// formatting characters removed, one leading zero dropped.
func Phone(s string) string {
	s = phoneStripper.Replace(s)
	if strings.HasPrefix(s, "0") {
		s = s[1:]
	}
	return s
}

// SamePhone reports whether two numbers denote the same identity. Canonical
// keys are compared first; raw-vs-canonical equality is also accepted to
// tolerate partially-normalized stored data, and numbers that agree on their
// last ten digits are treated as equal so a stored "+91 7095288950" still
// resolves a "7095288950" query.
func SamePhone(a, b string) bool {
	ca, cb := Phone(a), Phone(b)
	if ca == cb || a == cb || ca == b {
		return true
	}
	return len(ca) >= 10 && len(cb) >= 10 && ca[len(ca)-10:] == cb[len(cb)-10:]
}

// PhonePair holds the two numbers a tenant can be reached on.
type PhonePair struct {
	Phone    string
	Whatsapp string
}

// MatchesPhone resolves an identity query against both stored numbers; a
// match on either counts. Empty queries never match.
func (p PhonePair) MatchesPhone(query string) bool {
	if strings.TrimSpace(query) == "" {
		return false
	}
	if p.Phone != "" && SamePhone(p.Phone, query) {
		return true
	}
	return p.Whatsapp != "" && SamePhone(p.Whatsapp, query)
}
