package domain

import (
	"strings"
	"unicode/utf8"
)

// abnQueryLength is the number of characters a search term must have, whitespace
// removed, to be treated as an ABN lookup instead of a name search.
const abnQueryLength = 11

// IsABNQuery reports whether term should be matched against ABNs.
func IsABNQuery(term string) bool {
	return utf8.RuneCountInString(StripSpaces(term)) == abnQueryLength
}

// MatchesContractorTerm applies the contractor search rule: exact ABN equality
// (whitespace ignored) for 11 character terms, otherwise a case-insensitive substring
// match on "first last".
func MatchesContractorTerm(firstName, lastName, abn, term string) bool {
	if IsABNQuery(term) {
		return StripSpaces(abn) == StripSpaces(term)
	}
	name := strings.ToLower(firstName + " " + lastName)
	return strings.Contains(name, strings.ToLower(strings.TrimSpace(term)))
}
