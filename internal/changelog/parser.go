package changelog

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leodido/go-conventionalcommits"
	"github.com/leodido/go-conventionalcommits/parser"
)

// lineBreaks folds embedded line breaks into single spaces.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// CommitParser classifies commit subjects against the conventional commit
// grammar `<type>(<scope>)?!?: <description>`.
// A CommitParser is not safe for concurrent use.
type CommitParser struct {
	machine conventionalcommits.Machine
}

// NewCommitParser returns a parser that accepts the conventional type set.
func NewCommitParser() *CommitParser {
	return &CommitParser{
		machine: parser.NewMachine(parser.WithTypes(conventionalcommits.TypesConventional)),
	}
}

// ParseCommit classifies a single commit with a fresh parser.
func ParseCommit(rc RawCommit) (ClassifiedCommit, bool) {
	return NewCommitParser().Parse(rc)
}

// Parse classifies rc. The second return value is false when the subject does
// not match the grammar or its type token is not in the category table; such
// commits are excluded from the changelog rather than reported as errors.
func (p *CommitParser) Parse(rc RawCommit) (ClassifiedCommit, bool) {
	subject := strings.TrimSpace(lineBreaks.Replace(rc.Subject))
	if subject == "" {
		return ClassifiedCommit{}, false
	}

	msg, err := p.machine.Parse([]byte(subject))
	if err != nil || msg == nil {
		logDebug("[changelog] skipping %s: %q does not match the commit grammar", shortHash(rc.Hash), subject)
		return ClassifiedCommit{}, false
	}

	cc, ok := msg.(*conventionalcommits.ConventionalCommit)
	if !ok {
		return ClassifiedCommit{}, false
	}

	category, ok := CategoryForType(cc.Type)
	if !ok {
		logDebug("[changelog] skipping %s: unrecognized type %q", shortHash(rc.Hash), cc.Type)
		return ClassifiedCommit{}, false
	}

	description := normalizeDescription(cc.Description)
	if description == "" {
		return ClassifiedCommit{}, false
	}

	var scope string
	if cc.Scope != nil {
		scope = *cc.Scope
	}

	return ClassifiedCommit{
		Hash:        rc.Hash,
		Category:    category,
		Description: description,
		Type:        strings.ToLower(cc.Type),
		Scope:       scope,
		Breaking:    cc.IsBreakingChange(),
	}, true
}

// normalizeDescription trims the description, folds line breaks and upper-cases
// its first character.
func normalizeDescription(s string) string {
	return capitalizeFirst(strings.TrimSpace(lineBreaks.Replace(s)))
}

// capitalizeFirst upper-cases the first rune of s.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// shortHash abbreviates a commit hash for log output.
func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
