// Package language holds the per-language lexical rule table. A rule set is
// pure data; adding support for a language is a registration, never a parser
// change.
package language

import (
	"path/filepath"
	"regexp"
	"sort"

	"git.home.luguber.info/inful/sidedoc/internal/errors"
)

// Rules is the immutable lexical pattern bundle for one language.
type Rules struct {
	// Name is the language id handed to the external highlighter.
	Name string
	// Comment matches a single-line comment and, via ReplaceAllString,
	// strips the marker prefix.
	Comment *regexp.Regexp
	// Ignore matches lines dropped from both doc and code output. May be nil.
	Ignore *regexp.Regexp
	// MultiStart and MultiEnd delimit multi-line comment blocks. Either both
	// are set or both are nil.
	MultiStart *regexp.Regexp
	MultiEnd   *regexp.Regexp
	// DividerText separates concatenated code blocks on the highlighter's
	// stdin; DividerHTML recognizes the highlighted form of that divider in
	// its output.
	DividerText string
	DividerHTML *regexp.Regexp
}

// Multiline reports whether this rule set recognizes multi-line comment blocks.
func (r *Rules) Multiline() bool {
	return r.MultiStart != nil && r.MultiEnd != nil
}

// Spec is the serializable form of a rule set, suitable for configuration
// files. Compile turns it into Rules.
type Spec struct {
	Name           string `yaml:"name"`
	Symbol         string `yaml:"symbol"`
	Ignore         string `yaml:"ignore,omitempty"`
	MultilineStart string `yaml:"multiline_start,omitempty"`
	MultilineEnd   string `yaml:"multiline_end,omitempty"`
}

// Compile derives a full rule set from a Spec. The comment matcher and the
// divider pair are derived from the single-line comment symbol.
func Compile(spec Spec) (*Rules, error) {
	if spec.Name == "" {
		return nil, errors.LanguageRuleInvalid(spec.Name, "name is required")
	}
	if spec.Symbol == "" {
		return nil, errors.LanguageRuleInvalid(spec.Name, "comment symbol is required")
	}
	if (spec.MultilineStart == "") != (spec.MultilineEnd == "") {
		return nil, errors.LanguageRuleInvalid(spec.Name, "multiline start and end must be set together")
	}

	r := &Rules{
		Name:        spec.Name,
		Comment:     regexp.MustCompile(`^\s*` + regexp.QuoteMeta(spec.Symbol) + `\s?`),
		DividerText: "\n" + spec.Symbol + "DIVIDER\n",
		DividerHTML: regexp.MustCompile(`\n*<span class="c1?">` + regexp.QuoteMeta(spec.Symbol) + `DIVIDER</span>\n*`),
	}

	var err error
	if spec.Ignore != "" {
		if r.Ignore, err = regexp.Compile(spec.Ignore); err != nil {
			return nil, errors.LanguageRuleInvalid(spec.Name, "ignore pattern: "+err.Error())
		}
	}
	if spec.MultilineStart != "" {
		if r.MultiStart, err = regexp.Compile(spec.MultilineStart); err != nil {
			return nil, errors.LanguageRuleInvalid(spec.Name, "multiline start pattern: "+err.Error())
		}
		if r.MultiEnd, err = regexp.Compile(spec.MultilineEnd); err != nil {
			return nil, errors.LanguageRuleInvalid(spec.Name, "multiline end pattern: "+err.Error())
		}
	}
	return r, nil
}

// registry maps a file extension (including the leading dot) to its rule set.
// Mutated during startup only; the processing model is single-threaded.
var registry = map[string]*Rules{}

// Register binds an extension to a rule set, replacing any previous binding.
func Register(ext string, rules *Rules) {
	registry[ext] = rules
}

// ForFile looks up the rule set for a filename by extension. Unknown
// extensions are a distinct error, never a silent default.
func ForFile(filename string) (*Rules, error) {
	ext := filepath.Ext(filename)
	if rules, ok := registry[ext]; ok {
		return rules, nil
	}
	return nil, errors.UnsupportedLanguage(ext)
}

// Get returns the rule set registered for an extension.
func Get(ext string) (*Rules, bool) {
	rules, ok := registry[ext]
	return rules, ok
}

// Supported reports whether a filename has a registered rule set.
func Supported(filename string) bool {
	_, ok := registry[filepath.Ext(filename)]
	return ok
}

// Extensions returns all registered extensions, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(registry))
	for ext := range registry {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func mustCompile(spec Spec) *Rules {
	rules, err := Compile(spec)
	if err != nil {
		panic(err)
	}
	return rules
}

func init() {
	// Shipped rule set. The ignore pattern drops shebang lines and
	// sprockets-style `//=` directives, which belong in neither prose nor
	// highlighted code.
	Register(".js", mustCompile(Spec{
		Name:           "javascript",
		Symbol:         "//",
		Ignore:         `^#!|^\s*//=`,
		MultilineStart: `^\s*/\*`,
		MultilineEnd:   `\*/`,
	}))
}
