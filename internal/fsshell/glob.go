package fsshell

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/quocvuong92/hadoop-repl/internal/dfs"
)

// hasGlob reports whether p contains glob metacharacters
func hasGlob(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

// compileGlob converts one path component pattern to an anchored regexp.
// Supported syntax:
//   - "*" any run of characters, "?" any one character
//   - "[abc]", "[a-z]", "[^a]" / "[!a]" character classes
//   - "{a,b}" alternatives
//   - "\x" a literal x
func compileGlob(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("^")
	depth := 0
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && i+1 < len(runes):
			i++
			sb.WriteString(regexp.QuoteMeta(string(runes[i])))
		case r == '*':
			sb.WriteString(`[^/]*`)
		case r == '?':
			sb.WriteString(`[^/]`)
		case r == '[':
			end := indexRune(runes[i+1:], ']')
			if end < 0 {
				sb.WriteString(`\[`)
				continue
			}
			class := runes[i+1 : i+1+end]
			sb.WriteString("[")
			if len(class) > 0 && class[0] == '!' {
				class[0] = '^'
			}
			sb.WriteString(strings.ReplaceAll(string(class), `\`, `\\`))
			sb.WriteString("]")
			i += end + 1
		case r == '{':
			depth++
			sb.WriteString("(?:")
		case r == ',' && depth > 0:
			sb.WriteString("|")
		case r == '}' && depth > 0:
			depth--
			sb.WriteString(")")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")
	return regexp.Compile(sb.String())
}

func indexRune(runes []rune, target rune) int {
	for i, r := range runes {
		if r == target {
			return i
		}
	}
	return -1
}

// glob returns the existing absolute paths matching pattern, sorted.
// Each component is matched against the listing of the directories the
// previous components matched.
func (sh *Shell) glob(pattern string) []string {
	current := []string{dfs.Separator}
	for _, part := range strings.Split(strings.Trim(pattern, dfs.Separator), dfs.Separator) {
		if part == "" {
			continue
		}
		var next []string
		if !hasGlob(part) {
			for _, dir := range current {
				next = append(next, dfs.Join(dir, part))
			}
			current = next
			continue
		}
		re, err := compileGlob(part)
		if err != nil {
			return nil
		}
		for _, dir := range current {
			children, err := sh.fs.ReadDir(dir)
			if err != nil {
				continue
			}
			for _, child := range children {
				if re.MatchString(child.Name()) {
					next = append(next, dfs.Join(dir, child.Name()))
				}
			}
		}
		current = next
	}

	var matches []string
	for _, p := range current {
		if _, err := sh.fs.Stat(p); err == nil {
			matches = append(matches, p)
		}
	}
	sort.Strings(matches)
	return matches
}

// expand replaces remote glob patterns by their matches. A pattern that
// matches nothing is kept so the verb reports it as missing.
func (sh *Shell) expand(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !hasGlob(p) {
			out = append(out, p)
			continue
		}
		matches := sh.glob(sh.resolve(p))
		if len(matches) == 0 {
			out = append(out, p)
			continue
		}
		out = append(out, matches...)
	}
	return out
}

// eachRemote is eachPath over glob-expanded remote paths
func (sh *Shell) eachRemote(ctx context.Context, paths []string, fn func(p string) error) error {
	return eachPath(ctx, sh.expand(paths), fn)
}
