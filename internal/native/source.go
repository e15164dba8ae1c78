package native

import (
	"regexp"
	"strconv"
)

// The engine compiles classic scripts only; module source is rewritten into
// script form before compilation. Compile-only module records never execute,
// so the rewrite only has to preserve parse validity: import statements and
// export clauses are dropped, and export prefixes on declarations removed.
// Matches are anchored to statement position (line start, or right after
// `;`/`{`/`}`), which keeps ordinary string and template literals intact; a
// literal containing `; export {...}` would still be rewritten, which is
// tolerable for records that never run.
// TODO: drop this rewrite once goja ships native module records.
var (
	importStmt   = regexp.MustCompile(`(?m)^\s*import\s+[^;\n]*;?\s*$`)
	exportClause = regexp.MustCompile(`(?m)(^|;)\s*export\s*\{[^}]*\}\s*(from\s+[^;\n]*)?;?`)
	exportPrefix = regexp.MustCompile(`(?m)(^|[;{}])(\s*)export\s+(default\s+)?`)
)

func stripModuleSyntax(source string) string {
	source = importStmt.ReplaceAllString(source, "")
	source = exportClause.ReplaceAllString(source, "$1")
	source = exportPrefix.ReplaceAllString(source, "$1$2")
	return source
}

func indexKey(idx uint32) string {
	return strconv.FormatUint(uint64(idx), 10)
}
