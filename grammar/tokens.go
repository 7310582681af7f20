package grammar

// Tokens shared by the usage and option-line grammars. Each call builds a
// fresh parser; they hold no state, so callers usually build them once.

var (
	alpha = Class("A-Za-z")
	alnum = Class("A-Za-z0-9")
	ident = Class("A-Za-z0-9_")
)

// Space matches a single space.
func Space() Parser {
	return Lit(" ")
}

// Blanks matches one or more spaces or tabs.
func Blanks() Parser {
	return Some(Class(" \t"))
}

// Name matches an identifier such as "FILE", "target_name", "Yes" or
// "container-id": a letter, then letters, digits and underscores, with
// single dashes allowed between them.
func Name() Parser {
	return Rule("name", Seq(alpha, Many(ident), Many(Seq(Lit("-"), alnum, Many(ident)))))
}

// ShortFlag matches "-x".
func ShortFlag() Parser {
	return Rule("short flag", Seq(Lit("-"), Class("A-Za-z0-9#")))
}

// ShortFlags matches a cluster of short flags such as "-xyz".
func ShortFlags() Parser {
	return Seq(Lit("-"), AtLeast(2, Class("A-Za-z0-9#")))
}

// LongFlag matches "--name", "--log-format" or "--dry_run".
func LongFlag() Parser {
	return Rule("long flag", Seq(Lit("--"), alpha, Some(alnum), Many(Seq(Class("_-"), Some(alnum)))))
}

// Ellipsis matches "...".
func Ellipsis() Parser {
	return Lit("...")
}

// Repeats matches an ellipsis, optionally preceded by a space, captured as
// "repeats".
func Repeats() Parser {
	return Seq(Opt(Space()), Capture("repeats", Ellipsis()))
}
