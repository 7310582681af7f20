// Package scan reads a whole help or man page, line by line, and folds what
// the usage and option-line grammars recognise into a command.Command.
//
// Scanning is fail-forward: a line the grammars reject is reported to the
// diagnostics callback, if any, and skipped.
package scan

import (
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/clispec/command"
	"github.com/dhamidi/clispec/optline"
	"github.com/dhamidi/clispec/usage"
	"github.com/dhamidi/clispec/value"
)

var log = commonlog.GetLogger("clispec.scan")

// Mode selects the document format.
type Mode int

const (
	// Help is the output of --help or -h.
	Help Mode = iota
	// Man is a manual page rendered as plain text.
	Man
)

func (m Mode) String() string {
	if m == Man {
		return "man"
	}
	return "help"
}

// ParseMode converts "help" or "man" to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(s) {
	case "help":
		return Help, true
	case "man":
		return Man, true
	}
	return Help, false
}

// Diagnostics receives each line a grammar rejected, with the
// *grammar.ParseError describing why.
type Diagnostics func(line string, err error)

// Stats counts what a scan did.
type Stats struct {
	Lines       int
	Usages      int
	Options     int
	Subcommands int
	Failures    int
}

type Option func(*Scanner)

// WithMode selects help or man page scanning. The default is Help.
func WithMode(m Mode) Option {
	return func(s *Scanner) {
		s.mode = m
	}
}

// WithDiagnostics installs a callback for rejected lines. Without one,
// rejected lines are logged at debug level.
func WithDiagnostics(fn Diagnostics) Option {
	return func(s *Scanner) {
		s.diagnostics = fn
	}
}

// WithHeuristics replaces the default heuristics. Nil fields keep their
// defaults.
func WithHeuristics(h Heuristics) Option {
	return func(s *Scanner) {
		s.heuristics = h.withDefaults()
	}
}

// Scanner folds help text into a command. A Scanner holds no per-document
// state and may be reused.
type Scanner struct {
	mode        Mode
	heuristics  Heuristics
	diagnostics Diagnostics
}

// New returns a Scanner.
func New(opts ...Option) *Scanner {
	s := &Scanner{heuristics: DefaultHeuristics()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode returns the scanner's document format.
func (s *Scanner) Mode() Mode {
	return s.mode
}

// Scan reads text into c. Empty text is valid and changes nothing.
func (s *Scanner) Scan(c *command.Command, text string) Stats {
	d := &document{Scanner: s, cmd: c}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if s.mode == Man {
		d.man(lines)
	} else {
		d.help(lines)
	}
	log.Debugf("scanned %s text for %q: %+v", s.mode, c.CommandPath(), d.stats)
	return d.stats
}

// ParseHelp scans --help output into c.
func ParseHelp(c *command.Command, text string, opts ...Option) Stats {
	return New(append(opts, WithMode(Help))...).Scan(c, text)
}

// ParseMan scans a plain-text man page into c.
func ParseMan(c *command.Command, text string, opts ...Option) Stats {
	return New(append(opts, WithMode(Man))...).Scan(c, text)
}

// document is the state of one scan.
type document struct {
	*Scanner
	cmd   *command.Command
	stats Stats
}

func (d *document) fail(line string, err error) {
	d.stats.Failures++
	if d.diagnostics != nil {
		d.diagnostics(line, err)
		return
	}
	log.Debugf("skipping %q: %s", line, err)
}

// usage parses a usage line and folds it into the command.
func (d *document) usage(line, text string) {
	u, err := usage.Parse(d.trimPath(text))
	if err != nil {
		d.fail(line, err)
		return
	}
	d.stats.Usages++

	c := d.cmd
	c.SetName(u.CommandName)
	if u.SubcommandName != "" {
		if sub, ok := c.LookupSubcommand(u.SubcommandName); ok {
			c = sub
		} else {
			d.argument(c, u.SubcommandName, usage.Slot{Required: true}, nil)
		}
	}

	for _, slot := range u.Slots() {
		switch {
		case slot.Argument != nil:
			var spec value.Spec
			if slot.Argument.List {
				spec = value.List{Separator: ','}
			}
			d.argument(c, slot.Argument.Name, slot, spec)
		case slot.Option != nil && !slot.Option.Cluster:
			o := d.option(slot.Option.Flag, slot.Option.Value)
			o.Repeats = slot.Repeats
			c.DefineOptionIfAbsent(o)
		}
	}
}

func (d *document) argument(c *command.Command, name string, slot usage.Slot, spec value.Spec) {
	name = strings.ToLower(name)
	if d.heuristics.IgnoreArgument(c, name) {
		log.Debugf("ignoring placeholder %q of %q", name, c.CommandPath())
		return
	}
	c.DefineArgument(&command.Argument{
		Name:     name,
		Required: slot.Required,
		Repeats:  slot.Repeats,
		Type:     spec,
	})
}

// trimPath drops the ancestors' names from a usage line that spells out the
// whole command path, so "podman image tag IMAGE" reads as "tag IMAGE" for
// the tag command.
func (d *document) trimPath(text string) string {
	path := d.cmd.Path()
	if len(path) < 2 {
		return text
	}
	prefix := strings.Join(path[:len(path)-1], " ") + " "
	fields := strings.Join(strings.Fields(text), " ")
	if strings.HasPrefix(fields, prefix) {
		return strings.TrimPrefix(fields, prefix)
	}
	return text
}

// optionLine parses an option line and defines the option it describes.
func (d *document) optionLine(line string) {
	l, err := optline.Parse(line)
	if err != nil {
		d.fail(line, err)
		return
	}
	d.stats.Options++
	d.cmd.DefineOption(d.option(l.Flag(), l.Value))
}

func (d *document) option(flag string, a *value.Attachment) *command.Option {
	o := &command.Option{Flag: flag}
	if a == nil {
		return o
	}
	switch a.Join {
	case value.JoinEquals:
		o.Equals = command.EqualsRequired
	case value.JoinBracket:
		o.Equals = command.EqualsOptional
	}
	o.Value = &command.OptionValue{
		Required: a.Join != value.JoinBracket && !a.Value.Optional,
		Type:     value.Infer(a.Value, d.heuristics.Coercions),
	}
	return o
}

// subcommand registers a subcommand listed in the help text.
func (d *document) subcommand(name string) {
	if !d.heuristics.AcceptSubcommand(d.cmd, name) {
		log.Debugf("rejecting subcommand %q of %q", name, d.cmd.CommandPath())
		return
	}
	if _, ok := d.cmd.LookupSubcommand(name); ok {
		return
	}
	if _, err := d.cmd.Subcommand(name); err != nil {
		log.Debugf("%s", err)
		return
	}
	d.stats.Subcommands++
}
