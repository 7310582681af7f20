package scan

import "strings"

type helpState int

const (
	scanning helpState = iota
	inUsage
)

// help scans --help output. A "usage:" header with nothing after it starts
// a block of indented usage lines that ends at the first line that is not
// indented.
func (d *document) help(lines []string) {
	state := scanning
	for _, line := range lines {
		d.stats.Lines++
		if state == inUsage {
			if isIndented(line) {
				d.usage(line, strings.TrimSpace(line))
				continue
			}
			state = scanning
		}

		kind, root := classify(line)
		switch kind {
		case kindUsage:
			rest := root.Child("rest").Text
			if strings.TrimSpace(rest) == "" {
				state = inUsage
				continue
			}
			d.usage(line, rest)
		case kindOr:
			d.usage(line, root.Child("rest").Text)
		case kindOption:
			d.optionLine(line)
		case kindSubcommand:
			d.subcommand(root.Child("name").Text)
		}
	}
}
