package scan

import "strings"

// man scans a plain-text man page. Only SYNOPSIS, OPTIONS and DESCRIPTION
// matter: indented SYNOPSIS lines are usage lines, and lines in the other
// two that start with a flag are option lines.
func (d *document) man(lines []string) {
	section := ""
	for _, line := range lines {
		d.stats.Lines++
		if isSectionHeader(line) {
			section = strings.TrimSpace(line)
			log.Debugf("entering section %q", section)
			continue
		}
		switch section {
		case "SYNOPSIS":
			if isIndented(line) {
				d.usage(line, strings.TrimSpace(line))
			}
		case "OPTIONS", "DESCRIPTION":
			if isManOptionLine(line) {
				d.optionLine(line)
			}
		}
	}
}
