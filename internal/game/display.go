package game

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// DateString renders the current date, e.g. "15 March 1442".
func (s *State) DateString() string {
	return fmt.Sprintf("%d %s %d", s.Day, MonthNames[s.Month], s.Year)
}

// NationSummary renders a one-line overview of a nation for logs and
// presentation layers.
func (s *State) NationSummary(nationID int) string {
	n, ok := s.Nations[nationID]
	if !ok {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d provinces, treasury %s, manpower %s, army %s",
		n.Name,
		len(n.Provinces),
		humanize.CommafWithDigits(n.Treasury, 1),
		humanize.Comma(int64(n.Manpower)),
		humanize.Comma(int64(n.ArmySize)))

	if c, ok := s.Characters[n.RulerID]; ok {
		fmt.Fprintf(&b, ", ruled by %s, age %d", c.FullName(), c.Age)
	}
	return b.String()
}

// WorldSummary renders one line per nation in id order.
func (s *State) WorldSummary() string {
	var b strings.Builder
	for _, id := range sortedNationIDs(s.Nations) {
		b.WriteString(s.NationSummary(id))
		b.WriteByte('\n')
	}
	return b.String()
}
