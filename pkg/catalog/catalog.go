package catalog

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/droidsdk/pkg/logging"
)

// ListingMarker starts the package section of a listing
const ListingMarker = "Packages available for installation or update"

// Normalized titles rewritten by the parser
const (
	TitleSDKPlatform = "SDK Platform"
	TitleSamples     = "Samples for SDK"
)

var (
	globalLine = regexp.MustCompile(`^(\d+)- (.+), (.+)$`)
	apiLine    = regexp.MustCompile(`^(\d+)- (.+), (.+), (.+)$`)
)

// Catalog is the parsed form of one listing
type Catalog struct {
	// Packages maps a global title to its entries
	Packages map[string]Slot
	// APIs maps an API level to the titles listed for it
	APIs map[string]map[string]Entry
	// Skipped counts lines that looked like records but did not parse
	Skipped int

	entries []Entry
}

// Entries returns every entry in listing order
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Global returns the entries listed under a global title
func (c *Catalog) Global(title string) []Entry {
	slot, ok := c.Packages[title]
	if !ok {
		return nil
	}
	return slot.Entries()
}

// ForAPI returns the entry listed under title for api
func (c *Catalog) ForAPI(api, title string) (Entry, bool) {
	e, ok := c.APIs[api][title]
	return e, ok
}

// Len returns the number of parsed entries
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Parse reads a package listing. Lines before the listing marker are
// ignored; a text without a marker is read as a bare package section.
// Malformed lines are counted and skipped, Parse never fails.
func Parse(text string) *Catalog {
	logger := logging.GetLogger("catalog")
	c := &Catalog{
		Packages: make(map[string]Slot),
		APIs:     make(map[string]map[string]Entry),
	}

	lines := strings.Split(text, "\n")
	start, found := 0, false
	for i, raw := range lines {
		if strings.HasPrefix(strings.TrimSpace(raw), ListingMarker) {
			start, found = i+1, true
			break
		}
	}

	for _, raw := range lines[start:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		var (
			entry Entry
			ok    bool
		)
		switch strings.Count(line, ",") {
		case 1:
			entry, ok = parseGlobal(line)
		case 2:
			entry, ok = parseAPI(line)
		default:
			continue
		}
		if !ok {
			c.Skipped++
			logger.Debug().Str("line", line).Msg("Skipping unparseable listing line")
			continue
		}
		c.insert(entry)
	}

	logger.Debug().
		Int("entries", len(c.entries)).
		Int("skipped", c.Skipped).
		Bool("markerFound", found).
		Msg("Parsed package listing")
	return c
}

func parseGlobal(line string) (Entry, bool) {
	m := globalLine.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	e := Entry{Index: m[1], Title: strings.TrimSpace(m[2]), Revision: strings.TrimSpace(m[3])}
	if strings.HasPrefix(e.Revision, "revision") {
		e.Revision = lastField(e.Revision)
	}
	if strings.HasPrefix(e.Title, TitleSamples) {
		e.API = lastField(e.Title)
		e.Title = TitleSamples
	}
	return e, true
}

func parseAPI(line string) (Entry, bool) {
	m := apiLine.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	e := Entry{
		Index:    m[1],
		Title:    strings.TrimSpace(m[2]),
		API:      strings.TrimSpace(m[3]),
		Revision: strings.TrimSpace(m[4]),
	}
	if strings.HasPrefix(e.API, "Android API") || strings.HasPrefix(e.API, "API ") {
		e.API = lastField(e.API)
	}
	if strings.HasPrefix(e.Title, "SDK Platform Android") {
		e.Title = TitleSDKPlatform
	}
	if e.API == "" {
		return Entry{}, false
	}
	return e, true
}

func (c *Catalog) insert(e Entry) {
	c.entries = append(c.entries, e)
	if e.IsGlobal() {
		c.Packages[e.Title] = add(c.Packages[e.Title], e)
		return
	}
	if c.APIs[e.API] == nil {
		c.APIs[e.API] = make(map[string]Entry)
	}
	c.APIs[e.API][e.Title] = e
}

func lastField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[len(fields)-1]
}
