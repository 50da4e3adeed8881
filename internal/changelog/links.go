package changelog

import "strings"

// linkTable maps lower-cased link-reference labels to URLs.
//
// It is built while scanning the document (definitions conventionally sit at
// the end of the file, but they are tolerated anywhere) and consulted once
// the model is complete to attach each release's compare link.
type linkTable struct {
	urls map[string]string
}

func newLinkTable() *linkTable {
	return &linkTable{urls: make(map[string]string)}
}

func (t *linkTable) put(label, url string) {
	key := strings.ToLower(strings.TrimSpace(label))
	if key == "" || url == "" {
		return
	}
	// First definition wins, per CommonMark reference resolution.
	if _, ok := t.urls[key]; !ok {
		t.urls[key] = url
	}
}

func (t *linkTable) lookup(label string) (string, bool) {
	url, ok := t.urls[strings.ToLower(label)]
	return url, ok
}

// resolve attaches link-reference URLs to the model's releases. A release
// without a matching definition simply has no link; that is not an error.
func (t *linkTable) resolve(c *Changelog) {
	if url, ok := t.lookup("unreleased"); ok {
		c.Unreleased.Link = url
	}
	for _, r := range c.Releases.All() {
		if url, ok := t.lookup(r.Version.String()); ok {
			r.Link = url
		}
	}
}
