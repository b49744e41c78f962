// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/xml"
	"regexp"
	"strings"
)

// AtomEntry is one source-native arXiv record. Each scalar holds the first
// occurrence of its element within the entry.
type AtomEntry struct {
	ID         string
	Title      string
	Summary    string
	Published  string
	Updated    string
	Authors    []string
	Categories []string
	PDFURL     string
	AbsURL     string
}

// atomEntryXML captures repeated elements as slices so the first
// occurrence can be selected explicitly.
type atomEntryXML struct {
	IDs        []string       `xml:"id"`
	Titles     []string       `xml:"title"`
	Summaries  []string       `xml:"summary"`
	Published  []string       `xml:"published"`
	Updated    []string       `xml:"updated"`
	Names      []string       `xml:"author>name"`
	Categories []atomCategory `xml:"category"`
	Links      []atomLink     `xml:"link"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Type string `xml:"type,attr"`
	Rel  string `xml:"rel,attr"`
}

const (
	entryOpen  = "<entry"
	entryClose = "</entry>"
)

// ParseAtom extracts the entries of an arXiv Atom feed in document order.
// Entries are located by a delimiter scan (they never nest) and each block
// is decoded on its own, so one malformed entry is skipped without losing
// the rest. Bytes the XML decoder rejects outright (invalid UTF-8, control
// characters) are replaced first, so they degrade a field instead of
// dropping the entry. A body without entries yields an empty, non-nil slice.
func ParseAtom(body string) []AtomEntry {
	entries := []AtomEntry{}
	for _, block := range splitEntries(body) {
		var raw atomEntryXML
		dec := xml.NewDecoder(strings.NewReader(sanitizeXMLText(block)))
		dec.Strict = false
		if err := dec.Decode(&raw); err != nil {
			continue
		}
		entries = append(entries, raw.entry())
	}
	return entries
}

// sanitizeXMLText replaces invalid UTF-8 and characters outside the XML
// Char production with U+FFFD.
func sanitizeXMLText(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' || r >= 0x20 && r != 0xFFFE && r != 0xFFFF {
			return r
		}
		return '\uFFFD'
	}, s)
}

// splitEntries returns every <entry>...</entry> block, tags included.
func splitEntries(body string) []string {
	var blocks []string
	for {
		start := strings.Index(body, entryOpen)
		if start < 0 {
			return blocks
		}
		rest := body[start+len(entryOpen):]
		// Reject longer tag names such as <entryfoo>.
		if rest == "" || !(rest[0] == '>' || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n' || rest[0] == '\r') {
			body = rest
			continue
		}
		end := strings.Index(rest, entryClose)
		if end < 0 {
			return blocks
		}
		blocks = append(blocks, body[start:start+len(entryOpen)+end+len(entryClose)])
		body = rest[end+len(entryClose):]
	}
}

func (x atomEntryXML) entry() AtomEntry {
	e := AtomEntry{
		ID:         strings.TrimSpace(first(x.IDs)),
		Title:      collapseSpace(first(x.Titles)),
		Summary:    collapseSpace(first(x.Summaries)),
		Published:  strings.TrimSpace(first(x.Published)),
		Updated:    strings.TrimSpace(first(x.Updated)),
		Authors:    []string{},
		Categories: []string{},
	}
	for _, n := range x.Names {
		e.Authors = append(e.Authors, strings.TrimSpace(n))
	}
	for _, c := range x.Categories {
		e.Categories = append(e.Categories, c.Term)
	}

	var untyped string
	for _, l := range x.Links {
		switch l.Type {
		case "application/pdf":
			if e.PDFURL == "" {
				e.PDFURL = l.Href
			}
		case "text/html":
			if e.AbsURL == "" {
				e.AbsURL = l.Href
			}
		case "":
			if untyped == "" {
				untyped = l.Href
			}
		}
	}
	if e.AbsURL == "" {
		e.AbsURL = untyped
	}
	return e
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// collapseSpace trims s and replaces each whitespace run with one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var arxivVersionSuffix = regexp.MustCompile(`v\d+$`)

// ArxivID strips the abs-page prefix and any version suffix from an entry
// <id>, so "http://arxiv.org/abs/2301.07041v3" becomes "2301.07041".
func ArxivID(idURL string) string {
	id := strings.TrimSpace(idURL)
	for _, prefix := range []string{"http://arxiv.org/abs/", "https://arxiv.org/abs/"} {
		id = strings.TrimPrefix(id, prefix)
	}
	return arxivVersionSuffix.ReplaceAllString(id, "")
}
