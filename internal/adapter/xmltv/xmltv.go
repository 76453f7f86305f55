// Package xmltv extracts content statistics and freshness metadata from
// XMLTV-shaped guide documents.
package xmltv

import (
	"encoding/xml"
	"strings"
	"time"
)

const (
	// startLayout matches the leading token of an XMLTV start attribute,
	// e.g. "20260103120000 +0000". Any trailing timezone offset is discarded.
	startLayout = "20060102150405"
	startLen    = len(startLayout)
)

type document struct {
	XMLName    xml.Name   `xml:"tv"`
	Date       string     `xml:"date,attr"`
	Generator  string     `xml:"generator-info-name,attr"`
	Channels   []struct{} `xml:"channel"`
	Programmes []struct {
		Start string `xml:"start,attr"`
	} `xml:"programme"`
}

// DocumentInfo summarizes one parsed guide. LatestStart is the zero
// time when no programme carried a parsable start attribute.
type DocumentInfo struct {
	Channels      int
	Programmes    int
	GeneratedDate string
	Generator     string
	LatestStart   time.Time
}

// Analyze parses a guide document. Missing attributes and unparsable
// start values are not errors, only a malformed document is.
func Analyze(data []byte) (*DocumentInfo, error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	info := &DocumentInfo{
		Channels:      len(doc.Channels),
		Programmes:    len(doc.Programmes),
		GeneratedDate: doc.Date,
		Generator:     doc.Generator,
	}

	for _, p := range doc.Programmes {
		start, ok := parseStart(p.Start)
		if !ok {
			continue
		}

		if start.After(info.LatestStart) {
			info.LatestStart = start
		}
	}

	return info, nil
}

func parseStart(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if len(value) < startLen {
		return time.Time{}, false
	}

	start, err := time.Parse(startLayout, value[:startLen])
	if err != nil {
		return time.Time{}, false
	}

	return start, true
}
