// Package etree exports records as Kodi-style NFO documents.
package etree

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/worldart"
)

// UniqueIDType is the uniqueid type attribute carried by exported documents.
const UniqueIDType = "world-art"

// Encoder renders records as NFO XML.
type Encoder struct {
	// Host is the catalog host whose source provides the unique id.
	Host string
}

// NewEncoder creates an Encoder for the default catalog host.
func NewEncoder() *Encoder {
	return &Encoder{Host: worldart.DefaultHost}
}

// RootElement returns the NFO root element for a record: tvshow for
// series, movie for everything else.
func RootElement(rec *worldart.Record) string {
	if rec.Type == worldart.TypeTV {
		return "tvshow"
	}
	return "movie"
}

// Document builds the NFO document for rec. Unset fields are omitted.
func (e *Encoder) Document(rec *worldart.Record) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	root := doc.CreateElement(RootElement(rec))
	text := func(tag, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		root.CreateElement(tag).SetText(value)
	}

	title := rec.FirstName()
	text("title", title)
	for _, n := range rec.Names {
		if n != title {
			text("originaltitle", n)
			break
		}
	}
	text("plot", rec.Summary)
	if rec.Duration > 0 {
		text("runtime", strconv.Itoa(rec.Duration))
	}
	if !rec.DatePremiere.IsZero() {
		text("premiered", rec.DatePremiere.String())
		text("year", strconv.Itoa(rec.DatePremiere.Year))
	}
	if !rec.DateEnd.IsZero() {
		text("enddate", rec.DateEnd.String())
	}
	if rec.Type == worldart.TypeTV && rec.Episodes.N > 0 {
		text("episode", strconv.Itoa(rec.Episodes.N))
	}
	text("studio", rec.Studio)
	text("country", rec.Country)
	for _, g := range rec.Genres {
		text("genre", g)
	}

	if source := rec.SourceOnHost(e.Host); source != "" {
		if id := worldart.ParseItemID(source); id != 0 {
			uid := root.CreateElement("uniqueid")
			uid.CreateAttr("type", UniqueIDType)
			uid.CreateAttr("default", "true")
			uid.SetText(strconv.Itoa(id))
		}
	}

	if rec.Cover != "" {
		thumb := root.CreateElement("thumb")
		thumb.CreateAttr("aspect", "poster")
		thumb.SetText(rec.Cover)
	}
	if len(rec.Frames) > 0 {
		fanart := root.CreateElement("fanart")
		for _, f := range rec.Frames {
			fanart.CreateElement("thumb").SetText(f)
		}
	}

	for _, s := range rec.Sources {
		text("website", s)
	}

	doc.Indent(2)
	return doc
}

// Encode renders rec as NFO XML.
func (e *Encoder) Encode(rec *worldart.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Write(&buf, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders rec as NFO XML to w.
func (e *Encoder) Write(w io.Writer, rec *worldart.Record) error {
	if rec == nil {
		return worldart.Errorf(worldart.EINVALID, "record required")
	}
	_, err := e.Document(rec).WriteTo(w)
	return err
}
