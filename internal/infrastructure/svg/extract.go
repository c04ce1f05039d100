package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"regexp"
	"strconv"
	"strings"

	"natal-chart/internal/domain"

	"golang.org/x/net/html/charset"
)

// XMLExtractor implements domain.MarkupExtractor with an encoding/xml token
// walk over the base chart. The inner markup is sliced out of the source by
// byte offset, so it is returned exactly as the renderer wrote it.
type XMLExtractor struct{}

// NewXMLExtractor creates a new extractor.
func NewXMLExtractor() *XMLExtractor {
	return &XMLExtractor{}
}

// Extract returns the root viewBox and the markup between the outermost
// <svg> start tag and its matching end tag.
func (x *XMLExtractor) Extract(doc string) (domain.ChartMarkup, error) {
	src, err := toUTF8(doc)
	if err != nil {
		return domain.ChartMarkup{}, err
	}

	d := xml.NewDecoder(strings.NewReader(src))
	// Entities declared in the DOCTYPE are added as they are read.
	d.Entity = maps.Clone(xml.HTMLEntity)
	declared := map[string]string{}
	// src is already UTF-8; keep the same reader so offsets stay aligned.
	d.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }

	var (
		markup     domain.ChartMarkup
		innerStart int64 = -1
		depth      int
	)

	for {
		offset := d.InputOffset()
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) && innerStart < 0 {
				return domain.ChartMarkup{}, domain.ErrMarkupNotFound
			}
			return domain.ChartMarkup{}, fmt.Errorf("%w: %w", domain.ErrMalformedSVG, err)
		}

		switch t := tok.(type) {
		case xml.Directive:
			if innerStart < 0 {
				for name, value := range internalEntities(t) {
					d.Entity[name] = value
					declared[name] = value
				}
			}
		case xml.StartElement:
			if innerStart < 0 {
				if t.Name.Local != "svg" {
					return domain.ChartMarkup{}, fmt.Errorf("%w: root element is <%s>", domain.ErrMarkupNotFound, t.Name.Local)
				}
				if err := readRoot(&markup, t.Attr); err != nil {
					return domain.ChartMarkup{}, err
				}
				innerStart = d.InputOffset()
				continue
			}
			depth++
		case xml.EndElement:
			if depth > 0 {
				depth--
				continue
			}
			markup.Inner = expandEntities(src[innerStart:offset], declared)
			if strings.TrimSpace(markup.Inner) == "" {
				return domain.ChartMarkup{}, domain.ErrMarkupNotFound
			}
			return markup, nil
		}
	}
}

// entityDecl matches general entities with a literal value in a DOCTYPE
// internal subset. Parameter and external entities are not supported.
var entityDecl = regexp.MustCompile(`<!ENTITY\s+([A-Za-z_:][-A-Za-z0-9._:]*)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

func internalEntities(dir xml.Directive) map[string]string {
	matches := entityDecl.FindAllSubmatch(dir, -1)
	if len(matches) == 0 {
		return nil
	}
	entities := make(map[string]string, len(matches))
	for _, m := range matches {
		entities[string(m[1])] = string(m[2]) + string(m[3])
	}
	return entities
}

// expandEntities replaces references to DOCTYPE entities, which do not
// survive the move into a document without that DOCTYPE. Everything else in
// the inner markup is left as written.
func expandEntities(inner string, entities map[string]string) string {
	if len(entities) == 0 {
		return inner
	}
	pairs := make([]string, 0, 2*len(entities))
	for name, value := range entities {
		pairs = append(pairs, "&"+name+";", value)
	}
	return strings.NewReplacer(pairs...).Replace(inner)
}

func readRoot(m *domain.ChartMarkup, attrs []xml.Attr) error {
	for _, a := range attrs {
		switch {
		case a.Name.Space == "" && a.Name.Local == "viewBox":
			vb, err := ParseViewBox(a.Value)
			if err != nil {
				return err
			}
			m.ViewBox = vb
			m.HasViewBox = true
		case a.Name.Space == "xmlns":
			if m.Namespaces == nil {
				m.Namespaces = make(map[string]string)
			}
			m.Namespaces[a.Name.Local] = a.Value
		}
	}
	return nil
}

// ParseViewBox parses "min-x min-y width height"; numbers may be separated by
// whitespace and/or commas.
func ParseViewBox(v string) (domain.ViewBox, error) {
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return domain.ViewBox{}, fmt.Errorf("%w: %q", domain.ErrInvalidViewBox, v)
	}

	var nums [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return domain.ViewBox{}, fmt.Errorf("%w: %q", domain.ErrInvalidViewBox, v)
		}
		nums[i] = n
	}

	vb := domain.ViewBox{MinX: nums[0], MinY: nums[1], Width: nums[2], Height: nums[3]}
	if vb.Width <= 0 || vb.Height <= 0 {
		return domain.ViewBox{}, fmt.Errorf("%w: non-positive size in %q", domain.ErrInvalidViewBox, v)
	}
	return vb, nil
}

// toUTF8 transcodes documents whose XML declaration names another encoding.
func toUTF8(doc string) (string, error) {
	enc := declaredEncoding(doc)
	if enc == "" || strings.EqualFold(enc, "utf-8") || strings.EqualFold(enc, "utf8") {
		return doc, nil
	}

	r, err := charset.NewReaderLabel(enc, strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrMalformedSVG, err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrMalformedSVG, err)
	}
	return string(b), nil
}

func declaredEncoding(doc string) string {
	d := xml.NewDecoder(strings.NewReader(doc))
	tok, err := d.RawToken()
	if err != nil {
		return ""
	}
	pi, ok := tok.(xml.ProcInst)
	if !ok || pi.Target != "xml" {
		return ""
	}
	return procInstParam(string(pi.Inst), "encoding")
}

// procInstParam returns the value of param in a processing instruction body
// such as `version="1.0" encoding="ISO-8859-1"`.
func procInstParam(inst, param string) string {
	idx := strings.Index(inst, param)
	if idx < 0 {
		return ""
	}
	rest := strings.TrimLeft(inst[idx+len(param):], " \t\r\n")
	if !strings.HasPrefix(rest, "=") {
		return ""
	}
	rest = strings.TrimLeft(rest[1:], " \t\r\n")
	if rest == "" || (rest[0] != '"' && rest[0] != '\'') {
		return ""
	}
	quote := rest[0]
	end := strings.IndexByte(rest[1:], quote)
	if end < 0 {
		return ""
	}
	return rest[1 : end+1]
}
