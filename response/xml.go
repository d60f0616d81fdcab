package response

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// AttributePrefix marks XML attributes in decoded maps.
const AttributePrefix = "@"

// decodeXML turns a document into nested maps. The root element name is
// dropped; repeated children become lists; text-only elements become strings;
// attributes are kept under "@name".
func decodeXML(body []byte) (any, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.CharsetReader = charset.NewReaderLabel

	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, err
		}
		if start, ok := token.(xml.StartElement); ok {
			return decodeElement(decoder, start)
		}
	}
}

func decodeElement(decoder *xml.Decoder, start xml.StartElement) (any, error) {
	children := map[string]any{}
	lists := map[string]bool{}
	for _, attr := range start.Attr {
		children[AttributePrefix+attr.Name.Local] = attr.Value
	}

	var text strings.Builder
	hasElements := false
	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		switch typed := token.(type) {
		case xml.StartElement:
			hasElements = true
			value, err := decodeElement(decoder, typed)
			if err != nil {
				return nil, err
			}
			name := typed.Name.Local
			existing, seen := children[name]
			switch {
			case !seen:
				children[name] = value
			case lists[name]:
				children[name] = append(existing.([]any), value)
			default:
				children[name] = []any{existing, value}
				lists[name] = true
			}
		case xml.CharData:
			text.Write(typed)
		case xml.EndElement:
			if !hasElements && len(start.Attr) == 0 {
				return strings.TrimSpace(text.String()), nil
			}
			if !hasElements {
				if trimmed := strings.TrimSpace(text.String()); trimmed != "" {
					children["#text"] = trimmed
				}
			}
			return children, nil
		}
	}
}
