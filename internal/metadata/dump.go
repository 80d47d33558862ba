package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// Field is one element of the full metadata dump. Value is always
// JSON-serializable.
type Field struct {
	Value any    `json:"value"`
	VR    string `json:"vr"`
	Tag   string `json:"tag"`
}

// AllMetadata returns every element of the dataset keyed by its dictionary
// name, with sequence (SQ) elements skipped. Unknown tags are keyed by
// their (gggg,eeee) form.
func (r *Reader) AllMetadata() map[string]Field {
	out := make(map[string]Field, len(r.ds.Elements))

	for _, elem := range r.ds.Elements {
		if elem.RawValueRepresentation == "SQ" {
			continue
		}

		tagStr := formatTag(elem.Tag)
		name := tagStr
		if info, err := tag.Find(elem.Tag); err == nil && info.Name != "" {
			name = info.Name
		}

		out[name] = Field{
			Value: convertValue(elem.Value.GetValue()),
			VR:    elem.RawValueRepresentation,
			Tag:   tagStr,
		}
	}

	return out
}

// SaveJSON writes the full metadata dump as indented JSON. An empty
// outputPath writes <source base>_metadata.json next to the source file.
func (r *Reader) SaveJSON(outputPath string) (string, error) {
	if outputPath == "" {
		base := strings.TrimSuffix(r.path, filepath.Ext(r.path))
		outputPath = base + "_metadata.json"
	}

	data, err := json.MarshalIndent(r.AllMetadata(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	return outputPath, nil
}

// convertValue maps a raw element value onto a JSON-serializable form.
// The dispatch covers the closed set of value categories the parser
// produces; anything else degrades to its string form.
func convertValue(v any) any {
	switch val := v.(type) {
	case []string:
		if len(val) == 1 {
			return val[0]
		}
		return val
	case []int:
		if len(val) == 1 {
			return val[0]
		}
		return val
	case []float64:
		if len(val) == 1 {
			return val[0]
		}
		return val
	case []byte:
		return asciiString(val)
	case dicom.PixelDataInfo:
		return fmt.Sprintf("<pixel data, %d frames>", len(val.Frames))
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

// asciiString decodes bytes as best-effort ASCII, replacing anything
// outside the printable range.
func asciiString(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		if c >= 0x20 && c < 0x7f {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func formatTag(t tag.Tag) string {
	return fmt.Sprintf("(%04x,%04x)", t.Group, t.Element)
}
