package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/tracker-go/internal/store"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Formats lists the supported export formats.
var Formats = []string{FormatJSON, FormatYAML, FormatTOML}

// Export writes the dataset document to w in the given format. The JSON
// form is identical to the data file.
func Export(w io.Writer, d *store.Dataset, format string) error {
	doc := d.Document()
	switch strings.ToLower(format) {
	case FormatJSON, "":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		// TOML has no null; absent optional fields are omitted.
		if err := toml.NewEncoder(w).Encode(withoutNulls(doc)); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q (%s)", format, strings.Join(Formats, "|"))
	}
}

func withoutNulls(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for section, v := range doc {
		records, _ := v.([]map[string]any)
		cleaned := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			r := make(map[string]any, len(rec))
			for key, val := range rec {
				if val != nil {
					r[key] = val
				}
			}
			cleaned = append(cleaned, r)
		}
		out[section] = cleaned
	}
	return out
}
