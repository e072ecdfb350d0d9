package table

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	ecsvBanner   = "# %ECSV"
	ecsvVersion  = "1.0"
	ecsvSchema   = "astropy-2.0"
	ecsvFloat    = "float64"
	ecsvString   = "string"
	defaultComma = ' '
)

// ecsvHeader is the YAML document carried in the leading comment block of an ECSV file.
type ecsvHeader struct {
	Datatype  []ecsvColumn `yaml:"datatype"`
	Delimiter string       `yaml:"delimiter,omitempty"`
	Meta      yaml.Node    `yaml:"meta,omitempty"`
	Schema    string       `yaml:"schema,omitempty"`
}

// ecsvColumn describes a single column of an ECSV file.
type ecsvColumn struct {
	Name        string `yaml:"name"`
	Datatype    string `yaml:"datatype"`
	Unit        string `yaml:"unit,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// readECSV splits the YAML header from the data block and parses both.
func readECSV(br *bufio.Reader) (*Table, error) {
	var yamlBlock bytes.Buffer
	var data bytes.Buffer
	sawBanner := false
	inHeader := true

	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			switch {
			case inHeader && strings.HasPrefix(line, "#"):
				body := strings.TrimPrefix(strings.TrimPrefix(line, "#"), " ")
				if strings.HasPrefix(body, "%ECSV") {
					sawBanner = true
					break
				}
				yamlBlock.WriteString(body)
			default:
				inHeader = false
				data.WriteString(line)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ECSV: %w", err)
		}
	}
	if !sawBanner {
		return nil, fmt.Errorf("missing %q banner", ecsvBanner)
	}

	header, err := parseECSVHeader(yamlBlock.Bytes())
	if err != nil {
		return nil, err
	}
	comma, err := parseDelimiter(header.Delimiter)
	if err != nil {
		return nil, err
	}
	meta, err := decodeMeta(&header.Meta)
	if err != nil {
		return nil, err
	}

	t, err := readDelimited(&data, comma, meta)
	if err != nil {
		return nil, err
	}
	if len(header.Datatype) > 0 {
		if len(header.Datatype) != len(t.Columns) {
			return nil, fmt.Errorf("ECSV header declares %d columns, data has %d", len(header.Datatype), len(t.Columns))
		}
		for i, col := range header.Datatype {
			if col.Name != t.Columns[i] {
				return nil, fmt.Errorf("ECSV header column %d is %q, data column is %q", i+1, col.Name, t.Columns[i])
			}
		}
	}
	return t, nil
}

// parseECSVHeader decodes the YAML block.
func parseECSVHeader(block []byte) (ecsvHeader, error) {
	var header ecsvHeader
	if len(bytes.TrimSpace(block)) == 0 {
		return header, nil
	}
	if err := yaml.Unmarshal(block, &header); err != nil {
		return header, fmt.Errorf("invalid ECSV header: %w", err)
	}
	return header, nil
}

// parseDelimiter validates the declared delimiter. ECSV allows only space and comma.
func parseDelimiter(s string) (rune, error) {
	if s == "" {
		return defaultComma, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || (r != ' ' && r != ',') {
		return 0, fmt.Errorf("unsupported ECSV delimiter %q", s)
	}
	return r, nil
}

// decodeMeta accepts a plain mapping or an ordered map (!!omap sequence of single-key maps).
func decodeMeta(node *yaml.Node) (map[string]any, error) {
	if node == nil || node.Kind == 0 {
		return nil, nil
	}
	switch node.Kind {
	case yaml.MappingNode:
		meta := map[string]any{}
		if err := node.Decode(&meta); err != nil {
			return nil, fmt.Errorf("invalid ECSV meta: %w", err)
		}
		return meta, nil
	case yaml.SequenceNode:
		meta := map[string]any{}
		for _, item := range node.Content {
			entry := map[string]any{}
			if err := item.Decode(&entry); err != nil {
				return nil, fmt.Errorf("invalid ECSV meta entry: %w", err)
			}
			for k, v := range entry {
				meta[k] = v
			}
		}
		return meta, nil
	default:
		return nil, fmt.Errorf("invalid ECSV meta: expected mapping, got %s", node.Tag)
	}
}

// writeECSV writes the commented YAML header followed by space-delimited rows.
func writeECSV(w io.Writer, t *Table) error {
	header := struct {
		Datatype []ecsvColumn  `yaml:"datatype"`
		Meta     map[string]any `yaml:"meta,omitempty"`
		Schema   string         `yaml:"schema"`
	}{
		Datatype: inferColumns(t),
		Meta:     t.Meta,
		Schema:   ecsvSchema,
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("failed to encode ECSV header: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode ECSV header: %w", err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %s\n# ---\n", ecsvBanner, ecsvVersion)
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		fmt.Fprintf(bw, "# %s\n", line)
	}
	if err := writeDelimited(bw, t, defaultComma); err != nil {
		return err
	}
	return bw.Flush()
}

// inferColumns declares float64 for fully numeric columns and string otherwise.
func inferColumns(t *Table) []ecsvColumn {
	cols := make([]ecsvColumn, len(t.Columns))
	for i, name := range t.Columns {
		kind := ecsvFloat
		for _, row := range t.Rows {
			if _, err := strconv.ParseFloat(row[i], 64); err != nil {
				kind = ecsvString
				break
			}
		}
		cols[i] = ecsvColumn{Name: name, Datatype: kind}
	}
	return cols
}
