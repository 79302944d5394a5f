package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/tela/pkg/errors"
)

// serialize emits data in one of the structured output modes
func serialize(mode OutputMode, data map[string]interface{}) (string, error) {
	switch mode {
	case ModeJSON:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, errors.ErrRenderError, "json serialization failed")
		}
		return string(out) + "\n", nil
	case ModeYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrRenderError, "yaml serialization failed")
		}
		return string(out), nil
	case ModeXML:
		return toXML(data)
	case ModeCSV:
		return toCSV(data)
	default:
		return "", errors.Newf(errors.ErrRenderError, "mode %s is not structured", mode)
	}
}

func toXML(data map[string]interface{}) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("result")
	for _, k := range sortedKeys(data) {
		xmlValue(root, k, data[k])
	}
	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrRenderError, "xml serialization failed")
	}
	return out, nil
}

func xmlValue(parent *etree.Element, key string, v interface{}) {
	switch val := v.(type) {
	case map[string]interface{}:
		el := parent.CreateElement(key)
		for _, k := range sortedKeys(val) {
			xmlValue(el, k, val[k])
		}
	case []interface{}:
		for _, item := range val {
			xmlValue(parent, key, item)
		}
	case nil:
		parent.CreateElement(key)
	default:
		parent.CreateElement(key).SetText(fmt.Sprintf("%v", val))
	}
}

// toCSV flattens the first top-level sequence of maps into headers
// and rows. Without a sequence, the top-level scalars become a single
// row. Headers are sorted for determinism.
func toCSV(data map[string]interface{}) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := csvRows(data)
	if len(rows) == 0 {
		row := map[string]interface{}{}
		for k, v := range data {
			switch v.(type) {
			case map[string]interface{}, []interface{}:
			default:
				row[k] = v
			}
		}
		if len(row) > 0 {
			rows = []map[string]interface{}{row}
		}
	}
	if len(rows) == 0 {
		return "", nil
	}

	headerSet := map[string]bool{}
	for _, r := range rows {
		for k, v := range r {
			switch v.(type) {
			case map[string]interface{}, []interface{}:
			default:
				headerSet[k] = true
			}
		}
	}
	headers := make([]string, 0, len(headerSet))
	for k := range headerSet {
		headers = append(headers, k)
	}
	sort.Strings(headers)

	if err := w.Write(headers); err != nil {
		return "", errors.Wrap(err, errors.ErrRenderError, "csv serialization failed")
	}
	record := make([]string, len(headers))
	for _, r := range rows {
		for i, h := range headers {
			if v, ok := r[h]; ok && v != nil {
				record[i] = fmt.Sprintf("%v", v)
			} else {
				record[i] = ""
			}
		}
		if err := w.Write(record); err != nil {
			return "", errors.Wrap(err, errors.ErrRenderError, "csv serialization failed")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Wrap(err, errors.ErrRenderError, "csv serialization failed")
	}
	return buf.String(), nil
}

// csvRows finds the first top-level sequence of maps, scanning keys
// in sorted order so the choice is deterministic
func csvRows(data map[string]interface{}) []map[string]interface{} {
	for _, k := range sortedKeys(data) {
		seq, ok := data[k].([]interface{})
		if !ok {
			continue
		}
		rows := make([]map[string]interface{}, 0, len(seq))
		for _, item := range seq {
			if m, ok := item.(map[string]interface{}); ok {
				rows = append(rows, m)
			}
		}
		if len(rows) > 0 {
			return rows
		}
	}
	return nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
