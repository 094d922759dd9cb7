package fitness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MuscleScore is one entry of a MuscleScores object.
type MuscleScore struct {
	Group string
	Value float64
}

// MuscleScores is a muscle-group keyed object that keeps the key order of
// the document it was decoded from. Recommendation order follows target
// order, so a plain map cannot carry it.
type MuscleScores []MuscleScore

// Map returns the scores as a map.
func (s MuscleScores) Map() map[string]float64 {
	m := make(map[string]float64, len(s))
	for _, score := range s {
		m[score.Group] = score.Value
	}
	return m
}

// UnmarshalJSON decodes a JSON object, preserving key order.
func (s *MuscleScores) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("muscleStrength must be an object")
	}

	var out MuscleScores
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("muscleStrength: unexpected key %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return fmt.Errorf("muscleStrength.%s must be a number", key)
		}
		value, err := num.Float64()
		if err != nil {
			return fmt.Errorf("muscleStrength.%s: %w", key, err)
		}
		out = append(out, MuscleScore{Group: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// MarshalJSON encodes the scores as a JSON object in slice order.
func (s MuscleScores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, score := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(score.Group)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(score.Value, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a YAML mapping, preserving key order.
func (s *MuscleScores) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: muscleStrength must be a mapping", node.Line)
	}

	out := make(MuscleScores, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		var value float64
		if err := valNode.Decode(&value); err != nil {
			return fmt.Errorf("line %d: muscleStrength.%s must be a number", valNode.Line, keyNode.Value)
		}
		out = append(out, MuscleScore{Group: keyNode.Value, Value: value})
	}
	*s = out
	return nil
}
