// Package history loads daily log files into engine log entries.
//
// A file is JSON or YAML holding either a list of records or a mapping with
// an "entries" list. Each record is either a canonical log entry or a mobile
// app daily log (totalCaloriesConsumed, exercises, workouts, ...).
package history

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/iwvelando/fitness-forecast/pkg/fitness"
)

// dailyLogKeys mark a record as an app daily log.
var dailyLogKeys = map[string]bool{
	"totalCaloriesConsumed": true,
	"totalCaloriesBurned":   true,
	"exercises":             true,
	"workouts":              true,
	"foods":                 true,
}

// LoadFile reads and converts the log file at path.
func LoadFile(path string, conv Converter) ([]fitness.LogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file %s: %w", path, err)
	}
	defer f.Close()

	entries, err := Load(f, conv)
	if err != nil {
		return nil, fmt.Errorf("failed to load history file %s: %w", path, err)
	}
	return entries, nil
}

// Load decodes a log document and returns its entries merged by date and
// sorted. An empty document is an empty history.
func Load(r io.Reader, conv Converter) ([]fitness.LogEntry, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	records, err := recordNodes(&doc)
	if err != nil {
		return nil, err
	}

	entries := make([]fitness.LogEntry, 0, len(records))
	for i, node := range records {
		entry, err := decodeRecord(node, conv)
		if err != nil {
			return nil, fmt.Errorf("record %d (line %d): %w", i, node.Line, err)
		}
		entries = append(entries, entry)
	}
	return Merge(entries), nil
}

// recordNodes finds the list of records in a decoded document.
func recordNodes(doc *yaml.Node) ([]*yaml.Node, error) {
	node := doc
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, nil
		}
		node = node.Content[0]
	}

	switch node.Kind {
	case yaml.SequenceNode:
		return node.Content, nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value != "entries" {
				continue
			}
			list := node.Content[i+1]
			if list.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("line %d: entries must be a list", list.Line)
			}
			return list.Content, nil
		}
		return nil, fmt.Errorf("line %d: expected a list of records or an entries key", node.Line)
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("line %d: expected a list of records or an entries key", node.Line)
}

func decodeRecord(node *yaml.Node, conv Converter) (fitness.LogEntry, error) {
	if node.Kind != yaml.MappingNode {
		return fitness.LogEntry{}, fmt.Errorf("record must be a mapping")
	}

	if isDailyLog(node) {
		var daily DailyLog
		if err := node.Decode(&daily); err != nil {
			return fitness.LogEntry{}, err
		}
		return conv.Convert(daily)
	}

	var entry fitness.LogEntry
	if err := node.Decode(&entry); err != nil {
		return fitness.LogEntry{}, err
	}
	return entry, nil
}

func isDailyLog(node *yaml.Node) bool {
	for i := 0; i < len(node.Content); i += 2 {
		if dailyLogKeys[node.Content[i].Value] {
			return true
		}
	}
	return false
}

// Merge combines entries sharing a date by summing every quantity and
// returns them sorted by date. The input is not modified.
func Merge(entries []fitness.LogEntry) []fitness.LogEntry {
	byDate := make(map[string]int, len(entries))
	merged := make([]fitness.LogEntry, 0, len(entries))

	for _, entry := range entries {
		key := entry.Date.String()
		idx, ok := byDate[key]
		if !ok {
			entry.ExerciseMinutes = addInto(nil, entry.ExerciseMinutes)
			entry.MuscleVolume = addInto(nil, entry.MuscleVolume)
			byDate[key] = len(merged)
			merged = append(merged, entry)
			continue
		}

		m := &merged[idx]
		m.CaloriesConsumed += entry.CaloriesConsumed
		m.CaloriesBurned += entry.CaloriesBurned
		m.Macros = m.Macros.Add(entry.Macros)
		m.ExerciseMinutes = addInto(m.ExerciseMinutes, entry.ExerciseMinutes)
		m.MuscleVolume = addInto(m.MuscleVolume, entry.MuscleVolume)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})
	return merged
}

// addInto adds src to dst, allocating dst when needed. A nil src leaves dst
// unchanged.
func addInto(dst, src map[string]float64) map[string]float64 {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]float64, len(src))
	}
	for k, v := range src {
		dst[k] += v
	}
	return dst
}
