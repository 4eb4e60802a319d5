package items

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Effect is one stat or modifier attached to an item level.
type Effect struct {
	// Type is a snake_case key derived from the field label.
	Type         string `json:"type"`
	Value        Value  `json:"value"`
	IsPercentage bool   `json:"is_percentage"`
	// Text is the cleaned display string, the only lossless field.
	Text string `json:"text"`
}

type ValueKind int

const (
	VALUE_NUMBER ValueKind = iota
	VALUE_RANGE
	VALUE_TEXT
)

type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Value is an effect value: a number, a min-max range or free text.
type Value struct {
	Kind   ValueKind
	Number float64
	Range  Range
	Text   string
}

func NumberValue(n float64) Value {
	return Value{Kind: VALUE_NUMBER, Number: n}
}

func RangeValue(min, max int) Value {
	return Value{Kind: VALUE_RANGE, Range: Range{Min: min, Max: max}}
}

func TextValue(text string) Value {
	return Value{Kind: VALUE_TEXT, Text: text}
}

func (v Value) String() string {
	switch v.Kind {
	case VALUE_RANGE:
		return fmt.Sprintf("%d-%d", v.Range.Min, v.Range.Max)
	case VALUE_TEXT:
		return v.Text
	default:
		return fmt.Sprint(v.Number)
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case VALUE_NUMBER:
		return json.Marshal(v.Number)
	case VALUE_RANGE:
		return json.Marshal(v.Range)
	case VALUE_TEXT:
		return json.Marshal(v.Text)
	}
	return nil, fmt.Errorf("unknown effect value kind %d", v.Kind)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty effect value")
	}

	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*v = TextValue(text)
	case '{':
		var r Range
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		*v = Value{Kind: VALUE_RANGE, Range: r}
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("effect value is neither text, range nor number: %w", err)
		}
		*v = NumberValue(n)
	}
	return nil
}
