package model

import (
	"encoding/json"
	"fmt"
)

// MetadataKind discriminates the Metadata variants on the wire.
type MetadataKind string

const (
	MetadataKindSetList     MetadataKind = "sets"
	MetadataKindTimeGoal    MetadataKind = "time_goal"
	MetadataKindSingleValue MetadataKind = "single"
	MetadataKindRaw         MetadataKind = "raw"
)

// Metadata is the classified payload of a parsed activity. It is implemented only by
// SetList, TimeGoal, SingleValue and Raw; consumers switch on the concrete type.
type Metadata interface {
	Kind() MetadataKind
	isMetadata()
}

// Set is one weight x reps entry.
type Set struct {
	Weight int    `json:"weight"`
	Reps   int    `json:"reps"`
	Notes  string `json:"notes,omitempty"`
}

// SetList is a sequence of weighted sets, e.g. "90 x 8".
type SetList struct {
	Sets []Set `json:"sets"`
}

// TimeGoal captures rep-in-time work, e.g. "Goal: 33 in 12 mins".
type TimeGoal struct {
	GoalReps *int  `json:"goalReps,omitempty"`
	GoalTime *int  `json:"goalTime,omitempty"`
	Reps     *int  `json:"reps,omitempty"`
	Time     *int  `json:"time,omitempty"`
	RepSets  []int `json:"repSets,omitempty"`
}

// SingleValue is a one-line entry holding a weight, reps, or both.
type SingleValue struct {
	Weight *int `json:"weight,omitempty"`
	Reps   *int `json:"reps,omitempty"`
}

// Raw keeps metadata lines that matched no known shape.
type Raw struct {
	Lines []string `json:"lines"`
}

func (SetList) Kind() MetadataKind     { return MetadataKindSetList }
func (TimeGoal) Kind() MetadataKind    { return MetadataKindTimeGoal }
func (SingleValue) Kind() MetadataKind { return MetadataKindSingleValue }
func (Raw) Kind() MetadataKind         { return MetadataKindRaw }

func (SetList) isMetadata()     {}
func (TimeGoal) isMetadata()    {}
func (SingleValue) isMetadata() {}
func (Raw) isMetadata()         {}

// ParsedActivity is one activity extracted from a note.
type ParsedActivity struct {
	NameRaw        string
	MetadataRaw    []string
	MetadataParsed Metadata
}

type parsedActivityJSON struct {
	NameRaw        string          `json:"nameRaw"`
	MetadataRaw    []string        `json:"metadataRaw"`
	Kind           MetadataKind    `json:"kind"`
	MetadataParsed json.RawMessage `json:"metadataParsed"`
}

// MarshalJSON encodes the metadata variant next to a kind discriminator.
func (p ParsedActivity) MarshalJSON() ([]byte, error) {
	md := p.MetadataParsed
	if md == nil {
		md = Raw{Lines: p.MetadataRaw}
	}
	body, err := json.Marshal(md)
	if err != nil {
		return nil, err
	}
	raw := p.MetadataRaw
	if raw == nil {
		raw = []string{}
	}
	return json.Marshal(parsedActivityJSON{
		NameRaw:        p.NameRaw,
		MetadataRaw:    raw,
		Kind:           md.Kind(),
		MetadataParsed: body,
	})
}

// UnmarshalJSON restores the concrete metadata variant from its kind.
func (p *ParsedActivity) UnmarshalJSON(data []byte) error {
	var wire parsedActivityJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	md, err := DecodeMetadata(wire.Kind, wire.MetadataParsed)
	if err != nil {
		return err
	}
	p.NameRaw = wire.NameRaw
	p.MetadataRaw = wire.MetadataRaw
	p.MetadataParsed = md
	return nil
}

// DecodeMetadata unmarshals body into the variant named by kind.
func DecodeMetadata(kind MetadataKind, body []byte) (Metadata, error) {
	if len(body) == 0 || string(body) == "null" {
		return Raw{}, nil
	}
	switch kind {
	case MetadataKindSetList:
		var v SetList
		err := json.Unmarshal(body, &v)
		return v, err
	case MetadataKindTimeGoal:
		var v TimeGoal
		err := json.Unmarshal(body, &v)
		return v, err
	case MetadataKindSingleValue:
		var v SingleValue
		err := json.Unmarshal(body, &v)
		return v, err
	case MetadataKindRaw, "":
		var v Raw
		err := json.Unmarshal(body, &v)
		return v, err
	default:
		return nil, fmt.Errorf("unknown metadata kind %q", kind)
	}
}
