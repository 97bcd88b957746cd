// Package protocol is the closed tagged union of wire messages from
// spec section 6, following the redesign hint in spec section 9:
// "Dynamic JSON messages -> a closed tagged union with explicit
// per-variant fields; wire format remains JSON for interop with the
// evaluation harness." encoding/json, not the teacher's protobuf, is
// used deliberately here; see DESIGN.md.
package protocol

import (
	"encoding/json"
	"fmt"
)

type Type string

const (
	TypeHello        Type = "HELLO"
	TypeLSA          Type = "LSA"
	TypeIntent       Type = "INTENT"
	TypeIntentDelete Type = "INTENT_DELETE"
)

// Message is implemented by every wire variant so callers can switch
// on a single decoded value.
type Message interface {
	MsgType() Type
}

type envelope struct {
	Type Type `json:"type"`
}

// Hello is the HELLO beacon of spec section 6.
type Hello struct {
	RouterId string   `json:"router_id"`
	Iface    string   `json:"iface"`
	Bw       float64  `json:"bw"`
	Delay    float64  `json:"delay"`
	Seen     []string `json:"seen"`
}

func (Hello) MsgType() Type { return TypeHello }

type LSALink struct {
	Peer  string  `json:"peer"`
	Bw    float64 `json:"bw"`
	Delay float64 `json:"delay"`
}

// LSA is the link-state advertisement of spec section 6.
type LSA struct {
	Origin string    `json:"origin"`
	Seq    uint64    `json:"seq"`
	Ts     float64   `json:"ts"`
	Links  []LSALink `json:"links"`
	Stubs  []string  `json:"stubs,omitempty"`
}

func (LSA) MsgType() Type { return TypeLSA }

// Intent is the INTENT control message of spec section 6.
type Intent struct {
	Src          string   `json:"src"`
	Dst          string   `json:"dst"`
	MinBandwidth *float64 `json:"min_bandwidth,omitempty"`
	MaxLatency   *float64 `json:"max_latency,omitempty"`
}

func (Intent) MsgType() Type { return TypeIntent }

// IntentDelete is the INTENT_DELETE control message of spec section 6.
type IntentDelete struct {
	Src string `json:"src"`
	Dst string `json:"dst"`
}

func (IntentDelete) MsgType() Type { return TypeIntentDelete }

// Decode parses one datagram payload into the matching Message
// variant. Unknown types and malformed JSON return an error; callers
// are expected to count and drop per spec section 7, never to crash.
func Decode(data []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed message: %w", err)
	}
	switch env.Type {
	case TypeHello:
		var m Hello
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("malformed HELLO: %w", err)
		}
		return m, nil
	case TypeLSA:
		var m LSA
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("malformed LSA: %w", err)
		}
		return m, nil
	case TypeIntent:
		var m Intent
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("malformed INTENT: %w", err)
		}
		return m, nil
	case TypeIntentDelete:
		var m IntentDelete
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("malformed INTENT_DELETE: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", env.Type)
	}
}

// Encode serializes a Message back into its wire form, injecting the
// "type" discriminator alongside the variant's own fields.
func Encode(m Message) ([]byte, error) {
	switch v := m.(type) {
	case Hello:
		return marshalWithType(v, TypeHello)
	case LSA:
		return marshalWithType(v, TypeLSA)
	case Intent:
		return marshalWithType(v, TypeIntent)
	case IntentDelete:
		return marshalWithType(v, TypeIntentDelete)
	default:
		return nil, fmt.Errorf("unknown message variant %T", m)
	}
}

func marshalWithType(v any, t Type) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	typeJSON, _ := json.Marshal(t)
	fields["type"] = typeJSON
	return json.Marshal(fields)
}
