package codec

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestRawIdentity(t *testing.T) {
	in := []byte{0x00, 0xFF, 'a'}
	out, err := Raw{}.Decode(in)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("raw decode mutated bytes: %v", out)
	}
}

func TestJSONCompacts(t *testing.T) {
	out, err := JSON{}.Decode([]byte("{\n  \"a\": 1,\n  \"b\": \"x\"\n}"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(out) != `{"a":1,"b":"x"}` {
		t.Fatalf("unexpected compact form: %s", out)
	}
}

func TestJSONRejectsInvalid(t *testing.T) {
	if _, err := (JSON{}).Decode([]byte("{not json")); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

func TestMsgpackRendersJSON(t *testing.T) {
	b, err := msgpack.Marshal(map[string]any{"name": "ada", "n": int64(3)})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	out, err := Msgpack{}.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	// json.Marshal sorts map keys, so the rendering is deterministic.
	if string(out) != `{"n":3,"name":"ada"}` {
		t.Fatalf("unexpected rendering: %s", out)
	}
}

func TestMsgpackRejectsGarbage(t *testing.T) {
	if _, err := (Msgpack{}).Decode([]byte{0xc1}); err == nil {
		t.Fatalf("expected error for reserved msgpack byte")
	}
}

func TestCBORRendersJSON(t *testing.T) {
	b, err := cbor.Marshal(map[string]any{"x": int64(1), "s": "v"})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	out, err := MustCBOR().Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(out) != `{"s":"v","x":1}` {
		t.Fatalf("unexpected rendering: %s", out)
	}
}

func TestProtobufRendersProtojson(t *testing.T) {
	ts := timestamppb.New(time.Unix(1700000000, 0).UTC())
	b, err := proto.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	dec := NewProtobuf(func() *timestamppb.Timestamp { return &timestamppb.Timestamp{} })
	out, err := dec.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !strings.Contains(string(out), "2023-11-14T22:13:20Z") {
		t.Fatalf("unexpected protojson rendering: %s", out)
	}
}

func TestLimit(t *testing.T) {
	l := Limit{Inner: Raw{}, Max: 3}
	if out, err := l.Decode([]byte("abc")); err != nil || string(out) != "abc" {
		t.Fatalf("within limit: out=%q err=%v", out, err)
	}
	if _, err := l.Decode([]byte("abcd")); err == nil {
		t.Fatalf("expected error above limit")
	}
	// Max <= 0 disables the limit
	l = Limit{Inner: Raw{}, Max: 0}
	if _, err := l.Decode(bytes.Repeat([]byte("x"), 1<<16)); err != nil {
		t.Fatalf("limit disabled: %v", err)
	}
}
