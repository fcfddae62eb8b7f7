package codec

import (
	"testing"

	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestJSONCodecPlainValue(t *testing.T) {
	codec := &JSONCodec{}

	type testStruct struct {
		Name  string
		Value int
	}
	original := &testStruct{Name: "test", Value: 42}

	data, err := codec.Encode(original)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	decoded := &testStruct{}
	if err := codec.Decode(data, decoded); err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	if decoded.Name != original.Name || decoded.Value != original.Value {
		t.Errorf("Mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestJSONCodecProtoMessage(t *testing.T) {
	codec := &JSONCodec{}

	original, err := structpb.NewStruct(map[string]interface{}{
		"requests": 42.0,
		"route":    "/state",
	})
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}

	data, err := codec.Encode(original)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	decoded := &structpb.Struct{}
	if err := codec.Decode(data, decoded); err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	if got := decoded.Fields["requests"].GetNumberValue(); got != 42.0 {
		t.Errorf("requests = %v, want 42", got)
	}
	if got := decoded.Fields["route"].GetStringValue(); got != "/state" {
		t.Errorf("route = %q, want \"/state\"", got)
	}
}

func TestProtobufCodec(t *testing.T) {
	codec := &ProtobufCodec{}

	original := wrapperspb.Int32(42)

	data, err := codec.Encode(original)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	decoded := &wrapperspb.Int32Value{}
	if err := codec.Decode(data, decoded); err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	if decoded.Value != original.Value {
		t.Errorf("Mismatch: got %d, want %d", decoded.Value, original.Value)
	}
}

func TestProtobufCodecInvalidType(t *testing.T) {
	codec := &ProtobufCodec{}

	if _, err := codec.Encode("not a proto message"); err == nil {
		t.Error("Expected error for non-proto message")
	}
}

func TestForAccept(t *testing.T) {
	cases := []struct {
		accept string
		want   string
	}{
		{"", "json"},
		{"application/json", "json"},
		{"text/plain", "json"},
		{"application/x-protobuf", "protobuf"},
		{"application/protobuf", "protobuf"},
		{"application/json, application/x-protobuf", "protobuf"},
	}
	for _, c := range cases {
		if got := ForAccept(c.accept).Name(); got != c.want {
			t.Errorf("ForAccept(%q) = %s, want %s", c.accept, got, c.want)
		}
	}
}
