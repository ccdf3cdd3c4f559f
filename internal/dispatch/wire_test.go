package dispatch

import (
	"testing"

	"github.com/zclconf/go-cty/cty"

	"contactd/pkg/types"
)

func TestWireValueCarriesTypeTag(t *testing.T) {
	v := cty.ObjectVal(map[string]cty.Value{
		"name":  cty.StringVal("Bob"),
		"email": cty.StringVal("bob@example.com"),
	})
	w, err := ValueToWire(v)
	if err != nil {
		t.Fatalf("to wire: %v", err)
	}
	if len(w.Type) == 0 || len(w.Value) == 0 {
		t.Fatalf("wire value missing halves: %+v", w)
	}
	back, err := ValueFromWire(w)
	if err != nil {
		t.Fatalf("from wire: %v", err)
	}
	if !back.RawEquals(v) {
		t.Fatalf("round trip changed value: %#v != %#v", back, v)
	}
}

func TestWireValueRejectsMissingTypeTag(t *testing.T) {
	if _, err := ValueFromWire(types.WireValue{Value: []byte(`"x"`)}); err == nil {
		t.Fatalf("expected error for missing type tag")
	}
}

func TestExceptionWireRoundTrip(t *testing.T) {
	exc := Exception{
		ID:      ExcUnknownName,
		Members: map[string]cty.Value{"name": cty.StringVal("Eve")},
	}
	w, err := ExceptionToWire(exc)
	if err != nil {
		t.Fatalf("to wire: %v", err)
	}
	back, err := ExceptionFromWire(w)
	if err != nil {
		t.Fatalf("from wire: %v", err)
	}
	if back.ID != exc.ID || !back.Members["name"].RawEquals(exc.Members["name"]) {
		t.Fatalf("round trip changed exception: %+v", back)
	}
	// and the decoded envelope still re-raises correctly
	if err := ErrorFromException(back); err == nil {
		t.Fatalf("expected typed error from decoded exception")
	}
}
