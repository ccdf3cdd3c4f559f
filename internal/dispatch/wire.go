package dispatch

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"contactd/pkg/types"
)

// ValueToWire serializes v as an explicit type tag plus payload.
func ValueToWire(v cty.Value) (types.WireValue, error) {
	tb, err := ctyjson.MarshalType(v.Type())
	if err != nil {
		return types.WireValue{}, fmt.Errorf("marshal type: %w", err)
	}
	vb, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return types.WireValue{}, fmt.Errorf("marshal value: %w", err)
	}
	return types.WireValue{Type: tb, Value: vb}, nil
}

// ValueFromWire decodes a wire value using its embedded type tag.
func ValueFromWire(w types.WireValue) (cty.Value, error) {
	if len(w.Type) == 0 {
		return cty.NilVal, fmt.Errorf("missing type tag")
	}
	t, err := ctyjson.UnmarshalType(w.Type)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unmarshal type: %w", err)
	}
	v, err := ctyjson.Unmarshal(w.Value, t)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unmarshal value: %w", err)
	}
	return v, nil
}

// ExceptionToWire serializes a symbolic exception envelope.
func ExceptionToWire(exc Exception) (types.WireException, error) {
	out := types.WireException{ID: exc.ID}
	if len(exc.Members) > 0 {
		out.Members = make(map[string]types.WireValue, len(exc.Members))
		for k, v := range exc.Members {
			wv, err := ValueToWire(v)
			if err != nil {
				return types.WireException{}, fmt.Errorf("member %s: %w", k, err)
			}
			out.Members[k] = wv
		}
	}
	return out, nil
}

// ExceptionFromWire decodes a symbolic exception envelope.
func ExceptionFromWire(w types.WireException) (Exception, error) {
	exc := Exception{ID: w.ID}
	if len(w.Members) > 0 {
		exc.Members = make(map[string]cty.Value, len(w.Members))
		for k, wv := range w.Members {
			v, err := ValueFromWire(wv)
			if err != nil {
				return Exception{}, fmt.Errorf("member %s: %w", k, err)
			}
			exc.Members[k] = v
		}
	}
	return exc, nil
}

// ReplyToWire serializes a reply envelope: result or exception, never both.
func ReplyToWire(r Reply) (types.InvokeResponse, error) {
	if r.Exception != nil {
		we, err := ExceptionToWire(*r.Exception)
		if err != nil {
			return types.InvokeResponse{}, err
		}
		return types.InvokeResponse{Exception: &we}, nil
	}
	wv, err := ValueToWire(r.Result)
	if err != nil {
		return types.InvokeResponse{}, err
	}
	return types.InvokeResponse{Result: &wv}, nil
}
