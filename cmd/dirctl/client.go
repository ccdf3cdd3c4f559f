package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/zclconf/go-cty/cty"

	"contactd/internal/dispatch"
	"contactd/pkg/types"
)

// client is a minimal dynamic-surface client: it knows the server base URL
// and the wire conventions, nothing about the directory interface.
type client struct {
	base string
	http *http.Client
}

func (c *client) getJSON(path string, out any) error {
	resp, err := c.http.Get(c.base + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errorFromResponse(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) resolve(name string) (types.ObjectRef, error) {
	var ref types.ObjectRef
	err := c.getJSON("/names/"+name, &ref)
	return ref, err
}

func (c *client) operations(handle string) ([]types.OperationInfo, error) {
	var ops []types.OperationInfo
	err := c.getJSON("/objects/"+handle+"/operations", &ops)
	return ops, err
}

// invoke posts one dynamic invocation and interprets the reply envelope:
// a result value comes back as-is, an exception is re-raised locally.
func (c *client) invoke(handle, op string, args []cty.Value) (cty.Value, error) {
	req := types.InvokeRequest{Op: op}
	for _, a := range args {
		wv, err := dispatch.ValueToWire(a)
		if err != nil {
			return cty.NilVal, fmt.Errorf("encode argument: %w", err)
		}
		req.Args = append(req.Args, wv)
	}
	body, err := json.Marshal(req)
	if err != nil {
		return cty.NilVal, err
	}
	resp, err := c.http.Post(c.base+"/objects/"+handle+"/invoke", "application/json", bytes.NewReader(body))
	if err != nil {
		return cty.NilVal, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return cty.NilVal, errorFromResponse(resp)
	}
	var reply types.InvokeResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return cty.NilVal, err
	}
	if reply.Exception != nil {
		exc, err := dispatch.ExceptionFromWire(*reply.Exception)
		if err != nil {
			return cty.NilVal, fmt.Errorf("decode exception: %w", err)
		}
		return cty.NilVal, dispatch.ErrorFromException(exc)
	}
	if reply.Result == nil {
		return cty.NilVal, fmt.Errorf("reply carried neither result nor exception")
	}
	return dispatch.ValueFromWire(*reply.Result)
}

func errorFromResponse(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var er types.ErrorResponse
	if json.Unmarshal(b, &er) == nil && er.Error != "" {
		return fmt.Errorf("%s (status %d)", er.Error, resp.StatusCode)
	}
	return fmt.Errorf("server returned status %d", resp.StatusCode)
}

// parseArg turns a CLI argument into a typed value. A literal starting with
// '{' is read as a full wire value (type + value); anything else is a string.
func parseArg(s string) (cty.Value, error) {
	if len(s) > 0 && s[0] == '{' {
		var wv types.WireValue
		if err := json.Unmarshal([]byte(s), &wv); err != nil {
			return cty.NilVal, fmt.Errorf("parse wire value: %w", err)
		}
		return dispatch.ValueFromWire(wv)
	}
	return cty.StringVal(s), nil
}
