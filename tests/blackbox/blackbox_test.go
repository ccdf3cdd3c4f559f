package blackbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// findFreePort picks an available TCP port on localhost.
func findFreePort(t *testing.T) (int, func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	cleanup := func() { _ = ln.Close() }
	var port int
	fmt.Sscanf(portStr, "%d", &port)
	return port, cleanup
}

func projectRootFromThisFile(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	// this file: <root>/tests/blackbox/blackbox_test.go
	bbDir := filepath.Dir(thisFile)
	return filepath.Dir(filepath.Dir(bbDir))
}

func buildBinary(t *testing.T) string {
	t.Helper()
	root := projectRootFromThisFile(t)
	outDir := t.TempDir()
	binPath := filepath.Join(outDir, "contactd")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/contactd")
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go build failed: %v\n%s", err, string(out))
	}
	return binPath
}

type serverProc struct {
	cmd  *exec.Cmd
	base string // http base URL, e.g. http://127.0.0.1:18080
}

func startServer(t *testing.T, bin string, port int, extraArgs ...string) *serverProc {
	t.Helper()
	addr := fmt.Sprintf(":%d", port)
	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	args := append([]string{"serve", "--addr", addr}, extraArgs...)
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	// Wait for healthz
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			_ = cmd.Process.Kill()
			t.Fatalf("server did not become healthy in time")
		}
		time.Sleep(50 * time.Millisecond)
	}
	sp := &serverProc{cmd: cmd, base: base}
	t.Cleanup(func() { _ = cmd.Process.Kill() })
	return sp
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func postJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func TestBlackbox_Flow(t *testing.T) {
	bin := buildBinary(t)
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, port)

	// /healthz and /readyz
	resp, body := get(t, sp.base+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/healthz %d %s", resp.StatusCode, string(body))
	}
	resp, body = get(t, sp.base+"/readyz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/readyz %d %s", resp.StatusCode, string(body))
	}

	// seed contacts are served in insertion order
	resp, body = get(t, sp.base+"/directory/contacts")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/directory/contacts %d %s", resp.StatusCode, string(body))
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("/directory/contacts content-type=%s", ct)
	}
	var contactsResp struct {
		Contacts []struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"contacts"`
	}
	if err := json.Unmarshal(body, &contactsResp); err != nil {
		t.Fatalf("/directory/contacts json: %v body=%s", err, string(body))
	}
	if len(contactsResp.Contacts) != 3 || contactsResp.Contacts[0].Name != "Bob" {
		t.Fatalf("unexpected seed contacts: %+v", contactsResp.Contacts)
	}

	// name resolution yields the servant handle
	resp, body = get(t, sp.base+"/names/ContactDirectory")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/names resolve %d %s", resp.StatusCode, string(body))
	}
	var ref struct {
		Handle string `json:"handle"`
	}
	if err := json.Unmarshal(body, &ref); err != nil || ref.Handle == "" {
		t.Fatalf("bad object ref: %v body=%s", err, string(body))
	}

	// static lookup and dynamic invoke agree on the same entry
	resp, body = get(t, sp.base+"/directory/contacts/Alice")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("static lookup %d %s", resp.StatusCode, string(body))
	}
	var emailResp struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &emailResp); err != nil {
		t.Fatalf("static lookup json: %v", err)
	}

	invoke := []byte(`{"op":"lookupEmailFromName","args":[{"type":"string","value":"Alice"}]}`)
	resp, body = postJSON(t, sp.base+"/objects/"+ref.Handle+"/invoke", invoke)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("invoke %d %s", resp.StatusCode, string(body))
	}
	var invokeResp struct {
		Result    *struct{ Value json.RawMessage `json:"value"` } `json:"result"`
		Exception any                                             `json:"exception"`
	}
	if err := json.Unmarshal(body, &invokeResp); err != nil {
		t.Fatalf("invoke json: %v body=%s", err, string(body))
	}
	if invokeResp.Exception != nil || invokeResp.Result == nil {
		t.Fatalf("invoke reply: %s", string(body))
	}
	var dynEmail string
	if err := json.Unmarshal(invokeResp.Result.Value, &dynEmail); err != nil {
		t.Fatalf("invoke result: %v", err)
	}
	if dynEmail != emailResp.Email {
		t.Fatalf("static=%q dynamic=%q", emailResp.Email, dynEmail)
	}

	// unknown name travels as an exception envelope, not a transport error
	invoke = []byte(`{"op":"lookupEmailFromName","args":[{"type":"string","value":"Eve"}]}`)
	resp, body = postJSON(t, sp.base+"/objects/"+ref.Handle+"/invoke", invoke)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("invoke unknown %d %s", resp.StatusCode, string(body))
	}
	if !bytes.Contains(body, []byte("directory/unknown-name")) {
		t.Fatalf("expected exception envelope, got %s", string(body))
	}
}

func TestBlackbox_ObserverWebhook(t *testing.T) {
	var hits atomic.Int32
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer sink.Close()

	bin := buildBinary(t)
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, port)

	resp, body := postJSON(t, sp.base+"/observers", []byte(`{"url":"`+sink.URL+`"}`))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("subscribe %d %s", resp.StatusCode, string(body))
	}
	var sub struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &sub); err != nil || sub.ID == "" {
		t.Fatalf("subscribe reply: %v %s", err, string(body))
	}

	resp, body = postJSON(t, sp.base+"/directory/contacts", []byte(`{"name":"Dave","email":"dave@example.com"}`))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add contact %d %s", resp.StatusCode, string(body))
	}

	deadline := time.Now().Add(2 * time.Second)
	for hits.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("webhook was never delivered")
		}
		time.Sleep(25 * time.Millisecond)
	}
}

func TestBlackbox_ResolveUnbound_404(t *testing.T) {
	bin := buildBinary(t)
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, port)

	resp, body := get(t, sp.base+"/names/NoSuchDirectory")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d, body=%s", resp.StatusCode, string(body))
	}
}
