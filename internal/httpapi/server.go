package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"contactd/internal/directory"
	"contactd/internal/dispatch"
	"contactd/internal/naming"
	"contactd/internal/observer"
	"contactd/pkg/types"
)

// DefaultDirectoryName is the logical name the directory servant is
// registered under when the configuration leaves it unset.
const DefaultDirectoryName = "ContactDirectory"

// Server wires the core onto the HTTP surface: the name registry for
// resolution, a handle -> servant table for dynamic invocation, the typed
// adapter for the static routes, and the hub for subscriptions. Many object
// refs may point at one servant; the table is the indirection between them.
type Server struct {
	reg      *naming.Registry
	hub      *observer.Hub
	static   *dispatch.Static
	servants map[string]*dispatch.Dispatcher
}

// NewServer exports svc as a servant, binds it in reg under dirName (or the
// default), and returns the wired server.
func NewServer(svc directory.Service, reg *naming.Registry, hub *observer.Hub, dirName string) (*Server, error) {
	if dirName == "" {
		dirName = DefaultDirectoryName
	}
	s := &Server{
		reg:      reg,
		hub:      hub,
		static:   dispatch.NewStatic(svc),
		servants: map[string]*dispatch.Dispatcher{},
	}
	handle := uuid.NewString()
	s.servants[handle] = dispatch.NewDispatcher(svc)
	if err := reg.Register(dirName, types.ObjectRef{Handle: handle}); err != nil {
		return nil, err
	}
	return s, nil
}

// Ready reports whether the directory servant is resolvable, i.e. the server
// finished its startup wiring.
func (s *Server) Ready() bool {
	return len(s.servants) > 0
}

// Handler builds the chi router over the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(MetricsMiddleware)
	r.Use(RequestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if s.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("starting"))
	})

	// Naming surface
	r.Get("/names", s.handleListNames)
	r.Get("/names/{name}", s.handleResolve)
	r.Put("/names/{name}", s.handleRebind)

	// Static (typed) surface
	r.Get("/directory/contacts", s.handleListContacts)
	r.Post("/directory/contacts", s.handleAddContact)
	r.Get("/directory/contacts/{name}", s.handleLookupEmail)
	r.Get("/directory/names", s.handleLookupName)
	r.Post("/directory/people", s.handleAddPerson)
	r.Post("/directory/people/batch", s.handleAddPeople)

	// Dynamic surface
	r.Get("/objects/{handle}/operations", s.handleOperations)
	r.Post("/objects/{handle}/invoke", s.handleInvoke)

	// Notification surface
	r.Get("/observers", s.handleListObservers)
	r.Post("/observers", s.handleSubscribe)
	r.Delete("/observers/{id}", s.handleUnsubscribe)

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	MountSwagger(r)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && zlog != nil {
		zlog.Error().Err(err).Msg("encode response")
	}
}

// decodeJSON enforces content type and body limits before decoding into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// statusForError maps the core's typed errors onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case naming.IsNotFound(err),
		directory.IsUnknownName(err),
		directory.IsUnknownEmail(err),
		dispatch.IsUnsupportedOperation(err):
		return http.StatusNotFound
	case naming.IsNameSyntax(err), dispatch.IsArgumentType(err):
		return http.StatusBadRequest
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

func (s *Server) handleListNames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.NamesResponse{Bindings: s.reg.List()})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ref, err := s.reg.Resolve(name)
	if err != nil {
		writeJSONError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ref)
}

func (s *Server) handleRebind(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req types.RebindRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Handle == "" {
		writeJSONError(w, http.StatusBadRequest, "handle is required")
		return
	}
	if _, ok := s.servants[req.Handle]; !ok {
		writeJSONError(w, http.StatusNotFound, "unknown servant handle")
		return
	}
	if err := s.reg.Rebind(name, types.ObjectRef{Handle: req.Handle}); err != nil {
		writeJSONError(w, statusForError(err), err.Error())
		return
	}
	ref, _ := s.reg.Resolve(name)
	writeJSON(w, http.StatusOK, ref)
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.ContactsResponse{Contacts: s.static.Contacts()})
}

func (s *Server) handleAddContact(w http.ResponseWriter, r *http.Request) {
	var c types.Contact
	if !decodeJSON(w, r, &c) {
		return
	}
	if strings.TrimSpace(c.Name) == "" {
		writeJSONError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := s.static.AddContact(c.Name, c.Email); err != nil {
		writeJSONError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleLookupEmail(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	email, err := s.static.LookupEmailFromName(name)
	if err != nil {
		writeJSONError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, types.EmailResponse{Name: name, Email: email})
}

func (s *Server) handleLookupName(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSONError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}
	name, err := s.static.LookupNameFromEmail(email)
	if err != nil {
		writeJSONError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, types.NameResponse{Email: email, Name: name})
}

func (s *Server) handleAddPerson(w http.ResponseWriter, r *http.Request) {
	var p types.Person
	if !decodeJSON(w, r, &p) {
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		writeJSONError(w, http.StatusBadRequest, "name is required")
		return
	}
	stored, err := s.static.AddPerson(p)
	if err != nil {
		writeJSONError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleAddPeople(w http.ResponseWriter, r *http.Request) {
	var req types.AddPeopleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	for _, p := range req.People {
		if strings.TrimSpace(p.Name) == "" {
			writeJSONError(w, http.StatusBadRequest, "every person needs a name")
			return
		}
	}
	stored, err := s.static.AddPeople(req.People)
	if err != nil {
		writeJSONError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, types.AddPeopleRequest{People: stored})
}

func (s *Server) servant(w http.ResponseWriter, r *http.Request) (*dispatch.Dispatcher, bool) {
	handle := chi.URLParam(r, "handle")
	d, ok := s.servants[handle]
	if !ok {
		writeJSONError(w, http.StatusNotFound, "unknown object handle")
		return nil, false
	}
	return d, true
}

func (s *Server) handleOperations(w http.ResponseWriter, r *http.Request) {
	d, ok := s.servant(w, r)
	if !ok {
		return
	}
	ops := d.Operations()
	out := make([]types.OperationInfo, 0, len(ops))
	for _, op := range ops {
		info := types.OperationInfo{Name: op.Name}
		for _, p := range op.Params {
			tb, err := ctyjson.MarshalType(p)
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, "encode operation table")
				return
			}
			info.Params = append(info.Params, tb)
		}
		tb, err := ctyjson.MarshalType(op.Result)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "encode operation table")
			return
		}
		info.Result = tb
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	d, ok := s.servant(w, r)
	if !ok {
		return
	}
	var req types.InvokeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Op == "" {
		writeJSONError(w, http.StatusBadRequest, "op is required")
		return
	}
	args := make([]cty.Value, len(req.Args))
	for i, wv := range req.Args {
		v, err := dispatch.ValueFromWire(wv)
		if err != nil {
			recordInvocation(req.Op, "bad_wire")
			writeJSONError(w, http.StatusBadRequest, "argument "+itoa(i)+": "+err.Error())
			return
		}
		args[i] = v
	}
	reply, err := d.Invoke(req.Op, args)
	if err != nil {
		outcome := "error"
		switch {
		case dispatch.IsUnsupportedOperation(err):
			outcome = "unsupported_op"
		case dispatch.IsArgumentType(err):
			outcome = "bad_args"
		}
		recordInvocation(req.Op, outcome)
		writeJSONError(w, statusForError(err), err.Error())
		return
	}
	resp, err := dispatch.ReplyToWire(reply)
	if err != nil {
		recordInvocation(req.Op, "error")
		writeJSONError(w, http.StatusInternalServerError, "encode reply")
		return
	}
	if reply.Exception != nil {
		recordInvocation(req.Op, "exception")
	} else {
		recordInvocation(req.Op, "ok")
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListObservers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.ObserversResponse{Observers: s.hub.Observers()})
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req types.SubscribeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := url.Parse(req.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		writeJSONError(w, http.StatusBadRequest, "url must be absolute")
		return
	}
	id := uuid.NewString()
	s.hub.Subscribe(types.ObjectRef{Name: req.URL, Handle: id}, observer.NewWebhook(req.URL, nil))
	writeJSON(w, http.StatusCreated, types.SubscribeResponse{ID: id})
}

func (s *Server) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	s.hub.Unsubscribe(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
