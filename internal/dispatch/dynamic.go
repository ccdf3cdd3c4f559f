package dispatch

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"contactd/internal/directory"
	"contactd/pkg/types"
)

// Value types shared by the operation table and its callers.
var (
	// ContactType describes a plain directory entry.
	ContactType = cty.Object(map[string]cty.Type{
		"name":  cty.String,
		"email": cty.String,
	})
	// PersonType describes the richer person aggregate.
	PersonType = cty.Object(map[string]cty.Type{
		"name":  cty.String,
		"email": cty.String,
		"id":    cty.String,
	})
)

// Operation is one entry of the dispatch table: the expected positional
// parameter types, the result type, and a handler closed over the directory.
type Operation struct {
	Name    string
	Params  []cty.Type
	Result  cty.Type
	Handler func(args []cty.Value) (cty.Value, error)
}

// Reply is the generic reply envelope: a typed result value, or a symbolic
// exception in its place. Exactly one side is set.
type Reply struct {
	Result    cty.Value
	Exception *Exception
}

// Dispatcher services requests described only by an operation name plus an
// ordered sequence of typed values, resolved against a table populated at
// construction. No reflection: every operation is an explicit registration.
type Dispatcher struct {
	ops map[string]Operation
}

// NewDispatcher builds the operation table over svc.
func NewDispatcher(svc directory.Service) *Dispatcher {
	d := &Dispatcher{ops: make(map[string]Operation)}
	d.register(Operation{
		Name:   "lookupEmailFromName",
		Params: []cty.Type{cty.String},
		Result: cty.String,
		Handler: func(args []cty.Value) (cty.Value, error) {
			email, err := svc.LookupEmailFromName(args[0].AsString())
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(email), nil
		},
	})
	d.register(Operation{
		Name:   "lookupNameFromEmail",
		Params: []cty.Type{cty.String},
		Result: cty.String,
		Handler: func(args []cty.Value) (cty.Value, error) {
			name, err := svc.LookupNameFromEmail(args[0].AsString())
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(name), nil
		},
	})
	d.register(Operation{
		Name:   "addContact",
		Params: []cty.Type{cty.String, cty.String},
		Result: cty.Bool,
		Handler: func(args []cty.Value) (cty.Value, error) {
			if err := svc.AddContact(args[0].AsString(), args[1].AsString()); err != nil {
				return cty.NilVal, err
			}
			return cty.True, nil
		},
	})
	d.register(Operation{
		Name:   "addPerson",
		Params: []cty.Type{PersonType},
		Result: PersonType,
		Handler: func(args []cty.Value) (cty.Value, error) {
			stored, err := svc.AddPerson(personFromValue(args[0]))
			if err != nil {
				return cty.NilVal, err
			}
			return personValue(stored), nil
		},
	})
	d.register(Operation{
		Name:   "addPeople",
		Params: []cty.Type{cty.List(PersonType)},
		Result: cty.List(PersonType),
		Handler: func(args []cty.Value) (cty.Value, error) {
			var people []types.Person
			for it := args[0].ElementIterator(); it.Next(); {
				_, ev := it.Element()
				people = append(people, personFromValue(ev))
			}
			stored, err := svc.AddPeople(people)
			if err != nil {
				return cty.NilVal, err
			}
			return peopleValue(stored), nil
		},
	})
	d.register(Operation{
		Name:   "listContacts",
		Params: nil,
		Result: cty.List(ContactType),
		Handler: func([]cty.Value) (cty.Value, error) {
			return contactsValue(svc.Contacts()), nil
		},
	})
	return d
}

func (d *Dispatcher) register(op Operation) {
	if _, exists := d.ops[op.Name]; exists {
		panic("operation already registered: " + op.Name)
	}
	d.ops[op.Name] = op
}

// Invoke resolves op against the table, validates args against the expected
// signature, runs the handler, and wraps the outcome in the generic reply
// envelope. Protocol violations (unknown op, signature mismatch) come back as
// errors; directory-level domain errors come back inside the reply as
// symbolic exceptions so callers without compiled types can interpret them.
func (d *Dispatcher) Invoke(op string, args []cty.Value) (Reply, error) {
	spec, ok := d.ops[op]
	if !ok {
		return Reply{}, ErrUnsupportedOperation(op)
	}
	if len(args) != len(spec.Params) {
		return Reply{}, ErrArgumentType(op, fmt.Sprintf("want %d arguments, got %d", len(spec.Params), len(args)))
	}
	for i, want := range spec.Params {
		if args[i].IsNull() || !args[i].IsWhollyKnown() {
			return Reply{}, ErrArgumentType(op, fmt.Sprintf("argument %d is null or unknown", i))
		}
		if !args[i].Type().Equals(want) {
			return Reply{}, ErrArgumentType(op, fmt.Sprintf("argument %d: want %s, got %s",
				i, want.FriendlyName(), args[i].Type().FriendlyName()))
		}
	}
	res, err := spec.Handler(args)
	if err != nil {
		if exc, ok := FromError(err); ok {
			return Reply{Exception: &exc}, nil
		}
		// Unexpected internal fault: abort this request, not the process.
		return Reply{}, err
	}
	return Reply{Result: res}, nil
}

// Operations returns the table sorted by name, handlers omitted.
func (d *Dispatcher) Operations() []Operation {
	out := make([]Operation, 0, len(d.ops))
	for _, op := range d.ops {
		out = append(out, Operation{Name: op.Name, Params: op.Params, Result: op.Result})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func personFromValue(v cty.Value) types.Person {
	p := types.Person{
		Name:  v.GetAttr("name").AsString(),
		Email: v.GetAttr("email").AsString(),
	}
	if id := v.GetAttr("id"); !id.IsNull() {
		p.ID = id.AsString()
	}
	return p
}

func personValue(p types.Person) cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"name":  cty.StringVal(p.Name),
		"email": cty.StringVal(p.Email),
		"id":    cty.StringVal(p.ID),
	})
}

func peopleValue(people []types.Person) cty.Value {
	if len(people) == 0 {
		return cty.ListValEmpty(PersonType)
	}
	vals := make([]cty.Value, len(people))
	for i, p := range people {
		vals[i] = personValue(p)
	}
	return cty.ListVal(vals)
}

func contactsValue(contacts []types.Contact) cty.Value {
	if len(contacts) == 0 {
		return cty.ListValEmpty(ContactType)
	}
	vals := make([]cty.Value, len(contacts))
	for i, c := range contacts {
		vals[i] = cty.ObjectVal(map[string]cty.Value{
			"name":  cty.StringVal(c.Name),
			"email": cty.StringVal(c.Email),
		})
	}
	return cty.ListVal(vals)
}
