package schema

import (
	"strings"
	"sync"
)

// Root groups the record declarations that make up one database.
type Root struct {
	name   string
	dbName string

	mu      sync.Mutex
	records []*Record
}

type RootOption func(*Root)

// DatabaseName overrides the default "db_<root>" database name.
func DatabaseName(name string) RootOption {
	return func(r *Root) { r.dbName = name }
}

func NewRoot(name string, opts ...RootOption) *Root {
	r := &Root{name: name}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Root) Name() string { return r.name }

// DatabaseName returns the configured name or "db_" + the lower-case root name.
func (r *Root) DatabaseName() string {
	if r.dbName != "" {
		return r.dbName
	}
	return "db_" + strings.ToLower(r.name)
}

// Record declares a record directly under the root.
func (r *Root) Record(name string, items ...RecordItem) *Record {
	return r.add(name, nil, items)
}

// Records returns every record declared under the root, directly or through
// Extend, in declaration order.
func (r *Root) Records() []*Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Record(nil), r.records...)
}

func (r *Root) add(name string, parent *Record, items []RecordItem) *Record {
	rec := &Record{root: r, name: name, parent: parent}
	for _, item := range items {
		item.apply(rec)
	}

	r.mu.Lock()
	r.records = append(r.records, rec)
	r.mu.Unlock()
	return rec
}

// Record is an explicit column-list declaration. It is used as a foreign-key
// target by passing it as a field spec.
type Record struct {
	root      *Root
	name      string
	parent    *Record
	tableName string
	fields    []FieldDef
}

// Name implements sqltype.Target.
func (r *Record) Name() string { return r.name }

func (r *Record) Root() *Root     { return r.root }
func (r *Record) Parent() *Record { return r.parent }

// Extend declares a record inheriting the fields of r. Inherited fields come
// first; a redeclared field keeps its inherited position.
func (r *Record) Extend(name string, items ...RecordItem) *Record {
	return r.root.add(name, r, items)
}

// Add appends fields after declaration, for records that reference
// themselves or each other. It must not be called once a table was built
// from r.
func (r *Record) Add(items ...RecordItem) *Record {
	for _, item := range items {
		item.apply(r)
	}
	return r
}

// Fields returns the declared fields, inherited ones included.
func (r *Record) Fields() []FieldDef {
	var fields []FieldDef
	if r.parent != nil {
		fields = r.parent.Fields()
	}
	inherited := len(fields)
	for _, f := range r.fields {
		replaced := false
		for i := 0; i < inherited; i++ {
			if fields[i].Name == f.Name {
				fields[i] = f
				replaced = true
				break
			}
		}
		if !replaced {
			fields = append(fields, f)
		}
	}
	return fields
}

// RecordItem is a field or option passed to Root.Record and Record.Extend.
type RecordItem interface {
	apply(*Record)
}

// FieldDef declares one column. Spec is a *sqltype.Type, a *Record (foreign
// key) or a value or reflect.Type of a Go type with a registered alias.
type FieldDef struct {
	Name string
	Spec any
}

func (f FieldDef) apply(r *Record) { r.fields = append(r.fields, f) }

func Field(name string, spec any) FieldDef {
	return FieldDef{Name: name, Spec: spec}
}

type tableNameItem string

func (t tableNameItem) apply(r *Record) { r.tableName = string(t) }

// TableName overrides the table name derived by the naming strategy.
func TableName(name string) RecordItem { return tableNameItem(name) }
