package domain

// Upstream field names lifted out of the passthrough fields.
const (
	FieldID       = "id"
	FieldParent   = "parent"
	FieldParentID = "parent_id"
)

// Record is a catalog item between fetch and normalisation.
// All pipeline stages mutate records; nodes are only built at the end.
type Record struct {
	// Kind is the collection the record came from.
	Kind ResourceKind

	// NodeID is the stable node identifier.
	NodeID string

	// UpstreamID is the catalog's numeric id.
	UpstreamID int64

	// UpstreamParentID is the catalog's parent id, if the record has one.
	UpstreamParentID *int64

	// Fields are the passthrough fields.
	Fields map[string]any

	// Links are resolved adjacency lists keyed by relation name.
	Links map[string][]string
}

// NewRecord builds a record from a raw catalog item.
// The upstream id and parent id are lifted out of the passthrough fields.
func NewRecord(kind ResourceKind, nodeID string, raw RawRecord) *Record {
	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		fields[k] = v
	}

	rec := &Record{
		Kind:   kind,
		NodeID: nodeID,
		Fields: fields,
		Links:  make(map[string][]string),
	}

	if id, ok := AsInt64(fields[FieldID]); ok {
		rec.UpstreamID = id
	}
	delete(fields, FieldID)

	for _, key := range []string{FieldParent, FieldParentID} {
		if v, present := fields[key]; present {
			if pid, ok := AsInt64(v); ok {
				rec.UpstreamParentID = &pid
				delete(fields, key)
				break
			}
		}
	}

	return rec
}

// Name returns the record's display name, if it has one.
func (r *Record) Name() string {
	if s, ok := AsString(r.Fields["name"]); ok {
		return s
	}
	return ""
}

// Modified returns the record's modification stamp used for media caching.
// Checked in order: modified, date_modified_gmt, date_modified.
func (r *Record) Modified() string {
	for _, key := range []string{"modified", "date_modified_gmt", "date_modified"} {
		if s, ok := AsString(r.Fields[key]); ok {
			return s
		}
	}
	return ""
}

// AddLink appends nodeID to the named adjacency list unless already present.
func (r *Record) AddLink(name, nodeID string) {
	if r.Links == nil {
		r.Links = make(map[string][]string)
	}
	for _, id := range r.Links[name] {
		if id == nodeID {
			return
		}
	}
	r.Links[name] = append(r.Links[name], nodeID)
}

// Relation reports the state of a relation on the record.
// It returns nil when the record carries neither form.
func (r *Record) Relation(rel Relation) RelationState {
	if ids := r.Links[rel.Name]; len(ids) > 0 {
		return Resolved{NodeIDs: ids}
	}
	raw, present := r.Fields[rel.RawField]
	if !present || raw == nil {
		return nil
	}
	return Unresolved{UpstreamIDs: upstreamIDs(raw)}
}

// Resolve stores the resolved node ids for rel and removes the raw field.
// Nothing changes when nodeIDs is empty, so the raw form is kept for
// relations whose targets are all missing.
func (r *Record) Resolve(rel Relation, nodeIDs []string) {
	if len(nodeIDs) == 0 {
		return
	}
	for _, id := range nodeIDs {
		r.AddLink(rel.Name, id)
	}
	delete(r.Fields, rel.RawField)
}

// upstreamIDs reads ids from either a list of scalars or a list of
// embedded objects carrying an "id" field.
func upstreamIDs(v any) []int64 {
	list, ok := AsList(v)
	if !ok {
		return nil
	}
	ids := make([]int64, 0, len(list))
	for _, item := range list {
		if m, isMap := AsMap(item); isMap {
			item = m[FieldID]
		}
		if id, ok := AsInt64(item); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
