package domain

import (
	"encoding/json"
	"fmt"
)

// Reserved keys of the serialised node.
const (
	KeyUpstreamID       = "wordpress_id"
	KeyUpstreamParentID = "wordpress_parent_id"
	KeyParent           = "parent"
	KeyChildren         = "children"
	KeyLinks            = "links"
	KeyInternal         = "internal"
)

// Node is the normalised, digested output unit for one catalog record.
type Node struct {
	// ID is the stable node identifier.
	ID string

	// UpstreamID is the catalog's numeric id.
	UpstreamID int64

	// UpstreamParentID is the catalog's parent id, if any.
	UpstreamParentID *int64

	// Parent is always nil; structural parents are not modelled here.
	Parent *string

	// Children is always empty.
	Children []string

	// Fields are the passthrough fields.
	Fields map[string]any

	// Links are the resolved adjacency lists.
	Links map[string][]string

	// Internal holds the node bookkeeping.
	Internal Internal
}

// Internal holds the type tag and content digest of a node.
type Internal struct {
	Type          string `json:"type"`
	ContentDigest string `json:"contentDigest,omitempty"`
}

// MarshalJSON flattens the passthrough fields next to the reserved keys.
// The internal block is omitted while the type tag is empty, which is how
// the content digest input is produced.
func (n Node) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(n.Fields)+7)
	for k, v := range n.Fields {
		out[k] = v
	}

	out[FieldID] = n.ID
	out[KeyUpstreamID] = n.UpstreamID
	if n.UpstreamParentID != nil {
		out[KeyUpstreamParentID] = *n.UpstreamParentID
	} else {
		out[KeyUpstreamParentID] = nil
	}
	out[KeyParent] = n.Parent

	children := n.Children
	if children == nil {
		children = []string{}
	}
	out[KeyChildren] = children

	if len(n.Links) > 0 {
		out[KeyLinks] = n.Links
	}
	if n.Internal.Type != "" {
		out[KeyInternal] = n.Internal
	}

	return json.Marshal(out)
}

// UnmarshalJSON reverses MarshalJSON.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var decoded Node
	if v, ok := raw[FieldID]; ok {
		if err := json.Unmarshal(v, &decoded.ID); err != nil {
			return fmt.Errorf("decoding id: %w", err)
		}
	}
	if v, ok := raw[KeyUpstreamID]; ok {
		if err := json.Unmarshal(v, &decoded.UpstreamID); err != nil {
			return fmt.Errorf("decoding %s: %w", KeyUpstreamID, err)
		}
	}
	if v, ok := raw[KeyUpstreamParentID]; ok {
		if err := json.Unmarshal(v, &decoded.UpstreamParentID); err != nil {
			return fmt.Errorf("decoding %s: %w", KeyUpstreamParentID, err)
		}
	}
	if v, ok := raw[KeyParent]; ok {
		if err := json.Unmarshal(v, &decoded.Parent); err != nil {
			return fmt.Errorf("decoding parent: %w", err)
		}
	}
	decoded.Children = []string{}
	if v, ok := raw[KeyChildren]; ok {
		if err := json.Unmarshal(v, &decoded.Children); err != nil {
			return fmt.Errorf("decoding children: %w", err)
		}
	}
	if v, ok := raw[KeyLinks]; ok {
		if err := json.Unmarshal(v, &decoded.Links); err != nil {
			return fmt.Errorf("decoding links: %w", err)
		}
	}
	if v, ok := raw[KeyInternal]; ok {
		if err := json.Unmarshal(v, &decoded.Internal); err != nil {
			return fmt.Errorf("decoding internal: %w", err)
		}
	}

	decoded.Fields = make(map[string]any)
	for k, v := range raw {
		switch k {
		case FieldID, KeyUpstreamID, KeyUpstreamParentID, KeyParent, KeyChildren, KeyLinks, KeyInternal:
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("decoding field %s: %w", k, err)
		}
		decoded.Fields[k] = val
	}

	*n = decoded
	return nil
}
