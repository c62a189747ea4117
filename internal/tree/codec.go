package tree

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

var (
	// ErrEmptyOutline marks a payload without any top-level node.
	ErrEmptyOutline = errors.New("outline has no nodes")
	// ErrNilNode marks a payload containing a null node.
	ErrNilNode = errors.New("outline contains a null node")
)

// DuplicateIDError reports a payload in which two nodes share an id.
type DuplicateIDError struct {
	ID int64
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate node id %d", e.ID)
}

// Encode serialises nodes as a JSON array.
func Encode(nodes []*Node) ([]byte, error) {
	if nodes == nil {
		nodes = []*Node{}
	}
	data, err := json.Marshal(nodes)
	if err != nil {
		return nil, fmt.Errorf("encode outline: %w", err)
	}
	return data, nil
}

// Decode parses a JSON array of nodes and validates that it describes a
// usable outline: at least one node, no nulls and unique ids. Null child
// lists are normalised to empty ones.
func Decode(data []byte) ([]*Node, error) {
	var nodes []*Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("decode outline: %w", err)
	}
	if err := validate(nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

func validate(nodes []*Node) error {
	if len(nodes) == 0 {
		return ErrEmptyOutline
	}
	seen := make(map[int64]struct{})
	var check func([]*Node) error
	check = func(list []*Node) error {
		for _, n := range list {
			if n == nil {
				return ErrNilNode
			}
			if _, dup := seen[n.ID]; dup {
				return &DuplicateIDError{ID: n.ID}
			}
			seen[n.ID] = struct{}{}
			if n.Children == nil {
				n.Children = []*Node{}
			}
			if err := check(n.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return check(nodes)
}
