package model

import "github.com/google/uuid"

// Universe is one self-contained model instance: the exclusive owner of a
// set of elements and the namespace their names live in. Universes are
// created empty; elements attach themselves via the package constructors.
//
// A Universe is not safe for concurrent mutation; declare the model first,
// then query it.
type Universe struct {
	id       uuid.UUID
	elements []*Element
	names    map[string]struct{}
}

// NewUniverse creates an empty model instance with a fresh identity.
func NewUniverse() *Universe {
	return &Universe{
		id:    uuid.New(),
		names: make(map[string]struct{}),
	}
}

// ID returns the universe's unique identifier.
func (u *Universe) ID() uuid.UUID { return u.id }

// Elements returns the universe's elements in declaration order.
func (u *Universe) Elements() []*Element {
	return append([]*Element(nil), u.elements...)
}

// ConditionedElements returns, in declaration order, every element carrying
// a hard observation.
func (u *Universe) ConditionedElements() []*Element {
	var out []*Element
	for _, e := range u.elements {
		if e.observed {
			out = append(out, e)
		}
	}

	return out
}

// ConstrainedElements returns, in declaration order, every element carrying
// a soft constraint.
func (u *Universe) ConstrainedElements() []*Element {
	var out []*Element
	for _, e := range u.elements {
		if e.constraint != nil {
			out = append(out, e)
		}
	}

	return out
}

// register validates the name and attaches e to the universe.
func (u *Universe) register(e *Element) error {
	if e.name == "" {
		return ErrEmptyName
	}
	if _, taken := u.names[e.name]; taken {
		return ErrDuplicateName
	}
	u.names[e.name] = struct{}{}
	u.elements = append(u.elements, e)

	return nil
}
