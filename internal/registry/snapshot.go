package registry

import (
	"github.com/vmihailenco/msgpack/v5"

	"kimchi/internal/types"
)

// wireShape is the msgpack wire form of types.Shape: a flat struct with
// every variant's fields present (zero-valued when irrelevant), since
// msgpack has no native notion of the Shape's tagged-variant cases.
type wireShape struct {
	Kind    uint8                `msgpack:"kind"`
	Elem    *wireShape           `msgpack:"elem,omitempty"`
	Props   map[string]*wireShape `msgpack:"props,omitempty"`
	Params  []*wireShape          `msgpack:"params,omitempty"`
	Return  *wireShape            `msgpack:"return,omitempty"`
	Name    string                `msgpack:"name,omitempty"`
	Members map[string]int64      `msgpack:"members,omitempty"`
}

func toWire(s *types.Shape) *wireShape {
	if s == nil {
		return nil
	}
	w := &wireShape{Kind: uint8(s.Kind), Name: s.Name}
	w.Elem = toWire(s.Elem)
	w.Return = toWire(s.Return)
	if s.Props != nil {
		w.Props = make(map[string]*wireShape, len(s.Props))
		for k, v := range s.Props {
			w.Props[k] = toWire(v)
		}
	}
	if s.Params != nil {
		w.Params = make([]*wireShape, len(s.Params))
		for i, v := range s.Params {
			w.Params[i] = toWire(v)
		}
	}
	if s.Members != nil {
		w.Members = make(map[string]int64, len(s.Members))
		for k, v := range s.Members {
			w.Members[k] = v
		}
	}
	return w
}

func fromWire(w *wireShape) *types.Shape {
	if w == nil {
		return nil
	}
	s := &types.Shape{Kind: types.Kind(w.Kind), Name: w.Name}
	s.Elem = fromWire(w.Elem)
	s.Return = fromWire(w.Return)
	if w.Props != nil {
		s.Props = make(map[string]*types.Shape, len(w.Props))
		for k, v := range w.Props {
			s.Props[k] = fromWire(v)
		}
	}
	if w.Params != nil {
		s.Params = make([]*types.Shape, len(w.Params))
		for i, v := range w.Params {
			s.Params[i] = fromWire(v)
		}
	}
	if w.Members != nil {
		s.Members = make(map[string]int64, len(w.Members))
		for k, v := range w.Members {
			s.Members[k] = v
		}
	}
	return s
}

// Snapshot serializes the registry's current contents to msgpack, for a
// batch-compile driver to persist across process runs or hand off to a
// worker pool.
func (r *Registry) Snapshot() ([]byte, error) {
	r.mu.RLock()
	wire := make(map[string]*wireShape, len(r.exports))
	for path, shape := range r.exports {
		wire[path] = toWire(shape)
	}
	r.mu.RUnlock()
	return msgpack.Marshal(wire)
}

// Restore replaces the registry's contents with a previously captured
// Snapshot. Existing entries for paths not present in data are kept;
// callers that want a clean slate should Clear first.
func (r *Registry) Restore(data []byte) error {
	var wire map[string]*wireShape
	if err := msgpack.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.mu.Lock()
	for path, w := range wire {
		r.exports[path] = fromWire(w)
	}
	r.mu.Unlock()
	return nil
}
