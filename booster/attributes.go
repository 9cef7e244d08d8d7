package booster

import (
	"strconv"

	"github.com/goml-dev/goboost/pkg/errors"
)

// AttrNumIter is the reserved attribute key written at training completion.
// Its value is the 0-based index of the final completed boosting round. It
// is never touched by other attribute operations; only an explicit delete
// removes it.
const AttrNumIter = "niter"

// attrStore is the per-handle attribute mapping. Keys are unique, values are
// opaque strings stored verbatim. Zero value is ready to use.
type attrStore struct {
	kv map[string]string
}

func (s *attrStore) get(key string) (string, bool) {
	v, ok := s.kv[key]
	return v, ok
}

func (s *attrStore) set(key, value string) {
	if s.kv == nil {
		s.kv = make(map[string]string)
	}
	s.kv[key] = value
}

// del removes key. Deleting a missing key is a no-op.
func (s *attrStore) del(key string) {
	delete(s.kv, key)
}

// snapshot returns a copy of the mapping, nil when the store is empty.
func (s *attrStore) snapshot() map[string]string {
	if len(s.kv) == 0 {
		return nil
	}
	out := make(map[string]string, len(s.kv))
	for k, v := range s.kv {
		out[k] = v
	}
	return out
}

func (s *attrStore) restore(kv map[string]string) {
	s.kv = nil
	for k, v := range kv {
		s.set(k, v)
	}
}

// Attr returns the attribute stored under key. The second return is false
// when the key is absent; absence is not an error.
func (b *Booster) Attr(key string) (string, bool, error) {
	if err := b.check("Attr"); err != nil {
		return "", false, err
	}
	if key == "" {
		return "", false, errors.NewKeyError("Attr", key)
	}
	v, ok := b.attrs.get(key)
	return v, ok, nil
}

// SetAttr stores value under key. A nil value deletes the key; deleting a
// key that does not exist is a no-op. Values round-trip byte-identical
// through Attr and through a Save/Load cycle.
func (b *Booster) SetAttr(key string, value *string) error {
	if err := b.check("SetAttr"); err != nil {
		return err
	}
	if key == "" {
		return errors.NewKeyError("SetAttr", key)
	}
	if value == nil {
		b.attrs.del(key)
		return nil
	}
	b.attrs.set(key, *value)
	return nil
}

// Attrs returns a copy of every attribute. When the store holds zero
// entries it returns (nil, false) rather than an empty map.
func (b *Booster) Attrs() (map[string]string, bool, error) {
	if err := b.check("Attrs"); err != nil {
		return nil, false, err
	}
	kv := b.attrs.snapshot()
	if kv == nil {
		return nil, false, nil
	}
	return kv, true, nil
}

// SetAttrs applies every entry of kv: nil values delete the corresponding
// keys, non-nil values upsert. Keys are validated before any mutation so a
// bad key leaves the store untouched.
func (b *Booster) SetAttrs(kv map[string]*string) error {
	if err := b.check("SetAttrs"); err != nil {
		return err
	}
	for k := range kv {
		if k == "" {
			return errors.NewKeyError("SetAttrs", k)
		}
	}
	for k, v := range kv {
		if v == nil {
			b.attrs.del(k)
		} else {
			b.attrs.set(k, *v)
		}
	}
	return nil
}

// FormatFloat renders x with 17 significant digits, enough that ParseFloat
// recovers every finite double exactly.
func FormatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', 17, 64)
}

// ParseFloat parses a string produced by FormatFloat (or any decimal float
// literal).
func ParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
