package frontend

import "strings"

// KeyIdentifier is the dense integer an AbsoluteIdentifierTable assigns to
// an interned AbsoluteIdentifier. The zero value is not a valid key; use
// Valid to distinguish "no key yet" from key 0.
type KeyIdentifier struct {
	key   uint64
	valid bool
}

// NewKeyIdentifier wraps a raw key as produced by AbsoluteIdentifierTable.
func NewKeyIdentifier(key uint64) KeyIdentifier {
	return KeyIdentifier{key: key, valid: true}
}

// Key returns the raw integer key. Only meaningful when Valid is true.
func (k KeyIdentifier) Key() uint64 { return k.key }

// Valid reports whether this KeyIdentifier was actually assigned by a table.
func (k KeyIdentifier) Valid() bool { return k.valid }

// Equal compares two KeyIdentifiers, including validity.
func (k KeyIdentifier) Equal(other KeyIdentifier) bool {
	return k.valid == other.valid && k.key == other.key
}

func (k KeyIdentifier) Hash() uint64 { return k.key }

// RelativeIdentifier is a dotted name with no leading-dot marker, resolved
// against the enclosing module's scope by the (out of scope) resolver. It is
// always non-empty.
type RelativeIdentifier struct {
	Segments []string
}

// NewRelativeIdentifier builds a RelativeIdentifier from one or more
// segments. It panics if called with zero segments, since an empty relative
// identifier has no meaning (unlike the empty absolute identifier).
func NewRelativeIdentifier(segments ...string) RelativeIdentifier {
	if len(segments) == 0 {
		panic("frontend: RelativeIdentifier requires at least one segment")
	}
	cp := make([]string, len(segments))
	copy(cp, segments)
	return RelativeIdentifier{Segments: cp}
}

func (r RelativeIdentifier) String() string {
	return joinSegments(r.Segments)
}

// AbsoluteIdentifier is a dotted name anchored at the root module, marked in
// source by a leading '.'. The zero-segment AbsoluteIdentifier denotes the
// root module itself and is legal as an import/module target.
//
// Equality and Hash are structural over Segments and independent of any
// interned key, so two value copies compare equal even if only one has been
// given a key by a table.
type AbsoluteIdentifier struct {
	Segments []string

	key      KeyIdentifier
	hasKey   bool
}

// NewAbsoluteIdentifier builds an AbsoluteIdentifier from zero or more
// segments. Zero segments is the root module.
func NewAbsoluteIdentifier(segments ...string) *AbsoluteIdentifier {
	cp := make([]string, len(segments))
	copy(cp, segments)
	return &AbsoluteIdentifier{Segments: cp}
}

// Equal reports structural, order-sensitive equality over segments.
func (a *AbsoluteIdentifier) Equal(other *AbsoluteIdentifier) bool {
	if a == other {
		return true
	}
	if a == nil || other == nil {
		return false
	}
	if len(a.Segments) != len(other.Segments) {
		return false
	}
	for i, s := range a.Segments {
		if s != other.Segments[i] {
			return false
		}
	}
	return true
}

// Hash computes an FNV-1a style hash over the segment sequence, with a
// length prefix per segment so that e.g. ["ab", "c"] and ["a", "bc"] don't
// collide on concatenation.
func (a *AbsoluteIdentifier) Hash() uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	mix := func(b byte) {
		h ^= uint64(b)
		h *= prime64
	}
	for _, seg := range a.Segments {
		n := len(seg)
		mix(byte(n))
		mix(byte(n >> 8))
		for i := 0; i < n; i++ {
			mix(seg[i])
		}
	}
	return h
}

// KeyIdent returns the interned key and whether one has been assigned.
func (a *AbsoluteIdentifier) KeyIdent() (KeyIdentifier, bool) {
	return a.key, a.hasKey
}

// SetKeyIdent stamps an interned key onto this identifier. Called only by
// AbsoluteIdentifierTable.
func (a *AbsoluteIdentifier) SetKeyIdent(key KeyIdentifier) {
	a.key = key
	a.hasKey = true
}

// UnsetKeyIdent clears any previously stamped key.
func (a *AbsoluteIdentifier) UnsetKeyIdent() {
	a.key = KeyIdentifier{}
	a.hasKey = false
}

func (a *AbsoluteIdentifier) String() string {
	return "." + joinSegments(a.Segments)
}

func joinSegments(segments []string) string {
	return strings.Join(segments, ".")
}

// Identifier is a tagged union of RelativeIdentifier and AbsoluteIdentifier:
// exactly one of Rel/Abs is set. It's what the parser stores on nodes where
// either form is grammatically legal (qualified paths in imports, modules,
// variable references).
type Identifier struct {
	Rel *RelativeIdentifier
	Abs *AbsoluteIdentifier
}

// RelativeIdent wraps a RelativeIdentifier as an Identifier.
func RelativeIdent(r RelativeIdentifier) Identifier {
	cp := r
	return Identifier{Rel: &cp}
}

// AbsoluteIdent wraps an AbsoluteIdentifier as an Identifier.
func AbsoluteIdent(a *AbsoluteIdentifier) Identifier {
	return Identifier{Abs: a}
}

// IsAbsolute reports whether this Identifier is the absolute variant.
func (id Identifier) IsAbsolute() bool { return id.Abs != nil }

// Segments returns the dotted name segments regardless of variant.
func (id Identifier) Segments() []string {
	if id.Abs != nil {
		return id.Abs.Segments
	}
	if id.Rel != nil {
		return id.Rel.Segments
	}
	return nil
}

func (id Identifier) String() string {
	if id.Abs != nil {
		return id.Abs.String()
	}
	if id.Rel != nil {
		return id.Rel.String()
	}
	return ""
}

// AbsoluteIdentifierTable interns AbsoluteIdentifiers to dense uint64 keys
// assigned in strictly increasing insertion order starting at 0. It owns the
// identifiers inserted into it; external code keeps only a KeyIdentifier.
//
// Not safe for concurrent use: a single Tree and its table are mutated
// from one goroutine at a time. Independent tables on independent
// goroutines are fine.
type AbsoluteIdentifierTable struct {
	byKey   map[uint64]*AbsoluteIdentifier
	buckets map[uint64][]*AbsoluteIdentifier
	nextKey uint64
}

// NewAbsoluteIdentifierTable returns an empty table.
func NewAbsoluteIdentifierTable() *AbsoluteIdentifierTable {
	return &AbsoluteIdentifierTable{
		byKey:   make(map[uint64]*AbsoluteIdentifier),
		buckets: make(map[uint64][]*AbsoluteIdentifier),
	}
}

// Ident looks up an identifier by its interned key.
func (t *AbsoluteIdentifierTable) Ident(key KeyIdentifier) (*AbsoluteIdentifier, bool) {
	if !key.valid {
		return nil, false
	}
	ident, ok := t.byKey[key.key]
	return ident, ok
}

// IdentByValue looks up the table's owned copy of an identifier structurally
// equal to ident (also honoring a caller-supplied key when present: if
// ident already carries a key, that key is checked first).
func (t *AbsoluteIdentifierTable) IdentByValue(ident *AbsoluteIdentifier) (*AbsoluteIdentifier, bool) {
	if ident == nil {
		return nil, false
	}
	if key, ok := ident.KeyIdent(); ok {
		if owned, found := t.Ident(key); found {
			return owned, true
		}
	}
	for _, candidate := range t.buckets[ident.Hash()] {
		if candidate.Equal(ident) {
			return candidate, true
		}
	}
	return nil, false
}

// AddIdent interns ident, taking ownership of it and stamping its key. It
// fails if a structurally equal identifier is already present.
func (t *AbsoluteIdentifierTable) AddIdent(ident *AbsoluteIdentifier) (KeyIdentifier, error) {
	if _, found := t.IdentByValue(ident); found {
		return KeyIdentifier{}, &DuplicateIdentifierError{Ident: ident}
	}
	return t.insert(ident), nil
}

// AddIdentOrGetKey interns ident if absent, or returns the key of the
// already-present structurally equal identifier. isAdded reports which
// happened. When isAdded is false, ident is not retained by the table.
func (t *AbsoluteIdentifierTable) AddIdentOrGetKey(ident *AbsoluteIdentifier) (key KeyIdentifier, isAdded bool) {
	if owned, found := t.IdentByValue(ident); found {
		key, _ = owned.KeyIdent()
		ident.SetKeyIdent(key)
		return key, false
	}
	return t.insert(ident), true
}

func (t *AbsoluteIdentifierTable) insert(ident *AbsoluteIdentifier) KeyIdentifier {
	key := NewKeyIdentifier(t.nextKey)
	t.nextKey++
	ident.SetKeyIdent(key)
	t.byKey[key.key] = ident
	h := ident.Hash()
	t.buckets[h] = append(t.buckets[h], ident)
	return key
}

// Len returns the number of interned identifiers.
func (t *AbsoluteIdentifierTable) Len() int { return len(t.byKey) }

// DuplicateIdentifierError is returned by AddIdent when the identifier is
// already interned.
type DuplicateIdentifierError struct {
	Ident *AbsoluteIdentifier
}

func (e *DuplicateIdentifierError) Error() string {
	return "identifier already present in table: " + e.Ident.String()
}
