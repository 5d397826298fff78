// Package heapdump implements parsing of JSON-lines object space dumps.
// Each line describes one allocated object (or one GC root category) with
// its address, self size, type tag and outgoing references.
package heapdump

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/heap-analysis/pkg/model"
)

// maxLabelChars is the number of leading characters of a string value kept
// in its display label.
const maxLabelChars = 40

// backslashGlyph replaces backslashes in string labels so the exported
// graph text stays well-formed.
const backslashGlyph = '﹨'

// Record mirrors one raw dump line. Fields are heterogeneous: which ones
// are present depends on the object's type tag.
type Record struct {
	Address    string   `json:"address"`
	Memsize    uint64   `json:"memsize"`
	References []string `json:"references"`
	Type       string   `json:"type"`
	Class      string   `json:"class"`
	Root       string   `json:"root"`
	Name       string   `json:"name"`
	Length     *uint64  `json:"length"`
	Size       *uint64  `json:"size"`
	Value      *string  `json:"value"`
}

// ParsedRecord is a validated record ready for graph construction. The
// graph builder can rely on every field being structurally sound.
type ParsedRecord struct {
	// Object is the node payload. Root records produce an object with
	// address 0.
	Object *model.MemoryObject

	// References holds the resolved referenced addresses, in dump order.
	References []uint64

	// Module is the object's declared class/module address; HasModule
	// reports whether one was declared.
	Module    uint64
	HasModule bool

	// Name is the declared name, present on class-like records.
	Name string
}

// IsRoot reports whether the record came from a GC root line.
func (p *ParsedRecord) IsRoot() bool {
	return p.Object.IsRoot()
}

// Parse validates the record and converts it into a ParsedRecord.
//
// Returns (nil, nil) for records that are silently dropped: non-root
// records without an address, array records without a length, and hash
// records without a size. A malformed address is an error; dumps with
// corrupt addresses cannot be analyzed meaningfully.
func (r *Record) Parse() (*ParsedRecord, error) {
	var addr uint64
	if r.Address != "" {
		a, err := ParseAddress(r.Address)
		if err != nil {
			return nil, err
		}
		addr = a
	}

	if addr == model.RootAddress && r.Type != model.RootKind {
		return nil, nil
	}

	obj := &model.MemoryObject{
		Address: addr,
		Bytes:   r.Memsize,
		Kind:    r.Type,
	}

	label, ok := r.deriveLabel()
	if !ok {
		return nil, nil
	}
	obj.Label = label

	refs := make([]uint64, 0, len(r.References))
	for _, ref := range r.References {
		a, err := ParseAddress(ref)
		if err != nil {
			return nil, err
		}
		refs = append(refs, a)
	}

	parsed := &ParsedRecord{
		Object:     obj,
		References: refs,
		Name:       r.Name,
	}

	if r.Class != "" {
		module, err := ParseAddress(r.Class)
		if err != nil {
			return nil, err
		}
		parsed.Module = module
		parsed.HasModule = true
	}

	return parsed, nil
}

// deriveLabel computes the kind-specific display label. The second return
// is false when a required field is missing and the whole record must be
// dropped.
func (r *Record) deriveLabel() (string, bool) {
	switch r.Type {
	case "CLASS", "MODULE", "ICLASS":
		if r.Name == "" {
			return "", true
		}
		return fmt.Sprintf("%s[%s]", r.Name, r.Type), true
	case "ARRAY":
		if r.Length == nil {
			return "", false
		}
		return fmt.Sprintf("Array[len=%d]", *r.Length), true
	case "HASH":
		if r.Size == nil {
			return "", false
		}
		return fmt.Sprintf("Hash[size=%d]", *r.Size), true
	case "STRING":
		if r.Value == nil {
			return "", true
		}
		return truncateValue(*r.Value), true
	default:
		return "", true
	}
}

// ParseAddress converts a "0x"-prefixed hex address string to an integer.
func ParseAddress(s string) (uint64, error) {
	if !strings.HasPrefix(s, "0x") || len(s) == 2 {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	addr, err := strconv.ParseUint(s[2:], 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return addr, nil
}

// truncateValue renders the first maxLabelChars characters of a string
// value, dropping control characters and replacing backslashes with a
// placeholder glyph.
func truncateValue(v string) string {
	var b strings.Builder
	taken := 0
	for _, c := range v {
		if taken == maxLabelChars {
			break
		}
		taken++
		switch {
		case unicode.IsControl(c):
			// skip
		case c == '\\':
			b.WriteRune(backslashGlyph)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
