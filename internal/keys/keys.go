// Package keys defines the key codes shared by the capture hook and the
// hotkey state machine. Codes follow the Linux input-event numbering so the
// evdev backend can pass them through unchanged; other backends translate
// into this space.
package keys

import (
	"fmt"
	"sort"
	"strings"
)

// Code identifies a physical key. Left and right variants of modifier keys
// are distinct codes at capture time; Name collapses them for display only.
type Code uint16

const (
	CodeEscape Code = 1

	CodeTab   Code = 15
	CodeEnter Code = 28
	CodeSpace Code = 57

	CodeLeftCtrl   Code = 29
	CodeLeftShift  Code = 42
	CodeRightShift Code = 54
	CodeLeftAlt    Code = 56
	CodeRightCtrl  Code = 97
	CodeRightAlt   Code = 100
	CodeLeftMeta   Code = 125
	CodeRightMeta  Code = 126
)

// Letter codes in Linux input-event order.
const (
	CodeQ Code = 16
	CodeW Code = 17
	CodeE Code = 18
	CodeR Code = 19
	CodeT Code = 20
	CodeY Code = 21
	CodeU Code = 22
	CodeI Code = 23
	CodeO Code = 24
	CodeP Code = 25
	CodeA Code = 30
	CodeS Code = 31
	CodeD Code = 32
	CodeF Code = 33
	CodeG Code = 34
	CodeH Code = 35
	CodeJ Code = 36
	CodeK Code = 37
	CodeL Code = 38
	CodeZ Code = 44
	CodeX Code = 45
	CodeC Code = 46
	CodeV Code = 47
	CodeB Code = 48
	CodeN Code = 49
	CodeM Code = 50
)

// Function keys. F11/F12 are not contiguous with F1..F10 in the input-event
// numbering.
const (
	CodeF1  Code = 59
	CodeF2  Code = 60
	CodeF3  Code = 61
	CodeF4  Code = 62
	CodeF5  Code = 63
	CodeF6  Code = 64
	CodeF7  Code = 65
	CodeF8  Code = 66
	CodeF9  Code = 67
	CodeF10 Code = 68
	CodeF11 Code = 87
	CodeF12 Code = 88
)

var codeNames = map[Code]string{
	CodeEscape:     "Esc",
	CodeTab:        "Tab",
	CodeEnter:      "Enter",
	CodeSpace:      "Space",
	CodeLeftCtrl:   "Ctrl",
	CodeRightCtrl:  "Ctrl",
	CodeLeftShift:  "Shift",
	CodeRightShift: "Shift",
	CodeLeftAlt:    "Alt",
	CodeRightAlt:   "Alt",
	CodeLeftMeta:   "Win",
	CodeRightMeta:  "Win",
	CodeQ:          "Q",
	CodeW:          "W",
	CodeE:          "E",
	CodeR:          "R",
	CodeT:          "T",
	CodeY:          "Y",
	CodeU:          "U",
	CodeI:          "I",
	CodeO:          "O",
	CodeP:          "P",
	CodeA:          "A",
	CodeS:          "S",
	CodeD:          "D",
	CodeF:          "F",
	CodeG:          "G",
	CodeH:          "H",
	CodeJ:          "J",
	CodeK:          "K",
	CodeL:          "L",
	CodeZ:          "Z",
	CodeX:          "X",
	CodeC:          "C",
	CodeV:          "V",
	CodeB:          "B",
	CodeN:          "N",
	CodeM:          "M",
	CodeF1:         "F1",
	CodeF2:         "F2",
	CodeF3:         "F3",
	CodeF4:         "F4",
	CodeF5:         "F5",
	CodeF6:         "F6",
	CodeF7:         "F7",
	CodeF8:         "F8",
	CodeF9:         "F9",
	CodeF10:        "F10",
	CodeF11:        "F11",
	CodeF12:        "F12",
}

// parseNames accepts the lower-cased spellings used in config files. The
// plain modifier names resolve to the left-hand variant; the l/r prefixed
// spellings select a side explicitly.
var parseNames = map[string]Code{
	"esc":    CodeEscape,
	"escape": CodeEscape,
	"tab":    CodeTab,
	"enter":  CodeEnter,
	"return": CodeEnter,
	"space":  CodeSpace,
	"ctrl":   CodeLeftCtrl,
	"lctrl":  CodeLeftCtrl,
	"rctrl":  CodeRightCtrl,
	"shift":  CodeLeftShift,
	"lshift": CodeLeftShift,
	"rshift": CodeRightShift,
	"alt":    CodeLeftAlt,
	"lalt":   CodeLeftAlt,
	"ralt":   CodeRightAlt,
	"win":    CodeLeftMeta,
	"lwin":   CodeLeftMeta,
	"rwin":   CodeRightMeta,
	"meta":   CodeLeftMeta,
}

func init() {
	for code, name := range codeNames {
		lower := strings.ToLower(name)
		if _, taken := parseNames[lower]; !taken {
			parseNames[lower] = code
		}
	}
}

// Name returns the display name for a code. Left and right modifier
// variants map to the same logical name; matching still uses the literal
// code.
func (c Code) Name() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", uint16(c))
}

// IsModifier reports whether the code is a modifier key variant.
func (c Code) IsModifier() bool {
	switch c {
	case CodeLeftCtrl, CodeRightCtrl, CodeLeftShift, CodeRightShift,
		CodeLeftAlt, CodeRightAlt, CodeLeftMeta, CodeRightMeta:
		return true
	}
	return false
}

// Combination is the set of codes that must be held simultaneously to
// trigger activation. Membership matters; order does not.
type Combination []Code

// ParseCombination parses a combination such as "ctrl+shift+d". Spelling is
// case-insensitive and surrounding whitespace per part is ignored.
func ParseCombination(s string) (Combination, error) {
	parts := strings.Split(s, "+")
	combo := make(Combination, 0, len(parts))
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			return nil, fmt.Errorf("empty key in combination %q", s)
		}
		code, ok := parseNames[part]
		if !ok {
			return nil, fmt.Errorf("unknown key %q in combination %q", part, s)
		}
		if code == CodeEscape {
			return nil, fmt.Errorf("escape is reserved for leaving drawing mode and cannot be part of a combination")
		}
		combo = append(combo, code)
	}
	if len(combo) == 0 {
		return nil, fmt.Errorf("empty combination")
	}
	return combo.normalize(), nil
}

// normalize drops duplicates and sorts modifiers ahead of regular keys so
// String output is stable.
func (c Combination) normalize() Combination {
	seen := make(map[Code]bool, len(c))
	out := make(Combination, 0, len(c))
	for _, code := range c {
		if seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	sort.SliceStable(out, func(i, j int) bool {
		mi, mj := out[i].IsModifier(), out[j].IsModifier()
		if mi != mj {
			return mi
		}
		return out[i] < out[j]
	})
	return out
}

// Contains reports whether the combination includes the code.
func (c Combination) Contains(code Code) bool {
	for _, have := range c {
		if have == code {
			return true
		}
	}
	return false
}

// String renders the combination with logical names, e.g. "Ctrl+Shift+D".
func (c Combination) String() string {
	names := make([]string, len(c))
	for i, code := range c {
		names[i] = code.Name()
	}
	return strings.Join(names, "+")
}

// Names lists every known key spelling accepted by ParseCombination,
// sorted, for the list subcommand.
func Names() []string {
	out := make([]string, 0, len(parseNames))
	for name := range parseNames {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
