package sequence

import "strings"

// Kind is the closed set of field types a sequence can carry.
type Kind uint8

const (
	KindInteger Kind = iota
	KindUnsigned
	KindBoolean
	KindEnum
	KindBitString
	KindOctetString
	KindVisibleString
	KindGeneralizedTime
	KindNull
	KindVarint
	KindVarUnsigned
	KindVarOctetString
	KindVarVisibleString
	KindVarBitString
	KindSequence
	KindSequenceOf
)

var kindNames = [...]string{
	KindInteger:          "integer",
	KindUnsigned:         "unsigned",
	KindBoolean:          "boolean",
	KindEnum:             "enum",
	KindBitString:        "bit-string",
	KindOctetString:      "octet-string",
	KindVisibleString:    "visible-string",
	KindGeneralizedTime:  "generalized-time",
	KindNull:             "null",
	KindVarint:           "varint",
	KindVarUnsigned:      "var-unsigned",
	KindVarOctetString:   "var-octet-string",
	KindVarVisibleString: "var-visible-string",
	KindVarBitString:     "var-bit-string",
	KindSequence:         "sequence",
	KindSequenceOf:       "sequence-of",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// IsPrimitive reports whether k maps to a single codec primitive.
func (k Kind) IsPrimitive() bool {
	return k < KindSequence
}

// HasMaxLength reports whether k is a length-prefixed kind whose length a
// descriptor may bound.
func (k Kind) HasMaxLength() bool {
	switch k {
	case KindBitString, KindOctetString, KindVisibleString,
		KindVarOctetString, KindVarVisibleString, KindVarBitString:
		return true
	}
	return false
}

// Kinds lists every declared kind in tag order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind resolves a kind name. Names are matched case-insensitively and
// underscores are accepted in place of dashes.
func ParseKind(name string) (Kind, bool) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for k, s := range kindNames {
		if s == n {
			return Kind(k), true
		}
	}
	return 0, false
}
