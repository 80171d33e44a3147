package model

import "fmt"

// Kind is the declared shape of an attribute.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindInteger
	KindNumber
	KindBoolean
	KindTimestamp
	KindDate
	KindEnum
	KindModel
	KindList
	KindMap
)

var namesKind = []string{
	KindAny:       "any",
	KindString:    "string",
	KindInteger:   "integer",
	KindNumber:    "number",
	KindBoolean:   "boolean",
	KindTimestamp: "timestamp",
	KindDate:      "date",
	KindEnum:      "enum",
	KindModel:     "model",
	KindList:      "list",
	KindMap:       "map",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(namesKind) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return namesKind[k]
}

// Type is a declared attribute type. Elem is set for lists and maps, Model for
// nested model types and Enum for enum-constrained strings.
type Type struct {
	Kind  Kind
	Elem  *Type
	Model string
	Enum  *EnumSet
}

var (
	AnyType       = Type{Kind: KindAny}
	StringType    = Type{Kind: KindString}
	IntegerType   = Type{Kind: KindInteger}
	NumberType    = Type{Kind: KindNumber}
	BooleanType   = Type{Kind: KindBoolean}
	TimestampType = Type{Kind: KindTimestamp}
	DateType      = Type{Kind: KindDate}
)

// ListOf declares list<elem>.
func ListOf(elem Type) Type {
	return Type{Kind: KindList, Elem: &elem}
}

// MapOf declares map<string, elem>.
func MapOf(elem Type) Type {
	return Type{Kind: KindMap, Elem: &elem}
}

// ModelType declares a nested model attribute by registered type name.
func ModelType(name string) Type {
	return Type{Kind: KindModel, Model: name}
}

// EnumType declares a string attribute constrained to set.
func EnumType(set *EnumSet) Type {
	return Type{Kind: KindEnum, Enum: set}
}

func (t Type) String() string {
	switch t.Kind {
	case KindList:
		return "list<" + t.Elem.String() + ">"
	case KindMap:
		return "map<string," + t.Elem.String() + ">"
	case KindModel:
		return t.Model
	case KindEnum:
		if t.Enum != nil {
			return "enum<" + t.Enum.Name() + ">"
		}
	}
	return t.Kind.String()
}
