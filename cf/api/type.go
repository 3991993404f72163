package api

// Type is the element type of a physical or logical array.
type Type int

const (
	TypeNone Type = iota
	TypeInt8
	TypeUint8
	TypeInt16
	TypeUint16
	TypeInt32
	TypeUint32
	TypeInt64
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeChar // fixed-length character data, stored as bytes
	TypeString
)

var typeNames = map[Type]string{
	TypeNone:    "none",
	TypeInt8:    "byte",
	TypeUint8:   "ubyte",
	TypeInt16:   "short",
	TypeUint16:  "ushort",
	TypeInt32:   "int",
	TypeUint32:  "uint",
	TypeInt64:   "int64",
	TypeUint64:  "uint64",
	TypeFloat32: "float",
	TypeFloat64: "double",
	TypeChar:    "char",
	TypeString:  "string",
}

// String returns the CDL name of the type.
func (t Type) String() string {
	s, has := typeNames[t]
	if !has {
		return "unknown"
	}
	return s
}

// IsInteger reports whether the type is a fixed-point numeric type.
func (t Type) IsInteger() bool {
	switch t {
	case TypeInt8, TypeUint8, TypeInt16, TypeUint16,
		TypeInt32, TypeUint32, TypeInt64, TypeUint64:
		return true
	}
	return false
}

// IsFloat reports whether the type is a floating-point type.
func (t Type) IsFloat() bool {
	return t == TypeFloat32 || t == TypeFloat64
}

// IsNumeric reports whether the type supports arithmetic.
func (t Type) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

// Unsigned returns the unsigned counterpart of a signed integer type,
// with the same width.  Types without a counterpart map to themselves.
func (t Type) Unsigned() Type {
	switch t {
	case TypeInt8:
		return TypeUint8
	case TypeInt16:
		return TypeUint16
	case TypeInt32:
		return TypeUint32
	case TypeInt64:
		return TypeUint64
	}
	return t
}

// TypeFromGo maps a Go type name, as reported by the GoType method of
// go-native-netcdf variables, to a Type.
func TypeFromGo(name string) Type {
	switch name {
	case "int8":
		return TypeInt8
	case "uint8":
		return TypeUint8
	case "int16":
		return TypeInt16
	case "uint16":
		return TypeUint16
	case "int32":
		return TypeInt32
	case "uint32":
		return TypeUint32
	case "int64":
		return TypeInt64
	case "uint64":
		return TypeUint64
	case "float32":
		return TypeFloat32
	case "float64":
		return TypeFloat64
	case "string":
		return TypeString
	}
	return TypeNone
}
