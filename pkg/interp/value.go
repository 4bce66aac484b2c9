package interp

import (
	"fmt"
	"strconv"
)

// Value is one runtime value: int64, float64, string, bool or Char.
type Value interface{}

// Char is a character value. Kept distinct from int64 so stream output
// prints the character, not its code.
type Char rune

// zeroOf returns the value-initialized default for a declared type.
func zeroOf(cppType string) Value {
	switch cppType {
	case "float", "double":
		return float64(0)
	case "char":
		return Char(0)
	case "string":
		return ""
	case "bool":
		return false
	default:
		return int64(0)
	}
}

// convert coerces v to the declared type of its destination, mirroring the
// implicit conversions the subset needs (int/float/char/bool).
func convert(cppType string, v Value) (Value, error) {
	switch cppType {
	case "int":
		switch x := v.(type) {
		case int64:
			return x, nil
		case float64:
			return int64(x), nil
		case Char:
			return int64(x), nil
		case bool:
			if x {
				return int64(1), nil
			}
			return int64(0), nil
		}
	case "float", "double":
		switch x := v.(type) {
		case float64:
			return x, nil
		case int64:
			return float64(x), nil
		case Char:
			return float64(x), nil
		case bool:
			if x {
				return float64(1), nil
			}
			return float64(0), nil
		}
	case "char":
		switch x := v.(type) {
		case Char:
			return x, nil
		case int64:
			return Char(x), nil
		}
	case "bool":
		return truthy(v), nil
	case "string":
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("cannot convert %s to %s", typeName(v), cppType)
}

// truthy applies C++ condition conversion.
func truthy(v Value) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int64:
		return x != 0
	case float64:
		return x != 0
	case Char:
		return x != 0
	case string:
		return x != ""
	}
	return false
}

func typeName(v Value) string {
	switch v.(type) {
	case int64:
		return "int"
	case float64:
		return "double"
	case Char:
		return "char"
	case string:
		return "string"
	case bool:
		return "bool"
	}
	return fmt.Sprintf("%T", v)
}

// formatValue renders a value the way the C++ stream operators would.
// Bools print as 1/0, chars as the character itself.
func formatValue(v Value) string {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case Char:
		return string(rune(x))
	case string:
		return x
	case bool:
		if x {
			return "1"
		}
		return "0"
	}
	return fmt.Sprint(v)
}
