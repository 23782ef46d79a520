package database

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrCoercion is returned when a document field cannot be converted to the
// requested type.
var ErrCoercion = errors.New("field coercion failed")

// ID returns the string form of the document identifier.
func (d Document) ID() string {
	switch v := d[IDField].(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		if s, ok := scalarString(v); ok {
			return s
		}
		return fmt.Sprint(v)
	}
}

// lookup returns the field value, treating explicit nulls as absent.
func (d Document) lookup(key string) (interface{}, bool) {
	v, ok := d[key]
	if !ok || v == nil {
		return nil, false
	}
	if _, isNull := v.(primitive.Null); isNull {
		return nil, false
	}
	if _, isUndefined := v.(primitive.Undefined); isUndefined {
		return nil, false
	}
	return v, true
}

func coercionError(key string, value interface{}, target string) error {
	return fmt.Errorf("%w: field %q: cannot convert %T to %s", ErrCoercion, key, value, target)
}

// StringOr returns the field as a string, or def when it is absent.
func (d Document) StringOr(key, def string) (string, error) {
	v, ok := d.lookup(key)
	if !ok {
		return def, nil
	}
	s, ok := scalarString(v)
	if !ok {
		return "", coercionError(key, v, "string")
	}
	return s, nil
}

// OptionalString returns nil when the field is absent.
func (d Document) OptionalString(key string) (*string, error) {
	if _, ok := d.lookup(key); !ok {
		return nil, nil
	}
	s, err := d.StringOr(key, "")
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// IntOr returns the field as an int, or def when it is absent. Floats are
// truncated toward zero.
func (d Document) IntOr(key string, def int) (int, error) {
	v, ok := d.lookup(key)
	if !ok {
		return def, nil
	}
	n, ok := toInt(v)
	if !ok {
		return 0, coercionError(key, v, "int")
	}
	return n, nil
}

// OptionalInt returns nil when the field is absent.
func (d Document) OptionalInt(key string) (*int, error) {
	if _, ok := d.lookup(key); !ok {
		return nil, nil
	}
	n, err := d.IntOr(key, 0)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// FloatOr returns the field as a float64, or def when it is absent.
func (d Document) FloatOr(key string, def float64) (float64, error) {
	v, ok := d.lookup(key)
	if !ok {
		return def, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, coercionError(key, v, "float")
	}
	return f, nil
}

// BoolOr returns the field as a bool, or def when it is absent. Numbers are
// true when non-zero.
func (d Document) BoolOr(key string, def bool) (bool, error) {
	v, ok := d.lookup(key)
	if !ok {
		return def, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, coercionError(key, v, "bool")
		}
		return parsed, nil
	}
	if f, ok := toFloat(v); ok {
		return f != 0, nil
	}
	return false, coercionError(key, v, "bool")
}

// Strings returns the field as a string slice; absent fields yield an empty
// non-nil slice.
func (d Document) Strings(key string) ([]string, error) {
	v, ok := d.lookup(key)
	if !ok {
		return []string{}, nil
	}

	var items []interface{}
	switch arr := v.(type) {
	case []string:
		return append([]string{}, arr...), nil
	case primitive.A:
		items = arr
	case []interface{}:
		items = arr
	default:
		return nil, coercionError(key, v, "[]string")
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := scalarString(item)
		if !ok {
			return nil, fmt.Errorf("%w: field %q[%d]: cannot convert %T to string", ErrCoercion, key, i, item)
		}
		out = append(out, s)
	}
	return out, nil
}

func scalarString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case primitive.ObjectID:
		return v.Hex(), true
	case primitive.Symbol:
		return string(v), true
	case primitive.Decimal128:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	default:
		return "", false
	}
}

func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int(v), true
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		return 0, false
	}
	f, ok := toFloat(value)
	// float64(math.MaxInt64) rounds up to 2^63, which int cannot hold
	if !ok || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int(f), true
}

func toFloat(value interface{}) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case primitive.Decimal128:
		parsed, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
