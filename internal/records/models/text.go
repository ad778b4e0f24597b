package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Text is a string field in a record written by other services. Those
// writers are not strict about types, so numbers and booleans stored under
// a string field are read back as their string form.
// It always encodes as a plain string.
type Text string

func (t Text) String() string { return string(t) }

// Texts converts a list of strings to Text.
func Texts(values ...string) []Text {
	if values == nil {
		return nil
	}
	out := make([]Text, len(values))
	for i, v := range values {
		out[i] = Text(v)
	}
	return out
}

func (t *Text) UnmarshalBSONValue(typ bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: typ, Value: data}
	switch typ {
	case bsontype.String:
		*t = Text(rv.StringValue())
	case bsontype.Int32:
		*t = Text(strconv.FormatInt(int64(rv.Int32()), 10))
	case bsontype.Int64:
		*t = Text(strconv.FormatInt(rv.Int64(), 10))
	case bsontype.Double:
		*t = Text(formatFloat(rv.Double()))
	case bsontype.Decimal128:
		*t = Text(rv.Decimal128().String())
	case bsontype.Boolean:
		*t = Text(strconv.FormatBool(rv.Boolean()))
	case bsontype.Null, bsontype.Undefined:
		*t = ""
	default:
		return fmt.Errorf("cannot read BSON %s as text", typ)
	}
	return nil
}

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return fmt.Errorf("empty JSON value")
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*t = Text(data)
	default:
		if n, err := strconv.ParseInt(string(data), 10, 64); err == nil {
			*t = Text(strconv.FormatInt(n, 10))
			return nil
		}
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("cannot read JSON %s as text", data)
		}
		*t = Text(formatFloat(f))
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var (
	_ bson.ValueUnmarshaler = (*Text)(nil)
	_ json.Unmarshaler      = (*Text)(nil)
)
