package utils

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
)

// OrderedMapToString formats an ordered key/value payload as "[key=value key=value]".
func OrderedMapToString(data *orderedmap.OrderedMap[string, any]) string {
	if data == nil {
		return "[]"
	}
	dataString := "["
	count := data.Len()
	for el := data.Front(); el != nil; el = el.Next() {
		dataString += fmt.Sprintf("%s=%v", el.Key, el.Value)

		count--
		if count > 0 {
			dataString += " "
		}
	}
	dataString += "]"

	return dataString
}

// KeyValsToMap builds an ordered map out of slog-style keyvals. If an odd number of values is provided, the last
// value is ignored. Non-string keys are coerced with fmt.
func KeyValsToMap(kv ...any) *orderedmap.OrderedMap[string, any] {
	m := orderedmap.NewOrderedMap[string, any]()
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kv[i])
		}
		m.Set(key, kv[i+1])
	}
	return m
}

// KeyValsToString formats slog-style keyvals into a single bracketed string.
// Example: KeyValsToString("foo", 1, "bar", true) => "[foo=1 bar=true]".
func KeyValsToString(kv ...any) string {
	return OrderedMapToString(KeyValsToMap(kv...))
}
