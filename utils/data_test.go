package utils

import (
	"testing"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/stretchr/testify/require"
)

func TestOrderedMapToString(t *testing.T) {
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("branch", "hang")
	data.Set("jumpHeight", 1.5)
	data.Set("braced", true)
	require.Equal(t, "[branch=hang jumpHeight=1.5 braced=true]", OrderedMapToString(data))
	require.Equal(t, "[]", OrderedMapToString(nil))
}

func TestKeyValsToString(t *testing.T) {
	require.Equal(t, "[foo=1 bar=true]", KeyValsToString("foo", 1, "bar", true))
	require.Equal(t, "[foo=1]", KeyValsToString("foo", 1, "dangling"))
	require.Equal(t, "[]", KeyValsToString())
}
