package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSONB(t *testing.T) {
	t.Parallel()

	t.Run("nil slice stored as empty array", func(t *testing.T) {
		t.Parallel()

		data, err := marshalJSONB[string](nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("values round-trip", func(t *testing.T) {
		t.Parallel()

		data, err := marshalJSONB([]string{"a", "b"})
		require.NoError(t, err)

		out, err := unmarshalJSONB[string](data)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, out)
	})
}

func TestUnmarshalJSONB(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields empty slice", func(t *testing.T) {
		t.Parallel()

		out, err := unmarshalJSONB[string](nil)
		require.NoError(t, err)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("json null yields empty slice", func(t *testing.T) {
		t.Parallel()

		out, err := unmarshalJSONB[string]([]byte("null"))
		require.NoError(t, err)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("malformed input fails", func(t *testing.T) {
		t.Parallel()

		_, err := unmarshalJSONB[string]([]byte("{not json"))
		assert.Error(t, err)
	})
}
