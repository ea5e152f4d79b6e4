package objectid

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "lowercase",
			input: validHex,
			want:  validHex,
		},
		{
			name:  "uppercase",
			input: "507F191E810C19729DE860EA",
			want:  validHex, // Normalized to lowercase
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "too short",
			input:   "507f191e810c19729de860",
			wantErr: true,
		},
		{
			name:    "invalid characters",
			input:   "507f191e810c19729de860ez",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseHex(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.Hex())
			assert.Equal(t, tt.want, id.String())
			assert.Equal(t, tt.want, id.CanonicalText())
		})
	}

	t.Run("invalid hex wraps ErrInvalidHex", func(t *testing.T) {
		_, err := ParseHex("zz")
		assert.True(t, errors.Is(err, ErrInvalidHex))
	})
}

func TestMustParseHex(t *testing.T) {
	t.Run("parses valid ObjectID", func(t *testing.T) {
		id := MustParseHex(validHex)
		assert.Equal(t, validHex, id.Hex())
	})

	t.Run("panics on invalid ObjectID", func(t *testing.T) {
		assert.Panics(t, func() {
			MustParseHex("not-an-objectid")
		})
	})
}

func TestObjectID_IsZeroAndEqual(t *testing.T) {
	var zero ObjectID
	assert.True(t, zero.IsZero())
	assert.True(t, MustParseHex("000000000000000000000000").IsZero())

	a := MustParseHex(validHex)
	b := MustParseHex("507F191E810C19729DE860EA")
	assert.False(t, a.IsZero())
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(zero))
}

func TestObjectID_JSON(t *testing.T) {
	type doc struct {
		ID     ObjectID `json:"id"`
		Parent ObjectID `json:"parent"`
	}

	t.Run("marshal", func(t *testing.T) {
		data, err := json.Marshal(doc{ID: MustParseHex(validHex)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"507f191e810c19729de860ea","parent":null}`, string(data))
	})

	t.Run("unmarshal", func(t *testing.T) {
		var d doc
		err := json.Unmarshal([]byte(`{"id":"507F191E810C19729DE860EA","parent":null}`), &d)
		require.NoError(t, err)
		assert.Equal(t, validHex, d.ID.Hex())
		assert.True(t, d.Parent.IsZero())
	})

	t.Run("unmarshal empty string", func(t *testing.T) {
		var id ObjectID
		require.NoError(t, json.Unmarshal([]byte(`""`), &id))
		assert.True(t, id.IsZero())
	})

	t.Run("unmarshal invalid", func(t *testing.T) {
		var id ObjectID
		assert.Error(t, json.Unmarshal([]byte(`"507f191e810c19729de860"`), &id))
		assert.Error(t, json.Unmarshal([]byte(`12`), &id))
	})
}

func TestObjectID_Scan(t *testing.T) {
	want := MustParseHex(validHex)

	tests := []struct {
		name     string
		input    interface{}
		want     ObjectID
		wantErr  bool
		wantZero bool
	}{
		{name: "nil", input: nil, wantZero: true},
		{name: "string", input: validHex, want: want},
		{name: "empty string", input: "", wantZero: true},
		{name: "text bytes", input: []byte(validHex), want: want},
		{name: "binary bytes", input: want[:], want: want},
		{name: "empty bytes", input: []byte{}, wantZero: true},
		{name: "invalid string", input: "xyz", wantErr: true},
		{name: "invalid bytes", input: []byte("xyz"), wantErr: true},
		{name: "unsupported type", input: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ObjectID
			err := id.Scan(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantZero {
				assert.True(t, id.IsZero())
				return
			}
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestObjectID_Value(t *testing.T) {
	v, err := NilObjectID.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = MustParseHex(validHex).Value()
	require.NoError(t, err)
	assert.Equal(t, validHex, v)
}
