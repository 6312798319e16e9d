package orderly_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderly-app/orderly"
)

func TestIDFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    orderly.ID
		wantErr error
	}{
		{
			name:  "valid id",
			input: "020f755c3c082000",
			want:  orderly.ID(0x020f755c3c082000),
		},
		{
			name:    "zero is invalid",
			input:   "0000000000000000",
			wantErr: orderly.ErrInvalidID,
		},
		{
			name:    "wrong length",
			input:   "abc",
			wantErr: orderly.ErrInvalidIDLength,
		},
		{
			name:    "not hex",
			input:   "gggggggggggggggg",
			wantErr: orderly.ErrInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := orderly.IDFromString(tt.input)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestID_String(t *testing.T) {
	assert.Equal(t, "020f755c3c082000", orderly.ID(0x020f755c3c082000).String())
	// An invalid ID has no string form.
	assert.Equal(t, "", orderly.ID(0).String())
}

func TestID_EncodeDecode(t *testing.T) {
	id := orderly.ID(0xa5)
	enc, err := id.Encode()
	require.NoError(t, err)
	assert.Equal(t, "00000000000000a5", string(enc))

	var got orderly.ID
	require.NoError(t, got.Decode(enc))
	assert.Equal(t, id, got)
}

func TestID_JSON(t *testing.T) {
	b, err := json.Marshal(orderly.ID(0xa5))
	require.NoError(t, err)
	assert.Equal(t, `"00000000000000a5"`, string(b))

	var id orderly.ID
	require.NoError(t, json.Unmarshal([]byte(`"00000000000000a5"`), &id))
	assert.Equal(t, orderly.ID(0xa5), id)

	assert.Error(t, json.Unmarshal([]byte(`165`), &id))
}
