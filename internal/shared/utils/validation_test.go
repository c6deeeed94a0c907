package utils

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nounsos/desktop/backend/internal/shared/types"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		required bool
		wantErr  bool
	}{
		{"valid window id", "win_01HZX3Y5J8K9M2N4P6Q7R8S9T0", true, false},
		{"app id", "auction", true, false},
		{"empty required", "", true, true},
		{"empty optional", "", false, false},
		{"path traversal", "../etc", true, true},
		{"too long", strings.Repeat("a", MaxIDLength+1), true, true},
		{"null byte", "win\x00", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id, "id", tt.required)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("", "name"))
	assert.NoError(t, ValidateName("Trading desk", "name"))
	assert.Error(t, ValidateName(strings.Repeat("x", MaxNameLength+1), "name"))
}

func TestValidateMetadata(t *testing.T) {
	assert.NoError(t, ValidateMetadata(nil))
	assert.NoError(t, ValidateMetadata(map[string]interface{}{"noun": 42, "tags": []interface{}{"a"}}))

	big := map[string]interface{}{"blob": strings.Repeat("x", MaxMetadataSize)}
	assert.Error(t, ValidateMetadata(big))

	deep := map[string]interface{}{}
	cur := deep
	for i := 0; i < MaxMetadataDepth+2; i++ {
		next := map[string]interface{}{}
		cur["n"] = next
		cur = next
	}
	assert.Error(t, ValidateMetadata(deep))
}

func TestValidateSize(t *testing.T) {
	assert.NoError(t, ValidateSize(types.Size{Width: types.Px(640), Height: types.Rem(30)}))
	assert.Error(t, ValidateSize(types.Size{Width: types.Px(-1), Height: types.Px(10)}))
	assert.Error(t, ValidateSize(types.Size{Width: types.Px(10), Height: types.Px(math.Inf(1))}))
	assert.Error(t, ValidateSize(types.Size{Width: types.Dimension{Value: 10, Unit: "em"}, Height: types.Px(10)}))
}

func TestValidateViewport(t *testing.T) {
	assert.NoError(t, ValidateViewport(1920, 1080, 16))
	assert.NoError(t, ValidateViewport(1920, 1080, 0))
	assert.Error(t, ValidateViewport(0, 1080, 16))
	assert.Error(t, ValidateViewport(1920, MaxViewportPixels+1, 16))
	assert.Error(t, ValidateViewport(1920, 1080, -2))
}
