package versionbump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		input   string
		numeric bool
		wantErr bool
	}{
		{"0", true, false},
		{"7", true, false},
		{"92", true, false},
		{"18446744073709551615", true, false},
		{"alpha", false, false},
		{"x-y-z", false, false},
		{"-", false, false},
		{"0a", false, false},
		{"01a", false, false},
		{"RC1", false, false},
		{"01", false, true},
		{"00", false, true},
		{"18446744073709551616", false, true},
		{"", false, true},
		{"a_b", false, true},
		{"a+b", false, true},
		{"ä", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := ParseIdentifier(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.numeric, id.IsNumeric())
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"alpha", 1, false},
		{"alpha.1", 2, false},
		{"x.7.z.92", 4, false},
		{"rc.0", 2, false},
		{"alpha..1", 0, true},
		{".alpha", 0, true},
		{"alpha.", 0, true},
		{"alpha.01", 0, true},
		{"alpha beta", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l, err := ParseLabel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ErrCodeInvalidLabel, ErrorCodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Len(t, l, tt.want)
			assert.Equal(t, tt.input, l.String())
		})
	}
}

func TestLabelEqual(t *testing.T) {
	assert.True(t, MustParseLabel("alpha.1").Equal(MustParseLabel("alpha.1")))
	assert.False(t, MustParseLabel("alpha.1").Equal(MustParseLabel("alpha.2")))
	assert.False(t, MustParseLabel("alpha").Equal(MustParseLabel("alpha.1")))
	assert.True(t, Label(nil).Equal(Label{}))
	assert.True(t, MustParseLabel("7").Equal(Label{Identifier{str: "7"}}))
}

func TestParseBuildMetadata(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"001", false},
		{"build.007.sha-5114f85", false},
		{"18446744073709551616", false},
		{"build..7", true},
		{"build_7", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l, err := parseBuildMetadata(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ErrCodeInvalidLabel, ErrorCodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, l.String())
		})
	}
}

func TestMustParseLabelPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseLabel("01") })
}
