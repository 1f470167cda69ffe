package update

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name string
		v1   string
		v2   string
		want int
	}{
		{name: "equal", v1: "1.2.3", v2: "1.2.3", want: 0},
		{name: "older patch", v1: "1.2.3", v2: "1.2.4", want: -1},
		{name: "newer minor", v1: "1.3.0", v2: "1.2.9", want: 1},
		{name: "older major", v1: "1.9.9", v2: "2.0.0", want: -1},
		{name: "shorter is older", v1: "1.2", v2: "1.2.0", want: -1},
		{name: "longer is newer", v1: "1.2.0", v2: "1.2", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareVersions(tt.v1, tt.v2))
		})
	}
}

func TestVersionTagRegex(t *testing.T) {
	assert.Equal(t, []string{"v1.2.3", "1.2.3"}, versionTagRegex.FindStringSubmatch("v1.2.3"))
	assert.Equal(t, []string{"1.2.3", "1.2.3"}, versionTagRegex.FindStringSubmatch("1.2.3"))
	assert.Nil(t, versionTagRegex.FindStringSubmatch("release-1.2.3"))
}
