package net64update

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReleaseValid(t *testing.T) {
	asset := &HttpAsset{Name: "net64plus_2.0.0_64plus_win32.zip", URL: "https://smmdb.net/a.zip"}

	for _, fixture := range []struct {
		name    string
		release SourceRelease
		valid   bool
	}{
		{"nil", nil, false},
		{"valid", &HttpRelease{TagName: "v2.0.0", Assets: []*HttpAsset{asset}}, true},
		{"prerelease", &HttpRelease{TagName: "v2.0.0-rc1", Prerelease: true, Assets: []*HttpAsset{asset}}, true},
		{"draft", &HttpRelease{TagName: "v2.0.0", Draft: true, Assets: []*HttpAsset{asset}}, false},
		{"no tag", &HttpRelease{Assets: []*HttpAsset{asset}}, false},
		{"bad tag", &HttpRelease{TagName: "nightly", Assets: []*HttpAsset{asset}}, false},
		{"no assets", &HttpRelease{TagName: "v2.0.0"}, false},
		{"nil asset only", &HttpRelease{TagName: "v2.0.0", Assets: []*HttpAsset{nil}}, false},
	} {
		t.Run(fixture.name, func(t *testing.T) {
			assert.Equal(t, fixture.valid, IsReleaseValid(fixture.release))
		})
	}
}

func TestValidateRelease(t *testing.T) {
	err := ValidateRelease(&HttpRelease{TagName: "v2.0.0", Draft: true})
	assert.ErrorIs(t, err, ErrInvalidRelease)
	assert.Contains(t, err.Error(), "draft")

	err = ValidateRelease(&HttpRelease{TagName: "nightly"})
	assert.ErrorIs(t, err, ErrInvalidRelease)

	err = ValidateRelease(nil)
	assert.ErrorIs(t, err, ErrInvalidRelease)

	assert.NoError(t, ValidateRelease(&HttpRelease{
		TagName: "1.3.0",
		Assets:  []*HttpAsset{{Name: "net64plus-server_1.3.0_64plus_linux", URL: "https://smmdb.net/s"}},
	}))
}
