package bucketname

import (
	"testing"

	testutils "github.com/jdillenkofer/slash3/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	testutils.SkipIfIntegration(t)

	tests := []struct {
		name       string
		bucketName string
		errorMsg   string
	}{
		{name: "simple", bucketName: "circus"},
		{name: "numbers and hyphens", bucketName: "my-bucket-123"},
		{name: "dots", bucketName: "my.bucket.name"},
		{name: "single character label", bucketName: "a.b.c"},
		{name: "minimum length", bucketName: "abc"},
		{name: "maximum length", bucketName: "a123456789012345678901234567890123456789012345678901234567890bc"},

		{name: "too short", bucketName: "ab", errorMsg: "must be between 3 and 63 characters long"},
		{name: "too long", bucketName: "a1234567890123456789012345678901234567890123456789012345678901234", errorMsg: "must be between 3 and 63 characters long"},
		{name: "uppercase", bucketName: "Circus", errorMsg: "must contain only lowercase letters"},
		{name: "underscore", bucketName: "big_top", errorMsg: "must contain only lowercase letters"},
		{name: "starts with hyphen", bucketName: "-circus", errorMsg: "must start and end with a letter or number"},
		{name: "ends with dot", bucketName: "circus.", errorMsg: "must start and end with a letter or number"},
		{name: "ip address", bucketName: "192.168.1.1", errorMsg: "must not be formatted as an IP address"},
		{name: "xn-- prefix", bucketName: "xn--circus", errorMsg: "must not start with 'xn--'"},
		{name: "sthree- prefix", bucketName: "sthree-circus", errorMsg: "must not start with 'sthree-'"},
		{name: "-s3alias suffix", bucketName: "circus-s3alias", errorMsg: "must not end with '-s3alias'"},
		{name: "--ol-s3 suffix", bucketName: "circus--ol-s3", errorMsg: "must not end with '--ol-s3'"},
		{name: "consecutive dots", bucketName: "big..top", errorMsg: "must not contain consecutive dots"},
		{name: "dot next to hyphen", bucketName: "big.-top", errorMsg: "each label must start and end"},
		{name: "hyphen next to dot", bucketName: "big-.top", errorMsg: "each label must start and end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.bucketName)
			if tt.errorMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.bucketName, MustNew(tt.bucketName).String())
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidBucketName)
			assert.Contains(t, err.Error(), tt.errorMsg)
			assert.Contains(t, err.Error(), tt.bucketName)
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	testutils.SkipIfIntegration(t)

	assert.Panics(t, func() { MustNew("ab") })
}
