// Copyright 2024 The TASM Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		xorKey byte
	}{
		{"empty, no xor", "", 0},
		{"object stream, no xor", ";1,1,2,105,3,30;", 0},
		{"object stream, xor key", ";1,1,2,105,3,30;", 0x5a},
		{"binary-ish bytes, xor key", "\x00\x01\xff;1,901,", 0x13},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ciphertext, err := Encode([]byte(c.input), c.xorKey)
			require.NoError(t, err)

			plaintext, err := Decode(ciphertext, c.xorKey)
			require.NoError(t, err)
			require.Equal(t, c.input, string(plaintext))
		})
	}
}

func TestDecodeWrongXORKeyFails(t *testing.T) {
	ciphertext, err := Encode([]byte(";1,1;"), 0x42)
	require.NoError(t, err)

	_, err = Decode(ciphertext, 0x99)
	require.Error(t, err)
}

func TestDecodeRejectsShortCiphertext(t *testing.T) {
	_, err := Decode("YQ==", 0)
	require.Error(t, err)
}

func TestCombineAppendsAfterExisting(t *testing.T) {
	got := Combine(";1,1,2,105;", "1,2,2,106;")
	require.Equal(t, ";1,1,2,105;1,2,2,106;", got)
}

func TestDescribeObjectUnknownKindReturnsEmptyMap(t *testing.T) {
	fields, err := DescribeObject("1,9999999,2,1;")
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestDescribeObjectMissingIDErrors(t *testing.T) {
	_, err := DescribeObject("2,105;")
	require.Error(t, err)
}

func TestDescribeObjectTextObjectZOrderDefault(t *testing.T) {
	// No key 25 present: the canonical get_z_order definition (spec.md
	// §9, see DESIGN.md) defaults to "1", not the shadowed key-24 default.
	fields, err := DescribeObject("1,914,31,aGVsbG8=,488,2;")
	require.NoError(t, err)
	require.Equal(t, "1", fields["Z order"])
	require.Equal(t, "hello", fields["Text"])
}

func TestDescribeObjectTextObjectZOrderExplicit(t *testing.T) {
	fields, err := DescribeObject("1,914,31,aGk=,25,3;")
	require.NoError(t, err)
	require.Equal(t, "3", fields["Z order"])
}

func TestParseRecordSplitsKeyValuePairs(t *testing.T) {
	got := ParseRecord("1,914,31,aGk=,25,3;")
	want := map[string]string{
		"1":  "914",
		"31": "aGk=",
		"25": "3",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseRecord mismatch (-want +got):\n%s", diff)
	}
}

func TestObjectNameKnownAndUnknown(t *testing.T) {
	require.Equal(t, "914 (Text object)", ObjectName(914))
	require.Equal(t, "424242 (Unknown)", ObjectName(424242))
}
