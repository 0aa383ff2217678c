// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version

import "testing"

// TestString ensures the pre-release and build portions are normalized and
// only appended when present.
func TestString(t *testing.T) {
	defer func(pre, build string) {
		PreRelease, BuildMetadata = pre, build
	}(PreRelease, BuildMetadata)

	tests := []struct {
		pre   string
		build string
		want  string
	}{
		{"", "", "0.3.0"},
		{"beta", "", "0.3.0-beta"},
		{"rc.1", "abc123", "0.3.0-rc.1+abc123"},
		{"b@d!", "git_sha", "0.3.0-bd+gitsha"},
		{"", "...", "0.3.0"},
	}

	for _, test := range tests {
		PreRelease, BuildMetadata = test.pre, test.build
		if got := String(); got != test.want {
			t.Errorf("String (pre %q, build %q): got %q, want %q",
				test.pre, test.build, got, test.want)
		}
	}
}
