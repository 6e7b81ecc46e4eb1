/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package version

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newCmd(t *testing.T, format string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.Flags().StringP("format", "f", "text", "")
	if err := cmd.Flags().Set("format", format); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmd.SetOut(&out)
	return cmd, &out
}

func TestRun_Text(t *testing.T) {
	cmd, out := newCmd(t, "text")
	if err := run(cmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "tincture ") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRun_JSON(t *testing.T) {
	cmd, out := newCmd(t, "json")
	if err := run(cmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var info map[string]any
	if err := json.Unmarshal(out.Bytes(), &info); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	for _, key := range []string{"version", "gitCommit", "goVersion", "platform"} {
		if _, ok := info[key]; !ok {
			t.Errorf("missing %q in %v", key, info)
		}
	}
}

func TestRun_UnknownFormat(t *testing.T) {
	cmd, _ := newCmd(t, "xml")
	if err := run(cmd, nil); err == nil {
		t.Error("expected error for unknown format")
	}
}
