package buildinfo

import (
	"strings"
	"testing"
)

func TestGetPrefersLinkerValues(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02"
	got := Get()
	if got != (Info{Version: "v1.2.3", Commit: "abc123", Date: "2026-01-02"}) {
		t.Errorf("Get() = %+v", got)
	}
	if tpl := Template(); !strings.Contains(tpl, "version v1.2.3") || !strings.Contains(tpl, "commit: abc123") {
		t.Errorf("Template() = %q", tpl)
	}
}
