package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/framecast/pkg/pipeline"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name   string
		stats  pipeline.Stats
		cached bool
		want   []string
		absent []string
	}{
		{
			name:   "fresh",
			stats:  pipeline.Stats{Total: 10, Created: 8, Failed: 1, Skipped: 1, ImagesApplied: 2, ImagesFailed: 1, Elapsed: 1500 * time.Millisecond},
			want:   []string{"8/10 nodes", "1 failed", "1 skipped", "2/3 images", "1.5s"},
			absent: []string{"cached"},
		},
		{
			name:   "no failures",
			stats:  pipeline.Stats{Total: 2, Created: 2},
			want:   []string{"2/2 nodes"},
			absent: []string{"failed", "skipped", "images"},
		},
		{
			name:   "cached",
			cached: true,
			want:   []string{"cached"},
			absent: []string{"nodes"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := statsLine(tt.stats, tt.cached)
			for _, s := range tt.want {
				if !strings.Contains(line, s) {
					t.Errorf("statsLine() = %q, missing %q", line, s)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(line, s) {
					t.Errorf("statsLine() = %q, should not contain %q", line, s)
				}
			}
		})
	}
}

func TestPrintHelpers(t *testing.T) {
	buf := captureStdout(t)

	printSuccess("converted %s", "home")
	printError("failed")
	printWarning("careful")
	printInfo("note")
	printDetail("detail %d", 1)
	printFile("out/page.json")
	printKeyValue("Version", "dev")
	printNextStep("Draw", "framecast tree x")
	printNewline()

	out := buf.String()
	for _, s := range []string{iconSuccess + " converted home", iconError + " failed", "careful", "note",
		"detail 1", iconArrow, "out/page.json", "Version", "dev", "framecast tree x"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines != 9 {
		t.Errorf("got %d lines, want 9", lines)
	}
}
