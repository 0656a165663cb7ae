package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Rorical/PaperChat/internal/config"
	"github.com/Rorical/PaperChat/internal/core"
)

func TestPrintTimeline(t *testing.T) {
	plan, err := core.BuildPlan(config.ClassicProfile())
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}

	var out bytes.Buffer
	printTimeline(&out, "classic", plan, 1)
	text := out.String()

	for _, want := range []string{"classic", "fold", "crumple", "throw", "reset", "particles", "tail(tail-retract)", "Total: 1.85"} {
		if !strings.Contains(text, want) {
			t.Errorf("timeline missing %q:\n%s", want, text)
		}
	}
	if strings.Index(text, "fold") > strings.Index(text, "crumple") || strings.Index(text, "crumple") > strings.Index(text, "throw") {
		t.Error("phases printed out of order")
	}
	if !strings.Contains(text, "1.25") {
		t.Error("throw should start at 1.25")
	}
}
