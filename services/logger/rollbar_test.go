package logsvc

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/trezcool/missingwork/core"
	"github.com/trezcool/missingwork/core/profile"
)

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	conf := &core.Config{Env: "TEST", TestMode: true}
	l := NewRollbarLogger(log.New(&buf, "TEST : ", 0), conf)

	p := profile.Profile{Name: "Ms. Frizzle", AppName: "Bus"}
	l.Warn("kvstore: corrupt collection grades", errors.New("unexpected end of JSON input"), p)

	out := buf.String()
	for _, want := range []string{"TEST : kvstore: corrupt collection grades\n", "unexpected end of JSON input"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
	if strings.Contains(out, "Frizzle") {
		t.Errorf("output %q should not print the profile", out)
	}
}
