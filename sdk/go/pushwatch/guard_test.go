package pushwatch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// emptyConfig points the client at a config file that does not exist,
// so compiled defaults apply and the test never reads ~/.pushwatch.
func emptyConfig(t *testing.T) Option {
	t.Helper()
	return WithConfigPath(filepath.Join(t.TempDir(), "none.yaml"))
}

func TestScanText(t *testing.T) {
	pw, err := New(emptyConfig(t), WithTargets())
	if err != nil {
		t.Fatal(err)
	}

	v := pw.ScanText("snippet", "token set to sk-"+strings.Repeat("a", 24)+"\nplain line")
	if !v.Blocked {
		t.Fatal("secret-shaped text not blocked")
	}
	if err := v.Err(); err == nil {
		t.Error("Err() nil for blocking verdict")
	} else if !strings.Contains(err.Error(), "content.openai-key") {
		t.Errorf("err = %v", err)
	}

	v = pw.ScanText("snippet", "nothing secret here")
	if v.Blocked || v.Err() != nil {
		t.Errorf("clean text blocked: %+v", v)
	}
}

func TestScanFilenames(t *testing.T) {
	pw, err := New(emptyConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	if v := pw.ScanFilenames([]string{"src/main.go", ".env"}); !v.Blocked {
		t.Error(".env not blocked")
	}
	if v := pw.ScanFilenames([]string{"src/main.go"}); v.Blocked {
		t.Errorf("clean filenames blocked: %+v", v.Matches)
	}
}

func TestWithConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `scan:
  extra_patterns:
    - id: content.corp-token
      pattern: "corp_[a-z0-9]{30,}"
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	pw, err := New(WithConfigPath(path))
	if err != nil {
		t.Fatal(err)
	}
	v := pw.ScanText("x", "corp_"+strings.Repeat("g", 32))
	if !v.Blocked {
		t.Fatal("extra pattern not applied")
	}
	if v.Matches[0].RuleID != "content.corp-token" {
		t.Errorf("rule = %s", v.Matches[0].RuleID)
	}
}
