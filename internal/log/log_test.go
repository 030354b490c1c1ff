package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	SetOutput(&buf)
	prevMask := modDebugMask
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		modDebugMask = prevMask
	})
	return &buf
}

func TestModuleByName(t *testing.T) {
	tests := []struct {
		name string
		want Module
		ok   bool
	}{
		{"cart", ModCart, true},
		{"mbc", ModMBC, true},
		{"bus", ModBus, true},
		{"loader", ModLoader, true},
		{"ui", ModUI, true},
		{"<error>", 0xFFFFFFFF, false},
		{"nope", 0xFFFFFFFF, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ModuleByName(tt.name)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ModuleByName(%q) = %d, %t want %d, %t", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNewModule(t *testing.T) {
	mod := NewModule("test-extra")
	if got, ok := ModuleByName("test-extra"); !ok || got != mod {
		t.Fatalf("registered module not found: got %d, %t", got, ok)
	}
	if mod.String() != "test-extra" {
		t.Fatalf("String() = %q", mod.String())
	}

	names := ModuleNames()
	if names[len(names)-1] != "test-extra" {
		t.Fatalf("ModuleNames() last = %q, want test-extra", names[len(names)-1])
	}
}

func TestDebugGating(t *testing.T) {
	buf := captureOutput(t)
	modDebugMask = 0

	ModCart.Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("debug output from disabled module: %q", buf.String())
	}

	ModCart.Warnf("always %d", 2)
	if !strings.Contains(buf.String(), "always 2") {
		t.Fatalf("warning not emitted: %q", buf.String())
	}

	buf.Reset()
	EnableDebugModules(ModCart.Mask())
	ModCart.WithField("bank", 3).Debug("switched")
	out := buf.String()
	if !strings.Contains(out, "switched") || !strings.Contains(out, "bank=3") || !strings.Contains(out, "_mod=cart") {
		t.Fatalf("debug entry missing content: %q", out)
	}

	buf.Reset()
	ModMBC.Debugf("other module")
	if buf.Len() != 0 {
		t.Fatalf("debug output from module outside mask: %q", buf.String())
	}

	DisableDebugModules(ModCart.Mask())
	if ModCart.Enabled(DebugLevel) {
		t.Fatalf("module still enabled after DisableDebugModules")
	}
}

func TestDelayedFieldsNotEvaluatedWhenDisabled(t *testing.T) {
	captureOutput(t)
	modDebugMask = 0

	called := false
	ModBus.WithDelayedFields(func() Fields {
		called = true
		return Fields{"x": 1}
	}).Debug("nothing")
	if called {
		t.Fatal("delayed fields evaluated for disabled entry")
	}
}
