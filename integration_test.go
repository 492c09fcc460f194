package islgloss_test

import (
	"context"
	"os"
	"testing"
	"time"

	islgloss "github.com/tassa-yoniso-manasi-karoto/go-islgloss"
)

func TestIntegration(t *testing.T) {
	// Skip if not explicitly enabled
	if os.Getenv("ISLGLOSS_TEST") != "1" {
		t.Skip("Integration tests disabled. Set ISLGLOSS_TEST=1 to run")
	}

	if os.Getenv("ISLGLOSS_DEBUG") == "1" {
		islgloss.EnableDebugLogging()
	}

	ctx := context.Background()

	manager, err := islgloss.NewManager(ctx,
		islgloss.WithQueryTimeout(60*time.Second))
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Log("Initializing Stanza container...")
	if err := manager.Init(ctx); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}
	defer manager.Close()

	t.Run("Annotate", func(t *testing.T) {
		sentences, err := manager.Annotate(ctx, "He eats rice. She runs.")
		if err != nil {
			t.Fatalf("Annotate failed: %v", err)
		}
		if len(sentences) != 2 {
			t.Fatalf("Expected 2 sentences, got %d", len(sentences))
		}
		for _, s := range sentences {
			for _, w := range s.Words {
				t.Logf("  %-10s %-10s %s", w.Text, w.Lemma, w.UPOS)
			}
		}
	})

	t.Run("Parse", func(t *testing.T) {
		tree, err := manager.Parse(ctx, []string{"He", "eats", "rice", "."})
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		t.Logf("Tree: %s", tree)
		if n := len(tree.Leaves()); n != 4 {
			t.Errorf("Expected 4 leaves, got %d", n)
		}
	})

	t.Run("Translate", func(t *testing.T) {
		m, err := manager.Translate(ctx, "He eats rice.")
		if err != nil {
			t.Fatalf("Translate failed: %v", err)
		}
		t.Logf("Glosses: %s", m)
		if got := m.String(); got != "he rice eat" {
			t.Errorf("Expected %q, got %q", "he rice eat", got)
		}
	})

	t.Run("TranslateFingerspelling", func(t *testing.T) {
		m, err := manager.Translate(ctx, "Zorblex runs.")
		if err != nil {
			t.Fatalf("Translate failed: %v", err)
		}
		t.Logf("Glosses: %s", m)
		if got := m.String(); got != "Z O R B L E X run" {
			t.Errorf("Expected %q, got %q", "Z O R B L E X run", got)
		}
	})

	t.Run("GetVersion", func(t *testing.T) {
		version, err := manager.GetVersion(ctx)
		if err != nil {
			t.Fatalf("GetVersion failed: %v", err)
		}
		t.Logf("Stanza version: %s", version)
	})
}

func TestPackageLevelFunctions(t *testing.T) {
	if os.Getenv("ISLGLOSS_TEST") != "1" {
		t.Skip("Integration tests disabled. Set ISLGLOSS_TEST=1 to run")
	}

	if err := islgloss.Init(); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}
	defer islgloss.Close()

	m, err := islgloss.Translate("I want water.")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	t.Logf("Glosses: %s", m)
}

func TestManagerNotReady(t *testing.T) {
	if os.Getenv("ISLGLOSS_TEST") != "1" {
		t.Skip("Integration tests disabled. Set ISLGLOSS_TEST=1 to run")
	}

	manager, err := islgloss.NewManager(context.Background(), islgloss.WithProjectName("islgloss-notready"))
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	defer manager.Close()

	if _, err := manager.Translate(context.Background(), "He eats rice."); err == nil {
		t.Error("Expected an error before Init")
	}
}
