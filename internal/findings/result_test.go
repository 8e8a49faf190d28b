package findings

import (
	"testing"
)

func TestCollectorPresenceDedupAcrossFiles(t *testing.T) {
	c := NewCollector()
	c.Add(Finding{Category: CategoryDatabase, Value: "PostgreSQL", SourcePath: "db/conn.py", LineNumber: 3}, true)
	c.Add(Finding{Category: CategoryDatabase, Value: "PostgreSQL", SourcePath: "settings.py", LineNumber: 12}, true)
	c.Add(Finding{Category: CategoryDatabase, Value: "Redis", SourcePath: "cache.py", LineNumber: 1}, true)

	result := c.Result(NewMetadata("."))
	if len(result.Findings) != 2 {
		t.Fatalf("got %d findings, want 2: %v", len(result.Findings), result.Findings)
	}
	if result.Findings[0].SourcePath != "db/conn.py" {
		t.Errorf("presence finding must keep its first source path, got %q", result.Findings[0].SourcePath)
	}
}

func TestCollectorEnumerateKeepsOnePerFile(t *testing.T) {
	c := NewCollector()
	c.Add(Finding{Category: CategoryEnvVariable, Value: "DATABASE_URL", SourcePath: "app/config.py", LineNumber: 4}, false)
	c.Add(Finding{Category: CategoryEnvVariable, Value: "DATABASE_URL", SourcePath: "app/config.py", LineNumber: 9}, false)
	c.Add(Finding{Category: CategoryEnvVariable, Value: "DATABASE_URL", SourcePath: "worker/main.py", LineNumber: 2}, false)

	result := c.Result(NewMetadata("."))
	if len(result.Findings) != 2 {
		t.Fatalf("got %d findings, want 2: %v", len(result.Findings), result.Findings)
	}
	paths := []string{result.Findings[0].SourcePath, result.Findings[1].SourcePath}
	if paths[0] != "app/config.py" || paths[1] != "worker/main.py" {
		t.Errorf("got paths %v, want one finding per file", paths)
	}
}

func TestCollectorResultGroupsByCategory(t *testing.T) {
	c := NewCollector()
	c.Add(Finding{Category: CategoryRoute, Value: "GET /health", SourcePath: "main.py", LineNumber: 8}, false)
	c.Add(Finding{Category: CategoryLanguage, Value: "Python", SourcePath: "requirements.txt", LineNumber: 1}, true)
	c.Add(Finding{Category: CategoryRoute, Value: "POST /login", SourcePath: "auth.py", LineNumber: 4}, false)
	c.Add(Finding{Category: CategoryFramework, Value: "Flask", SourcePath: "main.py", LineNumber: 1}, true)

	result := c.Result(NewMetadata("."))

	var order []Category
	for _, f := range result.Findings {
		if len(order) == 0 || order[len(order)-1] != f.Category {
			order = append(order, f.Category)
		}
	}
	want := []Category{CategoryLanguage, CategoryFramework, CategoryRoute}
	if len(order) != len(want) {
		t.Fatalf("got category order %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got category order %v, want %v", order, want)
		}
	}

	// Discovery order survives within a category.
	routes := result.ByCategory()[CategoryRoute]
	if routes[0].Value != "GET /health" || routes[1].Value != "POST /login" {
		t.Errorf("route order changed: %v", routes)
	}
}

func TestCollectorSkipReport(t *testing.T) {
	c := NewCollector()
	c.Skip("assets/logo.png", "binary or non-UTF8 content")
	c.Skip("data/dump.json", "exceeds size limit")

	result := c.Result(NewMetadata("."))
	if len(result.Skipped) != 2 {
		t.Fatalf("got %d skipped files, want 2", len(result.Skipped))
	}
	if len(result.Findings) != 0 {
		t.Errorf("skips must not produce findings, got %v", result.Findings)
	}
}

func TestNewMetadataAssignsRunID(t *testing.T) {
	a := NewMetadata("/tmp/project")
	b := NewMetadata("/tmp/project")
	if a.RunID == "" || a.RunID == b.RunID {
		t.Errorf("run ids must be unique and non-empty: %q vs %q", a.RunID, b.RunID)
	}
	if a.Root != "/tmp/project" {
		t.Errorf("got root %q", a.Root)
	}
}
