package rules

import (
	"testing"

	"github.com/reposcope/reposcope/internal/findings"
)

func TestCategorizeDependency(t *testing.T) {
	var tests = []struct {
		name         string
		wantCategory findings.Category
		wantDisplay  string
		wantMatch    bool
	}{
		{"express", findings.CategoryFramework, "Express.js", true},
		{"fastapi", findings.CategoryFramework, "FastAPI", true},
		{"github.com/gin-gonic/gin", findings.CategoryFramework, "Gin", true},
		{"@nestjs/core", findings.CategoryFramework, "NestJS", true},
		{"pg", findings.CategoryDatabase, "PostgreSQL", true},
		{"psycopg2-binary", findings.CategoryDatabase, "PostgreSQL", true},
		{"ioredis", findings.CategoryDatabase, "Redis", true},
		{"sqlalchemy", findings.CategoryORM, "SQLAlchemy", true},
		{"@prisma/client", findings.CategoryORM, "Prisma ORM", true},
		{"stripe", findings.CategoryService, "Stripe Payments", true},
		{"celery", findings.CategoryWorker, "Celery", true},
		{"pytest-cov", findings.CategoryTesting, "pytest", true},
		{"left-pad", "", "", false},
		{"black", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, display, ok := CategorizeDependency(tt.name)
			if ok != tt.wantMatch {
				t.Fatalf("matched = %v, want %v", ok, tt.wantMatch)
			}
			if category != tt.wantCategory || display != tt.wantDisplay {
				t.Errorf("got (%s, %q), want (%s, %q)", category, display, tt.wantCategory, tt.wantDisplay)
			}
		})
	}
}

func TestCategorizeDependencyIsCaseInsensitive(t *testing.T) {
	category, display, ok := CategorizeDependency("Django")
	if !ok || category != findings.CategoryFramework || display != "Django" {
		t.Errorf("got (%s, %q, %v), want (framework, Django, true)", category, display, ok)
	}
}
