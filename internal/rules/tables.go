package rules

import (
	"strings"

	"github.com/reposcope/reposcope/internal/findings"
)

// renderGroup returns a renderer selecting a single capture group.
func renderGroup(n int) func([]string) string {
	return func(groups []string) string {
		if n >= len(groups) {
			return ""
		}
		return groups[n]
	}
}

// renderMethodPath renders "METHOD /path" from a (method, path) capture pair.
func renderMethodPath(groups []string) string {
	if len(groups) < 3 {
		return ""
	}
	path := groups[2]
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.ToUpper(groups[1]) + " " + path
}

// renderAnyPath renders a method-less route declaration.
func renderAnyPath(groups []string) string {
	if len(groups) < 2 || groups[1] == "" {
		return ""
	}
	path := groups[1]
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "ANY " + path
}

// TechTable detects frameworks, databases, and workers from code markers.
// All rules are presence mode: the question is "is it used anywhere", not
// "where is every usage site".
func TechTable() []Rule {
	return []Rule{
		{ID: "tech-express", Category: findings.CategoryFramework, Display: "Express.js", Literal: "express()"},
		{ID: "tech-fastify", Category: findings.CategoryFramework, Display: "Fastify", Literal: "fastify("},
		{ID: "tech-nestjs", Category: findings.CategoryFramework, Display: "NestJS", Literal: "@Module("},
		{ID: "tech-fastapi", Category: findings.CategoryFramework, Display: "FastAPI", Literal: "FastAPI("},
		{ID: "tech-flask", Category: findings.CategoryFramework, Display: "Flask", Literal: "Flask("},
		{ID: "tech-django", Category: findings.CategoryFramework, Display: "Django", Pattern: `from\s+django|import\s+django`},
		{ID: "tech-gin", Category: findings.CategoryFramework, Display: "Gin", Literal: "gin.Default()"},

		{ID: "tech-postgres", Category: findings.CategoryDatabase, Display: "PostgreSQL", Literal: "postgres", CaseInsensitive: true},
		{ID: "tech-mysql", Category: findings.CategoryDatabase, Display: "MySQL", Literal: "mysql", CaseInsensitive: true},
		{ID: "tech-mongodb", Category: findings.CategoryDatabase, Display: "MongoDB", Literal: "mongodb", CaseInsensitive: true},
		{ID: "tech-redis", Category: findings.CategoryDatabase, Display: "Redis", Literal: "redis", CaseInsensitive: true},
		{ID: "tech-elasticsearch", Category: findings.CategoryDatabase, Display: "Elasticsearch", Literal: "elasticsearch", CaseInsensitive: true},

		{ID: "tech-celery", Category: findings.CategoryWorker, Display: "Celery", Pattern: `from\s+celery|celery\.task|@shared_task`},
		{ID: "tech-bull", Category: findings.CategoryWorker, Display: "Bull", Pattern: `new\s+Queue\s*\(|require\(['"]bull['"]\)`},
	}
}

// RouteTable detects HTTP route declarations and authentication patterns.
// Every route declaration site matters, so route rules enumerate per file;
// auth mechanisms are presence mode.
func RouteTable() []Rule {
	return []Rule{
		{
			ID:       "route-express",
			Category: findings.CategoryRoute,
			Pattern:  `(?:app|router|fastify)\.(get|post|put|patch|delete)\s*\(\s*["']([^"']+)["']`,
			Mode:     ModeEnumerate,
			Render:   renderMethodPath,
		},
		{
			ID:       "route-decorator",
			Category: findings.CategoryRoute,
			Pattern:  `@(?:router|app|api)\.(get|post|put|patch|delete)\s*\(\s*["']([^"']+)["']`,
			Mode:     ModeEnumerate,
			Render:   renderMethodPath,
		},
		{
			ID:       "route-flask",
			Category: findings.CategoryRoute,
			Pattern:  `@(?:app|bp|blueprint)\.(route)\s*\(\s*["']([^"']+)["']`,
			Mode:     ModeEnumerate,
			Render: func(groups []string) string {
				if len(groups) < 3 {
					return ""
				}
				return "ANY " + groups[2]
			},
		},
		{
			ID:       "route-django",
			Category: findings.CategoryRoute,
			Pattern:  `(?:re_)?path\s*\(\s*r?["']([^"']+)["']\s*,\s*\w+`,
			Mode:     ModeEnumerate,
			Render:   renderAnyPath,
		},
		{
			ID:       "route-nestjs",
			Category: findings.CategoryRoute,
			Pattern:  `@(Get|Post|Put|Patch|Delete)\s*\(\s*["']?([^"')]*)["']?\s*\)`,
			Mode:     ModeEnumerate,
			Render:   renderMethodPath,
		},
		{
			ID:       "route-gin",
			Category: findings.CategoryRoute,
			Pattern:  `\w+\.(GET|POST|PUT|PATCH|DELETE)\s*\(\s*"([^"]+)"`,
			Mode:     ModeEnumerate,
			Render:   renderMethodPath,
		},
		{
			ID:       "auth-middleware",
			Category: findings.CategoryService,
			Display:  "Authentication middleware",
			Pattern:  `auth(?:Middleware|enticate|Guard)|requireAuth|checkAuth|verifyToken|@UseGuards|@login_required|@permission_required|OAuth2PasswordBearer|HTTPBearer\(\)`,
		},
		{
			ID:       "auth-jwt",
			Category: findings.CategoryService,
			Display:  "JWT authentication",
			Pattern:  `jsonwebtoken|jwt\.sign\s*\(|jwt\.verify\s*\(|jwt\.encode\s*\(|jwt\.decode\s*\(|from\s+jose\s+import\s+jwt|create_access_token`,
		},
		{
			ID:       "auth-session",
			Category: findings.CategoryService,
			Display:  "Session authentication",
			Pattern:  `express-session|cookie-session|req\.session|from\s+flask_login\s+import|flask_session|from\s+django\.contrib\.auth\s+import`,
		},
		{
			ID:       "auth-oauth",
			Category: findings.CategoryService,
			Display:  "OAuth provider",
			Pattern:  `passport-(?:google|github|facebook)|next-auth|@auth0/|from\s+authlib\.integrations|authlib\.oauth|from\s+social_core`,
		},
		{
			ID:              "auth-api-key",
			Category:        findings.CategoryService,
			Display:         "API key authentication",
			Pattern:         `x-api-key`,
			CaseInsensitive: true,
		},
		{
			ID:       "auth-rbac",
			Category: findings.CategoryService,
			Display:  "Role-based access control",
			Pattern:  `is_admin|is_superuser|is_staff|has_role\s*\(|require_role\s*\(|has_permission\s*\(|require_permission\s*\(|@require_roles|@require_permission`,
		},
	}
}

// dotenvFileNames returns the env-declaration files the `NAME=` rule is
// restricted to. Uppercase assignments are a dotenv convention; in any other
// file (a requirements pin, a Makefile variable) they are not declarations.
func dotenvFileNames() []string {
	return []string{".env", ".env.example", ".env.sample", ".env.template"}
}

// EnvTable detects environment-variable access sites per language, plus
// declarations in .env-style files. One finding per distinct variable per
// file.
func EnvTable() []Rule {
	return []Rule{
		{
			ID:       "env-python-environ",
			Category: findings.CategoryEnvVariable,
			Pattern:  `os\.environ(?:\.get)?\s*[\[\(]\s*['"](\w+)['"]`,
			Mode:     ModeEnumerate,
			Render:   renderGroup(1),
		},
		{
			ID:       "env-python-getenv",
			Category: findings.CategoryEnvVariable,
			Pattern:  `os\.getenv\s*\(\s*['"](\w+)['"]`,
			Mode:     ModeEnumerate,
			Render:   renderGroup(1),
		},
		{
			ID:       "env-node-process",
			Category: findings.CategoryEnvVariable,
			Pattern:  `process\.env\.(\w+)`,
			Mode:     ModeEnumerate,
			Render:   renderGroup(1),
		},
		{
			ID:       "env-node-process-index",
			Category: findings.CategoryEnvVariable,
			Pattern:  `process\.env\[['"](\w+)['"]\]`,
			Mode:     ModeEnumerate,
			Render:   renderGroup(1),
		},
		{
			ID:       "env-node-meta",
			Category: findings.CategoryEnvVariable,
			Pattern:  `import\.meta\.env\.(\w+)`,
			Mode:     ModeEnumerate,
			Render:   renderGroup(1),
		},
		{
			ID:       "env-go-getenv",
			Category: findings.CategoryEnvVariable,
			Pattern:  `os\.Getenv\s*\(\s*"(\w+)"\s*\)`,
			Mode:     ModeEnumerate,
			Render:   renderGroup(1),
		},
		{
			ID:         "env-dotenv-declaration",
			Category:   findings.CategoryEnvVariable,
			Pattern:    `(?m)^([A-Z][A-Z0-9_]*)=`,
			Mode:       ModeEnumerate,
			Render:     renderGroup(1),
			Confidence: findings.ConfidenceHigh,
			FileNames:  dotenvFileNames(),
		},
	}
}

// SchemaTable detects ORM usage and model/field declarations.
func SchemaTable() []Rule {
	return []Rule{
		{ID: "orm-sqlalchemy", Category: findings.CategoryORM, Display: "SQLAlchemy", Pattern: `from\s+sqlalchemy|declarative_base\(\)`},
		{ID: "orm-django", Category: findings.CategoryORM, Display: "Django ORM", Literal: "models.Model"},
		{ID: "orm-prisma", Category: findings.CategoryORM, Display: "Prisma ORM", Pattern: `generator\s+client\s*\{|@prisma/client`},
		{ID: "orm-typeorm", Category: findings.CategoryORM, Display: "TypeORM", Literal: "@Entity("},
		{ID: "orm-mongoose", Category: findings.CategoryORM, Display: "Mongoose", Pattern: `new\s+(?:mongoose\.)?Schema\s*\(`},

		{
			ID:       "model-prisma",
			Category: findings.CategoryModelField,
			Pattern:  `model\s+(\w+)\s*\{`,
			Mode:     ModeEnumerate,
			Render:   renderGroup(1),
		},
		{
			ID:       "model-sqlalchemy-class",
			Category: findings.CategoryModelField,
			Pattern:  `class\s+(\w+)\s*\(\s*(?:Base|db\.Model)\s*\)`,
			Mode:     ModeEnumerate,
			Render:   renderGroup(1),
		},
		{
			ID:       "model-django-class",
			Category: findings.CategoryModelField,
			Pattern:  `class\s+(\w+)\s*\(\s*models\.Model\s*\)`,
			Mode:     ModeEnumerate,
			Render:   renderGroup(1),
		},
		{
			ID:       "field-sqlalchemy",
			Category: findings.CategoryModelField,
			Pattern:  `(\w+)\s*=\s*(?:db\.)?Column\s*\(`,
			Mode:     ModeEnumerate,
			Render:   renderGroup(1),
		},
		{
			ID:       "field-django",
			Category: findings.CategoryModelField,
			Pattern:  `(\w+)\s*=\s*models\.\w+Field\s*\(`,
			Mode:     ModeEnumerate,
			Render:   renderGroup(1),
		},
		{
			ID:       "field-typeorm",
			Category: findings.CategoryModelField,
			Pattern:  `@(?:Primary)?(?:Generated)?Column\s*\([^)]*\)\s*(\w+)[?!]?\s*:`,
			Mode:     ModeEnumerate,
			Render:   renderGroup(1),
		},
	}
}

// FullTable is the union of every built-in content table, in phase order.
func FullTable() []Rule {
	var table []Rule
	table = append(table, TechTable()...)
	table = append(table, RouteTable()...)
	table = append(table, EnvTable()...)
	table = append(table, SchemaTable()...)
	return table
}
