package rules

import (
	"strings"

	"github.com/reposcope/reposcope/internal/findings"
)

// depPattern maps a dependency-name token to a display name. Matching is a
// case-insensitive substring test over the dependency name, first hit wins.
type depPattern struct {
	token   string
	display string
}

var frameworkDeps = []depPattern{
	{"next", "Next.js"},
	{"express", "Express.js"},
	{"fastify", "Fastify"},
	{"nuxt", "Nuxt.js"},
	{"@nestjs", "NestJS"},
	{"react", "React"},
	{"vue", "Vue.js"},
	{"@angular", "Angular"},
	{"svelte", "Svelte"},
	{"vite", "Vite"},
	{"fastapi", "FastAPI"},
	{"flask", "Flask"},
	{"django", "Django"},
	{"sanic", "Sanic"},
	{"tornado", "Tornado"},
	{"starlette", "Starlette"},
	{"gin-gonic/gin", "Gin"},
	{"labstack/echo", "Echo"},
	{"gofiber/fiber", "Fiber"},
	{"spf13/cobra", "Cobra"},
}

var ormDeps = []depPattern{
	{"prisma", "Prisma ORM"},
	{"typeorm", "TypeORM"},
	{"sequelize", "Sequelize"},
	{"sqlalchemy", "SQLAlchemy"},
	{"alembic", "Alembic (migrations)"},
	{"mongoose", "Mongoose"},
	{"entgo.io/ent", "Ent"},
}

var databaseDeps = []depPattern{
	{"psycopg", "PostgreSQL"},
	{"postgres", "PostgreSQL"},
	{"jackc/pgx", "PostgreSQL"},
	{"mysql", "MySQL"},
	{"mongodb", "MongoDB"},
	{"pymongo", "MongoDB"},
	{"ioredis", "Redis"},
	{"redis", "Redis"},
	{"sqlite", "SQLite"},
	{"elasticsearch", "Elasticsearch"},
}

var serviceDeps = []depPattern{
	{"stripe", "Stripe Payments"},
	{"aws-sdk", "AWS"},
	{"boto3", "AWS"},
	{"@google-cloud", "Google Cloud"},
	{"firebase", "Firebase"},
	{"sendgrid", "SendGrid Email"},
	{"twilio", "Twilio"},
	{"auth0", "Auth0"},
	{"passport", "Passport.js Auth"},
	{"httpx", "HTTP Client"},
	{"axios", "HTTP Client"},
	{"python-jose", "JWT Handling"},
}

var workerDeps = []depPattern{
	{"celery", "Celery"},
	{"bull", "Bull"},
	{"bee-queue", "Bee-Queue"},
	{"sidekiq", "Sidekiq"},
}

var testingDeps = []depPattern{
	{"jest", "Jest"},
	{"vitest", "Vitest"},
	{"mocha", "Mocha"},
	{"pytest", "pytest"},
	{"playwright", "Playwright"},
	{"cypress", "Cypress"},
	{"@testing-library", "Testing Library"},
	{"stretchr/testify", "Testify"},
}

// "pg" alone is too short for a safe substring test; match it exactly.
var exactDatabaseDeps = map[string]string{
	"pg": "PostgreSQL",
}

// CategorizeDependency classifies a dependency name into a technology
// category with a display name. The boolean reports whether any pattern
// matched; uncategorized dependencies stay plain dependency findings.
func CategorizeDependency(name string) (findings.Category, string, bool) {
	lower := strings.ToLower(name)

	if display, ok := exactDatabaseDeps[lower]; ok {
		return findings.CategoryDatabase, display, true
	}
	for _, p := range frameworkDeps {
		if strings.Contains(lower, p.token) {
			return findings.CategoryFramework, p.display, true
		}
	}
	for _, p := range ormDeps {
		if strings.Contains(lower, p.token) {
			return findings.CategoryORM, p.display, true
		}
	}
	for _, p := range databaseDeps {
		if strings.Contains(lower, p.token) {
			return findings.CategoryDatabase, p.display, true
		}
	}
	for _, p := range serviceDeps {
		if strings.Contains(lower, p.token) {
			return findings.CategoryService, p.display, true
		}
	}
	for _, p := range workerDeps {
		if strings.Contains(lower, p.token) {
			return findings.CategoryWorker, p.display, true
		}
	}
	for _, p := range testingDeps {
		if strings.Contains(lower, p.token) {
			return findings.CategoryTesting, p.display, true
		}
	}
	return "", "", false
}
