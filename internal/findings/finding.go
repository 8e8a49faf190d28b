package findings

// Category classifies one detected fact about a codebase.
type Category string

const (
	CategoryLanguage    Category = "language"
	CategoryFramework   Category = "framework"
	CategoryDatabase    Category = "database"
	CategoryORM         Category = "orm"
	CategoryRoute       Category = "route"
	CategoryEnvVariable Category = "environment_variable"
	CategoryModelField  Category = "model_field"
	CategoryDependency  Category = "dependency"
	CategoryService     Category = "service"
	CategoryTesting     Category = "testing"
	CategoryContainer   Category = "container"
	CategoryWorker      Category = "worker"
)

// Categories returns every category in stable rendering order.
func Categories() []Category {
	return []Category{
		CategoryLanguage,
		CategoryFramework,
		CategoryDatabase,
		CategoryORM,
		CategoryRoute,
		CategoryEnvVariable,
		CategoryModelField,
		CategoryDependency,
		CategoryService,
		CategoryTesting,
		CategoryContainer,
		CategoryWorker,
	}
}

// Confidence grades how specific the match that produced a finding was.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"   // exact key or manifest entry match
	ConfidenceMedium Confidence = "medium" // anchored regular expression
	ConfidenceLow    Confidence = "low"    // substring heuristic
)

// Finding is one detected fact located at a specific file and line.
type Finding struct {
	Category   Category   `json:"category"`
	Value      string     `json:"value"`
	SourcePath string     `json:"source_path"`
	LineNumber int        `json:"line_number,omitempty"`
	Confidence Confidence `json:"confidence"`

	RuleID  string `json:"rule_id,omitempty"`
	Version string `json:"version,omitempty"`
	Dev     bool   `json:"dev,omitempty"`
}
