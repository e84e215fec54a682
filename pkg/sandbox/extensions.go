package sandbox

// Fixed extension categories recognized during path expansion.
// Grouped the way the original file-type tables group them, so the
// per-extension token ratios below can document which category drove
// each number.
var (
	programmingExtensions = map[string]bool{
		".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
		".java": true, ".cpp": true, ".c": true, ".h": true, ".hpp": true,
		".cs": true, ".go": true, ".rs": true, ".rb": true, ".php": true,
		".swift": true, ".kt": true, ".scala": true, ".r": true, ".m": true, ".mm": true,
	}

	scriptExtensions = map[string]bool{
		".sql": true, ".sh": true, ".bash": true, ".zsh": true, ".fish": true,
		".ps1": true, ".bat": true, ".cmd": true,
	}

	configExtensions = map[string]bool{
		".yml": true, ".yaml": true, ".json": true, ".xml": true, ".toml": true,
		".ini": true, ".cfg": true, ".conf": true, ".properties": true, ".env": true,
	}

	docExtensions = map[string]bool{
		".txt": true, ".md": true, ".rst": true, ".tex": true,
	}

	webExtensions = map[string]bool{
		".html": true, ".css": true, ".scss": true, ".sass": true, ".less": true,
	}

	textDataExtensions = map[string]bool{
		".log": true, ".csv": true, ".tsv": true, ".gitignore": true, ".dockerfile": true,
		".makefile": true, ".cmake": true, ".gradle": true, ".sbt": true, ".pom": true, ".lock": true,
	}
)

// CodeExtensions is the default extension set expand_paths filters by
// when the caller passes no explicit set: programming languages,
// scripts, configs, docs, and web files, but not raw text/data or
// binary/image/archive formats.
var CodeExtensions = unionOf(programmingExtensions, scriptExtensions, configExtensions, docExtensions, webExtensions)

// TextExtensions additionally admits log/data file extensions; callers
// that want logs or CSVs in scope pass this instead of CodeExtensions.
var TextExtensions = unionOf(CodeExtensions, textDataExtensions)

func unionOf(sets ...map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, set := range sets {
		for ext := range set {
			out[ext] = true
		}
	}
	return out
}

// ExcludedDirs is skipped during directory expansion regardless of the
// requested extension set: build artifacts and dependency caches that
// are never useful tool context and often enormous.
var ExcludedDirs = map[string]bool{
	"node_modules": true, ".git": true, "build": true, "dist": true,
	"__pycache__": true, ".venv": true, ".next": true, ".nuxt": true,
	"bower_components": true, ".expo": true, "vendor": true, ".idea": true, ".vscode": true,
}

// tokenEstimationRatios gives the bytes-per-token ratio EstimateFileTokens
// uses for a recognized extension; unlisted extensions fall back to
// defaultTokenRatio. Values mirror the empirical per-language table the
// original estimator shipped (denser syntax costs more tokens per byte;
// natural-language formats cost fewer).
var tokenEstimationRatios = map[string]float64{
	".py": 3.5, ".js": 3.2, ".ts": 3.3, ".jsx": 3.1, ".tsx": 3.0,
	".java": 3.6, ".cpp": 3.7, ".c": 3.8, ".go": 3.9, ".rs": 3.5,
	".php": 3.3, ".rb": 3.6, ".swift": 3.4, ".kt": 3.5, ".scala": 3.2,
	".sh": 4.1, ".bat": 4.0, ".ps1": 3.8, ".sql": 3.8,
	".json": 2.5, ".yaml": 3.0, ".yml": 3.0, ".xml": 2.8, ".toml": 3.2,
	".md": 4.2, ".txt": 4.0, ".rst": 4.1,
	".html": 2.9, ".css": 3.4,
	".log": 4.5, ".csv": 3.1,
	".dockerfile": 3.7, ".tf": 3.5,
}

// defaultTokenRatio is used for any extension absent from
// tokenEstimationRatios, a conservative middle-of-the-table value.
const defaultTokenRatio = 3.5

// signatureFiles are paths (relative to a candidate directory) that,
// when at least signatureThreshold are present, mark that directory as
// this server's own source tree rather than user project content,
// protecting against self-ingestion when this binary is cloned inside
// the project it is asked to inspect.
var signatureFiles = []string{"go.mod", "go.sum", "cmd/routecore", "pkg/registry", "pkg/providers", "pkg/conversation"}

const signatureThreshold = 4
