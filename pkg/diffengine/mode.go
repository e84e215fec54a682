package diffengine

// Mode selects one of the three diff-extraction strategies.
type Mode string

const (
	// CompareToRef diffs merge-base(ref, HEAD)..HEAD.
	CompareToRef Mode = "compare_to"
	// IncludeStaged diffs HEAD against the index.
	IncludeStaged Mode = "include_staged"
	// IncludeUnstaged diffs the index against the working tree.
	IncludeUnstaged Mode = "include_unstaged"
)

func (m Mode) String() string { return string(m) }
