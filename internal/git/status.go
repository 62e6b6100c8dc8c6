// Package git looks up the working tree status of listed files
package git

// StatusKind is the state of a file in one half of the git status: the
// index (staged) or the working tree (unstaged)
type StatusKind int

const (
	NotModified StatusKind = iota
	New
	Modified
	Deleted
	Renamed
	TypeChange
	Ignored
	Conflicted
)

// Char returns the single-character form shown in listings
func (k StatusKind) Char() string {
	switch k {
	case New:
		return "N"
	case Modified:
		return "M"
	case Deleted:
		return "D"
	case Renamed:
		return "R"
	case TypeChange:
		return "T"
	case Ignored:
		return "I"
	case Conflicted:
		return "U"
	}
	return "-"
}

// Status is the staged and unstaged state of one path
type Status struct {
	Staged   StatusKind
	Unstaged StatusKind
}

// IsZero reports whether the path has nothing to report
func (s Status) IsZero() bool {
	return s.Staged == NotModified && s.Unstaged == NotModified
}

// mergePriority is the order in which a directory's combined status is
// chosen when its entries disagree
var mergePriority = []StatusKind{New, Modified, Deleted, Renamed, TypeChange, Ignored, Conflicted}

// kindSet collects the kinds seen across several entries
type kindSet uint16

func (s *kindSet) add(k StatusKind) {
	*s |= 1 << k
}

func (s kindSet) pick() StatusKind {
	for _, k := range mergePriority {
		if s&(1<<k) != 0 {
			return k
		}
	}
	return NotModified
}

// parseXY converts the two-letter porcelain code into a Status
func parseXY(x, y byte) Status {
	switch {
	case x == '?' && y == '?':
		return Status{Unstaged: New}
	case x == '!' && y == '!':
		return Status{Unstaged: Ignored}
	case x == 'U' || y == 'U' || (x == 'A' && y == 'A') || (x == 'D' && y == 'D'):
		return Status{Staged: Conflicted, Unstaged: Conflicted}
	}
	return Status{Staged: stagedKind(x), Unstaged: unstagedKind(y)}
}

func stagedKind(x byte) StatusKind {
	switch x {
	case 'A', 'C':
		return New
	case 'M':
		return Modified
	case 'D':
		return Deleted
	case 'R':
		return Renamed
	case 'T':
		return TypeChange
	}
	return NotModified
}

func unstagedKind(y byte) StatusKind {
	switch y {
	case 'M':
		return Modified
	case 'D':
		return Deleted
	case 'R':
		return Renamed
	case 'T':
		return TypeChange
	case 'A', '?':
		return New
	}
	return NotModified
}
