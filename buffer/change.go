package buffer

// ChangeSource identifies where a change originated.
type ChangeSource uint8

const (
	// ChangeSourceUser marks edits made by typing or editing keys.
	ChangeSourceUser ChangeSource = iota
	// ChangeSourceAPI marks programmatic edits (SetContent, Apply from code).
	ChangeSourceAPI
)

func (s ChangeSource) String() string {
	switch s {
	case ChangeSourceUser:
		return "user"
	case ChangeSourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// AppliedEdit describes one effective edit in a change transaction.
type AppliedEdit struct {
	RangeBefore Range
	RangeAfter  Range
	InsertText  string
	DeletedText string
}

// Change is a normalized, versioned content mutation.
//
// Cursor moves and selection changes bump the version but are not changes.
type Change struct {
	Source        ChangeSource
	VersionBefore uint64
	VersionAfter  uint64
	CursorBefore  Pos
	CursorAfter   Pos
	AppliedEdits  []AppliedEdit
}

type changeBuilder struct {
	source        ChangeSource
	versionBefore uint64
	cursorBefore  Pos
	appliedEdits  []AppliedEdit
}

// LastChange returns the most recent effective content change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	out := b.lastChange
	out.AppliedEdits = append([]AppliedEdit(nil), b.lastChange.AppliedEdits...)
	return out, true
}

func (b *Buffer) beginChange(source ChangeSource) changeBuilder {
	return changeBuilder{
		source:        source,
		versionBefore: b.version,
		cursorBefore:  b.cursor,
	}
}

func (cb *changeBuilder) addAppliedEdit(edit AppliedEdit) {
	edit.RangeBefore = NormalizeRange(edit.RangeBefore)
	edit.RangeAfter = NormalizeRange(edit.RangeAfter)
	cb.appliedEdits = append(cb.appliedEdits, edit)
}

func (b *Buffer) commitChange(cb changeBuilder) {
	if b.version == cb.versionBefore {
		return
	}
	b.lastChange = Change{
		Source:        cb.source,
		VersionBefore: cb.versionBefore,
		VersionAfter:  b.version,
		CursorBefore:  cb.cursorBefore,
		CursorAfter:   b.cursor,
		AppliedEdits:  append([]AppliedEdit(nil), cb.appliedEdits...),
	}
	b.hasLastChange = true
}
