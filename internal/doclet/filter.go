package doclet

import "git.home.luguber.info/inful/symdoc/internal/util/sets"

// DropReason explains why a record was excluded before graph construction.
type DropReason string

const (
	ReasonNilRecord         DropReason = "nil_record"
	ReasonMissingLongname   DropReason = "missing_longname"
	ReasonMissingKind       DropReason = "missing_kind"
	ReasonDuplicateLongname DropReason = "duplicate_longname"
)

// Dropped is a malformed record excluded from the run.
type Dropped struct {
	Index    int
	Longname string
	Kind     string
	Reason   DropReason
}

// FilterResult summarises Filter.
type FilterResult struct {
	Kept         []*Symbol
	Undocumented int
	Malformed    []Dropped
}

// Filter drops undocumented records, records missing longname or kind, and
// every record repeating an earlier longname. Input order is preserved.
func Filter(records []*Symbol) FilterResult {
	res := FilterResult{Kept: make([]*Symbol, 0, len(records))}
	seen := sets.New[string]()
	for i, r := range records {
		switch {
		case r == nil:
			res.Malformed = append(res.Malformed, Dropped{Index: i, Reason: ReasonNilRecord})
		case r.Undocumented:
			res.Undocumented++
		case r.Longname == "":
			res.Malformed = append(res.Malformed, Dropped{Index: i, Kind: r.Kind, Reason: ReasonMissingLongname})
		case r.Kind == "":
			res.Malformed = append(res.Malformed, Dropped{Index: i, Longname: r.Longname, Reason: ReasonMissingKind})
		case !seen.Insert(r.Longname):
			res.Malformed = append(res.Malformed, Dropped{Index: i, Longname: r.Longname, Kind: r.Kind, Reason: ReasonDuplicateLongname})
		default:
			res.Kept = append(res.Kept, r)
		}
	}
	return res
}
