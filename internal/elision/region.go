// Package elision decides whether the explicit lifetime annotations of a
// function signature are redundant, i.e. whether the compiler's elision
// rules would infer the same lifetimes if they were omitted.
//
// There are two scenarios where elision works:
//   - no output references, and all input references have distinct
//     lifetimes;
//   - output references, exactly one input reference, and the same
//     lifetime on both sides.
package elision

// RegionKind is the variant tag of a Region.
type RegionKind uint8

const (
	// Unnamed is a reference with no written annotation, including the
	// explicit anonymous lifetime '_.
	Unnamed RegionKind = iota
	// Static is the whole-program lifetime 'static.
	Static
	// Named is a user-chosen lifetime identifier.
	Named
)

// Region is the lifetime of one &-reference. Regions compare by variant
// and name only; Region is a comparable struct so it can key a map
// directly.
type Region struct {
	Kind RegionKind
	Name string // set only for Named
}

func UnnamedRegion() Region          { return Region{Kind: Unnamed} }
func StaticRegion() Region           { return Region{Kind: Static} }
func NamedRegion(name string) Region { return Region{Kind: Named, Name: name} }

func (r Region) String() string {
	switch r.Kind {
	case Static:
		return "'static"
	case Named:
		return "'" + r.Name
	default:
		return "'_"
	}
}

// uniqueRegions is the number of distinct regions in the sequence. The
// count is independent of discovery order.
func uniqueRegions(regions []Region) int {
	set := make(map[Region]struct{}, len(regions))
	for _, r := range regions {
		set[r] = struct{}{}
	}
	return len(set)
}
