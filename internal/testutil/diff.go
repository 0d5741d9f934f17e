package testutil

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

var spewConfig = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Diff returns the difference of two objects in unified diff format, after
// dumping each of them with spew.
func Diff(labelA string, a any, labelB string, b any) string {
	return TextDiff(labelA, spewConfig.Sdump(a), labelB, spewConfig.Sdump(b))
}

// TextDiff returns the difference of two texts in unified diff format. It
// returns "" when they are equal.
func TextDiff(labelA, a, labelB, b string) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: labelA,
		ToFile:   labelB,
		Context:  1,
	})
	return diff
}
