package testutil

import (
	"embed"
	"io/fs"

	"github.com/eluv-io/errors-go"
)

// TestdataFS holds the fixtures shared by the tests of the syntax packages.
// The files of one base name describe the same contact in each syntax.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	data, err := fs.ReadFile(TestdataFS, "testdata/"+name)
	if err != nil {
		return nil, errors.E("testutil.ReadTestData", errors.K.NotExist, err, "name", name)
	}
	return data, nil
}

// MustReadTestData is like ReadTestData but panics when the file is missing.
func MustReadTestData(name string) []byte {
	data, err := ReadTestData(name)
	if err != nil {
		panic(err)
	}
	return data
}
