package vcard

import "strings"

// Version is one of the three versions of the vCard line syntax. The XML and
// JSON syntaxes only exist for V4_0; hCard is treated as V3_0.
type Version int

const (
	V2_1 Version = iota + 1
	V3_0
	V4_0
)

// Namespace is the XML namespace of xCard documents.
const Namespace = "urn:ietf:params:xml:ns:vcard-4.0"

// Versions lists all known versions, oldest first.
var Versions = []Version{V2_1, V3_0, V4_0}

// String returns the value of the VERSION property for v.
func (v Version) String() string {
	switch v {
	case V2_1:
		return "2.1"
	case V3_0:
		return "3.0"
	case V4_0:
		return "4.0"
	default:
		return "unknown"
	}
}

// Valid reports whether v is one of the known versions.
func (v Version) Valid() bool {
	return v >= V2_1 && v <= V4_0
}

// ParseVersion maps a VERSION property value to a Version.
func ParseVersion(s string) (Version, bool) {
	switch strings.TrimSpace(s) {
	case "2.1":
		return V2_1, true
	case "3.0":
		return V3_0, true
	case "4.0":
		return V4_0, true
	}
	return 0, false
}
