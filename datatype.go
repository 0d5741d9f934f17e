package vcard

import "strings"

// DataType is the wire data type of a property value, as carried by the VALUE
// parameter (text syntax), the type tag (JSON) or the value element name (XML).
// The zero value means "no explicit type".
type DataType string

const (
	TypeText           DataType = "text"
	TypeURI            DataType = "uri"
	TypeURL            DataType = "url"        // 2.1 only
	TypeContentID      DataType = "content-id" // 2.1 only
	TypeBinary         DataType = "binary"     // 3.0 only
	TypeDate           DataType = "date"
	TypeTime           DataType = "time"
	TypeDateTime       DataType = "date-time"
	TypeDateAndOrTime  DataType = "date-and-or-time"
	TypeTimestamp      DataType = "timestamp"
	TypeBoolean        DataType = "boolean"
	TypeInteger        DataType = "integer"
	TypeFloat          DataType = "float"
	TypeUTCOffset      DataType = "utc-offset"
	TypeLanguageTag    DataType = "language-tag"
	TypeUnknown        DataType = "unknown" // JSON "unknown" type tag
	dataTypeContentID2 DataType = "cid"
)

var dataTypes = map[string]DataType{}

func init() {
	for _, dt := range []DataType{
		TypeText, TypeURI, TypeURL, TypeContentID, TypeBinary, TypeDate, TypeTime,
		TypeDateTime, TypeDateAndOrTime, TypeTimestamp, TypeBoolean, TypeInteger,
		TypeFloat, TypeUTCOffset, TypeLanguageTag,
	} {
		dataTypes[string(dt)] = dt
	}
	dataTypes[string(dataTypeContentID2)] = TypeContentID
}

// ParseDataType looks up a data type by name, case-insensitively. Unknown
// names are returned as-is with ok set to false so that they can still be
// carried through a round trip.
func ParseDataType(name string) (dt DataType, ok bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if dt, ok := dataTypes[lower]; ok {
		return dt, true
	}
	return DataType(lower), false
}

// Supports reports whether the data type may be used with version v.
func (dt DataType) Supports(v Version) bool {
	switch dt {
	case TypeURL, TypeContentID:
		return v == V2_1
	case TypeBinary:
		return v == V3_0
	case TypeURI, TypeDate, TypeTime, TypeDateTime, TypeBoolean, TypeInteger,
		TypeFloat, TypeUTCOffset:
		return v == V3_0 || v == V4_0
	case TypeDateAndOrTime, TypeTimestamp, TypeLanguageTag:
		return v == V4_0
	}
	return true
}

// String returns the lower-case name of the data type.
func (dt DataType) String() string { return string(dt) }
