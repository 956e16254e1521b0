package hl7v2

// Version identifies an HL7 v2.x specification release, as declared
// in MSH-12.
type Version string

// Known HL7 v2.x releases.
const (
	V2_1   Version = "2.1"
	V2_2   Version = "2.2"
	V2_3   Version = "2.3"
	V2_3_1 Version = "2.3.1"
	V2_4   Version = "2.4"
	V2_5   Version = "2.5"
	V2_5_1 Version = "2.5.1"
	V2_6   Version = "2.6"
	V2_7   Version = "2.7"
	V2_8   Version = "2.8"
)

// String returns the version string.
func (v Version) String() string {
	return string(v)
}

// IsValid reports whether this is a known HL7 v2.x release.
func (v Version) IsValid() bool {
	switch v {
	case V2_1, V2_2, V2_3, V2_3_1, V2_4, V2_5, V2_5_1, V2_6, V2_7, V2_8:
		return true
	default:
		return false
	}
}

// Version returns the release declared in the message's MSH-12 field,
// or "" when the message has no header. The value is reported as
// declared; check IsValid for membership in the known releases.
func (m *Message) Version() Version {
	msh := m.MSH()
	if msh == nil || msh.VersionID == nil {
		return ""
	}
	// MSH-12 is a VID composite; the release number is its first
	// component.
	return Version(msh.VersionID.Component(0, 0))
}
