package capabilities

// ProviderKind is the closed set of provider-type tags. Each kind has a
// distinct wire format and authentication style; the tag is carried into
// logs, metadata, and restriction lookups.
type ProviderKind string

const (
	NativeA    ProviderKind = "nativea"
	NativeB    ProviderKind = "nativeb"
	NativeC    ProviderKind = "nativec"
	Aggregator ProviderKind = "aggregator"
	Custom     ProviderKind = "custom"
	Hosted     ProviderKind = "hosted"
)

// KindPriority is the stable provider-resolution order used by the
// registry and auto-selection: native providers first, in
// this fixed order, then aggregator, then custom/local, then hosted.
var KindPriority = []ProviderKind{NativeA, NativeB, NativeC, Aggregator, Custom, Hosted}

// String satisfies fmt.Stringer.
func (k ProviderKind) String() string {
	return string(k)
}
