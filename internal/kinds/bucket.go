package kinds

// Bucket is the tag under which a child symbol is filed on its parent.
type Bucket string

const (
	Members         Bucket = "members"
	StaticMembers   Bucket = "static_members"
	InstanceMembers Bucket = "instance_members"
	Methods         Bucket = "methods"
	StaticMethods   Bucket = "static_methods"
	InstanceMethods Bucket = "instance_methods"
	Classes         Bucket = "classes"
	Interfaces      Bucket = "interfaces"
	Mixins          Bucket = "mixins"
	Namespaces      Bucket = "namespaces"
	Typedefs        Bucket = "typedefs"
	Events          Bucket = "events"
	Enums           Bucket = "enums"
)

// AllBuckets lists every bucket tag in rendering order.
var AllBuckets = []Bucket{
	InstanceMembers, StaticMembers, InstanceMethods, StaticMethods,
	Members, Methods,
	Classes, Interfaces, Mixins, Namespaces, Typedefs, Events, Enums,
}

// BucketFor returns the bucket a symbol of kind and scope is filed under when
// its owner has ownerKind. Member- and method-like kinds owned by a class are
// split into static_ and instance_ variants by scope; kinds without a bucket
// of their own are filed as members.
func BucketFor(kind, scope, ownerKind string) Bucket {
	var b Bucket
	switch kind {
	case Member, Constant:
		b = Members
	case Method, Function:
		b = Methods
	case Class:
		b = Classes
	case Interface:
		b = Interfaces
	case Mixin:
		b = Mixins
	case Namespace, Module:
		b = Namespaces
	case Typedef:
		b = Typedefs
	case Event:
		b = Events
	case Enum:
		b = Enums
	default:
		b = Members
	}
	if ownerKind != Class {
		return b
	}
	static := scope == ScopeStatic
	switch b {
	case Members:
		if static {
			return StaticMembers
		}
		return InstanceMembers
	case Methods:
		if static {
			return StaticMethods
		}
		return InstanceMethods
	}
	return b
}

// Section is a titled bucket shown on a page.
type Section struct {
	Title  string
	Bucket Bucket
}

var (
	classSections = []Section{
		{"Instance Members", InstanceMembers},
		{"Static Members", StaticMembers},
		{"Instance Methods", InstanceMethods},
		{"Static Methods", StaticMethods},
	}
	baseSections = []Section{
		{"Members", Members},
		{"Methods", Methods},
	}
	commonSections = []Section{
		{"Classes", Classes},
		{"Interfaces", Interfaces},
		{"Mixins", Mixins},
		{"Namespaces", Namespaces},
		{"Type Definitions", Typedefs},
		{"Events", Events},
		{"Enums", Enums},
	}
)

// SectionsFor returns the ordered sections rendered on a page of ownerKind.
func SectionsFor(ownerKind string) []Section {
	head := baseSections
	if ownerKind == Class {
		head = classSections
	}
	out := make([]Section, 0, len(head)+len(commonSections))
	out = append(out, head...)
	return append(out, commonSections...)
}
