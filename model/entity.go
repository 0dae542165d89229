package model

// EntityCategory is the type of a recognized domain entity.
type EntityCategory int

const (
	// EntityProduct is a platform product name (e.g. "Advanced Analytics")
	EntityProduct EntityCategory = iota
	// EntityDataSource is a data-source vendor or technology (e.g. "Palo Alto")
	EntityDataSource
	// EntityParser is a named event parser
	EntityParser
	// EntityUseCase is a named detection use case
	EntityUseCase
	// EntityMitreTechnique is a MITRE ATT&CK technique ID (e.g. "T1078.004")
	EntityMitreTechnique
	// EntityMitreTactic is a MITRE ATT&CK tactic name (e.g. "Lateral Movement")
	EntityMitreTactic
	// EntityEventType is an event type name (e.g. "Authentication")
	EntityEventType
	// EntityField is a named event field
	EntityField
)

// EntityCategories lists every entity category in a stable order.
var EntityCategories = []EntityCategory{
	EntityProduct,
	EntityDataSource,
	EntityParser,
	EntityUseCase,
	EntityMitreTechnique,
	EntityMitreTactic,
	EntityEventType,
	EntityField,
}

// String returns a human-readable representation of the entity category
func (ec EntityCategory) String() string {
	switch ec {
	case EntityProduct:
		return "product"
	case EntityDataSource:
		return "data_source"
	case EntityParser:
		return "parser"
	case EntityUseCase:
		return "use_case"
	case EntityMitreTechnique:
		return "mitre_technique"
	case EntityMitreTactic:
		return "mitre_tactic"
	case EntityEventType:
		return "event_type"
	case EntityField:
		return "field"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so entity categories can
// key JSON maps.
func (ec EntityCategory) MarshalText() ([]byte, error) {
	return []byte(ec.String()), nil
}

// Entity is a typed, named concept recognized in chunk text. Entities are
// deduplicated per chunk case-insensitively by name.
type Entity struct {
	// Name is the entity name as it appeared in text
	Name string `json:"name"`

	// Category is the entity type
	Category EntityCategory `json:"category"`
}

// EntitySet groups extracted entities by category.
type EntitySet map[EntityCategory][]Entity

// Count returns the total number of entities across all categories.
func (es EntitySet) Count() int {
	n := 0
	for _, list := range es {
		n += len(list)
	}
	return n
}

// Categories returns the number of categories with at least one entity.
func (es EntitySet) Categories() int {
	n := 0
	for _, list := range es {
		if len(list) > 0 {
			n++
		}
	}
	return n
}

// RelationKind is the type of a directed relationship between two
// co-occurring entities.
type RelationKind int

const (
	// RelationHasParser links a data source to a parser that handles it
	RelationHasParser RelationKind = iota
	// RelationSupportsUseCase links a data source to a use case it feeds
	RelationSupportsUseCase
	// RelationDetectsTechnique links a use case to a MITRE technique
	RelationDetectsTechnique
	// RelationGeneratesEventType links a parser to an event type it emits
	RelationGeneratesEventType
)

// String returns a human-readable representation of the relation kind
func (rk RelationKind) String() string {
	switch rk {
	case RelationHasParser:
		return "has_parser"
	case RelationSupportsUseCase:
		return "supports_use_case"
	case RelationDetectsTechnique:
		return "detects_technique"
	case RelationGeneratesEventType:
		return "generates_event_type"
	default:
		return "unknown"
	}
}

// Relationship is a directed, typed link between two entities inferred
// from their co-occurrence within a short span of text.
type Relationship struct {
	// Source is the subject entity
	Source Entity `json:"source"`

	// Target is the object entity
	Target Entity `json:"target"`

	// Kind is the relation type
	Kind RelationKind `json:"kind"`
}
