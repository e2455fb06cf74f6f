package events

// Entity identifies the kind of record a change event refers to.
type Entity string

const (
	EntityStaff    Entity = "staff"
	EntityCategory Entity = "category"
	EntityItem     Entity = "item"
	EntityModifier Entity = "modifier"
	EntityOption   Entity = "option"
	EntityDiscount Entity = "discount"
)

// Op is the mutation that produced a change event.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// ChangeEvent describes a committed mutation to a catalog or staff record.
//
// Events are immutable once constructed. For created and updated events the
// payload is the full record; for deleted events it is the identifier string
// of the removed record. Producers must only construct an event after the
// underlying storage mutation has committed.
type ChangeEvent struct {
	Entity  Entity
	Op      Op
	Payload any
}

// Kind returns the wire discriminant for the event, e.g. "category.created".
func (e ChangeEvent) Kind() string {
	return string(e.Entity) + "." + string(e.Op)
}

// Created builds a creation event carrying the full record.
func Created(entity Entity, record any) ChangeEvent {
	return ChangeEvent{Entity: entity, Op: OpCreated, Payload: record}
}

// Updated builds an update event carrying the full record.
func Updated(entity Entity, record any) ChangeEvent {
	return ChangeEvent{Entity: entity, Op: OpUpdated, Payload: record}
}

// Deleted builds a deletion event carrying only the removed identifier.
func Deleted(entity Entity, id string) ChangeEvent {
	return ChangeEvent{Entity: entity, Op: OpDeleted, Payload: id}
}

// Broadcaster delivers change events to connected real-time clients.
// Implementations must be fire-and-forget: delivery failures are handled
// internally and never surfaced to the producer.
type Broadcaster interface {
	Broadcast(ev ChangeEvent)
}
