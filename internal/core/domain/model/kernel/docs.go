// Package kernel contains the shared value objects of the domain model:
// UUID identifiers and Money amounts. Both are immutable, validated at
// construction and safe for concurrent use. Entities and aggregates across
// the order, recipient and bid models build on these types instead of raw
// primitives so that an invalid identifier or a negative price can never
// enter the model unnoticed.
package kernel
