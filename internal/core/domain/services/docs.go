// Package services contains stateless domain services that operate across
// entities of the order model. The PricingEngine is the single fee
// computation used by every surface (live previews, submitted-total
// validation and bid acceptance) so the client and the authoritative
// computation can never diverge.
package services
