// Package order contains the Order aggregate of the process-service domain.
//
// An Order owns an ordered collection of Recipients (the delivery/service
// destinations), the order-level status state machine and the editability
// policy derived from it. All recipient mutation goes through the aggregate
// root so the derived status and the editability rules can never be bypassed.
//
// The order-level status is never stored independently of the recipients it
// is derived from: DeriveStatus recomputes the aggregate status from the
// recipient sub-statuses after every recipient change. Views that need to
// distinguish ASSIGNED from PARTIALLY_ASSIGNED therefore always agree.
package order
