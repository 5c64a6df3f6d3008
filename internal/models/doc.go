// Package models defines the domain records that are persisted for BillEase.
//
// # Models
//
//   - Bill: a bill being split, with its workflow state and last result
//   - Item: a line item with its assignment and optional manual split
//   - Group: a saved participant list that can seed new bills
//
// Participants are identified by display name. A name referenced by an item
// assignment or manual split must be one of the bill's participants; the
// workflow package enforces that when the bill is edited.
//
// # Design Principles
//
//  1. Money is decimal.Decimal end to end, never float64
//  2. Order matters: items and participants are slices, and positions are
//     stable identifiers within a bill
//  3. Avoid circular references: use ID strings instead of pointers for relationships
package models
