// Package billing provides the domain model for tiered usage invoicing.
//
// This package implements the usage billing bounded context, which is
// responsible for:
//   - Representing validated per-customer usage records for a billing period
//   - Defining the tiered pricing schedule applied to usage
//   - Computing one invoice per usage record
//
// Key types:
//   - UsageRecord: Immutable, validated usage for one customer
//   - PricingSchedule: Value object holding tier threshold and rates
//   - Invoice: Derived cost breakdown for one usage record
//   - Calculator: Pure domain service mapping records to invoices
//
// All monetary arithmetic uses exact decimal representation via the shared
// Money value object. Rounding to presentation precision happens at the
// rendering edge, never inside this package.
package billing
