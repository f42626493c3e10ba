// Package ir provides the record description types shared by the parser and
// the renderer.
//
// This package contains type definitions and their canonical serialization
// only. All other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Field order is source order and is never re-sorted
//   - Type expressions are stored verbatim, never interpreted
//   - All JSON keys use snake_case
//   - A Record is immutable once the parser returns it
package ir
