// Package zone provides rendering-zone collections: named slots that
// plugins fill with ordered components. The package stores and orders
// zone contents and notifies per-zone subscribers on change; actual
// rendering belongs to whatever consumes the zone.
package zone
