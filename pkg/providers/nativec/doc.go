// Package nativec implements the NativeC provider: a
// bearer-authenticated chat provider with a small static model table,
// no reasoning-budget or endpoint-routing quirks, and every model on a
// uniform temperature range.
package nativec
