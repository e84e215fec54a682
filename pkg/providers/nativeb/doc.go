// Package nativeb implements the NativeB provider: a
// reasoning-heavy provider whose extended-thinking models take a
// reasoning budget as a percentage of a per-model thinking-token
// ceiling rather than a raw token count, and whose lightweight variant
// is routed to a different endpoint shape than its flagship sibling.
package nativeb
