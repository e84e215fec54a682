// Package nativea implements the NativeA provider: a
// straightforward bearer-authenticated chat provider with a static
// model table and no endpoint-routing quirks, the baseline concrete
// back-end other providers specialize away from.
package nativea
