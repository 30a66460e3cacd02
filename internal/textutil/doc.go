// Package textutil provides small text helpers shared across podhaul:
// filename sanitization for transfer targets and display truncation.
package textutil
