// Package core provides small numeric helpers shared by the spectral and
// plan-line packages.
package core
