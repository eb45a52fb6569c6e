//go:build debug

package check

// Enabled turns on precondition and misuse checks.
const Enabled = true
