// Package platform contains OS integration: OS detection, the per-user
// configuration directory and opening URLs or folders with the system tools.
package platform
