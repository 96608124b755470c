// Package locator finds the host library file for the current process.
//
// Three strategies exist and one is chosen per (OS, override present) pair:
//
//	override path set     DirectPath     path used as-is, no probing
//	windows               ArchSubfolder  <root>/<x64|x86>/hostfxr.dll
//	linux, darwin, ...    VersionScan    newest <root>/host/fxr/<ver>/ with the library
//
// ArchSubfolder never checks that the file exists, so a missing library
// fails at load time with the same error as an unloadable one. VersionScan
// skips version directories that do not contain the library, even when they
// are newer than the one it returns.
//
// Scan is the version directory enumerator used by VersionScan. It never
// fails; unparsable names and a missing root simply produce no entries.
package locator
