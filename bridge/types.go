package bridge

// SdkInfo describes one installed SDK.
type SdkInfo struct {
	Version string `json:"version"`
	Path    string `json:"path"`
}

// FrameworkInfo describes one installed shared framework.
type FrameworkInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Path    string `json:"path"`
}

// EnvironmentInfo is the host library's view of an installation root.
type EnvironmentInfo struct {
	HostFxrVersion    string          `json:"hostfxr_version"`
	HostFxrCommitHash string          `json:"hostfxr_commit_hash"`
	Sdks              []SdkInfo       `json:"sdks"`
	Frameworks        []FrameworkInfo `json:"frameworks"`
}

// ResolveFlags controls SDK resolution.
type ResolveFlags int32

const (
	// DisallowPrerelease excludes prerelease SDKs from resolution.
	DisallowPrerelease ResolveFlags = 0x1
)

// resolveKey identifies a value reported by hostfxr_resolve_sdk2.
type resolveKey int32

const (
	keyResolvedSdkDir   resolveKey = 0
	keyGlobalJSONPath   resolveKey = 1
	keyRequestedVersion resolveKey = 2
)

// ResolveResult holds whatever hostfxr_resolve_sdk2 reported. Fields the
// native side did not report are empty.
type ResolveResult struct {
	ResolvedSdkDir   string `json:"resolved_sdk_dir,omitempty"`
	GlobalJSONPath   string `json:"global_json_path,omitempty"`
	RequestedVersion string `json:"requested_version,omitempty"`
	// Status is the native return code, passed through unchanged.
	Status int32 `json:"status"`
}

// Resolved reports whether an SDK directory was resolved.
func (r ResolveResult) Resolved() bool {
	return r.ResolvedSdkDir != ""
}

// HasGlobalJSON reports whether a global.json governed the resolution.
func (r ResolveResult) HasGlobalJSON() bool {
	return r.GlobalJSONPath != ""
}

// Entry point names exported by the host library.
const (
	SymbolResolveSdk2              = "hostfxr_resolve_sdk2"
	SymbolGetAvailableSdks         = "hostfxr_get_available_sdks"
	SymbolGetDotnetEnvironmentInfo = "hostfxr_get_dotnet_environment_info"
)
