package bridge

import (
	"unsafe"

	"go.uber.org/zap"
)

// C layouts of hostfxr_dotnet_environment_info and its records. Every field
// is pointer sized.
type nativeEnvironmentInfo struct {
	size              uintptr
	hostfxrVersion    unsafe.Pointer
	hostfxrCommitHash unsafe.Pointer
	sdkCount          uintptr
	sdks              unsafe.Pointer
	frameworkCount    uintptr
	frameworks        unsafe.Pointer
}

type nativeSdkInfo struct {
	size    uintptr
	version unsafe.Pointer
	path    unsafe.Pointer
}

type nativeFrameworkInfo struct {
	size    uintptr
	name    unsafe.Pointer
	version unsafe.Pointer
	path    unsafe.Pointer
}

// marshaler copies callback payloads out of native memory. Every method
// must run inside the callback that delivered the pointer.
type marshaler struct {
	enc StringEncoding
}

// str decodes p, degrading a nil pointer or an undecodable string to "".
func (m marshaler) str(p unsafe.Pointer, field string) string {
	if p == nil {
		return ""
	}
	s, err := m.enc.Decode(p)
	if err != nil {
		Logger().Debug("native string degraded to empty",
			zap.String("field", field), zap.String("encoding", m.enc.Name()), zap.Error(err))
		return ""
	}
	return s
}

// strings copies a native array of count string pointers.
func (m marshaler) strings(count int32, arr unsafe.Pointer, field string) []string {
	if count <= 0 || arr == nil {
		return []string{}
	}
	ptrs := unsafe.Slice((*unsafe.Pointer)(arr), int(count))
	out := make([]string, len(ptrs))
	for i, p := range ptrs {
		out[i] = m.str(p, field)
	}
	return out
}

// stride returns the distance between records. Newer host libraries may
// append fields, which the record's own size field accounts for.
func stride(first unsafe.Pointer, known uintptr) uintptr {
	if size := *(*uintptr)(first); size > known {
		return size
	}
	return known
}

func (m marshaler) environment(p unsafe.Pointer) EnvironmentInfo {
	raw := (*nativeEnvironmentInfo)(p)
	info := EnvironmentInfo{
		HostFxrVersion:    m.str(raw.hostfxrVersion, "hostfxr_version"),
		HostFxrCommitHash: m.str(raw.hostfxrCommitHash, "hostfxr_commit_hash"),
		Sdks:              make([]SdkInfo, 0, raw.sdkCount),
		Frameworks:        make([]FrameworkInfo, 0, raw.frameworkCount),
	}

	if raw.sdkCount > 0 && raw.sdks != nil {
		step := stride(raw.sdks, unsafe.Sizeof(nativeSdkInfo{}))
		for i := uintptr(0); i < raw.sdkCount; i++ {
			rec := (*nativeSdkInfo)(unsafe.Add(raw.sdks, i*step))
			info.Sdks = append(info.Sdks, SdkInfo{
				Version: m.str(rec.version, "sdk.version"),
				Path:    m.str(rec.path, "sdk.path"),
			})
		}
	}

	if raw.frameworkCount > 0 && raw.frameworks != nil {
		step := stride(raw.frameworks, unsafe.Sizeof(nativeFrameworkInfo{}))
		for i := uintptr(0); i < raw.frameworkCount; i++ {
			rec := (*nativeFrameworkInfo)(unsafe.Add(raw.frameworks, i*step))
			info.Frameworks = append(info.Frameworks, FrameworkInfo{
				Name:    m.str(rec.name, "framework.name"),
				Version: m.str(rec.version, "framework.version"),
				Path:    m.str(rec.path, "framework.path"),
			})
		}
	}

	return info
}
