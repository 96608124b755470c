package bridge

import (
	"runtime"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/hostfxr-go/errors"
)

// Native is the raw entry point surface of the host library. Each method
// invokes fn synchronously, zero or more times, before returning. Pointers
// handed to fn are owned by the native side and valid only until fn
// returns. The error result reports binding problems; native status codes
// are returned as-is in the int32.
type Native interface {
	ResolveSdk2(exeDir, workingDir unsafe.Pointer, flags int32, fn func(key int32, value unsafe.Pointer)) (int32, error)
	GetAvailableSdks(exeDir unsafe.Pointer, fn func(count int32, dirs unsafe.Pointer)) (int32, error)
	GetEnvironmentInfo(root unsafe.Pointer, fn func(info unsafe.Pointer)) (int32, error)
}

// Bridge exposes the host library's entry points as typed operations.
// It holds no state between calls.
type Bridge struct {
	native Native
	enc    StringEncoding
}

// New creates a Bridge over native using enc for every string crossing the
// boundary.
func New(native Native, enc StringEncoding) *Bridge {
	return &Bridge{native: native, enc: enc}
}

// Encoding returns the string encoding used by the bridge.
func (b *Bridge) Encoding() StringEncoding {
	return b.enc
}

func (b *Bridge) marshaler() marshaler {
	return marshaler{enc: b.enc}
}

// nativeString encodes s; an empty s becomes a nil pointer, which the host
// library treats as "not supplied".
func (b *Bridge) nativeString(s string) (unsafe.Pointer, []byte, error) {
	if s == "" {
		return nil, nil, nil
	}
	buf, err := b.enc.Encode(s)
	if err != nil {
		return nil, nil, err
	}
	return unsafe.Pointer(&buf[0]), buf, nil
}

// ResolveSdk resolves the SDK that would be used from workingDir with the
// dotnet executable in exeDir. A result without ResolvedSdkDir means
// resolution failed; that is reported in the result, not as an error.
func (b *Bridge) ResolveSdk(exeDir, workingDir string, flags ResolveFlags) (ResolveResult, error) {
	exePtr, exeBuf, err := b.nativeString(exeDir)
	if err != nil {
		return ResolveResult{}, err
	}
	wdPtr, wdBuf, err := b.nativeString(workingDir)
	if err != nil {
		return ResolveResult{}, err
	}

	m := b.marshaler()
	var result ResolveResult
	status, err := b.native.ResolveSdk2(exePtr, wdPtr, int32(flags), func(key int32, value unsafe.Pointer) {
		switch resolveKey(key) {
		case keyResolvedSdkDir:
			result.ResolvedSdkDir = m.str(value, "resolved_sdk_dir")
		case keyGlobalJSONPath:
			result.GlobalJSONPath = m.str(value, "global_json_path")
		case keyRequestedVersion:
			result.RequestedVersion = m.str(value, "requested_version")
		default:
			Logger().Debug("ignored resolve_sdk2 key", zap.Int32("key", key))
		}
	})
	runtime.KeepAlive(exeBuf)
	runtime.KeepAlive(wdBuf)
	if err != nil {
		return ResolveResult{}, err
	}

	result.Status = status
	return result, nil
}

// GetAvailableSdks lists the SDK directories under the installation that
// contains exeDir, in the order the host library reports them.
func (b *Bridge) GetAvailableSdks(exeDir string) ([]string, error) {
	exePtr, exeBuf, err := b.nativeString(exeDir)
	if err != nil {
		return nil, err
	}

	m := b.marshaler()
	dirs := []string{}
	status, err := b.native.GetAvailableSdks(exePtr, func(count int32, arr unsafe.Pointer) {
		dirs = m.strings(count, arr, "sdk_dir")
	})
	runtime.KeepAlive(exeBuf)
	if err != nil {
		return nil, err
	}
	if status != 0 {
		return nil, errors.NativeStatus(SymbolGetAvailableSdks, status)
	}
	return dirs, nil
}

// GetEnvironmentInfo reports the host library version and the SDKs and
// frameworks installed under installRoot. An empty installRoot lets the host
// library use its own installation.
func (b *Bridge) GetEnvironmentInfo(installRoot string) (EnvironmentInfo, error) {
	rootPtr, rootBuf, err := b.nativeString(installRoot)
	if err != nil {
		return EnvironmentInfo{}, err
	}

	m := b.marshaler()
	var (
		info     EnvironmentInfo
		received bool
	)
	status, err := b.native.GetEnvironmentInfo(rootPtr, func(p unsafe.Pointer) {
		if p == nil {
			return
		}
		info = m.environment(p)
		received = true
	})
	runtime.KeepAlive(rootBuf)
	if err != nil {
		return EnvironmentInfo{}, err
	}
	if status != 0 {
		return EnvironmentInfo{}, errors.NativeStatus(SymbolGetDotnetEnvironmentInfo, status)
	}
	if !received {
		info = EnvironmentInfo{Sdks: []SdkInfo{}, Frameworks: []FrameworkInfo{}}
	}
	return info, nil
}
